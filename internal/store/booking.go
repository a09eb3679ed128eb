package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/brightsmile/clinassist/internal/domain"
	"github.com/google/uuid"
)

type appointmentsFile struct {
	Slots    []slotRecord    `json:"slots"`
	Bookings []bookingRecord `json:"bookings,omitempty"`
}

type slotRecord struct {
	ID       int    `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration string `json:"duration,omitempty"`
	Type     string `json:"type,omitempty"`
	Status   string `json:"status"`
}

type bookingRecord struct {
	ID           string `json:"id"`
	SlotID       int    `json:"slot_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Type         string `json:"type,omitempty"`
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone,omitempty"`
	Reason       string `json:"reason,omitempty"`
	BookedAt     string `json:"booked_at"`
}

// BookingStore owns the appointment slot file. All mutation goes through
// a single in-process writer: Book holds the mutex across the
// status check and the file write, so two concurrent bookings of one
// slot cannot both succeed.
type BookingStore struct {
	mu   sync.Mutex
	path string
	data appointmentsFile
	now  func() time.Time
}

// OpenBookingStore reads the appointment file. A missing file is fatal
// at startup.
func OpenBookingStore(path string) (*BookingStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewDomainErrorWithCause(domain.ErrCodeDataNotFound,
				fmt.Sprintf("appointments file not found: %s", path), err)
		}
		return nil, fmt.Errorf("failed to read appointments file: %w", err)
	}

	var file appointmentsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse appointments file: %w", err)
	}

	for i := range file.Slots {
		slot := recordToSlot(file.Slots[i])
		if err := domain.ValidateSlot(&slot); err != nil {
			return nil, fmt.Errorf("invalid slot record %d: %w", i, err)
		}
	}

	return &BookingStore{
		path: path,
		data: file,
		now:  time.Now,
	}, nil
}

// AvailableSlots returns up to limit available slots in file order.
// limit <= 0 means no limit.
func (s *BookingStore) AvailableSlots(limit int) []*domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make([]*domain.Slot, 0)
	for _, rec := range s.data.Slots {
		if rec.Status != string(domain.SlotStatusAvailable) {
			continue
		}
		slot := recordToSlot(rec)
		slots = append(slots, &slot)
		if limit > 0 && len(slots) >= limit {
			break
		}
	}
	return slots
}

// SlotsByDate returns available slots for a specific date.
func (s *BookingStore) SlotsByDate(date string) []*domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make([]*domain.Slot, 0)
	for _, rec := range s.data.Slots {
		if rec.Date == date && rec.Status == string(domain.SlotStatusAvailable) {
			slot := recordToSlot(rec)
			slots = append(slots, &slot)
		}
	}
	return slots
}

// SlotsByType returns available slots of a given appointment type.
func (s *BookingStore) SlotsByType(slotType string) []*domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make([]*domain.Slot, 0)
	for _, rec := range s.data.Slots {
		if strings.EqualFold(rec.Type, slotType) && rec.Status == string(domain.SlotStatusAvailable) {
			slot := recordToSlot(rec)
			slots = append(slots, &slot)
		}
	}
	return slots
}

// AvailableDates returns the sorted set of dates with at least one
// available slot.
func (s *BookingStore) AvailableDates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	for _, rec := range s.data.Slots {
		if rec.Status == string(domain.SlotStatusAvailable) {
			seen[rec.Date] = struct{}{}
		}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// GetSlot returns the slot with the given ID.
func (s *BookingStore) GetSlot(id int) (*domain.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.data.Slots {
		if rec.ID == id {
			slot := recordToSlot(rec)
			return &slot, nil
		}
	}
	return nil, domain.ErrSlotNotFound
}

// Book transitions a slot from available to booked and appends a booking
// record. The status check and the write happen under one lock, which is
// the compare-and-set that prevents double-booking. Booked slots never
// transition back.
func (s *BookingStore) Book(slotID int, patientName, patientPhone, reason string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, rec := range s.data.Slots {
		if rec.ID == slotID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrSlotNotFound
	}
	if s.data.Slots[idx].Status != string(domain.SlotStatusAvailable) {
		return nil, domain.ErrSlotUnavailable
	}

	rec := s.data.Slots[idx]
	booking := bookingRecord{
		ID:           "bk_" + uuid.NewString(),
		SlotID:       rec.ID,
		Date:         rec.Date,
		Time:         rec.Time,
		Type:         rec.Type,
		PatientName:  patientName,
		PatientPhone: patientPhone,
		Reason:       reason,
		BookedAt:     s.now().UTC().Format(time.RFC3339),
	}

	s.data.Slots[idx].Status = string(domain.SlotStatusBooked)
	s.data.Bookings = append(s.data.Bookings, booking)

	if err := s.persist(); err != nil {
		// Roll back the in-memory transition so the slot stays bookable.
		s.data.Slots[idx].Status = string(domain.SlotStatusAvailable)
		s.data.Bookings = s.data.Bookings[:len(s.data.Bookings)-1]
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	result := recordToBooking(booking)
	return &result, nil
}

// Bookings returns all booking records.
func (s *BookingStore) Bookings() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings := make([]*domain.Booking, 0, len(s.data.Bookings))
	for _, rec := range s.data.Bookings {
		b := recordToBooking(rec)
		bookings = append(bookings, &b)
	}
	return bookings
}

// persist rewrites the whole appointment file. Caller must hold the lock.
func (s *BookingStore) persist() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal appointments: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write appointments file: %w", err)
	}
	return nil
}

func recordToSlot(rec slotRecord) domain.Slot {
	return domain.Slot{
		ID:       rec.ID,
		Date:     rec.Date,
		Time:     rec.Time,
		Duration: rec.Duration,
		Type:     rec.Type,
		Status:   domain.SlotStatus(rec.Status),
	}
}

func recordToBooking(rec bookingRecord) domain.Booking {
	bookedAt, _ := time.Parse(time.RFC3339, rec.BookedAt)
	return domain.Booking{
		ID:           rec.ID,
		SlotID:       rec.SlotID,
		Date:         rec.Date,
		Time:         rec.Time,
		Type:         rec.Type,
		PatientName:  rec.PatientName,
		PatientPhone: rec.PatientPhone,
		Reason:       rec.Reason,
		BookedAt:     bookedAt,
	}
}
