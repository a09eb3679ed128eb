package service

import (
	"fmt"
	"strings"

	"github.com/brightsmile/clinassist/internal/domain"
)

// BookingRepository defines the store interface for appointment slots
type BookingRepository interface {
	AvailableSlots(limit int) []*domain.Slot
	SlotsByDate(date string) []*domain.Slot
	SlotsByType(slotType string) []*domain.Slot
	AvailableDates() []string
	GetSlot(id int) (*domain.Slot, error)
	Book(slotID int, patientName, patientPhone, reason string) (*domain.Booking, error)
}

// BookInput represents input for booking a slot
type BookInput struct {
	SlotID       int
	PatientName  string
	PatientPhone string
	Reason       string
}

// BookingService handles the appointment booking flow.
type BookingService struct {
	repo BookingRepository
}

// NewBookingService creates a new BookingService instance
func NewBookingService(repo BookingRepository) *BookingService {
	return &BookingService{repo: repo}
}

// AvailableSlots lists up to limit available slots.
func (s *BookingService) AvailableSlots(limit int) []*domain.Slot {
	return s.repo.AvailableSlots(limit)
}

// SlotsByDate lists available slots on a given date.
func (s *BookingService) SlotsByDate(date string) []*domain.Slot {
	return s.repo.SlotsByDate(date)
}

// SlotsByType lists available slots of a given appointment type.
func (s *BookingService) SlotsByType(slotType string) []*domain.Slot {
	return s.repo.SlotsByType(slotType)
}

// AvailableDates lists dates with at least one available slot.
func (s *BookingService) AvailableDates() []string {
	return s.repo.AvailableDates()
}

// Book books a slot for a patient. The underlying store serializes the
// status transition so the same slot cannot be booked twice.
func (s *BookingService) Book(input BookInput) (*domain.Booking, error) {
	if strings.TrimSpace(input.PatientName) == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "patient name is required")
	}
	return s.repo.Book(input.SlotID, input.PatientName, input.PatientPhone, input.Reason)
}

// FormatSlot renders a slot for inclusion in a reply or prompt context.
func FormatSlot(slot *domain.Slot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Slot %d: %s at %s", slot.ID, slot.Date, slot.Time)
	if slot.Type != "" {
		fmt.Fprintf(&b, " (%s", slot.Type)
		if slot.Duration != "" {
			fmt.Fprintf(&b, ", %s", slot.Duration)
		}
		b.WriteString(")")
	} else if slot.Duration != "" {
		fmt.Fprintf(&b, " (%s)", slot.Duration)
	}
	return b.String()
}

// FormatSlots renders a one-slot-per-line listing.
func FormatSlots(slots []*domain.Slot) string {
	lines := make([]string, 0, len(slots))
	for _, slot := range slots {
		lines = append(lines, FormatSlot(slot))
	}
	return strings.Join(lines, "\n")
}
