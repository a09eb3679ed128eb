package domain

import (
	"fmt"
	"time"
)

// SlotStatus represents the booking state of an appointment slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
)

// Slot is an appointment slot owned by the booking store. The only legal
// status transition is available -> booked; there is no un-booking.
type Slot struct {
	ID       int
	Date     string
	Time     string
	Duration string
	Type     string
	Status   SlotStatus
}

// Available reports whether the slot can still be booked.
func (s *Slot) Available() bool {
	return s.Status == SlotStatusAvailable
}

// Booking is a confirmed appointment record tied to a slot.
type Booking struct {
	ID           string
	SlotID       int
	Date         string
	Time         string
	Type         string
	PatientName  string
	PatientPhone string
	Reason       string
	BookedAt     time.Time
}

// ValidateSlot validates a Slot instance
func ValidateSlot(s *Slot) error {
	if s == nil {
		return fmt.Errorf("slot cannot be nil")
	}
	if s.ID <= 0 {
		return fmt.Errorf("slot ID must be positive")
	}
	if s.Date == "" {
		return fmt.Errorf("slot date is required")
	}
	if s.Time == "" {
		return fmt.Errorf("slot time is required")
	}
	if !isValidSlotStatus(s.Status) {
		return fmt.Errorf("slot status is invalid: %s", s.Status)
	}
	return nil
}

// isValidSlotStatus checks if a SlotStatus is valid
func isValidSlotStatus(s SlotStatus) bool {
	switch s {
	case SlotStatusAvailable, SlotStatusBooked:
		return true
	}
	return false
}
