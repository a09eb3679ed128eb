package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightsmile/clinassist/internal/domain"
)

func TestBook_Success(t *testing.T) {
	repo := &fakeBookingRepo{slots: testSlots()}
	svc := NewBookingService(repo)

	booking, err := svc.Book(BookInput{
		SlotID:       1,
		PatientName:  "Ana Ivanova",
		PatientPhone: "555-0101",
		Reason:       "cleaning",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, booking.SlotID)
	assert.Equal(t, "Ana Ivanova", booking.PatientName)

	slot, err := repo.GetSlot(1)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusBooked, slot.Status)
}

func TestBook_MissingPatientName(t *testing.T) {
	svc := NewBookingService(&fakeBookingRepo{slots: testSlots()})

	_, err := svc.Book(BookInput{SlotID: 1, PatientName: "   "})

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCodeValidation, domainErr.Code)
}

func TestBook_SlotNotFound(t *testing.T) {
	svc := NewBookingService(&fakeBookingRepo{slots: testSlots()})

	_, err := svc.Book(BookInput{SlotID: 99, PatientName: "Ana Ivanova"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSlotNotFound))
}

func TestBook_SlotAlreadyBooked(t *testing.T) {
	svc := NewBookingService(&fakeBookingRepo{slots: testSlots()})

	_, err := svc.Book(BookInput{SlotID: 3, PatientName: "Ana Ivanova"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSlotUnavailable))
}

func TestFormatSlot(t *testing.T) {
	slot := &domain.Slot{
		ID: 7, Date: "2026-09-02", Time: "09:00",
		Duration: "30 min", Type: "cleaning",
		Status: domain.SlotStatusAvailable,
	}

	assert.Equal(t, "Slot 7: 2026-09-02 at 09:00 (cleaning, 30 min)", FormatSlot(slot))
}

func TestFormatSlots(t *testing.T) {
	slots := testSlots()[:2]

	out := FormatSlots(slots)

	assert.Contains(t, out, "Slot 1: 2026-09-02 at 09:00 (cleaning, 30 min)")
	assert.Contains(t, out, "Slot 2: 2026-09-02 at 10:00 (checkup, 60 min)")
}
