package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/brightsmile/clinassist/internal/api"
	"github.com/brightsmile/clinassist/internal/domain"
	"github.com/brightsmile/clinassist/internal/service"
	"github.com/go-chi/chi/v5"
)

type BookingAPI interface {
	AvailableSlots(limit int) []*domain.Slot
	SlotsByDate(date string) []*domain.Slot
	SlotsByType(slotType string) []*domain.Slot
	AvailableDates() []string
	Book(input service.BookInput) (*domain.Booking, error)
}

type BookingHandler struct {
	svc BookingAPI
}

func NewBookingHandler(svc BookingAPI) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type SlotResponse struct {
	ID       int    `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
	Type     string `json:"type"`
	Status   string `json:"status"`
}

type BookRequest struct {
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
	Reason       string `json:"reason"`
}

type BookingResponse struct {
	ID           string `json:"id"`
	SlotID       int    `json:"slot_id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Type         string `json:"type"`
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
	Reason       string `json:"reason,omitempty"`
	BookedAt     string `json:"booked_at"`
}

func slotToResponse(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:       s.ID,
		Date:     s.Date,
		Time:     s.Time,
		Duration: s.Duration,
		Type:     s.Type,
		Status:   string(s.Status),
	}
}

func slotsToResponse(slots []*domain.Slot) []*SlotResponse {
	out := make([]*SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotToResponse(s))
	}
	return out
}

func bookingToResponse(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:           b.ID,
		SlotID:       b.SlotID,
		Date:         b.Date,
		Time:         b.Time,
		Type:         b.Type,
		PatientName:  b.PatientName,
		PatientPhone: b.PatientPhone,
		Reason:       b.Reason,
		BookedAt:     b.BookedAt.Format(time.RFC3339),
	}
}

// List returns available slots, optionally filtered by date or type.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	slotType := r.URL.Query().Get("type")

	var slots []*domain.Slot
	switch {
	case date != "":
		slots = h.svc.SlotsByDate(date)
	case slotType != "":
		slots = h.svc.SlotsByType(slotType)
	default:
		slots = h.svc.AvailableSlots(0)
	}

	api.Success(w, http.StatusOK, slotsToResponse(slots))
}

// Dates returns the dates that still have availability.
func (h *BookingHandler) Dates(w http.ResponseWriter, r *http.Request) {
	api.Success(w, http.StatusOK, h.svc.AvailableDates())
}

// Book books a slot for a patient.
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	slotID, err := strconv.Atoi(idParam)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "invalid slot id")
		return
	}

	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.PatientName == "" {
		api.Error(w, http.StatusBadRequest, "patient_name is required")
		return
	}

	booking, err := h.svc.Book(service.BookInput{
		SlotID:       slotID,
		PatientName:  req.PatientName,
		PatientPhone: req.PatientPhone,
		Reason:       req.Reason,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, bookingToResponse(booking))
}
