package handlers

import (
	"net/http"

	"github.com/brightsmile/clinassist/internal/api"
	"github.com/brightsmile/clinassist/internal/domain"
	"github.com/brightsmile/clinassist/internal/service"
)

type ClinicAPI interface {
	Info() service.ClinicInfo
}

type FAQSource interface {
	Entries() []domain.FAQEntry
}

type ClinicHandler struct {
	svc  ClinicAPI
	faqs FAQSource
}

func NewClinicHandler(svc ClinicAPI, faqs FAQSource) *ClinicHandler {
	return &ClinicHandler{svc: svc, faqs: faqs}
}

type ClinicInfoResponse struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	AvailableSlots int    `json:"available_slots"`
	Passages       int    `json:"passages"`
	FAQs           int    `json:"faqs"`
}

type FAQResponse struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
}

// Info returns clinic identity and data source counts.
func (h *ClinicHandler) Info(w http.ResponseWriter, r *http.Request) {
	info := h.svc.Info()
	api.Success(w, http.StatusOK, ClinicInfoResponse{
		Name:           info.Name,
		Address:        info.Address,
		Phone:          info.Phone,
		AvailableSlots: info.AvailableSlots,
		Passages:       info.Passages,
		FAQs:           info.FAQs,
	})
}

// FAQs returns the FAQ table in file order.
func (h *ClinicHandler) FAQs(w http.ResponseWriter, r *http.Request) {
	entries := h.faqs.Entries()
	out := make([]FAQResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FAQResponse{
			Question: e.Question,
			Answer:   e.Answer,
			Keywords: e.Keywords,
		})
	}
	api.Success(w, http.StatusOK, out)
}
