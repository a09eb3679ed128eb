package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightsmile/clinassist/internal/api/handlers"
	"github.com/brightsmile/clinassist/internal/intent"
	"github.com/brightsmile/clinassist/internal/server"
	"github.com/brightsmile/clinassist/internal/service"
	"github.com/brightsmile/clinassist/internal/store"
)

// stubEmbedder produces deterministic vectors: one axis per known topic.
type stubEmbedder struct{}

var topics = []string{"root canal", "whitening", "implant", "cleaning"}

func (stubEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	lower := strings.ToLower(text)
	vec := make([]float32, len(topics)+1)
	matched := false
	for i, topic := range topics {
		if strings.Contains(lower, topic) {
			vec[i] = 1
			matched = true
		}
	}
	if !matched {
		vec[len(topics)] = 1
	}
	return vec, nil
}

// stubGenerator echoes a reply that references its context so tests can
// assert the retrieved passages reached the prompt.
type stubGenerator struct{}

func (stubGenerator) Complete(ctx context.Context, prompt, systemContext string) (string, error) {
	if strings.Contains(strings.ToLower(prompt), "root canal") {
		return "A root canal removes infected pulp and seals the tooth.", nil
	}
	return "Happy to help with that.", nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"knowledge_base.txt", "faqs.json", "appointments.json"} {
		src, err := os.ReadFile(filepath.Join("..", "..", "data", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), src, 0644))
	}

	faqs, err := store.LoadFAQs(filepath.Join(dir, "faqs.json"))
	require.NoError(t, err)

	bookingStore, err := store.OpenBookingStore(filepath.Join(dir, "appointments.json"))
	require.NoError(t, err)

	retrievalSvc := service.NewRetrievalService(stubEmbedder{}, service.DefaultRetrievalConfig())
	knowledgeSvc := service.NewKnowledgeService(
		filepath.Join(dir, "knowledge_base.txt"), retrievalSvc, "stub-embedding")
	require.NoError(t, knowledgeSvc.Load(context.Background()))

	faqSvc := service.NewFAQService(faqs)
	bookingSvc := service.NewBookingService(bookingStore)
	assistantSvc := service.NewAssistantService(
		intent.NewClassifier(faqs),
		retrievalSvc, faqSvc, bookingSvc,
		stubGenerator{},
		service.DefaultAssistantConfig(),
	)

	router := server.NewRouter(server.RouterConfig{
		ChatHandler:      handlers.NewChatHandler(assistantSvc),
		BookingHandler:   handlers.NewBookingHandler(bookingSvc),
		KnowledgeHandler: handlers.NewKnowledgeHandler(knowledgeSvc),
		ClinicHandler:    handlers.NewClinicHandler(assistantSvc, faqSvc),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&wrapper))
	require.NoError(t, json.Unmarshal(wrapper.Data, out))
}

func TestE2E_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestE2E_KnowledgeQuestion(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/chat", map[string]string{"message": "what is a root canal?"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var chat handlers.ChatResponse
	decodeData(t, resp, &chat)
	assert.Equal(t, "knowledge", chat.Intent)
	assert.True(t, chat.ContextUsed)
	assert.Contains(t, chat.Reply, "root canal")
}

func TestE2E_FAQQuestion(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/chat", map[string]string{"message": "how much does a cleaning cost?"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var chat handlers.ChatResponse
	decodeData(t, resp, &chat)
	assert.Equal(t, "faq", chat.Intent)
	assert.True(t, chat.ContextUsed)
	assert.NotEmpty(t, chat.Reply)
}

func TestE2E_BookingFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/slots")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var slots []handlers.SlotResponse
	decodeData(t, resp, &slots)
	require.NotEmpty(t, slots)
	first := slots[0]

	book := postJSON(t, srv.URL+fmt.Sprintf("/slots/%d/book", first.ID), handlers.BookRequest{
		PatientName:  "Ana Ivanova",
		PatientPhone: "555-0101",
		Reason:       "cleaning",
	})
	assert.Equal(t, http.StatusCreated, book.StatusCode)

	var booking handlers.BookingResponse
	decodeData(t, book, &booking)
	assert.Equal(t, first.ID, booking.SlotID)
	assert.NotEmpty(t, booking.ID)

	// Second attempt on the same slot must conflict.
	again := postJSON(t, srv.URL+fmt.Sprintf("/slots/%d/book", first.ID), handlers.BookRequest{
		PatientName: "Boris Petrov",
	})
	defer again.Body.Close()
	assert.Equal(t, http.StatusConflict, again.StatusCode)

	// The booked slot disappears from the listing.
	resp, err = http.Get(srv.URL + "/slots")
	require.NoError(t, err)
	var after []handlers.SlotResponse
	decodeData(t, resp, &after)
	for _, s := range after {
		assert.NotEqual(t, first.ID, s.ID)
	}
}

func TestE2E_ChatSlotListing(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/chat", map[string]string{"message": "what appointment slots are available?"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var chat handlers.ChatResponse
	decodeData(t, resp, &chat)
	assert.Equal(t, "booking", chat.Intent)
	assert.NotEmpty(t, chat.Reply)
}

func TestE2E_AppendKnowledgeThenRetrieve(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/knowledge/stats")
	require.NoError(t, err)
	var before handlers.KnowledgeStatsResponse
	decodeData(t, resp, &before)

	appendResp := postJSON(t, srv.URL+"/knowledge", handlers.AppendKnowledgeRequest{
		Text: "Night Guards\nA night guard protects teeth from grinding during sleep.",
	})
	assert.Equal(t, http.StatusCreated, appendResp.StatusCode)

	var after handlers.KnowledgeStatsResponse
	decodeData(t, appendResp, &after)
	assert.Equal(t, before.Passages+1, after.Passages)
}

func TestE2E_ClinicInfoAndFAQs(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/clinic")
	require.NoError(t, err)
	var info handlers.ClinicInfoResponse
	decodeData(t, resp, &info)
	assert.Equal(t, "Bright Smile Dental Clinic", info.Name)
	assert.Greater(t, info.AvailableSlots, 0)
	assert.Greater(t, info.Passages, 0)

	faqResp, err := http.Get(srv.URL + "/faqs")
	require.NoError(t, err)
	var faqs []handlers.FAQResponse
	decodeData(t, faqResp, &faqs)
	assert.NotEmpty(t, faqs)
}
