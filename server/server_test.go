package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_itinerary_planner/config"
	"travel_itinerary_planner/pdf"
	"travel_itinerary_planner/planner"
)

var testModels = []string{"model-a", "model-b", "model-c"}

// countingLLM numbers its replies so resubmissions are distinguishable.
type countingLLM struct {
	calls int
}

func (c *countingLLM) Complete(_ context.Context, _ string, _ planner.Prompt) (string, error) {
	c.calls++
	return fmt.Sprintf("## Trip Overview\nPlan number %d.", c.calls), nil
}

// failingLLM errors on every model.
type failingLLM struct{}

func (failingLLM) Complete(_ context.Context, _ string, _ planner.Prompt) (string, error) {
	return "", errors.New("upstream unavailable")
}

// switchLLM succeeds until fail is flipped.
type switchLLM struct {
	fail bool
}

func (s *switchLLM) Complete(_ context.Context, _ string, _ planner.Prompt) (string, error) {
	if s.fail {
		return "", errors.New("quota exhausted")
	}
	return "## Trip Overview\nThe original plan.", nil
}

func newTestServer(t *testing.T, llm planner.LLMClient) *Server {
	t.Helper()

	fetcher, err := planner.NewFetcher(llm, testModels, nil)
	require.NoError(t, err)
	p, err := planner.NewPlanner(fetcher, nil)
	require.NoError(t, err)

	r := pdf.NewRenderer()
	r.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	srv, err := New(p, r, config.Config{SessionTTLMinutes: 5}, nil)
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) sessionResponse {
	t.Helper()
	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func sampleTrip() planner.TripRequest {
	return planner.TripRequest{
		Destination: "Tokyo, Japan",
		DayCount:    "3",
		Interests:   "food, temples",
		Guardrails:  "vegetarian only",
	}
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, planner.MockLLM{}).Routes()

	rec := doJSON(t, h, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSessionLifecycle(t *testing.T) {
	h := newTestServer(t, planner.MockLLM{}).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/sessions", sampleTrip())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeSession(t, rec)

	require.NotEmpty(t, created.SessionID)
	assert.Equal(t, sampleTrip(), created.Request)
	assert.Equal(t, "model-a", created.ModelUsed)
	assert.Contains(t, created.Markdown, "## Daily Itinerary")
	assert.Contains(t, created.Markdown, "- Destination: Tokyo, Japan")
	assert.Contains(t, created.HTML, "<h2")
	assert.Contains(t, created.Outline, "Trip Overview")
	assert.NotEmpty(t, created.GeneratedAt)

	rec = doJSON(t, h, http.MethodGet, "/api/sessions/"+created.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeSession(t, rec)
	assert.Equal(t, created.Markdown, fetched.Markdown)
	assert.Equal(t, created.Request, fetched.Request)

	rec = doJSON(t, h, http.MethodPost, "/api/sessions/"+created.SessionID+"/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := decodeSession(t, rec)
	assert.Equal(t, planner.TripRequest{}, cleared.Request)
	assert.Empty(t, cleared.Markdown)
	assert.Empty(t, cleared.ModelUsed)
	assert.Empty(t, cleared.GeneratedAt)

	rec = doJSON(t, h, http.MethodGet, "/api/sessions/"+created.SessionID+"/download", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no itinerary generated yet", decodeError(t, rec))
}

func TestCreateRejectsIncompleteForm(t *testing.T) {
	llm := &countingLLM{}
	h := newTestServer(t, llm).Routes()

	tests := []struct {
		name string
		req  planner.TripRequest
	}{
		{name: "missing destination", req: planner.TripRequest{DayCount: "3"}},
		{name: "missing day count", req: planner.TripRequest{Destination: "Tokyo"}},
		{name: "missing both", req: planner.TripRequest{Interests: "food"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/sessions", tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, planner.WarnMissingFields, decodeError(t, rec))
		})
	}
	assert.Zero(t, llm.calls, "rejected submissions must not reach the models")
}

func TestCreateRejectsMalformedJSON(t *testing.T) {
	h := newTestServer(t, planner.MockLLM{}).Routes()

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReportsCompletionFailure(t *testing.T) {
	h := newTestServer(t, failingLLM{}).Routes()

	rec := doJSON(t, h, http.MethodPost, "/api/sessions", sampleTrip())

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "failed to generate plan: upstream unavailable", decodeError(t, rec))
}

func TestDownload(t *testing.T) {
	h := newTestServer(t, planner.MockLLM{}).Routes()

	created := decodeSession(t, doJSON(t, h, http.MethodPost, "/api/sessions", sampleTrip()))
	rec := doJSON(t, h, http.MethodGet, "/api/sessions/"+created.SessionID+"/download", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="travel_plan.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestUnknownSession(t *testing.T) {
	h := newTestServer(t, planner.MockLLM{}).Routes()

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{name: "get", method: http.MethodGet, path: "/api/sessions/nope"},
		{name: "submit", method: http.MethodPost, path: "/api/sessions/nope", body: sampleTrip()},
		{name: "reset", method: http.MethodPost, path: "/api/sessions/nope/reset"},
		{name: "download", method: http.MethodGet, path: "/api/sessions/nope/download"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "session not found", decodeError(t, rec))
		})
	}
}

func TestResubmitGeneratesFreshPlan(t *testing.T) {
	llm := &countingLLM{}
	h := newTestServer(t, llm).Routes()

	created := decodeSession(t, doJSON(t, h, http.MethodPost, "/api/sessions", sampleTrip()))
	require.Equal(t, 1, llm.calls)

	rec := doJSON(t, h, http.MethodPost, "/api/sessions/"+created.SessionID, sampleTrip())
	require.Equal(t, http.StatusOK, rec.Code)
	resubmitted := decodeSession(t, rec)

	assert.Equal(t, 2, llm.calls, "every submission asks the models again")
	assert.NotEqual(t, created.Markdown, resubmitted.Markdown)
	assert.Contains(t, resubmitted.Markdown, "Plan number 2")
}

func TestResubmitFailureKeepsFieldsAndOldPlan(t *testing.T) {
	llm := &switchLLM{}
	h := newTestServer(t, llm).Routes()

	created := decodeSession(t, doJSON(t, h, http.MethodPost, "/api/sessions", sampleTrip()))

	llm.fail = true
	retry := sampleTrip()
	retry.Destination = "Osaka, Japan"
	rec := doJSON(t, h, http.MethodPost, "/api/sessions/"+created.SessionID, retry)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/sessions/"+created.SessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	after := decodeSession(t, rec)
	assert.Equal(t, "Osaka, Japan", after.Request.Destination)
	assert.Equal(t, created.Markdown, after.Markdown)
}

func TestStaticIndex(t *testing.T) {
	h := newTestServer(t, planner.MockLLM{}).Routes()

	rec := doJSON(t, h, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Personalized Travel Planner")
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, planner.MockLLM{}).Routes()

	doJSON(t, h, http.MethodPost, "/api/sessions", sampleTrip())
	rec := doJSON(t, h, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "planner_itineraries_generated_total")
}
