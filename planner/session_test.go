package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// switchLLM succeeds until fail is flipped.
type switchLLM struct {
	fail bool
}

func (s *switchLLM) Complete(_ context.Context, _ string, _ Prompt) (string, error) {
	if s.fail {
		return "", errors.New("model offline")
	}
	return "## Trip Overview\nA fine plan.", nil
}

func TestSessionGenerateStoresRequestAndItinerary(t *testing.T) {
	p := newTestPlanner(t, MockLLM{})
	s, err := NewSession("s1", p)
	require.NoError(t, err)

	req := TripRequest{Destination: "Oslo", DayCount: "4", Interests: "fjords"}
	it, err := s.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, it.Markdown)

	gotReq, gotIt := s.Snapshot()
	assert.Equal(t, req, gotReq)
	assert.Equal(t, it, gotIt)
}

func TestSessionResetClearsEverything(t *testing.T) {
	p := newTestPlanner(t, MockLLM{})
	s, err := NewSession("s1", p)
	require.NoError(t, err)

	_, err = s.Generate(context.Background(), TripRequest{Destination: "Oslo", DayCount: "4"})
	require.NoError(t, err)

	s.Reset()

	gotReq, gotIt := s.Snapshot()
	assert.Equal(t, TripRequest{}, gotReq)
	assert.Equal(t, Itinerary{}, gotIt)
	assert.Empty(t, gotIt.ModelUsed)
}

func TestSessionKeepsItineraryWhenGenerationFails(t *testing.T) {
	llm := &switchLLM{}
	p := newTestPlanner(t, llm)
	s, err := NewSession("s1", p)
	require.NoError(t, err)

	first, err := s.Generate(context.Background(), TripRequest{Destination: "Oslo", DayCount: "4"})
	require.NoError(t, err)

	llm.fail = true
	retry := TripRequest{Destination: "Bergen", DayCount: "2"}
	_, err = s.Generate(context.Background(), retry)
	var cerr *CompletionError
	require.ErrorAs(t, err, &cerr)

	gotReq, gotIt := s.Snapshot()
	// the submitted fields stick, the old itinerary survives
	assert.Equal(t, retry, gotReq)
	assert.Equal(t, first, gotIt)
}

func TestNewSessionRequiresPlanner(t *testing.T) {
	_, err := NewSession("s1", nil)
	assert.Error(t, err)
}
