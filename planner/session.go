package planner

import (
	"context"
	"errors"
	"sync"
)

// Session holds one user's flow: the last submitted request and the live
// itinerary. At most one itinerary is live at a time; regeneration replaces
// it wholesale.
type Session struct {
	ID string

	genMu sync.Mutex // one generation in flight per session
	mu    sync.Mutex // guards request and itinerary

	request   TripRequest
	itinerary Itinerary

	planner *Planner
}

func NewSession(id string, p *Planner) (*Session, error) {
	if p == nil {
		return nil, errors.New("planner is required")
	}
	return &Session{ID: id, planner: p}, nil
}

// Generate records the submission and replaces the live itinerary with a
// fresh completion. The submitted fields stick even when generation fails;
// the previous itinerary survives a failure untouched.
func (s *Session) Generate(ctx context.Context, req TripRequest) (Itinerary, error) {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	s.mu.Lock()
	s.request = req
	s.mu.Unlock()

	it, err := s.planner.Generate(ctx, req)
	if err != nil {
		return Itinerary{}, err
	}

	s.mu.Lock()
	s.itinerary = it
	s.mu.Unlock()
	return it, nil
}

// Reset clears the request fields, the itinerary text, and the model
// metadata in one swap. There are no partial resets.
func (s *Session) Reset() {
	s.mu.Lock()
	s.request = TripRequest{}
	s.itinerary = Itinerary{}
	s.mu.Unlock()
}

// Snapshot copies the current state.
func (s *Session) Snapshot() (TripRequest, Itinerary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.request, s.itinerary
}
