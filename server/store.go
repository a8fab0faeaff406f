package server

import (
	"time"

	"github.com/patrickmn/go-cache"

	"travel_itinerary_planner/planner"
)

// sessionStore keeps live sessions in memory with a TTL refreshed on every
// write. Nothing survives a restart.
type sessionStore struct {
	c *cache.Cache
}

func newStore(ttl time.Duration) *sessionStore {
	return &sessionStore{c: cache.New(ttl, 10*time.Minute)}
}

func (s *sessionStore) set(sess *planner.Session) {
	s.c.Set(sess.ID, sess, cache.DefaultExpiration)
}

func (s *sessionStore) get(id string) (*planner.Session, bool) {
	v, ok := s.c.Get(id)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*planner.Session)
	return sess, ok
}
