package web

import (
	"sync"

	"github.com/google/uuid"

	"seraph.si/v2/bfhl-form/src/form"
)

// session is one browser's form state. mu is never held across a network call.
type session struct {
	mu    sync.Mutex
	state form.State
}

// sessionStore keeps at most limit sessions, evicting the oldest.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	order    []string
	limit    int
}

func newSessionStore(limit int) *sessionStore {
	if limit <= 0 {
		limit = 1
	}
	return &sessionStore{
		sessions: make(map[string]*session),
		limit:    limit,
	}
}

func (s *sessionStore) get(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *sessionStore) create() (string, *session) {
	id := uuid.NewString()
	sess := &session{}

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.order) >= s.limit {
		delete(s.sessions, s.order[0])
		s.order = s.order[1:]
	}
	s.sessions[id] = sess
	s.order = append(s.order, id)
	return id, sess
}

func (s *sessionStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
