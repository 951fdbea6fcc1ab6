package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"pokedex/internal/domain/pokemon"
)

// SessionCookieName is the cookie that carries the viewer's session id.
const SessionCookieName = "pokedex_session"

type sessionEntry struct {
	session  *pokemon.Session
	lastSeen time.Time
}

// SessionStore keeps one pokemon.Session per viewer in memory. Entries idle
// for longer than ttl are dropped, unless a load is still running.
type SessionStore struct {
	acc *pokemon.Accumulator
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewSessionStore creates an empty store whose sessions load through acc.
func NewSessionStore(acc *pokemon.Accumulator, ttl time.Duration) *SessionStore {
	return &SessionStore{
		acc:      acc,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*sessionEntry),
	}
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Get returns the session for id, or nil when it does not exist or expired.
func (s *SessionStore) Get(id string) *pokemon.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	entry, ok := s.sessions[id]
	if !ok {
		return nil
	}
	entry.lastSeen = s.now()
	return entry.session
}

// Create registers a fresh session and returns its id.
func (s *SessionStore) Create() (string, *pokemon.Session) {
	id := uuid.NewString()
	session := pokemon.NewSession(s.acc)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.sessions[id] = &sessionEntry{session: session, lastSeen: s.now()}
	return id, session
}

// ForRequest returns the caller's session, creating one and setting the
// session cookie when the request has none or an unknown one.
func (s *SessionStore) ForRequest(w http.ResponseWriter, r *http.Request) *pokemon.Session {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if session := s.Get(cookie.Value); session != nil {
			return session
		}
	}

	id, session := s.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
	return session
}

// Sweep drops expired sessions and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *SessionStore) sweepLocked() int {
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) && entry.session.State() != pokemon.Loading {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
