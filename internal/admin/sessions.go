package admin

import (
	"sync"
	"time"

	"github.com/gofrs/uuid"
)

// SessionTTL is how long an issued session stays valid.
const SessionTTL = 24 * time.Hour

type session struct {
	admin   Admin
	expires time.Time
}

// Sessions is an in-memory store of opaque session tokens. Expired entries
// are pruned on every write.
type Sessions struct {
	mu  sync.Mutex
	m   map[string]session
	ttl time.Duration
	now func() time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		m:   make(map[string]session),
		ttl: ttl,
		now: time.Now,
	}
}

// Create issues a new token for the admin.
func (s *Sessions) Create(a Admin) (string, error) {
	token, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for t, sess := range s.m {
		if sess.expires.Before(now) {
			delete(s.m, t)
		}
	}

	s.m[token.String()] = session{admin: a, expires: now.Add(s.ttl)}
	return token.String(), nil
}

// Get resolves a token to its admin. Expired tokens are removed and report
// as absent.
func (s *Sessions) Get(token string) (Admin, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.m[token]
	if !ok {
		return Admin{}, false
	}
	if sess.expires.Before(s.now()) {
		delete(s.m, token)
		return Admin{}, false
	}

	return sess.admin, true
}

func (s *Sessions) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, token)
}
