package session

import (
	"sync"

	"storefront_client/internal/domain"
)

// Session is the explicit session object handed by reference to the API
// client and the usecases. It is created empty at startup, filled at login,
// and wiped at logout; everything else reads it.
type Session struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	user         *domain.User
}

func New() *Session {
	return &Session{}
}

func (s *Session) Set(user *domain.User, accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.accessToken = accessToken
	s.refreshToken = refreshToken
}

// Token returns the current access token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// User returns the cached profile, nil when signed out. The returned value
// is a copy; the session stays the single writer.
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken != "" && s.user != nil
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
}
