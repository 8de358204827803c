// Package session tracks the signed in user's ID token. It answers whether the
// user is signed in and supplies the token sent with every GraphQL request.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "secureid/pkg/domain-errors"
)

// TokenSession holds a single bearer token issued by the identity service.
// Signature checks are the service's job; locally the token is only decoded
// for its subject and expiry.
type TokenSession struct {
	mu     sync.RWMutex
	token  string
	claims *jwt.RegisteredClaims
	now    func() time.Time
	parser *jwt.Parser
}

// Option configures the TokenSession.
type Option func(*TokenSession)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *TokenSession) {
		s.now = now
	}
}

func New(opts ...Option) *TokenSession {
	s := &TokenSession{
		now:    time.Now,
		parser: jwt.NewParser(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignIn stores token after checking it decodes and names a subject.
func (s *TokenSession) SignIn(token string) error {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidToken, "token is not a valid JWT")
	}
	if claims.Subject == "" {
		return dErrors.New(dErrors.CodeInvalidToken, "token has no subject")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.claims = claims
	return nil
}

// SignOut forgets the current token.
func (s *TokenSession) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.claims = nil
}

// IsSignedIn reports whether a token is held and has not expired.
func (s *TokenSession) IsSignedIn(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.validLocked(), nil
}

// AuthToken returns the current token, or a CodeNotSignedIn error.
func (s *TokenSession) AuthToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.validLocked() {
		return "", dErrors.New(dErrors.CodeNotSignedIn, "not signed in")
	}
	return s.token, nil
}

// Subject returns the signed in user's subject, or "" when signed out.
func (s *TokenSession) Subject() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.claims == nil {
		return ""
	}
	return s.claims.Subject
}

func (s *TokenSession) validLocked() bool {
	if s.token == "" || s.claims == nil {
		return false
	}
	if s.claims.ExpiresAt == nil {
		return true
	}
	return s.now().Before(s.claims.ExpiresAt.Time)
}
