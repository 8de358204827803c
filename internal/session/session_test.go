package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	dErrors "secureid/pkg/domain-errors"
)

type SessionSuite struct {
	suite.Suite
	now     time.Time
	issuer  *Issuer
	session *TokenSession
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return s.now }
	s.issuer = NewIssuer("test-signing-key", "https://id.test", "identity-verification", time.Hour)
	s.issuer.now = clock
	s.session = New(WithClock(clock))
}

func (s *SessionSuite) TestSignedOutByDefault() {
	ctx := context.Background()
	signedIn, err := s.session.IsSignedIn(ctx)
	s.Require().NoError(err)
	s.False(signedIn)

	_, err = s.session.AuthToken(ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeNotSignedIn))
	s.Empty(s.session.Subject())
}

func (s *SessionSuite) TestSignInAndOut() {
	ctx := context.Background()
	token, err := s.issuer.Issue("o-uuid")
	s.Require().NoError(err)

	s.Require().NoError(s.session.SignIn(token))
	signedIn, err := s.session.IsSignedIn(ctx)
	s.Require().NoError(err)
	s.True(signedIn)
	s.Equal("o-uuid", s.session.Subject())

	got, err := s.session.AuthToken(ctx)
	s.Require().NoError(err)
	s.Equal(token, got)

	s.session.SignOut()
	signedIn, _ = s.session.IsSignedIn(ctx)
	s.False(signedIn)
}

func (s *SessionSuite) TestExpiredTokenIsSignedOut() {
	token, err := s.issuer.Issue("o-uuid")
	s.Require().NoError(err)
	s.Require().NoError(s.session.SignIn(token))

	s.now = s.now.Add(2 * time.Hour)

	signedIn, err := s.session.IsSignedIn(context.Background())
	s.Require().NoError(err)
	s.False(signedIn)
}

func (s *SessionSuite) TestSignInRejectsBadTokens() {
	s.Run("garbage", func() {
		err := s.session.SignIn("not-a-jwt")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidToken))
	})

	s.Run("no subject", func() {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{}).SignedString([]byte("k"))
		s.Require().NoError(err)
		err = s.session.SignIn(token)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidToken))
	})
}

func (s *SessionSuite) TestIssuerVerify() {
	token, err := s.issuer.Issue("o-uuid")
	s.Require().NoError(err)

	claims, err := s.issuer.Verify(token)
	s.Require().NoError(err)
	s.Equal("o-uuid", claims.Subject)

	other := NewIssuer("other-key", "https://id.test", "identity-verification", time.Hour)
	_, err = other.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)

	s.now = s.now.Add(2 * time.Hour)
	_, err = s.issuer.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}
