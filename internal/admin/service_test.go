package admin

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"crease/internal/admin/session"
	dErrors "crease/pkg/domain-errors"
	"crease/pkg/requestcontext"
)

const (
	testUsername   = "gatekeeper"
	testPassword   = "correct horse battery staple"
	testSigningKey = "test-signing-key"

	chromeOnMac = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
)

type ServiceSuite struct {
	suite.Suite
	store   *session.MemoryStore
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	s.Require().NoError(err)

	s.store = session.NewMemory()
	s.service, err = New(s.store, testUsername, string(hash), testSigningKey)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestNewRequiresConfiguration() {
	_, err := New(nil, "u", "h", "k")
	s.Error(err)

	_, err = New(s.store, "", "h", "k")
	s.Error(err)

	_, err = New(s.store, "u", "h", "")
	s.Error(err)
}

func (s *ServiceSuite) TestLoginMintsTokenBackedBySession() {
	ctx := requestcontext.WithNow(context.Background(), time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))

	token, err := s.service.Login(ctx, testUsername, testPassword, chromeOnMac)
	s.Require().NoError(err)
	s.NotEmpty(token)

	sess, err := s.service.Verify(ctx, token)
	s.Require().NoError(err)
	s.Equal(testUsername, sess.Actor)
	s.Contains(sess.DeviceDisplayName, "Chrome")
	s.Equal(int64(1787911200), sess.CreatedAtUnix)
}

func (s *ServiceSuite) TestLoginRejectsWrongPassword() {
	_, err := s.service.Login(context.Background(), testUsername, "wrong", chromeOnMac)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestLoginRejectsWrongUsernameWithSameMessage() {
	_, badUser := s.service.Login(context.Background(), "intruder", testPassword, chromeOnMac)
	_, badPass := s.service.Login(context.Background(), testUsername, "wrong", chromeOnMac)

	s.Require().Error(badUser)
	s.Require().Error(badPass)
	s.Equal(badPass.Error(), badUser.Error())
}

func (s *ServiceSuite) TestVerifyRejectsForgedToken() {
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ID: "some-session"})
	signed, err := forged.SignedString([]byte("wrong-key"))
	s.Require().NoError(err)

	_, err = s.service.Verify(context.Background(), signed)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestVerifyRejectsGarbage() {
	_, err := s.service.Verify(context.Background(), "not-a-token")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestTokenHasNoExpiry() {
	ctx := context.Background()
	token, err := s.service.Login(ctx, testUsername, testPassword, "")
	s.Require().NoError(err)

	// Years later the token still resolves, because the session is still
	// there. Lifetime is governed by the store, not the token.
	future := requestcontext.WithNow(ctx, time.Date(2036, 1, 1, 0, 0, 0, 0, time.UTC))
	_, err = s.service.Verify(future, token)
	s.NoError(err)
}

func (s *ServiceSuite) TestLogoutDestroysSession() {
	ctx := context.Background()

	token, err := s.service.Login(ctx, testUsername, testPassword, chromeOnMac)
	s.Require().NoError(err)

	s.Require().NoError(s.service.Logout(ctx, token))

	_, err = s.service.Verify(ctx, token)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	// Replaying logout with the now-dead token is also unauthorized.
	err = s.service.Logout(ctx, token)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *ServiceSuite) TestConcurrentLoginsAreIndependentSessions() {
	ctx := context.Background()

	first, err := s.service.Login(ctx, testUsername, testPassword, chromeOnMac)
	s.Require().NoError(err)
	second, err := s.service.Login(ctx, testUsername, testPassword, "")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Logout(ctx, first))

	// The other login is untouched.
	_, err = s.service.Verify(ctx, second)
	s.NoError(err)
}

func TestParseUserAgent(t *testing.T) {
	t.Run("empty user agent", func(t *testing.T) {
		got := ParseUserAgent("")
		if got != "Unknown Device" {
			t.Errorf("ParseUserAgent(\"\") = %q", got)
		}
	})

	t.Run("desktop chrome", func(t *testing.T) {
		got := ParseUserAgent(chromeOnMac)
		if !strings.Contains(got, "Chrome") || !strings.Contains(got, "on") {
			t.Errorf("ParseUserAgent(chrome) = %q", got)
		}
	})

	t.Run("garbage still formats", func(t *testing.T) {
		got := ParseUserAgent("Unknown/1.0")
		if !strings.Contains(got, "on") {
			t.Errorf("ParseUserAgent(garbage) = %q", got)
		}
	})
}
