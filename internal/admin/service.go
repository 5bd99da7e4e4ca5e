// Package admin authenticates dashboard operators and manages their sessions.
// A single shared credential pair guards the dashboard; each login mints a
// bearer token backed by a stored session that lives until explicit logout.
package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"io"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/crypto/bcrypt"

	"crease/internal/admin/session"
	dErrors "crease/pkg/domain-errors"
	"crease/pkg/requestcontext"
)

var loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "crease_admin_logins_total",
	Help: "Admin login attempts by outcome.",
}, []string{"outcome"})

// sessionClaims binds a bearer token to its stored session. Tokens carry no
// expiry: session lifetime is governed entirely by the session store, so a
// token is valid exactly as long as its session row exists.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// Service authenticates admins against the configured credential pair.
type Service struct {
	sessions       session.Store
	username       string
	passwordBcrypt string
	signingKey     []byte
	logger         *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates the admin auth service. The password is supplied as a bcrypt
// hash so the plaintext never appears in configuration.
func New(sessions session.Store, username, passwordBcrypt, signingKey string, opts ...Option) (*Service, error) {
	if sessions == nil {
		return nil, errors.New("admin: session store is required")
	}
	if username == "" || passwordBcrypt == "" {
		return nil, errors.New("admin: credential pair is required")
	}
	if signingKey == "" {
		return nil, errors.New("admin: signing key is required")
	}
	s := &Service{
		sessions:       sessions,
		username:       username,
		passwordBcrypt: passwordBcrypt,
		signingKey:     []byte(signingKey),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Login checks the credential pair and, on success, creates a session and
// returns its signed bearer token. Wrong username and wrong password produce
// the same error so the response does not reveal which half failed.
func (s *Service) Login(ctx context.Context, username, password, userAgent string) (string, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.passwordBcrypt), []byte(password))
	if !usernameOK || passwordErr != nil {
		loginsTotal.WithLabelValues("rejected").Inc()
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	now := requestcontext.Now(ctx)
	sess := &session.Session{
		ID:                uuid.New().String(),
		Actor:             username,
		DeviceDisplayName: ParseUserAgent(userAgent),
		CreatedAtUnix:     now.Unix(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		loginsTotal.WithLabelValues("error").Inc()
		return "", dErrors.Wrap(err, dErrors.CodeStore, "creating session failed")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sess.ID,
			Subject:  username,
			IssuedAt: jwt.NewNumericDate(now),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		loginsTotal.WithLabelValues("error").Inc()
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "signing session token failed")
	}

	loginsTotal.WithLabelValues("accepted").Inc()
	s.logger.InfoContext(ctx, "admin logged in",
		slog.String("session_id", sess.ID),
		slog.String("device", sess.DeviceDisplayName))
	return signed, nil
}

// Verify resolves a bearer token to its live session. A token whose session
// was logged out is as unauthorized as a forged one.
func (s *Service) Verify(ctx context.Context, tokenString string) (*session.Session, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.FindByID(ctx, claims.ID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "looking up session failed")
	}
	return sess, nil
}

// Logout destroys the token's session. Logging out an already-dead session
// is unauthorized, same as any other use of a dead token.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return dErrors.New(dErrors.CodeUnauthorized, "session not found")
		}
		return dErrors.Wrap(err, dErrors.CodeStore, "deleting session failed")
	}

	s.logger.InfoContext(ctx, "admin logged out", slog.String("session_id", claims.ID))
	return nil
}

func (s *Service) parseToken(tokenString string) (*sessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.ID == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}
