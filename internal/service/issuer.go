package service

// Package service orchestrates the login protocol over the repository ports.
// Services hold no state beyond their dependencies and are safe for
// concurrent use.

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/datalabs-io/platform-api/config"
	"github.com/datalabs-io/platform-api/internal/data"
	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	"github.com/datalabs-io/platform-api/internal/ports"
)

// base36Alphabet is the code alphabet: digits then uppercase letters.
const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomBase36 returns n uniformly random characters from the base-36
// alphabet, using rejection sampling so no character is favored.
func RandomBase36(n int) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			// 252 is the largest multiple of 36 below 256.
			if b >= 252 {
				continue
			}
			out = append(out, base36Alphabet[int(b)%len(base36Alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}

// IssuerOptions groups dependencies for Issuer.
type IssuerOptions struct {
	Sessions ports.SessionRepository // Required: session repository
	Config   config.AuthConfig       // Required: TTLs and code length
	Time     data.TimeProvider       // Optional: defaults to real time
	Logger   *slog.Logger            // Optional: structured logger
}

// Issuer mints login codes and authenticated sessions. The code space is
// 36^8 by default; generation uses crypto/rand and the short lifetime bounds
// exposure. There is no redemption lock: concurrent redemptions of one code
// inside its lifetime may each succeed.
type Issuer struct {
	sessions ports.SessionRepository
	cfg      config.AuthConfig
	time     data.TimeProvider
	logger   *slog.Logger
}

// NewIssuer constructs an Issuer.
func NewIssuer(opts IssuerOptions) (*Issuer, error) {
	if opts.Sessions == nil {
		return nil, errors.New("SessionRepository is required")
	}
	tp := opts.Time
	if tp == nil {
		tp = &data.RealTimeProvider{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Issuer{
		sessions: opts.Sessions,
		cfg:      opts.Config,
		time:     tp,
		logger:   logger.With("component", "issuer"),
	}, nil
}

// IssueLoginCode mints a one-time login code for the user and persists it.
// The code is never logged.
func (i *Issuer) IssueLoginCode(ctx context.Context, userID string) (domainauth.AuthSession, error) {
	code, err := RandomBase36(i.cfg.LoginCodeLength)
	if err != nil {
		return domainauth.AuthSession{}, err
	}

	as := domainauth.AuthSession{
		ID:     uuid.NewString(),
		UserID: userID,
		Code:   code,
		Expiry: i.time.Now().Add(i.cfg.LoginCodeTTL),
	}
	if err := i.sessions.PutAuthSession(ctx, as); err != nil {
		return domainauth.AuthSession{}, err
	}

	i.logger.InfoContext(ctx, "login code issued",
		"user_id", userID,
		"auth_session_id", as.ID,
		"expires_at", as.Expiry,
	)
	return as, nil
}

// IssueSession mints an authenticated session with a fresh CSRF token.
func (i *Issuer) IssueSession(ctx context.Context, userID string) (domainauth.Session, error) {
	sess := domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CSRFToken: uuid.NewString(),
		Expiry:    i.time.Now().Add(i.cfg.SessionTTL),
	}
	if err := i.sessions.PutSession(ctx, sess); err != nil {
		return domainauth.Session{}, err
	}

	i.logger.InfoContext(ctx, "session issued",
		"user_id", userID,
		"session_id", sess.ID,
		"expires_at", sess.Expiry,
	)
	return sess, nil
}

// DeleteLoginCode removes a redeemed or abandoned code. Idempotent.
func (i *Issuer) DeleteLoginCode(ctx context.Context, userID, authSessionID string) error {
	return i.sessions.DeleteAuthSession(ctx, userID, authSessionID)
}
