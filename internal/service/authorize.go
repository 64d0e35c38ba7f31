package service

import (
	"context"
	"errors"
	"log/slog"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	apperrors "github.com/datalabs-io/platform-api/internal/errors"
	"github.com/datalabs-io/platform-api/internal/ports"
)

// AuthorizerOptions groups dependencies for Authorizer.
type AuthorizerOptions struct {
	Users    ports.UserRepository    // Required: session owner lookups
	Sessions ports.SessionRepository // Required: session resolution
	Logger   *slog.Logger            // Optional: structured logger
}

// Authorizer resolves a session id to an identity context. It is read-only:
// authorization never mutates the store. Every refusal, including a session
// whose owner no longer exists, surfaces as Unauthorized and the caller learns
// nothing about which step failed. Store faults are not refusals and pass
// through with their own error code.
type Authorizer struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	logger   *slog.Logger
}

// NewAuthorizer constructs an Authorizer.
func NewAuthorizer(opts AuthorizerOptions) (*Authorizer, error) {
	if opts.Users == nil {
		return nil, errors.New("UserRepository is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("SessionRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Authorizer{
		users:    opts.Users,
		sessions: opts.Sessions,
		logger:   logger.With("component", "authorizer"),
	}, nil
}

// Authorize resolves the session id from the request cookie to the identity
// context attached to the request.
func (a *Authorizer) Authorize(ctx context.Context, sessionID string) (domainauth.Context, error) {
	if sessionID == "" {
		return domainauth.Context{}, apperrors.Unauthorized("missing session")
	}

	sess, err := a.sessions.FindSessionByID(ctx, sessionID)
	if err != nil {
		switch {
		case apperrors.IsNotFound(err):
			return domainauth.Context{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "session not valid")
		case apperrors.IsMultiplicity(err):
			a.logger.WarnContext(ctx, "session index multiplicity violation", "error", err)
			return domainauth.Context{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "session not valid")
		default:
			// A store fault is the request's failure, not a refusal.
			return domainauth.Context{}, err
		}
	}

	user, err := a.users.FindByID(ctx, sess.UserID)
	if err != nil {
		// A session whose user record is gone is a dangling reference, not
		// a crash; the request is simply unauthorized.
		if apperrors.IsNotFound(err) || apperrors.IsMultiplicity(err) {
			return domainauth.Context{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "session owner not valid")
		}
		return domainauth.Context{}, err
	}

	return domainauth.Context{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}
