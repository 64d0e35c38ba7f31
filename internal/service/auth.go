package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/datalabs-io/platform-api/internal/observability/statsd"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	apperrors "github.com/datalabs-io/platform-api/internal/errors"
	"github.com/datalabs-io/platform-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users    ports.UserRepository    // Required: identity lookups
	Sessions ports.SessionRepository // Required: code listing during redemption
	Issuer   *Issuer                 // Required: code and session minting
	Logger   *slog.Logger            // Optional: structured logger
	Metrics  statsd.Sink             // Optional: metrics sink
}

// AuthService implements the two-phase login protocol: a login code is
// issued against an email, then redeemed for an authenticated session.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	issuer   *Issuer
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewAuthService constructs an AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Users == nil {
		return nil, errors.New("UserRepository is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("SessionRepository is required")
	}
	if opts.Issuer == nil {
		return nil, errors.New("Issuer is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:    opts.Users,
		sessions: opts.Sessions,
		issuer:   opts.Issuer,
		logger:   logger.With("component", "auth_service"),
		metrics:  opts.Metrics,
	}, nil
}

// Login starts the flow for an email: the user must exist and be active, and
// a fresh login code is issued. The code travels to the user out of band and
// is returned here only for the delivery channel; it must never reach the
// HTTP response.
func (s *AuthService) Login(ctx context.Context, email string) (domainauth.AuthSession, error) {
	user, err := s.findActiveUser(ctx, email)
	if err != nil {
		s.count("auth.login", "denied")
		return domainauth.AuthSession{}, err
	}

	as, err := s.issuer.IssueLoginCode(ctx, user.ID)
	if err != nil {
		s.count("auth.login", "error")
		return domainauth.AuthSession{}, err
	}

	s.count("auth.login", "success")
	return as, nil
}

// Authenticate redeems a login code for an authenticated session. The code
// is matched against every outstanding unexpired code for the user; on a
// match the session is issued first and the code deleted after, so a crash
// between the two leaves a redeemable code rather than a lost session.
func (s *AuthService) Authenticate(ctx context.Context, email, code string) (domainauth.Session, error) {
	user, err := s.findActiveUser(ctx, email)
	if err != nil {
		s.count("auth.authenticate", "denied")
		return domainauth.Session{}, err
	}

	outstanding, err := s.sessions.AuthSessionsForUser(ctx, user.ID)
	if err != nil {
		s.count("auth.authenticate", "error")
		return domainauth.Session{}, err
	}

	matched, ok := matchCode(outstanding, code)
	if !ok {
		s.logger.InfoContext(ctx, "login code mismatch", "user_id", user.ID)
		s.count("auth.authenticate", "denied")
		return domainauth.Session{}, apperrors.Unauthorized("invalid login code")
	}

	sess, err := s.issuer.IssueSession(ctx, user.ID)
	if err != nil {
		s.count("auth.authenticate", "error")
		return domainauth.Session{}, err
	}

	if delErr := s.issuer.DeleteLoginCode(ctx, user.ID, matched.ID); delErr != nil {
		// The code stays redeemable until expiry; the session is already
		// valid, so the redemption succeeds anyway.
		s.logger.WarnContext(ctx, "failed to delete redeemed login code",
			"user_id", user.ID,
			"auth_session_id", matched.ID,
			"error", delErr,
		)
	}

	s.count("auth.authenticate", "success")
	return sess, nil
}

// Logout invalidates a session server-side. Unknown or already-expired
// session identifiers are not an error; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	sess, err := s.sessions.FindSessionByID(ctx, sessionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil
		}
		if apperrors.IsMultiplicity(err) {
			s.logger.WarnContext(ctx, "session index multiplicity violation", "error", err)
			return nil
		}
		return err
	}

	if err := s.sessions.DeleteSession(ctx, sess.UserID, sess.ID); err != nil {
		return err
	}
	s.count("auth.logout", "success")
	return nil
}

// findActiveUser resolves an email to an active user, mapping every failure
// mode to Unauthorized so callers leak nothing about which step failed.
func (s *AuthService) findActiveUser(ctx context.Context, email string) (domainauth.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.IsMultiplicity(err) {
			// Data-integrity anomaly; logged loudly, surfaced quietly.
			s.logger.WarnContext(ctx, "email index multiplicity violation", "error", err)
			return domainauth.User{}, apperrors.Unauthorized("unknown user")
		}
		if apperrors.IsNotFound(err) {
			return domainauth.User{}, apperrors.Unauthorized("unknown user")
		}
		return domainauth.User{}, err
	}
	if !user.IsActive() {
		s.logger.InfoContext(ctx, "login refused for inactive user", "user_id", user.ID)
		return domainauth.User{}, apperrors.Unauthorized("user is not active")
	}
	return user, nil
}

func matchCode(outstanding []domainauth.AuthSession, code string) (domainauth.AuthSession, bool) {
	if code == "" {
		return domainauth.AuthSession{}, false
	}
	for _, as := range outstanding {
		if subtle.ConstantTimeCompare([]byte(as.Code), []byte(code)) == 1 {
			return as, true
		}
	}
	return domainauth.AuthSession{}, false
}

func (s *AuthService) count(name, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Count(name, 1, map[string]string{"result": result})
}
