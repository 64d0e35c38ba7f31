package ports

// Package ports defines interfaces (hexagonal ports) for identity and
// session behavior. Implementations live in internal/data; orchestration in
// internal/service.

import (
	"context"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
)

// UserRepository resolves identity records. Users are provisioned out of
// band; Put exists for seeding and tests.
type UserRepository interface {
	// FindByEmail resolves a user through the email index. Exactly one
	// record must match.
	FindByEmail(ctx context.Context, email string) (domainauth.User, error)
	FindByID(ctx context.Context, userID string) (domainauth.User, error)
	Put(ctx context.Context, u domainauth.User) error
}

// SessionRepository persists one-time login codes and authenticated sessions.
type SessionRepository interface {
	PutAuthSession(ctx context.Context, as domainauth.AuthSession) error
	// AuthSessionsForUser returns the user's outstanding, unexpired codes.
	AuthSessionsForUser(ctx context.Context, userID string) ([]domainauth.AuthSession, error)
	// DeleteAuthSession is idempotent; deleting an absent code is not an error.
	DeleteAuthSession(ctx context.Context, userID, id string) error

	PutSession(ctx context.Context, s domainauth.Session) error
	// FindSessionByID resolves a session through the session-id index.
	// Exactly one record must match.
	FindSessionByID(ctx context.Context, sessionID string) (domainauth.Session, error)
	DeleteSession(ctx context.Context, userID, id string) error
}

// TeamRepository persists teams and team memberships.
type TeamRepository interface {
	PutTeam(ctx context.Context, t domainauth.Team) error
	FindTeam(ctx context.Context, name string) (domainauth.Team, error)
	PutMember(ctx context.Context, m domainauth.TeamMember) error
	TeamsForUser(ctx context.Context, userID string) ([]domainauth.TeamMember, error)
	DeleteMember(ctx context.Context, teamName, userID string) error
}

// ToolRepository persists provisioned workbench tools.
type ToolRepository interface {
	PutTool(ctx context.Context, t domainauth.Tool) error
	FindTool(ctx context.Context, userID, toolID string) (domainauth.Tool, error)
	ToolsByType(ctx context.Context, toolType domainauth.ToolType) ([]domainauth.Tool, error)
}

// ExpiryReaper removes items whose expiry has passed. Backends where the
// store expires items natively return 0.
type ExpiryReaper interface {
	ReapExpired(ctx context.Context, batchSize int) (int64, error)
}
