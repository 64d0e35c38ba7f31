// Package devseed seeds a development environment with a usable identity.
// It must never run in production; the bootstrap only calls it in dev mode.
package devseed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/datalabs-io/platform-api/internal/data"
	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	apperrors "github.com/datalabs-io/platform-api/internal/errors"
)

const (
	seedUserID = "dev-admin"
	seedEmail  = "admin@platform.local"
)

// Run seeds an active SuperAdmin user so the login flow is usable in a fresh
// development environment. Seeding is idempotent; an existing user with the
// seed email is left untouched.
func Run(ctx context.Context, users *data.UserRepo, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := users.FindByEmail(ctx, seedEmail); err == nil {
		logger.InfoContext(ctx, "dev seed user already present", "email", seedEmail)
		return nil
	} else if !apperrors.IsNotFound(err) {
		return fmt.Errorf("check for seed user: %w", err)
	}

	if err := users.Put(ctx, domainauth.User{
		ID:     seedUserID,
		Email:  seedEmail,
		Role:   domainauth.RoleSuperAdmin,
		Status: domainauth.StatusActive,
	}); err != nil {
		return fmt.Errorf("seed dev user: %w", err)
	}

	logger.InfoContext(ctx, "seeded dev user", "email", seedEmail, "role", domainauth.RoleSuperAdmin)
	return nil
}

// LogDelivery writes login codes to the log instead of a real delivery
// channel. Dev mode only: in production codes must only ever be readable out
// of band.
type LogDelivery struct {
	Logger *slog.Logger
}

// DeliverLoginCode logs the issued code for the developer to copy.
func (d LogDelivery) DeliverLoginCode(ctx context.Context, email string, as domainauth.AuthSession) error {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "dev login code issued",
		"email", email,
		"code", as.Code,
		"expires_at", as.Expiry,
	)
	return nil
}
