package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
	apperrors "github.com/datalabs-io/platform-api/internal/errors"
)

// SessionCookieName is the cookie carrying the opaque session identifier.
const SessionCookieName = "session_id"

// Authorizer resolves a session identifier to the identity that owns it.
type Authorizer interface {
	Authorize(ctx context.Context, sessionID string) (domainauth.Context, error)
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns a middleware that requires an authorized session.
// On success the resolved identity is attached to the request context;
// otherwise it returns a 401 Unauthorized response.
func RequireAuth(authz Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := identityFromRequest(r, authz)
			if err != nil {
				writeAuthFailure(w, err)
				return
			}

			ctx := SetIdentityInContext(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware that requires a specific role.
// If the user doesn't have the required role, it returns a 403 Forbidden response.
func RequireRole(authz Authorizer, requiredRole domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := identityFromRequest(r, authz)
			if err != nil {
				writeAuthFailure(w, err)
				return
			}

			if !hasRequiredRole(identity.Role, requiredRole) {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}

			ctx := SetIdentityInContext(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identityFromRequest reads the session cookie and resolves it to an identity.
// The authorizer has already logged anything worth logging.
func identityFromRequest(r *http.Request, authz Authorizer) (domainauth.Context, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return domainauth.Context{}, apperrors.Unauthorized("missing session cookie")
	}
	return authz.Authorize(r.Context(), cookie.Value)
}

// writeAuthFailure separates refused sessions from infrastructure failures.
// Refusals stay a flat 401; everything else keeps its own mapping so a store
// outage reads as a 503, not as a bad session.
func writeAuthFailure(w http.ResponseWriter, err error) {
	if apperrors.IsUnauthorized(err) {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}
	WriteAppError(w, err)
}

// hasRequiredRole checks role hierarchy: SuperAdmin > Admin > User.
func hasRequiredRole(userRole, requiredRole domainauth.Role) bool {
	rank := map[domainauth.Role]int{
		domainauth.RoleUser:       1,
		domainauth.RoleAdmin:      2,
		domainauth.RoleSuperAdmin: 3,
	}

	userRank, ok := rank[userRole]
	if !ok {
		return false
	}
	requiredRank, ok := rank[requiredRole]
	if !ok {
		return false
	}
	return userRank >= requiredRank
}
