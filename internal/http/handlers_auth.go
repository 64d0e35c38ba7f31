package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, email string) (domainauth.AuthSession, error)
	Authenticate(ctx context.Context, email, code string) (domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// CodeDelivery carries a freshly issued login code to the user out of band.
// The HTTP response never contains the code.
type CodeDelivery interface {
	DeliverLoginCode(ctx context.Context, email string, as domainauth.AuthSession) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	Delivery     CodeDelivery // Optional: nil means codes are only persisted
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Auth dispatches the two-phase login flow on the type query parameter.
// POST /auth?type=login&email=<email>
// POST /auth?type=authenticate&email=<email>&code=<code>
// POST /auth?type=logout
func (h *AuthHandlers) Auth(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("type") {
	case "login":
		h.login(w, r)
	case "authenticate":
		h.authenticate(w, r)
	case "logout":
		h.logout(w, r)
	default:
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_auth_type",
			Err:     errors.New("type must be login, authenticate, or logout"),
		})
	}
}

// login issues a one-time code for the email. Success is a bare 200 with no
// body; only the status code distinguishes a refusal, and the code itself
// never leaves the server over HTTP.
func (h *AuthHandlers) login(w http.ResponseWriter, r *http.Request) {
	email := authParam(r, "email")
	if email == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_email",
			Err:     errors.New("email is required"),
		})
		return
	}

	as, err := h.Svc.Login(r.Context(), email)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if h.Delivery != nil {
		if deliverErr := h.Delivery.DeliverLoginCode(r.Context(), email, as); deliverErr != nil {
			h.logger().ErrorContext(r.Context(), "login code delivery failed",
				"auth_session_id", as.ID, "error", deliverErr)
			WriteError(w, ErrorParams{
				Code:    http.StatusServiceUnavailable,
				ErrCode: "delivery_failed",
				Err:     errors.New("could not deliver login code"),
			})
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}

// authenticate redeems a login code for a session. Everything the client
// needs comes back in the session and CSRF cookies; the body stays empty.
func (h *AuthHandlers) authenticate(w http.ResponseWriter, r *http.Request) {
	email := authParam(r, "email")
	code := authParam(r, "code")
	if email == "" || code == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_credentials",
			Err:     errors.New("email and code are required"),
		})
		return
	}

	sess, err := h.Svc.Authenticate(r.Context(), email, code)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.setSessionCookies(w, r, sess)
	w.WriteHeader(http.StatusOK)
}

// logout invalidates the server-side session and clears both cookies.
func (h *AuthHandlers) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	h.clearCookie(w, r, SessionCookieName, true)
	h.clearCookie(w, r, CSRFCookieName, false)
	w.WriteHeader(http.StatusOK)
}

// authParam reads a parameter from the query string first, then the form body.
func authParam(r *http.Request, name string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(r.FormValue(name))
}

// setSessionCookies writes the session and CSRF cookies, both scoped to the
// session's expiry. The CSRF cookie must stay readable by client-side code
// so it can be echoed back in the X-Csrf-Token header.
func (h *AuthHandlers) setSessionCookies(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	isSecure := r.TLS != nil || isForwardedHTTPS(r)

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  s.Expiry.UTC(),
	})

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    s.CSRFToken,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: false,
		Secure:   isSecure,
		SameSite: http.SameSiteStrictMode,
		Expires:  s.Expiry.UTC(),
	})
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain) used when setting cookies
// to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string, httpOnly bool) {
	isSecure := r.TLS != nil || isForwardedHTTPS(r)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: httpOnly,
		Secure:   isSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
