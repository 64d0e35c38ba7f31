package config

import "time"

// AuthConfig groups session and login-code configuration.
type AuthConfig struct {
	// CookieDomain is the domain attribute for the session and CSRF cookies.
	// Typically the platform's hosted zone (e.g. "platform.example.com").
	// Leave empty to scope cookies to the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// SessionTTL is the lifetime of an authenticated session.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"8h"`

	// LoginCodeTTL is the lifetime of a one-time login code.
	LoginCodeTTL time.Duration `env:"AUTH_LOGIN_CODE_TTL" envDefault:"5m"`

	// LoginCodeLength is the number of base-36 characters in a login code.
	LoginCodeLength int `env:"AUTH_LOGIN_CODE_LENGTH" envDefault:"8"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL < time.Minute {
		a.SessionTTL = 8 * time.Hour
	}
	if a.LoginCodeTTL < 10*time.Second {
		a.LoginCodeTTL = 5 * time.Minute
	}
	// A code that outlives its session indicates a misconfigured environment.
	if a.LoginCodeTTL > a.SessionTTL {
		a.LoginCodeTTL = 5 * time.Minute
	}
	if a.LoginCodeLength < 6 {
		a.LoginCodeLength = 8
	}
	if a.LoginCodeLength > 32 {
		a.LoginCodeLength = 32
	}
}
