package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: session and login-code configuration
//   - store.go: keyed store configuration
//   - database.go: Postgres and Redis connection configuration
//   - http.go: HTTP server configuration
//   - services.go: service mode and reaper configuration
type AppConfig struct {
	// IsDev controls development mode behavior (seeding, relaxed cookies).
	// Set DEV=true for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Auth holds session and login-code configuration.
	Auth AuthConfig

	// Store holds keyed store configuration.
	Store StoreConfig

	// Database connection configuration.
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration.
	HTTP HTTPConfig

	// Services is a comma-delimited list of enabled services.
	Services string `env:"SERVICES" envDefault:"http"`

	// Reaper configuration (Postgres backend expiry sweep).
	Reaper ReaperConfig

	// Observability configuration.
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.HTTP.Sanitize()
	c.Reaper.Sanitize()
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsHTTPServerEnabled returns true if the HTTP server service is enabled.
func (c *AppConfig) IsHTTPServerEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeHTTP]
}

// IsReaperEnabled returns true if the reaper service is enabled.
func (c *AppConfig) IsReaperEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeReaper]
}
