package config

// ObservabilityConfig groups observability configuration.
type ObservabilityConfig struct {
	Metrics MetricsConfig `envPrefix:"METRICS_"`
}

// MetricsConfig contains StatsD metrics configuration.
type MetricsConfig struct {
	// Enabled turns metric emission on. Requires StatsdAddress.
	Enabled bool `env:"ENABLED" envDefault:"false"`

	// StatsdAddress is the host:port of a StatsD-compatible UDP endpoint.
	StatsdAddress string `env:"STATSD_ADDRESS" envDefault:""`
}

// IsEnabled reports whether metrics should be emitted.
func (m MetricsConfig) IsEnabled() bool {
	return m.Enabled && m.StatsdAddress != ""
}
