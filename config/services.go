package config

import (
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents a runnable service within the process.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP API server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeReaper runs the expired-item sweep against the Postgres store.
	ServiceModeReaper ServiceMode = "reaper"
)

// ParseServices parses a comma-delimited service list into a set of modes.
// Unknown service names are an error rather than silently ignored.
func ParseServices(raw string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		switch ServiceMode(name) {
		case ServiceModeHTTP, ServiceModeReaper:
			services[ServiceMode(name)] = true
		default:
			return nil, fmt.Errorf("unknown service %q (valid options: http, reaper)", name)
		}
	}
	return services, nil
}

// ReaperConfig contains expiry sweep configuration for the Postgres store
// backend. The sweep is best-effort garbage collection; reads already treat
// expired items as absent.
type ReaperConfig struct {
	// Interval is the reaper tick interval.
	Interval time.Duration `env:"REAPER_INTERVAL" envDefault:"1m"`

	// BatchSize is the maximum number of items deleted per tick.
	// Batching prevents long locks and I/O spikes on large tables.
	BatchSize int `env:"REAPER_BATCH_SIZE" envDefault:"1000"`
}

// Sanitize applies guardrails to reaper configuration values.
func (r *ReaperConfig) Sanitize() {
	if r.Interval < 10*time.Second {
		r.Interval = 10 * time.Second
	}
	if r.BatchSize < 1 {
		r.BatchSize = 1
	}
	if r.BatchSize > 10000 {
		r.BatchSize = 10000
	}
}
