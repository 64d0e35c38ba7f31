package config

import (
	"fmt"
	"strings"
)

// StoreBackend selects the keyed store implementation.
type StoreBackend string

const (
	// StoreBackendPostgres stores items in a single Postgres table; expiry
	// is enforced by the reaper service.
	StoreBackendPostgres StoreBackend = "postgres"
	// StoreBackendRedis stores items in Redis with native TTL expiry.
	StoreBackendRedis StoreBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for StoreBackend.
func (b *StoreBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "postgres", "redis":
		*b = StoreBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StoreBackend: %q (valid options: postgres, redis)", v)
	}
}

// StoreConfig contains keyed store configuration.
type StoreConfig struct {
	// Table is the logical table name. All item kinds share this table,
	// disambiguated by key prefixes.
	Table string `env:"TABLE_NAME" envDefault:"items"`

	// Backend selects the store implementation.
	Backend StoreBackend `env:"STORE_BACKEND" envDefault:"postgres"`
}
