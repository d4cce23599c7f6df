package config

import (
	"strings"
	"time"
)

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"careers"`
	Password string `env:"PASSWORD"                envDefault:"careers"`
	Name     string `env:"NAME"                    envDefault:"careers"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	// URI is either a host:port pair or a redis:// / rediss:// URL.
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
}

// Sanitize trims whitespace from address fields.
func (c *RedisConfig) Sanitize() {
	c.URI = strings.TrimSpace(c.URI)
	nodes := make([]string, 0, len(c.SentinelNodes))
	for _, node := range c.SentinelNodes {
		if trimmed := strings.TrimSpace(node); trimmed != "" {
			nodes = append(nodes, trimmed)
		}
	}
	c.SentinelNodes = nodes
}

// CacheConfig contains cache behavior configuration (Redis-based).
type CacheConfig struct {
	// Enabled toggles the read-through company cache.
	Enabled bool `env:"CACHE_ENABLED" envDefault:"true"`

	// CompanyTTL is the TTL for cached company lookups.
	CompanyTTL time.Duration `env:"CACHE_COMPANY_TTL" envDefault:"10m"`
}

// Sanitize clamps nonsensical TTL values back to the default.
func (c *CacheConfig) Sanitize() {
	if c.CompanyTTL <= 0 {
		c.CompanyTTL = 10 * time.Minute
	}
}
