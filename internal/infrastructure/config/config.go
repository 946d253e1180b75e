package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret signs the session cookie JWT. Required in production.
	SessionSecret   string        `env:"SESSION_SECRET"`
	SessionTTL      time.Duration `env:"SESSION_TTL,      default=24h"`
	CookieSecure    bool          `env:"COOKIE_SECURE,    default=false"`
	ActivityWorkers int           `env:"ACTIVITY_WORKERS, default=4"`

	Upstream UpstreamConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	AutoTLS  AutoTLSConfig
}

// UpstreamConfig points at the PhotoMarket REST backend.
type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=http://localhost:9000"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=10s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=photomarket_gateway"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// AutoTLSConfig enables Let's Encrypt certificates via autocert when the
// gateway fronts the public internet directly.
type AutoTLSConfig struct {
	Enabled  bool   `env:"AUTO_TLS,           default=false"`
	Domain   string `env:"AUTO_TLS_DOMAIN"`
	CacheDir string `env:"AUTO_TLS_CACHE_DIR, default=.autocert-cache"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
