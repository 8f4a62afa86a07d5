package config

import "time"

// Normalizer modes for BrowseConfig.Normalizer.
const (
	NormalizerSQL     = "sql"
	NormalizerBuiltin = "builtin"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Browse   BrowseConfig   `yaml:"browse"`
	Rebuild  RebuildConfig  `yaml:"rebuild"`
	Admin    AdminConfig    `yaml:"admin"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Admin-Token"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// BrowseConfig holds reader-side settings: caches, query normalization and
// request throttling.
type BrowseConfig struct {
	PageCacheSize      int    `yaml:"page_cache_size"       env:"BROWSE_PAGE_CACHE_SIZE"       env-default:"4096"`
	PatternCacheSize   int    `yaml:"pattern_cache_size"    env:"BROWSE_PATTERN_CACHE_SIZE"    env-default:"256"`
	Normalizer         string `yaml:"normalizer"            env:"BROWSE_NORMALIZER"            env-default:"sql"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute" env:"BROWSE_RATE_LIMIT_PER_MINUTE" env-default:"600"`
}

// RebuildConfig holds settings of the index rebuild job.
type RebuildConfig struct {
	Workers int           `yaml:"workers" env:"REBUILD_WORKERS" env-default:"4"`
	Timeout time.Duration `yaml:"timeout" env:"REBUILD_TIMEOUT" env-default:"2h"`
}

// AdminConfig holds settings of the admin endpoints.
// An empty Token disables them.
type AdminConfig struct {
	Token string `yaml:"token" env:"ADMIN_TOKEN"`
}

// Enabled reports whether the admin endpoints are served.
func (c AdminConfig) Enabled() bool {
	return c.Token != ""
}
