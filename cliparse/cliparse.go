package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Sonu99kr/Assignment/auth"
)

// Database types
const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
	DatabaseMemory   = "memory"
)

const defaultSQLitePath = "livepoll.db"

type Config struct {
	Port          int    `env:"PORT" envDefault:"3318"`
	DatabaseURL   string `env:"DATABASE_URL"`
	DatabaseType  string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	AllowedOrigin string `env:"ALLOWED_ORIGIN"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"text"`

	// IPHashSalt keys client IP hashing for rate limiting; random per process when unset
	IPHashSalt string `env:"IP_HASH_SALT"`

	// Votes per minute per client, and burst
	VoteRateLimit  int  `env:"VOTE_RATE_LIMIT" envDefault:"10"`
	VoteRateBurst  int  `env:"VOTE_RATE_BURST" envDefault:"10"`
	VoteRetryTries uint `env:"VOTE_RETRY_TRIES" envDefault:"3"`

	EventBuffer      int `env:"BROADCAST_EVENT_BUFFER" envDefault:"1024"`
	SubscriberBuffer int `env:"BROADCAST_SUBSCRIBER_BUFFER" envDefault:"64"`

	// Closed polls are deleted PollRetention after expiry; 0 keeps them forever
	PollRetention   time.Duration `env:"POLL_RETENTION" envDefault:"24h"`
	JanitorInterval time.Duration `env:"JANITOR_INTERVAL" envDefault:"1m"`
}

// ParseFlags loads .env (if present) and environment variables, then applies
// CLI flags on top. CLI flags take precedence over the environment.
func ParseFlags(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("livepoll", flag.ContinueOnError)

	// Network config
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.AllowedOrigin, "origin", cfg.AllowedOrigin, "Allowed CORS origin (default: reflect request origin)")

	// Storage
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL or SQLite path")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (postgres, sqlite or memory)")
	fs.DurationVar(&cfg.PollRetention, "retention", cfg.PollRetention, "How long closed polls are kept")

	// Voting
	fs.IntVar(&cfg.VoteRateLimit, "vote-rate", cfg.VoteRateLimit, "Votes per minute per client")
	fs.IntVar(&cfg.VoteRateBurst, "vote-burst", cfg.VoteRateBurst, "Vote burst per client")

	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	switch cfg.DatabaseType {
	case DatabasePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	case DatabaseSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = defaultSQLitePath
		}
	case DatabaseMemory:
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.VoteRateLimit <= 0 || cfg.VoteRateBurst <= 0 {
		return Config{}, errors.New("vote rate limit and burst must be positive")
	}
	if cfg.JanitorInterval <= 0 {
		return Config{}, errors.New("janitor interval must be positive")
	}
	if cfg.PollRetention < 0 {
		return Config{}, errors.New("poll retention cannot be negative")
	}
	if cfg.VoteRetryTries == 0 {
		cfg.VoteRetryTries = 1
	}

	if cfg.IPHashSalt == "" {
		salt, err := auth.GenerateID(16)
		if err != nil {
			return Config{}, err
		}
		cfg.IPHashSalt = salt
	}

	return cfg, nil
}
