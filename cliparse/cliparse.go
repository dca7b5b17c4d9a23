package cliparse

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

var ErrUnknownDatabaseType = errors.New("unknown database type")

type Config struct {
	Port         int    `env:"PORT" envDefault:"3318"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`

	// Ledger settings
	Namespace     string `env:"LEDGER_NAMESPACE" envDefault:"quickly-vote"`
	TokenAudience string `env:"VOTER_TOKEN_AUDIENCE" envDefault:"quickly-vote"`
	PollEndFloor  uint64 `env:"POLL_END_FLOOR" envDefault:"1000000000"`
}

// ParseFlags reads the environment, then lets CLI flags override it
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	fs := flag.NewFlagSet("quickly-vote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite, postgres, or memory)")

	fs.StringVar(&cfg.Namespace, "namespace", cfg.Namespace, "Address derivation namespace")
	fs.StringVar(&cfg.TokenAudience, "audience", cfg.TokenAudience, "Required voter token audience")
	fs.Uint64Var(&cfg.PollEndFloor, "poll-end-floor", cfg.PollEndFloor, "poll_end must be greater than this")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	switch cfg.DatabaseType {
	case "sqlite", "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case "memory":
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownDatabaseType, cfg.DatabaseType)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.Namespace == "" {
		return Config{}, errors.New("ledger namespace must not be empty")
	}
	if cfg.TokenAudience == "" {
		return Config{}, errors.New("voter token audience must not be empty")
	}

	return cfg, nil
}
