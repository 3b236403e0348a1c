package solver

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the environment-driven configuration of the service client.
type Config struct {
	URL string `env:"SOLVER_URL" env-default:"ws://127.0.0.1:8900/solve"`

	// TimeoutMS bounds one full solve round trip. The bridge falls back
	// to the heuristic once it elapses.
	TimeoutMS int `env:"SOLVER_TIMEOUT_MS" env-default:"2000"`

	// MaxIterations and TargetExploitability form the solve budget sent
	// to the service: it stops at whichever is hit first.
	MaxIterations        int     `env:"SOLVER_MAX_ITERATIONS" env-default:"600"`
	TargetExploitability float64 `env:"SOLVER_TARGET_EXPLOITABILITY" env-default:"0.005"`

	// BetSizes is the pot-fraction sizing profile the service builds its
	// tree with.
	BetSizes []float64 `env:"SOLVER_BET_SIZES" env-default:"0.33,0.75,1.5"`
}

// LoadConfig reads the client configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("solver config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("solver config: url must not be empty")
	}
	if c.TimeoutMS <= 0 {
		return fmt.Errorf("solver config: timeout must be positive, got %d", c.TimeoutMS)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("solver config: max iterations must be positive, got %d", c.MaxIterations)
	}
	if c.TargetExploitability <= 0 {
		return fmt.Errorf("solver config: target exploitability must be positive, got %g", c.TargetExploitability)
	}
	if len(c.BetSizes) == 0 {
		return fmt.Errorf("solver config: at least one bet size required")
	}
	for _, s := range c.BetSizes {
		if s <= 0 {
			return fmt.Errorf("solver config: bet sizes must be positive, got %g", s)
		}
	}
	return nil
}
