package config

import (
	"fmt"
	"runtime"
)

// MonteCarloConfig tunes the stochastic simulation engine.
type MonteCarloConfig struct {
	// Workers is the number of goroutines simulating iterations. Zero means
	// one per CPU.
	Workers int `json:"workers"`
	// Seed fixes the random source for reproducible runs. Zero keeps runs
	// non-deterministic.
	Seed int64 `json:"seed"`
	// TimeoutSeconds bounds the wall-clock time of one run.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *MonteCarloConfig) SetDefaults() {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
}

// Validate checks bounds.
func (c MonteCarloConfig) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	return nil
}
