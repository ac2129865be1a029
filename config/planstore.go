package config

import "fmt"

// PlanStoreConfig defines settings for the plan repository.
type PlanStoreConfig struct {
	// CacheSize bounds the number of plans held in memory.
	CacheSize int `json:"cache_size"`
	// CacheTTLMinutes expires cached plans after this many minutes. Zero
	// disables expiry.
	CacheTTLMinutes int `json:"cache_ttl_minutes"`
	// SQLitePath enables durable plan storage when non-empty.
	SQLitePath string `json:"sqlite_path"`
}

// SetDefaults applies sane defaults.
func (c *PlanStoreConfig) SetDefaults() {
	if c.CacheSize <= 0 {
		c.CacheSize = 256
	}
	if c.CacheTTLMinutes < 0 {
		c.CacheTTLMinutes = 0
	}
}

// Validate checks bounds.
func (c PlanStoreConfig) Validate() error {
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be positive")
	}
	return nil
}
