package config

import (
	"fmt"
	"slices"
)

const (
	maxRebuildWorkers = 16
	minAdminTokenLen  = 16
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if !slices.Contains([]string{"json", "text"}, c.Log.Format) {
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if err := c.Browse.validate(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	if err := c.Rebuild.validate(); err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}

	if c.Admin.Enabled() && len(c.Admin.Token) < minAdminTokenLen {
		return fmt.Errorf("admin.token must be at least %d characters (got %d)", minAdminTokenLen, len(c.Admin.Token))
	}

	return nil
}

func (b *BrowseConfig) validate() error {
	if b.PageCacheSize <= 0 {
		return fmt.Errorf("page_cache_size must be > 0 (got %d)", b.PageCacheSize)
	}
	if b.PatternCacheSize <= 0 {
		return fmt.Errorf("pattern_cache_size must be > 0 (got %d)", b.PatternCacheSize)
	}
	if b.Normalizer != NormalizerSQL && b.Normalizer != NormalizerBuiltin {
		return fmt.Errorf("normalizer must be %s or %s (got %q)", NormalizerSQL, NormalizerBuiltin, b.Normalizer)
	}
	if b.RateLimitPerMinute < 0 {
		return fmt.Errorf("rate_limit_per_minute must be >= 0 (got %d)", b.RateLimitPerMinute)
	}
	return nil
}

func (r *RebuildConfig) validate() error {
	if r.Workers < 1 || r.Workers > maxRebuildWorkers {
		return fmt.Errorf("workers must be in [1, %d] (got %d)", maxRebuildWorkers, r.Workers)
	}
	if r.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", r.Timeout)
	}
	return nil
}
