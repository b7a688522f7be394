package cache

import (
	"encoding/json"
	"time"

	"github.com/claimsift/claimsift/internal/oracle"
)

// VerdictCache stores oracle results keyed by normalized claim text
type VerdictCache struct {
	cache Cache
	ttl   time.Duration
}

// NewVerdictCache wraps a Cache with oracle.Result encoding
func NewVerdictCache(cache Cache, ttl time.Duration) *VerdictCache {
	return &VerdictCache{cache: cache, ttl: ttl}
}

// Get returns a previously cached result for the claim text, if any.
// Corrupt entries are treated as misses.
func (c *VerdictCache) Get(claimText string) (*oracle.Result, bool) {
	data, found := c.cache.Get(Key(claimText))
	if !found {
		return nil, false
	}
	var result oracle.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// Set caches an oracle result for the claim text
func (c *VerdictCache) Set(claimText string, result *oracle.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.cache.Set(Key(claimText), data, c.ttl)
}
