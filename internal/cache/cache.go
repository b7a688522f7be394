// Package cache holds the verdict cache: identical claim text inside the
// TTL reuses a prior oracle result instead of paying for a second check.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache is the byte-level caching contract
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from claim text, normalized so trivial
// whitespace/case differences still hit.
func Key(claimText string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(claimText)), " ")
	hash := sha256.Sum256([]byte(normalized))
	return "claimsift:v1:" + hex.EncodeToString(hash[:])
}
