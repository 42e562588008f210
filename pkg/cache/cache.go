// Package cache stores rendered diagrams so repeated renders of an unchanged
// graph skip the Graphviz layout step.
//
// Keys are derived from the DOT source and the layout engine, so any change
// to the graph, the highlighted path, or the rendering options produces a new
// entry. Search results are never cached; only layout output is.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DefaultTTL is how long a rendered diagram stays valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store keyed by string.
//
// Get reports a miss with ok=false and a nil error. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RenderKey returns the key for the output of laying out dot with engine.
func RenderKey(dot []byte, engine string) string {
	return "render:" + engine + ":" + Hash(dot)
}
