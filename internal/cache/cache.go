// Package cache stores encoded resolve results keyed by catalog fingerprint
// and request payload.
package cache

import (
	"context"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

type ResultCache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Key derives a cache key for a request payload. The fingerprint scopes the
// key to one catalog snapshot since ids are not stable across snapshots.
func Key(fingerprint string, payload []byte) string {
	sum := blake2b.Sum256(payload)
	return fingerprint + ":" + hex.EncodeToString(sum[:])
}

// NopCache never stores anything. Used when no Redis address is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, string, []byte) error         { return nil }
