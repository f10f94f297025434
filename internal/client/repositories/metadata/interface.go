// Package metadata is a small key/value table for client-local state such as
// the persisted session token.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeySessionToken = "session_token"
)

// Repository stores opaque values by key. Get reports common.ErrNotFound
// for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
