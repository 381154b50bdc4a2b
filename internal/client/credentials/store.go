package credentials

import (
	"context"
)

// Store is a persistent key/value mechanism. Get returns (nil, nil) when the
// key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
