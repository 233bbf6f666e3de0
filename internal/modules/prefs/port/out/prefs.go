package out

import (
	"context"
	"time"
)

type PreferenceStore interface {
	// Get returns ErrNotFound for a key that was never set.
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string, at time.Time) error
	DeleteAll(ctx context.Context) error
}
