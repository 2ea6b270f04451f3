package accesstoken

import (
	"context"
	"time"
)

type TokenRepository interface {
	Create(ctx context.Context, token Token) (Token, error)

	GetByValue(ctx context.Context, value string) (Token, error)

	// Consume atomically marks an unconsumed, unexpired token as consumed.
	// Returns false when the compare-and-set matched no row; the caller
	// reloads the token to find out why.
	Consume(ctx context.Context, value string, pin string, now time.Time) (bool, error)

	// DeleteExpiredBefore removes tokens whose expiry is older than cutoff.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
