package database

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// Read runs a query-shaped function and retries it once when the
// failure looks transient. Only reads may go through here; a write
// that fails must surface immediately so the caller can report it.
func Read[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	out, err := fn(ctx)
	if err == nil || ctx.Err() != nil || !Transient(err) {
		return out, err
	}
	return fn(ctx)
}

// Transient reports whether an error is worth one more attempt: a
// timeout, or a failure pgx guarantees happened before the statement
// reached the server.
func Transient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return pgconn.SafeToRetry(err)
}
