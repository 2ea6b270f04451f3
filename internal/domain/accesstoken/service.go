package accesstoken

import "context"

// TokenService defines business logic for single-use check-in tokens
type TokenService interface {
	// Issue mints a fresh token. TTLSeconds outside the allowed bounds is
	// clamped; zero means the default.
	Issue(ctx context.Context, req IssueRequest) (IssueResponse, error)

	// Validate is a read-only liveness probe; it never consumes.
	// A consumed token still inside the grace window reports valid.
	Validate(ctx context.Context, value string) (ValidateResponse, error)

	// Consume burns the token for a submission by the given PIN. A repeat
	// consume by the same PIN inside the grace window succeeds idempotently.
	Consume(ctx context.Context, value string, pin string) error

	// CleanupExpired removes long-expired tokens; returns rows deleted.
	CleanupExpired(ctx context.Context) (int64, error)
}
