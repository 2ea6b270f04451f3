package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/accesstoken"
	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/database"
)

type tokenRepository struct {
	db *database.DB
}

func NewTokenRepository(db *database.DB) accesstoken.TokenRepository {
	return &tokenRepository{db: db}
}

// Create implements accesstoken.TokenRepository.
func (r *tokenRepository) Create(ctx context.Context, token accesstoken.Token) (accesstoken.Token, error) {
	q := GetQuerier(ctx, r.db)

	if token.ID == "" {
		token.ID = uuid.NewString()
	}

	query := `
		INSERT INTO access_tokens (id, token, purpose, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		token.ID,
		token.Token,
		token.Purpose,
		token.ExpiresAt,
	).Scan(&token.CreatedAt)

	if err != nil {
		return accesstoken.Token{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return token, nil
}

// GetByValue implements accesstoken.TokenRepository.
func (r *tokenRepository) GetByValue(ctx context.Context, value string) (accesstoken.Token, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, token, purpose, expires_at, consumed_at, consumed_by_pin, created_at
		FROM access_tokens
		WHERE token = $1
	`

	var t accesstoken.Token
	err := q.QueryRow(ctx, query, value).Scan(
		&t.ID, &t.Token, &t.Purpose, &t.ExpiresAt, &t.ConsumedAt, &t.ConsumedByPIN, &t.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return accesstoken.Token{}, accesstoken.ErrTokenNotFound
		}
		return accesstoken.Token{}, fmt.Errorf("failed to get access token: %w", err)
	}

	return t, nil
}

// Consume implements accesstoken.TokenRepository. The WHERE clause is the
// single-use guarantee: only an unconsumed, unexpired row can flip.
func (r *tokenRepository) Consume(ctx context.Context, value string, pin string, now time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE access_tokens
		SET consumed_at = $2, consumed_by_pin = $3
		WHERE token = $1
		  AND consumed_at IS NULL
		  AND expires_at > $2
	`

	tag, err := q.Exec(ctx, query, value, now, pin)
	if err != nil {
		return false, fmt.Errorf("failed to consume access token: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// DeleteExpiredBefore implements accesstoken.TokenRepository.
func (r *tokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM access_tokens WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}
