package accesstoken

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/accesstoken"
)

type TokenServiceImpl struct {
	tokenRepo accesstoken.TokenRepository
	now       func() time.Time
}

func NewTokenService(tokenRepo accesstoken.TokenRepository) accesstoken.TokenService {
	return &TokenServiceImpl{
		tokenRepo: tokenRepo,
		now:       time.Now,
	}
}

// Issue implements accesstoken.TokenService.
func (s *TokenServiceImpl) Issue(ctx context.Context, req accesstoken.IssueRequest) (accesstoken.IssueResponse, error) {
	purpose := accesstoken.Purpose(req.Purpose)
	if !purpose.Valid() {
		return accesstoken.IssueResponse{}, accesstoken.ErrInvalidPurpose
	}

	ttl := req.TTLSeconds
	if ttl == 0 {
		ttl = accesstoken.DefaultTTLSeconds
	}
	if ttl < accesstoken.MinTTLSeconds {
		ttl = accesstoken.MinTTLSeconds
	}
	if ttl > accesstoken.MaxTTLSeconds {
		ttl = accesstoken.MaxTTLSeconds
	}

	token := accesstoken.Token{
		Token:     uuid.NewString(),
		Purpose:   purpose,
		ExpiresAt: s.now().Add(time.Duration(ttl) * time.Second),
	}

	created, err := s.tokenRepo.Create(ctx, token)
	if err != nil {
		return accesstoken.IssueResponse{}, fmt.Errorf("failed to issue token: %w", err)
	}

	return accesstoken.IssueResponse{
		Token:     created.Token,
		Purpose:   created.Purpose,
		ExpiresAt: created.ExpiresAt,
		ExpiresIn: ttl,
	}, nil
}

// Validate implements accesstoken.TokenService.
func (s *TokenServiceImpl) Validate(ctx context.Context, value string) (accesstoken.ValidateResponse, error) {
	token, err := s.tokenRepo.GetByValue(ctx, value)
	if err != nil {
		if errors.Is(err, accesstoken.ErrTokenNotFound) {
			return accesstoken.ValidateResponse{}, accesstoken.ErrTokenNotFound
		}
		return accesstoken.ValidateResponse{}, fmt.Errorf("failed to validate token: %w", err)
	}

	now := s.now()

	if token.Consumed() {
		if token.WithinGrace(now) {
			return accesstoken.ValidateResponse{Valid: true, Purpose: token.Purpose}, nil
		}
		return accesstoken.ValidateResponse{}, accesstoken.ErrTokenAlreadyConsumed
	}

	if token.Expired(now) {
		return accesstoken.ValidateResponse{}, accesstoken.ErrTokenExpired
	}

	return accesstoken.ValidateResponse{
		Valid:            true,
		Purpose:          token.Purpose,
		RemainingSeconds: int(token.ExpiresAt.Sub(now).Seconds()),
	}, nil
}

// Consume implements accesstoken.TokenService.
func (s *TokenServiceImpl) Consume(ctx context.Context, value string, pin string) error {
	now := s.now()

	consumed, err := s.tokenRepo.Consume(ctx, value, pin, now)
	if err != nil {
		return fmt.Errorf("failed to consume token: %w", err)
	}
	if consumed {
		return nil
	}

	// The compare-and-set matched nothing; reload to find out why.
	token, err := s.tokenRepo.GetByValue(ctx, value)
	if err != nil {
		if errors.Is(err, accesstoken.ErrTokenNotFound) {
			return accesstoken.ErrTokenNotFound
		}
		return fmt.Errorf("failed to reload token: %w", err)
	}

	if token.Consumed() {
		// A retry of the same submission inside the grace window is fine.
		if token.WithinGrace(now) && token.ConsumedByPIN != nil && *token.ConsumedByPIN == pin {
			return nil
		}
		return accesstoken.ErrTokenAlreadyConsumed
	}

	if token.Expired(now) {
		return accesstoken.ErrTokenExpired
	}

	return accesstoken.ErrTokenAlreadyConsumed
}

// CleanupExpired implements accesstoken.TokenService.
func (s *TokenServiceImpl) CleanupExpired(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-24 * time.Hour)
	deleted, err := s.tokenRepo.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup expired tokens: %w", err)
	}
	return deleted, nil
}
