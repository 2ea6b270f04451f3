package accesstoken

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/quanlycuahang/attendance-backend-go/internal/domain/accesstoken"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]accesstoken.Token
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]accesstoken.Token)}
}

func (f *fakeTokenRepo) Create(_ context.Context, token accesstoken.Token) (accesstoken.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token.CreatedAt = time.Now()
	f.tokens[token.Token] = token
	return token, nil
}

func (f *fakeTokenRepo) GetByValue(_ context.Context, value string) (accesstoken.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[value]
	if !ok {
		return accesstoken.Token{}, accesstoken.ErrTokenNotFound
	}
	return t, nil
}

func (f *fakeTokenRepo) Consume(_ context.Context, value string, pin string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[value]
	if !ok || t.ConsumedAt != nil || !now.Before(t.ExpiresAt) {
		return false, nil
	}
	t.ConsumedAt = &now
	t.ConsumedByPIN = &pin
	f.tokens[value] = t
	return true, nil
}

func (f *fakeTokenRepo) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for k, t := range f.tokens {
		if t.ExpiresAt.Before(cutoff) {
			delete(f.tokens, k)
			deleted++
		}
	}
	return deleted, nil
}

func newTestService(repo *fakeTokenRepo, now *time.Time) *TokenServiceImpl {
	return &TokenServiceImpl{
		tokenRepo: repo,
		now:       func() time.Time { return *now },
	}
}

func TestIssueClampsTTL(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeTokenRepo(), &now)
	ctx := context.Background()

	tests := []struct {
		name    string
		ttl     int
		wantTTL int
	}{
		{"default", 0, accesstoken.DefaultTTLSeconds},
		{"below minimum", 1, accesstoken.MinTTLSeconds},
		{"above maximum", 3600, accesstoken.MaxTTLSeconds},
		{"in range", 45, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Issue(ctx, accesstoken.IssueRequest{Purpose: "check_in", TTLSeconds: tt.ttl})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTTL, resp.ExpiresIn)
			assert.Equal(t, now.Add(time.Duration(tt.wantTTL)*time.Second), resp.ExpiresAt)
			assert.NotEmpty(t, resp.Token)
		})
	}
}

func TestIssueRejectsUnknownPurpose(t *testing.T) {
	now := time.Now()
	svc := newTestService(newFakeTokenRepo(), &now)

	_, err := svc.Issue(context.Background(), accesstoken.IssueRequest{Purpose: "badge_swipe"})
	assert.ErrorIs(t, err, accesstoken.ErrInvalidPurpose)
}

func TestValidateLifecycle(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestService(repo, &now)
	ctx := context.Background()

	issued, err := svc.Issue(ctx, accesstoken.IssueRequest{Purpose: "attendance", TTLSeconds: 60})
	require.NoError(t, err)

	resp, err := svc.Validate(ctx, issued.Token)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, 60, resp.RemainingSeconds)

	// Remaining seconds shrink monotonically as time passes.
	now = now.Add(25 * time.Second)
	resp, err = svc.Validate(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, 35, resp.RemainingSeconds)

	now = now.Add(40 * time.Second)
	_, err = svc.Validate(ctx, issued.Token)
	assert.ErrorIs(t, err, accesstoken.ErrTokenExpired)
}

func TestValidateUnknownToken(t *testing.T) {
	now := time.Now()
	svc := newTestService(newFakeTokenRepo(), &now)

	_, err := svc.Validate(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, accesstoken.ErrTokenNotFound)
}

func TestConsumeIsSingleUse(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestService(repo, &now)
	ctx := context.Background()

	issued, err := svc.Issue(ctx, accesstoken.IssueRequest{Purpose: "check_in", TTLSeconds: 60})
	require.NoError(t, err)

	require.NoError(t, svc.Consume(ctx, issued.Token, "1234"))

	// Another employee cannot ride the same token, even inside the grace window.
	err = svc.Consume(ctx, issued.Token, "5678")
	assert.ErrorIs(t, err, accesstoken.ErrTokenAlreadyConsumed)
}

func TestConsumeRetryWithinGraceIsIdempotent(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestService(repo, &now)
	ctx := context.Background()

	issued, err := svc.Issue(ctx, accesstoken.IssueRequest{Purpose: "check_in", TTLSeconds: 60})
	require.NoError(t, err)

	require.NoError(t, svc.Consume(ctx, issued.Token, "1234"))

	// Same PIN retrying 10s later succeeds without a second consumption.
	now = now.Add(10 * time.Second)
	assert.NoError(t, svc.Consume(ctx, issued.Token, "1234"))

	// Past the grace window even the same PIN is rejected.
	now = now.Add(15 * time.Second)
	err = svc.Consume(ctx, issued.Token, "1234")
	assert.ErrorIs(t, err, accesstoken.ErrTokenAlreadyConsumed)
}

func TestConsumeExpiredToken(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestService(repo, &now)
	ctx := context.Background()

	issued, err := svc.Issue(ctx, accesstoken.IssueRequest{Purpose: "check_in", TTLSeconds: 30})
	require.NoError(t, err)

	now = now.Add(31 * time.Second)
	err = svc.Consume(ctx, issued.Token, "1234")
	assert.ErrorIs(t, err, accesstoken.ErrTokenExpired)
}

func TestConsumeUnknownToken(t *testing.T) {
	now := time.Now()
	svc := newTestService(newFakeTokenRepo(), &now)

	err := svc.Consume(context.Background(), "no-such-token", "1234")
	assert.ErrorIs(t, err, accesstoken.ErrTokenNotFound)
}

func TestValidateConsumedWithinGrace(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestService(repo, &now)
	ctx := context.Background()

	issued, err := svc.Issue(ctx, accesstoken.IssueRequest{Purpose: "check_in", TTLSeconds: 60})
	require.NoError(t, err)
	require.NoError(t, svc.Consume(ctx, issued.Token, "1234"))

	now = now.Add(5 * time.Second)
	resp, err := svc.Validate(ctx, issued.Token)
	require.NoError(t, err)
	assert.True(t, resp.Valid)

	now = now.Add(20 * time.Second)
	_, err = svc.Validate(ctx, issued.Token)
	assert.ErrorIs(t, err, accesstoken.ErrTokenAlreadyConsumed)
}

func TestCleanupExpired(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	repo := newFakeTokenRepo()
	svc := newTestService(repo, &now)
	ctx := context.Background()

	_, err := svc.Issue(ctx, accesstoken.IssueRequest{Purpose: "check_in", TTLSeconds: 30})
	require.NoError(t, err)

	// Not yet past the 24h retention cutoff.
	now = now.Add(2 * time.Hour)
	deleted, err := svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, deleted)

	now = now.Add(25 * time.Hour)
	deleted, err = svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
}
