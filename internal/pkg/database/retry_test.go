package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRetriesTimeoutOnce(t *testing.T) {
	calls := 0
	out, err := Read(context.Background(), func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, context.DeadlineExceeded
		}
		return 42, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 42, out)
	assert.Equal(t, 2, calls)
}

func TestReadDoesNotRetryPermanentErrors(t *testing.T) {
	calls := 0
	boom := errors.New("relation does not exist")
	_, err := Read(context.Background(), func(context.Context) (int, error) {
		calls++
		return 0, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestReadGivesUpWhenCallerContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Read(ctx, func(context.Context) (int, error) {
		calls++
		return 0, context.DeadlineExceeded
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
