package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCapsAtMax(t *testing.T) {
	svc := NewAttemptService(newFakeAttemptStore(), time.Minute, 5)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	for i := 1; i <= 5; i++ {
		status, err := svc.Record(context.Background(), "wallet-1", now.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		assert.Equal(t, i, status.Attempts)
		assert.Equal(t, 5-i, status.RemainingAttempts)
		assert.GreaterOrEqual(t, status.RemainingAttempts, 0)
	}

	// The sixth attempt in the window is rejected and not counted.
	_, err := svc.Record(context.Background(), "wallet-1", now.Add(6*time.Second))
	var tooMany *TooManyAttemptsError
	require.ErrorAs(t, err, &tooMany)
	assert.False(t, tooMany.ResetAt.IsZero())

	count, err := svc.Get(context.Background(), "wallet-1", now.Add(7*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestRecordWindowExpiryStartsFresh(t *testing.T) {
	svc := NewAttemptService(newFakeAttemptStore(), time.Minute, 5)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := svc.Record(context.Background(), "wallet-1", now)
		require.NoError(t, err)
	}

	later := now.Add(61 * time.Second)
	status, err := svc.Record(context.Background(), "wallet-1", later)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Attempts)
	assert.Equal(t, 4, status.RemainingAttempts)
}

func TestGetWithoutAttempts(t *testing.T) {
	svc := NewAttemptService(newFakeAttemptStore(), time.Minute, 5)

	count, err := svc.Get(context.Background(), "wallet-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestResetClearsCounter(t *testing.T) {
	svc := NewAttemptService(newFakeAttemptStore(), time.Minute, 5)
	now := time.Now()

	_, err := svc.Record(context.Background(), "wallet-1", now)
	require.NoError(t, err)

	require.NoError(t, svc.Reset(context.Background(), "wallet-1"))

	count, err := svc.Get(context.Background(), "wallet-1", now)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestIdentitiesAreIndependent(t *testing.T) {
	svc := NewAttemptService(newFakeAttemptStore(), time.Minute, 5)
	now := time.Now()

	for i := 0; i < 5; i++ {
		_, err := svc.Record(context.Background(), "wallet-1", now)
		require.NoError(t, err)
	}

	status, err := svc.Record(context.Background(), "wallet-2", now)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Attempts)
}
