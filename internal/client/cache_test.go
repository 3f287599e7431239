package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingFetch(calls *int, data string) func(context.Context) ([]byte, error) {
	return func(context.Context) ([]byte, error) {
		*calls++
		return []byte(data), nil
	}
}

func TestFetchReusesFreshEntry(t *testing.T) {
	qc := NewQueryCache(Options{TTL: time.Minute})
	calls := 0

	for i := 0; i < 3; i++ {
		data, err := qc.Fetch(context.Background(), "k", countingFetch(&calls, "v1"))
		require.NoError(t, err)
		assert.Equal(t, "v1", string(data))
	}
	assert.Equal(t, 1, calls, "fresh entry must be reused without refetching")
}

func TestFetchRefetchesAfterTTL(t *testing.T) {
	qc := NewQueryCache(Options{TTL: time.Minute})
	now := time.Now()
	qc.now = func() time.Time { return now }
	calls := 0

	_, err := qc.Fetch(context.Background(), "k", countingFetch(&calls, "v1"))
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = qc.Fetch(context.Background(), "k", countingFetch(&calls, "v2"))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	now = now.Add(31 * time.Second)
	data, err := qc.Fetch(context.Background(), "k", countingFetch(&calls, "v2"))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "v2", string(data))
}

func TestZeroTTLNeverExpires(t *testing.T) {
	qc := NewQueryCache(Options{})
	now := time.Now()
	qc.now = func() time.Time { return now }
	calls := 0

	_, err := qc.Fetch(context.Background(), "k", countingFetch(&calls, "v1"))
	require.NoError(t, err)

	now = now.Add(24 * time.Hour)
	_, err = qc.Fetch(context.Background(), "k", countingFetch(&calls, "v1"))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRevalidateOnReuse(t *testing.T) {
	qc := NewQueryCache(Options{TTL: time.Minute, RevalidateOnReuse: true})
	calls := 0

	for i := 0; i < 3; i++ {
		_, err := qc.Fetch(context.Background(), "k", countingFetch(&calls, "v"))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls, "revalidation policy must refetch on every read")
}

func TestInvalidateAndClear(t *testing.T) {
	qc := NewQueryCache(Options{TTL: time.Minute})
	callsA, callsB := 0, 0

	qc.Fetch(context.Background(), "a", countingFetch(&callsA, "va"))
	qc.Fetch(context.Background(), "b", countingFetch(&callsB, "vb"))

	qc.Invalidate("a")
	qc.Fetch(context.Background(), "a", countingFetch(&callsA, "va"))
	qc.Fetch(context.Background(), "b", countingFetch(&callsB, "vb"))
	assert.Equal(t, 2, callsA)
	assert.Equal(t, 1, callsB)

	qc.Clear()
	qc.Fetch(context.Background(), "a", countingFetch(&callsA, "va"))
	qc.Fetch(context.Background(), "b", countingFetch(&callsB, "vb"))
	assert.Equal(t, 3, callsA)
	assert.Equal(t, 2, callsB)
}

func TestFetchErrorIsNotCached(t *testing.T) {
	qc := NewQueryCache(Options{TTL: time.Minute})
	calls := 0

	_, err := qc.Fetch(context.Background(), "k", func(context.Context) ([]byte, error) {
		calls++
		return nil, errors.New("boom")
	})
	require.Error(t, err)

	data, err := qc.Fetch(context.Background(), "k", countingFetch(&calls, "ok"))
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
	assert.Equal(t, 2, calls)
}
