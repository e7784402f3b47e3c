package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/levelance/pkg/domain"
)

// RunResultCacheContract runs a suite of tests to verify that a ResultCache
// implementation adheres to the defined interface contract.
func RunResultCacheContract(t *testing.T, cache ResultCache) {
	ctx := context.Background()
	suffix := time.Now().Format("20060102150405")

	t.Run("Put and Get", func(t *testing.T) {
		key := CacheKey(domain.ModeDelimited, "LPSAAA.BBBLP-"+suffix)
		want := Result{Output: "3.0", Digits: []int{3, 0}, TotalLength: 11}

		require.NoError(t, cache.Put(ctx, key, want), "Put should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, want.Output, got.Output)
		assert.Equal(t, want.Digits, got.Digits)
		assert.Equal(t, want.TotalLength, got.TotalLength)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+suffix)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Put Overwrites", func(t *testing.T) {
		key := "overwrite-" + suffix
		require.NoError(t, cache.Put(ctx, key, Result{Output: "1"}))
		require.NoError(t, cache.Put(ctx, key, Result{Output: "2"}))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "2", got.Output)
	})

	t.Run("Modes Are Separate", func(t *testing.T) {
		input := "LPSAAALP-" + suffix
		require.NoError(t, cache.Put(ctx, CacheKey(domain.ModeDelimited, input), Result{Output: "3"}))

		_, err := cache.Get(ctx, CacheKey(domain.ModeStrict, input))
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})
}
