package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/levelance/pkg/adapters/memory"
	"github.com/aretw0/levelance/pkg/ports"
)

func TestMemoryCache_Contract(t *testing.T) {
	ports.RunResultCacheContract(t, memory.NewCache())
}

func TestMemoryCache_Isolation(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewCache()

	digits := []int{3, 0}
	require.NoError(t, cache.Put(ctx, "k", ports.Result{Output: "3.0", Digits: digits}))
	digits[0] = 9

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0}, got.Digits)
	assert.False(t, got.StoredAt.IsZero())

	got.Digits[1] = 7
	again, _ := cache.Get(ctx, "k")
	assert.Equal(t, []int{3, 0}, again.Digits)
	assert.Equal(t, 1, cache.Len())
}
