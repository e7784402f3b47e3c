package ports

import (
	"context"
	"time"

	"github.com/aretw0/levelance/pkg/domain"
)

// Result is the cacheable outcome of a successful decode.
type Result struct {
	Output      string    `json:"output"`
	Digits      []int     `json:"digits"`
	TotalLength int       `json:"total_length"`
	StoredAt    time.Time `json:"stored_at"`
}

// ResultCache stores decode results by key.
// Implementations must be safe for concurrent use.
type ResultCache interface {
	// Get returns domain.ErrCacheMiss if the key is not stored.
	Get(ctx context.Context, key string) (Result, error)

	// Put stores the result for key, replacing any previous value.
	Put(ctx context.Context, key string, result Result) error
}

// CacheKey builds the key under which a decode of input in mode is stored.
func CacheKey(mode domain.Mode, input string) string {
	return string(mode) + ":" + input
}
