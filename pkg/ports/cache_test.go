package ports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/levelance/pkg/domain"
	"github.com/aretw0/levelance/pkg/ports"
)

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "strict:LPSAAALP", ports.CacheKey(domain.ModeStrict, "LPSAAALP"))
	assert.NotEqual(t,
		ports.CacheKey(domain.ModeStrict, "LPSAAALP"),
		ports.CacheKey(domain.ModeDelimited, "LPSAAALP"),
	)
}
