package redis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/cache/redis"
)

func TestNopCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var c redis.NopCache

	var out string
	assert.ErrorIs(t, c.Get(ctx, "k", &out), redis.ErrCacheMiss)
	assert.NoError(t, c.Set(ctx, "k", "v", 0))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}
