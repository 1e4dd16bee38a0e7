package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-workers/internal/common/config"
)

func TestRedisClient_Ping(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	c := NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer c.Close()

	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, 10, c.Client.Options().PoolSize)

	addr := mr.Addr()
	mr.Close()
	err = c.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), addr)
}

func TestRedisClient_PoolSizeFromConfig(t *testing.T) {
	c := NewRedis(config.RedisConfig{Address: "localhost:0", PoolSize: 25})
	defer c.Close()

	assert.Equal(t, 25, c.Client.Options().PoolSize)
	assert.Equal(t, 5, c.Client.Options().MinIdleConns)
}
