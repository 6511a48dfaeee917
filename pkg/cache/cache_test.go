package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory(t *testing.T) {
	t.Run("Expiration", func(t *testing.T) {
		key := "foo"
		val := []byte("bar")
		c := New(nil, Options{})
		c.Set(key, val, 10*time.Millisecond)
		actual, ok := c.Get(key)
		assert.True(t, ok)
		assert.Equal(t, val, actual)
		time.Sleep(11 * time.Millisecond)
		_, ok = c.Get(key)
		assert.False(t, ok)
	})

	t.Run("Eviction", func(t *testing.T) {
		c := NewInMemory(2, time.Hour)
		for i := 0; i < 3; i++ {
			c.Set(fmt.Sprintf("key-%d", i), []byte{byte(i)}, time.Hour)
		}
		assert.Equal(t, 2, c.Len())
		_, ok := c.Get("key-0")
		assert.False(t, ok)
		v, ok := c.Get("key-2")
		assert.True(t, ok)
		assert.Equal(t, []byte{2}, v)
	})

	t.Run("Clear", func(t *testing.T) {
		c := NewInMemory(0, 0)
		c.Set("foo", []byte("bar"), time.Hour)
		c.Clear("foo")
		_, ok := c.Get("foo")
		assert.False(t, ok)
		assert.Equal(t, "memory", c.Kind())
	})
}

func TestRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("a redis is required for this test: test skipped due to the use of --short flag")
	}

	opts, err := redis.ParseURL("redis://localhost:6379/0")
	require.NoError(t, err)
	client := redis.NewClient(opts)
	if _, err := NewRedis(client).CheckStatus(context.Background()); err != nil {
		t.Skipf("redis is not available: %s", err)
	}

	c := New(client, Options{})
	c.Set("foo", []byte("bar"), 100*time.Millisecond)
	actual, ok := c.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, []byte("bar"), actual)
	c.Clear("foo")
	_, ok = c.Get("foo")
	assert.False(t, ok)
	assert.Equal(t, "redis", c.Kind())
}
