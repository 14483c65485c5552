package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	t.Run("MissOnEmpty", func(t *testing.T) {
		_, ok, err := m.Get(ctx, "missing")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("HitBeforeExpiry", func(t *testing.T) {
		require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))
		val, ok, err := m.Get(ctx, "k")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("v"), val)
	})

	t.Run("ExpiredEntryIsEvicted", func(t *testing.T) {
		require.NoError(t, m.Set(ctx, "old", []byte("v"), time.Second))
		now = now.Add(2 * time.Second)
		_, ok, err := m.Get(ctx, "old")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ZeroTTLNeverExpires", func(t *testing.T) {
		require.NoError(t, m.Set(ctx, "forever", []byte("v"), 0))
		now = now.Add(24 * time.Hour)
		_, ok, _ := m.Get(ctx, "forever")
		assert.True(t, ok)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, m.Delete(ctx, "forever"))
		_, ok, _ := m.Get(ctx, "forever")
		assert.False(t, ok)
	})
}

func TestMemory_SweepsExpiredOnWrite(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	for _, k := range []string{"page:0", "page:1", "page:2"} {
		require.NoError(t, m.Set(ctx, k, []byte("v"), time.Second))
	}
	require.Equal(t, 3, m.Len())

	now = now.Add(2 * time.Minute)
	require.NoError(t, m.Set(ctx, "record:7", []byte("v"), time.Hour))
	assert.Equal(t, 1, m.Len(), "expired keys are dropped without being read")
}

func TestMemory_Bounded(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryWithLimit(2)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, m.Set(ctx, "a", []byte("3"), time.Hour))
	assert.Equal(t, 2, m.Len(), "overwriting does not evict")

	require.NoError(t, m.Set(ctx, "c", []byte("4"), 0))
	assert.Equal(t, 2, m.Len())

	_, ok, _ := m.Get(ctx, "b")
	assert.False(t, ok, "the entry expiring first is evicted")
	val, ok, _ := m.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, []byte("3"), val)
	_, ok, _ = m.Get(ctx, "c")
	assert.True(t, ok)
}

func TestRedis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedis(client, "test:")

	require.NoError(t, c.Set(ctx, "page", []byte(`{"total":1}`), time.Minute))
	assert.True(t, mr.Exists("test:page"))

	val, ok, err := c.Get(ctx, "page")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"total":1}`, string(val))

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "page")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	c, err := New(Config{Driver: DriverMemory, MaxEntries: 5})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)
	assert.Equal(t, 5, c.(*Memory).maxEntries)

	c, err = New(Config{Driver: DriverRedis, RedisAddr: "localhost:6379"})
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, c)

	_, err = New(Config{Driver: "memcached"})
	assert.Error(t, err)
}
