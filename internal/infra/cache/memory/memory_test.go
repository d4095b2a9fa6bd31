package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetDel(t *testing.T) {
	c := New()
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), 60)
	v, ok := c.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, []byte("1"), v)

	c.Del(ctx, "a")
	_, ok = c.Get(ctx, "a")
	assert.False(t, ok)
}

func TestTTLExpiry(t *testing.T) {
	c := New()
	ctx := context.Background()

	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set(ctx, "a", []byte("1"), 10)
	_, ok := c.Get(ctx, "a")
	require.True(t, ok)

	now = now.Add(11 * time.Second)
	_, ok = c.Get(ctx, "a")
	assert.False(t, ok, "просроченный ключ — промах")
	assert.Zero(t, c.Len(), "пассивная эвикция удалила запись")
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c := New()
	ctx := context.Background()

	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set(ctx, "a", []byte("1"), 0)
	now = now.Add(24 * time.Hour)
	_, ok := c.Get(ctx, "a")
	assert.True(t, ok)
}

func TestDelPattern(t *testing.T) {
	c := New()
	ctx := context.Background()

	c.Set(ctx, "reports:aaa", []byte("1"), 60)
	c.Set(ctx, "reports:bbb", []byte("2"), 60)
	c.Set(ctx, "report:ccc", []byte("3"), 60)

	c.DelPattern(ctx, "reports:*")

	_, ok := c.Get(ctx, "reports:aaa")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "reports:bbb")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "report:ccc")
	assert.True(t, ok, "соседний неймспейс не задет")
}

func TestSetNX(t *testing.T) {
	c := New()
	ctx := context.Background()

	ok, err := c.SetNX(ctx, "jti:x", []byte("1"), 60)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX(ctx, "jti:x", []byte("1"), 60)
	require.NoError(t, err)
	assert.False(t, ok, "повторный SetNX по живому ключу")

	exists, err := c.Exists(ctx, "jti:x")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMatch(t *testing.T) {
	cases := []struct {
		pattern, key string
		want         bool
	}{
		{"reports:*", "reports:abc", true},
		{"reports:*", "report:abc", false},
		{"exact", "exact", true},
		{"exact", "exact2", false},
		{"a:*:c", "a:b:c", true},
		{"a:*:c", "a:b:d", false},
		{"*", "anything", true},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, Match(c.pattern, c.key), "pattern=%q key=%q", c.pattern, c.key)
	}
}
