package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	c := New(time.Minute)

	c.Set("catalog:regions", []string{"Lima"})
	v, ok := c.Get("catalog:regions")
	require.True(t, ok)
	assert.Equal(t, []string{"Lima"}, v)

	c.Delete("catalog:regions")
	_, ok = c.Get("catalog:regions")
	assert.False(t, ok)
}

func TestExpiration(t *testing.T) {
	c := New(time.Minute)
	c.SetWithTTL("k", 1, 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDeletePrefixAndClear(t *testing.T) {
	c := New(0)
	c.Set("catalog:regions", 1)
	c.Set("catalog:schools:3", 2)
	c.Set("other", 3)

	c.DeletePrefix("catalog:")
	_, ok := c.Get("catalog:schools:3")
	assert.False(t, ok)
	_, ok = c.Get("other")
	assert.True(t, ok)

	c.Clear()
	_, ok = c.Get("other")
	assert.False(t, ok)
}

func TestRemember(t *testing.T) {
	c := New(time.Minute)
	calls := 0
	load := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := Remember(c, "answer", load)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls)
}

func TestRememberDoesNotCacheErrors(t *testing.T) {
	c := New(time.Minute)
	_, err := Remember(c, "k", func() (string, error) { return "", errors.New("db down") })
	require.Error(t, err)

	_, ok := c.Get("k")
	assert.False(t, ok)
}
