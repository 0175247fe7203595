package ttlstore_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vearutop/ttlstore"
)

func TestNewBoundedMap_invalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		m, err := ttlstore.NewBoundedMap[int](capacity, ttlstore.EvictOldest)
		assert.Nil(t, m)
		assert.ErrorIs(t, err, ttlstore.ErrInvalidCapacity)
	}
}

func TestBoundedMap_Insert_capacity(t *testing.T) {
	m, err := ttlstore.NewBoundedMap[int](10, ttlstore.EvictOldest)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		evictedKey, evicted := m.Insert(strconv.Itoa(i), i)
		assert.LessOrEqual(t, m.Len(), 10)

		if i < 10 {
			assert.False(t, evicted)
			assert.Empty(t, evictedKey)
		} else {
			// Earliest still present key goes first.
			assert.True(t, evicted)
			assert.Equal(t, strconv.Itoa(i-10), evictedKey)
		}
	}

	assert.Equal(t, 10, m.Len())
	assert.Equal(t, 10, m.Capacity())
	assert.Equal(t, []string{"90", "91", "92", "93", "94", "95", "96", "97", "98", "99"}, m.Keys())
}

func TestBoundedMap_Insert_replace(t *testing.T) {
	m, err := ttlstore.NewBoundedMap[string](2, ttlstore.EvictOldest)
	require.NoError(t, err)

	m.Insert("a", "1")
	m.Insert("b", "2")

	_, evicted := m.Insert("a", "3")
	assert.False(t, evicted)
	assert.Equal(t, 2, m.Len())

	v, found := m.Lookup("a")
	assert.True(t, found)
	assert.Equal(t, "3", v)

	// Replacing write refreshes position, so "b" is the oldest now.
	evictedKey, evicted := m.Insert("c", "4")
	assert.True(t, evicted)
	assert.Equal(t, "b", evictedKey)
}

func TestBoundedMap_Lookup_policy(t *testing.T) {
	for _, tc := range []struct {
		policy  ttlstore.EvictionPolicy
		evicted string
	}{
		{policy: ttlstore.EvictOldest, evicted: "a"},
		{policy: ttlstore.EvictLeastRecentlyUsed, evicted: "b"},
	} {
		tc := tc

		t.Run(tc.policy.String(), func(t *testing.T) {
			m, err := ttlstore.NewBoundedMap[int](3, tc.policy)
			require.NoError(t, err)

			m.Insert("a", 1)
			m.Insert("b", 2)
			m.Insert("c", 3)

			v, found := m.Lookup("a")
			assert.True(t, found)
			assert.Equal(t, 1, v)

			evictedKey, evicted := m.Insert("d", 4)
			assert.True(t, evicted)
			assert.Equal(t, tc.evicted, evictedKey)
		})
	}
}

func TestBoundedMap_Remove(t *testing.T) {
	m, err := ttlstore.NewBoundedMap[int](3, ttlstore.EvictOldest)
	require.NoError(t, err)

	m.Insert("a", 1)

	v, found := m.Remove("a")
	assert.True(t, found)
	assert.Equal(t, 1, v)

	v, found = m.Remove("a")
	assert.False(t, found)
	assert.Equal(t, 0, v)
	assert.True(t, m.IsEmpty())
}

func TestBoundedMap_Filter(t *testing.T) {
	m, err := ttlstore.NewBoundedMap[int](10, ttlstore.EvictOldest)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		m.Insert(strconv.Itoa(i), i)
	}

	removed := m.Filter(func(key string, v int) bool {
		return v%2 == 0
	})

	assert.Equal(t, 5, removed)
	assert.Equal(t, []string{"0", "2", "4", "6", "8"}, m.Keys())

	_, found := m.Lookup("3")
	assert.False(t, found)
}

func TestBoundedMap_Update(t *testing.T) {
	m, err := ttlstore.NewBoundedMap[int](3, ttlstore.EvictOldest)
	require.NoError(t, err)

	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Insert("c", 3)

	m.Update(func(key string, v int) int {
		return v * 10
	})

	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())

	var values []int

	m.Range(func(key string, v int) bool {
		values = append(values, v)

		return true
	})

	assert.Equal(t, []int{10, 20, 30}, values)
}

func TestBoundedMap_RemoveAll(t *testing.T) {
	m, err := ttlstore.NewBoundedMap[int](3, ttlstore.EvictLeastRecentlyUsed)
	require.NoError(t, err)

	m.Insert("a", 1)
	m.Insert("b", 2)
	assert.False(t, m.IsEmpty())

	m.RemoveAll()
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, m.Len())
}
