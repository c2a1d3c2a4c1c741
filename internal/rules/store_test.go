package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	name  string
	value int
}

func (i item) Key() string { return i.name }

func TestStoreAppendIfAbsent(t *testing.T) {
	var s Store[item]
	require.NoError(t, s.Append(item{"a", 1}))
	require.NoError(t, s.Append(item{"b", 2}))

	err := s.Append(item{"a", 3})
	require.ErrorIs(t, err, ErrExists)

	assert.Equal(t, 2, s.Len())
	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, got.value, "failed append must not overwrite")
}

func TestStoreItemsIsCopy(t *testing.T) {
	var s Store[item]
	require.NoError(t, s.Append(item{"a", 1}))

	items := s.Items()
	items[0].value = 99
	assert.Equal(t, 1, s.At(0).value)
}

func TestStoreUpdateFunc(t *testing.T) {
	var s Store[item]
	for _, it := range []item{{"a", 1}, {"b", 2}, {"c", 3}} {
		require.NoError(t, s.Append(it))
	}

	n := s.UpdateFunc(func(it *item) bool {
		if it.value%2 == 1 {
			it.value *= 10
			return true
		}
		return false
	})
	assert.Equal(t, 2, n)
	assert.Equal(t, []item{{"a", 10}, {"b", 2}, {"c", 30}}, s.Items())
}

func TestStoreMoveToFront(t *testing.T) {
	var s Store[item]
	for _, it := range []item{{"a", 1}, {"b", 2}, {"c", 3}} {
		require.NoError(t, s.Append(it))
	}

	s.MoveToFront(2)
	assert.Equal(t, []string{"c", "b", "a"}, keys(s.Items()))

	s.MoveToFront(0)
	s.MoveToFront(7)
	assert.Equal(t, []string{"c", "b", "a"}, keys(s.Items()))
}

func TestStoreDrain(t *testing.T) {
	var s Store[item]
	require.NoError(t, s.Append(item{"a", 1}))
	require.NoError(t, s.Append(item{"b", 2}))

	var seen []string
	s.Drain(func(it item) { seen = append(seen, it.name) })

	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Zero(t, s.Len())
	require.NoError(t, s.Append(item{"a", 1}), "drained store is reusable")
}

func keys[T Keyed](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key()
	}
	return out
}
