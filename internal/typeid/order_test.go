package typeid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortStringsDeterministic(t *testing.T) {
	in := []string{"rec:Zebra", "rec:apple", "any", "<a|b>"}
	first := append([]string(nil), in...)
	second := append([]string(nil), in...)

	SortStrings(first)
	SortStrings(second)
	require.Equal(t, first, second)
	require.Len(t, first, len(in))
}

func TestSortedIsOrderIndependentOfMapIteration(t *testing.T) {
	m := map[string]int{"c": 1, "a": 2, "b": 3}
	first := Sorted(m)
	second := Sorted(m)
	require.Equal(t, first, second)
	require.Equal(t, []string{"a", "b", "c"}, first)
}

func TestSortByKeyStableOnTies(t *testing.T) {
	type item struct {
		id  string
		tag int
	}
	items := []item{{"b", 1}, {"a", 1}, {"b", 2}, {"a", 2}}
	SortByKey(items, func(i item) string { return i.id })
	require.Equal(t, []item{{"a", 1}, {"a", 2}, {"b", 1}, {"b", 2}}, items)
}
