// Package typeid provides the stable, Unicode-aware ordering used
// wherever the core needs a deterministic sequence of generated type-id
// or name strings (spec §5, §9 "Deterministic ordering"). Plain byte-wise
// sort.Strings is sufficient for the ASCII identifiers the grammar in
// §4.1 produces, but record and function names lowered from source are
// arbitrary UTF-8, so ordering goes through golang.org/x/text/collate to
// stay locale-independent rather than falling back to Go's default
// byte-wise string comparison for non-ASCII identifiers.
package typeid

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var collator = collate.New(language.Und, collate.Force)

// SortStrings sorts ss in place using a locale-independent collation
// order, so iteration over generated-function names and type ids is
// byte-reproducible across runs regardless of the host locale.
func SortStrings(ss []string) {
	collator.SortStrings(ss)
}

// Sorted returns a sorted copy of the keys of m.
func Sorted[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	SortStrings(out)
	return out
}

// SortByKey sorts items in place by the string returned by key, breaking
// ties (equal keys) by stable order of appearance.
func SortByKey[T any](items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if a == b {
			return false
		}
		ss := []string{a, b}
		SortStrings(ss)
		return ss[0] == a
	})
}
