// Package filter provides nullish and truthy predicates for use with slice
// helpers, and compaction built on them.
package filter

// NotNil reports whether p is a non-nil pointer.
func NotNil[T any](p *T) bool {
	return p != nil
}

// Truthy reports whether v is neither its type's zero value nor NaN.
func Truthy[T comparable](v T) bool {
	var zero T
	// v != v only holds for NaN.
	return v == v && v != zero
}

// Compact returns the truthy elements of items in order.
func Compact[T comparable](items []T) []T {
	return Where(items, Truthy[T])
}

// CompactPtrs returns the non-nil elements of items in order.
func CompactPtrs[T any](items []*T) []*T {
	return Where(items, NotNil[T])
}

// Where returns the elements of items for which keep returns true, in order.
// The result is never nil.
func Where[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
