// Package filter narrows in-memory log and response sequences by an
// immutable selection value. Dimensions combine with AND; values inside a
// multi-choice dimension combine with OR.
package filter

// Predicate reports whether an item satisfies one filter dimension.
type Predicate[T any] func(T) bool

// Apply returns the items satisfying every predicate, in input order. The
// input slice is never modified; the result is always a fresh slice.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchAll(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

// Count returns how many items satisfy every predicate.
func Count[T any](items []T, preds ...Predicate[T]) int {
	n := 0
	for _, item := range items {
		if matchAll(item, preds) {
			n++
		}
	}
	return n
}

func matchAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if !p(item) {
			return false
		}
	}
	return true
}
