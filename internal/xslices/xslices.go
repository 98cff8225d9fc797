// Package xslices contains slice helpers missing from the standard
// library.
package xslices

// Filter returns a new slice holding the elements of s for which f
// returns true.
func Filter[T any, S ~[]T](s S, f func(T) bool) (r S) {
	r = make(S, 0, len(s))
	for _, v := range s {
		if f(v) {
			r = append(r, v)
		}
	}
	return r
}

// Map returns a new slice holding the result of f for each element of
// s.
func Map[T, R any](s []T, f func(T) R) []R {
	r := make([]R, 0, len(s))
	for _, v := range s {
		r = append(r, f(v))
	}
	return r
}
