package common

import "cmp"

// IsSingle reports whether s holds exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// Product multiplies the elements of s. An empty slice gives 1.
func Product[S ~[]E, E ~int](s S) E {
	p := E(1)
	for _, v := range s {
		p *= v
	}

	return p
}

// InRange reports lo <= v <= hi.
func InRange[T cmp.Ordered](lo, v, hi T) bool {
	return lo <= v && v <= hi
}
