package sliceutils

// Head returns at most the first n elements of slice. A negative n yields an empty slice.
func Head[T any](slice []T, n int) []T {
	if n <= 0 || len(slice) == 0 {
		return slice[:0]
	}
	return slice[:min(n, len(slice))]
}
