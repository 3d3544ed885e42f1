package utils

// GetNextEnum returns the value after current, wrapping to 0 after max.
func GetNextEnum[T ~int](current T, max T) T {
	next := current + 1
	if next > max {
		return 0
	}
	return next
}

// GetPrevEnum returns the value before current, wrapping to max before 0.
func GetPrevEnum[T ~int](current T, max T) T {
	prev := current - 1
	if prev < 0 {
		return max
	}
	return prev
}
