package common

// OrDefault returns v, or fallback when v is the zero value of its type.
func OrDefault[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}
