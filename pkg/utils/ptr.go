package utils

func SafeDeref[T any](ptr *T) T {
	if ptr == nil {
		var zero T
		return zero
	}
	return *ptr
}

// NonEmptyPtr: пустая строка превращается в nil.
func NonEmptyPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
