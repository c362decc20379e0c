package utils

// ToPointer returns a pointer to the given value.
func ToPointer[T any](value T) *T {
	return &value
}

// ContainsString checks if a slice of strings contains a specific string.
func ContainsString(slice []string, str string) bool {
	for _, item := range slice {
		if item == str {
			return true
		}
	}
	return false
}
