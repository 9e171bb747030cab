package history

// Cloner is implemented by values that need a deep copy to produce an
// independent snapshot. Clone must use a value receiver so that it is
// visible on T itself.
type Cloner[T any] interface {
	Clone() T
}

// CloneFunc duplicates a value for storage in the history.
type CloneFunc[T any] func(T) T

// cloneValue duplicates v using Cloner when available. Without it a plain
// assignment is used, which only shares state the value already points to.
func cloneValue[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}
