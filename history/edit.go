package history

// Edit is a scoped write handle returned by Stack.Edit. Opening it records a
// snapshot; closing it neither commits nor reverts.
//
//	e := s.Edit()
//	defer e.Close()
//	e.Value().Name = "draft"
type Edit[T any] struct {
	stack  *Stack[T]
	closed bool
}

// Edit begins a transaction and returns a handle to the current value.
func (s *Stack[T]) Edit() *Edit[T] {
	s.Begin()
	return &Edit[T]{stack: s}
}

// Value returns a pointer to the stack's current value, or nil once the
// handle is closed.
func (e *Edit[T]) Value() *T {
	if e.closed {
		return nil
	}
	return &e.stack.current
}

// Close releases the handle. The recorded snapshot stays pending.
// Calling Close more than once is a no-op.
func (e *Edit[T]) Close() {
	e.closed = true
}
