package history

// Stack owns a current value and the snapshots taken before each pending
// mutation.
//
// Commit confirms the oldest pending mutation first; Revert undoes the
// newest one first. Stack is NOT safe for concurrent use. Callers that share
// a Stack must guard every call with their own lock.
type Stack[T any] struct {
	current T
	history snapshotLog[T]
	clone   CloneFunc[T]
}

// New creates a stack holding initial and an empty history.
// Snapshots are produced with T's Clone method when it implements Cloner,
// otherwise by plain assignment.
func New[T any](initial T) *Stack[T] {
	return &Stack[T]{current: initial}
}

// NewFunc creates a stack that duplicates values with clone. Use it for
// values holding maps, slices or pointers that cannot implement Cloner.
func NewFunc[T any](initial T, clone CloneFunc[T]) *Stack[T] {
	return &Stack[T]{current: initial, clone: clone}
}

// dup produces an independent copy of v.
func (s *Stack[T]) dup(v T) T {
	if s.clone != nil {
		return s.clone(v)
	}
	return cloneValue(v)
}

// Get returns the current value. It never records a snapshot.
func (s *Stack[T]) Get() T {
	return s.current
}

// Mut begins a transaction and returns a pointer to the current value.
// Every call records one snapshot.
func (s *Stack[T]) Mut() *T {
	s.Begin()
	return &s.current
}

// Update begins a transaction and applies fn to the current value.
func (s *Stack[T]) Update(fn func(*T)) {
	fn(s.Mut())
}

// Begin records a snapshot of the current value.
func (s *Stack[T]) Begin() {
	s.history.push(s.dup(s.current))
}

// Commit discards the oldest pending snapshot, keeping the current value.
func (s *Stack[T]) Commit() error {
	if !s.history.dropOldest() {
		return notStarted()
	}
	return nil
}

// Revert restores the newest pending snapshot as the current value.
func (s *Stack[T]) Revert() error {
	prev, ok := s.history.popNewest()
	if !ok {
		return notStarted()
	}
	s.current = prev
	return nil
}

// CommitAll discards every pending snapshot, keeping the current value.
func (s *Stack[T]) CommitAll() error {
	if s.history.len() == 0 {
		return notStarted()
	}
	s.history.reset()
	return nil
}

// RevertAll restores the oldest pending snapshot and discards the rest.
func (s *Stack[T]) RevertAll() error {
	first, ok := s.history.oldest()
	if !ok {
		return notStarted()
	}
	s.current = first
	s.history.reset()
	return nil
}

// Clear forgets every pending snapshot without touching the current value.
func (s *Stack[T]) Clear() {
	s.history.reset()
}

// Changed returns true if at least one snapshot is pending.
func (s *Stack[T]) Changed() bool {
	return s.history.len() > 0
}

// Len returns the number of pending snapshots.
func (s *Stack[T]) Len() int {
	return s.history.len()
}

// Snapshots returns copies of the pending snapshots, oldest first.
func (s *Stack[T]) Snapshots() []T {
	return s.history.copyTo(s.dup)
}
