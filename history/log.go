package history

// snapshotLog is the ordered history shared by Stack and Journal.
// Entries are kept oldest first and are never reordered.
type snapshotLog[T any] struct {
	entries []T
}

func (l *snapshotLog[T]) push(v T) {
	l.entries = append(l.entries, v)
}

// dropOldest removes the first entry. Used by commit.
func (l *snapshotLog[T]) dropOldest() bool {
	if len(l.entries) == 0 {
		return false
	}
	var zero T
	l.entries[0] = zero
	l.entries = l.entries[1:]
	if len(l.entries) == 0 {
		l.entries = nil
	}
	return true
}

// popNewest removes and returns the last entry. Used by revert.
func (l *snapshotLog[T]) popNewest() (T, bool) {
	var zero T
	n := len(l.entries)
	if n == 0 {
		return zero, false
	}
	v := l.entries[n-1]
	l.entries[n-1] = zero
	l.entries = l.entries[:n-1]
	return v, true
}

// oldest returns the first entry without removing it.
func (l *snapshotLog[T]) oldest() (T, bool) {
	if len(l.entries) == 0 {
		var zero T
		return zero, false
	}
	return l.entries[0], true
}

func (l *snapshotLog[T]) reset() {
	clear(l.entries)
	l.entries = nil
}

func (l *snapshotLog[T]) len() int {
	return len(l.entries)
}

// copyTo returns the entries, oldest first, each passed through dup.
func (l *snapshotLog[T]) copyTo(dup func(T) T) []T {
	out := make([]T, len(l.entries))
	for i, v := range l.entries {
		out[i] = dup(v)
	}
	return out
}
