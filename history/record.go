package history

import (
	"encoding/json"
	"fmt"
)

// Record is the structured form of a Stack: the current value and the
// pending snapshots, oldest first.
type Record[T any] struct {
	Current T   `json:"current" yaml:"current" toml:"current"`
	History []T `json:"history" yaml:"history" toml:"history"`
}

// Record returns an independent copy of the stack's state.
func (s *Stack[T]) Record() Record[T] {
	return Record[T]{
		Current: s.dup(s.current),
		History: s.history.copyTo(s.dup),
	}
}

// Restore replaces the current value and history with copies of rec.
// A nil rec.History leaves the stack with no pending snapshots.
func (s *Stack[T]) Restore(rec Record[T]) {
	s.current = s.dup(rec.Current)
	s.history.reset()
	for _, v := range rec.History {
		s.history.push(s.dup(v))
	}
}

// MarshalJSON encodes the stack as {"current":...,"history":[...]}.
func (s *Stack[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Record())
}

// UnmarshalJSON decodes a document produced by MarshalJSON. A missing
// history field yields an empty history.
func (s *Stack[T]) UnmarshalJSON(data []byte) error {
	var rec Record[T]
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decode history stack: %w", err)
	}
	s.Restore(rec)
	return nil
}
