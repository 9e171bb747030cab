package generator

import (
	"errors"
	"fmt"
)

// Errors returned by the generator.
var (
	// ErrNoTargets indicates no type in the file carries a journal.
	ErrNoTargets = errors.New("no aggregate with a history journal found")

	// ErrNoHistoryImport indicates the file does not import the history package.
	ErrNoHistoryImport = errors.New("history package not imported")
)

// DefinitionError reports an aggregate that cannot carry generated
// transaction methods. It is a generation-time failure: no code is written.
type DefinitionError struct {
	// Type is the aggregate name.
	Type string
	// Pos is the file:line:column of the declaration, if known.
	Pos string
	// Reason describes the problem.
	Reason string
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	if e.Pos != "" {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Type, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Reason)
}
