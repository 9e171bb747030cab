package history

import "errors"

// ErrorKind identifies why a transaction operation failed.
type ErrorKind int

const (
	// TransactionNotStarted indicates a commit or revert was requested
	// while no snapshot was pending.
	TransactionNotStarted ErrorKind = iota
)

// String returns the human-readable message for the kind.
func (k ErrorKind) String() string {
	switch k {
	case TransactionNotStarted:
		return "Transaction not started"
	default:
		return "unknown transaction error"
	}
}

// TransactionError is returned by Commit, Revert, CommitAll and RevertAll.
// A failed operation never modifies the container.
type TransactionError struct {
	Kind ErrorKind
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	return e.Kind.String()
}

// Is reports whether target is a *TransactionError of the same kind.
func (e *TransactionError) Is(target error) bool {
	var te *TransactionError
	if !errors.As(target, &te) {
		return false
	}
	return te.Kind == e.Kind
}

// ErrTransactionNotStarted is the error returned when the history is empty.
var ErrTransactionNotStarted error = &TransactionError{Kind: TransactionNotStarted}

func notStarted() error {
	return &TransactionError{Kind: TransactionNotStarted}
}
