package history

// Transaction is the contract shared by Stack and by aggregates that carry
// their own Journal.
type Transaction interface {
	// Begin records a snapshot.
	Begin()

	// Commit discards the oldest pending snapshot.
	Commit() error

	// Revert restores the newest pending snapshot.
	Revert() error

	// Len returns the number of pending snapshots.
	Len() int
}

// Batch extends Transaction with operations over the whole history.
type Batch interface {
	Transaction

	// CommitAll discards every pending snapshot.
	CommitAll() error

	// RevertAll restores the oldest pending snapshot and discards the rest.
	RevertAll() error

	// Clear forgets every pending snapshot.
	Clear()

	// Changed returns true if a snapshot is pending.
	Changed() bool
}

var (
	_ Batch = (*Stack[int])(nil)
)
