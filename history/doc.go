// Package history provides a versioned value container with nested
// transactions.
//
// Every mutation is preceded by a snapshot of the prior value. A pending
// snapshot is later resolved in one of two ways:
//   - Commit discards it and keeps the mutation
//   - Revert restores it and drops the mutation
//
// # Stack
//
// Stack wraps any value and owns its history:
//
//	s := history.New(100)
//	*s.Mut() = 300 // records a snapshot of 100
//	s.Revert()     // s.Get() == 100
//
// Mut, Update and Edit grant write access only after recording a snapshot,
// so each write is itself an open transaction.
//
// # Ordering
//
// Commit removes the OLDEST pending snapshot: repeated commits confirm
// mutations in the order they were made. Revert removes the NEWEST pending
// snapshot: repeated reverts undo the most recent mutation first.
// CommitAll keeps the current value and drops the history; RevertAll goes
// straight back to the oldest snapshot.
//
// # Embedded journals
//
// An aggregate can snapshot itself by carrying a Journal of its own type and
// delegating to BeginSelf, CommitSelf, RevertSelf and friends. The histgen
// command generates those methods.
//
// # Cloning
//
// Snapshots must be independent copies. Values implementing Cloner are
// copied with Clone; NewFunc accepts an explicit CloneFunc. Otherwise plain
// assignment is used.
//
// # Errors
//
// Commit, Revert, CommitAll and RevertAll return ErrTransactionNotStarted
// when nothing is pending. A failed call leaves the container unchanged.
package history
