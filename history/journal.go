package history

// Journal holds whole-value snapshots of the aggregate that contains it.
//
// An aggregate declares a Journal of its own type and exposes it through
// HistoryJournal; the *Self functions then implement the Transaction
// contract on the aggregate with the same ordering rules as Stack:
//
//	type Form struct {
//		Name    string
//		journal history.Journal[Form]
//	}
//
//	func (f *Form) HistoryJournal() *history.Journal[Form] { return &f.journal }
//	func (f *Form) Begin()                                 { history.BeginSelf(f) }
//	func (f *Form) Commit() error                          { return history.CommitSelf(f) }
//
// histgen writes these methods for you. The zero value is an empty journal.
type Journal[T any] struct {
	log snapshotLog[T]
}

// Len returns the number of pending snapshots.
func (j *Journal[T]) Len() int {
	return j.log.len()
}

// Embedder is satisfied by pointers to aggregates that carry a Journal.
type Embedder[T any] interface {
	*T
	HistoryJournal() *Journal[T]
}

// BeginSelf records a snapshot of *self. The stored snapshot never carries
// a journal of its own.
func BeginSelf[T any, P Embedder[T]](self P) {
	snap := cloneValue(*self)
	*P(&snap).HistoryJournal() = Journal[T]{}
	self.HistoryJournal().log.push(snap)
}

// CommitSelf discards the oldest pending snapshot of self.
func CommitSelf[T any, P Embedder[T]](self P) error {
	if !self.HistoryJournal().log.dropOldest() {
		return notStarted()
	}
	return nil
}

// RevertSelf restores the newest pending snapshot into *self, keeping the
// remaining journal.
func RevertSelf[T any, P Embedder[T]](self P) error {
	j := self.HistoryJournal()
	prev, ok := j.log.popNewest()
	if !ok {
		return notStarted()
	}
	restore(self, prev, *j)
	return nil
}

// CommitAllSelf discards every pending snapshot of self.
func CommitAllSelf[T any, P Embedder[T]](self P) error {
	j := self.HistoryJournal()
	if j.log.len() == 0 {
		return notStarted()
	}
	j.log.reset()
	return nil
}

// RevertAllSelf restores the oldest pending snapshot into *self and empties
// the journal.
func RevertAllSelf[T any, P Embedder[T]](self P) error {
	j := self.HistoryJournal()
	first, ok := j.log.oldest()
	if !ok {
		return notStarted()
	}
	restore(self, first, Journal[T]{})
	return nil
}

// ClearSelf forgets every pending snapshot of self.
func ClearSelf[T any, P Embedder[T]](self P) {
	self.HistoryJournal().log.reset()
}

// LenSelf returns the number of pending snapshots of self.
func LenSelf[T any, P Embedder[T]](self P) int {
	return self.HistoryJournal().log.len()
}

func restore[T any, P Embedder[T]](self P, snap T, keep Journal[T]) {
	*self = snap
	*self.HistoryJournal() = keep
}
