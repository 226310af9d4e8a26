package journal

// opKind tags which Journal mutator produced a history entry, so Revert
// knows how to exactly undo it.
type opKind uint8

const (
	opInsertion opKind = iota
	opDeletion
	opSubstitution
)

// historyOp records enough to invert one recorded operation: the bytes
// removed (for a deletion or substitution) or inserted (for an insertion
// or substitution), and the range it applied to.
type historyOp struct {
	kind     opKind
	pos      int
	length   int    // length of the range the op touched in journaled space at apply time
	inserted []byte // bytes the op inserted, if any
	removed  []byte // bytes the op removed, if any
}

// Revertable wraps a Journal with an operation-history stack so the last
// recorded edit can be undone exactly (distilled spec §4.4), the
// mechanism suffix/prefix extension uses to back out of a rejected
// candidate path.
type Revertable struct {
	j       *Journal
	history []historyOp
}

// NewRevertable wraps j for revertable editing. j must not be mutated
// except through the returned Revertable.
func NewRevertable(j *Journal) *Revertable {
	return &Revertable{j: j}
}

// Journal returns the underlying Journal for read-only use (Sequence,
// Len, At, Slice).
func (r *Revertable) Journal() *Journal { return r.j }

// RecordInsertion inserts seq at pos and pushes an undo record.
func (r *Revertable) RecordInsertion(pos int, seq []byte) error {
	if err := r.j.RecordInsertion(pos, seq); err != nil {
		return err
	}
	r.history = append(r.history, historyOp{kind: opInsertion, pos: pos, length: len(seq), inserted: append([]byte(nil), seq...)})
	return nil
}

// RecordDeletion deletes [first, last) and pushes an undo record.
func (r *Revertable) RecordDeletion(first, last int) error {
	removed := r.j.Slice(first, last)
	if err := r.j.RecordDeletion(first, last); err != nil {
		return err
	}
	r.history = append(r.history, historyOp{kind: opDeletion, pos: first, length: last - first, removed: removed})
	return nil
}

// RecordSubstitution replaces [pos, pos+len(seq)) with seq and pushes an
// undo record.
func (r *Revertable) RecordSubstitution(pos int, seq []byte) error {
	removed := r.j.Slice(pos, pos+len(seq))
	if err := r.j.RecordSubstitution(pos, seq); err != nil {
		return err
	}
	r.history = append(r.history, historyOp{
		kind:     opSubstitution,
		pos:      pos,
		length:   len(seq),
		inserted: append([]byte(nil), seq...),
		removed:  removed,
	})
	return nil
}

// Revert undoes the most recently recorded operation. Returns false if
// the history is empty.
func (r *Revertable) Revert() bool {
	if len(r.history) == 0 {
		return false
	}
	op := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	switch op.kind {
	case opInsertion:
		_ = r.j.RecordDeletion(op.pos, op.pos+op.length)
	case opDeletion:
		_ = r.j.RecordInsertion(op.pos, op.removed)
	case opSubstitution:
		_ = r.j.RecordDeletion(op.pos, op.pos+op.length)
		_ = r.j.RecordInsertion(op.pos, op.removed)
	}
	return true
}

// Depth returns the number of operations still on the undo stack.
func (r *Revertable) Depth() int { return len(r.history) }
