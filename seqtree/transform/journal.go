package transform

import (
	"github.com/grailbio/jst/journal"
	"github.com/grailbio/jst/rangeindex"
	"github.com/grailbio/jst/variant"
)

func cloneJournal(j *journal.Journal) *journal.Journal {
	return j.Clone()
}

// applyVariant records v's edit onto j at journaled position pos, the
// mechanism by which descending on alt updates the node's window
// (distilled spec §4.6's labelled transformer: "descending on alt
// records the variant").
func applyVariant(j *journal.Journal, pos rangeindex.PosType, v variant.Covered) {
	switch {
	case v.DeletionLength() == 0:
		_ = j.RecordInsertion(int(pos), v.Insertion())
	case len(v.Insertion()) == 0:
		_ = j.RecordDeletion(int(pos), int(pos)+int(v.DeletionLength()))
	default:
		_ = j.RecordDeletion(int(pos), int(pos)+int(v.DeletionLength()))
		_ = j.RecordInsertion(int(pos), v.Insertion())
	}
}
