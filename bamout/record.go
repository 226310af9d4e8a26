package bamout

import (
	"github.com/pkg/errors"

	"github.com/grailbio/hts/sam"

	"github.com/grailbio/jst/search"
)

// Record builds the sam.Record for one confirmed match (distilled spec
// §6's BAM output boundary): qname identifies the needle, seq is stored
// as the record's sequence (cmd/jst search passes the needle's own
// bytes), and the match's seek descriptor travels in the
// ad/rd/lo/ne aux tags rather than in CIGAR or POS, since a JST match
// position has no reference coordinate of its own to align against — the
// core is deliberately coordinate-free (distilled spec §5's resource
// policy).
func Record(qname string, seq []byte, m search.MatchPosition) (*sam.Record, error) {
	tags := TagsFor(m.Position, m.LabelOffset)
	aux := make([]sam.Aux, 0, 4)
	for _, t := range []struct {
		tag   sam.Tag
		value interface{}
	}{
		{sam.Tag{'a', 'd'}, tags.AD},
		{sam.Tag{'r', 'd'}, tags.RD},
		{sam.Tag{'l', 'o'}, tags.LO},
		{sam.Tag{'n', 'e'}, int(m.Errors)},
	} {
		a, err := sam.NewAux(t.tag, t.value)
		if err != nil {
			return nil, errors.Wrapf(err, "bamout: building tag %s", t.tag)
		}
		aux = append(aux, a)
	}

	qual := make([]byte, len(seq))
	for i := range qual {
		qual[i] = 0xff
	}
	cigar := sam.Cigar{sam.NewCigarOp(sam.CigarMatch, len(seq))}
	rec, err := sam.NewRecord(qname, nil, nil, -1, -1, 0, 0, cigar, seq, qual, aux)
	if err != nil {
		return nil, errors.Wrap(err, "bamout: building record")
	}
	rec.Flags |= sam.Unmapped
	return rec, nil
}
