package colmap

import (
	"fmt"
	"io"

	"github.com/andrew-torda/coevo/pkg/seq"
)

// MapProfile aligns the chain to the whole alignment.
func MapProfile(aln *seq.SeqGrp, chain ChainSeq, al Aligner, warn io.Writer) ([]Triple, error) {
	if len(chain.Seq) == 0 {
		return nil, nil
	}
	alnRef, err := al.Align(chain.seqGrp(), aln)
	if err != nil {
		return nil, err
	}
	return ColToResn(aln, chain, alnRef, MangleID(chain.ID), warn)
}

// MapToRef aligns the chain to the sequence refID from the alignment.
// The reference goes to the aligner without its gaps, but columns are
// counted in the original alignment.
func MapToRef(aln *seq.SeqGrp, refID string, chain ChainSeq, al Aligner, warn io.Writer) ([]Triple, error) {
	i := aln.FindID(refID)
	if i == -1 {
		return nil, fmt.Errorf("%w: %q", ErrNoRef, refID)
	}
	if len(chain.Seq) == 0 {
		return nil, nil
	}
	refSeq := aln.SeqSlc()[i]
	refGrp := new(seq.SeqGrp)
	refGrp.Append(refSeq.Ungapped())
	alnRef, err := al.Align(chain.seqGrp(), refGrp)
	if err != nil {
		return nil, err
	}
	oneRow := new(seq.SeqGrp)
	oneRow.Append(refSeq)
	return ColToResn(oneRow, chain, alnRef, MangleID(chain.ID), warn)
}
