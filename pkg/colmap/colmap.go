// Package colmap maps the columns of a multiple sequence alignment to
// residue numbers in a protein chain.
//
// The chain sequence is aligned to the alignment (profile) or to one
// reference sequence from it (pairwise). The aligner gives us back
// the old rows with some extra gap columns and the chain as a new row.
// Columns of the original alignment are found again in the aligner's
// output by comparing their contents. From there, the chain row tells
// us which residue sits in the column.
package colmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/andrew-torda/coevo/pdb/cmmn"
	"github.com/andrew-torda/coevo/pkg/common"
	"github.com/andrew-torda/coevo/pkg/seq"
)

var (
	ErrNoRef      = errors.New("reference sequence not in alignment")
	ErrNoChainRow = errors.New("chain row missing from aligner output")
)

// ChainSeq is the sequence of a chain with the residue number of
// each position.
type ChainSeq struct {
	ID   string
	Seq  []byte
	Resn []int
}

// ChainSeqOf takes the residues of a chain, but not HETATMs.
func ChainSeqOf(c *cmmn.Chain) ChainSeq {
	cs := ChainSeq{ID: c.ChainID}
	for i := range c.Residues {
		r := &c.Residues[i]
		if r.Het {
			continue
		}
		cs.Seq = append(cs.Seq, r.OneLetter())
		cs.Resn = append(cs.Resn, r.Num)
	}
	return cs
}

// MangleID makes a name for the chain that cannot clash with anything
// in the alignment.
func MangleID(id string) string { return "__XX__chain[" + id + "]__XX__" }

// seqGrp puts the chain in a sequence group, under its mangled name.
func (cs ChainSeq) seqGrp() *seq.SeqGrp {
	g := new(seq.SeqGrp)
	g.Append(seq.NewSeq(MangleID(cs.ID), append([]byte(nil), cs.Seq...)))
	return g
}

// NoPos marks a gap in Positions.
const NoPos = -1

// Positions holds, for each column of an aligned row, the index of the
// residue in the ungapped sequence, or NoPos.
type Positions []int

// Annotate numbers the residues in a gapped row.
func Annotate(row []byte) Positions {
	p := make(Positions, len(row))
	n := 0
	for i, c := range row {
		if c == common.GapChar {
			p[i] = NoPos
			continue
		}
		p[i] = n
		n++
	}
	return p
}

// Triple is one line of mapping output.
type Triple struct {
	Col  int  // alignment column, from 0
	Resn int  // residue number in the structure
	AA   byte // residue in the structure
}

// copyGrp gives a new group holding the same sequences, so sorting and
// popping do not disturb the caller.
func copyGrp(g *seq.SeqGrp) *seq.SeqGrp {
	n := new(seq.SeqGrp)
	n.Append(g.SeqSlc()...)
	return n
}

// eqFold compares two columns, ignoring case.
func eqFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if 'a' <= x && x <= 'z' {
			x -= 'a' - 'A'
		}
		if 'a' <= y && y <= 'z' {
			y -= 'a' - 'A'
		}
		if x != y {
			return false
		}
	}
	return true
}

// matchCols finds each column of aln in ref. The search only moves
// forward, so the mapping keeps column order. All-gap columns in aln
// would match anything and are skipped. It returns pairs of (aln
// column, ref column) and the number of columns that should have been
// found.
func matchCols(aln, ref *seq.SeqGrp) (ij [][2]int, nwant int) {
	var ci, cj []byte
	js := 0
	for i := 0; i < aln.GetLen(); i++ {
		if aln.AllGap(i) {
			continue
		}
		nwant++
		ci = aln.Column(i, ci)
		for j := js; j < ref.GetLen(); j++ {
			cj = ref.Column(j, cj)
			if eqFold(ci, cj) {
				ij = append(ij, [2]int{i, j})
				js = j + 1
				break
			}
		}
	}
	return ij, nwant
}

// ColToResn maps columns of aln to residues of the chain. alnRef is
// the aligner output. It holds the rows of aln, perhaps with new gap
// columns, and the chain under chainRefID. A warning goes to warn if
// some columns could not be found in alnRef.
func ColToResn(aln *seq.SeqGrp, chain ChainSeq, alnRef *seq.SeqGrp, chainRefID string, warn io.Writer) ([]Triple, error) {
	ref := copyGrp(alnRef)
	chainRow, err := ref.Pop(chainRefID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoChainRow, err)
	}
	pos := Annotate(chainRow.GetSeq())
	orig := copyGrp(aln)
	ref.SortByID()
	orig.SortByID()

	ij, nwant := matchCols(orig, ref)
	if len(ij) < nwant && warn != nil {
		fmt.Fprintf(warn, "Warning: only %d of %d alignment columns were found after aligning to chain %s\n",
			len(ij), nwant, chain.ID)
	}
	var ret []Triple
	for _, p := range ij {
		if p[1] >= len(pos) {
			return nil, fmt.Errorf("column %d beyond the chain row of length %d", p[1], len(pos))
		}
		k := pos[p[1]]
		if k == NoPos {
			continue
		}
		if k >= len(chain.Seq) {
			return nil, fmt.Errorf("aligner returned %d residues for chain %s, which has %d", k+1, chain.ID, len(chain.Seq))
		}
		ret = append(ret, Triple{Col: p[0], Resn: chain.Resn[k], AA: chain.Seq[k]})
	}
	return ret, nil
}

// WriteTriples writes the mapping with a header line.
func WriteTriples(w io.Writer, triples []Triple) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("Column\tresn\tAA\n")
	for _, t := range triples {
		fmt.Fprintf(bw, "%d\t%d\t%c\n", t.Col, t.Resn, t.AA)
	}
	return bw.Flush()
}
