// Package alnfmt moves alignments between formats and cuts and glues
// them. Phylip and psicov output goes through the biogo fasta reader.
package alnfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/andrew-torda/coevo/pkg/seq"
)

// Concatenate joins the sequences of left and right with the same
// identifier, one after the other. Order is that of left. Sequences
// in left with no partner are reported to skipped and left out.
func Concatenate(left, right *seq.SeqGrp, skipped io.Writer) *seq.SeqGrp {
	rmap := make(map[string]int, right.NSeq())
	for i, s := range right.SeqSlc() {
		if _, ok := rmap[s.ID()]; !ok {
			rmap[s.ID()] = i
		}
	}
	ret := new(seq.SeqGrp)
	rs := right.SeqSlc()
	for _, s := range left.SeqSlc() {
		i, ok := rmap[s.ID()]
		if !ok {
			if skipped != nil {
				fmt.Fprintln(skipped, "skipping:", s.ID())
			}
			continue
		}
		b := make([]byte, 0, s.Len()+rs[i].Len())
		b = append(append(b, s.GetSeq()...), rs[i].GetSeq()...)
		ret.Append(seq.NewSeq(s.Cmmt(), b))
	}
	return ret
}

// SplitOnCol cuts an alignment into columns [0,n) and [n,len).
func SplitOnCol(aln *seq.SeqGrp, n int) (left, right *seq.SeqGrp, err error) {
	if left, err = aln.SubCols(0, n); err != nil {
		return nil, nil, err
	}
	if right, err = aln.SubCols(n, aln.GetLen()); err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// StrictPhylipIDs makes identifiers that are unique and exactly ten
// characters long. The sequence number goes in front, the result is
// cut to eight characters and two spaces go on the end.
func StrictPhylipIDs(ids []string) []string {
	ret := make([]string, len(ids))
	for i, id := range ids {
		s := strconv.Itoa(i) + "_" + id
		if len(s) > 8 {
			s = s[:8]
		}
		ret[i] = fmt.Sprintf("%-8s  ", s)
	}
	return ret
}

// readAll pulls every sequence out of a fasta stream.
func readAll(r io.Reader) ([]*linear.Seq, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.Protein)))
	var ret []*linear.Seq
	for sc.Next() {
		ret = append(ret, sc.Seq().(*linear.Seq))
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("failed during read: %w", err)
	}
	return ret, nil
}

// ToPhylip converts fasta to sequential phylip. Identifiers are cut to
// eight characters and padded to ten. If idmap is not nil, the ids
// from StrictPhylipIDs are used instead, and each original id is
// written to idmap with its replacement.
func ToPhylip(r io.Reader, w io.Writer, idmap io.Writer) error {
	seqs, err := readAll(r)
	if err != nil {
		return err
	}
	if len(seqs) == 0 {
		return fmt.Errorf("no sequences found")
	}
	alnLen := seqs[0].Len()
	ids := make([]string, len(seqs))
	for i, s := range seqs {
		if s.Len() != alnLen {
			return fmt.Errorf("length of sequence %s is %d, not %d", s.Name(), s.Len(), alnLen)
		}
		ids[i] = s.Name()
	}
	var names []string
	if idmap != nil {
		names = StrictPhylipIDs(ids)
		for i := range ids {
			if _, err := fmt.Fprintf(idmap, "%s\t%s\n", ids[i], names[i]); err != nil {
				return err
			}
		}
	} else {
		names = make([]string, len(ids))
		for i, id := range ids {
			if len(id) > 8 {
				id = id[:8]
			}
			names[i] = fmt.Sprintf("%-10s", id)
		}
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, " %d %d\n", len(seqs), alnLen)
	for i, s := range seqs {
		fmt.Fprintf(bw, "%s%s\n", names[i], alphabet.LettersToBytes(s.Seq))
	}
	return bw.Flush()
}

// ToPsicov writes each sequence on its own line, without identifiers.
func ToPsicov(r io.Reader, w io.Writer) error {
	seqs, err := readAll(r)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, s := range seqs {
		fmt.Fprintf(bw, "%s\n", alphabet.LettersToBytes(s.Seq))
	}
	return bw.Flush()
}
