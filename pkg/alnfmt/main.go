package alnfmt

import (
	"io"

	"github.com/andrew-torda/coevo/pkg/common"
	"github.com/andrew-torda/coevo/pkg/seq"
)

// ConcatMain reads two alignments and writes them glued side by side.
func ConcatMain(leftFile, rightFile, outFile string, skipped io.Writer) error {
	opts := &seq.Options{}
	left, err := seq.Readfile(leftFile, opts)
	if err != nil {
		return err
	}
	right, err := seq.Readfile(rightFile, opts)
	if err != nil {
		return err
	}
	cat := Concatenate(left, right, skipped)
	return seq.WriteToF(outFile, cat.SeqSlc(), opts)
}

// SplitMain writes the first n columns of an alignment to one file
// and the rest to another.
func SplitMain(alnFile string, n int, leftFile, rightFile string) error {
	opts := &seq.Options{}
	aln, err := seq.Readfile(alnFile, opts)
	if err != nil {
		return err
	}
	left, right, err := SplitOnCol(aln, n)
	if err != nil {
		return err
	}
	if err := seq.WriteToF(leftFile, left.SeqSlc(), opts); err != nil {
		return err
	}
	return seq.WriteToF(rightFile, right.SeqSlc(), opts)
}

// PhyMain is ToPhylip, with the id map going to a file if one is named.
func PhyMain(r io.Reader, w io.Writer, idmapFile string) error {
	if idmapFile == "" {
		return ToPhylip(r, w, nil)
	}
	fp, err := common.OutFile(idmapFile)
	if err != nil {
		return err
	}
	if err := ToPhylip(r, w, fp); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
