// 20 Dec 2017

// Package seq provides functions for sequences and alignments,
// which usually begin their lives in fasta format. It can
// read and write them.
//
// An alignment is just a SeqGrp whose members have the same length.
// Identifiers are the first word of the comment line, so that is what
// we sort and search on.
package seq

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/edsrzf/mmap-go"

	"github.com/andrew-torda/coevo/pkg/common"
)

// Seq is one sequence and the comment line it came with.
type Seq struct {
	cmmt string
	seq  []byte
}

// We only read ascii characters, so anything bigger than this is not
// valid.
const (
	MaxSym uint8 = 127
)

// Options contains all the choices passed in from the caller.
type Options struct {
	ExpectSeq  int  // Expected number of sequences
	DiffLenSeq bool // false, unless we expect sequences to be different lengths
	DryRun     bool // Do not write any files
	RmvGapsWrt bool // Remove gaps on output
}

// Constants
const cmmt_char byte = '>' // and this introduces comments in fasta format

// SeqGrp is a group of sequences. If they are aligned, they all
// have the same length.
type SeqGrp struct {
	seqs []Seq
}

// ErrNotFound comes back from Pop when no sequence has the identifier.
var ErrNotFound = errors.New("sequence not found")

// NewSeq makes a sequence from a comment (without the ">") and
// the residues. It does not copy s.
func NewSeq(cmmt string, s []byte) Seq { return Seq{cmmt: cmmt, seq: s} }

// Function GetSeq returns the sequence as the original byte slice
func (s Seq) GetSeq() []byte { return s.seq }

// Function Cmmt returns the comment, without the leading ">"
func (s Seq) Cmmt() string { return s.cmmt }

// Function Len
func (s Seq) Len() int { return len(s.seq) }

// SetSeq will replace whatever was the sequence with a new one
func (s *Seq) SetSeq(t []byte) { s.seq = t }

// Empty returns true if a sequence has been cleared.
func (s Seq) Empty() bool { return len(s.seq) == 0 }

// ID returns the sequence identifier. Of course it does not really
// know. It just returns the first word in the comment.
func (s Seq) ID() string {
	tmp := strings.Fields(s.cmmt)
	if len(tmp) == 0 {
		return ""
	}
	return tmp[0]
}

// trimStr trims a string to n bytes if it is longer
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Upper changes a sequence to upper case, in place.
// It only works with bytes, not runes.
// It can return an error if it encounters a symbol it does
// not like (value higher than 128).
func (s *Seq) Upper() error {
	const diff = 'a' - 'A'
	const symerr = "bad sym \"%c\" at position %d starting \"%s\""
	b := s.seq
	for i, c := range b {
		if c >= MaxSym {
			return fmt.Errorf(symerr, c, i, trimStr(s.cmmt, 40))
		}
		if 'a' <= c && c <= 'z' {
			b[i] -= diff
		}
	}
	return nil
}

// Ungapped returns a copy of the sequence with gap characters removed.
// The comment is kept.
func (s Seq) Ungapped() Seq {
	t := make([]byte, 0, len(s.seq))
	for _, c := range s.seq {
		if c != common.GapChar {
			t = append(t, c)
		}
	}
	return Seq{cmmt: s.cmmt, seq: t}
}

// Copy makes a deep copy, so the residues can be changed without
// touching the original.
func (s Seq) Copy() Seq {
	return Seq{cmmt: s.cmmt, seq: append([]byte(nil), s.seq...)}
}

// String returns a sequence, with its comment at the start as
// a single string
func (s Seq) String() string {
	return fmt.Sprintf("%c%s\n%s", cmmt_char, s.cmmt, s.seq)
}

// GetLen returns the length of the first sequence.
// If we are reading a multiple sequence alignment, this should be the length
// of all sequences.
func (seqgrp *SeqGrp) GetLen() int {
	if len(seqgrp.seqs) == 0 {
		return 0
	}
	return len(seqgrp.seqs[0].seq)
}

// NSeq returns the number of sequences
func (seqgrp *SeqGrp) NSeq() int { return len(seqgrp.seqs) }

// SeqSlc return the slice of sequences
func (seqgrp *SeqGrp) SeqSlc() []Seq { return seqgrp.seqs }

// Append adds sequences to the end of the group.
func (seqgrp *SeqGrp) Append(s ...Seq) { seqgrp.seqs = append(seqgrp.seqs, s...) }

// Upper uppercases all the members of a group of sequences.
func (seqgrp *SeqGrp) Upper() error {
	for i := range seqgrp.seqs {
		if err := seqgrp.seqs[i].Upper(); err != nil {
			return err
		}
	}
	return nil
}

// FindID returns the index of the first sequence with identifier id,
// or -1.
func (seqgrp *SeqGrp) FindID(id string) int {
	for i, s := range seqgrp.seqs {
		if s.ID() == id {
			return i
		}
	}
	return -1
}

// Pop removes the sequence with identifier id from the group and
// returns it.
func (seqgrp *SeqGrp) Pop(id string) (Seq, error) {
	i := seqgrp.FindID(id)
	if i == -1 {
		return Seq{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	s := seqgrp.seqs[i]
	seqgrp.seqs = append(seqgrp.seqs[:i], seqgrp.seqs[i+1:]...)
	return s, nil
}

// SortByID puts the sequences in order of identifier. Sequences with
// the same identifier keep their order.
func (seqgrp *SeqGrp) SortByID() {
	sort.SliceStable(seqgrp.seqs, func(i, j int) bool {
		return seqgrp.seqs[i].ID() < seqgrp.seqs[j].ID()
	})
}

// Column returns the symbols in column i, in row order. It appends
// to buf, which may be nil.
func (seqgrp *SeqGrp) Column(i int, buf []byte) []byte {
	buf = buf[:0]
	for _, s := range seqgrp.seqs {
		buf = append(buf, s.seq[i])
	}
	return buf
}

// AllGap says if column i has nothing but gaps.
func (seqgrp *SeqGrp) AllGap(i int) bool {
	for _, s := range seqgrp.seqs {
		if s.seq[i] != common.GapChar {
			return false
		}
	}
	return true
}

// SubCols returns a new group with columns from, from+1 .. to-1.
// The residues are copied.
func (seqgrp *SeqGrp) SubCols(from, to int) (*SeqGrp, error) {
	if from < 0 || to > seqgrp.GetLen() || from > to {
		return nil, fmt.Errorf("columns %d to %d outside alignment of length %d",
			from, to, seqgrp.GetLen())
	}
	sub := &SeqGrp{seqs: make([]Seq, len(seqgrp.seqs))}
	for i, s := range seqgrp.seqs {
		sub.seqs[i] = Seq{cmmt: s.cmmt, seq: append([]byte(nil), s.seq[from:to]...)}
	}
	return sub, nil
}

// checkLengths should only be called if we are keeping
// gaps. Then we imagine all the sequences are aligned, so they
// must be the same length.
func (seqgrp *SeqGrp) checkLengths() error {
	const msg = "sequence lengths are not the same. First sequence length %d, but sequence %d length: %d. Comment starts %q"
	if len(seqgrp.seqs) == 0 {
		return nil
	}
	iwant := len(seqgrp.seqs[0].seq)
	for i := 1; i < len(seqgrp.seqs); i++ {
		if ilen := len(seqgrp.seqs[i].seq); ilen != iwant {
			return fmt.Errorf(msg, iwant, i+1, ilen, trimStr(seqgrp.seqs[i].cmmt, 40))
		}
	}
	return nil
}

// byMmap maps the file and counts the comment characters so we know
// how many sequences to expect. Then we let the lexer loose on the
// mapped bytes. Everything the lexer keeps is copied, so the unmap is
// safe.
func byMmap(fp *os.File, seqgrp *SeqGrp, s_opts *Options) error {
	fi, err := fp.Stat()
	if err != nil {
		return err
	}
	if fi.Size() == 0 || !fi.Mode().IsRegular() {
		return ReadFasta(fp, seqgrp, s_opts)
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return err
	}
	defer mm.Unmap()
	if s_opts.ExpectSeq == 0 {
		seqgrp.seqs = make([]Seq, 0, bytes.Count(mm, []byte{cmmt_char}))
	}
	return ReadFasta(bytes.NewReader(mm), seqgrp, s_opts)
}

// Readfile takes a filename and reads sequences from it.
// An empty name means standard input.
func Readfile(fname string, s_opts *Options) (*SeqGrp, error) {
	var seqgrp = new(SeqGrp)
	if s_opts.ExpectSeq > 0 {
		seqgrp.seqs = make([]Seq, 0, s_opts.ExpectSeq)
	}
	if fname == "" {
		if err := ReadFasta(os.Stdin, seqgrp, s_opts); err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return seqgrp, nil
	}

	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	if err := byMmap(fp, seqgrp, s_opts); err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	return seqgrp, nil
}

// WriteFasta writes the sequences to w, 60 residues per line.
// Empty sequences are skipped.
func WriteFasta(w io.Writer, seqSet []Seq, s_opts *Options) error {
	const c_per_line = 60
	if s_opts.DryRun {
		w = io.Discard
	}
	var t []byte
	for _, seq := range seqSet {
		if seq.Empty() {
			continue
		}
		if _, err := fmt.Fprintf(w, "%c%s\n", cmmt_char, seq.cmmt); err != nil {
			return err
		}
		s := seq.seq
		if s_opts.RmvGapsWrt { // we have to remove gap characters on output
			t = t[:0]
			for _, c := range s {
				if c != common.GapChar {
					t = append(t, c)
				}
			}
			s = t
		}
		for ; len(s) > c_per_line; s = s[c_per_line:] {
			if _, err := fmt.Fprintf(w, "%s\n", s[:c_per_line]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n", s); err != nil {
			return err
		}
	}
	return nil
}

// WriteToF takes a filename and a slice of sequences.
// It writes the sequences to the file, or standard output if the
// name is empty.
func WriteToF(fname string, seqSet []Seq, s_opts *Options) error {
	fp, err := common.OutFile(fname)
	if err != nil {
		return fmt.Errorf("creating output sequence file: %w", err)
	}
	if err := WriteFasta(fp, seqSet, s_opts); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// Str2SeqGrp takes some strings and returns them as a seqgrp.
// sIn is a slice of strings which are the sequences.
// prefix is an optional argument. Sequences need names/comments. If
// prefix is not given, sequences will be called "s0", "s1", ...
func Str2SeqGrp(sIn []string, prefix ...string) *SeqGrp {
	var base string
	seqgrp := new(SeqGrp)
	if prefix == nil {
		base = "s"
	} else {
		base = prefix[0]
	}
	for i, s := range sIn {
		f := Seq{cmmt: fmt.Sprint(base, i), seq: []byte(s)}
		seqgrp.seqs = append(seqgrp.seqs, f)
	}
	return seqgrp
}
