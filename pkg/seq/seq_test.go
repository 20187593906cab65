package seq_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/andrew-torda/coevo/brokenio"
	"github.com/andrew-torda/coevo/pkg/common"
	. "github.com/andrew-torda/coevo/pkg/seq"
)

const (
	big       = 64 * 1024
	bigminus1 = big - 1
	bigplus1  = big + 1
)

var seq_lengths = []int{10, 30, bigminus1, big, bigplus1}

func cmmtHelp(got, want string, t *testing.T) {
	t.Helper()
	if got != want {
		t.Fatalf("checking comments wanted \"%s\" got \"%s\"", want, got)
	}
}

// TestComment is to check that comments are read exactly, correctly
func TestComment(t *testing.T) {
	c0 := "testcomment no space"
	c1 := " testcomment with space at start"
	s := "aaa\n"
	seqs := ">" + c0 + "\n" + s + ">" + c1 + "\n" + s
	sr := strings.NewReader(seqs)
	var seqgrp SeqGrp
	var s_opts Options

	if err := ReadFasta(sr, &seqgrp, &s_opts); err != nil {
		t.Fatal("bust reading simple seqs in TestComment", err)
	}
	slc := seqgrp.SeqSlc()

	cmmtHelp(slc[1].Cmmt(), c1, t)
	cmmtHelp(slc[0].Cmmt(), c0, t)
	cmmtHelp(slc[1].ID(), "testcomment", t)
}

// TestDiffLen checks if we can read sequences of different lengths
func TestDiffLen(t *testing.T) {
	s := `>s1
a
> s2
aa
> s3
aaa`
	var seqgrp SeqGrp
	s_opts := &Options{DiffLenSeq: true}

	if err := ReadFasta(strings.NewReader(s), &seqgrp, s_opts); err != nil {
		t.Fatal("Reading seqs failed", err)
	}
	if ngot := seqgrp.NSeq(); ngot != 3 {
		t.Fatalf("Seqs of diff length got %d wanted 3 seqs", ngot)
	}
	for i := 0; i < 3; i++ {
		if l := seqgrp.SeqSlc()[i].Len(); l != i+1 {
			t.Fatalf("seqs diff length got %d wanted %d", l, i+1)
		}
	}
}

// TestDiffLenLong has different length sequences that should be much longer
// than one buffer.
func TestDiffLenLong(t *testing.T) {
	ll := []int{10000, 20000, 50000}
	s := ">\n" + strings.Repeat("a", ll[0]) + "\n> s2\n" + strings.Repeat("c", ll[1]) +
		"\n> s3\n" + strings.Repeat("d", ll[2])
	var seqgrp SeqGrp
	s_opts := &Options{DiffLenSeq: true}

	if err := ReadFasta(strings.NewReader(s), &seqgrp, s_opts); err != nil {
		t.Fatal("Reading seqs failed", err)
	}
	if ngot := seqgrp.NSeq(); ngot != 3 {
		t.Fatalf("Seqs of diff length got %d wanted 3 seqs", ngot)
	}
	for i := 0; i < len(ll); i++ {
		if l := seqgrp.SeqSlc()[i].Len(); l != ll[i] {
			t.Fatalf("long seq wanted %d got %d", ll[i], l)
		}
	}
}

// TestFastaBug is to track down a specific bug I had with small buffers
func TestFastaBug(t *testing.T) {
	const nseq = 5
	const sLen = 16
	sb := ""
	for i := 0; i < nseq; i++ {
		sb += fmt.Sprintf("> some %d comment\n", i)
		for j := 0; j < sLen; j++ {
			sb += fmt.Sprintf("%d", i)
		}
		sb += "\n"
	}

	SetFastaRdSize(200)
	defer SetFastaRdSize(512)

	var seqgrp SeqGrp
	if err := ReadFasta(strings.NewReader(sb), &seqgrp, &Options{}); err != nil {
		t.Fatal("Reading seqs failed", err)
	}
	if seqgrp.NSeq() != nseq {
		t.Fatalf("Got %d wanted %d seqlen was %d\n", seqgrp.NSeq(), nseq, seqgrp.GetLen())
	}
}

// Put funny characters into the comment lines
var trickyComments = []string{
	">a☺b☻c☹d",
	">>>",
	">",
	">a comment can end in an umlautÜ",
}

// writeTest_with_spaces provides some sequences with different patterns of
// white space and some gap characters mixed in. It sticks it in an io.Writer.
func writeTest_with_spaces(f_tmp io.Writer) {
	const b byte = 'B'
	for i, l := range seq_lengths {
		ndx := i % len(trickyComments)
		fmt.Fprintln(f_tmp, trickyComments[ndx])
		for j := 0; j < l; j++ {
			switch {
			case j%11 == 1:
				fmt.Fprint(f_tmp, " ")
			case j%73 == 1:
				fmt.Fprint(f_tmp, "\n")
			case j%71 == 1:
				fmt.Fprint(f_tmp, "-")
			}
			fmt.Fprint(f_tmp, string(b))
		}
		fmt.Fprint(f_tmp, "\n")
	}
}

// writeTest_nospaces puts some sequences into an io.Writer, but with no spaces
// so as to check if we correctly handle long lines.
func writeTest_nospaces(f_tmp io.Writer) {
	for _, i := range seq_lengths {
		fmt.Fprintln(f_tmp, "> seq", i+1, ">>")
		for j := 0; j < i; j++ {
			fmt.Fprintf(f_tmp, "%c", 'A')
		}
		fmt.Fprintf(f_tmp, "\n")
	}
}

// innerWriteReadSeqs writes and then reads a sequence. It should be called
// once with spaces and once without.
func innerWriteReadSeqs(t *testing.T, spaces bool) {
	var b strings.Builder
	if spaces {
		writeTest_with_spaces(&b)
	} else {
		writeTest_nospaces(&b)
	}

	var seqgrp SeqGrp
	s_opts := &Options{DiffLenSeq: true}
	if err := ReadFasta(strings.NewReader(b.String()), &seqgrp, s_opts); err != nil {
		t.Fatal("Reading seqs failed", err)
	}

	if seqgrp.NSeq() != len(seq_lengths) {
		t.Fatalf("Wrote %d seqs, but read only %d. Spaces was set to %t",
			len(seq_lengths), seqgrp.NSeq(), spaces)
	}
	for i, s := range seqgrp.SeqSlc() {
		if !spaces && s.Len() != seq_lengths[i] {
			t.Fatalf("Seq length expected %d, got %d", seq_lengths[i], s.Len())
		}
	}
}

// TestReadFasta writes and then reads sequences, and does it once to check that
// we hop over white space and once to make sure we handle long lines.
func TestReadFasta(t *testing.T) {
	for _, tt := range []bool{false, true} {
		innerWriteReadSeqs(t, tt)
	}
}

// TestEmpty checks that broken files are gracefully handled
func TestEmpty(t *testing.T) {
	bad_contents := []string{
		"> blah\n",
		"",
		"rubbish",
		"rubbish\n> s1\nAC",
		"   \n\n",
		"> s1\nAC\n> s2 there is no sequence next",
		"> s1\n\n> s2\nAC",
	}
	for _, content := range bad_contents {
		fname, err := common.WrtTemp(content)
		if err != nil {
			t.Fatal(err)
		}
		defer os.Remove(fname)
		if _, err := Readfile(fname, &Options{}); err == nil {
			t.Fatalf("should generate error on %q", content)
		}
	}
}

// TestBrokenReader has the input fail part way. The read error must
// come back, not a shorter group of sequences.
func TestBrokenReader(t *testing.T) {
	text := strings.Repeat("> s\nACDEFGHIKL\n", 50)
	defer SetFastaRdSize(512)
	for _, bs := range []int{3, 7, 512} { // small buffers send many items before the failure
		SetFastaRdSize(bs)
		for _, n := range []int{0, 3, 100, len(text) - 2} {
			rdr := brokenio.NewReader(strings.NewReader(text), 1)
			rdr.SetFailAfter(n)
			var seqgrp SeqGrp
			if err := ReadFasta(rdr, &seqgrp, &Options{}); !errors.Is(err, brokenio.ErrBroken) {
				t.Errorf("buffer %d, fail after %d bytes, got error %v", bs, n, err)
			}
		}
	}
}

// TestErrorOnDiffSeqs should provoke the error when we expect sequences
// to be the same length, but they are not.
func TestErrorOnDiffSeqs(t *testing.T) {
	texts := []string{
		"> seq1\naaaa\n> seq 2\naaaaa",
		"> seq1\naaaaa\n> seq 2\naaaa",
	}
	for _, txt := range texts {
		var seqgrp SeqGrp
		if err := ReadFasta(strings.NewReader(txt), &seqgrp, &Options{}); err == nil {
			t.Fatal("Should provoke error on uneven sequences")
		}
	}
}

// TestReadFastaShort uses buffers of various lengths to catch end of buffer mistakes.
func TestReadFastaShort(t *testing.T) {
	set1 := ">\n" + "abcdefghij\n" +
		"> longer comment" + strings.Repeat(" x", 300) + "\n" +
		strings.Repeat("a", 10) + "\n" + "> longer comment" + strings.Repeat(" x", 3) +
		"\n" + strings.Repeat(" b ", 10) + strings.Repeat(" ", 167)
	bsize := []int{3, 4, 5, 10, 100, 512}
	defer SetFastaRdSize(512)

	for i, bs := range bsize {
		var seqgrp SeqGrp
		SetFastaRdSize(bs)
		if err := ReadFasta(strings.NewReader(set1), &seqgrp, &Options{}); err != nil {
			t.Fatal(err)
		}
		if n := seqgrp.GetLen(); n != 10 {
			t.Fatal("seq num", i, "got", n, "want 10")
		}
		if n := seqgrp.NSeq(); n != 3 {
			t.Fatal("seq loop num", i, "got nseq", n, "want 3")
		}
		if c := seqgrp.SeqSlc()[2].Cmmt(); c != " longer comment x x x" {
			t.Fatalf("buffer %d comment got %q", bs, c)
		}
	}
}

// TestReadfile goes through the mmap path and the write path.
func TestReadfile(t *testing.T) {
	const s = "> s1 first\nAC-DE\n>s2\nAC-DF\n"
	fname, err := common.WrtTemp(s)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fname)
	seqgrp, err := Readfile(fname, &Options{})
	if err != nil {
		t.Fatal(err)
	}
	if seqgrp.NSeq() != 2 || seqgrp.GetLen() != 5 {
		t.Fatalf("got %d seqs of length %d", seqgrp.NSeq(), seqgrp.GetLen())
	}
	var b bytes.Buffer
	if err := WriteFasta(&b, seqgrp.SeqSlc(), &Options{}); err != nil {
		t.Fatal(err)
	}
	if b.String() != s {
		t.Fatalf("round trip got\n%s\nwanted\n%s", b.String(), s)
	}
	b.Reset()
	if err := WriteFasta(&b, seqgrp.SeqSlc(), &Options{RmvGapsWrt: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "ACDE\n") {
		t.Fatal("gaps not removed on writing", b.String())
	}
}

// TestLongLines checks that writing wraps at 60 characters
func TestLongLines(t *testing.T) {
	seqgrp := Str2SeqGrp([]string{strings.Repeat("A", 130)})
	var b bytes.Buffer
	if err := WriteFasta(&b, seqgrp.SeqSlc(), &Options{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 4 || len(lines[1]) != 60 || len(lines[3]) != 10 {
		t.Fatalf("bad wrapping %q", lines)
	}
}

// TestPopSort checks the operations used when mapping columns.
func TestPopSort(t *testing.T) {
	seqgrp := Str2SeqGrp([]string{"A-C", "D-F", "G-I"}, "id")
	seqgrp.Append(NewSeq("aaa extra words", []byte("J-L")))
	s, err := seqgrp.Pop("id1")
	if err != nil {
		t.Fatal(err)
	}
	if string(s.GetSeq()) != "D-F" || seqgrp.NSeq() != 3 {
		t.Fatal("pop got", s.String())
	}
	if _, err := seqgrp.Pop("id1"); !errors.Is(err, ErrNotFound) {
		t.Fatal("second pop should fail, got", err)
	}
	seqgrp.SortByID()
	if id := seqgrp.SeqSlc()[0].ID(); id != "aaa" {
		t.Fatal("sort put", id, "first")
	}
	if col := seqgrp.Column(2, nil); string(col) != "LCI" {
		t.Fatal("column 2 got", string(col))
	}
	if !seqgrp.AllGap(1) || seqgrp.AllGap(0) {
		t.Fatal("AllGap wrong")
	}
	sub, err := seqgrp.SubCols(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if string(sub.SeqSlc()[0].GetSeq()) != "-L" {
		t.Fatal("SubCols got", sub.SeqSlc()[0].String())
	}
	if _, err := seqgrp.SubCols(2, 4); err == nil {
		t.Fatal("SubCols beyond the end should fail")
	}
}

// TestSeqInfo tests some seq manipulation functions
func TestSeqInfo(t *testing.T) {
	ss := []string{"aa", "b-b", "cc"}
	const sometext = "sometext is here"
	seqgrp := Str2SeqGrp(ss, sometext)

	a0 := &(seqgrp.SeqSlc()[0])

	c := a0.Cmmt()
	if !strings.Contains(c, sometext) {
		t.Fatal("did not find: " + sometext + " got " + c)
	}
	c = a0.String()
	if !strings.Contains(c, sometext) || !strings.Contains(c, "aa") {
		t.Fatal("in whole seq did not find:" + sometext)
	}

	if err := a0.Upper(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(a0.GetSeq(), []byte("AA")) {
		t.Fatal("did not uppercase sequence")
	}
	if u := seqgrp.SeqSlc()[1].Ungapped(); string(u.GetSeq()) != "bb" {
		t.Fatal("Ungapped got", string(u.GetSeq()))
	}
	if string(seqgrp.SeqSlc()[1].GetSeq()) != "b-b" {
		t.Fatal("Ungapped changed the original")
	}
	const aaaaaaaa = "aaaaaaaa"
	a0.SetSeq([]byte(aaaaaaaa))
	if !bytes.Equal(seqgrp.SeqSlc()[0].GetSeq(), []byte(aaaaaaaa)) {
		t.Fatal("Did not change sequence aaaa properly")
	}
}
