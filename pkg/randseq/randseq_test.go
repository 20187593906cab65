// 31 July 2020

package randseq_test

import (
	"strings"
	"testing"

	"github.com/andrew-torda/coevo/pkg/randseq"
	"github.com/andrew-torda/coevo/pkg/seq"
)

func TestSimple(t *testing.T) {
	var sb strings.Builder
	args := randseq.RandSeqArgs{
		Wrtr: &sb,
		Cmmt: "testing seq",
		Nseq: 500,
		Len:  160,
	}
	if err := randseq.RandSeqMain(&args); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(sb.String(), ">"); n != args.Nseq {
		t.Fatal("count >, got ", n, "expected", args.Nseq)
	}
	seqgrp := new(seq.SeqGrp)
	if err := seq.ReadFasta(strings.NewReader(sb.String()), seqgrp, &seq.Options{}); err != nil {
		t.Fatal(err)
	}
	if seqgrp.NSeq() != args.Nseq || seqgrp.GetLen() != args.Len {
		t.Fatal("read back", seqgrp.NSeq(), "seqs of length", seqgrp.GetLen())
	}
	ids := make(map[string]bool)
	for _, s := range seqgrp.SeqSlc() {
		ids[s.ID()] = true
	}
	if len(ids) != args.Nseq {
		t.Error("want", args.Nseq, "different ids, got", len(ids))
	}
	if id := seqgrp.SeqSlc()[6].ID(); id != "007" {
		t.Error("seventh sequence called", id)
	}
}

// TestSeed checks the same seed gives the same file
func TestSeed(t *testing.T) {
	var a, b strings.Builder
	for _, w := range []*strings.Builder{&a, &b} {
		args := randseq.RandSeqArgs{Iseed: 99, Wrtr: w, Cmmt: "s", Nseq: 10, Len: 30}
		if err := randseq.RandSeqMain(&args); err != nil {
			t.Fatal(err)
		}
	}
	if a.String() != b.String() {
		t.Fatal("same seed, different sequences")
	}
}

func TestMkErr(t *testing.T) {
	var sb strings.Builder
	args := randseq.RandSeqArgs{Wrtr: &sb, Cmmt: "x", Nseq: 3, Len: 20, MkErr: true}
	if err := randseq.RandSeqMain(&args); err != nil {
		t.Fatal(err)
	}
	err := seq.ReadFasta(strings.NewReader(sb.String()), new(seq.SeqGrp), &seq.Options{})
	if err == nil {
		t.Fatal("different lengths should be an error")
	}
}
