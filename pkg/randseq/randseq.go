// 31 July 2020

// Package randseq writes random protein alignments in untidy fasta,
// with white space and line breaks scattered through the sequences.
// Readers and format converters are tested against it.
package randseq

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
)

const (
	nPadWhite = 9 // about one white character for every nine residues
)

var aa = []byte("acdefghiklmnpqrstvwy")

// RandSeqArgs is the set of arguments passed to the main function
type RandSeqArgs struct {
	Iseed int64     // random number seed
	Wrtr  io.Writer // where we write to
	Cmmt  string    // Comment for the sequences
	Nseq  int       // number of sequences
	Len   int       // Length of sequences
	NoGap bool      // Do not add gaps
	MkErr bool      // Make the last sequence one residue too long
}

// alphabet is the residues, with gaps about one time in 80 if we
// want them.
func alphabet(noGap bool) []byte {
	if noGap {
		return aa
	}
	l := append([]byte{}, aa...)
	l = append(l, l...)
	l = append(l, l...)
	return append(l, '-')
}

// getseq returns a random sequence with room on the end for white
// space.
func getseq(seqlen int, letters []byte, rnd *rand.Rand) []byte {
	space := seqlen + (seqlen / nPadWhite)
	ret := make([]byte, seqlen, space)
	for i := range ret {
		ret[i] = letters[rnd.Intn(len(letters))]
	}
	return ret
}

// addInner puts n copies of c at random places in s.
func addInner(s []byte, n int, c byte, rnd *rand.Rand) []byte {
	for i := 0; i < n; i++ {
		s = append(s, 0)
		pos := rnd.Intn(len(s))
		copy(s[pos+1:], s[pos:])
		s[pos] = c
	}
	return s
}

// addspace fills the spare capacity of s with white space. Heads we
// only add spaces, tails about a ninth of them become newlines.
func addspace(s []byte, rnd *rand.Rand) []byte {
	toAdd := cap(s) - len(s)
	nNL := 0
	if rnd.Intn(2) == 0 {
		nNL = toAdd / 9
	}
	s = addInner(s, toAdd-nNL, ' ', rnd)
	return addInner(s, nNL, '\n', rnd)
}

// writeseq gets sequences on a channel, messes them up and writes
// them. The number comes first, so it is the sequence id, as in
// "> 01 cmmt", "> 02 cmmt"...
func writeseq(sChan <-chan []byte, args *RandSeqArgs, errp *error, wg *sync.WaitGroup) {
	defer wg.Done()
	width := len(fmt.Sprintf("%d", args.Nseq))
	spacernd := rand.New(rand.NewSource(args.Iseed + 1))
	var i int
	for s := range sChan {
		i++
		if *errp != nil {
			continue
		}
		s = addspace(s, spacernd)
		_, *errp = fmt.Fprintf(args.Wrtr, "> %0*d %s\n%s\n", width, i, args.Cmmt, s)
	}
}

// RandSeqMain writes random sequences to args.Wrtr.
func RandSeqMain(args *RandSeqArgs) error {
	var wg sync.WaitGroup
	var err error
	letters := alphabet(args.NoGap)
	rnd := rand.New(rand.NewSource(args.Iseed))
	sChan := make(chan []byte)
	wg.Add(1)
	go writeseq(sChan, args, &err, &wg)
	for i := 0; i < args.Nseq; i++ {
		n := args.Len
		if args.MkErr && i == args.Nseq-1 {
			n++
		}
		sChan <- getseq(n, letters, rnd)
	}
	close(sChan)
	wg.Wait()
	return err
}
