package colmap

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/andrew-torda/coevo/gotoh"
	"github.com/andrew-torda/coevo/pkg/common"
	"github.com/andrew-torda/coevo/pkg/seq"
	"github.com/andrew-torda/coevo/submat"
)

// Aligner aligns two groups of sequences and returns all of them,
// gapped so they line up.
type Aligner interface {
	Align(a, b *seq.SeqGrp) (*seq.SeqGrp, error)
}

// Command templates. The two %s are replaced by fasta file names.
const (
	MuscleProfile  = "muscle -profile -in1 %s -in2 %s"
	UserProfileCmd = "fmuscle -profile -in1 %s -in2 %s -out /dev/stdout"
	UserPairCmd    = "needle -auto -asequence %s -bsequence %s -stdout -aformat3 fasta"
)

// NeedlePair is the command for emboss needle with the given gap
// penalties. Usually 10 and 0.5.
func NeedlePair(gapopen, gapextend float64) string {
	return fmt.Sprintf("needle -auto -asequence %%s -bsequence %%s -gapopen %g -gapextend %g -outfile /dev/stdout -aformat fasta",
		gapopen, gapextend)
}

// ExtAligner runs a program. Its standard output must be fasta.
type ExtAligner struct {
	Template string
	Lg       *log.Logger // optional
}

// wrtGrp writes a group to a temporary fasta file.
func wrtGrp(g *seq.SeqGrp) (string, error) {
	fp, err := os.CreateTemp("", "coevo_*.fa")
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	if err := seq.WriteFasta(fp, g.SeqSlc(), &seq.Options{}); err != nil {
		fp.Close()
		os.Remove(fp.Name())
		return "", err
	}
	if err := fp.Close(); err != nil {
		os.Remove(fp.Name())
		return "", err
	}
	return fp.Name(), nil
}

// Align writes a and b to files, runs the command and reads what it
// prints. The files are removed before returning.
func (e ExtAligner) Align(a, b *seq.SeqGrp) (*seq.SeqGrp, error) {
	if strings.Count(e.Template, "%s") != 2 {
		return nil, fmt.Errorf("aligner command %q needs two %%s for file names", e.Template)
	}
	f1, err := wrtGrp(a)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f1)
	f2, err := wrtGrp(b)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f2)

	args := strings.Fields(fmt.Sprintf(e.Template, f1, f2))
	if e.Lg != nil {
		e.Lg.Println("running", strings.Join(args, " "))
	}
	cmd := exec.Command(args[0], args[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	ret := new(seq.SeqGrp)
	if err := seq.ReadFasta(&stdout, ret, &seq.Options{}); err != nil {
		return nil, fmt.Errorf("reading output of %s: %w", args[0], err)
	}
	return ret, nil
}

// IntAligner is a global alignment of two sequences, done here, with
// no external program. The zero value uses BLOSUM62 with a gap
// opening of 10 and extension of 0.5.
type IntAligner struct {
	Mat   *submat.Submat
	Pnlty gotoh.Pnlty // Open is charged in addition to Wdn for the first gap
}

var defaultPnlty = gotoh.Pnlty{Open: 9.5, Wdn: 0.5}

// Align works on one sequence from each group. Gaps are removed first.
func (ia IntAligner) Align(a, b *seq.SeqGrp) (*seq.SeqGrp, error) {
	if a.NSeq() != 1 || b.NSeq() != 1 {
		return nil, errors.New("internal aligner only does pairs of sequences")
	}
	mat, pnlty := ia.Mat, ia.Pnlty
	if mat == nil {
		mat = submat.Blosum62()
	}
	if pnlty == (gotoh.Pnlty{}) {
		pnlty = defaultPnlty
	}
	sa, sb := a.SeqSlc()[0].Ungapped(), b.SeqSlc()[0].Ungapped()
	s, t := sa.GetSeq(), sb.GetSeq()

	var pairlist []gotoh.Pair
	if len(s) == 0 || len(t) == 0 {
		pairlist = noOverlap(len(s), len(t))
	} else {
		pairlist, _ = gotoh.Align(mat.ScoreSeqs(s, t), &pnlty)
	}
	sOut, tOut := gotoh.Strings(pairlist, s, t, common.GapChar)
	ret := new(seq.SeqGrp)
	ret.Append(seq.NewSeq(sa.Cmmt(), sOut), seq.NewSeq(sb.Cmmt(), tOut))
	return ret, nil
}

// noOverlap is the alignment when one sequence is empty.
func noOverlap(ns, nt int) []gotoh.Pair {
	ret := make([]gotoh.Pair, 0, ns+nt)
	for i := 0; i < ns; i++ {
		ret = append(ret, gotoh.Pair{I: i, J: -1})
	}
	for j := 0; j < nt; j++ {
		ret = append(ret, gotoh.Pair{I: -1, J: j})
	}
	return ret
}
