package colmap

import (
	"fmt"
	"io"
	"log"

	"github.com/andrew-torda/coevo/pdb"
	"github.com/andrew-torda/coevo/pkg/common"
	"github.com/andrew-torda/coevo/pkg/seq"
)

// CmdFlag holds the command line for map_column_to_resnum.
type CmdFlag struct {
	RefID      string // map through this sequence, not the whole alignment
	IntAln     bool   // internal aligner, only with RefID
	UserAln    bool   // use ProfileCmd or PairCmd
	ProfileCmd string
	PairCmd    string
	LogFile    string
	OutFile    string
	ChainID    string
	PdbFile    string
	AlnFile    string
}

// pickAligner decides how the chain gets aligned.
func pickAligner(flags *CmdFlag, lg *log.Logger) Aligner {
	switch {
	case flags.RefID != "" && flags.IntAln:
		return IntAligner{}
	case flags.RefID != "" && flags.UserAln:
		return ExtAligner{Template: flags.PairCmd, Lg: lg}
	case flags.RefID != "":
		return ExtAligner{Template: NeedlePair(10, 0.5), Lg: lg}
	case flags.UserAln:
		return ExtAligner{Template: flags.ProfileCmd, Lg: lg}
	}
	if flags.IntAln {
		lg.Println("internal aligner ignored without a reference sequence")
	}
	return ExtAligner{Template: MuscleProfile, Lg: lg}
}

// Mymain maps alignment columns to residues and writes the triples.
// warn gets warnings about columns that were lost.
func Mymain(flags *CmdFlag, warn io.Writer) error {
	lg, err := common.LogBeside(flags.LogFile, flags.OutFile)
	if err != nil {
		return err
	}
	aln, err := seq.Readfile(flags.AlnFile, &seq.Options{})
	if err != nil {
		return err
	}
	chains, err := pdb.ReadCoord(flags.PdbFile, lg)
	if err != nil {
		return err
	}
	chain, err := chains.Find(flags.ChainID)
	if err != nil {
		return fmt.Errorf("%s: %w", flags.PdbFile, err)
	}
	cs := ChainSeqOf(chain)
	lg.Println("chain", cs.ID, "has", len(cs.Seq), "residues, alignment has", aln.NSeq(), "sequences")

	al := pickAligner(flags, lg)
	var triples []Triple
	if flags.RefID != "" {
		triples, err = MapToRef(aln, flags.RefID, cs, al, warn)
		if err != nil {
			return fmt.Errorf("%w in alignment %s", err, flags.AlnFile)
		}
	} else if triples, err = MapProfile(aln, cs, al, warn); err != nil {
		return err
	}

	fp, err := common.OutFile(flags.OutFile)
	if err != nil {
		return err
	}
	if err := WriteTriples(fp, triples); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
