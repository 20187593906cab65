package dist

import (
	"fmt"

	"github.com/andrew-torda/coevo/pdb"
	"github.com/andrew-torda/coevo/pkg/common"
	"github.com/andrew-torda/coevo/pkg/tab"
)

// CmdFlag holds the command line for get_dists.
type CmdFlag struct {
	ChainL    string
	ChainR    string // if empty, distances are within ChainL
	DistAtoms string // Cb, NoH or Any
	MapL      string
	MapR      string
	NWorker   int
	LogFile   string
	OutFile   string
	PdbFile   string
}

// Mymain gets distances between residues and writes them as a table.
func Mymain(flags *CmdFlag) error {
	sel := Cb
	if flags.DistAtoms != "" {
		var err error
		if sel, err = ParseAtomSel(flags.DistAtoms); err != nil {
			return err
		}
	}
	lg, err := common.LogBeside(flags.LogFile, flags.OutFile)
	if err != nil {
		return err
	}
	chains, err := pdb.ReadCoord(flags.PdbFile, lg)
	if err != nil {
		return err
	}
	left, err := chains.Find(flags.ChainL)
	if err != nil {
		return fmt.Errorf("%s: %w", flags.PdbFile, err)
	}
	var pairs []Pair
	if flags.ChainR == "" {
		pairs = IntraPairs(left)
	} else {
		right, err := chains.Find(flags.ChainR)
		if err != nil {
			return fmt.Errorf("%s: %w", flags.PdbFile, err)
		}
		pairs = InterPairs(left, right)
	}
	lg.Println(len(pairs), "residue pairs,", sel, "atoms,", flags.NWorker, "workers")
	recs, err := Distances(pairs, sel, flags.NWorker)
	if err != nil {
		return err
	}
	var lmap, rmap *tab.Table
	if flags.MapL != "" {
		if lmap, err = LoadMap(flags.MapL, Left); err != nil {
			return err
		}
	}
	if flags.MapR != "" {
		if rmap, err = LoadMap(flags.MapR, Right); err != nil {
			return err
		}
	}
	t, err := ConvertResnums(Table(recs), lmap, rmap)
	if err != nil {
		return err
	}
	common.WarnExists(flags.OutFile)
	return t.WriteFile(flags.OutFile)
}

// distOpts reads tables with two index columns and a header.
var distOpts = tab.Opts{Delim: '\t', Header: true, NIndex: 2}

// ConvertMain reads a table from get_dists, written with residue
// numbers, and puts alignment columns in their place. Both maps are
// needed.
func ConvertMain(distFile, lmapFile, rmapFile, outFile string) error {
	dists, err := tab.ReadFile(distFile, distOpts)
	if err != nil {
		return err
	}
	lmap, err := LoadMap(lmapFile, Left)
	if err != nil {
		return err
	}
	rmap, err := LoadMap(rmapFile, Right)
	if err != nil {
		return err
	}
	t, err := ConvertResnums(dists, lmap, rmap)
	if err != nil {
		return err
	}
	common.WarnExists(outFile)
	return t.WriteFile(outFile)
}

// MinFlag holds the command line for min_dists.
type MinFlag struct {
	Records bool // keep whole records, chosen by Distance
	File1   string
	File2   string
	OutFile string
}

// MinMain combines two distance tables, keeping the closer value for
// each pair of columns. This is for a chain that touches two copies
// of a partner.
func MinMain(flags *MinFlag) error {
	a, err := tab.ReadFile(flags.File1, distOpts)
	if err != nil {
		return err
	}
	b, err := tab.ReadFile(flags.File2, distOpts)
	if err != nil {
		return err
	}
	var t *tab.Table
	if flags.Records {
		t, err = tab.MinRecords(a, b, Distance)
	} else {
		t, err = tab.MinMerge(a, b)
	}
	if err != nil {
		return err
	}
	common.WarnExists(flags.OutFile)
	return t.WriteFile(flags.OutFile)
}
