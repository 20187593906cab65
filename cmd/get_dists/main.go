// 12 Oct 2026
// Distances between residues, within a chain or between two chains.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"runtime"

	"github.com/andrew-torda/coevo/pkg/common"
	"github.com/andrew-torda/coevo/pkg/dist"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "-c chain [options] pdb_file")
	flag.PrintDefaults()
}

func main() {
	var flags dist.CmdFlag
	flag.StringVar(&flags.ChainL, "c", "", "(required) single or left chain id")
	flag.StringVar(&flags.ChainL, "chainL", "", "same as -c")
	flag.StringVar(&flags.ChainR, "chainR", "", "right chain id")
	flag.StringVar(&flags.DistAtoms, "d", "Cb", "Cb, NoH or Any atoms for distances")
	flag.StringVar(&flags.DistAtoms, "dist_atoms", "Cb", "same as -d")
	flag.StringVar(&flags.MapL, "mapL", "", "map from residue number to alignment column, left chain")
	flag.StringVar(&flags.MapR, "mapR", "", "map from residue number to alignment column, right chain")
	flag.IntVar(&flags.NWorker, "w", runtime.NumCPU(), "number of workers")
	flag.StringVar(&flags.LogFile, "l", "", "log file, or stdout (stderr if results go to stdout)")
	flag.StringVar(&flags.OutFile, "o", "", "output file, default stdout")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: specify a pdb_file")
		usage()
		os.Exit(common.ExitUsageError)
	}
	if flags.ChainL == "" {
		fmt.Fprintln(os.Stderr, "Error: specify a single or left chain")
		usage()
		os.Exit(common.ExitUsageError)
	}
	flags.PdbFile = flag.Arg(0)
	if err := dist.Mymain(&flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(common.ExitFailure)
	}
	os.Exit(common.ExitSuccess)
}
