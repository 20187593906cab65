// 12 Oct 2026
// Map alignment columns to residue numbers in a chain from a structure.

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/coevo/pkg/colmap"
	"github.com/andrew-torda/coevo/pkg/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[options] chain_id pdb_file aln.fa")
	flag.PrintDefaults()
}

func main() {
	var flags colmap.CmdFlag
	flag.StringVar(&flags.RefID, "r", "", "map using this reference sequence id from the alignment")
	flag.StringVar(&flags.RefID, "refid", "", "same as -r")
	flag.BoolVar(&flags.IntAln, "i", false, "use the internal global aligner (only with -r)")
	flag.BoolVar(&flags.IntAln, "int_aln", false, "same as -i")
	flag.BoolVar(&flags.UserAln, "user_aln", false, "use the aligners from -profile_cmd and -pair_cmd")
	flag.StringVar(&flags.ProfileCmd, "profile_cmd", colmap.UserProfileCmd, "profile aligner for -user_aln, two %s for files")
	flag.StringVar(&flags.PairCmd, "pair_cmd", colmap.UserPairCmd, "pair aligner for -user_aln, two %s for files")
	flag.StringVar(&flags.LogFile, "l", "", "log file, or stdout (stderr if results go to stdout)")
	flag.StringVar(&flags.OutFile, "o", "", "output file, default stdout")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "wrong number of arguments")
		usage()
		os.Exit(common.ExitUsageError)
	}
	flags.ChainID, flags.PdbFile, flags.AlnFile = flag.Arg(0), flag.Arg(1), flag.Arg(2)
	if err := colmap.Mymain(&flags, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, colmap.ErrNoRef) {
			fmt.Fprintln(os.Stderr, "check the sequence id given to -r")
		}
		os.Exit(common.ExitFailure)
	}
	os.Exit(common.ExitSuccess)
}
