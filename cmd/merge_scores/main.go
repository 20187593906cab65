// 14 Oct 2026
// Load scores from coevolution programs and merge them.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/coevo/pkg/common"
	"github.com/andrew-torda/coevo/pkg/scores"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[options] prog:file[:suffix] ...")
	fmt.Fprintln(os.Stderr, "programs:", scores.Progs())
	flag.PrintDefaults()
}

func main() {
	var flags scores.CmdFlag
	flag.IntVar(&flags.LeftLength, "l", 0, "columns in the left protein, drop pairs within one protein")
	flag.StringVar(&flags.Exempt, "x", "infCalc", "comma separated programs whose pairs are never dropped")
	flag.StringVar(&flags.OutFile, "o", "", "output file, default stdout")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(common.ExitUsageError)
	}
	flags.Specs = flag.Args()
	if err := scores.Mymain(&flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(common.ExitFailure)
	}
	os.Exit(common.ExitSuccess)
}
