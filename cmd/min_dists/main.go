// Closest distances over two distance tables.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/coevo/pkg/common"
	"github.com/andrew-torda/coevo/pkg/dist"
)

func main() {
	var flags dist.MinFlag
	flag.BoolVar(&flags.Records, "r", false, "keep whole rows with the smaller Distance")
	flag.StringVar(&flags.OutFile, "o", "", "output file, default stdout")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[-r] dists1 dists2 > mindists")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(common.ExitUsageError)
	}
	flags.File1, flags.File2 = flag.Arg(0), flag.Arg(1)
	if err := dist.MinMain(&flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(common.ExitFailure)
	}
	os.Exit(common.ExitSuccess)
}
