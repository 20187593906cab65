// Fasta to phylip, as a filter.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/coevo/pkg/alnfmt"
	"github.com/andrew-torda/coevo/pkg/common"
)

func main() {
	var idmap string
	flag.StringVar(&idmap, "m", "", "use numbered ids and write the original ids to this file")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[-m idmap] < fasta > phy")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(common.ExitUsageError)
	}
	w := bufio.NewWriter(os.Stdout)
	if err := alnfmt.PhyMain(bufio.NewReader(os.Stdin), w, idmap); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(common.ExitFailure)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(common.ExitFailure)
	}
	os.Exit(common.ExitSuccess)
}
