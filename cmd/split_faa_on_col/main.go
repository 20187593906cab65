// Cut an alignment in two at a column.

package main

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/andrew-torda/coevo/pkg/alnfmt"
	"github.com/andrew-torda/coevo/pkg/common"
)

func main() {
	if len(os.Args) != 5 {
		fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "aln.fa nth_col left.fa right.fa")
		os.Exit(common.ExitUsageError)
	}
	n, err := strconv.Atoi(os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, "nth_col:", err)
		os.Exit(common.ExitUsageError)
	}
	if err := alnfmt.SplitMain(os.Args[1], n, os.Args[3], os.Args[4]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(common.ExitFailure)
	}
	os.Exit(common.ExitSuccess)
}
