// Glue two alignments side by side.

package main

import (
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/coevo/pkg/alnfmt"
	"github.com/andrew-torda/coevo/pkg/common"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "left.fa right.fa > left_right.fa")
		os.Exit(common.ExitUsageError)
	}
	if err := alnfmt.ConcatMain(os.Args[1], os.Args[2], "", os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(common.ExitFailure)
	}
	os.Exit(common.ExitSuccess)
}
