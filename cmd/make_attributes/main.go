// Per-residue scores to chimera attributes.

package main

import (
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/coevo/pkg/attr"
	"github.com/andrew-torda/coevo/pkg/common"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "scores.tab chain_id > attributes.txt")
		os.Exit(common.ExitUsageError)
	}
	if err := attr.Mymain(os.Args[1], os.Args[2], ""); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(common.ExitFailure)
	}
	os.Exit(common.ExitSuccess)
}
