// Swap residue numbers for alignment columns in a distance table.

package main

import (
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/coevo/pkg/common"
	"github.com/andrew-torda/coevo/pkg/dist"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "resn_dists left_map right_map > coln_dists")
		os.Exit(common.ExitUsageError)
	}
	if err := dist.ConvertMain(os.Args[1], os.Args[2], os.Args[3], ""); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(common.ExitFailure)
	}
	os.Exit(common.ExitSuccess)
}
