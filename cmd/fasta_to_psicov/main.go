// Fasta to psicov input, as a filter.

package main

import (
	"bufio"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/coevo/pkg/alnfmt"
	"github.com/andrew-torda/coevo/pkg/common"
)

func main() {
	if len(os.Args) > 1 {
		fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "< fasta > psicov")
		os.Exit(common.ExitUsageError)
	}
	if err := alnfmt.ToPsicov(bufio.NewReader(os.Stdin), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(common.ExitFailure)
	}
	os.Exit(common.ExitSuccess)
}
