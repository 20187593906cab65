// Package attr writes per-residue values as chimera attribute files.
package attr

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/andrew-torda/coevo/pkg/common"
	"github.com/andrew-torda/coevo/pkg/tab"
)

// Name makes a legal attribute name. Chimera will not take names
// that start with a digit, an underscore or a capital letter.
func Name(col string) string { return "a_" + col }

// Load reads a tab separated file with a header. The first column
// is the residue number.
func Load(fname string) (*tab.Table, error) {
	return tab.ReadFile(fname, tab.Opts{Delim: '\t', Header: true, NIndex: 1})
}

// Write writes one attribute for each value column of t. The table
// must be indexed by residue number. If chain is not empty, each
// residue is given as :resn.chain. Missing values are left out.
func Write(w io.Writer, t *tab.Table, chain string) error {
	if t.NIndex != 1 || t.Kinds[0] != tab.Int {
		return errors.New("attributes need a table indexed by residue number")
	}
	chainSel := ""
	if chain != "" {
		chainSel = "." + chain
	}
	bw := bufio.NewWriter(w)
	for c := 1; c < len(t.Cols); c++ {
		fmt.Fprintf(bw, "attribute: %s\nmatch mode: 1-to-1\nrecipient: residues\n", Name(t.Cols[c]))
		for _, row := range t.Rows {
			v := row[c]
			if v.Missing || row[0].Missing {
				continue
			}
			if f, ok := v.Num(); ok {
				fmt.Fprintf(bw, "\t:%d%s\t%.6e\n", row[0].I, chainSel, f)
			} else {
				fmt.Fprintf(bw, "\t:%d%s\t%s\n", row[0].I, chainSel, v.S)
			}
		}
	}
	return bw.Flush()
}

// Mymain converts a file of per-residue scores to attributes.
func Mymain(scoreFile, chain, outFile string) error {
	t, err := Load(scoreFile)
	if err != nil {
		return err
	}
	fp, err := common.OutFile(outFile)
	if err != nil {
		return err
	}
	if err := Write(fp, t, chain); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
