// Package pdbtest makes small structures in old pdb format for the
// tests of the packages that read or use coordinates. Writing the
// fixed columns by hand is too easy to get wrong.
package pdbtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Atom is one line in a pdb file. Zero values are filled in. Alt and
// Ins of zero become spaces and Rec defaults to ATOM.
type Atom struct {
	Rec     string
	Name    string
	Alt     byte
	ResName string
	Chain   byte
	ResNum  int
	Ins     byte
	X, Y, Z float32
}

func spc(b byte) byte {
	if b == 0 {
		return ' '
	}
	return b
}

// Line returns the atom formatted with serial number n.
func (a Atom) Line(n int) string {
	rec := a.Rec
	if rec == "" {
		rec = "ATOM"
	}
	name := a.Name
	if len(name) < 4 {
		name = " " + name
	}
	return fmt.Sprintf("%-6s%5d %-4s%c%3s %c%4d%c   %8.3f%8.3f%8.3f  1.00  0.00",
		rec, n, name, spc(a.Alt), a.ResName, spc(a.Chain), a.ResNum, spc(a.Ins), a.X, a.Y, a.Z)
}

// Text gives a whole file. Each slice of atoms is one model. With more
// than one model, MODEL and ENDMDL records are written.
func Text(mdls ...[]Atom) string {
	var b strings.Builder
	b.WriteString("HEADER    TEST STRUCTURE\n")
	n := 1
	for im, atoms := range mdls {
		if len(mdls) > 1 {
			fmt.Fprintf(&b, "MODEL     %4d\n", im+1)
		}
		for _, a := range atoms {
			b.WriteString(a.Line(n))
			b.WriteByte('\n')
			n++
		}
		if len(mdls) > 1 {
			b.WriteString("ENDMDL\n")
		}
	}
	b.WriteString("END\n")
	return b.String()
}

// Residue gives the backbone plus CB for a residue at a position along
// x. Glycine has no CB.
func Residue(chain byte, resName string, num int, x float32) []Atom {
	ret := []Atom{
		{Name: "N", ResName: resName, Chain: chain, ResNum: num, X: x - 1},
		{Name: "CA", ResName: resName, Chain: chain, ResNum: num, X: x},
		{Name: "C", ResName: resName, Chain: chain, ResNum: num, X: x + 1},
	}
	if resName != "GLY" {
		ret = append(ret, Atom{Name: "CB", ResName: resName, Chain: chain, ResNum: num, X: x, Y: 1})
	}
	return ret
}

// WriteFile puts text in a file in a temporary directory and returns
// the name. The directory goes away with the test.
func WriteFile(t testing.TB, name, text string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fname, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return fname
}
