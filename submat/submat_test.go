package submat_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrew-torda/coevo/submat"
)

func TestA(t *testing.T) {
	for _, get := range []func() (*submat.Submat, error){
		func() (*submat.Submat, error) { return submat.Blosum62(), nil },
		func() (*submat.Submat, error) { return submat.Read(filepath.Join(".", "blosum62.txt")) },
	} {
		smat, err := get()
		if err != nil {
			t.Fatal(err)
		}
		b := []byte{'a', 'C', 'w'}
		s := ""
		for _, x := range b {
			for _, y := range b {
				s += fmt.Sprint(string(x), " ", string(y), " ", smat.Score(x, y))
			}
		}
		if s != "a a 4a C 0a w -3C a 0C C 9C w -2w a -3w C -2w w 11" {
			t.Fatal("Got wrong score string from matrix", s)
		}
	}
}

func TestUnknown(t *testing.T) {
	smat := submat.Blosum62()
	if smat.Score('J', 'A') != smat.Score('X', 'A') {
		t.Fatal("unknown residue not scored like X")
	}
	m := smat.ScoreSeqs([]byte("AW"), []byte("W"))
	if m.Mat[0][0] != -3 || m.Mat[1][0] != 11 {
		t.Fatal("ScoreSeqs", m.Mat)
	}
}

func TestBroken(t *testing.T) {
	for _, s := range []string{
		"",
		"# only a comment\n",
		"A B\nA 1 2\n",
		"A B\nA 1 2\nB 1\n",
		"A BB\nA 1 2\n",
		"A B\nA 1 x\nB 1 2\n",
	} {
		if _, err := submat.ReadFrom(strings.NewReader(s)); err == nil {
			t.Errorf("no error reading %q", s)
		}
	}
}
