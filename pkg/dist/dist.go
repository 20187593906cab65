// Package dist gets residue-residue distances from a structure.
// The distance between two residues is the smallest distance over
// the atoms we have chosen, by default the beta carbons.
package dist

import (
	"errors"
	"fmt"
	"sync"

	"github.com/andrew-torda/coevo/pdb/cmmn"
	"github.com/andrew-torda/coevo/pdb/geom"
	"github.com/andrew-torda/coevo/pkg/tab"
)

// AtomSel says which atoms of a residue are used.
type AtomSel byte

const (
	Cb  AtomSel = iota // beta carbon, alpha carbon for glycine
	NoH                // all atoms except hydrogens
	Any                // all atoms
)

var selNames = []string{"Cb", "NoH", "Any"}

func (a AtomSel) String() string { return selNames[a] }

// ParseAtomSel takes a name from the command line.
func ParseAtomSel(s string) (AtomSel, error) {
	for i, n := range selNames {
		if n == s {
			return AtomSel(i), nil
		}
	}
	return Cb, fmt.Errorf("atom selection must be one of %v, not %q", selNames, s)
}

// structCarbon gives the atom that stands for a residue.
func structCarbon(r *cmmn.Residue) (cmmn.Xyz, bool) {
	if r.Name == "GLY" {
		return r.Atom("CA")
	}
	return r.Atom("CB")
}

// Usable returns the residues that are not HETATMs and have a CB,
// or a CA for glycine.
func Usable(c *cmmn.Chain) []*cmmn.Residue {
	var ret []*cmmn.Residue
	for i := range c.Residues {
		r := &c.Residues[i]
		if r.Het {
			continue
		}
		if _, ok := structCarbon(r); ok {
			ret = append(ret, r)
		}
	}
	return ret
}

// coords collects the coordinates for a residue.
func coords(r *cmmn.Residue, sel AtomSel) cmmn.XyzSl {
	switch sel {
	case Cb:
		if x, ok := structCarbon(r); ok {
			return cmmn.XyzSl{x}
		}
		return nil
	case NoH:
		var ret cmmn.XyzSl
		for _, a := range r.Atoms {
			if len(a.Name) > 0 && a.Name[0] == 'H' {
				continue
			}
			ret = append(ret, a.Xyz)
		}
		return ret
	}
	ret := make(cmmn.XyzSl, len(r.Atoms))
	for i, a := range r.Atoms {
		ret[i] = a.Xyz
	}
	return ret
}

// ResDist is the smallest distance between the selected atoms of two
// residues.
func ResDist(a, b *cmmn.Residue, sel AtomSel) (float32, error) {
	ca, cb := coords(a, sel), coords(b, sel)
	if len(ca) == 0 || len(cb) == 0 {
		return 0, fmt.Errorf("no %s atoms in %s or %s", sel, a.String(), b.String())
	}
	return geom.MinDist(ca, cb), nil
}

// Pair is two residues whose distance we want.
type Pair struct{ L, R *cmmn.Residue }

// IntraPairs is every pair i < j within one chain.
func IntraPairs(c *cmmn.Chain) []Pair {
	res := Usable(c)
	var ret []Pair
	for i := range res {
		for j := i + 1; j < len(res); j++ {
			ret = append(ret, Pair{res[i], res[j]})
		}
	}
	return ret
}

// InterPairs is every residue of a with every residue of b.
func InterPairs(a, b *cmmn.Chain) []Pair {
	ra, rb := Usable(a), Usable(b)
	ret := make([]Pair, 0, len(ra)*len(rb))
	for _, x := range ra {
		for _, y := range rb {
			ret = append(ret, Pair{x, y})
		}
	}
	return ret
}

// Record is one line of output.
type Record struct {
	LResn, RResn int
	Dist         float32
	LAA, RAA     byte
}

// doChunk fills out records for one piece of the pair list.
func doChunk(pairs []Pair, recs []Record, sel AtomSel) error {
	for i, p := range pairs {
		d, err := ResDist(p.L, p.R, sel)
		if err != nil {
			return err
		}
		recs[i] = Record{LResn: p.L.Num, RResn: p.R.Num, Dist: d,
			LAA: p.L.OneLetter(), RAA: p.R.OneLetter()}
	}
	return nil
}

// Distances calculates a record for each pair. The work is split
// over nworker goroutines, but records come back in the order of
// pairs.
func Distances(pairs []Pair, sel AtomSel, nworker int) ([]Record, error) {
	if nworker < 1 {
		nworker = 1
	}
	recs := make([]Record, len(pairs))
	chunk := (len(pairs) + nworker - 1) / nworker
	if chunk == 0 {
		return recs, nil
	}
	var wg sync.WaitGroup
	errs := make([]error, nworker)
	for w := 0; w < nworker; w++ {
		start, end := w*chunk, (w+1)*chunk
		if start >= len(pairs) {
			break
		}
		if end > len(pairs) {
			end = len(pairs)
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			errs[w] = doChunk(pairs[start:end], recs[start:end], sel)
		}(w, start, end)
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return recs, nil
}

// Column names in distance tables
const (
	LResn    = "Left_resn"
	RResn    = "Right_resn"
	Distance = "Distance"
	LAA      = "Left_AA"
	RAA      = "Right_AA"
	LCol     = "Left_Column"
	RCol     = "Right_Column"
)

// Table puts records in a table indexed by the two residue numbers.
func Table(recs []Record) *tab.Table {
	t, _ := tab.New([]string{LResn, RResn, Distance, LAA, RAA},
		[]tab.Kind{tab.Int, tab.Int, tab.Float, tab.Str, tab.Str}, 2)
	t.Rows = make([][]tab.Value, len(recs))
	for i, r := range recs {
		t.Rows[i] = []tab.Value{
			tab.IntVal(r.LResn), tab.IntVal(r.RResn),
			tab.FloatVal(float64(r.Dist)),
			tab.StrVal(string(r.LAA)), tab.StrVal(string(r.RAA)),
		}
	}
	return t
}
