// Package pdb/cmmn has common definitions for coordinates and
// pdb files. Both the old format and mmcif readers fill these in.
package cmmn

import (
	"fmt"
	"sort"
)

type Xyz struct{ X, Y, Z float32 }
type XyzSl []Xyz // xyz's are coordinates

// Atom is a name like "CA" and its coordinates.
type Atom struct {
	Name string
	Xyz  Xyz
}

// Residue holds everything we keep from one residue in one model.
type Residue struct {
	Name    string // three letter name, like "GLY"
	Num     int    // residue number from file. Not a real index
	InsCode byte   // Insertion code, ' ' if there is none
	Het     bool   // came from HETATM records
	Atoms   []Atom
}

// A simple structure for one model, one chain and its residues
type Chain struct {
	ChainID  string // Name, like "A" or "B"
	MdlNum   int16  // Model number
	Residues []Residue
}

// threeToOne maps residue names to their one letter codes.
var threeToOne = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O', "ASX": 'B', "GLX": 'Z', "XLE": 'J',
}

// OneLetter converts a three letter residue name to one letter.
// Anything we do not know becomes X.
func OneLetter(name string) byte {
	if c, ok := threeToOne[name]; ok {
		return c
	}
	return 'X'
}

// OneLetter returns the one letter code of the residue.
func (r *Residue) OneLetter() byte { return OneLetter(r.Name) }

// Atom looks up an atom by name. ok is false if the residue does not
// have it.
func (r *Residue) Atom(name string) (Xyz, bool) {
	for _, a := range r.Atoms {
		if a.Name == name {
			return a.Xyz, true
		}
	}
	return Xyz{}, false
}

// String is mainly for messages, like "GLY 42A"
func (r *Residue) String() string {
	if r.InsCode == ' ' || r.InsCode == 0 {
		return fmt.Sprintf("%s %d", r.Name, r.Num)
	}
	return fmt.Sprintf("%s %d%c", r.Name, r.Num, r.InsCode)
}

// This is obviously just a slice of chains, but we have to define a type
// if we want to define a method on it
type ChnSl []Chain

// ChainNames returns a sorted slice with the names of the chains.
func (chns ChnSl) ChainNames() []string {
	ret := make([]string, len(chns))
	for i, k := range chns {
		ret[i] = k.ChainID
	}
	sort.Strings(ret)
	return ret
}

// Find returns the chain with the given identifier.
func (chns ChnSl) Find(id string) (*Chain, error) {
	for i := range chns {
		if chns[i].ChainID == id {
			return &chns[i], nil
		}
	}
	return nil, fmt.Errorf("chain %q not found, have %v", id, chns.ChainNames())
}

// NAtom counts the atoms in all the chains.
func (chns ChnSl) NAtom() (n int) {
	for _, c := range chns {
		for _, r := range c.Residues {
			n += len(r.Atoms)
		}
	}
	return n
}

// Builder collects atoms, one at a time, into chains and residues.
// Readers call Add for every atom record and Chains at the end.
// A new residue starts whenever the chain, number, insertion code or
// het flag change from the previous atom. Within a residue, an atom
// name seen for the second time is an alternate location and is
// dropped. A second residue name at the same place (microheterogeneity)
// is treated the same way: the first name wins and atoms of the other
// are dropped.
type Builder struct {
	chains ChnSl
	ndx    map[string]int // chain id to index in chains
	mdl    int16
}

// NewBuilder returns a builder for model mdl.
func NewBuilder(mdl int16) *Builder {
	return &Builder{ndx: make(map[string]int), mdl: mdl}
}

// Add puts one atom into the structure.
func (b *Builder) Add(chainID string, res Residue, at Atom) {
	ic, ok := b.ndx[chainID]
	if !ok {
		ic = len(b.chains)
		b.ndx[chainID] = ic
		b.chains = append(b.chains, Chain{ChainID: chainID, MdlNum: b.mdl})
	}
	chn := &b.chains[ic]
	n := len(chn.Residues)
	if n == 0 || !sameRes(&chn.Residues[n-1], &res) {
		res.Atoms = nil
		chn.Residues = append(chn.Residues, res)
		n++
	}
	last := &chn.Residues[n-1]
	if last.Name != res.Name {
		return
	}
	if _, seen := last.Atom(at.Name); seen {
		return
	}
	last.Atoms = append(last.Atoms, at)
}

func sameRes(a, b *Residue) bool {
	return a.Num == b.Num && a.InsCode == b.InsCode && a.Het == b.Het
}

// Chains returns what has been built.
func (b *Builder) Chains() ChnSl { return b.chains }
