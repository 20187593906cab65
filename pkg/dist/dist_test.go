package dist_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrew-torda/coevo/pdb/cmmn"
	"github.com/andrew-torda/coevo/pdb/pdbfmt"
	"github.com/andrew-torda/coevo/pdb/pdbtest"
	"github.com/andrew-torda/coevo/pkg/dist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoChains has, in chain A, an alanine with a hydrogen, a glycine,
// a water and a serine without CB. Chain B is a leucine and a glycine.
func twoChains(t *testing.T) cmmn.ChnSl {
	t.Helper()
	var atoms []pdbtest.Atom
	atoms = append(atoms, pdbtest.Residue('A', "ALA", 1, 0)...)
	atoms = append(atoms, pdbtest.Atom{Name: "H", ResName: "ALA", Chain: 'A', ResNum: 1, X: 2.5})
	atoms = append(atoms, pdbtest.Residue('A', "GLY", 2, 4)...)
	atoms = append(atoms,
		pdbtest.Atom{Rec: "HETATM", Name: "O", ResName: "HOH", Chain: 'A', ResNum: 3, X: 4, Y: 2},
		pdbtest.Atom{Name: "CA", ResName: "SER", Chain: 'A', ResNum: 4, X: 8})
	atoms = append(atoms, pdbtest.Residue('B', "LEU", 10, 10)...)
	atoms = append(atoms, pdbtest.Residue('B', "GLY", 11, 14)...)
	chns, err := pdbfmt.Read(strings.NewReader(pdbtest.Text(atoms)))
	require.NoError(t, err)
	return chns
}

func chain(t *testing.T, chns cmmn.ChnSl, id string) *cmmn.Chain {
	t.Helper()
	c, err := chns.Find(id)
	require.NoError(t, err)
	return c
}

func TestAtomSel(t *testing.T) {
	for _, s := range []string{"Cb", "NoH", "Any"} {
		sel, err := dist.ParseAtomSel(s)
		require.NoError(t, err)
		assert.Equal(t, s, sel.String())
	}
	_, err := dist.ParseAtomSel("CA")
	assert.Error(t, err)
}

func TestUsable(t *testing.T) {
	a := chain(t, twoChains(t), "A")
	require.Len(t, a.Residues, 4)
	var nums []int
	for _, r := range dist.Usable(a) {
		nums = append(nums, r.Num)
	}
	assert.Equal(t, []int{1, 2}, nums, "water and serine without CB are not usable")
}

func TestResDist(t *testing.T) {
	a := chain(t, twoChains(t), "A")
	ala, gly, ser := &a.Residues[0], &a.Residues[1], &a.Residues[3]
	for _, c := range []struct {
		sel  dist.AtomSel
		want float32
	}{
		{dist.Cb, 4.1231055}, // ala CB against gly CA
		{dist.NoH, 2},        // ala C against gly N
		{dist.Any, 0.5},      // the hydrogen
	} {
		d, err := dist.ResDist(ala, gly, c.sel)
		require.NoError(t, err)
		assert.InDelta(t, c.want, d, 1e-5, c.sel.String())
		back, _ := dist.ResDist(gly, ala, c.sel)
		assert.Equal(t, d, back, "distance must be symmetric")
	}
	_, err := dist.ResDist(ala, ser, dist.Cb)
	assert.Error(t, err)
	d, err := dist.ResDist(ala, ser, dist.Any)
	require.NoError(t, err)
	assert.InDelta(t, 5.5, d, 1e-5)
}

func TestPairs(t *testing.T) {
	chns := twoChains(t)
	a, b := chain(t, chns, "A"), chain(t, chns, "B")
	intra := dist.IntraPairs(a)
	require.Len(t, intra, 1)
	assert.Equal(t, 1, intra[0].L.Num)
	assert.Equal(t, 2, intra[0].R.Num)

	inter := dist.InterPairs(a, b)
	var got [][2]int
	for _, p := range inter {
		got = append(got, [2]int{p.L.Num, p.R.Num})
	}
	assert.Equal(t, [][2]int{{1, 10}, {1, 11}, {2, 10}, {2, 11}}, got)
	assert.Empty(t, dist.InterPairs(a, &cmmn.Chain{}))
}

func TestDistancesOrder(t *testing.T) {
	chns := twoChains(t)
	pairs := dist.InterPairs(chain(t, chns, "A"), chain(t, chns, "B"))
	serial, err := dist.Distances(pairs, dist.Cb, 1)
	require.NoError(t, err)
	for _, nw := range []int{0, 2, 3, 8} {
		par, err := dist.Distances(pairs, dist.Cb, nw)
		require.NoError(t, err)
		assert.Equal(t, serial, par, "workers %d", nw)
	}
	assert.Equal(t, byte('A'), serial[0].LAA)
	assert.Equal(t, byte('L'), serial[0].RAA)
	assert.InDelta(t, 10, serial[0].Dist, 1e-5)

	none, err := dist.Distances(nil, dist.Cb, 4)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDistancesError(t *testing.T) {
	a := chain(t, twoChains(t), "A")
	pairs := []dist.Pair{{L: &a.Residues[0], R: &a.Residues[1]}, {L: &a.Residues[0], R: &a.Residues[3]}}
	_, err := dist.Distances(pairs, dist.Cb, 2)
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	recs := []dist.Record{{LResn: 1, RResn: 2, Dist: 4.1231055, LAA: 'A', RAA: 'G'}}
	var b bytes.Buffer
	require.NoError(t, dist.Table(recs).Write(&b))
	assert.Equal(t, "Left_resn\tRight_resn\tDistance\tLeft_AA\tRight_AA\n1\t2\t4.123106\tA\tG\n", b.String())
}

func TestConvertResnums(t *testing.T) {
	chns := twoChains(t)
	pairs := dist.InterPairs(chain(t, chns, "A"), chain(t, chns, "B"))
	recs, err := dist.Distances(pairs, dist.Cb, 2)
	require.NoError(t, err)

	lname := pdbtest.WriteFile(t, "left.map", "Column\tresn\tAA\n0\t1\tA\n5\t2\tG\n")
	rname := pdbtest.WriteFile(t, "right.map", "Column\tresn\tAA\n3\t10\tL\n")
	lmap, err := dist.LoadMap(lname, dist.Left)
	require.NoError(t, err)
	rmap, err := dist.LoadMap(rname, dist.Right)
	require.NoError(t, err)
	assert.Equal(t, []string{"Left_Column", "Left_resn"}, lmap.Cols)

	both, err := dist.ConvertResnums(dist.Table(recs), lmap, rmap)
	require.NoError(t, err)
	assert.Equal(t, []string{"Left_Column", "Right_Column", "Distance", "Left_AA", "Right_AA"}, both.Cols)
	assert.Equal(t, 2, both.NIndex)
	require.Equal(t, 2, both.NRow(), "residue 11 is not in the right map")
	assert.Equal(t, []int{0, 3}, []int{both.Rows[0][0].I, both.Rows[0][1].I})
	assert.Equal(t, []int{5, 3}, []int{both.Rows[1][0].I, both.Rows[1][1].I})

	lonly, err := dist.ConvertResnums(dist.Table(recs), lmap, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Left_Column", "Right_resn"}, lonly.Cols[:2])
	assert.Equal(t, 4, lonly.NRow())

	_, err = dist.LoadMap(lname, "Middle")
	assert.Error(t, err)
	bad := pdbtest.WriteFile(t, "bad.map", "a\tb\n1\t2\n")
	_, err = dist.LoadMap(bad, dist.Left)
	assert.Error(t, err)
}

func TestMains(t *testing.T) {
	var atoms []pdbtest.Atom
	atoms = append(atoms, pdbtest.Residue('A', "ALA", 1, 0)...)
	atoms = append(atoms, pdbtest.Residue('A', "GLY", 2, 4)...)
	atoms = append(atoms, pdbtest.Residue('B', "LEU", 10, 10)...)
	pdbFile := pdbtest.WriteFile(t, "two.pdb", pdbtest.Text(atoms))
	dir := filepath.Dir(pdbFile)
	resnOut := filepath.Join(dir, "resn.tab")

	flags := dist.CmdFlag{ChainL: "A", ChainR: "B", NWorker: 2, PdbFile: pdbFile, OutFile: resnOut}
	require.NoError(t, dist.Mymain(&flags))
	b, err := os.ReadFile(resnOut)
	require.NoError(t, err)
	assert.Equal(t, "Left_resn\tRight_resn\tDistance\tLeft_AA\tRight_AA\n"+
		"1\t10\t10.000000\tA\tL\n"+
		"2\t10\t6.082763\tG\tL\n", string(b))

	intra := flags
	intra.ChainR, intra.DistAtoms = "", "NoH"
	intra.OutFile = filepath.Join(dir, "intra.tab")
	require.NoError(t, dist.Mymain(&intra))
	b, _ = os.ReadFile(intra.OutFile)
	assert.Equal(t, "Left_resn\tRight_resn\tDistance\tLeft_AA\tRight_AA\n1\t2\t2.000000\tA\tG\n", string(b))

	lmap := filepath.Join(dir, "l.map")
	rmap := filepath.Join(dir, "r.map")
	require.NoError(t, os.WriteFile(lmap, []byte("Column\tresn\tAA\n7\t1\tA\n8\t2\tG\n"), 0o644))
	require.NoError(t, os.WriteFile(rmap, []byte("Column\tresn\tAA\n0\t10\tL\n"), 0o644))
	colOut := filepath.Join(dir, "col.tab")
	require.NoError(t, dist.ConvertMain(resnOut, lmap, rmap, colOut))
	b, _ = os.ReadFile(colOut)
	want := "Left_Column\tRight_Column\tDistance\tLeft_AA\tRight_AA\n" +
		"7\t0\t10.000000\tA\tL\n" +
		"8\t0\t6.082763\tG\tL\n"
	assert.Equal(t, want, string(b))

	mapped := flags
	mapped.MapL, mapped.MapR = lmap, rmap
	mapped.OutFile = filepath.Join(dir, "mapped.tab")
	require.NoError(t, dist.Mymain(&mapped))
	b, _ = os.ReadFile(mapped.OutFile)
	assert.Equal(t, want, string(b), "get_dists with maps is the same as converting")

	other := filepath.Join(dir, "other.tab")
	require.NoError(t, os.WriteFile(other, []byte("Left_Column\tRight_Column\tDistance\tLeft_AA\tRight_AA\n"+
		"7\t0\t3\tA\tW\n9\t1\t4\tC\tC\n"), 0o644))
	minOut := filepath.Join(dir, "min.tab")
	require.NoError(t, dist.MinMain(&dist.MinFlag{File1: colOut, File2: other, OutFile: minOut}))
	b, _ = os.ReadFile(minOut)
	assert.Equal(t, "Left_Column\tRight_Column\tDistance\tLeft_AA\tRight_AA\n"+
		"7\t0\t3.000000\tA\tL\n"+
		"8\t0\t6.082763\tG\tL\n"+
		"9\t1\t4.000000\tC\tC\n", string(b))

	require.NoError(t, dist.MinMain(&dist.MinFlag{Records: true, File1: colOut, File2: other, OutFile: minOut}))
	b, _ = os.ReadFile(minOut)
	assert.Contains(t, string(b), "7\t0\t3.000000\tA\tW\n")

	bad := flags
	bad.DistAtoms = "CA"
	assert.Error(t, dist.Mymain(&bad))
	bad = flags
	bad.ChainR = "Z"
	assert.Error(t, dist.Mymain(&bad))
}
