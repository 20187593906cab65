package tab_test

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrew-torda/coevo/brokenio"
	"github.com/andrew-torda/coevo/pkg/tab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRead(t *testing.T, s string, opts tab.Opts) *tab.Table {
	t.Helper()
	tbl, err := tab.Read(strings.NewReader(s), opts)
	require.NoError(t, err)
	return tbl
}

func written(t *testing.T, tbl *tab.Table) string {
	t.Helper()
	var b bytes.Buffer
	require.NoError(t, tbl.Write(&b))
	return b.String()
}

var withHeader = tab.Opts{Delim: '\t', Header: true, NIndex: 2}

func TestInfer(t *testing.T) {
	tbl := mustRead(t, "a\tb\tc\td\n1\t2.5\tx\t\n3\t4\ty\t\n", withHeader)
	assert.Equal(t, []tab.Kind{tab.Int, tab.Float, tab.Str, tab.Float}, tbl.Kinds)
	assert.Equal(t, 2, tbl.NRow())
	assert.True(t, tbl.Rows[0][3].Missing)
	assert.Equal(t, 4.0, tbl.Rows[1][1].F)
}

func TestSpaceDelim(t *testing.T) {
	opts := tab.Opts{Delim: ' ', Keep: []int{0, 1, 3}, NIndex: 2}
	tbl := mustRead(t, "1  2   x 0.5\n 3 4 y   0.25\n", opts)
	assert.Equal(t, []string{"0", "1", "3"}, tbl.Cols)
	assert.Equal(t, 0.25, tbl.Rows[1][2].F)
}

func TestReadErrors(t *testing.T) {
	for _, c := range []struct {
		text string
		opts tab.Opts
	}{
		{"", withHeader},
		{"a\tb\n1\t2\t3\n", withHeader},
		{"1,2\n", tab.Opts{Delim: ',', Keep: []int{0, 5}}},
	} {
		_, err := tab.Read(strings.NewReader(c.text), c.opts)
		assert.Error(t, err, "input %q", c.text)
	}
}

// TestRoundTrip writes, reads and writes again. Both writes must be
// identical.
func TestRoundTrip(t *testing.T) {
	in := "Left_Column\tRight_Column\tDI\tAA\n0\t5\t0.123456789\tG\n2\t3\t\tW\n"
	tbl := mustRead(t, in, withHeader)
	first := written(t, tbl)
	assert.Equal(t, "Left_Column\tRight_Column\tDI\tAA\n0\t5\t0.123457\tG\n2\t3\t\tW\n", first)
	again := mustRead(t, first, withHeader)
	assert.Equal(t, first, written(t, again))
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	text := "x\ty\tv\n1\t2\t3.5\n"
	plain := filepath.Join(dir, "plain.tab")
	require.NoError(t, os.WriteFile(plain, []byte(text), 0o644))
	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write([]byte(text))
	require.NoError(t, w.Close())
	zipped := filepath.Join(dir, "zipped.tab.gz")
	require.NoError(t, os.WriteFile(zipped, gz.Bytes(), 0o644))

	for _, fname := range []string{plain, zipped} {
		tbl, err := tab.ReadFile(fname, withHeader)
		require.NoError(t, err, fname)
		assert.Equal(t, text[:len(text)-4]+"3.500000\n", written(t, tbl))
	}
	_, err := tab.ReadFile(filepath.Join(dir, "nothing"), withHeader)
	assert.Error(t, err)

	out := filepath.Join(dir, "out.tab")
	tbl, _ := tab.ReadFile(plain, withHeader)
	require.NoError(t, tbl.WriteFile(out))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, written(t, tbl), string(b))
}

func TestColumnOps(t *testing.T) {
	tbl := mustRead(t, "a\tb\tc\n1\t2\t3\n", withHeader)
	require.NoError(t, tbl.Rename("c", "z"))
	assert.Error(t, tbl.Rename("c", "q"))
	require.NoError(t, tbl.SetIndex("z", "a"))
	assert.Equal(t, []string{"z", "a", "b"}, tbl.Cols)
	assert.Equal(t, 3, tbl.Rows[0][0].I)
	require.NoError(t, tbl.Drop("a"))
	assert.Equal(t, 1, tbl.NIndex)
	assert.Equal(t, "z\tb\n3\t2\n", written(t, tbl))
	assert.Error(t, tbl.SetIndex("nope"))
}

func TestSortByIndex(t *testing.T) {
	tbl := mustRead(t, "l\tr\tv\n10\t2\ta\n2\t30\tb\n2\t4\tc\n", withHeader)
	tbl.SortByIndex()
	assert.Equal(t, "l\tr\tv\n2\t4\tc\n2\t30\tb\n10\t2\ta\n", written(t, tbl))
}

func TestMerge(t *testing.T) {
	a := mustRead(t, "l\tr\tDI\n0\t1\t0.5\n0\t2\t0.25\n", withHeader)
	b := mustRead(t, "L\tR\tDI\tMI\n0\t2\t1\t7\n3\t4\t2\t8\n", withHeader)

	outer, err := tab.Merge(a, b, tab.Outer)
	require.NoError(t, err)
	assert.Equal(t, "l\tr\tDI_x\tDI_y\tMI\n"+
		"0\t1\t0.500000\t\t\n"+
		"0\t2\t0.250000\t1\t7\n"+
		"3\t4\t\t2\t8\n", written(t, outer))

	inner, err := tab.Merge(a, b, tab.Inner)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.NRow())

	c := mustRead(t, "x\tv\n1\t2\n", tab.Opts{Delim: '\t', Header: true, NIndex: 1})
	_, err = tab.Merge(a, c, tab.Outer)
	assert.Error(t, err)
}

func TestJoinOn(t *testing.T) {
	dists := mustRead(t, "Left_resn\tRight_resn\tDistance\n10\t20\t3.5\n11\t20\t4.5\n99\t20\t1\n", withHeader)
	lmap := mustRead(t, "Left_Column\tLeft_resn\n0\t10\n1\t11\n", tab.Opts{Delim: '\t', Header: true})
	j, err := tab.JoinOn(dists, lmap, "Left_resn")
	require.NoError(t, err)
	assert.Equal(t, []string{"Left_resn", "Right_resn", "Distance", "Left_Column"}, j.Cols)
	assert.Equal(t, 2, j.NRow())
	assert.Equal(t, 1, j.Rows[1][3].I)
	_, err = tab.JoinOn(dists, lmap, "Right_resn")
	assert.Error(t, err)
}

func TestMinMerge(t *testing.T) {
	a := mustRead(t, "l\tr\tDistance\tAA\n1\t2\t5\tG\n1\t3\t7.5\tW\n", withHeader)
	b := mustRead(t, "l\tr\tDistance\tAA\n1\t2\t4.5\tG\n2\t3\t1\tA\n", withHeader)
	m, err := tab.MinMerge(a, b)
	require.NoError(t, err)
	assert.Equal(t, "l\tr\tDistance\tAA\n"+
		"1\t2\t4.500000\tG\n"+
		"1\t3\t7.500000\tW\n"+
		"2\t3\t1.000000\tA\n", written(t, m))

	c := mustRead(t, "l\tr\tOther\n1\t2\t0\n", withHeader)
	m, err = tab.MinMerge(a, c)
	require.NoError(t, err)
	assert.Equal(t, 1, m.NRow(), "rows with missing values dropped")
}

func TestMinRecords(t *testing.T) {
	a := mustRead(t, "l\tr\tDistance\tAA\n1\t2\t5\tG\n1\t3\t7\tW\n", withHeader)
	b := mustRead(t, "l\tr\tDistance\tAA\n1\t2\t4\tA\n1\t3\t9\tY\n5\t6\t1\tC\n", withHeader)
	m, err := tab.MinRecords(a, b, "Distance")
	require.NoError(t, err)
	assert.Equal(t, "l\tr\tDistance\tAA\n1\t2\t4\tA\n1\t3\t7\tW\n5\t6\t1\tC\n", written(t, m))

	c := mustRead(t, "l\tr\tDist\tAA\n1\t2\t5\tG\n", withHeader)
	_, err = tab.MinRecords(a, c, "Distance")
	assert.Error(t, err)
}

// TestBrokenInput cuts the input short with an error. A partial table
// must not come back.
func TestBrokenInput(t *testing.T) {
	text := "l\tr\tDistance\n" + strings.Repeat("1\t2\t3.5\n", 100)
	for _, n := range []int{0, 5, 40, len(text) - 1} {
		rdr := brokenio.NewReader(strings.NewReader(text), 1)
		rdr.SetFailAfter(n)
		tbl, err := tab.Read(rdr, withHeader)
		assert.Nil(t, tbl)
		assert.True(t, errors.Is(err, brokenio.ErrBroken), "fail after %d: %v", n, err)
	}
	rdr := brokenio.NewReader(strings.NewReader(text), 1)
	rdr.SetProbZeroFile(1)
	_, err := tab.Read(rdr, withHeader)
	assert.Error(t, err, "zero length file")
}
