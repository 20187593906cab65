// Package scores loads the output of coevolution programs and puts it
// into one layout. Every table comes out indexed by Left_Column and
// Right_Column, counted from zero, followed by the named scores.
package scores

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/andrew-torda/coevo/pkg/tab"
)

const (
	LeftCol  = "Left_Column"
	RightCol = "Right_Column"
)

var ErrUnknownFormat = errors.New("unknown score format")

// Format says how one program writes its scores.
type Format struct {
	Prog    string
	Offset  int   // first alignment column in the file, 0 or 1
	Delim   byte  // a space means any run of white space
	Header  bool  // is there a line of column names
	Keep    []int // input columns to use. nil is all
	Stats   []string
	preproc func(*tab.Table) (*tab.Table, error)
}

var formats = map[string]Format{
	"mfDCA":   {Offset: 1, Delim: ' ', Keep: []int{0, 1, 2, 3}, Stats: []string{"MIw", "DI"}},
	"plmDCA":  {Offset: 1, Delim: ',', Keep: []int{0, 1, 2}, Stats: []string{"DIplm"}},
	"hpDCA":   {Offset: 1, Delim: '\t', Keep: []int{0, 1, 2}, Stats: []string{"DI"}},
	"PSICOV":  {Offset: 1, Delim: ' ', Keep: []int{0, 1, 4}, Stats: []string{"PSICOV"}},
	"infCalc": {Offset: 0, Delim: '\t', Header: true, Keep: []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, Stats: []string{"Left_Entropy", "Right_Entropy", "Joint_Entropy", "MI", "VI", "MIminh", "MIj"}},
	"CTMP":    {Offset: 1, Delim: '\t', Header: true, Keep: []int{0, 1, 2}, Stats: []string{"CTMP"}},
	"CoMap":   {Offset: 1, Delim: '\t', Header: true, Keep: []int{0, 1, 5}, Stats: []string{"CM", "CMP"}, preproc: comapPairs},
	"spider":  {Offset: 0, Delim: ',', Keep: []int{0, 1, 2}, Stats: []string{"Spider"}},
	"dist":    {Offset: 0, Delim: '\t', Keep: []int{0, 1, 4}, Stats: []string{"Dist"}},
	"tab":     {Offset: 0, Delim: '\t', Header: true},
}

// Progs lists the formats we know, sorted.
func Progs() []string {
	ret := make([]string, 0, len(formats))
	for k := range formats {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Lookup returns the format for a program. The suffix is stuck on the
// end of every score name, so tables from two runs of a program can
// be merged.
func Lookup(prog, suffix string) (Format, error) {
	f, ok := formats[prog]
	if !ok {
		return f, fmt.Errorf("%w: %q, known formats are %v", ErrUnknownFormat, prog, Progs())
	}
	f.Prog = prog
	stats := make([]string, len(f.Stats))
	for i, s := range f.Stats {
		stats[i] = s + suffix
	}
	f.Stats = stats
	return f, nil
}

func (f Format) opts() tab.Opts {
	return tab.Opts{Delim: f.Delim, Header: f.Header, Keep: f.Keep}
}

// Load reads a file of scores and normalizes it.
func (f Format) Load(fname string) (*tab.Table, error) {
	t, err := tab.ReadFile(fname, f.opts())
	if err != nil {
		return nil, err
	}
	if t, err = f.Normalize(t); err != nil {
		return nil, fmt.Errorf("%s file %s: %w", f.Prog, fname, err)
	}
	return t, nil
}

// Read is like Load, but from a reader.
func (f Format) Read(r io.Reader) (*tab.Table, error) {
	t, err := tab.Read(r, f.opts())
	if err != nil {
		return nil, err
	}
	return f.Normalize(t)
}

// Normalize names the columns, makes the alignment columns count from
// zero and sets them as the index.
func (f Format) Normalize(t *tab.Table) (*tab.Table, error) {
	var err error
	if f.preproc != nil {
		if t, err = f.preproc(t); err != nil {
			return nil, err
		}
	}
	names := append([]string{LeftCol, RightCol}, f.Stats...)
	if len(t.Cols) < len(names) {
		return nil, fmt.Errorf("have %d columns, need at least %d", len(t.Cols), len(names))
	}
	copy(t.Cols, names)
	for c := 0; c < 2; c++ {
		if err := intColumn(t, c, f.Offset); err != nil {
			return nil, err
		}
	}
	if err := t.SetIndex(LeftCol, RightCol); err != nil {
		return nil, err
	}
	return t, nil
}

// intColumn makes sure a column holds whole numbers and subtracts the
// offset.
func intColumn(t *tab.Table, c, offset int) error {
	for r, row := range t.Rows {
		v := row[c]
		var i int
		switch {
		case v.Missing:
			return fmt.Errorf("row %d: missing %s", r+1, t.Cols[c])
		case v.Kind == tab.Int:
			i = v.I
		case v.Kind == tab.Float && v.F == math.Trunc(v.F):
			i = int(v.F)
		default:
			return fmt.Errorf("row %d: %s is %q, not a whole number", r+1, t.Cols[c], v.String())
		}
		row[c] = tab.IntVal(i - offset)
	}
	t.Kinds[c] = tab.Int
	return nil
}

var comapRe = regexp.MustCompile(`\[(\d+);(\d+)\]`)

// comapPairs replaces the first column, like "[12;40]" with two
// columns, 12 and 40.
func comapPairs(t *tab.Table) (*tab.Table, error) {
	if len(t.Cols) < 1 {
		return nil, errors.New("CoMap: no columns")
	}
	cols := append([]string{"left", "right"}, t.Cols[1:]...)
	kinds := append([]tab.Kind{tab.Int, tab.Int}, t.Kinds[1:]...)
	ret, err := tab.New(cols, kinds, 0)
	if err != nil {
		return nil, err
	}
	for r, row := range t.Rows {
		m := comapRe.FindStringSubmatch(row[0].String())
		if m == nil {
			return nil, fmt.Errorf("CoMap row %d: no [i;j] pair in %q", r+1, row[0].String())
		}
		i, _ := strconv.Atoi(m[1]) // the regexp only lets digits through
		j, _ := strconv.Atoi(m[2])
		nrow := append([]tab.Value{tab.IntVal(i), tab.IntVal(j)}, row[1:]...)
		ret.Rows = append(ret.Rows, nrow)
	}
	return ret, nil
}

// DropIntraprotein keeps only pairs with one column in each protein.
// The left protein has leftLength columns. Each pair is put in order,
// so the smaller column is on the left, then right columns are
// renumbered to count from zero in the right protein.
func DropIntraprotein(t *tab.Table, leftLength int) (*tab.Table, error) {
	if t.NIndex != 2 || t.Kinds[0] != tab.Int || t.Kinds[1] != tab.Int {
		return nil, errors.New("drop intraprotein needs a table indexed by two integer columns")
	}
	ret, err := tab.New(t.Cols, t.Kinds, t.NIndex)
	if err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		l, r := row[0].I, row[1].I
		if l > r {
			l, r = r, l
		}
		if !(l < leftLength && r >= leftLength) {
			continue
		}
		nrow := append([]tab.Value{tab.IntVal(l), tab.IntVal(r - leftLength)}, row[2:]...)
		ret.Rows = append(ret.Rows, nrow)
	}
	return ret, nil
}

// MergeTabs does an outer join of all the tables, one after the other.
func MergeTabs(tabs []*tab.Table) (*tab.Table, error) {
	if len(tabs) == 0 {
		return nil, errors.New("no tables to merge")
	}
	ret := tabs[0]
	for _, t := range tabs[1:] {
		var err error
		if ret, err = tab.Merge(ret, t, tab.Outer); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// WriteTab writes a table in the format that "tab" reads.
func WriteTab(w io.Writer, t *tab.Table) error { return t.Write(w) }
