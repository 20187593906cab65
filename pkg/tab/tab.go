// Package tab holds the delimited tables that all the tools read and
// write. A table has one or more index columns at the front (normally
// two, a left and right residue or alignment column) followed by
// value columns. Each column is integer, float or string and any cell
// may be missing.
package tab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Kind says what is stored in a column.
type Kind byte

const (
	Int Kind = iota
	Float
	Str
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	}
	return "string"
}

// Value is one cell. Only the field for Kind is meaningful.
type Value struct {
	Kind    Kind
	I       int
	F       float64
	S       string
	Missing bool
}

// IntVal, FloatVal and StrVal are shorthand for filling tables.
func IntVal(i int) Value       { return Value{Kind: Int, I: i} }
func FloatVal(f float64) Value { return Value{Kind: Float, F: f} }
func StrVal(s string) Value    { return Value{Kind: Str, S: s} }

// MissingVal is an empty cell of the given kind.
func MissingVal(k Kind) Value { return Value{Kind: k, Missing: true} }

// Num gives the value as a float. ok is false for strings and missing
// values.
func (v Value) Num() (float64, bool) {
	if v.Missing {
		return 0, false
	}
	switch v.Kind {
	case Int:
		return float64(v.I), true
	case Float:
		return v.F, true
	}
	return 0, false
}

// String is how a value is written. Floats get six decimals, missing
// values are empty.
func (v Value) String() string {
	if v.Missing {
		return ""
	}
	switch v.Kind {
	case Int:
		return strconv.Itoa(v.I)
	case Float:
		return strconv.FormatFloat(v.F, 'f', 6, 64)
	}
	return v.S
}

// less orders values. Numbers come before strings and missing values
// come last.
func less(a, b Value) bool {
	switch {
	case a.Missing || b.Missing:
		return !a.Missing && b.Missing
	case a.Kind == Str && b.Kind == Str:
		return a.S < b.S
	case a.Kind == Str:
		return false
	case b.Kind == Str:
		return true
	}
	x, _ := a.Num()
	y, _ := b.Num()
	return x < y
}

// Table is a set of named columns with NIndex index columns at the
// front.
type Table struct {
	Cols   []string
	Kinds  []Kind
	NIndex int
	Rows   [][]Value
}

// New makes an empty table.
func New(cols []string, kinds []Kind, nindex int) (*Table, error) {
	if len(cols) != len(kinds) {
		return nil, errors.New("number of column names and kinds differ")
	}
	if nindex < 0 || nindex > len(cols) {
		return nil, fmt.Errorf("cannot have %d index columns in a table of %d", nindex, len(cols))
	}
	t := &Table{
		Cols:   append([]string(nil), cols...),
		Kinds:  append([]Kind(nil), kinds...),
		NIndex: nindex,
	}
	return t, nil
}

// NRow is the number of rows.
func (t *Table) NRow() int { return len(t.Rows) }

// Append adds a row. It must have the right number of columns.
func (t *Table) Append(row []Value) error {
	if len(row) != len(t.Cols) {
		return fmt.Errorf("row has %d values, table has %d columns", len(row), len(t.Cols))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// Col returns the position of a named column or -1.
func (t *Table) Col(name string) int {
	for i, c := range t.Cols {
		if c == name {
			return i
		}
	}
	return -1
}

// Rename changes the name of a column.
func (t *Table) Rename(old, new string) error {
	i := t.Col(old)
	if i < 0 {
		return fmt.Errorf("rename: no column %q", old)
	}
	t.Cols[i] = new
	return nil
}

// Drop removes a column.
func (t *Table) Drop(name string) error {
	i := t.Col(name)
	if i < 0 {
		return fmt.Errorf("drop: no column %q", name)
	}
	if i < t.NIndex {
		t.NIndex--
	}
	t.Cols = append(t.Cols[:i], t.Cols[i+1:]...)
	t.Kinds = append(t.Kinds[:i], t.Kinds[i+1:]...)
	for k, row := range t.Rows {
		t.Rows[k] = append(row[:i], row[i+1:]...)
	}
	return nil
}

// SetIndex moves the named columns to the front, in the order given,
// and makes them the index. The other columns keep their order.
func (t *Table) SetIndex(names ...string) error {
	order := make([]int, 0, len(t.Cols))
	used := make([]bool, len(t.Cols))
	for _, n := range names {
		i := t.Col(n)
		if i < 0 {
			return fmt.Errorf("set index: no column %q", n)
		}
		if used[i] {
			return fmt.Errorf("set index: column %q given twice", n)
		}
		used[i] = true
		order = append(order, i)
	}
	for i := range t.Cols {
		if !used[i] {
			order = append(order, i)
		}
	}
	cols := make([]string, len(order))
	kinds := make([]Kind, len(order))
	for k, i := range order {
		cols[k], kinds[k] = t.Cols[i], t.Kinds[i]
	}
	for r, row := range t.Rows {
		nrow := make([]Value, len(order))
		for k, i := range order {
			nrow[k] = row[i]
		}
		t.Rows[r] = nrow
	}
	t.Cols, t.Kinds, t.NIndex = cols, kinds, len(names)
	return nil
}

// key turns the index of a row into something we can use in a map.
func (t *Table) key(row []Value) string {
	var b strings.Builder
	for i := 0; i < t.NIndex; i++ {
		if i > 0 {
			b.WriteByte(0)
		}
		b.WriteString(row[i].String())
	}
	return b.String()
}

// SortByIndex sorts rows on the index columns, left to right.
// Equal keys keep their order.
func (t *Table) SortByIndex() {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, b := t.Rows[i], t.Rows[j]
		for k := 0; k < t.NIndex; k++ {
			if less(a[k], b[k]) {
				return true
			}
			if less(b[k], a[k]) {
				return false
			}
		}
		return false
	})
}

// Write prints the table, tab separated with a header line.
func (t *Table) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(t.Cols, "\t"))
	bw.WriteByte('\n')
	for _, row := range t.Rows {
		for i, v := range row {
			if i > 0 {
				bw.WriteByte('\t')
			}
			bw.WriteString(v.String())
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// valueCols are the names of the columns after the index.
func (t *Table) valueCols() []string { return t.Cols[t.NIndex:] }
