package tab

import (
	"errors"
	"fmt"
)

// How says what kind of join Merge does.
type How byte

const (
	Outer How = iota
	Inner
)

// suffixed gives the value column names of a merged table. A name
// that is in both a and b gets _x on the left and _y on the right.
func suffixed(a, b []string, skipB int) (left, right []string) {
	inA := make(map[string]bool, len(a))
	inB := make(map[string]bool, len(b))
	for _, n := range a {
		inA[n] = true
	}
	for i, n := range b {
		if i != skipB {
			inB[n] = true
		}
	}
	for _, n := range a {
		if inB[n] {
			n += "_x"
		}
		left = append(left, n)
	}
	for i, n := range b {
		if i == skipB {
			continue
		}
		if inA[n] {
			n += "_y"
		}
		right = append(right, n)
	}
	return left, right
}

// rowsByKey maps each index key to the rows that have it.
func (t *Table) rowsByKey() (map[string][]int, []string) {
	m := make(map[string][]int, len(t.Rows))
	var order []string
	for i, row := range t.Rows {
		k := t.key(row)
		if _, ok := m[k]; !ok {
			order = append(order, k)
		}
		m[k] = append(m[k], i)
	}
	return m, order
}

func missingRow(kinds []Kind) []Value {
	ret := make([]Value, len(kinds))
	for i, k := range kinds {
		ret[i] = MissingVal(k)
	}
	return ret
}

// Merge joins two tables on their index. The index names come from a.
// An outer join is sorted by the index. An inner join keeps the order
// of a. Keys that are repeated give every combination.
func Merge(a, b *Table, how How) (*Table, error) {
	if a.NIndex != b.NIndex || a.NIndex == 0 {
		return nil, fmt.Errorf("merge: index sizes %d and %d", a.NIndex, b.NIndex)
	}
	ni := a.NIndex
	lnames, rnames := suffixed(a.valueCols(), b.valueCols(), -1)
	cols := append(append(append([]string{}, a.Cols[:ni]...), lnames...), rnames...)
	kinds := append(append([]Kind{}, a.Kinds...), b.Kinds[ni:]...)
	t, err := New(cols, kinds, ni)
	if err != nil {
		return nil, err
	}
	bRows, _ := b.rowsByKey()
	usedB := make(map[string]bool)
	aMissing := missingRow(a.Kinds[ni:])
	bMissing := missingRow(b.Kinds[ni:])
	for _, ra := range a.Rows {
		k := a.key(ra)
		matches := bRows[k]
		if len(matches) == 0 {
			if how == Outer {
				t.Rows = append(t.Rows, joinRow(ra, ra[ni:], bMissing, ni))
			}
			continue
		}
		usedB[k] = true
		for _, ib := range matches {
			t.Rows = append(t.Rows, joinRow(ra, ra[ni:], b.Rows[ib][ni:], ni))
		}
	}
	if how == Outer {
		for _, rb := range b.Rows {
			if !usedB[b.key(rb)] {
				t.Rows = append(t.Rows, joinRow(rb, aMissing, rb[ni:], ni))
			}
		}
		t.SortByIndex()
	}
	return t, nil
}

// joinRow puts an index and two sets of values into a fresh row.
func joinRow(idxFrom []Value, left, right []Value, ni int) []Value {
	row := make([]Value, 0, ni+len(left)+len(right))
	row = append(row, idxFrom[:ni]...)
	row = append(row, left...)
	return append(row, right...)
}

// JoinOn is an inner join on a column that both tables have. Rows
// keep the order of left. The result has all the columns of left,
// then those of right, without its copy of the join column. The index
// is that of left.
func JoinOn(left, right *Table, col string) (*Table, error) {
	il, ir := left.Col(col), right.Col(col)
	if il < 0 || ir < 0 {
		return nil, fmt.Errorf("join: column %q not in both tables", col)
	}
	lnames, rnames := suffixed(left.Cols, right.Cols, ir)
	lnames[il] = col
	cols := append(lnames, rnames...)
	kinds := append([]Kind{}, left.Kinds...)
	for i, k := range right.Kinds {
		if i != ir {
			kinds = append(kinds, k)
		}
	}
	t, err := New(cols, kinds, left.NIndex)
	if err != nil {
		return nil, err
	}
	byVal := make(map[string][]int)
	for i, row := range right.Rows {
		if v := row[ir]; !v.Missing {
			byVal[v.String()] = append(byVal[v.String()], i)
		}
	}
	for _, rl := range left.Rows {
		if rl[il].Missing {
			continue
		}
		for _, i := range byVal[rl[il].String()] {
			row := make([]Value, 0, len(cols))
			row = append(row, rl...)
			for j, v := range right.Rows[i] {
				if j != ir {
					row = append(row, v)
				}
			}
			t.Rows = append(t.Rows, row)
		}
	}
	return t, nil
}

// minValue is the smaller of two values, ignoring a missing one.
func minValue(a, b Value) Value {
	switch {
	case a.Missing:
		return b
	case b.Missing:
		return a
	case less(b, a):
		return b
	}
	return a
}

// widen makes a value fit a column of kind k.
func widen(v Value, k Kind) Value {
	if v.Missing {
		return MissingVal(k)
	}
	if k == Float && v.Kind == Int {
		return FloatVal(float64(v.I))
	}
	return v
}

func widerKind(a, b Kind) Kind {
	if a == b {
		return a
	}
	if a == Str || b == Str {
		return Str
	}
	return Float
}

// MinMerge puts two tables together, key by key. Every value column
// gets the minimum of the values present. Rows that still have a
// missing value are dropped and the result is sorted by the index.
func MinMerge(a, b *Table) (*Table, error) {
	if a.NIndex != b.NIndex || a.NIndex == 0 {
		return nil, fmt.Errorf("min merge: index sizes %d and %d", a.NIndex, b.NIndex)
	}
	ni := a.NIndex
	cols := append([]string{}, a.Cols...)
	kinds := append([]Kind{}, a.Kinds...)
	for i, n := range b.Cols {
		if j := indexOf(cols, n); j < 0 {
			cols = append(cols, n)
			kinds = append(kinds, b.Kinds[i])
		} else {
			kinds[j] = widerKind(kinds[j], b.Kinds[i])
		}
	}
	t, err := New(cols, kinds, ni)
	if err != nil {
		return nil, err
	}
	rows := make(map[string][]Value)
	var order []string
	for _, src := range []*Table{a, b} {
		pos := make([]int, len(src.Cols)) // where each column goes
		for i, n := range src.Cols {
			pos[i] = indexOf(cols, n)
		}
		for _, r := range src.Rows {
			k := src.key(r)
			row, ok := rows[k]
			if !ok {
				row = missingRow(kinds)
				rows[k] = row
				order = append(order, k)
			}
			for i, v := range r {
				j := pos[i]
				row[j] = widen(minValue(row[j], widen(v, kinds[j])), kinds[j])
			}
		}
	}
outer:
	for _, k := range order {
		row := rows[k]
		for _, v := range row {
			if v.Missing {
				continue outer
			}
		}
		t.Rows = append(t.Rows, row)
	}
	t.SortByIndex()
	return t, nil
}

func indexOf(s []string, x string) int {
	for i, n := range s {
		if n == x {
			return i
		}
	}
	return -1
}

// MinRecords keeps, for every key, the whole row with the smaller
// value in col. Ties go to a. A key found in only one table keeps its
// row. Both tables must have the same columns. The result is sorted by
// the index.
func MinRecords(a, b *Table, col string) (*Table, error) {
	if len(a.Cols) != len(b.Cols) || a.NIndex != b.NIndex {
		return nil, errors.New("min records: tables have different columns")
	}
	for i := range a.Cols {
		if a.Cols[i] != b.Cols[i] {
			return nil, fmt.Errorf("min records: column %d is %q and %q", i, a.Cols[i], b.Cols[i])
		}
	}
	ic := a.Col(col)
	if ic < 0 {
		return nil, fmt.Errorf("min records: no column %q", col)
	}
	kinds := make([]Kind, len(a.Kinds))
	for i := range kinds {
		kinds[i] = widerKind(a.Kinds[i], b.Kinds[i])
	}
	t, err := New(a.Cols, kinds, a.NIndex)
	if err != nil {
		return nil, err
	}
	fix := func(r []Value) []Value {
		row := make([]Value, len(r))
		for i, v := range r {
			row[i] = widen(v, kinds[i])
		}
		return row
	}
	best := make(map[string][]Value)
	var order []string
	for _, src := range []*Table{a, b} {
		for _, r := range src.Rows {
			k := src.key(r)
			old, ok := best[k]
			if !ok {
				best[k] = fix(r)
				order = append(order, k)
				continue
			}
			if minValue(old[ic], r[ic]) != old[ic] {
				best[k] = fix(r)
			}
		}
	}
	for _, k := range order {
		t.Rows = append(t.Rows, best[k])
	}
	t.SortByIndex()
	return t, nil
}
