package dist

import (
	"fmt"

	"github.com/andrew-torda/coevo/pkg/tab"
)

// Side names for LoadMap
const (
	Left  = "Left"
	Right = "Right"
)

// LoadMap reads a file written by map_column_to_resnum, with columns
// Column, resn and AA. We only want the first two. They are renamed
// for one side, so Column becomes Left_Column or Right_Column.
func LoadMap(fname, side string) (*tab.Table, error) {
	t, err := tab.ReadFile(fname, tab.Opts{Delim: '\t', Header: true, Keep: []int{0, 1}})
	if err != nil {
		return nil, err
	}
	if err := SideMap(t, side); err != nil {
		return nil, fmt.Errorf("map file %s: %w", fname, err)
	}
	return t, nil
}

// SideMap renames the Column and resn columns of a map table.
func SideMap(t *tab.Table, side string) error {
	if side != Left && side != Right {
		return fmt.Errorf("side must be %s or %s, not %q", Left, Right, side)
	}
	for _, c := range []string{"Column", "resn"} {
		if err := t.Rename(c, side+"_"+c); err != nil {
			return err
		}
	}
	return nil
}

// ConvertResnums replaces residue numbers in a distance table with
// alignment columns. Rows whose residue is not in a map are lost.
// Either map may be nil and that side keeps its residue numbers.
func ConvertResnums(dists, lmap, rmap *tab.Table) (*tab.Table, error) {
	t := dists
	var err error
	if lmap != nil {
		if t, err = convertCol(t, lmap, LResn); err != nil {
			return nil, err
		}
	}
	if rmap != nil {
		if t, err = convertCol(t, rmap, RResn); err != nil {
			return nil, err
		}
	}
	var idx []string
	for _, pair := range [][2]string{{LCol, LResn}, {RCol, RResn}} {
		for _, c := range pair {
			if t.Col(c) >= 0 {
				idx = append(idx, c)
				break
			}
		}
	}
	if err := t.SetIndex(idx...); err != nil {
		return nil, err
	}
	return t, nil
}

// convertCol joins on the residue number, then throws it away.
func convertCol(t, m *tab.Table, col string) (*tab.Table, error) {
	j, err := tab.JoinOn(t, m, col)
	if err != nil {
		return nil, err
	}
	if err := j.Drop(col); err != nil {
		return nil, err
	}
	return j, nil
}
