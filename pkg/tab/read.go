package tab

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/andrew-torda/coevo/pdb/zwrap"
	mmap "github.com/edsrzf/mmap-go"
)

// Opts says how to read a table.
type Opts struct {
	Delim  byte  // A space means any run of white space
	Header bool  // First line has column names
	Keep   []int // Input columns to keep, in this order. nil keeps all
	NIndex int   // How many of the kept columns form the index
}

// missing are the strings we take to mean an empty cell.
var missing = map[string]bool{"": true, "NA": true, "NaN": true, "nan": true, "N/A": true}

func splitLine(s string, delim byte) []string {
	if delim == ' ' {
		return strings.Fields(s)
	}
	f := strings.Split(s, string(delim))
	for i := range f {
		f[i] = strings.TrimSpace(f[i])
	}
	return f
}

// infer decides the kind of a column from its text. Int if every
// value is an int, then float, then string. A column with nothing in
// it is float.
func infer(cells []string) Kind {
	kind := Int
	empty := true
	for _, s := range cells {
		if missing[s] {
			continue
		}
		empty = false
		if kind == Int {
			if _, err := strconv.Atoi(s); err == nil {
				continue
			}
			kind = Float
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return Str
		}
	}
	if empty {
		return Float
	}
	return kind
}

func convert(s string, k Kind) Value {
	if missing[s] {
		return MissingVal(k)
	}
	switch k {
	case Int:
		i, _ := strconv.Atoi(s) // infer has checked these
		return IntVal(i)
	case Float:
		f, _ := strconv.ParseFloat(s, 64)
		return FloatVal(f)
	}
	return StrVal(s)
}

// readErr is called when a line does not parse. If the read failed,
// the scanner has just handed back the cut-off end of the input, and
// the read error is what the caller gets.
func readErr(scnr *bufio.Scanner, parseErr error) error {
	if !scnr.Scan() && scnr.Err() != nil {
		return scnr.Err()
	}
	return parseErr
}

// Read reads a delimited table. Without a header, columns are named
// by their position in the input, "0", "1" and so on.
func Read(r io.Reader, opts Opts) (*Table, error) {
	scnr := bufio.NewScanner(r)
	scnr.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var names []string
	var raw [][]string // kept cells, by row
	ncol := -1
	keep := opts.Keep
	lineNum := 0
	for scnr.Scan() {
		lineNum++
		line := strings.TrimRight(scnr.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := splitLine(line, opts.Delim)
		if ncol == -1 {
			ncol = len(f)
			if keep == nil {
				keep = make([]int, ncol)
				for i := range keep {
					keep[i] = i
				}
			}
			for _, k := range keep {
				if k < 0 || k >= ncol {
					return nil, readErr(scnr, fmt.Errorf("line %d: want column %d, but there are only %d", lineNum, k, ncol))
				}
			}
			if opts.Header {
				for _, k := range keep {
					names = append(names, f[k])
				}
				continue
			}
			for _, k := range keep {
				names = append(names, strconv.Itoa(k))
			}
		}
		if len(f) != ncol {
			return nil, readErr(scnr, fmt.Errorf("line %d: expected %d fields, got %d", lineNum, ncol, len(f)))
		}
		cells := make([]string, len(keep))
		for i, k := range keep {
			cells[i] = f[k]
		}
		raw = append(raw, cells)
	}
	if err := scnr.Err(); err != nil {
		return nil, err
	}
	if ncol == -1 {
		return nil, fmt.Errorf("empty table")
	}
	kinds := make([]Kind, len(names))
	col := make([]string, len(raw))
	for c := range kinds {
		for r := range raw {
			col[r] = raw[r][c]
		}
		kinds[c] = infer(col)
	}
	t, err := New(names, kinds, opts.NIndex)
	if err != nil {
		return nil, err
	}
	t.Rows = make([][]Value, len(raw))
	for r, cells := range raw {
		row := make([]Value, len(cells))
		for c, s := range cells {
			row[c] = convert(s, kinds[c])
		}
		t.Rows[r] = row
	}
	return t, nil
}

// ReadFile reads a table from a file. "" or "-" mean standard input.
// Regular files are memory mapped, gzipped ones are decompressed.
func ReadFile(fname string, opts Opts) (*Table, error) {
	if fname == "" || fname == "-" {
		return Read(os.Stdin, opts)
	}
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	t, err := readFp(fp, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	return t, nil
}

func readFp(fp *os.File, opts Opts) (*Table, error) {
	zr, err := zwrap.WrapMaybe(fp)
	if err != nil {
		return nil, err
	}
	if zr.Compressed() {
		return Read(zr, opts)
	}
	info, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return Read(fp, opts)
	}
	m, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer m.Unmap()
	return Read(bytes.NewReader(m), opts)
}

// WriteFile writes to a file, or standard output for "" and "-".
func (t *Table) WriteFile(fname string) error {
	if fname == "" || fname == "-" {
		return t.Write(os.Stdout)
	}
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := t.Write(fp); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
