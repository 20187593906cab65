// Package mmcif reads coordinates from an mmcif formatted file.
// We only want the atom_site table. Everything else is stepped over,
// but we still have to follow the syntax to know where the tables
// start and end.
package mmcif

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"

	"github.com/andrew-torda/coevo/pdb/cmmn"
)

const (
	squote byte = '\''
	dquote byte = '"'
)

// cmmtScanner is a wrapper around bufio.Scanner that will ignore lines
// starting with a comment character and remove trailing white space.
// It also counts newlines in n, so we can print out the line
// number in error messages.
type cmmtScanner struct {
	*bufio.Scanner           // standard library scanner
	l_err          ReadError // fill this out as soon as an error happens
	ctoken         []byte    // Store the bytes that will be returned by cbytes()
	n              int       // line number in the mmcif file
	cmmt           byte      // Comment character
	ok             bool      // Are we OK or have we had an error ?
}

// newCmmtScanner is a wrapper around scanner, but
//   - jumps over blank lines
//   - removes trailing space
//   - jumps over lines starting with a comment character
func newCmmtScanner(r io.Reader, cmmt byte) cmmtScanner {
	const maxLine = 1024 * 1024
	scnr := bufio.NewScanner(r)
	scnr.Buffer(make([]byte, 0, 64*1024), maxLine)
	return cmmtScanner{Scanner: scnr, cmmt: cmmt, ok: true}
}

// cscan is a wrapper around the library Scan(). At EOF, it returns
// true, but ctoken is set to nil. It only returns false if there was
// an error.
// Comment characters are only recognised as the first character,
// since they are legitimate elsewhere in the text.
func (s *cmmtScanner) cscan() bool {
	if !s.ok {
		s.ctoken = nil
		s.fill("pre-existing error missed. Small bug ?", false)
		return false
	}
	var b []byte
	for len(b) == 0 {
		if !s.Scan() {
			s.ctoken = nil
			if err := s.Err(); err != nil {
				s.fill(err.Error(), true)
				return false
			}
			return true // No error, just EOF
		}
		s.n++
		b = bytes.TrimRight(s.Bytes(), " \t\r")
		if len(b) != 0 && b[0] == s.cmmt {
			b = nil
		}
	}
	s.ctoken = b
	return true
}

// cbytes returns the current line, nil at EOF.
func (s *cmmtScanner) cbytes() []byte { return s.ctoken }

// Reader pulls coordinates out of an mmcif file. Only the first model
// is kept.
type Reader struct {
	cmmtScanner
	headers [][]byte
	scrtch  [][]byte
	bld     *cmmn.Builder
	mdl     int // model number of the first atom
}

// NewReader returns an object to read mmcif files.
// It is given a reader, so the caller must have decided if it is
// a file, compressed file, whatever.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		cmmtScanner: newCmmtScanner(r, '#'),
		scrtch:      make([][]byte, 0, 25),
	}
}

// Read is a shortcut for NewReader(r).Read()
func Read(r io.Reader) (cmmn.ChnSl, error) {
	return NewReader(r).Read()
}

// stateFn is the type of state function. It returns the next
// state function that should act on its input.
type stateFn func(*Reader) stateFn

// Read parses the file and returns the chains of the first model.
func (mr *Reader) Read() (cmmn.ChnSl, error) {
	mr.cscan()
	for state := stateTop; state != nil && mr.ok; {
		state = state(mr)
	}
	if !mr.ok {
		e := mr.l_err
		return nil, &e
	}
	if mr.bld == nil {
		if mr.n == 0 {
			return nil, errors.New("zero length mmcif file")
		}
		return nil, errors.New("no atom_site coordinates found")
	}
	return mr.bld.Chains(), nil
}

// stateTop looks at the current line and decides what state to jump
// to next.
func stateTop(mr *Reader) stateFn {
	b := mr.cbytes() // Does not advance scanner
	switch {
	case b == nil:
		return nil
	case bytes.HasPrefix(b, []byte("loop_")):
		return stateLoop
	case bytes.HasPrefix(b, []byte("data_")):
		return stateData
	case b[0] == '_':
		return stateDItem
	default:
		mr.fill("do not know what to do with line", true)
		return nil
	}
}

// stateData jumps over a data_ line
func stateData(mr *Reader) stateFn {
	if !mr.cscan() {
		return nil
	}
	return stateTop
}

// skipText jumps over a multi-line ; delimited text field. We are
// sitting on the opening line and leave the scanner after the closing
// one.
func skipText(mr *Reader) bool {
	for {
		if !mr.cscan() {
			return false
		}
		b := mr.cbytes()
		if b == nil {
			mr.fill("unterminated text field", true)
			return false
		}
		if b[0] == ';' {
			return mr.cscan()
		}
	}
}

// stateDItem steps over a data item. The value may be on the same
// line, on the next line, or in a ; delimited block.
func stateDItem(mr *Reader) stateFn {
	t, err := splitCifLine(mr.cbytes(), mr.scrtch)
	if err != nil {
		mr.fill(err.Error(), true)
		return nil
	}
	if len(t) > 1 {
		if !mr.cscan() {
			return nil
		}
		return stateTop
	}
	if !mr.cscan() {
		return nil
	}
	b := mr.cbytes()
	if b == nil {
		mr.fill("no value for data item "+string(t[0]), true)
		return nil
	}
	if b[0] == ';' {
		if !skipText(mr) {
			return nil
		}
		return stateTop
	}
	if !mr.cscan() {
		return nil
	}
	return stateTop
}

func stateLoop(mr *Reader) stateFn {
	if !mr.cscan() {
		return nil
	}
	return stateLoopHdr
}

// stateLoopHdr gets the headers from a loop directive and decides
// whether this is the atom_site table or something to skip.
func stateLoopHdr(mr *Reader) stateFn {
	mr.headers = mr.headers[:0]
	for b := mr.cbytes(); b != nil && b[0] == '_'; b = mr.cbytes() {
		h := make([]byte, len(b))
		copy(h, b)
		mr.headers = append(mr.headers, h)
		if !mr.cscan() {
			return nil
		}
	}
	if len(mr.headers) < 1 {
		mr.fill("no contents found while reading loop headers", true)
		return nil
	}
	if bytes.HasPrefix(mr.headers[0], []byte("_atom_site.")) {
		return stateAtomTable
	}
	return stateSkipLoopTable
}

// isSpecial returns true if the input is not simply more of a table.
// Usually this means there is a new directive coming.
// At end of file, we also return true.
func isSpecial(inline []byte) bool {
	switch {
	case inline == nil:
		return true
	case inline[0] == '_':
		return true
	case bytes.HasPrefix(inline, []byte("loop_")):
		return true
	case bytes.HasPrefix(inline, []byte("data_")):
		return true
	default:
		return false
	}
}

// stateSkipLoopTable reads lines from a table, but does not
// save them anywhere. Most of the tables we encounter are not
// interesting.
func stateSkipLoopTable(mr *Reader) stateFn {
	for b := mr.cbytes(); !isSpecial(b); b = mr.cbytes() {
		if b[0] == ';' {
			if !skipText(mr) {
				return nil
			}
			continue
		}
		if !mr.cscan() {
			return nil
		}
	}
	return stateTop
}

// atom_site columns we use. Where there is an alternative, the first
// name is preferred.
type siteCols struct {
	group, atom, comp, chain, seqNum, insCode, model, x, y, z int
}

func colPos(headers [][]byte, names ...string) int {
	for _, name := range names {
		for i, h := range headers {
			if string(bytes.TrimPrefix(h, []byte("_atom_site."))) == name {
				return i
			}
		}
	}
	return -1
}

func findCols(headers [][]byte) (siteCols, error) {
	c := siteCols{
		group:   colPos(headers, "group_PDB"),
		atom:    colPos(headers, "label_atom_id", "auth_atom_id"),
		comp:    colPos(headers, "label_comp_id", "auth_comp_id"),
		chain:   colPos(headers, "auth_asym_id", "label_asym_id"),
		seqNum:  colPos(headers, "auth_seq_id", "label_seq_id"),
		insCode: colPos(headers, "pdbx_PDB_ins_code"),
		model:   colPos(headers, "pdbx_PDB_model_num"),
		x:       colPos(headers, "Cartn_x"),
		y:       colPos(headers, "Cartn_y"),
		z:       colPos(headers, "Cartn_z"),
	}
	for _, n := range []int{c.atom, c.comp, c.chain, c.seqNum, c.x, c.y, c.z} {
		if n < 0 {
			return c, errors.New("atom_site table is missing a column we need")
		}
	}
	return c, nil
}

// isDotOrQ returns true if the value is a dot or question mark
func isDotOrQ(s []byte) bool {
	return len(s) == 1 && (s[0] == '.' || s[0] == '?')
}

func getFloat(b []byte) (float32, error) {
	x, err := strconv.ParseFloat(string(b), 32)
	return float32(x), err
}

// addAtom takes one row of the atom_site table and stores it, unless
// it comes from a model after the first.
func (mr *Reader) addAtom(row [][]byte, c *siteCols) error {
	mdl := 1
	if c.model >= 0 {
		var err error
		if mdl, err = strconv.Atoi(string(row[c.model])); err != nil {
			return errors.New("model number: " + err.Error())
		}
	}
	if mr.bld == nil {
		mr.mdl = mdl
		mr.bld = cmmn.NewBuilder(int16(mdl))
	}
	if mdl != mr.mdl {
		return nil
	}
	var xyz cmmn.Xyz
	var err error
	if xyz.X, err = getFloat(row[c.x]); err != nil {
		return err
	}
	if xyz.Y, err = getFloat(row[c.y]); err != nil {
		return err
	}
	if xyz.Z, err = getFloat(row[c.z]); err != nil {
		return err
	}
	num, err := strconv.Atoi(string(row[c.seqNum]))
	if err != nil {
		return errors.New("residue number: " + err.Error())
	}
	res := cmmn.Residue{Name: string(row[c.comp]), Num: num, InsCode: ' '}
	if c.insCode >= 0 && !isDotOrQ(row[c.insCode]) {
		res.InsCode = row[c.insCode][0]
	}
	if c.group >= 0 {
		res.Het = string(row[c.group]) == "HETATM"
	}
	mr.bld.Add(string(row[c.chain]), res, cmmn.Atom{Name: string(row[c.atom]), Xyz: xyz})
	return nil
}

// split breaks a line into words. For a clean line, the library
// function is enough.
func (mr *Reader) split(b []byte) ([][]byte, error) {
	if hasQuote(b) {
		return splitCifLine(b, mr.scrtch)
	}
	return bytes.Fields(b), nil
}

// stateAtomTable reads the coordinates. Usually a row is one line,
// but the format lets a row run over more than one, so we collect
// copies of the words until we have enough.
func stateAtomTable(mr *Reader) stateFn {
	cols, err := findCols(mr.headers)
	if err != nil {
		mr.fill(err.Error(), true)
		return nil
	}
	ncol := len(mr.headers)
	var row [][]byte
	for b := mr.cbytes(); !isSpecial(b); b = mr.cbytes() {
		t, err := mr.split(b)
		if err != nil {
			mr.fill(err.Error(), true)
			return nil
		}
		var full [][]byte
		if len(row) == 0 && len(t) == ncol {
			full = t
		} else {
			for _, w := range t {
				row = append(row, append([]byte(nil), w...))
			}
			if len(row) > ncol {
				mr.fill("too many values in atom_site row", true)
				return nil
			}
			if len(row) == ncol {
				full = row
			}
		}
		if full != nil {
			if err := mr.addAtom(full, &cols); err != nil {
				mr.fill(err.Error(), true)
				return nil
			}
			row = row[:0]
		}
		if !mr.cscan() {
			return nil
		}
	}
	if len(row) != 0 {
		mr.fill("incomplete atom_site row at end of table", true)
		return nil
	}
	return stateTop
}
