// 23 Feb 2018
// read a substitution matrix

// Package submat reads substitution matrices in the ncbi/matblas
// layout and scores pairs of residues with them. BLOSUM62 is built in.
package submat

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/andrew-torda/matrix"
)

// Submat is the export type. it internals do not have to be exported.
type Submat struct {
	mat  *matrix.FMatrix2d
	cmap [128]int8
	unk  int8 // index used for characters not in the matrix
}

const notset int8 = -1

//go:embed blosum62.txt
var blosum62 string

// Blosum62 returns the built in matrix.
func Blosum62() *Submat {
	s, err := ReadFrom(strings.NewReader(blosum62))
	if err != nil {
		panic("built in blosum62 is broken: " + err.Error())
	}
	return s
}

// String prints out a substitution matrix. Useful during debugging.
func (submat *Submat) String() string {
	var b strings.Builder
	cmap := submat.cmap[:]
	b.WriteString(fmt.Sprintf("%4s", " "))
	for c := '*'; c <= 'Z'; c++ {
		if cmap[c] != notset {
			fmt.Fprintf(&b, "%4s", string(c))
		}
	}
	b.WriteByte('\n')
	for c := '*'; c <= 'Z'; c++ {
		if cmap[c] == notset {
			continue
		}
		fmt.Fprintf(&b, "%4s", string(c))
		for d := '*'; d <= 'Z'; d++ {
			if cmap[d] != notset {
				fmt.Fprintf(&b, "%4.0f", submat.mat.Mat[cmap[c]][cmap[d]])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// cleanLine removes anything after the comment character and strips
// leading and trailing white space. Like scanner.Bytes, this works in
// the i/o buffer.
func cleanLine(b []byte, cmmt byte) []byte {
	if i := bytes.IndexByte(b, cmmt); i >= 0 {
		b = b[:i]
	}
	return bytes.TrimSpace(b)
}

// The first non-comment line  of the substitution matrix file
// contains a list of the allowed characters. Each field has to be
// one character long
func alfbt_line(inline []byte, submat *Submat) (int, error) {
	cmap := submat.cmap[:]
	for i := range cmap {
		cmap[i] = notset
	}
	f := bytes.Fields(inline)
	if len(f) == 0 {
		return 0, errors.New("no alphabet line found")
	}
	for _, c := range f {
		if len(c) != 1 {
			return 0, errors.New("alfbt_line: expected a single character, got " + string(c))
		}
		if c[0] >= 128 {
			return 0, errors.New("alfbt_line: saw a non-ascii character in " + string(inline))
		}
	}
	for i, c := range f {
		cmap[c[0]] = int8(i)
	}
	for i, c := range f { // If not set, set both upper and lower case
		l := (bytes.ToLower(c))[0] // This is safe, since we have checked
		u := (bytes.ToUpper(c))[0] // that c is one-byte long
		if cmap[l] == notset {
			cmap[l] = int8(i)
		}
		if cmap[u] == notset {
			cmap[u] = int8(i)
		}
	}
	submat.unk = cmap['X']
	return len(f), nil
}

// ReadFrom reads a substitution matrix from a reader.
func ReadFrom(r io.Reader) (*Submat, error) {
	submat := new(Submat)
	scnr := bufio.NewScanner(r)
	var line []byte
	for len(line) == 0 && scnr.Scan() {
		line = cleanLine(scnr.Bytes(), '#')
	}
	n_alfbt, err := alfbt_line(line, submat)
	if err != nil {
		return nil, err
	}
	submat.mat = matrix.NewFMatrix2d(n_alfbt, n_alfbt)
	nr := 0
	for scnr.Scan() {
		line := cleanLine(scnr.Bytes(), '#')
		if len(line) == 0 {
			continue
		}
		fields := bytes.Fields(line)
		if len(fields) != n_alfbt+1 {
			return nil, errors.New("wrong number of items on line:\n" + string(line))
		}
		if fields[0][0] >= 128 || submat.cmap[fields[0][0]] == notset {
			return nil, errors.New("invalid character on line " + string(line))
		}
		i := submat.cmap[fields[0][0]]
		for j := 0; j < n_alfbt; j++ {
			f, err := strconv.ParseFloat(string(fields[j+1]), 32)
			if err != nil {
				return nil, err
			}
			x := float32(f)
			submat.mat.Mat[i][j], submat.mat.Mat[j][i] = x, x
		}
		nr++
	}
	if err := scnr.Err(); err != nil {
		return nil, err
	}
	if nr != n_alfbt {
		return nil, errors.New("not enough lines found")
	}
	return submat, nil
}

// Read will read a substitution matrix from a filename.
func Read(fname string) (*Submat, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	s, err := ReadFrom(fp)
	if err != nil {
		return nil, fmt.Errorf("reading from %s: %w", fname, err)
	}
	return s, nil
}

// index gives the row in the matrix. Characters we do not know are
// scored like X, if the matrix has it, otherwise like the first
// letter.
func (submat *Submat) index(a byte) int8 {
	if a < 128 && submat.cmap[a] != notset {
		return submat.cmap[a]
	}
	if submat.unk != notset {
		return submat.unk
	}
	return 0
}

// Score returns the similarity score of bytes a and b, given
// a specific scoring matrix.
func (submat *Submat) Score(a, b byte) float32 {
	return submat.mat.Mat[submat.index(a)][submat.index(b)]
}

// ScoreSeqs will take two sequences and calculate a similarity matrix
// based on the substitution matrix.
// We return an M x N matrix, where M and N are the lengths of first
// and second sequences respectively.
func (submat *Submat) ScoreSeqs(s, t []byte) *matrix.FMatrix2d {
	scr_mat := matrix.NewFMatrix2d(len(s), len(t))
	mat := scr_mat.Mat
	for i, cs := range s {
		for j, ct := range t {
			mat[i][j] = submat.Score(cs, ct)
		}
	}
	return scr_mat
}
