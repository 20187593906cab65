// Feb 2018

// Package gotoh implements the Gotoh version of pair-wise alignments.
// We use a full scoring matrix, and use this during the summation.
// The "global" flavour does not charge for gaps at the ends of
// either sequence.
package gotoh

import (
	"github.com/andrew-torda/matrix"
)

// Pnlty has the gap opening and widening values. Note, this is different to
// some earlier code. Opening costs you -(Open+Wdn). Each extension costs
// -Wdn
type Pnlty struct {
	Open float32
	Wdn  float32
}

const (
	diag byte = iota // diagonal movement
	pway             // along the P direction, vertical, over rows
	qway             // Q direction, horizontal, over columns
	stop             // Can be used to signal traceback should stop
)

// Pair is one position in an alignment. I indexes the first sequence
// and J the second. -1 means a gap.
type Pair struct {
	I, J int
}

const bigf float32 = -1e+38

// Strings turns a pair list into two aligned, gapped byte slices.
func Strings(pairlist []Pair, s, t []byte, gap byte) (sOut, tOut []byte) {
	sOut = make([]byte, len(pairlist))
	tOut = make([]byte, len(pairlist))
	for k, p := range pairlist {
		if p.I == -1 {
			sOut[k] = gap
		} else {
			sOut[k] = s[p.I]
		}
		if p.J == -1 {
			tOut[k] = gap
		} else {
			tOut[k] = t[p.J]
		}
	}
	return sOut, tOut
}

// newDir makes the matrix of traceback directions in one block.
func newDir(nrow, ncol int) [][]byte {
	back := make([]byte, nrow*ncol)
	dir := make([][]byte, nrow)
	for i := range dir {
		dir[i] = back[i*ncol : (i+1)*ncol : (i+1)*ncol]
	}
	return dir
}

// walk follows the directions back from (i, j), appending pairs
// until it hits the first row or column. It returns where it stopped.
func walk(dir [][]byte, i, j int, pairlist []Pair) ([]Pair, int, int) {
	for dir[i][j] != stop {
		switch dir[i][j] {
		case diag:
			pairlist = append(pairlist, Pair{i, j})
			i--
			j--
		case pway:
			pairlist = append(pairlist, Pair{i, -1})
			i--
		case qway:
			pairlist = append(pairlist, Pair{-1, j})
			j--
		}
	}
	return pairlist, i, j
}

// traceback gotoh
// Return the list of pairs in the pairlist and the maximum total score
// dir is the matrix with directions. scr_mat holds the summations.
// The best score is taken from the last row or column, so end gaps
// are free.
func traceback(dir [][]byte, scr_mat [][]float32) ([]Pair, float32) {
	nr := len(scr_mat)
	nc := len(scr_mat[0])
	max_scr := scr_mat[nr-1][nc-1]
	max_i, max_j := nr-1, nc-1
	bigger := nr
	if nc > bigger {
		bigger = nc
	}
	pairlist := make([]Pair, 0, bigger+bigger/10)

	for i, col := 0, nc-1; i < nr; i++ { // Look in last column
		if scr_mat[i][col] > max_scr {
			max_scr = scr_mat[i][col]
			max_i, max_j = i, col
		}
	}
	for j, row := 0, nr-1; j < nc; j++ { // Look in last row
		if scr_mat[row][j] > max_scr {
			max_scr = scr_mat[row][j]
			max_i, max_j = row, j
		}
	}
	if max_i == nr-1 { //            trailing, free end gaps
		for jj := nc - 1; jj > max_j; jj-- {
			pairlist = append(pairlist, Pair{-1, jj})
		}
	} else if max_j == nc-1 {
		for ii := nr - 1; ii > max_i; ii-- {
			pairlist = append(pairlist, Pair{ii, -1})
		}
	}
	var i, j int
	pairlist, i, j = walk(dir, max_i, max_j, pairlist)
	pairlist = append(pairlist, Pair{i, j})
	for i--; i >= 0; i-- {
		pairlist = append(pairlist, Pair{i, -1})
	}
	for j--; j >= 0; j-- {
		pairlist = append(pairlist, Pair{-1, j})
	}

	for i, j := 0, len(pairlist)-1; i < j; i, j = i+1, j-1 {
		pairlist[i], pairlist[j] = pairlist[j], pairlist[i]
	}
	return pairlist, max_scr
}

// Align implements Gotoh, O. J. Mol. Biol. (1982) 162, 705-708.
// It does not have the bugs described in Flouri, T, Kobert, K., Rognes, T
// and Stamatakis, doi: http://dx.doi.org/10.1101/031500 (2015).
// The score matrix is overwritten with the summations.
func Align(scr_mat_mat *matrix.FMatrix2d, pnlty *Pnlty) ([]Pair, float32) {
	var max = func(a, b float32) float32 {
		if a > b {
			return a
		}
		return b
	}

	wdn := -pnlty.Wdn
	w1 := -pnlty.Open - pnlty.Wdn
	scr_mat := scr_mat_mat.Mat
	if len(scr_mat) < 1 || len(scr_mat[0]) < 1 {
		return nil, 0
	}
	nrow, ncol := len(scr_mat), len(scr_mat[0])
	dir := newDir(nrow, ncol) // for the traceback

	for _, c := range dir {
		c[0] = stop
	}
	for i := range dir[0] {
		dir[0][i] = stop
	}

	for i, qprev := 1, bigf; i < ncol; i++ { //  special case first row
		q := max(scr_mat[0][i-1]+w1, qprev+wdn)
		if q >= scr_mat[0][i] {
			scr_mat[0][i] = q
			dir[0][i] = qway
		}
		qprev = q
	}

	for i, qprev := 1, bigf; i < nrow; i++ { // special case first column
		q := max(scr_mat[i-1][0]+w1, qprev+wdn)
		if q >= scr_mat[i][0] {
			scr_mat[i][0] = q
			dir[i][0] = pway
		}
		qprev = q
	}
	p := make([]float32, ncol)
	for i := range p {
		p[i] = bigf
	}

	for i := 1; i < nrow; i++ { // Indexing is such that we walk
		qprev := bigf //     along each row, left to right.
		for j := 1; j < ncol; j++ {
			best := scr_mat[i][j] + scr_mat[i-1][j-1]
			drctn := diag
			p[j] = max(scr_mat[i-1][j]+w1, p[j]+wdn)
			q := max(scr_mat[i][j-1]+w1, qprev+wdn)
			if p[j] > best {
				best, drctn = p[j], pway
			}
			if q > best {
				best, drctn = q, qway
			}
			scr_mat[i][j] = best
			dir[i][j] = drctn
			qprev = q
		}
	}
	return traceback(dir, scr_mat)
}
