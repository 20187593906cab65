// Package brokenio wraps a reader so that it goes wrong. Tests use it
// to check that table, fasta and structure readers hand errors back
// rather than returning half a file.
//
// Typical use: wrap whatever reader you have,
//   r := brokenio.NewReader(fp, 1)
//   r.SetFailAfter(100)
// and everything works as before until 100 bytes have been read.
// A failure on the first read, set with SetProbZeroFile, returns
// io.EOF with no error. This is what one sees with a zero length file.
// The random choices come from a seeded source, so a test sees the same
// failures every time.
package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrBroken is the error we make up.
var ErrBroken = errors.New("brokenio: artificial read failure")

// BrknRdr holds the wrapped reader and the rates of trouble. The
// probabilities go from 0 to 1, so 0.05 means failure in 5% of calls.
type BrknRdr struct {
	rdr          io.Reader
	rnd          *rand.Rand
	probZeroFile float32 // return nothing at all on the first call
	probFail     float32 // per call
	fracFail     float32 // how much of the buffer a failed call trashes
	failAfter    int     // fail for good after this many bytes, -1 never
	nCalled      int
	nByte        int
}

// NewReader wraps rIn. Nothing goes wrong until one of the Set
// methods is called.
func NewReader(rIn io.Reader, seed int64) *BrknRdr {
	return &BrknRdr{
		rdr:       rIn,
		rnd:       rand.New(rand.NewSource(seed)),
		fracFail:  0.5,
		failAfter: -1,
	}
}

// SetProbZeroFile sets the rate at which we return 0 bytes on the
// first read. We do not check if the argument is valid.
func (r *BrknRdr) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail sets the probability that a read call fails.
func (r *BrknRdr) SetProbFail(prob float32) { r.probFail = prob }

// SetFracFail sets how much of the buffer a failed read wipes out.
func (r *BrknRdr) SetFracFail(frac float32) { r.fracFail = frac }

// SetFailAfter makes every read fail once n bytes have gone through.
func (r *BrknRdr) SetFailAfter(n int) { r.failAfter = n }

// NByte is the amount of data passed on so far.
func (r *BrknRdr) NByte() int { return r.nByte }

// trashSlice wipes out the second part of a slice.
// The amount to wipe out is given by a fraction, so 0.3
// will wipe out the last 30 % of a slice.
func trashSlice(p []byte, frac float32) (int, error) {
	nkeep := int(float32(len(p)) * (1. - frac))
	if nkeep == len(p) {
		return nkeep, nil
	}
	q := p[nkeep:]
	for i := range q {
		q[i] = 0
	}
	return nkeep, fmt.Errorf("%w: wiped out last %d of %d bytes", ErrBroken, len(q), len(p))
}

// Read passes on the wrapped reader's data until it is time to fail.
func (r *BrknRdr) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 && r.rnd.Float32() < r.probZeroFile {
		r.nCalled++
		return 0, io.EOF
	}
	if r.failAfter >= 0 {
		left := r.failAfter - r.nByte
		if left <= 0 {
			return 0, fmt.Errorf("%w after %d bytes", ErrBroken, r.nByte)
		}
		if len(p) > left {
			p = p[:left]
		}
	}
	n, err := r.rdr.Read(p)
	r.nCalled++
	r.nByte += n
	if err == nil && r.probFail > 0 && r.rnd.Float32() < r.probFail && r.fracFail > 0 {
		m, err := trashSlice(p[:n], r.fracFail)
		r.nByte -= n - m
		return m, err
	}
	return n, err
}
