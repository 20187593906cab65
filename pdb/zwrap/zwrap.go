// Package zwrap takes a file pointer and optionally wraps it so upon
// calling Close, the decompressor will be closed, followed by the
// underlying file. Structures and score tables often come gzipped and
// the callers should not have to care.
package zwrap

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"os"
)

// Rdr is what we return. If zrdr is nil, we read straight from fp.
type Rdr struct {
	fp   io.ReadCloser
	zrdr *gzip.Reader
}

// Close closes the decompressor, then the underlying backing readCloser.
func (r *Rdr) Close() error {
	if r.zrdr == nil {
		return r.fp.Close()
	}
	return errors.Join(r.zrdr.Close(), r.fp.Close())
}

// Read makes sure we read from the compressed stream and
// not the underlying file stream.
func (r *Rdr) Read(p []byte) (int, error) {
	if r.zrdr != nil {
		return r.zrdr.Read(p)
	}
	return r.fp.Read(p)
}

// Compressed says if we are decompressing.
func (r *Rdr) Compressed() bool { return r.zrdr != nil }

// Wrap takes a source like a file pointer and wraps it in a
// decompressor. It fails if the source is not gzipped.
func Wrap(fp io.ReadCloser) (*Rdr, error) {
	zrdr, err := gzip.NewReader(fp)
	if err != nil {
		return nil, err
	}
	return &Rdr{fp: fp, zrdr: zrdr}, nil
}

// ReadSeekCloser is what WrapMaybe needs, so it can go back to the
// start if the data turn out not to be compressed.
type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

var gzMagic = []byte{0x1f, 0x8b}

// WrapMaybe will decide if the underlying stream is compressed
// and wrap the file pointer if necessary. We only look at the two
// magic bytes, so a broken gzip file gives an error rather than
// being read as text.
func WrapMaybe(fpIn ReadSeekCloser) (*Rdr, error) {
	var magic [2]byte
	n, err := io.ReadFull(fpIn, magic[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	if _, err := fpIn.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if n == 2 && magic[0] == gzMagic[0] && magic[1] == gzMagic[1] {
		return Wrap(fpIn)
	}
	return &Rdr{fp: fpIn}, nil // Leave the zrdr nil
}

// Open opens a file and calls WrapMaybe on it.
func Open(fname string) (*Rdr, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	r, err := WrapMaybe(fp)
	if err != nil {
		fp.Close()
		return nil, errors.New("reading " + fname + ": " + err.Error())
	}
	return r, nil
}

// Lines is for callers who only want a line scanner over a possibly
// compressed file. Lines longer than the default scanner limit are
// allowed up to maxLine bytes.
func Lines(r io.Reader) *bufio.Scanner {
	const maxLine = 1024 * 1024
	scnr := bufio.NewScanner(r)
	scnr.Buffer(make([]byte, 0, 64*1024), maxLine)
	return scnr
}
