// Reader for fasta format files.

package seq

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// An item is terminated by a newline if we are in a comment or a comment
// character ">" if we are in a sequence.
const (
	NL       = '\n'
	cmmtChar = '>'
)

type item struct {
	data     []byte
	complete bool
	eof      bool // nothing more will come
}

type lexer struct {
	input    []byte
	ichan    chan *item
	seqgrp   *SeqGrp
	rdr      io.Reader
	itempool sync.Pool
	cmmt     string // partial comment
	seq      []byte // partial string
	term     byte
	eof      bool
	err      error // parse error, consumer side only
	rdErr    error // set by next, only looked at once ichan is closed
}

const defaultReadSize = 512

var rdsize int = defaultReadSize

// setFastaRdSize is only used during testing and benchmarking
func setFastaRdSize(i int) {
	if i <= 2 {
		panic("setFastaRdSize given buffer length of 2 or less")
	}
	rdsize = i
}

func newItem() interface{} { return new(item) }

// removeWhite squeezes white space out of a byte slice, in place.
func removeWhite(b []byte) []byte {
	n := 0
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			continue
		}
		b[n] = c
		n++
	}
	return b[:n]
}

// next reads from the input and sends an item to channel, ichan.
// An item is terminated by l.term, or the end of the buffer or
// end of input. At the end of input we send one last item marked eof,
// so the reader can finish whatever state it is in.
func (l *lexer) next() {
	defer close(l.ichan)
	for {
		item := l.itempool.Get().(*item)
		item.eof = false
		if len(l.input) == 0 {
			if l.eof {
				item.data = item.data[:0]
				item.complete = true
				item.eof = true
				l.ichan <- item
				return
			}
			buf := make([]byte, rdsize)
			n, err := io.ReadFull(l.rdr, buf)
			switch {
			case err == io.EOF || err == io.ErrUnexpectedEOF:
				l.eof = true
			case err != nil:
				l.rdErr = err
				return
			}
			l.input = buf[:n]
			if n == 0 {
				continue
			}
		}

		if ndx := bytes.IndexByte(l.input, l.term); ndx == -1 {
			item.data = l.input // no terminator found, so just send
			l.input = nil       // back whatever we have in the buffer.
			item.complete = false
		} else { //                                We did find a terminator
			item.data = l.input[:ndx]
			item.complete = true
			l.input = l.input[ndx+1:]
			if l.term == NL {
				l.term = cmmtChar
			} else {
				l.term = NL
			}
		}
		l.ichan <- item
	}
}

type stateFn func(*lexer) stateFn

// gstart eats anything before the first comment character. Only white
// space is allowed there.
func gstart(l *lexer) stateFn {
	item := <-l.ichan
	if item == nil || item.eof {
		return nil
	}
	defer l.itempool.Put(item)
	if len(removeWhite(item.data)) != 0 {
		l.err = errors.New("not fasta format, text found before first \">\"")
		return nil
	}
	if item.complete {
		return gcmmt
	}
	return gstart
}

// We are reading a sequence
func gseq(l *lexer) stateFn {
	item := <-l.ichan
	if item == nil {
		return nil
	}
	defer l.itempool.Put(item)

	l.seq = append(l.seq, removeWhite(item.data)...)
	if item.complete {
		if len(l.seq) == 0 {
			l.err = errors.New("zero length sequence after >" + l.cmmt)
			return nil
		}
		l.seqgrp.seqs = append(l.seqgrp.seqs, Seq{cmmt: l.cmmt, seq: l.seq})
		l.cmmt = ""
		l.seq = nil
		if item.eof {
			return nil
		}
		return gcmmt
	}
	return gseq
}

// We are reading a comment
func gcmmt(l *lexer) stateFn {
	item := <-l.ichan
	if item == nil {
		return nil
	}
	defer l.itempool.Put(item)

	if item.eof {
		if l.cmmt != "" {
			l.err = errors.New("no sequence after >" + l.cmmt)
		}
		return nil
	}
	l.cmmt = l.cmmt + string(item.data)
	if item.complete {
		l.cmmt = trimCR(l.cmmt)
		return gseq
	}
	return gcmmt
}

// trimCR removes the carriage return that windows files leave at
// the end of a comment.
func trimCR(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\r' {
		return s[:n-1]
	}
	return s
}

// ReadFasta reads fasta formatted files. Unless the options say
// otherwise, the sequences must all have the same length.
func ReadFasta(rdr io.Reader, seqgrp *SeqGrp, s_opts *Options) error {
	l := lexer{rdr: rdr, ichan: make(chan *item, 2), seqgrp: seqgrp, term: cmmtChar}
	l.itempool.New = newItem
	nstart := seqgrp.NSeq()

	go l.next()
	for state := gstart; state != nil; {
		state = state(&l)
	}
	for range l.ichan { // drain, so the producer can finish
	}
	if l.rdErr != nil { // a failed read is behind any parse error
		return l.rdErr
	}
	if l.err != nil {
		return l.err
	}
	if seqgrp.NSeq() == nstart {
		return errors.New("no sequences found")
	}
	if !s_opts.DiffLenSeq {
		return seqgrp.checkLengths()
	}
	return nil
}
