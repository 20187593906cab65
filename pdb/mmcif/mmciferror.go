// An error implementation that saves the line number and the
// line we were trying to read.
// The key is to call xxxx.fill() where xxxx is the comment scanner.
package mmcif

import (
	"strconv"
)

const maxMsgLen = 70

// ReadError is what the reader gives back when a file is broken.
type ReadError struct {
	N      int    // line number
	Inline string // The line that provoked the error
	Desc   string // Description of error
	Err    error  // the read error, if reading rather than parsing failed
}

// Unwrap gives the read error, so errors.Is sees through us.
func (e *ReadError) Unwrap() error { return e.Err }

// fill stores the problem we have seen for printing out when it is
// convenient. If there was already an error, the new one is added to
// the message. A failed read replaces the first problem, since the
// line that did not parse is then only the cut-off end of the input.
func (s *cmmtScanner) fill(desc string, saveLine bool) {
	const multErrStr string = "\nNew error, but there was already an error from line "
	if !s.ok {
		ln := strconv.Itoa(s.l_err.N)
		desc = s.l_err.Desc + multErrStr + ln + ":\n" + desc + "\n"
	}
	if s.ok && s.l_err.Err == nil && !s.Scan() && s.Err() != nil {
		desc = s.Err().Error() // the line was cut short by a failed read
		s.l_err.Err = s.Err()
	}
	s.ok = false
	if saveLine {
		s.l_err.N = s.n
	}
	s.l_err.Inline = string(s.cbytes())
	s.l_err.Desc = desc
}

func firstPart(s string) string {
	l := len(s)
	if l > maxMsgLen {
		l = maxMsgLen
	}
	return s[:l]
}

// Error returns the line number, what went wrong and the start of
// the offending line.
func (e *ReadError) Error() string {
	var errmsg string
	if e.N != 0 {
		errmsg = "Line: " + strconv.Itoa(e.N) + " "
	}
	errmsg += e.Desc
	if e.N != 0 && e.Inline != "" {
		errmsg += "\nLine starting with\n" + firstPart(e.Inline)
	}
	return errmsg
}
