// This splits a line from an mmcif file at white space, but respects
// quotes.

/* from https://www.iucr.org/resources/cif/spec/version1.1/cifsyntax
               character or string role
_ (underscore) identifies data name
#              identifies comment
'              delimits non-simple data values
"              delimits non-simple data values
; at beginning of line of text delimits non-simple data values
data_          identifies data block header (case-insensitive)
*/

package mmcif

import (
	"errors"
)

// asciiSpace only works for ascii spaces
var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

func iswhite(b byte) bool { return asciiSpace[b] }

// isquote not only checks if we have a quote character, but also
// stores its type so we can look for the closing one.
func isquote(b byte, qtype *byte) bool {
	if b == squote || b == dquote {
		*qtype = b
		return true
	}
	return false
}

type splitter struct { // Holds the state of the state functions
	err     error
	ret     [][]byte // This is what we will really return
	byteIn  []byte
	nxtIndx int
	qtype   byte // type of quote
}
type sfn func(i int, c byte, s *splitter) sfn // state function

func sfnInQuote(i int, c byte, s *splitter) sfn {
	if c == s.qtype {
		return sfnExitQuote
	}
	if c == '\n' {
		s.err = errors.New("unterminated quote line: " + string(s.byteIn))
		return sfnWhite
	}
	return sfnInQuote
}

// A quote followed by white space ends a quoted region. A quote
// followed by anything else, like 'O5'' is part of the text.
func sfnExitQuote(i int, c byte, s *splitter) sfn {
	if iswhite(c) {
		s.ret = append(s.ret, s.byteIn[s.nxtIndx:i-1])
		return sfnWhite
	}
	return sfnInQuote
}

func sfnInText(i int, c byte, s *splitter) sfn {
	if iswhite(c) {
		s.ret = append(s.ret, s.byteIn[s.nxtIndx:i])
		return sfnWhite
	}
	return sfnInText
}

func sfnWhite(i int, c byte, s *splitter) sfn {
	switch {
	case iswhite(c):
		return sfnWhite
	case isquote(c, &s.qtype):
		s.nxtIndx = i + 1
		return sfnInQuote
	default:
		s.nxtIndx = i
		return sfnInText
	}
}

// splitCifLine takes a byte slice and returns the words in it,
// separated by spaces and matching quotes. The returned slices point
// into byteIn. retIn is scratch space that is reused if it is big
// enough.
func splitCifLine(byteIn []byte, retIn [][]byte) ([][]byte, error) {
	if len(byteIn) < 1 {
		return nil, nil
	}
	s := splitter{ret: retIn[:0], byteIn: byteIn}
	state := sfnWhite
	for i, c := range byteIn {
		state = state(i, c, &s)
	}
	state(len(byteIn), '\n', &s) // end with newline, catches unterminated quotes
	if s.err != nil {
		return nil, s.err
	}
	return s.ret, nil
}

// hasQuote is true if we cannot get away with splitting at spaces.
func hasQuote(b []byte) bool {
	for _, c := range b {
		if c == dquote || c == squote {
			return true
		}
	}
	return false
}
