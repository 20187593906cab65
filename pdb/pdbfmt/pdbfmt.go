// Package pdbfmt reads coordinates from files in the old, fixed column
// protein data bank format. Only ATOM and HETATM records from the
// first model are kept.
package pdbfmt

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/andrew-torda/coevo/pdb/cmmn"
)

// ReadError saves the line number and the line that we could not read.
type ReadError struct {
	N      int    // line number
	Inline string // The line that provoked the error
	Desc   string
	Err    error // set when reading failed, rather than parsing
}

func (e *ReadError) Error() string {
	return "Line: " + strconv.Itoa(e.N) + " " + e.Desc + "\nLine starting with\n" + e.Inline
}

func (e *ReadError) Unwrap() error { return e.Err }

// Columns, zero based, from the format description.
const (
	atNameStart, atNameEnd   = 12, 16
	resNameStart, resNameEnd = 17, 20
	chainCol                 = 21
	resNumStart, resNumEnd   = 22, 26
	insCodeCol               = 26
	xStart, yStart, zStart   = 30, 38, 46
	crdEnd                   = 54
	crdWidth                 = 8
)

var (
	atomRec  = []byte("ATOM  ")
	hetRec   = []byte("HETATM")
	modelRec = []byte("MODEL ")
	endmdl   = []byte("ENDMDL")
)

func getFloat(b []byte) (float32, error) {
	x, err := strconv.ParseFloat(string(bytes.TrimSpace(b)), 32)
	return float32(x), err
}

// parseAtom pulls one atom record apart.
func parseAtom(line []byte) (string, cmmn.Residue, cmmn.Atom, error) {
	var res cmmn.Residue
	var at cmmn.Atom
	if len(line) < crdEnd {
		return "", res, at, errors.New("atom record too short")
	}
	num, err := strconv.Atoi(string(bytes.TrimSpace(line[resNumStart:resNumEnd])))
	if err != nil {
		return "", res, at, errors.New("residue number: " + err.Error())
	}
	res = cmmn.Residue{
		Name:    strings.TrimSpace(string(line[resNameStart:resNameEnd])),
		Num:     num,
		InsCode: line[insCodeCol],
		Het:     bytes.HasPrefix(line, hetRec),
	}
	at.Name = strings.TrimSpace(string(line[atNameStart:atNameEnd]))
	if at.Xyz.X, err = getFloat(line[xStart : xStart+crdWidth]); err != nil {
		return "", res, at, err
	}
	if at.Xyz.Y, err = getFloat(line[yStart : yStart+crdWidth]); err != nil {
		return "", res, at, err
	}
	if at.Xyz.Z, err = getFloat(line[zStart : zStart+crdWidth]); err != nil {
		return "", res, at, err
	}
	return string(line[chainCol]), res, at, nil
}

// Read takes a reader and returns the chains in the first model.
// We stop at the first ENDMDL.
func Read(r io.Reader) (cmmn.ChnSl, error) {
	scnr := bufio.NewScanner(r)
	var mdl int16 = 1
	var bld *cmmn.Builder
	n := 0
	for scnr.Scan() {
		n++
		line := bytes.TrimRight(scnr.Bytes(), "\r")
		switch {
		case bytes.HasPrefix(line, endmdl):
			if bld != nil {
				return bld.Chains(), nil
			}
		case bytes.HasPrefix(line, modelRec):
			if m, err := strconv.Atoi(string(bytes.TrimSpace(line[len(modelRec):]))); err == nil {
				mdl = int16(m)
			}
		case bytes.HasPrefix(line, atomRec), bytes.HasPrefix(line, hetRec):
			chain, res, at, err := parseAtom(line)
			if err != nil {
				rerr := &ReadError{N: n, Inline: string(line), Desc: err.Error()}
				if !scnr.Scan() && scnr.Err() != nil { // line was cut short by a failed read
					return nil, &ReadError{N: n, Desc: scnr.Err().Error(), Err: scnr.Err()}
				}
				return nil, rerr
			}
			if bld == nil {
				bld = cmmn.NewBuilder(mdl)
			}
			bld.Add(chain, res, at)
		}
	}
	if err := scnr.Err(); err != nil {
		return nil, &ReadError{N: n, Desc: err.Error(), Err: err}
	}
	if bld == nil {
		return nil, errors.New("no ATOM or HETATM records found")
	}
	return bld.Chains(), nil
}
