// 29 Apr 2020

// Package common has the exit codes, the gap character and a few
// helpers that every command and most tests use.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

const GapChar byte = '-' // a minus sign is always used for gaps

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
func WrtTemp(s string) (string, error) {
	fTmp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	defer fTmp.Close()
	if _, err := io.WriteString(fTmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v: %w", fTmp.Name(), err)
	}
	return fTmp.Name(), nil
}

// WarnExists checks if a filename exists and prints a warning
// if we will trash a file. It does not return an error.
func WarnExists(fname string) {
	if fname == "" || fname == "-" {
		return
	}
	if _, err := os.Stat(fname); err == nil {
		fmt.Fprintln(os.Stderr, "Warning, trashing old version of", fname)
	}
}

// LogWhere decides where to send chatter. If outinfo is "", it will be
// trashed. If outinfo is "stdout", we write to standard output.
// Anything else is a file name and we append to it.
func LogWhere(outinfo string) (*log.Logger, error) {
	var iowriter io.Writer
	switch outinfo {
	case "":
		iowriter = io.Discard
	case "stdout":
		iowriter = os.Stdout
	default:
		var err error
		iowriter, err = os.OpenFile(outinfo, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("log file %s: %w", outinfo, err)
		}
	}
	return log.New(iowriter, "", log.Lshortfile), nil
}

// LogBeside is LogWhere for a program that also writes results to
// outfile. If both would go to standard output, the log goes to
// standard error instead.
func LogBeside(outinfo, outfile string) (*log.Logger, error) {
	if outinfo == "stdout" && (outfile == "" || outfile == "-") {
		return log.New(os.Stderr, "", log.Lshortfile), nil
	}
	return LogWhere(outinfo)
}

// OutFile returns standard output for "" or "-", otherwise it creates
// the file. The caller closes what it gets back, which is harmless for
// standard output.
func OutFile(fname string) (io.WriteCloser, error) {
	if fname == "" || fname == "-" {
		return nopCloser{os.Stdout}, nil
	}
	WarnExists(fname)
	fp, err := os.Create(fname)
	if err != nil {
		return nil, fmt.Errorf("output file %v: %w", fname, err)
	}
	return fp, nil
}

// a nopCloser turns standard output into a WriteCloser
// which does not really close.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
