// This is the upper level for reading PDB files.
// Decide if a file is compressed or not, and what format
// we are going to read. Then call the corresponding pdb or mmcif
// format reader.

package pdb

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/coevo/pdb/cmmn"
	"github.com/andrew-torda/coevo/pdb/mmcif"
	"github.com/andrew-torda/coevo/pdb/pdbfmt"
	"github.com/andrew-torda/coevo/pdb/zwrap"
)

const (
	old_fmt byte = iota
	mmcif_fmt
	unk_fmt
)

// comparefirst says if two words are the same, looking at the
// the length of the shorter
func comparefirst(s, t string) bool {
	l := len(s)
	if len(t) < l {
		l = len(t)
	}
	return s[:l] == t[:l]
}

// lookInFile opens a file and guesses if it is in old PDB format or
// in mmcif.
func lookInFile(fname string) (byte, error) {
	pdbWords := []string{"HEADER", "COMPND", "SOURCE", "REMARK", "SEQRES", "HETATM", "ATOM", "MODEL"}
	mmcifWords := []string{"data_", "_entry.id", "loop_"}
	rdr, err := zwrap.Open(fname)
	if err != nil {
		return unk_fmt, err
	}
	defer rdr.Close()

	const maxTestLines = 5000
	scnnr := bufio.NewScanner(rdr)
	for i := 0; scnnr.Scan() && i < maxTestLines; i++ {
		s := scnnr.Text()
		if s == "" {
			continue
		}
		for _, w := range mmcifWords {
			if comparefirst(s, w) {
				return mmcif_fmt, nil
			}
		}
		for _, w := range pdbWords {
			if comparefirst(s, w) {
				return old_fmt, nil
			}
		}
	}
	return unk_fmt, errors.New(fname + ": cannot recognise format")
}

// oldOrMmcif decides what format we will use.
// Maybe is uses the file name or maybe it peeks inside.
// We cannot use the function from filepath to get the file type,
// since it will return .gz if we feed it a.pdb.gz.
func oldOrMmcif(fname string) (byte, error) {
	s := filepath.Base(fname)
	if i := strings.IndexByte(s, '.'); i != -1 {
		s = strings.ToLower(s[i+1:]) // change .ent to ent
		switch {
		case strings.Contains(s, "cif"):
			return mmcif_fmt, nil
		case strings.Contains(s, "pdb") || strings.Contains(s, "ent"):
			return old_fmt, nil
		}
	}
	return lookInFile(fname)
}

// ReadCoord takes a filename and reads the coordinates of the first
// model. Files may be gzipped. Old pdb or mmcif format is decided
// from the name, or by looking inside.
// Diagnostics go to lg, which may discard them.
func ReadCoord(fname string, lg *log.Logger) (cmmn.ChnSl, error) {
	typ, err := oldOrMmcif(fname)
	if err != nil {
		return nil, err
	}
	rdr, err := zwrap.Open(fname)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	var chains cmmn.ChnSl
	if typ == old_fmt {
		chains, err = pdbfmt.Read(rdr)
	} else {
		chains, err = mmcif.Read(rdr)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	if len(chains) == 0 {
		return nil, errors.New(fname + ": empty chains")
	}
	if lg != nil {
		lg.Println(fname, "compressed:", rdr.Compressed(), "chains:", chains.ChainNames(), "atoms:", chains.NAtom())
	}
	return chains, nil
}
