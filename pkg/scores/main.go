package scores

import (
	"fmt"
	"strings"

	"github.com/andrew-torda/coevo/pkg/common"
	"github.com/andrew-torda/coevo/pkg/tab"
)

// CmdFlag holds the command line for merge_scores.
type CmdFlag struct {
	LeftLength int    // columns in the left protein. 0 means one protein
	Exempt     string // comma separated programs that keep intraprotein pairs
	OutFile    string
	Specs      []string // prog:file or prog:file:suffix
}

// Input is one file to be merged.
type Input struct {
	Prog, Fname, Suffix string
}

// ParseSpec splits prog:file[:suffix].
func ParseSpec(s string) (Input, error) {
	f := strings.Split(s, ":")
	if len(f) < 2 || len(f) > 3 || f[0] == "" || f[1] == "" {
		return Input{}, fmt.Errorf("want prog:file or prog:file:suffix, got %q", s)
	}
	in := Input{Prog: f[0], Fname: f[1]}
	if len(f) == 3 {
		in.Suffix = f[2]
	}
	return in, nil
}

// Mymain loads every file in its own format, drops the pairs within
// one protein and writes the outer merge of everything.
func Mymain(flags *CmdFlag) error {
	exempt := make(map[string]bool)
	for _, p := range strings.Split(flags.Exempt, ",") {
		if p = strings.TrimSpace(p); p != "" {
			exempt[p] = true
		}
	}
	var tabs []*tab.Table
	for _, s := range flags.Specs {
		in, err := ParseSpec(s)
		if err != nil {
			return err
		}
		f, err := Lookup(in.Prog, in.Suffix)
		if err != nil {
			return err
		}
		t, err := f.Load(in.Fname)
		if err != nil {
			return err
		}
		if flags.LeftLength > 0 && !exempt[in.Prog] {
			if t, err = DropIntraprotein(t, flags.LeftLength); err != nil {
				return fmt.Errorf("%s: %w", in.Fname, err)
			}
		}
		tabs = append(tabs, t)
	}
	t, err := MergeTabs(tabs)
	if err != nil {
		return err
	}
	fp, err := common.OutFile(flags.OutFile)
	if err != nil {
		return err
	}
	if err := WriteTab(fp, t); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}
