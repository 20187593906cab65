package alnfmt_test

import (
	"fmt"
	"os"

	"github.com/andrew-torda/coevo/pkg/alnfmt"
)

func ExampleConcatenate() {
	left := grp("a", "AC", "b", "GG", "c", "KK")
	right := grp("b", "W-", "a", "YY")
	joined := alnfmt.Concatenate(left, right, os.Stdout)
	for _, s := range joined.SeqSlc() {
		fmt.Println(s.ID(), string(s.GetSeq()))
	}
	// Output:
	// skipping: c
	// a ACYY
	// b GGW-
}
