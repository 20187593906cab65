/*
Merge_scores reads the output of several coevolution programs, puts
every table in one layout and merges them on the column pair.

Usage:

	merge_scores [-l left_length] [-x exempt] [-o out] prog:file[:suffix] ...

Each argument names the program that wrote a file, so we know how to
read it. The suffix is added to the score names, so two runs of one
program can sit next to each other. Alignment columns are counted from
zero in the output.

If the alignment is two proteins glued together, -l gives the number
of columns in the left one. Pairs within one protein are dropped and
right columns are renumbered from zero. Programs listed in -x keep
all their pairs.
*/
package main
