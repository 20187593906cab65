/*
Concatenate_fastas joins two alignments horizontally. Sequences are
paired by identifier, which should be unique in each file. The order
is that of the left file. A left sequence with no partner is reported
on stderr and left out.
*/
package main
