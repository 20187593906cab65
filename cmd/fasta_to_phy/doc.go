/*
Fasta_to_phy converts fasta to sequential phylip.

Identifiers are cut to eight characters and followed by two spaces.
Each sequence is on one line. With -m, identifiers are numbered first,
so they stay unique after cutting, and the original names are written
to the file given.
*/
package main
