/*
Map_column_to_resnum says which residue of a protein chain sits in
each column of a multiple sequence alignment.

Usage:

	map_column_to_resnum [options] chain_id pdb_file aln.fa

The chain is read from a pdb or mmcif file, gzipped or not. Only the
first model is used and HETATM residues are ignored.

By default, the chain sequence is profile aligned to the whole
alignment with muscle. With -r, the chain is aligned to one sequence
from the alignment, with needle or, given -i, with a built in global
aligner (BLOSUM62, gap open 10, extend 0.5). -user_aln runs the
commands in -profile_cmd or -pair_cmd instead.

Output is tab separated with a header

	Column	resn	AA

Columns count from zero. Columns of the alignment that are all gaps
never appear. If the aligner moved things so some columns could not be
found again, there is a warning on stderr.
*/
package main
