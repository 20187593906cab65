/*
Get_dists writes residue-residue distances from a structure.

Usage:

	get_dists -c chainL [-chainR id] [-d Cb|NoH|Any] [-mapL f] [-mapR f] pdb_file

With only -c, we get every pair of residues within the chain. With
-chainR, every residue of the left chain against every residue of the
right one. Only residues with a beta carbon (alpha carbon for glycine)
are used.

The distance is the smallest distance over the chosen atoms:

	Cb   beta carbons, alpha carbon for glycine
	NoH  all atoms except hydrogens
	Any  all atoms

Output is tab separated with columns Left_resn, Right_resn, Distance,
Left_AA and Right_AA. Given maps from map_column_to_resnum, residue
numbers are replaced by alignment columns, Left_Column and
Right_Column. Residues not in a map are dropped.
*/
package main
