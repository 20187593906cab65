/*
Convert_resnums_to_columns reads the output of get_dists, written
with residue numbers, and two maps from map_column_to_resnum. It
writes the same distances indexed by Left_Column and Right_Column.
Pairs where either residue is not in its map are dropped.
*/
package main
