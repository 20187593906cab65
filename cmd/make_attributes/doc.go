/*
Make_attributes turns a table of per-residue scores into a chimera
attribute file.

The input is tab separated, has a header and is indexed by the first
column, which must be residue numbers. Each other column becomes an
attribute named a_<column>.
*/
package main
