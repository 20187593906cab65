// Fasta_to_psicov writes an alignment the way psicov wants it, one
// sequence per line and no identifiers.
package main
