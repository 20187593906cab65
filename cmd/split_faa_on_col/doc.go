/*
Split_faa_on_col splits an aligned fasta file after the nth column.

	col: 1,2,3,...,N,N+1,...,K
	      <--Left--| |--Right-->

The left file gets the first n columns, the right file the rest.
*/
package main
