// 31 July 2020

/*
Randseq makes random protein alignments for testing the other tools.
Usage:

	randseq [options] fname nseq length

will generate nseq sequences of length length and write them to fname,
or standard output if fname is "-".

Flags:

	-g
		no gaps in the output sequences
	-e
		provoke errors. The last sequence is one residue too long, which
		fasta_to_phy and split_faa_on_col must reject.
	-r
		random number seed
	-c
		comment. It follows the sequence number, so sequences are called
		"1 comment", "2 comment" and so on.

The content is not so important. White space should generally be
unpredictable, so the sequences are broken by spaces and newlines in
funny places.
*/
package main
