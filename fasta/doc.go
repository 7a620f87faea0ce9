/*
Package fasta writes sequences in FASTA format.

The format used is the one described by NCBI:
http://blast.ncbi.nlm.nih.gov/blastcgihelp.shtml

The header of each entry is the sequence name, and the residues are wrapped
at 60 columns by default.
*/
package fasta
