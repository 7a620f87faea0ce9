/*
Package pdb provides minimal support for reading and writing the coordinate
section of PDB files. A file is read into a Structure: an ordered list of
residues, each owning an ordered list of atoms with their three dimensional
coordinates. SEQRES records and the missing residues listed in REMARK 465 are
kept as well, since they are needed to reason about chain breaks.

Records that do not describe atoms, chains or sequences are ignored. In
particular, CONECT, HELIX, SHEET and crystallographic records are dropped, so
writing a Structure back out is not a lossless round trip.

Only one model is read from a multi-model (e.g., NMR) file. By default, that's
the first model.
*/
package pdb
