package pdb

import (
	"github.com/TuftsBCB/seq"
)

var aminoMap = map[string]seq.Residue{
	"UNK": 'X',
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O',

	// Amber names for protonation variants.
	"HID": 'H', "HIE": 'H', "HIP": 'H', "HIN": 'H',
	"ASH": 'D', "AS4": 'D', "GLH": 'E', "GL4": 'E',
	"CYX": 'C', "CYM": 'C', "LYN": 'K', "HYP": 'P',

	"ASX": 'X', "GLX": 'X',
}

// IsAmino returns true if the three letter residue name is an amino acid,
// including the protonation variants used by Amber force fields.
func IsAmino(threeAbbrev string) bool {
	_, ok := aminoMap[threeAbbrev]
	return ok
}

// AminoAbbrev returns the single letter code of an amino acid residue name.
// 'X' is returned for anything that isn't an amino acid.
func AminoAbbrev(threeAbbrev string) seq.Residue {
	if v, ok := aminoMap[threeAbbrev]; ok {
		return v
	}
	return 'X'
}

// seqresAbbrev translates SEQRES residue names to a sequence. Residue names
// that aren't amino acids translate to 'X'.
func seqresAbbrev(names []string) []seq.Residue {
	rs := make([]seq.Residue, len(names))
	for i, name := range names {
		rs[i] = AminoAbbrev(name)
	}
	return rs
}
