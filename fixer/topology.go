package fixer

// Heavy atoms of every amino acid, in the order Amber libraries list them.
// The carboxyl OXT of a C-terminal residue is not included.
var heavyAtoms = map[string][]string{
	"ALA": {"N", "CA", "C", "O", "CB"},
	"ARG": {"N", "CA", "C", "O", "CB", "CG", "CD", "NE", "CZ", "NH1", "NH2"},
	"ASN": {"N", "CA", "C", "O", "CB", "CG", "OD1", "ND2"},
	"ASP": {"N", "CA", "C", "O", "CB", "CG", "OD1", "OD2"},
	"CYS": {"N", "CA", "C", "O", "CB", "SG"},
	"GLN": {"N", "CA", "C", "O", "CB", "CG", "CD", "OE1", "NE2"},
	"GLU": {"N", "CA", "C", "O", "CB", "CG", "CD", "OE1", "OE2"},
	"GLY": {"N", "CA", "C", "O"},
	"HIS": {"N", "CA", "C", "O", "CB", "CG", "ND1", "CD2", "CE1", "NE2"},
	"HYP": {"N", "CA", "C", "O", "CB", "CG", "CD", "OD1"},
	"ILE": {"N", "CA", "C", "O", "CB", "CG1", "CG2", "CD1"},
	"LEU": {"N", "CA", "C", "O", "CB", "CG", "CD1", "CD2"},
	"LYS": {"N", "CA", "C", "O", "CB", "CG", "CD", "CE", "NZ"},
	"MET": {"N", "CA", "C", "O", "CB", "CG", "SD", "CE"},
	"PHE": {"N", "CA", "C", "O", "CB", "CG", "CD1", "CD2", "CE1", "CE2",
		"CZ"},
	"PRO": {"N", "CA", "C", "O", "CB", "CG", "CD"},
	"SER": {"N", "CA", "C", "O", "CB", "OG"},
	"THR": {"N", "CA", "C", "O", "CB", "OG1", "CG2"},
	"TRP": {"N", "CA", "C", "O", "CB", "CG", "CD1", "CD2", "NE1", "CE2",
		"CE3", "CZ2", "CZ3", "CH2"},
	"TYR": {"N", "CA", "C", "O", "CB", "CG", "CD1", "CD2", "CE1", "CE2",
		"CZ", "OH"},
	"VAL": {"N", "CA", "C", "O", "CB", "CG1", "CG2"},
}

// Protonation and bonding variants have the same heavy atoms as the residue
// they're derived from.
var variantOf = map[string]string{
	"HID": "HIS", "HIE": "HIS", "HIP": "HIS", "HIN": "HIS",
	"ASH": "ASP", "AS4": "ASP",
	"GLH": "GLU", "GL4": "GLU",
	"CYX": "CYS", "CYM": "CYS",
	"LYN": "LYS",
}

// backbone is the set of atoms kept by a mutation.
var backbone = map[string]bool{"N": true, "CA": true, "C": true, "O": true}

// HeavyAtoms returns the canonical heavy atom names of the residue name
// given, including variant names like HID or CYX. The second return value is
// false if the residue has no topology. The slice returned is a copy.
func HeavyAtoms(resname string) ([]string, bool) {
	if base, ok := variantOf[resname]; ok {
		resname = base
	}
	names, ok := heavyAtoms[resname]
	if !ok {
		return nil, false
	}
	return append([]string(nil), names...), true
}

// HasTopology returns true if the residue name has canonical heavy atoms.
func HasTopology(resname string) bool {
	_, ok := HeavyAtoms(resname)
	return ok
}

// IsBackbone returns true for the amide nitrogen, alpha carbon, carbonyl
// carbon and carbonyl oxygen.
func IsBackbone(atomName string) bool {
	return backbone[atomName]
}
