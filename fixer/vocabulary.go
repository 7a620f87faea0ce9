package fixer

// Residue names that Amber force fields know about.
var (
	proteinNames = set(
		"ALA", "ARG", "ASN", "ASP", "ASH", "AS4", "ASX", "CYS", "CYM", "CYX",
		"GLU", "GLH", "GL4", "GLX", "GLN", "GLY", "HIS", "HIE", "HID", "HIP",
		"HIN", "HYP", "ILE", "LEU", "LYS", "LYN", "MET", "PHE", "PRO", "SER",
		"THR", "TRP", "TYR", "VAL",
	)
	capNames = set("ACE", "NME", "NHE", "NH2")

	nucleicNames = set(
		"A", "C", "G", "U", "DA", "DC", "DG", "DT",
		"A3", "A5", "AN", "C3", "C5", "CN", "G3", "G5", "GN", "U3", "U5",
		"UN", "DA3", "DA5", "DAN", "DC3", "DC5", "DCN", "DG3", "DG5", "DGN",
		"DT3", "DT5", "DTN", "OHE",
	)
	waterNames = set("HOH", "WAT", "TIP", "TP3", "TP4", "TP5", "SPC", "SOL",
		"OPC", "DOD", "TIP3", "TIP4", "TIP5", "SPCE")
	ionNames = set(
		"AG", "AL", "BA", "BR", "BE", "CA", "CD", "CE", "CL", "CO", "CR",
		"CS", "CU", "CU1", "DY", "EU", "EU3", "ER", "F", "FE", "FE2", "GD3",
		"H3O", "HE+", "HG", "HF", "HZ+", "IN", "IOD", "K", "K+", "LA",
		"LI", "LU", "MG", "MN", "NA", "NA+", "ND", "NH4", "NI", "PB", "PD",
		"PR", "PT", "PU", "RA", "RB", "SM", "SN", "SR", "TB", "TH", "TL",
		"TM", "U4+", "V2+", "Y", "YB2", "ZN", "ZR", "CL-",
	)
)

// IsProtein returns true for amino acid residue names, including Amber's
// protonation variants. Caps like ACE and NME are not included.
func IsProtein(resname string) bool {
	return proteinNames[resname]
}

// IsWater returns true for the residue names commonly used for water.
func IsWater(resname string) bool {
	return waterNames[resname]
}

// IsStandard returns true if the residue name is part of the canonical
// vocabulary: amino acids and their variants, caps, nucleic acids, water and
// ions. Names longer than three characters are checked by their first three
// characters, since that's all a PDB residue name column holds.
func IsStandard(resname string) bool {
	if len(resname) > 3 {
		resname = resname[:3]
	}
	return proteinNames[resname] || capNames[resname] ||
		nucleicNames[resname] || waterNames[resname] || ionNames[resname]
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, name := range names {
		m[name] = true
	}
	return m
}
