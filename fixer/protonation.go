package fixer

import (
	"go.uber.org/zap"
)

// AssignHistidines renames every HIS residue to the tautomer that matches
// its explicit hydrogens: HIP when both HD1 and HE2 are present, HID for
// HD1 alone and HIE for HE2 alone. A histidine with neither hydrogen becomes
// HIE. Residues already named HID, HIE or HIP are left alone, so running
// this again changes nothing. The number of residues renamed is returned.
func (f *Fixer) AssignHistidines() int {
	renamed := 0
	for i, r := range f.Structure.Residues {
		if r.Name != "HIS" {
			continue
		}
		hd1, he2 := r.Atom("HD1") != nil, r.Atom("HE2") != nil
		switch {
		case hd1 && he2:
			r.Name = "HIP"
		case hd1:
			r.Name = "HID"
		default:
			r.Name = "HIE"
		}
		f.Log.Debug("histidine assigned",
			zap.Int("residue", i), zap.String("name", r.Name))
		renamed++
	}
	return renamed
}

// constantPH maps titratable residue names to the names Amber uses for
// constant pH simulations.
var constantPH = map[string]string{
	"ASP": "AS4", "ASH": "AS4",
	"GLU": "GL4", "GLH": "GL4",
	"HIS": "HIP", "HID": "HIP", "HIE": "HIP",
}

// ConstantPH renames every titratable residue to its constant pH name,
// regardless of its current protonation state: aspartates become AS4,
// glutamates become GL4 and histidines become HIP. The number of residues
// renamed is returned.
func (f *Fixer) ConstantPH() int {
	renamed := 0
	for _, r := range f.Structure.Residues {
		if to, ok := constantPH[r.Name]; ok {
			r.Name = to
			renamed++
		}
	}
	return renamed
}
