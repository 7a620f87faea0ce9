package pdb

import (
	"fmt"
	"math"

	"github.com/TuftsBCB/structure"
)

// CaAtoms returns the coordinates of every carbon-alpha atom in the amino
// acid residues of the structure, in residue order.
func (s *Structure) CaAtoms() []structure.Coords {
	var coords []structure.Coords
	for _, r := range s.Residues {
		if !IsAmino(r.Name) {
			continue
		}
		if ca := r.Atom("CA"); ca != nil {
			coords = append(coords, ca.Coords)
		}
	}
	return coords
}

// CaRMSD computes the RMSD between the carbon-alpha atoms of two structures,
// paired in residue order. No superposition is done first, so a rigid shift
// counts as drift. This is mostly useful for comparing a structure with a
// modified copy of itself.
//
// An error is returned if either structure has no carbon-alpha atoms, or if
// the structures have a different number of them.
func CaRMSD(s1, s2 *Structure) (float64, error) {
	struct1, struct2 := s1.CaAtoms(), s2.CaAtoms()
	if len(struct1) == 0 {
		return 0.0, fmt.Errorf("'%s' has no carbon-alpha ATOM records.",
			s1.Path)
	}
	if len(struct2) == 0 {
		return 0.0, fmt.Errorf("'%s' has no carbon-alpha ATOM records.",
			s2.Path)
	}
	if len(struct1) != len(struct2) {
		return 0.0, fmt.Errorf("'%s' has %d carbon-alpha atoms but '%s' "+
			"has %d. RMSD requires the same number of atoms.",
			s1.Path, len(struct1), s2.Path, len(struct2))
	}

	sum := 0.0
	for i := range struct1 {
		dx := struct1[i].X - struct2[i].X
		dy := struct1[i].Y - struct2[i].Y
		dz := struct1[i].Z - struct2[i].Z
		sum += dx*dx + dy*dy + dz*dz
	}
	return math.Sqrt(sum / float64(len(struct1))), nil
}
