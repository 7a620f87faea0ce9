package fixer

import (
	"sort"

	"github.com/TuftsBCB/pdbfix/geom"
	"github.com/TuftsBCB/pdbfix/pdb"
)

// Bond is a disulfide bond between two cysteines. Residue1 < Residue2.
// Atom1 and Atom2 are the global indices of the two SG atoms.
type Bond struct {
	Residue1, Residue2 int
	Atom1, Atom2       int
	Distance           float64
}

func isCysteine(resname string) bool {
	return resname == "CYS" || resname == "CYX"
}

// FindDisulfides returns the disulfide bonds in the structure and the
// indices of the cysteines that aren't part of any bond.
//
// Every pair of SG atoms no further apart than DisulfideCutoff is a
// candidate. Candidates are accepted from the shortest up, and a candidate
// is rejected if either sulfur was already used, so each cysteine is in at
// most one bond. Bonds are sorted by their first residue index.
//
// A cysteine without an SG atom, or whose SG has a non-finite coordinate, is
// recorded as a warning and appears in neither result.
func (f *Fixer) FindDisulfides() ([]Bond, []int) {
	atoms, indices := f.atomIndices()
	residueOf := make(map[int]int)
	var sulfurs []int
	var cysteines []int
	for ri, r := range f.Structure.Residues {
		if !isCysteine(r.Name) {
			continue
		}
		sg := r.Atom("SG")
		if sg == nil {
			f.malformed(ri, "SG", "disulfide")
			continue
		}
		if !geom.Finite(sg.Coords) {
			f.warn(&geom.CoordsError{
				Index: indices[sg], Atom: sg.Name, Coord: sg.Coords,
			})
			continue
		}
		ai := indices[sg]
		residueOf[ai] = ri
		sulfurs = append(sulfurs, ai)
		cysteines = append(cysteines, ri)
	}
	if len(sulfurs) < 2 {
		return nil, cysteines
	}

	// Only the sulfur atoms are indexed, so a bad coordinate elsewhere in the
	// structure doesn't stop this check. Sulfurs with bad coordinates were
	// already skipped above. Pair indices are positions in sulfurs.
	sgAtoms := make([]*pdb.Atom, len(sulfurs))
	local := make([]int, len(sulfurs))
	for i, ai := range sulfurs {
		sgAtoms[i] = atoms[ai]
		local[i] = i
	}
	idx, err := geom.NewIndex(sgAtoms)
	if err != nil {
		f.warn(err)
		return nil, cysteines
	}

	used := make(map[int]bool)
	var bonds []Bond
	for _, p := range idx.Within(local, f.DisulfideCutoff) {
		if used[p.I] || used[p.J] {
			continue
		}
		used[p.I], used[p.J] = true, true
		a1, a2 := sulfurs[p.I], sulfurs[p.J]
		r1, r2 := residueOf[a1], residueOf[a2]
		if r1 > r2 {
			r1, r2 = r2, r1
			a1, a2 = a2, a1
		}
		bonds = append(bonds, Bond{
			Residue1: r1, Residue2: r2,
			Atom1: a1, Atom2: a2,
			Distance: p.Distance,
		})
	}
	sort.Slice(bonds, func(i, j int) bool {
		return bonds[i].Residue1 < bonds[j].Residue1
	})

	var unpaired []int
	for i, ri := range cysteines {
		if !used[i] {
			unpaired = append(unpaired, ri)
		}
	}
	return bonds, unpaired
}

// RenameBondedCysteines names every cysteine in a bond CYX, and every CYX
// that isn't in a bond CYS. It returns the number of residues renamed.
func (f *Fixer) RenameBondedCysteines(bonds []Bond) int {
	bonded := make(map[int]bool, 2*len(bonds))
	for _, b := range bonds {
		bonded[b.Residue1], bonded[b.Residue2] = true, true
	}

	renamed := 0
	for ri, r := range f.Structure.Residues {
		switch {
		case bonded[ri] && r.Name != "CYX":
			r.Name = "CYX"
			renamed++
		case !bonded[ri] && r.Name == "CYX":
			r.Name = "CYS"
			renamed++
		}
	}
	return renamed
}
