package fixer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/TuftsBCB/pdbfix/pdb"
)

// StripWater removes every water residue. The number of residues removed is
// returned.
func (f *Fixer) StripWater() int {
	return f.Structure.Strip(func(r *pdb.Residue) bool {
		return IsWater(r.Name)
	})
}

// StripHydrogens removes every hydrogen atom, and then every residue that
// has no atoms left. The number of atoms removed is returned.
func (f *Fixer) StripHydrogens() int {
	n := 0
	for _, r := range f.Structure.Residues {
		n += r.RemoveAtoms(func(a *pdb.Atom) bool { return a.IsHydrogen() })
	}
	f.Structure.Strip(func(r *pdb.Residue) bool { return len(r.Atoms) == 0 })
	return n
}

// StripResidues removes every residue whose name is in names. Names are
// case insensitive. The number of residues removed is returned.
func (f *Fixer) StripResidues(names []string) int {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[strings.ToUpper(strings.TrimSpace(name))] = true
	}
	return f.Structure.Strip(func(r *pdb.Residue) bool {
		return drop[r.Name]
	})
}

// RemoveAltLocs keeps one alternate location of every atom. In each residue,
// the first alternate location indicator that appears is kept along with
// atoms that have none, and later duplicates of an atom name are dropped.
// Kept atoms have their indicator cleared. The number of atoms removed is
// returned.
func (f *Fixer) RemoveAltLocs() int {
	n := 0
	for _, r := range f.Structure.Residues {
		var keep byte
		seen := make(map[string]bool, len(r.Atoms))
		n += r.RemoveAtoms(func(a *pdb.Atom) bool {
			if a.AltLoc != ' ' && a.AltLoc != 0 {
				if keep == 0 {
					keep = a.AltLoc
				}
				if a.AltLoc != keep {
					return true
				}
			}
			if seen[a.Name] {
				return true
			}
			seen[a.Name] = true
			return false
		})
		for _, a := range r.Atoms {
			a.AltLoc = ' '
		}
	}
	if n > 0 {
		f.Log.Debug("alternate locations removed", zap.Int("atoms", n))
	}
	return n
}

// Renumbering records the original identity of a residue that was
// renumbered.
type Renumbering struct {
	Name          string
	Chain         byte
	OldNum        int
	InsertionCode byte
	NewNum        int
}

// Renumber numbers residues from 1 in structure order, removing insertion
// codes. The old numbering of every residue is returned in order.
func (f *Fixer) Renumber() []Renumbering {
	renum := make([]Renumbering, len(f.Structure.Residues))
	for i, r := range f.Structure.Residues {
		renum[i] = Renumbering{
			Name:          r.Name,
			Chain:         r.Chain,
			OldNum:        r.SequenceNum,
			InsertionCode: r.InsertionCode,
			NewNum:        i + 1,
		}
		r.SequenceNum = i + 1
		r.InsertionCode = ' '
	}
	return renum
}

// NonProtein returns a copy of every residue that isn't an amino acid or a
// cap, such as ligands, ions and water.
func (f *Fixer) NonProtein() *pdb.Structure {
	s := f.Structure.Copy()
	s.Strip(func(r *pdb.Residue) bool {
		return IsProtein(r.Name) || capNames[r.Name]
	})
	s.Missing = nil
	return s
}
