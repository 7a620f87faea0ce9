package fixer

import (
	"sort"

	"github.com/TuftsBCB/structure"
	"go.uber.org/zap"

	"github.com/TuftsBCB/pdbfix/geom"
	"github.com/TuftsBCB/pdbfix/pdb"
)

// MissingAtoms maps a residue index to the names of the canonical heavy
// atoms that residue lacks, in canonical order.
type MissingAtoms map[int][]string

// Indices returns the residue indices in the report in ascending order.
func (m MissingAtoms) Indices() []int {
	indices := make([]int, 0, len(m))
	for i := range m {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// Hint is a position for a missing atom that can be computed without an
// external builder.
type Hint struct {
	Atom    string
	Element string
	Coords  structure.Coords
}

// FindMissingHeavyAtoms compares every residue against its canonical heavy
// atoms. Residues without a topology (ligands, water, ions) are skipped.
// Only residues that lack at least one heavy atom are in the result.
func (f *Fixer) FindMissingHeavyAtoms() MissingAtoms {
	report := make(MissingAtoms)
	for i, r := range f.Structure.Residues {
		canonical, ok := HeavyAtoms(r.Name)
		if !ok {
			continue
		}
		present := r.AtomNames()
		var missing []string
		for _, name := range canonical {
			if !present[name] {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			report[i] = missing
		}
	}
	return report
}

// RepairHints returns positions for the missing atoms that have an ideal
// local geometry. Currently, that's a beta-carbon rebuilt from the N, CA
// and C atoms of its residue.
func (f *Fixer) RepairHints(missing MissingAtoms) map[int][]Hint {
	hints := make(map[int][]Hint)
	for _, i := range missing.Indices() {
		if !contains(missing[i], "CB") {
			continue
		}
		r := f.Structure.Residues[i]
		n, ca, c := r.Atom("N"), r.Atom("CA"), r.Atom("C")
		if n == nil || ca == nil || c == nil {
			continue
		}
		hints[i] = append(hints[i], Hint{
			Atom:    "CB",
			Element: "C",
			Coords:  geom.IdealCB(n.Coords, ca.Coords, c.Coords),
		})
	}
	return hints
}

// Builder adds missing atoms to a structure. Implementations usually run an
// external program, like tleap from AmberTools. Build returns a new
// structure and may not modify the one given.
type Builder interface {
	Build(s *pdb.Structure) (*pdb.Structure, error)
}

// AddMissingAtoms places every atom that has a repair hint, then hands the
// structure to the builder if heavy atoms are still missing. The structure
// returned by the builder replaces f.Structure.
//
// If atoms are still missing and b is nil, ErrNoBuilder is returned. The
// hinted atoms stay in place either way.
func (f *Fixer) AddMissingAtoms(b Builder) error {
	missing := f.FindMissingHeavyAtoms()
	for i, hs := range f.RepairHints(missing) {
		r := f.Structure.Residues[i]
		for _, h := range hs {
			atom, err := pdb.NewAtom(h.Atom, h.Element, h.Coords)
			if err != nil {
				return err
			}
			atom.Het = len(r.Atoms) > 0 && r.Atoms[0].Het
			r.AddAtom(atom)
			f.Log.Debug("atom added from ideal geometry",
				zap.String("residue", r.Id()), zap.String("atom", h.Atom))
		}
	}

	missing = f.FindMissingHeavyAtoms()
	if len(missing) == 0 {
		return nil
	}
	if b == nil {
		return ErrNoBuilder
	}
	f.Log.Debug("building missing atoms", zap.Int("residues", len(missing)))
	built, err := b.Build(f.Structure)
	if err != nil {
		return err
	}
	f.Structure = built
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
