// Package fixer inspects and repairs a protein structure before it is
// parameterized for molecular dynamics with Amber force fields.
//
// A Fixer wraps one *pdb.Structure. Detection methods (FindDisulfides,
// FindGaps, FindMissingHeavyAtoms, FindNonstandardResidues) never change the
// structure and never fail for finding nothing. Editing methods (renaming,
// mutation, stripping, repair) change the structure in place.
//
// Residue indices are positions in Structure.Residues and atom indices are
// positions in Structure.Atoms(). Both are only valid until the structure is
// edited.
package fixer

import (
	"go.uber.org/zap"

	"github.com/TuftsBCB/pdbfix/pdb"
)

const (
	// DefaultDisulfideCutoff is the largest distance, in angstroms, between
	// two cysteine sulfurs that are considered bonded. An S-S bond is about
	// 2.05 angstroms.
	DefaultDisulfideCutoff = 2.5

	// DefaultGapCutoff is the largest distance, in angstroms, between the
	// carbonyl carbon of one residue and the amide nitrogen of the next
	// before the chain is considered broken. A peptide bond is about 1.33
	// angstroms.
	DefaultGapCutoff = 2.0
)

// Fixer runs checks and repairs over a single structure. It is not safe for
// concurrent use.
type Fixer struct {
	Structure *pdb.Structure

	// Log receives debug messages about skipped residues and repairs.
	// It is never nil after New.
	Log *zap.Logger

	DisulfideCutoff float64
	GapCutoff       float64

	// Warnings collects recoverable problems found by the checks, usually
	// *MalformedResidueError values.
	Warnings []error
}

// New returns a Fixer for the structure given with the default cutoffs and
// a logger that discards everything.
func New(s *pdb.Structure) *Fixer {
	return &Fixer{
		Structure:       s,
		Log:             zap.NewNop(),
		DisulfideCutoff: DefaultDisulfideCutoff,
		GapCutoff:       DefaultGapCutoff,
	}
}

func (f *Fixer) warn(err error) {
	f.Warnings = append(f.Warnings, err)
	f.Log.Debug("residue skipped", zap.Error(err))
}

// malformed records that residue i lacks the atom named by the check given.
func (f *Fixer) malformed(i int, atom, check string) {
	r := f.Structure.Residues[i]
	f.warn(&MalformedResidueError{
		Index: i,
		Name:  r.Name,
		Num:   r.SequenceNum,
		Chain: r.Chain,
		Atom:  atom,
		Check: check,
	})
}

// atomIndices maps every atom in the structure to its global index.
func (f *Fixer) atomIndices() ([]*pdb.Atom, map[*pdb.Atom]int) {
	atoms := f.Structure.Atoms()
	indices := make(map[*pdb.Atom]int, len(atoms))
	for i, a := range atoms {
		indices[a] = i
	}
	return atoms, indices
}
