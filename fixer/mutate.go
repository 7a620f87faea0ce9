package fixer

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/TuftsBCB/pdbfix/pdb"
)

// Mutation replaces the residue at Index with a residue named Name.
type Mutation struct {
	Index int
	Name  string
}

// ParseMutations reads a comma separated list of mutations like
// "3-ALA,10-GLU", where each number is a 1-based residue position in the
// structure. The mutations returned use 0-based residue indices.
func ParseMutations(s string) ([]Mutation, error) {
	var muts []Mutation
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if len(field) == 0 {
			continue
		}
		pieces := strings.SplitN(field, "-", 2)
		if len(pieces) != 2 {
			return nil, fmt.Errorf("Mutation '%s' is not of the form "+
				"'POSITION-RESNAME'.", field)
		}
		pos, err := strconv.Atoi(strings.TrimSpace(pieces[0]))
		if err != nil || pos < 1 {
			return nil, fmt.Errorf("Mutation '%s' does not have a positive "+
				"residue position.", field)
		}
		name := strings.ToUpper(strings.TrimSpace(pieces[1]))
		if len(name) == 0 {
			return nil, fmt.Errorf("Mutation '%s' has no residue name.", field)
		}
		muts = append(muts, Mutation{Index: pos - 1, Name: name})
	}
	return muts, nil
}

// Mutate applies every mutation given. A mutated residue keeps only its
// backbone atoms (N, CA, C and O) and takes the new name. Its side chain is
// left for AddMissingAtoms to rebuild.
//
// All mutations are checked before any is applied. If a residue index is out
// of range or a name has no topology (*UnsupportedMutationError), the
// structure isn't changed.
func (f *Fixer) Mutate(muts []Mutation) error {
	residues := f.Structure.Residues
	for _, m := range muts {
		if m.Index < 0 || m.Index >= len(residues) {
			return fmt.Errorf("Cannot mutate residue %d since the structure "+
				"has %d residues.", m.Index, len(residues))
		}
		if !HasTopology(m.Name) {
			return &UnsupportedMutationError{Index: m.Index, Name: m.Name}
		}
	}
	for _, m := range muts {
		r := residues[m.Index]
		dropped := r.RemoveAtoms(func(a *pdb.Atom) bool {
			return !IsBackbone(a.Name)
		})
		f.Log.Debug("residue mutated",
			zap.String("from", r.Id()), zap.String("to", m.Name),
			zap.Int("dropped", dropped))
		r.Name = m.Name
	}
	return nil
}
