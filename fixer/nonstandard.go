package fixer

import (
	"sort"
)

// FindNonstandardResidues returns the distinct residue names that Amber
// force fields don't know about, sorted. Names longer than three characters
// are reported by their first three characters.
func (f *Fixer) FindNonstandardResidues() []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range f.Structure.Residues {
		name := r.Name
		if len(name) > 3 {
			name = name[:3]
		}
		if IsStandard(name) || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
