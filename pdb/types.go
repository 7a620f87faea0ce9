package pdb

import (
	"fmt"
	"math"
	"strings"

	"github.com/TuftsBCB/seq"
	"github.com/TuftsBCB/structure"
)

// Structure represents all information read from a single model of a PDB
// file.
type Structure struct {
	Path   string
	IdCode string

	// Residues in the order that their ATOM/HETATM records appeared.
	Residues []*Residue

	// Seqres maps a chain identifier to the residue names in its SEQRES
	// records.
	Seqres map[byte][]string

	// Missing contains the residues listed in REMARK 465. None of them
	// have any atoms.
	Missing []*Residue
}

// Residue is a group of atoms that share a residue name, sequence number,
// insertion code and chain identifier.
type Residue struct {
	Name          string
	SequenceNum   int
	InsertionCode byte
	Chain         byte

	// Ter is true when a TER record immediately follows this residue.
	Ter bool

	Atoms []*Atom
}

// Atom represents a single ATOM or HETATM record.
type Atom struct {
	Serial    int
	Name      string
	AltLoc    byte
	Element   string
	Het       bool
	Occupancy float64
	BFactor   float64
	structure.Coords

	// Residue is the residue that owns this atom. It is set by AddAtom.
	Residue *Residue
}

// NewAtom creates an atom that doesn't belong to any residue yet.
// An error is returned if the name is empty or if any coordinate is not a
// finite number. If element is empty, it is inferred from the atom name.
func NewAtom(name, element string, coords structure.Coords) (*Atom, error) {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return nil, fmt.Errorf("An atom must have a name.")
	}
	for _, v := range []float64{coords.X, coords.Y, coords.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("Atom '%s' has an invalid coordinate: %s",
				name, coords)
		}
	}
	if len(element) == 0 {
		element = inferElement(name, false)
	}
	return &Atom{
		Name:      name,
		Element:   strings.ToUpper(element),
		Occupancy: 1.0,
		Coords:    coords,
	}, nil
}

// Atoms returns every atom in the structure in residue order. The position
// of an atom in the returned slice is its global index. The index is only
// stable until atoms are added or removed.
func (s *Structure) Atoms() []*Atom {
	n := 0
	for _, r := range s.Residues {
		n += len(r.Atoms)
	}
	atoms := make([]*Atom, 0, n)
	for _, r := range s.Residues {
		atoms = append(atoms, r.Atoms...)
	}
	return atoms
}

// Chains returns the distinct chain identifiers in the order they first
// appear.
func (s *Structure) Chains() []byte {
	var idents []byte
	seen := make(map[byte]bool)
	for _, r := range s.Residues {
		if !seen[r.Chain] {
			seen[r.Chain] = true
			idents = append(idents, r.Chain)
		}
	}
	return idents
}

// ChainResidues returns all residues belonging to the given chain in order.
func (s *Structure) ChainResidues(ident byte) []*Residue {
	var rs []*Residue
	for _, r := range s.Residues {
		if r.Chain == ident {
			rs = append(rs, r)
		}
	}
	return rs
}

// ResidueIndex returns the position of r in s.Residues, or -1 if r is not
// part of the structure.
func (s *Structure) ResidueIndex(r *Residue) int {
	for i := range s.Residues {
		if s.Residues[i] == r {
			return i
		}
	}
	return -1
}

// Strip removes every residue for which drop returns true. The number of
// residues removed is returned.
func (s *Structure) Strip(drop func(r *Residue) bool) int {
	kept := s.Residues[:0]
	for _, r := range s.Residues {
		if !drop(r) {
			kept = append(kept, r)
		}
	}
	n := len(s.Residues) - len(kept)
	for i := len(kept); i < len(s.Residues); i++ {
		s.Residues[i] = nil
	}
	s.Residues = kept
	return n
}

// Copy returns a deep copy of the structure. Atoms in the copy are owned by
// the copied residues.
func (s *Structure) Copy() *Structure {
	c := &Structure{
		Path:     s.Path,
		IdCode:   s.IdCode,
		Residues: make([]*Residue, len(s.Residues)),
		Seqres:   make(map[byte][]string, len(s.Seqres)),
		Missing:  make([]*Residue, len(s.Missing)),
	}
	for i, r := range s.Residues {
		c.Residues[i] = r.Copy()
	}
	for ident, names := range s.Seqres {
		c.Seqres[ident] = append([]string(nil), names...)
	}
	for i, r := range s.Missing {
		c.Missing[i] = r.Copy()
	}
	return c
}

// Sequences returns the ATOM record sequence of each chain, using single
// letter amino acid codes. The name of each sequence is the ID code followed
// by the chain identifier.
func (s *Structure) Sequences() []seq.Sequence {
	var seqs []seq.Sequence
	for _, ident := range s.Chains() {
		rs := s.ChainResidues(ident)
		residues := make([]seq.Residue, 0, len(rs))
		for _, r := range rs {
			if !IsAmino(r.Name) {
				continue
			}
			residues = append(residues, AminoAbbrev(r.Name))
		}
		if len(residues) == 0 {
			continue
		}
		seqs = append(seqs, seq.Sequence{
			Name:     fmt.Sprintf("%s%c", strings.ToLower(s.IdCode), ident),
			Residues: residues,
		})
	}
	return seqs
}

// Atom returns the first atom in this residue with the given name.
// If one does not exist, nil is returned.
func (r *Residue) Atom(name string) *Atom {
	for _, a := range r.Atoms {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// AddAtom appends an atom to this residue and makes this residue its owner.
// An atom that already belongs to another residue is removed from it first.
func (r *Residue) AddAtom(a *Atom) {
	if a.Residue != nil && a.Residue != r {
		old := a.Residue
		old.RemoveAtoms(func(b *Atom) bool { return b == a })
	}
	a.Residue = r
	r.Atoms = append(r.Atoms, a)
}

// RemoveAtoms removes every atom for which drop returns true. Removed atoms
// no longer have an owning residue. The number of atoms removed is returned.
func (r *Residue) RemoveAtoms(drop func(a *Atom) bool) int {
	kept := make([]*Atom, 0, len(r.Atoms))
	for _, a := range r.Atoms {
		if drop(a) {
			a.Residue = nil
			continue
		}
		kept = append(kept, a)
	}
	n := len(r.Atoms) - len(kept)
	r.Atoms = kept
	return n
}

// AtomNames returns the set of atom names in this residue.
func (r *Residue) AtomNames() map[string]bool {
	names := make(map[string]bool, len(r.Atoms))
	for _, a := range r.Atoms {
		names[a.Name] = true
	}
	return names
}

// Copy returns a deep copy of the residue and its atoms.
func (r *Residue) Copy() *Residue {
	c := *r
	c.Atoms = make([]*Atom, 0, len(r.Atoms))
	for _, a := range r.Atoms {
		ac := *a
		ac.Residue = nil
		c.AddAtom(&ac)
	}
	return &c
}

// Id returns a human readable identifier like "HIS 15A" (name, sequence
// number and chain).
func (r *Residue) Id() string {
	num := fmt.Sprintf("%d", r.SequenceNum)
	if r.InsertionCode != ' ' && r.InsertionCode != 0 {
		num += string(r.InsertionCode)
	}
	chain := r.Chain
	if chain == 0 {
		chain = ' '
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s%c", r.Name, num, chain))
}

func (r *Residue) String() string {
	return r.Id()
}

// IsHydrogen returns true if this atom is a hydrogen (or deuterium).
func (a *Atom) IsHydrogen() bool {
	return a.Element == "H" || a.Element == "D"
}

// AtomicNumber returns the atomic number of this atom's element, or 0 if
// the element is unknown.
func (a *Atom) AtomicNumber() int {
	return AtomicNumber(a.Element)
}

func (a *Atom) String() string {
	return fmt.Sprintf("(%d, %s, %s, [%0.3f %0.3f %0.3f])",
		a.Serial, a.Name, a.Element, a.X, a.Y, a.Z)
}
