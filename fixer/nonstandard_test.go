package fixer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/TuftsBCB/structure"
)

func TestFindNonstandardResidues(t *testing.T) {
	rs := newChain(t, 'A', "ALA", "HIE", "CYX", "AS4")
	for i, name := range []string{"NO3", "HOH", "NA", "CL", "NO3", "WAT"} {
		rs = append(rs, soloAtom(t, name, "X", 100+i,
			structure.Coords{X: 50 + float64(i)}))
	}
	f := newFixer(rs...)
	if diff := cmp.Diff([]string{"NO3"}, f.FindNonstandardResidues()); diff != "" {
		t.Fatalf("Nonstandard residues mismatch (-want +got):\n%s", diff)
	}
}

func TestFindNonstandardResiduesTruncates(t *testing.T) {
	f := newFixer(
		soloAtom(t, "NO3X", "N", 1, structure.Coords{}),
		soloAtom(t, "MSE", "SE", 2, structure.Coords{}),
		soloAtom(t, "ACE", "C", 3, structure.Coords{}),
		soloAtom(t, "TIP3", "OH2", 4, structure.Coords{}),
	)
	want := []string{"MSE", "NO3"}
	if diff := cmp.Diff(want, f.FindNonstandardResidues()); diff != "" {
		t.Fatalf("Nonstandard residues mismatch (-want +got):\n%s", diff)
	}
}

func TestFindNonstandardResiduesNone(t *testing.T) {
	f := newFixer(newChain(t, 'A', "ALA", "GLY")...)
	if names := f.FindNonstandardResidues(); len(names) != 0 {
		t.Fatalf("Expected no names but got %v.", names)
	}
}
