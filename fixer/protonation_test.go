package fixer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAssignHistidines(t *testing.T) {
	hd1 := atomSpec{"HD1", 0.2, 3.9, 1.5}
	he2 := atomSpec{"HE2", 1.7, 5.0, 4.0}
	f := newFixer(
		newResidue(t, "HIS", 1, 'A', 0, hd1, he2),
		newResidue(t, "HIS", 2, 'A', 3.8, hd1),
		newResidue(t, "HIS", 3, 'A', 7.6, he2),
		newResidue(t, "HIS", 4, 'A', 11.4),
		newResidue(t, "HID", 5, 'A', 15.2, he2),
		newResidue(t, "ALA", 6, 'A', 19.0),
	)

	if n := f.AssignHistidines(); n != 4 {
		t.Fatalf("Expected 4 histidines renamed but got %d.", n)
	}
	want := []string{"HIP", "HID", "HIE", "HIE", "HID", "ALA"}
	if diff := cmp.Diff(want, residueNames(f.Structure)); diff != "" {
		t.Fatalf("Names mismatch (-want +got):\n%s", diff)
	}

	if n := f.AssignHistidines(); n != 0 {
		t.Fatalf("Expected nothing renamed the second time but got %d.", n)
	}
	if diff := cmp.Diff(want, residueNames(f.Structure)); diff != "" {
		t.Fatalf("Assignment is not idempotent (-want +got):\n%s", diff)
	}
}

func TestAssignHistidinesLeavesAtoms(t *testing.T) {
	f := newFixer(newResidue(t, "HIS", 1, 'A', 0))
	before := f.Structure.Copy()
	f.AssignHistidines()

	r, old := f.Structure.Residues[0], before.Residues[0]
	if len(r.Atoms) != len(old.Atoms) {
		t.Fatalf("Atom count changed from %d to %d.",
			len(old.Atoms), len(r.Atoms))
	}
	for i := range r.Atoms {
		if r.Atoms[i].Name != old.Atoms[i].Name ||
			r.Atoms[i].Coords != old.Atoms[i].Coords {
			t.Fatalf("Atom %s changed to %s.", old.Atoms[i], r.Atoms[i])
		}
	}
}

func TestConstantPH(t *testing.T) {
	tests := []struct {
		from, to string
	}{
		{"ASP", "AS4"},
		{"ASH", "AS4"},
		{"GLU", "GL4"},
		{"GLH", "GL4"},
		{"HIS", "HIP"},
		{"HID", "HIP"},
		{"HIE", "HIP"},
		{"HIP", "HIP"},
		{"LYS", "LYS"},
		{"AS4", "AS4"},
	}
	var from, want []string
	for _, test := range tests {
		from = append(from, test.from)
		want = append(want, test.to)
	}

	f := newFixer(newChain(t, 'A', from...)...)
	if n := f.ConstantPH(); n != 7 {
		t.Fatalf("Expected 7 residues renamed but got %d.", n)
	}
	if diff := cmp.Diff(want, residueNames(f.Structure)); diff != "" {
		t.Fatalf("Names mismatch (-want +got):\n%s", diff)
	}

	// Protonating first makes no difference.
	g := newFixer(newChain(t, 'A', from...)...)
	g.AssignHistidines()
	g.ConstantPH()
	if diff := cmp.Diff(want, residueNames(g.Structure)); diff != "" {
		t.Fatalf("Names depend on prior state (-want +got):\n%s", diff)
	}
}
