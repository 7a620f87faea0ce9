package fixer

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/TuftsBCB/pdbfix/pdb"
)

func TestFindGapsNone(t *testing.T) {
	f := newFixer(newChain(t, 'A', "MET", "ALA", "GLY", "SER")...)
	if gaps := f.FindGaps(); len(gaps) != 0 {
		t.Fatalf("Expected no gaps but got %v.", gaps)
	}
}

func TestFindGapsRemovedResidue(t *testing.T) {
	rs := newChain(t, 'A', "MET", "PRO", "GLY")
	s := &pdb.Structure{Residues: rs}
	s.Strip(func(r *pdb.Residue) bool { return r.SequenceNum == 2 })
	f := New(s)

	gaps := f.FindGaps()
	want := []Gap{{
		Distance: 5.13,
		Name1:    "MET", Index1: 0, Num1: 1,
		Name2: "GLY", Index2: 1, Num2: 3,
	}}
	opt := cmpopts.EquateApprox(0, 1e-9)
	if diff := cmp.Diff(want, gaps, opt); diff != "" {
		t.Fatalf("Gaps mismatch (-want +got):\n%s", diff)
	}
	if gaps[0].Distance <= f.GapCutoff {
		t.Fatalf("Gap distance %f does not exceed the cutoff.",
			gaps[0].Distance)
	}
}

func TestFindGapsSorted(t *testing.T) {
	var rs []*pdb.Residue
	for i := 0; i < 10; i++ {
		// Every third residue is shifted away from the one before it.
		x := 3.8 * float64(i)
		x += 2.0 * float64(i/3)
		rs = append(rs, newResidue(t, "ALA", i+1, 'A', x))
	}
	f := newFixer(rs...)
	gaps := f.FindGaps()
	if len(gaps) != 3 {
		t.Fatalf("Expected 3 gaps but got %v.", gaps)
	}
	for i, g := range gaps {
		if i > 0 && gaps[i-1].Index1 >= g.Index1 {
			t.Fatalf("Gaps are not sorted: %v", gaps)
		}
		if math.Abs(g.Distance-3.33) > 1e-9 {
			t.Fatalf("Expected distance 3.33 but got %f.", g.Distance)
		}
	}
}

func TestFindGapsChainsAndTer(t *testing.T) {
	a := newChain(t, 'A', "ALA", "ALA")
	b := newChain(t, 'B', "ALA", "ALA")
	for _, r := range b {
		for _, atom := range r.Atoms {
			atom.Y += 50
		}
	}
	c := newChain(t, 'C', "ALA", "ALA")
	for _, atom := range c[1].Atoms {
		atom.X += 10
	}
	c[0].Ter = true

	rs := append(append(a, b...), c...)
	if gaps := newFixer(rs...).FindGaps(); len(gaps) != 0 {
		t.Fatalf("Expected chain ends and TER to break pairs: %v", gaps)
	}
}

func TestFindGapsSkipsNonProtein(t *testing.T) {
	rs := newChain(t, 'A', "ALA", "ALA")
	water := newResidue(t, "HOH", 101, 'A', 100)
	rs = []*pdb.Residue{rs[0], water, rs[1]}
	if gaps := newFixer(rs...).FindGaps(); len(gaps) != 0 {
		t.Fatalf("Expected water to be ignored but got %v.", gaps)
	}
}

func TestFindGapsMissingAtom(t *testing.T) {
	rs := newChain(t, 'A', "ALA", "ALA", "ALA")
	removeAtom(rs[0], "C")
	for _, atom := range rs[2].Atoms {
		atom.X += 10
	}
	f := newFixer(rs...)

	gaps := f.FindGaps()
	if len(gaps) != 1 || gaps[0].Index1 != 1 {
		t.Fatalf("Expected one gap after residue 1 but got %v.", gaps)
	}
	var merr *MalformedResidueError
	if len(f.Warnings) != 1 || !errors.As(f.Warnings[0], &merr) ||
		merr.Index != 0 || merr.Atom != "C" || merr.Check != "gap" {
		t.Fatalf("Unexpected warnings: %v", f.Warnings)
	}
}
