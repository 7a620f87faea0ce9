package fixer

import (
	"errors"
	"strings"
	"testing"

	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/pdbfix/pdb"
)

type stubPacker struct {
	copies int
}

func (p *stubPacker) Pack(solute, solvent *pdb.Structure,
	copies int) (*pdb.Structure, error) {

	p.copies = copies
	packed := solute.Copy()
	for i := 0; i < copies; i++ {
		for _, r := range solvent.Copy().Residues {
			packed.Residues = append(packed.Residues, r)
		}
	}
	return packed, nil
}

func TestPack(t *testing.T) {
	f := newFixer(newChain(t, 'A', "ALA")...)
	water := &pdb.Structure{Residues: []*pdb.Residue{
		soloAtom(t, "WAT", "O", 1, structure.Coords{}),
	}}

	p := &stubPacker{}
	if err := f.Pack(p, water, 3); err != nil {
		t.Fatal(err)
	}
	if p.copies != 3 || len(f.Structure.Residues) != 4 {
		t.Fatalf("Expected 3 waters to be packed but got %d residues.",
			len(f.Structure.Residues))
	}
	if err := f.Pack(p, water, 0); err == nil {
		t.Fatalf("Expected an error for zero copies.")
	}
}

func TestExternalToolError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := error(&ExternalToolError{
		Tool:   "tleap",
		Args:   []string{"-f", "leap.in"},
		Output: "FATAL: unknown residue\n",
		Err:    cause,
	})
	if !errors.Is(err, cause) {
		t.Fatalf("Expected the error to unwrap to its cause.")
	}
	msg := err.Error()
	for _, want := range []string{"tleap -f leap.in", "exit status 1",
		"unknown residue"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("Expected '%s' in error message: %s", want, msg)
		}
	}
}
