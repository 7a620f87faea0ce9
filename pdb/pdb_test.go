package pdb

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/TuftsBCB/structure"
)

// Residues 1-3 of 1CRN, plus a water and a calcium.
const testPDB = `HEADER    PLANT PROTEIN                           30-APR-81   1CRN
SEQRES   1 A    5  THR THR CYS PRO GLY
REMARK 465 MISSING RESIDUES
REMARK 465   M RES C SSSEQI
REMARK 465     PRO A     4
REMARK 465     GLY A     5
ATOM      1  N   THR A   1      17.047  14.099   3.625  1.00 13.79           N
ATOM      2  CA  THR A   1      16.967  12.784   4.338  1.00 10.80           C
ATOM      3  C   THR A   1      15.685  12.755   5.133  1.00  9.19           C
ATOM      4  O   THR A   1      15.268  13.825   5.594  1.00  9.85           O
ATOM      5  N   THR A   2      15.115  11.555   5.265  1.00  7.81           N
ATOM      6  CA  THR A   2      13.856  11.469   6.066  1.00  8.31           C
ATOM      7  C   THR A   2      14.164  10.785   7.379  1.00  5.80           C
ATOM      8  O   THR A   2      14.993   9.862   7.443  1.00  6.94           O
ATOM      9  N   CYS A   3      13.488  11.241   8.417  1.00  5.24           N
ATOM     10  CA  CYS A   3      13.660  10.707   9.787  1.00  5.39           C
TER      11      CYS A   3
HETATM   12  O   HOH A 101      10.000  10.000  10.000  1.00 20.00
HETATM   13 CA    CA A 102      11.000  11.000  11.000  1.00 20.00
END
ATOM     99  N   GLY A  99       0.000   0.000   0.000  1.00  0.00           N
`

func readTest(t *testing.T, text string) *Structure {
	s, err := Read(strings.NewReader(text), "test.pdb")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRead(t *testing.T) {
	s := readTest(t, testPDB)
	if s.IdCode != "1CRN" {
		t.Fatalf("Expected ID code '1CRN' but got '%s'.", s.IdCode)
	}

	var got []string
	for _, r := range s.Residues {
		got = append(got, r.Id())
	}
	want := []string{"THR 1A", "THR 2A", "CYS 3A", "HOH 101A", "CA 102A"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Residues mismatch (-want +got):\n%s", diff)
	}
	if n := len(s.Atoms()); n != 12 {
		t.Fatalf("Expected 12 atoms (END stops reading) but got %d.", n)
	}
	if !s.Residues[2].Ter || s.Residues[1].Ter {
		t.Fatalf("Expected only CYS 3 to be followed by TER.")
	}

	ca := s.Residues[0].Atom("CA")
	if ca.Serial != 2 || ca.Element != "C" || ca.BFactor != 10.80 {
		t.Fatalf("Unexpected carbon alpha: %s (B %f)", ca, ca.BFactor)
	}
	if ca.Residue != s.Residues[0] {
		t.Fatalf("Atom does not point to its residue.")
	}
}

func TestReadElementInference(t *testing.T) {
	s := readTest(t, testPDB)
	water := s.Residues[3].Atoms[0]
	if water.Element != "O" || !water.Het {
		t.Fatalf("Expected a HETATM oxygen but got %s.", water)
	}
	calcium := s.Residues[4].Atoms[0]
	if calcium.Element != "CA" {
		t.Fatalf("Expected calcium but got element '%s'.", calcium.Element)
	}
	if calcium.AtomicNumber() != 20 {
		t.Fatalf("Expected atomic number 20 but got %d.",
			calcium.AtomicNumber())
	}
}

func TestReadSeqres(t *testing.T) {
	s := readTest(t, testPDB)
	want := []string{"THR", "THR", "CYS", "PRO", "GLY"}
	if diff := cmp.Diff(want, s.Seqres['A']); diff != "" {
		t.Fatalf("SEQRES mismatch (-want +got):\n%s", diff)
	}

	var got []string
	for _, r := range s.Missing {
		got = append(got, r.Id())
	}
	if diff := cmp.Diff([]string{"PRO 4A", "GLY 5A"}, got); diff != "" {
		t.Fatalf("REMARK 465 mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingResiduesAlign(t *testing.T) {
	s := readTest(t, testPDB)
	s.Missing = nil

	missing := s.MissingResidues('A')
	var got []string
	for _, r := range missing {
		got = append(got, r.Id())
	}
	if diff := cmp.Diff([]string{"PRO 4A", "GLY 5A"}, got); diff != "" {
		t.Fatalf("Aligned missing residues mismatch (-want +got):\n%s", diff)
	}

	mapped := s.SeqresAtoms('A')
	if len(mapped) != 5 || mapped[2] != s.Residues[2] || mapped[3] != nil {
		t.Fatalf("Unexpected SEQRES to ATOM mapping: %v", mapped)
	}
}

const testModels = `MODEL        1
ATOM      1  N   GLY A   1       1.000   0.000   0.000  1.00  0.00           N
ENDMDL
MODEL        2
ATOM      1  N   GLY A   1       2.000   0.000   0.000  1.00  0.00           N
ATOM      2  CA  GLY A   1       3.000   0.000   0.000  1.00  0.00           C
ENDMDL
`

func TestReadModel(t *testing.T) {
	s := readTest(t, testModels)
	if atoms := s.Atoms(); len(atoms) != 1 || atoms[0].X != 1.0 {
		t.Fatalf("Expected the first model but got %v.", atoms)
	}

	s, err := ReadModel(strings.NewReader(testModels), "test.pdb", 2)
	if err != nil {
		t.Fatal(err)
	}
	if atoms := s.Atoms(); len(atoms) != 2 || atoms[0].X != 2.0 {
		t.Fatalf("Expected the second model but got %v.", atoms)
	}

	if _, err := ReadModel(strings.NewReader(testModels), "x", 3); err == nil {
		t.Fatalf("Expected an error for a model that doesn't exist.")
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := Read(strings.NewReader("HEADER\n"), "empty.pdb"); err == nil {
		t.Fatalf("Expected an error for a file without atoms.")
	}
	bad := "ATOM      1  N   GLY A   1       abc     0.000   0.000  1.00  0.00\n"
	if _, err := Read(strings.NewReader(bad), "bad.pdb"); err == nil {
		t.Fatalf("Expected an error for a bad coordinate.")
	}
}

func TestReadPDBGzip(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "1crn.pdb.gz")
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	fmt.Fprint(gz, testPDB)
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := ReadPDB(fp)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Residues) != 5 {
		t.Fatalf("Expected 5 residues but got %d.", len(s.Residues))
	}
}

func TestWriteRoundTrip(t *testing.T) {
	s := readTest(t, testPDB)
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(buf.String(), "\n")
	first := "ATOM      1  N   THR A   1      17.047  14.099   3.625" +
		"  1.00 13.79           N"
	if lines[0] != first {
		t.Fatalf("Expected first line\n%q\nbut got\n%q", first, lines[0])
	}

	again := readTest(t, buf.String())
	if len(again.Residues) != len(s.Residues) {
		t.Fatalf("Expected %d residues but got %d.",
			len(s.Residues), len(again.Residues))
	}
	for i, a := range again.Atoms() {
		b := s.Atoms()[i]
		if a.Name != b.Name || a.Element != b.Element ||
			math.Abs(a.X-b.X) > 1e-3 {
			t.Fatalf("Atom %d changed from %s to %s.", i, b, a)
		}
	}
	if !again.Residues[2].Ter {
		t.Fatalf("Expected TER after CYS 3 to be preserved.")
	}
	if rmsd, err := CaRMSD(s, again); err != nil || rmsd > 1e-3 {
		t.Fatalf("Expected zero RMSD but got %f (%v).", rmsd, err)
	}
}

func TestWriteLongResidueName(t *testing.T) {
	s := readTest(t, testPDB)
	s.Residues[0].Name = "THRX"
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(buf.String(), "\n")
	first := "ATOM      1  N   THR A   1      17.047  14.099   3.625" +
		"  1.00 13.79           N"
	if lines[0] != first {
		t.Fatalf("Expected first line\n%q\nbut got\n%q", first, lines[0])
	}
	again := readTest(t, buf.String())
	if a := again.Atoms()[0]; a.X != 17.047 || a.Residue.SequenceNum != 1 {
		t.Fatalf("Columns shifted after a long residue name: %s.", a)
	}
}

func TestCaRMSD(t *testing.T) {
	s := readTest(t, testPDB)
	moved := s.Copy()
	for _, r := range moved.Residues {
		if ca := r.Atom("CA"); ca != nil {
			ca.X += 1.0
		}
	}
	rmsd, err := CaRMSD(s, moved)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(rmsd-1.0) > 1e-9 {
		t.Fatalf("Expected RMSD 1.0 but got %f.", rmsd)
	}

	if rmsd, err := CaRMSD(s, s.Copy()); err != nil || rmsd != 0 {
		t.Fatalf("Expected RMSD 0 for a copy but got %f (%v).", rmsd, err)
	}

	// Only residues with a CA count, and a rigid shift isn't superimposed
	// away.
	shifted := s.Copy()
	for _, a := range shifted.Atoms() {
		a.X += 5.0
	}
	rmsd, err = CaRMSD(s, shifted)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(rmsd-5.0) > 1e-9 {
		t.Fatalf("Expected RMSD 5.0 for a rigid shift but got %f.", rmsd)
	}

	moved.Residues = moved.Residues[:1]
	if _, err := CaRMSD(s, moved); err == nil {
		t.Fatalf("Expected an error for different numbers of atoms.")
	}
}

func TestStructureEditing(t *testing.T) {
	s := readTest(t, testPDB)
	c := s.Copy()
	if c.Residues[0].Atoms[0] == s.Residues[0].Atoms[0] {
		t.Fatalf("Copy shares atoms with the original.")
	}
	if c.Residues[0].Atoms[0].Residue != c.Residues[0] {
		t.Fatalf("Copied atom is not owned by the copied residue.")
	}

	n := c.Strip(func(r *Residue) bool { return r.Name == "HOH" })
	if n != 1 || len(c.Residues) != 4 || len(s.Residues) != 5 {
		t.Fatalf("Strip removed %d residues; %d left (original %d).",
			n, len(c.Residues), len(s.Residues))
	}

	thr := c.Residues[0]
	o := thr.Atom("O")
	if thr.RemoveAtoms(func(a *Atom) bool { return a.Name == "O" }) != 1 {
		t.Fatalf("Expected one atom to be removed.")
	}
	if o.Residue != nil || thr.Atom("O") != nil {
		t.Fatalf("Removed atom is still attached.")
	}
	c.Residues[1].AddAtom(o)
	if o.Residue != c.Residues[1] {
		t.Fatalf("AddAtom did not take ownership.")
	}
}

func TestNewAtom(t *testing.T) {
	if _, err := NewAtom("", "C", structure.Coords{}); err == nil {
		t.Fatalf("Expected an error for an empty atom name.")
	}
	nan := structure.Coords{X: math.NaN()}
	if _, err := NewAtom("CA", "C", nan); err == nil {
		t.Fatalf("Expected an error for a NaN coordinate.")
	}
	a, err := NewAtom("HG21", "", structure.Coords{})
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsHydrogen() {
		t.Fatalf("Expected HG21 to be a hydrogen but got element '%s'.",
			a.Element)
	}
}

func TestSequences(t *testing.T) {
	s := readTest(t, testPDB)
	seqs := s.Sequences()
	if len(seqs) != 1 {
		t.Fatalf("Expected one sequence but got %d.", len(seqs))
	}
	if seqs[0].Name != "1crnA" || string(seqs[0].Residues) != "TTC" {
		t.Fatalf("Unexpected sequence %s: %s", seqs[0].Name,
			string(seqs[0].Residues))
	}
}
