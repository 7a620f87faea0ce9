package pdbx

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/TuftsBCB/pdbfix/pdb"
)

const testCif = `data_1TST
_entry.id 1TST
_struct.title test
#
loop_
_entity.id
_entity.type
1 polymer
2 water
#
loop_
_entity_poly_seq.entity_id
_entity_poly_seq.num
_entity_poly_seq.mon_id
1 1 MET
1 2 GLY
1 3 ALA
#
_entity_poly.entity_id 1
_entity_poly.pdbx_strand_id A
#
loop_
_pdbx_unobs_or_zero_occ_residues.id
_pdbx_unobs_or_zero_occ_residues.polymer_flag
_pdbx_unobs_or_zero_occ_residues.occupancy_flag
_pdbx_unobs_or_zero_occ_residues.auth_asym_id
_pdbx_unobs_or_zero_occ_residues.auth_comp_id
_pdbx_unobs_or_zero_occ_residues.auth_seq_id
_pdbx_unobs_or_zero_occ_residues.PDB_ins_code
1 Y 1 A ALA 3 ?
#
loop_
_atom_site.group_PDB
_atom_site.id
_atom_site.type_symbol
_atom_site.label_atom_id
_atom_site.label_alt_id
_atom_site.label_comp_id
_atom_site.label_asym_id
_atom_site.label_seq_id
_atom_site.pdbx_PDB_ins_code
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
_atom_site.occupancy
_atom_site.B_iso_or_equiv
_atom_site.auth_seq_id
_atom_site.auth_asym_id
_atom_site.pdbx_PDB_model_num
ATOM   1 N N  . MET A 1 ? 0.000 0.000 0.000 1.00 10.00 1 A 1
ATOM   2 C CA . MET A 1 ? 1.200 0.800 0.000 1.00 10.00 1 A 1
ATOM   3 N N  . GLY A 2 ? 3.800 0.000 0.000 1.00 10.00 2 A 1
HETATM 4 O O  . HOH B . ? 9.000 9.000 9.000 1.00 20.00 101 A 1
ATOM   5 N N  . MET A 1 ? 5.000 0.000 0.000 1.00 10.00 1 A 2
`

func TestRead(t *testing.T) {
	e, err := Read(strings.NewReader(testCif), 0)
	if err != nil {
		t.Fatal(err)
	}
	if e.Id != "1TST" {
		t.Fatalf("Expected ID code '1TST' but got '%s'.", e.Id)
	}
	if ent := e.Entities["1"]; ent == nil || ent.Type != "polymer" {
		t.Fatalf("Expected polymer entity 1 but got %#v.", ent)
	}

	s := e.Structure
	var got []string
	for _, r := range s.Residues {
		got = append(got, r.Id())
	}
	want := []string{"MET 1A", "GLY 2A", "HOH 101A"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Residues mismatch (-want +got):\n%s", diff)
	}
	if n := len(s.Atoms()); n != 4 {
		t.Fatalf("Expected 4 atoms from model 1 but got %d.", n)
	}
	if !s.Residues[2].Atoms[0].Het {
		t.Fatalf("Expected water oxygen to be a HETATM.")
	}
	if ca := s.Residues[0].Atom("CA"); ca == nil || ca.Element != "C" {
		t.Fatalf("Expected a carbon alpha atom but got %v.", ca)
	}
	if diff := cmp.Diff([]string{"MET", "GLY", "ALA"}, s.Seqres['A']); diff != "" {
		t.Fatalf("SEQRES mismatch (-want +got):\n%s", diff)
	}
	if len(s.Missing) != 1 || s.Missing[0].Id() != "ALA 3A" {
		t.Fatalf("Expected missing residue ALA 3A but got %v.", s.Missing)
	}
}

func TestReadModel(t *testing.T) {
	e, err := Read(strings.NewReader(testCif), 2)
	if err != nil {
		t.Fatal(err)
	}
	atoms := e.Structure.Atoms()
	if len(atoms) != 1 || atoms[0].X != 5.0 {
		t.Fatalf("Expected the single atom of model 2 but got %v.", atoms)
	}

	if _, err := Read(strings.NewReader(testCif), 3); err == nil {
		t.Fatalf("Expected an error for a model that doesn't exist.")
	}
}

func TestReadWritePDB(t *testing.T) {
	e, err := Read(strings.NewReader(testCif), 0)
	if err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	if err := pdb.Write(&buf, e.Structure); err != nil {
		t.Fatal(err)
	}
	s, err := pdb.Read(strings.NewReader(buf.String()), "1tst.pdb")
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Residues) != len(e.Structure.Residues) {
		t.Fatalf("Expected %d residues after writing PDB but got %d.",
			len(e.Structure.Residues), len(s.Residues))
	}
}

func TestReadNoAtoms(t *testing.T) {
	if _, err := Read(strings.NewReader("data_x\n_entry.id x\n"), 0); err == nil {
		t.Fatalf("Expected an error for a file without atom sites.")
	}
}
