package pdbx

import (
	"github.com/BurntSushi/cif"

	"github.com/TuftsBCB/pdbfix/pdb"
)

// Entry corresponds to a single data block inside a PDBx/mmCIF formatted file.
// Usually, a file contains only one data block.
//
// Note that an Entry does *not* encapsulate all information in a PDBx/mmCIF
// file. Only the entities and the coordinates of a single model are read.
// Access to the raw CIF data block from the file is exposed in this type.
type Entry struct {
	// The underlying CIF file. This provides raw access to attributes of a
	// PDBx file that are not captured by the types in this package.
	CIF *cif.DataBlock

	// The four letter PDB identifier corresponding to this entry.
	Id string

	// Corresponds to the "struct.title" item.
	Title string

	// All entities in this entry, keyed by "entity.id".
	Entities map[string]*Entity

	// The coordinates of the model that was read, in the same form as a PDB
	// file. Chain identifiers are author chain identifiers (auth_asym_id)
	// when the file has them.
	Structure *pdb.Structure
}

// Entity is a chemically distinct part of an entry.
type Entity struct {
	// (CIF: entity.id)
	Id string

	// Must be either "macrolide", "non-polymer", "polymer" or "water".
	// (CIF: entity.type)
	Type string

	// The residue names from the _entity_poly_seq category. Empty for
	// anything that isn't a polymer.
	Seq []string

	// The author chain identifiers of this entity, from
	// "entity_poly.pdbx_strand_id".
	Chains []byte
}
