package pdbx

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/cif"
	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/pdbfix/pdb"
)

var (
	ef = fmt.Errorf
	sf = fmt.Sprintf
)

// ReadFile reads the first model of the PDBx/mmCIF file at the path given.
// If the file name ends with ".gz", gzip decompression will be used.
func ReadFile(fp string, model int) (*Entry, error) {
	var reader io.Reader

	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	reader = f

	if path.Ext(fp) == ".gz" {
		reader, err = gzip.NewReader(reader)
		if err != nil {
			return nil, err
		}
	}
	e, err := Read(reader, model)
	if err != nil {
		return nil, ef("Error in '%s': %s", fp, err)
	}
	e.Structure.Path = fp
	return e, nil
}

// Read reads exactly one PDB entry from the reader given. If there are 0
// entries or more than 1 entry, an error is returned. The model selects
// which model's coordinates are read (by "atom_site.pdbx_pdb_model_num").
// A model of 0 means the first model in the file.
//
// An error is also returned if the reader could not be interpreted as a valid
// PDBx/mmCIF file (which must be a valid CIF file).
func Read(r io.Reader, model int) (*Entry, error) {
	entries, err := ReadAll(r, model)
	if err != nil {
		return nil, err
	} else if len(entries) != 1 {
		return nil, ef("Expected one PDB entry but got %d.", len(entries))
	}
	return entries[0], nil
}

// ReadAll reads all PDB entries from the reader provided, sorted by data
// block name.
func ReadAll(r io.Reader, model int) ([]*Entry, error) {
	cf, err := cif.Read(r)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(cf.Blocks))
	for name := range cf.Blocks {
		names = append(names, name)
	}
	sort.Strings(names)

	var entries []*Entry
	for _, name := range names {
		e, err := ReadCIFDataBlock(cf.Blocks[name], model)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ReadCIFDataBlock converts a PDBx/mmCIF data block to a PDB entry.
// It is exposed in the public interface so that clients can freely mix
// Entry objects and their corresponding underlying data blocks.
//
// An error is returned if the data block given does not correspond to a valid
// PDBx/mmCIF entry.
func ReadCIFDataBlock(b *cif.DataBlock, model int) (*Entry, error) {
	e := &Entry{CIF: b}
	if err := e.read(b, model); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Entry) read(b *cif.DataBlock, model int) error {
	e.Id = value(b, "entry.id").String()
	if len(e.Id) == 0 {
		e.Id = b.Name
	}
	e.Title = value(b, "struct.title").String()
	e.Structure = &pdb.Structure{
		Path:   b.Name,
		IdCode: strings.ToUpper(e.Id),
		Seqres: make(map[byte][]string, 2),
	}

	e.readEntities(b)
	e.readMissing(b)
	return e.readAtomSites(b, model)
}

func (e *Entry) readEntities(b *cif.DataBlock) {
	e.Entities = make(map[string]*Entity, 2)
	loop := asLoop(b, "entity.id", "entity.type")
	ids, types := columnStrings(loop[0]), columnStrings(loop[1])
	for i, id := range ids {
		if missing(id) {
			continue
		}
		ent := &Entity{Id: id}
		if i < len(types) {
			ent.Type = types[i]
		}
		e.Entities[id] = ent
	}

	loop = asLoop(b, "entity_poly_seq.entity_id", "entity_poly_seq.mon_id")
	eids, mons := columnStrings(loop[0]), columnStrings(loop[1])
	for i := range eids {
		if ent, ok := e.Entities[eids[i]]; ok && i < len(mons) {
			ent.Seq = append(ent.Seq, mons[i])
		}
	}

	loop = asLoop(b, "entity_poly.entity_id", "entity_poly.pdbx_strand_id")
	eids, strands := columnStrings(loop[0]), columnStrings(loop[1])
	for i := range eids {
		ent, ok := e.Entities[eids[i]]
		if !ok || i >= len(strands) {
			continue
		}
		for _, strand := range strings.Split(strands[i], ",") {
			strand = strings.TrimSpace(strand)
			if len(strand) == 0 || missing(strand) {
				continue
			}
			ent.Chains = append(ent.Chains, strand[0])
			e.Structure.Seqres[strand[0]] = ent.Seq
		}
	}
}

// readMissing reads the equivalent of REMARK 465: polymer residues that
// have no coordinates at all.
func (e *Entry) readMissing(b *cif.DataBlock) {
	const cat = "pdbx_unobs_or_zero_occ_residues."
	loop := asLoop(b, cat+"polymer_flag", cat+"occupancy_flag",
		cat+"auth_asym_id", cat+"auth_comp_id", cat+"auth_seq_id",
		cat+"pdb_ins_code")
	flags, occs := columnStrings(loop[0]), columnStrings(loop[1])
	chains, comps := columnStrings(loop[2]), columnStrings(loop[3])
	nums, icodes := columnStrings(loop[4]), columnStrings(loop[5])
	for i := range flags {
		if flags[i] != "Y" || i >= len(chains) || i >= len(comps) ||
			i >= len(nums) {
			continue
		}
		// An occupancy flag of 0 means atoms are missing, not the residue.
		if i < len(occs) && occs[i] == "0" {
			continue
		}
		num, err := strconv.Atoi(nums[i])
		if err != nil || missing(chains[i]) {
			continue
		}
		e.Structure.Missing = append(e.Structure.Missing, &pdb.Residue{
			Name:          comps[i],
			SequenceNum:   num,
			InsertionCode: code(icodes, i),
			Chain:         chains[i][0],
		})
	}
}

func (e *Entry) readAtomSites(b *cif.DataBlock, model int) error {
	const cat = "atom_site."
	loop := asLoop(b, cat+"group_pdb", cat+"cartn_x", cat+"cartn_y",
		cat+"cartn_z", cat+"label_atom_id", cat+"auth_atom_id",
		cat+"label_comp_id", cat+"auth_comp_id", cat+"label_asym_id",
		cat+"auth_asym_id", cat+"label_seq_id", cat+"auth_seq_id",
		cat+"pdbx_pdb_ins_code", cat+"label_alt_id", cat+"type_symbol",
		cat+"occupancy", cat+"b_iso_or_equiv", cat+"id",
		cat+"pdbx_pdb_model_num")
	cols := make([][]string, len(loop))
	for i := range loop {
		cols[i] = columnStrings(loop[i])
	}
	groups := cols[0]
	xs, ys, zs := cols[1], cols[2], cols[3]
	atomNames := prefer(cols[5], cols[4])
	compNames := prefer(cols[7], cols[6])
	chains := prefer(cols[9], cols[8])
	seqNums := prefer(cols[11], cols[10])
	icodes, altlocs, elements := cols[12], cols[13], cols[14]
	occs, bfactors, serials, models := cols[15], cols[16], cols[17], cols[18]

	n := len(groups)
	for _, col := range [][]string{xs, ys, zs, atomNames, compNames} {
		if len(col) != n {
			n = 0
		}
	}
	if n == 0 {
		return ef("The given PDBx/mmCIF data has no ATOM/HETATM records.")
	}

	s := e.Structure
	wantModel := ""
	if model > 0 {
		wantModel = strconv.Itoa(model)
	}
	var last *pdb.Residue
	for i := 0; i < n; i++ {
		if i < len(models) && !missing(models[i]) {
			if wantModel == "" {
				wantModel = models[i]
			}
			if models[i] != wantModel {
				continue
			}
		}

		var coords structure.Coords
		var err error
		if coords.X, err = strconv.ParseFloat(xs[i], 64); err != nil {
			return ef("Bad x coordinate in atom site %d: %s", i+1, err)
		}
		if coords.Y, err = strconv.ParseFloat(ys[i], 64); err != nil {
			return ef("Bad y coordinate in atom site %d: %s", i+1, err)
		}
		if coords.Z, err = strconv.ParseFloat(zs[i], 64); err != nil {
			return ef("Bad z coordinate in atom site %d: %s", i+1, err)
		}

		element := ""
		if i < len(elements) && !missing(elements[i]) {
			element = elements[i]
		}
		atom, err := pdb.NewAtom(atomNames[i], element, coords)
		if err != nil {
			return ef("Bad atom site %d: %s", i+1, err)
		}
		atom.Het = groups[i] == "HETATM"
		atom.AltLoc = code(altlocs, i)
		if i < len(serials) {
			atom.Serial, _ = strconv.Atoi(serials[i])
		}
		if i < len(occs) {
			if occ, err := strconv.ParseFloat(occs[i], 64); err == nil {
				atom.Occupancy = occ
			}
		}
		if i < len(bfactors) {
			if bf, err := strconv.ParseFloat(bfactors[i], 64); err == nil {
				atom.BFactor = bf
			}
		}

		chain := code(chains, i)
		seqNum := 0
		if i < len(seqNums) {
			seqNum, _ = strconv.Atoi(seqNums[i])
		}
		icode := code(icodes, i)
		if last == nil || last.Chain != chain || last.Name != compNames[i] ||
			last.SequenceNum != seqNum || last.InsertionCode != icode {
			if last != nil && last.Chain != chain {
				last.Ter = true
			}
			last = &pdb.Residue{
				Name:          compNames[i],
				SequenceNum:   seqNum,
				InsertionCode: icode,
				Chain:         chain,
			}
			s.Residues = append(s.Residues, last)
		}
		last.AddAtom(atom)
	}
	if len(s.Residues) == 0 {
		return ef("The given PDBx/mmCIF data has no atoms in model %s.",
			wantModel)
	}
	s.Residues[len(s.Residues)-1].Ter = true
	return nil
}

// value returns the data value tagged by "key". If it does not exist, then
// an empty string is returned (wrapped in a cif.Value).
func value(b *cif.DataBlock, key string) cif.Value {
	if v, ok := b.Items[key]; ok {
		return v
	}
	return cif.AsValue("")
}

// asLoop retrieves the Loop containing the data tag "key". If a loop does
// not exist, then one is created with a single row with columns corresponding
// to "key" and each of the tags in "others". Columns for tags that don't
// exist are nil. If the tag in "key" doesn't exist at all, every column is
// nil.
//
// The purpose of this function is to abstract over whether some data set in
// a PDBx/CIF file is represented as a loop or not. For example, if a PDBx file
// has only one entity, then the "entity.*" tags are not in a loop. But if there
// is more than one entity, they are declared as a loop.
func asLoop(b *cif.DataBlock, key string, others ...string) []cif.ValueLoop {
	tags := append([]string{key}, others...)
	vloop := make([]cif.ValueLoop, len(tags))
	if loop, ok := b.Loops[key]; ok {
		for i, tag := range tags {
			// Loop.Get returns the first column for unknown tags.
			if col, ok := loop.Columns[tag]; ok {
				vloop[i] = loop.Values[col]
			}
		}
		return vloop
	}
	if _, ok := b.Items[key]; !ok {
		return vloop
	}
	for i, tag := range tags {
		v, ok := b.Items[tag]
		if !ok {
			continue
		}
		switch raw := v.Raw().(type) {
		case string:
			vloop[i] = cif.AsValues([]string{raw})
		case int:
			vloop[i] = cif.AsValues([]int{raw})
		case float64:
			vloop[i] = cif.AsValues([]float64{raw})
		default:
			panic(sf("Unknown value type %T for %s.", raw, tag))
		}
	}
	return vloop
}

// columnStrings returns every value in a column as a string. Numeric columns
// are formatted back to strings, so they can be read uniformly with columns
// that mix numbers with "." and "?".
func columnStrings(vl cif.ValueLoop) []string {
	if vl == nil {
		return nil
	}
	return vl.Strings()
}

// prefer returns the first column if it has values, and the second
// otherwise.
func prefer(first, second []string) []string {
	if len(first) > 0 {
		return first
	}
	return second
}

// code returns the single character stored in column i, or a blank for
// missing values.
func code(col []string, i int) byte {
	if i >= len(col) || missing(col[i]) || len(col[i]) == 0 {
		return ' '
	}
	return col[i][0]
}

// missing returns true for the CIF values that mean a value is omitted or
// unknown.
func missing(v string) bool {
	return v == "." || v == "?"
}
