package pdb

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/TuftsBCB/structure"
)

type pdbParser struct {
	s    *Structure
	line []byte

	// The model number whose atoms are kept. Zero means the first model
	// seen.
	wantModel int
	curModel  int
	doneModel bool
	sawModel  bool
}

// ReadPDB reads the first model of the PDB file at the path given.
// If the file name ends with ".gz", gzip decompression will be used.
func ReadPDB(fp string) (*Structure, error) {
	return ReadPDBModel(fp, 0)
}

// ReadPDBModel is like ReadPDB, but keeps the model given. See ReadModel.
func ReadPDBModel(fp string, model int) (*Structure, error) {
	var reader io.Reader
	var err error

	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	reader = f

	// If the file is gzipped, use the gzip decompressor.
	if path.Ext(fp) == ".gz" {
		reader, err = gzip.NewReader(reader)
		if err != nil {
			return nil, err
		}
	}
	return ReadModel(reader, fp, model)
}

// Read reads the first model of a PDB formatted structure from r. The name
// given is used only for error messages and to guess an ID code when the
// HEADER record is missing.
func Read(r io.Reader, name string) (*Structure, error) {
	return ReadModel(r, name, 0)
}

// ReadModel is like Read, except the model with the given number (as written
// in its MODEL record) is kept instead of the first one. A model number of 0
// means the first model in the file.
func ReadModel(r io.Reader, name string, model int) (*Structure, error) {
	s := &Structure{
		Path:     name,
		Residues: make([]*Residue, 0, 100),
		Seqres:   make(map[byte][]string, 2),
	}
	p := pdbParser{s: s, wantModel: model}

	// Now traverse each line, and process it according to the record name.
	// Note that it is imperative that we preserve the order of ATOM records
	// as we read them, since residue boundaries and TER records only make
	// sense in file order.
	breader := bufio.NewReaderSize(r, 1000)
	for {
		line, err := breader.ReadBytes('\n')
		if err == io.EOF && len(line) == 0 {
			break
		} else if err != io.EOF && err != nil {
			return nil, err
		}
		p.line = bytes.TrimRight(line, "\r\n")
		stop, perr := p.parseLine()
		if perr != nil {
			return nil, fmt.Errorf("Error in '%s': %s", name, perr)
		}
		if stop || err == io.EOF {
			break
		}
	}

	if model > 0 && !p.sawModel && model != 1 {
		return nil, fmt.Errorf("The file '%s' has no MODEL %d.", name, model)
	}

	// If we didn't pick up any atoms, this probably isn't a valid PDB file.
	if len(s.Residues) == 0 {
		return nil, fmt.Errorf("The file '%s' does not appear to be a valid "+
			"PDB file. (No ATOM or HETATM records were found.)", name)
	}

	// If we couldn't find an Id code, inspect the base name of the file path.
	if len(s.IdCode) == 0 {
		base := path.Base(name)
		switch {
		case len(base) >= 7 && base[0:3] == "pdb":
			s.IdCode = base[3:7]
		case len(base) >= 4:
			s.IdCode = strings.TrimSuffix(base, path.Ext(base))
			if len(s.IdCode) > 4 {
				s.IdCode = s.IdCode[0:4]
			}
		}
	}
	return s, nil
}

// parseLine processes a single record. If the rest of the input should be
// ignored, stop is true.
func (p *pdbParser) parseLine() (stop bool, err error) {
	switch p.cols(1, 6) {
	case "HEADER":
		p.s.IdCode = p.cols(63, 66)
	case "MODEL":
		p.sawModel = true
		if p.doneModel {
			return true, nil
		}
		p.curModel, err = p.atoi(11, 14)
		if err != nil {
			// Some programs write "MODEL" without a number.
			p.curModel = 0
		}
	case "ENDMDL":
		if p.keepModel() && len(p.s.Residues) > 0 {
			p.doneModel = true
		}
	case "SEQRES":
		p.parseSeqres()
	case "REMARK":
		p.parseRemark()
	case "ATOM", "HETATM":
		if !p.keepModel() || p.doneModel {
			return false, nil
		}
		return false, p.parseAtom()
	case "TER":
		if p.keepModel() && !p.doneModel && len(p.s.Residues) > 0 {
			p.s.Residues[len(p.s.Residues)-1].Ter = true
		}
	case "END":
		return true, nil
	}
	return false, nil
}

// keepModel returns true when ATOM records in the current model are wanted.
func (p *pdbParser) keepModel() bool {
	return p.wantModel == 0 || p.curModel == p.wantModel ||
		(!p.sawModel && p.wantModel == 1)
}

func (p *pdbParser) parseSeqres() {
	ident := p.at(12)
	for c := 20; c <= 68; c += 4 {
		res := p.cols(c, c+2)
		if len(res) == 0 {
			break
		}
		p.s.Seqres[ident] = append(p.s.Seqres[ident], res)
	}
}

// parseRemark reads the missing residues listed in REMARK 465. The records
// start with a free form header, so only lines that end with a residue name,
// a chain identifier and a sequence number are used.
func (p *pdbParser) parseRemark() {
	if p.cols(8, 10) != "465" {
		return
	}
	fields := strings.Fields(p.cols(11, 80))
	if len(fields) < 3 {
		return
	}
	name := fields[len(fields)-3]
	chain := fields[len(fields)-2]
	num := fields[len(fields)-1]
	if len(chain) != 1 || len(name) > 3 || strings.ToUpper(name) != name {
		return
	}

	icode := byte(' ')
	if last := num[len(num)-1]; last < '0' || last > '9' {
		icode = last
		num = num[:len(num)-1]
	}
	seqNum, err := strconv.Atoi(num)
	if err != nil {
		return
	}
	p.s.Missing = append(p.s.Missing, &Residue{
		Name:          name,
		SequenceNum:   seqNum,
		InsertionCode: icode,
		Chain:         chain[0],
	})
}

func (p *pdbParser) parseAtom() error {
	var err error

	seqNum, err := p.atoi(23, 26)
	if err != nil {
		return fmt.Errorf("Could not read residue sequence number in '%s'.",
			p.line)
	}
	residue := p.getResidue(p.at(22), p.cols(18, 20), seqNum, p.at(27))

	var coords structure.Coords
	if coords.X, err = p.atof(31, 38); err != nil {
		return err
	}
	if coords.Y, err = p.atof(39, 46); err != nil {
		return err
	}
	if coords.Z, err = p.atof(47, 54); err != nil {
		return err
	}

	het := p.cols(1, 6) == "HETATM"
	element := p.cols(77, 78)
	if len(element) == 0 {
		element = inferElement(p.cols(13, 16), het && p.at(13) != ' ')
	}
	atom, err := NewAtom(p.cols(13, 16), element, coords)
	if err != nil {
		return err
	}
	atom.Het = het
	atom.AltLoc = p.at(17)
	if atom.AltLoc == 0 {
		atom.AltLoc = ' '
	}

	// Serial numbers aren't required to be decimal (hybrid-36 files exceed
	// 99999 atoms), so failing to read one isn't fatal.
	atom.Serial, _ = p.atoi(7, 11)
	if occ, err := p.atof(55, 60); err == nil {
		atom.Occupancy = occ
	}
	if b, err := p.atof(61, 66); err == nil {
		atom.BFactor = b
	}

	residue.AddAtom(atom)
	return nil
}

// getResidue returns the last residue read if it has the same identity as
// the one given. Otherwise, a new residue is started.
func (p *pdbParser) getResidue(chain byte, name string, seqNum int,
	icode byte) *Residue {

	if chain == 0 {
		chain = ' '
	}
	if icode == 0 {
		icode = ' '
	}
	if n := len(p.s.Residues); n > 0 {
		last := p.s.Residues[n-1]
		if !last.Ter && last.Chain == chain && last.Name == name &&
			last.SequenceNum == seqNum && last.InsertionCode == icode {
			return last
		}
	}
	residue := &Residue{
		Name:          name,
		SequenceNum:   seqNum,
		InsertionCode: icode,
		Chain:         chain,
		Atoms:         make([]*Atom, 0, 8),
	}
	p.s.Residues = append(p.s.Residues, residue)
	return residue
}

func (p *pdbParser) atoi(start, end int) (int, error) {
	return strconv.Atoi(p.cols(start, end))
}

func (p *pdbParser) atof(start, end int) (float64, error) {
	return strconv.ParseFloat(p.cols(start, end), 64)
}

// cols returns the trimmed contents of the 1-indexed, inclusive column range
// given. Columns past the end of the line are treated as blank.
func (p *pdbParser) cols(start, end int) string {
	rs, re := start-1, end
	if rs >= len(p.line) || rs < 0 {
		return ""
	}
	if re > len(p.line) {
		re = len(p.line)
	}
	if re < rs {
		return ""
	}
	return string(bytes.TrimSpace(p.line[rs:re]))
}

func (p *pdbParser) at(column int) byte {
	i := column - 1
	if i < 0 || i >= len(p.line) {
		return 0
	}
	return p.line[i]
}
