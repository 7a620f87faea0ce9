package pdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WritePDB writes the structure to a new PDB file at the path given.
func WritePDB(fp string, s *Structure) error {
	f, err := os.Create(fp)
	if err != nil {
		return err
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write writes the structure as ATOM, HETATM and TER records followed by an
// END record. Atoms are numbered from 1 in the order they're written, and
// a TER record is written after every residue with its Ter field set and
// after the last residue of every chain. Residue names longer than three
// characters (possible in PDBx/mmCIF files) are cut to three.
func Write(w io.Writer, s *Structure) error {
	buf := bufio.NewWriter(w)
	serial := 1
	for i, r := range s.Residues {
		for _, a := range r.Atoms {
			record := "ATOM"
			if a.Het {
				record = "HETATM"
			}
			fmt.Fprintf(buf,
				"%-6s%5d %-4s%c%3s %c%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f"+
					"          %2s\n",
				record, serial%100000, atomNameField(a), blank(a.AltLoc),
				resName(r), blank(r.Chain), r.SequenceNum%10000,
				blank(r.InsertionCode), a.X, a.Y, a.Z,
				a.Occupancy, a.BFactor, a.Element)
			serial++
		}

		last := i == len(s.Residues)-1
		if r.Ter || last || s.Residues[i+1].Chain != r.Chain {
			fmt.Fprintf(buf, "TER   %5d      %3s %c%4d%c\n",
				serial%100000, resName(r), blank(r.Chain),
				r.SequenceNum%10000, blank(r.InsertionCode))
			serial++
		}
	}
	fmt.Fprintln(buf, "END")
	return buf.Flush()
}

// atomNameField positions an atom name in its four columns. Names of atoms
// with a one letter element start in column 14, unless they need all four.
func atomNameField(a *Atom) string {
	if len(a.Name) < 4 && len(a.Element) < 2 {
		return " " + a.Name
	}
	return a.Name
}

// resName returns the residue name as it fits in columns 18-20.
func resName(r *Residue) string {
	if len(r.Name) > 3 {
		return r.Name[:3]
	}
	return r.Name
}

func blank(b byte) byte {
	if b == 0 {
		return ' '
	}
	return b
}
