package fixer

import (
	"github.com/TuftsBCB/pdbfix/geom"
)

// Gap is a break in a protein chain between two residues that follow each
// other in the structure. Index1 and Index2 are residue indices and Num1 and
// Num2 are the residue sequence numbers from the input file.
type Gap struct {
	Distance float64

	Name1  string
	Index1 int
	Num1   int

	Name2  string
	Index2 int
	Num2   int
}

// FindGaps returns every place where the carbonyl carbon of a protein
// residue is more than GapCutoff away from the amide nitrogen of the next
// protein residue in the same chain. Residues separated by a TER record are
// never paired. If either atom is missing, a warning is recorded and the
// pair is skipped. Gaps are sorted by Index1.
func (f *Fixer) FindGaps() []Gap {
	var protein []int
	for i, r := range f.Structure.Residues {
		if IsProtein(r.Name) {
			protein = append(protein, i)
		}
	}

	var gaps []Gap
	for k := 0; k+1 < len(protein); k++ {
		i, j := protein[k], protein[k+1]
		r1, r2 := f.Structure.Residues[i], f.Structure.Residues[j]
		if r1.Chain != r2.Chain || r1.Ter {
			continue
		}
		c, n := r1.Atom("C"), r2.Atom("N")
		if c == nil {
			f.malformed(i, "C", "gap")
			continue
		}
		if n == nil {
			f.malformed(j, "N", "gap")
			continue
		}
		if d := geom.Distance(c.Coords, n.Coords); d > f.GapCutoff {
			gaps = append(gaps, Gap{
				Distance: d,
				Name1:    r1.Name, Index1: i, Num1: r1.SequenceNum,
				Name2: r2.Name, Index2: j, Num2: r2.SequenceNum,
			})
		}
	}
	return gaps
}
