package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/TuftsBCB/pdbfix/fixer"
	"github.com/TuftsBCB/pdbfix/pdb"
)

// report collects what was found and changed in one structure. Residues are
// named as they were when each check ran.
type report struct {
	Input    string
	Residues int
	Chains   []byte

	AltLocs   int
	Water     int
	Hydrogens int
	Stripped  int

	Nonstandard []string
	Histidines  int
	ConstantPH  int

	Bonds    []string
	Unpaired []string
	Gaps     []string
	Missing  []string

	Mutations []string
	Hinted    int
	Rebuilt   bool
	RMSD      float64
	HasRMSD   bool
	Packed    int

	Warnings []error
}

func newReport(input string, s *pdb.Structure) *report {
	return &report{
		Input:    input,
		Residues: len(s.Residues),
		Chains:   s.Chains(),
	}
}

func (r *report) addDisulfides(s *pdb.Structure, bonds []fixer.Bond,
	unpaired []int) {

	for _, b := range bonds {
		r.Bonds = append(r.Bonds, fmt.Sprintf("%s - %s  %.2f A",
			s.Residues[b.Residue1].Id(), s.Residues[b.Residue2].Id(),
			b.Distance))
	}
	for _, i := range unpaired {
		r.Unpaired = append(r.Unpaired, s.Residues[i].Id())
	}
}

func (r *report) addGaps(s *pdb.Structure, gaps []fixer.Gap) {
	for _, g := range gaps {
		r.Gaps = append(r.Gaps, fmt.Sprintf("gap of %.2f A between %s and %s",
			g.Distance, s.Residues[g.Index1].Id(), s.Residues[g.Index2].Id()))
	}
}

func (r *report) addMissing(s *pdb.Structure, missing fixer.MissingAtoms) {
	for _, i := range missing.Indices() {
		r.Missing = append(r.Missing, fmt.Sprintf("%s: %s",
			s.Residues[i].Id(), strings.Join(missing[i], " ")))
	}
}

// WriteTo writes the full text summary.
func (r *report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(&b, "%s\nSummary of pdbfix for: %s\n%s\n", rule, r.Input, rule)

	section(&b, "Chains")
	chains := make([]string, len(r.Chains))
	for i, c := range r.Chains {
		if c == ' ' || c == 0 {
			c = '-'
		}
		chains[i] = string(c)
	}
	fmt.Fprintf(&b, "The following chains were found: %s\n",
		strings.Join(chains, " "))
	fmt.Fprintf(&b, "Residues read: %d\n", r.Residues)

	if r.AltLocs+r.Water+r.Hydrogens+r.Stripped > 0 {
		section(&b, "Removed")
		counted(&b, r.AltLocs, "alternate location atom(s)")
		counted(&b, r.Water, "water molecule(s)")
		counted(&b, r.Hydrogens, "hydrogen atom(s)")
		counted(&b, r.Stripped, "residue(s) matching --strip")
	}

	section(&b, "Non-standard residue names")
	lines(&b, r.Nonstandard)

	section(&b, "Protonation states")
	fmt.Fprintf(&b, "Histidines assigned: %d\n", r.Histidines)
	if r.ConstantPH > 0 {
		fmt.Fprintf(&b, "Renamed for constant pH: %d\n", r.ConstantPH)
	}

	section(&b, "Disulfide bonds")
	lines(&b, r.Bonds)
	if len(r.Unpaired) > 0 {
		fmt.Fprintf(&b, "Unpaired cysteines: %s\n",
			strings.Join(r.Unpaired, ", "))
	}

	section(&b, "Gaps")
	lines(&b, r.Gaps)

	section(&b, "Missing heavy atoms")
	lines(&b, r.Missing)

	if len(r.Mutations) > 0 {
		section(&b, "Mutations")
		lines(&b, r.Mutations)
	}
	if r.Hinted > 0 || r.Rebuilt {
		section(&b, "Added atoms")
		counted(&b, r.Hinted, "atom(s) placed from ideal geometry")
		if r.Rebuilt {
			b.WriteString("Remaining atoms were built by tleap.\n")
		}
		if r.HasRMSD {
			fmt.Fprintf(&b, "CA RMSD after rebuilding: %.3f A\n", r.RMSD)
		}
	}
	if r.Packed > 0 {
		section(&b, "Solvent")
		counted(&b, r.Packed, "solvent copies packed")
	}
	if len(r.Warnings) > 0 {
		section(&b, "Warnings")
		for _, err := range r.Warnings {
			fmt.Fprintf(&b, "%s\n", err)
		}
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Line returns a one line summary of the checks, as printed by scan.
func (r *report) Line() string {
	nonstd := "none"
	if len(r.Nonstandard) > 0 {
		nonstd = strings.Join(r.Nonstandard, ",")
	}
	return fmt.Sprintf("%s: %d residues, %d disulfides, %d gaps, "+
		"%d residues missing atoms, non-standard: %s",
		r.Input, r.Residues, len(r.Bonds), len(r.Gaps), len(r.Missing), nonstd)
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n---------- %s\n", title)
}

func lines(b *strings.Builder, ls []string) {
	if len(ls) == 0 {
		b.WriteString("None\n")
		return
	}
	for _, l := range ls {
		fmt.Fprintf(b, "%s\n", l)
	}
}

func counted(b *strings.Builder, n int, what string) {
	if n > 0 {
		fmt.Fprintf(b, "%d %s\n", n, what)
	}
}
