package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TuftsBCB/pdbfix/fasta"
	"github.com/TuftsBCB/pdbfix/fixer"
	"github.com/TuftsBCB/pdbfix/pdb"
	"github.com/TuftsBCB/pdbfix/pdbx"
)

type prepFlags struct {
	out        string
	model      int
	noHyd      bool
	dry        bool
	strip      string
	mutate     string
	addMissing bool
	constantPH bool
	keepAlt    bool
	seq        bool
	pack       string
	copies     int

	disulfide float64
	gap       float64
}

func newPrepCmd(a *app) *cobra.Command {
	flags := &prepFlags{}
	cmd := &cobra.Command{
		Use:   "prep input-file",
		Short: "Check and repair one structure, writing an Amber ready PDB file",
		Long: `Prep reads a PDB or PDBx/mmCIF file (optionally gzipped) and runs every
check over it: non-standard residue names, histidine protonation, disulfide
bonds, chain gaps and missing heavy atoms. Repairs are applied as requested
by flags and the result is written as a PDB file with residues numbered
from 1.

Next to the output, <out>_renum.txt maps new residue numbers to the original
ones, <out>_sslink lists disulfide bonded residue pairs and <out>_nonprot.pdb
holds every residue that isn't protein.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.overrideCutoffs(cmd, flags.disulfide,
				flags.gap); err != nil {
				return err
			}
			return a.prep(cmd.OutOrStdout(), args[0], flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.out, "out", "o", "",
		"The output PDB file. Written to stdout when empty.")
	f.IntVar(&flags.model, "model", 0,
		"The model to read from a multi-model file. 0 means the first.")
	f.BoolVar(&flags.noHyd, "nohyd", false, "Remove all hydrogen atoms.")
	f.BoolVarP(&flags.dry, "dry", "d", false, "Remove all water molecules.")
	f.StringVarP(&flags.strip, "strip", "s", "",
		"A comma separated list of residue names to remove.")
	f.StringVarP(&flags.mutate, "mutate", "m", "",
		"Mutations like '3-ALA,10-GLU'. Positions count residues from 1 "+
			"after stripping.")
	f.BoolVar(&flags.addMissing, "add-missing-atoms", false,
		"Add missing heavy atoms, running tleap when ideal geometry isn't "+
			"enough.")
	f.BoolVar(&flags.constantPH, "constantph", false,
		"Rename titratable residues to their constant pH names.")
	f.BoolVar(&flags.keepAlt, "keep-altlocs", false,
		"Keep every alternate location instead of only the first.")
	f.BoolVar(&flags.seq, "seq", false,
		"Write the chain sequences to <out>.fasta.")
	f.StringVar(&flags.pack, "pack", "",
		"A PDB file with a solvent molecule to pack around the structure.")
	f.IntVar(&flags.copies, "copies", 1,
		"The number of solvent copies packed by --pack.")
	addCutoffFlags(cmd, &flags.disulfide, &flags.gap)
	return cmd
}

// readStructure reads a PDB or PDBx/mmCIF file, chosen by its extension.
func readStructure(fp string, model int) (*pdb.Structure, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(fp, ".gz")))
	switch ext {
	case ".cif", ".mmcif":
		e, err := pdbx.ReadFile(fp, model)
		if err != nil {
			return nil, err
		}
		return e.Structure, nil
	}
	return pdb.ReadPDBModel(fp, model)
}

func (a *app) prep(stdout io.Writer, input string, flags *prepFlags) error {
	s, err := readStructure(input, flags.model)
	if err != nil {
		return err
	}
	log := a.log.With(zap.String("input", input))
	f := fixer.New(s)
	f.Log = log
	a.cfg.apply(f)

	rep := newReport(input, s)
	if !flags.keepAlt {
		rep.AltLocs = f.RemoveAltLocs()
	}
	if len(flags.strip) > 0 {
		rep.Stripped = f.StripResidues(strings.Split(flags.strip, ","))
	}
	if flags.dry {
		rep.Water = f.StripWater()
	}

	rep.Nonstandard = f.FindNonstandardResidues()
	rep.Histidines = f.AssignHistidines()
	if flags.constantPH {
		rep.ConstantPH = f.ConstantPH()
	}
	if flags.noHyd {
		rep.Hydrogens = f.StripHydrogens()
	}

	bonds, unpaired := f.FindDisulfides()
	rep.addDisulfides(f.Structure, bonds, unpaired)
	f.RenameBondedCysteines(bonds)

	rep.addGaps(f.Structure, f.FindGaps())
	missing := f.FindMissingHeavyAtoms()
	rep.addMissing(f.Structure, missing)

	if len(flags.mutate) > 0 {
		muts, err := fixer.ParseMutations(flags.mutate)
		if err != nil {
			return err
		}
		for _, m := range muts {
			rep.Mutations = append(rep.Mutations, fmt.Sprintf("%s -> %s",
				residueAt(f.Structure, m.Index), m.Name))
		}
		if err := f.Mutate(muts); err != nil {
			return err
		}
	}

	if flags.addMissing {
		if err := a.addMissing(f, rep); err != nil {
			return err
		}
	}
	if len(flags.pack) > 0 {
		solvent, err := pdb.ReadPDB(flags.pack)
		if err != nil {
			return err
		}
		box := a.cfg.addToBox()
		box.Log = log
		if err := f.Pack(box, solvent, flags.copies); err != nil {
			return err
		}
		rep.Packed = flags.copies
	}
	rep.Warnings = f.Warnings

	if err := a.writeOutputs(stdout, f, flags); err != nil {
		return err
	}
	if _, err := rep.WriteTo(a.sink); err != nil {
		return err
	}
	log.Info("structure prepared", zap.String("output", outputName(flags)),
		zap.Int("disulfides", len(rep.Bonds)), zap.Int("gaps", len(rep.Gaps)),
		zap.Int("warnings", len(rep.Warnings)))
	return nil
}

// addMissing adds missing heavy atoms, running tleap only when ideal
// geometry can't place all of them.
func (a *app) addMissing(f *fixer.Fixer, rep *report) error {
	before := f.Structure
	atoms := len(before.Atoms())

	// Try without a builder first, so that tleap only runs when needed.
	err := f.AddMissingAtoms(nil)
	rep.Hinted = len(f.Structure.Atoms()) - atoms
	if err == nil {
		return nil
	}
	if !errors.Is(err, fixer.ErrNoBuilder) {
		return err
	}

	snapshot := f.Structure.Copy()
	leap := a.cfg.leap()
	leap.Log = f.Log
	if err := f.AddMissingAtoms(leap); err != nil {
		return err
	}
	rep.Rebuilt = true

	rmsd, err := pdb.CaRMSD(snapshot, f.Structure)
	if err != nil {
		f.Log.Warn("could not compare the rebuilt structure", zap.Error(err))
		return nil
	}
	rep.RMSD, rep.HasRMSD = rmsd, true
	return nil
}

// writeOutputs renumbers the structure and writes it, along with the
// renumbering table, disulfide links, non-protein residues and (optionally)
// the sequences.
func (a *app) writeOutputs(stdout io.Writer, f *fixer.Fixer,
	flags *prepFlags) error {

	renum := f.Renumber()
	bonds, _ := f.FindDisulfides()
	nonprot := f.NonProtein()

	if len(flags.out) == 0 {
		if err := pdb.Write(stdout, f.Structure); err != nil {
			return err
		}
	} else if err := pdb.WritePDB(flags.out, f.Structure); err != nil {
		return err
	}

	base := outputBase(flags)
	err := writeFile(base+"_renum.txt", func(w io.Writer) error {
		for _, r := range renum {
			_, err := fmt.Fprintf(w, "%-4s %c %5d%c %5d\n", r.Name,
				blank(r.Chain), r.OldNum, blank(r.InsertionCode), r.NewNum)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(bonds) > 0 {
		err := writeFile(base+"_sslink", func(w io.Writer) error {
			for _, b := range bonds {
				_, err := fmt.Fprintf(w, "%d %d\n", b.Residue1+1, b.Residue2+1)
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	if len(nonprot.Residues) > 0 {
		if err := pdb.WritePDB(base+"_nonprot.pdb", nonprot); err != nil {
			return err
		}
	}
	if flags.seq {
		err := writeFile(base+".fasta", func(w io.Writer) error {
			return fasta.NewWriter(w).WriteAll(f.Structure.Sequences())
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFile(fp string, write func(w io.Writer) error) error {
	out, err := os.Create(fp)
	if err != nil {
		return err
	}
	if err := write(out); err != nil {
		out.Close()
		return fmt.Errorf("Could not write '%s': %w", fp, err)
	}
	return out.Close()
}

func outputName(flags *prepFlags) string {
	if len(flags.out) == 0 {
		return "stdout"
	}
	return flags.out
}

// outputBase is the output path without its extension. Auxiliary files are
// named after it.
func outputBase(flags *prepFlags) string {
	out := outputName(flags)
	return strings.TrimSuffix(out, filepath.Ext(out))
}

func residueAt(s *pdb.Structure, i int) string {
	if i < 0 || i >= len(s.Residues) {
		return fmt.Sprintf("residue %d", i+1)
	}
	return s.Residues[i].Id()
}

func blank(b byte) byte {
	if b == 0 {
		return ' '
	}
	return b
}
