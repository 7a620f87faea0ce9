package main

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TuftsBCB/pdbfix/fixer"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		cpu       int
		model     int
		disulfide float64
		gap       float64
	)
	cmd := &cobra.Command{
		Use:   "scan structure-file [ structure-file ... ]",
		Short: "Run every check over many structures without changing them",
		Long: `Scan reads each structure file and prints one line per file with the
number of disulfide bonds, gaps and residues missing heavy atoms, and the
non-standard residue names found. Files are processed in parallel, but the
lines are printed in the order the files were given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.overrideCutoffs(cmd, disulfide, gap); err != nil {
				return err
			}
			return a.scan(cmd.Context(), cmd.OutOrStdout(), args, cpu, model)
		},
	}
	cmd.Flags().IntVar(&cpu, "cpu", runtime.NumCPU(),
		"The number of files read and checked at the same time.")
	cmd.Flags().IntVar(&model, "model", 0,
		"The model to read from multi-model files. 0 means the first.")
	addCutoffFlags(cmd, &disulfide, &gap)
	return cmd
}

// scanResult is the outcome of checking one file.
type scanResult struct {
	rep *report
	err error
}

func (a *app) scan(ctx context.Context, out io.Writer, files []string,
	cpu, model int) error {

	if cpu < 1 {
		cpu = 1
	}
	results := make([]scanResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cpu)
	for i, fp := range files {
		i, fp := i, fp
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rep, err := a.check(fp, model)
			results[i] = scanResult{rep, err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, r := range results {
		if r.err != nil {
			failed++
			a.log.Error("could not check structure",
				zap.String("input", files[i]), zap.Error(r.err))
			fmt.Fprintf(out, "%s: error: %s\n", files[i], r.err)
			continue
		}
		fmt.Fprintln(out, r.rep.Line())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be checked.",
			failed, len(files))
	}
	return nil
}

// check runs the detection steps of prep over one file.
func (a *app) check(fp string, model int) (*report, error) {
	s, err := readStructure(fp, model)
	if err != nil {
		return nil, err
	}
	f := fixer.New(s)
	f.Log = a.log.With(zap.String("input", fp))
	a.cfg.apply(f)

	rep := newReport(fp, s)
	rep.Nonstandard = f.FindNonstandardResidues()
	bonds, unpaired := f.FindDisulfides()
	rep.addDisulfides(s, bonds, unpaired)
	rep.addGaps(s, f.FindGaps())
	rep.addMissing(s, f.FindMissingHeavyAtoms())
	rep.Warnings = f.Warnings
	return rep, nil
}
