// Command pdbfix prepares protein structures for Amber force fields.
//
// The prep subcommand reads a PDB or PDBx/mmCIF file, checks it for
// disulfide bonds, chain gaps, missing heavy atoms and non-standard residues,
// applies the requested repairs and writes a PDB file that tleap can load.
// A summary of everything found is written to the log.
//
// The scan subcommand runs the same checks over many files in parallel
// without changing them.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app holds the state shared by every subcommand. It is set up by the root
// command before a subcommand runs.
type app struct {
	configPath string
	logPath    string
	verbose    bool

	cfg      Config
	log      *zap.Logger
	sink     zapcore.WriteSyncer
	closeLog func()
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "pdbfix",
		Short:        "Prepare protein structures for Amber force fields",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "",
		"A YAML file with cutoffs and AmberTools settings.")
	flags.StringVarP(&a.logPath, "logfile", "l", "pdbfix.log",
		"Where the log and summary are written. May be 'stdout' or 'stderr'.")
	flags.BoolVarP(&a.verbose, "verbose", "v", false,
		"Log debug messages, including every residue skipped by a check.")

	cmd.AddCommand(newPrepCmd(a))
	cmd.AddCommand(newScanCmd(a))
	return cmd
}

func (a *app) setup() error {
	a.cfg = DefaultConfig()
	if len(a.configPath) > 0 {
		cfg, err := LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	var err error
	a.log, a.sink, a.closeLog, err = newLogger(a.logPath, a.verbose)
	return err
}

func (a *app) teardown() {
	if a.log != nil {
		_ = a.log.Sync()
	}
	if a.closeLog != nil {
		a.closeLog()
	}
}

// overrideCutoffs replaces configured cutoffs with the flag values that were
// set explicitly.
func (a *app) overrideCutoffs(cmd *cobra.Command, disulfide,
	gap float64) error {

	if cmd.Flags().Changed("disulfide-cutoff") {
		a.cfg.DisulfideCutoff = disulfide
	}
	if cmd.Flags().Changed("gap-cutoff") {
		a.cfg.GapCutoff = gap
	}
	return a.cfg.Validate()
}

func addCutoffFlags(cmd *cobra.Command, disulfide, gap *float64) {
	cmd.Flags().Float64Var(disulfide, "disulfide-cutoff", 0,
		"The largest SG-SG distance (angstroms) of a disulfide bond. "+
			"(default from config, or 2.5)")
	cmd.Flags().Float64Var(gap, "gap-cutoff", 0,
		"The largest C-N distance (angstroms) between consecutive residues "+
			"before a gap is reported. (default from config, or 2.0)")
}

// execute runs the command line given. The log is closed before returning,
// whether or not the subcommand succeeded.
func execute(args []string, stdout io.Writer) error {
	a := &app{}
	defer a.teardown()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	return cmd.Execute()
}

func main() {
	if err := execute(os.Args[1:], os.Stdout); err != nil {
		os.Exit(1)
	}
}
