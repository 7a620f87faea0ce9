package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TuftsBCB/pdbfix/amber"
	"github.com/TuftsBCB/pdbfix/fixer"
)

// Config holds the settings that can be read from a YAML file with
// --config. Command line flags override values read from the file.
type Config struct {
	DisulfideCutoff float64        `yaml:"disulfide_cutoff"`
	GapCutoff       float64        `yaml:"gap_cutoff"`
	Leap            LeapConfig     `yaml:"leap"`
	AddToBox        AddToBoxConfig `yaml:"addtobox"`
}

type LeapConfig struct {
	// Binary is the tleap program. When empty, $AMBERHOME/bin and $PATH are
	// searched.
	Binary  string   `yaml:"binary"`
	Leaprc  []string `yaml:"leaprc"`
	WorkDir string   `yaml:"work_dir"`
}

type AddToBoxConfig struct {
	Binary        string  `yaml:"binary"`
	WorkDir       string  `yaml:"work_dir"`
	SoluteBuffer  float64 `yaml:"solute_buffer"`
	SolventBuffer float64 `yaml:"solvent_buffer"`
	Grid          float64 `yaml:"grid"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	box := amber.NewAddToBox()
	return Config{
		DisulfideCutoff: fixer.DefaultDisulfideCutoff,
		GapCutoff:       fixer.DefaultGapCutoff,
		Leap: LeapConfig{
			Leaprc: append([]string(nil), amber.DefaultLeaprc...),
		},
		AddToBox: AddToBoxConfig{
			SoluteBuffer:  box.SoluteBuffer,
			SolventBuffer: box.SolventBuffer,
			Grid:          box.Grid,
		},
	}
}

// LoadConfig reads a YAML configuration file. Settings missing from the file
// keep their default values. Unknown keys are an error.
func LoadConfig(fp string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(fp)
	if err != nil {
		return cfg, fmt.Errorf("Could not read config file '%s': %w", fp, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("Could not parse config file '%s': %w", fp, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("Invalid config file '%s': %w", fp, err)
	}
	return cfg, nil
}

// Validate returns an error if any setting is out of range.
func (c Config) Validate() error {
	if !(c.DisulfideCutoff > 0) {
		return fmt.Errorf("The disulfide cutoff must be positive, but got %g.",
			c.DisulfideCutoff)
	}
	if !(c.GapCutoff > 0) {
		return fmt.Errorf("The gap cutoff must be positive, but got %g.",
			c.GapCutoff)
	}
	box := c.AddToBox
	if box.SoluteBuffer < 0 || box.SolventBuffer < 0 || !(box.Grid > 0) {
		return fmt.Errorf("AddToBox buffers must be non-negative and the " +
			"grid spacing must be positive.")
	}
	return nil
}

// apply copies the cutoffs to a fixer.
func (c Config) apply(f *fixer.Fixer) {
	f.DisulfideCutoff = c.DisulfideCutoff
	f.GapCutoff = c.GapCutoff
}

func (c Config) leap() *amber.Leap {
	return &amber.Leap{
		Path:   c.Leap.Binary,
		Leaprc: c.Leap.Leaprc,
		Dir:    c.Leap.WorkDir,
	}
}

func (c Config) addToBox() *amber.AddToBox {
	return &amber.AddToBox{
		Path:          c.AddToBox.Binary,
		Dir:           c.AddToBox.WorkDir,
		SoluteBuffer:  c.AddToBox.SoluteBuffer,
		SolventBuffer: c.AddToBox.SolventBuffer,
		Grid:          c.AddToBox.Grid,
	}
}
