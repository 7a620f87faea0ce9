// Package amber runs AmberTools programs on behalf of package fixer: tleap
// builds missing atoms and AddToBox packs solvent around a structure.
//
// Both programs work on files, so every call writes its input to a work
// directory, runs the program there and reads back the PDB file it wrote.
package amber

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/TuftsBCB/pdbfix/fixer"
	"github.com/TuftsBCB/pdbfix/pdb"
)

// Bin returns the path of the AmberTools program given. $AMBERHOME/bin is
// searched first, and then $PATH. If the program can't be found, an empty
// string is returned.
func Bin(name string) string {
	if home := os.Getenv("AMBERHOME"); len(home) > 0 {
		fp := filepath.Join(home, "bin", name)
		if info, err := os.Stat(fp); err == nil && !info.IsDir() &&
			info.Mode()&0111 != 0 {
			return fp
		}
	}
	if fp, err := exec.LookPath(name); err == nil {
		return fp
	}
	return ""
}

// DefaultLeaprc is the force field loaded by Leap when none is given.
var DefaultLeaprc = []string{"leaprc.protein.ff14SB"}

// Leap builds missing atoms with tleap. It implements fixer.Builder.
type Leap struct {
	// Path is the tleap program. If empty, Bin("tleap") is used.
	Path string

	// Leaprc lists the leaprc files to source. If empty, DefaultLeaprc is
	// used.
	Leaprc []string

	// Dir is the work directory. If empty, a temporary directory is created
	// and removed after each build. Otherwise, files are left in Dir.
	Dir string

	Log *zap.Logger
}

// Script returns the tleap input that loads in.pdb and saves the complete
// structure to out.pdb.
func (l *Leap) Script() string {
	leaprc := l.Leaprc
	if len(leaprc) == 0 {
		leaprc = DefaultLeaprc
	}
	var buf bytes.Buffer
	for _, rc := range leaprc {
		fmt.Fprintf(&buf, "source %s\n", rc)
	}
	buf.WriteString("x = loadpdb in.pdb\n")
	buf.WriteString("savepdb x out.pdb\n")
	buf.WriteString("quit\n")
	return buf.String()
}

// Build writes the structure to in.pdb, runs tleap and returns the structure
// in out.pdb. A failure to run tleap, or a missing out.pdb, is returned as
// a *fixer.ExternalToolError.
func (l *Leap) Build(s *pdb.Structure) (*pdb.Structure, error) {
	bin := l.Path
	if len(bin) == 0 {
		if bin = Bin("tleap"); len(bin) == 0 {
			return nil, fmt.Errorf("Could not find tleap in $AMBERHOME/bin " +
				"or $PATH.")
		}
	}
	dir, cleanup, err := workDir(l.Dir, "pdbfix-leap")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := pdb.WritePDB(filepath.Join(dir, "in.pdb"), s); err != nil {
		return nil, err
	}
	script := filepath.Join(dir, "leap.in")
	if err := os.WriteFile(script, []byte(l.Script()), 0644); err != nil {
		return nil, err
	}
	return run(logger(l.Log), dir, bin, []string{"-f", "leap.in"})
}

// AddToBox packs copies of a solvent around a solute with the AddToBox
// program. It implements fixer.Packer.
type AddToBox struct {
	// Path is the AddToBox program. If empty, Bin("AddToBox") is used.
	Path string

	// Dir is the work directory, with the same rules as Leap.Dir.
	Dir string

	// The closest distance allowed between a solvent atom and a solute atom
	// (-RP), and between two solvent atoms (-RW), in angstroms.
	SoluteBuffer  float64
	SolventBuffer float64

	// Grid is the spacing of the placement grid in angstroms (-G).
	Grid float64

	Log *zap.Logger
}

// NewAddToBox returns a packer with the buffers pdb4amber uses.
func NewAddToBox() *AddToBox {
	return &AddToBox{
		SoluteBuffer:  3.0,
		SolventBuffer: 6.0,
		Grid:          0.2,
	}
}

// Args returns the AddToBox command line for a solute with the number of
// atoms given.
func (b *AddToBox) Args(soluteAtoms, copies int) []string {
	return []string{
		"-c", "solute.pdb",
		"-a", "solvent.pdb",
		"-na", fmt.Sprintf("%d", copies),
		"-o", "out.pdb",
		"-P", fmt.Sprintf("%d", soluteAtoms),
		"-RP", formatFloat(b.SoluteBuffer),
		"-RW", formatFloat(b.SolventBuffer),
		"-G", formatFloat(b.Grid),
		"-V", "1",
	}
}

// Pack writes the solute and solvent, runs AddToBox and returns the packed
// structure. Failures are returned as a *fixer.ExternalToolError.
func (b *AddToBox) Pack(solute, solvent *pdb.Structure,
	copies int) (*pdb.Structure, error) {

	bin := b.Path
	if len(bin) == 0 {
		if bin = Bin("AddToBox"); len(bin) == 0 {
			return nil, fmt.Errorf("Could not find AddToBox in " +
				"$AMBERHOME/bin or $PATH.")
		}
	}
	dir, cleanup, err := workDir(b.Dir, "pdbfix-pack")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := pdb.WritePDB(filepath.Join(dir, "solute.pdb"), solute); err != nil {
		return nil, err
	}
	if err := pdb.WritePDB(filepath.Join(dir, "solvent.pdb"), solvent); err != nil {
		return nil, err
	}
	args := b.Args(len(solute.Atoms()), copies)
	return run(logger(b.Log), dir, bin, args)
}

// run executes the program in dir and reads the out.pdb it leaves behind.
func run(log *zap.Logger, dir, bin string, args []string) (*pdb.Structure,
	error) {

	log.Debug("running", zap.String("program", bin),
		zap.Strings("args", args), zap.String("dir", dir))
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, &fixer.ExternalToolError{
			Tool: bin, Args: args, Output: string(out), Err: err,
		}
	}

	s, err := pdb.ReadPDB(filepath.Join(dir, "out.pdb"))
	if err != nil {
		return nil, &fixer.ExternalToolError{
			Tool: bin, Args: args, Output: string(out),
			Err: fmt.Errorf("No usable out.pdb was written: %w", err),
		}
	}
	return s, nil
}

// workDir returns dir, or a new temporary directory if dir is empty. The
// cleanup function removes only temporary directories.
func workDir(dir, prefix string) (string, func(), error) {
	if len(dir) > 0 {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", nil, err
		}
		return dir, func() {}, nil
	}
	tmp, err := os.MkdirTemp("", prefix)
	if err != nil {
		return "", nil, err
	}
	return tmp, func() { os.RemoveAll(tmp) }, nil
}

func logger(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
