package fixer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoBuilder is returned by AddMissingAtoms when heavy atoms are still
// missing after the simple repairs and no Builder was given.
var ErrNoBuilder = errors.New("Heavy atoms are missing and no atom builder " +
	"is available to add them.")

// MalformedResidueError describes a residue that lacks an atom needed by a
// check. The residue is skipped by that check and the check continues.
type MalformedResidueError struct {
	// Index is the position of the residue in the structure.
	Index int
	Name  string
	Num   int
	Chain byte

	// Atom is the name of the atom that was missing.
	Atom string

	// Check names the check that needed the atom, like "disulfide" or "gap".
	Check string
}

func (e *MalformedResidueError) Error() string {
	return fmt.Sprintf("Residue %d (%s %d, chain %c) has no %s atom. It was "+
		"skipped by the %s check.", e.Index, e.Name, e.Num, chainByte(e.Chain),
		e.Atom, e.Check)
}

// UnsupportedMutationError is returned when a mutation asks for a residue
// name that has no canonical topology.
type UnsupportedMutationError struct {
	Index int
	Name  string
}

func (e *UnsupportedMutationError) Error() string {
	return fmt.Sprintf("Cannot mutate residue %d to '%s' since there is no "+
		"topology for that residue name.", e.Index, e.Name)
}

// ExternalToolError is returned when an external program (like tleap)
// fails. Output holds everything the program wrote to stdout and stderr.
type ExternalToolError struct {
	Tool   string
	Args   []string
	Output string
	Err    error
}

func (e *ExternalToolError) Error() string {
	cmd := strings.TrimSpace(e.Tool + " " + strings.Join(e.Args, " "))
	msg := fmt.Sprintf("The command '%s' failed: %s", cmd, e.Err)
	if out := strings.TrimSpace(e.Output); len(out) > 0 {
		msg += "\n" + out
	}
	return msg
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

func chainByte(c byte) byte {
	if c == 0 || c == ' ' {
		return '-'
	}
	return c
}
