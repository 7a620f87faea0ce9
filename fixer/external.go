package fixer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/TuftsBCB/pdbfix/pdb"
)

// Packer surrounds a solute with copies of a solvent molecule. Implementations
// usually run an external program, like AddToBox from AmberTools.
type Packer interface {
	Pack(solute, solvent *pdb.Structure, copies int) (*pdb.Structure, error)
}

// Pack adds copies of the solvent around the structure using the packer
// given. The packed structure replaces f.Structure.
func (f *Fixer) Pack(p Packer, solvent *pdb.Structure, copies int) error {
	if copies < 1 {
		return fmt.Errorf("The number of solvent copies must be positive, "+
			"but got %d.", copies)
	}
	f.Log.Debug("packing solvent", zap.Int("copies", copies))
	packed, err := p.Pack(f.Structure, solvent, copies)
	if err != nil {
		return err
	}
	f.Structure = packed
	return nil
}
