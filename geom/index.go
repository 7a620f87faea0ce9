// Package geom provides coordinate lookup and distance queries over the atoms
// of a structure, and the small amount of vector geometry needed to rebuild
// missing atoms.
package geom

import (
	"fmt"
	"math"
	"sort"

	"github.com/TuftsBCB/structure"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/TuftsBCB/pdbfix/pdb"
)

// CoordsError is returned when an atom has a coordinate that isn't a finite
// number.
type CoordsError struct {
	Index int
	Atom  string
	Coord structure.Coords
}

func (e *CoordsError) Error() string {
	return fmt.Sprintf("Atom %d (%s) has a non-finite coordinate: %s",
		e.Index, e.Atom, e.Coord)
}

// Index maps a global atom index to its coordinates. The global index of an
// atom is its position in the slice given to NewIndex, which is normally the
// result of (*pdb.Structure).Atoms.
//
// An Index is a snapshot: it doesn't see atoms that move, appear or
// disappear after it was built.
type Index struct {
	coords []r3.Vec
}

// Pair is a pair of global atom indices with the distance between them.
// I is always less than J.
type Pair struct {
	I, J     int
	Distance float64
}

// NewIndex builds an index over the atoms given. A *CoordsError is returned
// if any atom has a NaN or infinite coordinate.
func NewIndex(atoms []*pdb.Atom) (*Index, error) {
	idx := &Index{coords: make([]r3.Vec, len(atoms))}
	for i, a := range atoms {
		if !Finite(a.Coords) {
			return nil, &CoordsError{Index: i, Atom: a.Name, Coord: a.Coords}
		}
		idx.coords[i] = vec(a.Coords)
	}
	return idx, nil
}

// Len returns the number of atoms in the index.
func (idx *Index) Len() int {
	return len(idx.coords)
}

// Coords returns the coordinates of the atom with global index i.
func (idx *Index) Coords(i int) r3.Vec {
	return idx.coords[i]
}

// Distance returns the Euclidean distance between atoms i and j.
func (idx *Index) Distance(i, j int) float64 {
	return r3.Norm(r3.Sub(idx.coords[i], idx.coords[j]))
}

// Within returns every pair of atoms in ids that are at most cutoff apart.
// Pairs are sorted by ascending distance, and ties are broken by atom index
// so the order doesn't depend on the order of ids.
func (idx *Index) Within(ids []int, cutoff float64) []Pair {
	var pairs []Pair
	for x := 0; x < len(ids); x++ {
		for y := x + 1; y < len(ids); y++ {
			i, j := ids[x], ids[y]
			if i == j {
				continue
			}
			if i > j {
				i, j = j, i
			}
			if d := idx.Distance(i, j); d <= cutoff {
				pairs = append(pairs, Pair{I: i, J: j, Distance: d})
			}
		}
	}
	sort.Slice(pairs, func(a, b int) bool {
		pa, pb := pairs[a], pairs[b]
		if pa.Distance != pb.Distance {
			return pa.Distance < pb.Distance
		}
		if pa.I != pb.I {
			return pa.I < pb.I
		}
		return pa.J < pb.J
	})
	return pairs
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b structure.Coords) float64 {
	return r3.Norm(r3.Sub(vec(a), vec(b)))
}

func vec(c structure.Coords) r3.Vec {
	return r3.Vec{X: c.X, Y: c.Y, Z: c.Z}
}

func coords(v r3.Vec) structure.Coords {
	return structure.Coords{X: v.X, Y: v.Y, Z: v.Z}
}

// Finite returns true if every component of c is a finite number.
func Finite(c structure.Coords) bool {
	for _, v := range []float64{c.X, c.Y, c.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
