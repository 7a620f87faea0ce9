package geom

import (
	"github.com/TuftsBCB/structure"
	"gonum.org/v1/gonum/spatial/r3"
)

// Coefficients that place a beta-carbon with ideal tetrahedral geometry
// relative to the backbone N, CA and C atoms.
const (
	cbCross = -0.58273431
	cbN     = 0.56802827
	cbC     = -0.54067466
)

// IdealCB returns the position of a beta-carbon with ideal geometry given
// the positions of the backbone N, CA and C atoms of the same residue. The
// result is about 1.52 angstroms from CA for a typical backbone.
func IdealCB(n, ca, c structure.Coords) structure.Coords {
	vn, vca, vc := vec(n), vec(ca), vec(c)
	b := r3.Sub(vca, vn)
	cc := r3.Sub(vc, vca)
	a := r3.Cross(b, cc)

	cb := r3.Scale(cbCross, a)
	cb = r3.Add(cb, r3.Scale(cbN, b))
	cb = r3.Add(cb, r3.Scale(cbC, cc))
	return coords(r3.Add(cb, vca))
}
