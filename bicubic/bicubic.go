// Package bicubic computes Hermite interpolation weights for refining a
// coarse control grid into a dense vertex grid. Each refined vertex of a
// grid cell is expressed as a weighted sum of the 16 control points of
// the surrounding 4x4 patch, with derivative stencils selected by where
// the cell sits relative to the grid boundary.
package bicubic

import "gonum.org/v1/gonum/mat"

// hermiteW maps the patch data vector [f; f_x; f_y; f_xy] to the
// coefficients of the bicubic polynomial.
var hermiteW = []float64{
	1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0,
	-3, 0, 0, 3, 0, 0, 0, 0, -2, 0, 0, -1, 0, 0, 0, 0,
	2, 0, 0, -2, 0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0,
	0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0,
	0, 0, 0, 0, -3, 0, 0, 3, 0, 0, 0, 0, -2, 0, 0, -1,
	0, 0, 0, 0, 2, 0, 0, -2, 0, 0, 0, 0, 1, 0, 0, 1,
	-3, 3, 0, 0, -2, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, -3, 3, 0, 0, -2, -1, 0, 0,
	9, -9, 9, -9, 6, 3, -3, -6, 6, -6, -3, 3, 4, 2, 1, 2,
	-6, 6, -6, 6, -4, -2, 2, 4, -3, 3, 3, -3, -2, -1, -1, -2,
	2, -2, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 2, -2, 0, 0, 1, 1, 0, 0,
	-6, 6, -6, 6, -3, -3, 3, 3, -4, 4, 2, -2, -2, -2, -1, -1,
	4, -4, 4, -4, 2, 2, -2, -2, 2, -2, -2, 2, 1, 1, 1, 1,
}

// Derivative stencils over the 4x4 control patch, one per boundary
// class. Each of the 16 rows is a sparse list of (column, value) pairs
// terminated by -1: first the four function values, then the four x
// derivatives, four y derivatives and four cross derivatives. Boundary
// classes replace the missing central differences with one-sided ones.

// left-bottom
var stencil00 = []float64{
	5, 1, -1,
	9, 1, -1,
	10, 1, -1,
	6, 1, -1,

	5, -1, 9, 1, -1,
	5, -0.5, 13, 0.5, -1,
	6, -0.5, 14, 0.5, -1,
	6, -1, 10, 1, -1,

	5, -1, 6, 1, -1,
	9, -1, 10, 1, -1,
	9, -0.5, 11, 0.5, -1,
	5, -0.5, 7, 0.5, -1,

	9, -1, 6, -1, 5, 1, 10, 1, -1,
	13, -0.5, 6, -0.5, 5, 0.5, 14, 0.5, -1,
	13, -0.25, 7, -0.25, 5, 0.25, 15, 0.25, -1,
	9, -0.5, 7, -0.5, 5, 0.5, 11, 0.5, -1,
}

// center-bottom
var stencil10 = []float64{
	5, 1, -1,
	9, 1, -1,
	10, 1, -1,
	6, 1, -1,

	1, -0.5, 9, 0.5, -1,
	5, -0.5, 13, 0.5, -1,
	6, -0.5, 14, 0.5, -1,
	2, -0.5, 10, 0.5, -1,

	5, -1, 6, 1, -1,
	9, -1, 10, 1, -1,
	9, -0.5, 11, 0.5, -1,
	5, -0.5, 7, 0.5, -1,

	9, -0.5, 2, -0.5, 1, 0.5, 10, 0.5, -1,
	13, -0.5, 6, -0.5, 5, 0.5, 14, 0.5, -1,
	13, -0.25, 7, -0.25, 5, 0.25, 15, 0.25, -1,
	9, -0.25, 3, -0.25, 1, 0.25, 11, 0.25, -1,
}

// right-bottom
var stencil20 = []float64{
	5, 1, -1,
	9, 1, -1,
	10, 1, -1,
	6, 1, -1,

	1, -0.5, 9, 0.5, -1,
	5, -1, 9, 1, -1,
	6, -1, 10, 1, -1,
	2, -0.5, 10, 0.5, -1,

	5, -1, 6, 1, -1,
	9, -1, 10, 1, -1,
	9, -0.5, 11, 0.5, -1,
	5, -0.5, 7, 0.5, -1,

	9, -0.5, 2, -0.5, 1, 0.5, 10, 0.5, -1,
	9, -1, 6, -1, 5, 1, 10, 1, -1,
	9, -0.5, 7, -0.5, 5, 0.5, 11, 0.5, -1,
	9, -0.25, 3, -0.25, 1, 0.25, 11, 0.25, -1,
}

// left-center
var stencil01 = []float64{
	5, 1, -1,
	9, 1, -1,
	10, 1, -1,
	6, 1, -1,

	5, -1, 9, 1, -1,
	5, -0.5, 13, 0.5, -1,
	6, -0.5, 14, 0.5, -1,
	6, -1, 10, 1, -1,

	4, -0.5, 6, 0.5, -1,
	8, -0.5, 10, 0.5, -1,
	9, -0.5, 11, 0.5, -1,
	5, -0.5, 7, 0.5, -1,

	8, -0.5, 6, -0.5, 4, 0.5, 10, 0.5, -1,
	12, -0.25, 6, -0.25, 4, 0.25, 14, 0.25, -1,
	13, -0.25, 7, -0.25, 5, 0.25, 15, 0.25, -1,
	9, -0.5, 7, -0.5, 5, 0.5, 11, 0.5, -1,
}

// center-center
var stencil11 = []float64{
	5, 1, -1,
	9, 1, -1,
	10, 1, -1,
	6, 1, -1,

	1, -0.5, 9, 0.5, -1,
	5, -0.5, 13, 0.5, -1,
	6, -0.5, 14, 0.5, -1,
	2, -0.5, 10, 0.5, -1,

	4, -0.5, 6, 0.5, -1,
	8, -0.5, 10, 0.5, -1,
	9, -0.5, 11, 0.5, -1,
	5, -0.5, 7, 0.5, -1,

	8, -0.25, 2, -0.25, 0, 0.25, 10, 0.25, -1,
	12, -0.25, 6, -0.25, 4, 0.25, 14, 0.25, -1,
	13, -0.25, 7, -0.25, 5, 0.25, 15, 0.25, -1,
	9, -0.25, 3, -0.25, 1, 0.25, 11, 0.25, -1,
}

// right-center
var stencil21 = []float64{
	5, 1, -1,
	9, 1, -1,
	10, 1, -1,
	6, 1, -1,

	1, -0.5, 9, 0.5, -1,
	5, -1, 9, 1, -1,
	6, -1, 10, 1, -1,
	2, -0.5, 10, 0.5, -1,

	4, -0.5, 6, 0.5, -1,
	8, -0.5, 10, 0.5, -1,
	9, -0.5, 11, 0.5, -1,
	5, -0.5, 7, 0.5, -1,

	8, -0.25, 2, -0.25, 0, 0.25, 10, 0.25, -1,
	8, -0.5, 6, -0.5, 4, 0.5, 10, 0.5, -1,
	9, -0.5, 7, -0.5, 5, 0.5, 11, 0.5, -1,
	9, -0.25, 3, -0.25, 1, 0.25, 11, 0.25, -1,
}

// left-top
var stencil02 = []float64{
	5, 1, -1,
	9, 1, -1,
	10, 1, -1,
	6, 1, -1,

	5, -1, 9, 1, -1,
	5, -0.5, 13, 0.5, -1,
	6, -0.5, 14, 0.5, -1,
	6, -1, 10, 1, -1,

	4, -0.5, 6, 0.5, -1,
	8, -0.5, 10, 0.5, -1,
	9, -1, 10, 1, -1,
	5, -1, 6, 1, -1,

	8, -0.5, 6, -0.5, 4, 0.5, 10, 0.5, -1,
	12, -0.25, 6, -0.25, 4, 0.25, 14, 0.25, -1,
	13, -0.5, 6, -0.5, 5, 0.5, 14, 0.5, -1,
	9, -1, 6, -1, 5, 1, 10, 1, -1,
}

// center-top
var stencil12 = []float64{
	5, 1, -1,
	9, 1, -1,
	10, 1, -1,
	6, 1, -1,

	1, -0.5, 9, 0.5, -1,
	5, -0.5, 13, 0.5, -1,
	6, -0.5, 14, 0.5, -1,
	2, -0.5, 10, 0.5, -1,

	4, -0.5, 6, 0.5, -1,
	8, -0.5, 10, 0.5, -1,
	9, -1, 10, 1, -1,
	5, -1, 6, 1, -1,

	8, -0.25, 2, -0.25, 0, 0.25, 10, 0.25, -1,
	12, -0.25, 6, -0.25, 4, 0.25, 14, 0.25, -1,
	13, -0.5, 6, -0.5, 5, 0.5, 14, 0.5, -1,
	9, -0.5, 2, -0.5, 1, 0.5, 10, 0.5, -1,
}

// right-top
var stencil22 = []float64{
	5, 1, -1,
	9, 1, -1,
	10, 1, -1,
	6, 1, -1,

	1, -0.5, 9, 0.5, -1,
	5, -1, 9, 1, -1,
	6, -1, 10, 1, -1,
	2, -0.5, 10, 0.5, -1,

	4, -0.5, 6, 0.5, -1,
	8, -0.5, 10, 0.5, -1,
	9, -1, 10, 1, -1,
	5, -1, 6, 1, -1,

	8, -0.25, 2, -0.25, 0, 0.25, 10, 0.25, -1,
	8, -0.5, 6, -0.5, 4, 0.5, 10, 0.5, -1,
	9, -1, 6, -1, 5, 1, 10, 1, -1,
	9, -0.5, 2, -0.5, 1, 0.5, 10, 0.5, -1,
}

var stencils = [3][3][]float64{
	{stencil00, stencil01, stencil02},
	{stencil10, stencil11, stencil12},
	{stencil20, stencil21, stencil22},
}

// Table holds the refined-vertex weights of one subdivision level.
// Weight[cx][cy] is an N x 16 matrix, N = (2+subgrid)^2: row n gives the
// control-point weights of subgrid vertex n of a cell with boundary
// class (cx, cy). Classes run left/center/right in x and
// bottom/center/top in y.
type Table struct {
	Subgrid int
	N       int
	Weight  [3][3]*mat.Dense
}

// Weights precomputes the weight table for the given subdivision count.
// subgrid is the number of extra vertices inserted per cell edge.
func Weights(subgrid int) *Table {
	n := (2 + subgrid) * (2 + subgrid)
	t := &Table{Subgrid: subgrid, N: n}

	// Sample positions of the subgrid within the unit cell, row-major
	// with x varying slowest, matching vertex traversal order.
	xy := mat.NewDense(n, 16, nil)
	step := 1.0 / float64(1+subgrid)
	row := 0
	for sx := 0; sx <= 1+subgrid; sx++ {
		for sy := 0; sy <= 1+subgrid; sy++ {
			x := float64(sx) * step
			y := float64(sy) * step
			xp := 1.0
			for px := 0; px < 4; px++ {
				yp := 1.0
				for py := 0; py < 4; py++ {
					xy.Set(row, 4*px+py, xp*yp)
					yp *= y
				}
				xp *= x
			}
			row++
		}
	}

	w := mat.NewDense(16, 16, hermiteW)
	var xyw mat.Dense
	xyw.Mul(xy, w)

	for cx := 0; cx < 3; cx++ {
		for cy := 0; cy < 3; cy++ {
			d := denseStencil(stencils[cx][cy])
			t.Weight[cx][cy] = mat.NewDense(n, 16, nil)
			t.Weight[cx][cy].Mul(&xyw, d)
		}
	}
	return t
}

// denseStencil expands a sparse (column, value, ..., -1) row list into a
// dense 16x16 matrix.
func denseStencil(s []float64) *mat.Dense {
	d := mat.NewDense(16, 16, nil)
	i := 0
	for r := 0; r < 16; r++ {
		for s[i] != -1 {
			d.Set(r, int(s[i]), s[i+1])
			i += 2
		}
		i++
	}
	return d
}

// Class returns the boundary class of cell index i on an axis with n
// cells: 0 at the low edge, 2 at the high edge, 1 in the interior.
func Class(i, n int) int {
	switch {
	case i == 0:
		return 0
	case i == n-1:
		return 2
	}
	return 1
}
