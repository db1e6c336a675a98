package lattice

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/internal/d3"
)

// boxProject maps a point of the canonical [-1, 1] cube onto the shell
// surface: scaled directly for boxes, radially in xy for cylinders, and
// radially in xyz for ellipsoids. The half-extent per axis is
// spacing*(count-1)/2.
func (c *CompositeSpec) boxProject(pos r3.Vec) r3.Vec {
	size := r3.Vec{
		X: 0.5 * c.Spacing * float64(c.Count[0]-1),
		Y: 0.5 * c.Spacing * float64(c.Count[1]-1),
		Z: 0.5 * c.Spacing * float64(c.Count[2]-1),
	}

	switch c.Type {
	case ShapeBox:
		return d3.MulElem(pos, size)

	case ShapeCylinder:
		l0 := math.Max(math.Abs(pos.X), math.Abs(pos.Y))
		n := math.Hypot(pos.X, pos.Y)
		if n > minVal {
			pos.X /= n
			pos.Y /= n
		}
		return r3.Vec{X: pos.X * size.X * l0, Y: pos.Y * size.Y * l0, Z: pos.Z * size.Z}

	case ShapeEllipsoid:
		return d3.MulElem(r3.Unit(pos), size)
	}
	return pos
}
