package lattice

import (
	"go.uber.org/zap"

	"github.com/lattice-sim/lattice/internal/d3"
	"github.com/lattice-sim/lattice/model"
)

// maxLatticeCells caps the lattice volume so a malformed document cannot
// request an unbounded expansion.
const maxLatticeCells = 1 << 20

// builder holds the per-expansion working state: the resolved
// dimensionality plus the vertex, face and name tables shared by the
// shape and skin passes.
type builder struct {
	c   *CompositeSpec
	m   *model.Model
	dim int

	vert []float64 // flat xyz triples
	face []int     // flat zero-based triangle (or tet) indices
	name []string  // per-vertex body names, empty when generated late
}

// Make expands the composite under parent. Validation failures return a
// *BuildError and leave any partially generated entities in the model;
// they are internally consistent but the caller must discard the
// enclosing document.
func (c *CompositeSpec) Make(m *model.Model, parent *model.Body) error {
	gt := c.Def[KindJoint].Geom.Type
	if gt != model.GeomSphere && gt != model.GeomCapsule && gt != model.GeomEllipsoid &&
		c.Type != ShapeParticle && c.Type != ShapeCable {
		return buildErrf(ErrInvalidGeomType,
			"composite geom type must be sphere, capsule or ellipsoid, got %v", gt)
	}

	if len(c.Pin)%2 != 0 {
		return buildErrf(ErrOddPinCount,
			"pin coordinate count must be a multiple of 2, got %d", len(c.Pin))
	}

	cells := 1
	for i := 0; i < 3; i++ {
		if c.Count[i] < 1 {
			return buildErrf(ErrNonPositiveCount,
				"positive counts expected in composite, got %v", c.Count)
		}
		cells *= c.Count[i]
	}
	if cells > maxLatticeCells {
		return buildErrf(ErrLatticeTooLarge,
			"lattice of %d cells exceeds the limit of %d", cells, maxLatticeCells)
	}

	if c.Type == ShapeGrid || (c.Type == ShapeParticle && len(c.UserVert) == 0) {
		if c.Spacing < d3.Max(c.Def[KindJoint].Geom.Size) {
			return buildErrf(ErrSpacingTooSmall,
				"spacing %g must be larger than geometry size", c.Spacing)
		}
	}

	if dot3(c.Size, c.Size) < minVal && len(c.UserVert) == 0 {
		return buildErrf(ErrZeroExtent, "positive spacing or length expected in composite")
	}

	if c.Spacing != 0 && c.Type == ShapeCable {
		return buildErrf(ErrSpacingNotSupported, "spacing is not supported by cable composite")
	}

	if len(c.UserVert) != 0 {
		if c.Count[0] > 1 {
			return buildErrf(ErrConflictingVertexSpec,
				"either vertex or count can be specified, not both")
		}
		c.Count[0] = len(c.UserVert) / 3
		c.Count[1] = 1
		c.explicitVert = true
	}

	dim, ok := ComputeDimensionality(c.Count)
	if !ok {
		return buildErrf(ErrBadAxisOrder, "singleton counts must come last, got %v", c.Count)
	}

	if c.Skin.Enable && c.Skin.Subgrid > 0 && c.Type != ShapeCable {
		if c.Count[0] < 3 || c.Count[1] < 3 {
			return buildErrf(ErrSubgridTooSmall, "at least 3x3 required for skin subgrid")
		}
	}

	b := &builder{c: c, m: m, dim: dim, vert: c.UserVert}

	switch c.Type {
	case ShapeParticle:
		return b.makeParticle(parent)
	case ShapeGrid:
		return b.makeGrid(parent)
	case ShapeRope:
		return buildErrf(ErrDeprecatedShape,
			`the "rope" composite type is deprecated, use "cable" instead`)
	case ShapeLoop:
		c.Log.Warn(`the "loop" composite type is deprecated, use "cable" instead`,
			zap.String("prefix", c.Prefix))
		return b.makeRope(parent)
	case ShapeCable:
		return b.makeCable(parent)
	case ShapeCloth:
		return buildErrf(ErrDeprecatedShape,
			`the "cloth" composite type is deprecated, use "shell" instead`)
	case ShapeBox, ShapeCylinder, ShapeEllipsoid:
		return b.makeShell(parent)
	}
	panic("lattice: invalid composite shape")
}

func dot3(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// pinned reports whether lattice coordinate (ix, iy) appears in the pin
// list.
func (c *CompositeSpec) pinned(ix, iy int) bool {
	for i := 0; i+1 < len(c.Pin); i += 2 {
		if c.Pin[i] == ix && c.Pin[i+1] == iy {
			return true
		}
	}
	return false
}
