package lattice

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/model"
)

// makeRope builds the legacy hinge-chain rope. The chain grows from an
// origin element in both directions so the root body sits mid-chain; a
// loop closes the two ends with a connect constraint.
func (b *builder) makeRope(parent *model.Body) error {
	c := b.c

	if b.dim != 1 {
		return buildErrf(ErrInvalidDimension, "rope must be one-dimensional, got %dD", b.dim)
	}

	ox, err := c.originIndex(parent)
	if err != nil {
		return err
	}

	b.addRopeBody(parent, ox, ox)

	pbody := parent
	for ix := ox; ix < c.Count[0]-1; ix++ {
		pbody = b.addRopeBody(pbody, ix, ix+1)
	}
	pbody = parent
	for ix := ox; ix > 0; ix-- {
		pbody = b.addRopeBody(pbody, ix, ix-1)
	}

	if c.Type == ShapeLoop {
		first := c.Prefix + "B0"
		last := fmt.Sprintf("%sB%d", c.Prefix, c.Count[0]-1)

		eq := model.DefaultEquality()
		eq.Type = model.EqConnect
		eq.Name1 = first
		eq.Name2 = last
		eq.Anchor = r3.Vec{X: -0.5 * c.Spacing}
		eq.SolRef = c.SolRefSmooth
		eq.SolImp = c.SolImpSmooth
		b.m.AddEquality(eq)

		b.m.AddExclude(model.Exclude{Body1: first, Body2: last})
	}
	return nil
}

// originIndex resolves the lattice coordinate of the root element,
// preferring the explicit origin over parsing the root body name.
func (c *CompositeSpec) originIndex(parent *model.Body) (int, error) {
	ox := c.Origin
	if !c.HasOrigin {
		want := c.Prefix + "B"
		if !strings.HasPrefix(parent.Name, want) {
			return 0, buildErrf(ErrInvalidRootName,
				"%s must be the beginning of root body name, got %q", want, parent.Name)
		}
		if _, err := fmt.Sscanf(parent.Name[len(want):], "%d", &ox); err != nil {
			return 0, buildErrf(ErrInvalidRootName,
				"root body name %q must contain a lattice coordinate", parent.Name)
		}
	}
	if ox < 0 || ox >= c.Count[0] {
		return 0, buildErrf(ErrIndexOutOfRange,
			"root coordinate %d out of range [0, %d)", ox, c.Count[0])
	}
	return ox, nil
}

// addRopeBody creates element ix1 as a child of element ix and returns
// its body. When ix equals ix1 the parent is the root: it only receives
// a geom, never joints.
func (b *builder) addRopeBody(parent *model.Body, ix, ix1 int) *model.Body {
	c := b.c
	isroot := ix == ix1
	dx := c.Spacing * float64(ix1-ix)

	body := parent
	if !isroot {
		nb := model.Body{
			Name: fmt.Sprintf("%sB%d", c.Prefix, ix1),
			Quat: model.QuatIdentity(),
		}
		if c.Type == ShapeLoop {
			// Place elements on the circumscribed ring so the loop closes
			// without initial strain.
			alpha := 2 * math.Pi / float64(c.Count[0])
			r := 0.5 * c.Spacing * math.Sin(math.Pi-alpha) / math.Sin(0.5*alpha)
			half := 0.5 * alpha
			if ix1 > ix {
				nb.Pos = r3.Vec{X: r * math.Cos(half), Y: r * math.Sin(half)}
				nb.Quat = quat.Number{Real: math.Cos(half), Kmag: math.Sin(half)}
			} else {
				nb.Pos = r3.Vec{X: -r * math.Cos(half), Y: r * math.Sin(half)}
				nb.Quat = quat.Number{Real: math.Cos(half), Kmag: -math.Sin(half)}
			}
		} else {
			nb.Pos = r3.Vec{X: dx}
		}
		body = b.m.AddBody(parent, nb)
	}

	g := c.Def[KindJoint].Geom
	g.Name = fmt.Sprintf("%sG%d", c.Prefix, ix1)
	g.Pos = r3.Vec{}
	// Long axis along the chain: 90 degree turn about y.
	g.Quat = quat.Number{Real: math.Sqrt(0.5), Jmag: math.Sqrt(0.5)}
	b.m.AddGeom(body, g)

	if isroot {
		return body
	}

	// Bending hinges about the two transverse axes.
	for i := 0; i < 2; i++ {
		j := c.DefJoint[KindJoint][0]
		j.Name = fmt.Sprintf("%sJ%d_%d", c.Prefix, i, ix1)
		j.Type = model.JointHinge
		j.Pos = r3.Vec{X: -0.5 * dx}
		j.Axis = axisVec(i + 1)
		b.m.AddJoint(body, j)
	}

	if c.Add[KindTwist] {
		j := c.DefJoint[KindTwist][0]
		j.Name = fmt.Sprintf("%sJT%d", c.Prefix, ix1)
		j.Type = model.JointHinge
		j.Pos = r3.Vec{X: -0.5 * dx}
		j.Axis = r3.Vec{X: 1}
		b.m.AddJoint(body, j)

		eq := c.Def[KindTwist].Equality
		eq.Type = model.EqJoint
		eq.Name1 = j.Name
		b.m.AddEquality(eq)
	}

	if c.Add[KindStretch] {
		j := c.DefJoint[KindStretch][0]
		j.Name = fmt.Sprintf("%sJS%d", c.Prefix, ix1)
		j.Type = model.JointSlide
		j.Pos = r3.Vec{X: -0.5 * dx}
		j.Axis = r3.Vec{X: 1}
		b.m.AddJoint(body, j)

		eq := c.Def[KindStretch].Equality
		eq.Type = model.EqJoint
		eq.Name1 = j.Name
		b.m.AddEquality(eq)
	}
	return body
}
