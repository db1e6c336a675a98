package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/model"
)

// makeGrid builds a 1-D or 2-D grid of bodies connected by length-locked
// tendons between lattice neighbors. Pinned lattice sites get no joints
// and stay welded to the parent.
func (b *builder) makeGrid(parent *model.Body) error {
	c := b.c

	if b.dim > 2 {
		return buildErrf(ErrInvalidDimension, "grid can only be 1D or 2D, got %dD", b.dim)
	}
	if c.Add[KindShear] && b.dim != 2 {
		return buildErrf(ErrInvalidDimension, "shear requires 2D grid")
	}
	if c.Skin.Enable && b.dim != 2 {
		return buildErrf(ErrInvalidDimension, "skin requires 2D grid")
	}

	for ix := 0; ix < c.Count[0]; ix++ {
		for iy := 0; iy < c.Count[1]; iy++ {
			body := b.m.AddBody(parent, model.Body{
				Name: fmt.Sprintf("%sB%d_%d", c.Prefix, ix, iy),
				Pos: r3.Vec{
					X: c.Offset[0] + c.Spacing*(float64(ix)-0.5*float64(c.Count[0])),
					Y: c.Offset[1] + c.Spacing*(float64(iy)-0.5*float64(c.Count[1])),
					Z: c.Offset[2],
				},
				Quat: model.QuatIdentity(),
			})

			g := c.Def[KindJoint].Geom
			g.Type = model.GeomSphere
			g.Name = fmt.Sprintf("%sG%d_%d", c.Prefix, ix, iy)
			b.m.AddGeom(body, g)

			s := c.Def[KindJoint].Site
			s.Type = model.GeomSphere
			s.Name = fmt.Sprintf("%sS%d_%d", c.Prefix, ix, iy)
			b.m.AddSite(body, s)

			if c.pinned(ix, iy) {
				continue
			}

			for ax := 0; ax < 3; ax++ {
				j := c.DefJoint[KindJoint][0]
				j.Name = fmt.Sprintf("%sJ%d_%d_%d", c.Prefix, ax, ix, iy)
				j.Type = model.JointSlide
				j.Pos = r3.Vec{}
				j.Axis = axisVec(ax)
				b.m.AddJoint(body, j)
			}
		}
	}

	// One length-locked tendon per lattice edge, along each axis.
	for i := 0; i < 2; i++ {
		for ix := 0; ix < c.Count[0]-b2i(i == 0); ix++ {
			for iy := 0; iy < c.Count[1]-b2i(i == 1); iy++ {
				ten := c.Def[KindTendon].Tendon
				ten.Name = fmt.Sprintf("%sT%d_%d_%d", c.Prefix, i, ix, iy)
				ten.WrapSite(fmt.Sprintf("%sS%d_%d", c.Prefix, ix, iy))
				ten.WrapSite(fmt.Sprintf("%sS%d_%d", c.Prefix, ix+b2i(i == 0), iy+b2i(i == 1)))
				b.m.AddTendon(ten)

				eq := c.Def[KindTendon].Equality
				eq.Type = model.EqTendon
				eq.Name1 = ten.Name
				b.m.AddEquality(eq)
			}
		}
	}

	if c.Add[KindShear] {
		b.makeShear()
	}

	if c.Skin.Enable {
		if c.Skin.Subgrid > 0 {
			b.makeSkin2Subgrid(c.Skin.Inflate)
		} else {
			b.makeSkin2(c.Skin.Inflate)
		}
	}
	return nil
}

// makeShear adds diagonal tendons across every grid cell to resist
// in-plane shearing.
func (b *builder) makeShear() {
	c := b.c
	for ix := 0; ix < c.Count[0]-1; ix++ {
		for iy := 0; iy < c.Count[1]-1; iy++ {
			ten := c.Def[KindShear].Tendon
			ten.Name = fmt.Sprintf("%sTS%d_%d", c.Prefix, ix, iy)
			ten.WrapSite(fmt.Sprintf("%sS%d_%d", c.Prefix, ix, iy))
			ten.WrapSite(fmt.Sprintf("%sS%d_%d", c.Prefix, ix+1, iy+1))
			b.m.AddTendon(ten)

			eq := c.Def[KindShear].Equality
			eq.Type = model.EqTendon
			eq.Name1 = ten.Name
			b.m.AddEquality(eq)
		}
	}
}

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}
