package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/model"
)

// makeShell builds a deformable closed surface: one body per boundary
// lattice vertex, projected from the canonical cube onto the requested
// shape, each sliding radially against a central reference geom. A
// single fixed tendon over all slide joints conserves the total radial
// displacement.
func (b *builder) makeShell(parent *model.Body) error {
	c := b.c

	if b.dim != 3 {
		return buildErrf(ErrInvalidDimension,
			"box, cylinder and ellipsoid must be three-dimensional, got %dD", b.dim)
	}

	// Central geom, twice the element size.
	center := c.Def[KindJoint].Geom
	center.Type = model.GeomSphere
	center.Name = c.Prefix + "Gcenter"
	center.Pos = r3.Vec{}
	center.Size = r3.Vec{X: 2 * center.Size.X}
	b.m.AddGeom(parent, center)

	ten := c.Def[KindTendon].Tendon
	ten.Name = c.Prefix + "T"
	mainTendon := b.m.AddTendon(ten)

	onBoundary := func(ix, iy, iz int) bool {
		return ix == 0 || ix == c.Count[0]-1 ||
			iy == 0 || iy == c.Count[1]-1 ||
			iz == 0 || iz == c.Count[2]-1
	}

	for ix := 0; ix < c.Count[0]; ix++ {
		for iy := 0; iy < c.Count[1]; iy++ {
			for iz := 0; iz < c.Count[2]; iz++ {
				if !onBoundary(ix, iy, iz) {
					continue
				}

				pos := c.boxProject(r3.Vec{
					X: 2*float64(ix)/float64(c.Count[0]-1) - 1,
					Y: 2*float64(iy)/float64(c.Count[1]-1) - 1,
					Z: 2*float64(iz)/float64(c.Count[2]-1) - 1,
				})
				body := b.m.AddBody(parent, model.Body{
					Name: fmt.Sprintf("%sB%d_%d_%d", c.Prefix, ix, iy, iz),
					Pos:  pos,
					// Local z points outward, along the radial direction.
					Quat: zToQuat(pos),
				})

				g := c.Def[KindJoint].Geom
				g.Name = fmt.Sprintf("%sG%d_%d_%d", c.Prefix, ix, iy, iz)
				// Offset inward so the collision surface sits on the shell.
				if g.Type == model.GeomCapsule {
					g.Pos = r3.Vec{Z: -(g.Size.X + g.Size.Y)}
				} else {
					g.Type = model.GeomSphere
					g.Pos = r3.Vec{Z: -g.Size.X}
				}
				b.m.AddGeom(body, g)

				j := c.DefJoint[KindJoint][0]
				j.Name = fmt.Sprintf("%sJ%d_%d_%d", c.Prefix, ix, iy, iz)
				j.Type = model.JointSlide
				j.Pos = r3.Vec{}
				j.Axis = r3.Vec{Z: 1}
				b.m.AddJoint(body, j)

				eq := c.Def[KindJoint].Equality
				eq.Type = model.EqJoint
				eq.Name1 = j.Name
				b.m.AddEquality(eq)

				mainTendon.WrapJoint(j.Name, 1)

				// Smoothing constraints against the +x/+y/+z neighbors.
				for i := 0; i < 3; i++ {
					ix1 := min(ix+b2i(i == 0), c.Count[0]-1)
					iy1 := min(iy+b2i(i == 1), c.Count[1]-1)
					iz1 := min(iz+b2i(i == 2), c.Count[2]-1)
					if !onBoundary(ix1, iy1, iz1) ||
						(ix1 == ix && iy1 == iy && iz1 == iz) {
						continue
					}
					eqn := model.DefaultEquality()
					eqn.Type = model.EqJoint
					eqn.Name1 = j.Name
					eqn.Name2 = fmt.Sprintf("%sJ%d_%d_%d", c.Prefix, ix1, iy1, iz1)
					eqn.SolRef = c.SolRefSmooth
					eqn.SolImp = c.SolImpSmooth
					b.m.AddEquality(eqn)
				}
			}
		}
	}

	eqt := c.Def[KindTendon].Equality
	eqt.Type = model.EqTendon
	eqt.Name1 = mainTendon.Name
	b.m.AddEquality(eqt)

	if c.Skin.Enable {
		b.makeSkin3()
	}
	return nil
}
