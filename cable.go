package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/model"
)

// makeCable builds a serial chain of bodies along a sampled curve or an
// explicit vertex list. Each body covers one segment, oriented by a
// parallel-transported frame so the chain carries no spurious twist.
func (b *builder) makeCable(parent *model.Body) error {
	c := b.c

	if b.dim != 1 {
		return buildErrf(ErrInvalidDimension, "cable must be one-dimensional, got %dD", b.dim)
	}

	gt := c.Def[KindJoint].Geom.Type
	if gt != model.GeomCylinder && gt != model.GeomCapsule && gt != model.GeomBox {
		return buildErrf(ErrInvalidGeomType,
			"cable geom type must be cylinder, capsule or box, got %v", gt)
	}

	// Record the composite under a stable lookup key so downstream
	// consumers can recover the chain from its prefix.
	b.m.AddText(model.Text{
		Name: "composite_" + c.Prefix,
		Data: "rope_" + c.Prefix,
	})

	if !c.explicitVert {
		for ix := 0; ix < c.Count[0]; ix++ {
			for k := 0; k < 3; k++ {
				b.vert = append(b.vert, sampleCurve(c.Curve[k], ix, c.Count[0], c.Size))
			}
		}
	}

	// Chain the segment bodies, transporting the frame along the curve.
	var frame Frame
	prevQuat := model.QuatIdentity()
	body := parent
	for ix := 0; ix < c.Count[0]-1; ix++ {
		edge := r3.Sub(b.vertAt(ix+1), b.vertAt(ix))
		var length float64
		if ix == 0 {
			frame, length = NewFrame(edge, r3.Vec{Y: 1})
		} else {
			frame, length = frame.Transport(edge)
		}
		body = b.addCableBody(body, ix, frame.Quat, prevQuat, length)
		prevQuat = frame.Quat
	}

	// Box segments form a closed surface, skinned as a narrow grid slab.
	if gt == model.GeomBox && c.Skin.Enable {
		inflate := 2 * c.Def[KindJoint].Geom.Size.Z
		if c.Skin.Subgrid > 0 {
			c.Count[1] += 2
			b.makeSkin2Subgrid(inflate)
			c.Count[1] -= 2
		} else {
			c.Count[1]++
			b.makeSkin2(inflate)
			c.Count[1]--
		}
	}
	return nil
}

// addCableBody creates the body of segment ix under parent and returns
// it. thisQuat is the world orientation of the segment frame, prevQuat
// the orientation of the previous segment.
func (b *builder) addCableBody(parent *model.Body, ix int, thisQuat, prevQuat quat.Number, length float64) *model.Body {
	c := b.c

	lastidx := c.Count[0] - 2
	first := ix == 0
	last := ix == lastidx
	secondlast := ix == lastidx-1

	var thisBody, nextBody, thisJoint, siteName string
	switch {
	case first:
		thisBody = c.Prefix + "B_first"
		nextBody = fmt.Sprintf("%sB_%d", c.Prefix, ix+1)
		thisJoint = c.Prefix + "J_first"
		siteName = c.Prefix + "S_first"
	case last:
		thisBody = c.Prefix + "B_last"
		nextBody = c.Prefix + "B_first"
		thisJoint = c.Prefix + "J_last"
		siteName = c.Prefix + "S_last"
	case secondlast:
		thisBody = fmt.Sprintf("%sB_%d", c.Prefix, ix)
		nextBody = c.Prefix + "B_last"
		thisJoint = fmt.Sprintf("%sJ_%d", c.Prefix, ix)
	default:
		thisBody = fmt.Sprintf("%sB_%d", c.Prefix, ix)
		nextBody = fmt.Sprintf("%sB_%d", c.Prefix, ix+1)
		thisJoint = fmt.Sprintf("%sJ_%d", c.Prefix, ix)
	}

	nb := model.Body{Name: thisBody}
	if first {
		nb.Pos = r3.Add(vecFromArr(c.Offset), b.vertAt(ix))
		nb.Quat = thisQuat
	} else {
		// Child frames are relative: position along the parent x axis,
		// orientation as the frame increment.
		nb.Pos = r3.Vec{X: length}
		nb.Quat = canonicalQuat(quat.Mul(quat.Conj(prevQuat), thisQuat))
	}
	body := b.m.AddBody(parent, nb)

	g := c.Def[KindJoint].Geom
	g.Name = fmt.Sprintf("%sG%d", c.Prefix, ix)
	switch g.Type {
	case model.GeomCylinder, model.GeomCapsule:
		g.HasFromTo = true
		g.FromTo[0] = r3.Vec{}
		g.FromTo[1] = r3.Vec{X: length}
	case model.GeomBox:
		g.Pos = r3.Vec{X: length / 2}
		g.Size.X = length / 2
	}
	b.m.AddGeom(body, g)

	if c.PluginInstance != nil {
		body.Plugin = model.PluginRef{
			Active:       true,
			Name:         c.PluginName,
			InstanceName: c.PluginInstanceName,
			Instance:     c.PluginInstance,
		}
	}

	// Curvature joint. The first body gets one only if an end condition
	// is requested; a free joint carries no passive resistance.
	if !first || c.Initial != EndNone {
		j := c.DefJoint[KindJoint][0]
		j.Name = thisJoint
		if first && c.Initial == EndFree {
			j.Type = model.JointFree
			j.Damping = 0
			j.Armature = 0
			j.FrictionLoss = 0
		} else {
			j.Type = model.JointBall
		}
		b.m.AddJoint(body, j)
	}

	// Adjacent segments always touch; exclude their contact.
	if !last {
		b.m.AddExclude(model.Exclude{Body1: thisBody, Body2: nextBody})
	}

	if first || last {
		s := c.Def[KindJoint].Site
		s.Name = siteName
		s.Quat = model.QuatIdentity()
		if last {
			s.Pos = r3.Vec{X: length}
		} else {
			s.Pos = r3.Vec{}
		}
		b.m.AddSite(body, s)
	}
	return body
}
