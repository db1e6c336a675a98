package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/model"
)

// makeSkin2 attaches a two-layer skin to a 2-D composite. Both layers
// share the lattice topology with mirrored winding; four thin triangle
// strips stitch the layers along the boundary so the slab is watertight.
// Vertex positions are left at the origin: each vertex is bound with
// weight one to its body, so posing places it.
func (b *builder) makeSkin2(inflate float64) {
	c := b.c

	skin := b.m.AddSkin(model.Skin{
		Name:     c.Prefix + "Skin",
		Material: c.Skin.Material,
		RGBA:     c.Skin.RGBA,
		Inflate:  inflate,
		Group:    c.Skin.Group,
	})

	// Explicit particle meshes reuse their own triangulation.
	if c.Type == ShapeParticle && len(b.name) == 0 {
		nvert := len(b.vert) / 3
		for j := 0; j < 2; j++ {
			for i := 0; i < nvert; i++ {
				skin.Verts = append(skin.Verts, r3.Vec{})
				skin.Bones = append(skin.Bones, &model.Bone{
					BodyName:   fmt.Sprintf("%sB%d", c.Prefix, i),
					BindQuat:   model.QuatIdentity(),
					VertID:     []int{j*nvert + i},
					VertWeight: []float32{1},
				})
			}
			for i := 0; i+2 < len(b.face); i += 3 {
				f := [3]int{b.face[i], b.face[i+1], b.face[i+2]}
				if j == 1 {
					f[1], f[2] = f[2], f[1]
				}
				skin.Faces = append(skin.Faces,
					[3]int{j*nvert + f[0], j*nvert + f[1], j*nvert + f[2]})
			}
		}
		return
	}

	n := c.Count[0] * c.Count[1]

	// Two sides with opposite winding.
	for i := 0; i < 2; i++ {
		for ix := 0; ix < c.Count[0]; ix++ {
			for iy := 0; iy < c.Count[1]; iy++ {
				skin.Verts = append(skin.Verts, r3.Vec{})
				if c.Skin.TexCoord {
					skin.TexCoords = append(skin.TexCoords, [2]float32{
						float32(ix) / float32(c.Count[0]-1),
						float32(iy) / float32(c.Count[1]-1),
					})
				}
				if ix < c.Count[0]-1 && iy < c.Count[1]-1 {
					skin.Faces = append(skin.Faces,
						[3]int{
							i*n + ix*c.Count[1] + iy,
							i*n + (ix+1)*c.Count[1] + iy + b2i(i == 1),
							i*n + (ix+1)*c.Count[1] + iy + b2i(i == 0),
						},
						[3]int{
							i*n + ix*c.Count[1] + iy,
							i*n + (ix+b2i(i == 0))*c.Count[1] + iy + 1,
							i*n + (ix+b2i(i == 1))*c.Count[1] + iy + 1,
						})
				}
			}
		}
	}

	b.stitchLayers(skin, c.Count[0], c.Count[1], n)

	switch c.Type {
	case ShapeParticle, ShapeGrid:
		b.makeClothBones(skin)
	case ShapeCable:
		b.makeCableBones(skin)
	}
}

// stitchLayers closes the gap between the two skin layers with thin
// boundary triangles. c0 and c1 are the layer grid counts, n the layer
// vertex count.
func (b *builder) stitchLayers(skin *model.Skin, c0, c1, n int) {
	// x direction, iy = 0
	for ix := 0; ix < c0-1; ix++ {
		skin.Faces = append(skin.Faces,
			[3]int{ix * c1, n + (ix+1)*c1, (ix + 1) * c1},
			[3]int{ix * c1, n + ix*c1, n + (ix+1)*c1})
	}
	// x direction, iy = c1-1
	for ix := 0; ix < c0-1; ix++ {
		skin.Faces = append(skin.Faces,
			[3]int{ix*c1 + c1 - 1, (ix+1)*c1 + c1 - 1, n + (ix+1)*c1 + c1 - 1},
			[3]int{ix*c1 + c1 - 1, n + (ix+1)*c1 + c1 - 1, n + ix*c1 + c1 - 1})
	}
	// y direction, ix = 0
	for iy := 0; iy < c1-1; iy++ {
		skin.Faces = append(skin.Faces,
			[3]int{iy, iy + 1, n + iy + 1},
			[3]int{iy, n + iy + 1, n + iy})
	}
	// y direction, ix = c0-1
	for iy := 0; iy < c1-1; iy++ {
		skin.Faces = append(skin.Faces,
			[3]int{iy + (c0-1)*c1, n + iy + 1 + (c0-1)*c1, iy + 1 + (c0-1)*c1},
			[3]int{iy + (c0-1)*c1, n + iy + (c0-1)*c1, n + iy + 1 + (c0-1)*c1})
	}
}

// clothBodyName returns the lattice body owning skin column (ix, iy).
func (c *CompositeSpec) clothBodyName(ix, iy int) string {
	if c.Type == ShapeGrid {
		return fmt.Sprintf("%sB%d_%d", c.Prefix, ix, iy)
	}
	return fmt.Sprintf("%sB%d_%d_0", c.Prefix, ix, iy)
}

// makeClothBones binds both layer vertices of each lattice site to its
// body with weight one.
func (b *builder) makeClothBones(skin *model.Skin) {
	c := b.c
	n := c.Count[0] * c.Count[1]
	for ix := 0; ix < c.Count[0]; ix++ {
		for iy := 0; iy < c.Count[1]; iy++ {
			skin.Bones = append(skin.Bones, &model.Bone{
				BodyName:   c.clothBodyName(ix, iy),
				BindQuat:   model.QuatIdentity(),
				VertID:     []int{ix*c.Count[1] + iy, n + ix*c.Count[1] + iy},
				VertWeight: []float32{1, 1},
			})
		}
	}
}

// cableBodyName returns the segment body owning skin column ix. The two
// boundary segments absorb the end columns.
func (c *CompositeSpec) cableBodyName(ix int) string {
	switch {
	case ix == 0:
		return c.Prefix + "B_first"
	case ix >= c.Count[0]-2:
		return c.Prefix + "B_last"
	}
	return fmt.Sprintf("%sB_%d", c.Prefix, ix)
}

// makeCableBones binds the two-row cable skin to the segment bodies.
// Bind positions straddle the box cross-section; the final column binds
// to the last segment shifted back by its length.
func (b *builder) makeCableBones(skin *model.Skin) {
	c := b.c
	n := c.Count[0] * c.Count[1]
	size := c.Def[KindJoint].Geom.Size
	for ix := 0; ix < c.Count[0]; ix++ {
		for iy := 0; iy < c.Count[1]; iy++ {
			var bx float64
			if ix == c.Count[0]-1 {
				bx = -2 * size.X
			}
			by := -size.Y
			if iy != 0 {
				by = size.Y
			}
			skin.Bones = append(skin.Bones, &model.Bone{
				BodyName:   c.cableBodyName(ix),
				BindPos:    r3.Vec{X: bx, Y: by},
				BindQuat:   model.QuatIdentity(),
				VertID:     []int{ix*c.Count[1] + iy, n + ix*c.Count[1] + iy},
				VertWeight: []float32{1, 1},
			})
		}
	}
}
