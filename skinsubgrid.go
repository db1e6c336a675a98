package lattice

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/bicubic"
	"github.com/lattice-sim/lattice/model"
)

// makeSkin2Subgrid attaches a refined two-layer skin to a 2-D composite:
// every lattice cell is subdivided and the refined vertices follow the
// surrounding 4x4 control bodies with bicubic Hermite weights, giving a
// smooth surface over a coarse lattice.
func (b *builder) makeSkin2Subgrid(inflate float64) {
	c := b.c

	weights := bicubic.Weights(c.Skin.Subgrid)

	skin := b.m.AddSkin(model.Skin{
		Name:     c.Prefix + "Skin",
		Material: c.Skin.Material,
		RGBA:     c.Skin.RGBA,
		Inflate:  inflate,
		Group:    c.Skin.Group,
	})

	// Refined grid counts and spacing.
	sub := c.Skin.Subgrid
	s := c.Spacing / float64(1+sub)
	c0 := c.Count[0] + (c.Count[0]-1)*sub
	c1 := c.Count[1] + (c.Count[1]-1)*sub
	nn := c0 * c1

	// Two sides with opposite winding. Unlike the weight-one skin, the
	// rest positions are laid out explicitly: the bind poses carry the
	// lattice offsets.
	for i := 0; i < 2; i++ {
		for ix := 0; ix < c0; ix++ {
			for iy := 0; iy < c1; iy++ {
				skin.Verts = append(skin.Verts,
					r3.Vec{X: float64(ix) * s, Y: float64(iy) * s})
				if c.Skin.TexCoord {
					skin.TexCoords = append(skin.TexCoords, [2]float32{
						float32(ix) / float32(c0-1),
						float32(iy) / float32(c1-1),
					})
				}
				if ix < c0-1 && iy < c1-1 {
					skin.Faces = append(skin.Faces,
						[3]int{
							i*nn + ix*c1 + iy,
							i*nn + (ix+1)*c1 + iy + b2i(i == 1),
							i*nn + (ix+1)*c1 + iy + b2i(i == 0),
						},
						[3]int{
							i*nn + ix*c1 + iy,
							i*nn + (ix+b2i(i == 0))*c1 + iy + 1,
							i*nn + (ix+b2i(i == 1))*c1 + iy + 1,
						})
				}
			}
		}
	}

	b.stitchLayers(skin, c0, c1, nn)

	switch c.Type {
	case ShapeParticle, ShapeGrid:
		b.makeClothBonesSubgrid(skin)
	case ShapeCable:
		b.makeCableBonesSubgrid(skin)
	}

	// Bind refined vertices to control bodies, one lattice cell at a
	// time. The cell at the high edge additionally owns the last refined
	// row and column.
	for ix := 0; ix < c.Count[0]-1; ix++ {
		for iy := 0; iy < c.Count[1]-1; iy++ {
			w := weights.Weight[bicubic.Class(ix, c.Count[0]-1)][bicubic.Class(iy, c.Count[1]-1)]

			// Bone indices of the surrounding 4x4 patch. Entries outside
			// the lattice are never referenced: their weights vanish by
			// construction of the boundary stencils.
			var boneid [16]int
			cnt := 0
			for dx := -1; dx < 3; dx++ {
				for dy := -1; dy < 3; dy++ {
					boneid[cnt] = (ix+dx)*c.Count[1] + (iy + dy)
					cnt++
				}
			}

			for dx := 0; dx < 1+sub+b2i(ix == c.Count[0]-2); dx++ {
				for dy := 0; dy < 1+sub+b2i(iy == c.Count[1]-2); dy++ {
					vid := (ix*(1+sub)+dx)*c1 + iy*(1+sub) + dy
					n := dx*(2+sub) + dy

					for bi := 0; bi < 16; bi++ {
						wv := w.At(n, bi)
						if wv == 0 {
							continue
						}
						bone := skin.Bones[boneid[bi]]
						bone.VertID = append(bone.VertID, vid, vid+nn)
						bone.VertWeight = append(bone.VertWeight, float32(wv), float32(wv))
					}
				}
			}
		}
	}
}

// makeClothBonesSubgrid adds one bone per lattice site at its rest
// offset, with vertex bindings filled in later by the weight pass.
func (b *builder) makeClothBonesSubgrid(skin *model.Skin) {
	c := b.c
	for ix := 0; ix < c.Count[0]; ix++ {
		for iy := 0; iy < c.Count[1]; iy++ {
			skin.Bones = append(skin.Bones, &model.Bone{
				BodyName: c.clothBodyName(ix, iy),
				BindPos: r3.Vec{
					X: float64(ix) * c.Spacing,
					Y: float64(iy) * c.Spacing,
				},
				BindQuat: model.QuatIdentity(),
			})
		}
	}
}

// makeCableBonesSubgrid adds the three-row cable control bones: the
// outer rows straddle the box cross-section, the middle row runs along
// the axis.
func (b *builder) makeCableBonesSubgrid(skin *model.Skin) {
	c := b.c
	size := c.Def[KindJoint].Geom.Size
	for ix := 0; ix < c.Count[0]; ix++ {
		for iy := 0; iy < c.Count[1]; iy++ {
			var bx float64
			if ix == c.Count[0]-1 {
				bx = -2 * size.X
			}
			var by float64
			switch iy {
			case 0:
				by = -size.Y
			case 2:
				by = size.Y
			}
			skin.Bones = append(skin.Bones, &model.Bone{
				BodyName: c.cableBodyName(ix),
				BindPos:  r3.Vec{X: bx, Y: by},
				BindQuat: model.QuatIdentity(),
			})
		}
	}
}
