package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/model"
)

// makeSkin3 attaches a closed skin to a 3-D composite. Box-like shapes
// get six independent flat faces with duplicated edge vertices; curved
// shapes share boundary vertices through a name map so the surface stays
// smooth across face seams. Cylinders mix both: smooth sides, flat caps.
func (b *builder) makeSkin3() {
	c := b.c

	skin := b.m.AddSkin(model.Skin{
		Name:     c.Prefix + "Skin",
		Material: c.Skin.Material,
		RGBA:     c.Skin.RGBA,
		Inflate:  c.Skin.Inflate,
		Group:    c.Skin.Group,
	})

	last := [3]int{c.Count[0] - 1, c.Count[1] - 1, c.Count[2] - 1}
	name := func(ix, iy, iz int) string {
		return fmt.Sprintf("%sB%d_%d_%d", c.Prefix, ix, iy, iz)
	}

	switch c.Type {
	case ShapeBox, ShapeParticle:
		vcnt := 0
		// z-faces
		b.skin3FlatFace(skin, c.Count[0], c.Count[1], 1, &vcnt,
			func(i0, i1 int) string { return name(i0, i1, 0) })
		b.skin3FlatFace(skin, c.Count[0], c.Count[1], 0, &vcnt,
			func(i0, i1 int) string { return name(i0, i1, last[2]) })
		// y-faces
		b.skin3FlatFace(skin, c.Count[0], c.Count[2], 0, &vcnt,
			func(i0, i1 int) string { return name(i0, 0, i1) })
		b.skin3FlatFace(skin, c.Count[0], c.Count[2], 1, &vcnt,
			func(i0, i1 int) string { return name(i0, last[1], i1) })
		// x-faces
		b.skin3FlatFace(skin, c.Count[1], c.Count[2], 1, &vcnt,
			func(i0, i1 int) string { return name(0, i0, i1) })
		b.skin3FlatFace(skin, c.Count[1], c.Count[2], 0, &vcnt,
			func(i0, i1 int) string { return name(last[0], i0, i1) })

	case ShapeCylinder:
		vmap := b.skin3SharedVerts(skin, func(ix, iy, iz int) bool {
			return ix == 0 || ix == last[0] || iy == 0 || iy == last[1]
		})
		// y-faces
		b.skin3SmoothFace(skin, c.Count[0], c.Count[2], 0, vmap,
			func(i0, i1 int) string { return name(i0, 0, i1) })
		b.skin3SmoothFace(skin, c.Count[0], c.Count[2], 1, vmap,
			func(i0, i1 int) string { return name(i0, last[1], i1) })
		// x-faces
		b.skin3SmoothFace(skin, c.Count[1], c.Count[2], 1, vmap,
			func(i0, i1 int) string { return name(0, i0, i1) })
		b.skin3SmoothFace(skin, c.Count[1], c.Count[2], 0, vmap,
			func(i0, i1 int) string { return name(last[0], i0, i1) })
		// flat caps
		vcnt := len(skin.Verts)
		b.skin3FlatFace(skin, c.Count[0], c.Count[1], 1, &vcnt,
			func(i0, i1 int) string { return name(i0, i1, 0) })
		b.skin3FlatFace(skin, c.Count[0], c.Count[1], 0, &vcnt,
			func(i0, i1 int) string { return name(i0, i1, last[2]) })

	default:
		vmap := b.skin3SharedVerts(skin, func(ix, iy, iz int) bool {
			return ix == 0 || ix == last[0] ||
				iy == 0 || iy == last[1] ||
				iz == 0 || iz == last[2]
		})
		// z-faces
		b.skin3SmoothFace(skin, c.Count[0], c.Count[1], 1, vmap,
			func(i0, i1 int) string { return name(i0, i1, 0) })
		b.skin3SmoothFace(skin, c.Count[0], c.Count[1], 0, vmap,
			func(i0, i1 int) string { return name(i0, i1, last[2]) })
		// y-faces
		b.skin3SmoothFace(skin, c.Count[0], c.Count[2], 0, vmap,
			func(i0, i1 int) string { return name(i0, 0, i1) })
		b.skin3SmoothFace(skin, c.Count[0], c.Count[2], 1, vmap,
			func(i0, i1 int) string { return name(i0, last[1], i1) })
		// x-faces
		b.skin3SmoothFace(skin, c.Count[1], c.Count[2], 1, vmap,
			func(i0, i1 int) string { return name(0, i0, i1) })
		b.skin3SmoothFace(skin, c.Count[1], c.Count[2], 0, vmap,
			func(i0, i1 int) string { return name(last[0], i0, i1) })
	}
}

// skin3SharedVerts creates one shared vertex per boundary body selected
// by onSurface and returns the body-name to vertex-id map.
func (b *builder) skin3SharedVerts(skin *model.Skin, onSurface func(ix, iy, iz int) bool) map[string]int {
	c := b.c
	vmap := make(map[string]int)
	last := [3]int{c.Count[0] - 1, c.Count[1] - 1, c.Count[2] - 1}

	for ix := 0; ix < c.Count[0]; ix++ {
		for iy := 0; iy < c.Count[1]; iy++ {
			for iz := 0; iz < c.Count[2]; iz++ {
				if !onSurface(ix, iy, iz) {
					continue
				}
				key := fmt.Sprintf("%sB%d_%d_%d", c.Prefix, ix, iy, iz)
				if c.Skin.TexCoord {
					var u, v float32
					switch {
					case ix == 0 || ix == last[0]:
						u = float32(iy) / float32(last[1])
						v = float32(iz) / float32(last[2])
					case iy == 0 || iy == last[1]:
						u = float32(ix) / float32(last[0])
						v = float32(iz) / float32(last[2])
					default:
						u = float32(ix) / float32(last[0])
						v = float32(iy) / float32(last[1])
					}
					skin.TexCoords = append(skin.TexCoords, [2]float32{u, v})
				}
				vmap[key] = len(skin.Verts)
				skin.Verts = append(skin.Verts, r3.Vec{})
			}
		}
	}
	return vmap
}

// skin3FlatFace meshes one face with its own c0 x c1 vertex sheet and
// binds each vertex to its body with weight one. side flips the winding
// so normals point outward on opposite faces.
func (b *builder) skin3FlatFace(skin *model.Skin, c0, c1, side int, vcnt *int, name func(i0, i1 int) string) {
	for i0 := 0; i0 < c0; i0++ {
		for i1 := 0; i1 < c1; i1++ {
			skin.Verts = append(skin.Verts, r3.Vec{})
			if b.c.Skin.TexCoord {
				skin.TexCoords = append(skin.TexCoords, [2]float32{
					float32(i0) / float32(c0-1),
					float32(i1) / float32(c1-1),
				})
			}
			if i0 < c0-1 && i1 < c1-1 {
				skin.Faces = append(skin.Faces,
					[3]int{
						*vcnt + i0*c1 + i1,
						*vcnt + (i0+1)*c1 + i1 + b2i(side == 1),
						*vcnt + (i0+1)*c1 + i1 + b2i(side == 0),
					},
					[3]int{
						*vcnt + i0*c1 + i1,
						*vcnt + (i0+b2i(side == 0))*c1 + i1 + 1,
						*vcnt + (i0+b2i(side == 1))*c1 + i1 + 1,
					})
			}
			skin.Bones = append(skin.Bones, &model.Bone{
				BodyName:   name(i0, i1),
				BindQuat:   model.QuatIdentity(),
				VertID:     []int{*vcnt + i0*c1 + i1},
				VertWeight: []float32{1},
			})
		}
	}
	*vcnt += c0 * c1
}

// skin3SmoothFace meshes one face over the shared vertex map.
func (b *builder) skin3SmoothFace(skin *model.Skin, c0, c1, side int, vmap map[string]int, name func(i0, i1 int) string) {
	for i0 := 0; i0 < c0; i0++ {
		for i1 := 0; i1 < c1; i1++ {
			v00 := vmap[name(i0, i1)]
			if i0 < c0-1 && i1 < c1-1 {
				v01 := vmap[name(i0, i1+1)]
				v10 := vmap[name(i0+1, i1)]
				v11 := vmap[name(i0+1, i1+1)]
				if side == 0 {
					skin.Faces = append(skin.Faces,
						[3]int{v00, v10, v11},
						[3]int{v00, v11, v01})
				} else {
					skin.Faces = append(skin.Faces,
						[3]int{v00, v01, v11},
						[3]int{v00, v11, v10})
				}
			}
			skin.Bones = append(skin.Bones, &model.Bone{
				BodyName:   name(i0, i1),
				BindQuat:   model.QuatIdentity(),
				VertID:     []int{v00},
				VertWeight: []float32{1},
			})
		}
	}
}
