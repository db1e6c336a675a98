// Package render exports generated skins as triangle meshes so they can
// be inspected in any mesh viewer.
package render

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/model"
)

// SkinMesh poses a skin at the model's rest configuration: every vertex
// is the weight-blended position of its bone bodies, each contributing
// the vertex expressed in its bind frame carried to the body's world
// frame.
func SkinMesh(m *model.Model, skin *model.Skin) []r3.Triangle {
	pos := make([]r3.Vec, len(skin.Verts))
	wsum := make([]float64, len(skin.Verts))

	for _, bone := range skin.Bones {
		body := m.FindBody(bone.BodyName)
		if body == nil {
			continue
		}
		bp := body.WorldPos()
		bq := body.WorldQuat()
		for i, vid := range bone.VertID {
			if vid < 0 || vid >= len(pos) {
				continue
			}
			w := float64(bone.VertWeight[i])
			local := rotate(quat.Conj(bone.BindQuat), r3.Sub(skin.Verts[vid], bone.BindPos))
			world := r3.Add(bp, rotate(bq, local))
			pos[vid] = r3.Add(pos[vid], r3.Scale(w, world))
			wsum[vid] += w
		}
	}
	for i := range pos {
		if wsum[i] > 0 {
			pos[i] = r3.Scale(1/wsum[i], pos[i])
		}
	}

	tris := make([]r3.Triangle, 0, len(skin.Faces))
	for _, f := range skin.Faces {
		tris = append(tris, r3.Triangle{pos[f[0]], pos[f[1]], pos[f[2]]})
	}
	return tris
}

func rotate(q quat.Number, v r3.Vec) r3.Vec {
	if q == (quat.Number{}) {
		return v
	}
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	p = quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vec{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}

func normal(t r3.Triangle) r3.Vec {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	n := r3.Cross(e1, e2)
	if r3.Norm2(n) == 0 {
		return r3.Vec{Z: 1}
	}
	return r3.Unit(n)
}
