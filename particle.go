package lattice

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/model"
)

// cube2tets splits one lattice cell into six tetrahedra sharing the main
// diagonal 1-7.
var cube2tets = [6][4]int{
	{0, 3, 1, 7}, {0, 1, 4, 7},
	{1, 3, 2, 7}, {1, 2, 6, 7},
	{1, 5, 4, 7}, {1, 6, 5, 7},
}

var quad2tri = [2][3]int{{0, 1, 2}, {0, 2, 3}}

// makeParticle builds a cloud of independent bodies, one per lattice
// vertex or explicit vertex, each carrying slide joints, a geom and a
// site. Two-dimensional clouds additionally get isometry tendons along
// the unique mesh edges.
func (b *builder) makeParticle(parent *model.Body) error {
	c := b.c

	// Populate vertices and names from the lattice unless given.
	if !c.explicitVert {
		for ix := 0; ix < c.Count[0]; ix++ {
			for iy := 0; iy < c.Count[1]; iy++ {
				for iz := 0; iz < c.Count[2]; iz++ {
					b.vert = append(b.vert,
						c.Spacing*(float64(ix)-0.5*float64(c.Count[0])),
						c.Spacing*(float64(iy)-0.5*float64(c.Count[1])),
						c.Spacing*(float64(iz)-0.5*float64(c.Count[2])))
					b.name = append(b.name,
						fmt.Sprintf("%sB%d_%d_%d", c.Prefix, ix, iy, iz))
				}
			}
		}
	}

	// Triangulate or tetrahedralize the lattice unless faces are given.
	if len(c.UserFace) == 0 {
		switch b.dim {
		case 3:
			for ix := 0; ix < c.Count[0]-1; ix++ {
				for iy := 0; iy < c.Count[1]-1; iy++ {
					for iz := 0; iz < c.Count[2]-1; iz++ {
						cell := cellCorners(c.Count, ix, iy, iz)
						for _, tet := range cube2tets {
							for _, v := range tet {
								b.face = append(b.face, cell[v])
							}
						}
					}
				}
			}
		case 2:
			for ix := 0; ix < c.Count[0]-1; ix++ {
				for iy := 0; iy < c.Count[1]-1; iy++ {
					quad := [4]int{
						c.Count[2]*c.Count[1]*ix + c.Count[2]*iy,
						c.Count[2]*c.Count[1]*(ix+1) + c.Count[2]*iy,
						c.Count[2]*c.Count[1]*(ix+1) + c.Count[2]*(iy+1),
						c.Count[2]*c.Count[1]*ix + c.Count[2]*(iy+1),
					}
					for _, tri := range quad2tri {
						for _, v := range tri {
							b.face = append(b.face, quad[v])
						}
					}
				}
			}
		}
	} else {
		// Only surface meshes can be loaded explicitly for now.
		b.dim = 2
		for _, f := range c.UserFace {
			b.face = append(b.face, f-1)
		}
	}

	// Per-vertex volume, for membrane density scaling.
	nvert := len(b.vert) / 3
	volume := make([]float64, nvert)
	thickness := 1.0
	if b.dim == 2 && c.PluginInstance != nil {
		t, err := strconv.ParseFloat(c.PluginInstance.Config["thickness"], 64)
		if err != nil {
			return buildErrf(ErrInvalidPlugin, "invalid thickness attribute: %v", err)
		}
		thickness = t
	}
	if len(b.face) > 0 {
		for j := 0; j+2 < len(b.face); j += 3 {
			v0, v1, v2 := b.vertAt(b.face[j]), b.vertAt(b.face[j+1]), b.vertAt(b.face[j+2])
			area := 0.5 * r3.Norm(r3.Cross(r3.Sub(v1, v0), r3.Sub(v2, v0)))
			share := area * thickness / 3
			volume[b.face[j]] += share
			volume[b.face[j+1]] += share
			volume[b.face[j+2]] += share
		}
	} else {
		for i := range volume {
			volume[i] = 3 * c.Spacing * c.Spacing * thickness
		}
	}

	// Bodies, joints, geoms, sites.
	for i := 0; i < nvert; i++ {
		bodyName := fmt.Sprintf("%sB%d", c.Prefix, i)
		if len(b.name) > 0 {
			bodyName = b.name[i]
		}
		body := b.m.AddBody(parent, model.Body{
			Name: bodyName,
			Pos:  r3.Add(vecFromArr(c.Offset), b.vertAt(i)),
			Quat: model.QuatIdentity(),
		})

		if !c.Add[KindParticle] {
			for ax := 0; ax < 3; ax++ {
				j := c.DefJoint[KindJoint][0]
				j.Type = model.JointSlide
				j.Pos = r3.Vec{}
				j.Axis = axisVec(ax)
				b.m.AddJoint(body, j)
			}
		} else {
			for _, j := range c.DefJoint[KindParticle] {
				b.m.AddJoint(body, j)
			}
		}

		g := b.m.AddGeom(body, c.Def[KindJoint].Geom)

		s := c.Def[KindJoint].Site
		s.Type = model.GeomSphere
		s.Name = fmt.Sprintf("%sS%d", c.Prefix, i)
		b.m.AddSite(body, s)

		if c.PluginInstance != nil {
			body.Plugin = model.PluginRef{
				Active:       true,
				Name:         c.PluginName,
				InstanceName: c.PluginInstanceName,
				Instance:     c.PluginInstance,
			}
			if i == 0 {
				if c.PluginInstance.Config["face"] != "" {
					return buildErrf(ErrInvalidPlugin,
						"face attribute already exists in plugin")
				}
				c.PluginInstance.Config["face"] = intsToString(b.face)
				c.PluginInstance.Config["edge"] = ""
			}
			// Scale sphere density so the particle mass matches the
			// membrane volume share of its vertex.
			if b.dim == 2 {
				g.Density *= volume[i] / (4.0 / 3.0 * math.Pi * math.Pow(g.Size.X, 3))
			}
		}
	}

	// Isometry constraints along the unique mesh edges.
	if b.dim == 2 {
		for _, e := range uniqueEdges(b.face) {
			ten := c.Def[KindTendon].Tendon
			ten.Name = fmt.Sprintf("%sT%d_%d", c.Prefix, e[0], e[1])
			ten.Group = 4
			ten.WrapSite(fmt.Sprintf("%sS%d", c.Prefix, e[0]))
			ten.WrapSite(fmt.Sprintf("%sS%d", c.Prefix, e[1]))
			b.m.AddTendon(ten)

			eq := c.Def[KindTendon].Equality
			eq.Type = model.EqTendon
			eq.Name1 = ten.Name
			b.m.AddEquality(eq)
		}
	}

	if c.Skin.Enable && b.dim == 3 {
		b.makeSkin3()
	}
	if c.Skin.Enable && b.dim == 2 {
		if c.Skin.Subgrid > 0 {
			b.makeSkin2Subgrid(c.Skin.Inflate)
		} else {
			b.makeSkin2(c.Skin.Inflate)
		}
	}
	return nil
}

// cellCorners returns the vertex indices of lattice cell (ix, iy, iz),
// bottom quad counterclockwise then top quad.
func cellCorners(count [3]int, ix, iy, iz int) [8]int {
	at := func(x, y, z int) int {
		return count[2]*count[1]*x + count[2]*y + z
	}
	return [8]int{
		at(ix, iy, iz), at(ix+1, iy, iz), at(ix+1, iy+1, iz), at(ix, iy+1, iz),
		at(ix, iy, iz+1), at(ix+1, iy, iz+1), at(ix+1, iy+1, iz+1), at(ix, iy+1, iz+1),
	}
}

func (b *builder) vertAt(i int) r3.Vec {
	return r3.Vec{X: b.vert[3*i], Y: b.vert[3*i+1], Z: b.vert[3*i+2]}
}

func vecFromArr(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

func axisVec(i int) r3.Vec {
	switch i {
	case 0:
		return r3.Vec{X: 1}
	case 1:
		return r3.Vec{Y: 1}
	}
	return r3.Vec{Z: 1}
}

// uniqueEdges extracts the sorted, deduplicated undirected edges of a
// flat triangle list.
func uniqueEdges(face []int) [][2]int {
	var edges [][2]int
	for i := 0; i+2 < len(face); i += 3 {
		for j := 0; j < 3; j++ {
			v0, v1 := face[i+j], face[i+(j+1)%3]
			if v0 > v1 {
				v0, v1 = v1, v0
			}
			edges = append(edges, [2]int{v0, v1})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	out := edges[:0]
	for i, e := range edges {
		if i == 0 || e != edges[i-1] {
			out = append(out, e)
		}
	}
	return out
}

func intsToString(v []int) string {
	var sb strings.Builder
	for i, x := range v {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(x))
	}
	return sb.String()
}
