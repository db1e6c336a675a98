package render

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/internal/d3"
	"github.com/lattice-sim/lattice/model"
)

func TestSkinMeshWeightOne(t *testing.T) {
	m := model.New()
	m.AddBody(m.World, model.Body{
		Name: "b", Pos: r3.Vec{X: 1}, Quat: model.QuatIdentity(),
	})

	skin := m.AddSkin(model.Skin{
		Name: "s",
		Verts: []r3.Vec{
			{}, {Y: 1}, {Z: 1},
		},
		Faces: [][3]int{{0, 1, 2}},
		Bones: []*model.Bone{{
			BodyName:   "b",
			BindQuat:   model.QuatIdentity(),
			VertID:     []int{0, 1, 2},
			VertWeight: []float32{1, 1, 1},
		}},
	})

	tris := SkinMesh(m, skin)
	if len(tris) != 1 {
		t.Fatalf("triangles = %d, want 1", len(tris))
	}
	// The whole sheet rides the body.
	if !d3.EqualWithin(tris[0][0], r3.Vec{X: 1}, 1e-12) {
		t.Errorf("v0 = %v, want {1 0 0}", tris[0][0])
	}
	if !d3.EqualWithin(tris[0][1], r3.Vec{X: 1, Y: 1}, 1e-12) {
		t.Errorf("v1 = %v, want {1 1 0}", tris[0][1])
	}
}

func TestSkinMeshBlend(t *testing.T) {
	m := model.New()
	m.AddBody(m.World, model.Body{Name: "a", Pos: r3.Vec{X: 1}, Quat: model.QuatIdentity()})
	m.AddBody(m.World, model.Body{Name: "c", Pos: r3.Vec{X: -1}, Quat: model.QuatIdentity()})

	skin := m.AddSkin(model.Skin{
		Verts: []r3.Vec{{}, {Y: 1}, {Z: 1}},
		Faces: [][3]int{{0, 1, 2}},
		Bones: []*model.Bone{
			{
				BodyName: "a", BindQuat: model.QuatIdentity(),
				VertID: []int{0, 1, 2}, VertWeight: []float32{0.5, 1, 1},
			},
			{
				BodyName: "c", BindQuat: model.QuatIdentity(),
				VertID: []int{0}, VertWeight: []float32{0.5},
			},
		},
	})

	tris := SkinMesh(m, skin)
	// Vertex 0 is pulled equally toward both bodies.
	if !d3.EqualWithin(tris[0][0], r3.Vec{}, 1e-12) {
		t.Errorf("blended v0 = %v, want origin", tris[0][0])
	}
	if !d3.EqualWithin(tris[0][1], r3.Vec{X: 1, Y: 1}, 1e-12) {
		t.Errorf("v1 = %v, want {1 1 0}", tris[0][1])
	}
}

func TestSkinMeshBindPose(t *testing.T) {
	// A bind frame rotated a quarter turn about z: the vertex offset is
	// expressed in the bind frame before it is carried to the body.
	m := model.New()
	s := math.Sqrt(0.5)
	m.AddBody(m.World, model.Body{Name: "a", Quat: model.QuatIdentity()})

	skin := m.AddSkin(model.Skin{
		Verts: []r3.Vec{{X: 1}, {}, {Z: 1}},
		Faces: [][3]int{{0, 1, 2}},
		Bones: []*model.Bone{{
			BodyName: "a",
			BindQuat: quat.Number{Real: s, Kmag: s},
			VertID:   []int{0, 1, 2}, VertWeight: []float32{1, 1, 1},
		}},
	})

	tris := SkinMesh(m, skin)
	// Local = conj(bind) applied to {1,0,0} = {0,-1,0}.
	if !d3.EqualWithin(tris[0][0], r3.Vec{Y: -1}, 1e-9) {
		t.Errorf("v0 = %v, want {0 -1 0}", tris[0][0])
	}
}

func TestSTLRoundTrip(t *testing.T) {
	tris := []r3.Triangle{
		{{X: 0}, {X: 1}, {Y: 1}},
		{{Z: 1}, {X: 1, Z: 1}, {Y: 1, Z: 1}},
	}
	var buf bytes.Buffer
	if err := WriteSTL(&buf, tris); err != nil {
		t.Fatal(err)
	}
	if got := buf.Len(); got != 84+2*50 {
		t.Errorf("file size = %d, want %d", got, 84+2*50)
	}

	back, err := ReadSTL(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != len(tris) {
		t.Fatalf("read %d triangles, want %d", len(back), len(tris))
	}
	for i := range tris {
		for v := 0; v < 3; v++ {
			if !d3.EqualWithin(back[i][v], tris[i][v], 1e-6) {
				t.Errorf("triangle %d vertex %d = %v, want %v", i, v, back[i][v], tris[i][v])
			}
		}
	}
}

func TestWriteSTLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSTL(&buf, nil); err == nil {
		t.Error("expected error for empty mesh")
	}
}

func TestReadSTLBadData(t *testing.T) {
	// Header announcing zero triangles.
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	if _, err := ReadSTL(&buf); err == nil {
		t.Error("expected error for zero-triangle file")
	}

	// One triangle with a NaN vertex.
	buf.Reset()
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	var tri [50]byte
	binary.LittleEndian.PutUint32(tri[12:], math.Float32bits(float32(math.NaN())))
	buf.Write(tri[:])
	if _, err := ReadSTL(&buf); err == nil {
		t.Error("expected error for NaN vertex")
	}

	// Truncated body.
	buf.Reset()
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	buf.Write(make([]byte, 10))
	if _, err := ReadSTL(&buf); err == nil {
		t.Error("expected error for truncated file")
	}
}

func TestDegenerateNormal(t *testing.T) {
	n := normal(r3.Triangle{{}, {}, {}})
	if !d3.EqualWithin(n, r3.Vec{Z: 1}, 0) {
		t.Errorf("degenerate normal = %v, want z", n)
	}
}
