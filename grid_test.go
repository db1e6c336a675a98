package lattice

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/internal/d3"
	"github.com/lattice-sim/lattice/model"
)

func gridSpec() *CompositeSpec {
	c := NewSpec()
	c.Type = ShapeGrid
	c.Prefix = "C"
	c.Count = [3]int{3, 3, 1}
	c.Spacing = 0.1
	c.SetDefault()
	return c
}

func TestGridCounts(t *testing.T) {
	c := gridSpec()
	m := model.New()
	if err := c.Make(m, m.World); err != nil {
		t.Fatal(err)
	}

	if got := len(m.Bodies()); got != 10 { // 9 plus world
		t.Errorf("bodies = %d, want 10", got)
	}
	if got := len(m.Joints()); got != 27 {
		t.Errorf("joints = %d, want 27", got)
	}
	if got := len(m.Geoms()); got != 9 {
		t.Errorf("geoms = %d, want 9", got)
	}
	if got := len(m.Sites()); got != 9 {
		t.Errorf("sites = %d, want 9", got)
	}
	if got := len(m.Tendons); got != 12 {
		t.Errorf("tendons = %d, want 12", got)
	}
	if got := len(m.Equalities); got != 12 {
		t.Errorf("equalities = %d, want 12", got)
	}

	b00 := m.FindBody("CB0_0")
	if b00 == nil {
		t.Fatal("body CB0_0 not found")
	}
	want := r3.Vec{X: -0.15, Y: -0.15}
	if !d3.EqualWithin(b00.Pos, want, 1e-12) {
		t.Errorf("CB0_0 pos = %v, want %v", b00.Pos, want)
	}

	j := m.FindJoint("CJ2_1_1")
	if j == nil {
		t.Fatal("joint CJ2_1_1 not found")
	}
	if j.Type != model.JointSlide {
		t.Errorf("joint type = %v, want slide", j.Type)
	}
	if !d3.EqualWithin(j.Axis, r3.Vec{Z: 1}, 0) {
		t.Errorf("joint axis = %v, want z", j.Axis)
	}

	ten := m.FindTendon("CT0_1_2")
	if ten == nil {
		t.Fatal("tendon CT0_1_2 not found")
	}
	if len(ten.Wraps) != 2 ||
		ten.Wraps[0].SiteName != "CS1_2" || ten.Wraps[1].SiteName != "CS2_2" {
		t.Errorf("tendon wraps = %+v", ten.Wraps)
	}
	if m.Equalities[0].Type != model.EqTendon {
		t.Errorf("equality type = %v, want tendon", m.Equalities[0].Type)
	}
}

func TestGridOffset(t *testing.T) {
	c := gridSpec()
	c.Offset = [3]float64{1, 2, 3}
	m := model.New()
	if err := c.Make(m, m.World); err != nil {
		t.Fatal(err)
	}
	want := r3.Vec{X: 1 - 0.15, Y: 2 - 0.15, Z: 3}
	if got := m.FindBody("CB0_0").Pos; !d3.EqualWithin(got, want, 1e-12) {
		t.Errorf("CB0_0 pos = %v, want %v", got, want)
	}
}

func TestGridPins(t *testing.T) {
	c := gridSpec()
	c.Pin = []int{0, 0, 2, 2}
	m := model.New()
	if err := c.Make(m, m.World); err != nil {
		t.Fatal(err)
	}
	if got := len(m.Joints()); got != 21 {
		t.Errorf("joints = %d, want 21", got)
	}
	if m.FindJoint("CJ0_0_0") != nil {
		t.Error("pinned site 0,0 still has a joint")
	}
	if m.FindJoint("CJ0_1_1") == nil {
		t.Error("free site 1,1 lost its joints")
	}
}

func TestGridShear(t *testing.T) {
	c := gridSpec()
	c.Add[KindShear] = true
	m := model.New()
	if err := c.Make(m, m.World); err != nil {
		t.Fatal(err)
	}
	if got := len(m.Tendons); got != 16 { // 12 axis plus 4 diagonal
		t.Errorf("tendons = %d, want 16", got)
	}
	if got := len(m.Equalities); got != 16 {
		t.Errorf("equalities = %d, want 16", got)
	}
	if m.FindTendon("CTS1_1") == nil {
		t.Error("shear tendon CTS1_1 not found")
	}
}

func TestGrid1D(t *testing.T) {
	c := NewSpec()
	c.Type = ShapeGrid
	c.Prefix = "W"
	c.Count = [3]int{4, 1, 1}
	c.Spacing = 0.1
	c.SetDefault()

	m := model.New()
	if err := c.Make(m, m.World); err != nil {
		t.Fatal(err)
	}
	if got := len(m.Bodies()); got != 5 {
		t.Errorf("bodies = %d, want 5", got)
	}
	if got := len(m.Tendons); got != 3 {
		t.Errorf("tendons = %d, want 3", got)
	}
	if got := len(m.Joints()); got != 12 {
		t.Errorf("joints = %d, want 12", got)
	}
}

func TestGridSkin(t *testing.T) {
	c := NewSpec()
	c.Type = ShapeGrid
	c.Prefix = "C"
	c.Count = [3]int{3, 3, 1}
	c.Spacing = 0.1
	c.Skin.Enable = true
	c.Skin.TexCoord = true
	c.SetDefault()

	m := model.New()
	if err := c.Make(m, m.World); err != nil {
		t.Fatal(err)
	}
	if len(m.Skins) != 1 {
		t.Fatalf("skins = %d, want 1", len(m.Skins))
	}
	skin := m.Skins[0]
	if skin.Name != "CSkin" {
		t.Errorf("skin name = %q, want CSkin", skin.Name)
	}
	if got := len(skin.Verts); got != 18 { // two layers of 9
		t.Errorf("skin verts = %d, want 18", got)
	}
	if got := len(skin.TexCoords); got != 18 {
		t.Errorf("skin texcoords = %d, want 18", got)
	}
	if got := len(skin.Faces); got != 32 { // 16 per-layer plus 16 stitch
		t.Errorf("skin faces = %d, want 32", got)
	}
	if got := len(skin.Bones); got != 9 {
		t.Errorf("skin bones = %d, want 9", got)
	}
	b := skin.Bones[0]
	if b.BodyName != "CB0_0" {
		t.Errorf("bone body = %q, want CB0_0", b.BodyName)
	}
	if len(b.VertID) != 2 || b.VertID[1] != 9 {
		t.Errorf("bone verts = %v, want [0 9]", b.VertID)
	}

	// With a skin present the generated geoms stay in the hidden group.
	if got := m.Geoms()[0].Group; got != 3 {
		t.Errorf("geom group = %d, want 3", got)
	}
}

func TestGridDefaultGroups(t *testing.T) {
	c := gridSpec() // no skin: geoms are the visual surface
	m := model.New()
	if err := c.Make(m, m.World); err != nil {
		t.Fatal(err)
	}
	if got := m.Geoms()[0].Group; got != 0 {
		t.Errorf("geom group = %d, want 0", got)
	}
	if got := m.Sites()[0].Group; got != 3 {
		t.Errorf("site group = %d, want 3", got)
	}
	// Main tendon locking is hard.
	if got := m.Equalities[0].SolRef[0]; math.Abs(got-0.01) > 1e-12 {
		t.Errorf("tendon equality solref = %g, want 0.01", got)
	}
}
