package lattice

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/internal/d3"
	"github.com/lattice-sim/lattice/model"
)

func TestParticleLattice2D(t *testing.T) {
	c := NewSpec()
	c.Prefix = "P"
	c.Count = [3]int{2, 2, 1}
	c.Spacing = 0.2
	c.SetDefault()

	m := model.New()
	if err := c.Make(m, m.World); err != nil {
		t.Fatal(err)
	}

	if got := len(m.Bodies()); got != 5 {
		t.Errorf("bodies = %d, want 5", got)
	}
	if got := len(m.Joints()); got != 12 { // three slides per particle
		t.Errorf("joints = %d, want 12", got)
	}
	if got := len(m.Geoms()); got != 4 {
		t.Errorf("geoms = %d, want 4", got)
	}
	if got := len(m.Sites()); got != 4 {
		t.Errorf("sites = %d, want 4", got)
	}
	// One quad split in two triangles: five unique edges.
	if got := len(m.Tendons); got != 5 {
		t.Errorf("tendons = %d, want 5", got)
	}
	if got := len(m.Equalities); got != 5 {
		t.Errorf("equalities = %d, want 5", got)
	}

	b := m.FindBody("PB0_0_0")
	if b == nil {
		t.Fatal("body PB0_0_0 not found")
	}
	want := r3.Vec{X: -0.2, Y: -0.2, Z: -0.1}
	if !d3.EqualWithin(b.Pos, want, 1e-12) {
		t.Errorf("PB0_0_0 pos = %v, want %v", b.Pos, want)
	}

	ten := m.FindTendon("PT0_2")
	if ten == nil {
		t.Fatal("tendon PT0_2 not found")
	}
	if ten.Group != 4 {
		t.Errorf("isometry tendon group = %d, want 4", ten.Group)
	}

	// Frictionless contact defaults.
	g := m.Geoms()[0]
	if g.ConDim != 1 || g.Priority != 1 {
		t.Errorf("geom condim/priority = %d/%d, want 1/1", g.ConDim, g.Priority)
	}
}

func TestParticleExplicitMesh(t *testing.T) {
	c := NewSpec()
	c.Prefix = "P"
	c.UserVert = []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}
	c.UserFace = []int{1, 2, 3}
	c.SetDefault()

	m := model.New()
	if err := c.Make(m, m.World); err != nil {
		t.Fatal(err)
	}
	if got := len(m.Bodies()); got != 4 {
		t.Errorf("bodies = %d, want 4", got)
	}
	b := m.FindBody("PB1")
	if b == nil {
		t.Fatal("body PB1 not found")
	}
	if !d3.EqualWithin(b.Pos, r3.Vec{X: 1}, 0) {
		t.Errorf("PB1 pos = %v, want {1 0 0}", b.Pos)
	}
	// Explicit faces force surface behavior: one triangle, three edges.
	if got := len(m.Tendons); got != 3 {
		t.Errorf("tendons = %d, want 3", got)
	}
}

func TestParticleLattice3D(t *testing.T) {
	c := NewSpec()
	c.Prefix = "P"
	c.Count = [3]int{2, 2, 2}
	c.Spacing = 0.2
	c.SetDefault()

	m := model.New()
	if err := c.Make(m, m.World); err != nil {
		t.Fatal(err)
	}
	if got := len(m.Bodies()); got != 9 {
		t.Errorf("bodies = %d, want 9", got)
	}
	if got := len(m.Joints()); got != 24 {
		t.Errorf("joints = %d, want 24", got)
	}
	// Isometry tendons apply to surfaces only.
	if got := len(m.Tendons); got != 0 {
		t.Errorf("tendons = %d, want 0", got)
	}
}

func TestParticlePlugin(t *testing.T) {
	c := NewSpec()
	c.Prefix = "P"
	c.Count = [3]int{2, 2, 1}
	c.Spacing = 0.2
	c.PluginName = "elasticity.membrane"
	c.PluginInstanceName = "membrane"
	c.PluginInstance = &model.Plugin{
		Name:   "membrane",
		Config: map[string]string{"thickness": "0.01"},
	}
	c.SetDefault()

	m := model.New()
	if err := c.Make(m, m.World); err != nil {
		t.Fatal(err)
	}

	// The triangulation is published to the plugin instance once.
	if c.PluginInstance.Config["face"] == "" {
		t.Error("plugin face config not populated")
	}
	if _, ok := c.PluginInstance.Config["edge"]; !ok {
		t.Error("plugin edge config not populated")
	}
	for _, b := range m.Bodies()[1:] {
		if !b.Plugin.Active {
			t.Fatalf("body %s has no plugin reference", b.Name)
		}
	}
}

func TestParticlePluginBadThickness(t *testing.T) {
	c := NewSpec()
	c.Prefix = "P"
	c.Count = [3]int{2, 2, 1}
	c.Spacing = 0.2
	c.PluginInstance = &model.Plugin{Config: map[string]string{"thickness": "thick"}}
	c.SetDefault()

	m := model.New()
	err := c.Make(m, m.World)
	if got := errKind(t, err); got != ErrInvalidPlugin {
		t.Errorf("got %v, want %v", got, ErrInvalidPlugin)
	}
}

func TestUniqueEdges(t *testing.T) {
	// Two triangles sharing edge 0-2.
	edges := uniqueEdges([]int{0, 1, 2, 0, 2, 3})
	want := [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {2, 3}}
	if len(edges) != len(want) {
		t.Fatalf("edges = %v, want %v", edges, want)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edge %d = %v, want %v", i, edges[i], want[i])
		}
	}
}
