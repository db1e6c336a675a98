package lattice

import (
	"math"
	"testing"

	"github.com/lattice-sim/lattice/model"
)

func loopSpec() *CompositeSpec {
	c := NewSpec()
	c.Type = ShapeLoop
	c.Prefix = "R"
	c.Count = [3]int{4, 1, 1}
	c.Spacing = 0.1
	c.Origin = 1
	c.HasOrigin = true
	c.SetDefault()
	return c
}

func TestLoop(t *testing.T) {
	c := loopSpec()
	m := model.New()
	if err := c.Make(m, m.World); err != nil {
		t.Fatal(err)
	}

	// The root element reuses the parent body; three more are chained.
	if got := len(m.Bodies()); got != 4 {
		t.Errorf("bodies = %d, want 4", got)
	}
	if m.FindBody("RB1") != nil {
		t.Error("root element must not create a body")
	}
	for _, name := range []string{"RB0", "RB2", "RB3"} {
		if m.FindBody(name) == nil {
			t.Errorf("body %s not found", name)
		}
	}

	// One geom per element including the root, turned onto the chain axis.
	if got := len(m.Geoms()); got != 4 {
		t.Errorf("geoms = %d, want 4", got)
	}
	g := m.Geoms()[0]
	if g.Name != "RG1" {
		t.Errorf("root geom = %q, want RG1", g.Name)
	}
	s := math.Sqrt(0.5)
	if math.Abs(g.Quat.Real-s) > 1e-12 || math.Abs(g.Quat.Jmag-s) > 1e-12 {
		t.Errorf("geom quat = %v, want y-axis quarter turn", g.Quat)
	}

	// Two transverse hinges per non-root element.
	if got := len(m.Joints()); got != 6 {
		t.Errorf("joints = %d, want 6", got)
	}
	if m.FindJoint("RJ0_2") == nil || m.FindJoint("RJ1_2") == nil {
		t.Error("hinges of element 2 missing")
	}

	// The loop closes with a connect constraint and a contact exclude.
	if got := len(m.Equalities); got != 1 {
		t.Fatalf("equalities = %d, want 1", got)
	}
	eq := m.Equalities[0]
	if eq.Type != model.EqConnect || eq.Name1 != "RB0" || eq.Name2 != "RB3" {
		t.Errorf("connect = %+v", eq)
	}
	if math.Abs(eq.Anchor.X+0.05) > 1e-12 {
		t.Errorf("anchor x = %g, want -0.05", eq.Anchor.X)
	}
	// Loop smoothing is hardened by the shape defaults.
	if math.Abs(eq.SolRef[0]-0.01) > 1e-12 {
		t.Errorf("connect solref = %g, want 0.01", eq.SolRef[0])
	}
	if got := len(m.Excludes); got != 1 {
		t.Errorf("excludes = %d, want 1", got)
	}
}

func TestLoopTwistStretch(t *testing.T) {
	c := loopSpec()
	c.Add[KindTwist] = true
	c.Add[KindStretch] = true
	m := model.New()
	if err := c.Make(m, m.World); err != nil {
		t.Fatal(err)
	}

	if got := len(m.Joints()); got != 12 { // 6 hinges, 3 twist, 3 stretch
		t.Errorf("joints = %d, want 12", got)
	}
	jt := m.FindJoint("RJT2")
	if jt == nil || jt.Type != model.JointHinge {
		t.Fatalf("RJT2 = %+v, want hinge", jt)
	}
	js := m.FindJoint("RJS2")
	if js == nil || js.Type != model.JointSlide {
		t.Fatalf("RJS2 = %+v, want slide", js)
	}
	// Connect plus one joint lock per twist and stretch joint.
	if got := len(m.Equalities); got != 7 {
		t.Errorf("equalities = %d, want 7", got)
	}
}

func TestRopeRootNameOrigin(t *testing.T) {
	// Without an explicit origin the root coordinate comes from the
	// parent body name.
	c := loopSpec()
	c.HasOrigin = false
	m := model.New()
	root := m.AddBody(m.World, model.Body{Name: "RB2", Quat: model.QuatIdentity()})
	if err := c.Make(m, root); err != nil {
		t.Fatal(err)
	}
	if got := len(m.Bodies()); got != 5 { // world, root, three chained
		t.Errorf("bodies = %d, want 5", got)
	}
}
