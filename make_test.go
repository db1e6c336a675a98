package lattice

import (
	"errors"
	"testing"

	"github.com/lattice-sim/lattice/model"
)

func errKind(t *testing.T, err error) ErrorKind {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BuildError, got %T: %v", err, err)
	}
	return be.Kind
}

func TestMakeValidation(t *testing.T) {
	for _, tc := range []struct {
		name string
		spec func() *CompositeSpec
		want ErrorKind
	}{
		{
			name: "grid with box geom",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Type = ShapeGrid
				c.Count = [3]int{3, 3, 1}
				c.Spacing = 0.1
				c.Def[KindJoint].Geom.Type = model.GeomBox
				return c
			},
			want: ErrInvalidGeomType,
		},
		{
			name: "odd pin coordinates",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Type = ShapeGrid
				c.Count = [3]int{3, 3, 1}
				c.Spacing = 0.1
				c.Pin = []int{1}
				return c
			},
			want: ErrOddPinCount,
		},
		{
			name: "zero count",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Type = ShapeGrid
				c.Count = [3]int{0, 2, 1}
				c.Spacing = 0.1
				return c
			},
			want: ErrNonPositiveCount,
		},
		{
			name: "lattice above cell cap",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Type = ShapeGrid
				c.Count = [3]int{2048, 1024, 1}
				c.Spacing = 1
				return c
			},
			want: ErrLatticeTooLarge,
		},
		{
			name: "spacing below geom size",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Type = ShapeGrid
				c.Count = [3]int{3, 3, 1}
				c.Spacing = 0.01
				c.Def[KindJoint].Geom.Size.X = 0.02
				return c
			},
			want: ErrSpacingTooSmall,
		},
		{
			name: "zero extent",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Count = [3]int{2, 1, 1}
				c.Spacing = 0.1
				c.Size = [3]float64{}
				return c
			},
			want: ErrZeroExtent,
		},
		{
			name: "spacing on cable",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Type = ShapeCable
				c.Count = [3]int{5, 1, 1}
				c.Spacing = 0.1
				return c
			},
			want: ErrSpacingNotSupported,
		},
		{
			name: "vertex and count conflict",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Count = [3]int{2, 1, 1}
				c.UserVert = []float64{0, 0, 0, 1, 0, 0}
				return c
			},
			want: ErrConflictingVertexSpec,
		},
		{
			name: "singleton axis first",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Count = [3]int{1, 2, 1}
				c.Spacing = 0.1
				return c
			},
			want: ErrBadAxisOrder,
		},
		{
			name: "subgrid on 2x2",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Type = ShapeGrid
				c.Count = [3]int{2, 2, 1}
				c.Spacing = 0.1
				c.Skin.Enable = true
				c.Skin.Subgrid = 2
				return c
			},
			want: ErrSubgridTooSmall,
		},
		{
			name: "rope rejected",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Type = ShapeRope
				c.Count = [3]int{4, 1, 1}
				c.Spacing = 0.1
				return c
			},
			want: ErrDeprecatedShape,
		},
		{
			name: "cloth rejected",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Type = ShapeCloth
				c.Count = [3]int{3, 3, 1}
				c.Spacing = 0.1
				return c
			},
			want: ErrDeprecatedShape,
		},
		{
			name: "cable with sphere geom",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Type = ShapeCable
				c.Count = [3]int{5, 1, 1}
				return c
			},
			want: ErrInvalidGeomType,
		},
		{
			name: "three-dimensional grid",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Type = ShapeGrid
				c.Count = [3]int{2, 2, 2}
				c.Spacing = 0.1
				return c
			},
			want: ErrInvalidDimension,
		},
		{
			name: "loop under unnamed root",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Type = ShapeLoop
				c.Count = [3]int{4, 1, 1}
				c.Spacing = 0.1
				return c
			},
			want: ErrInvalidRootName,
		},
		{
			name: "loop origin out of range",
			spec: func() *CompositeSpec {
				c := NewSpec()
				c.Type = ShapeLoop
				c.Count = [3]int{4, 1, 1}
				c.Spacing = 0.1
				c.Origin = 7
				c.HasOrigin = true
				return c
			},
			want: ErrIndexOutOfRange,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := model.New()
			err := tc.spec().Make(m, m.World)
			if got := errKind(t, err); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMakeExplicitVertexCounts(t *testing.T) {
	c := NewSpec()
	c.Prefix = "P"
	c.UserVert = []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}
	c.SetDefault()

	m := model.New()
	if err := c.Make(m, m.World); err != nil {
		t.Fatal(err)
	}
	if c.Count[0] != 3 || c.Count[1] != 1 {
		t.Errorf("count = %v, want [3 1 1]", c.Count)
	}
}

func TestAddDefaultJointRepeated(t *testing.T) {
	c := NewSpec()
	c.Type = ShapeGrid
	c.SetDefault()

	err := c.AddDefaultJoint()
	if got := errKind(t, err); got != ErrMultipleJoints {
		t.Errorf("got %v, want %v", got, ErrMultipleJoints)
	}

	p := NewSpec()
	p.SetDefault()
	if err := p.AddDefaultJoint(); err != nil {
		t.Errorf("particle repeat joint: %v", err)
	}
	if len(p.DefJoint[KindParticle]) != 2 {
		t.Errorf("DefJoint[KindParticle] = %d joints, want 2", len(p.DefJoint[KindParticle]))
	}
}

func TestComputeDimensionality(t *testing.T) {
	for _, tc := range []struct {
		count [3]int
		dim   int
		ok    bool
	}{
		{[3]int{1, 1, 1}, 0, true},
		{[3]int{5, 1, 1}, 1, true},
		{[3]int{3, 4, 1}, 2, true},
		{[3]int{2, 2, 2}, 3, true},
		{[3]int{1, 2, 1}, 0, false},
		{[3]int{2, 1, 2}, 1, false},
	} {
		dim, ok := ComputeDimensionality(tc.count)
		if dim != tc.dim || ok != tc.ok {
			t.Errorf("ComputeDimensionality(%v) = %d, %v, want %d, %v",
				tc.count, dim, ok, tc.dim, tc.ok)
		}
	}
}
