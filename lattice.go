// Package lattice expands compact composite-object specifications into
// full sets of interconnected rigid bodies, joints, geoms, sites,
// tendons, equality constraints and optional deformable skins.
//
// A CompositeSpec describes a particle cloud, cloth grid, cable, rope
// loop or volumetric shell parametrically; Make synthesizes the
// corresponding entities into a model.Model. Expansion is one-time,
// deterministic and single-threaded: nothing here is safe for concurrent
// mutation of the same model, and nothing needs to be.
package lattice

import (
	"go.uber.org/zap"

	"github.com/lattice-sim/lattice/model"
)

// Shape enumerates the composite shapes.
type Shape int

const (
	ShapeParticle Shape = iota
	ShapeGrid
	ShapeRope // deprecated, rejected by Make
	ShapeLoop // deprecated, routed to the rope builder with a warning
	ShapeCable
	ShapeCloth // deprecated, rejected by Make
	ShapeBox
	ShapeCylinder
	ShapeEllipsoid
)

func (s Shape) String() string {
	switch s {
	case ShapeParticle:
		return "particle"
	case ShapeGrid:
		return "grid"
	case ShapeRope:
		return "rope"
	case ShapeLoop:
		return "loop"
	case ShapeCable:
		return "cable"
	case ShapeCloth:
		return "cloth"
	case ShapeBox:
		return "box"
	case ShapeCylinder:
		return "cylinder"
	case ShapeEllipsoid:
		return "ellipsoid"
	}
	return "unknown"
}

// Kind enumerates the constraint/geometry default bundles a composite
// carries: one per joint kind (main, twist, stretch, particle) and one
// per tendon kind (main, shear).
type Kind int

const (
	KindJoint Kind = iota // main joint kind
	KindTwist
	KindStretch
	KindParticle
	KindTendon // main tendon kind
	KindShear
	numKinds
)

// EndCondition selects the joint placed at a cable's first vertex.
type EndCondition int

const (
	EndBall EndCondition = iota
	EndFree
	EndNone
)

// CurveKind selects a per-axis curve generator for cable vertex
// placement.
type CurveKind int

const (
	CurveZero CurveKind = iota // constant zero
	CurveLine                  // affine ramp over the arc parameter
	CurveCos                   // cosine of the scaled arc parameter
	CurveSin                   // sine of the scaled arc parameter
)

// Defaults is a full default-object template bundle for one Kind.
type Defaults struct {
	Geom     model.Geom
	Site     model.Site
	Tendon   model.Tendon
	Equality model.Equality
}

// SkinSpec configures the optional deformable skin of a composite.
type SkinSpec struct {
	Enable   bool
	TexCoord bool
	Material string
	RGBA     [4]float32
	Inflate  float64
	Subgrid  int
	Group    int
}

// CompositeSpec is the parametric description of one composite object.
// It is constructed fresh per declarative element, fully populated by the
// reader, frozen by SetDefault, then consumed exactly once by Make.
type CompositeSpec struct {
	Prefix  string
	Type    Shape
	Count   [3]int
	Spacing float64
	Offset  [3]float64
	Pin     []int // flat list of lattice coordinate pairs

	FlatInertia  float64
	SolRefSmooth model.SolRef
	SolImpSmooth model.SolImp

	// Cable-specific fields.
	Curve   [3]CurveKind
	Size    [3]float64
	Initial EndCondition

	// Rope origin index, preferred over parsing the root body name.
	Origin    int
	HasOrigin bool

	// Explicit vertex/face overrides bypassing lattice generation.
	// UserFace indices are 1-based as authored.
	UserVert []float64
	UserFace []int

	Skin SkinSpec

	// Default template bundles, one per Kind, plus per-kind joint
	// template lists (only particle composites may hold more than one
	// joint per kind).
	Def      [numKinds]Defaults
	DefJoint [numKinds][]model.Joint
	Add      [numKinds]bool

	PluginName         string
	PluginInstanceName string
	PluginInstance     *model.Plugin

	// Log receives non-fatal diagnostics such as deprecation warnings.
	Log *zap.Logger

	explicitVert bool
}

// NewSpec returns a composite specification with engine defaults.
func NewSpec() *CompositeSpec {
	c := &CompositeSpec{
		Type:         ShapeParticle,
		Count:        [3]int{1, 1, 1},
		Size:         [3]float64{1, 0, 0},
		Initial:      EndBall,
		SolRefSmooth: model.DefaultSolRef(),
		SolImpSmooth: model.DefaultSolImp(),
		Log:          zap.NewNop(),
	}
	c.Skin.RGBA = [4]float32{1, 1, 1, 1}
	for k := range c.Def {
		c.Def[k] = Defaults{
			Geom:     model.DefaultGeom(),
			Site:     model.DefaultSite(),
			Tendon:   model.DefaultTendon(),
			Equality: model.DefaultEquality(),
		}
	}
	return c
}

// Softness levels for adjustSoft.
const (
	softHard = 0
	softSoft = 1
)

// adjustSoft tunes constraint reference/impedance toward a preset
// softness level.
func adjustSoft(solref *model.SolRef, solimp *model.SolImp, level int) {
	switch level {
	case softHard:
		solref[0] = 0.01
		solimp[0] = 0.99
		solimp[1] = 0.99
	case softSoft:
		solref[0] = 0.02
		solimp[0] = 0.9
		solimp[1] = 0.9
	}
}

// AddDefaultJoint appends one default joint template to every kind.
// Repeated joint definitions are only allowed for particle composites.
func (c *CompositeSpec) AddDefaultJoint() error {
	for k := range c.DefJoint {
		if len(c.DefJoint[k]) > 0 && c.Type != ShapeParticle {
			return buildErrf(ErrMultipleJoints,
				"composite %q: only particles are allowed to have multiple joints", c.Prefix)
		}
		j := model.DefaultJoint()
		j.Group = 3
		c.DefJoint[k] = append(c.DefJoint[k], j)
	}
	return nil
}

// SetDefault freezes the shape-specific defaults. It must run after the
// top-level attributes and the skin sub-spec are populated and before any
// joint/tendon sub-specs are applied, because geom and tendon visibility
// groups depend on whether skinning is enabled.
func (c *CompositeSpec) SetDefault() {
	tmpdim := 0
	for i := 0; i < 3; i++ {
		if c.Count[i] > 1 {
			tmpdim++
		}
	}

	// Generated helper entities default to an invisible group.
	for k := range c.Def {
		c.Def[k].Geom.Group = 3
		c.Def[k].Site.Group = 3
		c.Def[k].Tendon.Group = 3
	}

	// Ignore the error: DefJoint lists are empty at this point.
	_ = c.AddDefaultJoint()

	// Without a skin the generated geoms and tendons are the visual
	// surface, so promote them to the visible group.
	if !c.Skin.Enable ||
		c.Type == ShapeParticle ||
		c.Type == ShapeRope ||
		c.Type == ShapeLoop ||
		c.Type == ShapeCable ||
		(c.Type == ShapeGrid && tmpdim == 1) {
		for k := range c.Def {
			c.Def[k].Geom.Group = 0
			c.Def[k].Tendon.Group = 0
		}
	}

	switch c.Type {
	case ShapeParticle:
		// Frictionless with everything.
		c.Def[KindJoint].Geom.ConDim = 1
		c.Def[KindJoint].Geom.Priority = 1

	case ShapeGrid:
		// Hard main tendon fix.
		adjustSoft(&c.Def[KindTendon].Equality.SolRef,
			&c.Def[KindTendon].Equality.SolImp, softHard)

	case ShapeCable, ShapeRope, ShapeCloth:

	case ShapeLoop:
		adjustSoft(&c.SolRefSmooth, &c.SolImpSmooth, softHard)

	case ShapeBox, ShapeCylinder, ShapeEllipsoid:
		// No self-collisions within the shell.
		c.Def[KindJoint].Geom.ConType = 0

		adjustSoft(&c.SolRefSmooth, &c.SolImpSmooth, softSoft)
		for k := range c.Def {
			adjustSoft(&c.Def[k].Equality.SolRef, &c.Def[k].Equality.SolImp, softSoft)
		}
		adjustSoft(&c.Def[KindTendon].Equality.SolRef,
			&c.Def[KindTendon].Equality.SolImp, softHard)
	}
}

// ComputeDimensionality returns the number of non-singleton lattice axes.
// ok is false when a singleton axis precedes a non-singleton one; the
// builders require singleton axes to come last.
func ComputeDimensionality(count [3]int) (dim int, ok bool) {
	seenSingleton := false
	for i := 0; i < 3; i++ {
		if count[i] == 1 {
			seenSingleton = true
			continue
		}
		if seenSingleton {
			return dim, false
		}
		dim++
	}
	return dim, true
}
