package model

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Solver parameter widths shared by every constraint-bearing entity.
const (
	NRef = 2 // reference parameters (timeconst, dampratio)
	NImp = 5 // impedance parameters (dmin, dmax, width, midpoint, power)
)

// SolRef holds constraint solver reference parameters.
type SolRef [NRef]float64

// SolImp holds constraint solver impedance parameters.
type SolImp [NImp]float64

// JointType enumerates the supported joint primitives.
type JointType int

const (
	JointFree JointType = iota
	JointBall
	JointSlide
	JointHinge
)

func (t JointType) String() string {
	switch t {
	case JointFree:
		return "free"
	case JointBall:
		return "ball"
	case JointSlide:
		return "slide"
	case JointHinge:
		return "hinge"
	}
	return "unknown"
}

// GeomType enumerates the geometry primitives a generated body may carry.
type GeomType int

const (
	GeomSphere GeomType = iota
	GeomCapsule
	GeomEllipsoid
	GeomCylinder
	GeomBox
)

func (t GeomType) String() string {
	switch t {
	case GeomSphere:
		return "sphere"
	case GeomCapsule:
		return "capsule"
	case GeomEllipsoid:
		return "ellipsoid"
	case GeomCylinder:
		return "cylinder"
	case GeomBox:
		return "box"
	}
	return "unknown"
}

// EqualityType enumerates equality constraint flavors.
type EqualityType int

const (
	EqConnect EqualityType = iota
	EqJoint
	EqTendon
)

func (t EqualityType) String() string {
	switch t {
	case EqConnect:
		return "connect"
	case EqJoint:
		return "joint"
	case EqTendon:
		return "tendon"
	}
	return "unknown"
}

// Body is a rigid body in the kinematic tree. Pos and Quat are relative to
// the parent body frame.
type Body struct {
	Name string
	Pos  r3.Vec
	Quat quat.Number

	Children []*Body
	Joints   []*Joint
	Geoms    []*Geom
	Sites    []*Site

	Plugin PluginRef

	parent *Body
}

// Parent returns the parent body, or nil for the world body.
func (b *Body) Parent() *Body { return b.parent }

// WorldPos accumulates parent offsets to give the body position in the
// world frame at the rest configuration. Orientation offsets of ancestors
// are applied to child translations.
func (b *Body) WorldPos() r3.Vec {
	if b.parent == nil {
		return b.Pos
	}
	q := b.parent.WorldQuat()
	return r3.Add(b.parent.WorldPos(), rotateVec(q, b.Pos))
}

// WorldQuat accumulates parent orientations in the world frame. Unset
// orientations read as identity.
func (b *Body) WorldQuat() quat.Number {
	q := b.Quat
	if q == (quat.Number{}) {
		q = quat.Number{Real: 1}
	}
	if b.parent == nil {
		return q
	}
	return quat.Mul(b.parent.WorldQuat(), q)
}

func rotateVec(q quat.Number, v r3.Vec) r3.Vec {
	if q == (quat.Number{}) {
		return v // unset orientation treated as identity
	}
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	p = quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vec{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}

// PluginRef marks a body as driven by a plugin instance.
type PluginRef struct {
	Active       bool
	Name         string
	InstanceName string
	Instance     *Plugin
}

// Plugin is a plugin instance with its string-keyed configuration,
// single-owned by the model in document order.
type Plugin struct {
	Name   string
	Config map[string]string
}

// Joint is a degree of freedom owned by exactly one body.
type Joint struct {
	Name string
	Type JointType
	Pos  r3.Vec
	Axis r3.Vec

	Group        int
	Stiffness    float64
	Damping      float64
	Armature     float64
	FrictionLoss float64

	Limited        bool
	Range          [2]float64
	Margin         float64
	SolRefLimit    SolRef
	SolImpLimit    SolImp
	SolRefFriction SolRef
	SolImpFriction SolImp
}

// Geom is a collision/inertial geometry owned by exactly one body.
type Geom struct {
	Name string
	Type GeomType
	Pos  r3.Vec
	Quat quat.Number
	Size r3.Vec

	// FromTo spans capsule/cylinder geoms between two points when
	// HasFromTo is set; Pos/Quat/Size are ignored for the long axis.
	FromTo    [2]r3.Vec
	HasFromTo bool

	Group       int
	ConType     int
	ConAffinity int
	ConDim      int
	Priority    int

	Mass     float64
	Density  float64
	Friction [3]float64
	SolMix   float64
	SolRef   SolRef
	SolImp   SolImp
	Margin   float64
	Gap      float64

	Material string
	RGBA     [4]float32
}

// Site is a massless attachment frame owned by exactly one body.
type Site struct {
	Name string
	Type GeomType
	Pos  r3.Vec
	Quat quat.Number
	Size r3.Vec

	Group    int
	Material string
	RGBA     [4]float32
}

// Wrap is one element of a tendon path: either a site the tendon passes
// through, or a joint whose value contributes with a coefficient.
type Wrap struct {
	SiteName  string
	JointName string
	Coef      float64
}

// Tendon is an ordered list of wrap points with shared mechanical
// parameters.
type Tendon struct {
	Name  string
	Wraps []Wrap

	Group     int
	Stiffness float64
	Damping   float64
	Width     float64

	Limited        bool
	Range          [2]float64
	Margin         float64
	FrictionLoss   float64
	SolRefLimit    SolRef
	SolImpLimit    SolImp
	SolRefFriction SolRef
	SolImpFriction SolImp

	Material string
	RGBA     [4]float32
}

// WrapSite appends a site wrap point.
func (t *Tendon) WrapSite(name string) {
	t.Wraps = append(t.Wraps, Wrap{SiteName: name})
}

// WrapJoint appends a joint wrap point with the given coefficient.
func (t *Tendon) WrapJoint(name string, coef float64) {
	t.Wraps = append(t.Wraps, Wrap{JointName: name, Coef: coef})
}

// Equality is a soft or hard constraint tying one or two named entities
// together.
type Equality struct {
	Name   string
	Type   EqualityType
	Name1  string
	Name2  string
	Anchor r3.Vec // connect constraints only
	Active bool
	SolRef SolRef
	SolImp SolImp
}

// Exclude disables contact between a pair of named bodies.
type Exclude struct {
	Body1 string
	Body2 string
}

// Bone binds a subset of skin vertices to one body with per-vertex
// weights, at a recorded bind pose.
type Bone struct {
	BodyName   string
	BindPos    r3.Vec
	BindQuat   quat.Number
	VertID     []int
	VertWeight []float32
}

// Skin is a deformable mesh bound to a set of bones.
type Skin struct {
	Name     string
	Material string
	RGBA     [4]float32
	Inflate  float64
	Group    int

	Verts     []r3.Vec
	TexCoords [][2]float32
	Faces     [][3]int
	Bones     []*Bone
}

// Text is a named custom text record.
type Text struct {
	Name string
	Data string
}
