package markup

import (
	"github.com/lattice-sim/lattice"
	"github.com/lattice-sim/lattice/model"
)

// Keyword tables, closed sets checked at read time.

var shapeTable = map[string]int{
	"particle":  int(lattice.ShapeParticle),
	"grid":      int(lattice.ShapeGrid),
	"rope":      int(lattice.ShapeRope),
	"loop":      int(lattice.ShapeLoop),
	"cable":     int(lattice.ShapeCable),
	"cloth":     int(lattice.ShapeCloth),
	"box":       int(lattice.ShapeBox),
	"cylinder":  int(lattice.ShapeCylinder),
	"ellipsoid": int(lattice.ShapeEllipsoid),
}

var curveTable = map[string]int{
	"s":      int(lattice.CurveLine),
	"cos(s)": int(lattice.CurveCos),
	"sin(s)": int(lattice.CurveSin),
	"0":      int(lattice.CurveZero),
}

var initialTable = map[string]int{
	"free": int(lattice.EndFree),
	"ball": int(lattice.EndBall),
	"none": int(lattice.EndNone),
}

var jointKindTable = map[string]int{
	"main":     int(lattice.KindJoint),
	"twist":    int(lattice.KindTwist),
	"stretch":  int(lattice.KindStretch),
	"particle": int(lattice.KindParticle),
}

var tendonKindTable = map[string]int{
	"main":  int(lattice.KindTendon),
	"shear": int(lattice.KindShear),
}

var jointTypeTable = map[string]int{
	"free":  int(model.JointFree),
	"ball":  int(model.JointBall),
	"slide": int(model.JointSlide),
	"hinge": int(model.JointHinge),
}

var geomTypeTable = map[string]int{
	"sphere":    int(model.GeomSphere),
	"capsule":   int(model.GeomCapsule),
	"ellipsoid": int(model.GeomEllipsoid),
	"cylinder":  int(model.GeomCylinder),
	"box":       int(model.GeomBox),
}

var boolTable = map[string]int{
	"false": 0,
	"true":  1,
}
