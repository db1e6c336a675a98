package model

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	zAxis          = r3.Vec{Z: 1}
	sphereSiteSize = r3.Vec{X: 0.005, Y: 0.005, Z: 0.005}
)

// Engine-wide default solver parameters.

// DefaultSolRef returns the default constraint reference parameters.
func DefaultSolRef() SolRef { return SolRef{0.02, 1} }

// DefaultSolImp returns the default constraint impedance parameters.
func DefaultSolImp() SolImp { return SolImp{0.9, 0.95, 0.001, 0.5, 2} }

// QuatIdentity returns the identity orientation.
func QuatIdentity() quat.Number { return quat.Number{Real: 1} }

// DefaultGeom returns the geom template all generated geoms start from.
func DefaultGeom() Geom {
	return Geom{
		Type:        GeomSphere,
		Quat:        QuatIdentity(),
		ConType:     1,
		ConAffinity: 1,
		ConDim:      3,
		Density:     1000,
		Friction:    [3]float64{1, 0.005, 0.0001},
		SolMix:      1,
		SolRef:      DefaultSolRef(),
		SolImp:      DefaultSolImp(),
		RGBA:        [4]float32{0.5, 0.5, 0.5, 1},
	}
}

// DefaultJoint returns the joint template all generated joints start from.
func DefaultJoint() Joint {
	return Joint{
		Type:        JointHinge,
		Axis:        zAxis,
		SolRefLimit: DefaultSolRef(),
		SolImpLimit: DefaultSolImp(),
		SolRefFriction: DefaultSolRef(),
		SolImpFriction: DefaultSolImp(),
	}
}

// DefaultSite returns the site template.
func DefaultSite() Site {
	return Site{
		Type: GeomSphere,
		Quat: QuatIdentity(),
		Size: sphereSiteSize,
		RGBA: [4]float32{0.5, 0.5, 0.5, 1},
	}
}

// DefaultTendon returns the tendon template.
func DefaultTendon() Tendon {
	return Tendon{
		Width:          0.003,
		SolRefLimit:    DefaultSolRef(),
		SolImpLimit:    DefaultSolImp(),
		SolRefFriction: DefaultSolRef(),
		SolImpFriction: DefaultSolImp(),
		RGBA:           [4]float32{0.5, 0.5, 0.5, 1},
	}
}

// DefaultEquality returns the equality constraint template.
func DefaultEquality() Equality {
	return Equality{
		Active: true,
		SolRef: DefaultSolRef(),
		SolImp: DefaultSolImp(),
	}
}
