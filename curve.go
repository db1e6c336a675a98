package lattice

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// minVal is the smallest meaningful squared length; anything below is
// treated as zero.
const minVal = 1e-15

// sampleCurve evaluates one curve generator at lattice index ix of n
// samples. The arc parameter runs over [0, n-1]; size carries the ramp
// extent (size[0]) and the amplitude/frequency pair (size[1], size[2]).
func sampleCurve(kind CurveKind, ix, n int, size [3]float64) float64 {
	s := float64(ix) / float64(n-1)
	switch kind {
	case CurveLine:
		return s * size[0]
	case CurveCos:
		return size[1] * math.Cos(math.Pi*s*size[2])
	case CurveSin:
		return size[1] * math.Sin(math.Pi*s*size[2])
	case CurveZero:
		return 0
	}
	panic("lattice: invalid curve kind") // unreachable after validation
}

// Frame is a moving orthonormal frame along a polyline: the local x axis
// follows the segment tangent, the y axis follows the transported normal.
// Transporting the whole frame, not just the tangent, keeps twist from
// accumulating along the curve.
type Frame struct {
	Tangent r3.Vec
	Normal  r3.Vec
	Quat    quat.Number
}

// NewFrame builds the frame of the first segment. The normal hint is
// projected into the plane orthogonal to the tangent; length is the
// segment length.
func NewFrame(edge, normalHint r3.Vec) (Frame, float64) {
	length := r3.Norm(edge)
	return frameFromTangent(r3.Unit(edge), normalHint), length
}

// Transport advances the frame across the next segment by the minimal
// rotation between consecutive tangents (discrete parallel transport).
func (f Frame) Transport(edge r3.Vec) (Frame, float64) {
	length := r3.Norm(edge)
	t := r3.Unit(edge)
	rot := minimalRotation(f.Tangent, t)
	n := rot.Rotate(f.Normal)
	return frameFromTangent(t, n), length
}

func frameFromTangent(t, normalHint r3.Vec) Frame {
	n := r3.Sub(normalHint, r3.Scale(r3.Dot(t, normalHint), t))
	if r3.Norm2(n) < minVal {
		n = anyPerpendicular(t)
	} else {
		n = r3.Unit(n)
	}
	return Frame{Tangent: t, Normal: n, Quat: quatFromAxes(t, n)}
}

// minimalRotation returns the shortest-arc rotation taking unit vector a
// onto unit vector b.
func minimalRotation(a, b r3.Vec) r3.Rotation {
	axis := r3.Cross(a, b)
	s := r3.Norm(axis)
	c := r3.Dot(a, b)
	if s*s < minVal {
		if c > 0 {
			return r3.NewRotation(0, r3.Vec{X: 1})
		}
		// Antiparallel: half turn about any perpendicular axis.
		return r3.NewRotation(math.Pi, anyPerpendicular(a))
	}
	return r3.NewRotation(math.Atan2(s, c), axis)
}

// anyPerpendicular returns a unit vector orthogonal to t.
func anyPerpendicular(t r3.Vec) r3.Vec {
	ref := r3.Vec{Y: 1}
	if math.Abs(t.Y) > math.Abs(t.X) && math.Abs(t.Y) > math.Abs(t.Z) {
		ref = r3.Vec{Z: 1}
	}
	return r3.Unit(r3.Cross(t, ref))
}

// quatFromAxes builds the orientation whose local x and y axes map onto
// the given orthonormal vectors.
func quatFromAxes(x, y r3.Vec) quat.Number {
	z := r3.Cross(x, y)
	return matToQuat(x, y, z)
}

// matToQuat converts a rotation matrix given by columns to a unit
// quaternion (Shepperd's method).
func matToQuat(c0, c1, c2 r3.Vec) quat.Number {
	m00, m01, m02 := c0.X, c1.X, c2.X
	m10, m11, m12 := c0.Y, c1.Y, c2.Y
	m20, m21, m22 := c0.Z, c1.Z, c2.Z
	tr := m00 + m11 + m22
	var q quat.Number
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q = quat.Number{
			Real: s / 4,
			Imag: (m21 - m12) / s,
			Jmag: (m02 - m20) / s,
			Kmag: (m10 - m01) / s,
		}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q = quat.Number{
			Real: (m21 - m12) / s,
			Imag: s / 4,
			Jmag: (m01 + m10) / s,
			Kmag: (m02 + m20) / s,
		}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q = quat.Number{
			Real: (m02 - m20) / s,
			Imag: (m01 + m10) / s,
			Jmag: s / 4,
			Kmag: (m12 + m21) / s,
		}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q = quat.Number{
			Real: (m10 - m01) / s,
			Imag: (m02 + m20) / s,
			Jmag: (m12 + m21) / s,
			Kmag: s / 4,
		}
	}
	return canonicalQuat(q)
}

// canonicalQuat normalizes and fixes the sign so the scalar part is
// non-negative, giving a unique representation per rotation.
func canonicalQuat(q quat.Number) quat.Number {
	n := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if n < minVal {
		return quat.Number{Real: 1}
	}
	q = quat.Scale(1/n, q)
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	return q
}

// zToQuat returns the orientation rotating the z axis onto dir by the
// shortest arc. Used to point shell bodies outward.
func zToQuat(dir r3.Vec) quat.Number {
	if r3.Norm2(dir) < minVal {
		return quat.Number{Real: 1}
	}
	rot := minimalRotation(r3.Vec{Z: 1}, r3.Unit(dir))
	return canonicalQuat(quat.Number(rot))
}

// rotate applies q to v.
func rotate(q quat.Number, v r3.Vec) r3.Vec {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	p = quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vec{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}
