package lattice

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lattice-sim/lattice/internal/d3"
)

func TestFrameStraightLine(t *testing.T) {
	edge := r3.Vec{X: 0.25}
	f, length := NewFrame(edge, r3.Vec{Y: 1})
	if math.Abs(length-0.25) > 1e-12 {
		t.Errorf("length = %g, want 0.25", length)
	}
	if math.Abs(f.Quat.Real-1) > 1e-12 {
		t.Errorf("first frame quat = %v, want identity", f.Quat)
	}

	// Transport along the same direction changes nothing.
	f2, _ := f.Transport(edge)
	if !d3.EqualWithin(f2.Tangent, f.Tangent, 1e-12) ||
		!d3.EqualWithin(f2.Normal, f.Normal, 1e-12) {
		t.Errorf("transported frame drifted: %+v", f2)
	}
}

func TestFrameTransportNoTwist(t *testing.T) {
	// A quarter turn in the xz plane keeps the y normal fixed.
	f, _ := NewFrame(r3.Vec{X: 1}, r3.Vec{Y: 1})
	f2, _ := f.Transport(r3.Vec{Z: 1})
	if !d3.EqualWithin(f2.Tangent, r3.Vec{Z: 1}, 1e-12) {
		t.Errorf("tangent = %v, want z", f2.Tangent)
	}
	if !d3.EqualWithin(f2.Normal, r3.Vec{Y: 1}, 1e-12) {
		t.Errorf("normal = %v, want y", f2.Normal)
	}
}

func TestFrameOrthonormal(t *testing.T) {
	f, _ := NewFrame(r3.Vec{X: 1, Y: 2, Z: -0.5}, r3.Vec{Y: 1})
	if math.Abs(r3.Dot(f.Tangent, f.Normal)) > 1e-12 {
		t.Errorf("tangent and normal not orthogonal: %+v", f)
	}
	if math.Abs(r3.Norm(f.Tangent)-1) > 1e-12 || math.Abs(r3.Norm(f.Normal)-1) > 1e-12 {
		t.Errorf("frame axes not unit length: %+v", f)
	}
	// The quaternion maps local x onto the tangent.
	if got := rotate(f.Quat, r3.Vec{X: 1}); !d3.EqualWithin(got, f.Tangent, 1e-9) {
		t.Errorf("quat x image = %v, want %v", got, f.Tangent)
	}
}

func TestMinimalRotationAntiparallel(t *testing.T) {
	a := r3.Vec{X: 1}
	rot := minimalRotation(a, r3.Vec{X: -1})
	got := rot.Rotate(a)
	if !d3.EqualWithin(got, r3.Vec{X: -1}, 1e-12) {
		t.Errorf("rotated = %v, want -x", got)
	}
}

func TestCanonicalQuat(t *testing.T) {
	q := canonicalQuat(quat.Number{Real: -2})
	if q.Real != 1 {
		t.Errorf("canonical(-2) = %v, want identity", q)
	}
	q = canonicalQuat(quat.Number{})
	if q.Real != 1 {
		t.Errorf("canonical(0) = %v, want identity", q)
	}
	q = canonicalQuat(quat.Number{Real: -1, Imag: 1})
	if q.Real < 0 {
		t.Errorf("canonical sign not fixed: %v", q)
	}
	n := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if math.Abs(n-1) > 1e-12 {
		t.Errorf("canonical norm = %g, want 1", n)
	}
}

func TestZToQuat(t *testing.T) {
	for _, dir := range []r3.Vec{
		{X: 1}, {Y: -1}, {Z: 1}, {Z: -1}, {X: 1, Y: 1, Z: 1},
	} {
		q := zToQuat(dir)
		got := rotate(q, r3.Vec{Z: 1})
		if !d3.EqualWithin(got, r3.Unit(dir), 1e-9) {
			t.Errorf("zToQuat(%v) maps z to %v", dir, got)
		}
	}
	if q := zToQuat(r3.Vec{}); q.Real != 1 {
		t.Errorf("zToQuat(0) = %v, want identity", q)
	}
}
