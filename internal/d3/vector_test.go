package d3

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestElemwise(t *testing.T) {
	a := r3.Vec{X: 1, Y: -2, Z: 0.5}
	b := r3.Vec{X: -1, Y: 3, Z: 0.5}

	if got := MinElem(a, b); got != (r3.Vec{X: -1, Y: -2, Z: 0.5}) {
		t.Errorf("MinElem = %v", got)
	}
	if got := MaxElem(a, b); got != (r3.Vec{X: 1, Y: 3, Z: 0.5}) {
		t.Errorf("MaxElem = %v", got)
	}
	if got := AbsElem(a); got != (r3.Vec{X: 1, Y: 2, Z: 0.5}) {
		t.Errorf("AbsElem = %v", got)
	}
	if got := MulElem(a, b); got != (r3.Vec{X: -1, Y: -6, Z: 0.25}) {
		t.Errorf("MulElem = %v", got)
	}
	if got := Max(a); got != 1 {
		t.Errorf("Max = %v", got)
	}
	if got := Min(a); got != -2 {
		t.Errorf("Min = %v", got)
	}
	if got := Elem(2); got != (r3.Vec{X: 2, Y: 2, Z: 2}) {
		t.Errorf("Elem = %v", got)
	}
}

func TestEqualWithin(t *testing.T) {
	a := r3.Vec{X: 1, Y: 2, Z: 3}
	if !EqualWithin(a, r3.Vec{X: 1 + 1e-10, Y: 2, Z: 3}, 1e-9) {
		t.Error("vectors within tolerance reported unequal")
	}
	if EqualWithin(a, r3.Vec{X: 1.1, Y: 2, Z: 3}, 1e-9) {
		t.Error("distant vectors reported equal")
	}
}

func TestSetBounds(t *testing.T) {
	s := Set{{X: 1, Y: -1}, {X: -2, Z: 3}, {Y: 4}}
	if got := s.Min(); got != (r3.Vec{X: -2, Y: -1, Z: 0}) {
		t.Errorf("Min = %v", got)
	}
	if got := s.Max(); got != (r3.Vec{X: 1, Y: 4, Z: 3}) {
		t.Errorf("Max = %v", got)
	}
}
