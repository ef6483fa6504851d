package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	v1 := NewVector3(5, 7, 9)
	v2 := NewVector3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3Distance(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(3, 4, 0)
	distance := v1.Distance(v2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVector3Normalize(t *testing.T) {
	v := NewVector3(3, 4, 0)
	normalized := v.Normalize()

	expectedLength := 1.0
	actualLength := normalized.Length()

	if math.Abs(actualLength-expectedLength) > 1e-10 {
		t.Errorf("Normalize failed: expected length %v, got %v", expectedLength, actualLength)
	}
}

func TestVector3Cross(t *testing.T) {
	v1 := NewVector3(1, 0, 0)
	v2 := NewVector3(0, 1, 0)
	result := v1.Cross(v2)

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Dot(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Dot(v2)

	expected := 32.0 // 1*4 + 2*5 + 3*6 = 32
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestVector3FromSlice(t *testing.T) {
	v, err := Vector3FromSlice([]float64{1, -2, 3.5})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if expected := NewVector3(1, -2, 3.5); v != expected {
		t.Errorf("FromSlice failed: expected %v, got %v", expected, v)
	}

	for _, bad := range [][]float64{nil, {1, 2}, {1, 2, 3, 4}} {
		if _, err := Vector3FromSlice(bad); err == nil {
			t.Errorf("FromSlice(%v): expected an error", bad)
		}
	}
}

func TestVector3Array(t *testing.T) {
	v := NewVector3(1.5, 2, -3)
	if got := v.Array(); got != [3]float64{1.5, 2, -3} {
		t.Errorf("Array failed: got %v", got)
	}

	a := v.Array()
	back, err := Vector3FromSlice(a[:])
	if err != nil || back != v {
		t.Errorf("Array round trip failed: got %v, %v", back, err)
	}
}

func TestVector3String(t *testing.T) {
	if got := NewVector3(1, 2.346, -0.5).String(); got != "(1.00, 2.35, -0.50)" {
		t.Errorf("String failed: got %q", got)
	}
}

func TestVector3MinMax(t *testing.T) {
	a := NewVector3(1, 5, -2)
	b := NewVector3(3, -1, 0)

	if got := a.Min(b); got != NewVector3(1, -1, -2) {
		t.Errorf("Min failed: got %v", got)
	}
	if got := a.Max(b); got != NewVector3(3, 5, 0) {
		t.Errorf("Max failed: got %v", got)
	}
	if got := a.MaxComponent(); got != 5 {
		t.Errorf("MaxComponent failed: expected 5, got %v", got)
	}
}
