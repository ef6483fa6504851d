package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	// Create a right triangle with sides 3, 4, 5
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	area := tri.Area()
	expected := 6.0 // (3 * 4) / 2 = 6

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Center()
	expected := NewVector3(1, 1, 0)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestTriangleIntersectRay(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(4, 0, 0),
		NewVector3(0, 4, 0),
	)

	ray := NewRay(NewVector3(1, 1, 5), NewVector3(0, 0, -1))
	hit, ok := tri.IntersectRay(ray)
	if !ok {
		t.Fatal("expected ray to hit triangle")
	}
	if math.Abs(hit.Distance-5) > 1e-10 {
		t.Errorf("Distance failed: expected 5, got %v", hit.Distance)
	}
	if hit.Point.Distance(NewVector3(1, 1, 0)) > 1e-10 {
		t.Errorf("Point failed: expected (1, 1, 0), got %v", hit.Point)
	}

	// Back face is hit as well
	back := NewRay(NewVector3(1, 1, -5), NewVector3(0, 0, 1))
	if _, ok := tri.IntersectRay(back); !ok {
		t.Error("expected ray from below to hit triangle")
	}
}

func TestTriangleIntersectRayMiss(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(4, 0, 0),
		NewVector3(0, 4, 0),
	)

	outside := NewRay(NewVector3(5, 5, 5), NewVector3(0, 0, -1))
	if _, ok := tri.IntersectRay(outside); ok {
		t.Error("expected ray outside the triangle to miss")
	}

	behind := NewRay(NewVector3(1, 1, 5), NewVector3(0, 0, 1))
	if _, ok := tri.IntersectRay(behind); ok {
		t.Error("expected triangle behind the ray origin to miss")
	}

	parallel := NewRay(NewVector3(1, 1, 1), NewVector3(1, 0, 0))
	if _, ok := tri.IntersectRay(parallel); ok {
		t.Error("expected parallel ray to miss")
	}
}
