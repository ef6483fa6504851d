package geometry

import (
	"math"
	"testing"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	expectedMin := NewVector3(-1, 0, 2)
	expectedMax := NewVector3(4, 5, 6)

	if bbox.Min != expectedMin {
		t.Errorf("Min failed: expected %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max != expectedMax {
		t.Errorf("Max failed: expected %v, got %v", expectedMax, bbox.Max)
	}
}

func TestBoundingBoxSize(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(0, 0, 0))
	bbox.Extend(NewVector3(10, 20, 30))

	size := bbox.Size()
	expected := NewVector3(10, 20, 30)

	if size != expected {
		t.Errorf("Size failed: expected %v, got %v", expected, size)
	}
}

func TestBoundingBoxCenter(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(0, 0, 0))
	bbox.Extend(NewVector3(10, 20, 30))

	center := bbox.Center()
	expected := NewVector3(5, 10, 15)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.Empty() {
		t.Error("new bounding box should be empty")
	}

	bbox.Extend(NewVector3(1, 1, 1))
	if bbox.Empty() {
		t.Error("bounding box with a point should not be empty")
	}
}

func TestBoundingBoxScale(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(-1, 0, 1))
	bbox.Extend(NewVector3(1, 2, 3))

	scaled := bbox.Scale(20)
	if scaled.Min != NewVector3(-20, 0, 20) || scaled.Max != NewVector3(20, 40, 60) {
		t.Errorf("Scale failed: got %v - %v", scaled.Min, scaled.Max)
	}
}

func TestBoundingBoxIntersectRay(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(-1, -1, -1))
	bbox.Extend(NewVector3(1, 1, 1))

	dist, ok := bbox.IntersectRay(NewRay(NewVector3(0, 0, 10), NewVector3(0, 0, -1)))
	if !ok {
		t.Fatal("expected ray to hit box")
	}
	if math.Abs(dist-9) > 1e-10 {
		t.Errorf("Distance failed: expected 9, got %v", dist)
	}

	if _, ok := bbox.IntersectRay(NewRay(NewVector3(5, 0, 10), NewVector3(0, 0, -1))); ok {
		t.Error("expected ray beside the box to miss")
	}

	inside, ok := bbox.IntersectRay(NewRay(NewVector3(0, 0, 0), NewVector3(1, 0, 0)))
	if !ok || inside != 0 {
		t.Errorf("expected ray from inside to report 0, got %v (%v)", inside, ok)
	}
}
