package stl

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/philipparndt/gobuilding/pkg/geometry"
)

const asciiQuad = `solid floor
facet normal 0 1 0
  outer loop
    vertex 0 0 0
    vertex 10 0 0
    vertex 10 0 10
  endloop
endfacet
facet normal 0 1 0
  outer loop
    vertex 0 0 0
    vertex 10 0 10
    vertex 0 0 10
  endloop
endfacet
endsolid floor
`

func TestDecodeASCII(t *testing.T) {
	model, err := Decode(bytes.NewReader([]byte(asciiQuad)))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if model.Name != "floor" {
		t.Errorf("Name failed: expected floor, got %q", model.Name)
	}
	if model.TriangleCount() != 2 {
		t.Errorf("TriangleCount failed: expected 2, got %d", model.TriangleCount())
	}

	bbox := model.BoundingBox()
	if bbox.Size() != geometry.NewVector3(10, 0, 10) {
		t.Errorf("BoundingBox failed: got size %v", bbox.Size())
	}
}

func TestDecodeBinary(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	facet := [12]float32{0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 2, 0}
	binary.Write(&buf, binary.LittleEndian, facet)
	binary.Write(&buf, binary.LittleEndian, uint16(0))

	model, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if model.TriangleCount() != 1 {
		t.Fatalf("TriangleCount failed: expected 1, got %d", model.TriangleCount())
	}
	if model.Triangles[0].V2 != geometry.NewVector3(2, 0, 0) {
		t.Errorf("V2 failed: got %v", model.Triangles[0].V2)
	}
}

func TestDecodeTruncatedBinary(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("garbage"))); err == nil {
		t.Error("expected error for truncated binary data")
	}
}

func TestModelRaycast(t *testing.T) {
	model, err := Decode(bytes.NewReader([]byte(asciiQuad)))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	hit, ok := model.Raycast(geometry.NewRay(geometry.NewVector3(2, 5, 3), geometry.NewVector3(0, -1, 0)))
	if !ok {
		t.Fatal("expected ray to hit the floor")
	}
	if math.Abs(hit.Distance-5) > 1e-10 {
		t.Errorf("Distance failed: expected 5, got %v", hit.Distance)
	}

	if _, ok := model.Raycast(geometry.NewRay(geometry.NewVector3(20, 5, 3), geometry.NewVector3(0, -1, 0))); ok {
		t.Error("expected ray beside the floor to miss")
	}
}

func TestModelRaycastScaled(t *testing.T) {
	model, err := Decode(bytes.NewReader([]byte(asciiQuad)))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	// drawn at scale 20 the quad spans 0..200 on x and z
	hit, ok := model.RaycastScaled(geometry.NewRay(geometry.NewVector3(150, 40, 60), geometry.NewVector3(0, -1, 0)), 20)
	if !ok {
		t.Fatal("expected ray to hit the scaled floor")
	}
	if math.Abs(hit.Distance-40) > 1e-9 {
		t.Errorf("Distance failed: expected 40, got %v", hit.Distance)
	}
	if hit.Point.Distance(geometry.NewVector3(150, 0, 60)) > 1e-9 {
		t.Errorf("Point failed: expected (150, 0, 60), got %v", hit.Point)
	}

	if _, ok := model.Raycast(geometry.NewRay(geometry.NewVector3(150, 40, 60), geometry.NewVector3(0, -1, 0))); ok {
		t.Error("expected unscaled model to miss")
	}
}
