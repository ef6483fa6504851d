package stl

import (
	"github.com/philipparndt/gobuilding/pkg/geometry"
)

// Model is a decoded STL asset
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// Raycast returns the nearest surface hit. The bounding box is tested
// first so rays missing the model skip the triangle loop.
func (m *Model) Raycast(ray geometry.Ray) (geometry.Hit, bool) {
	if _, ok := m.BoundingBox().IntersectRay(ray); !ok {
		return geometry.Hit{}, false
	}
	return geometry.IntersectTriangles(ray, m.Triangles)
}

// RaycastScaled hits the model as drawn with a uniform scale. The returned
// point and distance are in the scaled space.
func (m *Model) RaycastScaled(ray geometry.Ray, scale float64) (geometry.Hit, bool) {
	local := geometry.Ray{Origin: ray.Origin.Mul(1 / scale), Direction: ray.Direction}
	hit, ok := m.Raycast(local)
	if !ok {
		return hit, false
	}
	hit.Point = hit.Point.Mul(scale)
	hit.Distance *= scale
	return hit, true
}
