package geometry

import "math"

const epsilon = 1e-9

// Ray is a half-line cast from the camera through a screen position.
type Ray struct {
	Origin    Vector3
	Direction Vector3 // unit length
}

// NewRay creates a ray with a normalized direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance d along the ray
func (r Ray) At(d float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(d))
}

// Hit is a single ray intersection
type Hit struct {
	Point    Vector3
	Normal   Vector3
	Distance float64
}

// Nearest keeps whichever of the two hits is closer along the ray.
func Nearest(best Hit, found bool, candidate Hit) (Hit, bool) {
	if !found || candidate.Distance < best.Distance {
		return candidate, true
	}
	return best, true
}

// IntersectSphere returns the nearest intersection of the ray with a sphere.
// A ray starting inside the sphere hits the far side.
func IntersectSphere(ray Ray, center Vector3, radius float64) (Hit, bool) {
	oc := ray.Origin.Sub(center)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return Hit{}, false
	}

	sq := math.Sqrt(disc)
	dist := -b - sq
	if dist < 0 {
		dist = -b + sq
	}
	if dist < 0 {
		return Hit{}, false
	}

	point := ray.At(dist)
	return Hit{
		Point:    point,
		Normal:   point.Sub(center).Normalize(),
		Distance: dist,
	}, true
}

// IntersectTriangles returns the nearest hit against a triangle soup
func IntersectTriangles(ray Ray, triangles []Triangle) (Hit, bool) {
	var best Hit
	found := false
	for _, tri := range triangles {
		if hit, ok := tri.IntersectRay(ray); ok {
			best, found = Nearest(best, found, hit)
		}
	}
	return best, found
}
