// Package analysis summarizes triangle models for listings and the HUD.
package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/gobuilding/pkg/geometry"
	"github.com/philipparndt/gobuilding/pkg/stl"
)

// Summary describes the extent and density of a model
type Summary struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// Summarize measures model. Edge statistics are zero for an empty model.
func Summarize(model *stl.Model) Summary {
	s := Summary{
		BoundingBox:   model.BoundingBox(),
		TriangleCount: model.TriangleCount(),
	}
	if s.TriangleCount == 0 {
		return s
	}
	s.Dimensions = s.BoundingBox.Size()

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, triangle := range model.Triangles {
		s.SurfaceArea += triangle.Area()
		for _, length := range [3]float64{
			triangle.V1.Distance(triangle.V2),
			triangle.V2.Distance(triangle.V3),
			triangle.V3.Distance(triangle.V1),
		} {
			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
		}
	}

	s.MinEdgeLength = minLength
	s.MaxEdgeLength = maxLength
	s.AvgEdgeLength = totalLength / float64(3*s.TriangleCount)
	return s
}

// FormatDimensions formats the size as W x H x D
func FormatDimensions(v geometry.Vector3) string {
	return fmt.Sprintf("%.2f x %.2f x %.2f", v.X, v.Y, v.Z)
}
