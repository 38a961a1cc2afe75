package geom

import (
	"fmt"
	"math"
)

// Rectangle returns the counterclockwise corners of a w x h box with its
// lower-left corner at the origin.
func Rectangle(w, h float64) []Vector2D {
	return []Vector2D{
		{X: 0, Y: 0},
		{X: w, Y: 0},
		{X: w, Y: h},
		{X: 0, Y: h},
	}
}

// RegularPolygon approximates a circle of the given radius with n vertices,
// counterclockwise, starting at angle 0.
func RegularPolygon(center Vector2D, radius float64, n int) []Vector2D {
	if n < MinVertices {
		panic(fmt.Sprintf("geom: regular polygon needs at least %d sides, got %d", MinVertices, n))
	}
	points := make([]Vector2D, n)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points[i] = center.Add(FromPolar(radius, angle))
	}
	return points
}

// Translated returns a copy of points moved by dv.
func Translated(points []Vector2D, dv Vector2D) []Vector2D {
	out := make([]Vector2D, len(points))
	for i, p := range points {
		out[i] = p.Add(dv)
	}
	return out
}
