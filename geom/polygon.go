package geom

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MinVertices is the smallest vertex count a Polygon accepts.
const MinVertices = 3

// Polygon is a convex vertex list with a cached centroid, a velocity, a
// rotation speed and a color. Vertices are expected in counterclockwise order.
type Polygon struct {
	vertices      []Vector2D
	velocity      Vector2D
	rotationSpeed float64
	color         colorful.Color
	centroid      Vector2D
}

// NewPolygon copies vertices into a new polygon. It panics when fewer than
// MinVertices are given.
func NewPolygon(vertices []Vector2D, velocity Vector2D, rotationSpeed float64, color colorful.Color) *Polygon {
	if len(vertices) < MinVertices {
		panic(fmt.Sprintf("geom: polygon needs at least %d vertices, got %d", MinVertices, len(vertices)))
	}
	p := &Polygon{
		vertices:      append([]Vector2D(nil), vertices...),
		velocity:      velocity,
		rotationSpeed: rotationSpeed,
		color:         color,
	}
	p.centroid = p.computeCentroid()
	return p
}

// Vertices returns a copy of the vertex list.
func (p *Polygon) Vertices() []Vector2D {
	return append([]Vector2D(nil), p.vertices...)
}

func (p *Polygon) Len() int {
	return len(p.vertices)
}

// Vertex returns the i-th vertex, wrapping around the end of the list.
func (p *Polygon) Vertex(i int) Vector2D {
	return p.vertices[i%len(p.vertices)]
}

// Area uses the shoelace formula.
func (p *Polygon) Area() float64 {
	return math.Abs(signedArea(p.vertices))
}

// Centroid returns the cached centroid.
func (p *Polygon) Centroid() Vector2D {
	return p.centroid
}

// SetCentroid overwrites the cached centroid without moving any vertex.
func (p *Polygon) SetCentroid(c Vector2D) {
	p.centroid = c
}

func (p *Polygon) computeCentroid() Vector2D {
	area := signedArea(p.vertices)
	n := len(p.vertices)
	var cx, cy float64
	for i := 0; i < n; i++ {
		a := p.vertices[i]
		b := p.vertices[(i+1)%n]
		cross := a.X*b.Y - b.X*a.Y
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	return Vector2D{X: cx / (6 * area), Y: cy / (6 * area)}
}

// Translate moves every vertex by dv and recomputes the centroid.
func (p *Polygon) Translate(dv Vector2D) {
	for i := range p.vertices {
		p.vertices[i] = p.vertices[i].Add(dv)
	}
	p.centroid = p.computeCentroid()
}

// Rotate turns every vertex by angle radians about pivot and recomputes the
// centroid.
func (p *Polygon) Rotate(angle float64, pivot Vector2D) {
	for i, v := range p.vertices {
		p.vertices[i] = v.Sub(pivot).Rotate(angle).Add(pivot)
	}
	p.centroid = p.computeCentroid()
}

func (p *Polygon) Velocity() Vector2D {
	return p.velocity
}

func (p *Polygon) SetVelocity(v Vector2D) {
	p.velocity = v
}

func (p *Polygon) RotationSpeed() float64 {
	return p.rotationSpeed
}

func (p *Polygon) SetRotationSpeed(speed float64) {
	p.rotationSpeed = speed
}

func (p *Polygon) Color() colorful.Color {
	return p.color
}

func (p *Polygon) SetColor(c colorful.Color) {
	p.color = c
}

// Project returns the [min, max] interval of the vertices projected on axis.
func (p *Polygon) Project(axis Vector2D) (lo, hi float64) {
	return ProjectPoints(p.vertices, axis)
}

// BoundingRadius is the largest distance from the centroid to a vertex.
func (p *Polygon) BoundingRadius() float64 {
	var r float64
	for _, v := range p.vertices {
		r = math.Max(r, v.Distance(p.centroid))
	}
	return r
}

// Contains reports whether point lies inside or on the polygon. Only valid
// for convex polygons in either winding.
func (p *Polygon) Contains(point Vector2D) bool {
	n := len(p.vertices)
	var pos, neg bool
	for i := 0; i < n; i++ {
		a := p.vertices[i]
		b := p.vertices[(i+1)%n]
		c := b.Sub(a).Cross(point.Sub(a))
		if c > 0 {
			pos = true
		} else if c < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

// ProjectPoints returns the [min, max] interval of points projected on axis.
func ProjectPoints(points []Vector2D, axis Vector2D) (lo, hi float64) {
	lo, hi = math.MaxFloat64, -math.MaxFloat64
	for _, v := range points {
		d := v.Dot(axis)
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}

func signedArea(vertices []Vector2D) float64 {
	n := len(vertices)
	var sum float64
	for i := 0; i < n; i++ {
		a := vertices[i]
		b := vertices[(i+1)%n]
		sum += (b.X + a.X) * (b.Y - a.Y)
	}
	return 0.5 * sum
}
