package geom

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func nearVec(a, b Vector2D) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func TestVectorArithmetic(t *testing.T) {
	a := NewVector2D(3, 4)
	b := NewVector2D(-1, 2)

	tests := []struct {
		name string
		got  Vector2D
		want Vector2D
	}{
		{"add", a.Add(b), Vector2D{2, 6}},
		{"sub", a.Sub(b), Vector2D{4, 2}},
		{"negate", a.Negate(), Vector2D{-3, -4}},
		{"scale", a.Scale(0.5), Vector2D{1.5, 2}},
		{"rotate quarter", Vector2D{1, 0}.Rotate(math.Pi / 2), Vector2D{0, 1}},
		{"rotate half", Vector2D{1, 0}.Rotate(math.Pi), Vector2D{-1, 0}},
		{"perpendicular", a.Perpendicular(), Vector2D{-4, 3}},
		{"polar", FromPolar(2, math.Pi/2), Vector2D{0, 2}},
		{"normalize", a.Normalize(), Vector2D{0.6, 0.8}},
		{"normalize zero", Zero.Normalize(), Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !nearVec(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if got := a.Dot(b); got != 5 {
		t.Errorf("Dot = %v, want 5", got)
	}
	if got := a.Cross(b); got != 10 {
		t.Errorf("Cross = %v, want 10", got)
	}
	if got := a.Magnitude(); got != 5 {
		t.Errorf("Magnitude = %v, want 5", got)
	}
	if got := a.Distance(b); !near(got, math.Sqrt(20)) {
		t.Errorf("Distance = %v, want sqrt(20)", got)
	}
}

func TestVectorIsFinite(t *testing.T) {
	if !NewVector2D(1, 2).IsFinite() {
		t.Error("expected finite vector")
	}
	if NewVector2D(math.Inf(1), 0).IsFinite() {
		t.Error("expected +Inf to be non-finite")
	}
	if NewVector2D(0, math.NaN()).IsFinite() {
		t.Error("expected NaN to be non-finite")
	}
}

func TestPolygonAreaAndCentroid(t *testing.T) {
	tests := []struct {
		name     string
		vertices []Vector2D
		area     float64
		centroid Vector2D
	}{
		{"unit square", Rectangle(1, 1), 1, Vector2D{0.5, 0.5}},
		{"wide box", Translated(Rectangle(4, 2), Vector2D{10, -3}), 8, Vector2D{12, -2}},
		{"triangle", []Vector2D{{0, 0}, {3, 0}, {0, 3}}, 4.5, Vector2D{1, 1}},
		{"clockwise square", []Vector2D{{0, 0}, {0, 2}, {2, 2}, {2, 0}}, 4, Vector2D{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPolygon(tt.vertices, Zero, 0, colorful.Color{})
			if !near(p.Area(), tt.area) {
				t.Errorf("Area = %v, want %v", p.Area(), tt.area)
			}
			if !nearVec(p.Centroid(), tt.centroid) {
				t.Errorf("Centroid = %v, want %v", p.Centroid(), tt.centroid)
			}
		})
	}
}

func TestPolygonTranslateRecomputesCentroid(t *testing.T) {
	p := NewPolygon(Rectangle(2, 2), Zero, 0, colorful.Color{})
	p.Translate(Vector2D{5, 7})

	if !nearVec(p.Centroid(), Vector2D{6, 8}) {
		t.Errorf("Centroid = %v, want (6, 8)", p.Centroid())
	}
	if got := p.Vertex(0); !nearVec(got, Vector2D{5, 7}) {
		t.Errorf("first vertex = %v, want (5, 7)", got)
	}
}

func TestPolygonRotateAboutPivot(t *testing.T) {
	p := NewPolygon(Rectangle(2, 2), Zero, 0, colorful.Color{})
	pivot := Vector2D{0, 0}
	before := p.Vertices()

	p.Rotate(math.Pi/2, pivot)

	after := p.Vertices()
	for i := range before {
		if !near(before[i].Distance(pivot), after[i].Distance(pivot)) {
			t.Errorf("vertex %d changed distance to pivot", i)
		}
	}
	if !nearVec(p.Centroid(), Vector2D{-1, 1}) {
		t.Errorf("Centroid = %v, want (-1, 1)", p.Centroid())
	}
}

func TestPolygonRotateAboutCentroidKeepsCentroid(t *testing.T) {
	p := NewPolygon(RegularPolygon(Vector2D{3, 4}, 2, 6), Zero, 0, colorful.Color{})
	c := p.Centroid()
	p.Rotate(0.7, c)
	if !nearVec(p.Centroid(), c) {
		t.Errorf("Centroid moved from %v to %v", c, p.Centroid())
	}
}

func TestPolygonVerticesIsCopy(t *testing.T) {
	p := NewPolygon(Rectangle(1, 1), Zero, 0, colorful.Color{})
	vs := p.Vertices()
	vs[0] = Vector2D{100, 100}
	if p.Vertex(0) == vs[0] {
		t.Error("mutating Vertices() result changed the polygon")
	}
}

func TestPolygonSetCentroidOnlyTouchesCache(t *testing.T) {
	p := NewPolygon(Rectangle(1, 1), Zero, 0, colorful.Color{})
	p.SetCentroid(Vector2D{9, 9})
	if p.Centroid() != (Vector2D{9, 9}) {
		t.Errorf("Centroid = %v, want (9, 9)", p.Centroid())
	}
	if p.Vertex(2) != (Vector2D{1, 1}) {
		t.Errorf("vertex moved to %v", p.Vertex(2))
	}
}

func TestPolygonProjectAndContains(t *testing.T) {
	p := NewPolygon(Translated(Rectangle(2, 1), Vector2D{1, 1}), Zero, 0, colorful.Color{})

	lo, hi := p.Project(Vector2D{1, 0})
	if lo != 1 || hi != 3 {
		t.Errorf("Project x = [%v, %v], want [1, 3]", lo, hi)
	}

	tests := []struct {
		point Vector2D
		want  bool
	}{
		{Vector2D{2, 1.5}, true},
		{Vector2D{1, 1}, true},
		{Vector2D{0.5, 1.5}, false},
		{Vector2D{2, 3}, false},
	}
	for _, tt := range tests {
		if got := p.Contains(tt.point); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.point, got, tt.want)
		}
	}
}

func TestRegularPolygonBoundingRadius(t *testing.T) {
	p := NewPolygon(RegularPolygon(Vector2D{10, 10}, 5, 8), Zero, 0, colorful.Color{})
	if !nearVec(p.Centroid(), Vector2D{10, 10}) {
		t.Errorf("Centroid = %v, want (10, 10)", p.Centroid())
	}
	if !near(p.BoundingRadius(), 5) {
		t.Errorf("BoundingRadius = %v, want 5", p.BoundingRadius())
	}
}

func TestNewPolygonPanicsOnTooFewVertices(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a two-vertex polygon")
		}
	}()
	NewPolygon([]Vector2D{{0, 0}, {1, 1}}, Zero, 0, colorful.Color{})
}
