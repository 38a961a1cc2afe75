package physics

import (
	"math"
	"testing"

	"github.com/0x5844/arcade-physics/geom"
)

func square(x, y, size float64) []geom.Vector2D {
	return geom.Translated(geom.Rectangle(size, size), geom.NewVector2D(x, y))
}

func TestDetectCollision(t *testing.T) {
	tests := []struct {
		name string
		a, b []geom.Vector2D
		want bool
	}{
		{"overlapping squares", square(0, 0, 10), square(5, 5, 10), true},
		{"contained", square(0, 0, 10), square(2, 2, 2), true},
		{"separated on x", square(0, 0, 10), square(20, 0, 10), false},
		{"separated on y", square(0, 0, 10), square(0, 10.5, 10), false},
		{"touching edges", square(0, 0, 10), square(10, 0, 10), true},
		{"triangle near square corner", square(0, 0, 10), []geom.Vector2D{{X: 12, Y: 12}, {X: 20, Y: 12}, {X: 12, Y: 20}}, false},
		{"hexagon inside square", square(0, 0, 10), geom.RegularPolygon(geom.NewVector2D(5, 5), 3, 6), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := DetectCollision(tt.a, tt.b)
			ba := DetectCollision(tt.b, tt.a)
			if ab.Collided != tt.want {
				t.Errorf("DetectCollision(a, b) = %v, want %v", ab.Collided, tt.want)
			}
			if ab.Collided != ba.Collided {
				t.Errorf("asymmetric result: a,b=%v b,a=%v", ab.Collided, ba.Collided)
			}
			if ab.Collided && math.Abs(ab.Axis.Magnitude()-1) > 1e-9 {
				t.Errorf("axis %v is not a unit vector", ab.Axis)
			}
		})
	}
}

func TestDetectCollisionAxis(t *testing.T) {
	// Overlap is 1 on x and 10 on y.
	info := DetectCollision(square(0, 0, 10), square(9, 0, 10))
	if !info.Collided {
		t.Fatal("expected collision")
	}
	if math.Abs(math.Abs(info.Axis.X)-1) > 1e-9 || math.Abs(info.Axis.Y) > 1e-9 {
		t.Errorf("axis = %v, want x axis", info.Axis)
	}
}

func TestFindCollisionUsesCurrentShape(t *testing.T) {
	a := NewBody(square(0, 0, 10), 1, testColor)
	b := NewBody(square(50, 0, 10), 1, testColor)
	if FindCollision(a, b).Collided {
		t.Fatal("bodies should start apart")
	}
	b.SetCentroid(geom.NewVector2D(12, 5))
	if !FindCollision(a, b).Collided {
		t.Error("bodies should collide after moving b")
	}
}
