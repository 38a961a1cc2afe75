package physics

import (
	"math"

	"github.com/0x5844/arcade-physics/geom"
)

// CollisionInfo is the result of a SAT test. Axis is a unit vector and is
// meaningless when Collided is false.
type CollisionInfo struct {
	Collided bool
	Axis     geom.Vector2D
}

// FindCollision runs DetectCollision on the current shapes of two bodies.
func FindCollision(a, b *Body) CollisionInfo {
	return DetectCollision(a.Shape(), b.Shape())
}

// DetectCollision tests two convex polygons with the Separating Axis
// Theorem. Each polygon's edge normals are tried in turn; the first axis
// with a negative overlap ends the test. When both passes report contact,
// the axis of the pass with the smaller minimal overlap is returned. That
// choice approximates, but does not guarantee, the minimum translation axis.
func DetectCollision(shapeA, shapeB []geom.Vector2D) CollisionInfo {
	first, overlapA := satPass(shapeA, shapeB)
	if !first.Collided {
		return first
	}
	second, overlapB := satPass(shapeB, shapeA)
	if !second.Collided {
		return second
	}
	if overlapA < overlapB {
		return first
	}
	return second
}

// satPass projects both shapes on the edge normals of source and returns the
// axis of least overlap together with that overlap.
func satPass(source, other []geom.Vector2D) (CollisionInfo, float64) {
	minOverlap := math.MaxFloat64
	info := CollisionInfo{}

	n := len(source)
	for i := 0; i < n; i++ {
		edge := source[i].Sub(source[(i+1)%n])
		axis := edge.Perpendicular().Normalize()

		minS, maxS := geom.ProjectPoints(source, axis)
		minO, maxO := geom.ProjectPoints(other, axis)

		overlap := math.Min(maxS-minO, maxO-minS)
		if overlap < 0 {
			return CollisionInfo{}, overlap
		}
		if overlap < minOverlap {
			minOverlap = overlap
			info.Axis = axis
		}
	}
	info.Collided = true
	return info, minOverlap
}
