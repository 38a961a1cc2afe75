package physics

import (
	"math"

	"github.com/0x5844/arcade-physics/geom"
)

func isInf(m float64) bool {
	return math.IsInf(m, 1)
}

// DestructiveCollisionHandler removes both bodies.
func DestructiveCollisionHandler(a, b *Body, _ geom.Vector2D, _ any, _ float64) {
	a.Remove()
	b.Remove()
}

// OneSidedDestructiveCollisionHandler removes the second body only.
func OneSidedDestructiveCollisionHandler(_, b *Body, _ geom.Vector2D, _ any, _ float64) {
	b.Remove()
}

// PhysicsCollisionHandler applies equal and opposite impulses along axis.
// forceConst is the elasticity. An infinite-mass body acts as a wall: the
// reduced mass becomes the finite body's mass. Two walls exchange nothing.
func PhysicsCollisionHandler(a, b *Body, axis geom.Vector2D, _ any, elasticity float64) {
	j := CollisionImpulse(a.Mass(), b.Mass(), a.Velocity().Dot(axis), b.Velocity().Dot(axis), elasticity)
	impulse := axis.Scale(j)
	a.AddImpulse(impulse)
	b.AddImpulse(impulse.Negate())
}

// CollisionImpulse is the scalar impulse on the first body for a 1D
// collision along the contact axis, where u1 and u2 are the velocity
// components along that axis.
func CollisionImpulse(m1, m2, u1, u2, elasticity float64) float64 {
	var reduced float64
	switch inf1, inf2 := isInf(m1), isInf(m2); {
	case inf1 && inf2:
		return 0
	case inf1:
		reduced = m2
	case inf2:
		reduced = m1
	default:
		reduced = m1 * m2 / (m1 + m2)
	}
	return reduced * (1 + elasticity) * (u2 - u1)
}
