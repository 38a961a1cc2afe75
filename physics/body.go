// Package physics is the rigid-body core: bodies, SAT collision detection,
// force creators with latched collision dispatch, and the Scene that ticks
// them.
//
// A Scene is single-threaded. Programmer errors (nil bodies, bad indices,
// zero mass, malformed polygons) panic instead of returning errors.
package physics

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/0x5844/arcade-physics/geom"
)

const twoPi = 2 * math.Pi

// Body is a polygon with mass, per-tick force and impulse accumulators, a
// facing direction and a soft-delete flag.
type Body struct {
	id   uuid.UUID
	poly *geom.Polygon

	mass    float64
	force   geom.Vector2D
	impulse geom.Vector2D

	// direction is the sprite facing. It is kept apart from the polygon
	// geometry, which only turns through SetRotation.
	direction float64
	removed   bool

	tag Tag
}

// NewBody creates an untagged body facing angle 0.
func NewBody(shape []geom.Vector2D, mass float64, color colorful.Color) *Body {
	return NewTaggedBody(shape, mass, color, Tag{}, 0)
}

// NewTaggedBody creates a body. mass may be +Inf for immovable bodies; zero,
// negative and NaN masses panic, as do shapes with fewer than three vertices.
func NewTaggedBody(shape []geom.Vector2D, mass float64, color colorful.Color, tag Tag, direction float64) *Body {
	checkMass(mass)
	return &Body{
		id:        uuid.New(),
		poly:      geom.NewPolygon(shape, geom.Zero, 0, color),
		mass:      mass,
		direction: direction,
		tag:       tag,
	}
}

func checkMass(mass float64) {
	if math.IsNaN(mass) || mass <= 0 {
		panic(fmt.Sprintf("physics: body mass must be positive, got %v", mass))
	}
}

func (b *Body) ID() uuid.UUID {
	return b.id
}

// Shape returns a copy of the body's vertices.
func (b *Body) Shape() []geom.Vector2D {
	return b.poly.Vertices()
}

func (b *Body) Centroid() geom.Vector2D {
	return b.poly.Centroid()
}

func (b *Body) Velocity() geom.Vector2D {
	return b.poly.Velocity()
}

func (b *Body) SetVelocity(v geom.Vector2D) {
	b.poly.SetVelocity(v)
}

func (b *Body) RotationSpeed() float64 {
	return b.poly.RotationSpeed()
}

func (b *Body) SetRotationSpeed(speed float64) {
	b.poly.SetRotationSpeed(speed)
}

func (b *Body) Mass() float64 {
	return b.mass
}

// IsStatic reports whether the body has infinite mass.
func (b *Body) IsStatic() bool {
	return math.IsInf(b.mass, 1)
}

func (b *Body) Color() colorful.Color {
	return b.poly.Color()
}

func (b *Body) SetColor(c colorful.Color) {
	b.poly.SetColor(c)
}

func (b *Body) Direction() float64 {
	return b.direction
}

func (b *Body) Tag() Tag {
	return b.tag
}

func (b *Body) Kind() Kind {
	return b.tag.Kind
}

// SetTag replaces the tag. The previous value is not released.
func (b *Body) SetTag(tag Tag) {
	b.tag = tag
}

func (b *Body) Force() geom.Vector2D {
	return b.force
}

func (b *Body) Impulse() geom.Vector2D {
	return b.impulse
}

func (b *Body) BoundingRadius() float64 {
	return b.poly.BoundingRadius()
}

// Contains reports whether point lies inside the body's polygon.
func (b *Body) Contains(point geom.Vector2D) bool {
	return b.poly.Contains(point)
}

// SetCentroid moves the body so its centroid is exactly p.
func (b *Body) SetCentroid(p geom.Vector2D) {
	delta := p.Sub(b.poly.Centroid())
	b.poly.Translate(delta)
	// Drop the recomputed value to avoid drift from the translate round trip.
	b.poly.SetCentroid(p)
}

// SetRotation turns the geometry about the centroid so the facing becomes
// angle.
func (b *Body) SetRotation(angle float64) {
	b.Rotate(angle - b.direction)
}

// Rotate turns both the geometry and the facing by delta radians.
func (b *Body) Rotate(delta float64) {
	c := b.poly.Centroid()
	b.poly.Rotate(delta, c)
	b.poly.SetCentroid(c)
	b.rotateDirection(delta)
}

func (b *Body) rotateDirection(delta float64) {
	b.direction = math.Mod(b.direction+delta, twoPi)
}

// AddForce accumulates f until the next Tick.
func (b *Body) AddForce(f geom.Vector2D) {
	b.force = b.force.Add(f)
}

// AddImpulse accumulates j until the next Tick.
func (b *Body) AddImpulse(j geom.Vector2D) {
	b.impulse = b.impulse.Add(j)
}

// Reset clears both accumulators.
func (b *Body) Reset() {
	b.force = geom.Zero
	b.impulse = geom.Zero
}

// Remove flags the body. The owning Scene frees it on its next Tick.
func (b *Body) Remove() {
	b.removed = true
}

func (b *Body) IsRemoved() bool {
	return b.removed
}

// Tick applies the accumulated impulse and force, then advances the facing
// and the centroid. The centroid moves by the average of the old and new
// velocity.
func (b *Body) Tick(dt float64) {
	var dv geom.Vector2D
	if !b.IsStatic() {
		impulseDV := b.impulse.Scale(1 / b.mass)
		forceDV := b.force.Scale(dt / b.mass)
		dv = impulseDV.Add(forceDV)
	}
	b.Reset()

	oldVel := b.poly.Velocity()
	newVel := oldVel.Add(dv)

	if w := b.poly.RotationSpeed(); w != 0 {
		b.rotateDirection(w * dt)
	}

	avgVel := oldVel.Add(newVel).Scale(0.5)
	b.SetCentroid(b.poly.Centroid().Add(avgVel.Scale(dt)))
	b.poly.SetVelocity(newVel)
}
