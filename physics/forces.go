package physics

import (
	"fmt"
	"math"

	"github.com/0x5844/arcade-physics/geom"
)

// MinDist is the separation at or below which gravity is not applied.
const MinDist = 5.0

// ForceCreator accumulates forces or impulses on bodies. The Scene calls
// every registered creator once per tick, before integration.
type ForceCreator func()

// Binding is a registered force creator together with its payload and the
// bodies it depends on.
type Binding struct {
	creator ForceCreator
	aux     any
	bodies  []*Body
}

// Aux returns the payload the binding was registered with.
func (fb *Binding) Aux() any {
	return fb.aux
}

// Bodies returns a copy of the dependency list.
func (fb *Binding) Bodies() []*Body {
	return append([]*Body(nil), fb.bodies...)
}

// DependsOn reports whether body is one of the binding's dependencies.
func (fb *Binding) DependsOn(body *Body) bool {
	for _, b := range fb.bodies {
		if b == body {
			return true
		}
	}
	return false
}

func (fb *Binding) dependsOnRemoved() bool {
	for _, b := range fb.bodies {
		if b.removed {
			return true
		}
	}
	return false
}

// pairAux is the payload of the two-body force creators.
type pairAux struct {
	constant float64
	a, b     *Body
}

// Constant returns the force constant (G, k or gamma).
func (p *pairAux) Constant() float64 {
	return p.constant
}

// CreateNewtonianGravity attracts a and b with F = G*ma*mb/|d|^2. Nothing is
// applied while the centroids are within MinDist of each other.
func CreateNewtonianGravity(scene *Scene, g float64, a, b *Body) *Binding {
	aux := &pairAux{constant: g, a: a, b: b}
	return scene.AddBodiesForceCreator(func() { newtonianGravity(aux) }, aux, []*Body{a, b})
}

func newtonianGravity(aux *pairAux) {
	displacement := aux.a.Centroid().Sub(aux.b.Centroid())
	distance := displacement.Magnitude()
	if distance <= MinDist {
		return
	}
	magnitude := aux.constant * aux.a.Mass() * aux.b.Mass() / displacement.MagnitudeSquared()
	force := displacement.Scale(magnitude / distance)
	aux.b.AddForce(force)
	aux.a.AddForce(force.Negate())
}

// CreateSpring connects a and b with a Hooke's-law spring of constant k.
func CreateSpring(scene *Scene, k float64, a, b *Body) *Binding {
	aux := &pairAux{constant: k, a: a, b: b}
	return scene.AddBodiesForceCreator(func() { springForce(aux) }, aux, []*Body{a, b})
}

func springForce(aux *pairAux) {
	stretch := aux.a.Centroid().Sub(aux.b.Centroid())
	force := stretch.Scale(-aux.constant)
	aux.a.AddForce(force)
	aux.b.AddForce(force.Negate())
}

// CreateDrag slows body with a force of -gamma times its velocity.
func CreateDrag(scene *Scene, gamma float64, body *Body) *Binding {
	aux := &pairAux{constant: gamma, a: body}
	return scene.AddBodiesForceCreator(func() { dragForce(aux) }, aux, []*Body{body})
}

func dragForce(aux *pairAux) {
	aux.a.AddForce(aux.a.Velocity().Scale(-aux.constant))
}

// CollisionHandler runs when two bodies start touching. axis is the SAT
// contact axis; aux and forceConst are the values given to CreateCollision.
type CollisionHandler func(a, b *Body, axis geom.Vector2D, aux any, forceConst float64)

// CollisionState is the payload of a collision binding. It latches while the
// bodies overlap so the handler fires once per contact.
type CollisionState struct {
	handler    CollisionHandler
	aux        any
	forceConst float64
	a, b       *Body

	colliding bool
	contacts  int
	onContact func()
}

// Colliding reports whether the bodies overlapped on the last tick.
func (cs *CollisionState) Colliding() bool {
	return cs.colliding
}

// Contacts is the number of times the handler has fired.
func (cs *CollisionState) Contacts() int {
	return cs.contacts
}

// Aux returns the caller value passed to the handler.
func (cs *CollisionState) Aux() any {
	return cs.aux
}

func (cs *CollisionState) ForceConst() float64 {
	return cs.forceConst
}

// Release forwards to the caller value when it holds resources.
func (cs *CollisionState) Release() {
	release(cs.aux)
}

func (cs *CollisionState) step() {
	info := FindCollision(cs.a, cs.b)
	switch {
	case info.Collided && !cs.colliding:
		cs.handler(cs.a, cs.b, info.Axis, cs.aux, cs.forceConst)
		cs.colliding = true
		cs.contacts++
		if cs.onContact != nil {
			cs.onContact()
		}
	case !info.Collided && cs.colliding:
		cs.colliding = false
	}
}

// CreateCollision calls handler each time a and b start to collide. The
// returned binding's Aux is the *CollisionState.
func CreateCollision(scene *Scene, a, b *Body, handler CollisionHandler, aux any, forceConst float64) *Binding {
	if handler == nil {
		panic("physics: nil collision handler")
	}
	state := &CollisionState{
		handler:    handler,
		aux:        aux,
		forceConst: forceConst,
		a:          a,
		b:          b,
		onContact:  scene.countContact,
	}
	return scene.AddBodiesForceCreator(state.step, state, []*Body{a, b})
}

// CreateDestructiveCollision removes both bodies when they touch.
func CreateDestructiveCollision(scene *Scene, a, b *Body) *Binding {
	return CreateCollision(scene, a, b, DestructiveCollisionHandler, nil, 0)
}

// CreateOneSidedDestructiveCollision removes only b when the bodies touch.
func CreateOneSidedDestructiveCollision(scene *Scene, a, b *Body) *Binding {
	return CreateCollision(scene, a, b, OneSidedDestructiveCollisionHandler, nil, 1)
}

// CreatePhysicsCollision resolves contacts between a and b with impulses.
// elasticity is the coefficient of restitution in [0, 1].
func CreatePhysicsCollision(scene *Scene, a, b *Body, elasticity float64) *Binding {
	if math.IsNaN(elasticity) || elasticity < 0 || elasticity > 1 {
		panic(fmt.Sprintf("physics: elasticity must be in [0, 1], got %v", elasticity))
	}
	return CreateCollision(scene, a, b, PhysicsCollisionHandler, nil, elasticity)
}
