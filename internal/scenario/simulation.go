// Package scenario builds ready-to-run scenes, either from the built-in
// generators or from YAML scene files.
package scenario

import (
	"fmt"

	"github.com/0x5844/arcade-physics/geom"
	"github.com/0x5844/arcade-physics/internal/engine"
	"github.com/0x5844/arcade-physics/physics"
)

// World size shared by the generators and the game.
const (
	WorldWidth  = 1000.0
	WorldHeight = 500.0
)

// Body kinds used by generated scenes.
const (
	KindWall physics.Kind = iota + 1
	KindBall
	KindTarget
	KindProjectile
)

// KindName names the generated kinds. Scene file groups are numbered after
// KindProjectile in order of first use.
func KindName(k physics.Kind) string {
	switch k {
	case physics.KindNone:
		return "none"
	case KindWall:
		return "wall"
	case KindBall:
		return "ball"
	case KindTarget:
		return "target"
	case KindProjectile:
		return "projectile"
	}
	return fmt.Sprintf("group-%d", k-KindProjectile)
}

// Simulation wraps a Scene so it can be driven by an engine.Engine or a
// batch run.
type Simulation struct {
	Name   string
	Scene  *physics.Scene
	Width  float64
	Height float64
	// Duration in seconds after which Step returns engine.ErrStop. Zero
	// runs forever.
	Duration float64

	elapsed float64
	events  []geom.Vector2D
}

// Step ticks the scene and records the positions of tracked removals.
func (s *Simulation) Step(dt float64) error {
	if removed := s.Scene.Tick(dt); len(removed) > 0 {
		s.events = append(s.events, removed...)
	}
	s.elapsed += dt
	if s.Duration > 0 && s.elapsed >= s.Duration {
		return engine.ErrStop
	}
	return nil
}

func (s *Simulation) Elapsed() float64 {
	return s.elapsed
}

// Events returns the positions where tracked bodies were removed so far.
func (s *Simulation) Events() []geom.Vector2D {
	return append([]geom.Vector2D(nil), s.events...)
}

// Momentum is the total momentum of all finite-mass bodies.
func (s *Simulation) Momentum() geom.Vector2D {
	var p geom.Vector2D
	for _, b := range s.Scene.Bodies() {
		if b.IsStatic() {
			continue
		}
		p = p.Add(b.Velocity().Scale(b.Mass()))
	}
	return p
}

// KineticEnergy is the total translational energy of all finite-mass bodies.
func (s *Simulation) KineticEnergy() float64 {
	var e float64
	for _, b := range s.Scene.Bodies() {
		if b.IsStatic() {
			continue
		}
		e += 0.5 * b.Mass() * b.Velocity().MagnitudeSquared()
	}
	return e
}

// Close releases the scene.
func (s *Simulation) Close() {
	s.Scene.Close()
}
