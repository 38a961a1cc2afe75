package scenario

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/0x5844/arcade-physics/geom"
	"github.com/0x5844/arcade-physics/physics"
)

const (
	wallThickness = 20.0
	orbitG        = 1.0
	sunMass       = 1e6
)

var (
	wallColor   = colorful.Color{R: 0.55, G: 0.58, B: 0.62}
	sunColor    = colorful.Color{R: 1, G: 0.8, B: 0.2}
	targetColor = colorful.Color{R: 0.8, G: 0.35, B: 0.2}
	shotColor   = colorful.Color{R: 0.9, G: 0.9, B: 1}
)

type generator func(n int, rng *rand.Rand) *Simulation

var generators = map[string]generator{
	"default":    generateDefault,
	"orbits":     generateOrbits,
	"springs":    generateSprings,
	"billiards":  generateBilliards,
	"demolition": generateDemolition,
}

// Types lists the generator names.
func Types() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate builds a scene of the named type with about n dynamic bodies. A
// nil rng uses a fixed seed.
func Generate(sceneType string, n int, rng *rand.Rand) (*Simulation, error) {
	gen, ok := generators[sceneType]
	if !ok {
		return nil, fmt.Errorf("unknown scene type %q (want one of %v)", sceneType, Types())
	}
	if n < 1 {
		return nil, fmt.Errorf("scene needs at least one body, got %d", n)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	sim := gen(n, rng)
	sim.Name = sceneType
	return sim, nil
}

func newSimulation() *Simulation {
	return &Simulation{
		Scene:  physics.NewScene(),
		Width:  WorldWidth,
		Height: WorldHeight,
	}
}

// palette spreads hues evenly so neighbouring bodies differ.
func palette(i, n int) colorful.Color {
	return colorful.Hsv(360*float64(i)/float64(n), 0.65, 0.95)
}

func addBody(scene *physics.Scene, shape []geom.Vector2D, center geom.Vector2D, mass float64, color colorful.Color, kind physics.Kind) *physics.Body {
	b := physics.NewTaggedBody(shape, mass, color, physics.Tag{Kind: kind}, 0)
	b.SetCentroid(center)
	scene.AddBody(b)
	return b
}

// addWalls encloses the world with four static bars.
func addWalls(scene *physics.Scene) []*physics.Body {
	w, h, t := WorldWidth, WorldHeight, wallThickness
	return []*physics.Body{
		addBody(scene, geom.Rectangle(w, t), geom.NewVector2D(w/2, -t/2), math.Inf(1), wallColor, KindWall),
		addBody(scene, geom.Rectangle(w, t), geom.NewVector2D(w/2, h+t/2), math.Inf(1), wallColor, KindWall),
		addBody(scene, geom.Rectangle(t, h), geom.NewVector2D(-t/2, h/2), math.Inf(1), wallColor, KindWall),
		addBody(scene, geom.Rectangle(t, h), geom.NewVector2D(w+t/2, h/2), math.Inf(1), wallColor, KindWall),
	}
}

func randomPoint(rng *rand.Rand, margin float64) geom.Vector2D {
	return geom.NewVector2D(
		margin+rng.Float64()*(WorldWidth-2*margin),
		margin+rng.Float64()*(WorldHeight-2*margin),
	)
}

// collideAll registers physics collisions between every pair of balls and
// between every ball and every wall.
func collideAll(scene *physics.Scene, balls, walls []*physics.Body, elasticity float64) {
	for i := range balls {
		for j := i + 1; j < len(balls); j++ {
			physics.CreatePhysicsCollision(scene, balls[i], balls[j], elasticity)
		}
		for _, w := range walls {
			physics.CreatePhysicsCollision(scene, balls[i], w, elasticity)
		}
	}
}

func generateDefault(n int, rng *rand.Rand) *Simulation {
	sim := newSimulation()
	walls := addWalls(sim.Scene)

	balls := make([]*physics.Body, 0, n)
	for i := 0; i < n; i++ {
		radius := rng.Float64()*15 + 10
		sides := rng.Intn(6) + 3
		mass := radius * radius * math.Pi / 10
		b := addBody(sim.Scene, geom.RegularPolygon(geom.Zero, radius, sides), randomPoint(rng, 40), mass, palette(i, n), KindBall)
		b.SetVelocity(geom.FromPolar(rng.Float64()*150+50, rng.Float64()*2*math.Pi))
		b.SetRotationSpeed((rng.Float64() - 0.5) * 2)
		balls = append(balls, b)
	}
	collideAll(sim.Scene, balls, walls, 0.9)
	return sim
}

func generateBilliards(n int, rng *rand.Rand) *Simulation {
	sim := newSimulation()
	walls := addWalls(sim.Scene)

	const radius = 12.0
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	spacing := radius * 3
	origin := geom.NewVector2D(WorldWidth/2-float64(cols)*spacing/2, WorldHeight/2-float64(cols)*spacing/2)

	balls := make([]*physics.Body, 0, n)
	for i := 0; i < n; i++ {
		pos := origin.Add(geom.NewVector2D(float64(i%cols)*spacing, float64(i/cols)*spacing))
		b := addBody(sim.Scene, geom.RegularPolygon(geom.Zero, radius, 16), pos, 1, palette(i, n), KindBall)
		balls = append(balls, b)
	}
	// Cue ball.
	cue := addBody(sim.Scene, geom.RegularPolygon(geom.Zero, radius, 16), geom.NewVector2D(80, WorldHeight/2+rng.Float64()*10-5), 1, colorful.Color{R: 1, G: 1, B: 1}, KindBall)
	cue.SetVelocity(geom.NewVector2D(400, 0))
	balls = append(balls, cue)

	collideAll(sim.Scene, balls, walls, 1)
	return sim
}

func generateOrbits(n int, rng *rand.Rand) *Simulation {
	sim := newSimulation()
	center := geom.NewVector2D(WorldWidth/2, WorldHeight/2)
	sun := addBody(sim.Scene, geom.RegularPolygon(geom.Zero, 30, 24), center, sunMass, sunColor, KindTarget)

	for i := 0; i < n; i++ {
		r := 60 + rng.Float64()*(WorldHeight/2-80)
		angle := rng.Float64() * 2 * math.Pi
		pos := center.Add(geom.FromPolar(r, angle))
		speed := math.Sqrt(orbitG * sunMass / r)

		planet := addBody(sim.Scene, geom.RegularPolygon(geom.Zero, 4+rng.Float64()*4, 8), pos, 1, palette(i, n), KindBall)
		planet.SetVelocity(geom.FromPolar(speed, angle+math.Pi/2))

		physics.CreateNewtonianGravity(sim.Scene, orbitG, sun, planet)
		physics.CreateOneSidedDestructiveCollision(sim.Scene, sun, planet)
	}
	sim.Scene.TrackRemovals(KindBall)
	return sim
}

func generateSprings(n int, rng *rand.Rand) *Simulation {
	sim := newSimulation()
	anchor := addBody(sim.Scene, geom.Rectangle(20, 20), geom.NewVector2D(WorldWidth/2, WorldHeight-40), math.Inf(1), wallColor, KindWall)

	prev := anchor
	for i := 0; i < n; i++ {
		pos := geom.NewVector2D(WorldWidth/2+(rng.Float64()-0.5)*200, WorldHeight-40-float64(i+1)*20)
		link := addBody(sim.Scene, geom.RegularPolygon(geom.Zero, 6, 6), pos, 1, palette(i, n), KindBall)
		physics.CreateSpring(sim.Scene, 20, prev, link)
		physics.CreateDrag(sim.Scene, 0.5, link)
		prev = link
	}
	return sim
}

func generateDemolition(n int, rng *rand.Rand) *Simulation {
	sim := newSimulation()
	walls := addWalls(sim.Scene)

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	targets := make([]*physics.Body, 0, n)
	for i := 0; i < n; i++ {
		pos := geom.NewVector2D(WorldWidth*0.7+float64(i%cols)*30, 60+float64(i/cols)*30)
		targets = append(targets, addBody(sim.Scene, geom.Rectangle(24, 24), pos, 5, targetColor, KindTarget))
	}

	shots := n/2 + 1
	for i := 0; i < shots; i++ {
		pos := geom.NewVector2D(60, 40+rng.Float64()*(WorldHeight-80))
		shot := addBody(sim.Scene, geom.RegularPolygon(geom.Zero, 5, 6), pos, 1, shotColor, KindProjectile)
		shot.SetVelocity(geom.FromPolar(500, (rng.Float64()-0.5)*0.6))
		for _, t := range targets {
			physics.CreateDestructiveCollision(sim.Scene, shot, t)
		}
		for _, w := range walls {
			physics.CreateOneSidedDestructiveCollision(sim.Scene, w, shot)
		}
	}
	sim.Scene.TrackRemovals(KindTarget)
	return sim
}
