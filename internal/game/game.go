// Package game implements the two-player arcade rules on top of the physics
// core: ships, asteroids, bullets, power-ups, physics events and metal walls.
package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/0x5844/arcade-physics/geom"
	"github.com/0x5844/arcade-physics/internal/engine"
	"github.com/0x5844/arcade-physics/physics"
)

// World bounds.
const (
	Width  = 1000.0
	Height = 500.0
)

const (
	MaxPoints         = 500
	PointsPerAsteroid = 10

	ShipRadius      = 15.0
	BulletRadius    = 6.0
	PowerupRadius   = 10.0
	EventRadius     = 10.0
	BlackHoleRadius = 50.0

	shipMass     = 100.0
	bulletMass   = 100.0
	asteroidMass = 100.0
	powerupMass  = 10.0
	eventMass    = 10000.0

	shipSides      = 20
	itemSides      = 4
	asteroidHeight = 30.0
	minAsterWidth  = 30.0
	maxAsterWidth  = 70.0

	metalWidth  = 50.0
	metalHeight = 250.0

	bulletDamage   = -10
	asteroidDamage = -20

	damageMult        = 2.0
	speedMult         = 1.2
	dilationSpeedMult = 0.5
	minHealthBonus    = 10
	maxHealthBonus    = 30

	bulletSpeed   = 1000.0
	powerupSpeed  = 20.0
	eventSpeed    = 3.0
	minAsterSpeed = 100.0
	maxAsterSpeed = 300.0

	moveStep      = 10.0
	turnStep      = math.Pi / 30
	blackHoleG    = 1e2
	bulletMagnetG = 1e3

	explosionLife = 1.0
)

var (
	startPositions = [2]geom.Vector2D{{X: 450, Y: 45}, {X: 550, Y: 45}}
	metalPositions = []geom.Vector2D{{X: 250, Y: 250}, {X: 750, Y: 250}}
)

// ErrGameOver ends the frame loop. It wraps engine.ErrStop.
var ErrGameOver = fmt.Errorf("game over: %w", engine.ErrStop)

// Sound identifies a sound cue.
type Sound uint8

const (
	SoundShoot Sound = iota
	SoundExplosion
	SoundPickup
	SoundDeath
)

// SoundPlayer plays cues. It must not block.
type SoundPlayer interface {
	PlaySound(Sound)
}

type silent struct{}

func (silent) PlaySound(Sound) {}

// Options configures a Game. Zero spawn intervals disable that spawn.
type Options struct {
	Rand   *rand.Rand
	Sounds SoundPlayer

	InitialAsteroids int
	AsteroidEvery    float64
	PowerupEvery     float64
	EventEvery       float64
	// EventChance is the probability that an event spawns when its timer
	// fires.
	EventChance float64
}

// DefaultOptions are the rules of the arcade game.
func DefaultOptions() Options {
	return Options{
		InitialAsteroids: 5,
		AsteroidEvery:    2,
		PowerupEvery:     5,
		EventEvery:       20,
		EventChance:      1,
	}
}

// Game owns a Scene and applies the arcade rules every frame.
type Game struct {
	opts   Options
	rng    *rand.Rand
	sounds SoundPlayer
	scene  *physics.Scene

	players [2]*Player
	ships   [2]*physics.Body

	asteroidTimer float64
	powerupTimer  float64
	eventTimer    float64
	elapsed       float64
	over          bool
}

func New(opts Options) *Game {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.Sounds == nil {
		opts.Sounds = silent{}
	}
	g := &Game{
		opts:   opts,
		rng:    opts.Rand,
		sounds: opts.Sounds,
		scene:  physics.NewScene(),
	}
	g.scene.TrackRemovals(KindAsteroid)

	for i, name := range []string{"Player1", "Player2"} {
		g.players[i] = NewPlayer(name)
		ship := physics.NewTaggedBody(geom.RegularPolygon(geom.Zero, ShipRadius, shipSides), shipMass,
			shipColors[i], physics.Tag{Kind: KindShip, Value: g.players[i]}, 0)
		ship.SetCentroid(startPositions[i])
		g.scene.AddBody(ship)
		g.ships[i] = ship
	}
	for _, pos := range metalPositions {
		g.addBody(geom.Rectangle(metalWidth, metalHeight), pos, math.Inf(1), metalColor, physics.Tag{Kind: KindMetal})
	}
	for i := 0; i < opts.InitialAsteroids; i++ {
		g.spawnRandomAsteroid()
	}
	return g
}

func (g *Game) Scene() *physics.Scene { return g.scene }

func (g *Game) Player(i int) *Player { return g.players[i] }

func (g *Game) Ship(i int) *physics.Body { return g.ships[i] }

func (g *Game) Elapsed() float64 { return g.elapsed }

func (g *Game) Over() bool { return g.over }

// Winner returns the player that reached MaxPoints, or nil.
func (g *Game) Winner() *Player {
	for _, p := range g.players {
		if p.Points() >= MaxPoints {
			return p
		}
	}
	return nil
}

// Status returns one HUD line per player.
func (g *Game) Status() []string {
	return []string{g.players[0].Status(), g.players[1].Status()}
}

// Close frees the scene.
func (g *Game) Close() {
	g.scene.Close()
}

// Step runs one frame of the game: player clocks, spawns, edge handling,
// explosion aging, the physics tick, then explosions for destroyed
// asteroids. It returns ErrGameOver once a player has MaxPoints.
func (g *Game) Step(dt float64) error {
	if g.over || g.Winner() != nil {
		g.over = true
		return ErrGameOver
	}
	g.elapsed += dt

	for i, p := range g.players {
		p.Advance(dt)
		ship := g.ships[i]
		if !p.Alive() {
			ship.SetCentroid(startPositions[i])
			ship.SetColor(ghostColor)
			continue
		}
		p.Respawn()
		ship.SetColor(shipColors[i])
	}

	g.runSpawns(dt)

	for _, b := range g.scene.Bodies() {
		g.handleEdges(b)
		switch b.Kind() {
		case KindMetal:
			for _, ship := range g.ships {
				pushOutOfMetal(ship, b)
			}
		case KindDeadAsteroid:
			g.ageExplosion(b, dt)
		}
	}

	for _, pos := range g.scene.Tick(dt) {
		g.spawnExplosion(pos)
	}
	return nil
}

func (g *Game) runSpawns(dt float64) {
	g.asteroidTimer += dt
	g.powerupTimer += dt
	g.eventTimer += dt

	if g.opts.PowerupEvery > 0 && g.powerupTimer >= g.opts.PowerupEvery {
		g.powerupTimer = 0
		g.spawnRandomPowerup()
	}
	if g.opts.AsteroidEvery > 0 && g.asteroidTimer >= g.opts.AsteroidEvery {
		g.asteroidTimer = 0
		g.spawnRandomAsteroid()
		g.spawnRandomAsteroid()
	}
	if g.opts.EventEvery > 0 && g.eventTimer >= g.opts.EventEvery {
		g.eventTimer = 0
		if g.rng.Float64() < g.opts.EventChance {
			g.spawnRandomEvent()
		}
	}
}

// handleEdges keeps ships on screen, wraps asteroids around and drops every
// other moving body once it is fully outside the world.
func (g *Game) handleEdges(b *physics.Body) {
	switch b.Kind() {
	case KindShip:
		c := b.Centroid()
		clamped := geom.NewVector2D(
			math.Min(math.Max(c.X, ShipRadius), Width-ShipRadius),
			math.Min(math.Max(c.Y, ShipRadius), Height-ShipRadius),
		)
		if clamped != c {
			b.SetCentroid(clamped)
		}
	case KindAsteroid:
		c := b.Centroid()
		wrapped := c
		switch {
		case c.X > Width:
			wrapped.X = 0
		case c.X < 0:
			wrapped.X = Width
		}
		switch {
		case c.Y > Height:
			wrapped.Y = 0
		case c.Y < 0:
			wrapped.Y = Height
		}
		if wrapped != c {
			b.SetCentroid(wrapped)
		}
	case KindBullet, KindPowerup, KindEvent:
		c := b.Centroid()
		r := b.BoundingRadius()
		if c.Y-r >= Height || c.Y+r <= 0 || c.X-r >= Width || c.X+r <= 0 {
			b.Remove()
		}
	}
}

// pushOutOfMetal moves a ship overlapping a metal wall to the nearest side
// of the wall.
func pushOutOfMetal(ship, metal *physics.Body) {
	p := ship.Centroid()
	m := metal.Centroid()
	top := m.Y + metalHeight/2
	bottom := m.Y - metalHeight/2
	right := m.X + metalWidth/2
	left := m.X - metalWidth/2

	if p.Y-ShipRadius > top || p.Y+ShipRadius < bottom || p.X-ShipRadius > right || p.X+ShipRadius < left {
		return
	}

	toTop, toBottom := top-p.Y, p.Y-bottom
	toRight, toLeft := right-p.X, p.X-left
	nearest := math.Min(math.Min(toTop, toBottom), math.Min(toRight, toLeft))
	switch nearest {
	case toTop:
		p.Y = top + ShipRadius
	case toBottom:
		p.Y = bottom - ShipRadius
	case toRight:
		p.X = right + ShipRadius
	default:
		p.X = left - ShipRadius
	}
	ship.SetCentroid(p)
}

func (g *Game) ageExplosion(b *physics.Body, dt float64) {
	e, ok := b.Tag().Value.(*explosion)
	if !ok {
		return
	}
	e.age += dt
	if e.age >= explosionLife {
		b.Remove()
		return
	}
	b.SetColor(explosionColor(e.age))
}

func (g *Game) addBody(shape []geom.Vector2D, center geom.Vector2D, mass float64, color colorful.Color, tag physics.Tag) *physics.Body {
	b := physics.NewTaggedBody(shape, mass, color, tag, 0)
	b.SetCentroid(center)
	g.scene.AddBody(b)
	return b
}

// bodiesOfKind snapshots the live bodies of kind k.
func (g *Game) bodiesOfKind(k physics.Kind) []*physics.Body {
	var out []*physics.Body
	for _, b := range g.scene.Bodies() {
		if b.Kind() == k && !b.IsRemoved() {
			out = append(out, b)
		}
	}
	return out
}
