package game

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/0x5844/arcade-physics/physics"
)

// Body kinds of the arcade game.
const (
	KindShip physics.Kind = iota + 1
	KindAsteroid
	KindDeadAsteroid
	KindBullet
	KindPowerup
	KindEvent
	KindMetal
)

// Powerup is the tag value of a KindPowerup body.
type Powerup uint8

const (
	PowerupSpeed Powerup = iota
	PowerupHealth
	PowerupDamage
)

// Event is the tag value of a KindEvent body.
type Event uint8

const (
	EventBlackHole Event = iota
	EventTimeDilation
)

// shot is the tag value of a bullet.
type shot struct {
	owner  int
	damage float64
}

// explosion is the tag value of a KindDeadAsteroid body.
type explosion struct {
	age float64
}

var (
	shipColors = [2]colorful.Color{
		{R: 0.95, G: 0.25, B: 0.2},
		{R: 0.2, G: 0.45, B: 0.95},
	}
	ghostColor     = colorful.Color{R: 0.35, G: 0.35, B: 0.4}
	asteroidColor  = colorful.Color{R: 0.6, G: 0.5, B: 0.4}
	metalColor     = colorful.Color{R: 0.55, G: 0.6, B: 0.65}
	blackHoleColor = colorful.Color{R: 0.3, G: 0.05, B: 0.45}
	dilationColor  = colorful.Color{R: 0.3, G: 0.9, B: 0.9}
	flashColor     = colorful.Color{R: 1, G: 0.95, B: 0.5}
	emberColor     = colorful.Color{R: 0.35, G: 0.05, B: 0.02}

	powerupColors = map[Powerup]colorful.Color{
		PowerupSpeed:  {R: 1, G: 0.9, B: 0.1},
		PowerupHealth: {R: 0.2, G: 0.9, B: 0.3},
		PowerupDamage: {R: 0.9, G: 0.2, B: 0.9},
	}
)

func bulletColor(owner int, damage float64) colorful.Color {
	c := shipColors[owner]
	if damage > 1 {
		return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.5)
	}
	return c
}

// explosionColor fades from a bright flash to embers over the explosion's
// life, in four steps.
func explosionColor(age float64) colorful.Color {
	stage := explosionStage(age / explosionLife)
	return flashColor.BlendLab(emberColor, stage/3)
}

func explosionStage(f float64) float64 {
	switch {
	case f < 0.25:
		return 0
	case f < 0.5:
		return 1
	case f < 0.75:
		return 2
	default:
		return 3
	}
}
