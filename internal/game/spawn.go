package game

import (
	"math"

	"github.com/0x5844/arcade-physics/geom"
	"github.com/0x5844/arcade-physics/physics"
)

func (g *Game) between(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// boundarySpawn picks a point on a random world edge and a heading that
// points inside.
func (g *Game) boundarySpawn() (geom.Vector2D, float64) {
	x := g.between(0, Width)
	y := g.between(0, Height)
	switch g.rng.Intn(4) {
	case 0:
		return geom.NewVector2D(x, 0), g.between(0, math.Pi)
	case 1:
		return geom.NewVector2D(Width, y), g.between(math.Pi/2, 3*math.Pi/2)
	case 2:
		return geom.NewVector2D(x, Height), g.between(math.Pi, 2*math.Pi)
	default:
		return geom.NewVector2D(0, y), g.between(-math.Pi/2, math.Pi/2)
	}
}

func (g *Game) spawnRandomAsteroid() *physics.Body {
	pos, dir := g.boundarySpawn()
	width := g.between(minAsterWidth, maxAsterWidth)
	vel := geom.FromPolar(g.between(minAsterSpeed, maxAsterSpeed), dir)
	return g.SpawnAsteroid(pos, vel, width, g.between(0, math.Pi/2))
}

// SpawnAsteroid adds an asteroid that damages both ships on contact and is
// pulled in by every black hole.
func (g *Game) SpawnAsteroid(pos, vel geom.Vector2D, width, rotationSpeed float64) *physics.Body {
	a := g.addBody(geom.Rectangle(width, asteroidHeight), pos, asteroidMass, asteroidColor, physics.Tag{Kind: KindAsteroid})
	a.SetVelocity(vel)
	a.SetRotationSpeed(rotationSpeed)

	for _, ship := range g.ships {
		physics.CreateCollision(g.scene, ship, a, g.shipAsteroidHandler, nil, asteroidDamage)
	}
	for _, hole := range g.blackHoles() {
		physics.CreateNewtonianGravity(g.scene, blackHoleG, a, hole)
	}
	return a
}

func (g *Game) spawnRandomPowerup() *physics.Body {
	pos, dir := g.boundarySpawn()
	kind := Powerup(g.rng.Intn(3))
	return g.SpawnPowerup(kind, pos, geom.FromPolar(powerupSpeed, dir))
}

// SpawnPowerup adds a power-up either ship can collect.
func (g *Game) SpawnPowerup(kind Powerup, pos, vel geom.Vector2D) *physics.Body {
	b := g.addBody(geom.RegularPolygon(geom.Zero, PowerupRadius, itemSides), pos, powerupMass,
		powerupColors[kind], physics.Tag{Kind: KindPowerup, Value: kind})
	b.SetVelocity(vel)
	g.bindItem(b)
	return b
}

func (g *Game) spawnRandomEvent() *physics.Body {
	pos, dir := g.boundarySpawn()
	kind := EventTimeDilation
	if g.rng.Float64() <= 0.5 {
		kind = EventBlackHole
	}
	return g.SpawnEvent(kind, pos, geom.FromPolar(eventSpeed, dir))
}

// SpawnEvent adds a physics event. A black hole attracts every asteroid and
// kills a ship that touches it; time dilation slows the other player.
func (g *Game) SpawnEvent(kind Event, pos, vel geom.Vector2D) *physics.Body {
	radius, color := EventRadius, dilationColor
	if kind == EventBlackHole {
		radius, color = BlackHoleRadius, blackHoleColor
	}
	b := g.addBody(geom.RegularPolygon(geom.Zero, radius, itemSides), pos, eventMass,
		color, physics.Tag{Kind: KindEvent, Value: kind})
	b.SetVelocity(vel)
	g.bindItem(b)

	if kind == EventBlackHole {
		for _, a := range g.bodiesOfKind(KindAsteroid) {
			physics.CreateNewtonianGravity(g.scene, blackHoleG, b, a)
		}
	}
	return b
}

func (g *Game) bindItem(item *physics.Body) {
	for _, ship := range g.ships {
		physics.CreateCollision(g.scene, ship, item, g.shipItemHandler, nil, 0)
	}
}

func (g *Game) blackHoles() []*physics.Body {
	var holes []*physics.Body
	for _, b := range g.bodiesOfKind(KindEvent) {
		if b.Tag().Value == EventBlackHole {
			holes = append(holes, b)
		}
	}
	return holes
}

func (g *Game) spawnExplosion(pos geom.Vector2D) *physics.Body {
	g.sounds.PlaySound(SoundExplosion)
	return g.addBody(geom.Rectangle((minAsterWidth+maxAsterWidth)/2, asteroidHeight), pos, 1,
		explosionColor(0), physics.Tag{Kind: KindDeadAsteroid, Value: &explosion{}})
}

// Fire shoots a bullet from ship i along its facing. Bullets are attracted
// by asteroids, destroy them for points, damage the other ship and stop at
// metal walls.
func (g *Game) Fire(i int) *physics.Body {
	p := g.players[i]
	if !p.Fire() {
		return nil
	}
	ship := g.ships[i]
	s := &shot{owner: i, damage: p.DamageMult()}
	bullet := g.addBody(geom.RegularPolygon(geom.Zero, BulletRadius, itemSides), ship.Centroid(), bulletMass,
		bulletColor(i, s.damage), physics.Tag{Kind: KindBullet, Value: s})
	bullet.SetVelocity(heading(ship.Direction()).Scale(bulletSpeed))
	g.sounds.PlaySound(SoundShoot)

	for _, b := range g.scene.Bodies() {
		if b.IsRemoved() {
			continue
		}
		switch b.Kind() {
		case KindAsteroid:
			physics.CreateCollision(g.scene, bullet, b, g.bulletAsteroidHandler, nil, PointsPerAsteroid)
			physics.CreateNewtonianGravity(g.scene, bulletMagnetG, bullet, b)
		case KindShip:
			if b != ship {
				physics.CreateCollision(g.scene, b, bullet, g.shipBulletHandler, nil, bulletDamage)
			}
		case KindMetal:
			physics.CreateOneSidedDestructiveCollision(g.scene, b, bullet)
		}
	}
	return bullet
}

// heading is the unit vector of a facing angle measured clockwise from +Y.
func heading(angle float64) geom.Vector2D {
	s, c := math.Sincos(angle)
	return geom.NewVector2D(s, c)
}
