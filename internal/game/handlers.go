package game

import (
	"github.com/0x5844/arcade-physics/geom"
	"github.com/0x5844/arcade-physics/physics"
)

func playerOf(ship *physics.Body) *Player {
	p, _ := ship.Tag().Value.(*Player)
	return p
}

// shipAsteroidHandler destroys the asteroid and damages the ship.
func (g *Game) shipAsteroidHandler(ship, asteroid *physics.Body, _ geom.Vector2D, _ any, damage float64) {
	asteroid.Remove()
	if p := playerOf(ship); p != nil {
		g.damage(p, int(damage))
	}
}

// shipBulletHandler damages the ship, scaled by the shooter's damage
// multiplier, and removes the bullet.
func (g *Game) shipBulletHandler(ship, bullet *physics.Body, _ geom.Vector2D, _ any, damage float64) {
	bullet.Remove()
	mult := 1.0
	if s, ok := bullet.Tag().Value.(*shot); ok {
		mult = s.damage
	}
	if p := playerOf(ship); p != nil {
		g.damage(p, int(damage*mult))
	}
}

// bulletAsteroidHandler removes both bodies and credits the shooter.
func (g *Game) bulletAsteroidHandler(bullet, asteroid *physics.Body, _ geom.Vector2D, _ any, points float64) {
	bullet.Remove()
	asteroid.Remove()
	if s, ok := bullet.Tag().Value.(*shot); ok {
		g.players[s.owner].AddPoints(int(points))
	}
}

// shipItemHandler applies a power-up or event to the ship that touched it.
// Black holes stay in play; every other item is consumed.
func (g *Game) shipItemHandler(ship, item *physics.Body, _ geom.Vector2D, _ any, _ float64) {
	p := playerOf(ship)
	if p == nil || !p.Alive() {
		return
	}

	switch v := item.Tag().Value.(type) {
	case Powerup:
		switch v {
		case PowerupHealth:
			p.ChangeHealth(minHealthBonus + g.rng.Intn(maxHealthBonus-minHealthBonus+1))
		case PowerupSpeed:
			p.SetSpeedMult(speedMult)
		case PowerupDamage:
			p.ArmDamageRounds(damageMult)
		}
	case Event:
		switch v {
		case EventBlackHole:
			p.Kill()
			g.sounds.PlaySound(SoundDeath)
			return
		case EventTimeDilation:
			g.other(p).SetSpeedMult(dilationSpeedMult)
		}
	}
	g.sounds.PlaySound(SoundPickup)
	item.Remove()
}

func (g *Game) damage(p *Player, amount int) {
	wasAlive := p.Alive()
	p.ChangeHealth(amount)
	if wasAlive && !p.Alive() {
		g.sounds.PlaySound(SoundDeath)
	}
}

func (g *Game) other(p *Player) *Player {
	if g.players[0] == p {
		return g.players[1]
	}
	return g.players[0]
}
