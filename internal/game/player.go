package game

import "strconv"

const (
	MaxHealth    = 100
	MaxBullets   = 50
	ReloadClicks = 200
	// DeathTime is how long, in seconds, a killed player stays a ghost.
	DeathTime = 5.0
	// FireInterval is the minimum time between two shots.
	FireInterval = 0.1
)

// Player is the score and status of one ship. Liveness is read with Alive;
// time only moves through Advance and a dead player only comes back through
// Respawn.
type Player struct {
	Name string

	health       int
	points       int
	bulletsShot  int
	reloadClicks int

	deathTime float64
	sinceShot float64
	dead      bool

	speedMult  float64
	damageMult float64
}

func NewPlayer(name string) *Player {
	return &Player{
		Name:       name,
		health:     MaxHealth,
		deathTime:  DeathTime,
		sinceShot:  FireInterval,
		speedMult:  1,
		damageMult: 1,
	}
}

func (p *Player) Health() int { return p.health }

func (p *Player) Points() int { return p.points }

// BulletsLeft is the number of shots before the magazine needs reloading.
func (p *Player) BulletsLeft() int { return MaxBullets - p.bulletsShot }

func (p *Player) SpeedMult() float64 { return p.speedMult }

func (p *Player) DamageMult() float64 { return p.damageMult }

// Alive reports whether the player has been dead for at least DeathTime. It
// does not change any state.
func (p *Player) Alive() bool {
	return p.deathTime >= DeathTime
}

// Advance moves the player's clocks forward by dt seconds.
func (p *Player) Advance(dt float64) {
	p.sinceShot += dt
	if !p.Alive() {
		p.deathTime += dt
	}
}

// Respawn restores health and speed once a killed player is alive again. It
// reports whether anything was restored.
func (p *Player) Respawn() bool {
	if !p.dead || !p.Alive() {
		return false
	}
	p.dead = false
	p.health = MaxHealth
	p.speedMult = 1
	return true
}

// Kill starts the death timer and freezes the ship.
func (p *Player) Kill() {
	p.dead = true
	p.deathTime = 0
	p.reloadClicks = 0
	p.speedMult = 0
}

// ChangeHealth adds delta, which is negative for damage. Health never goes
// below zero; reaching zero kills the player. Ghosts are not affected.
func (p *Player) ChangeHealth(delta int) {
	if !p.Alive() {
		return
	}
	p.health += delta
	if p.health <= 0 {
		p.health = 0
		p.Kill()
	}
}

func (p *Player) AddPoints(n int) {
	p.points += n
}

func (p *Player) SetSpeedMult(m float64) {
	if p.dead {
		return
	}
	p.speedMult = m
}

// ArmDamageRounds doubles bullet damage and refills the magazine on the next
// trigger pull.
func (p *Player) ArmDamageRounds(mult float64) {
	p.damageMult = mult
	p.reloadClicks = ReloadClicks
}

// CanFire reports whether a shot is allowed right now.
func (p *Player) CanFire() bool {
	return p.Alive() && p.sinceShot >= FireInterval && p.bulletsShot < MaxBullets
}

// Fire pulls the trigger. A pull that cannot shoot counts towards a reload
// and drops damage rounds.
func (p *Player) Fire() bool {
	if p.reloadClicks >= ReloadClicks {
		p.reloadClicks = 0
		p.bulletsShot = 0
	}
	if !p.CanFire() {
		p.reloadClicks++
		p.damageMult = 1
		return false
	}
	p.sinceShot = 0
	p.bulletsShot++
	return true
}

// Status is the HUD line for the player.
func (p *Player) Status() string {
	s := p.Name + "  HP " + strconv.Itoa(p.health) +
		"  PTS " + strconv.Itoa(p.points) +
		"  AMMO " + strconv.Itoa(p.BulletsLeft())
	if !p.Alive() {
		s += "  (respawning)"
	}
	return s
}
