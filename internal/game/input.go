package game

// Command is a player action decoded from the keyboard.
type Command uint8

const (
	CmdNone Command = iota
	CmdLeft
	CmdRight
	CmdForward
	CmdBack
	CmdFire
)

func (c Command) String() string {
	switch c {
	case CmdLeft:
		return "left"
	case CmdRight:
		return "right"
	case CmdForward:
		return "forward"
	case CmdBack:
		return "back"
	case CmdFire:
		return "fire"
	default:
		return "none"
	}
}

// Handle applies cmd to player i. Moves are discrete steps scaled by the
// player's speed multiplier, so a dead player cannot move.
func (g *Game) Handle(i int, cmd Command) {
	if i < 0 || i >= len(g.players) || g.over {
		return
	}
	ship := g.ships[i]
	step := moveStep * g.players[i].SpeedMult()

	switch cmd {
	case CmdLeft:
		ship.SetRotation(ship.Direction() - turnStep)
	case CmdRight:
		ship.SetRotation(ship.Direction() + turnStep)
	case CmdForward:
		ship.SetCentroid(ship.Centroid().Add(heading(ship.Direction()).Scale(step)))
	case CmdBack:
		ship.SetCentroid(ship.Centroid().Sub(heading(ship.Direction()).Scale(step)))
	case CmdFire:
		g.Fire(i)
	}
}
