package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/0x5844/arcade-physics/internal/game"
)

// input is one decoded key press.
type input struct {
	player int
	cmd    game.Command
}

var (
	// Player 1 uses WASD and fires with V; player 2 uses the arrows and M.
	runeBindings = map[rune]input{
		'a': {0, game.CmdLeft},
		'd': {0, game.CmdRight},
		'w': {0, game.CmdForward},
		's': {0, game.CmdBack},
		'v': {0, game.CmdFire},
		'm': {1, game.CmdFire},
	}
	keyBindings = map[tcell.Key]input{
		tcell.KeyLeft:  {1, game.CmdLeft},
		tcell.KeyRight: {1, game.CmdRight},
		tcell.KeyUp:    {1, game.CmdForward},
		tcell.KeyDown:  {1, game.CmdBack},
	}
)

// decodeKey maps a key event to a game input. quit is set for Esc, Ctrl-C
// and q.
func decodeKey(ev *tcell.EventKey) (in input, ok, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input{}, false, true
	case tcell.KeyRune:
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r == 'q' {
			return input{}, false, true
		}
		in, ok = runeBindings[r]
		return in, ok, false
	default:
		in, ok = keyBindings[ev.Key()]
		return in, ok, false
	}
}
