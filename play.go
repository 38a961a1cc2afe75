package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/0x5844/arcade-physics/internal/audio"
	"github.com/0x5844/arcade-physics/internal/config"
	"github.com/0x5844/arcade-physics/internal/engine"
	"github.com/0x5844/arcade-physics/internal/game"
	"github.com/0x5844/arcade-physics/internal/render"
)

const inputQueue = 64

// soundCues plays game sounds through the audio player.
type soundCues struct {
	player *audio.Player
}

func (s soundCues) PlaySound(snd game.Sound) {
	switch snd {
	case game.SoundShoot:
		s.player.Play(audio.CueShoot)
	case game.SoundExplosion:
		s.player.Play(audio.CueExplosion)
	case game.SoundPickup:
		s.player.Play(audio.CuePickup)
	case game.SoundDeath:
		s.player.Play(audio.CueDeath)
	}
}

// frame steps the game with the inputs queued since the last frame and
// draws the result.
type frame struct {
	game     *game.Game
	renderer *render.Renderer
	inputs   <-chan input
}

func (f *frame) Step(dt float64) error {
drain:
	for {
		select {
		case in := <-f.inputs:
			f.game.Handle(in.player, in.cmd)
		default:
			break drain
		}
	}
	err := f.game.Step(dt)
	status := f.game.Status()
	if f.game.Over() {
		if w := f.game.Winner(); w != nil {
			status = append(status, w.Name+" wins!")
		}
	}
	f.renderer.Draw(f.game.Scene().Bodies(), status)
	return err
}

func runPlay(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	ctx, cancel := withDuration(ctx, cfg.Duration)
	defer cancel()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	sounds := audio.NewPlayer(math.Pow(2, cfg.Volume), cfg.Mute)
	if err := sounds.Init(); err != nil {
		logger.Printf("Audio disabled: %v", err)
	}
	defer sounds.Close()

	opts := game.DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(cfg.Seed))
	opts.Sounds = soundCues{player: sounds}
	g := game.New(opts)
	defer g.Close()

	inputs := make(chan input, inputQueue)
	eng := engine.New(&frame{
		game:     g,
		renderer: render.NewRenderer(screen, game.Width, game.Height),
		inputs:   inputs,
	}, engine.Options{TargetFPS: cfg.FPS, MaxStep: cfg.MaxStep, Logger: logger})

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		defer screen.PostEvent(tcell.NewEventInterrupt(nil))
		// Turn a game panic into an error so Fini still runs.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
			}
		}()
		return eng.Run(ctx)
	})
	group.Go(func() error {
		return pollInput(ctx, screen, inputs)
	})

	err = group.Wait()
	st := eng.Stats()
	logger.Printf("Game finished after %.1fs: %d frames, %.1f FPS, %d sounds",
		g.Elapsed(), st.Frames, st.FPS, sounds.Played())
	for _, line := range g.Status() {
		logger.Print(line)
	}
	if w := g.Winner(); w != nil {
		logger.Printf("%s wins", w.Name)
	}
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

var errQuit = errors.New("quit")

// pollInput forwards key presses until the user quits or the engine stops.
// Inputs are dropped when the queue is full.
func pollInput(ctx context.Context, screen tcell.Screen, inputs chan<- input) error {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil, *tcell.EventInterrupt:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			in, ok, quit := decodeKey(ev)
			if quit {
				return errQuit
			}
			if !ok {
				continue
			}
			select {
			case inputs <- in:
			case <-ctx.Done():
				return nil
			default:
			}
		}
	}
}
