// Package loop runs the game: the mode state machine and the fixed-rate
// input, update, draw cycle around it.
package loop

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/steady/internal/draw"
	"github.com/tomz197/steady/internal/input"
	"github.com/tomz197/steady/internal/loop/config"
	"github.com/tomz197/steady/internal/scene"
)

// Options configures Run.
type Options struct {
	GameConfig

	TermSizeFunc draw.TermSizeFunc

	// IdleTimeout ends the loop after that long without input; zero disables it.
	// A warning is shown from IdleWarn on.
	IdleTimeout time.Duration
	IdleWarn    time.Duration
}

// Run starts the main game loop with the Input → Update → Draw cycle.
// It returns when the player quits, input hits EOF, the idle timeout fires
// or ctx is done.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	game := NewGame(opts.GameConfig)
	stream := input.StartStream(r)
	defer stream.Stop()
	renderer := draw.NewRenderer(w, opts.TermSizeFunc,
		config.FieldWidth, config.FieldHeight, config.MaxTermWidth, config.MaxTermHeight)

	draw.EnterAltScreen(w)
	draw.HideCursor(w)
	input.EnableMouse(w)
	defer func() {
		input.DisableMouse(w)
		draw.ShowCursor(w)
		draw.ClearScreen(w)
		draw.ExitAltScreen(w)
	}()

	lastInput := time.Now()
	for game.Running() {
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		events := stream.ReadEvents()
		if len(events) > 0 {
			lastInput = frameStart
		}
		if !applyEvents(game, renderer, events, frameStart) {
			return nil
		}
		if stream.Closed() {
			opts.Logger.Debug("input closed")
			return nil
		}

		// ===== UPDATE PHASE =====
		game.Tick(frameStart)

		// ===== DRAW PHASE =====
		frame := game.Frame(frameStart)
		if opts.IdleTimeout > 0 {
			idle := frameStart.Sub(lastInput)
			if idle >= opts.IdleTimeout {
				opts.Logger.Info("disconnecting idle player", "idle", idle.Round(time.Second))
				return nil
			}
			if opts.IdleWarn > 0 && idle >= opts.IdleWarn {
				left := (opts.IdleTimeout - idle).Round(time.Second)
				frame.AddCentered(fmt.Sprintf("No input: disconnecting in %s", left),
					config.FieldWidth/2, config.FieldHeight-70, scene.Yellow)
			}
		}
		if err := renderer.Render(frame); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		// ===== FRAME TIMING =====
		wait := config.TargetFrameTime - time.Since(frameStart)
		if wait < 0 {
			wait = 0
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil
}

// applyEvents applies events in order and reports whether the game is still
// running. Events after a quit are dropped.
func applyEvents(game *Game, renderer *draw.Renderer, events []input.Event, now time.Time) bool {
	for _, ev := range events {
		applyEvent(game, renderer, ev, now)
		if !game.Running() {
			return false
		}
	}
	return true
}

// applyEvent routes one input event to the game. Clicks outside the
// playfield are dropped.
func applyEvent(game *Game, renderer *draw.Renderer, ev input.Event, now time.Time) {
	if ev.Kind == input.KindMouse {
		if !ev.LeftClick() {
			return
		}
		if x, y, ok := renderer.TerminalToLogical(ev.Col, ev.Row); ok {
			game.Click(x, y, now)
		}
		return
	}
	game.Press(Bind(ev), now)
}
