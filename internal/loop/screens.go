package loop

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tomz197/steady/internal/difficulty"
	"github.com/tomz197/steady/internal/object"
	"github.com/tomz197/steady/internal/scene"
)

// Frame builds the picture for the current mode.
func (g *Game) Frame(now time.Time) scene.Frame {
	var f scene.Frame
	switch g.mode {
	case ModeMenu:
		g.drawMenu(&f)
	case ModeCountdown:
		g.drawCountdown(&f)
	case ModePlaying:
		g.drawPlaying(&f, now)
	case ModePaused:
		g.drawPlaying(&f, now)
		g.drawPause(&f)
	case ModeGameOver:
		g.drawGameOver(&f)
	}
	return f
}

func (g *Game) centerX() float64 {
	return float64(g.field.Width) / 2
}

// drawButton paints r with a centered caption.
func drawButton(f *scene.Frame, r scene.Rect, caption string) {
	f.AddRect(r)
	f.AddCentered(caption, r.X+r.W/2, r.Y+r.H/2, scene.White)
}

func (g *Game) drawMenu(f *scene.Frame) {
	cx := g.centerX()
	f.AddCentered("Hold your gun steady", cx, titleY, scene.White)
	f.AddCentered("Reaction training", cx, subtitleY, scene.LightGrey)

	drawButton(f, g.menu.start, "Start")
	drawButton(f, g.menu.quit, "Quit")

	for i, p := range difficulty.All() {
		r := g.menu.difficulty[i]
		r.Color = scene.ButtonIdle
		if p.Name == g.profile.Name {
			r.Color = scene.Green
		}
		drawButton(f, r, p.Name)
	}

	if g.sound.Enabled() {
		f.AddCentered("Sound: on", cx, soundY, scene.Green)
	} else {
		f.AddCentered("Sound: off", cx, soundY, scene.Red)
	}
	f.AddCentered("Best: "+strconv.Itoa(g.best), cx, menuBestY, scene.White)
	f.AddCentered("click or: Enter start, 1-3 difficulty, s sound, q quit", cx, hintY, scene.Grey)
}

func (g *Game) drawCountdown(f *scene.Frame) {
	f.AddCentered(strconv.Itoa(g.countdown), g.centerX(), float64(g.field.Height)/2, scene.White)
}

func (g *Game) drawPlaying(f *scene.Frame, now time.Time) {
	s := g.session
	if err := s.Draw(object.DrawContext{Frame: f}); err != nil {
		g.logger.Error("draw session failed", "err", err)
	}

	lines := []string{
		"Score: " + strconv.Itoa(s.Score),
		fmt.Sprintf("Time left: %ds", int(s.Remaining(now).Seconds())),
		"Best: " + strconv.Itoa(g.best),
		"Combo: " + strconv.Itoa(s.Combo),
		fmt.Sprintf("Accuracy: %.1f%%", s.Accuracy()),
		"Difficulty: " + s.Profile.Name,
	}
	for i, line := range lines {
		f.AddText(line, hudX, float64(hudTopY+i*hudStep), scene.White)
	}
}

func (g *Game) drawPause(f *scene.Frame) {
	f.Dim = true
	cx, cy := g.centerX(), float64(g.field.Height)/2
	f.AddCentered("Paused", cx, cy-60, scene.White)
	f.AddCentered("Esc to resume", cx, cy, scene.White)
	f.AddCentered("Q to quit to menu", cx, cy+60, scene.White)
}

func (g *Game) drawGameOver(f *scene.Frame) {
	cx := g.centerX()
	r := g.result
	f.AddCentered("Game over! ("+r.Reason.String()+")", cx, gameOverTitleY, scene.White)
	f.AddCentered("Final score: "+strconv.Itoa(r.Score), cx, gameOverScoreY, scene.White)
	if g.newBest {
		f.AddCentered("New best: "+strconv.Itoa(g.best), cx, gameOverBestY, scene.Yellow)
	} else {
		f.AddCentered("Best: "+strconv.Itoa(g.best), cx, gameOverBestY, scene.White)
	}
	f.AddCentered(fmt.Sprintf("Max combo: %d   Accuracy: %.1f%%", r.MaxCombo, r.Accuracy), cx, gameOverStatsY, scene.LightGrey)
	f.AddCentered("Click anywhere to return to the menu", cx, gameOverHintY, scene.White)
}
