package loop

import (
	"time"

	"github.com/tomz197/steady/internal/scene"
)

// Menu buttons in playfield units, centered horizontally.
const (
	menuButtonW  = 200
	menuButtonH  = 45
	startButtonY = 250
	quitButtonY  = 320

	soundToggleW = 100
	soundToggleH = 30
	soundToggleY = 455
)

// Difficulty buttons: three in a row, centered.
const (
	difficultyButtonY     = 400
	difficultyButtonW     = 80
	difficultyButtonH     = 35
	difficultyButtonGap   = 20
	difficultyButtonCount = 3
)

// Text rows in playfield units.
const (
	titleY    = 120
	subtitleY = 170
	soundY    = 470
	menuBestY = 520
	hintY     = 738

	hudX    = 20
	hudTopY = 20
	hudStep = 40

	gameOverTitleY = 200
	gameOverScoreY = 250
	gameOverBestY  = 300
	gameOverStatsY = 350
	gameOverHintY  = 400
)

// Inactivity, for remote sessions.
const (
	InactivityWarn       = 90 * time.Second
	InactivityDisconnect = 120 * time.Second
)

// menuLayout holds the clickable menu areas for one field width.
type menuLayout struct {
	start      scene.Rect
	quit       scene.Rect
	sound      scene.Rect
	difficulty [difficultyButtonCount]scene.Rect
}

func newMenuLayout(fieldWidth float64) menuLayout {
	cx := fieldWidth / 2
	m := menuLayout{
		start: scene.Rect{X: cx - menuButtonW/2, Y: startButtonY, W: menuButtonW, H: menuButtonH, Color: scene.ButtonGo},
		quit:  scene.Rect{X: cx - menuButtonW/2, Y: quitButtonY, W: menuButtonW, H: menuButtonH, Color: scene.ButtonStop},
		sound: scene.Rect{X: cx - soundToggleW/2, Y: soundToggleY, W: soundToggleW, H: soundToggleH},
	}
	for i := range m.difficulty {
		m.difficulty[i] = difficultyButton(i, fieldWidth)
	}
	return m
}

// difficultyButton returns the i-th difficulty button rectangle.
func difficultyButton(i int, fieldWidth float64) scene.Rect {
	total := float64(difficultyButtonW*difficultyButtonCount + difficultyButtonGap*(difficultyButtonCount-1))
	startX := fieldWidth/2 - total/2
	return scene.Rect{
		X: startX + float64(i*(difficultyButtonW+difficultyButtonGap)),
		Y: difficultyButtonY,
		W: difficultyButtonW,
		H: difficultyButtonH,
	}
}
