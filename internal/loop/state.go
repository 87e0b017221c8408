package loop

// Mode is the top-level screen the game is on.
type Mode int

const (
	ModeMenu      Mode = iota // Title screen with difficulty and sound selection
	ModeCountdown             // 3-2-1 before a session
	ModePlaying               // Session running
	ModePaused                // Session frozen under an overlay
	ModeGameOver              // Final stats, any input returns to menu
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeCountdown:
		return "countdown"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}
