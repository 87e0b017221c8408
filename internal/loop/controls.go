package loop

import "github.com/tomz197/steady/internal/input"

// Control is a named game action, independent of the key that triggered it.
type Control int

const (
	ControlNone Control = iota
	ControlStart
	ControlQuit // Quit from the menu; abandons the session when paused
	ControlPause
	ControlResume
	ControlAbandon
	ControlNextDifficulty
	ControlSound
	ControlInterrupt // Leaves the game from any mode
	ControlOther     // Unbound key; only dismisses the game over screen
	ControlDifficulty1
	ControlDifficulty2
	ControlDifficulty3
)

// DifficultyControl returns the control selecting difficulty i (0-based).
func DifficultyControl(i int) Control {
	return ControlDifficulty1 + Control(i)
}

// difficultyIndex returns the difficulty selected by c, or -1.
func (c Control) difficultyIndex() int {
	if c >= ControlDifficulty1 && c <= ControlDifficulty3 {
		return int(c - ControlDifficulty1)
	}
	return -1
}

// Bind maps a key event to a control. Mouse events map to ControlNone.
//
//	Enter, Space  start
//	q             quit (menu), abandon (paused)
//	Esc, p        pause / resume
//	r             resume
//	1 2 3         difficulty
//	Tab, d        next difficulty
//	s, m          sound on/off
//	Ctrl-C        leave
func Bind(ev input.Event) Control {
	if ev.Kind != input.KindKey {
		return ControlNone
	}
	switch ev.Key {
	case input.KeyEnter, input.KeySpace:
		return ControlStart
	case input.KeyEscape:
		return ControlPause
	case input.KeyTab:
		return ControlNextDifficulty
	case input.KeyInterrupt:
		return ControlInterrupt
	case input.KeyRune:
		switch ev.Rune {
		case 'q', 'Q':
			return ControlQuit
		case 'p', 'P':
			return ControlPause
		case 'r', 'R':
			return ControlResume
		case '1', '2', '3':
			return DifficultyControl(int(ev.Rune - '1'))
		case 'd', 'D':
			return ControlNextDifficulty
		case 's', 'S', 'm', 'M':
			return ControlSound
		}
	}
	return ControlOther
}
