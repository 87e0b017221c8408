package loop

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/steady/internal/audio"
	"github.com/tomz197/steady/internal/difficulty"
	"github.com/tomz197/steady/internal/loop/config"
	"github.com/tomz197/steady/internal/object"
	"github.com/tomz197/steady/internal/session"
	"github.com/tomz197/steady/internal/store"
)

// Persistence stores the best score and the session log.
// *store.Store implements it.
type Persistence interface {
	LoadBest() int
	// SaveBest stores score only if it beats the stored best and reports
	// whether it did.
	SaveBest(score int) (bool, error)
	AppendRecord(rec store.Record) error
}

type nopPersistence struct{}

func (nopPersistence) LoadBest() int { return 0 }

func (nopPersistence) SaveBest(int) (bool, error) { return false, nil }

func (nopPersistence) AppendRecord(store.Record) error { return nil }

// GameConfig configures a Game. Zero values are usable.
type GameConfig struct {
	Store      Persistence
	Cues       audio.Player
	Sound      bool
	Difficulty string
	Logger     *log.Logger
	Rand       *rand.Rand
	Field      object.Field
}

// Game is the menu/countdown/playing/paused/gameover state machine.
// It is driven from a single goroutine.
type Game struct {
	mode    Mode
	running bool

	profile difficulty.Profile
	sound   *audio.Switch
	best    int
	store   Persistence
	logger  *log.Logger
	rng     *rand.Rand
	field   object.Field
	menu    menuLayout

	session     *session.Session
	countdown   int
	countdownAt time.Time
	result      session.Stats
	newBest     bool
}

// NewGame creates a game on the menu and loads the best score.
func NewGame(cfg GameConfig) *Game {
	if cfg.Store == nil {
		cfg.Store = nopPersistence{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Field == (object.Field{}) {
		cfg.Field = object.DefaultField()
	}
	profile, ok := difficulty.ByName(cfg.Difficulty)
	if !ok {
		if cfg.Difficulty != "" {
			cfg.Logger.Warn("unknown difficulty, using default", "difficulty", cfg.Difficulty)
		}
		profile = difficulty.Default()
	}

	return &Game{
		mode:    ModeMenu,
		running: true,
		profile: profile,
		sound:   audio.NewSwitch(cfg.Cues, cfg.Sound),
		best:    cfg.Store.LoadBest(),
		store:   cfg.Store,
		logger:  cfg.Logger,
		rng:     cfg.Rand,
		field:   cfg.Field,
		menu:    newMenuLayout(float64(cfg.Field.Width)),
	}
}

// Mode returns the current screen.
func (g *Game) Mode() Mode { return g.mode }

// Running is false once the player has quit.
func (g *Game) Running() bool { return g.running }

// Profile returns the selected difficulty.
func (g *Game) Profile() difficulty.Profile { return g.profile }

// SoundEnabled reports the sound toggle.
func (g *Game) SoundEnabled() bool { return g.sound.Enabled() }

// Best returns the best score known to this game.
func (g *Game) Best() int { return g.best }

// Session returns the current session, or nil outside countdown/playing/paused/gameover.
func (g *Game) Session() *session.Session { return g.session }

// Countdown returns the number shown during the countdown.
func (g *Game) Countdown() int { return g.countdown }

// Result returns the stats of the last finished session.
func (g *Game) Result() session.Stats { return g.result }

// Press applies a control. Controls that mean nothing in the current mode are ignored.
func (g *Game) Press(c Control, now time.Time) {
	if c == ControlInterrupt {
		g.quit("interrupt")
		return
	}

	switch g.mode {
	case ModeMenu:
		switch c {
		case ControlStart:
			g.startCountdown(now)
		case ControlQuit:
			g.quit("menu")
		case ControlNextDifficulty:
			g.selectDifficulty(difficulty.Index(g.profile.Name) + 1)
		case ControlSound:
			g.toggleSound()
		default:
			if i := c.difficultyIndex(); i >= 0 {
				g.selectDifficulty(i)
			}
		}

	case ModePlaying:
		if c == ControlPause {
			g.session.Pause(now)
			g.mode = ModePaused
		}

	case ModePaused:
		switch c {
		case ControlPause, ControlResume:
			g.session.Resume(now)
			g.mode = ModePlaying
		case ControlQuit, ControlAbandon:
			g.logger.Info("session abandoned", "score", g.session.Score)
			g.toMenu()
		case ControlSound:
			g.toggleSound()
		}

	case ModeGameOver:
		if c != ControlNone {
			g.toMenu()
		}
	}
}

// Click applies a left click at playfield coordinates.
func (g *Game) Click(x, y float64, now time.Time) {
	switch g.mode {
	case ModeMenu:
		g.menuClick(x, y, now)
	case ModePlaying:
		g.session.RegisterShot(x, y, now)
		if g.session.Ended() != session.EndNone {
			g.finish(now)
		}
	case ModeGameOver:
		g.toMenu()
	}
}

func (g *Game) menuClick(x, y float64, now time.Time) {
	switch {
	case g.menu.start.Contains(x, y):
		g.startCountdown(now)
	case g.menu.quit.Contains(x, y):
		g.quit("menu")
	case g.menu.sound.Contains(x, y):
		g.toggleSound()
	default:
		for i, r := range g.menu.difficulty {
			if r.Contains(x, y) {
				g.selectDifficulty(i)
				return
			}
		}
	}
}

// Tick advances time-driven state: the countdown and the running session.
func (g *Game) Tick(now time.Time) {
	switch g.mode {
	case ModeCountdown:
		for g.countdown > 0 && now.Sub(g.countdownAt) >= time.Second {
			g.countdown--
			g.countdownAt = g.countdownAt.Add(time.Second)
		}
		if g.countdown <= 0 {
			g.session.Start(now)
			g.mode = ModePlaying
			g.logger.Debug("session started", "difficulty", g.profile.Name)
		}
	case ModePlaying:
		g.session.Tick(now)
		if g.session.Ended() != session.EndNone {
			g.finish(now)
		}
	}
}

func (g *Game) startCountdown(now time.Time) {
	g.session = session.New(session.Options{
		Profile: g.profile,
		Field:   g.field,
		Rand:    g.rng,
		Cues:    g.sound,
		Logger:  g.logger,
	})
	g.countdown = config.CountdownStart
	g.countdownAt = now
	g.mode = ModeCountdown
	g.logger.Info("session starting", "difficulty", g.profile.Name)
}

// finish records the session and shows the game over screen. Storage
// failures are logged; the player never sees them.
func (g *Game) finish(now time.Time) {
	g.result = g.session.Stats()
	g.newBest = false
	saved, err := g.store.SaveBest(g.result.Score)
	switch {
	case err != nil:
		g.logger.Warn("could not save best score", "err", err)
		g.newBest = g.result.Score > g.best
	case saved:
		g.newBest = true
	default:
		// Another session may have raised the stored best meanwhile.
		g.best = max(g.best, g.store.LoadBest())
	}
	if g.newBest {
		g.best = g.result.Score
	}
	rec := store.Record{
		Time:       now,
		Difficulty: g.result.Difficulty,
		Score:      g.result.Score,
		MaxCombo:   g.result.MaxCombo,
		Accuracy:   g.result.Accuracy,
	}
	if err := g.store.AppendRecord(rec); err != nil {
		g.logger.Warn("could not append session record", "err", err)
	}

	g.logger.Info("session ended",
		"reason", g.result.Reason,
		"score", g.result.Score,
		"max_combo", g.result.MaxCombo,
		"accuracy", g.result.Accuracy,
		"best", g.newBest)
	g.mode = ModeGameOver
}

func (g *Game) toMenu() {
	g.session = nil
	g.countdown = 0
	g.best = max(g.best, g.store.LoadBest())
	g.mode = ModeMenu
}

func (g *Game) selectDifficulty(i int) {
	g.profile = difficulty.At(i)
	g.logger.Debug("difficulty selected", "difficulty", g.profile.Name)
}

func (g *Game) toggleSound() {
	on := g.sound.Toggle()
	g.logger.Debug("sound toggled", "enabled", on)
}

func (g *Game) quit(from string) {
	g.running = false
	g.logger.Debug("quit", "from", from)
}
