package loop

import (
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/steady/internal/difficulty"
	"github.com/tomz197/steady/internal/object"
	"github.com/tomz197/steady/internal/scene"
	"github.com/tomz197/steady/internal/session"
	"github.com/tomz197/steady/internal/store"
)

var t0 = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

type fakeStore struct {
	best    int
	saved   []int
	records []store.Record
	saveErr error
}

func (f *fakeStore) LoadBest() int { return f.best }

func (f *fakeStore) SaveBest(score int) (bool, error) {
	if f.saveErr != nil {
		return false, f.saveErr
	}
	if score <= f.best {
		return false, nil
	}
	f.saved = append(f.saved, score)
	f.best = score
	return true, nil
}

func (f *fakeStore) AppendRecord(rec store.Record) error {
	f.records = append(f.records, rec)
	return nil
}

func newTestGame(fs *fakeStore) *Game {
	return NewGame(GameConfig{
		Store:  fs,
		Sound:  true,
		Logger: log.New(io.Discard),
		Rand:   rand.New(rand.NewSource(7)),
	})
}

// startPlaying runs the countdown and returns the session start time.
func startPlaying(t *testing.T, g *Game) time.Time {
	t.Helper()
	g.Press(ControlStart, t0)
	start := t0.Add(3 * time.Second)
	g.Tick(start)
	if g.Mode() != ModePlaying {
		t.Fatalf("mode = %v after countdown", g.Mode())
	}
	return start
}

func TestMenuControls(t *testing.T) {
	g := newTestGame(&fakeStore{})
	if g.Mode() != ModeMenu || !g.Running() || g.Profile().Name != difficulty.Normal {
		t.Fatalf("unexpected initial state: %v %v %s", g.Mode(), g.Running(), g.Profile().Name)
	}

	g.Press(DifficultyControl(2), t0)
	if g.Profile().Name != difficulty.Hard {
		t.Fatalf("difficulty = %s", g.Profile().Name)
	}
	g.Press(ControlNextDifficulty, t0)
	if g.Profile().Name != difficulty.Easy {
		t.Fatalf("next difficulty should wrap, got %s", g.Profile().Name)
	}
	g.Press(ControlSound, t0)
	if g.SoundEnabled() {
		t.Fatalf("sound should be off")
	}
	g.Press(ControlPause, t0)
	g.Press(ControlOther, t0)
	if g.Mode() != ModeMenu {
		t.Fatalf("menu should ignore pause, got %v", g.Mode())
	}

	g.Press(ControlQuit, t0)
	if g.Running() {
		t.Fatalf("quit should stop the game")
	}
}

func TestMenuClicks(t *testing.T) {
	g := newTestGame(&fakeStore{})

	b := difficultyButton(0, 1024)
	g.Click(b.X+b.W/2, b.Y+b.H/2, t0)
	if g.Profile().Name != difficulty.Easy {
		t.Fatalf("difficulty click gave %s", g.Profile().Name)
	}
	g.Click(512, 470, t0)
	if g.SoundEnabled() {
		t.Fatalf("sound click should toggle")
	}
	g.Click(10, 10, t0)
	if g.Mode() != ModeMenu || !g.Running() {
		t.Fatalf("empty click changed state")
	}

	g.Click(512, 272, t0)
	if g.Mode() != ModeCountdown || g.Countdown() != 3 {
		t.Fatalf("start click: mode %v countdown %d", g.Mode(), g.Countdown())
	}
	if g.Session().Profile.Name != difficulty.Easy {
		t.Fatalf("session uses %s", g.Session().Profile.Name)
	}

	q := newTestGame(&fakeStore{})
	q.Click(512, 342, t0)
	if q.Running() {
		t.Fatalf("quit click should stop the game")
	}
}

func TestMenuClicksFollowFieldWidth(t *testing.T) {
	g := NewGame(GameConfig{
		Store:  &fakeStore{},
		Sound:  true,
		Logger: log.New(io.Discard),
		Field:  object.Field{Width: 640, Height: 768},
	})

	// Centered on x=320, not on the default 512.
	g.Click(512, 470, t0)
	if !g.SoundEnabled() {
		t.Fatalf("click at the default sound spot toggled a 640-wide menu")
	}
	g.Click(320, 470, t0)
	if g.SoundEnabled() {
		t.Fatalf("sound click at the field center should toggle")
	}
	b := difficultyButton(2, 640)
	g.Click(b.X+b.W/2, b.Y+b.H/2, t0)
	if g.Profile().Name != difficulty.Hard {
		t.Fatalf("difficulty click gave %s", g.Profile().Name)
	}
	g.Click(320, 272, t0)
	if g.Mode() != ModeCountdown {
		t.Fatalf("start click at the field center: mode %v", g.Mode())
	}

	if r := newMenuLayout(640).quit; r.X+r.W/2 != 320 {
		t.Fatalf("quit button not centered: %+v", r)
	}
}

func TestCountdown(t *testing.T) {
	g := newTestGame(&fakeStore{})
	g.Press(ControlStart, t0)

	g.Tick(t0.Add(999 * time.Millisecond))
	if g.Countdown() != 3 {
		t.Fatalf("countdown = %d before one second", g.Countdown())
	}
	g.Tick(t0.Add(time.Second))
	if g.Countdown() != 2 || g.Mode() != ModeCountdown {
		t.Fatalf("countdown = %d mode %v", g.Countdown(), g.Mode())
	}
	g.Click(500, 500, t0.Add(time.Second))
	g.Press(ControlPause, t0.Add(time.Second))
	if g.Mode() != ModeCountdown {
		t.Fatalf("countdown should ignore input, mode %v", g.Mode())
	}

	start := t0.Add(3 * time.Second)
	g.Tick(start)
	if g.Mode() != ModePlaying {
		t.Fatalf("mode = %v", g.Mode())
	}
	if got := g.Session().Elapsed(start.Add(time.Second)); got != time.Second {
		t.Fatalf("session clock started late: %v", got)
	}
}

func TestPauseResumeAbandon(t *testing.T) {
	fs := &fakeStore{}
	g := newTestGame(fs)
	start := startPlaying(t, g)
	g.Tick(start)

	g.Press(ControlPause, start.Add(time.Second))
	if g.Mode() != ModePaused || !g.Session().Paused() {
		t.Fatalf("pause failed: %v", g.Mode())
	}
	g.Click(-10, -10, start.Add(2*time.Second))
	if g.Session().Shots != 0 {
		t.Fatalf("clicks while paused must be ignored")
	}

	g.Press(ControlResume, start.Add(time.Minute))
	if g.Mode() != ModePlaying {
		t.Fatalf("resume failed: %v", g.Mode())
	}
	if got := g.Session().Elapsed(start.Add(time.Minute)); got != time.Second {
		t.Fatalf("paused time counted: elapsed %v", got)
	}

	g.Press(ControlPause, start.Add(time.Minute))
	g.Press(ControlQuit, start.Add(time.Minute))
	if g.Mode() != ModeMenu || g.Session() != nil {
		t.Fatalf("abandon should return to a clean menu")
	}
	if len(fs.records) != 0 || len(fs.saved) != 0 {
		t.Fatalf("abandoned session was persisted")
	}
	if !g.Running() {
		t.Fatalf("q while paused must not quit the game")
	}
}

func TestLastPointEndsGame(t *testing.T) {
	fs := &fakeStore{}
	g := newTestGame(fs)
	start := startPlaying(t, g)
	g.Tick(start)
	g.Session().Score = 1

	g.Click(-10, -10, start.Add(time.Second))
	if g.Mode() != ModeGameOver {
		t.Fatalf("mode = %v", g.Mode())
	}
	r := g.Result()
	if r.Score != 0 || r.Reason != session.EndDepleted || r.Shots != 1 {
		t.Fatalf("result %+v", r)
	}
	if len(fs.records) != 1 || fs.records[0].Score != 0 || fs.records[0].Difficulty != difficulty.Normal {
		t.Fatalf("records %+v", fs.records)
	}
	if len(fs.saved) != 0 {
		t.Fatalf("0 is not a new best, saved %v", fs.saved)
	}

	g.Press(ControlOther, start.Add(2*time.Second))
	if g.Mode() != ModeMenu || g.Session() != nil {
		t.Fatalf("any key should return to menu")
	}
}

func TestTimeUpSavesBest(t *testing.T) {
	fs := &fakeStore{best: 20}
	g := newTestGame(fs)
	start := startPlaying(t, g)
	g.Session().Score = 42

	end := start.Add(180 * time.Second)
	g.Tick(end)
	if g.Mode() != ModeGameOver || g.Result().Reason != session.EndTimeUp {
		t.Fatalf("mode %v result %+v", g.Mode(), g.Result())
	}
	if g.Best() != 42 || len(fs.saved) != 1 || fs.saved[0] != 42 {
		t.Fatalf("best %d saved %v", g.Best(), fs.saved)
	}
	if len(fs.records) != 1 || !fs.records[0].Time.Equal(end) {
		t.Fatalf("records %+v", fs.records)
	}

	g.Click(1, 1, end)
	if g.Mode() != ModeMenu {
		t.Fatalf("click should return to menu")
	}
}

func TestLowerScoreKeepsBest(t *testing.T) {
	fs := &fakeStore{best: 50}
	g := newTestGame(fs)
	start := startPlaying(t, g)
	g.Session().Score = 12
	g.Tick(start.Add(180 * time.Second))

	if g.Best() != 50 || len(fs.saved) != 0 || len(fs.records) != 1 {
		t.Fatalf("best %d saved %v records %d", g.Best(), fs.saved, len(fs.records))
	}
}

func TestSharedStoreKeepsHighestBest(t *testing.T) {
	st, err := store.Open(t.TempDir(), log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	first := NewGame(GameConfig{Store: st, Logger: log.New(io.Discard), Rand: rand.New(rand.NewSource(1))})
	second := NewGame(GameConfig{Store: st, Logger: log.New(io.Discard), Rand: rand.New(rand.NewSource(2))})

	start := startPlaying(t, first)
	startPlaying(t, second)

	first.Session().Score = 50
	first.Tick(start.Add(180 * time.Second))
	second.Session().Score = 20
	second.Tick(start.Add(180 * time.Second))

	if got := st.LoadBest(); got != 50 {
		t.Fatalf("stored best = %d after scores 50 then 20, want 50", got)
	}
	if second.Best() != 50 {
		t.Fatalf("second game best = %d, want the stored 50", second.Best())
	}
	if out := labels(second.Frame(start.Add(180 * time.Second))); strings.Contains(out, "New best") {
		t.Fatalf("20 reported as a new best:\n%s", out)
	}
	if recs, _ := st.Records(); len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
}

func TestSaveFailureIsNotFatal(t *testing.T) {
	fs := &fakeStore{saveErr: errors.New("disk full")}
	g := newTestGame(fs)
	start := startPlaying(t, g)
	g.Session().Score = 5
	g.Tick(start.Add(180 * time.Second))

	if g.Mode() != ModeGameOver || !g.Running() {
		t.Fatalf("save failure changed flow: %v", g.Mode())
	}
	if len(fs.records) != 1 {
		t.Fatalf("record should still be appended")
	}
}

func TestInterruptFromAnyMode(t *testing.T) {
	for _, setup := range []func(*Game){
		func(g *Game) {},
		func(g *Game) { g.Press(ControlStart, t0) },
		func(g *Game) { g.Press(ControlStart, t0); g.Tick(t0.Add(3 * time.Second)) },
		func(g *Game) {
			g.Press(ControlStart, t0)
			g.Tick(t0.Add(3 * time.Second))
			g.Press(ControlPause, t0.Add(3*time.Second))
		},
	} {
		g := newTestGame(&fakeStore{})
		setup(g)
		g.Press(ControlInterrupt, t0.Add(4*time.Second))
		if g.Running() {
			t.Errorf("interrupt ignored in mode %v", g.Mode())
		}
	}
}

func labels(f scene.Frame) string {
	var b strings.Builder
	for _, l := range f.Labels {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func TestFrames(t *testing.T) {
	g := newTestGame(&fakeStore{best: 7})

	menu := g.Frame(t0)
	if !strings.Contains(labels(menu), "Best: 7") || len(menu.Rects) != 5 {
		t.Fatalf("menu frame: %d rects, labels:\n%s", len(menu.Rects), labels(menu))
	}
	greens := 0
	for _, r := range menu.Rects {
		if r.Color == scene.Green {
			greens++
		}
	}
	if greens != 1 {
		t.Fatalf("expected exactly one selected difficulty, got %d", greens)
	}

	g.Press(ControlStart, t0)
	if !strings.Contains(labels(g.Frame(t0)), "3") {
		t.Fatalf("countdown frame should show 3")
	}

	start := t0.Add(3 * time.Second)
	g.Tick(start)
	g.Tick(start)
	play := g.Frame(start)
	text := labels(play)
	for _, want := range []string{"Score: 10", "Time left: 180s", "Best: 7", "Combo: 0", "Accuracy: 0.0%", "Difficulty: Normal"} {
		if !strings.Contains(text, want) {
			t.Errorf("HUD missing %q:\n%s", want, text)
		}
	}
	if len(play.Circles) != 3 {
		t.Fatalf("expected 3 targets drawn, got %d", len(play.Circles))
	}

	g.Press(ControlPause, start)
	paused := g.Frame(start)
	if !paused.Dim || !strings.Contains(labels(paused), "Paused") {
		t.Fatalf("pause overlay missing")
	}

	g.Press(ControlResume, start)
	g.Session().Score = 1
	g.Click(-10, -10, start)
	if !strings.Contains(labels(g.Frame(start)), "Final score: 0") {
		t.Fatalf("game over frame:\n%s", labels(g.Frame(start)))
	}
}
