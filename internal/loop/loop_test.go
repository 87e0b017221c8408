package loop

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/steady/internal/draw"
	"github.com/tomz197/steady/internal/input"
)

// syncBuffer guards a bytes.Buffer shared with the loop goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testOptions() Options {
	return Options{
		GameConfig: GameConfig{
			Store:  &fakeStore{},
			Logger: log.New(io.Discard),
		},
		TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
	}
}

func TestRunQuitsFromMenu(t *testing.T) {
	var out syncBuffer
	err := Run(context.Background(), strings.NewReader("q"), &out, testOptions())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "\033[?1000h\033[?1006h") || !strings.Contains(s, "\033[?1006l\033[?1000l") {
		t.Fatalf("mouse reporting not enabled and restored")
	}
	if !strings.HasSuffix(s, "\033[?1049l") {
		t.Fatalf("alternate screen not left last")
	}
}

func TestEventsAfterQuitAreDropped(t *testing.T) {
	g := NewGame(testOptions().GameConfig)
	r := draw.NewRenderer(io.Discard, func() (int, int, error) { return 80, 24, nil }, 1024, 768, 200, 75)
	events := []input.Event{
		{Kind: input.KindKey, Key: input.KeyInterrupt},
		{Kind: input.KindKey, Key: input.KeyEnter},
	}
	if applyEvents(g, r, events, t0) {
		t.Fatalf("applyEvents should report the quit")
	}
	if g.Mode() != ModeMenu {
		t.Fatalf("Enter after Ctrl-C was applied: mode %v", g.Mode())
	}

	g = NewGame(testOptions().GameConfig)
	if !applyEvents(g, r, events[1:], t0) || g.Mode() != ModeCountdown {
		t.Fatalf("Enter alone should start the countdown, mode %v", g.Mode())
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var out syncBuffer
	err := Run(ctx, pr, &out, testOptions())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(out.String(), "Hold your gun steady") {
		t.Fatalf("menu was never drawn")
	}
}

func TestRunIdleTimeout(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	opts := testOptions()
	opts.IdleTimeout = 40 * time.Millisecond
	opts.IdleWarn = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out syncBuffer
	if err := Run(ctx, pr, &out, opts); err != nil {
		t.Fatalf("idle timeout should end the loop cleanly, got %v", err)
	}
	if !strings.Contains(out.String(), "disconnecting in") {
		t.Fatalf("idle warning never shown")
	}
}

func TestRunRenderError(t *testing.T) {
	opts := testOptions()
	opts.TermSizeFunc = func() (int, int, error) { return 0, 0, errors.New("no tty") }

	pr, pw := io.Pipe()
	defer pw.Close()
	err := Run(context.Background(), pr, io.Discard, opts)
	if err == nil || !strings.Contains(err.Error(), "no tty") {
		t.Fatalf("err = %v", err)
	}
}

func TestRunInputEOF(t *testing.T) {
	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- Run(context.Background(), strings.NewReader(""), &out, testOptions()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("loop kept running after input EOF")
	}
}
