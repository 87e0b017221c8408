package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/steady/internal/audio"
	"github.com/tomz197/steady/internal/config"
	"github.com/tomz197/steady/internal/draw"
	"github.com/tomz197/steady/internal/loop"
	"github.com/tomz197/steady/internal/store"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "steady: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.LoadDefault()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(settings.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// Stdout is the game screen, so logs go to a file.
	logFile, err := os.OpenFile(settings.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := config.NewLogger(logFile, settings.Log.Level)

	st, err := store.Open(settings.DataDir, logger)
	if err != nil {
		return err
	}

	synth := audio.NewSynth(settings.Volume)
	var cues audio.Player = synth
	if err := synth.Init(); err != nil {
		logger.Warn("audio unavailable, playing silently", "err", err)
		cues = audio.Nop{}
	}
	defer synth.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	logger.Info("game started", "data_dir", st.Dir(), "difficulty", settings.Difficulty, "sound", settings.Sound)
	err = loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		GameConfig: loop.GameConfig{
			Store:      st,
			Cues:       cues,
			Sound:      settings.Sound,
			Difficulty: settings.Difficulty,
			Logger:     logger,
		},
		TermSizeFunc: draw.DefaultTermSizeFunc,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("game error", "err", err)
		return fmt.Errorf("game error: %w", err)
	}
	logger.Info("game closed")
	return nil
}
