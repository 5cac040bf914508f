package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tomz197/campus-invaders/internal/audio"
	"github.com/tomz197/campus-invaders/internal/config"
	"github.com/tomz197/campus-invaders/internal/input"
	"github.com/tomz197/campus-invaders/internal/loop"
	"github.com/tomz197/campus-invaders/internal/loop/client"
	"github.com/tomz197/campus-invaders/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "campus-invaders: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := config.Flags("campus-invaders")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	path, _ := flags.GetString("config")
	settings, err := config.Load(path, flags)
	if err != nil {
		return err
	}

	logFile, err := config.OpenLogFile(settings.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger, err := config.NewLogger(settings.Log.Level, logFile)
	if err != nil {
		return err
	}

	var cue loop.DamageCue
	if settings.UI.Sound {
		beeper, err := audio.NewBeeper()
		if err != nil {
			// Non-fatal, the game runs without sound
			logger.Warn("sound disabled", "err", err)
		}
		defer beeper.Close()
		cue = beeper
	}

	var (
		out  client.Terminal
		keys client.KeySource
	)
	switch settings.UI.Backend {
	case config.BackendTcell:
		screen, err := tui.Open(settings.Input.Hold)
		if err != nil {
			return err
		}
		out, keys = screen, screen
	default:
		fd := int(os.Stdin.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enable raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, oldState)
		}()

		stream := input.StartStream(bufio.NewReader(os.Stdin), settings.Input.Hold)
		out, keys = client.NewANSITerminal(os.Stdout, nil), client.NewStreamKeys(stream)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.NewClient(out, keys, client.ClientOptions{
		Username: config.GetEnv("USER", ""),
		Cue:      cue,
		MaxCols:  settings.UI.MaxCols,
		MaxRows:  settings.UI.MaxRows,

		CanvasWidth:  settings.Game.CanvasWidth,
		CanvasHeight: settings.Game.CanvasHeight,
	})
	logger.Info("local game", "backend", settings.UI.Backend, "sound", settings.UI.Sound)
	return c.Run(ctx, settings.Game, logger)
}
