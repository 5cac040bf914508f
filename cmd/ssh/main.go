package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/spf13/pflag"

	"github.com/tomz197/campus-invaders/internal/config"
	"github.com/tomz197/campus-invaders/internal/draw"
	"github.com/tomz197/campus-invaders/internal/input"
	"github.com/tomz197/campus-invaders/internal/loop/client"
	"github.com/tomz197/campus-invaders/internal/loop/server"
)

// game serves one independent game per SSH session. The lobby is the only
// state sessions share.
type game struct {
	settings config.Settings
	lobby    *server.Lobby
	logger   *log.Logger
}

func main() {
	flags := config.Flags("campus-ssh")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "campus-ssh: %v\n", err)
		os.Exit(2)
	}
	path, _ := flags.GetString("config")
	settings, err := config.Load(path, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "campus-ssh: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(settings.Log.Level, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "campus-ssh: %v\n", err)
		os.Exit(1)
	}

	g := &game{
		settings: settings,
		lobby:    server.NewLobby(settings.SSH.Leaderboard),
		logger:   logger,
	}

	cfg := settings.SSH
	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithMiddleware(
			g.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	logger.Info("starting SSH server", "host", cfg.Host, "port", cfg.Port, "host_key", cfg.HostKeyPath)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down", "players", g.lobby.Active())

	// Tell every player, then give them time to leave on their own.
	if remaining := g.lobby.Shutdown(cfg.ShutdownTimeout); remaining > 0 {
		logger.Warn("sessions still connected after shutdown timeout", "remaining", remaining)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// middleware runs a game for the session.
func (g *game) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := g.logger.With("user", sess.User())
		logger.Info("new game session", "term", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		sizes := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizes.update(win.Width, win.Height)
			}
		}()

		stream := input.StartStream(bufio.NewReader(sess), g.settings.Input.Hold)
		c := client.NewClient(
			client.NewANSITerminal(sess, sizes.getSize),
			client.NewStreamKeys(stream),
			client.ClientOptions{
				Username:             sess.User(),
				Lobby:                g.lobby,
				MaxCols:              g.settings.UI.MaxCols,
				MaxRows:              g.settings.UI.MaxRows,
				InactivityWarn:       g.settings.UI.InactivityWarn,
				InactivityDisconnect: g.settings.UI.InactivityDisconnect,
				ShutdownGrace:        g.settings.SSH.ShutdownGrace,
				CanvasWidth:          g.settings.Game.CanvasWidth,
				CanvasHeight:         g.settings.Game.CanvasHeight,
			},
		)
		if err := c.Run(sess.Context(), g.settings.Game, logger); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended", "session", c.ID())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
