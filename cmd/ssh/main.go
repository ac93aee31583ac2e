package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
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
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/bombers/internal/arena"
	"github.com/tomz197/bombers/internal/config"
	"github.com/tomz197/bombers/internal/draw"
	"github.com/tomz197/bombers/internal/loop/client"
	"github.com/tomz197/bombers/internal/loop/server"
	"github.com/tomz197/bombers/internal/loop/spectate"
)

const (
	defaultHost         = "::"
	defaultPort         = "2222"
	defaultHostKeyPath  = "/app/keys/host_key"
	defaultSpectatePort = "8081"
)

func main() {
	logger := config.NewLogger("bombers")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	spectatePort := config.GetEnv("SPECTATE_PORT", defaultSpectatePort)
	logger.Info("ssh config", "host", host, "port", port, "host_key", hostKeyPath, "spectate_port", spectatePort)

	opts := server.DefaultOptions()
	opts.Rules = config.ArenaRules(arena.DefaultRules())
	opts.Level.Seed = config.ArenaSeed(uint64(time.Now().UnixNano()))
	opts.Logger = logger.WithPrefix("server")

	gameServer, err := server.NewServer(opts)
	if err != nil {
		logger.Fatal("invalid game configuration", "err", err)
	}

	sshOpts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(gameServer, logger),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger.WithPrefix("ssh")),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		sshOpts = append(sshOpts, wish.WithHostKeyPath(hostKeyPath))
	}

	sshServer, err := wish.NewServer(sshOpts...)
	if err != nil {
		logger.Fatal("failed to create ssh server", "err", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/spectate", spectate.Handler(gameServer, logger.WithPrefix("spectate")))
	httpServer := &http.Server{
		Addr:              net.JoinHostPort(host, spectatePort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverCtx, cancelServer := context.WithCancel(context.Background())
	defer cancelServer()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		gameServer.Run(serverCtx)
		return nil
	})

	g.Go(func() error {
		logger.Info("starting ssh server", "addr", sshServer.Addr)
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("starting spectator feed", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("spectator server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		// Notify players and wait for them to disconnect.
		gameServer.Shutdown(15 * time.Second)
		cancelServer()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return errors.Join(sshServer.Shutdown(shutdownCtx), httpServer.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", "err", err)
	}
	logger.Info("bye")
}

// gameMiddleware handles SSH sessions and runs the game client.
func gameMiddleware(gs server.GameServer, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			logger.Info("new game session", "user", sess.User(), "term", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			c := client.NewClient(gs, bufio.NewReader(sess), sess, client.ClientOptions{
				TermSizeFunc: sizeTracker.getSize,
				Username:     sess.User(),
			})
			if err := c.Run(); err != nil {
				logger.Error("game error", "user", sess.User(), "err", err)
			}

			logger.Info("session ended", "user", sess.User())
			next(sess)
		}
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
