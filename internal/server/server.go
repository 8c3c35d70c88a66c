package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"

	"github.com/renato0307/gitlink/internal/config"
	"github.com/renato0307/gitlink/internal/logging"
	"github.com/renato0307/gitlink/internal/services"
)

// FlowFactory builds the connect flow for one SSH session
type FlowFactory func(ctx context.Context) (*services.FlowController, error)

// Config holds the SSH server configuration
type Config struct {
	AuthorizedKeysPath string // defaults to ~/.ssh/authorized_keys
	Host               string
	HostKeyPath        string // defaults to config.GetHostKeyPath()
	Keys               config.KeyBindingsConfig
	NewFlow            FlowFactory
	Port               int
}

// Server serves the gitlink TUI over SSH, one connect flow per session
type Server struct {
	address    string
	keys       config.KeyBindingsConfig
	newFlow    FlowFactory
	wishServer *ssh.Server
}

// NewServer creates a new SSH server instance
func NewServer(cfg Config) (*Server, error) {
	if cfg.NewFlow == nil {
		return nil, errors.New("flow factory is required")
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = config.GetHostKeyPath()
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create SSH directory: %w", err)
	}

	authorizedKeysPath := cfg.AuthorizedKeysPath
	if authorizedKeysPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		authorizedKeysPath = filepath.Join(homeDir, ".ssh", "authorized_keys")
	}

	s := &Server{
		address: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		keys:    cfg.Keys,
		newFlow: cfg.NewFlow,
	}

	// Middleware executes in reverse order (last to first)
	wishServer, err := wish.NewServer(
		wish.WithAddress(s.address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			return authorize(ctx.User(), key, authorizedKeysPath)
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(), // Require PTY
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.wishServer = wishServer
	return s, nil
}

// Address returns host:port the server listens on
func (s *Server) Address() string {
	return s.address
}

// Start starts the SSH server and blocks until an interrupt or ctx is done
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Logger.Info("Starting SSH server", "address", s.address)
	fmt.Printf("SSH server listening on %s\n", s.address)

	errs := make(chan error, 1)
	go func() {
		if err := s.wishServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logging.Logger.Error("SSH server error", "error", err)
			errs <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errs:
		return fmt.Errorf("SSH server failed: %w", err)
	}
	logging.Logger.Info("Shutting down SSH server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.wishServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown SSH server: %w", err)
	}

	logging.Logger.Info("SSH server stopped")
	return nil
}
