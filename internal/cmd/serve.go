package cmd

import (
	"context"

	"github.com/renato0307/gitlink/internal/adapters/scheduler"
	"github.com/renato0307/gitlink/internal/logging"
	"github.com/renato0307/gitlink/internal/server"
	"github.com/renato0307/gitlink/internal/services"
)

// ServeCmd serves the TUI over SSH
type ServeCmd struct {
	Host string `help:"Address to listen on (overrides ssh_host)"`
	Port int    `help:"Port to listen on (overrides ssh_port)"`
}

// Run starts the SSH server
func (s *ServeCmd) Run(cli *CLI) error {
	keys, err := validatedKeys(cli.settings)
	if err != nil {
		return err
	}

	host, port := cli.settings.SSHAddress()
	if s.Host != "" {
		host = s.Host
	}
	if s.Port != 0 {
		port = s.Port
	}

	srv, err := server.NewServer(server.Config{
		Host: host,
		Keys: keys,
		NewFlow: func(ctx context.Context) (*services.FlowController, error) {
			// device codes have nowhere to go over SSH, the fake provider is typical here
			return cli.Container.NewFlow(ctx, FlowOptions{Scheduler: scheduler.NewClock()})
		},
		Port: port,
	})
	if err != nil {
		return err
	}

	logging.Logger.Info("Serving gitlink over SSH", "address", srv.Address())
	return srv.Start(context.Background())
}
