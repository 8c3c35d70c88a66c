package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/gitlink/internal/adapters/oauth"
	"github.com/renato0307/gitlink/internal/adapters/scheduler"
	"github.com/renato0307/gitlink/internal/config"
	"github.com/renato0307/gitlink/internal/logging"
	"github.com/renato0307/gitlink/internal/ui"
)

// RunCmd starts the TUI application
type RunCmd struct {
	Dev bool `help:"Enable development mode (shows version info in the header)"`
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	logging.Logger.Info("Starting gitlink TUI")

	keys, err := validatedKeys(cli.settings)
	if err != nil {
		return err
	}

	// the program does not exist until the flow does, so the device code hook
	// looks it up when it fires
	var program *tea.Program
	onCode := func(code oauth.DeviceCode) {
		logging.Logger.Info("Device code issued", "verification_uri", code.VerificationURI)
		if err := cli.Container.Opener.Open(code.VerificationURI); err != nil {
			logging.Logger.Warn("Failed to open verification page", "error", err)
		}
		if program != nil {
			program.Send(ui.DeviceCodeMsg{
				ExpiresAt:       code.ExpiresAt,
				UserCode:        code.UserCode,
				VerificationURI: code.VerificationURI,
			})
		}
	}

	controller, err := cli.Container.NewFlow(context.Background(), FlowOptions{
		OnDeviceCode: onCode,
		Scheduler:    scheduler.NewClock(),
	})
	if err != nil {
		return err
	}
	defer controller.Close()

	model := ui.NewModel(ui.Options{
		Controller: controller,
		DevMode:    r.Dev,
		Keys:       keys,
		Opener:     cli.Container.Opener,
	})
	defer model.Close()

	logging.Logger.Debug("Initializing Bubble Tea program")
	program = tea.NewProgram(model, tea.WithAltScreen())

	logging.Logger.Info("Starting TUI program")
	if _, err := program.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}

func validatedKeys(settings *config.Settings) (config.KeyBindingsConfig, error) {
	if settings == nil || settings.Keys == nil {
		return nil, nil
	}
	if err := settings.Keys.Validate(ui.GetValidKeyNames()); err != nil {
		return nil, fmt.Errorf("invalid key bindings in settings.json: %w", err)
	}
	logging.Logger.Debug("Custom key bindings loaded and validated")
	return settings.Keys, nil
}
