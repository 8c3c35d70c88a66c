package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/gitlink/internal/adapters/browser"
	"github.com/renato0307/gitlink/internal/adapters/fake"
	adaptergit "github.com/renato0307/gitlink/internal/adapters/git"
	"github.com/renato0307/gitlink/internal/adapters/oauth"
	adapterstorage "github.com/renato0307/gitlink/internal/adapters/storage"
	"github.com/renato0307/gitlink/internal/config"
	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/flow"
	"github.com/renato0307/gitlink/internal/logging"
	"github.com/renato0307/gitlink/internal/ports"
	"github.com/renato0307/gitlink/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	Catalog    *adapterstorage.Catalog
	Opener     *browser.Opener
	References *services.ReferenceService
	Settings   *config.Settings
}

// FlowOptions are the per-session parts of a connect flow
type FlowOptions struct {
	// OnDeviceCode receives the code to enter when the GitHub device flow is used
	OnDeviceCode func(oauth.DeviceCode)
	Scheduler    ports.Scheduler
}

// NewContainer opens the catalog, seeds it and wires the shared adapters
func NewContainer(ctx context.Context, settings *config.Settings) (*Container, error) {
	catalogPath := settings.CatalogPath
	if catalogPath == "" {
		catalogPath = adapterstorage.MemoryPath
	}

	catalog, err := adapterstorage.NewCatalog(catalogPath)
	if err != nil {
		return nil, err
	}

	fixtures, err := loadFixtures(settings.FixturesPath)
	if err != nil {
		catalog.Close()
		return nil, err
	}
	seeded, err := catalog.SeedIfEmpty(ctx, fixtures)
	if err != nil {
		catalog.Close()
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}
	logging.Logger.Debug("Catalog ready", "path", catalogPath, "seeded", seeded)

	var workspace ports.WorkspaceInspector = catalog
	if settings.WorkspacePath != "" {
		logging.Logger.Info("Reading workspace status from git", "path", settings.WorkspacePath)
		workspace = adaptergit.NewWorkspace(settings.WorkspacePath)
	}

	return &Container{
		Catalog:    catalog,
		Opener:     browser.NewOpener(settings.Browser),
		References: services.NewReferenceService(catalog, workspace),
		Settings:   settings,
	}, nil
}

func loadFixtures(path string) (adapterstorage.Fixtures, error) {
	if path == "" {
		return adapterstorage.DefaultFixtures()
	}
	logging.Logger.Info("Loading fixtures", "path", path)
	return adapterstorage.LoadFixtures(path)
}

// NewFlow builds a connect flow controller with freshly loaded reference data
func (c *Container) NewFlow(ctx context.Context, opts FlowOptions) (*services.FlowController, error) {
	identity, err := c.identityProvider(opts.OnDeviceCode)
	if err != nil {
		return nil, err
	}

	ref, err := c.References.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	initial := flow.NewState(ref)
	if repo := c.Settings.ConnectedRepository; repo != "" {
		account, err := c.Catalog.Account(ctx)
		if err != nil {
			return nil, err
		}
		logging.Logger.Info("Starting with a connected repository", "repository", repo)
		initial = flow.NewConnectedState(ref, flow.Preconnection{Account: account, FullPath: repo})
	}

	deps := services.FlowDeps{
		Generator: &fake.Generator{},
		Host:      c.Catalog,
		Identity:  identity,
		Markers:   &fake.MarkerStore{},
		Pusher:    c.Catalog,
		Scheduler: opts.Scheduler,
		Sync:      c.Catalog,
	}
	return services.NewFlowController(flow.NewMachine(c.Settings.Timings()), initial, deps), nil
}

func (c *Container) identityProvider(onCode func(oauth.DeviceCode)) (ports.IdentityProvider, error) {
	if c.Settings.IdentityMode() != config.IdentityGitHub {
		return fake.NewIdentity(c.Catalog), nil
	}
	logging.Logger.Info("Using GitHub device flow identity provider")
	deviceFlow, err := oauth.NewDeviceFlow(oauth.Config{
		ClientID: c.Settings.GitHubClientID,
		OnCode:   onCode,
		Scopes:   c.Settings.GitHubScopes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create device flow: %w", err)
	}
	return deviceFlow, nil
}

// Account returns the account the fake identity provider signs in as
func (c *Container) Account(ctx context.Context) (domain.Account, error) {
	return c.Catalog.Account(ctx)
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.Catalog != nil {
		return c.Catalog.Close()
	}
	return nil
}
