package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/flow"
	"github.com/renato0307/gitlink/internal/logging"
	"github.com/renato0307/gitlink/internal/ports"
)

// RecentCommitLimit is how many commits the status view lists
const RecentCommitLimit = flow.RecentCommitLimit

// ReferenceService gathers the read-only data the connect flow displays
type ReferenceService struct {
	directory ports.OrganizationDirectory
	workspace ports.WorkspaceInspector
}

// NewReferenceService creates a new ReferenceService
func NewReferenceService(directory ports.OrganizationDirectory, workspace ports.WorkspaceInspector) *ReferenceService {
	return &ReferenceService{
		directory: directory,
		workspace: workspace,
	}
}

// Load queries every collaborator concurrently. Any failure fails the whole load.
func (s *ReferenceService) Load(ctx context.Context) (domain.Reference, error) {
	var (
		orgs    []domain.Organization
		status  domain.WorkspaceStatus
		commits []domain.RecentCommit
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		orgs, err = s.directory.ListOrganizations(ctx)
		if err != nil {
			return fmt.Errorf("list organizations: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		status, err = s.workspace.Status(ctx)
		if err != nil {
			return fmt.Errorf("workspace status: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		commits, err = s.workspace.RecentCommits(ctx, RecentCommitLimit)
		if err != nil {
			return fmt.Errorf("recent commits: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logging.Logger.Error("Failed to load reference data", "error", err)
		return domain.Reference{}, err
	}

	status.RecentCommits = commits
	logging.Logger.Debug("Reference data loaded",
		"organizations", len(orgs),
		"files", len(status.Files),
		"commits", len(commits))

	return domain.Reference{Organizations: orgs, Workspace: status}, nil
}

// Refresh reloads the reference data into the controller
func (s *ReferenceService) Refresh(ctx context.Context, controller *FlowController) error {
	ref, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return controller.Dispatch(flow.ReferenceLoaded{Reference: ref})
}
