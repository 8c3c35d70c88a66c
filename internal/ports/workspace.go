package ports

import (
	"context"

	"github.com/renato0307/gitlink/internal/domain"
)

// WorkspaceInspector reports the local workspace state
type WorkspaceInspector interface {
	RecentCommits(ctx context.Context, limit int) ([]domain.RecentCommit, error)
	Status(ctx context.Context) (domain.WorkspaceStatus, error)
}

// WorkspaceSync brings remote changes into the workspace
type WorkspaceSync interface {
	Pull(ctx context.Context, repository, branch string) error
}

// MessageGenerator summarizes a set of changes into a commit message
type MessageGenerator interface {
	SummarizeChanges(ctx context.Context, files []domain.FileChange) (domain.CommitDraft, error)
}

// CommitPusher commits files and pushes them to the connected repository
type CommitPusher interface {
	CommitAndPush(ctx context.Context, repository string, message domain.CommitDraft, files []domain.FileChange) (domain.CommitResult, error)
}
