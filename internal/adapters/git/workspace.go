package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/logging"
	"github.com/renato0307/gitlink/internal/ports"
)

// Workspace reads the status of a local git checkout with the git CLI.
// It never writes to the repository.
type Workspace struct {
	now  func() time.Time
	path string
}

var _ ports.WorkspaceInspector = (*Workspace)(nil)

// NewWorkspace creates an inspector for the checkout at path
func NewWorkspace(path string) *Workspace {
	return &Workspace{now: time.Now, path: path}
}

// Status implements ports.WorkspaceInspector. Branch and dirty files are required;
// a missing upstream only means RemoteAhead is false.
func (w *Workspace) Status(ctx context.Context) (domain.WorkspaceStatus, error) {
	logging.Logger.Debug("Reading workspace status", "path", w.path)

	var status domain.WorkspaceStatus
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		branch, err := w.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
		if err != nil {
			return err
		}
		status.Branch = strings.TrimSpace(branch)
		return nil
	})

	g.Go(func() error {
		out, err := w.git(ctx, "status", "--porcelain=v1", "--untracked-files=all")
		if err != nil {
			return err
		}
		status.Files = parsePorcelain(out)
		return nil
	})

	g.Go(func() error {
		out, err := w.git(ctx, "rev-list", "--count", "HEAD..@{upstream}")
		if err != nil {
			logging.Logger.Debug("No upstream to compare with", "error", err)
			return nil
		}
		behind, err := strconv.Atoi(strings.TrimSpace(out))
		if err != nil {
			return fmt.Errorf("failed to parse behind count: %w", err)
		}
		status.RemoteAhead = behind > 0
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.WorkspaceStatus{}, err
	}

	logging.Logger.Debug("Workspace status read",
		"branch", status.Branch,
		"files", len(status.Files),
		"remote_ahead", status.RemoteAhead)
	return status, nil
}

// RecentCommits implements ports.WorkspaceInspector
func (w *Workspace) RecentCommits(ctx context.Context, limit int) ([]domain.RecentCommit, error) {
	if limit <= 0 {
		limit = 10
	}
	out, err := w.git(ctx, "log", "-n", strconv.Itoa(limit), "--format=%h%x1f%s%x1f%ct")
	if err != nil {
		// a repository without commits has no history to show
		if strings.Contains(err.Error(), "does not have any commits") {
			return nil, nil
		}
		return nil, err
	}
	return parseLog(out, w.now()), nil
}

func (w *Workspace) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = w.path

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git %s failed: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return string(out), nil
}

// parsePorcelain turns `git status --porcelain=v1` output into file changes
func parsePorcelain(out string) []domain.FileChange {
	var files []domain.FileChange
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		code, path := line[:2], line[3:]
		// renames and copies are reported as "old -> new"
		if idx := strings.Index(path, " -> "); idx >= 0 {
			path = path[idx+4:]
		}
		files = append(files, domain.FileChange{Kind: changeKind(code), Path: strings.Trim(path, `"`)})
	}
	return files
}

func changeKind(code string) domain.ChangeKind {
	switch {
	case code == "??" || strings.ContainsRune(code, 'A'):
		return domain.ChangeAdded
	case strings.ContainsRune(code, 'D'):
		return domain.ChangeDeleted
	default:
		return domain.ChangeModified
	}
}

// parseLog parses `git log --format=%h%x1f%s%x1f%ct` output
func parseLog(out string, now time.Time) []domain.RecentCommit {
	var commits []domain.RecentCommit
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		parts := strings.Split(line, "\x1f")
		if len(parts) != 3 {
			continue
		}
		commit := domain.RecentCommit{Hash: parts[0], Message: parts[1]}
		if unix, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			commit.When = humanize.RelTime(time.Unix(unix, 0), now, "ago", "from now")
		}
		commits = append(commits, commit)
	}
	return commits
}
