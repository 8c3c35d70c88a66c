package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/gitlink/internal/domain"
)

// setupTestRepo creates a git repo with initial commit for testing
func setupTestRepo(t *testing.T) (string, func(args ...string)) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()

	runGit := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=Test",
			"GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=Test",
			"GIT_COMMITTER_EMAIL=test@test.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v failed: %s", args, out)
	}

	runGit("init", "-b", "main")
	runGit("config", "user.email", "test@test.com")
	runGit("config", "user.name", "Test")

	for _, name := range []string{"homepage.tsx", "App.css", "legacy.tsx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("v1"), 0644))
	}
	runGit("add", ".")
	runGit("commit", "-m", "feat: initial page")

	return dir, runGit
}

func TestWorkspaceStatus(t *testing.T) {
	dir, _ := setupTestRepo(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "homepage.tsx"), []byte("v2"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "footer.tsx"), []byte("new"), 0644))
	require.NoError(t, os.Remove(filepath.Join(dir, "legacy.tsx")))

	status, err := NewWorkspace(dir).Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "main", status.Branch)
	assert.False(t, status.RemoteAhead, "no upstream configured")
	assert.ElementsMatch(t, []domain.FileChange{
		{Kind: domain.ChangeAdded, Path: "footer.tsx"},
		{Kind: domain.ChangeDeleted, Path: "legacy.tsx"},
		{Kind: domain.ChangeModified, Path: "homepage.tsx"},
	}, status.Files)
}

func TestWorkspaceStatusOutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	_, err := NewWorkspace(t.TempDir()).Status(context.Background())
	assert.Error(t, err)
}

func TestWorkspaceRecentCommits(t *testing.T) {
	dir, runGit := setupTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "App.css"), []byte("v2"), 0644))
	runGit("commit", "-am", "fix: colors")

	commits, err := NewWorkspace(dir).RecentCommits(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "fix: colors", commits[0].Message)
	assert.Equal(t, "feat: initial page", commits[1].Message)
	assert.Len(t, commits[0].Hash, 7)
	assert.NotEmpty(t, commits[0].When)
}

func TestParsePorcelain(t *testing.T) {
	out := " M src/app.go\n?? notes.md\nA  added.go\n D gone.go\nR  old.go -> new.go\nMM both.go\n\n"

	assert.Equal(t, []domain.FileChange{
		{Kind: domain.ChangeModified, Path: "src/app.go"},
		{Kind: domain.ChangeAdded, Path: "notes.md"},
		{Kind: domain.ChangeAdded, Path: "added.go"},
		{Kind: domain.ChangeDeleted, Path: "gone.go"},
		{Kind: domain.ChangeModified, Path: "new.go"},
		{Kind: domain.ChangeModified, Path: "both.go"},
	}, parsePorcelain(out))
}

func TestParseLog(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	out := "3a1b2c4\x1ffeat: Update GitHub integration UI\x1f1699999880\n" +
		"8d9e5f6\x1ffix: Resolve authentication edge cases\x1f1699996400\n" +
		"garbage line\n"

	assert.Equal(t, []domain.RecentCommit{
		{Hash: "3a1b2c4", Message: "feat: Update GitHub integration UI", When: "2 minutes ago"},
		{Hash: "8d9e5f6", Message: "fix: Resolve authentication edge cases", When: "1 hour ago"},
	}, parseLog(out, now))
}
