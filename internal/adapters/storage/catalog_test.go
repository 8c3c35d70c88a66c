package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/gitlink/internal/domain"
)

func newSeededCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })

	fixed := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	catalog.now = func() time.Time { return fixed }

	fixtures, err := DefaultFixtures()
	require.NoError(t, err)
	seeded, err := catalog.SeedIfEmpty(context.Background(), fixtures)
	require.NoError(t, err)
	require.True(t, seeded)
	return catalog
}

func TestDefaultFixtures(t *testing.T) {
	f, err := DefaultFixtures()
	require.NoError(t, err)

	require.Len(t, f.Organizations, 3)
	assert.Equal(t, "Acme Corp", f.Organizations[1].DisplayName)
	assert.Equal(t, "John Doe", f.Account.Name)
	assert.Equal(t, "main", f.Workspace.Branch)
	assert.Len(t, f.Workspace.Files, 4)
	assert.Len(t, f.Commits, 3)
}

func TestLoadFixturesRejectsBadData(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "unknown key",
			content: "[[organizations]]\nid = \"1\"\ncolour = \"red\"\n",
			errMsg:  "unknown fixture keys",
		},
		{
			name:    "duplicate organization",
			content: "[[organizations]]\nid = \"1\"\n[[organizations]]\nid = \"1\"\n",
			errMsg:  "duplicate organization id",
		},
		{
			name:    "bad change kind",
			content: "[workspace]\n[[workspace.files]]\npath = \"a\"\nkind = \"renamed\"\n",
			errMsg:  "unknown change kind",
		},
		{
			name:    "bad commit age",
			content: "[[commits]]\nhash = \"abc\"\ntitle = \"t\"\nage = \"yesterday\"\n",
			errMsg:  "invalid age",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "fixtures.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadFixtures(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCatalogReferenceData(t *testing.T) {
	catalog := newSeededCatalog(t)
	ctx := context.Background()

	orgs, err := catalog.ListOrganizations(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 3)
	assert.Equal(t, domain.Organization{
		AvatarURI:   "https://images.unsplash.com/photo-1560179707-f14e90ef3623?w=64&h=64&fit=crop",
		DisplayName: "Acme Corp",
		ID:          "2",
	}, orgs[1])

	account, err := catalog.Account(ctx)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", account.DisplayName())

	status, err := catalog.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", status.Branch)
	assert.True(t, status.RemoteAhead)
	assert.Equal(t, domain.ChangeSummary{Added: 1, Modified: 3}, domain.Summarize(status.Files))
	assert.Equal(t, "homepage.tsx", status.Files[0].Path)

	commits, err := catalog.RecentCommits(ctx, 10)
	require.NoError(t, err)
	require.Len(t, commits, 3)
	assert.Equal(t, domain.RecentCommit{Hash: "3a1b2c4", Message: "feat: Update GitHub integration UI", When: "2 minutes ago"}, commits[0])
	assert.Equal(t, "1 hour ago", commits[1].When)
	assert.Equal(t, "2 hours ago", commits[2].When)

	seeded, err := catalog.SeedIfEmpty(ctx, Fixtures{})
	require.NoError(t, err)
	assert.False(t, seeded, "second seed is skipped")
}

func TestCatalogCreateRepository(t *testing.T) {
	catalog := newSeededCatalog(t)
	ctx := context.Background()

	repo, err := catalog.CreateRepository(ctx, "2", "Acme Corp Demo")
	require.NoError(t, err)
	assert.Equal(t, "acme-corp/acme-corp-demo", repo.FullPath)

	_, err = catalog.CreateRepository(ctx, "2", "acme-corp-demo")
	require.ErrorIs(t, err, domain.ErrNameConflict)
	assert.Equal(t, domain.KindNameConflict, domain.KindOf(err))

	_, err = catalog.CreateRepository(ctx, "99", "anything")
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestCatalogCommitAndPush(t *testing.T) {
	catalog := newSeededCatalog(t)
	ctx := context.Background()

	status, err := catalog.Status(ctx)
	require.NoError(t, err)

	result, err := catalog.CommitAndPush(ctx, "acme-corp/acme-corp-demo",
		domain.CommitDraft{Title: "feat: new footer", Description: "- Add footer"}, status.Files)
	require.NoError(t, err)
	assert.Len(t, result.Hash, 40)
	assert.Equal(t, "feat: new footer", result.Title)
	assert.Equal(t, domain.ChangeSummary{Added: 1, Modified: 3}, result.Summary)

	commits, err := catalog.RecentCommits(ctx, 2)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, result.ShortHash(), commits[0].Hash)
	assert.Equal(t, "now", commits[0].When)

	// a second commit after the workspace was cleaned is still accepted
	empty, err := catalog.CommitAndPush(ctx, "acme-corp/acme-corp-demo", domain.CommitDraft{Title: "chore: sync"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "chore: sync", empty.Title)
	assert.Zero(t, empty.Summary.Total())
	assert.NotEqual(t, result.Hash, empty.Hash)
}

func TestCatalogEmptyCommitWithoutTitle(t *testing.T) {
	catalog := newSeededCatalog(t)

	result, err := catalog.CommitAndPush(context.Background(), "acme-corp/demo", domain.CommitDraft{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Sync workspace", result.Title)
}

func TestCatalogCommitWithoutTitle(t *testing.T) {
	catalog := newSeededCatalog(t)

	result, err := catalog.CommitAndPush(context.Background(), "acme-corp/demo", domain.CommitDraft{},
		[]domain.FileChange{{Kind: domain.ChangeModified, Path: "a"}, {Kind: domain.ChangeDeleted, Path: "b"}})
	require.NoError(t, err)
	assert.Equal(t, "Update 2 files", result.Title)
	assert.Equal(t, domain.ChangeSummary{Deleted: 1, Modified: 1}, result.Summary)
}

func TestCatalogPull(t *testing.T) {
	catalog := newSeededCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.Pull(ctx, "acme-corp/demo", "main"))

	status, err := catalog.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.RemoteAhead)
}

func TestCatalogPersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gitlink.db")
	catalog, err := NewCatalog(path)
	require.NoError(t, err)

	fixtures, err := DefaultFixtures()
	require.NoError(t, err)
	_, err = catalog.SeedIfEmpty(context.Background(), fixtures)
	require.NoError(t, err)
	_, err = catalog.CreateRepository(context.Background(), "3", "launch")
	require.NoError(t, err)
	require.NoError(t, catalog.Close())

	reopened, err := NewCatalog(path)
	require.NoError(t, err)
	defer reopened.Close()

	_, err = reopened.CreateRepository(context.Background(), "3", "launch")
	assert.ErrorIs(t, err, domain.ErrNameConflict)
}
