package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	files := []FileChange{
		{Path: "homepage.tsx", Kind: ChangeModified},
		{Path: "header.tsx", Kind: ChangeModified},
		{Path: "login.tsx", Kind: ChangeAdded},
		{Path: "old.css", Kind: ChangeDeleted},
		{Path: "mystery", Kind: ""},
	}

	summary := Summarize(files)

	assert.Equal(t, ChangeSummary{Added: 1, Deleted: 1, Modified: 3}, summary)
	assert.Equal(t, 5, summary.Total())
}

func TestReference_CloneSharesNoSlices(t *testing.T) {
	ref := Reference{
		Organizations: []Organization{{ID: "1", DisplayName: "Personal Account"}},
		Workspace: WorkspaceStatus{
			Branch:        "main",
			Files:         []FileChange{{Path: "App.css", Kind: ChangeModified}},
			RecentCommits: []RecentCommit{{Hash: "3a1b2c4", Message: "feat: x"}},
		},
	}

	clone := ref.Clone()
	clone.Organizations[0].DisplayName = "changed"
	clone.Workspace.Files[0].Path = "changed"
	clone.Workspace.RecentCommits[0].Hash = "changed"

	assert.Equal(t, "Personal Account", ref.Organizations[0].DisplayName)
	assert.Equal(t, "App.css", ref.Workspace.Files[0].Path)
	assert.Equal(t, "3a1b2c4", ref.Workspace.RecentCommits[0].Hash)
}

func TestCommitDraft_Message(t *testing.T) {
	assert.Equal(t, "feat: x", CommitDraft{Title: " feat: x "}.Message())
	assert.Equal(t, "feat: x\n\n- one\n- two", CommitDraft{Title: "feat: x", Description: "- one\n- two\n"}.Message())
	assert.True(t, CommitDraft{}.IsEmpty())
}
