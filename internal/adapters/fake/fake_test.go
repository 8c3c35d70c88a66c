package fake

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/gitlink/internal/domain"
)

func TestIdentityExchangesIssuedMarkerOnce(t *testing.T) {
	ctx := context.Background()
	identity := NewIdentity(StaticAccount{Login: "johndoe", Name: "John Doe"})

	marker, err := identity.InitiateAuth(ctx)
	require.NoError(t, err)
	assert.Contains(t, marker, CallbackMarker)

	grant, err := identity.Exchange(ctx, marker)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", grant.Account.Name)
	assert.NotEmpty(t, grant.Token)

	_, err = identity.Exchange(ctx, marker)
	assert.ErrorIs(t, err, domain.ErrAuthDenied)
}

func TestIdentityRejectsUnknownMarker(t *testing.T) {
	identity := NewIdentity(StaticAccount{})
	_, err := identity.Exchange(context.Background(), "forged")
	assert.ErrorIs(t, err, domain.ErrAuthDenied)
}

func TestGeneratorCanned(t *testing.T) {
	g := &Generator{Canned: &DemoDraft}
	draft, err := g.SummarizeChanges(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, DemoDraft, draft)
	assert.NotEmpty(t, draft.Title)
	assert.NotEmpty(t, draft.Description)
}

func TestGeneratorDescribesFiles(t *testing.T) {
	tests := []struct {
		name  string
		files []domain.FileChange
		title string
		body  string
	}{
		{
			name:  "only additions",
			files: []domain.FileChange{{Kind: domain.ChangeAdded, Path: "footer.tsx"}},
			title: "feat: Add footer.tsx",
			body:  "This commit touches 1 file: 1 added.\n\n- Add footer.tsx",
		},
		{
			name: "mixed",
			files: []domain.FileChange{
				{Kind: domain.ChangeModified, Path: "homepage.tsx"},
				{Kind: domain.ChangeDeleted, Path: "old.css"},
			},
			title: "feat: Update homepage.tsx and old.css",
			body:  "This commit touches 2 files: 1 modified, 1 removed.\n\n- Update homepage.tsx\n- Remove old.css",
		},
		{
			name: "many files",
			files: []domain.FileChange{
				{Kind: domain.ChangeModified, Path: "a"},
				{Kind: domain.ChangeModified, Path: "b"},
				{Kind: domain.ChangeModified, Path: "c"},
			},
			title: "feat: Update a and 2 more files",
			body:  "This commit touches 3 files: 3 modified.\n\n- Update a\n- Update b\n- Update c",
		},
		{
			name:  "nothing",
			title: DemoDraft.Title,
			body:  DemoDraft.Description,
		},
	}

	g := &Generator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := g.SummarizeChanges(context.Background(), tt.files)
			require.NoError(t, err)
			assert.Equal(t, tt.title, draft.Title)
			assert.Equal(t, tt.body, draft.Description)
			assert.NotEmpty(t, draft.Description)
		})
	}
}

func TestMarkerStore(t *testing.T) {
	var s MarkerStore
	_, ok := s.Get()
	assert.False(t, ok)

	require.NoError(t, s.Set("github-callback"))
	marker, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, "github-callback", marker)

	require.NoError(t, s.Clear())
	_, ok = s.Get()
	assert.False(t, ok)
}
