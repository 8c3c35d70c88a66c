package flow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/gitlink/internal/domain"
)

var (
	personal = domain.Organization{ID: "1", DisplayName: "Personal Account"}
	acme     = domain.Organization{ID: "2", DisplayName: "Acme Corp"}
	startup  = domain.Organization{ID: "3", DisplayName: "Startup Inc"}
)

func testReference() domain.Reference {
	return domain.Reference{
		Organizations: []domain.Organization{personal, acme, startup},
		Workspace: domain.WorkspaceStatus{
			Branch: "main",
			Files: []domain.FileChange{
				{Kind: domain.ChangeModified, Path: "homepage.tsx"},
				{Kind: domain.ChangeAdded, Path: "footer.tsx"},
			},
			RemoteAhead: true,
		},
	}
}

// step applies an intent that must be accepted
func step(t *testing.T, m Machine, s State, in Intent) (State, []Effect) {
	t.Helper()
	next, effects, err := m.Reduce(s, in)
	require.NoError(t, err, "intent %T", in)
	return next, effects
}

// rejected asserts the intent is refused and leaves the state untouched
func rejected(t *testing.T, m Machine, s State, in Intent) {
	t.Helper()
	next, effects, err := m.Reduce(s, in)
	require.ErrorIs(t, err, domain.ErrRejected, "intent %T", in)
	assert.Equal(t, s, next)
	assert.Empty(t, effects)
	assert.False(t, m.Permits(s, in))
}

func scheduled(t *testing.T, effects []Effect, task Task) Schedule {
	t.Helper()
	for _, e := range effects {
		if sch, ok := e.(Schedule); ok && sch.Task == task {
			return sch
		}
	}
	require.Failf(t, "task not scheduled", "%s in %#v", task, effects)
	return Schedule{}
}

func authenticated(t *testing.T, m Machine) State {
	t.Helper()
	s := NewState(testReference())
	s, _ = step(t, m, s, OpenConnectDialog{})
	s, effects := step(t, m, s, BeginAuthentication{})
	redirect := scheduled(t, effects, TaskRedirect)
	s, _ = step(t, m, s, RedirectCompleted{Generation: redirect.Generation, Marker: "state-1"})
	s, effects = step(t, m, s, CompleteAuthCallback{})
	callback := scheduled(t, effects, TaskCallback)
	s, _ = step(t, m, s, AuthExchanged{
		Generation: callback.Generation,
		Grant:      domain.AuthGrant{Account: domain.Account{Login: "jdoe", Name: "John Doe"}},
	})
	return s
}

func connected(t *testing.T, m Machine) State {
	t.Helper()
	s := authenticated(t, m)
	s, _ = step(t, m, s, SelectOrganization{Organization: acme})
	s, effects := step(t, m, s, CreateRepository{})
	create := scheduled(t, effects, TaskCreateRepository)
	s, _ = step(t, m, s, RepositoryRegistered{FullPath: "acme-corp/acme-corp-demo", Generation: create.Generation})
	assert.False(t, s.Pending(TaskCreateRepository))
	s, _ = step(t, m, s, CancelDialog{})
	return s
}

func TestSelectOrganizationSeedsName(t *testing.T) {
	m := NewMachine(DefaultTimings())
	base := authenticated(t, m)

	tests := []struct {
		name     string
		org      string
		expected string
	}{
		{"two words", "Acme Corp", "acme-corp-demo"},
		{"single word", "Globex", "globex-demo"},
		{"whitespace run", "Startup   Inc", "startup-inc-demo"},
		{"tabs and newlines", "Big\t\nCo", "big-co-demo"},
		{"already lower", "personal account", "personal-account-demo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := step(t, m, base, SelectOrganization{Organization: domain.Organization{ID: "9", DisplayName: tt.org}})
			require.NotNil(t, s.Draft)
			assert.Equal(t, tt.expected, s.Draft.Name)
			assert.Equal(t, ConnectViewRepositoryName, s.ConnectView())
		})
	}
}

func TestSelectOrganizationRequiresAuthentication(t *testing.T) {
	m := NewMachine(DefaultTimings())
	rejected(t, m, NewState(testReference()), SelectOrganization{Organization: acme})
	rejected(t, m, connected(t, m), SelectOrganization{Organization: acme})
	rejected(t, m, authenticated(t, m), SelectOrganization{Organization: domain.Organization{DisplayName: "No ID"}})
}

func TestCreateRepositoryNoOp(t *testing.T) {
	m := NewMachine(DefaultTimings())
	base := authenticated(t, m)

	t.Run("no organization selected", func(t *testing.T) {
		rejected(t, m, base, CreateRepository{})
	})

	for _, name := range []string{"", "   ", "\t\n"} {
		t.Run("blank name "+name, func(t *testing.T) {
			s, _ := step(t, m, base, SelectOrganization{Organization: acme})
			s, _ = step(t, m, s, EditRepositoryName{Name: name})
			rejected(t, m, s, CreateRepository{})
			assert.False(t, s.Notification.Visible)
			assert.Nil(t, s.Connected)
		})
	}
}

func TestCreateRepositoryConnects(t *testing.T) {
	m := NewMachine(DefaultTimings())
	s := authenticated(t, m)
	s, _ = step(t, m, s, SelectOrganization{Organization: acme})
	s, _ = step(t, m, s, EditRepositoryName{Name: "My  Shiny App"})

	s, effects := step(t, m, s, CreateRepository{})

	assert.Nil(t, s.Draft)
	require.NotNil(t, s.Connected)
	assert.Equal(t, "acme-corp/my-shiny-app", s.Connected.FullPath)
	assert.True(t, s.Notification.Visible)
	assert.Contains(t, s.Notification.Message, "acme-corp/my-shiny-app")

	register := scheduled(t, effects, TaskCreateRepository)
	assert.Zero(t, register.Delay)
	assert.Equal(t, RegisterRepository{
		Draft:    domain.RepositoryDraft{Name: "My  Shiny App", Organization: acme},
		FullPath: "acme-corp/my-shiny-app",
	}, register.Call)

	expire := scheduled(t, effects, TaskNotification)
	assert.Equal(t, m.Timings.NotificationDuration, expire.Delay)

	// reopening the dialog shows the connected view
	s, _ = step(t, m, s, OpenConnectDialog{})
	assert.Equal(t, domain.OverlayConnectDialog, s.Overlay)
	assert.Equal(t, ConnectViewConnected, s.ConnectView())
	rejected(t, m, s, CreateRepository{})
}

func TestCancelDialog(t *testing.T) {
	m := NewMachine(DefaultTimings())
	s := NewState(testReference())
	s, _ = step(t, m, s, OpenConnectDialog{})

	redirecting, effects := step(t, m, s, BeginAuthentication{})
	assert.Equal(t, domain.PhaseRedirecting, redirecting.Phase)
	rejected(t, m, redirecting, CancelDialog{})

	redirect := scheduled(t, effects, TaskRedirect)
	loading, _ := step(t, m, redirecting, RedirectCompleted{Generation: redirect.Generation, Marker: "m"})
	assert.Equal(t, domain.PhaseLoadingCallback, loading.Phase)
	rejected(t, m, loading, CancelDialog{})

	closed, _ := step(t, m, s, CancelDialog{})
	assert.Equal(t, domain.OverlayNone, closed.Overlay)
	rejected(t, m, closed, CancelDialog{})

	// after sign in the picker can be cancelled, which drops the selection
	auth := authenticated(t, m)
	auth, _ = step(t, m, auth, SelectOrganization{Organization: startup})
	auth, _ = step(t, m, auth, CancelDialog{})
	assert.Nil(t, auth.Draft)
	assert.Equal(t, domain.OverlayNone, auth.Overlay)
}

func TestAuthenticationPhases(t *testing.T) {
	m := NewMachine(DefaultTimings())
	s := NewState(testReference())

	s, effects := step(t, m, s, BeginAuthentication{})
	assert.Equal(t, domain.PhaseRedirecting, s.Phase)
	redirect := scheduled(t, effects, TaskRedirect)
	assert.Equal(t, m.Timings.RedirectDelay, redirect.Delay)
	assert.Equal(t, InitiateAuth{}, redirect.Call)
	rejected(t, m, s, BeginAuthentication{})
	rejected(t, m, s, CompleteAuthCallback{})

	s, effects = step(t, m, s, RedirectCompleted{Generation: redirect.Generation, Marker: "abc"})
	assert.Equal(t, domain.PhaseLoadingCallback, s.Phase)
	assert.Equal(t, "abc", s.RedirectMarker)
	assert.Equal(t, []Effect{SetRedirectMarker{Marker: "abc"}}, effects)

	s, effects = step(t, m, s, CompleteAuthCallback{})
	callback := scheduled(t, effects, TaskCallback)
	assert.Equal(t, m.Timings.CallbackDelay, callback.Delay)
	assert.Equal(t, ExchangeAuth{Marker: "abc"}, callback.Call)
	rejected(t, m, s, CompleteAuthCallback{})

	s, effects = step(t, m, s, AuthExchanged{
		Generation: callback.Generation,
		Grant:      domain.AuthGrant{Account: domain.Account{Login: "jdoe"}},
	})
	assert.Equal(t, domain.PhaseAuthenticated, s.Phase)
	assert.Empty(t, s.RedirectMarker)
	assert.Equal(t, []Effect{ClearRedirectMarker{}}, effects)
	require.NotNil(t, s.Account)
	assert.Equal(t, "jdoe", s.Account.DisplayName())
	assert.Equal(t, ConnectViewOrganizations, s.ConnectView())
}

func TestCommitReview(t *testing.T) {
	m := NewMachine(DefaultTimings())
	rejected(t, m, authenticated(t, m), OpenCommitReview{})

	s := connected(t, m)
	s, effects := step(t, m, s, OpenCommitReview{})
	assert.Equal(t, domain.OverlayCommitReview, s.Overlay)
	assert.True(t, s.CommitDraft.IsEmpty())
	assert.True(t, s.GeneratingMessage())

	gen := scheduled(t, effects, TaskCommitMessage)
	assert.Equal(t, m.Timings.CommitMessageDelay, gen.Delay)
	assert.Equal(t, GenerateCommitMessage{Files: testReference().Workspace.Files}, gen.Call)

	s, _ = step(t, m, s, CommitMessageGenerated{
		Generation: gen.Generation,
		Draft:      domain.CommitDraft{Title: "feat: add footer", Description: "- Add footer"},
	})
	assert.NotEmpty(t, s.CommitDraft.Title)
	assert.NotEmpty(t, s.CommitDraft.Description)
	assert.False(t, s.GeneratingMessage())

	s, _ = step(t, m, s, EditCommitTitle{Title: "custom"})
	s, _ = step(t, m, s, EditCommitDescription{Description: "line one\nline two"})
	assert.Equal(t, domain.CommitDraft{Title: "custom", Description: "line one\nline two"}, s.CommitDraft)

	s, effects = step(t, m, s, ConfirmCommit{})
	assert.Equal(t, domain.OverlayNone, s.Overlay)
	assert.True(t, s.CommitDraft.IsEmpty())
	assert.True(t, s.Pushing())
	push := scheduled(t, effects, TaskPush)
	assert.Equal(t, CommitAndPush{
		Draft:      domain.CommitDraft{Title: "custom", Description: "line one\nline two"},
		Files:      testReference().Workspace.Files,
		Repository: "acme-corp/acme-corp-demo",
	}, push.Call)

	result := domain.CommitResult{Hash: "3a1b2c4d", Title: "custom", Summary: domain.ChangeSummary{Modified: 1, Added: 1}}
	s, effects = step(t, m, s, CommitPushed{Generation: push.Generation, Result: result})
	assert.True(t, s.CommitSucceeded)
	assert.Equal(t, domain.OverlayCommitSuccess, s.Overlay)
	assert.Equal(t, &result, s.LastCommit)
	assert.Equal(t, "Changes committed successfully to GitHub", s.Notification.Message)
	scheduled(t, effects, TaskNotification)
	assert.Empty(t, s.Reference.Workspace.Files)
	require.NotEmpty(t, s.Reference.Workspace.RecentCommits)
	assert.Equal(t, domain.RecentCommit{Hash: "3a1b2c4", Message: "custom", When: "just now"}, s.Reference.Workspace.RecentCommits[0])

	s, _ = step(t, m, s, OpenGithubStatus{})
	assert.Equal(t, domain.OverlayGithubStatus, s.Overlay)
	s, _ = step(t, m, s, CloseGithubStatus{})
	assert.Equal(t, domain.OverlayNone, s.Overlay)
}

func TestCommitReviewWaitsForPush(t *testing.T) {
	m := NewMachine(DefaultTimings())
	s := connected(t, m)
	s, effects := step(t, m, s, OpenCommitReview{})
	gen := scheduled(t, effects, TaskCommitMessage)
	s, _ = step(t, m, s, CommitMessageGenerated{Generation: gen.Generation, Draft: domain.CommitDraft{Title: "t", Description: "d"}})
	s, effects = step(t, m, s, ConfirmCommit{})
	push := scheduled(t, effects, TaskPush)

	s, _ = step(t, m, s, OpenGithubStatus{})
	rejected(t, m, s, PushUpdates{})
	s, _ = step(t, m, s, CloseGithubStatus{})
	rejected(t, m, s, OpenCommitReview{})

	s, _ = step(t, m, s, CommitPushed{Generation: push.Generation, Result: domain.CommitResult{Hash: "abc1234", Title: "t"}})
	assert.Equal(t, domain.OverlayCommitSuccess, s.Overlay)
	assert.False(t, s.GeneratingMessage())

	s, _ = step(t, m, s, DismissCommitSuccess{})
	s, _ = step(t, m, s, PushUpdates{})
	assert.Equal(t, domain.OverlayCommitReview, s.Overlay)
	assert.True(t, s.GeneratingMessage())
}

func TestCommitEditsRequireOpenReview(t *testing.T) {
	m := NewMachine(DefaultTimings())
	s := connected(t, m)
	rejected(t, m, s, EditCommitTitle{Title: "x"})
	rejected(t, m, s, EditCommitDescription{Description: "x"})
	rejected(t, m, s, ConfirmCommit{})
	rejected(t, m, s, CloseCommitReview{})
	rejected(t, m, s, DismissCommitSuccess{})
}

func TestStaleMessageIgnoredAfterClose(t *testing.T) {
	m := NewMachine(DefaultTimings())
	s := connected(t, m)
	s, effects := step(t, m, s, OpenCommitReview{})
	first := scheduled(t, effects, TaskCommitMessage)

	s, effects = step(t, m, s, CloseCommitReview{})
	assert.Equal(t, []Effect{Cancel{Generation: first.Generation + 1, Task: TaskCommitMessage}}, effects)
	rejected(t, m, s, CommitMessageGenerated{Generation: first.Generation, Draft: domain.CommitDraft{Title: "late"}})

	// reopening schedules a new generation; the old completion stays stale
	s, effects = step(t, m, s, OpenCommitReview{})
	second := scheduled(t, effects, TaskCommitMessage)
	assert.Greater(t, second.Generation, first.Generation)
	rejected(t, m, s, CommitMessageGenerated{Generation: first.Generation, Draft: domain.CommitDraft{Title: "late"}})
	assert.True(t, s.CommitDraft.IsEmpty())

	s, _ = step(t, m, s, CommitMessageGenerated{Generation: second.Generation, Draft: domain.CommitDraft{Title: "fresh"}})
	assert.Equal(t, "fresh", s.CommitDraft.Title)
}

func TestNewerNotificationOutlivesOlderTimer(t *testing.T) {
	m := NewMachine(DefaultTimings())
	s := connected(t, m)
	first := s.Generation(TaskNotification)

	s, _ = step(t, m, s, OpenCommitReview{})
	s, effects := step(t, m, s, ConfirmCommit{})
	push := scheduled(t, effects, TaskPush)
	s, _ = step(t, m, s, CommitPushed{Generation: push.Generation, Result: domain.CommitResult{Hash: "abc"}})
	second := s.Generation(TaskNotification)
	require.Greater(t, second, first)

	rejected(t, m, s, NotificationExpired{Generation: first})
	assert.True(t, s.Notification.Visible)

	s, _ = step(t, m, s, NotificationExpired{Generation: second})
	assert.False(t, s.Notification.Visible)
	assert.Empty(t, s.Notification.Message)
}

func TestEndToEndAcmeCorp(t *testing.T) {
	m := NewMachine(DefaultTimings())
	s := NewState(testReference())
	s, _ = step(t, m, s, OpenIntegrationsMenu{})
	s, _ = step(t, m, s, OpenConnectDialog{})
	assert.Equal(t, domain.OverlayConnectDialog, s.Overlay)

	s, effects := step(t, m, s, BeginAuthentication{})
	redirect := scheduled(t, effects, TaskRedirect)
	s, _ = step(t, m, s, RedirectCompleted{Generation: redirect.Generation, Marker: "github-callback"})
	s, effects = step(t, m, s, CompleteAuthCallback{})
	callback := scheduled(t, effects, TaskCallback)
	s, _ = step(t, m, s, AuthExchanged{Generation: callback.Generation})
	assert.Equal(t, domain.PhaseAuthenticated, s.Phase)

	s, _ = step(t, m, s, SelectOrganization{Organization: acme})
	assert.Equal(t, "acme-corp-demo", s.Draft.Name)

	s, effects = step(t, m, s, CreateRepository{})
	assert.Equal(t, "acme-corp/acme-corp-demo", s.Connected.FullPath)
	assert.True(t, s.Notification.Visible)
	assert.Contains(t, s.Notification.Message, "acme-corp/acme-corp-demo")

	expire := scheduled(t, effects, TaskNotification)
	assert.Equal(t, m.Timings.NotificationDuration, expire.Delay)
	s, _ = step(t, m, s, NotificationExpired{Generation: expire.Generation})
	assert.False(t, s.Notification.Visible)
}

func TestSingleOverlay(t *testing.T) {
	m := NewMachine(DefaultTimings())
	s := connected(t, m)

	s, _ = step(t, m, s, OpenIntegrationsMenu{})
	s, _ = step(t, m, s, OpenConnectDialog{})
	assert.Equal(t, domain.OverlayConnectDialog, s.Overlay, "connect dialog replaces the menu")

	rejected(t, m, s, OpenIntegrationsMenu{})
	rejected(t, m, s, OpenGithubStatus{})

	s, _ = step(t, m, s, CancelDialog{})
	s, _ = step(t, m, s, OpenCommitReview{})
	rejected(t, m, s, OpenConnectDialog{})
	rejected(t, m, s, OpenCommitReview{})
	rejected(t, m, s, PushUpdates{})

	s, _ = step(t, m, s, CloseCommitReview{})
	s, _ = step(t, m, s, OpenGithubStatus{})
	rejected(t, m, s, OpenConnectDialog{})
	s, effects := step(t, m, s, PushUpdates{})
	assert.Equal(t, domain.OverlayCommitReview, s.Overlay, "push updates moves from status to review")
	scheduled(t, effects, TaskCommitMessage)
}

func TestCloseIntegrationsMenuIsIdempotent(t *testing.T) {
	m := NewMachine(DefaultTimings())
	s := NewState(testReference())
	s, _ = step(t, m, s, CloseIntegrationsMenu{})
	assert.Equal(t, domain.OverlayNone, s.Overlay)

	s, _ = step(t, m, s, OpenIntegrationsMenu{})
	s, _ = step(t, m, s, CloseIntegrationsMenu{})
	assert.Equal(t, domain.OverlayNone, s.Overlay)
}

func TestPullLatest(t *testing.T) {
	m := NewMachine(DefaultTimings())
	s := connected(t, m)
	rejected(t, m, s, PullLatest{})

	s, _ = step(t, m, s, OpenGithubStatus{})
	s, effects := step(t, m, s, PullLatest{})
	pull := scheduled(t, effects, TaskPull)
	assert.Equal(t, PullBranch{Branch: "main", Repository: "acme-corp/acme-corp-demo"}, pull.Call)
	rejected(t, m, s, PullLatest{})

	s, _ = step(t, m, s, PullCompleted{Generation: pull.Generation})
	assert.False(t, s.Reference.Workspace.RemoteAhead)
	assert.Equal(t, "Pulled latest changes from main", s.Notification.Message)
}

func TestTaskFailures(t *testing.T) {
	m := NewMachine(DefaultTimings())

	t.Run("auth denied resets the phase", func(t *testing.T) {
		s := NewState(testReference())
		s, _ = step(t, m, s, OpenConnectDialog{})
		s, effects := step(t, m, s, BeginAuthentication{})
		redirect := scheduled(t, effects, TaskRedirect)
		s, _ = step(t, m, s, RedirectCompleted{Generation: redirect.Generation, Marker: "m"})
		s, effects = step(t, m, s, CompleteAuthCallback{})
		callback := scheduled(t, effects, TaskCallback)

		err := domain.NewRemoteError("exchange", domain.ErrAuthDenied)
		s, effects = step(t, m, s, TaskFailed{Err: err, Generation: callback.Generation, Task: TaskCallback})
		assert.Equal(t, domain.PhaseInitial, s.Phase)
		assert.Empty(t, s.RedirectMarker)
		assert.Equal(t, []Effect{ClearRedirectMarker{}}, effects)
		require.NotNil(t, s.Alert)
		assert.Equal(t, domain.KindAuthDenied, s.Alert.Kind)

		// the user can retry and dismiss the alert
		assert.True(t, m.Permits(s, BeginAuthentication{}))
		s, _ = step(t, m, s, DismissAlert{})
		assert.Nil(t, s.Alert)
		rejected(t, m, s, DismissAlert{})
	})

	t.Run("name conflict disconnects", func(t *testing.T) {
		s := authenticated(t, m)
		s, _ = step(t, m, s, SelectOrganization{Organization: acme})
		s, effects := step(t, m, s, CreateRepository{})
		create := scheduled(t, effects, TaskCreateRepository)

		err := domain.NewRemoteError("create repository", domain.ErrNameConflict)
		s, _ = step(t, m, s, TaskFailed{Err: err, Generation: create.Generation, Task: TaskCreateRepository})
		assert.Nil(t, s.Connected)
		assert.False(t, s.Notification.Visible)
		assert.Equal(t, domain.KindNameConflict, s.Alert.Kind)
		assert.Equal(t, ConnectViewOrganizations, s.ConnectView())
	})

	t.Run("push rejected keeps the connection", func(t *testing.T) {
		s := connected(t, m)
		s, _ = step(t, m, s, OpenCommitReview{})
		s, effects := step(t, m, s, ConfirmCommit{})
		push := scheduled(t, effects, TaskPush)

		s, _ = step(t, m, s, TaskFailed{Err: errors.New("boom"), Generation: push.Generation, Task: TaskPush})
		assert.NotNil(t, s.Connected)
		assert.False(t, s.CommitSucceeded)
		assert.False(t, s.Pushing())
		assert.Equal(t, domain.KindUnknown, s.Alert.Kind)
		assert.Contains(t, s.Alert.Message, "boom")
	})

	t.Run("stale failure ignored", func(t *testing.T) {
		s := connected(t, m)
		rejected(t, m, s, TaskFailed{Err: errors.New("late"), Generation: 42, Task: TaskPush})
		rejected(t, m, s, TaskFailed{Err: errors.New("bad"), Generation: 1, Task: Task(99)})
	})
}

func TestPreexistingConnection(t *testing.T) {
	m := NewMachine(DefaultTimings())
	s := NewConnectedState(testReference(), Preconnection{
		Account:  domain.Account{Name: "John Doe"},
		FullPath: "Acme Corp/demo",
	})
	assert.True(t, s.Authenticated())
	assert.Equal(t, "acme-corp/demo", s.Connected.FullPath)
	assert.Equal(t, ConnectViewConnected, s.ConnectView())
	assert.True(t, m.Permits(s, OpenCommitReview{}))
}

func TestReferenceLoadedCopies(t *testing.T) {
	m := NewMachine(DefaultTimings())
	ref := testReference()
	s, _ := step(t, m, NewState(domain.Reference{}), ReferenceLoaded{Reference: ref})
	ref.Organizations[0].DisplayName = "mutated"
	assert.Equal(t, "Personal Account", s.Reference.Organizations[0].DisplayName)
}

func TestRecordCommitKeepsLimit(t *testing.T) {
	prior := []domain.RecentCommit{{Hash: "a"}, {Hash: "b"}, {Hash: "c"}}
	out := recordCommit(prior, domain.CommitResult{Hash: "d", Title: "new"})
	require.Len(t, out, RecentCommitLimit)
	assert.Equal(t, "d", out[0].Hash)
	assert.Equal(t, "b", out[2].Hash)
	assert.Equal(t, "a", prior[0].Hash)
}
