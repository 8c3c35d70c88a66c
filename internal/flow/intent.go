package flow

import "github.com/renato0307/gitlink/internal/domain"

// Intent is an input to the state machine: a user action or the completion of deferred work
type Intent interface {
	intent()
}

// User intents

type OpenIntegrationsMenu struct{}
type CloseIntegrationsMenu struct{}
type OpenConnectDialog struct{}
type BeginAuthentication struct{}

// CompleteAuthCallback is the "callback page loaded" signal raised once the redirect
// marker is in place.
type CompleteAuthCallback struct{}

type SelectOrganization struct {
	Organization domain.Organization
}

type EditRepositoryName struct {
	Name string
}

type CreateRepository struct{}
type OpenCommitReview struct{}
type CloseCommitReview struct{}

type EditCommitTitle struct {
	Title string
}

type EditCommitDescription struct {
	Description string
}

type ConfirmCommit struct{}
type DismissCommitSuccess struct{}
type OpenGithubStatus struct{}
type CloseGithubStatus struct{}
type CancelDialog struct{}

// PullLatest is the status view's "pull latest changes" button
type PullLatest struct{}

// PushUpdates is the status view's "update your repository" button
type PushUpdates struct{}

type DismissAlert struct{}

// System intents

// ReferenceLoaded replaces the collaborator-supplied reference data
type ReferenceLoaded struct {
	Reference domain.Reference
}

// RedirectCompleted reports that control returned from the identity provider
type RedirectCompleted struct {
	Generation uint64
	Marker     string
}

// AuthExchanged reports that the redirect marker was exchanged for a session
type AuthExchanged struct {
	Generation uint64
	Grant      domain.AuthGrant
}

// RepositoryRegistered reports that the host created the repository
type RepositoryRegistered struct {
	FullPath   string
	Generation uint64
}

// CommitMessageGenerated carries the generated commit message
type CommitMessageGenerated struct {
	Draft      domain.CommitDraft
	Generation uint64
}

// CommitPushed reports a successful commit and push
type CommitPushed struct {
	Generation uint64
	Result     domain.CommitResult
}

// PullCompleted reports that the workspace pulled the remote branch
type PullCompleted struct {
	Generation uint64
}

// NotificationExpired fires when a notification's display time ran out
type NotificationExpired struct {
	Generation uint64
}

// TaskFailed reports a collaborator failure for a deferred task
type TaskFailed struct {
	Err        error
	Generation uint64
	Task       Task
}

func (OpenIntegrationsMenu) intent() {}
func (CloseIntegrationsMenu) intent() {}
func (OpenConnectDialog) intent() {}
func (BeginAuthentication) intent() {}
func (CompleteAuthCallback) intent() {}
func (SelectOrganization) intent() {}
func (EditRepositoryName) intent() {}
func (CreateRepository) intent() {}
func (OpenCommitReview) intent() {}
func (CloseCommitReview) intent() {}
func (EditCommitTitle) intent() {}
func (EditCommitDescription) intent() {}
func (ConfirmCommit) intent() {}
func (DismissCommitSuccess) intent() {}
func (OpenGithubStatus) intent() {}
func (CloseGithubStatus) intent() {}
func (CancelDialog) intent() {}
func (PullLatest) intent() {}
func (PushUpdates) intent() {}
func (DismissAlert) intent() {}
func (ReferenceLoaded) intent() {}
func (RedirectCompleted) intent() {}
func (AuthExchanged) intent() {}
func (RepositoryRegistered) intent() {}
func (CommitMessageGenerated) intent() {}
func (CommitPushed) intent() {}
func (PullCompleted) intent() {}
func (NotificationExpired) intent() {}
func (TaskFailed) intent() {}
