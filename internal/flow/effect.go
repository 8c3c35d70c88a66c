package flow

import (
	"time"

	"github.com/renato0307/gitlink/internal/domain"
)

// Effect is an instruction produced by the reducer for the runtime to carry out
type Effect interface {
	effect()
}

// Schedule asks the runtime to run Call after Delay. A zero delay runs it right away.
// The intent produced by the call must carry Generation back.
type Schedule struct {
	Call       Call
	Delay      time.Duration
	Generation uint64
	Task       Task
}

// Cancel asks the runtime to stop the pending timer of Task, if any. Generation is the
// task generation after cancelling; schedules older than it are void.
type Cancel struct {
	Generation uint64
	Task       Task
}

// SetRedirectMarker places the marker that stands for "returned from the identity provider"
type SetRedirectMarker struct {
	Marker string
}

// ClearRedirectMarker removes the redirect marker
type ClearRedirectMarker struct{}

func (Schedule) effect() {}
func (Cancel) effect() {}
func (SetRedirectMarker) effect() {}
func (ClearRedirectMarker) effect() {}

// Call is the collaborator request behind a scheduled task
type Call interface {
	call()
}

// InitiateAuth starts the identity handshake
type InitiateAuth struct{}

// ExchangeAuth trades the redirect marker for a session
type ExchangeAuth struct {
	Marker string
}

// RegisterRepository creates the repository on the host
type RegisterRepository struct {
	Draft    domain.RepositoryDraft
	FullPath string
}

// GenerateCommitMessage summarizes the dirty files into a commit message
type GenerateCommitMessage struct {
	Files []domain.FileChange
}

// CommitAndPush commits the dirty files and pushes them to the connected repository
type CommitAndPush struct {
	Draft      domain.CommitDraft
	Files      []domain.FileChange
	Repository string
}

// PullBranch pulls the remote branch into the workspace
type PullBranch struct {
	Branch     string
	Repository string
}

// Expire is a pure timer with no collaborator behind it
type Expire struct{}

func (InitiateAuth) call() {}
func (ExchangeAuth) call() {}
func (RegisterRepository) call() {}
func (GenerateCommitMessage) call() {}
func (CommitAndPush) call() {}
func (PullBranch) call() {}
func (Expire) call() {}
