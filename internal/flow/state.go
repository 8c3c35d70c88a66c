package flow

import "github.com/renato0307/gitlink/internal/domain"

// ServiceName is the hosted repository service shown in messages
const ServiceName = "GitHub"

// RecentCommitLimit is how many commits the status view lists
const RecentCommitLimit = 3

// State is everything the connect flow knows. It is a value: the reducer returns a new
// State and never mutates the pointees of the one it was given.
type State struct {
	Account         *domain.Account
	Alert           *domain.Alert
	CommitDraft     domain.CommitDraft
	CommitSucceeded bool
	Connected       *domain.ConnectedRepository
	Draft           *domain.RepositoryDraft
	LastCommit      *domain.CommitResult
	Notification    domain.Notification
	Overlay         domain.Overlay
	Phase           domain.AuthPhase
	RedirectMarker  string
	Reference       domain.Reference

	generations [taskCount]uint64
	pending     [taskCount]bool
}

// Preconnection describes a repository that was connected before the flow started
type Preconnection struct {
	Account  domain.Account
	FullPath string
}

// NewState returns the state at process start
func NewState(reference domain.Reference) State {
	return State{
		Overlay:   domain.OverlayNone,
		Phase:     domain.PhaseInitial,
		Reference: reference,
	}
}

// NewConnectedState returns a state for a workspace that is already connected.
// The connect dialog opens straight into the "connected" view.
func NewConnectedState(reference domain.Reference, pre Preconnection) State {
	s := NewState(reference)
	account := pre.Account
	s.Account = &account
	s.Connected = &domain.ConnectedRepository{FullPath: domain.NormalizeRepoPath(pre.FullPath)}
	s.Phase = domain.PhaseAuthenticated
	return s
}

// Pending reports whether deferred work for the task is outstanding
func (s State) Pending(t Task) bool {
	if t < 0 || t >= taskCount {
		return false
	}
	return s.pending[t]
}

// Generation returns the current generation of the task
func (s State) Generation(t Task) uint64 {
	if t < 0 || t >= taskCount {
		return 0
	}
	return s.generations[t]
}

// Authenticated reports whether the identity handshake finished
func (s State) Authenticated() bool {
	return s.Phase == domain.PhaseAuthenticated
}

// GeneratingMessage reports whether the commit message is still being generated
func (s State) GeneratingMessage() bool {
	return s.pending[TaskCommitMessage]
}

// Pushing reports whether a commit is on its way to the host
func (s State) Pushing() bool {
	return s.pending[TaskPush]
}

// ConnectView is the body the connect dialog shows
type ConnectView int

const (
	ConnectViewSignIn ConnectView = iota
	ConnectViewOrganizations
	ConnectViewRepositoryName
	ConnectViewConnected
)

// ConnectView picks the connect dialog body for the state
func (s State) ConnectView() ConnectView {
	switch {
	case s.Connected != nil:
		return ConnectViewConnected
	case !s.Authenticated():
		return ConnectViewSignIn
	case s.Draft == nil:
		return ConnectViewOrganizations
	default:
		return ConnectViewRepositoryName
	}
}

// Snapshot returns a copy safe to hand to the presentation layer
func (s State) Snapshot() State {
	out := s
	out.Reference = s.Reference.Clone()
	return out
}

func (s State) current(t Task, generation uint64) bool {
	return s.pending[t] && s.generations[t] == generation
}
