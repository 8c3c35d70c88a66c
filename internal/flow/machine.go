package flow

import (
	"fmt"
	"time"

	"github.com/renato0307/gitlink/internal/domain"
)

// Machine is the connect/commit state machine. Reduce is pure: it never sleeps, never
// calls a collaborator and never touches the clock. Deferred work comes back as effects.
type Machine struct {
	Timings Timings
}

// NewMachine creates a machine with the given latencies
func NewMachine(timings Timings) Machine {
	return Machine{Timings: timings}
}

// Reduce applies intent to s. When a precondition does not hold it returns s unchanged,
// no effects and an error wrapping domain.ErrRejected.
func (m Machine) Reduce(s State, in Intent) (State, []Effect, error) {
	switch in := in.(type) {
	case OpenIntegrationsMenu:
		return m.openIntegrationsMenu(s)
	case CloseIntegrationsMenu:
		if s.Overlay == domain.OverlayIntegrationsMenu {
			s.Overlay = domain.OverlayNone
		}
		return s, nil, nil
	case OpenConnectDialog:
		return m.openConnectDialog(s)
	case BeginAuthentication:
		return m.beginAuthentication(s)
	case RedirectCompleted:
		return m.redirectCompleted(s, in)
	case CompleteAuthCallback:
		return m.completeAuthCallback(s)
	case AuthExchanged:
		return m.authExchanged(s, in)
	case SelectOrganization:
		return m.selectOrganization(s, in)
	case EditRepositoryName:
		return m.editRepositoryName(s, in)
	case CreateRepository:
		return m.createRepository(s)
	case RepositoryRegistered:
		if !s.current(TaskCreateRepository, in.Generation) {
			return reject(s, "stale repository registration")
		}
		s.pending[TaskCreateRepository] = false
		return s, nil, nil
	case OpenCommitReview, PushUpdates:
		return m.openCommitReview(s)
	case CommitMessageGenerated:
		return m.commitMessageGenerated(s, in)
	case EditCommitTitle:
		if s.Overlay != domain.OverlayCommitReview {
			return reject(s, "commit review is not open")
		}
		s.CommitDraft.Title = in.Title
		return s, nil, nil
	case EditCommitDescription:
		if s.Overlay != domain.OverlayCommitReview {
			return reject(s, "commit review is not open")
		}
		s.CommitDraft.Description = in.Description
		return s, nil, nil
	case CloseCommitReview:
		return m.closeCommitReview(s)
	case ConfirmCommit:
		return m.confirmCommit(s)
	case CommitPushed:
		return m.commitPushed(s, in)
	case DismissCommitSuccess:
		return closeOverlay(s, domain.OverlayCommitSuccess)
	case OpenGithubStatus:
		return m.openGithubStatus(s)
	case CloseGithubStatus:
		return closeOverlay(s, domain.OverlayGithubStatus)
	case PullLatest:
		return m.pullLatest(s)
	case PullCompleted:
		return m.pullCompleted(s, in)
	case CancelDialog:
		return m.cancelDialog(s)
	case DismissAlert:
		if s.Alert == nil {
			return reject(s, "no alert to dismiss")
		}
		s.Alert = nil
		return s, nil, nil
	case ReferenceLoaded:
		s.Reference = in.Reference.Clone()
		return s, nil, nil
	case NotificationExpired:
		if !s.current(TaskNotification, in.Generation) {
			return reject(s, "notification was superseded")
		}
		s.pending[TaskNotification] = false
		s.Notification = domain.Notification{}
		return s, nil, nil
	case TaskFailed:
		return m.taskFailed(s, in)
	}
	return reject(s, fmt.Sprintf("unknown intent %T", in))
}

// Permits reports whether Reduce would accept intent in state s
func (m Machine) Permits(s State, in Intent) bool {
	_, _, err := m.Reduce(s, in)
	return err == nil
}

// headerReachable reports whether the header controls can be used. Modal dialogs cover
// the header; only the integrations menu leaves it reachable.
func headerReachable(s State) bool {
	return s.Overlay == domain.OverlayNone || s.Overlay == domain.OverlayIntegrationsMenu
}

func (m Machine) openIntegrationsMenu(s State) (State, []Effect, error) {
	if !headerReachable(s) {
		return reject(s, "a dialog is open")
	}
	s.Overlay = domain.OverlayIntegrationsMenu
	return s, nil, nil
}

func (m Machine) openConnectDialog(s State) (State, []Effect, error) {
	if !headerReachable(s) {
		return reject(s, "a dialog is open")
	}
	s.Overlay = domain.OverlayConnectDialog
	return s, nil, nil
}

func (m Machine) beginAuthentication(s State) (State, []Effect, error) {
	if s.Phase != domain.PhaseInitial {
		return reject(s, fmt.Sprintf("authentication already %s", s.Phase))
	}
	s.Phase = domain.PhaseRedirecting
	s.Alert = nil
	return s, []Effect{m.schedule(&s, TaskRedirect, m.Timings.RedirectDelay, InitiateAuth{})}, nil
}

func (m Machine) redirectCompleted(s State, in RedirectCompleted) (State, []Effect, error) {
	if !s.current(TaskRedirect, in.Generation) || s.Phase != domain.PhaseRedirecting {
		return reject(s, "stale redirect")
	}
	if in.Marker == "" {
		return reject(s, "empty redirect marker")
	}
	s.pending[TaskRedirect] = false
	s.Phase = domain.PhaseLoadingCallback
	s.RedirectMarker = in.Marker
	return s, []Effect{SetRedirectMarker{Marker: in.Marker}}, nil
}

func (m Machine) completeAuthCallback(s State) (State, []Effect, error) {
	if s.RedirectMarker == "" || s.Phase != domain.PhaseLoadingCallback {
		return reject(s, "no auth callback to complete")
	}
	if s.pending[TaskCallback] {
		return reject(s, "auth callback already loading")
	}
	call := ExchangeAuth{Marker: s.RedirectMarker}
	return s, []Effect{m.schedule(&s, TaskCallback, m.Timings.CallbackDelay, call)}, nil
}

func (m Machine) authExchanged(s State, in AuthExchanged) (State, []Effect, error) {
	if !s.current(TaskCallback, in.Generation) || s.Phase != domain.PhaseLoadingCallback {
		return reject(s, "stale auth callback")
	}
	s.pending[TaskCallback] = false
	account := in.Grant.Account
	s.Account = &account
	s.Phase = domain.PhaseAuthenticated
	s.RedirectMarker = ""
	return s, []Effect{ClearRedirectMarker{}}, nil
}

func (m Machine) selectOrganization(s State, in SelectOrganization) (State, []Effect, error) {
	if !s.Authenticated() {
		return reject(s, "not authenticated")
	}
	if s.Connected != nil {
		return reject(s, "repository already connected")
	}
	if in.Organization.ID == "" {
		return reject(s, "organization has no id")
	}
	s.Draft = &domain.RepositoryDraft{
		Name:         domain.SeedRepositoryName(in.Organization),
		Organization: in.Organization,
	}
	return s, nil, nil
}

func (m Machine) editRepositoryName(s State, in EditRepositoryName) (State, []Effect, error) {
	if s.Draft == nil {
		return reject(s, "no organization selected")
	}
	draft := *s.Draft
	draft.Name = in.Name
	s.Draft = &draft
	return s, nil, nil
}

func (m Machine) createRepository(s State) (State, []Effect, error) {
	if s.Connected != nil {
		return reject(s, "repository already connected")
	}
	if !s.Draft.Ready() {
		return reject(s, "organization and repository name are required")
	}
	draft := *s.Draft
	fullPath := domain.ConnectedPath(draft)
	s.Connected = &domain.ConnectedRepository{FullPath: fullPath}
	s.Draft = nil

	effects := []Effect{
		m.schedule(&s, TaskCreateRepository, 0, RegisterRepository{Draft: draft, FullPath: fullPath}),
	}
	effects = append(effects, m.notify(&s, "Successfully created repository "+fullPath))
	return s, effects, nil
}

func (m Machine) openCommitReview(s State) (State, []Effect, error) {
	if s.Connected == nil {
		return reject(s, "no repository connected")
	}
	if s.Overlay == domain.OverlayCommitReview {
		return reject(s, "commit review already open")
	}
	// the push result opens the success screen, which would replace the review
	if s.pending[TaskPush] {
		return reject(s, "a commit is still being pushed")
	}
	effects := cancel(&s, TaskCommitMessage)
	s.Overlay = domain.OverlayCommitReview
	s.CommitDraft = domain.CommitDraft{}
	call := GenerateCommitMessage{Files: append([]domain.FileChange(nil), s.Reference.Workspace.Files...)}
	effects = append(effects, m.schedule(&s, TaskCommitMessage, m.Timings.CommitMessageDelay, call))
	return s, effects, nil
}

func (m Machine) commitMessageGenerated(s State, in CommitMessageGenerated) (State, []Effect, error) {
	if !s.current(TaskCommitMessage, in.Generation) || s.Overlay != domain.OverlayCommitReview {
		return reject(s, "commit review was closed")
	}
	s.pending[TaskCommitMessage] = false
	s.CommitDraft = in.Draft
	return s, nil, nil
}

func (m Machine) closeCommitReview(s State) (State, []Effect, error) {
	if s.Overlay != domain.OverlayCommitReview {
		return reject(s, "commit review is not open")
	}
	effects := cancel(&s, TaskCommitMessage)
	s.Overlay = domain.OverlayNone
	s.CommitDraft = domain.CommitDraft{}
	return s, effects, nil
}

func (m Machine) confirmCommit(s State) (State, []Effect, error) {
	if s.Overlay != domain.OverlayCommitReview {
		return reject(s, "commit review is not open")
	}
	if s.Connected == nil {
		return reject(s, "no repository connected")
	}
	if s.pending[TaskPush] {
		return reject(s, "a commit is already being pushed")
	}
	effects := cancel(&s, TaskCommitMessage)
	call := CommitAndPush{
		Draft:      s.CommitDraft,
		Files:      append([]domain.FileChange(nil), s.Reference.Workspace.Files...),
		Repository: s.Connected.FullPath,
	}
	s.Overlay = domain.OverlayNone
	s.CommitDraft = domain.CommitDraft{}
	effects = append(effects, m.schedule(&s, TaskPush, m.Timings.PushDelay, call))
	return s, effects, nil
}

func (m Machine) commitPushed(s State, in CommitPushed) (State, []Effect, error) {
	if !s.current(TaskPush, in.Generation) {
		return reject(s, "stale push")
	}
	s.pending[TaskPush] = false
	result := in.Result
	s.LastCommit = &result
	s.CommitSucceeded = true
	s.Reference.Workspace.Files = nil
	s.Reference.Workspace.RecentCommits = recordCommit(s.Reference.Workspace.RecentCommits, result)
	s.Overlay = domain.OverlayCommitSuccess
	return s, []Effect{m.notify(&s, "Changes committed successfully to "+ServiceName)}, nil
}

func (m Machine) openGithubStatus(s State) (State, []Effect, error) {
	if !headerReachable(s) && s.Overlay != domain.OverlayCommitSuccess {
		return reject(s, "a dialog is open")
	}
	s.Overlay = domain.OverlayGithubStatus
	return s, nil, nil
}

func (m Machine) pullLatest(s State) (State, []Effect, error) {
	if s.Overlay != domain.OverlayGithubStatus {
		return reject(s, "status view is not open")
	}
	if s.Connected == nil {
		return reject(s, "no repository connected")
	}
	if s.pending[TaskPull] {
		return reject(s, "already pulling")
	}
	call := PullBranch{Branch: s.Reference.Workspace.Branch, Repository: s.Connected.FullPath}
	return s, []Effect{m.schedule(&s, TaskPull, m.Timings.PullDelay, call)}, nil
}

func (m Machine) pullCompleted(s State, in PullCompleted) (State, []Effect, error) {
	if !s.current(TaskPull, in.Generation) {
		return reject(s, "stale pull")
	}
	s.pending[TaskPull] = false
	s.Reference.Workspace.RemoteAhead = false
	message := "Pulled latest changes"
	if branch := s.Reference.Workspace.Branch; branch != "" {
		message += " from " + branch
	}
	return s, []Effect{m.notify(&s, message)}, nil
}

func (m Machine) cancelDialog(s State) (State, []Effect, error) {
	if s.Overlay != domain.OverlayConnectDialog {
		return reject(s, "connect dialog is not open")
	}
	if s.Phase.InFlight() {
		return reject(s, "authentication in progress")
	}
	s.Draft = nil
	s.Overlay = domain.OverlayNone
	return s, nil, nil
}

func (m Machine) taskFailed(s State, in TaskFailed) (State, []Effect, error) {
	if in.Task < 0 || in.Task >= taskCount || !s.current(in.Task, in.Generation) {
		return reject(s, "stale failure")
	}
	s.pending[in.Task] = false
	s.Alert = &domain.Alert{Kind: domain.KindOf(in.Err), Message: alertMessage(in.Task, in.Err)}

	var effects []Effect
	switch in.Task {
	case TaskRedirect, TaskCallback:
		s.Phase = domain.PhaseInitial
		if s.RedirectMarker != "" {
			s.RedirectMarker = ""
			effects = append(effects, ClearRedirectMarker{})
		}
	case TaskCreateRepository:
		s.Connected = nil
		effects = append(effects, cancel(&s, TaskNotification)...)
		s.Notification = domain.Notification{}
	}
	return s, effects, nil
}

func alertMessage(t Task, err error) string {
	var action string
	switch t {
	case TaskRedirect, TaskCallback:
		action = "Could not sign in to " + ServiceName
	case TaskCreateRepository:
		action = "Could not create the repository"
	case TaskCommitMessage:
		action = "Could not generate a commit message"
	case TaskPush:
		action = "Could not save your changes"
	case TaskPull:
		action = "Could not pull the latest changes"
	default:
		action = "Something went wrong"
	}
	if err == nil {
		return action
	}
	return action + ": " + err.Error()
}

func (m Machine) schedule(s *State, t Task, delay time.Duration, call Call) Effect {
	s.generations[t]++
	s.pending[t] = true
	return Schedule{Call: call, Delay: delay, Generation: s.generations[t], Task: t}
}

func (m Machine) notify(s *State, message string) Effect {
	s.Notification = domain.Notification{Message: message, Visible: true}
	return m.schedule(s, TaskNotification, m.Timings.NotificationDuration, Expire{})
}

func cancel(s *State, t Task) []Effect {
	if !s.pending[t] {
		return nil
	}
	s.generations[t]++
	s.pending[t] = false
	return []Effect{Cancel{Generation: s.generations[t], Task: t}}
}

func closeOverlay(s State, o domain.Overlay) (State, []Effect, error) {
	if s.Overlay != o {
		return reject(s, o.String()+" is not open")
	}
	s.Overlay = domain.OverlayNone
	return s, nil, nil
}

func reject(s State, reason string) (State, []Effect, error) {
	return s, nil, domain.Rejected(reason)
}

// recordCommit prepends a pushed commit to the recent-activity list without touching the
// caller's slice.
func recordCommit(commits []domain.RecentCommit, result domain.CommitResult) []domain.RecentCommit {
	out := make([]domain.RecentCommit, 0, RecentCommitLimit)
	out = append(out, domain.RecentCommit{Hash: result.ShortHash(), Message: result.Title, When: "just now"})
	for _, c := range commits {
		if len(out) == RecentCommitLimit {
			break
		}
		out = append(out, c)
	}
	return out
}
