package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/flow"
	"github.com/renato0307/gitlink/internal/logging"
	"github.com/renato0307/gitlink/internal/ports"
)

// FlowDeps are the collaborators behind the connect flow
type FlowDeps struct {
	Generator ports.MessageGenerator
	Host      ports.RepositoryHost
	Identity  ports.IdentityProvider
	Markers   ports.RedirectMarkerStore
	Pusher    ports.CommitPusher
	Scheduler ports.Scheduler
	Sync      ports.WorkspaceSync
}

// FlowController owns the connect flow state. Every mutation goes through the pure
// state machine; the controller carries out the resulting effects (timers, collaborator
// calls, the redirect marker) and publishes snapshots to watchers.
type FlowController struct {
	cancel   context.CancelFunc
	ctx      context.Context
	deps     FlowDeps
	machine  flow.Machine
	mu       sync.Mutex
	state    flow.State
	timers   map[flow.Task]ports.Timer
	watchers map[chan flow.State]struct{}

	// newest generation scheduled per task, kept after the timer fires or stops
	scheduled map[flow.Task]uint64
}

// NewFlowController creates a controller starting at initial
func NewFlowController(machine flow.Machine, initial flow.State, deps FlowDeps) *FlowController {
	ctx, cancel := context.WithCancel(context.Background())
	return &FlowController{
		cancel:    cancel,
		ctx:       ctx,
		deps:      deps,
		machine:   machine,
		scheduled: make(map[flow.Task]uint64),
		state:     initial,
		timers:    make(map[flow.Task]ports.Timer),
		watchers:  make(map[chan flow.State]struct{}),
	}
}

// State returns a snapshot of the current state
func (c *FlowController) State() flow.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Snapshot()
}

// Permits reports whether the intent would be accepted right now
func (c *FlowController) Permits(in flow.Intent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Permits(c.state, in)
}

// Dispatch applies an intent. A rejected intent leaves the state untouched and returns
// an error wrapping domain.ErrRejected.
func (c *FlowController) Dispatch(in flow.Intent) error {
	c.mu.Lock()
	if c.ctx.Err() != nil {
		c.mu.Unlock()
		return domain.Rejected("controller closed")
	}
	next, effects, err := c.machine.Reduce(c.state, in)
	if err != nil {
		c.mu.Unlock()
		logging.Logger.Debug("Intent rejected", "intent", intentName(in), "reason", err)
		return err
	}
	c.state = next
	snapshot := next.Snapshot()
	c.mu.Unlock()

	logging.Logger.Debug("Intent applied",
		"intent", intentName(in),
		"phase", snapshot.Phase,
		"overlay", snapshot.Overlay,
		"effects", len(effects))

	c.publish(snapshot)
	c.apply(effects)
	return nil
}

// Watch returns a channel receiving the latest snapshot after every accepted intent.
// Slow readers only see the most recent snapshot. Call the returned func to stop watching.
func (c *FlowController) Watch() (<-chan flow.State, func()) {
	ch := make(chan flow.State, 1)
	c.mu.Lock()
	c.watchers[ch] = struct{}{}
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.watchers, ch)
			c.mu.Unlock()
			close(ch)
		})
	}
}

// Close stops every pending timer and cancels in-flight collaborator calls
func (c *FlowController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancel()
	for task, t := range c.timers {
		t.Stop()
		delete(c.timers, task)
	}
}

func (c *FlowController) publish(s flow.State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for ch := range c.watchers {
		select {
		case ch <- s:
		default:
			// drop the stale snapshot, keep the newest
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

func (c *FlowController) apply(effects []flow.Effect) {
	for _, e := range effects {
		switch e := e.(type) {
		case flow.Schedule:
			c.schedule(e)
		case flow.Cancel:
			c.stopTimer(e)
		case flow.SetRedirectMarker:
			if err := c.deps.Markers.Set(e.Marker); err != nil {
				logging.Logger.Warn("Failed to set redirect marker", "error", err)
			}
			// the callback page is now "loaded"
			if err := c.Dispatch(flow.CompleteAuthCallback{}); err != nil {
				logging.Logger.Warn("Auth callback not started", "error", err)
			}
		case flow.ClearRedirectMarker:
			if err := c.deps.Markers.Clear(); err != nil {
				logging.Logger.Warn("Failed to clear redirect marker", "error", err)
			}
		}
	}
}

func (c *FlowController) schedule(s flow.Schedule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// effects are applied outside the reducer lock, so two dispatches can hand their
	// schedules over out of order. An older generation must not replace a newer timer.
	if latest, ok := c.scheduled[s.Task]; ok && s.Generation < latest {
		logging.Logger.Debug("Stale schedule ignored",
			"task", s.Task, "generation", s.Generation, "latest", latest)
		return
	}
	c.scheduled[s.Task] = s.Generation

	if old, ok := c.timers[s.Task]; ok {
		old.Stop()
	}

	var timer ports.Timer
	timer = c.deps.Scheduler.AfterFunc(s.Delay, func() {
		c.mu.Lock()
		if c.timers[s.Task] == timer {
			delete(c.timers, s.Task)
		}
		c.mu.Unlock()

		c.complete(s)
	})
	c.timers[s.Task] = timer
}

func (c *FlowController) stopTimer(e flow.Cancel) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if latest, ok := c.scheduled[e.Task]; ok && e.Generation < latest {
		logging.Logger.Debug("Stale cancel ignored",
			"task", e.Task, "generation", e.Generation, "latest", latest)
		return
	}
	c.scheduled[e.Task] = e.Generation

	if t, ok := c.timers[e.Task]; ok {
		t.Stop()
		delete(c.timers, e.Task)
	}
}

// complete runs the collaborator call behind a fired timer and feeds its outcome back
func (c *FlowController) complete(s flow.Schedule) {
	if c.ctx.Err() != nil {
		return
	}

	in := c.run(s)
	if err := c.Dispatch(in); err != nil && !errors.Is(err, domain.ErrRejected) {
		logging.Logger.Error("Failed to apply task outcome", "task", s.Task, "error", err)
	} else if err != nil {
		logging.Logger.Debug("Task outcome discarded", "task", s.Task, "generation", s.Generation)
	}
}

func (c *FlowController) run(s flow.Schedule) flow.Intent {
	ctx := c.ctx
	fail := func(err error) flow.Intent {
		logging.Logger.Warn("Task failed", "task", s.Task, "error", err)
		return flow.TaskFailed{Err: err, Generation: s.Generation, Task: s.Task}
	}

	switch call := s.Call.(type) {
	case flow.InitiateAuth:
		marker, err := c.deps.Identity.InitiateAuth(ctx)
		if err != nil {
			return fail(domain.NewRemoteError("initiate auth", err))
		}
		return flow.RedirectCompleted{Generation: s.Generation, Marker: marker}

	case flow.ExchangeAuth:
		grant, err := c.deps.Identity.Exchange(ctx, call.Marker)
		if err != nil {
			return fail(domain.NewRemoteError("exchange auth", err))
		}
		return flow.AuthExchanged{Generation: s.Generation, Grant: grant}

	case flow.RegisterRepository:
		repo, err := c.deps.Host.CreateRepository(ctx, call.Draft.Organization.ID, call.Draft.Name)
		if err != nil {
			return fail(domain.NewRemoteError("create repository", err))
		}
		if repo.FullPath != "" && repo.FullPath != call.FullPath {
			logging.Logger.Warn("Host returned a different repository path",
				"expected", call.FullPath, "actual", repo.FullPath)
		}
		return flow.RepositoryRegistered{FullPath: repo.FullPath, Generation: s.Generation}

	case flow.GenerateCommitMessage:
		draft, err := c.deps.Generator.SummarizeChanges(ctx, call.Files)
		if err != nil {
			return fail(domain.NewRemoteError("summarize changes", err))
		}
		return flow.CommitMessageGenerated{Draft: draft, Generation: s.Generation}

	case flow.CommitAndPush:
		result, err := c.deps.Pusher.CommitAndPush(ctx, call.Repository, call.Draft, call.Files)
		if err != nil {
			return fail(domain.NewRemoteError("commit and push", err))
		}
		return flow.CommitPushed{Generation: s.Generation, Result: result}

	case flow.PullBranch:
		if err := c.deps.Sync.Pull(ctx, call.Repository, call.Branch); err != nil {
			return fail(domain.NewRemoteError("pull", err))
		}
		return flow.PullCompleted{Generation: s.Generation}

	case flow.Expire:
		return flow.NotificationExpired{Generation: s.Generation}
	}

	return fail(errors.New("unsupported task call"))
}

// User intents, one method per control

func (c *FlowController) OpenIntegrationsMenu() error {
	return c.Dispatch(flow.OpenIntegrationsMenu{})
}

func (c *FlowController) CloseIntegrationsMenu() error {
	return c.Dispatch(flow.CloseIntegrationsMenu{})
}

func (c *FlowController) OpenConnectDialog() error {
	return c.Dispatch(flow.OpenConnectDialog{})
}

func (c *FlowController) BeginAuthentication() error {
	return c.Dispatch(flow.BeginAuthentication{})
}

// CompleteAuthCallback is dispatched automatically once the redirect marker is set.
// Calling it again while the callback is loading is rejected.
func (c *FlowController) CompleteAuthCallback() error {
	return c.Dispatch(flow.CompleteAuthCallback{})
}

func (c *FlowController) SelectOrganization(org domain.Organization) error {
	return c.Dispatch(flow.SelectOrganization{Organization: org})
}

func (c *FlowController) EditRepositoryName(name string) error {
	return c.Dispatch(flow.EditRepositoryName{Name: name})
}

func (c *FlowController) CreateRepository() error {
	return c.Dispatch(flow.CreateRepository{})
}

func (c *FlowController) OpenCommitReview() error {
	return c.Dispatch(flow.OpenCommitReview{})
}

func (c *FlowController) CloseCommitReview() error {
	return c.Dispatch(flow.CloseCommitReview{})
}

func (c *FlowController) EditCommitTitle(title string) error {
	return c.Dispatch(flow.EditCommitTitle{Title: title})
}

func (c *FlowController) EditCommitDescription(description string) error {
	return c.Dispatch(flow.EditCommitDescription{Description: description})
}

func (c *FlowController) ConfirmCommit() error {
	return c.Dispatch(flow.ConfirmCommit{})
}

func (c *FlowController) DismissCommitSuccess() error {
	return c.Dispatch(flow.DismissCommitSuccess{})
}

func (c *FlowController) OpenGithubStatus() error {
	return c.Dispatch(flow.OpenGithubStatus{})
}

func (c *FlowController) CloseGithubStatus() error {
	return c.Dispatch(flow.CloseGithubStatus{})
}

func (c *FlowController) CancelDialog() error {
	return c.Dispatch(flow.CancelDialog{})
}

func (c *FlowController) PullLatest() error {
	return c.Dispatch(flow.PullLatest{})
}

func (c *FlowController) PushUpdates() error {
	return c.Dispatch(flow.PushUpdates{})
}

func (c *FlowController) DismissAlert() error {
	return c.Dispatch(flow.DismissAlert{})
}

func intentName(in flow.Intent) string {
	return fmt.Sprintf("%T", in)
}
