package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/renato0307/gitlink/internal/adapters/scheduler"
	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/flow"
	"github.com/renato0307/gitlink/internal/logging"
	"github.com/renato0307/gitlink/internal/ports"
	"github.com/renato0307/gitlink/internal/services"
)

// manualStep is how far the manual clock moves per wait iteration
const manualStep = 100 * time.Millisecond

// DemoCmd drives the connect flow from sign-in to pull without a terminal UI
type DemoCmd struct {
	Instant    bool          `help:"Use a manual clock so delays complete immediately"`
	Repository string        `help:"Repository name to create" default:"my-project"`
	Timeout    time.Duration `help:"Maximum time to wait for each step" default:"30s"`
}

// DemoSnapshot is the JSON line printed after each step
type DemoSnapshot struct {
	Step         string `json:"step"`
	Phase        string `json:"phase"`
	Overlay      string `json:"overlay"`
	Account      string `json:"account,omitempty"`
	Organization string `json:"organization,omitempty"`
	Repository   string `json:"repository,omitempty"`
	CommitTitle  string `json:"commit_title,omitempty"`
	CommitHash   string `json:"commit_hash,omitempty"`
	Notification string `json:"notification,omitempty"`
	Alert        string `json:"alert,omitempty"`
}

// Run executes the scripted scenario
func (d *DemoCmd) Run(cli *CLI) error {
	var sched ports.Scheduler = scheduler.NewClock()
	if d.Instant {
		sched = scheduler.NewManual()
	}

	ctx := context.Background()
	controller, err := cli.Container.NewFlow(ctx, FlowOptions{Scheduler: sched})
	if err != nil {
		return err
	}
	defer controller.Close()

	scenario := demoScenario{
		controller: controller,
		out:        json.NewEncoder(os.Stdout),
		references: cli.Container.References,
		repository: d.Repository,
		scheduler:  sched,
		timeout:    d.Timeout,
	}
	return scenario.run(ctx)
}

type demoScenario struct {
	controller *services.FlowController
	out        *json.Encoder
	references *services.ReferenceService
	repository string
	scheduler  ports.Scheduler
	timeout    time.Duration
}

func (s demoScenario) run(ctx context.Context) error {
	if s.controller.State().Connected == nil {
		if err := s.connect(ctx); err != nil {
			return err
		}
	}
	if err := s.commit(ctx); err != nil {
		return err
	}
	if err := s.pull(ctx); err != nil {
		return err
	}

	if err := s.references.Refresh(ctx, s.controller); err != nil {
		return fmt.Errorf("failed to refresh reference data: %w", err)
	}
	return s.emit("refresh")
}

func (s demoScenario) connect(ctx context.Context) error {
	steps := []struct {
		name string
		do   func() error
	}{
		{"open_integrations_menu", s.controller.OpenIntegrationsMenu},
		{"open_connect_dialog", s.controller.OpenConnectDialog},
		{"begin_authentication", s.controller.BeginAuthentication},
	}
	for _, step := range steps {
		if err := s.do(step.name, step.do); err != nil {
			return err
		}
	}

	if err := s.waitFor(ctx, "authenticated", func(st flow.State) bool {
		return st.Phase == domain.PhaseAuthenticated
	}); err != nil {
		return err
	}

	orgs := s.controller.State().Reference.Organizations
	if len(orgs) == 0 {
		return errors.New("no organizations available to create a repository in")
	}
	if err := s.do("select_organization", func() error {
		return s.controller.SelectOrganization(orgs[0])
	}); err != nil {
		return err
	}
	if err := s.do("edit_repository_name", func() error {
		return s.controller.EditRepositoryName(s.repository)
	}); err != nil {
		return err
	}
	if err := s.do("create_repository", s.controller.CreateRepository); err != nil {
		return err
	}
	return s.waitFor(ctx, "repository_created", func(st flow.State) bool {
		return st.Connected != nil && !st.Pending(flow.TaskCreateRepository)
	})
}

func (s demoScenario) commit(ctx context.Context) error {
	if err := s.do("open_commit_review", s.controller.OpenCommitReview); err != nil {
		return err
	}
	if err := s.waitFor(ctx, "commit_message_generated", func(st flow.State) bool {
		return !st.GeneratingMessage()
	}); err != nil {
		return err
	}
	if err := s.do("confirm_commit", s.controller.ConfirmCommit); err != nil {
		return err
	}
	if err := s.waitFor(ctx, "pushed", func(st flow.State) bool {
		return !st.Pushing()
	}); err != nil {
		return err
	}
	return s.do("dismiss_commit_success", s.controller.DismissCommitSuccess)
}

func (s demoScenario) pull(ctx context.Context) error {
	if err := s.do("open_github_status", s.controller.OpenGithubStatus); err != nil {
		return err
	}
	if err := s.do("pull_latest", s.controller.PullLatest); err != nil {
		return err
	}
	if err := s.waitFor(ctx, "pulled", func(st flow.State) bool {
		return !st.Pending(flow.TaskPull)
	}); err != nil {
		return err
	}
	return s.do("close_github_status", s.controller.CloseGithubStatus)
}

func (s demoScenario) do(name string, action func() error) error {
	if err := action(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return s.emit(name)
}

// waitFor moves time forward until cond holds or the step times out
func (s demoScenario) waitFor(ctx context.Context, name string, cond func(flow.State) bool) error {
	if manual, ok := s.scheduler.(*scheduler.Manual); ok {
		for elapsed := time.Duration(0); !cond(s.controller.State()); elapsed += manualStep {
			if elapsed >= s.timeout {
				return fmt.Errorf("%s: timed out after %s", name, s.timeout)
			}
			manual.Advance(manualStep)
		}
		return s.emit(name)
	}

	updates, stop := s.controller.Watch()
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	for !cond(s.controller.State()) {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", name, ctx.Err())
		case <-updates:
		}
	}
	return s.emit(name)
}

func (s demoScenario) emit(step string) error {
	snapshot := newDemoSnapshot(step, s.controller.State())
	logging.Logger.Debug("Demo step", "step", step, "phase", snapshot.Phase, "overlay", snapshot.Overlay)
	return s.out.Encode(snapshot)
}

func newDemoSnapshot(step string, st flow.State) DemoSnapshot {
	snap := DemoSnapshot{
		CommitTitle: st.CommitDraft.Title,
		Overlay:     st.Overlay.String(),
		Phase:       string(st.Phase),
		Step:        step,
	}
	if st.Account != nil {
		snap.Account = st.Account.Login
	}
	if st.Draft != nil {
		snap.Organization = st.Draft.Organization.DisplayName
	}
	if st.Connected != nil {
		snap.Repository = st.Connected.FullPath
	}
	if st.LastCommit != nil {
		snap.CommitHash = st.LastCommit.ShortHash()
		if snap.CommitTitle == "" {
			snap.CommitTitle = st.LastCommit.Title
		}
	}
	if st.Notification.Visible {
		snap.Notification = st.Notification.Message
	}
	if st.Alert != nil {
		snap.Alert = st.Alert.Message
	}
	return snap
}

