package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/gitlink/internal/adapters/scheduler"
	"github.com/renato0307/gitlink/internal/config"
	"github.com/renato0307/gitlink/internal/domain"
)

func newTestContainer(t *testing.T, settings *config.Settings) *Container {
	t.Helper()
	container, err := NewContainer(context.Background(), settings)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })
	return container
}

func runDemo(t *testing.T, container *Container) []DemoSnapshot {
	t.Helper()
	ctx := context.Background()
	manual := scheduler.NewManual()

	controller, err := container.NewFlow(ctx, FlowOptions{Scheduler: manual})
	require.NoError(t, err)
	defer controller.Close()

	var buf bytes.Buffer
	scenario := demoScenario{
		controller: controller,
		out:        json.NewEncoder(&buf),
		references: container.References,
		repository: "My Project",
		scheduler:  manual,
		timeout:    time.Minute,
	}
	require.NoError(t, scenario.run(ctx))

	var snapshots []DemoSnapshot
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var snap DemoSnapshot
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &snap))
		snapshots = append(snapshots, snap)
	}
	return snapshots
}

func findStep(t *testing.T, snapshots []DemoSnapshot, step string) DemoSnapshot {
	t.Helper()
	for _, snap := range snapshots {
		if snap.Step == step {
			return snap
		}
	}
	require.Failf(t, "step not found", "step %q", step)
	return DemoSnapshot{}
}

func TestDemoScenarioConnectsCommitsAndPulls(t *testing.T) {
	snapshots := runDemo(t, newTestContainer(t, &config.Settings{}))

	redirecting := findStep(t, snapshots, "begin_authentication")
	assert.Equal(t, string(domain.PhaseRedirecting), redirecting.Phase)
	assert.Equal(t, domain.OverlayConnectDialog.String(), redirecting.Overlay)

	authenticated := findStep(t, snapshots, "authenticated")
	assert.Equal(t, string(domain.PhaseAuthenticated), authenticated.Phase)
	assert.Equal(t, "johndoe", authenticated.Account)

	created := findStep(t, snapshots, "repository_created")
	assert.Equal(t, "personal-account/my-project", created.Repository)
	assert.Equal(t, "Successfully created repository personal-account/my-project", created.Notification)

	generated := findStep(t, snapshots, "commit_message_generated")
	assert.NotEmpty(t, generated.CommitTitle)

	pushed := findStep(t, snapshots, "pushed")
	assert.Equal(t, domain.OverlayCommitSuccess.String(), pushed.Overlay)
	assert.NotEmpty(t, pushed.CommitHash)
	assert.Equal(t, generated.CommitTitle, pushed.CommitTitle)

	last := snapshots[len(snapshots)-1]
	assert.Equal(t, "refresh", last.Step)
	assert.Equal(t, domain.OverlayNone.String(), last.Overlay)
	assert.Equal(t, "personal-account/my-project", last.Repository)
}

func TestDemoScenarioSkipsConnectWhenAlreadyConnected(t *testing.T) {
	snapshots := runDemo(t, newTestContainer(t, &config.Settings{
		ConnectedRepository: "Acme Corp/website",
	}))

	for _, snap := range snapshots {
		assert.NotEqual(t, "begin_authentication", snap.Step)
	}
	assert.Equal(t, "open_commit_review", snapshots[0].Step)
	assert.Equal(t, "acme-corp/website", snapshots[0].Repository)
}

func TestNewContainerUsesFixturesPath(t *testing.T) {
	_, err := NewContainer(context.Background(), &config.Settings{FixturesPath: "/does/not/exist.toml"})
	require.Error(t, err)
}
