package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/gitlink/internal/config"
	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/flow"
	"github.com/renato0307/gitlink/internal/logging"
	"github.com/renato0307/gitlink/internal/ports"
	"github.com/renato0307/gitlink/internal/theme"
)

const (
	defaultHeight   = 24
	defaultWidth    = 80
	errorClearDelay = 5 * time.Second
	serviceHost     = "github.com"
)

// Controller is the connect flow as seen by the presentation layer
type Controller interface {
	Dispatch(in flow.Intent) error
	Permits(in flow.Intent) bool
	State() flow.State
	Watch() (<-chan flow.State, func())
}

// Options configures a Model
type Options struct {
	Controller Controller
	DevMode    bool
	Keys       config.KeyBindingsConfig
	Opener     ports.URLOpener
}

// Model renders the workspace and routes keys to the connect flow. It never changes
// flow state itself: every action is an intent dispatched to the controller, and the
// view is rebuilt from the snapshot the controller publishes.
type Model struct {
	controller   Controller
	deviceCode   *DeviceCodeMsg // code to enter when a real device flow is used
	devMode      bool           // shows version info in the header
	errorManager *ErrorManager  // UI-local errors
	height       int
	help         help.Model
	keys         KeyMap
	menu         IntegrationsMenu
	nameInput    textinput.Model // repository name editor
	opener       ports.URLOpener
	orgPicker    *OrgPicker    // set while the connect dialog lists organizations
	review       *CommitReview // set while the commit review is open
	spinner      spinner.Model
	state        flow.State
	stopWatching func()
	updates      <-chan flow.State
	width        int
}

// NewModel creates the root model and subscribes it to controller snapshots
func NewModel(opts Options) *Model {
	updates, stop := opts.Controller.Watch()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.SpinnerStyle

	name := textinput.New()
	name.Placeholder = "repository-name"
	name.CharLimit = 100
	name.Width = dialogWidth - 4

	m := &Model{
		controller:   opts.Controller,
		devMode:      opts.DevMode,
		errorManager: NewErrorManager(errorClearDelay),
		help:         help.New(),
		keys:         NewKeyMap(opts.Keys),
		nameInput:    name,
		opener:       opts.Opener,
		spinner:      s,
		stopWatching: stop,
		updates:      updates,
	}
	m.syncState()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForState(m.updates), m.spinner.Tick)
}

// Close stops listening for controller snapshots
func (m *Model) Close() {
	if m.stopWatching != nil {
		m.stopWatching()
		m.stopWatching = nil
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case flowChangedMsg:
		return m, tea.Batch(m.syncState(), waitForState(m.updates))

	case watchClosedMsg:
		logging.Logger.Debug("Flow snapshots closed")
		return m, nil

	case DeviceCodeMsg:
		m.deviceCode = &msg
		return m, nil

	case clearErrorMsg:
		m.errorManager.ClearError()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		// pick up the dispatched change now instead of waiting for the snapshot message
		return m, tea.Batch(cmd, m.syncState())
	}

	return m, m.forward(msg)
}

// forward hands non-key messages (cursor blinks, form internals) to the active editor
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	switch {
	case m.orgPicker != nil:
		cmd := m.orgPicker.Update(msg)
		return tea.Batch(cmd, m.pickOrganization())
	case m.review != nil:
		cmd, _ := m.review.Update(msg)
		return cmd
	case m.state.Overlay == domain.OverlayConnectDialog && m.state.ConnectView() == flow.ConnectViewRepositoryName:
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Application.ForceQuit) {
		return tea.Quit
	}
	if m.state.Alert != nil && !m.editing() && key.Matches(msg, m.keys.Flow.DismissAlert) {
		return m.dispatch(flow.DismissAlert{})
	}

	switch m.state.Overlay {
	case domain.OverlayIntegrationsMenu:
		return m.handleMenuKey(msg)
	case domain.OverlayConnectDialog:
		return m.handleConnectKey(msg)
	case domain.OverlayCommitReview:
		return m.handleReviewKey(msg)
	case domain.OverlayCommitSuccess:
		return m.handleSuccessKey(msg)
	case domain.OverlayGithubStatus:
		return m.handleStatusKey(msg)
	}
	return m.handleWorkspaceKey(msg)
}

func (m *Model) handleWorkspaceKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Application.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Application.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Header.Integrations):
		m.menu.Reset()
		return m.dispatch(flow.OpenIntegrationsMenu{})
	case key.Matches(msg, m.keys.Header.GitHub):
		return m.dispatch(flow.OpenGithubStatus{})
	}
	return nil
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Navigation.Cancel), key.Matches(msg, m.keys.Header.Integrations):
		return m.dispatch(flow.CloseIntegrationsMenu{})
	case key.Matches(msg, m.keys.Header.GitHub):
		return m.dispatch(flow.OpenGithubStatus{})
	case key.Matches(msg, m.keys.Navigation.Up):
		m.menu.Move(-1)
	case key.Matches(msg, m.keys.Navigation.Down):
		m.menu.Move(1)
	case key.Matches(msg, m.keys.Navigation.Confirm):
		item := m.menu.Selected()
		if item.connects {
			return m.dispatch(flow.OpenConnectDialog{})
		}
		m.errorManager.SetError(fmt.Errorf("%s is not available in this workspace", item.label))
		return tea.Batch(m.dispatch(flow.CloseIntegrationsMenu{}), m.errorManager.ClearAfterDelay())
	case key.Matches(msg, m.keys.Application.Quit):
		return tea.Quit
	}
	return nil
}

func (m *Model) handleConnectKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Navigation.Cancel) {
		return m.dispatch(flow.CancelDialog{})
	}

	switch m.state.ConnectView() {
	case flow.ConnectViewSignIn:
		switch {
		case key.Matches(msg, m.keys.Navigation.Confirm):
			return m.dispatch(flow.BeginAuthentication{})
		case key.Matches(msg, m.keys.Flow.OpenBrowser) && m.deviceCode != nil:
			return m.openURL(m.deviceCode.VerificationURI)
		}

	case flow.ConnectViewOrganizations:
		if m.orgPicker == nil {
			return nil
		}
		cmd := m.orgPicker.Update(msg)
		return tea.Batch(cmd, m.pickOrganization())

	case flow.ConnectViewRepositoryName:
		if key.Matches(msg, m.keys.Navigation.Confirm) {
			return m.dispatch(flow.CreateRepository{})
		}
		before := m.nameInput.Value()
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		if after := m.nameInput.Value(); after != before {
			return tea.Batch(cmd, m.dispatch(flow.EditRepositoryName{Name: after}))
		}
		return cmd

	case flow.ConnectViewConnected:
		switch {
		case key.Matches(msg, m.keys.Navigation.Confirm):
			return m.dispatch(flow.OpenCommitReview{})
		case key.Matches(msg, m.keys.Flow.OpenBrowser):
			return m.openRepository()
		}
	}
	return nil
}

// pickOrganization dispatches the picker's choice once its form is submitted
func (m *Model) pickOrganization() tea.Cmd {
	if m.orgPicker == nil {
		return nil
	}
	org, ok := m.orgPicker.Chosen()
	if !ok {
		return nil
	}
	m.orgPicker = nil
	cmd := m.dispatch(flow.SelectOrganization{Organization: org})
	return tea.Batch(cmd, m.syncState())
}

func (m *Model) handleReviewKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Navigation.Cancel):
		return m.dispatch(flow.CloseCommitReview{})
	case key.Matches(msg, m.keys.Flow.SaveCommit):
		return m.dispatch(flow.ConfirmCommit{})
	}

	// the generated message would overwrite anything typed meanwhile
	if m.review == nil || m.state.GeneratingMessage() {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Navigation.NextField):
		return m.review.NextField()
	case key.Matches(msg, m.keys.Navigation.Confirm) && m.review.TitleFocused():
		return m.review.NextField()
	}

	cmd, edit := m.review.Update(msg)
	if edit == nil {
		return cmd
	}
	return tea.Batch(cmd, m.dispatch(edit))
}

func (m *Model) handleSuccessKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Navigation.Cancel), key.Matches(msg, m.keys.Navigation.Confirm):
		return m.dispatch(flow.DismissCommitSuccess{})
	case key.Matches(msg, m.keys.Flow.ViewStatus):
		return m.dispatch(flow.OpenGithubStatus{})
	case key.Matches(msg, m.keys.Flow.OpenBrowser):
		return m.openRepository()
	}
	return nil
}

func (m *Model) handleStatusKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Navigation.Cancel), key.Matches(msg, m.keys.Header.GitHub):
		return m.dispatch(flow.CloseGithubStatus{})
	case key.Matches(msg, m.keys.Flow.Pull):
		return m.dispatch(flow.PullLatest{})
	case key.Matches(msg, m.keys.Flow.Push):
		return m.dispatch(flow.PushUpdates{})
	case key.Matches(msg, m.keys.Flow.OpenBrowser):
		return m.openRepository()
	case key.Matches(msg, m.keys.Application.Quit):
		return tea.Quit
	}
	return nil
}

// editing reports whether keys are going into a text field
func (m *Model) editing() bool {
	switch m.state.Overlay {
	case domain.OverlayCommitReview:
		return true
	case domain.OverlayConnectDialog:
		return m.state.ConnectView() == flow.ConnectViewRepositoryName
	}
	return false
}

// dispatch sends an intent to the controller. Rejections are expected (a key pressed
// while its action is disabled) and only logged.
func (m *Model) dispatch(in flow.Intent) tea.Cmd {
	err := m.controller.Dispatch(in)
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrRejected) {
		logging.Logger.Debug("Action ignored", "intent", fmt.Sprintf("%T", in), "reason", err)
		return nil
	}
	m.errorManager.SetError(err)
	return m.errorManager.ClearAfterDelay()
}

func (m *Model) permits(in flow.Intent) bool {
	return m.controller.Permits(in)
}

func (m *Model) openRepository() tea.Cmd {
	if m.state.Connected == nil {
		return nil
	}
	return m.openURL(m.state.Connected.URL(serviceHost))
}

func (m *Model) openURL(url string) tea.Cmd {
	if m.opener == nil {
		m.errorManager.SetError(fmt.Errorf("no browser configured, open %s manually", url))
		return m.errorManager.ClearAfterDelay()
	}
	if err := m.opener.Open(url); err != nil {
		logging.Logger.Warn("Failed to open browser", "url", url, "error", err)
		m.errorManager.SetError(fmt.Errorf("failed to open browser: %w", err))
		return m.errorManager.ClearAfterDelay()
	}
	return nil
}

// syncState pulls the controller's current snapshot and rebuilds the editors that
// mirror it. Returns the commands the new editors need to start.
func (m *Model) syncState() tea.Cmd {
	prev := m.state
	m.state = m.controller.State()
	s := m.state

	var cmds []tea.Cmd

	orgView := s.Overlay == domain.OverlayConnectDialog && s.ConnectView() == flow.ConnectViewOrganizations
	switch {
	case !orgView:
		m.orgPicker = nil
	case m.orgPicker == nil || !m.orgPicker.Matches(s.Reference.Organizations):
		m.orgPicker = NewOrgPicker(s.Reference.Organizations)
		cmds = append(cmds, m.orgPicker.Init())
	}

	if s.Draft != nil {
		if m.nameInput.Value() != s.Draft.Name {
			m.nameInput.SetValue(s.Draft.Name)
		}
		if prev.Draft == nil {
			cmds = append(cmds, m.nameInput.Focus())
		}
	} else if prev.Draft != nil {
		m.nameInput.Blur()
		m.nameInput.SetValue("")
	}

	if s.Overlay == domain.OverlayCommitReview {
		if m.review == nil {
			m.review = NewCommitReview()
			cmds = append(cmds, textinput.Blink)
		}
		m.review.Sync(s.CommitDraft)
	} else {
		m.review = nil
	}

	if s.Phase != domain.PhaseRedirecting {
		m.deviceCode = nil
	}

	return tea.Batch(cmds...)
}

func (m *Model) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	header := renderHeader(m.state, m.keys, width, m.devMode)
	footer := m.renderFooter(width)
	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(footer)
	body := lipgloss.NewStyle().Height(max(bodyHeight, 0)).Render(renderWorkspace(m.state, m.keys, width))

	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	switch m.state.Overlay {
	case domain.OverlayIntegrationsMenu:
		x := max(width-menuWidth-2, 0)
		screen = placeOverlay(screen, m.menu.View(), width, height, x, lipgloss.Height(header), false)
	case domain.OverlayConnectDialog:
		screen = compositeOverlay(screen, m.renderConnectDialog(), width, height)
	case domain.OverlayCommitReview:
		screen = compositeOverlay(screen, m.renderCommitReview(), width, height)
	case domain.OverlayCommitSuccess:
		screen = compositeOverlay(screen, m.renderCommitSuccess(), width, height)
	case domain.OverlayGithubStatus:
		screen = compositeOverlay(screen, m.renderGithubStatus(), width, height)
	}

	if m.state.Notification.Visible {
		screen = placeToast(screen, renderToast(m.state.Notification, width), width, height)
	}
	return screen
}

func (m *Model) renderFooter(width int) string {
	var lines []string
	if m.state.Alert != nil {
		dismiss := ""
		if !m.editing() {
			dismiss = keyHint(m.keys.Flow.DismissAlert)
		}
		lines = append(lines, renderAlert(m.state.Alert, dismiss, width))
	}
	if m.errorManager.HasError() {
		lines = append(lines, theme.ErrorStyle.Render(formatErrorForDisplay(m.errorManager.GetError().Error(), width)))
	}
	lines = append(lines, theme.HelpStyle.Render(m.help.View(m.contextHelp())))
	return strings.Join(lines, "\n")
}

// contextHelp lists the keys that do something in the active overlay
func (m *Model) contextHelp() contextHelp {
	k := m.keys

	switch m.state.Overlay {
	case domain.OverlayIntegrationsMenu:
		return contextHelp{short: []key.Binding{
			withHelp(k.Navigation.Up, "up"),
			withHelp(k.Navigation.Down, "down"),
			withHelp(k.Navigation.Confirm, "select"),
			withHelp(k.Navigation.Cancel, "close"),
		}}
	case domain.OverlayConnectDialog:
		return contextHelp{short: []key.Binding{
			withHelp(k.Navigation.Confirm, "continue"),
			withHelp(k.Navigation.Cancel, "cancel"),
		}}
	case domain.OverlayCommitReview:
		return contextHelp{short: []key.Binding{
			withHelp(k.Navigation.NextField, "next field"),
			withHelp(k.Flow.SaveCommit, "save changes"),
			withHelp(k.Navigation.Cancel, "cancel"),
		}}
	case domain.OverlayCommitSuccess:
		return contextHelp{short: []key.Binding{k.Flow.OpenBrowser, k.Flow.ViewStatus, withHelp(k.Navigation.Cancel, "close")}}
	case domain.OverlayGithubStatus:
		return contextHelp{short: []key.Binding{k.Flow.Pull, k.Flow.Push, k.Flow.OpenBrowser, withHelp(k.Navigation.Cancel, "close")}}
	}

	return contextHelp{
		full: [][]key.Binding{
			{k.Header.Integrations, k.Header.GitHub},
			{k.Flow.DismissAlert, k.Flow.OpenBrowser},
			{k.Application.Help, k.Application.Quit, k.Application.ForceQuit},
		},
		short: []key.Binding{k.Header.Integrations, k.Header.GitHub, k.Application.Help, k.Application.Quit},
	}
}
