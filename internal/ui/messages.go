package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/gitlink/internal/flow"
)

// flowChangedMsg signals that the controller published a new snapshot. The model reads
// the controller's current state on receipt, so a late message never rolls it back.
type flowChangedMsg struct{}

// watchClosedMsg is sent once the controller stopped publishing
type watchClosedMsg struct{}

// clearErrorMsg clears the UI-local error line
type clearErrorMsg struct{}

// DeviceCodeMsg tells the user which code to enter on the identity provider's
// verification page. It is sent from outside the program when a real device flow is used.
type DeviceCodeMsg struct {
	ExpiresAt       time.Time
	UserCode        string
	VerificationURI string
}

// waitForState blocks until the controller publishes the next snapshot
func waitForState(updates <-chan flow.State) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return watchClosedMsg{}
		}
		return flowChangedMsg{}
	}
}
