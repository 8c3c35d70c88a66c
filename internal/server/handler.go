package server

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"github.com/renato0307/gitlink/internal/logging"
	"github.com/renato0307/gitlink/internal/services"
	"github.com/renato0307/gitlink/internal/ui"
)

// sessionModel wraps ui.Model to release the session's flow on quit
type sessionModel struct {
	*ui.Model
	controller *services.FlowController
	once       sync.Once
	sessionID  string
	startTime  time.Time
}

func (s *sessionModel) Init() tea.Cmd {
	return s.Model.Init()
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.QuitMsg); ok {
		s.release()
	}

	updatedModel, cmd := s.Model.Update(msg)
	if m, ok := updatedModel.(*ui.Model); ok {
		s.Model = m
	}
	return s, cmd
}

func (s *sessionModel) View() string {
	return s.Model.View()
}

// release runs on quit or when the connection drops, whichever comes first
func (s *sessionModel) release() {
	s.once.Do(func() {
		s.Model.Close()
		s.controller.Close()
		logging.Logger.Info("SSH session ended",
			"session_id", s.sessionID,
			"duration", time.Since(s.startTime).String())
	})
}

// teaHandler creates a connect flow and a Bubbletea model for each SSH session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	controller, err := s.newFlow(sess.Context())
	if err != nil {
		logging.Logger.Error("Failed to create flow for SSH session",
			"error", err,
			"session_id", sessionID)
		return errorModel{err}, nil
	}

	// remote sessions cannot open a browser on the client machine
	model := ui.NewModel(ui.Options{
		Controller: controller,
		Keys:       s.keys,
	})

	wrapped := &sessionModel{
		Model:      model,
		controller: controller,
		sessionID:  sessionID,
		startTime:  time.Now(),
	}
	go func() {
		<-sess.Context().Done()
		wrapped.release()
	}()

	return wrapped, []tea.ProgramOption{tea.WithAltScreen()}
}

// errorModel is a simple model that displays an error
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd {
	return nil
}

func (e errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return e, tea.Quit
}

func (e errorModel) View() string {
	return fmt.Sprintf("Error: %v\n", e.err)
}
