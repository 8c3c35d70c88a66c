package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/flow"
	"github.com/renato0307/gitlink/internal/markdown"
	"github.com/renato0307/gitlink/internal/theme"
)

const (
	commitTitleLimit  = 120
	descriptionHeight = 6
)

type reviewField int

const (
	fieldTitle reviewField = iota
	fieldDescription
)

// CommitReview holds the editors of the commit review dialog. The flow state owns the
// draft; the editors mirror it and report user edits back.
type CommitReview struct {
	description textarea.Model
	focus       reviewField
	title       textinput.Model
}

// NewCommitReview creates the editors with the title focused
func NewCommitReview() *CommitReview {
	title := textinput.New()
	title.Placeholder = "Enter a descriptive title for your changes"
	title.CharLimit = commitTitleLimit
	title.Width = dialogWidth - 4
	title.Focus()

	description := textarea.New()
	description.Placeholder = "Describe what changed"
	description.ShowLineNumbers = false
	description.SetWidth(dialogWidth)
	description.SetHeight(descriptionHeight)

	return &CommitReview{
		description: description,
		focus:       fieldTitle,
		title:       title,
	}
}

// Sync copies the draft into the editors when it changed outside of them
func (c *CommitReview) Sync(draft domain.CommitDraft) {
	if c.title.Value() != draft.Title {
		c.title.SetValue(draft.Title)
	}
	if c.description.Value() != draft.Description {
		c.description.SetValue(draft.Description)
	}
}

// NextField moves focus between title and description
func (c *CommitReview) NextField() tea.Cmd {
	if c.focus == fieldTitle {
		c.focus = fieldDescription
		c.title.Blur()
		return c.description.Focus()
	}
	c.focus = fieldTitle
	c.description.Blur()
	return c.title.Focus()
}

// Update forwards msg to the focused editor and returns the edit to dispatch, or nil
// when the text did not change.
func (c *CommitReview) Update(msg tea.Msg) (tea.Cmd, flow.Intent) {
	var cmd tea.Cmd
	if c.focus == fieldTitle {
		before := c.title.Value()
		c.title, cmd = c.title.Update(msg)
		if after := c.title.Value(); after != before {
			return cmd, flow.EditCommitTitle{Title: after}
		}
		return cmd, nil
	}

	before := c.description.Value()
	c.description, cmd = c.description.Update(msg)
	if after := c.description.Value(); after != before {
		return cmd, flow.EditCommitDescription{Description: after}
	}
	return cmd, nil
}

// TitleFocused reports whether the title editor has focus
func (c *CommitReview) TitleFocused() bool {
	return c.focus == fieldTitle
}

// View renders the editors. The description is shown as formatted markdown while it is
// not being edited.
func (c *CommitReview) View() string {
	var b strings.Builder
	b.WriteString(theme.LabelStyle.Render("Commit message"))
	b.WriteString("\n")
	b.WriteString(c.title.View())
	b.WriteString("\n\n")
	b.WriteString(theme.LabelStyle.Render("Description"))
	b.WriteString("\n")

	value := c.description.Value()
	if c.focus == fieldDescription || strings.TrimSpace(value) == "" {
		b.WriteString(c.description.View())
		return b.String()
	}
	b.WriteString(markdown.Render(markdown.StyleDark, dialogWidth, value))
	return b.String()
}

func (m *Model) renderCommitReview() string {
	body := m.spinner.View() + " Generating commit message..."
	if !m.state.GeneratingMessage() && m.review != nil {
		body = m.review.View()
	}
	return renderDialog("Review changes", body,
		hint(m.keys.Navigation.NextField, "Next field", !m.state.GeneratingMessage()),
		hint(m.keys.Navigation.Cancel, "Cancel", m.permits(flow.CloseCommitReview{})),
		hint(m.keys.Flow.SaveCommit, "Save changes", m.permits(flow.ConfirmCommit{})))
}
