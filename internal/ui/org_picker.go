package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/theme"
)

// OrgPicker lets the user choose the organization the repository is created in
type OrgPicker struct {
	form     *huh.Form
	orgs     []domain.Organization
	selected string
}

// NewOrgPicker builds the picker for orgs. The form is nil when there is nothing to pick.
func NewOrgPicker(orgs []domain.Organization) *OrgPicker {
	p := &OrgPicker{orgs: orgs}
	if len(orgs) == 0 {
		return p
	}

	options := make([]huh.Option[string], 0, len(orgs))
	for _, org := range orgs {
		options = append(options, huh.NewOption(org.DisplayName, org.ID))
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select an organization to create the repository in").
				Options(options...).
				Value(&p.selected),
		),
	).WithShowHelp(false).WithWidth(dialogWidth)

	return p
}

func (p *OrgPicker) Init() tea.Cmd {
	if p.form == nil {
		return nil
	}
	return p.form.Init()
}

func (p *OrgPicker) Update(msg tea.Msg) tea.Cmd {
	if p.form == nil {
		return nil
	}
	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}
	return cmd
}

func (p *OrgPicker) View() string {
	if p.form == nil {
		return theme.MutedStyle.Render("No organizations available for this account.")
	}
	return p.form.View()
}

// Chosen returns the organization once the form has been submitted
func (p *OrgPicker) Chosen() (domain.Organization, bool) {
	if p.form == nil || p.form.State != huh.StateCompleted {
		return domain.Organization{}, false
	}
	org := domain.FindOrganization(p.orgs, p.selected)
	if org == nil {
		return domain.Organization{}, false
	}
	return *org, true
}

// Matches reports whether the picker was built for the same organizations
func (p *OrgPicker) Matches(orgs []domain.Organization) bool {
	if len(p.orgs) != len(orgs) {
		return false
	}
	for i := range orgs {
		if p.orgs[i].ID != orgs[i].ID {
			return false
		}
	}
	return true
}
