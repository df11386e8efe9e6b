package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zpnr/internal/pnr"
)

type menuChoice int

const (
	menuPersonnummer menuChoice = iota
	menuOrganisationsnummer
	menuVAT
	menuBrowse
	menuQuit
)

var menuItems = []string{
	"Generate personnummer",
	"Generate organisationsnummer",
	"Generate VAT id",
	"Browse saved numbers",
	"Quit",
}

// menuModel is the main menu view.
type menuModel struct {
	cursor     int
	version    string
	savedCount int
	flash      string
}

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

// generateMsg asks the root model for a fresh number of kind.
type generateMsg struct {
	kind pnr.Kind
}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

func newMenuModel(version string) menuModel {
	return menuModel{version: version}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyUp) {
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyDown) {
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m, m.selectItem()
		}

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m menuModel) selectItem() tea.Cmd {
	switch menuChoice(m.cursor) {
	case menuPersonnummer:
		return generate(pnr.KindPersonnummer)
	case menuOrganisationsnummer:
		return generate(pnr.KindOrganisationsnummer)
	case menuVAT:
		return generate(pnr.KindVAT)
	case menuBrowse:
		return func() tea.Msg { return navigateMsg{view: viewList} }
	case menuQuit:
		return tea.Quit
	}
	return nil
}

func generate(kind pnr.Kind) tea.Cmd {
	return func() tea.Msg { return generateMsg{kind: kind} }
}

func (m menuModel) View() string {
	title := zstyle.Title.Render("zpnr")
	ver := zstyle.MutedText.Render(m.version)

	s := fmt.Sprintf("\n  %s %s\n\n", title, ver)

	for i, item := range menuItems {
		if menuChoice(i) == menuBrowse && m.savedCount > 0 {
			item += zstyle.MutedText.Render(fmt.Sprintf(" (%d)", m.savedCount))
		}
		if m.cursor == i {
			s += zstyle.Highlight.Render(fmt.Sprintf("  > %s", item)) + "\n"
		} else {
			s += fmt.Sprintf("    %s\n", item)
		}
	}

	s += "\n"
	if m.flash != "" {
		s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	s += "  " + zstyle.MutedText.Render("j/k navigate  enter select  q quit") + "\n\n"
	return s
}
