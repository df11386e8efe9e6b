// Package tui implements the root Bubble Tea model for zpnr.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zpnr/internal/pnr"
	"github.com/zarlcorp/zpnr/internal/record"
	"github.com/zarlcorp/zpnr/internal/store"
)

type viewID int

const (
	viewPassword viewID = iota
	viewMenu
	viewGenerate
	viewList
	viewDetail
)

// accent is zpnr's own colour for the cursor, logo and header.
var accent = lipgloss.Color("#3FB68B")

var accentStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)

// Model is the root TUI model.
type Model struct {
	version  string
	dataDir  string
	gen      *pnr.Generator
	req      pnr.Request
	store    *store.Store
	firstRun bool
	now      func() time.Time

	active   viewID
	password passwordModel
	menu     menuModel
	generate generateModel
	list     listModel
	detail   detailModel

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model. req supplies the age range, gender and
// corporate type used for every generated number.
func New(version, dataDir string, gen *pnr.Generator, req pnr.Request, firstRun bool) Model {
	return Model{
		version:  version,
		dataDir:  dataDir,
		gen:      gen,
		req:      req,
		firstRun: firstRun,
		now:      time.Now,
		active:   viewPassword,
		password: newPasswordModel(firstRun),
		menu:     newMenuModel(version),
	}
}

func (m Model) Init() tea.Cmd {
	return m.password.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case passwordSubmitMsg:
		return m.openStore(msg.password)

	case navigateMsg:
		return m.navigate(msg.view)

	case generateMsg:
		return m.handleGenerate(msg.kind)

	case saveNumberMsg:
		return m.handleSave(msg.number)

	case viewRecordMsg:
		m.detail = newDetailModel(msg.record)
		m.active = viewDetail
		return m, nil

	case deleteRecordMsg:
		return m.handleDelete(msg.id)
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	// password and menu render their own logo
	switch m.active {
	case viewPassword:
		return m.password.View()
	case viewMenu:
		return m.menu.View()
	}

	var content string
	switch m.active {
	case viewGenerate:
		content = m.generate.View()
	case viewList:
		content = m.list.View()
	case viewDetail:
		content = m.detail.View()
	}

	header := zstyle.RenderHeader("zpnr", viewTitle(m.active), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewGenerate:
		return "Generate"
	case viewList:
		return "Saved Numbers"
	case viewDetail:
		return "Number Details"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewGenerate:
		return []zstyle.HelpPair{
			{Key: "s", Desc: "save"},
			{Key: "c", Desc: "copy all"},
			{Key: "enter", Desc: "copy field"},
			{Key: "n", Desc: "new"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewList:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "view"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewDetail:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "copy field"},
			{Key: "c", Desc: "copy all"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewPassword:
		m.password, cmd = m.password.Update(msg)
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewGenerate:
		m.generate, cmd = m.generate.Update(msg)
	case viewList:
		m.list, cmd = m.list.Update(msg)
	case viewDetail:
		m.detail, cmd = m.detail.Update(msg)
	}

	return m, cmd
}

func (m Model) openStore(password string) (tea.Model, tea.Cmd) {
	s, err := store.OpenDir(m.dataDir, []byte(password))
	if err != nil {
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	m.store = s
	return m.navigate(viewMenu)
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		mm := newMenuModel(m.version)
		if m.store != nil {
			if recs, err := m.store.List(); err == nil {
				mm.savedCount = len(recs)
			}
		}
		m.menu = mm
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewList:
		m, cmd := m.loadList()
		return m, tea.Batch(cmd, tea.ClearScreen)

	case viewDetail:
		m.active = viewDetail
		return m, tea.ClearScreen
	}

	return m, nil
}

func (m Model) handleGenerate(kind pnr.Kind) (tea.Model, tea.Cmd) {
	var n pnr.Number
	var err error

	switch kind {
	case pnr.KindPersonnummer:
		n, err = m.gen.Personnummer(m.req.Personal())
	case pnr.KindOrganisationsnummer:
		n, err = m.gen.Organisationsnummer(m.req.CorporateType)
	case pnr.KindVAT:
		n = m.gen.VAT()
	default:
		err = fmt.Errorf("unknown kind %q", kind)
	}

	if err != nil {
		m.menu.flash = "generate: " + err.Error()
		m.active = viewMenu
		return m, clearFlashAfter()
	}

	m.generate = newGenerateModel(n)
	m.active = viewGenerate
	return m, tea.ClearScreen
}

func (m Model) loadList() (Model, tea.Cmd) {
	if m.store == nil {
		m.list = newListModel(nil)
		m.active = viewList
		return m, nil
	}

	recs, err := m.store.List()
	if err != nil {
		// show empty list with error flash
		m.list = newListModel(nil)
		m.list.flash = "load: " + err.Error()
		m.active = viewList
		return m, clearFlashAfter()
	}

	m.list = newListModel(recs)
	m.active = viewList
	return m, nil
}

func (m Model) handleSave(n pnr.Number) (tea.Model, tea.Cmd) {
	if m.store == nil {
		m.generate.flash = "save: store is not open"
		return m, clearFlashAfter()
	}

	r := record.New(n, "", m.now())
	if err := m.store.Save(r); err != nil {
		m.generate.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	m.generate, _ = m.generate.Update(numberSavedMsg{})
	return m, clearFlashAfter()
}

func (m Model) handleDelete(id string) (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}

	if _, err := m.store.Delete(id); err != nil {
		if m.active == viewDetail {
			m.detail.flash = "delete: " + err.Error()
			return m, clearFlashAfter()
		}
		m.list.flash = "delete: " + err.Error()
		return m, clearFlashAfter()
	}

	// back to a fresh list either way
	m, cmd := m.loadList()
	m.list.flash = "deleted"
	return m, tea.Batch(cmd, clearFlashAfter())
}

// Close cleans up resources. Call after the program exits.
func (m Model) Close() {
	if m.store != nil {
		m.store.Close()
	}
}
