package tui

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zpnr/internal/pnr"
	"github.com/zarlcorp/zpnr/internal/record"
	"github.com/zarlcorp/zpnr/internal/store"
)

// helpers

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func specialKey(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func escKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func testPersonnummer() pnr.Number {
	return pnr.Number{
		Kind:      pnr.KindPersonnummer,
		Value:     "961025-0749",
		Gender:    pnr.Female,
		BirthDate: time.Date(1996, 10, 25, 0, 0, 0, 0, time.UTC),
	}
}

func testRecord() record.Record {
	return record.Record{
		ID:        "0b5d7e4a-1c2f-4e55-9a8b-3f1d2c4b5a6e",
		Label:     "test user",
		Number:    testPersonnummer(),
		CreatedAt: fixedNow,
	}
}

func testGenerator() *pnr.Generator {
	return pnr.New(
		pnr.WithSource(rand.New(rand.NewSource(1))),
		pnr.WithClock(func() time.Time { return fixedNow }),
	)
}

// newTestModel creates a root model over a temp data dir.
func newTestModel(t *testing.T, dir string, firstRun bool) Model {
	t.Helper()
	m := New("1.0", dir, testGenerator(), pnr.DefaultRequest(), firstRun)
	m.now = func() time.Time { return fixedNow }
	return m
}

// processMsg sends a message through the model and returns the updated model.
func processMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	result, _ := m.Update(msg)
	return result.(Model)
}

// unlock opens the store through the password flow.
func unlock(t *testing.T, m Model) Model {
	t.Helper()
	m = processMsg(t, m, passwordSubmitMsg{password: "testpass"})
	if m.store == nil {
		t.Fatalf("store not opened, password error %q", m.password.errMsg)
	}
	t.Cleanup(m.Close)
	return m
}

// menu view tests

func TestMenuNavigation(t *testing.T) {
	m := newMenuModel("1.0")

	m, _ = m.Update(keyMsg('k'))
	if m.cursor != 0 {
		t.Errorf("cursor should stay at top, got %d", m.cursor)
	}

	for range len(menuItems) + 2 {
		m, _ = m.Update(keyMsg('j'))
	}
	if m.cursor != len(menuItems)-1 {
		t.Errorf("cursor should stop at bottom, got %d", m.cursor)
	}
}

func TestMenuSelectGenerates(t *testing.T) {
	tests := []struct {
		cursor int
		kind   pnr.Kind
	}{
		{int(menuPersonnummer), pnr.KindPersonnummer},
		{int(menuOrganisationsnummer), pnr.KindOrganisationsnummer},
		{int(menuVAT), pnr.KindVAT},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			m := newMenuModel("1.0")
			m.cursor = tt.cursor

			_, cmd := m.Update(enterKey())
			if cmd == nil {
				t.Fatal("enter should emit a command")
			}
			msg, ok := cmd().(generateMsg)
			if !ok || msg.kind != tt.kind {
				t.Errorf("got %#v, want generateMsg{%s}", msg, tt.kind)
			}
		})
	}
}

func TestMenuBrowseAndQuit(t *testing.T) {
	m := newMenuModel("1.0")
	m.cursor = int(menuBrowse)

	_, cmd := m.Update(enterKey())
	if nav, ok := cmd().(navigateMsg); !ok || nav.view != viewList {
		t.Errorf("browse should navigate to list, got %#v", nav)
	}

	m.cursor = int(menuQuit)
	_, cmd = m.Update(enterKey())
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit item should quit")
	}

	_, cmd = m.Update(keyMsg('q'))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestMenuViewShowsSavedCount(t *testing.T) {
	m := newMenuModel("1.0")
	m.savedCount = 3

	view := m.View()
	if !strings.Contains(view, "zpnr") || !strings.Contains(view, "1.0") {
		t.Error("menu should show title and version")
	}
	if !strings.Contains(view, "(3)") {
		t.Error("menu should show saved count")
	}
}

// generate view tests

func TestNumberFields(t *testing.T) {
	tests := []struct {
		name   string
		n      pnr.Number
		labels []string
	}{
		{"personnummer", testPersonnummer(), []string{"number", "kind", "gender", "born", "digits"}},
		{"organisationsnummer", pnr.Number{Kind: pnr.KindOrganisationsnummer, Value: "515234-5673", CorporateType: "5"}, []string{"number", "kind", "type", "digits"}},
		{"vat", pnr.Number{Kind: pnr.KindVAT, Value: "SE123456789012"}, []string{"number", "kind"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := numberFields(tt.n)
			if len(fields) != len(tt.labels) {
				t.Fatalf("got %d fields, want %d", len(fields), len(tt.labels))
			}
			for i, f := range fields {
				if f.label != tt.labels[i] {
					t.Errorf("field %d = %q, want %q", i, f.label, tt.labels[i])
				}
			}
			if fields[0].value != tt.n.Value {
				t.Errorf("first field = %q, want the number", fields[0].value)
			}
		})
	}

	fields := numberFields(testPersonnummer())
	if fields[2].value != "female" || fields[3].value != "1996-10-25" || fields[4].value != "9610250749" {
		t.Errorf("personnummer fields = %+v", fields)
	}
}

func TestGenerateViewShowsNumber(t *testing.T) {
	m := newGenerateModel(testPersonnummer())
	view := m.View()

	for _, want := range []string{"generated personnummer", "961025-0749", "female", "1996-10-25"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestGenerateSaveEmitsMsg(t *testing.T) {
	m := newGenerateModel(testPersonnummer())

	_, cmd := m.Update(keyMsg('s'))
	if cmd == nil {
		t.Fatal("s should emit a command")
	}
	msg, ok := cmd().(saveNumberMsg)
	if !ok || msg.number.Value != "961025-0749" {
		t.Fatalf("got %#v, want saveNumberMsg", msg)
	}

	m, _ = m.Update(numberSavedMsg{})
	if !strings.Contains(m.View(), "saved") {
		t.Error("view should flash saved")
	}

	m, _ = m.Update(keyMsg('s'))
	if m.flash != "already saved" {
		t.Errorf("flash = %q", m.flash)
	}
}

func TestGenerateNewKeepsKind(t *testing.T) {
	m := newGenerateModel(pnr.Number{Kind: pnr.KindVAT, Value: "SE123456789012"})

	_, cmd := m.Update(keyMsg('n'))
	msg, ok := cmd().(generateMsg)
	if !ok || msg.kind != pnr.KindVAT {
		t.Errorf("got %#v, want generateMsg{vat}", msg)
	}
}

func TestGenerateCursorAndBack(t *testing.T) {
	m := newGenerateModel(testPersonnummer())

	m, _ = m.Update(keyMsg('j'))
	m, _ = m.Update(keyMsg('j'))
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}

	_, cmd := m.Update(escKey())
	if nav, ok := cmd().(navigateMsg); !ok || nav.view != viewMenu {
		t.Errorf("esc should go to menu, got %#v", nav)
	}
}

func TestFlashClears(t *testing.T) {
	m := newGenerateModel(testPersonnummer())
	m.flash = "copied!"

	m, _ = m.Update(flashMsg{})
	if m.flash != "" {
		t.Error("flashMsg should clear flash")
	}
}

// list view tests

func TestListEmpty(t *testing.T) {
	m := newListModel(nil)

	if !strings.Contains(m.View(), "no saved numbers") {
		t.Error("empty list should say so")
	}

	// keys other than back/quit are ignored
	m, cmd := m.Update(keyMsg('d'))
	if cmd != nil || m.confirming {
		t.Error("delete on empty list should do nothing")
	}
}

func TestListEnterViewsRecord(t *testing.T) {
	m := newListModel([]record.Record{testRecord()})

	view := m.View()
	if !strings.Contains(view, "961025-0749") || !strings.Contains(view, "test user") {
		t.Errorf("list should show number and label:\n%s", view)
	}

	_, cmd := m.Update(enterKey())
	msg, ok := cmd().(viewRecordMsg)
	if !ok || msg.record.ID != testRecord().ID {
		t.Errorf("got %#v, want viewRecordMsg", msg)
	}
}

func TestListDeleteConfirm(t *testing.T) {
	m := newListModel([]record.Record{testRecord()})

	m, _ = m.Update(keyMsg('d'))
	if !m.confirming {
		t.Fatal("d should ask for confirmation")
	}
	if !strings.Contains(m.View(), "delete 961025-0749? y/n") {
		t.Error("view should show confirmation prompt")
	}

	m, cmd := m.Update(keyMsg('n'))
	if cmd != nil || m.confirming {
		t.Error("n should cancel the delete")
	}

	m, _ = m.Update(keyMsg('d'))
	_, cmd = m.Update(keyMsg('y'))
	msg, ok := cmd().(deleteRecordMsg)
	if !ok || msg.id != testRecord().ID {
		t.Errorf("got %#v, want deleteRecordMsg", msg)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a much longer label", 8); got != "a much …" {
		t.Errorf("truncate = %q", got)
	}
}

// detail view tests

func TestDetailFields(t *testing.T) {
	m := newDetailModel(testRecord())

	var labels []string
	for _, f := range m.fields {
		labels = append(labels, f.label)
	}
	got := strings.Join(labels, ",")
	if got != "number,kind,gender,born,digits,label,id,saved" {
		t.Errorf("fields = %s", got)
	}

	if !strings.Contains(m.View(), "test user") {
		t.Error("detail should show the label")
	}
}

func TestDetailDeleteAndBack(t *testing.T) {
	m := newDetailModel(testRecord())

	m, _ = m.Update(keyMsg('d'))
	m, cmd := m.Update(keyMsg('y'))
	if msg, ok := cmd().(deleteRecordMsg); !ok || msg.id != testRecord().ID {
		t.Errorf("got %#v, want deleteRecordMsg", msg)
	}

	_, cmd = m.Update(escKey())
	if nav, ok := cmd().(navigateMsg); !ok || nav.view != viewList {
		t.Errorf("esc should go to list, got %#v", nav)
	}
}

// root model tests

func TestRootStartsAtPassword(t *testing.T) {
	m := newTestModel(t, t.TempDir(), true)

	if m.active != viewPassword {
		t.Fatalf("active = %d, want password view", m.active)
	}
	if !strings.Contains(m.View(), "create new store") {
		t.Error("first run should prompt to create the store")
	}
}

func TestRootUnlockShowsMenu(t *testing.T) {
	m := unlock(t, newTestModel(t, t.TempDir(), true))

	if m.active != viewMenu {
		t.Fatalf("active = %d, want menu", m.active)
	}
}

func TestRootWrongPassword(t *testing.T) {
	dir := t.TempDir()
	s, err := store.OpenDir(dir, []byte("right"))
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	m := newTestModel(t, dir, false)
	m = processMsg(t, m, passwordSubmitMsg{password: "wrong"})

	if m.active != viewPassword {
		t.Error("wrong password should stay on the password view")
	}
	if m.store != nil {
		t.Error("store should not be open")
	}
	if m.password.errMsg == "" {
		t.Error("wrong password should show an error")
	}
}

func TestRootGenerateSaveBrowseDelete(t *testing.T) {
	m := unlock(t, newTestModel(t, t.TempDir(), true))

	m = processMsg(t, m, generateMsg{kind: pnr.KindPersonnummer})
	if m.active != viewGenerate {
		t.Fatalf("active = %d, want generate", m.active)
	}
	n := m.generate.number
	if n.Kind != pnr.KindPersonnummer || !pnr.Valid(n.Value) {
		t.Fatalf("generated %+v", n)
	}

	m = processMsg(t, m, saveNumberMsg{number: n})
	if !m.generate.saved {
		t.Fatalf("number not saved, flash %q", m.generate.flash)
	}

	m = processMsg(t, m, navigateMsg{view: viewList})
	if m.active != viewList || len(m.list.records) != 1 {
		t.Fatalf("list = %+v", m.list.records)
	}
	if m.list.records[0].Value != n.Value || !m.list.records[0].CreatedAt.Equal(fixedNow) {
		t.Errorf("saved record = %+v", m.list.records[0])
	}

	m = processMsg(t, m, viewRecordMsg{record: m.list.records[0]})
	if m.active != viewDetail {
		t.Fatalf("active = %d, want detail", m.active)
	}

	m = processMsg(t, m, deleteRecordMsg{id: m.detail.record.ID})
	if m.active != viewList || len(m.list.records) != 0 {
		t.Errorf("after delete active = %d records = %d", m.active, len(m.list.records))
	}
	if m.list.flash != "deleted" {
		t.Errorf("flash = %q", m.list.flash)
	}
}

func TestRootMenuShowsSavedCount(t *testing.T) {
	m := unlock(t, newTestModel(t, t.TempDir(), true))

	for _, kind := range []pnr.Kind{pnr.KindOrganisationsnummer, pnr.KindVAT} {
		m = processMsg(t, m, generateMsg{kind: kind})
		m = processMsg(t, m, saveNumberMsg{number: m.generate.number})
	}

	m = processMsg(t, m, navigateMsg{view: viewMenu})
	if m.menu.savedCount != 2 {
		t.Errorf("savedCount = %d, want 2", m.menu.savedCount)
	}
}

func TestRootGenerateInvalidCorporateType(t *testing.T) {
	m := unlock(t, newTestModel(t, t.TempDir(), true))
	m.req.CorporateType = "4"

	m = processMsg(t, m, generateMsg{kind: pnr.KindOrganisationsnummer})
	if m.active != viewMenu {
		t.Fatalf("active = %d, want menu", m.active)
	}
	if !strings.Contains(m.menu.flash, "corporate type") {
		t.Errorf("flash = %q", m.menu.flash)
	}
}

func TestRootViewHasHeaderAndFooter(t *testing.T) {
	m := unlock(t, newTestModel(t, t.TempDir(), true))
	m = processMsg(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = processMsg(t, m, generateMsg{kind: pnr.KindVAT})

	view := m.View()
	if !strings.Contains(view, "copy all") {
		t.Error("view should show the help footer")
	}
	if !strings.Contains(view, m.generate.number.Value) {
		t.Error("view should show the number")
	}
}

func TestAccentIsOwnColour(t *testing.T) {
	if lipgloss.TerminalColor(accent) == lipgloss.TerminalColor(zstyle.ZburnAccent) {
		t.Error("zpnr should not reuse the zburn accent")
	}
}
