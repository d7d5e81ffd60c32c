package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/nibzard/aitasks/internal/assist"
	"github.com/nibzard/aitasks/internal/shell"
	"github.com/nibzard/aitasks/internal/todo"
)

func newTestModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	engine := assist.NewEngine(assist.Options{})
	sh := shell.New(engine.Classifier, engine.Suggester)
	return NewModel(sh, append([]Option{WithSize(defaultWidth, defaultHeight)}, opts...)...)
}

func send(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func typeText(m *Model, text string) {
	for _, r := range text {
		if r == ' ' {
			send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func pressKey(m *Model, t tea.KeyType) tea.Cmd {
	return send(m, tea.KeyMsg{Type: t})
}

func pressRune(m *Model, r rune) tea.Cmd {
	return send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func click(m *Model, x, y int) {
	send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func taskTexts(m *Model) []string {
	var out []string
	for _, task := range m.Shell().Tasks() {
		out = append(out, task.Text)
	}
	return out
}

func TestEnterAddsClassifiedTask(t *testing.T) {
	m := newTestModel(t)

	typeText(m, "Chiama il cliente per il progetto")
	if m.Shell().Input() != "Chiama il cliente per il progetto" {
		t.Fatalf("shell input = %q", m.Shell().Input())
	}
	pressKey(m, tea.KeyEnter)

	tasks := m.Shell().Tasks()
	if len(tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(tasks))
	}
	if tasks[0].Category != todo.CategoryLavoro {
		t.Errorf("category = %q, want Lavoro", tasks[0].Category.Name)
	}
	if m.input.Value() != "" || m.Shell().Input() != "" {
		t.Errorf("input not cleared: %q / %q", m.input.Value(), m.Shell().Input())
	}
	if m.Container().Len() != 1 {
		t.Errorf("cards = %d, want 1", m.Container().Len())
	}
	if m.Shell().State() != shell.StateIdle {
		t.Errorf("state = %v, want Idle", m.Shell().State())
	}
}

func TestEnterWithBlankInputIsNoop(t *testing.T) {
	m := newTestModel(t)
	pressKey(m, tea.KeyEnter)
	typeText(m, "   ")
	pressKey(m, tea.KeyEnter)
	pressKey(m, tea.KeyCtrlS)

	if m.Shell().Len() != 0 || m.Container().Len() != 0 {
		t.Errorf("tasks/cards = %d/%d, want 0/0", m.Shell().Len(), m.Container().Len())
	}
	if m.Shell().State() != shell.StateIdle {
		t.Errorf("state = %v, want Idle", m.Shell().State())
	}
}

func TestAssistShowsPanelAndPicks(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "Organizza festa")
	pressKey(m, tea.KeyCtrlS)

	if m.Shell().State() != shell.StateSuggesting {
		t.Fatalf("state = %v, want Suggesting", m.Shell().State())
	}
	if m.focus != focusSuggestions {
		t.Errorf("focus = %v, want suggestions", m.focus)
	}
	view := ansi.Strip(m.View())
	for _, want := range []string{panelHeaderText, "+ Compra bevande", "+ Ordina pizza"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	pressRune(m, '2')
	if got := taskTexts(m); len(got) != 1 || got[0] != "Invita amici" {
		t.Fatalf("tasks = %v, want [Invita amici]", got)
	}
	if m.Shell().State() != shell.StateIdle {
		t.Errorf("state = %v after pick, want Idle", m.Shell().State())
	}
	if m.focus != focusInput {
		t.Errorf("focus = %v after pick, want input", m.focus)
	}
	if m.input.Value() != "Organizza festa" {
		t.Errorf("input = %q, want it left untouched", m.input.Value())
	}
	if strings.Contains(ansi.Strip(m.View()), panelHeaderText) {
		t.Error("panel still shown after pick")
	}
}

func TestAssistKeepOpenOnPick(t *testing.T) {
	engine := assist.NewEngine(assist.Options{})
	sh := shell.New(engine.Classifier, engine.Suggester, shell.WithDismissOnPick(false))
	m := NewModel(sh)

	typeText(m, "progetto nuovo")
	pressKey(m, tea.KeyCtrlS)
	pressKey(m, tea.KeyDown)
	pressKey(m, tea.KeyEnter)
	pressKey(m, tea.KeyDown)
	pressKey(m, tea.KeyEnter)

	got := taskTexts(m)
	if len(got) != 2 || got[0] != "Assegna task" || got[1] != "Meeting iniziale" {
		t.Fatalf("tasks = %v, want [Assegna task Meeting iniziale]", got)
	}
	if m.Shell().State() != shell.StateSuggesting {
		t.Errorf("state = %v, want panel kept open", m.Shell().State())
	}
}

func TestAssistWithoutTriggerAddsTask(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "buy milk")
	send(m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})

	tasks := m.Shell().Tasks()
	if len(tasks) != 1 || tasks[0].Text != "buy milk" {
		t.Fatalf("tasks = %v, want [buy milk]", taskTexts(m))
	}
	if tasks[0].Category != todo.CategoryGenerale {
		t.Errorf("category = %q, want Generale", tasks[0].Category.Name)
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q, want cleared", m.input.Value())
	}
	if m.Shell().State() != shell.StateIdle {
		t.Errorf("state = %v, want Idle", m.Shell().State())
	}
}

func TestTypingDismissesPanel(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "vacanza")
	pressKey(m, tea.KeyCtrlS)
	if m.Shell().State() != shell.StateSuggesting {
		t.Fatal("panel not shown")
	}

	pressRune(m, '!')
	if m.Shell().State() != shell.StateIdle {
		t.Errorf("state = %v after typing, want Idle", m.Shell().State())
	}
	if m.input.Value() != "vacanza!" {
		t.Errorf("input = %q, want typed rune appended", m.input.Value())
	}
	if m.focus != focusInput {
		t.Errorf("focus = %v, want input", m.focus)
	}
}

func TestEscDismissesPanel(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "spesa")
	pressKey(m, tea.KeyCtrlS)
	pressKey(m, tea.KeyEsc)

	if m.Shell().State() != shell.StateIdle {
		t.Errorf("state = %v, want Idle", m.Shell().State())
	}
	if m.Shell().Len() != 0 {
		t.Errorf("tasks = %d, want 0", m.Shell().Len())
	}
	if m.input.Value() != "spesa" {
		t.Errorf("input = %q, want kept", m.input.Value())
	}
}

func TestLayoutMatchesView(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "festa")
	pressKey(m, tea.KeyCtrlS)

	l := m.layout()
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if len(lines) != defaultHeight {
		t.Errorf("view has %d rows, want %d", len(lines), defaultHeight)
	}
	if !strings.Contains(lines[0], titleText) {
		t.Errorf("row 0 = %q, want title", lines[0])
	}

	row := lines[inputRow]
	addIdx := strings.Index(row, addButtonText)
	aiIdx := strings.Index(row, aiButtonText)
	if addIdx < 0 || aiIdx < 0 {
		t.Fatalf("input row = %q, want both buttons", row)
	}
	if got := ansi.StringWidth(row[:addIdx]); got != l.addStart {
		t.Errorf("add button at column %d, layout says %d", got, l.addStart)
	}
	if got := ansi.StringWidth(row[:aiIdx]); got != l.aiStart {
		t.Errorf("AI button at column %d, layout says %d", got, l.aiStart)
	}

	if !strings.Contains(lines[l.suggestionsTop-1], panelHeaderText) {
		t.Errorf("row %d = %q, want panel header", l.suggestionsTop-1, lines[l.suggestionsTop-1])
	}
	if !strings.Contains(lines[l.suggestionsTop], "Compra bevande") {
		t.Errorf("row %d = %q, want first suggestion", l.suggestionsTop, lines[l.suggestionsTop])
	}
	if l.listTop != l.suggestionsTop+l.suggestions+1 {
		t.Errorf("listTop = %d, want after panel and blank row", l.listTop)
	}
	if !strings.Contains(lines[l.listTop], emptyListText) {
		t.Errorf("row %d = %q, want list placeholder", l.listTop, lines[l.listTop])
	}
}

func TestMouseAddAndDelete(t *testing.T) {
	m := newTestModel(t)
	l := m.layout()

	typeText(m, "Compra il pane")
	click(m, l.addStart, inputRow)
	typeText(m, "Studia per l'esame")
	click(m, l.addEnd-1, inputRow)

	tasks := m.Shell().Tasks()
	if len(tasks) != 2 {
		t.Fatalf("tasks = %v, want 2", taskTexts(m))
	}
	if tasks[0].Category != todo.CategoryShopping || tasks[1].Category != todo.CategoryStudio {
		t.Errorf("categories = %s, %s", tasks[0].Category.Name, tasks[1].Category.Name)
	}

	l = m.layout()
	// A click on the card body selects it.
	click(m, 2, l.listTop+1)
	if m.focus != focusList || m.Container().SelectedID() != tasks[0].ID {
		t.Errorf("focus/selection = %v/%q, want list/%s", m.focus, m.Container().SelectedID(), tasks[0].ID)
	}
	if m.Shell().Len() != 2 {
		t.Fatal("body click removed a task")
	}

	// A click in the delete zone of the first card removes it.
	click(m, defaultWidth-1, l.listTop+1)
	if got := taskTexts(m); len(got) != 1 || got[0] != "Studia per l'esame" {
		t.Fatalf("tasks = %v, want [Studia per l'esame]", got)
	}
	if m.Container().Len() != 1 || m.Container().Extent() != CardHeight {
		t.Errorf("cards/extent = %d/%d, want 1/%d", m.Container().Len(), m.Container().Extent(), CardHeight)
	}

	// Clicking the gap row does nothing.
	click(m, defaultWidth-1, l.listTop+CardHeight)
	if m.Shell().Len() != 1 {
		t.Error("click on gap row removed a task")
	}
}

func TestMouseAssistAndPick(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "viaggio a Roma")
	l := m.layout()
	click(m, l.aiStart+1, inputRow)

	if m.Shell().State() != shell.StateSuggesting {
		t.Fatalf("state = %v, want Suggesting", m.Shell().State())
	}
	l = m.layout()
	click(m, 4, l.suggestionsTop+1)

	if got := taskTexts(m); len(got) != 1 || got[0] != "Prenota hotel" {
		t.Fatalf("tasks = %v, want [Prenota hotel]", got)
	}
}

func TestMouseDisabled(t *testing.T) {
	m := newTestModel(t, WithMouse(false))
	typeText(m, "Compra il pane")
	l := m.layout()
	click(m, l.addStart, inputRow)

	if m.Shell().Len() != 0 {
		t.Errorf("tasks = %d, want 0 with mouse disabled", m.Shell().Len())
	}
}

func TestListFocusDelete(t *testing.T) {
	m := newTestModel(t)
	for _, text := range []string{"uno", "due", "tre"} {
		typeText(m, text)
		pressKey(m, tea.KeyEnter)
	}

	pressKey(m, tea.KeyTab)
	if m.focus != focusList {
		t.Fatalf("focus = %v, want list", m.focus)
	}
	if m.Container().Selected() != 0 {
		t.Errorf("Selected() = %d, want 0", m.Container().Selected())
	}

	pressKey(m, tea.KeyDown)
	pressRune(m, 'd')
	if got := taskTexts(m); strings.Join(got, ",") != "uno,tre" {
		t.Errorf("tasks = %v, want [uno tre]", got)
	}

	pressKey(m, tea.KeyDelete)
	pressRune(m, 'x')
	if m.Shell().Len() != 0 {
		t.Errorf("tasks = %v, want none", taskTexts(m))
	}
	if m.focus != focusInput {
		t.Errorf("focus = %v after emptying list, want input", m.focus)
	}
}

func TestTabCycle(t *testing.T) {
	m := newTestModel(t)
	pressKey(m, tea.KeyTab)
	if m.focus != focusInput {
		t.Errorf("focus = %v with nothing to focus, want input", m.focus)
	}

	typeText(m, "uno")
	pressKey(m, tea.KeyEnter)
	typeText(m, "festa")
	pressKey(m, tea.KeyCtrlS)
	if m.focus != focusSuggestions {
		t.Fatalf("focus = %v, want suggestions", m.focus)
	}

	pressKey(m, tea.KeyTab)
	if m.focus != focusList {
		t.Errorf("focus = %v, want list", m.focus)
	}
	pressKey(m, tea.KeyTab)
	if m.focus != focusInput {
		t.Errorf("focus = %v, want input", m.focus)
	}
	pressKey(m, tea.KeyShiftTab)
	if m.focus != focusList {
		t.Errorf("focus = %v after shift+tab, want list", m.focus)
	}
	pressKey(m, tea.KeyEsc)
	if m.focus != focusInput || m.Container().Selected() != -1 {
		t.Errorf("focus/selection = %v/%d after esc, want input/-1", m.focus, m.Container().Selected())
	}
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "uno")
	pressKey(m, tea.KeyEnter)

	send(m, tea.WindowSizeMsg{Width: 80, Height: 30})

	if m.Container().Width() != 80 {
		t.Errorf("container width = %d, want 80", m.Container().Width())
	}
	if want := 30 - headerRows - footerRows; m.Container().Height() != want {
		t.Errorf("container height = %d, want %d", m.Container().Height(), want)
	}
	for _, card := range m.Container().Cards() {
		if card.Width() != 80 {
			t.Errorf("card width = %d, want 80", card.Width())
		}
	}
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if len(lines) != 30 {
		t.Errorf("view has %d rows, want 30", len(lines))
	}
}

func TestCtrlCQuits(t *testing.T) {
	for _, f := range []focus{focusInput, focusList} {
		t.Run(f.String(), func(t *testing.T) {
			m := newTestModel(t)
			typeText(m, "uno")
			pressKey(m, tea.KeyEnter)
			m.setFocus(f)

			cmd := pressKey(m, tea.KeyCtrlC)
			if cmd == nil {
				t.Fatal("ctrl+c returned no command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("ctrl+c command = %T, want tea.QuitMsg", cmd())
			}
		})
	}
}

func TestEndToEnd(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "Chiama il cliente per il progetto")
	pressKey(m, tea.KeyCtrlS)

	// "progetto" triggers suggestions; dismiss and add the text itself.
	if m.Shell().State() != shell.StateSuggesting {
		t.Fatalf("state = %v, want Suggesting", m.Shell().State())
	}
	pressKey(m, tea.KeyEsc)
	pressKey(m, tea.KeyEnter)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Chiama il cliente per il progetto") || !strings.Contains(view, "LAVORO") {
		t.Errorf("view does not show the Lavoro card:\n%s", view)
	}
}
