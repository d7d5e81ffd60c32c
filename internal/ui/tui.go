// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/nibzard/aitasks/internal/config"
	"github.com/nibzard/aitasks/internal/shell"
	"github.com/nibzard/aitasks/internal/todo"
)

// Screen text.
const (
	titleText        = "AI Tasks"
	subtitleText     = "Powered by Go Logic"
	panelHeaderText  = "✨ L'AI suggerisce di aggiungere:"
	addButtonText    = "[ + ]"
	aiButtonText     = "[ ✨ AI ]"
	inputPrompt      = "> "
	inputPlaceholder = "Cosa devi fare?"
)

// Layout rows. The header is title, subtitle, blank, input row, blank.
const (
	defaultWidth  = 56
	defaultHeight = 40
	inputRow      = 3
	headerRows    = 5
	footerRows    = 2
	minInputWidth = 12
)

type focus int

const (
	focusInput focus = iota
	focusSuggestions
	focusList
)

func (f focus) String() string {
	switch f {
	case focusSuggestions:
		return "suggestions"
	case focusList:
		return "list"
	default:
		return "input"
	}
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for UI events.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMouse enables or disables mouse handling.
func WithMouse(enabled bool) Option {
	return func(m *Model) {
		m.mouse = enabled
	}
}

// WithSize sets the initial size used before the first resize message.
func WithSize(width, height int) Option {
	return func(m *Model) {
		if width > 0 && height > 0 {
			m.width, m.height = width, height
		}
	}
}

// RunTUI runs the interactive program until the user quits or ctx is done.
func RunTUI(ctx context.Context, cfg *config.Config, sh *shell.Shell, logger *log.Logger) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := NewModel(sh, WithLogger(logger), WithMouse(cfg.Mouse))
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return context.Canceled
		}
		return fmt.Errorf("run program: %w", err)
	}
	if m, ok := final.(*Model); ok {
		m.logger.Info("session finished", "tasks", m.shell.Len(), "by_category", m.shell.CountByCategory())
	}
	return nil
}

// Model is the bubbletea model for the task list.
type Model struct {
	shell  *shell.Shell
	logger *log.Logger
	keys   keyMap
	help   help.Model
	input  textinput.Model
	list   *Container

	focus  focus
	cursor int
	width  int
	height int
	mouse  bool
}

// NewModel creates the UI model around sh.
func NewModel(sh *shell.Shell, opts ...Option) *Model {
	ti := textinput.New()
	ti.Prompt = inputPrompt
	ti.Placeholder = inputPlaceholder
	ti.SetValue(sh.Input())
	ti.Focus()

	m := &Model{
		shell:  sh,
		logger: log.New(io.Discard),
		keys:   defaultKeyMap(),
		help:   help.New(),
		input:  ti,
		width:  defaultWidth,
		height: defaultHeight,
		mouse:  true,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.help.Width = m.width
	m.list = NewContainer(m.width, 1)
	m.list.Reconcile(sh.Tasks())
	m.relayout()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.logger.Info("session started", "width", m.width, "height", m.height, "mouse", m.mouse)
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("window resized", "width", msg.Width, "height", msg.Height)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	default:
		if m.focus == focusInput {
			m.input, cmd = m.input.Update(msg)
		}
	}
	m.syncFocus()
	m.relayout()
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	l := m.layout()
	var b strings.Builder
	writeHeader(&b)
	m.writeInputRow(&b, l)
	m.writeSuggestions(&b)
	b.WriteString(m.list.View())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(focusedKeys{keys: m.keys, focus: m.focus}))
	return b.String()
}

// Shell returns the application shell driven by the model.
func (m *Model) Shell() *shell.Shell {
	return m.shell
}

// Container returns the task list container.
func (m *Model) Container() *Container {
	return m.list
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.NextFocus):
		m.cycleFocus(1)
		return nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.cycleFocus(-1)
		return nil
	}

	switch m.focus {
	case focusSuggestions:
		return m.handleSuggestionKey(msg)
	case focusList:
		return m.handleListKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Assist):
		m.assist()
		return nil
	case key.Matches(msg, m.keys.Add):
		m.submit()
		return nil
	case key.Matches(msg, m.keys.Dismiss):
		m.shell.Dismiss()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.shell.SetInput(m.input.Value())
	return cmd
}

func (m *Model) handleSuggestionKey(msg tea.KeyMsg) tea.Cmd {
	n := len(m.shell.Suggestions())
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(n-1, m.cursor+1)
	case key.Matches(msg, m.keys.Pick):
		m.pick(m.cursor)
	case key.Matches(msg, m.keys.PickN):
		m.pick(int(msg.Runes[0] - '1'))
	case key.Matches(msg, m.keys.Dismiss):
		m.shell.Dismiss()
	case msg.Type == tea.KeyRunes, msg.Type == tea.KeySpace, msg.Type == tea.KeyBackspace:
		// Typing goes back to the input field.
		m.setFocus(focusInput)
		return m.handleInputKey(msg)
	}
	return nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.list.MoveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.list.MoveSelection(1)
	case key.Matches(msg, m.keys.Delete):
		if id := m.list.SelectedID(); id != "" {
			m.deleteTask(id)
		}
	case key.Matches(msg, m.keys.PageUp):
		m.list.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.list.PageDown()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Dismiss):
		m.setFocus(focusInput)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.mouse {
		return nil
	}
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		return m.list.Update(msg)
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	l := m.layout()
	x, y := msg.X, msg.Y
	switch {
	case y == inputRow:
		switch {
		case x >= l.addStart && x < l.addEnd:
			m.submit()
		case x >= l.aiStart && x < l.aiEnd:
			m.assist()
		case x < l.inputWidth:
			m.setFocus(focusInput)
		}
	case l.suggestionsTop >= 0 && y >= l.suggestionsTop && y < l.suggestionsTop+l.suggestions:
		m.pick(y - l.suggestionsTop)
	case y >= l.listTop && y < l.listTop+l.listHeight:
		id, onDelete, ok := m.list.CardAt(x, y-l.listTop)
		if !ok {
			return nil
		}
		if onDelete {
			m.deleteTask(id)
			return nil
		}
		m.setFocus(focusList)
		m.list.SelectID(id)
	}
	return nil
}

func (m *Model) submit() {
	task, ok := m.shell.Submit()
	if !ok {
		return
	}
	m.input.SetValue("")
	m.afterAdd(task)
}

func (m *Model) assist() {
	switch m.shell.Assist() {
	case shell.AssistSuggested:
		m.cursor = 0
		m.setFocus(focusSuggestions)
	case shell.AssistAdded:
		m.input.SetValue("")
		tasks := m.shell.Tasks()
		m.afterAdd(tasks[len(tasks)-1])
	}
}

func (m *Model) pick(i int) {
	if task, ok := m.shell.Pick(i); ok {
		m.afterAdd(task)
	}
}

func (m *Model) afterAdd(task todo.Task) {
	added, _ := m.list.Reconcile(m.shell.Tasks())
	m.list.ScrollTo(m.list.Len() - 1)
	m.logger.Debug("card added", "id", task.ID, "cards", m.list.Len(), "new", added)
}

func (m *Model) deleteTask(id string) {
	if !m.shell.Delete(id) {
		return
	}
	_, removed := m.list.Reconcile(m.shell.Tasks())
	m.logger.Debug("card removed", "id", id, "cards", m.list.Len(), "removed", removed)
}

// available returns the sections that can take focus, in tab order.
func (m *Model) available() []focus {
	out := []focus{focusInput}
	if m.shell.State() == shell.StateSuggesting {
		out = append(out, focusSuggestions)
	}
	if m.list.Len() > 0 {
		out = append(out, focusList)
	}
	return out
}

func (m *Model) cycleFocus(dir int) {
	order := m.available()
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	m.setFocus(order[(idx+dir+len(order))%len(order)])
}

func (m *Model) setFocus(f focus) {
	if f == m.focus {
		return
	}
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	if f == focusList {
		if m.list.Selected() < 0 {
			m.list.Select(0)
		}
	} else if m.list.Selected() >= 0 {
		m.list.Select(-1)
	}
}

// syncFocus moves focus back to the input when its section disappears.
func (m *Model) syncFocus() {
	switch m.focus {
	case focusSuggestions:
		n := len(m.shell.Suggestions())
		if n == 0 {
			m.setFocus(focusInput)
			return
		}
		m.cursor = max(0, min(n-1, m.cursor))
	case focusList:
		if m.list.Len() == 0 {
			m.setFocus(focusInput)
		} else if m.list.Selected() < 0 {
			m.list.Select(0)
		}
	}
}

type layout struct {
	inputWidth     int
	addStart       int
	addEnd         int
	aiStart        int
	aiEnd          int
	suggestionsTop int
	suggestions    int
	listTop        int
	listHeight     int
}

// layout computes the screen geometry shared by View and mouse handling.
func (m *Model) layout() layout {
	addWidth := ansi.StringWidth(addButtonText)
	aiWidth := ansi.StringWidth(aiButtonText)

	l := layout{suggestionsTop: -1}
	l.inputWidth = max(minInputWidth, m.width-addWidth-aiWidth-2)
	l.addStart = l.inputWidth + 1
	l.addEnd = l.addStart + addWidth
	l.aiStart = l.addEnd + 1
	l.aiEnd = l.aiStart + aiWidth

	row := headerRows
	if n := len(m.shell.Suggestions()); n > 0 {
		l.suggestionsTop = row + 1
		l.suggestions = n
		row += n + 2
	}
	l.listTop = row
	l.listHeight = max(1, m.height-row-footerRows)
	return l
}

func (m *Model) relayout() {
	l := m.layout()
	m.input.Width = max(1, l.inputWidth-ansi.StringWidth(inputPrompt)-1)
	if m.list.Width() != m.width || m.list.Height() != l.listHeight {
		m.list.Resize(m.width, l.listHeight)
	}
}

func writeHeader(b *strings.Builder) {
	b.WriteString(titleStyle.Render(titleText) + "\n")
	b.WriteString(subtitleStyle.Render(subtitleText) + "\n\n")
}

func (m *Model) writeInputRow(b *strings.Builder, l layout) {
	field := m.input.View()
	if w := ansi.StringWidth(field); w > l.inputWidth {
		field = ansi.Truncate(field, l.inputWidth, "")
	} else {
		field += pad(l.inputWidth - w)
	}
	b.WriteString(field + " " + addButtonStyle.Render(addButtonText) + " " + aiButtonStyle.Render(aiButtonText) + "\n\n")
}

func (m *Model) writeSuggestions(b *strings.Builder) {
	suggestions := m.shell.Suggestions()
	if len(suggestions) == 0 {
		return
	}
	b.WriteString(panelHeaderStyle.Render(panelHeaderText) + "\n")
	for i, s := range suggestions {
		style := suggestionStyle
		if m.focus == focusSuggestions && i == m.cursor {
			style = suggestionActiveStyle
		}
		line := "  " + style.Render("+ "+s)
		if i < 9 {
			line += hintStyle.Render(fmt.Sprintf("  %d", i+1))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
