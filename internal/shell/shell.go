// Package shell implements the application state behind the task UI.
//
// The Shell owns the input text, the task list and the suggestion panel, and
// exposes one method per user action. It has two states:
//
//	Idle        no suggestion panel
//	Suggesting  panel populated from the suggester
//
// Empty or whitespace-only input is ignored by every action.
package shell

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/aitasks/internal/todo"
)

// State is the interaction state of the shell.
type State int

const (
	StateIdle State = iota
	StateSuggesting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSuggesting:
		return "suggesting"
	default:
		return "unknown"
	}
}

// AssistResult reports what Assist did.
type AssistResult int

const (
	// AssistIgnored means the input was empty.
	AssistIgnored AssistResult = iota
	// AssistSuggested means the suggestion panel is now shown.
	AssistSuggested
	// AssistAdded means no trigger matched and the input was added as a task.
	AssistAdded
)

// Classifier assigns a category to task text.
type Classifier interface {
	Classify(text string) todo.Category
}

// Suggester proposes subtasks for task text.
type Suggester interface {
	Suggest(text string) []string
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger used for transition events.
func WithLogger(logger *log.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDismissOnPick controls whether picking a suggestion closes the panel.
func WithDismissOnPick(enabled bool) Option {
	return func(s *Shell) {
		s.dismissOnPick = enabled
	}
}

// WithList sets the task list the shell adds to.
func WithList(list *todo.List) Option {
	return func(s *Shell) {
		if list != nil {
			s.tasks = list
		}
	}
}

// Shell is the application state machine.
type Shell struct {
	classifier    Classifier
	suggester     Suggester
	tasks         *todo.List
	logger        *log.Logger
	dismissOnPick bool

	state       State
	input       string
	suggestions []string
}

// New creates a shell in the Idle state with an empty list.
func New(classifier Classifier, suggester Suggester, opts ...Option) *Shell {
	s := &Shell{
		classifier:    classifier,
		suggester:     suggester,
		tasks:         todo.NewList(),
		logger:        log.New(io.Discard),
		dismissOnPick: true,
		state:         StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Shell) State() State {
	return s.state
}

// Input returns the current input text.
func (s *Shell) Input() string {
	return s.input
}

// Suggestions returns a copy of the suggestions shown in the panel.
func (s *Shell) Suggestions() []string {
	if s.state != StateSuggesting {
		return nil
	}
	out := make([]string, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// Tasks returns the current tasks in insertion order.
func (s *Shell) Tasks() []todo.Task {
	return s.tasks.Tasks()
}

// Len returns the number of tasks.
func (s *Shell) Len() int {
	return s.tasks.Len()
}

// CountByCategory returns the number of tasks per category name.
func (s *Shell) CountByCategory() map[string]int {
	return s.tasks.CountByCategory()
}

// SetInput replaces the input text. A changed input closes the panel.
func (s *Shell) SetInput(text string) {
	if text == s.input {
		return
	}
	s.input = text
	if s.state == StateSuggesting {
		s.logger.Debug("suggestions dismissed", "reason", "input changed")
		s.hideSuggestions()
	}
}

// Submit adds the input text as a task, clears the input and closes the
// panel. It returns false when the input is empty.
func (s *Shell) Submit() (todo.Task, bool) {
	text := strings.TrimSpace(s.input)
	if text == "" {
		return todo.Task{}, false
	}
	task := s.add(text, "input")
	s.input = ""
	if s.state == StateSuggesting {
		s.logger.Debug("suggestions dismissed", "reason", "task added")
	}
	s.hideSuggestions()
	return task, true
}

// Assist asks the suggester about the input text. With no suggestions the
// text is added directly, as Submit would.
func (s *Shell) Assist() AssistResult {
	text := strings.TrimSpace(s.input)
	if text == "" {
		return AssistIgnored
	}
	suggestions := s.suggester.Suggest(text)
	if len(suggestions) == 0 {
		s.Submit()
		return AssistAdded
	}
	s.suggestions = suggestions
	s.state = StateSuggesting
	s.logger.Debug("suggestions shown", "input", text, "count", len(suggestions))
	return AssistSuggested
}

// Pick adds the i-th suggestion as a task. The input text is left as is.
// It returns false when no panel is shown or i is out of range.
func (s *Shell) Pick(i int) (todo.Task, bool) {
	if s.state != StateSuggesting || i < 0 || i >= len(s.suggestions) {
		return todo.Task{}, false
	}
	text := strings.TrimSpace(s.suggestions[i])
	if text == "" {
		return todo.Task{}, false
	}
	task := s.add(text, "suggestion")
	if s.dismissOnPick {
		s.logger.Debug("suggestions dismissed", "reason", "suggestion picked")
		s.hideSuggestions()
	}
	return task, true
}

// Dismiss closes the suggestion panel.
func (s *Shell) Dismiss() {
	if s.state != StateSuggesting {
		return
	}
	s.logger.Debug("suggestions dismissed", "reason", "dismissed")
	s.hideSuggestions()
}

// Delete removes the task with the given ID.
func (s *Shell) Delete(id string) bool {
	task, ok := s.tasks.Get(id)
	if !ok {
		return false
	}
	s.tasks.Remove(id)
	s.logger.Debug("task removed", "id", task.ID, "text", task.Text)
	return true
}

func (s *Shell) add(text, source string) todo.Task {
	category := s.classifier.Classify(text)
	task := s.tasks.Add(text, category)
	s.logger.Debug("task added",
		"id", task.ID,
		"text", task.Text,
		"category", category.Name,
		"source", source,
	)
	return task
}

func (s *Shell) hideSuggestions() {
	s.suggestions = nil
	s.state = StateIdle
}
