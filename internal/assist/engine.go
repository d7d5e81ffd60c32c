package assist

import "github.com/nibzard/aitasks/internal/todo"

// Engine bundles the classifier and the suggester.
type Engine struct {
	*Classifier
	*Suggester
}

// Options holds the configurable tables for an Engine.
type Options struct {
	// Keywords overrides per-category keyword lists; nil keeps the defaults.
	Keywords map[string][]string
	// Triggers replaces the trigger table; empty keeps the defaults.
	Triggers []Trigger
}

// NewEngine creates an Engine from the given tables.
func NewEngine(opts Options) *Engine {
	return &Engine{
		Classifier: NewClassifier(WithKeywords(opts.Keywords)),
		Suggester:  NewSuggester(WithTriggers(opts.Triggers)),
	}
}

// Analyze classifies text and returns its suggestions in one call.
func (e *Engine) Analyze(text string) (todo.Category, []string) {
	return e.Classify(text), e.Suggest(text)
}
