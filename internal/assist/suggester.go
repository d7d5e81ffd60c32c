package assist

import "strings"

// Trigger maps a set of substrings to a fixed list of suggested subtasks.
type Trigger struct {
	Keywords    []string `toml:"keywords" json:"keywords"`
	Suggestions []string `toml:"suggestions" json:"suggestions"`
}

// DefaultTriggers returns the built-in trigger table in match order.
func DefaultTriggers() []Trigger {
	return []Trigger{
		{
			Keywords:    []string{"festa", "party"},
			Suggestions: []string{"Compra bevande", "Invita amici", "Scegli musica", "Ordina pizza"},
		},
		{
			Keywords:    []string{"viaggio", "vacanza"},
			Suggestions: []string{"Prenota volo", "Prenota hotel", "Fai valigia", "Controlla documenti"},
		},
		{
			Keywords:    []string{"progetto"},
			Suggestions: []string{"Definisci obiettivi", "Assegna task", "Meeting iniziale", "Scrivi bozza"},
		},
		{
			Keywords:    []string{"spesa"},
			Suggestions: []string{"Controlla frigo", "Prendi contanti", "Porta buste"},
		},
	}
}

// Suggester maps text to suggested subtasks.
type Suggester struct {
	triggers []Trigger
}

// SuggesterOption configures a Suggester.
type SuggesterOption func(*Suggester)

// WithTriggers replaces the trigger table. Entries without keywords or
// suggestions are dropped; if none remain the built-in table is kept.
func WithTriggers(triggers []Trigger) SuggesterOption {
	return func(s *Suggester) {
		if normalized := normalizeTriggers(triggers); len(normalized) > 0 {
			s.triggers = normalized
		}
	}
}

// NewSuggester creates a suggester with the built-in table.
func NewSuggester(opts ...SuggesterOption) *Suggester {
	s := &Suggester{triggers: DefaultTriggers()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Suggest returns the suggestions of the first trigger found in text.
// The returned slice is a copy; nil means no trigger matched.
func (s *Suggester) Suggest(text string) []string {
	lower := strings.ToLower(text)
	for _, t := range s.triggers {
		if containsAny(lower, t.Keywords) {
			out := make([]string, len(t.Suggestions))
			copy(out, t.Suggestions)
			return out
		}
	}
	return nil
}

// Triggers returns a copy of the effective trigger table.
func (s *Suggester) Triggers() []Trigger {
	out := make([]Trigger, 0, len(s.triggers))
	for _, t := range s.triggers {
		out = append(out, Trigger{
			Keywords:    append([]string(nil), t.Keywords...),
			Suggestions: append([]string(nil), t.Suggestions...),
		})
	}
	return out
}

func normalizeTriggers(triggers []Trigger) []Trigger {
	out := make([]Trigger, 0, len(triggers))
	for _, t := range triggers {
		keywords := normalizeKeywords(t.Keywords)
		suggestions := make([]string, 0, len(t.Suggestions))
		for _, s := range t.Suggestions {
			if s = strings.TrimSpace(s); s != "" {
				suggestions = append(suggestions, s)
			}
		}
		if len(keywords) == 0 || len(suggestions) == 0 {
			continue
		}
		out = append(out, Trigger{Keywords: keywords, Suggestions: suggestions})
	}
	return out
}
