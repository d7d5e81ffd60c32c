package assist

import (
	"strings"

	"github.com/nibzard/aitasks/internal/todo"
)

// rule pairs a category with the substrings that select it.
type rule struct {
	category todo.Category
	keywords []string
}

// DefaultKeywords returns the built-in keyword lists keyed by category key.
func DefaultKeywords() map[string][]string {
	return map[string][]string{
		todo.CategoryLavoro.Key():   {"chiama", "email", "meeting", "riunione", "progetto", "inviare"},
		todo.CategoryShopping.Key(): {"compra", "spesa", "latte", "pane", "ordine", "amazon"},
		todo.CategoryFinanze.Key():  {"paga", "banca", "bolletta", "soldi"},
		todo.CategoryStudio.Key():   {"studia", "leggi", "libro", "esame"},
	}
}

// priority is the order in which categories are checked.
func priority() []todo.Category {
	return []todo.Category{
		todo.CategoryLavoro,
		todo.CategoryShopping,
		todo.CategoryFinanze,
		todo.CategoryStudio,
	}
}

// Classifier maps text to a category.
type Classifier struct {
	rules    []rule
	fallback todo.Category
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithKeywords overrides the keyword lists of the named categories.
// Keys are category names, matched case-insensitively; unknown names and
// the fallback category are ignored. Categories not present keep their
// built-in keywords.
func WithKeywords(keywords map[string][]string) ClassifierOption {
	return func(c *Classifier) {
		for name, words := range keywords {
			cat, ok := todo.LookupCategory(name)
			if !ok || cat == c.fallback {
				continue
			}
			for i := range c.rules {
				if c.rules[i].category == cat {
					c.rules[i].keywords = normalizeKeywords(words)
				}
			}
		}
	}
}

// NewClassifier creates a classifier with the built-in tables.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	defaults := DefaultKeywords()
	c := &Classifier{fallback: todo.CategoryGenerale}
	for _, cat := range priority() {
		c.rules = append(c.rules, rule{
			category: cat,
			keywords: defaults[cat.Key()],
		})
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the first category whose keywords occur in text.
func (c *Classifier) Classify(text string) todo.Category {
	lower := strings.ToLower(text)
	for _, r := range c.rules {
		if containsAny(lower, r.keywords) {
			return r.category
		}
	}
	return c.fallback
}

// Keywords returns the effective keyword lists in priority order.
func (c *Classifier) Keywords() []CategoryKeywords {
	out := make([]CategoryKeywords, 0, len(c.rules))
	for _, r := range c.rules {
		words := make([]string, len(r.keywords))
		copy(words, r.keywords)
		out = append(out, CategoryKeywords{Category: r.category, Keywords: words})
	}
	return out
}

// CategoryKeywords is one row of the classification table.
type CategoryKeywords struct {
	Category todo.Category
	Keywords []string
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// normalizeKeywords lower-cases and trims keywords, dropping empty ones.
func normalizeKeywords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
