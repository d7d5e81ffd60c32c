// Package assist implements the keyword-based task helpers.
//
// The Classifier assigns a todo.Category by scanning lower-cased text for
// substring matches, checking categories in a fixed priority order:
//
//	Lavoro -> Shopping -> Finanze -> Studio -> Generale (fallback)
//
// The Suggester returns a canned list of subtasks for the first trigger
// substring found in the text, or nil.
//
// Both are pure, total functions over static tables. The tables can be
// replaced through options so the keyword language is configuration, but the
// category set and its priority order are fixed.
package assist
