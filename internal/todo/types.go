// Package todo holds the in-memory task model.
package todo

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is a task label paired with its display color.
type Category struct {
	Name  string `json:"name" toml:"name"`
	Color string `json:"color" toml:"color"`
}

// Fixed categories.
var (
	CategoryGenerale = Category{Name: "Generale", Color: "#9aa0a6"}
	CategoryLavoro   = Category{Name: "Lavoro", Color: "#e37400"}
	CategoryShopping = Category{Name: "Shopping", Color: "#1e8e3e"}
	CategoryFinanze  = Category{Name: "Finanze", Color: "#d93025"}
	CategoryStudio   = Category{Name: "Studio", Color: "#1a73e8"}
)

// Categories returns every category, fallback first, then in
// classification priority order.
func Categories() []Category {
	return []Category{
		CategoryGenerale,
		CategoryLavoro,
		CategoryShopping,
		CategoryFinanze,
		CategoryStudio,
	}
}

// LookupCategory resolves a category by name, ignoring case.
func LookupCategory(name string) (Category, bool) {
	for _, c := range Categories() {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return Category{}, false
}

// Key returns the lower-case name used in configuration tables.
func (c Category) Key() string {
	return strings.ToLower(c.Name)
}

// IsZero returns true if the category is unset.
func (c Category) IsZero() bool {
	return c.Name == ""
}

// Task is a single entry in the list.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == ""
}

// List is an ordered collection of tasks.
// The zero value is ready to use.
type List struct {
	tasks []Task

	// newID and now are replaceable in tests.
	newID func() string
	now   func() time.Time
}

// NewList creates an empty list.
func NewList() *List {
	return &List{}
}

// Add appends a new task and returns it.
func (l *List) Add(text string, category Category) Task {
	task := Task{
		ID:        l.id(),
		Text:      text,
		Category:  category,
		CreatedAt: l.timestamp(),
	}
	l.tasks = append(l.tasks, task)
	return task
}

// Remove deletes the task with the given ID.
// It returns false if no such task exists.
func (l *List) Remove(id string) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return true
}

// Get returns a task by ID.
func (l *List) Get(id string) (Task, bool) {
	i := l.Index(id)
	if i < 0 {
		return Task{}, false
	}
	return l.tasks[i], true
}

// Index returns the position of a task, or -1 if not found.
func (l *List) Index(id string) int {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Tasks returns a copy of the tasks in insertion order.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// CountByCategory returns how many tasks carry each category name.
func (l *List) CountByCategory() map[string]int {
	counts := make(map[string]int, len(Categories()))
	for _, c := range Categories() {
		counts[c.Name] = 0
	}
	for _, t := range l.tasks {
		counts[t.Category.Name]++
	}
	return counts
}

func (l *List) id() string {
	if l.newID != nil {
		return l.newID()
	}
	return uuid.NewString()
}

func (l *List) timestamp() time.Time {
	if l.now != nil {
		return l.now()
	}
	return time.Now().UTC()
}
