package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/nibzard/aitasks/internal/todo"
)

func testTask(id, text string, cat todo.Category) todo.Task {
	return todo.Task{ID: id, Text: text, Category: cat}
}

func viewLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestChipWidth(t *testing.T) {
	tests := []struct {
		label string
		units int
		cells int
	}{
		{"", 20, 3},
		{"STUDIO", 68, 9},
		{"LAVORO", 68, 9},
		{"SHOPPING", 84, 11},
		{"GENERALE", 84, 11},
		{"FINANZE", 76, 10},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := ChipWidth(tt.label); got != tt.units {
				t.Errorf("ChipWidth(%q) = %d, want %d", tt.label, got, tt.units)
			}
			if got := UnitsToCells(ChipWidth(tt.label)); got != tt.cells {
				t.Errorf("cells = %d, want %d", got, tt.cells)
			}
		})
	}
}

func TestUnitsToCells(t *testing.T) {
	tests := []struct{ units, cells int }{
		{0, 0}, {-4, 0}, {1, 1}, {8, 1}, {9, 2}, {50, 7}, {64, 8},
	}
	for _, tt := range tests {
		if got := UnitsToCells(tt.units); got != tt.cells {
			t.Errorf("UnitsToCells(%d) = %d, want %d", tt.units, got, tt.cells)
		}
	}
	if DeleteZoneCells() != 7 {
		t.Errorf("DeleteZoneCells() = %d, want 7", DeleteZoneCells())
	}
}

func TestCardView(t *testing.T) {
	card := NewCard(testTask("T1", "Chiama il cliente", todo.CategoryLavoro))
	card.SetWidth(40)

	lines := viewLines(card.View())
	if len(lines) != CardHeight {
		t.Fatalf("card has %d rows, want %d:\n%s", len(lines), CardHeight, strings.Join(lines, "\n"))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 40 {
			t.Errorf("row %d width = %d, want 40: %q", i, w, line)
		}
	}
	if !strings.Contains(lines[1], "Chiama il cliente") {
		t.Errorf("text row = %q, want task text", lines[1])
	}
	if !strings.Contains(lines[1], deleteGlyph) {
		t.Errorf("text row = %q, want delete glyph", lines[1])
	}
	if !strings.Contains(lines[2], "LAVORO") {
		t.Errorf("chip row = %q, want upper-case category", lines[2])
	}
	if !strings.HasPrefix(lines[0], "╭") || !strings.HasPrefix(lines[3], "╰") {
		t.Errorf("card is not a rounded box:\n%s", strings.Join(lines, "\n"))
	}
}

func TestCardTruncatesLongText(t *testing.T) {
	long := strings.Repeat("parola ", 20)
	card := NewCard(testTask("T1", long, todo.CategoryGenerale))
	card.SetWidth(30)

	lines := viewLines(card.View())
	if !strings.Contains(lines[1], "…") {
		t.Errorf("text row = %q, want ellipsis", lines[1])
	}
	if w := ansi.StringWidth(lines[1]); w != 30 {
		t.Errorf("text row width = %d, want 30", w)
	}
	if !strings.Contains(lines[1], deleteGlyph) {
		t.Error("delete glyph pushed out by long text")
	}
}

func TestCardMinimumWidth(t *testing.T) {
	card := NewCard(testTask("T1", "x", todo.CategoryShopping))
	card.SetWidth(3)
	if card.Width() != minCardWidth {
		t.Errorf("Width() = %d, want %d", card.Width(), minCardWidth)
	}
	for _, line := range viewLines(card.View()) {
		if w := ansi.StringWidth(line); w != minCardWidth {
			t.Errorf("row width = %d, want %d", w, minCardWidth)
		}
	}
}

func TestCardRenderCache(t *testing.T) {
	card := NewCard(testTask("T1", "Paga la bolletta", todo.CategoryFinanze))
	card.SetWidth(40)

	first := card.View()
	if card.View() != first || card.renders != 1 {
		t.Fatalf("renders = %d after two views at the same width, want 1", card.renders)
	}

	card.SetWidth(40)
	card.View()
	if card.renders != 1 {
		t.Errorf("renders = %d after same-width resize, want 1", card.renders)
	}

	card.SetWidth(50)
	card.View()
	if card.renders != 2 {
		t.Errorf("renders = %d after width change, want 2", card.renders)
	}
	for _, line := range viewLines(card.View()) {
		if w := ansi.StringWidth(line); w != 50 {
			t.Errorf("row width = %d after resize, want 50", w)
		}
	}

	card.SetSelected(true)
	card.View()
	if card.renders != 3 {
		t.Errorf("renders = %d after selection, want 3", card.renders)
	}
}

func TestCardInDeleteZone(t *testing.T) {
	card := NewCard(testTask("T1", "x", todo.CategoryGenerale))
	card.SetWidth(40)

	tests := []struct {
		x    int
		want bool
	}{
		{0, false},
		{32, false},
		{33, true},
		{39, true},
		{40, false},
	}
	for _, tt := range tests {
		if got := card.InDeleteZone(tt.x); got != tt.want {
			t.Errorf("InDeleteZone(%d) = %v, want %v", tt.x, got, tt.want)
		}
	}
}
