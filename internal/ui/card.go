package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/nibzard/aitasks/internal/todo"
)

// Geometry. Widths in "units" come from the original pixel layout and are
// converted to terminal cells at UnitsPerCell.
const (
	UnitsPerCell    = 8
	CardHeight      = 4
	CardGap         = 1
	CardStride      = CardHeight + CardGap
	DeleteZoneUnits = 50

	minCardWidth = 16
	deleteGlyph  = "✕"
)

// ChipWidth returns the width of a category chip in units. It counts
// characters, not rendered glyph widths.
func ChipWidth(label string) int {
	return utf8.RuneCountInString(label)*8 + 20
}

// UnitsToCells converts a width in units to cells, rounding up.
func UnitsToCells(units int) int {
	if units <= 0 {
		return 0
	}
	return (units + UnitsPerCell - 1) / UnitsPerCell
}

// DeleteZoneCells is the width of the delete hit area in cells.
func DeleteZoneCells() int {
	return UnitsToCells(DeleteZoneUnits)
}

// Card renders a single task. Its rendering is cached until the width or
// selection changes.
type Card struct {
	task     todo.Task
	width    int
	selected bool

	cache   string
	valid   bool
	renders int
}

// NewCard creates a card for task.
func NewCard(task todo.Task) *Card {
	return &Card{task: task, width: minCardWidth}
}

// Task returns the task shown by the card.
func (c *Card) Task() todo.Task {
	return c.task
}

// ID returns the task ID.
func (c *Card) ID() string {
	return c.task.ID
}

// Width returns the card width in cells.
func (c *Card) Width() int {
	return c.width
}

// SetWidth sets the available width. A change invalidates the cached rendering.
func (c *Card) SetWidth(width int) {
	if width < minCardWidth {
		width = minCardWidth
	}
	if width != c.width {
		c.width = width
		c.valid = false
	}
}

// SetSelected marks the card as the list selection.
func (c *Card) SetSelected(selected bool) {
	if selected != c.selected {
		c.selected = selected
		c.valid = false
	}
}

// InDeleteZone reports whether column x (relative to the card) hits the
// delete control.
func (c *Card) InDeleteZone(x int) bool {
	return x >= c.width-DeleteZoneCells() && x < c.width
}

// View returns the card rendering, exactly CardHeight rows of Width cells.
func (c *Card) View() string {
	if c.valid {
		return c.cache
	}
	c.cache = c.render()
	c.valid = true
	c.renders++
	return c.cache
}

func (c *Card) render() string {
	inner := c.width - 2

	// " text… ✕ "
	textWidth := inner - 4
	text := ansi.Truncate(c.task.Text, textWidth, "…")
	textRow := " " + cardTextStyle.Render(text) + pad(textWidth-ansi.StringWidth(text)) +
		" " + cardDeleteStyle.Render(deleteGlyph) + " "

	label := strings.ToUpper(c.task.Category.Name)
	chipCells := UnitsToCells(ChipWidth(label))
	if chipCells > inner-1 {
		chipCells = inner - 1
	}
	chip := centerIn(ansi.Truncate(label, chipCells, ""), chipCells)
	chipRow := " " + chipStyle(c.task.Category.Color).Render(chip) + pad(inner-1-chipCells)

	border := cardBorderStyle
	if c.selected {
		border = cardSelectedBorderStyle
	}
	return border.Render(textRow + "\n" + chipRow)
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// centerIn centers s in a field of width cells.
func centerIn(s string, width int) string {
	free := width - ansi.StringWidth(s)
	if free <= 0 {
		return s
	}
	left := free / 2
	return pad(left) + s + pad(free-left)
}
