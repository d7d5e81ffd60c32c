package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/aitasks/internal/todo"
)

const emptyListText = "Nessuna attività. Scrivi qualcosa e premi invio."

// Container is a vertical scroll area hosting one card per task.
type Container struct {
	viewport viewport.Model
	cards    []*Card
	byID     map[string]*Card
	selected int
	extent   int
}

// NewContainer creates an empty container of the given size in cells.
func NewContainer(width, height int) *Container {
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true
	c := &Container{
		viewport: vp,
		byID:     make(map[string]*Card),
		selected: -1,
	}
	c.refresh()
	return c
}

// Reconcile brings the cards in line with tasks. Existing cards are
// reused by task ID; it returns how many cards were added and removed.
func (c *Container) Reconcile(tasks []todo.Task) (added, removed int) {
	selectedID := c.SelectedID()

	next := make([]*Card, 0, len(tasks))
	nextByID := make(map[string]*Card, len(tasks))
	for _, task := range tasks {
		card, ok := c.byID[task.ID]
		if !ok {
			card = NewCard(task)
			added++
		}
		next = append(next, card)
		nextByID[task.ID] = card
	}
	for id := range c.byID {
		if _, ok := nextByID[id]; !ok {
			removed++
		}
	}

	prevSelected := c.selected
	c.cards = next
	c.byID = nextByID

	c.selected = -1
	if selectedID != "" {
		for i, card := range c.cards {
			if card.ID() == selectedID {
				c.selected = i
				break
			}
		}
		if c.selected < 0 && len(c.cards) > 0 {
			// The selected card was removed; select its successor.
			c.selected = min(prevSelected, len(c.cards)-1)
		}
	}

	c.refresh()
	return added, removed
}

// Resize sets the container size. Every card is re-rendered at the new width.
func (c *Container) Resize(width, height int) {
	if height < 1 {
		height = 1
	}
	c.viewport.Width = width
	c.viewport.Height = height
	c.refresh()
}

// Width returns the container width in cells.
func (c *Container) Width() int {
	return c.viewport.Width
}

// Height returns the visible height in rows.
func (c *Container) Height() int {
	return c.viewport.Height
}

// Extent returns the total number of content rows.
func (c *Container) Extent() int {
	return c.extent
}

// Len returns the number of cards.
func (c *Container) Len() int {
	return len(c.cards)
}

// Cards returns the hosted cards in order.
func (c *Container) Cards() []*Card {
	out := make([]*Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Offset returns the index of the first visible row.
func (c *Container) Offset() int {
	return c.viewport.YOffset
}

// CardAt maps a point inside the visible area to a task ID and whether the
// point hits that card's delete zone. ok is false between or below cards.
func (c *Container) CardAt(x, y int) (id string, onDelete bool, ok bool) {
	if x < 0 || y < 0 || y >= c.viewport.Height {
		return "", false, false
	}
	row := y + c.viewport.YOffset
	idx := row / CardStride
	if idx >= len(c.cards) || row%CardStride >= CardHeight {
		return "", false, false
	}
	card := c.cards[idx]
	if x >= card.Width() {
		return "", false, false
	}
	return card.ID(), card.InDeleteZone(x), true
}

// Selected returns the index of the selected card, or -1.
func (c *Container) Selected() int {
	return c.selected
}

// SelectedID returns the ID of the selected card, or "".
func (c *Container) SelectedID() string {
	if c.selected < 0 || c.selected >= len(c.cards) {
		return ""
	}
	return c.cards[c.selected].ID()
}

// Select selects the card at index i and scrolls it into view.
// An out-of-range index clears the selection.
func (c *Container) Select(i int) {
	if i < 0 || i >= len(c.cards) {
		c.selected = -1
	} else {
		c.selected = i
	}
	c.refresh()
	c.ScrollTo(c.selected)
}

// SelectID selects the card showing the given task.
func (c *Container) SelectID(id string) {
	for i, card := range c.cards {
		if card.ID() == id {
			c.Select(i)
			return
		}
	}
}

// MoveSelection moves the selection by delta cards, clamped to the list.
func (c *Container) MoveSelection(delta int) {
	if len(c.cards) == 0 {
		return
	}
	i := c.selected
	if i < 0 {
		if delta > 0 {
			i = 0
		} else {
			i = len(c.cards) - 1
		}
	} else {
		i = max(0, min(len(c.cards)-1, i+delta))
	}
	c.Select(i)
}

// ScrollTo scrolls the minimum amount needed to show card i.
func (c *Container) ScrollTo(i int) {
	if i < 0 || i >= len(c.cards) {
		return
	}
	top := i * CardStride
	bottom := top + CardHeight - 1
	switch {
	case top < c.viewport.YOffset:
		c.viewport.SetYOffset(top)
	case bottom >= c.viewport.YOffset+c.viewport.Height:
		c.viewport.SetYOffset(bottom - c.viewport.Height + 1)
	}
}

// ScrollBy scrolls by n rows; negative values scroll up.
func (c *Container) ScrollBy(n int) {
	c.viewport.SetYOffset(c.viewport.YOffset + n)
}

// PageDown scrolls down by one visible height.
func (c *Container) PageDown() {
	c.ScrollBy(c.viewport.Height)
}

// PageUp scrolls up by one visible height.
func (c *Container) PageUp() {
	c.ScrollBy(-c.viewport.Height)
}

// Update forwards mouse wheel messages to the viewport.
func (c *Container) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return cmd
}

// View renders the visible part of the list.
func (c *Container) View() string {
	if len(c.cards) == 0 {
		lines := make([]string, max(1, c.viewport.Height))
		lines[0] = emptyListStyle.Render(emptyListText)
		return strings.Join(lines, "\n")
	}
	return c.viewport.View()
}

// refresh re-renders the cards and recomputes the extent.
func (c *Container) refresh() {
	views := make([]string, 0, len(c.cards))
	for i, card := range c.cards {
		card.SetWidth(c.viewport.Width)
		card.SetSelected(i == c.selected)
		views = append(views, card.View())
	}

	c.extent = 0
	if n := len(c.cards); n > 0 {
		c.extent = n*CardStride - CardGap
	}
	c.viewport.SetContent(strings.Join(views, "\n\n"))
}
