package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Collapsible is a show/hide header for an optional panel.
type Collapsible struct {
	ZoneID string
	Title  string
	Open   bool
}

// Toggle flips the panel and returns the new visibility.
func (c *Collapsible) Toggle() bool {
	c.Open = !c.Open
	return c.Open
}

// Clicked reports whether msg hits the header.
func (c *Collapsible) Clicked(msg tea.MouseMsg) bool {
	return zone.Get(c.ZoneID).InBounds(msg)
}

// View renders the header.
func (c *Collapsible) View() string {
	arrow := "▸ "
	if c.Open {
		arrow = "▾ "
	}
	return zone.Mark(c.ZoneID, headerStyle.Render(arrow+c.Title))
}
