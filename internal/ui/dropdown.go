package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"crmtable/internal/theme"
)

// filterOptions are placeholders; choosing one has no effect on the data.
var filterOptions = []string{"Filter 1", "Filter 2", "Filter 3", "Filter 4"}

const filterButtonLabel = "Add Filters"

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type dropdown struct {
	open bool
}

func (d *dropdown) toggle() {
	d.open = !d.open
}

func (d *dropdown) close() {
	d.open = false
}

// click handles a pointer press. A press on the button toggles the panel, a
// press outside both button and panel dismisses it. It reports whether the press
// landed on the button or inside the open panel.
func (d *dropdown) click(x, y int, button, panel rect) bool {
	if button.contains(x, y) {
		d.toggle()
		return true
	}
	if !d.open {
		return false
	}
	if panel.contains(x, y) {
		return true
	}
	d.close()
	return false
}

func renderFilterButton(t theme.Theme, open bool) string {
	if open {
		return t.ButtonOpen.Render(filterButtonLabel)
	}
	return t.Button.Render(filterButtonLabel)
}

func renderFilterPanel(t theme.Theme) string {
	width := 0
	for _, opt := range filterOptions {
		width = max(width, lipgloss.Width(opt))
	}
	lines := make([]string, len(filterOptions))
	for i, opt := range filterOptions {
		lines[i] = t.Secondary.Render(opt + strings.Repeat(" ", width-lipgloss.Width(opt)))
	}
	return t.Dropdown.Render(strings.Join(lines, "\n"))
}
