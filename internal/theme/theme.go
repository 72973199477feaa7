package theme

import "github.com/charmbracelet/lipgloss"

// Theme encapsulates the visual palette for the customer table.
type Theme struct {
	Title       lipgloss.Style
	Count       lipgloss.Style
	Accent      lipgloss.Style
	Secondary   lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Faint       lipgloss.Style
	Border      lipgloss.Style
	Header      lipgloss.Style
	HeaderFocus lipgloss.Style
	SortMark    lipgloss.Style
	Row         lipgloss.Style
	RowSelected lipgloss.Style
	Avatar      lipgloss.Style
	Button      lipgloss.Style
	ButtonOpen  lipgloss.Style
	Dropdown    lipgloss.Style
}

// Default returns a high-contrast palette that plays nicely with common terminals.
func Default() Theme {
	base := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
		Count:       lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("151")).Padding(0, 1),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("219")).Bold(true),
		Secondary:   lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("227")).Bold(true),
		Faint:       lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Border:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Header:      lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true),
		HeaderFocus: lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("111")).Bold(true),
		SortMark:    lipgloss.NewStyle().Foreground(lipgloss.Color("219")).Bold(true),
		Row:         base,
		RowSelected: base.Copy().Background(lipgloss.Color("236")).Bold(true),
		Avatar:      lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("117")),
		Button:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")).Padding(0, 1),
		ButtonOpen:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("219")).Padding(0, 1),
		Dropdown:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	}
}
