package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"crmtable/internal/browse"
)

// Program wraps the Bubble Tea program lifecycle.
type Program struct {
	program *tea.Program
}

// NewProgram constructs an interactive customer table session over ctrl.
func NewProgram(ctrl *browse.Controller, opts Options) *Program {
	m := newModel(ctrl, opts)
	return &Program{program: tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())}
}

// Start launches the Bubble Tea program and blocks until it exits.
func (p *Program) Start() error {
	if p == nil || p.program == nil {
		return fmt.Errorf("nil program")
	}
	_, err := p.program.Run()
	return err
}
