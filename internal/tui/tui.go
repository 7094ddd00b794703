// Package tui runs the calculator wizard in a terminal with bubbletea.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imgrooty/roi-calculator/internal/website"
	"github.com/imgrooty/roi-calculator/pkg/calculator"
)

// ErrCancelled is returned when the user quits before submitting.
var ErrCancelled = errors.New("calculation cancelled")

// Run starts the interactive wizard and returns the session once the
// user quits.
func Run(ctx context.Context, rec calculator.Recorder, theme website.Theme, opts ...tea.ProgramOption) (*calculator.Session, error) {
	model := NewModel(ctx, calculator.NewSession(), rec, theme)

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(Model)
	if !ok {
		return nil, errors.New("tui: unexpected model")
	}
	if m.Cancelled() {
		return m.Session(), ErrCancelled
	}
	return m.Session(), nil
}
