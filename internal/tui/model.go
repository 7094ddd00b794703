package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/imgrooty/roi-calculator/internal/website"
	"github.com/imgrooty/roi-calculator/pkg/calculator"
)

// recordedMsg carries the outcome of the recorder call.
type recordedMsg struct {
	err  error
	took time.Duration
}

// Model is the terminal rendition of the wizard. It drives the same
// calculator.Session as the web page.
type Model struct {
	ctx      context.Context
	session  *calculator.Session
	recorder calculator.Recorder
	theme    website.Theme
	styles   Styles

	input   textinput.Model
	spinner spinner.Model

	// Err is the last recorder failure, kept for the caller after exit.
	Err       error
	quitting  bool
	cancelled bool
}

// NewModel creates a model at the revenue step.
func NewModel(ctx context.Context, session *calculator.Session, rec calculator.Recorder, theme website.Theme) Model {
	styles := NewStyles(theme)

	in := textinput.New()
	in.Width = 40
	in.CharLimit = 120
	in.Cursor.Style = styles.Current
	in.PlaceholderStyle = styles.Muted
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Current

	m := Model{
		ctx:      ctx,
		session:  session,
		recorder: rec,
		theme:    theme,
		styles:   styles,
		input:    in,
		spinner:  sp,
	}
	m.syncInput()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case recordedMsg:
		if err := m.session.FinishSubmit(msg.err); err != nil {
			var terr *calculator.TransportError
			if errors.As(err, &terr) {
				m.Err = terr.Err
			}
		}
		m.syncInput()
		return m, nil

	case spinner.TickMsg:
		if !m.session.Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.cancelled = !m.session.Step().Terminal()
		m.quitting = true
		return m, tea.Quit
	}

	if m.session.Submitting() {
		return m, nil
	}

	if m.session.Step().Terminal() {
		if msg.String() == "q" || msg.String() == "enter" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "shift+tab", "ctrl+b":
		m.commitInput()
		m.session.Retreat()
		m.syncInput()
		return m, nil

	case "enter":
		m.commitInput()
		if m.session.Step() == calculator.StepContact {
			return m.submit()
		}
		m.session.Advance()
		m.syncInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	entry, err := m.session.BeginSubmit()
	if err != nil {
		return m, nil
	}
	m.Err = nil

	ctx, rec := m.ctx, m.recorder
	record := func() tea.Msg {
		start := time.Now()
		err := rec.Record(ctx, entry)
		return recordedMsg{err: err, took: time.Since(start)}
	}
	return m, tea.Batch(record, m.spinner.Tick)
}

// commitInput writes the text box into the session.
func (m *Model) commitInput() {
	field, ok := calculator.FieldFor(m.session.Step())
	if !ok {
		return
	}
	_ = m.session.UpdateField(field, m.input.Value())
}

// syncInput loads the current step's value into the text box.
func (m *Model) syncInput() {
	prompt, ok := calculator.PromptFor(m.session.Snapshot())
	if !ok {
		m.input.Blur()
		return
	}
	m.input.SetValue(prompt.Field.Value)
	m.input.Placeholder = prompt.Field.Placeholder
	m.input.Prompt = "> "
	if prompt.Field.Prefix != "" {
		m.input.Prompt = prompt.Field.Prefix + " "
	}
	m.input.CursorEnd()
	m.input.Focus()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Brand.Render(m.theme.Brand))
	sb.WriteString("\n\n")

	snap := m.session.Snapshot()
	if snap.Step.Terminal() {
		sb.WriteString(m.styles.Card.Render(m.viewResult(snap)))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Help.Render("enter/q quit"))
		return sb.String()
	}

	sb.WriteString(m.styles.Card.Render(m.viewStep(snap)))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("enter next • shift+tab back • esc quit"))
	return sb.String()
}

func (m Model) viewStep(snap calculator.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(m.viewProgress(snap.Step))
	sb.WriteString("\n\n")

	prompt, _ := calculator.PromptFor(snap)
	sb.WriteString(m.styles.Heading.Render(prompt.Heading))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Label.Render(m.theme.Caption(prompt.Field.Label)))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")

	if prompt.Field.HasError() {
		sb.WriteString(m.styles.Error.Render(prompt.Field.Error))
		sb.WriteString("\n")
	}
	if snap.Submitting {
		sb.WriteString(m.spinner.View() + " Submitting...\n")
	}
	if snap.SubmitError != "" {
		sb.WriteString(m.styles.Error.Render(snap.SubmitError))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) viewProgress(current calculator.Step) string {
	parts := make([]string, 0, calculator.InputSteps)
	for s := calculator.StepRevenue; s <= calculator.StepContact; s++ {
		label := fmt.Sprintf("%d %s", int(s), m.theme.Caption(s.Label()))
		switch {
		case s < current:
			parts = append(parts, m.styles.Done.Render("✓ "+m.theme.Caption(s.Label())))
		case s == current:
			parts = append(parts, m.styles.Current.Render(label))
		default:
			parts = append(parts, m.styles.Pending.Render(label))
		}
	}
	return strings.Join(parts, m.styles.Pending.Render("  ─  "))
}

func (m Model) viewResult(snap calculator.Snapshot) string {
	result := calculator.NewResult(snap.Data.Revenue, snap.Data.Cost)

	roi := m.styles.Positive
	if !result.Favorable() {
		roi = m.styles.Negative
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Success.Render("Thank You!"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%s %s\n", m.styles.Label.Render(m.theme.Caption("Monthly Revenue")), calculator.FormatCurrency(result.Revenue))
	fmt.Fprintf(&sb, "%s %s\n", m.styles.Label.Render(m.theme.Caption("Monthly Cost")), calculator.FormatCurrency(result.Cost))
	fmt.Fprintf(&sb, "%s %s\n\n", m.styles.Label.Render(m.theme.Caption("Monthly ROI")), roi.Render(calculator.FormatCurrency(result.ROI())))
	sb.WriteString(RenderBars(m.theme, result.Bars()))
	return strings.TrimRight(sb.String(), "\n")
}

// Cancelled reports whether the user left before reaching the result.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Session returns the wizard state.
func (m Model) Session() *calculator.Session {
	return m.session
}
