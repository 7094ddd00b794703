package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imgrooty/roi-calculator/internal/website"
	"github.com/imgrooty/roi-calculator/pkg/calculator"
)

type entries []calculator.Entry

func newModel(rec calculator.Recorder) Model {
	return NewModel(context.Background(), calculator.NewSession(), rec, website.Corporate)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

// drain runs cmd and feeds every recordedMsg it yields back into m.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	var cmds []tea.Cmd
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		cmds = msg
	default:
		next, _ := m.Update(msg)
		return next.(Model)
	}
	for _, c := range cmds {
		if c == nil {
			continue
		}
		if msg, ok := c().(recordedMsg); ok {
			next, _ := m.Update(msg)
			m = next.(Model)
		}
	}
	return m
}

func TestModelWalksTheWizard(t *testing.T) {
	var got entries
	rec := calculator.RecorderFunc(func(ctx context.Context, e calculator.Entry) error {
		got = append(got, e)
		return nil
	})

	m := newModel(rec)
	if !strings.Contains(m.View(), "What is your monthly revenue?") {
		t.Fatalf("first view:\n%s", m.View())
	}

	m, _ = press(t, m, typed("5000"), enter, typed("3000"), enter, typed("a@b.co"))
	if m.Session().Step() != calculator.StepContact {
		t.Fatalf("step = %v", m.Session().Step())
	}

	m, cmd := press(t, m, enter)
	if !m.Session().Submitting() || !strings.Contains(m.View(), "Submitting...") {
		t.Fatal("submission not in flight")
	}
	m = drain(t, m, cmd)

	if m.Session().Step() != calculator.StepResult {
		t.Fatalf("step = %v, want result", m.Session().Step())
	}
	view := m.View()
	for _, want := range []string{"Thank You!", "$5,000", "$3,000", "$2,000"} {
		if !strings.Contains(view, want) {
			t.Errorf("result view missing %q", want)
		}
	}
	want := calculator.Entry{Email: "a@b.co", Revenue: 5000, Cost: 3000, ROI: 2000}
	if len(got) != 1 || got[0] != want {
		t.Errorf("recorded %+v", got)
	}

	m, cmd = press(t, m, typed("q"))
	if cmd == nil || m.Cancelled() {
		t.Error("q on the result should quit without cancelling")
	}
}

func TestModelValidation(t *testing.T) {
	m := newModel(calculator.RecorderFunc(func(context.Context, calculator.Entry) error { return nil }))

	m, _ = press(t, m, enter)
	if !strings.Contains(m.View(), calculator.MsgInvalidRevenue) {
		t.Error("empty revenue not flagged")
	}
	if m.Session().Step() != calculator.StepRevenue {
		t.Error("advanced past an invalid step")
	}
}

func TestModelBackKeepsValue(t *testing.T) {
	m := newModel(calculator.RecorderFunc(func(context.Context, calculator.Entry) error { return nil }))

	m, _ = press(t, m, typed("1200"), enter, typed("400"), tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Session().Step() != calculator.StepRevenue {
		t.Fatalf("step = %v", m.Session().Step())
	}
	if m.input.Value() != "1200" {
		t.Errorf("input = %q", m.input.Value())
	}
	if m.Session().Data().Cost != 400 {
		t.Errorf("cost = %v, want the value typed before going back", m.Session().Data().Cost)
	}
}

func TestModelSubmitFailure(t *testing.T) {
	boom := errors.New("endpoint down")
	m := newModel(calculator.RecorderFunc(func(context.Context, calculator.Entry) error { return boom }))

	m, _ = press(t, m, typed("10"), enter, typed("5"), enter, typed("a@b.co"))
	m, cmd := press(t, m, enter)
	m = drain(t, m, cmd)

	if !errors.Is(m.Err, boom) {
		t.Errorf("Err = %v", m.Err)
	}
	if m.Session().Step() != calculator.StepContact {
		t.Error("left the contact step after a failure")
	}
	if !strings.Contains(m.View(), calculator.SubmitErrorMessage) {
		t.Error("failure banner missing")
	}
}

func TestModelEscCancels(t *testing.T) {
	m := newModel(calculator.RecorderFunc(func(context.Context, calculator.Entry) error { return nil }))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !m.Cancelled() || m.View() != "" {
		t.Error("esc should quit and cancel")
	}
}

func TestRenderBars(t *testing.T) {
	out := RenderBars(website.Cyberpunk, calculator.NewResult(2000, 5000).Bars())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "[REVENUE]") || !strings.HasSuffix(lines[2], "-$3,000") {
		t.Errorf("bars:\n%s", out)
	}
	if strings.Count(lines[1], "█") != barWidth {
		t.Error("largest bar should fill the width")
	}
}
