// Package app holds the calculator's LiveView component and the page
// layout it is served in.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/imgrooty/roi-calculator/internal/website"
	"github.com/imgrooty/roi-calculator/internal/website/landing"
	"github.com/imgrooty/roi-calculator/pkg/calculator"
	"github.com/imgrooty/roi-calculator/pkg/core"
	"github.com/imgrooty/roi-calculator/pkg/logging"
)

// Client events handled by CalculatorView.
const (
	EventUpdateField  = "update_field"
	EventNextStep     = "next_step"
	EventPrevStep     = "prev_step"
	EventSubmit       = "submit"
	EventSetTheme     = "set_theme"
	EventConsultation = "request_consultation"
)

const (
	// ComponentName identifies the view in logs.
	ComponentName = "roi-calculator"
	// ParamTheme is the query parameter selecting the skin.
	ParamTheme = "theme"
)

// Payload keys.
const (
	payloadKeyField = "field"
	payloadKeyValue = "value"
	payloadKeyTheme = "theme"
)

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrUnknownTheme = errors.New("unknown theme")
	ErrMissingField = errors.New("missing field name")
)

// Options configures CalculatorView instances.
type Options struct {
	// Recorder receives submitted entries. Required.
	Recorder calculator.Recorder
	// Observer is notified of step changes and validation failures.
	Observer calculator.Observer
	// Theme is the skin used when the page is opened without ?theme=.
	Theme string
	// Logger defaults to the logger found in the context.
	Logger logging.Logger
	// Now is used for the footer year.
	Now func() time.Time
}

// submitOutcome is posted back to the component when the recorder call
// made for a submission returns.
type submitOutcome struct {
	err  error
	took time.Duration
}

// CalculatorView is the wizard page. One instance serves one browser tab;
// the router calls it from a single goroutine.
type CalculatorView struct {
	core.BaseComponent

	opts      Options
	wizard    *calculator.Session
	theme     website.Theme
	consulted bool
}

// New returns a factory for LiveRoute.Component.
func New(opts Options) func() core.Component {
	return func() core.Component {
		return NewCalculatorView(opts)
	}
}

// NewCalculatorView creates an unmounted view.
func NewCalculatorView(opts Options) *CalculatorView {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &CalculatorView{
		opts:  opts,
		theme: website.ThemeOrDefault(opts.Theme),
	}
}

// Name implements core.Component.
func (v *CalculatorView) Name() string {
	return ComponentName
}

// Mount starts a fresh wizard. A known ?theme= overrides the default skin.
func (v *CalculatorView) Mount(ctx context.Context, params core.Params, session core.Session) error {
	sessionOpts := []calculator.Option{}
	if v.opts.Observer != nil {
		sessionOpts = append(sessionOpts, calculator.WithObserver(v.opts.Observer))
	}
	v.wizard = calculator.NewSession(sessionOpts...)

	if t, ok := website.ThemeByName(params.Get(ParamTheme)); ok {
		v.theme = t
	}
	return nil
}

// Render implements core.Component.
func (v *CalculatorView) Render(ctx context.Context) core.Renderer {
	return core.RendererFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, landing.RenderBody(landing.Options{
			Theme:     v.theme,
			Wizard:    v.wizard.Snapshot(),
			Consulted: v.consulted,
			Year:      v.opts.Now().Year(),
		}))
		return err
	})
}

// HandleEvent implements core.Component. Validation failures are not
// errors: they are rendered next to the field.
func (v *CalculatorView) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	switch event {
	case EventUpdateField:
		name, _ := payload[payloadKeyField].(string)
		if name == "" {
			return ErrMissingField
		}
		field, err := calculator.ParseField(name)
		if err != nil {
			return fmt.Errorf("%w: %q", err, name)
		}
		value, ok := payload[payloadKeyValue]
		if !ok {
			value = ""
		}
		return v.wizard.UpdateField(field, value)

	case EventNextStep:
		v.wizard.Advance()
		return nil

	case EventPrevStep:
		v.wizard.Retreat()
		return nil

	case EventSubmit:
		return v.submit(ctx)

	case EventSetTheme:
		name, _ := payload[payloadKeyTheme].(string)
		t, ok := website.ThemeByName(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
		}
		v.theme = t
		return nil

	case EventConsultation:
		if v.wizard.Step().Terminal() && !v.consulted {
			v.consulted = true
			v.logger(ctx).Info("consultation requested", logging.String("email", v.wizard.Data().Email))
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
}

// HandleInfo completes a submission started by the submit event.
func (v *CalculatorView) HandleInfo(ctx context.Context, msg any) error {
	outcome, ok := msg.(submitOutcome)
	if !ok {
		return nil
	}
	return v.finish(ctx, outcome)
}

// submit validates the contact step and records the entry. With a socket
// the recorder runs on its own goroutine and the result comes back through
// HandleInfo, so the page shows the in-flight state meanwhile. Without one
// (tests, plain HTTP) the call is synchronous.
func (v *CalculatorView) submit(ctx context.Context) error {
	entry, err := v.wizard.BeginSubmit()
	switch {
	case errors.Is(err, calculator.ErrSubmitInProgress):
		return nil
	case errors.Is(err, calculator.ErrInvalidEmail):
		return nil
	case err != nil:
		return err
	}

	rec := v.opts.Recorder
	socket := v.Socket()
	if socket == nil {
		start := time.Now()
		return v.finish(ctx, submitOutcome{err: rec.Record(ctx, entry), took: time.Since(start)})
	}

	// The entry is recorded even if the tab goes away mid-call.
	rctx := context.WithoutCancel(ctx)
	go func() {
		start := time.Now()
		err := rec.Record(rctx, entry)
		if serr := socket.SendInfo(submitOutcome{err: err, took: time.Since(start)}); serr != nil {
			v.logger(rctx).Debug("submission outcome dropped", logging.Err(serr))
		}
	}()
	return nil
}

func (v *CalculatorView) finish(ctx context.Context, outcome submitOutcome) error {
	err := v.wizard.FinishSubmit(outcome.err)
	log := v.logger(ctx).With(logging.Duration("took", outcome.took))

	var terr *calculator.TransportError
	switch {
	case errors.As(err, &terr):
		log.Warn("submission failed", logging.Err(terr.Err))
		return nil
	case err != nil:
		return err
	}
	log.Info("submission recorded", logging.Float64("roi", v.wizard.Result().ROI()))
	return nil
}

// Terminate implements core.Component.
func (v *CalculatorView) Terminate(ctx context.Context, reason core.TerminateReason) error {
	if v.wizard != nil && v.wizard.Submitting() {
		v.logger(ctx).Debug("terminated with submission in flight", logging.String("reason", reason.String()))
	}
	return nil
}

// Theme returns the active skin.
func (v *CalculatorView) Theme() website.Theme {
	return v.theme
}

// Wizard returns the state machine, for inspection in tests.
func (v *CalculatorView) Wizard() *calculator.Session {
	return v.wizard
}

func (v *CalculatorView) logger(ctx context.Context) logging.Logger {
	if v.opts.Logger != nil {
		return v.opts.Logger
	}
	return logging.L(ctx)
}

var (
	_ core.Component   = (*CalculatorView)(nil)
	_ core.SocketAware = (*CalculatorView)(nil)
)
