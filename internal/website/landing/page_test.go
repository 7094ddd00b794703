package landing

import (
	"strings"
	"testing"

	"github.com/imgrooty/roi-calculator/internal/website"
	"github.com/imgrooty/roi-calculator/pkg/calculator"
)

func TestRenderBody(t *testing.T) {
	body := RenderBody(Options{
		Theme:  website.Cyberpunk,
		Wizard: calculator.NewSession().Snapshot(),
		Year:   2026,
	})

	for _, id := range []string{SlotNav, SlotHero, SlotFeatures, SlotCalculator, SlotCTA, SlotFooter} {
		marker := `<div data-slot="` + id + `"><div class="skin skin-cyberpunk">`
		if !strings.Contains(body, marker) {
			t.Errorf("slot %q missing or unskinned", id)
		}
	}
	for _, want := range []string{"Ready to Maximize Your Returns?", "Why Calculate Your ROI?", "Accurate Calculations", "Easy to Use", "Detailed Reporting"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestRenderBodyDefaultsToCorporate(t *testing.T) {
	body := RenderBody(Options{Wizard: calculator.NewSession().Snapshot()})
	if !strings.Contains(body, "skin-corporate") {
		t.Error("zero theme should render corporate")
	}
}

func TestRenderPage(t *testing.T) {
	page := RenderPage(website.DefaultPageConfig(), "n", Options{Theme: website.Corporate, Wizard: calculator.NewSession().Snapshot()})
	if !strings.HasPrefix(page, "<!DOCTYPE html>") || !strings.Contains(page, `data-slot="calculator"`) {
		t.Error("page not wrapped")
	}
}
