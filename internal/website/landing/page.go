// Package landing composes the calculator page from its sections.
package landing

import (
	"html"
	"strings"

	"github.com/imgrooty/roi-calculator/internal/website"
	"github.com/imgrooty/roi-calculator/internal/website/components"
	"github.com/imgrooty/roi-calculator/pkg/calculator"
)

// Slot IDs of the page. Each section is diffed on its own, so typing in
// the wizard only resends the calculator slot.
const (
	SlotNav        = "nav"
	SlotHero       = "hero"
	SlotFeatures   = "features"
	SlotCalculator = "calculator"
	SlotCTA        = "cta"
	SlotFooter     = "footer"
)

// Options configures the page.
type Options struct {
	Theme  website.Theme
	Wizard calculator.Snapshot
	// Consulted is set once the visitor asked for a consultation
	Consulted bool
	// Year is printed in the footer
	Year int
	// FooterTagline overrides the default tagline when set
	FooterTagline string
}

// RenderBody generates the page body. Every section sits in its own
// data-slot element and carries the skin class, so a skin change resends
// all slots and a wizard change resends only the calculator.
func RenderBody(opts Options) string {
	t := opts.Theme
	if t.Name == "" {
		t = website.Corporate
	}

	tagline := opts.FooterTagline
	if tagline == "" {
		tagline = "Helping businesses make better financial decisions with accurate ROI calculations."
	}

	var body strings.Builder
	body.Grow(24 * 1024)

	body.WriteString(Slot(SlotNav, t, components.RenderNavbar(components.NavbarOptions{
		Theme:      t,
		Links:      components.DefaultNavLinks(),
		ShowToggle: true,
	})))

	body.WriteString(`<main id="main-content">`)
	body.WriteString("\n")
	body.WriteString(Slot(SlotHero, t, components.RenderHero(components.DefaultHeroOptions(t))))
	body.WriteString(Slot(SlotFeatures, t, components.RenderFeatures(components.FeaturesOptions{
		Title:    "Why Our Calculator Works",
		Features: components.DefaultFeatures(),
	})))
	body.WriteString(Slot(SlotCalculator, t, components.RenderCalculatorSection(components.CalculatorOptions{
		Theme:     t,
		Wizard:    opts.Wizard,
		Consulted: opts.Consulted,
	})))
	body.WriteString(Slot(SlotCTA, t, components.RenderCTA(components.DefaultCTAOptions())))
	body.WriteString(`</main>`)
	body.WriteString("\n")

	body.WriteString(Slot(SlotFooter, t, components.RenderFooter(components.FooterOptions{
		Theme:   t,
		Tagline: tagline,
		Columns: components.DefaultFooterColumns(),
		Year:    opts.Year,
	})))

	return body.String()
}

// Slot wraps inner in a diffable element carrying the skin class.
func Slot(id string, t website.Theme, inner string) string {
	return `<div data-slot="` + html.EscapeString(id) + `"><div class="` + t.Class() + `">` + "\n" +
		inner + "</div></div>\n"
}

// RenderPage generates a complete document around RenderBody.
func RenderPage(cfg website.PageConfig, nonce string, opts Options) string {
	return website.RenderDocument(cfg, nonce, RenderBody(opts))
}
