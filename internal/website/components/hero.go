package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/imgrooty/roi-calculator/internal/website"
)

// HeroOptions configures the hero section.
type HeroOptions struct {
	Theme website.Theme
	// WhyTitle heads the list of reasons next to the artwork
	WhyTitle string
	// WhyPoints are the reasons, each shown with a check
	WhyPoints []string
	// Button links to the calculator
	Button HeroButton
}

// HeroButton represents a hero section button.
type HeroButton struct {
	Text string
	URL  string
}

// DefaultHeroOptions returns the hero copy of the page.
func DefaultHeroOptions(theme website.Theme) HeroOptions {
	return HeroOptions{
		Theme:    theme,
		WhyTitle: "Why Calculate Your ROI?",
		WhyPoints: []string{
			"Make data-driven decisions for your business",
			"Understand the financial impact of your investments",
			"Optimize your budget allocation for maximum returns",
		},
		Button: HeroButton{Text: "Calculate Your ROI", URL: "#calculator"},
	}
}

// RenderHero generates the hero section: headline, subtitle, artwork and
// the reasons card.
func RenderHero(opts HeroOptions) string {
	var sb strings.Builder

	sb.WriteString(`<section class="hero" aria-labelledby="hero-title">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")

	sb.WriteString(`<div class="text-center">`)
	sb.WriteString(fmt.Sprintf(`<h1 id="hero-title" class="hero-title animate-fade-in">%s<span class="accent">%s</span></h1>`,
		html.EscapeString(opts.Theme.HeroTitle),
		html.EscapeString(opts.Theme.HeroAccent)))
	sb.WriteString("\n")
	if opts.Theme.HeroSubtitle != "" {
		sb.WriteString(fmt.Sprintf(`<p class="hero-subtitle">%s</p>`, html.EscapeString(opts.Theme.HeroSubtitle)))
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`<div class="hero-grid">`)
	sb.WriteString("\n")
	sb.WriteString(renderHeroArt(opts.Theme))

	sb.WriteString(`<div class="card">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h2>%s</h2>`, html.EscapeString(opts.WhyTitle)))
	sb.WriteString("\n")
	sb.WriteString(`<ul class="why-list">`)
	for _, point := range opts.WhyPoints {
		sb.WriteString(`<li>`)
		sb.WriteString(website.Icon(website.IconCircleOK, 20))
		sb.WriteString(fmt.Sprintf(`<span>%s</span></li>`, html.EscapeString(point)))
	}
	sb.WriteString(`</ul>`)
	sb.WriteString("\n")
	if opts.Button.Text != "" {
		sb.WriteString(fmt.Sprintf(`<a href="%s" class="btn btn-primary">%s</a>`,
			html.EscapeString(opts.Button.URL),
			html.EscapeString(opts.Button.Text)))
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

// renderHeroArt draws a small rising bar chart in the skin's chart colours.
func renderHeroArt(t website.Theme) string {
	heights := []int{40, 65, 55, 90, 120}
	colors := []string{t.Chart.Cost, t.Chart.Revenue, t.Chart.Cost, t.Chart.Revenue, t.Chart.Favorable}

	var sb strings.Builder
	sb.WriteString(`<div class="hero-art" aria-hidden="true">`)
	sb.WriteString(`<svg viewBox="0 0 300 150" xmlns="http://www.w3.org/2000/svg">`)
	for i, h := range heights {
		sb.WriteString(fmt.Sprintf(`<rect class="bar" x="%d" y="%d" width="36" height="%d" rx="4" fill="%s" color="%s"/>`,
			20+i*56, 140-h, h, colors[i], colors[i]))
	}
	sb.WriteString(fmt.Sprintf(`<line x1="10" y1="140" x2="290" y2="140" stroke="%s" stroke-width="2"/>`, t.Chart.Axis))
	sb.WriteString(`</svg></div>`)
	sb.WriteString("\n")
	return sb.String()
}
