package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/imgrooty/roi-calculator/internal/website"
)

// FeaturesOptions configures the features section.
type FeaturesOptions struct {
	// Title is the section title
	Title string
	// Features is the list of features to display
	Features []website.Feature
}

// DefaultFeatures returns the three feature cards of the page.
func DefaultFeatures() []website.Feature {
	return []website.Feature{
		{
			Icon:        website.IconAccuracy,
			Title:       "Accurate Calculations",
			Description: "Our calculator uses precise formulas to ensure you get the most accurate ROI estimate possible.",
		},
		{
			Icon:        website.IconWallet,
			Title:       "Easy to Use",
			Description: "Simple, straightforward interface that guides you through each step of the calculation process.",
		},
		{
			Icon:        website.IconBook,
			Title:       "Detailed Reporting",
			Description: "Get a visual breakdown of your ROI with our intuitive charts and detailed analysis.",
		},
	}
}

// RenderFeatures generates the feature grid section.
func RenderFeatures(opts FeaturesOptions) string {
	var sb strings.Builder

	sb.WriteString(`<section id="features" class="section section-alt" aria-labelledby="features-title">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`<h2 id="features-title" class="section-title">%s</h2>`, html.EscapeString(opts.Title)))
		sb.WriteString("\n")
	}

	sb.WriteString(`<div class="grid-3" role="list">`)
	sb.WriteString("\n")
	for _, f := range opts.Features {
		sb.WriteString(renderFeatureCard(f))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderFeatureCard(f website.Feature) string {
	var sb strings.Builder

	sb.WriteString(`<article class="card feature-card" role="listitem">`)
	sb.WriteString("\n")
	if f.Icon != "" {
		sb.WriteString(`<div class="feature-icon">`)
		sb.WriteString(website.Icon(f.Icon, 24))
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf(`<h3>%s</h3>`, html.EscapeString(f.Title)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(f.Description)))
	sb.WriteString("\n")
	sb.WriteString(`</article>`)
	sb.WriteString("\n")

	return sb.String()
}
