package components

import (
	"fmt"
	"html"
	"strings"
)

// CTAOptions configures the call-to-action band.
type CTAOptions struct {
	Title   string
	Text    string
	Button  string
	Contact string
}

// DefaultCTAOptions returns the call-to-action copy of the page.
func DefaultCTAOptions() CTAOptions {
	return CTAOptions{
		Title:   "Ready to Maximize Your Returns?",
		Text:    "Contact our team of experts today to learn more about how our solutions can help you achieve better ROI.",
		Button:  "Contact Us",
		Contact: "mailto:hello@roicalculator.com",
	}
}

// RenderCTA generates the call-to-action band.
func RenderCTA(opts CTAOptions) string {
	var sb strings.Builder

	sb.WriteString(`<section class="cta" aria-labelledby="cta-title">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString(fmt.Sprintf(`<h2 id="cta-title">%s</h2>`, html.EscapeString(opts.Title)))
	sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(opts.Text)))
	if opts.Button != "" {
		sb.WriteString(fmt.Sprintf(`<a href="%s" class="btn btn-inverse">%s</a>`,
			html.EscapeString(opts.Contact), html.EscapeString(opts.Button)))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}
