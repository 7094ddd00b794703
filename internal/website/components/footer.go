package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/imgrooty/roi-calculator/internal/website"
)

// FooterOptions configures the footer component.
type FooterOptions struct {
	Theme website.Theme
	// Tagline is shown below the logo
	Tagline string
	// Columns are the link lists next to the logo
	Columns []website.FooterColumn
	// Year is printed in the copyright line
	Year int
}

// DefaultFooterColumns returns the footer link lists of the page.
func DefaultFooterColumns() []website.FooterColumn {
	return []website.FooterColumn{
		{Title: "Links", Links: []website.NavLink{
			{Label: "Home", URL: "/"},
			{Label: "Features", URL: "#features"},
			{Label: "Calculator", URL: "#calculator"},
			{Label: "About Us", URL: "#"},
		}},
		{Title: "Resources", Links: []website.NavLink{
			{Label: "Blog", URL: "#"},
			{Label: "Case Studies", URL: "#"},
			{Label: "Documentation", URL: "#"},
			{Label: "Help Center", URL: "#"},
		}},
		{Title: "Contact", Links: []website.NavLink{
			{Label: "hello@roicalculator.com"},
			{Label: "+1 (555) 123-4567"},
		}},
	}
}

// RenderFooter generates the page footer.
func RenderFooter(opts FooterOptions) string {
	var sb strings.Builder

	sb.WriteString(`<footer class="footer" role="contentinfo">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="footer-grid">`)
	sb.WriteString("\n")

	sb.WriteString(`<div>`)
	sb.WriteString(`<div class="brand">`)
	sb.WriteString(website.Icon(website.IconDollar, 24))
	sb.WriteString(fmt.Sprintf(`<span>%s</span></div>`, html.EscapeString(opts.Theme.Brand)))
	if opts.Tagline != "" {
		sb.WriteString(fmt.Sprintf(`<p class="dim">%s</p>`, html.EscapeString(opts.Tagline)))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	for _, col := range opts.Columns {
		sb.WriteString(`<div>`)
		sb.WriteString(fmt.Sprintf(`<h3>%s</h3><ul>`, html.EscapeString(col.Title)))
		for _, link := range col.Links {
			if link.URL == "" {
				sb.WriteString(fmt.Sprintf(`<li>%s</li>`, html.EscapeString(link.Label)))
				continue
			}
			sb.WriteString(fmt.Sprintf(`<li><a href="%s">%s</a></li>`,
				html.EscapeString(link.URL),
				html.EscapeString(link.Label)))
		}
		sb.WriteString(`</ul></div>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`<div class="footer-bottom"><p>&copy; %d %s. All rights reserved.</p></div>`,
		opts.Year, html.EscapeString(opts.Theme.Brand)))
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</footer>`)
	sb.WriteString("\n")

	return sb.String()
}
