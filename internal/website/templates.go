// Package website renders the calculator's landing page: document head,
// styles for both skins and the shared page types. Markup is built with
// strings.Builder and has no runtime dependencies.
package website

import "strconv"

// PageConfig defines the document metadata of a page.
type PageConfig struct {
	// Title is the page title (shown in browser tab and search results)
	Title string
	// Description is the meta description for SEO
	Description string
	// URL is the canonical URL of the page
	URL string
	// Keywords are SEO keywords for the page
	Keywords []string
	// Language is the page language (default: "en")
	Language string
	// ThemeColor is the mobile browser theme color
	ThemeColor string

	// Scripts are loaded with the request nonce, deferred.
	Scripts []string
}

// Feature represents a feature card in the features section.
type Feature struct {
	// Icon is the inner markup of a 24x24 stroke SVG
	Icon        string
	Title       string
	Description string
}

// NavLink represents a navigation link.
type NavLink struct {
	Label string
	URL   string
}

// FooterColumn is one titled list of footer entries. Entries without a
// URL are rendered as plain text.
type FooterColumn struct {
	Title string
	Links []NavLink
}

// DefaultPageConfig returns the metadata of the calculator page.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Title:       "ROI Calculator",
		Description: "Calculate your monthly return on investment from revenue and cost in seconds.",
		Keywords:    []string{"roi", "return on investment", "calculator"},
		Language:    "en",
		ThemeColor:  Corporate.Colors["primary"],
		Scripts:     []string{"/_live/roicalc.js"},
	}
}

// Icons used across the page, as SVG inner markup.
const (
	IconDollar   = `<circle cx="12" cy="12" r="10"/><path d="M16 8h-6a2 2 0 1 0 0 4h4a2 2 0 1 1 0 4H8"/><path d="M12 18V6"/>`
	IconCheck    = `<path d="M20 6 9 17l-5-5"/>`
	IconCircleOK = `<path d="M22 11.08V12a10 10 0 1 1-5.93-9.14"/><polyline points="22 4 12 14.01 9 11.01"/>`
	IconAccuracy = `<path d="M12 2v20M17 5H9.5a3.5 3.5 0 0 0 0 7h5a3.5 3.5 0 0 1 0 7H6"/>`
	IconWallet   = `<path d="M21 12V7H5a2 2 0 0 1 0-4h14v4"/><path d="M3 5v14a2 2 0 0 0 2 2h16v-5"/><path d="M18 12a2 2 0 0 0 0 4h4v-4Z"/>`
	IconBook     = `<path d="M2 3h6a4 4 0 0 1 4 4v14a3 3 0 0 0-3-3H2z"/><path d="M22 3h-6a4 4 0 0 0-4 4v14a3 3 0 0 1 3-3h7z"/>`
	IconSun      = `<circle cx="12" cy="12" r="4"/><path d="M12 2v2M12 20v2M4.93 4.93l1.41 1.41M17.66 17.66l1.41 1.41M2 12h2M20 12h2M6.34 17.66l-1.41 1.41M19.07 4.93l-1.41 1.41"/>`
	IconTerminal = `<polyline points="4 17 10 11 4 5"/><line x1="12" y1="19" x2="20" y2="19"/>`
)

// Icon wraps SVG inner markup in a stroke icon of the given size.
func Icon(inner string, size int) string {
	return svgOpen(size) + inner + `</svg>`
}

func svgOpen(size int) string {
	s := strconv.Itoa(size)
	return `<svg xmlns="http://www.w3.org/2000/svg" width="` + s + `" height="` + s +
		`" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">`
}
