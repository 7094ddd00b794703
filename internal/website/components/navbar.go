// Package components provides the UI sections of the calculator page.
// Each Render function returns an HTML fragment styled by the skin
// variables of the enclosing .skin element.
package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/imgrooty/roi-calculator/internal/website"
)

// NavbarOptions configures the navbar component.
type NavbarOptions struct {
	Theme website.Theme
	// Links are the in-page navigation links
	Links []website.NavLink
	// ShowToggle renders the skin switcher (live sessions only)
	ShowToggle bool
}

// DefaultNavLinks returns the header links of the page.
func DefaultNavLinks() []website.NavLink {
	return []website.NavLink{
		{Label: "Home", URL: "/"},
		{Label: "Features", URL: "#features"},
		{Label: "Calculator", URL: "#calculator"},
	}
}

// RenderNavbar generates the page header.
func RenderNavbar(opts NavbarOptions) string {
	var sb strings.Builder

	sb.WriteString(`<header class="navbar">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container navbar-inner">`)
	sb.WriteString("\n")

	sb.WriteString(`<a href="/" class="brand" aria-label="Home">`)
	sb.WriteString(website.Icon(website.IconDollar, 24))
	sb.WriteString(`<span>`)
	sb.WriteString(html.EscapeString(opts.Theme.Brand))
	sb.WriteString(`</span></a>`)
	sb.WriteString("\n")

	sb.WriteString(`<nav class="nav-links" aria-label="Main navigation">`)
	sb.WriteString("\n")
	for _, link := range opts.Links {
		sb.WriteString(fmt.Sprintf(`<a href="%s">%s</a>`,
			html.EscapeString(link.URL),
			html.EscapeString(link.Label)))
		sb.WriteString("\n")
	}
	if opts.ShowToggle {
		sb.WriteString(RenderThemeToggle(opts.Theme))
	}
	sb.WriteString(`</nav>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</header>`)
	sb.WriteString("\n")

	return sb.String()
}

// RenderThemeToggle renders one button per skin; the active one is marked
// pressed. Clicking sends set_theme with the skin name.
func RenderThemeToggle(active website.Theme) string {
	var sb strings.Builder

	sb.WriteString(`<div class="theme-toggle" role="group" aria-label="Theme">`)
	for _, t := range website.Themes() {
		class := "theme-option"
		pressed := "false"
		if t.Name == active.Name {
			class += " active"
			pressed = "true"
		}
		icon := website.IconSun
		if t.Name == website.ThemeCyberpunk {
			icon = website.IconTerminal
		}
		sb.WriteString(fmt.Sprintf(`<button type="button" id="theme-%s" class="%s" aria-pressed="%s" title="%s" lv-click="set_theme" lv-value-theme="%s">%s<span class="sr-only">%s</span></button>`,
			t.Name, class, pressed,
			html.EscapeString(t.Label), t.Name,
			website.Icon(icon, 16),
			html.EscapeString(t.Label)))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	return sb.String()
}
