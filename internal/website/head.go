package website

import (
	"fmt"
	"html"
	"strings"
)

// RenderHead generates the <head> section with SEO and Open Graph tags and
// the inline styles of both skins. Inline elements carry nonce so they
// pass the page's Content-Security-Policy.
func RenderHead(cfg PageConfig, nonce string) string {
	var sb strings.Builder

	themeColor := cfg.ThemeColor
	if themeColor == "" {
		themeColor = Corporate.Colors["primary"]
	}

	sb.WriteString("<head>\n")
	sb.WriteString(`<meta charset="UTF-8">` + "\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(cfg.Title)))

	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if len(cfg.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf(`<meta name="keywords" content="%s">`+"\n", html.EscapeString(strings.Join(cfg.Keywords, ", "))))
	}
	if cfg.URL != "" {
		sb.WriteString(fmt.Sprintf(`<link rel="canonical" href="%s">`+"\n", html.EscapeString(cfg.URL)))
	}
	sb.WriteString(fmt.Sprintf(`<meta name="theme-color" content="%s">`+"\n", html.EscapeString(themeColor)))

	sb.WriteString(renderOpenGraph(cfg))
	sb.WriteString(renderJSONLD(cfg, nonce))

	sb.WriteString(`<link rel="icon" href="data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='.9em' font-size='90'>$</text></svg>">` + "\n")

	sb.WriteString("<style" + nonceAttr(nonce) + ">\n")
	sb.WriteString(RenderStyles())
	sb.WriteString("\n</style>\n")

	for _, src := range cfg.Scripts {
		sb.WriteString(fmt.Sprintf(`<script src="%s" defer%s></script>`+"\n", html.EscapeString(src), nonceAttr(nonce)))
	}

	sb.WriteString("</head>\n")
	return sb.String()
}

// RenderDocument wraps body into a complete HTML document.
func RenderDocument(cfg PageConfig, nonce, body string) string {
	lang := cfg.Language
	if lang == "" {
		lang = "en"
	}

	var sb strings.Builder
	sb.Grow(len(body) + 16*1024)
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString(fmt.Sprintf(`<html lang="%s">`+"\n", html.EscapeString(lang)))
	sb.WriteString(RenderHead(cfg, nonce))
	sb.WriteString("<body>\n")
	sb.WriteString(body)
	sb.WriteString("\n</body>\n</html>\n")
	return sb.String()
}

func nonceAttr(nonce string) string {
	if nonce == "" {
		return ""
	}
	return ` nonce="` + html.EscapeString(nonce) + `"`
}

func renderOpenGraph(cfg PageConfig) string {
	var sb strings.Builder

	sb.WriteString(`<meta property="og:type" content="website">` + "\n")
	if cfg.Title != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:title" content="%s">`+"\n", html.EscapeString(cfg.Title)))
	}
	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if cfg.URL != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:url" content="%s">`+"\n", html.EscapeString(cfg.URL)))
	}
	return sb.String()
}

func renderJSONLD(cfg PageConfig, nonce string) string {
	jsonLD := fmt.Sprintf(`{
  "@context": "https://schema.org",
  "@type": "WebApplication",
  "name": %q,
  "description": %q,
  "url": %q,
  "applicationCategory": "FinanceApplication",
  "operatingSystem": "Any"
}`, cfg.Title, cfg.Description, cfg.URL)

	return fmt.Sprintf(`<script type="application/ld+json"%s>%s</script>`+"\n", nonceAttr(nonce), jsonLD)
}
