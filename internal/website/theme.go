package website

import "strings"

// Theme names.
const (
	ThemeCorporate = "corporate"
	ThemeCyberpunk = "cyberpunk"
)

// ChartPalette holds the colours of the result chart.
type ChartPalette struct {
	Revenue     string
	Cost        string
	Favorable   string
	Unfavorable string
	Axis        string
	Grid        string
}

// ROI returns the bar colour for an ROI value.
func (p ChartPalette) ROI(favorable bool) string {
	if favorable {
		return p.Favorable
	}
	return p.Unfavorable
}

// Theme is one skin of the page: its colour tokens, the copy that differs
// between skins and the chart colours. Components take a Theme and never
// branch on the skin name themselves.
type Theme struct {
	Name  string
	Label string

	// Colors are emitted as CSS custom properties under .skin-<Name>.
	Colors map[string]string
	Font   string

	Brand        string
	HeroTitle    string
	HeroAccent   string
	HeroSubtitle string

	// ChartBadge is shown over the chart when set.
	ChartBadge string
	// Bracketed wraps step labels and tile captions as [LABEL].
	Bracketed bool

	Chart ChartPalette
}

// Caption formats a label according to the skin.
func (t Theme) Caption(s string) string {
	if t.Bracketed {
		return "[" + strings.ToUpper(s) + "]"
	}
	return s
}

// Class returns the CSS class carrying the skin's variables.
func (t Theme) Class() string {
	return "skin skin-" + t.Name
}

// Corporate is the light skin.
var Corporate = Theme{
	Name:  ThemeCorporate,
	Label: "Corporate",
	Colors: map[string]string{
		"bg":        "#FFFFFF",
		"bgAlt":     "#F9FAFB",
		"bgHero":    "#EFF6FF",
		"card":      "#FFFFFF",
		"text":      "#111827",
		"textMuted": "#4B5563",
		"textDim":   "#6B7280",
		"primary":   "#2563EB",
		"primaryHi": "#1D4ED8",
		"onPrimary": "#FFFFFF",
		"success":   "#16A34A",
		"danger":    "#DC2626",
		"dangerBg":  "#FEF2F2",
		"border":    "#E5E7EB",
		"muted":     "#E5E7EB",
		"footer":    "#111827",
		"glow":      "transparent",
	},
	Font:         `system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif`,
	Brand:        "ROICalculator",
	HeroTitle:    "Calculate Your ",
	HeroAccent:   "Return on Investment",
	HeroSubtitle: "See how much you could save by implementing our solution. Use our calculator to get a personalized ROI estimate in seconds.",
	Chart: ChartPalette{
		Revenue:     "#2563EB",
		Cost:        "#6B7280",
		Favorable:   "#16A34A",
		Unfavorable: "#DC2626",
		Axis:        "#4B5563",
		Grid:        "#E5E7EB",
	},
}

// Cyberpunk is the dark neon skin.
var Cyberpunk = Theme{
	Name:  ThemeCyberpunk,
	Label: "Cyberpunk",
	Colors: map[string]string{
		"bg":        "#0A0A0F",
		"bgAlt":     "#12121A",
		"bgHero":    "#0D0D16",
		"card":      "#14141F",
		"text":      "#E6FFFF",
		"textMuted": "#9AE6E6",
		"textDim":   "#7A8A99",
		"primary":   "#00FFFF",
		"primaryHi": "#66FFFF",
		"onPrimary": "#0A0A0F",
		"success":   "#00FF00",
		"danger":    "#FF0040",
		"dangerBg":  "#2A0010",
		"border":    "rgba(0,255,255,0.25)",
		"muted":     "#1F2933",
		"footer":    "#050508",
		"glow":      "rgba(0,255,255,0.45)",
	},
	Font:         `'SF Mono', SFMono-Regular, ui-monospace, 'DejaVu Sans Mono', Menlo, Consolas, monospace`,
	Brand:        "ROI_CALC",
	HeroTitle:    "> Calculate Your ",
	HeroAccent:   "Return on Investment",
	HeroSubtitle: "Run the numbers on your next move. Feed the calculator your revenue and costs and get a personalized ROI estimate in seconds.",
	ChartBadge:   "CHART_ACTIVE",
	Bracketed:    true,
	Chart: ChartPalette{
		Revenue:     "#00FFFF",
		Cost:        "#FF8000",
		Favorable:   "#00FF00",
		Unfavorable: "#FF0040",
		Axis:        "#00FFFF",
		Grid:        "rgba(0, 255, 255, 0.2)",
	},
}

// Themes returns the available skins in toggle order.
func Themes() []Theme {
	return []Theme{Corporate, Cyberpunk}
}

// ThemeByName looks a skin up by name, case-insensitively.
func ThemeByName(name string) (Theme, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ThemeCorporate:
		return Corporate, true
	case ThemeCyberpunk:
		return Cyberpunk, true
	default:
		return Theme{}, false
	}
}

// ThemeOrDefault returns the named skin, or Corporate when it is unknown.
func ThemeOrDefault(name string) Theme {
	if t, ok := ThemeByName(name); ok {
		return t
	}
	return Corporate
}
