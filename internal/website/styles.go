package website

import (
	"fmt"
	"sort"
	"strings"
)

// Breakpoints for responsive design (mobile-first: min-width)
var Breakpoints = map[string]string{
	"md": "768px",
	"lg": "1024px",
}

// StyleOption allows customizing the generated CSS
type StyleOption func(*styleConfig)

type styleConfig struct {
	themes            []Theme
	includeReset      bool
	includeAnimations bool
}

// WithThemes replaces the skins emitted as variable blocks.
func WithThemes(themes ...Theme) StyleOption {
	return func(cfg *styleConfig) {
		cfg.themes = themes
	}
}

// WithReset includes a CSS reset
func WithReset(include bool) StyleOption {
	return func(cfg *styleConfig) {
		cfg.includeReset = include
	}
}

// WithAnimations includes animation definitions
func WithAnimations(include bool) StyleOption {
	return func(cfg *styleConfig) {
		cfg.includeAnimations = include
	}
}

// RenderStyles generates the complete CSS for the page. Every skin gets a
// .skin-<name> block of custom properties; the rules below only refer to
// those properties, so switching the class on a subtree reskins it.
func RenderStyles(opts ...StyleOption) string {
	cfg := &styleConfig{
		themes:            Themes(),
		includeReset:      true,
		includeAnimations: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var sb strings.Builder

	if cfg.includeReset {
		sb.WriteString(cssReset())
	}
	for _, t := range cfg.themes {
		sb.WriteString(cssThemeVariables(t))
	}
	sb.WriteString(cssBase())
	sb.WriteString(cssLayout())
	sb.WriteString(cssNavbar())
	sb.WriteString(cssButtons())
	sb.WriteString(cssCards())
	sb.WriteString(cssWizard())
	sb.WriteString(cssResult())
	sb.WriteString(cssCyberpunk())
	if cfg.includeAnimations {
		sb.WriteString(cssAnimations())
	}
	sb.WriteString(cssAccessibility())
	sb.WriteString(cssResponsive())

	return sb.String()
}

func cssReset() string {
	return `
*,*::before,*::after{box-sizing:border-box;margin:0;padding:0}
html{-webkit-text-size-adjust:100%;scroll-behavior:smooth}
body{min-height:100vh;line-height:1.5;-webkit-font-smoothing:antialiased}
img,svg{display:block;max-width:100%}
input,button{font:inherit}
a{color:inherit;text-decoration:none}
ul{list-style:none}
`
}

func cssThemeVariables(t Theme) string {
	keys := make([]string, 0, len(t.Colors))
	for k := range t.Colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n.skin-%s{", t.Name))
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("--color-%s:%s;", k, t.Colors[k]))
	}
	sb.WriteString(fmt.Sprintf("--font:%s;", t.Font))
	sb.WriteString("}\n")
	sb.WriteString(fmt.Sprintf("body:has(.skin-%s){background:%s}\n", t.Name, t.Colors["bg"]))
	return sb.String()
}

func cssBase() string {
	return `
.skin{font-family:var(--font);color:var(--color-text);background:var(--color-bg)}
h1,h2,h3{line-height:1.2;color:var(--color-text)}
h1{font-size:2.25rem;font-weight:800}
h2{font-size:1.875rem;font-weight:700}
h3{font-size:1.25rem;font-weight:600}
p{color:var(--color-textMuted)}
.accent{color:var(--color-primary)}
.muted{color:var(--color-textMuted)}
.dim{color:var(--color-textDim)}
`
}

func cssLayout() string {
	return `
.container{width:100%;max-width:1120px;margin:0 auto;padding:0 1rem}
.container-narrow{max-width:768px}
.section{padding:4rem 0}
.section-alt{background:var(--color-bgAlt)}
.section-title{text-align:center;margin-bottom:3rem}
.section-lead{text-align:center;margin:-2.5rem 0 2rem}
.text-center{text-align:center}
.hero{padding:5rem 0;background:linear-gradient(180deg,var(--color-bgHero),var(--color-bg))}
.hero-title{margin-bottom:1rem}
.hero-subtitle{font-size:1.25rem;max-width:48rem;margin:0 auto 3rem}
.hero-grid{display:grid;gap:2rem;align-items:center}
.grid-3{display:grid;gap:2rem}
.footer-grid{display:grid;gap:2rem}
`
}

func cssNavbar() string {
	return `
.navbar{border-bottom:1px solid var(--color-border);background:var(--color-bg)}
.navbar-inner{display:flex;justify-content:space-between;align-items:center;padding:1rem}
.brand{display:flex;align-items:center;gap:.5rem;font-weight:700;font-size:1.25rem;color:var(--color-text)}
.brand svg{color:var(--color-primary)}
.nav-links{display:flex;gap:1.5rem;align-items:center}
.nav-links a{color:var(--color-textMuted);transition:color .2s}
.nav-links a:hover{color:var(--color-primary)}
.theme-toggle{display:flex;gap:.25rem;padding:.25rem;border:1px solid var(--color-border);border-radius:.5rem}
.theme-option{display:flex;align-items:center;justify-content:center;width:2rem;height:2rem;border:0;border-radius:.375rem;background:transparent;color:var(--color-textDim);cursor:pointer}
.theme-option:hover{color:var(--color-primary)}
.theme-option.active{background:var(--color-muted);color:var(--color-primary)}
`
}

func cssButtons() string {
	return `
.btn{display:inline-flex;align-items:center;gap:.5rem;padding:.75rem 1.5rem;border-radius:.5rem;font-weight:500;border:1px solid transparent;cursor:pointer;transition:background .2s,box-shadow .2s}
.btn-primary{background:var(--color-primary);color:var(--color-onPrimary)}
.btn-primary:hover{background:var(--color-primaryHi)}
.btn-outline{background:transparent;border-color:var(--color-border);color:var(--color-textMuted)}
.btn-outline:hover{background:var(--color-bgAlt)}
.btn-inverse{background:var(--color-onPrimary);color:var(--color-primary)}
.btn[disabled]{opacity:.75;cursor:not-allowed}
`
}

func cssCards() string {
	return `
.card{background:var(--color-card);border:1px solid var(--color-border);border-radius:.75rem;padding:1.5rem;box-shadow:0 4px 12px rgba(0,0,0,.06)}
.feature-icon{display:flex;align-items:center;justify-content:center;width:3rem;height:3rem;border-radius:9999px;background:var(--color-bgHero);color:var(--color-primary);margin-bottom:1rem}
.feature-card h3{margin-bottom:.5rem}
.why-list{display:flex;flex-direction:column;gap:.75rem;margin:1rem 0 1.5rem}
.why-list li{display:flex;gap:.5rem;align-items:flex-start}
.why-list svg{color:var(--color-success);flex-shrink:0;margin-top:.2rem}
.hero-art{border-radius:.75rem;background:var(--color-bgAlt);border:1px solid var(--color-border);padding:1.5rem}
.cta{background:var(--color-primary);text-align:center;padding:4rem 0}
.cta h2,.cta p{color:var(--color-onPrimary)}
.cta p{font-size:1.25rem;max-width:42rem;margin:1rem auto 2rem}
.footer{background:var(--color-footer);color:#F9FAFB;padding:3rem 0}
.footer h3{color:#F9FAFB;margin-bottom:1rem;font-size:1.125rem}
.footer li{margin-bottom:.5rem;color:#9CA3AF}
.footer a:hover{color:#FFFFFF}
.footer .brand{color:#F9FAFB;margin-bottom:1rem}
.footer-bottom{border-top:1px solid #1F2937;margin-top:2rem;padding-top:2rem;text-align:center;color:#6B7280}
`
}

func cssWizard() string {
	return `
.calc-card{background:var(--color-card);border:1px solid var(--color-border);border-radius:.75rem;overflow:hidden;box-shadow:0 10px 25px rgba(0,0,0,.08)}
.calc-body{padding:2rem}
.steps{display:flex;justify-content:space-between;margin-bottom:1rem}
.step{display:flex;flex-direction:column;align-items:center;gap:.5rem;font-size:.875rem;color:var(--color-textMuted)}
.step-dot{display:flex;align-items:center;justify-content:center;width:2.5rem;height:2.5rem;border-radius:9999px;background:var(--color-muted);color:var(--color-textDim);font-weight:600}
.step.current .step-dot{background:var(--color-primary);color:var(--color-onPrimary)}
.step.done .step-dot{background:var(--color-success);color:#FFFFFF}
.wizard-progress{width:100%;height:.5rem;margin-bottom:2rem;border:0;border-radius:9999px;overflow:hidden;appearance:none;background:var(--color-muted)}
.wizard-progress::-webkit-progress-bar{background:var(--color-muted)}
.wizard-progress::-webkit-progress-value{background:var(--color-primary);transition:width .3s}
.wizard-progress::-moz-progress-bar{background:var(--color-primary)}
.step-heading{font-size:1.5rem;font-weight:700;margin-bottom:1rem}
.field-label{display:block;font-size:.875rem;font-weight:500;margin-bottom:.5rem;color:var(--color-textMuted)}
.input-wrap{position:relative}
.input-prefix{position:absolute;left:.75rem;top:50%;transform:translateY(-50%);color:var(--color-textDim);pointer-events:none}
.input{width:100%;padding:.75rem 1rem;border:1px solid var(--color-border);border-radius:.5rem;background:var(--color-bg);color:var(--color-text)}
.input:focus{outline:2px solid var(--color-primary);outline-offset:1px}
.input.prefixed{padding-left:2rem}
.input.has-error{border-color:var(--color-danger)}
.field-error{margin-top:.25rem;font-size:.875rem;color:var(--color-danger)}
.field-hint{margin-top:1rem;font-size:.875rem;font-style:italic;color:var(--color-textDim)}
.wizard-actions{display:flex;justify-content:space-between;margin-top:2rem}
.wizard-actions .next{margin-left:auto}
.banner-error{background:var(--color-dangerBg);border-top:1px solid var(--color-danger);padding:1rem}
.banner-error p{color:var(--color-danger);font-size:.875rem}
.spinner{width:1rem;height:1rem;border:2px solid currentColor;border-right-color:transparent;border-radius:9999px}
`
}

func cssResult() string {
	return `
.result{display:flex;flex-direction:column;gap:2rem}
.result-icon{display:inline-flex;align-items:center;justify-content:center;width:4rem;height:4rem;border-radius:9999px;background:var(--color-bgHero);color:var(--color-success);margin-bottom:1rem}
.result-panel{background:var(--color-bgAlt);border-radius:.5rem;padding:1.5rem}
.tiles{display:grid;grid-template-columns:repeat(3,1fr);gap:1rem;margin-bottom:1.5rem}
.tile{text-align:center}
.tile-label{font-size:.875rem;color:var(--color-textDim);margin-bottom:.25rem}
.tile-value{font-size:1.25rem;font-weight:600;color:var(--color-text)}
.tile-value.favorable{color:var(--color-success)}
.tile-value.unfavorable{color:var(--color-danger)}
.chart{position:relative;width:100%}
.chart svg{width:100%;height:auto}
.chart-badge{position:absolute;top:.5rem;left:.5rem;display:flex;align-items:center;gap:.5rem;font-size:.75rem;color:var(--color-success)}
.chart-badge::before{content:"";width:.5rem;height:.5rem;border-radius:9999px;background:var(--color-success)}
`
}

func cssCyberpunk() string {
	return `
.skin-cyberpunk .card,.skin-cyberpunk .calc-card{box-shadow:0 0 16px var(--color-glow)}
.skin-cyberpunk .btn-primary{box-shadow:0 0 10px var(--color-glow)}
.skin-cyberpunk h1,.skin-cyberpunk h2{text-shadow:0 0 8px var(--color-glow)}
.skin-cyberpunk .hero{background:linear-gradient(180deg,#0D0D16,#0A0A0F)}
.skin-cyberpunk .chart svg rect.bar{filter:drop-shadow(0 0 6px currentColor)}
`
}

func cssAnimations() string {
	return `
@keyframes fadeIn{from{opacity:0;transform:translateY(8px)}to{opacity:1;transform:none}}
@keyframes spin{to{transform:rotate(360deg)}}
@keyframes pulse{50%{opacity:.4}}
.animate-fade-in{animation:fadeIn .4s ease-out both}
.spinner{animation:spin 1s linear infinite}
.chart-badge::before{animation:pulse 1.5s ease-in-out infinite}
`
}

func cssAccessibility() string {
	return `
.sr-only{position:absolute;width:1px;height:1px;overflow:hidden;clip:rect(0,0,0,0);white-space:nowrap}
:focus-visible{outline:2px solid var(--color-primary);outline-offset:2px}
@media (prefers-reduced-motion:reduce){*{animation:none!important;transition:none!important}}
`
}

func cssResponsive() string {
	return fmt.Sprintf(`
@media (min-width:%s){
h1{font-size:3rem}
.hero-grid{grid-template-columns:1fr 1fr}
.grid-3{grid-template-columns:repeat(3,1fr)}
.footer-grid{grid-template-columns:repeat(4,1fr)}
}
@media (max-width:%s){
.nav-links a{display:none}
.tiles{grid-template-columns:1fr}
}
`, Breakpoints["md"], Breakpoints["md"])
}
