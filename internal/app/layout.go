package app

import (
	"context"
	"io"

	"github.com/imgrooty/roi-calculator/internal/website"
	"github.com/imgrooty/roi-calculator/pkg/core"
	"github.com/imgrooty/roi-calculator/pkg/router"
)

// Layout wraps the view's first render into the full document. The
// request's CSP nonce is applied to the inline styles and the client
// script.
func Layout(cfg website.PageConfig) router.Layout {
	return func(content string) core.Renderer {
		return core.RendererFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, website.RenderDocument(cfg, router.GetCSPNonce(ctx), content))
			return err
		})
	}
}
