// Package render produces the printable and e-mail HTML versions of a quote.
package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/a-h/templ"

	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/internal/state"
	"github.com/angelmondragon/blindquote/pkg/enums"
)

// Renderer turns a quote into an HTML document. override carries quote-meta
// values that take precedence over q, and may be nil.
type Renderer interface {
	Render(ctx context.Context, q *quote.QuoteData, ui state.UIState, override *quote.QuoteData) (string, error)
}

// DurationObserver records how long a render took.
type DurationObserver interface {
	ObserveRender(variant string, d time.Duration)
}

// Branding is the seller information printed on every quote.
type Branding struct {
	CompanyName  string
	ValidityDays int
}

type templRenderer struct {
	variant  enums.RenderVariant
	branding Branding
	observer DurationObserver
}

// NewQuoteHTML returns the printable quote renderer.
func NewQuoteHTML(branding Branding, observer DurationObserver) Renderer {
	return &templRenderer{variant: enums.RenderVariantPrint, branding: branding, observer: observer}
}

// NewGmailHTML returns the e-mail body renderer.
func NewGmailHTML(branding Branding, observer DurationObserver) Renderer {
	return &templRenderer{variant: enums.RenderVariantGmail, branding: branding, observer: observer}
}

// ForVariant picks the renderer for a variant.
func ForVariant(variant enums.RenderVariant, branding Branding, observer DurationObserver) (Renderer, error) {
	switch variant {
	case enums.RenderVariantPrint:
		return NewQuoteHTML(branding, observer), nil
	case enums.RenderVariantGmail:
		return NewGmailHTML(branding, observer), nil
	}
	return nil, fmt.Errorf("unsupported render variant %q", variant)
}

func (r *templRenderer) Render(ctx context.Context, q *quote.QuoteData, ui state.UIState, override *quote.QuoteData) (string, error) {
	if q == nil {
		return "", fmt.Errorf("quote data required")
	}
	start := time.Now()
	view := buildView(q, ui, override, r.branding)

	var component templ.Component
	if r.variant == enums.RenderVariantGmail {
		component = GmailPage(view)
	} else {
		component = QuotePage(view)
	}

	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("render %s quote: %w", r.variant, err)
	}
	if r.observer != nil {
		r.observer.ObserveRender(r.variant.String(), time.Since(start))
	}
	return buf.String(), nil
}
