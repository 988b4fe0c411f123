package render

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/internal/state"
	"github.com/angelmondragon/blindquote/pkg/enums"
)

type durationStub struct {
	mu       sync.Mutex
	variants []string
}

func (d *durationStub) ObserveRender(variant string, _ time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.variants = append(d.variants, variant)
}

func renderQuote() *quote.QuoteData {
	q := quote.NewDefault("")
	q.QuoteID = "RB-7"
	q.IssueDate = "2024-03-01"
	q.Customer = quote.Customer{Name: "Ada <Lovelace>", Email: "ada@example.com"}
	q.SetItems([]quote.LineItem{
		{ItemID: "item-1", Width: quote.Int(1000), Height: quote.Int(2000), FabricType: quote.String("B2"), Fabric: "Linen", Color: "Sand", LinePrice: quote.Float(100), Winder: quote.WinderHeavyDuty},
		{ItemID: "item-2", Width: quote.Int(800), Height: quote.Int(900), FabricType: quote.String("B3"), Fabric: "Light-filter Voile", Color: "White", LinePrice: quote.Float(50.5)},
		quote.NewItem(),
	})
	q.AddLFRows(1)
	return q
}

func TestRenderPrintable(t *testing.T) {
	t.Parallel()

	obs := &durationStub{}
	r := NewQuoteHTML(Branding{CompanyName: "Blinds & Co", ValidityDays: 14}, obs)
	html, err := r.Render(context.Background(), renderQuote(), state.DefaultUI(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"Blinds &amp; Co",
		"Ada &lt;Lovelace&gt;",
		"RB-7",
		"Valid until 2024-03-15",
		"<tr class=\"lf\">",
		"B3 (LF)",
		"HD winder x 1",
		"150.50",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
	if strings.Contains(html, "Ada <Lovelace>") {
		t.Fatalf("customer name was not escaped")
	}
	if strings.Contains(html, "Light-filter Voile") {
		t.Fatalf("expected LF prefix to be stripped from the fabric column")
	}
	if len(obs.variants) != 1 || obs.variants[0] != "print" {
		t.Fatalf("unexpected observed variants %v", obs.variants)
	}
}

func TestRenderAppliesDiscount(t *testing.T) {
	t.Parallel()

	ui := state.DefaultUI()
	ui.F1.DiscountPercentage = quote.Float(10)
	html, err := NewQuoteHTML(Branding{}, nil).Render(context.Background(), renderQuote(), ui, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "15.05 (10%)") {
		t.Fatalf("expected discount line in output")
	}
	if !strings.Contains(html, "135.45") {
		t.Fatalf("expected discounted total in output")
	}
}

func TestRenderOverrideWins(t *testing.T) {
	t.Parallel()

	override := &quote.QuoteData{QuoteID: "RB-OVERRIDE", Customer: quote.Customer{Name: "Grace"}}
	html, err := NewGmailHTML(Branding{CompanyName: "Blinds"}, nil).Render(context.Background(), renderQuote(), state.DefaultUI(), override)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "RB-OVERRIDE") || !strings.Contains(html, "Dear Grace") {
		t.Fatalf("expected override values in gmail output: %s", html)
	}
	if strings.Contains(html, "<!DOCTYPE html>") {
		t.Fatalf("gmail variant must be a fragment")
	}
}

func TestRenderNilQuote(t *testing.T) {
	t.Parallel()

	if _, err := NewQuoteHTML(Branding{}, nil).Render(context.Background(), nil, state.DefaultUI(), nil); err == nil {
		t.Fatalf("expected error for nil quote")
	}
}

func TestForVariant(t *testing.T) {
	t.Parallel()

	if _, err := ForVariant(enums.RenderVariantGmail, Branding{}, nil); err != nil {
		t.Fatalf("gmail: %v", err)
	}
	if _, err := ForVariant(enums.RenderVariant("fax"), Branding{}, nil); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}
