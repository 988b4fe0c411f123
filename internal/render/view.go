package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/blindquote/internal/batch"
	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/internal/snapshot"
	"github.com/angelmondragon/blindquote/internal/state"
)

const issueDateLayout = "2006-01-02"

// View is the template-ready projection of a quote.
type View struct {
	CompanyName string
	QuoteID     string
	IssueDate   string
	DueDate     string
	Customer    quote.Customer
	Rows        []RowView
	Accessories []AccessoryView
	Subtotal    string
	Discount    string
	Total       string
	HasDiscount bool
}

type RowView struct {
	Seq      int
	Size     string
	Type     string
	Fabric   string
	Color    string
	Location string
	Options  string
	Price    string
	IsLF     bool
}

type AccessoryView struct {
	Label string
	Qty   int
}

func buildView(q *quote.QuoteData, ui state.UIState, override *quote.QuoteData, branding Branding) View {
	v := View{
		CompanyName: branding.CompanyName,
		QuoteID:     q.QuoteID,
		IssueDate:   q.IssueDate,
		DueDate:     q.DueDate,
		Customer:    q.Customer,
	}
	if override != nil {
		applyOverride(&v, override)
	}
	if v.DueDate == "" && v.IssueDate != "" && branding.ValidityDays > 0 {
		if issued, err := time.Parse(issueDateLayout, v.IssueDate); err == nil {
			v.DueDate = issued.AddDate(0, 0, branding.ValidityDays).Format(issueDateLayout)
		}
	}

	subtotal := decimal.Zero
	for i, item := range q.Items() {
		if item.IsEmpty() {
			continue
		}
		row := RowView{
			Seq:      i + 1,
			Size:     fmt.Sprintf("%s x %s", dimension(item.Width), dimension(item.Height)),
			Type:     item.Type(),
			Fabric:   item.Fabric,
			Color:    item.Color,
			Location: item.Location,
			Options:  options(item),
			IsLF:     q.IsLF(i),
		}
		if item.LinePrice != nil {
			price := decimal.NewFromFloat(*item.LinePrice)
			row.Price = money(price)
			subtotal = subtotal.Add(price)
		}
		if row.IsLF && row.Type != "" {
			row.Type += " (LF)"
		}
		v.Rows = append(v.Rows, row)
	}

	v.Accessories = accessories(q, ui)
	v.Subtotal = money(subtotal)
	total := subtotal
	if pct := ui.F1.DiscountPercentage; pct != nil && *pct > 0 {
		discount := subtotal.Mul(decimal.NewFromFloat(*pct)).Div(decimal.NewFromInt(100)).Round(2)
		v.Discount = fmt.Sprintf("%s (%s%%)", money(discount), strconv.FormatFloat(*pct, 'f', -1, 64))
		v.HasDiscount = true
		total = subtotal.Sub(discount)
	}
	v.Total = money(total)
	return v
}

func applyOverride(v *View, o *quote.QuoteData) {
	if o.QuoteID != "" {
		v.QuoteID = o.QuoteID
	}
	if o.IssueDate != "" {
		v.IssueDate = o.IssueDate
	}
	if o.DueDate != "" {
		v.DueDate = o.DueDate
	}
	if o.Customer != (quote.Customer{}) {
		v.Customer = o.Customer
	}
}

func accessories(q *quote.QuoteData, ui state.UIState) []AccessoryView {
	counts := snapshot.Count(q.Items())
	in := state.InputsFrom(ui)

	remote1ch, remote16ch := 0, in.RemoteTotal
	if in.Remote1ch != nil {
		remote1ch = int(*in.Remote1ch)
		remote16ch = intOr(in.Remote16ch, 0)
	}
	combo := intOr(in.DualCombo, counts.DualPairs)

	candidates := []AccessoryView{
		{Label: "HD winder", Qty: counts.Winders},
		{Label: "Motor", Qty: counts.Motors},
		{Label: "Charger", Qty: in.ChargerCount},
		{Label: "Cord", Qty: in.CordCount},
		{Label: "Remote 1ch", Qty: remote1ch},
		{Label: "Remote 16ch", Qty: remote16ch},
		{Label: "Dual bracket combo", Qty: combo},
		{Label: "Dual bracket slim", Qty: intOr(in.DualSlim, 0)},
	}
	out := []AccessoryView{}
	for _, a := range candidates {
		if a.Qty > 0 {
			out = append(out, a)
		}
	}
	return out
}

func options(item quote.LineItem) string {
	parts := []string{}
	for _, p := range []string{item.Over, item.OI, item.LR, item.Dual, item.Winder, item.Motor} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if item.Chain != nil {
		parts = append(parts, "chain "+strconv.Itoa(*item.Chain))
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " / "
		}
		out += p
	}
	return out
}

func dimension(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func intOr(v *float64, fallback int) int {
	if v == nil {
		return fallback
	}
	return int(*v)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// stripLFPrefix shows the fabric name without the Light-Filter marker.
func stripLFPrefix(name string) string {
	if len(name) >= len(batch.LightFilterPrefix) && name[:len(batch.LightFilterPrefix)] == batch.LightFilterPrefix {
		return name[len(batch.LightFilterPrefix):]
	}
	return name
}
