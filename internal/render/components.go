package render

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const pageStyle = `body{font-family:Helvetica,Arial,sans-serif;color:#222;margin:24px}` +
	`table{border-collapse:collapse;width:100%}th,td{border:1px solid #ccc;padding:4px 6px;font-size:12px}` +
	`th{background:#333;color:#fff}tr.lf td{background:#fde7ef}.num{text-align:right}.total{font-weight:bold}`

type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) cell(tag, class, value string) {
	if class != "" {
		h.raw(fmt.Sprintf("<%s class=\"%s\">", tag, class))
	} else {
		h.raw("<" + tag + ">")
	}
	h.text(value)
	h.raw("</" + tag + ">")
}

// QuotePage is the printable quote document.
func QuotePage(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>Quote ")
		h.text(v.QuoteID)
		h.raw("</title><style>" + pageStyle + "</style></head><body>")
		header(h, v)
		itemTable(h, v, true)
		accessoryList(h, v)
		totals(h, v)
		h.raw("</body></html>")
		return h.err
	})
}

// GmailPage is the inline-styled quote body pasted into an e-mail.
func GmailPage(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<div style=\"font-family:Arial,sans-serif;font-size:13px;color:#222\">")
		h.raw("<p>Dear ")
		h.text(nameOr(v.Customer.Name, "customer"))
		h.raw(",</p><p>Please find your quotation ")
		h.text(v.QuoteID)
		h.raw(" from ")
		h.text(v.CompanyName)
		h.raw(" below.</p>")
		itemTable(h, v, false)
		accessoryList(h, v)
		totals(h, v)
		if v.DueDate != "" {
			h.raw("<p>This quotation is valid until ")
			h.text(v.DueDate)
			h.raw(".</p>")
		}
		h.raw("</div>")
		return h.err
	})
}

func header(h *htmlWriter, v View) {
	h.raw("<header><h1>")
	h.text(v.CompanyName)
	h.raw("</h1><p>Quote ")
	h.text(v.QuoteID)
	h.raw("<br>Issued ")
	h.text(v.IssueDate)
	if v.DueDate != "" {
		h.raw("<br>Valid until ")
		h.text(v.DueDate)
	}
	h.raw("</p><address>")
	for _, line := range []string{v.Customer.Name, v.Customer.Address, v.Customer.Phone, v.Customer.Email} {
		if line != "" {
			h.text(line)
			h.raw("<br>")
		}
	}
	h.raw("</address></header>")
}

func itemTable(h *htmlWriter, v View, withOptions bool) {
	h.raw("<table><thead><tr><th>#</th><th>Location</th><th>Size (mm)</th><th>Type</th><th>Fabric</th><th>Color</th>")
	if withOptions {
		h.raw("<th>Options</th>")
	}
	h.raw("<th>Price</th></tr></thead><tbody>")
	for _, r := range v.Rows {
		if r.IsLF {
			h.raw("<tr class=\"lf\">")
		} else {
			h.raw("<tr>")
		}
		h.cell("td", "", fmt.Sprintf("%d", r.Seq))
		h.cell("td", "", r.Location)
		h.cell("td", "", r.Size)
		h.cell("td", "", r.Type)
		fabric := r.Fabric
		if r.IsLF {
			fabric = stripLFPrefix(fabric)
		}
		h.cell("td", "", fabric)
		h.cell("td", "", r.Color)
		if withOptions {
			h.cell("td", "", r.Options)
		}
		h.cell("td", "num", r.Price)
		h.raw("</tr>")
	}
	h.raw("</tbody></table>")
}

func accessoryList(h *htmlWriter, v View) {
	if len(v.Accessories) == 0 {
		return
	}
	h.raw("<h3>Accessories</h3><ul>")
	for _, a := range v.Accessories {
		h.raw("<li>")
		h.text(fmt.Sprintf("%s x %d", a.Label, a.Qty))
		h.raw("</li>")
	}
	h.raw("</ul>")
}

func totals(h *htmlWriter, v View) {
	h.raw("<table class=\"totals\"><tbody>")
	h.raw("<tr>")
	h.cell("td", "", "Subtotal")
	h.cell("td", "num", v.Subtotal)
	h.raw("</tr>")
	if v.HasDiscount {
		h.raw("<tr>")
		h.cell("td", "", "Discount")
		h.cell("td", "num", v.Discount)
		h.raw("</tr>")
	}
	h.raw("<tr>")
	h.cell("td", "total", "Total")
	h.cell("td", "num total", v.Total)
	h.raw("</tr></tbody></table>")
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
