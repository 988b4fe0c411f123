package fileio

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/pkg/enums"
)

type pdfColumn struct {
	title string
	size  int
	align align.Type
	value func(i int, item quote.LineItem) string
}

var pdfColumns = []pdfColumn{
	{"#", 1, align.Center, func(i int, _ quote.LineItem) string { return strconv.Itoa(i + 1) }},
	{"Location", 2, align.Left, func(_ int, it quote.LineItem) string { return it.Location }},
	{"W x H", 2, align.Center, func(_ int, it quote.LineItem) string { return dims(it) }},
	{"Type", 1, align.Center, func(_ int, it quote.LineItem) string { return it.Type() }},
	{"Fabric", 3, align.Left, func(_ int, it quote.LineItem) string { return it.Fabric }},
	{"Color", 2, align.Left, func(_ int, it quote.LineItem) string { return it.Color }},
	{"Price", 1, align.Right, func(_ int, it quote.LineItem) string { return price(it.LinePrice) }},
}

func (s *service) ExportToPDF(q *quote.QuoteData) Result {
	if q == nil {
		return failure(msgNoQuote)
	}
	if q.ActiveProduct() == nil {
		return failure(msgNoItemsData)
	}
	body, err := s.buildPDF(q)
	if err != nil {
		return s.exportFailed(enums.ExportFormatPDF, err)
	}
	return s.success(q, enums.ExportFormatPDF, body, msgExported)
}

func (s *service) buildPDF(q *quote.QuoteData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)
	s.addPDFHeader(m, q)
	addPDFTableHeader(m)

	total := 0.0
	for i, item := range q.Items() {
		if item.IsEmpty() {
			continue
		}
		addPDFRow(m, i, item, q.IsLF(i))
		if item.LinePrice != nil {
			total += *item.LinePrice
		}
	}

	m.AddRows(row.New(4))
	m.AddRows(row.New(8).Add(
		col.New(10).Add(text.New("Total", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New(fmt.Sprintf("%.2f", total), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func (s *service) addPDFHeader(m core.Maroto, q *quote.QuoteData) {
	title := s.companyName
	if title == "" {
		title = "Quotation"
	}
	grey := &props.Color{Red: 80, Green: 80, Blue: 80}
	m.AddRows(row.New(12).Add(
		col.New(12).Add(text.New(title, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center})),
	))
	m.AddRows(row.New(8).Add(
		col.New(6).Add(text.New("Quote: "+q.QuoteID, props.Text{Size: 9, Align: align.Left, Color: grey})),
		col.New(6).Add(text.New("Issued: "+q.IssueDate, props.Text{Size: 9, Align: align.Right, Color: grey})),
	))
	if q.Customer.Name != "" {
		m.AddRows(row.New(6).Add(
			col.New(12).Add(text.New("Customer: "+q.Customer.Name, props.Text{Size: 9, Align: align.Left, Color: grey})),
		))
	}
	m.AddRows(row.New(4))
}

func addPDFTableHeader(m core.Maroto) {
	headerCell := props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}
	cols := make([]core.Col, 0, len(pdfColumns))
	for _, c := range pdfColumns {
		cols = append(cols, col.New(c.size).Add(text.New(c.title, props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Align: align.Center,
			Color: &props.Color{Red: 255, Green: 255, Blue: 255},
		})).WithStyle(&headerCell))
	}
	m.AddRows(row.New(8).Add(cols...))
}

func addPDFRow(m core.Maroto, i int, item quote.LineItem, isLF bool) {
	var cellStyle *props.Cell
	if isLF {
		cellStyle = &props.Cell{BackgroundColor: &props.Color{Red: 253, Green: 231, Blue: 239}}
	}
	cols := make([]core.Col, 0, len(pdfColumns))
	for _, c := range pdfColumns {
		cc := col.New(c.size).Add(text.New(c.value(i, item), props.Text{Size: 8, Align: c.align}))
		if cellStyle != nil {
			cc = cc.WithStyle(cellStyle)
		}
		cols = append(cols, cc)
	}
	m.AddRows(row.New(7).Add(cols...))
}

func dims(item quote.LineItem) string {
	w, h := "-", "-"
	if item.Width != nil {
		w = strconv.Itoa(*item.Width)
	}
	if item.Height != nil {
		h = strconv.Itoa(*item.Height)
	}
	return w + " x " + h
}

func price(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}
