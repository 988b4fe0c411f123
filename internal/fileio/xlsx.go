package fileio

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/pkg/enums"
)

const sheetName = "Quote"

var xlsxHeaders = []string{"#", "Location", "Width", "Height", "Type", "Fabric", "Color", "Over", "O/I", "L/R", "Dual", "Chain", "Winder", "Motor", "Price"}

func (s *service) ExportToXLSX(q *quote.QuoteData) Result {
	if q == nil {
		return failure(msgNoQuote)
	}
	if q.ActiveProduct() == nil {
		return failure(msgNoItemsData)
	}
	body, err := s.buildWorkbook(q)
	if err != nil {
		return s.exportFailed(enums.ExportFormatXLSX, err)
	}
	return s.success(q, enums.ExportFormatXLSX, body, msgExported)
}

func (s *service) buildWorkbook(q *quote.QuoteData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(xlsxHeaders))
	if err != nil {
		return nil, fmt.Errorf("last column: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", "A", 5); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", lastCol, 12); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "F", "F", 24); err != nil {
		return nil, fmt.Errorf("set col width: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	rowStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}
	// LF rows keep the pink marking used on screen.
	lfStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#FDE7EF"}, Pattern: 1},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create lf style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	title := s.companyName
	if title == "" {
		title = "Quotation"
	}
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)
	f.SetCellValue(sheetName, "A2", "Quote: "+q.QuoteID)
	f.SetCellValue(sheetName, "A3", "Customer: "+q.Customer.Name)
	f.SetCellValue(sheetName, "F2", "Issued: "+q.IssueDate)
	f.SetCellValue(sheetName, "F3", "Due: "+q.DueDate)

	const headerRow = 5
	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)

	row := headerRow + 1
	total := 0.0
	for i, item := range q.Items() {
		if item.IsEmpty() {
			continue
		}
		values := []any{
			i + 1,
			sanitizeExcelCell(item.Location),
			intCell(item.Width),
			intCell(item.Height),
			item.Type(),
			sanitizeExcelCell(item.Fabric),
			sanitizeExcelCell(item.Color),
			item.Over,
			item.OI,
			item.LR,
			item.Dual,
			intCell(item.Chain),
			item.Winder,
			item.Motor,
			"",
		}
		if item.LinePrice != nil {
			values[len(values)-1] = *item.LinePrice
			total += *item.LinePrice
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
		style := rowStyle
		if q.IsLF(i) {
			style = lfStyle
		}
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), style)
		row++
	}

	row++
	priceCol := lastCol
	labelCol, _ := excelize.ColumnNumberToName(len(xlsxHeaders) - 1)
	f.SetCellValue(sheetName, fmt.Sprintf("%s%d", labelCol, row), "Total:")
	f.SetCellValue(sheetName, fmt.Sprintf("%s%d", priceCol, row), total)
	f.SetCellStyle(sheetName, fmt.Sprintf("%s%d", labelCol, row), fmt.Sprintf("%s%d", priceCol, row), totalStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func intCell(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

// sanitizeExcelCell prefixes values that a spreadsheet would evaluate as a
// formula.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
