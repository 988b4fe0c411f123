package fileio

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/pkg/enums"
)

type decodeStub struct {
	calls []string
}

func (d *decodeStub) ObserveDecode(format, outcome string) {
	d.calls = append(d.calls, format+"/"+outcome)
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
}

func exportQuote() *quote.QuoteData {
	q := quote.NewDefault("")
	q.QuoteID = "RB-42"
	q.IssueDate = "2024-05-06"
	q.Customer = quote.Customer{Name: "=HYPERLINK(evil)"}
	q.SetItems([]quote.LineItem{
		{ItemID: "item-1", Width: quote.Int(1000), Height: quote.Int(1500), FabricType: quote.String("B2"), Fabric: "Linen", Color: "Sand", LinePrice: quote.Float(120)},
		{ItemID: "item-2", Width: quote.Int(800), Height: quote.Int(900), FabricType: quote.String("B3"), Fabric: "Light-filter Voile", Color: "White", LinePrice: quote.Float(80.5)},
		quote.NewItem(),
	})
	q.AddLFRows(1)
	q.F1Snapshot.Set("discountPercentage", 5)
	return q
}

func TestFileNameFallsBackToTimestamp(t *testing.T) {
	t.Parallel()

	svc := NewService(Options{Now: fixedNow})
	q := exportQuote()
	q.QuoteID = ""
	res := svc.SaveToJSON(q)
	require.True(t, res.Success)
	assert.Equal(t, "quote-20240506-070809.json", res.File.Name)
	assert.Equal(t, "application/json", res.File.ContentType)
	assert.Contains(t, res.Message, "quote-20240506-070809.json")
}

func TestSaveToJSONPrunesStaleLFRows(t *testing.T) {
	t.Parallel()

	q := exportQuote()
	q.UIMetadata.LFModifiedRowIndexes = []int{1, 7}

	res := NewService(Options{}).SaveToJSON(q)
	require.True(t, res.Success)
	assert.Equal(t, "quote-RB-42.json", res.File.Name)

	var saved quote.QuoteData
	require.NoError(t, json.Unmarshal(res.File.Body, &saved))
	assert.Equal(t, []int{1}, saved.LFRows())
	assert.Equal(t, []int{1, 7}, q.UIMetadata.LFModifiedRowIndexes)
}

func TestExportCSVUsesCodec(t *testing.T) {
	t.Parallel()

	res := NewService(Options{}).ExportToCSV(exportQuote())
	require.True(t, res.Success)
	assert.Equal(t, "quote-RB-42.csv", res.File.Name)
	body := string(res.File.Body)
	assert.Contains(t, body, "#,Width,Height")
	assert.Contains(t, body, "120.00")
}

func TestExportCSVWithoutProduct(t *testing.T) {
	t.Parallel()

	q := exportQuote()
	q.CurrentProduct = "missing"
	res := NewService(Options{}).ExportToCSV(q)
	assert.False(t, res.Success)
	assert.Nil(t, res.File)
}

func TestExportXLSX(t *testing.T) {
	t.Parallel()

	res := NewService(Options{CompanyName: "Blinds"}).ExportToXLSX(exportQuote())
	require.True(t, res.Success, res.Message)

	f, err := excelize.OpenReader(bytes.NewReader(res.File.Body))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Quote"}, f.GetSheetList())
	title, err := f.GetCellValue("Quote", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Blinds", title)

	header, err := f.GetCellValue("Quote", "F5")
	require.NoError(t, err)
	assert.Equal(t, "Fabric", header)

	fabric, err := f.GetCellValue("Quote", "F7")
	require.NoError(t, err)
	assert.Equal(t, "Light-filter Voile", fabric)

	empty, err := f.GetCellValue("Quote", "A8")
	require.NoError(t, err)
	assert.Empty(t, empty)

	customer, err := f.GetCellValue("Quote", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Customer: =HYPERLINK(evil)", customer)
}

func TestSanitizeExcelCell(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "'=1+1", sanitizeExcelCell("=1+1"))
	assert.Equal(t, "'@cmd", sanitizeExcelCell("@cmd"))
	assert.Equal(t, "Linen", sanitizeExcelCell("Linen"))
	assert.Equal(t, "", sanitizeExcelCell(""))
}

func TestExportPDF(t *testing.T) {
	t.Parallel()

	res := NewService(Options{CompanyName: "Blinds"}).ExportToPDF(exportQuote())
	require.True(t, res.Success, res.Message)
	require.Greater(t, len(res.File.Body), 5)
	assert.Equal(t, "%PDF-", string(res.File.Body[:5]))
	assert.Equal(t, "application/pdf", res.File.ContentType)
}

func TestExportDispatch(t *testing.T) {
	t.Parallel()

	svc := NewService(Options{})
	res := svc.Export(enums.ExportFormatCSV, exportQuote())
	require.True(t, res.Success)
	assert.True(t, strings.HasSuffix(res.File.Name, ".csv"))

	res = svc.Export(enums.ExportFormat("doc"), exportQuote())
	assert.False(t, res.Success)
}

func TestParseFileContentJSON(t *testing.T) {
	t.Parallel()

	q := exportQuote()
	q.Products[q.CurrentProduct].Items[0].ItemID = ""
	q.UIMetadata.LFModifiedRowIndexes = []int{1, 9}
	raw, err := json.Marshal(q)
	require.NoError(t, err)

	res := NewService(Options{}).ParseFileContent("saved.JSON", string(raw))
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Successfully loaded quote from saved.JSON.", res.Message)
	assert.Equal(t, []int{1}, res.Data.LFRows())
	assert.NotEmpty(t, res.Data.Items()[0].ItemID)
	assert.Equal(t, "RB-42", res.Data.QuoteID)
}

func TestParseFileContentJSONWithoutSnapshot(t *testing.T) {
	t.Parallel()

	raw := `{"currentProduct":"rollerBlind","products":{"rollerBlind":{"items":[{"itemId":"a","width":1000,"height":1200}]}}}`
	res := NewService(Options{}).ParseFileContent("q.json", raw)
	require.True(t, res.Success, res.Message)
	assert.Nil(t, res.Data.F1Snapshot)
}

func TestParseFileContentRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	svc := NewService(Options{})
	assert.False(t, svc.ParseFileContent("q.json", "{not json").Success)
	assert.False(t, svc.ParseFileContent("q.json", `{"customer":{}}`).Success)
}

func TestParseFileContentCSVRoundTrip(t *testing.T) {
	t.Parallel()

	obs := &decodeStub{}
	svc := NewService(Options{Observer: obs})
	exported := svc.ExportToCSV(exportQuote())
	require.True(t, exported.Success)

	res := svc.ParseFileContent("quote.csv", string(exported.File.Body))
	require.True(t, res.Success, res.Message)
	assert.Equal(t, quote.DefaultProduct, res.Data.CurrentProduct)
	require.Len(t, res.Data.Items(), 2)
	assert.Equal(t, []int{1}, res.Data.LFRows())
	assert.Equal(t, "RB-42", res.Data.QuoteID)
	v, ok := res.Data.F1Snapshot.Get("discountPercentage")
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)
	assert.Equal(t, []string{"current/ok"}, obs.calls)
}

func TestParseFileContentIgnoresByteOrderMark(t *testing.T) {
	t.Parallel()

	svc := NewService(Options{})
	exported := svc.ExportToCSV(exportQuote())
	require.True(t, exported.Success)

	res := svc.ParseFileContent("quote.csv", "\ufeff"+string(exported.File.Body))
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "RB-42", res.Data.QuoteID)

	raw, err := json.Marshal(exportQuote())
	require.NoError(t, err)
	res = svc.ParseFileContent("quote.json", "\ufeff"+string(raw))
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "RB-42", res.Data.QuoteID)
}

func TestParseFileContentCSVFailure(t *testing.T) {
	t.Parallel()

	obs := &decodeStub{}
	res := NewService(Options{Observer: obs}).ParseFileContent("x.csv", "hello\nworld")
	assert.False(t, res.Success)
	assert.Equal(t, msgInvalidCSV, res.Message)
	assert.Equal(t, []string{"unknown/failed"}, obs.calls)
}

func TestParseFileContentUnsupported(t *testing.T) {
	t.Parallel()

	svc := NewService(Options{})
	res := svc.ParseFileContent("quote.txt", "anything")
	assert.False(t, res.Success)
	assert.Equal(t, msgUnsupportedFile, res.Message)

	res = svc.ParseFileContent("quote.csv", "  \n")
	assert.False(t, res.Success)
	assert.Equal(t, msgEmptyFile, res.Message)
}

func TestParseFileContentWarnings(t *testing.T) {
	t.Parallel()

	raw := `{"currentProduct":"rollerBlind","products":{"rollerBlind":{"items":[` +
		`{"itemId":"a","width":1000},` +
		`{"itemId":"b","width":1000,"height":900,"fabricType":"ZZ"}]}}}`
	res := NewService(Options{}).ParseFileContent("q.json", raw)
	require.True(t, res.Success)
	require.Len(t, res.Warnings, 2)
	assert.Contains(t, res.Warnings[0], "row 1")
	assert.Contains(t, res.Warnings[1], `unknown fabric type "ZZ"`)
	assert.Equal(t, "Loaded quote from q.json with 2 warning(s).", res.Message)
}
