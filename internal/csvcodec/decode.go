package csvcodec

import (
	"math"
	"strconv"
	"strings"

	"github.com/angelmondragon/blindquote/internal/quote"
)

// Format identifies which decoder stage produced a Result.
type Format string

const (
	FormatCurrent Format = "current"
	FormatLegacy  Format = "legacy"
)

// Result is the outcome of Decode. Data is set only when OK is true; Reason
// explains a failure.
type Result struct {
	OK     bool
	Format Format
	Data   *Decoded
	Reason string
}

// Decoded is the structured content of a quote CSV file.
type Decoded struct {
	Items      []quote.LineItem
	LFIndexes  []int
	F1Snapshot quote.Snapshot
	F3         F3Data
}

// F3Data carries the quote-meta values of the project block.
type F3Data struct {
	QuoteID   string
	IssueDate string
	DueDate   string
	Customer  quote.Customer
}

const utf8BOM = "\ufeff"

func failed(reason string) Result {
	return Result{Reason: reason}
}

// Decode parses quote CSV text. The current format is tried first and the
// legacy format second; neither stage panics and no error escapes. A failed
// Result means neither format was recognized. A leading UTF-8 byte order mark,
// as written by spreadsheet exports, is ignored.
func Decode(text string) Result {
	text = strings.TrimPrefix(text, utf8BOM)
	current := decodeCurrent(text)
	if current.OK {
		return current
	}
	legacy := decodeLegacy(text)
	if legacy.OK {
		return legacy
	}
	return failed("current format: " + current.Reason + "; legacy format: " + legacy.Reason)
}

func decodeCurrent(text string) Result {
	records := splitRecords(strings.TrimSpace(text))
	if len(records) < minCurrentLines {
		return failed("fewer than 4 lines")
	}
	if strings.HasPrefix(strings.TrimSpace(records[0]), "#") {
		return failed("project header missing")
	}

	projectHeaders, err := parseLine(records[0])
	if err != nil {
		return failed("project header: " + err.Error())
	}
	if !hasProjectColumn(projectHeaders) {
		return failed("project header not recognized")
	}
	projectValues, err := parseLine(records[1])
	if err != nil {
		return failed("project values: " + err.Error())
	}
	itemHeaders, err := parseLine(records[3])
	if err != nil {
		return failed("item header: " + err.Error())
	}
	if len(itemHeaders) == 0 || itemHeaders[0] != ItemHeaders[0] {
		return failed("item header not found on line 4")
	}

	out := &Decoded{Items: []quote.LineItem{}, LFIndexes: []int{}}
	readProjectBlock(out, projectHeaders, projectValues)

	isLF := indexOf(itemHeaders, isLFHeader)
	for _, line := range records[4:] {
		if skipItemLine(line) {
			continue
		}
		values, err := parseLine(strings.TrimSpace(line))
		if err != nil {
			return failed("item row: " + err.Error())
		}
		appendItem(out, values, isLF)
	}
	return Result{OK: true, Format: FormatCurrent, Data: out}
}

func hasProjectColumn(headers []string) bool {
	for _, h := range headers {
		if isProjectKey(h) || isSnapshotKey(h) {
			return true
		}
	}
	return false
}

// readProjectBlock pairs headers with values. Empty values are dropped,
// snapshot values that are not numbers are dropped, unknown headers are ignored.
func readProjectBlock(out *Decoded, headers, values []string) {
	for i, header := range headers {
		if i >= len(values) || values[i] == "" {
			continue
		}
		value := values[i]

		switch {
		case isSnapshotKey(header):
			if n, ok := parseNumber(value); ok {
				out.F1Snapshot.Set(header, n)
			}
		case strings.HasPrefix(header, customerPrefix):
			setCustomerField(&out.F3.Customer, strings.TrimPrefix(header, customerPrefix), value)
		case header == "quoteId":
			out.F3.QuoteID = value
		case header == "issueDate":
			out.F3.IssueDate = value
		case header == "dueDate":
			out.F3.DueDate = value
		}
	}
}

func setCustomerField(c *quote.Customer, key, value string) {
	switch key {
	case "name":
		c.Name = value
	case "address":
		c.Address = value
	case "phone":
		c.Phone = value
	case "email":
		c.Email = value
	}
}

func skipItemLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(strings.ToLower(trimmed), totalRowPrefix)
}

func appendItem(out *Decoded, values []string, isLFCol int) {
	out.Items = append(out.Items, parseItem(values))
	if isLFCol < 0 || isLFCol >= len(values) {
		return
	}
	if n, ok := parseInt(values[isLFCol]); ok && n == 1 {
		out.LFIndexes = append(out.LFIndexes, len(out.Items)-1)
	}
}

// parseItem reads the fixed item layout. Ids are always fresh; the file's
// sequence column is ignored.
func parseItem(values []string) quote.LineItem {
	get := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}

	item := quote.LineItem{
		ItemID:   quote.NewItemID(),
		Width:    parseDimension(get(colWidth)),
		Height:   parseDimension(get(colHeight)),
		Location: get(colLocation),
		Fabric:   get(colFabric),
		Color:    get(colColor),
		Over:     get(colOver),
		OI:       get(colOI),
		LR:       get(colLR),
		Dual:     get(colDual),
		Chain:    parseDimension(get(colChain)),
		Winder:   get(colWinder),
		Motor:    get(colMotor),
	}
	if t := get(colType); t != "" {
		item.FabricType = quote.String(t)
	}
	if p, ok := parseNumber(get(colPrice)); ok {
		item.LinePrice = quote.Float(p)
	}
	return item
}

// parseDimension returns nil for unparsable input and for zero, which the
// quote table treats as unset.
func parseDimension(value string) *int {
	n, ok := parseInt(value)
	if !ok || n == 0 {
		return nil
	}
	return quote.Int(n)
}

func parseInt(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseNumber(value string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
