package csvcodec

import (
	"strconv"
	"strings"

	"github.com/angelmondragon/blindquote/internal/quote"
)

// Encode renders the active product of q as CSV: the project block, a blank
// separator, the item header and one row per non-empty item. It does not
// mutate q. An empty string is returned when there is no active product.
func Encode(q *quote.QuoteData) string {
	product := q.ActiveProduct()
	if product == nil {
		return ""
	}

	header := append(append([]string{}, ProjectKeys...), SnapshotKeys...)
	values := []string{
		q.QuoteID,
		q.IssueDate,
		q.DueDate,
		q.Customer.Name,
		q.Customer.Address,
		q.Customer.Phone,
		q.Customer.Email,
	}
	for _, key := range SnapshotKeys {
		if v, ok := q.F1Snapshot.Get(key); ok {
			values = append(values, formatNumber(v))
			continue
		}
		values = append(values, "")
	}

	lines := []string{
		strings.Join(header, ","),
		joinRow(values),
		"",
		strings.Join(ItemHeaders, ","),
	}
	for i, item := range product.Items {
		if item.IsEmpty() {
			continue
		}
		lines = append(lines, joinRow(itemRow(i, item, q.IsLF(i))))
	}
	return strings.Join(lines, "\n")
}

func itemRow(index int, item quote.LineItem, isLF bool) []string {
	lf := "0"
	if isLF {
		lf = "1"
	}
	price := ""
	if item.LinePrice != nil {
		price = strconv.FormatFloat(*item.LinePrice, 'f', 2, 64)
	}
	return []string{
		strconv.Itoa(index + 1),
		formatInt(item.Width),
		formatInt(item.Height),
		item.Type(),
		price,
		item.Location,
		item.Fabric,
		item.Color,
		item.Over,
		item.OI,
		item.LR,
		item.Dual,
		formatInt(item.Chain),
		item.Winder,
		item.Motor,
		lf,
	}
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// formatNumber uses the shortest representation that parses back to v.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
