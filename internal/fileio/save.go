package fileio

import (
	"encoding/json"

	"github.com/angelmondragon/blindquote/internal/csvcodec"
	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/pkg/enums"
)

const (
	msgSaved       = "Quote saved to %s."
	msgExported    = "Quote exported to %s."
	msgNoQuote     = "There is no quote data to save."
	msgNoItemsData = "There are no items to export."
)

// SaveToJSON writes the whole quote, LF set pruned, as indented JSON.
func (s *service) SaveToJSON(q *quote.QuoteData) Result {
	if q == nil {
		return failure(msgNoQuote)
	}
	out := q.Clone()
	out.PruneLFRows()
	body, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return s.exportFailed(enums.ExportFormatJSON, err)
	}
	return s.success(q, enums.ExportFormatJSON, body, msgSaved)
}

func (s *service) ExportToCSV(q *quote.QuoteData) Result {
	if q == nil {
		return failure(msgNoQuote)
	}
	text := csvcodec.Encode(q)
	if text == "" {
		return failure(msgNoItemsData)
	}
	return s.success(q, enums.ExportFormatCSV, []byte(text), msgExported)
}
