package fileio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/angelmondragon/blindquote/internal/csvcodec"
	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/pkg/enums"
)

const (
	msgLoaded          = "Successfully loaded quote from %s."
	msgLoadedWarnings  = "Loaded quote from %s with %d warning(s)."
	msgUnsupportedFile = "Unsupported file type. Please select a .json or .csv file."
	msgInvalidJSON     = "The selected file is not a valid quote file."
	msgInvalidCSV      = "The selected CSV file could not be read as a quote."
	msgEmptyFile       = "The selected file is empty."
)

const (
	outcomeOK     = "ok"
	outcomeFailed = "failed"
)

// ParseFileContent builds quote data from an uploaded file. The extension
// of name picks the decoder; a UTF-8 byte order mark is ignored.
func (s *service) ParseFileContent(name, content string) LoadResult {
	content = strings.TrimPrefix(content, "\ufeff")
	if strings.TrimSpace(content) == "" {
		return LoadResult{Message: msgEmptyFile}
	}

	var (
		q   *quote.QuoteData
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		q, err = s.parseJSON(content)
	case ".csv":
		q, err = s.parseCSV(content)
	default:
		return LoadResult{Message: msgUnsupportedFile}
	}
	if err != nil {
		s.logg.Warn(s.logg.WithField(context.Background(), "file", name), err.Error())
		return LoadResult{Message: err.Error()}
	}

	warnings := multierr.Errors(validateItems(q.Items()))
	res := LoadResult{Success: true, Data: q, Message: fmt.Sprintf(msgLoaded, name)}
	if len(warnings) > 0 {
		res.Message = fmt.Sprintf(msgLoadedWarnings, name, len(warnings))
		for _, w := range warnings {
			res.Warnings = append(res.Warnings, w.Error())
		}
	}
	return res
}

func (s *service) parseJSON(content string) (*quote.QuoteData, error) {
	var q quote.QuoteData
	if err := json.Unmarshal([]byte(content), &q); err != nil {
		return nil, errors.New(msgInvalidJSON)
	}
	if q.Products == nil || q.CurrentProduct == "" || q.ActiveProduct() == nil {
		return nil, errors.New(msgInvalidJSON)
	}
	for _, entry := range q.Products {
		if entry == nil {
			continue
		}
		for i := range entry.Items {
			if entry.Items[i].ItemID == "" {
				entry.Items[i].ItemID = quote.NewItemID()
			}
		}
	}
	if len(q.Items()) == 0 {
		q.SetItems([]quote.LineItem{quote.NewItem()})
	}
	q.PruneLFRows()
	return &q, nil
}

func (s *service) parseCSV(content string) (*quote.QuoteData, error) {
	res := csvcodec.Decode(content)
	if !res.OK {
		s.observe("", outcomeFailed)
		return nil, errors.New(msgInvalidCSV)
	}
	s.observe(string(res.Format), outcomeOK)

	q := quote.NewDefault(s.productKey)
	items := res.Data.Items
	if len(items) == 0 {
		items = []quote.LineItem{quote.NewItem()}
	}
	q.SetItems(items)
	q.AddLFRows(res.Data.LFIndexes...)
	q.PruneLFRows()
	snap := res.Data.F1Snapshot
	q.F1Snapshot = &snap
	q.QuoteID = res.Data.F3.QuoteID
	q.IssueDate = res.Data.F3.IssueDate
	q.DueDate = res.Data.F3.DueDate
	q.Customer = res.Data.F3.Customer
	return q, nil
}

func (s *service) observe(format, outcome string) {
	if s.observer == nil {
		return
	}
	if format == "" {
		format = "unknown"
	}
	s.observer.ObserveDecode(format, outcome)
}

// validateItems reports rows that loaded but will not price or export
// cleanly. Warnings never block a load.
func validateItems(items []quote.LineItem) error {
	var err error
	for i, item := range items {
		if item.IsEmpty() {
			continue
		}
		if item.Width == nil || item.Height == nil {
			err = multierr.Append(err, fmt.Errorf("row %d: width and height are both required", i+1))
		}
		if item.Width != nil && *item.Width < 0 || item.Height != nil && *item.Height < 0 {
			err = multierr.Append(err, fmt.Errorf("row %d: negative dimension", i+1))
		}
		if t := item.Type(); t != "" && !enums.FabricType(t).IsValid() {
			err = multierr.Append(err, fmt.Errorf("row %d: unknown fabric type %q", i+1, t))
		}
	}
	return err
}
