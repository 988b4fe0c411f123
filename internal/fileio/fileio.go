// Package fileio turns a quote into downloadable files and loads quotes back
// from JSON or CSV uploads.
package fileio

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/pkg/enums"
	"github.com/angelmondragon/blindquote/pkg/logger"
)

// File is a generated download.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Result reports the outcome of a save or export. File is nil on failure;
// Err is set when an encoder failed rather than the quote lacking data.
type Result struct {
	Success bool
	Message string
	File    *File
	Err     error
}

// LoadResult reports the outcome of parsing an uploaded file. Warnings lists
// row problems that did not prevent the load.
type LoadResult struct {
	Success  bool
	Message  string
	Data     *quote.QuoteData
	Warnings []string
}

// DecodeObserver records CSV decode outcomes.
type DecodeObserver interface {
	ObserveDecode(format, outcome string)
}

// Service is the file collaborator used by the quote workflows.
type Service interface {
	SaveToJSON(q *quote.QuoteData) Result
	ExportToCSV(q *quote.QuoteData) Result
	ExportToXLSX(q *quote.QuoteData) Result
	ExportToPDF(q *quote.QuoteData) Result
	Export(format enums.ExportFormat, q *quote.QuoteData) Result
	ParseFileContent(name, content string) LoadResult
}

type Options struct {
	CompanyName string
	ProductKey  string
	Now         func() time.Time
	Observer    DecodeObserver
	Logger      *logger.Logger
}

type service struct {
	companyName string
	productKey  string
	now         func() time.Time
	observer    DecodeObserver
	logg        *logger.Logger
}

func NewService(opts Options) Service {
	s := &service{
		companyName: opts.CompanyName,
		productKey:  opts.ProductKey,
		now:         opts.Now,
		observer:    opts.Observer,
		logg:        opts.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logg == nil {
		s.logg = logger.Nop()
	}
	return s
}

func (s *service) Export(format enums.ExportFormat, q *quote.QuoteData) Result {
	switch format {
	case enums.ExportFormatJSON:
		return s.SaveToJSON(q)
	case enums.ExportFormatCSV:
		return s.ExportToCSV(q)
	case enums.ExportFormatXLSX:
		return s.ExportToXLSX(q)
	case enums.ExportFormatPDF:
		return s.ExportToPDF(q)
	}
	return failure(fmt.Sprintf("Unsupported export format: %s", format))
}

// fileName is quote-<quoteId>.<ext>, falling back to a timestamp when the
// quote has no id yet.
func (s *service) fileName(q *quote.QuoteData, format enums.ExportFormat) string {
	base := q.QuoteID
	if base == "" {
		base = s.now().Format("20060102-150405")
	}
	return fmt.Sprintf("quote-%s.%s", sanitizeFileName(base), format)
}

func (s *service) success(q *quote.QuoteData, format enums.ExportFormat, body []byte, msg string) Result {
	name := s.fileName(q, format)
	return Result{
		Success: true,
		Message: fmt.Sprintf(msg, name),
		File:    &File{Name: name, ContentType: format.ContentType(), Body: body},
	}
}

func (s *service) exportFailed(format enums.ExportFormat, err error) Result {
	s.logg.Error(context.Background(), fmt.Sprintf("export %s failed", format), err)
	res := failure(fmt.Sprintf("Failed to export %s file.", format))
	res.Err = err
	return res
}

func failure(msg string) Result {
	return Result{Message: msg}
}

func sanitizeFileName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
