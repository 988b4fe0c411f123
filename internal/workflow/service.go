// Package workflow coordinates the quote-level user actions: previews,
// saving and exporting, loading, pricing and reset.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/blindquote/internal/dialog"
	"github.com/angelmondragon/blindquote/internal/fileio"
	"github.com/angelmondragon/blindquote/internal/pricing"
	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/internal/render"
	"github.com/angelmondragon/blindquote/internal/snapshot"
	"github.com/angelmondragon/blindquote/internal/state"
	"github.com/angelmondragon/blindquote/pkg/enums"
	pkgerrors "github.com/angelmondragon/blindquote/pkg/errors"
	"github.com/angelmondragon/blindquote/pkg/logger"
)

const (
	MsgQuotePreviewFailed = "Failed to generate quote preview. See console for details."
	MsgGmailPreviewFailed = "Failed to generate GTH preview. See console for details."
	MsgQuoteReset         = "Quote has been reset."
)

var errEmptyRender = errors.New("renderer returned no HTML")

// LoadAction tells the caller what a load request needs next.
type LoadAction string

const (
	// LoadActionConfirm asks the user before replacing a quote with data.
	LoadActionConfirm  LoadAction = "confirm"
	LoadActionPickFile LoadAction = "pick-file"
)

// Pricer recomputes line prices.
type Pricer interface {
	CalculateAndSum(q *quote.QuoteData) (*quote.QuoteData, pricing.Summary)
}

type Service interface {
	PrintableQuote(ctx context.Context) (string, error)
	GmailQuote(ctx context.Context) (string, error)
	F1TabActivation(ctx context.Context) pricing.Summary
	SaveToFile(ctx context.Context) fileio.Result
	ExportCSV(ctx context.Context) fileio.Result
	ExportXLSX(ctx context.Context) fileio.Result
	ExportPDF(ctx context.Context) fileio.Result
	Export(ctx context.Context, format enums.ExportFormat) fileio.Result
	Reset(ctx context.Context, confirmed bool) bool
	RequestLoad(ctx context.Context) LoadAction
	FileLoad(ctx context.Context, name, content string) fileio.LoadResult
	F1DiscountChange(ctx context.Context, percentage *float64)
}

// Deps are the collaborators of the quote workflows.
type Deps struct {
	Store     *state.Store
	Notifier  dialog.Notifier
	Files     fileio.Service
	Pricer    Pricer
	Printable render.Renderer
	Gmail     render.Renderer
	Logger    *logger.Logger
}

type service struct {
	store     *state.Store
	notifier  dialog.Notifier
	files     fileio.Service
	pricer    Pricer
	printable render.Renderer
	gmail     render.Renderer
	logg      *logger.Logger
}

func NewService(d Deps) (Service, error) {
	if d.Store == nil {
		return nil, fmt.Errorf("state store required")
	}
	if d.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if d.Files == nil {
		return nil, fmt.Errorf("file service required")
	}
	if d.Pricer == nil {
		return nil, fmt.Errorf("pricer required")
	}
	if d.Printable == nil || d.Gmail == nil {
		return nil, fmt.Errorf("quote renderers required")
	}
	logg := d.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		store:     d.Store,
		notifier:  d.Notifier,
		files:     d.Files,
		pricer:    d.Pricer,
		printable: d.Printable,
		gmail:     d.Gmail,
		logg:      logg,
	}, nil
}

func (s *service) PrintableQuote(ctx context.Context) (string, error) {
	return s.preview(ctx, s.printable, MsgQuotePreviewFailed)
}

func (s *service) GmailQuote(ctx context.Context) (string, error) {
	return s.preview(ctx, s.gmail, MsgGmailPreviewFailed)
}

// preview renders the live quote. The live quote is also passed as the meta
// override so header fields always match what the user sees.
func (s *service) preview(ctx context.Context, r render.Renderer, failMsg string) (string, error) {
	q, ui := s.store.Snapshot()
	html, err := r.Render(ctx, q, ui, q)
	if err == nil && html == "" {
		err = errEmptyRender
	}
	if err != nil {
		s.logg.Error(ctx, "quote preview failed", err)
		s.notifier.Notify(ctx, dialog.Error(failMsg))
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, failMsg)
	}
	return html, nil
}

func (s *service) F1TabActivation(_ context.Context) pricing.Summary {
	updated, summary := s.pricer.CalculateAndSum(s.store.Quote())
	s.store.SetQuoteData(updated)
	return summary
}

// withSnapshot is the export-ready copy of the live quote.
func (s *service) withSnapshot(ctx context.Context) *quote.QuoteData {
	q, ui := s.store.Snapshot()
	return snapshot.Reconcile(ctx, s.logg, q, state.InputsFrom(ui))
}

func (s *service) SaveToFile(ctx context.Context) fileio.Result {
	return s.notifyResult(ctx, s.files.SaveToJSON(s.withSnapshot(ctx)))
}

func (s *service) ExportCSV(ctx context.Context) fileio.Result {
	return s.notifyResult(ctx, s.files.ExportToCSV(s.withSnapshot(ctx)))
}

func (s *service) ExportXLSX(ctx context.Context) fileio.Result {
	return s.notifyResult(ctx, s.files.ExportToXLSX(s.withSnapshot(ctx)))
}

func (s *service) ExportPDF(ctx context.Context) fileio.Result {
	return s.notifyResult(ctx, s.files.ExportToPDF(s.withSnapshot(ctx)))
}

// Export picks the file format at run time, for the HTTP surface.
func (s *service) Export(ctx context.Context, format enums.ExportFormat) fileio.Result {
	return s.notifyResult(ctx, s.files.Export(format, s.withSnapshot(ctx)))
}

func (s *service) notifyResult(ctx context.Context, res fileio.Result) fileio.Result {
	if res.Success {
		s.notifier.Notify(ctx, dialog.Info(res.Message))
	} else {
		s.notifier.Notify(ctx, dialog.Error(res.Message))
	}
	return res
}

// Reset clears the quote and the editor state once the user has confirmed.
func (s *service) Reset(ctx context.Context, confirmed bool) bool {
	if !confirmed {
		return false
	}
	s.store.ResetQuote()
	s.store.ResetUI()
	s.notifier.Notify(ctx, dialog.Info(MsgQuoteReset))
	return true
}

func (s *service) RequestLoad(_ context.Context) LoadAction {
	if s.store.Quote().HasData() {
		return LoadActionConfirm
	}
	return LoadActionPickFile
}

// FileLoad replaces the workspace with the parsed file. On failure the
// workspace is left untouched.
func (s *service) FileLoad(ctx context.Context, name, content string) fileio.LoadResult {
	res := s.files.ParseFileContent(name, content)
	if !res.Success {
		s.notifier.Notify(ctx, dialog.Error(res.Message))
		return res
	}

	s.store.SetQuoteData(res.Data)
	s.store.ResetUI()
	if res.Data.F1Snapshot != nil {
		s.store.RestoreF1Snapshot(res.Data.F1Snapshot)
	}
	s.store.SetSumOutdated(true)
	for _, w := range res.Warnings {
		s.logg.Warn(s.logg.WithField(ctx, "file", name), w)
	}
	s.notifier.Notify(ctx, dialog.Info(res.Message))
	return res
}

func (s *service) F1DiscountChange(_ context.Context, percentage *float64) {
	s.store.SetF1Discount(percentage)
}
