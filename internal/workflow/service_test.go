package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/angelmondragon/blindquote/internal/dialog"
	"github.com/angelmondragon/blindquote/internal/fileio"
	"github.com/angelmondragon/blindquote/internal/pricing"
	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/internal/render"
	"github.com/angelmondragon/blindquote/internal/state"
	"github.com/angelmondragon/blindquote/pkg/config"
	"github.com/angelmondragon/blindquote/pkg/enums"
	pkgerrors "github.com/angelmondragon/blindquote/pkg/errors"
)

type rendererStub struct {
	html     string
	err      error
	override *quote.QuoteData
}

func (r *rendererStub) Render(_ context.Context, _ *quote.QuoteData, _ state.UIState, override *quote.QuoteData) (string, error) {
	r.override = override
	return r.html, r.err
}

type fixture struct {
	svc      Service
	store    *state.Store
	recorder *dialog.Recorder
	print    *rendererStub
	gmail    *rendererStub
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	calc, err := pricing.NewCalculator(config.PricingConfig{
		RatesPerSqm: map[string]float64{"B2": 100, "LF": 150},
		MinimumArea: 1,
	})
	if err != nil {
		t.Fatalf("calculator: %v", err)
	}
	f := fixture{
		store:    state.NewStore(""),
		recorder: dialog.NewRecorder(),
		print:    &rendererStub{html: "<html>quote</html>"},
		gmail:    &rendererStub{html: "<div>gth</div>"},
	}
	f.svc, err = NewService(Deps{
		Store:     f.store,
		Notifier:  f.recorder,
		Files:     fileio.NewService(fileio.Options{}),
		Pricer:    calc,
		Printable: f.print,
		Gmail:     f.gmail,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return f
}

func seed(store *state.Store) {
	q := quote.NewDefault("")
	q.QuoteID = "RB-1"
	q.SetItems([]quote.LineItem{
		{ItemID: "a", Width: quote.Int(1000), Height: quote.Int(2000), FabricType: quote.String("B2"), Winder: quote.WinderHeavyDuty},
		{ItemID: "b", Width: quote.Int(500), Height: quote.Int(500), FabricType: quote.String("B2"), Dual: quote.DualMount},
		{ItemID: "c", Width: quote.Int(500), Height: quote.Int(500), FabricType: quote.String("B9"), Dual: quote.DualMount},
	})
	store.SetQuoteData(q)
}

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(Deps{}); err == nil {
		t.Fatalf("expected error for missing deps")
	}
}

func TestPrintableQuotePassesLiveQuoteAsOverride(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	seed(f.store)

	html, err := f.svc.PrintableQuote(context.Background())
	if err != nil {
		t.Fatalf("printable: %v", err)
	}
	if html != "<html>quote</html>" {
		t.Fatalf("unexpected html %q", html)
	}
	if f.print.override == nil || f.print.override.QuoteID != "RB-1" {
		t.Fatalf("expected live quote as override")
	}
	if len(f.recorder.Notices()) != 0 {
		t.Fatalf("expected no notices on success")
	}
}

func TestPreviewFailuresNotify(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.print.err = errors.New("template missing")
	f.gmail.html = ""

	if _, err := f.svc.PrintableQuote(context.Background()); !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if _, err := f.svc.GmailQuote(context.Background()); !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error for empty gmail html, got %v", err)
	}

	notices := f.recorder.Notices()
	if len(notices) != 2 {
		t.Fatalf("expected 2 notices, got %d", len(notices))
	}
	if notices[0].Message != MsgQuotePreviewFailed || notices[0].Level != enums.NoticeLevelError {
		t.Fatalf("unexpected first notice %+v", notices[0])
	}
	if notices[1].Message != MsgGmailPreviewFailed {
		t.Fatalf("unexpected second notice %+v", notices[1])
	}
}

func TestPreviewWithRealRenderer(t *testing.T) {
	t.Parallel()
	store := state.NewStore("")
	seed(store)
	rec := dialog.NewRecorder()
	calc, _ := pricing.NewCalculator(config.PricingConfig{RatesPerSqm: map[string]float64{"B2": 1}})
	svc, err := NewService(Deps{
		Store:     store,
		Notifier:  rec,
		Files:     fileio.NewService(fileio.Options{}),
		Pricer:    calc,
		Printable: render.NewQuoteHTML(render.Branding{CompanyName: "Blinds"}, nil),
		Gmail:     render.NewGmailHTML(render.Branding{CompanyName: "Blinds"}, nil),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	html, err := svc.GmailQuote(context.Background())
	if err != nil {
		t.Fatalf("gmail: %v", err)
	}
	if !strings.Contains(html, "RB-1") {
		t.Fatalf("expected quote id in gmail html")
	}
}

func TestF1TabActivationPricesRows(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	seed(f.store)

	summary := f.svc.F1TabActivation(context.Background())
	if summary.Priced != 2 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	items := f.store.Quote().Items()
	if items[0].LinePrice == nil || *items[0].LinePrice != 200 {
		t.Fatalf("expected first row priced at 200, got %v", items[0].LinePrice)
	}
	if items[2].LinePrice != nil {
		t.Fatalf("expected unknown type to stay unpriced")
	}
}

func TestSaveToFileReconcilesSnapshot(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	seed(f.store)
	f.store.SetDriveCounts(3, 1, 2)

	res := f.svc.SaveToFile(context.Background())
	if !res.Success || res.File == nil {
		t.Fatalf("expected saved file, got %+v", res)
	}
	body := string(res.File.Body)
	for _, want := range []string{`"winder_qty": 1`, `"dual_combo_qty": 1`, `"remote_16ch_qty": 3`, `"charger_qty": 1`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in saved json", want)
		}
	}
	if f.store.Quote().F1Snapshot.WinderQty != nil {
		t.Fatalf("live quote must not be modified by save")
	}
	last, _ := f.recorder.LastNotice()
	if last.Level != enums.NoticeLevelInfo || last.Message != res.Message {
		t.Fatalf("unexpected notice %+v", last)
	}
}

func TestExportFailureNotifiesError(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	q := quote.NewDefault("")
	q.CurrentProduct = "missing"
	f.store.SetQuoteData(q)

	res := f.svc.ExportCSV(context.Background())
	if res.Success {
		t.Fatalf("expected failure without an active product")
	}
	last, _ := f.recorder.LastNotice()
	if last.Level != enums.NoticeLevelError {
		t.Fatalf("expected error notice, got %+v", last)
	}
}

func TestExportFormats(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	seed(f.store)

	for _, res := range []fileio.Result{
		f.svc.ExportCSV(context.Background()),
		f.svc.ExportXLSX(context.Background()),
		f.svc.ExportPDF(context.Background()),
		f.svc.Export(context.Background(), enums.ExportFormatJSON),
	} {
		if !res.Success {
			t.Fatalf("export failed: %s", res.Message)
		}
	}
}

func TestReset(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	seed(f.store)
	f.store.SetMultiSelect([]int{0, 1})

	if f.svc.Reset(context.Background(), false) {
		t.Fatalf("reset must wait for confirmation")
	}
	if !f.store.Quote().HasData() {
		t.Fatalf("unconfirmed reset changed the quote")
	}

	if !f.svc.Reset(context.Background(), true) {
		t.Fatalf("expected confirmed reset")
	}
	if f.store.Quote().HasData() {
		t.Fatalf("expected default quote after reset")
	}
	if len(f.store.UI().MultiSelectSelectedIndexes) != 0 {
		t.Fatalf("expected ui reset")
	}
	last, _ := f.recorder.LastNotice()
	if last.Message != MsgQuoteReset {
		t.Fatalf("unexpected notice %+v", last)
	}
}

func TestRequestLoad(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	if got := f.svc.RequestLoad(context.Background()); got != LoadActionPickFile {
		t.Fatalf("expected pick-file for empty quote, got %s", got)
	}
	seed(f.store)
	if got := f.svc.RequestLoad(context.Background()); got != LoadActionConfirm {
		t.Fatalf("expected confirm when data exists, got %s", got)
	}
}

func TestFileLoadRestoresSnapshot(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	seed(f.store)
	f.store.SetDriveCounts(2, 0, 0)
	f.store.SetF1Discount(quote.Float(15))
	saved := f.svc.SaveToFile(context.Background())

	g := newFixture(t)
	g.store.SetMultiSelect([]int{0})
	res := g.svc.FileLoad(context.Background(), saved.File.Name, string(saved.File.Body))
	if !res.Success {
		t.Fatalf("load failed: %s", res.Message)
	}

	q, ui := g.store.Snapshot()
	if q.QuoteID != "RB-1" || len(q.Items()) != 3 {
		t.Fatalf("unexpected loaded quote %+v", q)
	}
	if !ui.SumOutdated {
		t.Fatalf("expected sum to be marked outdated")
	}
	if len(ui.MultiSelectSelectedIndexes) != 0 {
		t.Fatalf("expected ui to be reset before restore")
	}
	if ui.F1.DiscountPercentage == nil || *ui.F1.DiscountPercentage != 15 {
		t.Fatalf("expected discount restored, got %v", ui.F1.DiscountPercentage)
	}
	if ui.DriveRemoteCount != 2 {
		t.Fatalf("expected remote total restored, got %d", ui.DriveRemoteCount)
	}
	last, _ := g.recorder.LastNotice()
	if last.Level != enums.NoticeLevelInfo || last.Message != res.Message {
		t.Fatalf("unexpected notice %+v", last)
	}
}

func TestFileLoadFailureKeepsWorkspace(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	seed(f.store)

	res := f.svc.FileLoad(context.Background(), "notes.txt", "hello")
	if res.Success {
		t.Fatalf("expected failure for unsupported file")
	}
	if f.store.Quote().QuoteID != "RB-1" {
		t.Fatalf("workspace changed on failed load")
	}
	last, _ := f.recorder.LastNotice()
	if last.Level != enums.NoticeLevelError {
		t.Fatalf("expected error notice")
	}
}

func TestF1DiscountChange(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.svc.F1DiscountChange(context.Background(), quote.Float(12.5))
	if got := f.store.UI().F1.DiscountPercentage; got == nil || *got != 12.5 {
		t.Fatalf("expected discount 12.5, got %v", got)
	}
}
