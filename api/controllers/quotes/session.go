package quotes

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/blindquote/api/validators"
	"github.com/angelmondragon/blindquote/internal/dialog"
	"github.com/angelmondragon/blindquote/internal/fabric"
	"github.com/angelmondragon/blindquote/internal/fileio"
	internalquotes "github.com/angelmondragon/blindquote/internal/quotes"
	"github.com/angelmondragon/blindquote/internal/render"
	"github.com/angelmondragon/blindquote/internal/state"
	"github.com/angelmondragon/blindquote/internal/workflow"
	pkgerrors "github.com/angelmondragon/blindquote/pkg/errors"
	"github.com/angelmondragon/blindquote/pkg/logger"
	"github.com/angelmondragon/blindquote/pkg/types"
)

// Deps are the collaborators shared by every quote request. Each request
// builds its own fabric and workflow services around the stored workspace.
type Deps struct {
	Quotes     internalquotes.Service
	Files      fileio.Service
	Pricer     workflow.Pricer
	Printable  render.Renderer
	Gmail      render.Renderer
	Batches    fabric.BatchObserver
	// ProductKey seeds quotes created from a request body.
	ProductKey string
	Logger     *logger.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	return d
}

type session struct {
	recorder *dialog.Recorder
	fabric   fabric.Service
	workflow workflow.Service
}

func (d Deps) open(store *state.Store, recorder *dialog.Recorder) (*session, error) {
	fab, err := fabric.NewService(store, recorder, recorder, d.Batches, d.Logger)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "init fabric workflows")
	}
	wf, err := workflow.NewService(workflow.Deps{
		Store:     store,
		Notifier:  recorder,
		Files:     d.Files,
		Pricer:    d.Pricer,
		Printable: d.Printable,
		Gmail:     d.Gmail,
		Logger:    d.Logger,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "init quote workflows")
	}
	return &session{recorder: recorder, fabric: fab, workflow: wf}, nil
}

// mutate runs fn against the stored workspace and persists the result when
// fn succeeds. Notices raised along the way are returned either way.
func (d Deps) mutate(r *http.Request, fn func(ctx context.Context, s *session) (any, error)) (*internalquotes.Workspace, any, []types.Notice, error) {
	id, err := validators.ParseUUIDParam(r, "quoteId")
	if err != nil {
		return nil, nil, nil, err
	}
	ctx := d.Logger.WithQuoteID(r.Context(), id.String())

	recorder := dialog.NewRecorder()
	var result any
	ws, err := d.Quotes.Mutate(ctx, id, func(ctx context.Context, store *state.Store) error {
		s, err := d.open(store, recorder)
		if err != nil {
			return err
		}
		result, err = fn(ctx, s)
		return err
	})
	return ws, result, recorder.WireNotices(), err
}

// view opens a read-only session on the stored workspace.
func (d Deps) view(ctx context.Context, id uuid.UUID) (*session, error) {
	ws, err := d.Quotes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.open(state.Restore(ws.Quote, ws.UI), dialog.NewRecorder())
}
