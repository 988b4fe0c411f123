package quotes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/internal/state"
	"github.com/angelmondragon/blindquote/pkg/db/models"
	dbtypes "github.com/angelmondragon/blindquote/pkg/db/types"
	pkgerrors "github.com/angelmondragon/blindquote/pkg/errors"
	"github.com/angelmondragon/blindquote/pkg/logger"
)

const issueDateLayout = "2006-01-02"

// ServiceParams groups dependencies for the quote service. Drafts is
// optional; without it every read goes to the database.
type ServiceParams struct {
	Repo       *Repository
	Drafts     *DraftStore
	ProductKey string
	Now        func() time.Time
	Logger     *logger.Logger
}

// Service manages saved quotes and their editor state.
type Service interface {
	Create(ctx context.Context, q *quote.QuoteData) (*Workspace, error)
	Get(ctx context.Context, id uuid.UUID) (*Workspace, error)
	List(ctx context.Context, cursor string, limit int) (PageDTO, error)
	Save(ctx context.Context, ws *Workspace) error
	// Mutate loads the workspace into a state store, runs fn and persists
	// the result. Nothing is saved when fn fails. A mutation that clears the
	// quote number keeps the stored one.
	Mutate(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, store *state.Store) error) (*Workspace, error)
}

type service struct {
	repo       *Repository
	drafts     *DraftStore
	productKey string
	now        func() time.Time
	logg       *logger.Logger
	mu         sync.Mutex
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:       params.Repo,
		drafts:     params.Drafts,
		productKey: params.ProductKey,
		now:        now,
		logg:       logg,
	}, nil
}

// Create stores a new quote, filling in the quote number and issue date
// when they are missing. A nil quote starts from the default template.
func (s *service) Create(ctx context.Context, q *quote.QuoteData) (*Workspace, error) {
	if q == nil {
		q = quote.NewDefault(s.productKey)
	} else {
		q = q.Clone()
	}
	if q.ActiveProduct() == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote has no active product")
	}
	now := s.now()
	if q.QuoteID == "" {
		number, err := s.nextQuoteNumber(ctx, now)
		if err != nil {
			return nil, err
		}
		q.QuoteID = number
	}
	if q.IssueDate == "" {
		q.IssueDate = now.Format(issueDateLayout)
	}
	q.PruneLFRows()

	ws := &Workspace{ID: uuid.New(), Quote: q, UI: state.DefaultUI()}
	ws.UI.RestoreSnapshot(q.F1Snapshot)
	m, err := toModel(ws)
	if err != nil {
		return nil, err
	}
	m.CreatedAt = now.UTC()
	m.UpdatedAt = m.CreatedAt
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	ws.UpdatedAt = m.UpdatedAt
	s.cache(ctx, ws)
	return ws, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Workspace, error) {
	if s.drafts != nil {
		ws, ok, err := s.drafts.Load(ctx, id)
		if err != nil {
			s.logg.Warn(s.logg.WithQuoteID(ctx, id.String()), "draft cache read failed: "+err.Error())
		} else if ok {
			return ws, nil
		}
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ws, err := fromModel(m)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, ws)
	return ws, nil
}

func (s *service) List(ctx context.Context, cursor string, limit int) (PageDTO, error) {
	return s.repo.List(ctx, cursor, limit)
}

func (s *service) Save(ctx context.Context, ws *Workspace) error {
	if ws == nil || ws.Quote == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "workspace is required")
	}
	m, err := toModel(ws)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return err
	}
	ws.UpdatedAt = s.now()
	s.cache(ctx, ws)
	return nil
}

func (s *service) Mutate(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, store *state.Store) error) (*Workspace, error) {
	unlock, err := s.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	ws, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	number := ws.Quote.QuoteID
	store := state.Restore(ws.Quote, ws.UI)
	if err := fn(ctx, store); err != nil {
		return nil, err
	}

	ws.Quote, ws.UI = store.Snapshot()
	// a reset or a CSV import leaves the number empty; the saved quote keeps its own
	if ws.Quote.QuoteID == "" {
		ws.Quote.QuoteID = number
	}
	if err := s.Save(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *service) lock(ctx context.Context, id uuid.UUID) (func(), error) {
	if s.drafts != nil {
		return s.drafts.Lock(ctx, id)
	}
	s.mu.Lock()
	return s.mu.Unlock, nil
}

func (s *service) cache(ctx context.Context, ws *Workspace) {
	if s.drafts == nil {
		return
	}
	if err := s.drafts.Save(ctx, ws); err != nil {
		s.logg.Warn(s.logg.WithQuoteID(ctx, ws.ID.String()), "draft cache write failed: "+err.Error())
	}
}

func (s *service) nextQuoteNumber(ctx context.Context, now time.Time) (string, error) {
	if s.drafts != nil {
		number, err := s.drafts.NextQuoteNumber(ctx, now)
		if err == nil {
			return number, nil
		}
		s.logg.Warn(ctx, "quote sequence unavailable: "+err.Error())
	}
	return fmt.Sprintf("RB-%s-%s", now.Format(dayLayout), uuid.NewString()[:8]), nil
}

func toModel(ws *Workspace) (*models.Quote, error) {
	payload, err := dbtypes.Marshal(ws.Quote)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode quote")
	}
	ui, err := dbtypes.Marshal(ws.UI)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode ui state")
	}
	count := 0
	for _, item := range ws.Quote.Items() {
		if !item.IsEmpty() {
			count++
		}
	}
	return &models.Quote{
		ID:           ws.ID,
		QuoteNumber:  ws.Quote.QuoteID,
		CustomerName: ws.Quote.Customer.Name,
		ProductKey:   ws.Quote.CurrentProduct,
		ItemCount:    count,
		Payload:      payload,
		UIState:      ui,
	}, nil
}

func fromModel(m *models.Quote) (*Workspace, error) {
	var q quote.QuoteData
	if err := m.Payload.Unmarshal(&q); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode quote")
	}
	ui := state.DefaultUI()
	if err := m.UIState.Unmarshal(&ui); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode ui state")
	}
	return &Workspace{ID: m.ID, Quote: &q, UI: ui, UpdatedAt: m.UpdatedAt}, nil
}
