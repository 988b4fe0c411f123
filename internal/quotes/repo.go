package quotes

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/blindquote/pkg/db"
	"github.com/angelmondragon/blindquote/pkg/db/models"
	pkgerrors "github.com/angelmondragon/blindquote/pkg/errors"
	"github.com/angelmondragon/blindquote/pkg/pagination"
)

const (
	quoteNumberConstraint = "quotes_quote_number_key"
	// sqlite names the column instead of the index.
	quoteNumberColumn = "quotes.quote_number"
)

// Repository encapsulates quote persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a quote repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, m *models.Quote) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

// Update rewrites the mutable columns of an existing quote.
func (r *Repository) Update(ctx context.Context, m *models.Quote) error {
	res := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"quote_number":  m.QuoteNumber,
			"customer_name": m.CustomerName,
			"product_key":   m.ProductKey,
			"item_count":    m.ItemCount,
			"payload":       m.Payload,
			"ui_state":      m.UIState,
		})
	if res.Error != nil {
		return mapWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var m models.Quote
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return &m, nil
}

// List returns a cursor page of quotes ordered by creation time, newest first.
func (r *Repository) List(ctx context.Context, cursor string, limit int) (PageDTO, error) {
	cursorValue := strings.TrimSpace(cursor)
	decodedCursor, err := pagination.ParseCursor(cursorValue)
	if err != nil {
		return PageDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	query := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Select("id", "quote_number", "customer_name", "item_count", "created_at", "updated_at")
	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var records []models.Quote
	if err := query.Order("created_at DESC").Order("id DESC").Limit(pagination.LimitWithBuffer(limit)).Find(&records).Error; err != nil {
		return PageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}

	resultRows, nextCursor := pagination.Trim(records, limit, func(m models.Quote) pagination.Cursor {
		return pagination.Cursor{CreatedAt: m.CreatedAt, ID: m.ID}
	})

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Quote{}).Count(&total).Error; err != nil {
		return PageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count quotes")
	}

	items := make([]SummaryDTO, 0, len(resultRows))
	for _, m := range resultRows {
		items = append(items, SummaryDTO{
			ID:           m.ID,
			QuoteNumber:  m.QuoteNumber,
			CustomerName: m.CustomerName,
			ItemCount:    m.ItemCount,
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
		})
	}
	return PageDTO{
		Items:      items,
		Pagination: Pagination{Current: cursorValue, Next: nextCursor, Total: int(total)},
	}, nil
}

func mapWriteError(err error) error {
	if db.IsUniqueViolation(err, quoteNumberConstraint) || db.IsUniqueViolation(err, quoteNumberColumn) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "quote number already in use")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save quote")
}
