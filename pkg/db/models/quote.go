package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/angelmondragon/blindquote/pkg/db/types"
)

// Quote is a saved roller-blind quote. Payload holds the full quote document
// and UIState the editor state it was saved with.
type Quote struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	QuoteNumber  string               `gorm:"column:quote_number;not null;uniqueIndex:quotes_quote_number_key"`
	CustomerName string               `gorm:"column:customer_name;not null;default:''"`
	ProductKey   string               `gorm:"column:product_key;not null"`
	ItemCount    int                  `gorm:"column:item_count;not null;default:0"`
	Payload      dbtypes.JSONDocument `gorm:"column:payload;type:jsonb;not null"`
	UIState      dbtypes.JSONDocument `gorm:"column:ui_state;type:jsonb"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (Quote) TableName() string {
	return "quotes"
}
