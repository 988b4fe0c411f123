package quotes

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/internal/state"
)

// Workspace is a saved quote together with the editor state it was left in.
type Workspace struct {
	ID        uuid.UUID        `json:"id"`
	Quote     *quote.QuoteData `json:"quote"`
	UI        state.UIState    `json:"ui"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// SummaryDTO is the list projection of a saved quote.
type SummaryDTO struct {
	ID           uuid.UUID `json:"id"`
	QuoteNumber  string    `json:"quote_number"`
	CustomerName string    `json:"customer_name"`
	ItemCount    int       `json:"item_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Pagination struct {
	Current string `json:"current,omitempty"`
	Next    string `json:"next,omitempty"`
	Total   int    `json:"total"`
}

// PageDTO is one cursor page of saved quotes, newest first.
type PageDTO struct {
	Items      []SummaryDTO `json:"items"`
	Pagination Pagination   `json:"pagination"`
}
