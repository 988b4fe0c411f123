package quotes

import (
	"github.com/angelmondragon/blindquote/api/validators"
	"github.com/angelmondragon/blindquote/internal/batch"
	"github.com/angelmondragon/blindquote/internal/quote"
	internalquotes "github.com/angelmondragon/blindquote/internal/quotes"
)

const maxImportBytes = 10 << 20

type CustomerRequest struct {
	Name    string `json:"name" validate:"max=200"`
	Address string `json:"address" validate:"max=500"`
	Phone   string `json:"phone" validate:"max=50"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type CreateQuoteRequest struct {
	QuoteID  string           `json:"quote_id" validate:"omitempty,max=64"`
	Customer *CustomerRequest `json:"customer"`
}

func (req CreateQuoteRequest) toQuote(productKey string) *quote.QuoteData {
	if req.QuoteID == "" && req.Customer == nil {
		return nil
	}
	q := quote.NewDefault(productKey)
	q.QuoteID = validators.SanitizeString(req.QuoteID, 64)
	if c := req.Customer; c != nil {
		q.Customer = quote.Customer{
			Name:    validators.SanitizeString(c.Name, 200),
			Address: validators.SanitizeString(c.Address, 500),
			Phone:   validators.SanitizeString(c.Phone, 50),
			Email:   validators.SanitizeString(c.Email, 200),
		}
	}
	return q
}

type FabricColorRequest struct {
	Fabric string `json:"fabric" validate:"max=200"`
	Color  string `json:"color" validate:"max=200"`
}

func toFabricColors(values map[string]FabricColorRequest) map[string]batch.FabricColor {
	out := make(map[string]batch.FabricColor, len(values))
	for t, v := range values {
		out[t] = batch.FabricColor{
			Fabric: validators.SanitizeString(v.Fabric, 200),
			Color:  validators.SanitizeString(v.Color, 200),
		}
	}
	return out
}

type NameColorRequest struct {
	Overwrite bool                          `json:"overwrite"`
	Values    map[string]FabricColorRequest `json:"values" validate:"required,dive,keys,fabric_type,endkeys"`
}

type LightFilterRequest struct {
	Indexes []int  `json:"indexes" validate:"dive,min=0"`
	Fabric  string `json:"fabric" validate:"max=200"`
	Color   string `json:"color" validate:"max=200"`
}

type SelectiveSetRequest struct {
	Indexes []int                         `json:"indexes" validate:"dive,min=0"`
	Values  map[string]FabricColorRequest `json:"values" validate:"dive,keys,fabric_type,endkeys"`
}

type ClearLightFilterRequest struct {
	Indexes []int `json:"indexes" validate:"dive,min=0"`
}

type CalculateRequest struct {
	DiscountPercentage *float64 `json:"discount_percentage" validate:"omitempty,min=0,max=100"`
}

type WorkspaceResponse struct {
	Workspace *internalquotes.Workspace `json:"workspace"`
	Result    any                       `json:"result,omitempty"`
}
