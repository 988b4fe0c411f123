// Package pricing computes line prices and the quote total.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/pkg/config"
	"github.com/angelmondragon/blindquote/pkg/enums"
)

var mmPerMetreSquared = decimal.NewFromInt(1_000_000)

// Summary is the outcome of a pricing pass.
type Summary struct {
	Total   decimal.Decimal `json:"total"`
	Priced  int             `json:"priced"`
	Skipped int             `json:"skipped"`
}

// Calculator prices roller-blind rows by fabric area plus hardware.
type Calculator struct {
	rates       map[string]decimal.Decimal
	motor       decimal.Decimal
	hdWinder    decimal.Decimal
	minimumArea decimal.Decimal
}

// NewCalculator builds a calculator from configured rates.
func NewCalculator(cfg config.PricingConfig) (*Calculator, error) {
	if len(cfg.RatesPerSqm) == 0 {
		return nil, fmt.Errorf("pricing rates required")
	}
	rates := make(map[string]decimal.Decimal, len(cfg.RatesPerSqm))
	for fabricType, rate := range cfg.RatesPerSqm {
		if rate < 0 {
			return nil, fmt.Errorf("negative rate for fabric type %s", fabricType)
		}
		rates[fabricType] = decimal.NewFromFloat(rate)
	}
	return &Calculator{
		rates:       rates,
		motor:       decimal.NewFromFloat(cfg.MotorPrice),
		hdWinder:    decimal.NewFromFloat(cfg.HDWinderPrice),
		minimumArea: decimal.NewFromFloat(cfg.MinimumArea),
	}, nil
}

// CalculateAndSum returns a copy of q with every line price recomputed, and
// the summed total. Empty rows and rows without a known rate get no price.
func (c *Calculator) CalculateAndSum(q *quote.QuoteData) (*quote.QuoteData, Summary) {
	out := q.Clone()
	summary := Summary{Total: decimal.Zero}
	items := out.Items()
	for i := range items {
		item := &items[i]
		if item.IsEmpty() {
			item.LinePrice = nil
			continue
		}
		price, ok := c.linePrice(*item, out.IsLF(i))
		if !ok {
			item.LinePrice = nil
			summary.Skipped++
			continue
		}
		f, _ := price.Float64()
		item.LinePrice = quote.Float(f)
		summary.Total = summary.Total.Add(price)
		summary.Priced++
	}
	return out, summary
}

func (c *Calculator) linePrice(item quote.LineItem, isLF bool) (decimal.Decimal, bool) {
	if item.Width == nil || item.Height == nil {
		return decimal.Zero, false
	}
	rateKey := item.Type()
	if isLF {
		rateKey = enums.FabricTypeLF.String()
	}
	rate, ok := c.rates[rateKey]
	if !ok {
		return decimal.Zero, false
	}

	area := decimal.NewFromInt(int64(*item.Width)).
		Mul(decimal.NewFromInt(int64(*item.Height))).
		Div(mmPerMetreSquared)
	if area.LessThan(c.minimumArea) {
		area = c.minimumArea
	}

	price := area.Mul(rate)
	if item.HasMotor() {
		price = price.Add(c.motor)
	}
	if item.Winder == quote.WinderHeavyDuty {
		price = price.Add(c.hdWinder)
	}
	return price.Round(2), true
}
