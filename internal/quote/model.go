package quote

// QuoteData is the root aggregate of a roller-blind quote.
type QuoteData struct {
	CurrentProduct string                   `json:"currentProduct"`
	Products       map[string]*ProductEntry `json:"products"`
	UIMetadata     UIMetadata               `json:"uiMetadata"`
	F1Snapshot     *Snapshot                `json:"f1Snapshot,omitempty"`
	QuoteID        string                   `json:"quoteId"`
	IssueDate      string                   `json:"issueDate"`
	DueDate        string                   `json:"dueDate"`
	Customer       Customer                 `json:"customer"`
}

// ProductEntry holds the ordered rows of one product.
type ProductEntry struct {
	Items []LineItem `json:"items"`
}

// UIMetadata carries row bookkeeping that travels with the quote.
// LFModifiedRowIndexes has set semantics: sorted, no duplicates.
type UIMetadata struct {
	LFModifiedRowIndexes []int `json:"lfModifiedRowIndexes"`
}

// LineItem is one row of the quote table. Width and Height both nil means
// the row is an empty placeholder.
type LineItem struct {
	ItemID     string   `json:"itemId"`
	Width      *int     `json:"width"`
	Height     *int     `json:"height"`
	FabricType *string  `json:"fabricType"`
	Fabric     string   `json:"fabric"`
	Color      string   `json:"color"`
	LinePrice  *float64 `json:"linePrice"`
	Location   string   `json:"location"`
	Over       string   `json:"over"`
	OI         string   `json:"oi"`
	LR         string   `json:"lr"`
	Dual       string   `json:"dual"`
	Chain      *int     `json:"chain"`
	Winder     string   `json:"winder"`
	Motor      string   `json:"motor"`
}

// Snapshot is the denormalized accessory projection saved with a quote.
// Winder, motor and dual counts are recomputed from the rows on every save.
type Snapshot struct {
	WinderQty          *float64 `json:"winder_qty"`
	MotorQty           *float64 `json:"motor_qty"`
	ChargerQty         *float64 `json:"charger_qty"`
	CordQty            *float64 `json:"cord_qty"`
	Remote1chQty       *float64 `json:"remote_1ch_qty"`
	Remote16chQty      *float64 `json:"remote_16ch_qty"`
	DualComboQty       *float64 `json:"dual_combo_qty"`
	DualSlimQty        *float64 `json:"dual_slim_qty"`
	DiscountPercentage *float64 `json:"discountPercentage"`
}

type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

const (
	WinderHeavyDuty = "HD"
	DualMount       = "D"
)

// IsEmpty reports whether the row has neither width nor height.
func (li LineItem) IsEmpty() bool {
	return li.Width == nil && li.Height == nil
}

// Type returns the fabric type code or "" when unset.
func (li LineItem) Type() string {
	if li.FabricType == nil {
		return ""
	}
	return *li.FabricType
}

// HasMotor reports whether a motor code is set.
func (li LineItem) HasMotor() bool {
	return li.Motor != ""
}

// Field returns a pointer to the named snapshot field, or nil for an unknown key.
func (s *Snapshot) Field(key string) **float64 {
	if s == nil {
		return nil
	}
	switch key {
	case "winder_qty":
		return &s.WinderQty
	case "motor_qty":
		return &s.MotorQty
	case "charger_qty":
		return &s.ChargerQty
	case "cord_qty":
		return &s.CordQty
	case "remote_1ch_qty":
		return &s.Remote1chQty
	case "remote_16ch_qty":
		return &s.Remote16chQty
	case "dual_combo_qty":
		return &s.DualComboQty
	case "dual_slim_qty":
		return &s.DualSlimQty
	case "discountPercentage":
		return &s.DiscountPercentage
	}
	return nil
}

// Get returns the value of the named field; ok is false when the key is unknown or unset.
func (s *Snapshot) Get(key string) (float64, bool) {
	f := s.Field(key)
	if f == nil || *f == nil {
		return 0, false
	}
	return **f, true
}

// Set stores v on the named field and reports whether the key is known.
func (s *Snapshot) Set(key string, v float64) bool {
	f := s.Field(key)
	if f == nil {
		return false
	}
	*f = Float(v)
	return true
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
