package quote

import (
	"sort"

	"github.com/google/uuid"
)

const DefaultProduct = "rollerBlind"

// NewDefault builds the starting quote: one product with a single empty row
// and an all-unset snapshot.
func NewDefault(productKey string) *QuoteData {
	if productKey == "" {
		productKey = DefaultProduct
	}
	return &QuoteData{
		CurrentProduct: productKey,
		Products: map[string]*ProductEntry{
			productKey: {Items: []LineItem{NewItem()}},
		},
		UIMetadata: UIMetadata{LFModifiedRowIndexes: []int{}},
		F1Snapshot: &Snapshot{},
	}
}

// NewItem returns an empty row with a fresh item id.
func NewItem() LineItem {
	return LineItem{ItemID: NewItemID()}
}

// NewItemID generates a unique row identifier. Ids are never reused.
func NewItemID() string {
	return "item-" + uuid.NewString()
}

// ActiveProduct returns the entry for CurrentProduct, or nil.
func (q *QuoteData) ActiveProduct() *ProductEntry {
	if q == nil || q.Products == nil {
		return nil
	}
	return q.Products[q.CurrentProduct]
}

// Items returns the active product's rows. The slice aliases the quote.
func (q *QuoteData) Items() []LineItem {
	p := q.ActiveProduct()
	if p == nil {
		return nil
	}
	return p.Items
}

// Item returns a pointer to the row at index i, or nil when out of range.
func (q *QuoteData) Item(i int) *LineItem {
	items := q.Items()
	if i < 0 || i >= len(items) {
		return nil
	}
	return &items[i]
}

// SetItems replaces the active product's rows and prunes stale LF indexes.
func (q *QuoteData) SetItems(items []LineItem) {
	if q.Products == nil {
		q.Products = map[string]*ProductEntry{}
	}
	p := q.Products[q.CurrentProduct]
	if p == nil {
		p = &ProductEntry{}
		q.Products[q.CurrentProduct] = p
	}
	p.Items = items
	q.PruneLFRows()
}

// HasData reports whether the quote holds anything worth confirming before a load:
// more than one row, or a single row with a dimension.
func (q *QuoteData) HasData() bool {
	items := q.Items()
	if len(items) > 1 {
		return true
	}
	return len(items) == 1 && !items[0].IsEmpty()
}

// IsLF reports whether row i carries the Light-Filter treatment.
func (q *QuoteData) IsLF(i int) bool {
	for _, idx := range q.UIMetadata.LFModifiedRowIndexes {
		if idx == i {
			return true
		}
	}
	return false
}

// LFRows returns a copy of the LF index set.
func (q *QuoteData) LFRows() []int {
	return append([]int(nil), q.UIMetadata.LFModifiedRowIndexes...)
}

// AddLFRows registers indexes in the LF set. Duplicates collapse.
func (q *QuoteData) AddLFRows(indexes ...int) {
	q.UIMetadata.LFModifiedRowIndexes = normalizeIndexes(append(q.UIMetadata.LFModifiedRowIndexes, indexes...))
}

// RemoveLFRows drops indexes from the LF set. Absent indexes are ignored.
func (q *QuoteData) RemoveLFRows(indexes ...int) {
	if len(indexes) == 0 {
		return
	}
	drop := make(map[int]struct{}, len(indexes))
	for _, i := range indexes {
		drop[i] = struct{}{}
	}
	kept := []int{}
	for _, i := range q.UIMetadata.LFModifiedRowIndexes {
		if _, ok := drop[i]; !ok {
			kept = append(kept, i)
		}
	}
	q.UIMetadata.LFModifiedRowIndexes = kept
}

// PruneLFRows removes LF indexes that no longer reference an existing row.
func (q *QuoteData) PruneLFRows() {
	n := len(q.Items())
	kept := []int{}
	for _, i := range normalizeIndexes(q.UIMetadata.LFModifiedRowIndexes) {
		if i >= 0 && i < n {
			kept = append(kept, i)
		}
	}
	q.UIMetadata.LFModifiedRowIndexes = kept
}

// normalizeIndexes sorts and de-duplicates into a new slice.
func normalizeIndexes(in []int) []int {
	out := append([]int{}, in...)
	sort.Ints(out)
	w := 0
	for r := range out {
		if r > 0 && out[r] == out[w-1] {
			continue
		}
		out[w] = out[r]
		w++
	}
	return out[:w]
}
