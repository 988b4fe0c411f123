package batch

import (
	"sort"

	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/pkg/enums"
)

// TypeGroup is one fabric type offered by a batch dialog, pre-filled from the
// first eligible row of that type.
type TypeGroup struct {
	Type    string `json:"type"`
	Fabric  string `json:"fabric"`
	Color   string `json:"color"`
	Indexes []int  `json:"indexes"`
}

// EligibleForFabricEdit reports whether a row may take part in a fabric batch
// edit: both dimensions and a fabric type must be set.
func EligibleForFabricEdit(item quote.LineItem) bool {
	return item.Width != nil && item.Height != nil && item.FabricType != nil && *item.FabricType != ""
}

// EligibleForLF reports whether Light-Filter may be applied to row i.
func EligibleForLF(q *quote.QuoteData, i int) bool {
	item := q.Item(i)
	if item == nil || item.Width == nil || item.Height == nil {
		return false
	}
	return enums.FabricType(item.Type()).LightFilterEligible() && !q.IsLF(i)
}

// ExclusionSet returns the rows a type-wide edit must skip: the current LF
// rows, or nothing when the caller overwrites LF rows.
func ExclusionSet(q *quote.QuoteData, overwrite bool) IndexSet {
	if overwrite {
		return IndexSet{}
	}
	return NewIndexSet(q.LFRows()...)
}

// FilterLFEligible keeps the indexes EligibleForLF accepts, in input order.
func FilterLFEligible(q *quote.QuoteData, indexes []int) []int {
	out := []int{}
	for _, i := range indexes {
		if EligibleForLF(q, i) {
			out = append(out, i)
		}
	}
	return out
}

// GroupByType collects the fabric-edit-eligible rows among indexes (all rows
// when indexes is nil) that are not excluded, grouped by fabric type. Groups
// are sorted by type; the first row of each type in list order supplies the
// pre-filled name and color.
func GroupByType(q *quote.QuoteData, indexes []int, exclude IndexSet) []TypeGroup {
	if indexes == nil {
		indexes = make([]int, len(q.Items()))
		for i := range indexes {
			indexes[i] = i
		}
	}

	byType := map[string]*TypeGroup{}
	for _, i := range indexes {
		item := q.Item(i)
		if item == nil || !EligibleForFabricEdit(*item) || exclude.Has(i) {
			continue
		}
		group, ok := byType[item.Type()]
		if !ok {
			group = &TypeGroup{Type: item.Type(), Fabric: item.Fabric, Color: item.Color}
			byType[item.Type()] = group
		}
		group.Indexes = append(group.Indexes, i)
	}

	out := make([]TypeGroup, 0, len(byType))
	for _, group := range byType {
		out = append(out, *group)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Type < out[b].Type })
	return out
}
