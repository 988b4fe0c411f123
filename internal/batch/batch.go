// Package batch applies property changes to subsets of quote rows and keeps
// the Light-Filter row set in step.
//
// Every operation mutates the quote it is given in place. Callers that need
// all-or-nothing visibility hand in a clone and swap it in afterwards.
package batch

import (
	"fmt"

	"github.com/angelmondragon/blindquote/internal/quote"
	pkgerrors "github.com/angelmondragon/blindquote/pkg/errors"
)

// LightFilterPrefix is prepended to the fabric name of every LF row.
const LightFilterPrefix = "Light-filter "

// MsgLFFieldsRequired is reported when an LF apply is missing a name or a color.
const MsgLFFieldsRequired = "No changes applied. Both F-Name and F-Color are required."

// ErrLFFieldsRequired rejects an LF apply before any row is touched.
var ErrLFFieldsRequired = pkgerrors.New(pkgerrors.CodePrecondition, MsgLFFieldsRequired)

// FabricColor is the name/color pair applied to one fabric type.
type FabricColor struct {
	Fabric string `json:"fabric"`
	Color  string `json:"color"`
}

// IndexSet is a set of row indexes.
type IndexSet map[int]struct{}

// NewIndexSet builds a set from indexes.
func NewIndexSet(indexes ...int) IndexSet {
	set := make(IndexSet, len(indexes))
	for _, i := range indexes {
		set[i] = struct{}{}
	}
	return set
}

// Has reports membership. A nil set contains nothing.
func (s IndexSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// UpdatePropertyByType sets field to value on every row whose fabric type is
// fabricType and whose index is not in exclude. It returns the number of rows
// matched.
func UpdatePropertyByType(q *quote.QuoteData, fabricType string, field Field, value string, exclude IndexSet) (int, error) {
	if !field.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown field %q", field))
	}
	items := q.Items()
	changed := 0
	for i := range items {
		if items[i].Type() != fabricType || exclude.Has(i) {
			continue
		}
		*field.ref(&items[i]) = value
		changed++
	}
	return changed, nil
}

// UpdatePropertiesForIndexes sets fabric and color on each listed row from the
// pair keyed by that row's own fabric type. Rows whose type has no entry and
// indexes outside the list are skipped.
func UpdatePropertiesForIndexes(q *quote.QuoteData, indexes []int, typeMap map[string]FabricColor) int {
	changed := 0
	for _, i := range indexes {
		item := q.Item(i)
		if item == nil {
			continue
		}
		pair, ok := typeMap[item.Type()]
		if !ok {
			continue
		}
		item.Fabric = pair.Fabric
		item.Color = pair.Color
		changed++
	}
	return changed
}

// ApplyLF marks the listed rows as Light-Filter: the fabric name gets the LF
// prefix, the color is stored as given and the indexes join the LF set.
func ApplyLF(q *quote.QuoteData, indexes []int, fabric, color string) (int, error) {
	if fabric == "" || color == "" {
		return 0, ErrLFFieldsRequired
	}
	applied := make([]int, 0, len(indexes))
	for _, i := range indexes {
		item := q.Item(i)
		if item == nil {
			continue
		}
		item.Fabric = LightFilterPrefix + fabric
		item.Color = color
		applied = append(applied, i)
	}
	q.AddLFRows(applied...)
	return len(applied), nil
}

// RemoveLF clears fabric and color on the listed rows that are currently LF
// and drops the indexes from the LF set. Indexes not in the set are ignored.
func RemoveLF(q *quote.QuoteData, indexes []int) int {
	cleared := 0
	for _, i := range indexes {
		if !q.IsLF(i) {
			continue
		}
		if item := q.Item(i); item != nil {
			item.Fabric = ""
			item.Color = ""
			cleared++
		}
	}
	q.RemoveLFRows(indexes...)
	return cleared
}
