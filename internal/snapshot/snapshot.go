// Package snapshot produces the export-ready copy of a quote with its
// accessory snapshot reconciled against the live rows and the user's F1 inputs.
package snapshot

import (
	"context"
	"errors"

	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/pkg/logger"
)

// ErrSnapshotMissing is logged when the quote carries no F1 snapshot.
var ErrSnapshotMissing = errors.New("f1Snapshot object is missing from quote data")

// Inputs are the user-set accessory values held in UI state.
type Inputs struct {
	RemoteTotal  int
	ChargerCount int
	CordCount    int

	Remote1ch          *float64
	Remote16ch         *float64
	DualCombo          *float64
	DualSlim           *float64
	DiscountPercentage *float64
}

// Counts are the accessory figures derived from the rows alone.
type Counts struct {
	Winders   int
	Motors    int
	DualPairs int
}

// Count derives accessory figures from items.
func Count(items []quote.LineItem) Counts {
	var c Counts
	duals := 0
	for _, item := range items {
		if item.Winder == quote.WinderHeavyDuty {
			c.Winders++
		}
		if item.HasMotor() {
			c.Motors++
		}
		if item.Dual == quote.DualMount {
			duals++
		}
	}
	c.DualPairs = duals / 2
	return c
}

// Reconcile returns a deep copy of q whose snapshot has the item-derived
// counts recomputed and the user inputs carried over. q is never modified.
// When q has no snapshot the error is logged and the copy is returned as is.
func Reconcile(ctx context.Context, logg *logger.Logger, q *quote.QuoteData, in Inputs) *quote.QuoteData {
	out := q.Clone()
	if out == nil {
		return nil
	}
	if out.F1Snapshot == nil {
		if logg == nil {
			logg = logger.Nop()
		}
		logg.Error(ctx, "cannot save f1 state", ErrSnapshotMissing)
		return out
	}

	counts := Count(out.Items())
	snap := out.F1Snapshot

	snap.WinderQty = count(counts.Winders)
	snap.MotorQty = count(counts.Motors)
	snap.ChargerQty = count(in.ChargerCount)
	snap.CordQty = count(in.CordCount)

	if in.Remote1ch == nil {
		snap.Remote1chQty = count(0)
		snap.Remote16chQty = count(in.RemoteTotal)
	} else {
		snap.Remote1chQty = quote.Float(*in.Remote1ch)
		snap.Remote16chQty = copyOf(in.Remote16ch)
	}

	if in.DualCombo == nil {
		snap.DualComboQty = count(counts.DualPairs)
	} else {
		snap.DualComboQty = quote.Float(*in.DualCombo)
	}
	if in.DualSlim == nil {
		snap.DualSlimQty = count(0)
	} else {
		snap.DualSlimQty = quote.Float(*in.DualSlim)
	}

	snap.DiscountPercentage = copyOf(in.DiscountPercentage)
	return out
}

func count(n int) *float64 {
	return quote.Float(float64(n))
}

func copyOf(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return quote.Float(*v)
}
