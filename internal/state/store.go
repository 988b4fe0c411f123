// Package state holds the live quote and editor state of one workspace.
package state

import (
	"fmt"
	"sort"
	"sync"

	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/internal/snapshot"
	"github.com/angelmondragon/blindquote/pkg/enums"
	pkgerrors "github.com/angelmondragon/blindquote/pkg/errors"
)

// Store guards a quote and its UI state. Readers always receive deep copies,
// and Update swaps in a new state only after the mutation succeeds.
type Store struct {
	mu         sync.RWMutex
	productKey string
	quote      *quote.QuoteData
	ui         UIState
}

// NewStore starts a workspace from the default quote template.
func NewStore(productKey string) *Store {
	if productKey == "" {
		productKey = quote.DefaultProduct
	}
	return &Store{
		productKey: productKey,
		quote:      quote.NewDefault(productKey),
		ui:         DefaultUI(),
	}
}

// Restore builds a store around previously saved state.
func Restore(q *quote.QuoteData, ui UIState) *Store {
	s := NewStore("")
	if q != nil {
		s.productKey = q.CurrentProduct
		s.quote = q.Clone()
	}
	s.ui = ui.Clone()
	if !s.ui.EditMode.IsValid() {
		s.ui.EditMode = enums.EditModeIdle
	}
	return s
}

// Snapshot returns copies of the current quote and UI state.
func (s *Store) Snapshot() (*quote.QuoteData, UIState) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quote.Clone(), s.ui.Clone()
}

// Quote returns a copy of the current quote.
func (s *Store) Quote() *quote.QuoteData {
	q, _ := s.Snapshot()
	return q
}

// UI returns a copy of the current UI state.
func (s *Store) UI() UIState {
	_, ui := s.Snapshot()
	return ui
}

// Update runs fn against copies of the state and commits them only when fn
// returns nil.
func (s *Store) Update(fn func(q *quote.QuoteData, ui *UIState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.quote.Clone()
	ui := s.ui.Clone()
	if err := fn(q, &ui); err != nil {
		return err
	}
	s.quote = q
	s.ui = ui
	return nil
}

func (s *Store) updateUI(fn func(ui *UIState)) {
	_ = s.Update(func(_ *quote.QuoteData, ui *UIState) error {
		fn(ui)
		return nil
	})
}

// SetQuoteData replaces the quote wholesale. A nil quote resets to the
// default template.
func (s *Store) SetQuoteData(q *quote.QuoteData) {
	if q == nil {
		q = quote.NewDefault(s.productKey)
	}
	_ = s.Update(func(cur *quote.QuoteData, _ *UIState) error {
		*cur = *q.Clone()
		return nil
	})
}

// ResetQuote replaces the quote with the default template.
func (s *Store) ResetQuote() {
	s.SetQuoteData(quote.NewDefault(s.productKey))
}

// ResetUI restores the default editor state.
func (s *Store) ResetUI() {
	s.updateUI(func(ui *UIState) { *ui = DefaultUI() })
}

// RestoreF1Snapshot copies the user overrides saved in a snapshot back into
// the UI state.
func (s *Store) RestoreF1Snapshot(snap *quote.Snapshot) {
	if snap == nil {
		return
	}
	s.updateUI(func(ui *UIState) { ui.restoreFrom(snap) })
}

func (s *Store) SetSumOutdated(outdated bool) {
	s.updateUI(func(ui *UIState) { ui.SumOutdated = outdated })
}

func (s *Store) SetModalActive(active bool) {
	s.updateUI(func(ui *UIState) { ui.ModalActive = active })
}

// SetMultiSelect replaces the main-table selection. Indexes are kept unique
// and sorted.
func (s *Store) SetMultiSelect(indexes []int) {
	s.updateUI(func(ui *UIState) { ui.MultiSelectSelectedIndexes = uniqueSorted(indexes) })
}

func (s *Store) ClearMultiSelect() {
	s.updateUI(func(ui *UIState) { ui.MultiSelectSelectedIndexes = []int{} })
}

// ToggleLFSelection adds or removes a row from the LF-Del selection.
func (s *Store) ToggleLFSelection(index int) {
	s.updateUI(func(ui *UIState) {
		for i, cur := range ui.LFSelectedRowIndexes {
			if cur == index {
				ui.LFSelectedRowIndexes = append(ui.LFSelectedRowIndexes[:i], ui.LFSelectedRowIndexes[i+1:]...)
				return
			}
		}
		ui.LFSelectedRowIndexes = append(ui.LFSelectedRowIndexes, index)
	})
}

// SetEditMode moves the edit state machine. Disallowed transitions fail with
// a state conflict and leave the state unchanged.
func (s *Store) SetEditMode(mode enums.EditMode) error {
	return s.Update(func(_ *quote.QuoteData, ui *UIState) error {
		if !ui.EditMode.CanTransition(mode) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move from %s to %s", ui.EditMode, mode))
		}
		ui.EditMode = mode
		return nil
	})
}

// EnterLFDeleteMode starts LF-Del selection with an empty selection. The mode
// change and the cleared selection are committed together or not at all.
func (s *Store) EnterLFDeleteMode() error {
	return s.Update(func(_ *quote.QuoteData, ui *UIState) error {
		if !ui.EditMode.CanTransition(enums.EditModeLFDeleteSelect) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move from %s to %s", ui.EditMode, enums.EditModeLFDeleteSelect))
		}
		ui.EditMode = enums.EditModeLFDeleteSelect
		ui.LFSelectedRowIndexes = []int{}
		return nil
	})
}

// ExitAllModes returns to idle and clears every selection.
func (s *Store) ExitAllModes() {
	s.updateUI(func(ui *UIState) {
		ui.EditMode = enums.EditModeIdle
		ui.MultiSelectSelectedIndexes = []int{}
		ui.LFSelectedRowIndexes = []int{}
	})
}

func (s *Store) SetF1Discount(pct *float64) {
	s.updateUI(func(ui *UIState) { ui.F1.DiscountPercentage = copyFloat(pct) })
}

func (s *Store) SetF1Remote(oneCh, sixteenCh *float64) {
	s.updateUI(func(ui *UIState) {
		ui.F1.Remote1ch = copyFloat(oneCh)
		ui.F1.Remote16ch = copyFloat(sixteenCh)
	})
}

func (s *Store) SetF1Dual(combo, slim *float64) {
	s.updateUI(func(ui *UIState) {
		ui.F1.DualCombo = copyFloat(combo)
		ui.F1.DualSlim = copyFloat(slim)
	})
}

// SetDriveCounts stores the accessory counters entered on the drive tab.
func (s *Store) SetDriveCounts(remote, charger, cord int) {
	s.updateUI(func(ui *UIState) {
		ui.DriveRemoteCount = remote
		ui.DriveChargerCount = charger
		ui.DriveCordCount = cord
	})
}

// SnapshotInputs exposes the UI values snapshot reconciliation needs.
func (s *Store) SnapshotInputs() snapshot.Inputs {
	ui := s.UI()
	return InputsFrom(ui)
}

// InputsFrom maps UI state onto reconciliation inputs.
func InputsFrom(ui UIState) snapshot.Inputs {
	return snapshot.Inputs{
		RemoteTotal:        ui.DriveRemoteCount,
		ChargerCount:       ui.DriveChargerCount,
		CordCount:          ui.DriveCordCount,
		Remote1ch:          ui.F1.Remote1ch,
		Remote16ch:         ui.F1.Remote16ch,
		DualCombo:          ui.F1.DualCombo,
		DualSlim:           ui.F1.DualSlim,
		DiscountPercentage: ui.F1.DiscountPercentage,
	}
}

func uniqueSorted(in []int) []int {
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
