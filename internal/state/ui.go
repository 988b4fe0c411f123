package state

import (
	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/pkg/enums"
)

// UIState is the editor state that travels alongside a quote but is not part
// of the saved file.
type UIState struct {
	DriveRemoteCount  int `json:"driveRemoteCount"`
	DriveChargerCount int `json:"driveChargerCount"`
	DriveCordCount    int `json:"driveCordCount"`

	F1 F1State `json:"f1"`

	MultiSelectSelectedIndexes []int          `json:"multiSelectSelectedIndexes"`
	LFSelectedRowIndexes       []int          `json:"lfSelectedRowIndexes"`
	EditMode                   enums.EditMode `json:"activeEditMode"`
	ModalActive                bool           `json:"modalActive"`
	SumOutdated                bool           `json:"isSumOutdated"`
}

// F1State holds the user overrides of the accessory cost tab. Nil means the
// value was never set and the derived default applies.
type F1State struct {
	Remote1ch          *float64 `json:"remote_1ch_qty"`
	Remote16ch         *float64 `json:"remote_16ch_qty"`
	DualCombo          *float64 `json:"dual_combo_qty"`
	DualSlim           *float64 `json:"dual_slim_qty"`
	DiscountPercentage *float64 `json:"discountPercentage"`
}

// DefaultUI is the state of a freshly opened editor.
func DefaultUI() UIState {
	return UIState{
		MultiSelectSelectedIndexes: []int{},
		LFSelectedRowIndexes:       []int{},
		EditMode:                   enums.EditModeIdle,
	}
}

// Clone returns a copy sharing no memory with u.
func (u UIState) Clone() UIState {
	out := u
	out.MultiSelectSelectedIndexes = append([]int{}, u.MultiSelectSelectedIndexes...)
	out.LFSelectedRowIndexes = append([]int{}, u.LFSelectedRowIndexes...)
	out.F1 = u.F1.Clone()
	return out
}

// Clone returns a copy of the overrides.
func (f F1State) Clone() F1State {
	return F1State{
		Remote1ch:          copyFloat(f.Remote1ch),
		Remote16ch:         copyFloat(f.Remote16ch),
		DualCombo:          copyFloat(f.DualCombo),
		DualSlim:           copyFloat(f.DualSlim),
		DiscountPercentage: copyFloat(f.DiscountPercentage),
	}
}

// RestoreSnapshot loads the user overrides saved in s. A nil snapshot is a no-op.
func (u *UIState) RestoreSnapshot(s *quote.Snapshot) {
	if s == nil {
		return
	}
	u.restoreFrom(s)
}

// restoreFrom loads the overrides and the drive counters saved in a snapshot.
// Derived counts (winders, motors) are not restored; they follow the rows.
func (u *UIState) restoreFrom(s *quote.Snapshot) {
	u.F1 = F1State{
		Remote1ch:          copyFloat(s.Remote1chQty),
		Remote16ch:         copyFloat(s.Remote16chQty),
		DualCombo:          copyFloat(s.DualComboQty),
		DualSlim:           copyFloat(s.DualSlimQty),
		DiscountPercentage: copyFloat(s.DiscountPercentage),
	}
	if v, ok := s.Get("charger_qty"); ok {
		u.DriveChargerCount = int(v)
	}
	if v, ok := s.Get("cord_qty"); ok {
		u.DriveCordCount = int(v)
	}
	one, hasOne := s.Get("remote_1ch_qty")
	sixteen, hasSixteen := s.Get("remote_16ch_qty")
	if hasOne || hasSixteen {
		u.DriveRemoteCount = int(one + sixteen)
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
