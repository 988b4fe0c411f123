// Package fabric implements the fabric tab workflows: batch name and color
// edits, Light-Filter application and removal, and Selective Set.
package fabric

import (
	"context"
	"fmt"

	"github.com/angelmondragon/blindquote/internal/batch"
	"github.com/angelmondragon/blindquote/internal/dialog"
	"github.com/angelmondragon/blindquote/internal/quote"
	"github.com/angelmondragon/blindquote/internal/state"
	"github.com/angelmondragon/blindquote/pkg/enums"
	"github.com/angelmondragon/blindquote/pkg/logger"
)

// BatchObserver receives the size of every committed batch edit.
type BatchObserver interface {
	ObserveBatch(operation string, rows int)
}

// Service runs the fabric workflows against one workspace.
type Service interface {
	OpenNameColor(ctx context.Context) error
	OpenLightFilter(ctx context.Context) error
	OpenSelectiveSet(ctx context.Context) error
	ToggleLFDelete(ctx context.Context) error
	SelectSequence(ctx context.Context, index int) error
	Activate(ctx context.Context)

	ApplyNameColor(ctx context.Context, overwrite bool, values map[string]batch.FabricColor) (Outcome, error)
	ApplyLightFilter(ctx context.Context, indexes []int, fabric, color string) (Outcome, error)
	ApplySelectiveSet(ctx context.Context, indexes []int, values map[string]batch.FabricColor) (Outcome, error)
	ClearLightFilter(ctx context.Context, indexes []int) (Outcome, error)
}

// Outcome reports a committed batch edit.
type Outcome struct {
	Changed int    `json:"changed"`
	Message string `json:"message"`
}

type service struct {
	store     *state.Store
	presenter dialog.Presenter
	notifier  dialog.Notifier
	observer  BatchObserver
	logg      *logger.Logger
}

// NewService wires the fabric workflows. observer may be nil.
func NewService(store *state.Store, presenter dialog.Presenter, notifier dialog.Notifier, observer BatchObserver, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("state store required")
	}
	if presenter == nil {
		return nil, fmt.Errorf("dialog presenter required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		store:     store,
		presenter: presenter,
		notifier:  notifier,
		observer:  observer,
		logg:      logg,
	}, nil
}

func (s *service) observe(operation string, rows int) {
	if s.observer != nil {
		s.observer.ObserveBatch(operation, rows)
	}
}

func (s *service) unlock() {
	s.store.SetModalActive(false)
}

func (s *service) cancelButton() dialog.Cell {
	return dialog.Button(buttonCancel, "Cancel", 1, func(context.Context, dialog.Values) bool {
		s.unlock()
		return true
	})
}

func (s *service) show(ctx context.Context, spec dialog.Spec) error {
	if err := s.presenter.Show(ctx, spec); err != nil {
		s.unlock()
		s.logg.Error(ctx, "failed to show fabric dialog", err)
		return err
	}
	return nil
}

// OpenNameColor starts the N&C flow. When LF rows exist the user first picks
// whether they are overwritten or preserved. The choice dialog closes if the
// N&C dialog cannot be shown; show has already logged and unlocked.
func (s *service) OpenNameColor(ctx context.Context) error {
	s.store.SetModalActive(true)

	if len(s.store.Quote().LFRows()) == 0 {
		return s.showNameColor(ctx, false)
	}

	overwrite := dialog.Button(buttonOverwrite, "Overwrite LF items (Update All)", 1, func(ctx context.Context, _ dialog.Values) bool {
		return s.showNameColor(ctx, true) != nil
	})
	overwrite.Primary = true
	preserve := dialog.Button(buttonPreserve, "Preserve LF items (Update Non-LF Only)", 1, func(ctx context.Context, _ dialog.Values) bool {
		return s.showNameColor(ctx, false) != nil
	})

	return s.show(ctx, dialog.Spec{
		Message: msgLFConflict,
		Columns: "1fr",
		Rows: [][]dialog.Cell{
			{overwrite},
			{preserve},
			{s.cancelButton()},
		},
	})
}

func (s *service) showNameColor(ctx context.Context, overwrite bool) error {
	q := s.store.Quote()
	groups := batch.GroupByType(q, nil, batch.ExclusionSet(q, overwrite))
	if len(groups) == 0 {
		msg := msgNoNonLFItems
		if overwrite {
			msg = msgNoItemsOverwrite
		}
		s.notifier.Notify(ctx, dialog.Info(msg))
		s.unlock()
		return nil
	}

	rows, types, focus := typeRows(groups, NameInputID, ColorInputID)
	confirm := dialog.Button(buttonConfirm, "Confirm", 2, func(ctx context.Context, values dialog.Values) bool {
		entered := map[string]batch.FabricColor{}
		for _, t := range types {
			entered[t] = batch.FabricColor{Fabric: values.Get(NameInputID(t)), Color: values.Get(ColorInputID(t))}
		}
		if _, err := s.commitNameColor(ctx, overwrite, types, entered); err != nil {
			s.logg.Error(ctx, "error applying N&C batch update", err)
		}
		s.unlock()
		return true
	})
	confirm.Primary = true

	return s.show(ctx, dialog.Spec{
		Message:    titleNameColor,
		Columns:    dialogColumns,
		Rows:       append(rows, []dialog.Cell{confirm, s.cancelButton()}),
		FocusOrder: focus,
	})
}

// commitNameColor applies by-type updates for every offered type with a name
// or a color entered. The exclusion set is read from the state at commit
// time, not from the state the dialog was opened with.
func (s *service) commitNameColor(ctx context.Context, overwrite bool, types []string, entered map[string]batch.FabricColor) (int, error) {
	changed := 0
	err := s.store.Update(func(q *quote.QuoteData, _ *state.UIState) error {
		lfRows := q.LFRows()
		exclude := batch.ExclusionSet(q, overwrite)
		for _, t := range types {
			pair := entered[t]
			if pair.Fabric == "" && pair.Color == "" {
				continue
			}
			n, err := batch.UpdatePropertyByType(q, t, batch.FieldFabric, pair.Fabric, exclude)
			if err != nil {
				return err
			}
			if _, err := batch.UpdatePropertyByType(q, t, batch.FieldColor, pair.Color, exclude); err != nil {
				return err
			}
			changed += n
		}
		if overwrite && len(lfRows) > 0 {
			q.RemoveLFRows(lfRows...)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.observe(operationNameColor, changed)
	s.logg.Info(s.logg.WithField(ctx, "rows", changed), "fabric name and color applied")
	return changed, nil
}

// OpenLightFilter offers LF name and color for the eligible rows of the
// current selection.
func (s *service) OpenLightFilter(ctx context.Context) error {
	s.store.SetModalActive(true)

	q, ui := s.store.Snapshot()
	if len(ui.MultiSelectSelectedIndexes) == 0 {
		s.notifier.Notify(ctx, dialog.Info(msgSelectFirst))
		s.unlock()
		return nil
	}
	eligible := batch.FilterLFEligible(q, ui.MultiSelectSelectedIndexes)
	if len(eligible) == 0 {
		s.notifier.Notify(ctx, dialog.Info(msgNoLFEligible))
		s.unlock()
		return nil
	}

	nameID, colorID := NameInputID(lfInputType), ColorInputID(lfInputType)
	confirm := dialog.Button(buttonConfirm, "Confirm", 2, func(ctx context.Context, values dialog.Values) bool {
		name, color := values.Get(nameID), values.Get(colorID)
		if name == "" || color == "" {
			s.notifier.Notify(ctx, dialog.Error(batch.MsgLFFieldsRequired))
			return false
		}
		n, err := s.commitLightFilter(eligible, name, color)
		if err != nil {
			s.logg.Error(ctx, "error applying LF batch update", err)
			s.unlock()
			return true
		}
		s.notifier.Notify(ctx, dialog.Info(fmt.Sprintf(msgLFApplied, n)))
		s.unlock()
		return true
	})
	confirm.Primary = true

	return s.show(ctx, dialog.Spec{
		Message: fmt.Sprintf(titleLightFilter, len(eligible)),
		Columns: dialogColumns,
		Rows: [][]dialog.Cell{
			headerRow(),
			{dialog.Text(lfInputType), dialog.Input(nameID, ""), dialog.Input(colorID, "")},
			{confirm, s.cancelButton()},
		},
		FocusOrder: []string{nameID, colorID},
	})
}

func (s *service) commitLightFilter(indexes []int, name, color string) (int, error) {
	applied := 0
	err := s.store.Update(func(q *quote.QuoteData, ui *state.UIState) error {
		n, err := batch.ApplyLF(q, indexes, name, color)
		if err != nil {
			return err
		}
		applied = n
		ui.MultiSelectSelectedIndexes = []int{}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.observe(operationLightFilter, applied)
	return applied, nil
}

// OpenSelectiveSet offers per-type name and color for the non-LF rows of the
// current selection.
func (s *service) OpenSelectiveSet(ctx context.Context) error {
	s.store.SetModalActive(true)

	q, ui := s.store.Snapshot()
	selection := ui.MultiSelectSelectedIndexes
	if len(selection) == 0 {
		s.notifier.Notify(ctx, dialog.Info(msgSelectFirst))
		s.unlock()
		return nil
	}
	groups := batch.GroupByType(q, selection, batch.ExclusionSet(q, false))
	if len(groups) == 0 {
		s.notifier.Notify(ctx, dialog.Info(msgAllSelectedLF))
		s.unlock()
		return nil
	}

	rows, types, focus := typeRows(groups, SelectiveNameInputID, SelectiveColorInputID)
	confirm := dialog.Button(buttonConfirm, "Confirm", 2, func(ctx context.Context, values dialog.Values) bool {
		typeMap := map[string]batch.FabricColor{}
		for _, t := range types {
			name, color := values.Get(SelectiveNameInputID(t)), values.Get(SelectiveColorInputID(t))
			if name != "" && color != "" {
				typeMap[t] = batch.FabricColor{Fabric: name, Color: color}
			}
		}
		if len(typeMap) == 0 {
			s.notifier.Notify(ctx, dialog.Error(msgSSetNeedsPair))
			return false
		}
		if _, err := s.commitSelectiveSet(selection, typeMap); err != nil {
			s.logg.Error(ctx, "error applying SSet batch update", err)
		} else {
			s.notifier.Notify(ctx, dialog.Info(msgSSetApplied))
		}
		s.unlock()
		return true
	})
	confirm.Primary = true

	return s.show(ctx, dialog.Spec{
		Message:    fmt.Sprintf(titleSelectiveSet, len(selection)),
		Columns:    dialogColumns,
		Rows:       append(rows, []dialog.Cell{confirm, s.cancelButton()}),
		FocusOrder: focus,
	})
}

// commitSelectiveSet applies typeMap to the selected rows, skipping rows that
// are LF at commit time.
func (s *service) commitSelectiveSet(selection []int, typeMap map[string]batch.FabricColor) (int, error) {
	changed := 0
	err := s.store.Update(func(q *quote.QuoteData, ui *state.UIState) error {
		exclude := batch.ExclusionSet(q, false)
		targets := make([]int, 0, len(selection))
		for _, i := range selection {
			if !exclude.Has(i) {
				targets = append(targets, i)
			}
		}
		changed = batch.UpdatePropertiesForIndexes(q, targets, typeMap)
		ui.MultiSelectSelectedIndexes = []int{}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.observe(operationSelective, changed)
	return changed, nil
}

// ToggleLFDelete drives the LF-Del mode. The first press enters selection
// mode; the second clears the LF setting of the selected rows and returns to
// idle.
func (s *service) ToggleLFDelete(ctx context.Context) error {
	ui := s.store.UI()
	if ui.EditMode != enums.EditModeLFDeleteSelect {
		if err := s.store.EnterLFDeleteMode(); err != nil {
			return err
		}
		s.notifier.Notify(ctx, dialog.Info(msgLFDeletePrompt))
		return nil
	}

	if len(ui.LFSelectedRowIndexes) > 0 {
		if _, err := s.commitLFDelete(ui.LFSelectedRowIndexes); err != nil {
			return err
		}
		s.notifier.Notify(ctx, dialog.Info(msgLFCleared))
	}
	s.Activate(ctx)
	return nil
}

func (s *service) commitLFDelete(indexes []int) (int, error) {
	cleared := 0
	err := s.store.Update(func(q *quote.QuoteData, _ *state.UIState) error {
		cleared = batch.RemoveLF(q, indexes)
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.observe(operationLFDelete, cleared)
	return cleared, nil
}

// SelectSequence handles a click on a row's sequence cell. Empty rows are
// ignored. In LF-Del mode only LF rows can be toggled.
func (s *service) SelectSequence(ctx context.Context, index int) error {
	q, ui := s.store.Snapshot()
	item := q.Item(index)
	if item == nil || item.IsEmpty() {
		return nil
	}
	if ui.EditMode != enums.EditModeLFDeleteSelect {
		return nil
	}
	if !q.IsLF(index) {
		s.notifier.Notify(ctx, dialog.Error(msgLFDeleteOnlyLF))
		return nil
	}
	s.store.ToggleLFSelection(index)
	return nil
}

// Activate resets the tab: every mode is exited and selections are cleared.
func (s *service) Activate(context.Context) {
	s.store.ExitAllModes()
}

func headerRow() []dialog.Cell {
	return []dialog.Cell{dialog.Text("Type"), dialog.Text("F-Name"), dialog.Text("F-Color")}
}

// typeRows lays out one input row per type group, pre-filled from the group.
func typeRows(groups []batch.TypeGroup, nameID, colorID func(string) string) ([][]dialog.Cell, []string, []string) {
	rows := [][]dialog.Cell{headerRow()}
	types := make([]string, 0, len(groups))
	focus := make([]string, 0, 2*len(groups))
	for _, g := range groups {
		rows = append(rows, []dialog.Cell{
			dialog.Text(g.Type),
			dialog.Input(nameID(g.Type), g.Fabric),
			dialog.Input(colorID(g.Type), g.Color),
		})
		types = append(types, g.Type)
		focus = append(focus, nameID(g.Type), colorID(g.Type))
	}
	return rows, types, focus
}
