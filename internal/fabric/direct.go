package fabric

import (
	"context"
	"fmt"

	"github.com/angelmondragon/blindquote/internal/batch"
	pkgerrors "github.com/angelmondragon/blindquote/pkg/errors"
)

func precondition(msg string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodePrecondition, msg)
}

// ApplyNameColor is the dialog-free N&C edit. Only types that are eligible
// under the chosen LF policy are applied.
func (s *service) ApplyNameColor(ctx context.Context, overwrite bool, values map[string]batch.FabricColor) (Outcome, error) {
	q := s.store.Quote()
	groups := batch.GroupByType(q, nil, batch.ExclusionSet(q, overwrite))
	if len(groups) == 0 {
		if overwrite {
			return Outcome{}, precondition(msgNoItemsOverwrite)
		}
		return Outcome{}, precondition(msgNoNonLFItems)
	}

	types := make([]string, 0, len(groups))
	for _, g := range groups {
		if _, ok := values[g.Type]; ok {
			types = append(types, g.Type)
		}
	}
	changed, err := s.commitNameColor(ctx, overwrite, types, values)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Changed: changed, Message: fmt.Sprintf(msgNameColorApplied, changed)}, nil
}

// ApplyLightFilter applies LF to the eligible rows among indexes. The
// eligibility checks run before the name and color check, as in the dialog.
func (s *service) ApplyLightFilter(_ context.Context, indexes []int, fabric, color string) (Outcome, error) {
	if len(indexes) == 0 {
		return Outcome{}, precondition(msgSelectFirst)
	}
	eligible := batch.FilterLFEligible(s.store.Quote(), indexes)
	if len(eligible) == 0 {
		return Outcome{}, precondition(msgNoLFEligible)
	}
	n, err := s.commitLightFilter(eligible, fabric, color)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Changed: n, Message: fmt.Sprintf(msgLFApplied, n)}, nil
}

// ApplySelectiveSet applies per-type pairs to the non-LF rows among indexes.
// Pairs missing a name or a color are ignored.
func (s *service) ApplySelectiveSet(_ context.Context, indexes []int, values map[string]batch.FabricColor) (Outcome, error) {
	if len(indexes) == 0 {
		return Outcome{}, precondition(msgSelectFirst)
	}
	q := s.store.Quote()
	if len(batch.GroupByType(q, indexes, batch.ExclusionSet(q, false))) == 0 {
		return Outcome{}, precondition(msgAllSelectedLF)
	}

	typeMap := map[string]batch.FabricColor{}
	for t, pair := range values {
		if pair.Fabric != "" && pair.Color != "" {
			typeMap[t] = pair
		}
	}
	if len(typeMap) == 0 {
		return Outcome{}, precondition(msgSSetNeedsPair)
	}

	n, err := s.commitSelectiveSet(indexes, typeMap)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Changed: n, Message: msgSSetApplied}, nil
}

// ClearLightFilter removes the LF setting from the listed rows. Every listed
// row must currently be LF.
func (s *service) ClearLightFilter(_ context.Context, indexes []int) (Outcome, error) {
	if len(indexes) == 0 {
		return Outcome{}, precondition(msgLFDeletePrompt)
	}
	q := s.store.Quote()
	for _, i := range indexes {
		if !q.IsLF(i) {
			return Outcome{}, precondition(msgLFDeleteOnlyLF).WithDetails(map[string]any{"index": i})
		}
	}

	n, err := s.commitLFDelete(indexes)
	if err != nil {
		return Outcome{}, err
	}
	s.store.ExitAllModes()
	return Outcome{Changed: n, Message: msgLFCleared}, nil
}
