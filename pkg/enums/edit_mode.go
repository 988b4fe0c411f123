package enums

import "fmt"

// EditMode is the fabric view's edit state. The only non-idle state is the
// LF-Del selection mode entered by the first LF-Del press.
type EditMode string

const (
	EditModeIdle           EditMode = "idle"
	EditModeLFDeleteSelect EditMode = "lf_delete_select"
)

var validEditModes = []EditMode{
	EditModeIdle,
	EditModeLFDeleteSelect,
}

// editModeTransitions lists the allowed next states per state.
var editModeTransitions = map[EditMode][]EditMode{
	EditModeIdle:           {EditModeLFDeleteSelect},
	EditModeLFDeleteSelect: {EditModeIdle},
}

// String implements fmt.Stringer.
func (m EditMode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known EditMode.
func (m EditMode) IsValid() bool {
	for _, candidate := range validEditModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// CanTransition reports whether moving from m to next is allowed.
// Staying in the same state is always allowed.
func (m EditMode) CanTransition(next EditMode) bool {
	if m == next {
		return m.IsValid()
	}
	for _, candidate := range editModeTransitions[m] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseEditMode converts raw input into an EditMode. Empty input maps to idle.
func ParseEditMode(value string) (EditMode, error) {
	if value == "" {
		return EditModeIdle, nil
	}
	for _, candidate := range validEditModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid edit mode %q", value)
}
