// Package dialog describes confirmation dialogs declaratively and defines the
// presenter and notifier contracts the workflows talk to.
package dialog

import (
	"context"

	"github.com/angelmondragon/blindquote/pkg/enums"
	"github.com/angelmondragon/blindquote/pkg/types"
)

type CellKind string

const (
	CellText   CellKind = "text"
	CellInput  CellKind = "input"
	CellButton CellKind = "button"
)

// Values maps input cell ids to the text the user entered.
type Values map[string]string

// Get returns the value for id, or "" when the input is absent.
func (v Values) Get(id string) string {
	return v[id]
}

// Cell is one grid cell. OnClick is only used by buttons; its result tells
// the presenter whether to close the dialog.
type Cell struct {
	Kind    CellKind
	ID      string
	Text    string
	Value   string
	Span    int
	Primary bool
	OnClick func(ctx context.Context, values Values) bool
}

// Spec is a complete dialog description.
type Spec struct {
	Message string
	// Columns is the relative width of each grid column, e.g. "0.8fr 1.2fr 1.2fr".
	Columns             string
	Rows                [][]Cell
	CloseOnOverlayClick bool
	// FocusOrder lists input ids in Enter-key order; the primary button follows the last one.
	FocusOrder []string
}

// Inputs returns the pre-filled value of every input cell.
func (s Spec) Inputs() Values {
	out := Values{}
	for _, row := range s.Rows {
		for _, cell := range row {
			if cell.Kind == CellInput {
				out[cell.ID] = cell.Value
			}
		}
	}
	return out
}

// Button finds a button cell by id.
func (s Spec) Button(id string) (Cell, bool) {
	for _, row := range s.Rows {
		for _, cell := range row {
			if cell.Kind == CellButton && cell.ID == id {
				return cell, true
			}
		}
	}
	return Cell{}, false
}

// Text builds a static text cell.
func Text(text string) Cell {
	return Cell{Kind: CellText, Text: text}
}

// Input builds an input cell with a pre-filled value.
func Input(id, value string) Cell {
	return Cell{Kind: CellInput, ID: id, Value: value}
}

// Button builds a button cell.
func Button(id, text string, span int, onClick func(ctx context.Context, values Values) bool) Cell {
	return Cell{Kind: CellButton, ID: id, Text: text, Span: span, OnClick: onClick}
}

// Presenter displays a dialog. Button callbacks run later, when the user acts.
type Presenter interface {
	Show(ctx context.Context, spec Spec) error
}

// Notice is a transient user-facing message.
type Notice struct {
	Message string
	Level   enums.NoticeLevel
}

func Info(message string) Notice {
	return Notice{Message: message, Level: enums.NoticeLevelInfo}
}

func Error(message string) Notice {
	return Notice{Message: message, Level: enums.NoticeLevelError}
}

// Wire converts the notice to its response form.
func (n Notice) Wire() types.Notice {
	return types.Notice{Message: n.Message, Level: n.Level.String()}
}

// Notifier delivers notices.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}
