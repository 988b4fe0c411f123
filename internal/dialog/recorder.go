package dialog

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/blindquote/pkg/types"
)

// Recorder is an in-memory Presenter and Notifier. It keeps a stack of open
// dialogs and the notices sent, and lets callers press buttons.
type Recorder struct {
	mu      sync.Mutex
	open    []openDialog
	shown   int
	notices []Notice
}

type openDialog struct {
	seq  int
	spec Spec
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Show(_ context.Context, spec Spec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown++
	r.open = append(r.open, openDialog{seq: r.shown, spec: spec})
	return nil
}

func (r *Recorder) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Top returns the most recently opened dialog that is still open.
func (r *Recorder) Top() (Spec, bool) {
	top, ok := r.top()
	return top.spec, ok
}

func (r *Recorder) top() (openDialog, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.open) == 0 {
		return openDialog{}, false
	}
	return r.open[len(r.open)-1], true
}

// OpenCount is the number of dialogs currently open.
func (r *Recorder) OpenCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.open)
}

// ShownCount is the number of dialogs ever shown.
func (r *Recorder) ShownCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shown
}

// Notices returns a copy of every notice received.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// LastNotice returns the most recent notice.
func (r *Recorder) LastNotice() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// WireNotices converts the recorded notices to their response form.
func (r *Recorder) WireNotices() []types.Notice {
	notices := r.Notices()
	out := make([]types.Notice, 0, len(notices))
	for _, n := range notices {
		out = append(out, n.Wire())
	}
	return out
}

// Press clicks a button on the top dialog. Entered values override the
// pre-filled inputs. The dialog is closed when the callback asks for it.
func (r *Recorder) Press(ctx context.Context, buttonID string, entered Values) (bool, error) {
	top, ok := r.top()
	if !ok {
		return false, fmt.Errorf("no dialog open")
	}
	spec := top.spec
	button, ok := spec.Button(buttonID)
	if !ok {
		return false, fmt.Errorf("button %q not found", buttonID)
	}

	values := spec.Inputs()
	for id, v := range entered {
		values[id] = v
	}

	closeDialog := true
	if button.OnClick != nil {
		closeDialog = button.OnClick(ctx, values)
	}
	if closeDialog {
		r.close(top.seq)
	}
	return closeDialog, nil
}

// close removes one dialog from the stack. Callbacks may have opened
// further dialogs on top of it.
func (r *Recorder) close(seq int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.open {
		if d.seq == seq {
			r.open = append(r.open[:i], r.open[i+1:]...)
			return
		}
	}
}

// CloseAll dismisses every open dialog.
func (r *Recorder) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open = nil
}
