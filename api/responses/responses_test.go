package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/angelmondragon/blindquote/pkg/errors"
	"github.com/angelmondragon/blindquote/pkg/logger"
	"github.com/angelmondragon/blindquote/pkg/types"
)

func TestWriteSuccess(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success envelope: %v", err)
	}
	if body.Data.(map[string]any)["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
	if body.Notices != nil {
		t.Fatalf("expected no notices, got %v", body.Notices)
	}
}

func TestWriteSuccessNotices(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	WriteSuccessNotices(w, http.StatusCreated, "ok", []types.Notice{{Message: "Quote has been reset.", Level: "info"}})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201 but got %d", w.Code)
	}
	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Notices) != 1 || body.Notices[0].Message != "Quote has been reset." {
		t.Fatalf("unexpected notices %v", body.Notices)
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad input").
		WithDetails(map[string]string{"field": "demo"})
	WriteError(context.Background(), logger.Nop(), w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
	if body.Error.Message != "bad input" {
		t.Fatalf("unexpected message %q", body.Error.Message)
	}
	if body.Error.Details == nil {
		t.Fatalf("expected details in public payload")
	}
}

func TestWriteErrorPreconditionKeepsMessage(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	msg := "Please select items from the main table first."
	WriteErrorNotices(context.Background(), nil, w, pkgerrors.New(pkgerrors.CodePrecondition, msg), []types.Notice{{Message: msg, Level: "error"}})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422 but got %d", w.Code)
	}
	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Message != msg {
		t.Fatalf("unexpected message %q", body.Error.Message)
	}
	if len(body.Notices) != 1 {
		t.Fatalf("expected notices to be forwarded, got %v", body.Notices)
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	WriteError(context.Background(), logger.Nop(), w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeInternal) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
	if body.Error.Details != nil {
		t.Fatalf("details should be omitted for internal errors")
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	WriteFile(w, "quote-RB-1.csv", "text/csv", []byte("a,b\n"))

	if w.Header().Get("Content-Disposition") != `attachment; filename="quote-RB-1.csv"` {
		t.Fatalf("unexpected disposition %q", w.Header().Get("Content-Disposition"))
	}
	if w.Body.String() != "a,b\n" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}
