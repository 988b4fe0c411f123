package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/angelmondragon/blindquote/pkg/errors"
)

type colorRequest struct {
	Values map[string]string `json:"values" validate:"dive,keys,fabric_type,endkeys"`
	Limit  int               `json:"limit" validate:"omitempty,min=1,max=10"`
}

func TestDecodeJSONBodyRejectsUnknownFabricType(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"values":{"B9":"Linen"}}`))
	var dest colorRequest
	err := DecodeJSONBody(r, &dest)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nope":1}`))
	var dest colorRequest
	if err := DecodeJSONBody(r, &dest); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeOptionalJSONBody(t *testing.T) {
	t.Parallel()

	empty := httptest.NewRequest(http.MethodPost, "/", nil)
	var dest colorRequest
	if err := DecodeOptionalJSONBody(empty, &dest); err != nil {
		t.Fatalf("empty body should be accepted: %v", err)
	}

	filled := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"values":{"B2":"Linen"},"limit":3}`))
	if err := DecodeOptionalJSONBody(filled, &dest); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dest.Values["B2"] != "Linen" || dest.Limit != 3 {
		t.Fatalf("unexpected decode result %+v", dest)
	}

	invalid := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"limit":30}`))
	if err := DecodeOptionalJSONBody(invalid, &colorRequest{}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseQueryInt(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/?limit=5&bad=x", nil)
	if v, err := ParseQueryInt(r, "limit", 25, 1, 100); err != nil || v != 5 {
		t.Fatalf("expected 5, got %d (%v)", v, err)
	}
	if v, err := ParseQueryInt(r, "missing", 25, 1, 100); err != nil || v != 25 {
		t.Fatalf("expected default, got %d (%v)", v, err)
	}
	if _, err := ParseQueryInt(r, "bad", 25, 1, 100); err == nil {
		t.Fatalf("expected error for non numeric value")
	}
}

func TestParseQueryString(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/?cursor=+abc+&long=abcdefgh", nil)
	if v, err := ParseQueryString(r, "cursor", 8); err != nil || v != "abc" {
		t.Fatalf("expected abc, got %q (%v)", v, err)
	}
	if v, err := ParseQueryString(r, "missing", 8); err != nil || v != "" {
		t.Fatalf("expected empty, got %q (%v)", v, err)
	}
	if _, err := ParseQueryString(r, "long", 4); err == nil {
		t.Fatalf("expected error for oversized value")
	}
}

func TestParseUUIDParam(t *testing.T) {
	t.Parallel()
	withParam := func(value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("quoteId", value)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}

	if _, err := ParseUUIDParam(withParam("8d4f4a86-2d9e-4f0e-9a53-3e0f0c1f9d11"), "quoteId"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseUUIDParam(withParam("not-a-uuid"), "quoteId"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := ParseUUIDParam(withParam(""), "quoteId"); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestSanitizeString(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"  Ada Lovelace  ", 3, "Ada"},
		{"Ada\n  Lovelace", 0, "Ada Lovelace"},
		{"Zoë Müller", 3, "Zoë"},
		{"Ada Lovelace", 4, "Ada"},
	}
	for _, tc := range cases {
		if got := SanitizeString(tc.in, tc.max); got != tc.want {
			t.Fatalf("SanitizeString(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
