package quotes

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/blindquote/api/responses"
	"github.com/angelmondragon/blindquote/api/validators"
	internalquotes "github.com/angelmondragon/blindquote/internal/quotes"
	"github.com/angelmondragon/blindquote/pkg/enums"
	pkgerrors "github.com/angelmondragon/blindquote/pkg/errors"
	"github.com/angelmondragon/blindquote/pkg/pagination"
	"github.com/angelmondragon/blindquote/pkg/types"
)

// Create starts a new quote, optionally seeded with a quote number and customer.
func Create(d Deps) http.HandlerFunc {
	d = d.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateQuoteRequest
		if err := validators.DecodeOptionalJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), d.Logger, w, err)
			return
		}
		ws, err := d.Quotes.Create(r.Context(), req.toQuote(d.ProductKey))
		if err != nil {
			responses.WriteError(r.Context(), d.Logger, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ws)
	}
}

func List(d Deps) http.HandlerFunc {
	d = d.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), d.Logger, w, err)
			return
		}
		cursor, err := validators.ParseQueryString(r, "cursor", 256)
		if err != nil {
			responses.WriteError(r.Context(), d.Logger, w, err)
			return
		}
		page, err := d.Quotes.List(r.Context(), cursor, limit)
		if err != nil {
			responses.WriteError(r.Context(), d.Logger, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func Detail(d Deps) http.HandlerFunc {
	d = d.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), d.Logger, w, err)
			return
		}
		ws, err := d.Quotes.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), d.Logger, w, err)
			return
		}
		responses.WriteSuccess(w, ws)
	}
}

// Import replaces the quote with an uploaded .json or .csv file sent as the
// multipart field "file".
func Import(d Deps) http.HandlerFunc {
	d = d.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), d.Logger, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file upload is required"))
			return
		}
		defer file.Close()
		content, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), d.Logger, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read upload"))
			return
		}

		ws, result, notices, err := d.mutate(r, func(ctx context.Context, s *session) (any, error) {
			res := s.workflow.FileLoad(ctx, header.Filename, string(content))
			if !res.Success {
				return nil, pkgerrors.New(pkgerrors.CodeParse, res.Message)
			}
			return map[string]any{"message": res.Message, "warnings": res.Warnings}, nil
		})
		writeMutation(w, r, d, ws, result, notices, err)
	}
}

func Export(d Deps) http.HandlerFunc {
	d = d.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), d.Logger, w, err)
			return
		}
		format, err := enums.ParseExportFormat(chi.URLParam(r, "format"))
		if err != nil {
			responses.WriteError(r.Context(), d.Logger, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported export format"))
			return
		}
		ctx := d.Logger.WithQuoteID(r.Context(), id.String())
		s, err := d.view(ctx, id)
		if err != nil {
			responses.WriteError(ctx, d.Logger, w, err)
			return
		}

		res := s.workflow.Export(ctx, format)
		if !res.Success {
			code := pkgerrors.CodePrecondition
			if res.Err != nil {
				code = pkgerrors.CodeDependency
			}
			responses.WriteErrorNotices(ctx, d.Logger, w, pkgerrors.New(code, res.Message), s.recorder.WireNotices())
			return
		}
		responses.WriteFile(w, res.File.Name, res.File.ContentType, res.File.Body)
	}
}

func Render(d Deps) http.HandlerFunc {
	d = d.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "quoteId")
		if err != nil {
			responses.WriteError(r.Context(), d.Logger, w, err)
			return
		}
		variant, err := enums.ParseRenderVariant(chi.URLParam(r, "variant"))
		if err != nil {
			responses.WriteError(r.Context(), d.Logger, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported render variant"))
			return
		}
		ctx := d.Logger.WithQuoteID(r.Context(), id.String())
		s, err := d.view(ctx, id)
		if err != nil {
			responses.WriteError(ctx, d.Logger, w, err)
			return
		}

		var html string
		if variant == enums.RenderVariantGmail {
			html, err = s.workflow.GmailQuote(ctx)
		} else {
			html, err = s.workflow.PrintableQuote(ctx)
		}
		if err != nil {
			responses.WriteErrorNotices(ctx, d.Logger, w, err, s.recorder.WireNotices())
			return
		}
		responses.WriteHTML(w, html)
	}
}

func NameColor(d Deps) http.HandlerFunc {
	d = d.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		var req NameColorRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), d.Logger, w, err)
			return
		}
		ws, result, notices, err := d.mutate(r, func(ctx context.Context, s *session) (any, error) {
			return s.fabric.ApplyNameColor(ctx, req.Overwrite, toFabricColors(req.Values))
		})
		writeMutation(w, r, d, ws, result, notices, err)
	}
}

func LightFilter(d Deps) http.HandlerFunc {
	d = d.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		var req LightFilterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), d.Logger, w, err)
			return
		}
		ws, result, notices, err := d.mutate(r, func(ctx context.Context, s *session) (any, error) {
			return s.fabric.ApplyLightFilter(ctx, req.Indexes,
				validators.SanitizeString(req.Fabric, 200), validators.SanitizeString(req.Color, 200))
		})
		writeMutation(w, r, d, ws, result, notices, err)
	}
}

func SelectiveSet(d Deps) http.HandlerFunc {
	d = d.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectiveSetRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), d.Logger, w, err)
			return
		}
		ws, result, notices, err := d.mutate(r, func(ctx context.Context, s *session) (any, error) {
			return s.fabric.ApplySelectiveSet(ctx, req.Indexes, toFabricColors(req.Values))
		})
		writeMutation(w, r, d, ws, result, notices, err)
	}
}

func ClearLightFilter(d Deps) http.HandlerFunc {
	d = d.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClearLightFilterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), d.Logger, w, err)
			return
		}
		ws, result, notices, err := d.mutate(r, func(ctx context.Context, s *session) (any, error) {
			return s.fabric.ClearLightFilter(ctx, req.Indexes)
		})
		writeMutation(w, r, d, ws, result, notices, err)
	}
}

// Calculate prices every row, after applying the discount when one is sent.
func Calculate(d Deps) http.HandlerFunc {
	d = d.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		var req CalculateRequest
		if err := validators.DecodeOptionalJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), d.Logger, w, err)
			return
		}
		ws, result, notices, err := d.mutate(r, func(ctx context.Context, s *session) (any, error) {
			if req.DiscountPercentage != nil {
				s.workflow.F1DiscountChange(ctx, req.DiscountPercentage)
			}
			return s.workflow.F1TabActivation(ctx), nil
		})
		writeMutation(w, r, d, ws, result, notices, err)
	}
}

func Reset(d Deps) http.HandlerFunc {
	d = d.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		ws, result, notices, err := d.mutate(r, func(ctx context.Context, s *session) (any, error) {
			return map[string]bool{"reset": s.workflow.Reset(ctx, true)}, nil
		})
		writeMutation(w, r, d, ws, result, notices, err)
	}
}

func writeMutation(w http.ResponseWriter, r *http.Request, d Deps, ws *internalquotes.Workspace, result any, notices []types.Notice, err error) {
	if err != nil {
		responses.WriteErrorNotices(r.Context(), d.Logger, w, err, notices)
		return
	}
	responses.WriteSuccessNotices(w, http.StatusOK, WorkspaceResponse{Workspace: ws, Result: result}, notices)
}
