// Package server serves the ESG research checklist over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/esg-research/internal/model"
	"github.com/sells-group/esg-research/internal/research"
)

const maxBodyBytes = 1 << 20

// Handler wires checklist endpoints to the model.
type Handler struct {
	company string
}

// New constructs a Handler. company is used by prompt requests that do not
// name one.
func New(company string) *Handler {
	return &Handler{company: company}
}

// NewRouter builds the full HTTP handler: health check, CORS, request
// logging and the versioned checklist API.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/v1", h.Register)
	return r
}

// Register mounts the checklist endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/fields", h.HandleFields)
	r.Get("/schema", h.HandleSchema)
	r.Get("/checklist", h.HandleTemplate)
	r.Post("/checklist/validate", h.HandleValidate)
	r.Post("/checklist/merge", h.HandleMerge)
	r.Post("/prompt/{scope}", h.HandlePrompt)
}

// HandleFields handles GET /v1/fields, optionally filtered by ?scope=.
func (h *Handler) HandleFields(w http.ResponseWriter, r *http.Request) {
	fields := model.Fields().Fields
	if name := r.URL.Query().Get("scope"); name != "" {
		scope, err := model.ParseScope(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown research scope", name)
			return
		}
		fields = model.Fields().ByScope(scope)
	}
	writeJSON(w, http.StatusOK, map[string]any{"fields": fields})
}

// HandleSchema handles GET /v1/schema.
func (h *Handler) HandleSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(model.JSONSchema())
}

// HandleTemplate handles GET /v1/checklist: an empty checklist in JSON, or
// YAML with ?format=yaml.
func (h *Handler) HandleTemplate(w http.ResponseWriter, r *http.Request) {
	format := model.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := model.ParseFormat(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unsupported format", q)
			return
		}
		format = f
	}

	empty := model.NewResearchScopes()
	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	if err := model.Encode(w, empty.Document(), format); err != nil {
		zap.L().Error("encode checklist template", zap.Error(err))
	}
}

// HandleValidate handles POST /v1/checklist/validate. The body is a partial
// checklist in JSON, or YAML when the Content-Type says so.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	format := model.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = model.FormatYAML
	}

	doc, err := model.DecodeDocument(http.MaxBytesReader(w, r.Body, maxBodyBytes), format)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	scopes, err := model.ResearchScopesFromDocument(doc)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checklistResponse(&scopes))
}

type mergeRequest struct {
	Base  model.Document `json:"base"`
	Patch model.Document `json:"patch"`
}

// HandleMerge handles POST /v1/checklist/merge. Present attributes of patch
// overwrite base; absent ones leave base alone.
func (h *Handler) HandleMerge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := model.DecodeJSONBody(http.MaxBytesReader(w, r.Body, maxBodyBytes), &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	base, err := model.ResearchScopesFromDocument(req.Base)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	patch, err := model.ResearchScopesFromDocument(req.Patch)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	base.Merge(patch)
	writeJSON(w, http.StatusOK, checklistResponse(&base))
}

type promptRequest struct {
	Company   string         `json:"company"`
	Checklist model.Document `json:"checklist"`
}

// HandlePrompt handles POST /v1/prompt/{scope}. An empty body asks for the
// prompt of an empty checklist.
func (h *Handler) HandlePrompt(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "scope")
	scope, err := model.ParseScope(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown research scope", name)
		return
	}

	var req promptRequest
	if err := model.DecodeJSONBody(http.MaxBytesReader(w, r.Body, maxBodyBytes), &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	scopes, err := model.ResearchScopesFromDocument(req.Checklist)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	company := req.Company
	if company == "" {
		company = h.company
	}
	rec, _ := scopes.Record(scope)
	prompt, err := research.BuildPrompt(company, scope, rec)
	if err != nil {
		zap.L().Error("build prompt", zap.String("scope", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"scope":  string(scope),
		"system": research.SystemText,
		"prompt": prompt,
	})
}

func checklistResponse(s *model.ResearchScopes) map[string]any {
	return map[string]any{
		"checklist": s.Document(),
		"progress":  s.Progress(),
		"complete":  s.Complete(),
	}
}

func contentType(f model.Format) string {
	if f == model.FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, key string) {
	body := map[string]string{"error": msg}
	if key != "" {
		body["key"] = key
	}
	writeJSON(w, status, body)
}

// writeValidationError maps structural checklist errors to 422 with the
// offending key.
func writeValidationError(w http.ResponseWriter, err error) {
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		zap.L().Error("checklist rejected", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "")
		return
	}
	body := map[string]string{"error": ve.Reason(), "key": ve.Key}
	if ve.Detail != "" {
		body["detail"] = ve.Detail
	}
	writeJSON(w, http.StatusUnprocessableEntity, body)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
