// Package server exposes the rendering pipeline over HTTP.
//
// The surface is small: POST /render turns a model document into a
// rendered artifact, and the /diagrams routes persist built diagrams by
// name when a store is configured. All handlers answer structured JSON
// errors carrying the pkg/errors code.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/storeman/graph-uml/pkg/errors"
	"github.com/storeman/graph-uml/pkg/graph"
	"github.com/storeman/graph-uml/pkg/model"
	"github.com/storeman/graph-uml/pkg/pipeline"
	"github.com/storeman/graph-uml/pkg/render"
	"github.com/storeman/graph-uml/pkg/store"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

// Server wires the pipeline runner and the optional diagram store into
// an http.Handler.
type Server struct {
	runner *pipeline.Runner
	store  store.Store // nil when persistence is not configured
	logger *log.Logger
}

// New creates a server. store may be nil; the /diagrams routes then
// answer 503.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Route("/diagrams", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Put("/{name}", s.handleSave)
		r.Get("/{name}", s.handleLoad)
		r.Delete("/{name}", s.handleDelete)
	})
	return r
}

// renderRequest is the POST /render and PUT /diagrams/{name} body.
type renderRequest struct {
	Model      *model.Model   `json:"model"`
	Types      []string       `json:"types,omitempty"`
	Extensions []string       `json:"extensions,omitempty"`
	Component  string         `json:"component,omitempty"`
	Options    map[string]any `json:"options,omitempty"`
	Format     string         `json:"format,omitempty"`
}

func (req *renderRequest) pipelineOptions() pipeline.Options {
	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	return pipeline.Options{
		Model:      req.Model,
		Types:      req.Types,
		Extensions: req.Extensions,
		Component:  req.Component,
		Overrides:  req.Options,
		Formats:    []string{format},
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode request"))
		return
	}

	opts := req.pipelineOptions()
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeStatus(w, http.StatusServiceUnavailable, "no diagram store configured")
		return
	}
	name := chi.URLParam(r, "name")
	if err := errors.ValidateTypeName(name); err != nil {
		s.writeError(w, err)
		return
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode request"))
		return
	}

	opts := req.pipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, err)
		return
	}
	g, err := s.runner.Build(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), name, graph.FromGraph(g)); err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("saved diagram", "name", name, "vertices", g.VertexCount())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeStatus(w, http.StatusServiceUnavailable, "no diagram store configured")
		return
	}
	name := chi.URLParam(r, "name")

	d, err := s.store.Load(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == pipeline.FormatJSON {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(d)
		return
	}

	g, err := graph.ToGraph(d)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "restore diagram %q", name))
		return
	}
	dot := render.ToDOT(g)

	var data []byte
	switch format {
	case pipeline.FormatDOT:
		data = []byte(dot)
	case pipeline.FormatSVG:
		data, err = render.RenderSVG(r.Context(), dot)
	case pipeline.FormatPNG:
		data, err = render.RenderPNG(r.Context(), dot)
	default:
		s.writeError(w, errors.New(errors.ErrCodeInvalidFormat, "invalid format %q", format))
		return
	}
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeRender, err, "render %s", format))
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	_, _ = w.Write(data)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeStatus(w, http.StatusServiceUnavailable, "no diagram store configured")
		return
	}
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"diagrams": names})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeStatus(w, http.StatusServiceUnavailable, "no diagram store configured")
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps structured error codes to HTTP statuses and writes a
// JSON error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeTypeNotFound, errors.ErrCodeExtensionNotFound,
		errors.ErrCodeDiagramNotFound, errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidOption, errors.ErrCodeInvalidModel,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidName:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}

func (s *Server) writeStatus(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
