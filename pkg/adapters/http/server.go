package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aretw0/levelance"
	"github.com/aretw0/levelance/pkg/domain"
)

//go:embed openapi.yaml
var rawSpec []byte

// Engine defines the decode operations the server exposes.
type Engine interface {
	Decode(ctx context.Context, input string) (levelance.Result, error)
	Explain(ctx context.Context, input string) ([]domain.Trace, error)
	Mode() domain.Mode
}

// Server serves the Levelance HTTP API.
type Server struct {
	engines     map[domain.Mode]Engine
	defaultMode domain.Mode
	spec        *openapi3.T
	router      routers.Router
	metrics     http.Handler
	logger      *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetricsHandler mounts h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// NewHandler creates a new HTTP handler. The first engine's mode is the
// default; requests may select any other registered mode.
func NewHandler(engines []Engine, opts ...Option) (http.Handler, error) {
	if len(engines) == 0 {
		return nil, errors.New("at least one engine is required")
	}

	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	router, err := gorillamux.NewRouter(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	s := &Server{
		engines:     make(map[domain.Mode]Engine, len(engines)),
		defaultMode: engines[0].Mode(),
		spec:        spec,
		router:      router,
		logger:      slog.Default(),
	}
	for _, e := range engines {
		s.engines[e.Mode()] = e
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(requestID, enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/health", s.Health)
	r.Get("/info", s.Info)
	r.Get("/symbols", s.Symbols)
	r.Get("/decode/{input}", s.DecodePath)

	r.Group(func(r chi.Router) {
		r.Use(s.validateRequest)
		r.Post("/decode", s.Decode)
		r.Post("/explain", s.Explain)
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r, nil
}

// DecodeRequest is the body of POST /decode and POST /explain.
type DecodeRequest struct {
	Input string `json:"input"`
	Mode  string `json:"mode,omitempty"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// ExplainResponse is the body of a successful POST /explain.
type ExplainResponse struct {
	Output string         `json:"output"`
	Traces []domain.Trace `json:"traces"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":          "levelance-http",
		"version":      strings.TrimSpace(levelance.Version),
		"api_version":  s.spec.Info.Version,
		"default_mode": string(s.defaultMode),
	})
}

// Symbols handles GET /symbols.
func (s *Server) Symbols(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Rules())
}

// Decode handles POST /decode.
func (s *Server) Decode(w http.ResponseWriter, r *http.Request) {
	var body DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		s.logger.Warn("Decode: Invalid request body", "error", err)
		return
	}
	s.decode(w, r, body)
}

// DecodePath handles GET /decode/{input}.
func (s *Server) DecodePath(w http.ResponseWriter, r *http.Request) {
	s.decode(w, r, DecodeRequest{
		Input: chi.URLParam(r, "input"),
		Mode:  r.URL.Query().Get("mode"),
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, body DecodeRequest) {
	engine, ok := s.engine(body.Mode)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("mode %q is not served", body.Mode)})
		return
	}

	res, err := engine.Decode(r.Context(), body.Input)
	if err != nil {
		s.writeDecodeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Explain handles POST /explain.
func (s *Server) Explain(w http.ResponseWriter, r *http.Request) {
	var body DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		s.logger.Warn("Explain: Invalid request body", "error", err)
		return
	}

	engine, ok := s.engine(body.Mode)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("mode %q is not served", body.Mode)})
		return
	}

	res, err := engine.Decode(r.Context(), body.Input)
	if err != nil {
		s.writeDecodeError(w, r, err)
		return
	}
	traces, err := engine.Explain(r.Context(), body.Input)
	if err != nil {
		s.writeDecodeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ExplainResponse{Output: res.Output, Traces: traces})
}

func (s *Server) engine(mode string) (Engine, bool) {
	if mode == "" {
		mode = string(s.defaultMode)
	}
	e, ok := s.engines[domain.Mode(mode)]
	return e, ok
}

func (s *Server) writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.Kind(err)
	if kind == "" {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		s.logger.Error("Decode failed", "error", err, "request_id", r.Header.Get(RequestIDHeader))
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: kind})
	s.logger.Debug("Decode rejected", "kind", kind, "request_id", r.Header.Get(RequestIDHeader))
}

// validateRequest checks request bodies against the OpenAPI document.
func (s *Server) validateRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, pathParams, err := s.router.FindRoute(r)
		if err != nil {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      route,
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			s.logger.Warn("Request rejected by schema", "error", err, "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-Id"

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
