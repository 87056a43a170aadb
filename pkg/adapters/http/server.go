package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/solliq"
	"github.com/aretw0/solliq/pkg/composition"
	"github.com/aretw0/solliq/pkg/domain"
	"github.com/aretw0/solliq/pkg/elements"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed openapi.yaml
var openAPISpec []byte

// Calculator defines the part of solliq.Calculator served over HTTP.
type Calculator interface {
	Evaluate(q domain.Query, p float64) (solliq.Result, error)
	EutecticComposition(p float64) (float64, error)
	AlloyMeltingPointMass(p, wS float64, g domain.Gradient) (solliq.Result, error)
	MassToMole(el elements.Element, x float64) (float64, error)
	MoleToMass(el elements.Element, x float64) (float64, error)
	Interpolate(ox domain.Oxides, p float64) (composition.Interpolation, error)
	Sample(ctx context.Context, q domain.Query, grid domain.Grid) (domain.Curve, error)
}

// Presets resolves named compositions, e.g. a compfile.Store.
type Presets interface {
	Get(name string) (domain.Oxides, bool)
	Names() []string
}

// Server serves a Calculator as a JSON API.
type Server struct {
	Calc    Calculator
	Presets Presets
	Streams *StreamManager

	logger     *slog.Logger
	registry   *prometheus.Registry
	metrics    *metrics
	apiVersion string
}

// Option configures a Server.
type Option func(*Server)

// WithPresets lets requests name a composition with the preset parameter.
func WithPresets(p Presets) Option {
	return func(s *Server) {
		s.Presets = p
	}
}

// WithLogger sets the logger for request failures. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry registers the HTTP metrics on reg and serves it on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// NewServer creates a Server for calc.
func NewServer(calc Calculator, opts ...Option) *Server {
	s := &Server{
		Calc:    calc,
		Streams: NewStreamManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)
	return s
}

// NewHandler creates a new HTTP handler for the calculator.
func NewHandler(calc Calculator, opts ...Option) (http.Handler, error) {
	return NewServer(calc, opts...).Handler()
}

// Handler builds the router. Requests under /v1 are validated against the
// embedded OpenAPI document before they reach a handler.
func (s *Server) Handler() (http.Handler, error) {
	validator, err := newValidator(openAPISpec)
	if err != nil {
		return nil, err
	}
	s.apiVersion = validator.version

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.middleware)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openAPISpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(validator.middleware)
		r.Get("/solidus", s.GetSolidus)
		r.Get("/liquidus", s.GetLiquidus)
		r.Get("/phases/{phase}", s.GetPhase)
		r.Get("/alloy", s.GetAlloy)
		r.Get("/eutectic", s.GetEutectic)
		r.Get("/convert", s.GetConvert)
		r.Get("/interpolate", s.GetInterpolate)
		r.Get("/curve", s.GetCurve)
		r.Get("/references", s.GetReferences)
		r.Get("/presets", s.GetPresets)
		r.Get("/events", s.SubscribeEvents)
	})

	return enableCORS(r), nil
}

// Broadcast sends an event to every client of /v1/events.
func (s *Server) Broadcast(event, data string) {
	s.Streams.Broadcast(event, data)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>solliq API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "solliq-http",
		"version":     strings.TrimSpace(solliq.Version),
		"api_version": s.apiVersion,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
