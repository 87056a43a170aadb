package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/solliq"
	"github.com/aretw0/solliq/pkg/composition"
	"github.com/aretw0/solliq/pkg/domain"
	"github.com/aretw0/solliq/pkg/elements"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Calculator defines the part of solliq.Calculator exposed as MCP tools.
type Calculator interface {
	Evaluate(q domain.Query, p float64) (solliq.Result, error)
	EutecticComposition(p float64) (float64, error)
	AlloyMeltingPointMass(p, wS float64, g domain.Gradient) (solliq.Result, error)
	MassToMole(el elements.Element, x float64) (float64, error)
	MoleToMass(el elements.Element, x float64) (float64, error)
	Interpolate(ox domain.Oxides, p float64) (composition.Interpolation, error)
	Sample(ctx context.Context, q domain.Query, grid domain.Grid) (domain.Curve, error)
}

// Presets resolves named compositions.
type Presets interface {
	Get(name string) (domain.Oxides, bool)
	Names() []string
}

// Server wraps a Calculator and exposes it as an MCP Server.
type Server struct {
	calc      Calculator
	presets   Presets
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithPresets lets tool calls name a composition with the preset argument.
func WithPresets(p Presets) Option {
	return func(s *Server) {
		s.presets = p
	}
}

// WithLogger sets the server logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(calc Calculator, opts ...Option) *Server {
	s := &Server{
		calc: calc,
		mcpServer: server.NewMCPServer("solliq-mcp", strings.TrimSpace(solliq.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE, until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// CurveArgs are the arguments shared by the evaluation tools.
type CurveArgs struct {
	Pressure float64  `json:"p"`
	Kind     string   `json:"kind,omitempty"`
	Material string   `json:"material,omitempty"`
	System   string   `json:"system,omitempty"`
	Mode     string   `json:"mode,omitempty"`
	Phase    string   `json:"phase,omitempty"`
	Gradient string   `json:"gradient,omitempty"`
	XS       *float64 `json:"x_s,omitempty"`
	WS       *float64 `json:"w_s,omitempty"`
	Preset   string   `json:"preset,omitempty"`
	MgO      *float64 `json:"mgo,omitempty"`
	FeO      *float64 `json:"feo,omitempty"`
	Na2O     *float64 `json:"na2o,omitempty"`
	K2O      *float64 `json:"k2o,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	N        *int     `json:"n,omitempty"`
}

// EutecticResponse is the Fe-FeS eutectic at one pressure.
type EutecticResponse struct {
	Pressure    float64 `json:"p" jsonschema_description:"Pressure in GPa"`
	Composition float64 `json:"x_eut" jsonschema_description:"S mole fraction of the eutectic"`
	Temperature float64 `json:"T" jsonschema_description:"Eutectic temperature in K"`
}

// ConvertArgs are the arguments of the convert_fraction tool.
type ConvertArgs struct {
	Element string  `json:"element,omitempty"`
	X       float64 `json:"x"`
	To      string  `json:"to,omitempty"`
}

// ConvertResponse is a converted fraction.
type ConvertResponse struct {
	Element string  `json:"element"`
	To      string  `json:"to"`
	Value   float64 `json:"value"`
}

func pressure() mcp.ToolOption {
	return mcp.WithNumber("p", mcp.Required(), mcp.Min(0), mcp.Description("Pressure in GPa"))
}

func compositionOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("preset", mcp.Description("Name of a configured composition preset")),
		mcp.WithNumber("mgo", mcp.Min(0), mcp.Max(1), mcp.Description("MgO mass fraction")),
		mcp.WithNumber("feo", mcp.Min(0), mcp.Max(1), mcp.Description("FeO mass fraction")),
		mcp.WithNumber("na2o", mcp.Min(0), mcp.Max(1), mcp.Description("Na2O mass fraction")),
		mcp.WithNumber("k2o", mcp.Min(0), mcp.Max(1), mcp.Description("K2O mass fraction")),
	}
}

func materialOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("material", mcp.Enum("peridotite", "basalt"), mcp.Description("Rock (default peridotite)")),
		mcp.WithString("system", mcp.Description("Peridotite system: terrestrial, martian, cmas, chondritic")),
	}
}

func (s *Server) registerTools() {
	// TOOL: solidus
	opts := []mcp.ToolOption{
		mcp.WithDescription("Solidus temperature (K) of peridotite or basalt. Oxide fractions or a preset select an interpolated custom peridotite."),
		pressure(),
	}
	opts = append(opts, materialOptions()...)
	opts = append(opts, compositionOptions()...)
	opts = append(opts, mcp.WithOutputSchema[solliq.Result]())
	s.mcpServer.AddTool(mcp.NewTool("solidus", opts...), mcp.NewStructuredToolHandler(s.handleSolidus))

	// TOOL: liquidus
	opts = []mcp.ToolOption{
		mcp.WithDescription("Liquidus temperature (K) of peridotite or basalt."),
		pressure(),
		mcp.WithString("mode", mcp.Enum("fractional", "batch"), mcp.Description("Melting mode (default fractional)")),
	}
	opts = append(opts, materialOptions()...)
	opts = append(opts, mcp.WithOutputSchema[solliq.Result]())
	s.mcpServer.AddTool(mcp.NewTool("liquidus", opts...), mcp.NewStructuredToolHandler(s.handleLiquidus))

	// TOOL: phase_liquidus
	s.mcpServer.AddTool(mcp.NewTool("phase_liquidus",
		mcp.WithDescription("Melting temperature (K) of a pure phase: fo, en, di, py, pc, bm, capv, fe, fes."),
		pressure(),
		mcp.WithString("phase", mcp.Required(), mcp.Description("Phase name or abbreviation")),
		mcp.WithString("gradient", mcp.Enum("flat", "steep"), mcp.Description("Iron melting gradient (default flat)")),
		mcp.WithOutputSchema[solliq.Result](),
	), mcp.NewStructuredToolHandler(s.handlePhase))

	// TOOL: alloy_melting_point
	s.mcpServer.AddTool(mcp.NewTool("alloy_melting_point",
		mcp.WithDescription("Melting point (K) of an Fe-S alloy. Give exactly one of x_s (mole fraction) or w_s (mass fraction)."),
		pressure(),
		mcp.WithNumber("x_s", mcp.Min(0), mcp.Description("S mole fraction")),
		mcp.WithNumber("w_s", mcp.Min(0), mcp.Max(1), mcp.Description("S mass fraction")),
		mcp.WithString("gradient", mcp.Enum("flat", "steep"), mcp.Description("Iron melting gradient (default flat)")),
		mcp.WithOutputSchema[solliq.Result](),
	), mcp.NewStructuredToolHandler(s.handleAlloy))

	// TOOL: eutectic
	s.mcpServer.AddTool(mcp.NewTool("eutectic",
		mcp.WithDescription("Composition and temperature of the Fe-FeS eutectic."),
		pressure(),
		mcp.WithOutputSchema[EutecticResponse](),
	), mcp.NewStructuredToolHandler(s.handleEutectic))

	// TOOL: interpolate
	opts = []mcp.ToolOption{
		mcp.WithDescription("Interpolated solidus of an arbitrary peridotite, with Mg#, secondary reference and weight."),
		pressure(),
	}
	opts = append(opts, compositionOptions()...)
	s.mcpServer.AddTool(mcp.NewTool("interpolate", opts...), mcp.NewStructuredToolHandler(s.handleInterpolate))

	// TOOL: sample_curve
	opts = []mcp.ToolOption{
		mcp.WithDescription("Sample a curve on a pressure grid. The grid defaults to the customary range of the curve."),
		mcp.WithString("kind", mcp.Required(), mcp.Enum("solidus", "liquidus", "phase", "alloy", "eutectic")),
		mcp.WithString("mode", mcp.Enum("fractional", "batch")),
		mcp.WithString("phase"),
		mcp.WithString("gradient", mcp.Enum("flat", "steep")),
		mcp.WithNumber("x_s", mcp.Min(0)),
		mcp.WithNumber("min", mcp.Min(0), mcp.Description("Lowest pressure, GPa")),
		mcp.WithNumber("max", mcp.Min(0), mcp.Description("Highest pressure, GPa")),
		mcp.WithNumber("n", mcp.Min(1), mcp.Description("Number of points")),
	}
	opts = append(opts, materialOptions()...)
	opts = append(opts, compositionOptions()...)
	opts = append(opts, mcp.WithOutputSchema[domain.Curve]())
	s.mcpServer.AddTool(mcp.NewTool("sample_curve", opts...), mcp.NewStructuredToolHandler(s.handleCurve))

	// TOOL: convert_fraction
	s.mcpServer.AddTool(mcp.NewTool("convert_fraction",
		mcp.WithDescription("Convert the fraction of an element in an Fe binary between mass and mole."),
		mcp.WithString("element", mcp.Description("Element symbol (default S)")),
		mcp.WithNumber("x", mcp.Required(), mcp.Min(0), mcp.Max(1)),
		mcp.WithString("to", mcp.Enum("mole", "mass"), mcp.Description("Target fraction (default mole)")),
		mcp.WithOutputSchema[ConvertResponse](),
	), mcp.NewStructuredToolHandler(s.handleConvert))
}

// Handler methods for structured tools

func (s *Server) oxides(args CurveArgs) (*domain.Oxides, error) {
	given := args.MgO != nil || args.FeO != nil || args.Na2O != nil || args.K2O != nil
	if args.Preset != "" {
		if given {
			return nil, errors.New("preset and oxide fractions are exclusive")
		}
		if s.presets == nil {
			return nil, fmt.Errorf("unknown preset %q (no presets configured)", args.Preset)
		}
		ox, ok := s.presets.Get(args.Preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", args.Preset)
		}
		return &ox, nil
	}
	if !given {
		return nil, nil
	}
	deref := func(v *float64) float64 {
		if v == nil {
			return 0
		}
		return *v
	}
	return &domain.Oxides{MgO: deref(args.MgO), FeO: deref(args.FeO), Na2O: deref(args.Na2O), K2O: deref(args.K2O)}, nil
}

func (s *Server) query(kind domain.Kind, args CurveArgs) (domain.Query, error) {
	sel := domain.Selectors{
		Kind:     string(kind),
		Material: args.Material,
		System:   args.System,
		Mode:     args.Mode,
		Phase:    args.Phase,
		Gradient: args.Gradient,
	}
	if args.XS != nil {
		sel.Sulfur = *args.XS
	}
	if kind == domain.KindSolidus || kind == domain.KindLiquidus {
		ox, err := s.oxides(args)
		if err != nil {
			return domain.Query{}, err
		}
		sel.Oxides = ox
	}
	return sel.Query()
}

func (s *Server) evaluate(kind domain.Kind, args CurveArgs) (solliq.Result, error) {
	q, err := s.query(kind, args)
	if err != nil {
		return solliq.Result{}, err
	}
	res, err := s.calc.Evaluate(q, args.Pressure)
	if err != nil {
		s.logger.Debug("MCP evaluation rejected", "key", q.Key(), "error", err)
		return solliq.Result{}, err
	}
	return res, nil
}

func (s *Server) handleSolidus(ctx context.Context, request mcp.CallToolRequest, args CurveArgs) (solliq.Result, error) {
	return s.evaluate(domain.KindSolidus, args)
}

func (s *Server) handleLiquidus(ctx context.Context, request mcp.CallToolRequest, args CurveArgs) (solliq.Result, error) {
	return s.evaluate(domain.KindLiquidus, args)
}

func (s *Server) handlePhase(ctx context.Context, request mcp.CallToolRequest, args CurveArgs) (solliq.Result, error) {
	return s.evaluate(domain.KindPhase, args)
}

func (s *Server) handleAlloy(ctx context.Context, request mcp.CallToolRequest, args CurveArgs) (solliq.Result, error) {
	if (args.XS == nil) == (args.WS == nil) {
		return solliq.Result{}, errors.New("exactly one of x_s and w_s is required")
	}
	if args.XS != nil {
		return s.evaluate(domain.KindAlloy, args)
	}
	g, err := domain.ParseGradient(args.Gradient)
	if err != nil {
		return solliq.Result{}, err
	}
	return s.calc.AlloyMeltingPointMass(args.Pressure, *args.WS, g)
}

func (s *Server) handleEutectic(ctx context.Context, request mcp.CallToolRequest, args CurveArgs) (EutecticResponse, error) {
	x, err := s.calc.EutecticComposition(args.Pressure)
	if err != nil {
		return EutecticResponse{}, err
	}
	res, err := s.calc.Evaluate(domain.Query{Kind: domain.KindEutectic}, args.Pressure)
	if err != nil {
		return EutecticResponse{}, err
	}
	return EutecticResponse{Pressure: args.Pressure, Composition: x, Temperature: res.Temperature}, nil
}

func (s *Server) handleInterpolate(ctx context.Context, request mcp.CallToolRequest, args CurveArgs) (composition.Interpolation, error) {
	ox, err := s.oxides(args)
	if err != nil {
		return composition.Interpolation{}, err
	}
	if ox == nil {
		return composition.Interpolation{}, errors.New("a preset or oxide fractions are required")
	}
	return s.calc.Interpolate(*ox, args.Pressure)
}

func (s *Server) handleCurve(ctx context.Context, request mcp.CallToolRequest, args CurveArgs) (domain.Curve, error) {
	kind, err := domain.ParseKind(args.Kind)
	if err != nil {
		return domain.Curve{}, err
	}
	q, err := s.query(kind, args)
	if err != nil {
		return domain.Curve{}, err
	}
	grid := domain.DefaultGrid(q)
	if args.Min != nil {
		grid.Min = *args.Min
	}
	if args.Max != nil {
		grid.Max = *args.Max
	}
	if args.N != nil {
		grid.N = *args.N
	}
	return s.calc.Sample(ctx, q, grid)
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest, args ConvertArgs) (ConvertResponse, error) {
	symbol := args.Element
	if symbol == "" {
		symbol = string(elements.S)
	}
	el, err := elements.Parse(symbol)
	if err != nil {
		return ConvertResponse{}, err
	}
	resp := ConvertResponse{Element: string(el), To: args.To}
	switch args.To {
	case "", "mole":
		resp.To = "mole"
		resp.Value, err = s.calc.MassToMole(el, args.X)
	case "mass":
		resp.Value, err = s.calc.MoleToMass(el, args.X)
	default:
		err = fmt.Errorf("to must be mole or mass, got %q", args.To)
	}
	return resp, err
}

func (s *Server) registerResources() {
	// EXPOSE: solliq://references
	s.mcpServer.AddResource(mcp.NewResource("solliq://references", "Reference peridotite compositions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(composition.References())
		if err != nil {
			return nil, fmt.Errorf("failed to encode references: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "solliq://references",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: solliq://presets
	s.mcpServer.AddResource(mcp.NewResource("solliq://presets", "Configured composition presets",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		presets := map[string]domain.Oxides{}
		if s.presets != nil {
			for _, name := range s.presets.Names() {
				presets[name], _ = s.presets.Get(name)
			}
		}
		jsonBytes, err := json.Marshal(presets)
		if err != nil {
			return nil, fmt.Errorf("failed to encode presets: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "solliq://presets",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
