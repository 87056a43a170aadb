package http

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/aretw0/solliq/pkg/composition"
	"github.com/aretw0/solliq/pkg/domain"
	"github.com/aretw0/solliq/pkg/elements"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// params binds query parameters, keeping the first error.
type params struct {
	query url.Values
	err   error
}

func newParams(r *http.Request) *params {
	return &params{query: r.URL.Query()}
}

func (ps *params) bind(name string, required bool, dest any) {
	if ps.err != nil {
		return
	}
	if err := runtime.BindQueryParameter("form", true, required, name, ps.query, dest); err != nil {
		ps.err = fmt.Errorf("%w: %v", ErrBadParameter, err)
	}
}

func (ps *params) str(name string) string {
	var v string
	ps.bind(name, false, &v)
	return v
}

func (ps *params) pressure() float64 {
	var p float64
	ps.bind("p", true, &p)
	return p
}

func (ps *params) optional(name string) *float64 {
	var v *float64
	ps.bind(name, false, &v)
	return v
}

// oxides returns the composition named by preset or given as oxide fractions,
// or nil when the request carries neither.
func (s *Server) oxides(ps *params) (*domain.Oxides, error) {
	preset := ps.str("preset")
	mgo, feo := ps.optional("mgo"), ps.optional("feo")
	na2o, k2o := ps.optional("na2o"), ps.optional("k2o")
	if ps.err != nil {
		return nil, ps.err
	}
	given := mgo != nil || feo != nil || na2o != nil || k2o != nil

	if preset != "" {
		if given {
			return nil, fmt.Errorf("%w: preset and oxide fractions are exclusive", ErrBadParameter)
		}
		if s.Presets == nil {
			return nil, fmt.Errorf("%w: %q (no presets configured)", ErrUnknownPreset, preset)
		}
		ox, ok := s.Presets.Get(preset)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
		}
		return &ox, nil
	}
	if !given {
		return nil, nil
	}
	var ox domain.Oxides
	for _, f := range []struct {
		dst *float64
		v   *float64
	}{{&ox.MgO, mgo}, {&ox.FeO, feo}, {&ox.Na2O, na2o}, {&ox.K2O, k2o}} {
		if f.v != nil {
			*f.dst = *f.v
		}
	}
	return &ox, nil
}

// selectors reads the curve selectors shared by the evaluation endpoints.
func (s *Server) selectors(ps *params, kind domain.Kind) (domain.Selectors, error) {
	sel := domain.Selectors{
		Kind:     string(kind),
		Material: ps.str("material"),
		System:   ps.str("system"),
		Mode:     ps.str("mode"),
		Phase:    ps.str("phase"),
		Gradient: ps.str("gradient"),
	}
	if x := ps.optional("x_s"); x != nil {
		sel.Sulfur = *x
	}
	if ps.err != nil {
		return sel, ps.err
	}
	if kind == domain.KindSolidus || kind == domain.KindLiquidus {
		ox, err := s.oxides(ps)
		if err != nil {
			return sel, err
		}
		sel.Oxides = ox
	}
	return sel, nil
}

// evaluate serves a single-pressure evaluation of the curve described by sel.
func (s *Server) evaluate(w http.ResponseWriter, ps *params, sel domain.Selectors) {
	p := ps.pressure()
	if ps.err != nil {
		s.fail(w, sel.Kind, ps.err)
		return
	}
	q, err := sel.Query()
	if err != nil {
		s.fail(w, sel.Kind, err)
		return
	}
	res, err := s.Calc.Evaluate(q, p)
	if err != nil {
		s.fail(w, sel.Kind, err)
		return
	}
	s.metrics.observe(sel.Kind, http.StatusOK, len(res.Warnings))
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) fail(w http.ResponseWriter, kind string, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.logger.Error("evaluation failed", "kind", kind, "error", err)
	} else {
		s.logger.Debug("request rejected", "kind", kind, "error", err)
	}
	s.metrics.observe(kind, status, 0)
	writeError(w, status, err)
}

// GetSolidus handles the GET /v1/solidus request.
func (s *Server) GetSolidus(w http.ResponseWriter, r *http.Request) {
	ps := newParams(r)
	sel, err := s.selectors(ps, domain.KindSolidus)
	if err != nil {
		s.fail(w, string(domain.KindSolidus), err)
		return
	}
	s.evaluate(w, ps, sel)
}

// GetLiquidus handles the GET /v1/liquidus request.
func (s *Server) GetLiquidus(w http.ResponseWriter, r *http.Request) {
	ps := newParams(r)
	sel, err := s.selectors(ps, domain.KindLiquidus)
	if err != nil {
		s.fail(w, string(domain.KindLiquidus), err)
		return
	}
	s.evaluate(w, ps, sel)
}

// GetPhase handles the GET /v1/phases/{phase} request.
func (s *Server) GetPhase(w http.ResponseWriter, r *http.Request) {
	var phase string
	err := runtime.BindStyledParameterWithOptions("simple", "phase", chi.URLParam(r, "phase"), &phase,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		s.fail(w, string(domain.KindPhase), fmt.Errorf("%w: %v", ErrBadParameter, err))
		return
	}
	ps := newParams(r)
	sel, err := s.selectors(ps, domain.KindPhase)
	if err != nil {
		s.fail(w, string(domain.KindPhase), err)
		return
	}
	sel.Phase = phase
	s.evaluate(w, ps, sel)
}

// GetAlloy handles the GET /v1/alloy request. Exactly one of x_s (mole
// fraction) and w_s (mass fraction) must be given.
func (s *Server) GetAlloy(w http.ResponseWriter, r *http.Request) {
	kind := string(domain.KindAlloy)
	ps := newParams(r)
	xs, ws := ps.optional("x_s"), ps.optional("w_s")
	if ps.err == nil && (xs == nil) == (ws == nil) {
		ps.err = fmt.Errorf("%w: exactly one of x_s and w_s is required", ErrBadParameter)
	}
	if ps.err != nil {
		s.fail(w, kind, ps.err)
		return
	}
	sel, err := s.selectors(ps, domain.KindAlloy)
	if err != nil {
		s.fail(w, kind, err)
		return
	}
	if xs != nil {
		s.evaluate(w, ps, sel)
		return
	}

	p := ps.pressure()
	if ps.err != nil {
		s.fail(w, kind, ps.err)
		return
	}
	q, err := sel.Query()
	if err != nil {
		s.fail(w, kind, err)
		return
	}
	res, err := s.Calc.AlloyMeltingPointMass(p, *ws, q.Gradient)
	if err != nil {
		s.fail(w, kind, err)
		return
	}
	s.metrics.observe(kind, http.StatusOK, len(res.Warnings))
	s.writeJSON(w, http.StatusOK, res)
}

type eutecticResponse struct {
	Pressure    float64 `json:"p"`
	Composition float64 `json:"x_eut"`
	Temperature float64 `json:"T"`
}

// GetEutectic handles the GET /v1/eutectic request.
func (s *Server) GetEutectic(w http.ResponseWriter, r *http.Request) {
	kind := string(domain.KindEutectic)
	ps := newParams(r)
	p := ps.pressure()
	if ps.err != nil {
		s.fail(w, kind, ps.err)
		return
	}
	x, err := s.Calc.EutecticComposition(p)
	if err != nil {
		s.fail(w, kind, err)
		return
	}
	res, err := s.Calc.Evaluate(domain.Query{Kind: domain.KindEutectic}, p)
	if err != nil {
		s.fail(w, kind, err)
		return
	}
	s.metrics.observe(kind, http.StatusOK, 0)
	s.writeJSON(w, http.StatusOK, eutecticResponse{Pressure: p, Composition: x, Temperature: res.Temperature})
}

type conversionResponse struct {
	Element string  `json:"element"`
	To      string  `json:"to"`
	Input   float64 `json:"input"`
	Value   float64 `json:"value"`
}

// GetConvert handles the GET /v1/convert request.
func (s *Server) GetConvert(w http.ResponseWriter, r *http.Request) {
	ps := newParams(r)
	symbol, to := ps.str("element"), ps.str("to")
	var x float64
	ps.bind("x", true, &x)
	if ps.err != nil {
		s.fail(w, "convert", ps.err)
		return
	}
	if symbol == "" {
		symbol = string(elements.S)
	}
	el, err := elements.Parse(symbol)
	if err != nil {
		s.fail(w, "convert", err)
		return
	}

	var v float64
	switch to {
	case "", "mole":
		to = "mole"
		v, err = s.Calc.MassToMole(el, x)
	case "mass":
		v, err = s.Calc.MoleToMass(el, x)
	default:
		err = fmt.Errorf("%w: to must be mole or mass, got %q", ErrBadParameter, to)
	}
	if err != nil {
		s.fail(w, "convert", err)
		return
	}
	s.writeJSON(w, http.StatusOK, conversionResponse{Element: string(el), To: to, Input: x, Value: v})
}

// GetInterpolate handles the GET /v1/interpolate request.
func (s *Server) GetInterpolate(w http.ResponseWriter, r *http.Request) {
	const kind = "interpolate"
	ps := newParams(r)
	p := ps.pressure()
	if ps.err != nil {
		s.fail(w, kind, ps.err)
		return
	}
	ox, err := s.oxides(ps)
	if err == nil && ox == nil {
		err = fmt.Errorf("%w: a preset or oxide fractions are required", ErrBadParameter)
	}
	if err != nil {
		s.fail(w, kind, err)
		return
	}
	in, err := s.Calc.Interpolate(*ox, p)
	if err != nil {
		s.fail(w, kind, err)
		return
	}
	s.metrics.observe(kind, http.StatusOK, 0)
	s.writeJSON(w, http.StatusOK, in)
}

// GetCurve handles the GET /v1/curve request. The grid defaults to the
// customary range of the curve.
func (s *Server) GetCurve(w http.ResponseWriter, r *http.Request) {
	const kind = "curve"
	ps := newParams(r)
	var k string
	ps.bind("kind", true, &k)
	if ps.err != nil {
		s.fail(w, kind, ps.err)
		return
	}
	sel, err := s.selectors(ps, domain.Kind(k))
	if err != nil {
		s.fail(w, kind, err)
		return
	}
	q, err := sel.Query()
	if err != nil {
		s.fail(w, kind, err)
		return
	}

	grid := domain.DefaultGrid(q)
	ps.bind("min", false, &grid.Min)
	ps.bind("max", false, &grid.Max)
	ps.bind("n", false, &grid.N)
	if ps.err != nil {
		s.fail(w, kind, ps.err)
		return
	}

	curve, err := s.Calc.Sample(r.Context(), q, grid)
	if err != nil {
		s.fail(w, kind, err)
		return
	}
	s.metrics.observe(kind, http.StatusOK, len(curve.Warnings))
	s.writeJSON(w, http.StatusOK, curve)
}

// GetReferences handles the GET /v1/references request.
func (s *Server) GetReferences(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, composition.References())
}

// GetPresets handles the GET /v1/presets request.
func (s *Server) GetPresets(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	if s.Presets != nil {
		names = s.Presets.Names()
	}
	s.writeJSON(w, http.StatusOK, names)
}
