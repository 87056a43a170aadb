package solliq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/aretw0/solliq/internal/logging"
	"github.com/aretw0/solliq/pkg/alloy"
	"github.com/aretw0/solliq/pkg/composition"
	"github.com/aretw0/solliq/pkg/domain"
	"github.com/aretw0/solliq/pkg/elements"
	"github.com/aretw0/solliq/pkg/melting"
	"github.com/aretw0/solliq/pkg/ports"
	"golang.org/x/sync/errgroup"
)

// Calculator is the high-level entry point of the library.
// It validates inputs, selects the parameterization and reports warnings.
// A Calculator is immutable after New and safe for concurrent use.
type Calculator struct {
	logger  *slog.Logger
	cache   ports.CurveCache
	locker  ports.DistributedLocker
	lockTTL time.Duration
	workers int
}

// Option defines a functional option for configuring the Calculator.
type Option func(*Calculator)

// WithLogger sets a custom structured logger. Warnings are logged at WARN.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// WithCache stores sampled curves in cache.
func WithCache(cache ports.CurveCache) Option {
	return func(c *Calculator) {
		c.cache = cache
	}
}

// WithLocker serializes sampling of the same curve across replicas sharing a cache.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(c *Calculator) {
		c.locker = locker
		c.lockTTL = ttl
	}
}

// WithWorkers bounds the number of goroutines used by Sample (default GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(c *Calculator) {
		c.workers = n
	}
}

// New creates a Calculator.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		lockTTL: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.workers < 1 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	return c
}

// Result is a temperature at one pressure.
type Result struct {
	Pressure    float64          `json:"p" yaml:"p"`
	Temperature float64          `json:"T" yaml:"T"`
	Warnings    []domain.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	// Interpolation is set for solidi of custom compositions.
	Interpolation *composition.Interpolation `json:"interpolation,omitempty" yaml:"interpolation,omitempty"`
	// Alloy is set for Fe-S alloy melting points.
	Alloy *alloy.Melt `json:"alloy,omitempty" yaml:"alloy,omitempty"`
}

// evaluator computes one Result; selectors are already resolved.
type evaluator func(p float64) (Result, error)

func fromFormula(f melting.Formula) evaluator {
	return func(p float64) (Result, error) {
		return Result{Pressure: p, Temperature: f(p)}, nil
	}
}

// resolve binds a query to its parameterization.
func (c *Calculator) resolve(q domain.Query) (evaluator, error) {
	switch q.Kind {
	case domain.KindSolidus:
		if custom, ok := q.System.(domain.Custom); ok && q.Material == domain.Peridotite {
			if err := custom.Oxides.Validate(); err != nil {
				return nil, err
			}
			return func(p float64) (Result, error) {
				in, err := composition.Interpolate(p, custom.Oxides)
				if err != nil {
					return Result{}, err
				}
				return Result{Pressure: p, Temperature: in.Temperature, Interpolation: &in}, nil
			}, nil
		}
		f, err := melting.Solidus(q.Material, q.System)
		if err != nil {
			return nil, err
		}
		return fromFormula(f), nil

	case domain.KindLiquidus:
		mode := q.Mode
		if mode == "" {
			mode = domain.Fractional
		}
		f, err := melting.Liquidus(q.Material, q.System, mode)
		if err != nil {
			return nil, err
		}
		return fromFormula(f), nil

	case domain.KindPhase:
		if q.Phase == domain.Forsterite {
			return func(p float64) (Result, error) {
				t, clamped := melting.ForsteriteClamped(p)
				r := Result{Pressure: p, Temperature: t}
				if clamped {
					msg := fmt.Sprintf("p>%.2f GPa, forsterite liquidus assumed constant", melting.ForsteriteFitLimit)
					r.Warnings = []domain.Warning{{Code: domain.WarnForsteriteClamped, Message: msg}}
				}
				return r, nil
			}, nil
		}
		g := q.Gradient
		if g == "" {
			g = domain.Flat
		}
		f, err := melting.PhaseCurve(q.Phase, g)
		if err != nil {
			return nil, err
		}
		return fromFormula(f), nil

	case domain.KindAlloy:
		g := q.Gradient
		if g == "" {
			g = domain.Flat
		}
		if _, err := melting.IronCurve(g); err != nil {
			return nil, err
		}
		x := q.Sulfur
		return func(p float64) (Result, error) {
			m, err := alloy.MeltingPoint(p, x, g)
			if err != nil {
				return Result{}, err
			}
			return Result{Pressure: p, Temperature: m.Temperature, Warnings: m.Warnings, Alloy: &m}, nil
		}, nil

	case domain.KindEutectic:
		return fromFormula(alloy.EutecticTemperature), nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, string(q.Kind))
}

// Evaluate computes the temperature of the curve described by q at pressure p.
func (c *Calculator) Evaluate(q domain.Query, p float64) (Result, error) {
	if err := domain.ValidatePressure(p); err != nil {
		return Result{}, err
	}
	eval, err := c.resolve(q)
	if err != nil {
		return Result{}, err
	}
	r, err := eval(p)
	if err != nil {
		return Result{}, err
	}
	c.logWarnings(q.Key(), r.Warnings)
	return r, nil
}

// Solidus returns the solidus of a rock. A domain.Custom system is
// interpolated from its oxide composition.
func (c *Calculator) Solidus(m domain.Material, sys domain.System, p float64) (Result, error) {
	return c.Evaluate(domain.Query{Kind: domain.KindSolidus, Material: m, System: sys}, p)
}

// Liquidus returns the liquidus of a rock for a melting mode.
func (c *Calculator) Liquidus(m domain.Material, sys domain.System, mode domain.MeltingMode, p float64) (Result, error) {
	return c.Evaluate(domain.Query{Kind: domain.KindLiquidus, Material: m, System: sys, Mode: mode}, p)
}

// PhaseLiquidus returns the melting temperature of a pure phase. The gradient
// selects the iron curve and is ignored for other phases.
func (c *Calculator) PhaseLiquidus(ph domain.Phase, g domain.Gradient, p float64) (Result, error) {
	return c.Evaluate(domain.Query{Kind: domain.KindPhase, Phase: ph, Gradient: g}, p)
}

// EutecticComposition returns the S mole fraction of the Fe-FeS eutectic.
func (c *Calculator) EutecticComposition(p float64) (float64, error) {
	if err := domain.ValidatePressure(p); err != nil {
		return 0, err
	}
	return alloy.EutecticComposition(p), nil
}

// EutecticTemperature returns the Fe-FeS eutectic temperature.
func (c *Calculator) EutecticTemperature(p float64) (Result, error) {
	return c.Evaluate(domain.Query{Kind: domain.KindEutectic}, p)
}

// AlloyMeltingPoint returns the melting point of Fe with S mole fraction xS.
func (c *Calculator) AlloyMeltingPoint(p, xS float64, g domain.Gradient) (Result, error) {
	return c.Evaluate(domain.Query{Kind: domain.KindAlloy, Gradient: g, Sulfur: xS}, p)
}

// AlloyMeltingPointMass is AlloyMeltingPoint for an S mass fraction wS.
func (c *Calculator) AlloyMeltingPointMass(p, wS float64, g domain.Gradient) (Result, error) {
	if math.IsNaN(wS) || wS < 0 || wS > 1 {
		return Result{}, fmt.Errorf("%w: S mass fraction %g", domain.ErrInvalidComposition, wS)
	}
	xS, err := elements.MassToMole(elements.S, wS)
	if err != nil {
		return Result{}, err
	}
	return c.AlloyMeltingPoint(p, xS, g)
}

// MassToMole converts the mass fraction of el in an Fe-el binary to a mole fraction.
func (c *Calculator) MassToMole(el elements.Element, x float64) (float64, error) {
	return elements.MassToMole(el, x)
}

// MoleToMass converts the mole fraction of el in an Fe-el binary to a mass fraction.
func (c *Calculator) MoleToMass(el elements.Element, x float64) (float64, error) {
	return elements.MoleToMass(el, x)
}

// Interpolate evaluates the solidus of an arbitrary peridotite composition
// and returns the quantities the interpolation was derived from.
func (c *Calculator) Interpolate(ox domain.Oxides, p float64) (composition.Interpolation, error) {
	if err := domain.ValidatePressure(p); err != nil {
		return composition.Interpolation{}, err
	}
	return composition.Interpolate(p, ox)
}

// Sample evaluates the curve of q on every pressure of grid, in parallel.
// With a cache configured, a curve sampled before on the same grid is
// returned without evaluation.
func (c *Calculator) Sample(ctx context.Context, q domain.Query, grid domain.Grid) (domain.Curve, error) {
	if err := grid.Validate(); err != nil {
		return domain.Curve{}, err
	}
	eval, err := c.resolve(q)
	if err != nil {
		return domain.Curve{}, err
	}
	key := q.Key() + "@" + grid.String()

	if curve, ok := c.cached(ctx, key); ok {
		return curve, nil
	}

	if c.cache != nil && c.locker != nil {
		unlock, err := c.locker.Lock(ctx, key, c.lockTTL)
		if err != nil {
			return domain.Curve{}, fmt.Errorf("failed to lock curve %s: %w", key, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				c.logger.Warn("failed to release curve lock", "key", key, "error", err)
			}
		}()
		// another replica may have filled the cache while we waited
		if curve, ok := c.cached(ctx, key); ok {
			return curve, nil
		}
	}

	curve, err := c.sample(ctx, key, eval, grid.Pressures())
	if err != nil {
		return domain.Curve{}, err
	}
	c.logWarnings(key, curve.Warnings)

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, curve); err != nil {
			c.logger.Warn("failed to cache curve", "key", key, "error", err)
		}
	}
	return curve, nil
}

func (c *Calculator) sample(ctx context.Context, key string, eval evaluator, ps []float64) (domain.Curve, error) {
	start := time.Now()
	points := make([]domain.Point, len(ps))
	warnings := make([][]domain.Warning, len(ps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, p := range ps {
		// Go blocks while all workers are busy; stop feeding them once canceled.
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := eval(p)
			if err != nil {
				return fmt.Errorf("p=%g GPa: %w", p, err)
			}
			points[i] = domain.Point{Pressure: p, Temperature: r.Temperature}
			warnings[i] = r.Warnings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Curve{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Curve{}, err
	}

	curve := domain.Curve{Key: key, Points: points}
	for _, w := range warnings {
		curve.Warnings = domain.MergeWarnings(curve.Warnings, w...)
	}
	c.logger.Debug("sampled curve", "key", key, "points", len(points), "workers", c.workers, "elapsed", time.Since(start))
	return curve, nil
}

func (c *Calculator) cached(ctx context.Context, key string) (domain.Curve, bool) {
	if c.cache == nil {
		return domain.Curve{}, false
	}
	curve, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			c.logger.Warn("curve cache unavailable", "key", key, "error", err)
		}
		return domain.Curve{}, false
	}
	c.logger.Debug("curve cache hit", "key", key)
	return curve, true
}

func (c *Calculator) logWarnings(key string, ws []domain.Warning) {
	for _, w := range ws {
		switch w.Code {
		case domain.WarnForsteriteClamped:
			c.logger.Warn("melting.clamped", "curve", key, "detail", w.Message)
		case domain.WarnSulfurClamped:
			c.logger.Warn("alloy.sulfur_clamped", "curve", key, "detail", w.Message)
		default:
			c.logger.Warn(string(w.Code), "curve", key, "detail", w.Message)
		}
	}
}
