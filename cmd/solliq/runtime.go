package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/solliq"
	"github.com/aretw0/solliq/internal/compfile"
	"github.com/aretw0/solliq/internal/config"
	"github.com/aretw0/solliq/internal/logging"
	"github.com/aretw0/solliq/pkg/adapters/memory"
	"github.com/aretw0/solliq/pkg/adapters/redis"
	"github.com/aretw0/solliq/pkg/adapters/sqlite"
	"github.com/aretw0/solliq/pkg/domain"
	"github.com/spf13/cobra"
)

// curveLockTTL bounds how long a replica may hold a curve while sampling it.
const curveLockTTL = 30 * time.Second

// env is the configuration and logger shared by every command.
type env struct {
	cfg    config.Config
	logger *slog.Logger
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logging.NewWithWriter(cmd.ErrOrStderr(), level)}, nil
}

// calculator builds a Calculator for single evaluations.
func (e *env) calculator() *solliq.Calculator {
	return solliq.New(solliq.WithLogger(e.logger), solliq.WithWorkers(e.cfg.Sample.Workers))
}

// sampler builds a Calculator backed by the configured curve cache.
// The returned func releases the cache.
func (e *env) sampler(ctx context.Context) (*solliq.Calculator, func(), error) {
	opts := []solliq.Option{solliq.WithLogger(e.logger), solliq.WithWorkers(e.cfg.Sample.Workers)}
	cleanup := func() {}

	switch e.cfg.Cache.Backend {
	case config.CacheMemory:
		opts = append(opts, solliq.WithCache(memory.NewCache(memory.WithTTL(e.cfg.Cache.TTL))))
	case config.CacheRedis:
		cache := redis.New(e.cfg.Cache.RedisAddr, redis.WithTTL(e.cfg.Cache.TTL))
		if err := cache.Ping(ctx); err != nil {
			cache.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", e.cfg.Cache.RedisAddr, err)
		}
		locker := redis.NewLocker(cache.Client(), cache.Prefix())
		opts = append(opts, solliq.WithCache(cache), solliq.WithLocker(locker, curveLockTTL))
		cleanup = func() { cache.Close() }
	case config.CacheSQLite:
		store, err := sqlite.Open(ctx, e.cfg.Cache.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, solliq.WithCache(store))
		cleanup = func() { store.Close() }
	}
	e.logger.Debug("curve cache configured", "backend", e.cfg.Cache.Backend)
	return solliq.New(opts...), cleanup, nil
}

// presets loads the configured presets file, if any.
func (e *env) presets() (*compfile.Store, error) {
	if e.cfg.Presets == "" {
		return nil, nil
	}
	return compfile.NewStore(e.cfg.Presets, e.logger)
}

func parsePressure(s string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidPressure, s)
	}
	return p, domain.ValidatePressure(p)
}

// selectorFlags are the curve selectors accepted by the evaluation commands.
type selectorFlags struct {
	material string
	system   string
	mode     string
	phase    string
	gradient string
	sulfur   float64
}

func (f *selectorFlags) selectors(kind domain.Kind) domain.Selectors {
	return domain.Selectors{
		Kind:     string(kind),
		Material: f.material,
		System:   f.system,
		Mode:     f.mode,
		Phase:    f.phase,
		Gradient: f.gradient,
		Sulfur:   f.sulfur,
	}
}

func addMaterialFlags(cmd *cobra.Command, f *selectorFlags) {
	cmd.Flags().StringVarP(&f.material, "material", "m", "peridotite", "rock: peridotite or basalt")
	cmd.Flags().StringVarP(&f.system, "system", "s", "", "peridotite system: terrestrial, martian, cmas, chondritic")
}

// compositionFlags select a custom peridotite composition.
type compositionFlags struct {
	file   string
	preset string
	mgo    float64
	feo    float64
	na2o   float64
	k2o    float64
}

func addCompositionFlags(cmd *cobra.Command, f *compositionFlags) {
	cmd.Flags().StringVar(&f.file, "file", "", "composition file (yaml, toml or json)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "name of a composition in the presets file")
	cmd.Flags().Float64Var(&f.mgo, "mgo", 0, "MgO mass fraction")
	cmd.Flags().Float64Var(&f.feo, "feo", 0, "FeO mass fraction")
	cmd.Flags().Float64Var(&f.na2o, "na2o", 0, "Na2O mass fraction")
	cmd.Flags().Float64Var(&f.k2o, "k2o", 0, "K2O mass fraction")
}

// oxides returns the selected composition, or nil when none was given.
func (f *compositionFlags) oxides(cmd *cobra.Command, e *env) (*domain.Oxides, error) {
	given := false
	for _, name := range []string{"mgo", "feo", "na2o", "k2o"} {
		given = given || cmd.Flags().Changed(name)
	}
	sources := 0
	for _, set := range []bool{f.file != "", f.preset != "", given} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, errors.New("--file, --preset and oxide flags are exclusive")
	}

	switch {
	case f.file != "":
		ox, err := compfile.Load(f.file)
		if err != nil {
			return nil, err
		}
		return &ox, nil
	case f.preset != "":
		store, err := e.presets()
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, errors.New("no presets file configured (set presets or SOLLIQ_PRESETS)")
		}
		ox, ok := store.Get(f.preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (have %s)", f.preset, strings.Join(store.Names(), ", "))
		}
		return &ox, nil
	case given:
		return &domain.Oxides{MgO: f.mgo, FeO: f.feo, Na2O: f.na2o, K2O: f.k2o}, nil
	}
	return nil, nil
}

// gridFlags override the default pressure grid of a curve.
type gridFlags struct {
	min float64
	max float64
	n   int
}

func addGridFlags(cmd *cobra.Command, f *gridFlags) {
	cmd.Flags().Float64Var(&f.min, "min", 0, "lowest pressure, GPa")
	cmd.Flags().Float64Var(&f.max, "max", 0, "highest pressure, GPa (default: customary range of the curve)")
	cmd.Flags().IntVarP(&f.n, "points", "n", 0, "number of points (default: 0.5 GPa spacing)")
}

func (f *gridFlags) grid(cmd *cobra.Command, def domain.Grid) domain.Grid {
	g := def
	if cmd.Flags().Changed("min") {
		g.Min = f.min
	}
	if cmd.Flags().Changed("max") {
		g.Max = f.max
	}
	if cmd.Flags().Changed("points") {
		g.N = f.n
	} else if g.Max != def.Max || g.Min != def.Min {
		g.N = int((g.Max-g.Min)*2) + 1
	}
	return g
}
