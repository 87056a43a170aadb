package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/solliq/internal/config"
	"github.com/aretw0/solliq/internal/presentation/export"
	"github.com/aretw0/solliq/internal/presentation/graph"
	"github.com/aretw0/solliq/internal/presentation/tui"
	"github.com/aretw0/solliq/pkg/adapters/sqlite"
	"github.com/aretw0/solliq/pkg/domain"
	"github.com/spf13/cobra"
)

// openOutput returns stdout, or the named file when path is set.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func newCurveCmd() *cobra.Command {
	var (
		kind    string
		sel     selectorFlags
		comp    compositionFlags
		grid    gridFlags
		format  string
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Sample a melting curve on a pressure grid",
		Long: `Samples a curve on an evenly spaced pressure grid. Sampled curves are kept
in the configured cache (memory, redis or sqlite) and reused by later calls.

Formats: table (default), markdown, yaml, json, csv and mermaid.`,
		Example: `  solliq curve --kind solidus --system martian
  solliq curve --kind phase --phase iron --gradient steep --max 330 -n 12 --format csv
  solliq curve --kind alloy --xs 0.2 --format yaml --output alloy.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				format = string(export.JSON)
			}

			s := sel.selectors(domain.Kind(kind))
			if s.Oxides, err = comp.oxides(cmd, e); err != nil {
				return err
			}
			q, err := s.Query()
			if err != nil {
				return err
			}
			g := grid.grid(cmd, domain.DefaultGrid(q))

			calc, cleanup, err := e.sampler(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			curve, err := calc.Sample(cmd.Context(), q, g)
			if err != nil {
				return err
			}

			w, closeOut, err := openOutput(cmd, outPath)
			if err != nil {
				return err
			}
			if err := writeCurve(cmd, w, format, curve); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "solidus", "curve kind: solidus, liquidus, phase, alloy, eutectic")
	addMaterialFlags(cmd, &sel)
	cmd.Flags().StringVar(&sel.mode, "mode", "fractional", "liquidus melting mode: fractional or batch")
	cmd.Flags().StringVar(&sel.phase, "phase", "", "phase of a phase curve")
	cmd.Flags().StringVarP(&sel.gradient, "gradient", "g", "flat", "iron melting gradient: flat or steep")
	cmd.Flags().Float64Var(&sel.sulfur, "xs", 0, "S mole fraction of an alloy curve")
	addCompositionFlags(cmd, &comp)
	addGridFlags(cmd, &grid)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write to a file instead of stdout")

	cmd.AddCommand(newCurveCachedCmd())
	return cmd
}

func writeCurve(cmd *cobra.Command, w io.Writer, format string, curve domain.Curve) error {
	switch strings.ToLower(format) {
	case "table", "":
		out := newPrinter(cmd)
		out.out = w
		out.json = false
		return out.Curve(curve.Key, curve)
	case "markdown", "md":
		_, err := fmt.Fprint(w, tui.CurveMarkdown(curve.Key, curve))
		return err
	case "mermaid":
		chart, err := graph.GenerateMermaid(curve.Key, []domain.Curve{curve})
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, chart)
		return err
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	return export.Write(w, f, curve)
}

// newCurveCachedCmd lists the curves kept in a sqlite cache.
func newCurveCachedCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "cached",
		Short: "List the curves stored in the sqlite cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if path == "" {
				if e.cfg.Cache.Backend != config.CacheSQLite {
					return fmt.Errorf("cache.backend is %q; pass --db to read a sqlite cache", e.cfg.Cache.Backend)
				}
				path = e.cfg.Cache.SQLitePath
			}
			store, err := sqlite.Open(cmd.Context(), path)
			if err != nil {
				return err
			}
			defer store.Close()

			sums, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			out := newPrinter(cmd)
			if out.json {
				return out.JSON(sums)
			}
			rows := make([]tui.Row, 0, len(sums))
			for _, s := range sums {
				rows = append(rows, tui.Row{Label: s.CurveKey, Value: fmt.Sprintf("%d points", s.Points)})
			}
			return out.Markdown(tui.KeyValueMarkdown("cached curves", rows))
		},
	}
	cmd.Flags().StringVar(&path, "db", "", "sqlite database (default cache.sqlite_path)")
	return cmd
}

func newDiagramCmd() *cobra.Command {
	var (
		sel     selectorFlags
		comp    compositionFlags
		grid    gridFlags
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Mermaid chart of the solidus and liquidus of a rock",
		Example: `  solliq diagram --system martian
  solliq diagram --material basalt --max 20 -n 21 --output basalt.mmd`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			ox, err := comp.oxides(cmd, e)
			if err != nil {
				return err
			}

			solidus := sel.selectors(domain.KindSolidus)
			solidus.Oxides = ox
			sq, err := solidus.Query()
			if err != nil {
				return err
			}
			queries := []domain.Query{sq}
			// Custom compositions have no liquidus parameterization.
			if ox == nil {
				lq, err := sel.selectors(domain.KindLiquidus).Query()
				if err != nil {
					return err
				}
				queries = append(queries, lq)
			}

			g := grid.grid(cmd, domain.DefaultGrid(sq))
			if !cmd.Flags().Changed("points") {
				g.N = 11
			}

			calc, cleanup, err := e.sampler(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			curves := make([]domain.Curve, 0, len(queries))
			for i, q := range queries {
				c, err := calc.Sample(cmd.Context(), q, g)
				if i > 0 && errors.Is(err, domain.ErrNotApplicable) {
					e.logger.Info("no liquidus for this rock, charting the solidus only", "key", q.Key())
					continue
				}
				if err != nil {
					return err
				}
				newPrinter(cmd).Warnings(c.Warnings)
				curves = append(curves, c)
			}

			chart, err := graph.GenerateMermaid(fmt.Sprintf("%s %s", sq.Material, domain.SystemKey(sq.System)), curves)
			if err != nil {
				return err
			}
			w, closeOut, err := openOutput(cmd, outPath)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprint(w, chart); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
	addMaterialFlags(cmd, &sel)
	cmd.Flags().StringVar(&sel.mode, "mode", "fractional", "liquidus melting mode: fractional or batch")
	addCompositionFlags(cmd, &comp)
	addGridFlags(cmd, &grid)
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
