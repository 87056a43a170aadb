package main

import (
	"fmt"

	"github.com/aretw0/solliq/internal/presentation/tui"
	"github.com/aretw0/solliq/pkg/domain"
	"github.com/aretw0/solliq/pkg/melting"
	"github.com/spf13/cobra"
)

// runEvaluation evaluates the curve described by sel at the pressure in arg.
func runEvaluation(cmd *cobra.Command, e *env, sel domain.Selectors, arg string) error {
	p, err := parsePressure(arg)
	if err != nil {
		return err
	}
	q, err := sel.Query()
	if err != nil {
		return err
	}
	res, err := e.calculator().Evaluate(q, p)
	if err != nil {
		return err
	}
	var extra []tui.Row
	if q.Kind == domain.KindPhase && q.Phase == domain.Iron {
		extra = append(extra, tui.Row{Label: "structure", Value: string(melting.IronPhase(p))})
	}
	return newPrinter(cmd).Result(q.Key(), res, extra...)
}

func newSolidusCmd() *cobra.Command {
	var sel selectorFlags
	var comp compositionFlags
	cmd := &cobra.Command{
		Use:   "solidus <pressure>",
		Short: "Solidus temperature of a rock at a pressure in GPa",
		Example: `  solliq solidus 5
  solliq solidus 3 --system martian
  solliq solidus 10 --material basalt
  solliq solidus 4 --mgo 0.4 --feo 0.04 --na2o 0.003 --k2o 0.0002`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			s := sel.selectors(domain.KindSolidus)
			if s.Oxides, err = comp.oxides(cmd, e); err != nil {
				return err
			}
			return runEvaluation(cmd, e, s, args[0])
		},
	}
	addMaterialFlags(cmd, &sel)
	addCompositionFlags(cmd, &comp)
	return cmd
}

func newLiquidusCmd() *cobra.Command {
	var sel selectorFlags
	cmd := &cobra.Command{
		Use:   "liquidus <pressure>",
		Short: "Liquidus temperature of a rock at a pressure in GPa",
		Example: `  solliq liquidus 10
  solliq liquidus 2 --material basalt --mode batch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			return runEvaluation(cmd, e, sel.selectors(domain.KindLiquidus), args[0])
		},
	}
	addMaterialFlags(cmd, &sel)
	cmd.Flags().StringVar(&sel.mode, "mode", "fractional", "melting mode: fractional or batch")
	return cmd
}

func newPhaseCmd() *cobra.Command {
	var sel selectorFlags
	cmd := &cobra.Command{
		Use:   "phase <name> <pressure>",
		Short: "Melting temperature of a pure phase",
		Long: `Melting temperature of a pure phase. Known phases:
forsterite, pyrope, diopside, ca-perovskite, periclase, bridgmanite,
iron and fes (troilite).`,
		Example: `  solliq phase forsterite 10
  solliq phase iron 330 --gradient steep`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel.phase = args[0]
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			return runEvaluation(cmd, e, sel.selectors(domain.KindPhase), args[1])
		},
	}
	cmd.Flags().StringVarP(&sel.gradient, "gradient", "g", "flat", "iron melting gradient: flat or steep")
	return cmd
}

func newEutecticCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eutectic <pressure>",
		Short: "Composition and temperature of the Fe-FeS eutectic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			p, err := parsePressure(args[0])
			if err != nil {
				return err
			}
			calc := e.calculator()
			x, err := calc.EutecticComposition(p)
			if err != nil {
				return err
			}
			res, err := calc.EutecticTemperature(p)
			if err != nil {
				return err
			}

			out := newPrinter(cmd)
			if out.json {
				return out.JSON(map[string]float64{"p": p, "x_eut": x, "T": res.Temperature})
			}
			return out.Markdown(tui.KeyValueMarkdown("eutectic", []tui.Row{
				{Label: "p (GPa)", Value: fmt.Sprintf("%g", p)},
				{Label: "x_eut", Value: fmt.Sprintf("%.4f", x)},
				{Label: "T (K)", Value: fmt.Sprintf("%.2f", res.Temperature)},
			}))
		},
	}
}
