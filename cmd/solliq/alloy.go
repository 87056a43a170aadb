package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/aretw0/solliq"
	"github.com/aretw0/solliq/internal/presentation/tui"
	"github.com/aretw0/solliq/pkg/composition"
	"github.com/aretw0/solliq/pkg/domain"
	"github.com/aretw0/solliq/pkg/elements"
	"github.com/spf13/cobra"
)

func newAlloyCmd() *cobra.Command {
	var xs, ws float64
	var gradient string
	cmd := &cobra.Command{
		Use:   "alloy <pressure>",
		Short: "Melting point of an Fe-S alloy",
		Long: `Melting point of iron alloyed with sulfur, given either the S mole
fraction (--xs) or the S mass fraction (--ws). Alloys richer in S than FeS
are evaluated as FeS.`,
		Example: `  solliq alloy 10 --ws 0.1
  solliq alloy 135 --xs 0.3 --gradient steep`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byMole, byMass := cmd.Flags().Changed("xs"), cmd.Flags().Changed("ws")
			if byMole == byMass {
				return errors.New("exactly one of --xs and --ws is required")
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			p, err := parsePressure(args[0])
			if err != nil {
				return err
			}
			g, err := domain.ParseGradient(gradient)
			if err != nil {
				return err
			}

			calc := e.calculator()
			var res solliq.Result
			if byMass {
				res, err = calc.AlloyMeltingPointMass(p, ws, g)
			} else {
				res, err = calc.AlloyMeltingPoint(p, xs, g)
			}
			if err != nil {
				return err
			}
			return newPrinter(cmd).Result("Fe-S alloy ("+string(g)+")", res)
		},
	}
	cmd.Flags().Float64Var(&xs, "xs", 0, "S mole fraction")
	cmd.Flags().Float64Var(&ws, "ws", 0, "S mass fraction")
	cmd.Flags().StringVarP(&gradient, "gradient", "g", "flat", "iron melting gradient: flat or steep")
	return cmd
}

func newConvertCmd() *cobra.Command {
	var symbol, to string
	cmd := &cobra.Command{
		Use:   "convert <fraction>",
		Short: "Convert the fraction of an element in an Fe binary between mass and mole",
		Example: `  solliq convert 0.1 --element S
  solliq convert 0.2 --to mass`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", domain.ErrInvalidComposition, args[0])
			}
			el, err := elements.Parse(symbol)
			if err != nil {
				return err
			}

			calc := e.calculator()
			var v float64
			switch to {
			case "mole":
				v, err = calc.MassToMole(el, x)
			case "mass":
				v, err = calc.MoleToMass(el, x)
			default:
				err = fmt.Errorf("--to must be mole or mass, got %q", to)
			}
			if err != nil {
				return err
			}

			out := newPrinter(cmd)
			if out.json {
				return out.JSON(map[string]any{"element": el, "to": to, "input": x, "value": v})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%g\n", v)
			return err
		},
	}
	cmd.Flags().StringVarP(&symbol, "element", "e", string(elements.S), "alloying element")
	cmd.Flags().StringVar(&to, "to", "mole", "target basis: mole or mass")
	return cmd
}

func newInterpolateCmd() *cobra.Command {
	var comp compositionFlags
	cmd := &cobra.Command{
		Use:   "interpolate <pressure>",
		Short: "Solidus of a peridotite composition, with its interpolation terms",
		Long: `Interpolates the solidus of an arbitrary peridotite between the
terrestrial solidus and a secondary reference chosen by alkali content,
weighted by the Mg# of the composition.`,
		Example: `  solliq interpolate 3 --mgo 0.38 --feo 0.08 --na2o 0.003 --k2o 0.0002
  solliq interpolate 3 --file mantle.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			p, err := parsePressure(args[0])
			if err != nil {
				return err
			}
			ox, err := comp.oxides(cmd, e)
			if err != nil {
				return err
			}
			if ox == nil {
				return errors.New("a composition is required (--file, --preset or oxide flags)")
			}
			in, err := e.calculator().Interpolate(*ox, p)
			if err != nil {
				return err
			}

			out := newPrinter(cmd)
			if out.json {
				return out.JSON(in)
			}
			return out.Markdown(tui.KeyValueMarkdown("interpolated solidus", []tui.Row{
				{Label: "p (GPa)", Value: fmt.Sprintf("%g", p)},
				{Label: "Mg#", Value: fmt.Sprintf("%.4f", in.MgNumber)},
				{Label: "Mg# (earth)", Value: fmt.Sprintf("%.4f", in.EarthMgNumber)},
				{Label: "secondary", Value: in.SecondaryName()},
				{Label: "weight", Value: fmt.Sprintf("%.4f", in.Weight)},
				{Label: "T (K)", Value: fmt.Sprintf("%.2f", in.Temperature)},
			}))
		},
	}
	addCompositionFlags(cmd, &comp)
	return cmd
}

func newReferencesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "references",
		Short: "Reference compositions used by the interpolation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			refs := composition.References()
			out := newPrinter(cmd)
			if out.json {
				return out.JSON(refs)
			}
			var rows []tui.Row
			for _, r := range refs {
				ox := r.Oxides
				rows = append(rows, tui.Row{
					Label: r.Name,
					Value: fmt.Sprintf("MgO %.3f, FeO %.3f, Na2O %.4f, K2O %.4f, Mg# %.4f", ox.MgO, ox.FeO, ox.Na2O, ox.K2O, r.MgNumber),
				})
			}
			return out.Markdown(tui.KeyValueMarkdown("reference compositions", rows))
		},
	}
}
