package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/solliq"
	"github.com/aretw0/solliq/internal/presentation/tui"
	"github.com/aretw0/solliq/pkg/domain"
	"github.com/spf13/cobra"
)

// printer writes command results as JSON or as a markdown table,
// rendered with glamour when stdout is a terminal.
type printer struct {
	out    io.Writer
	errOut io.Writer
	json   bool
}

func newPrinter(cmd *cobra.Command) *printer {
	asJSON, _ := cmd.Flags().GetBool("json")
	return &printer{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr(), json: asJSON}
}

func (p *printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) Markdown(md string) error {
	if tui.IsTerminalWriter(p.out) {
		rendered, err := tui.NewRenderer()(md)
		if err == nil {
			md = rendered
		}
	}
	_, err := fmt.Fprint(p.out, md)
	return err
}

func (p *printer) Warnings(ws []domain.Warning) {
	for _, w := range ws {
		fmt.Fprintln(p.errOut, tui.Warn(w.String()))
	}
}

// Result prints one evaluation. extra rows only appear in the table.
func (p *printer) Result(title string, r solliq.Result, extra ...tui.Row) error {
	if p.json {
		return p.JSON(r)
	}
	p.Warnings(r.Warnings)
	return p.Markdown(tui.KeyValueMarkdown(title, append(resultRows(r), extra...)))
}

func (p *printer) Curve(title string, c domain.Curve) error {
	if p.json {
		return p.JSON(c)
	}
	p.Warnings(c.Warnings)
	return p.Markdown(tui.CurveMarkdown(title, c))
}

func resultRows(r solliq.Result) []tui.Row {
	rows := []tui.Row{
		{Label: "p (GPa)", Value: fmt.Sprintf("%g", r.Pressure)},
		{Label: "T (K)", Value: fmt.Sprintf("%.2f", r.Temperature)},
	}
	if in := r.Interpolation; in != nil {
		rows = append(rows,
			tui.Row{Label: "Mg#", Value: fmt.Sprintf("%.4f", in.MgNumber)},
			tui.Row{Label: "Mg# (earth)", Value: fmt.Sprintf("%.4f", in.EarthMgNumber)},
			tui.Row{Label: "secondary", Value: in.SecondaryName()},
			tui.Row{Label: "weight", Value: fmt.Sprintf("%.4f", in.Weight)},
		)
	}
	if m := r.Alloy; m != nil {
		rows = append(rows,
			tui.Row{Label: "x_S", Value: fmt.Sprintf("%.4f", m.MoleFraction)},
			tui.Row{Label: "w_S", Value: fmt.Sprintf("%.4f", m.MassFraction())},
			tui.Row{Label: "x_eut", Value: fmt.Sprintf("%.4f", m.Eutectic)},
			tui.Row{Label: "side", Value: string(m.Side)},
		)
	}
	return rows
}
