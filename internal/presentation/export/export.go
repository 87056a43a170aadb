// Package export writes sampled curves in machine-readable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/solliq/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	CSV  Format = "csv"
	YAML Format = "yaml"
	JSON Format = "json"
)

// ParseFormat resolves a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, YAML, JSON:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv, yaml or json)", s)
}

// Write encodes curve to w.
func Write(w io.Writer, f Format, curve domain.Curve) error {
	switch f {
	case CSV:
		return WriteCSV(w, curve)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(curve); err != nil {
			return fmt.Errorf("failed to encode curve as yaml: %w", err)
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(curve)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// WriteCSV writes a header and one p,T row per point. Warnings are written
// as trailing comment lines starting with '#'.
func WriteCSV(w io.Writer, curve domain.Curve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"p_GPa", "T_K"}); err != nil {
		return err
	}
	for _, pt := range curve.Points {
		row := []string{
			strconv.FormatFloat(pt.Pressure, 'g', -1, 64),
			strconv.FormatFloat(pt.Temperature, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	for _, warn := range curve.Warnings {
		if _, err := fmt.Fprintf(w, "# %s\n", warn); err != nil {
			return err
		}
	}
	return nil
}

// ReadCSV parses the output of WriteCSV, ignoring comment lines.
func ReadCSV(r io.Reader) ([]domain.Point, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 2
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	points := make([]domain.Point, 0, len(records)-1)
	for i, rec := range records[1:] {
		p, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: pressure: %w", i+2, err)
		}
		t, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: temperature: %w", i+2, err)
		}
		points = append(points, domain.Point{Pressure: p, Temperature: t})
	}
	return points, nil
}
