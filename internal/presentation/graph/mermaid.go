package graph

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/solliq/pkg/domain"
)

// ErrGridMismatch is returned when curves of one chart are sampled on different pressures.
var ErrGridMismatch = errors.New("curves are not sampled on the same pressures")

// GenerateMermaid produces a Mermaid xychart with one line per curve.
// All curves must share their pressure axis. The temperature axis is padded
// to whole hundreds of kelvin around the data.
func GenerateMermaid(title string, curves []domain.Curve) (string, error) {
	if len(curves) == 0 || len(curves[0].Points) == 0 {
		return "", fmt.Errorf("%w: nothing to chart", ErrGridMismatch)
	}
	axis := curves[0].Points
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range curves {
		if len(c.Points) != len(axis) {
			return "", fmt.Errorf("%w: %s has %d points, want %d", ErrGridMismatch, c.Key, len(c.Points), len(axis))
		}
		for i, pt := range c.Points {
			if pt.Pressure != axis[i].Pressure {
				return "", fmt.Errorf("%w: %s at point %d", ErrGridMismatch, c.Key, i)
			}
			lo = math.Min(lo, pt.Temperature)
			hi = math.Max(hi, pt.Temperature)
		}
	}

	var sb strings.Builder
	sb.WriteString("xychart-beta\n")
	if title != "" {
		// Escape double quotes for Mermaid labels
		fmt.Fprintf(&sb, "    title \"%s\"\n", strings.ReplaceAll(title, "\"", "'"))
	}

	labels := make([]string, len(axis))
	for i, pt := range axis {
		labels[i] = strconv.FormatFloat(pt.Pressure, 'f', -1, 64)
	}
	fmt.Fprintf(&sb, "    x-axis \"p (GPa)\" [%s]\n", strings.Join(labels, ", "))
	fmt.Fprintf(&sb, "    y-axis \"T (K)\" %.0f --> %.0f\n", math.Floor(lo/100)*100, math.Ceil(hi/100)*100)

	for _, c := range curves {
		fmt.Fprintf(&sb, "    %%%% %s\n", sanitizeMermaidID(c.Key))
		values := make([]string, len(c.Points))
		for i, pt := range c.Points {
			values[i] = strconv.FormatFloat(pt.Temperature, 'f', 1, 64)
		}
		fmt.Fprintf(&sb, "    line [%s]\n", strings.Join(values, ", "))
	}
	return sb.String(), nil
}

// sanitizeMermaidID keeps curve keys readable inside Mermaid comments.
func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, "\n", " ")
	s = strings.ReplaceAll(s, "%", "_")
	return s
}
