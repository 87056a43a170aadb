package tui

import (
	"testing"

	"github.com/aretw0/solliq/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestCurveMarkdown(t *testing.T) {
	c := domain.Curve{
		Key:      "phase/forsterite",
		Points:   []domain.Point{{Pressure: 0, Temperature: 2160.6}, {Pressure: 15, Temperature: 2557.6807}},
		Warnings: []domain.Warning{{Code: domain.WarnForsteriteClamped, Message: "held constant"}},
	}

	md := CurveMarkdown("Forsterite", c)
	assert.Contains(t, md, "## Forsterite")
	assert.Contains(t, md, "| 0.00 | 2160.6 |")
	assert.Contains(t, md, "| 15.00 | 2557.7 |")
	assert.Contains(t, md, "**forsterite_clamped**: held constant")
}

func TestKeyValueMarkdown(t *testing.T) {
	md := KeyValueMarkdown("", []Row{{Label: "Mg#", Value: "0.890"}})
	assert.NotContains(t, md, "##")
	assert.Contains(t, md, "| Mg# | 0.890 |")
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("| a | b |\n|---|---|\n| 1 | 2 |\n")
	assert.NoError(t, err)
	assert.Contains(t, out, "1")
}
