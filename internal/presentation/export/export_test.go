package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aretw0/solliq/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var forsterite = domain.Curve{
	Key: "phase/forsterite",
	Points: []domain.Point{
		{Pressure: 0, Temperature: 2160.6},
		{Pressure: 20, Temperature: 2556.0123},
	},
	Warnings: []domain.Warning{{Code: domain.WarnForsteriteClamped, Message: "held constant"}},
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, forsterite))
	assert.Equal(t, "p_GPa,T_K\n0,2160.6\n20,2556.0123\n# forsterite_clamped: held constant\n", buf.String())

	points, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, forsterite.Points, points)
}

func TestWriteYAMLAndJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, YAML, forsterite))
	var fromYAML domain.Curve
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, forsterite, fromYAML)

	buf.Reset()
	require.NoError(t, Write(&buf, JSON, forsterite))
	var fromJSON domain.Curve
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	assert.Equal(t, forsterite, fromJSON)
}
