package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/solliq"
	"github.com/aretw0/solliq/pkg/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the command line against a fresh viper and a config file
// in a temporary directory. extraConfig is appended to that file.
func runCLI(t *testing.T, extraConfig string, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := filepath.Join(t.TempDir(), "solliq.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log_level: error\n"+extraConfig), 0644))

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRoot_PrintsBanner(t *testing.T) {
	out, _, err := runCLI(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "melting curves")
	assert.Contains(t, out, "solidus")
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "solliq version "+strings.TrimSpace(solliq.Version)+"\n", out)
}

func TestEvaluationCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want float64
	}{
		{"solidus", []string{"solidus", "5"}, 1894.794035},
		{"martian solidus", []string{"solidus", "5", "--system", "mars"}, 1847.47025},
		{"custom solidus", []string{"solidus", "5", "--mgo", "0.34", "--feo", "0.12", "--na2o", "0.004", "--k2o", "0.0003"}, 1878.0},
		{"liquidus", []string{"liquidus", "10"}, 2506.0354},
		{"alloy by mass", []string{"alloy", "10", "--ws", "0.1"}, 1641.2352995239203},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, "", append(tt.args, "--json")...)
			require.NoError(t, err)

			var res solliq.Result
			require.NoError(t, json.Unmarshal([]byte(out), &res), out)
			assert.InDelta(t, tt.want, res.Temperature, 0.05)
		})
	}
}

func TestSolidus_Table(t *testing.T) {
	out, _, err := runCLI(t, "", "solidus", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "## solidus/peridotite/terrestrial")
	assert.Contains(t, out, "| T (K) | 1894.79 |")
}

func TestSolidus_Preset(t *testing.T) {
	presets := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(presets, []byte("presets:\n  ferroan: {MgO: 0.34, FeO: 0.12, Na2O: 0.004, K2O: 0.0003}\n"), 0644))

	out, _, err := runCLI(t, "presets: "+presets+"\n", "solidus", "5", "--preset", "Ferroan", "--json")
	require.NoError(t, err)
	var res solliq.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 1878.0, res.Temperature, 0.05)
	require.NotNil(t, res.Interpolation)

	_, _, err = runCLI(t, "presets: "+presets+"\n", "solidus", "5", "--preset", "ferroan", "--mgo", "0.3")
	assert.ErrorContains(t, err, "exclusive")
}

func TestPhase_WarnsOnStderr(t *testing.T) {
	out, errOut, err := runCLI(t, "", "phase", "fo", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "phase/forsterite")
	assert.Contains(t, errOut, string(domain.WarnForsteriteClamped))
}

func TestPhase_IronStructure(t *testing.T) {
	out, _, err := runCLI(t, "", "phase", "iron", "100", "--gradient", "steep")
	require.NoError(t, err)
	assert.Contains(t, out, "phase/iron/steep")
	assert.Contains(t, out, "| structure | epsilon (hcp) |")
}

func TestAlloy_ClampsToFeS(t *testing.T) {
	out, errOut, err := runCLI(t, "", "alloy", "10", "--xs", "0.7")
	require.NoError(t, err)
	assert.Contains(t, out, "| x_S | 0.5000 |")
	assert.Contains(t, out, "| side | s-rich |")
	assert.Contains(t, errOut, string(domain.WarnSulfurClamped))
}

func TestEutecticAndConvert(t *testing.T) {
	out, _, err := runCLI(t, "", "eutectic", "0", "--json")
	require.NoError(t, err)
	var eut map[string]float64
	require.NoError(t, json.Unmarshal([]byte(out), &eut))
	assert.InDelta(t, 0.4173873138976875, eut["x_eut"], 1e-12)

	out, _, err = runCLI(t, "", "convert", "0.1")
	require.NoError(t, err)
	assert.Equal(t, "0.16215863060237815\n", out)
}

func TestInterpolate(t *testing.T) {
	out, _, err := runCLI(t, "", "interpolate", "5", "--mgo", "0.34", "--feo", "0.12", "--na2o", "0.004", "--k2o", "0.0003", "--json")
	require.NoError(t, err)
	var in map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &in))
	assert.InDelta(t, 0.835, in["mg_number"].(float64), 5e-4)

	_, _, err = runCLI(t, "", "interpolate", "5")
	assert.ErrorContains(t, err, "composition is required")
}

func TestCurve_CSV(t *testing.T) {
	out, _, err := runCLI(t, "", "curve", "--kind", "eutectic", "--min", "0", "--max", "100", "-n", "3", "--format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"p_GPa", "T_K"}, records[0])
	assert.Equal(t, "50", records[2][0])
}

func TestCurve_SQLiteCache(t *testing.T) {
	db := filepath.Join(t.TempDir(), "curves.db")
	cfg := "cache:\n  backend: sqlite\n  sqlite_path: " + db + "\n"

	_, _, err := runCLI(t, cfg, "curve", "--kind", "solidus", "--system", "cmas", "--format", "json")
	require.NoError(t, err)

	out, _, err := runCLI(t, cfg, "curve", "cached", "--json")
	require.NoError(t, err)
	var sums []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &sums), out)
	require.Len(t, sums, 1)
	assert.Equal(t, "solidus/peridotite/cmas", sums[0]["CurveKey"])
	assert.EqualValues(t, 51, sums[0]["Points"])
}

func TestDiagram(t *testing.T) {
	out, _, err := runCLI(t, "", "diagram", "--max", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "xychart-beta")
	assert.Contains(t, out, "%% solidus/peridotite/terrestrial")
	assert.Contains(t, out, "%% liquidus/peridotite/terrestrial/fractional")
	assert.Equal(t, 2, strings.Count(out, "    line ["))
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"negative pressure", []string{"solidus", "--", "-1"}, domain.ErrInvalidPressure},
		{"unknown system", []string{"solidus", "1", "--system", "venus"}, domain.ErrUnknownSystem},
		{"unknown phase", []string{"phase", "quartz", "1"}, domain.ErrUnknownPhase},
		{"basalt on mars", []string{"solidus", "1", "--material", "basalt", "--system", "mars"}, domain.ErrNotApplicable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, "", tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, _, err := runCLI(t, "", "alloy", "10")
	assert.ErrorContains(t, err, "exactly one of --xs and --ws")
}
