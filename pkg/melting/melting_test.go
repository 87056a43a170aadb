package melting

import (
	"math"
	"testing"

	"github.com/aretw0/solliq/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-6

func TestReferenceValues(t *testing.T) {
	tests := []struct {
		name string
		f    Formula
		p    float64
		want float64
	}{
		{"terrestrial solidus at surface", SolidusTerrestrial, 0, 1358.81061},
		{"terrestrial solidus 5 GPa", SolidusTerrestrial, 5, 1894.794035},
		{"terrestrial solidus 15 GPa", SolidusTerrestrial, 15, 2307.8},
		{"terrestrial solidus 50 GPa", SolidusTerrestrial, 50, 3259.86039448748},
		{"terrestrial solidus at CMB", SolidusTerrestrial, 136, 4086.619421864054},
		{"cmas solidus 5 GPa", SolidusCMAS, 5, 2000.66475},
		{"cmas solidus 30 GPa", SolidusCMAS, 30, 2837.149717175779},
		{"martian solidus 5 GPa", SolidusMartian, 5, 1847.47025},
		{"martian solidus 30 GPa", SolidusMartian, 30, 2850},
		{"chondritic solidus at surface", SolidusChondritic, 0, 1330.7903931927697},
		{"chondritic solidus 100 GPa", SolidusChondritic, 100, 3666.452954823659},
		{"peridotite liquidus at surface", LiquidusPeridotite, 0, 2160.6},
		{"peridotite liquidus 10 GPa", LiquidusPeridotite, 10, 2506.0354},
		{"peridotite liquidus 20 GPa", LiquidusPeridotite, 20, 2832.5088573846806},
		{"peridotite liquidus mid blend", LiquidusPeridotite, 23.5, 3940.2427115420423},
		{"peridotite liquidus 24 GPa", LiquidusPeridotite, 24, 4937.9604047911225},
		{"peridotite liquidus 100 GPa", LiquidusPeridotite, 100, 7394.169489830911},
		{"peridotite batch at surface", BatchLiquidusPeridotite, 0, 2067.59},
		{"peridotite batch 100 GPa", BatchLiquidusPeridotite, 100, 4892.971176566945},
		{"chondritic batch at surface", BatchLiquidusChondritic, 0, 1875.4314120312479},
		{"chondritic batch 100 GPa", BatchLiquidusChondritic, 100, 4153.464417844679},
		{"basalt solidus at surface", SolidusBasalt, 0, 1340},
		{"basalt solidus 2 GPa", SolidusBasalt, 2, 1421.71936},
		{"basalt solidus 10 GPa", SolidusBasalt, 10, 2040.38},
		{"basalt solidus mid blend", SolidusBasalt, 28, 2625.6134},
		{"basalt solidus 100 GPa", SolidusBasalt, 100, 3589.79},
		{"basalt liquidus 0.5 GPa", LiquidusBasalt, 0.5, 2191.973766175},
		{"basalt liquidus 2 GPa", LiquidusBasalt, 2, 1898.079552},
		{"basalt liquidus 10 GPa", LiquidusBasalt, 10, 2388.724021875803},
		{"basalt liquidus 50 GPa", LiquidusBasalt, 50, 4537.166546212539},
		{"basalt batch 0.5 GPa", BatchLiquidusBasalt, 0.5, 1498.79545},
		{"basalt batch 2 GPa", BatchLiquidusBasalt, 2, 1609.15152},
		{"basalt batch 10 GPa", BatchLiquidusBasalt, 10, 2186.1355989403137},
		{"basalt batch 50 GPa", BatchLiquidusBasalt, 50, 4537.166546212539},
		{"bridgmanite 50 GPa", Bridgmanite, 50, 4319.395},
		{"diopside 2 GPa", Diopside, 2, 1898.079552},
		{"iron flat at surface", IronFlat, 0, 1811},
		{"iron steep at surface", IronSteep, 0, 1811},
		{"iron flat 100 GPa", IronFlat, 100, 2908.1947},
		{"iron steep 100 GPa", IronSteep, 100, 3718.4745},
		{"FeS at surface", IronSulfide, 0, 1467.1325879949982},
		{"FeS 100 GPa", IronSulfide, 100, 2922.9655821436313},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.f(tt.p), tol)
		})
	}
}

func TestBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		curve Piecewise
		// maximum |Right-Left| per boundary, K
		tolerance []float64
	}{
		{"terrestrial solidus", terrestrialSolidus, []float64{1, 1e-3}},
		{"cmas solidus", cmasSolidus, []float64{1e-3}},
		{"martian solidus", martianSolidus, []float64{1.5}},
		{"chondritic solidus", chondriticSolidus, []float64{5}},
		{"peridotite liquidus", peridotiteLiquidus, []float64{0.01, 1e-9, 1e-9}},
		{"peridotite batch liquidus", peridotiteBatchLiquidus, []float64{3}},
		{"basalt solidus", basaltSolidus, []float64{1, 1e-9, 1e-9}},
		{"basalt batch liquidus", basaltBatchLiquidus, []float64{0.01, 0.5, 700}},
		{"iron flat", ironFlat, []float64{0.01, 0.02}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs := tt.curve.Boundaries()
			require.Len(t, bs, len(tt.tolerance))
			for i, b := range bs {
				assert.LessOrEqual(t, math.Abs(b.Jump()), tt.tolerance[i], "boundary at %g GPa", b.Pressure)
			}
		})
	}
}

func TestBasaltLiquidusSwitchesHard(t *testing.T) {
	bs := basaltLiquidus.Boundaries()
	require.Len(t, bs, 3)
	assert.InDelta(t, 2221.43, bs[0].Left, 0.01)
	assert.InDelta(t, 1789.96, bs[0].Right, 0.01)
	assert.InDelta(t, 0.03, bs[1].Jump(), 0.001)
	assert.Greater(t, bs[2].Jump(), 270.)
}

func TestPiecewiseClosedBoundary(t *testing.T) {
	assert.Equal(t, Forsterite(13.244), LiquidusPeridotite(13.244))
	assert.Equal(t, Pyrope(13.2441), LiquidusPeridotite(13.2441))
	assert.Equal(t, Pyrope(23), LiquidusPeridotite(23))
	assert.Equal(t, Periclase(24), LiquidusPeridotite(24))

	assert.Equal(t, DeltaIron, IronPhase(8.044))
	assert.Equal(t, GammaIron, IronPhase(8.045))
	assert.Equal(t, GammaIron, IronPhase(87.06))
	assert.Equal(t, EpsilonIron, IronPhase(100))
}

func TestBlendEndpoints(t *testing.T) {
	f := blend(Pyrope, Periclase, 23, 24)
	assert.Equal(t, Pyrope(22), f(22))
	assert.Equal(t, Pyrope(23), f(23))
	assert.Equal(t, Periclase(24), f(24))
	assert.Equal(t, Periclase(30), f(30))
	assert.InDelta(t, (Pyrope(23.25)*3+Periclase(23.25))/4, f(23.25), 1e-9)
}

func TestForsteriteClamp(t *testing.T) {
	v, clamped := ForsteriteClamped(14.64)
	assert.False(t, clamped)
	assert.InDelta(t, 2556.6532934, v, 1e-6)

	v, clamped = ForsteriteClamped(14.65)
	assert.True(t, clamped)
	assert.Equal(t, 2557.6807, v)
	assert.Equal(t, 2557.6807, Forsterite(50))
}

func TestMonotonicity(t *testing.T) {
	curves := map[string]struct {
		f      Formula
		lo, hi float64
	}{
		"terrestrial solidus": {SolidusTerrestrial, 0, 136},
		"cmas solidus":        {SolidusCMAS, 0, 25},
		"chondritic solidus":  {SolidusChondritic, 0, 140},
		"peridotite liquidus": {LiquidusPeridotite, 0, 140},
		"basalt solidus":      {SolidusBasalt, 0, 140},
		"iron flat":           {IronFlat, 0, 360},
		"iron steep":          {IronSteep, 0, 360},
		"FeS":                 {IronSulfide, 0, 360},
	}
	for name, c := range curves {
		t.Run(name, func(t *testing.T) {
			prev := c.f(c.lo)
			for p := c.lo + 0.25; p <= c.hi; p += 0.25 {
				v := c.f(p)
				assert.GreaterOrEqual(t, v, prev-1, "p=%g", p)
				prev = v
			}
		})
	}
}

func TestPeridotiteLiquidusPhases(t *testing.T) {
	assert.Equal(t, []PhaseShare{{Phase: domain.Forsterite, Weight: 1}}, PeridotiteLiquidusPhases(5))
	assert.Equal(t, []PhaseShare{{Phase: domain.Pyrope, Weight: 1}}, PeridotiteLiquidusPhases(23))
	assert.Equal(t, []PhaseShare{{Phase: domain.Pyrope, Weight: 0.5}, {Phase: domain.Periclase, Weight: 0.5}}, PeridotiteLiquidusPhases(23.5))
	assert.Equal(t, []PhaseShare{{Phase: domain.Periclase, Weight: 1}}, PeridotiteLiquidusPhases(24))

	assert.Equal(t, domain.Forsterite, BasaltLiquidusPhase(0.5))
	assert.Equal(t, domain.Diopside, BasaltLiquidusPhase(1))
	assert.Equal(t, domain.Pyrope, BasaltLiquidusPhase(3.728))
	assert.Equal(t, domain.CaPerovskite, BasaltLiquidusPhase(24))
}

func TestSelectors(t *testing.T) {
	f, err := Solidus(domain.Peridotite, nil)
	require.NoError(t, err)
	assert.Equal(t, SolidusTerrestrial(5), f(5))

	f, err = Solidus(domain.Peridotite, domain.Martian{})
	require.NoError(t, err)
	assert.Equal(t, SolidusMartian(5), f(5))

	_, err = Solidus(domain.Peridotite, domain.Custom{})
	assert.ErrorIs(t, err, domain.ErrNotApplicable)

	_, err = Solidus(domain.Basalt, domain.Martian{})
	assert.ErrorIs(t, err, domain.ErrNotApplicable)

	_, err = Solidus(domain.Material("granite"), nil)
	assert.ErrorIs(t, err, domain.ErrUnknownMaterial)

	f, err = Liquidus(domain.Peridotite, domain.Martian{}, domain.Fractional)
	require.NoError(t, err)
	assert.Equal(t, LiquidusPeridotite(10), f(10))

	f, err = Liquidus(domain.Peridotite, domain.Chondritic{}, domain.Batch)
	require.NoError(t, err)
	assert.Equal(t, BatchLiquidusChondritic(10), f(10))

	_, err = Liquidus(domain.Peridotite, domain.CMAS{}, domain.Batch)
	assert.ErrorIs(t, err, domain.ErrNotApplicable)

	f, err = Liquidus(domain.Basalt, nil, domain.Batch)
	require.NoError(t, err)
	assert.Equal(t, BatchLiquidusBasalt(10), f(10))

	_, err = Liquidus(domain.Basalt, nil, domain.MeltingMode("equilibrium"))
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestPhaseCurve(t *testing.T) {
	for _, ph := range domain.Phases() {
		f, err := PhaseCurve(ph, domain.Flat)
		require.NoError(t, err, ph)
		assert.Greater(t, f(10), 0.0)
	}

	f, err := PhaseCurve(domain.Iron, domain.Steep)
	require.NoError(t, err)
	assert.Equal(t, IronSteep(100), f(100))

	_, err = PhaseCurve(domain.Iron, domain.Gradient("medium"))
	assert.ErrorIs(t, err, domain.ErrUnknownGradient)

	_, err = PhaseCurve(domain.Phase("quartz"), domain.Flat)
	assert.ErrorIs(t, err, domain.ErrUnknownPhase)
}
