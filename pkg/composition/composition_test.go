package composition

import (
	"testing"

	"github.com/aretw0/solliq/pkg/domain"
	"github.com/aretw0/solliq/pkg/melting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMgNumber(t *testing.T) {
	assert.InDelta(t, 0.8900120919101608, MgNumber(Earth), 1e-12)
	assert.InDelta(t, 0.7504638324165523, MgNumber(Mars), 1e-12)
	assert.Equal(t, 1.0, MgNumber(domain.Oxides{MgO: 0.4}))
	assert.Equal(t, 0.0, MgNumber(domain.Oxides{FeO: 0.4}))
}

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name      string
		ox        domain.Oxides
		want      float64
		mgNumber  float64
		secondary domain.System
	}{
		{"iron-rich", domain.Oxides{MgO: 0.34, FeO: 0.12, Na2O: 0.004, K2O: 0.0003}, 1878.0471831692298, 0.8347261976035627, domain.Martian{}},
		{"iron-poor", domain.Oxides{MgO: 0.40, FeO: 0.04, Na2O: 0.0035, K2O: 0.0003}, 1920.1575765652697, 0.946880634311441, domain.CMAS{}},
		{"mars reproduces martian solidus", Mars, melting.SolidusMartian(5), MgNumber(Mars), domain.Martian{}},
		{"pure forsterite-like reproduces cmas", domain.Oxides{MgO: 0.40}, melting.SolidusCMAS(5), 1, domain.CMAS{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Interpolate(5, tt.ox)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, in.Temperature, 1e-6)
			assert.InDelta(t, tt.mgNumber, in.MgNumber, 1e-12)
			assert.Equal(t, tt.secondary, in.Secondary)
			assert.Equal(t, MgNumber(Earth), in.EarthMgNumber)
			assert.GreaterOrEqual(t, in.Weight, 0.0)
			assert.LessOrEqual(t, in.Weight, 1.0)
		})
	}
}

func TestInterpolate_EarthIsTerrestrial(t *testing.T) {
	for _, p := range []float64{0, 5, 10, 23.5, 50, 136, 200, 400} {
		in, err := Interpolate(p, Earth)
		require.NoError(t, err)
		assert.Equal(t, melting.SolidusTerrestrial(p), in.Temperature, "p=%g", p)
		assert.Equal(t, 0.0, in.Weight, "p=%g", p)
	}
}

func TestInterpolateWeights(t *testing.T) {
	in, err := Interpolate(5, Earth)
	require.NoError(t, err)
	assert.Equal(t, 0.0, in.Weight)

	in, err = Interpolate(5, Mars)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, in.Weight, 1e-12)
	assert.Equal(t, "martian", in.SecondaryName())
}

func TestAlkaliCorrection(t *testing.T) {
	richer := Earth
	richer.Na2O += 0.001

	base, err := Interpolate(3, Earth)
	require.NoError(t, err)
	in, err := Interpolate(3, richer)
	require.NoError(t, err)
	assert.InDelta(t, AlkaliSlope*0.001, in.Temperature-base.Temperature, 1e-6)
}

func TestInterpolateRejects(t *testing.T) {
	_, err := Interpolate(5, domain.Oxides{MgO: 0.2, FeO: 0.3})
	assert.ErrorIs(t, err, domain.ErrCompositionOutOfRange)

	_, err = Interpolate(5, domain.Oxides{})
	assert.ErrorIs(t, err, domain.ErrInvalidComposition)

	_, err = Interpolate(5, domain.Oxides{MgO: 1.2})
	assert.ErrorIs(t, err, domain.ErrInvalidComposition)
}

func TestReferences(t *testing.T) {
	refs := References()
	require.Len(t, refs, 2)
	assert.Equal(t, "earth", refs[0].Name)
	assert.Equal(t, Mars, refs[1].Oxides)
}
