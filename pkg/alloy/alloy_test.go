package alloy

import (
	"math"
	"testing"

	"github.com/aretw0/solliq/pkg/domain"
	"github.com/aretw0/solliq/pkg/melting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEutectic(t *testing.T) {
	assert.InDelta(t, 0.4173873138976875, EutecticComposition(0), 1e-12)
	assert.InDelta(t, 0.16106829841973527, EutecticComposition(100), 1e-12)

	assert.InDelta(t, 1268.2479986725639, EutecticTemperature(0), 1e-6)
	assert.InDelta(t, 1161.8667101322142, EutecticTemperature(14), 1e-6)
	assert.InDelta(t, 1136.2309074555758, EutecticTemperature(10), 1e-6)
	assert.InDelta(t, 2412.138195985218, EutecticTemperature(100), 1e-6)
}

func TestMeltingPoint(t *testing.T) {
	tests := []struct {
		name string
		p, x float64
		g    domain.Gradient
		want float64
		side Side
	}{
		{"iron-rich flat", 10, 0.1, domain.Flat, 1824.8276142265904, IronRich},
		{"iron-rich steep", 10, 0.1, domain.Steep, 1793.936143275827, IronRich},
		{"sulfur-rich", 10, 0.45, domain.Flat, 1604.4598441973803, SulfurRich},
		{"pure FeS", 10, 0.5, domain.Flat, 1757.3194470971034, SulfurRich},
		{"pure iron", 10, 0, domain.Steep, 2052.0980355, IronRich},
		{"deep sulfur-rich", 200, 0.3, domain.Steep, 3397.7729203775693, SulfurRich},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := MeltingPoint(tt.p, tt.x, tt.g)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, m.Temperature, 1e-6)
			assert.Equal(t, tt.side, m.Side)
			assert.Empty(t, m.Warnings)
		})
	}
}

func TestMeltingPointAtEutectic(t *testing.T) {
	for _, p := range []float64{0, 10, 14, 50, 136, 360} {
		for _, g := range []domain.Gradient{domain.Flat, domain.Steep} {
			m, err := MeltingPoint(p, EutecticComposition(p), g)
			require.NoError(t, err)
			assert.Equal(t, EutecticTemperature(p), m.Temperature, "p=%g", p)

			// approach from the sulfur-rich side
			x := math.Nextafter(EutecticComposition(p), 1)
			m, err = MeltingPoint(p, x, g)
			require.NoError(t, err)
			assert.InDelta(t, EutecticTemperature(p), m.Temperature, 1e-6, "p=%g", p)
		}
	}
}

func TestMeltingPointEndmembers(t *testing.T) {
	m, err := MeltingPoint(50, 0, domain.Flat)
	require.NoError(t, err)
	assert.Equal(t, melting.IronFlat(50), m.Temperature)

	m, err = MeltingPoint(50, 0.5, domain.Flat)
	require.NoError(t, err)
	assert.Equal(t, melting.IronSulfide(50), m.Temperature)
}

func TestMeltingPointClampsSulfur(t *testing.T) {
	m, err := MeltingPoint(10, 0.7, domain.Flat)
	require.NoError(t, err)
	assert.Equal(t, 0.5, m.MoleFraction)
	assert.InDelta(t, 1757.3194470971034, m.Temperature, 1e-6)
	require.Len(t, m.Warnings, 1)
	assert.Equal(t, domain.WarnSulfurClamped, m.Warnings[0].Code)
	assert.InDelta(t, 0.36471190489733235, m.MassFraction(), 1e-12)
}

func TestMeltingPointRejects(t *testing.T) {
	_, err := MeltingPoint(10, -0.1, domain.Flat)
	assert.ErrorIs(t, err, domain.ErrInvalidComposition)

	_, err = MeltingPoint(10, math.NaN(), domain.Flat)
	assert.ErrorIs(t, err, domain.ErrInvalidComposition)

	_, err = MeltingPoint(10, 0.1, domain.Gradient("x"))
	assert.ErrorIs(t, err, domain.ErrUnknownGradient)

	_, err = MeltingPointMass(10, 1.5, domain.Flat)
	assert.ErrorIs(t, err, domain.ErrInvalidComposition)
}

func TestMeltingPointMass(t *testing.T) {
	m, err := MeltingPointMass(10, 0.1, domain.Flat)
	require.NoError(t, err)
	assert.InDelta(t, 0.16215863060237815, m.MoleFraction, 1e-12)
	assert.InDelta(t, 1641.2352995239203, m.Temperature, 1e-6)
	assert.InDelta(t, 0.1, m.MassFraction(), 1e-12)

	m, err = MeltingPointMass(10, 0.8, domain.Flat)
	require.NoError(t, err)
	assert.Equal(t, 0.5, m.MoleFraction)
	assert.NotEmpty(t, m.Warnings)
}

func TestDepressionGuard(t *testing.T) {
	assert.Equal(t, 1.0, depression(0, 0))
	assert.Equal(t, 0.5, depression(1, 2))
}
