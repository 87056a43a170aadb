package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectors_Query(t *testing.T) {
	tests := []struct {
		name string
		in   Selectors
		want Query
		key  string
	}{
		{
			name: "solidus defaults",
			in:   Selectors{Kind: "solidus"},
			want: Query{Kind: KindSolidus, Material: Peridotite, System: Terrestrial{}},
			key:  "solidus/peridotite/terrestrial",
		},
		{
			name: "batch basalt liquidus",
			in:   Selectors{Kind: "liquidus", Material: "eclogite", Mode: "batch"},
			want: Query{Kind: KindLiquidus, Material: Basalt, System: Terrestrial{}, Mode: Batch},
			key:  "liquidus/basalt/terrestrial/batch",
		},
		{
			name: "iron phase",
			in:   Selectors{Kind: "phase", Phase: "Fe", Gradient: "s"},
			want: Query{Kind: KindPhase, Phase: Iron, Gradient: Steep},
			key:  "phase/iron/steep",
		},
		{
			name: "alloy",
			in:   Selectors{Kind: "alloy", Sulfur: 0.1},
			want: Query{Kind: KindAlloy, Material: IronAlloy, Gradient: Flat, Sulfur: 0.1},
			key:  "alloy/flat/xS=0.1",
		},
		{
			name: "custom composition",
			in:   Selectors{Kind: "solidus", Oxides: &Oxides{MgO: 0.4, FeO: 0.04}},
			want: Query{Kind: KindSolidus, Material: Peridotite, System: Custom{Oxides: Oxides{MgO: 0.4, FeO: 0.04}}},
			key:  "solidus/peridotite/custom(MgO=0.4,FeO=0.04,Na2O=0,K2O=0)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.in.Query()
			require.NoError(t, err)
			assert.Equal(t, tt.want, q)
			assert.Equal(t, tt.key, q.Key())
		})
	}
}

func TestSelectors_QueryErrors(t *testing.T) {
	tests := []struct {
		name string
		in   Selectors
		want error
	}{
		{"kind", Selectors{Kind: "melt"}, ErrUnknownKind},
		{"material", Selectors{Kind: "solidus", Material: "granite"}, ErrUnknownMaterial},
		{"system", Selectors{Kind: "solidus", System: "venus"}, ErrUnknownSystem},
		{"custom without oxides", Selectors{Kind: "solidus", System: "custom"}, ErrUnknownSystem},
		{"oxides with named system", Selectors{Kind: "solidus", System: "mars", Oxides: &Oxides{MgO: 0.3}}, ErrUnknownSystem},
		{"invalid oxides", Selectors{Kind: "solidus", Oxides: &Oxides{}}, ErrInvalidComposition},
		{"mode", Selectors{Kind: "liquidus", Mode: "equilibrium"}, ErrUnknownMode},
		{"phase", Selectors{Kind: "phase", Phase: "quartz"}, ErrUnknownPhase},
		{"gradient", Selectors{Kind: "alloy", Gradient: "medium"}, ErrUnknownGradient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in.Query()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
