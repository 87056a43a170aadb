package domain

import (
	"fmt"
	"math"
)

// Oxides holds the oxide mass fractions that control the peridotite solidus.
// Other oxides are implied and do not enter the parameterization.
type Oxides struct {
	MgO  float64 `json:"MgO" yaml:"MgO" mapstructure:"MgO"`
	FeO  float64 `json:"FeO" yaml:"FeO" mapstructure:"FeO"`
	Na2O float64 `json:"Na2O" yaml:"Na2O" mapstructure:"Na2O"`
	K2O  float64 `json:"K2O" yaml:"K2O" mapstructure:"K2O"`
}

// Alkali returns the combined Na2O+K2O mass fraction.
func (o Oxides) Alkali() float64 {
	return o.Na2O + o.K2O
}

// Scale multiplies every fraction by f, e.g. 0.01 to convert percentages.
func (o Oxides) Scale(f float64) Oxides {
	return Oxides{MgO: o.MgO * f, FeO: o.FeO * f, Na2O: o.Na2O * f, K2O: o.K2O * f}
}

// Validate checks that every fraction lies in [0,1] and that Mg# is defined.
func (o Oxides) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{{"MgO", o.MgO}, {"FeO", o.FeO}, {"Na2O", o.Na2O}, {"K2O", o.K2O}}

	sum := 0.0
	for _, f := range fields {
		if math.IsNaN(f.v) || f.v < 0 || f.v > 1 {
			return fmt.Errorf("%w: %s mass fraction %g outside [0,1]", ErrInvalidComposition, f.name, f.v)
		}
		sum += f.v
	}
	if sum > 1 {
		return fmt.Errorf("%w: oxide mass fractions sum to %g", ErrInvalidComposition, sum)
	}
	if o.MgO+o.FeO == 0 {
		return fmt.Errorf("%w: Mg# undefined without MgO or FeO", ErrInvalidComposition)
	}
	return nil
}
