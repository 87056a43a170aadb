package melting

import (
	"fmt"

	"github.com/aretw0/solliq/pkg/domain"
)

// IronStructure is the crystal structure of iron at its melting point.
type IronStructure string

const (
	DeltaIron   IronStructure = "delta (bcc)"
	GammaIron   IronStructure = "gamma (fcc)"
	EpsilonIron IronStructure = "epsilon (hcp)"
)

// triple points on the flat-gradient curve, GPa
const (
	deltaGammaPressure   = 8.044
	gammaEpsilonPressure = 87.06
)

// ironFlat follows the individual phase fields; the zero-pressure melting
// point is fixed at 1811 K (Swartzendruber, 1982).
var ironFlat = Piecewise{
	{Upper: deltaGammaPressure, Closed: true, Eval: poly(1811., 30.9724)},
	{Upper: gammaEpsilonPressure, Closed: true, Eval: poly(1907.47, 19.8675, -0.1103)},
	{Upper: unbounded, Eval: poly(2130.55, 7.2054, 0.00571047)},
}

var ironSteep = poly(1811, 24.7307, -0.0627041, 6.14455e-5)

// IronFlat is the iron melting curve with the flatter high-pressure gradient.
func IronFlat(p float64) float64 {
	return ironFlat.At(p)
}

// IronSteep is the iron melting curve with the steeper high-pressure gradient.
func IronSteep(p float64) float64 {
	return ironSteep(p)
}

// IronCurve selects the iron melting curve for a gradient.
func IronCurve(g domain.Gradient) (Formula, error) {
	switch g {
	case domain.Flat:
		return IronFlat, nil
	case domain.Steep:
		return IronSteep, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGradient, string(g))
}

// IronPhase reports which iron polymorph melts at pressure p on the flat-gradient curve.
func IronPhase(p float64) IronStructure {
	switch {
	case p <= deltaGammaPressure:
		return DeltaIron
	case p <= gammaEpsilonPressure:
		return GammaIron
	}
	return EpsilonIron
}

// IronSulfide is the melting curve of stoichiometric FeS, fixed at 1467 K at zero pressure.
var IronSulfide Formula = simonGlatzel(638.5613, 13.2844, 0.3216)
