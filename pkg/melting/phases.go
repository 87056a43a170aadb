package melting

import (
	"fmt"

	"github.com/aretw0/solliq/pkg/domain"
)

const (
	// ForsteriteFitLimit is the highest pressure (GPa) covered by the forsterite fit.
	ForsteriteFitLimit = 14.64
	// forsteriteCeiling is the temperature (K) assumed beyond ForsteriteFitLimit.
	forsteriteCeiling = 2557.6807
)

var forsteriteFit = poly(2160.6, 64.7109, -3.97463, 0.0957894)

// ForsteriteClamped evaluates the forsterite liquidus (Ohtani & Kumazawa, 1981;
// Presnall & Walter, 1993). Beyond ForsteriteFitLimit the fit is not trusted:
// the constant ceiling is returned and clamped is true.
func ForsteriteClamped(p float64) (t float64, clamped bool) {
	if p > ForsteriteFitLimit {
		return forsteriteCeiling, true
	}
	return forsteriteFit(p), false
}

// Forsterite is ForsteriteClamped without the clamp flag.
func Forsterite(p float64) float64 {
	t, _ := ForsteriteClamped(p)
	return t
}

// Pyrope melting curve.
var Pyrope Formula = simonGlatzel(589.691, 11.9076, 0.453188)

// Periclase melting curve.
var Periclase Formula = simonGlatzel(1705.67, 5.20372, 0.315027)

// Bridgmanite melting curve after Zerr & Boehler (1993). It does not enter any
// rock curve.
var Bridgmanite Formula = poly(1169.02, 79.9414, -0.338678)

// Diopside melting curve.
var Diopside Formula = poly(1665.25, 133.484, -9.02117, 0.243279)

// CaPerovskite is the CaSiO3-perovskite melting curve.
var CaPerovskite Formula = simonGlatzel(394.881, 11.1079, 0.593651)

// PhaseCurve returns the melting curve of a pure phase. The gradient only
// matters for Iron.
func PhaseCurve(ph domain.Phase, g domain.Gradient) (Formula, error) {
	switch ph {
	case domain.Forsterite:
		return Forsterite, nil
	case domain.Pyrope:
		return Pyrope, nil
	case domain.Periclase:
		return Periclase, nil
	case domain.Bridgmanite:
		return Bridgmanite, nil
	case domain.Diopside:
		return Diopside, nil
	case domain.CaPerovskite:
		return CaPerovskite, nil
	case domain.Iron:
		return IronCurve(g)
	case domain.IronSulfide:
		return IronSulfide, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPhase, string(ph))
}
