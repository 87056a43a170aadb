package melting

import (
	"fmt"
	"math"

	"github.com/aretw0/solliq/pkg/domain"
)

// cmasOffset shifts the terrestrial lower-mantle solidus to join the CMAS
// upper-mantle fit at 23.5 GPa.
const cmasOffset = 139.2162

// Terrestrial peridotite solidus: Hirschmann (2000) with the Katz et al. (2003)
// shift, a transition-zone segment and a lower-mantle segment fitted with a
// continuity constraint at 23.5 GPa.
var terrestrialSolidus = Piecewise{
	{Upper: 10, Eval: poly(1358.81061, 132.899012, -5.1404654)},
	{Upper: 23.5, Eval: func(p float64) float64 { return horner(p-10, 2173.15, 32.39, -1.092) }},
	{Upper: unbounded, Eval: func(p float64) float64 {
		return -1647.15020384 - 5.85124635*p + 1329.1263647*math.Log(p)
	}},
}

var cmasSolidus = Piecewise{
	{Upper: 23.5, Eval: poly(1477.54, 139.391, -7.7545, 0.160258)},
	{Upper: unbounded, Eval: func(p float64) float64 { return terrestrialSolidus.At(p) + cmasOffset }},
}

// Martian solidus after Ruedas & Breuer (2017).
var martianSolidus = Piecewise{
	{Upper: 23, Eval: poly(1340.38, 130.33, -6.37695, 0.118912)},
	{Upper: unbounded, Eval: poly(975, 62.5)},
}

// Chondritic lower-mantle solidus after Andrault et al. (2018).
var chondriticSolidus = Piecewise{
	{Upper: 27.5, Eval: simonGlatzel(1337.159, 0.9717, 0.1663)},
	{Upper: unbounded, Eval: simonGlatzel(520.735, 9.6535, 0.4155)},
}

// SolidusTerrestrial is the solidus of terrestrial peridotite.
func SolidusTerrestrial(p float64) float64 { return terrestrialSolidus.At(p) }

// SolidusCMAS is the solidus of the CMAS model system.
func SolidusCMAS(p float64) float64 { return cmasSolidus.At(p) }

// SolidusMartian is the solidus of Martian peridotite.
func SolidusMartian(p float64) float64 { return martianSolidus.At(p) }

// SolidusChondritic is the solidus of a chondritic mantle.
func SolidusChondritic(p float64) float64 { return chondriticSolidus.At(p) }

// SolidusCurve returns the peridotite solidus of a named system.
// Custom compositions are handled by package composition.
func SolidusCurve(sys domain.System) (Formula, error) {
	switch sys.(type) {
	case domain.Terrestrial:
		return SolidusTerrestrial, nil
	case domain.Martian:
		return SolidusMartian, nil
	case domain.CMAS:
		return SolidusCMAS, nil
	case domain.Chondritic:
		return SolidusChondritic, nil
	case domain.Custom:
		return nil, fmt.Errorf("%w: custom solidus needs compositional interpolation", domain.ErrNotApplicable)
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrUnknownSystem, sys)
}

// pressures of the peridotite liquidus phase changes, GPa
const (
	forsteritePyropePressure = 13.244
	pyropePericlaseFrom      = 23.
	pyropePericlaseTo        = 24.
)

// Fractional-melting liquidus of peridotite: forsterite, then pyrope, then
// periclase, with a linear blend over the pyrope-periclase transition.
var peridotiteLiquidus = Piecewise{
	{Upper: forsteritePyropePressure, Closed: true, Eval: Forsterite},
	{Upper: pyropePericlaseFrom, Closed: true, Eval: Pyrope},
	{Upper: pyropePericlaseTo, Eval: blend(Pyrope, Periclase, pyropePericlaseFrom, pyropePericlaseTo)},
	{Upper: unbounded, Eval: Periclase},
}

// Batch-melting liquidus of natural terrestrial peridotite.
var peridotiteBatchLiquidus = Piecewise{
	{Upper: 22.76, Eval: poly(2067.59, 25.1327, -0.2455)},
	{Upper: unbounded, Eval: simonGlatzel(2207.71, -20.7372, 0.182)},
}

// LiquidusPeridotite is the fractional-melting liquidus of peridotite.
func LiquidusPeridotite(p float64) float64 { return peridotiteLiquidus.At(p) }

// BatchLiquidusPeridotite is the batch-melting liquidus of terrestrial peridotite.
func BatchLiquidusPeridotite(p float64) float64 { return peridotiteBatchLiquidus.At(p) }

// BatchLiquidusChondritic is the batch-melting liquidus of a chondritic mantle.
var BatchLiquidusChondritic Formula = simonGlatzel(310.317, 29.102, 0.5337)

// PhaseShare is the weight of a phase in a blended liquidus.
type PhaseShare struct {
	Phase  domain.Phase `json:"phase" yaml:"phase"`
	Weight float64      `json:"weight" yaml:"weight"`
}

// PeridotiteLiquidusPhases reports the phases controlling the peridotite
// liquidus at p. Inside the pyrope-periclase window both are returned.
func PeridotiteLiquidusPhases(p float64) []PhaseShare {
	switch {
	case p <= forsteritePyropePressure:
		return []PhaseShare{{Phase: domain.Forsterite, Weight: 1}}
	case p <= pyropePericlaseFrom:
		return []PhaseShare{{Phase: domain.Pyrope, Weight: 1}}
	case p < pyropePericlaseTo:
		w := (p - pyropePericlaseFrom) / (pyropePericlaseTo - pyropePericlaseFrom)
		return []PhaseShare{{Phase: domain.Pyrope, Weight: 1 - w}, {Phase: domain.Periclase, Weight: w}}
	}
	return []PhaseShare{{Phase: domain.Periclase, Weight: 1}}
}
