package melting

import "github.com/aretw0/solliq/pkg/domain"

// garnet-bearing and bridgmanite-bearing eclogite assemblages
var (
	garnetEclogiteSolidus      = poly(1380.92, 78.676, -1.273)
	bridgmaniteEclogiteSolidus = poly(2165.09, 19.277, -0.0503)
)

// basalt solidus transition window, GPa
const (
	garnetBridgmaniteFrom = 26.
	garnetBridgmaniteTo   = 30.
)

var basaltSolidus = Piecewise{
	{Upper: 3, Eval: func(p float64) float64 { return horner(p*p, 1340., 13.0994, 1.83261) }},
	{Upper: garnetBridgmaniteFrom, Eval: garnetEclogiteSolidus},
	{Upper: garnetBridgmaniteTo, Eval: blend(garnetEclogiteSolidus, bridgmaniteEclogiteSolidus, garnetBridgmaniteFrom, garnetBridgmaniteTo)},
	{Upper: unbounded, Eval: bridgmaniteEclogiteSolidus},
}

// liquidus phase changes of basalt, GPa
const (
	forsteriteDiopsidePressure = 1.
	diopsidePyropePressure     = 3.728
	pyropeCaPerovskitePressure = 24.
)

var basaltLiquidus = Piecewise{
	{Upper: forsteriteDiopsidePressure, Eval: Forsterite},
	{Upper: diopsidePyropePressure, Eval: Diopside},
	{Upper: pyropeCaPerovskitePressure, Eval: Pyrope},
	{Upper: unbounded, Eval: CaPerovskite},
}

var basaltBatchLiquidus = Piecewise{
	{Upper: 0.88, Eval: poly(1488., 21.5909)},
	{Upper: 3.12, Eval: poly(1422.79, 97.6753, -2.24727)},
	{Upper: 22, Eval: simonGlatzel(1581.57, -1.468, 0.151)},
	{Upper: unbounded, Eval: CaPerovskite},
}

// SolidusBasalt is the solidus of basalt/eclogite up to core-mantle boundary pressures.
func SolidusBasalt(p float64) float64 { return basaltSolidus.At(p) }

// LiquidusBasalt is the fractional-melting liquidus of basalt/eclogite.
func LiquidusBasalt(p float64) float64 { return basaltLiquidus.At(p) }

// BatchLiquidusBasalt is the batch-melting liquidus of basalt/eclogite.
func BatchLiquidusBasalt(p float64) float64 { return basaltBatchLiquidus.At(p) }

// BasaltLiquidusPhase reports the phase controlling the basalt liquidus at p.
func BasaltLiquidusPhase(p float64) domain.Phase {
	switch {
	case p < forsteriteDiopsidePressure:
		return domain.Forsterite
	case p < diopsidePyropePressure:
		return domain.Diopside
	case p < pyropeCaPerovskitePressure:
		return domain.Pyrope
	}
	return domain.CaPerovskite
}
