// Package alloy computes the melting point of binary Fe-S alloys from the
// eutectic of the Fe-FeS join and the melting curves of its endmembers.
//
// Compositions are mole fractions of S unless stated otherwise. The solidus
// depression of each endmember (Anderson, 1998) is rescaled so that both
// sides of the join meet at the experimentally constrained eutectic
// (Ruedas et al., 2013).
package alloy

import (
	"fmt"
	"math"

	"github.com/aretw0/solliq/pkg/domain"
	"github.com/aretw0/solliq/pkg/elements"
	"github.com/aretw0/solliq/pkg/melting"
)

// FeS is the S mole fraction of stoichiometric FeS.
const FeS = 0.5

// EutecticComposition is the S mole fraction of the Fe-FeS eutectic at p.
func EutecticComposition(p float64) float64 {
	return 0.925 * math.Pow(p+8.444, -0.373)
}

// tau bends the eutectic exponent down between roughly 100 and 150 GPa.
func tau(p float64) float64 {
	return 0.49 * (1 - 0.085*(0.5-math.Atan(0.007*(250-p))/math.Pi))
}

// EutecticTemperature is the Fe-FeS eutectic temperature at p. The Gaussian
// term produces the minimum between 10 and 15 GPa.
func EutecticTemperature(p float64) float64 {
	return 255*math.Pow(p+8, tau(p)) + 600*math.Exp(-0.012*(p+2)*(p+2))
}

// Side is the side of the eutectic a composition lies on.
type Side string

const (
	IronRich   Side = "fe-rich"
	SulfurRich Side = "s-rich"
)

// Melt is the melting point of an alloy.
type Melt struct {
	Temperature float64 `json:"T" yaml:"T"`
	// MoleFraction is the S mole fraction actually used, after clamping.
	MoleFraction float64          `json:"x_s" yaml:"x_s"`
	Eutectic     float64          `json:"x_eut" yaml:"x_eut"`
	Side         Side             `json:"side" yaml:"side"`
	Warnings     []domain.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// MeltingPoint returns the melting point of Fe with S mole fraction x at
// pressure p, using the iron curve of gradient g. Compositions richer in S
// than FeS are evaluated as FeS and reported with domain.WarnSulfurClamped.
func MeltingPoint(p, x float64, g domain.Gradient) (Melt, error) {
	iron, err := melting.IronCurve(g)
	if err != nil {
		return Melt{}, err
	}
	if math.IsNaN(x) || x < 0 {
		return Melt{}, fmt.Errorf("%w: S mole fraction %g", domain.ErrInvalidComposition, x)
	}

	var m Melt
	if x > FeS {
		m.Warnings = append(m.Warnings, domain.Warning{
			Code:    domain.WarnSulfurClamped,
			Message: fmt.Sprintf("alloy contains more S than Fe (x_S=%.2f mol%%), using pure FeS", 100*x),
		})
		x = FeS
	}
	m.MoleFraction = x
	m.Eutectic = EutecticComposition(p)
	teut := EutecticTemperature(p)

	var tm, r float64
	if x <= m.Eutectic {
		m.Side = IronRich
		tm = iron(p)
		r = depression(math.Log(1-x), math.Log(1-m.Eutectic))
	} else {
		m.Side = SulfurRich
		tm = melting.IronSulfide(p)
		r = depression(math.Log(0.5+x), math.Log(0.5+m.Eutectic))
	}
	if r == 1 {
		m.Temperature = teut
	} else {
		m.Temperature = r*teut + (1-r)*tm
	}
	return m, nil
}

// depression is the share of the way from the pure endmember to the eutectic.
// A vanishing denominator only occurs when the eutectic coincides with the
// endmember, in which case the eutectic itself is returned.
func depression(num, den float64) float64 {
	if den == 0 {
		return 1
	}
	return num / den
}

// MeltingPointMass is MeltingPoint for an S mass fraction w.
func MeltingPointMass(p, w float64, g domain.Gradient) (Melt, error) {
	if math.IsNaN(w) || w < 0 || w > 1 {
		return Melt{}, fmt.Errorf("%w: S mass fraction %g", domain.ErrInvalidComposition, w)
	}
	x, err := elements.MassToMole(elements.S, w)
	if err != nil {
		return Melt{}, err
	}
	return MeltingPoint(p, x, g)
}

// MassFraction returns the S mass fraction corresponding to the mole fraction
// the melt was evaluated at.
func (m Melt) MassFraction() float64 {
	w, _ := elements.MoleToMass(elements.S, m.MoleFraction)
	return w
}
