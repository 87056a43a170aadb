// Package composition interpolates the peridotite solidus for arbitrary
// oxide compositions between the terrestrial, Martian and CMAS solidi.
//
// The interpolation is linear in Mg# between the terrestrial solidus and
// either the Martian (iron-rich side) or the CMAS solidus (iron-poor side),
// each referred to the terrestrial alkali content, plus a linear alkali
// correction for the target.
package composition

import (
	"fmt"

	"github.com/aretw0/solliq/pkg/domain"
	"github.com/aretw0/solliq/pkg/elements"
	"github.com/aretw0/solliq/pkg/melting"
)

// AlkaliSlope is the solidus change per unit Na2O+K2O mass fraction, K.
const AlkaliSlope = -14951.52

var (
	// Earth is the bulk silicate Earth (Palme & O'Neill, 2014).
	Earth = domain.Oxides{MgO: 0.3677, FeO: 0.081, Na2O: 0.0035, K2O: 0.0003}
	// Mars is the bulk silicate Mars (Taylor & McLennan, 2009).
	Mars = domain.Oxides{MgO: 0.302, FeO: 0.179, Na2O: 0.005, K2O: 0.0004}
)

// Reference is a named reference composition.
type Reference struct {
	Name     string        `json:"name" yaml:"name"`
	Oxides   domain.Oxides `json:"oxides" yaml:"oxides"`
	MgNumber float64       `json:"mg_number" yaml:"mg_number"`
}

// References lists the reference compositions with their Mg#.
func References() []Reference {
	return []Reference{
		{Name: "earth", Oxides: Earth, MgNumber: MgNumber(Earth)},
		{Name: "mars", Oxides: Mars, MgNumber: MgNumber(Mars)},
	}
}

// MgNumber is the molar Mg/(Mg+Fe) of a composition. It is NaN when both
// MgO and FeO are zero.
func MgNumber(ox domain.Oxides) float64 {
	uO := elements.MustAtomicMass(elements.O)
	mg := ox.MgO / (elements.MustAtomicMass(elements.Mg) + uO)
	fe := ox.FeO / (elements.MustAtomicMass(elements.Fe) + uO)
	return mg / (mg + fe)
}

// Interpolation holds the result of a compositional interpolation together
// with the quantities it was derived from.
type Interpolation struct {
	MgNumber      float64       `json:"mg_number" yaml:"mg_number"`
	EarthMgNumber float64       `json:"earth_mg_number" yaml:"earth_mg_number"`
	Secondary     domain.System `json:"-" yaml:"-"`
	Weight        float64       `json:"weight" yaml:"weight"`
	Temperature   float64       `json:"T" yaml:"T"`
}

// SecondaryName is the name of the secondary reference system.
func (in Interpolation) SecondaryName() string {
	return domain.SystemKey(in.Secondary)
}

// Interpolate evaluates the solidus of the peridotite ox at pressure p.
// Compositions with an Mg# below the Martian reference are rejected with
// domain.ErrCompositionOutOfRange.
func Interpolate(p float64, ox domain.Oxides) (Interpolation, error) {
	if err := ox.Validate(); err != nil {
		return Interpolation{}, err
	}

	mgE := MgNumber(Earth)
	in := Interpolation{MgNumber: MgNumber(ox), EarthMgNumber: mgE}
	alkE := Earth.Alkali()

	var secondary float64
	if in.MgNumber < mgE {
		mgM := MgNumber(Mars)
		if in.MgNumber < mgM {
			return Interpolation{}, fmt.Errorf("%w: Mg# %.4f below Martian %.4f",
				domain.ErrCompositionOutOfRange, in.MgNumber, mgM)
		}
		in.Secondary = domain.Martian{}
		in.Weight = (mgE - in.MgNumber) / (mgE - mgM)
		secondary = melting.SolidusMartian(p) - AlkaliSlope*(Mars.Alkali()-alkE)
	} else {
		// CMAS is the alkali-free Mg# 1 endmember
		in.Secondary = domain.CMAS{}
		in.Weight = (in.MgNumber - mgE) / (1 - mgE)
		secondary = melting.SolidusCMAS(p) + AlkaliSlope*alkE
	}

	in.Temperature = (1-in.Weight)*melting.SolidusTerrestrial(p) + in.Weight*secondary +
		AlkaliSlope*(ox.Alkali()-alkE)
	return in, nil
}
