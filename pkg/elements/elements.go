// Package elements tabulates atomic masses and converts between mass and mole
// fractions of the minor component in binary iron alloys.
package elements

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/solliq/pkg/domain"
)

// Element is a chemical element symbol, e.g. "S".
type Element string

const (
	O  Element = "O"
	Na Element = "Na"
	Mg Element = "Mg"
	S  Element = "S"
	K  Element = "K"
	Fe Element = "Fe"
)

// atomic masses in kg/mol, IUPAC 2013 (Meija et al., 2016)
var atomicMass = map[Element]float64{
	O:  15.999e-3,
	Na: 22.98976928e-3,
	Mg: 24.305e-3,
	S:  32.06e-3,
	K:  39.0983e-3,
	Fe: 55.845e-3,
}

// AtomicMass returns the molar mass of el in kg/mol.
func AtomicMass(el Element) (float64, error) {
	u, ok := atomicMass[el]
	if !ok {
		return 0, fmt.Errorf("%w: no atomic mass for %q", domain.ErrUnsupportedElement, string(el))
	}
	return u, nil
}

// MustAtomicMass is AtomicMass for the symbols declared in this package.
func MustAtomicMass(el Element) float64 {
	u, err := AtomicMass(el)
	if err != nil {
		panic(err)
	}
	return u
}

// Supported lists the tabulated element symbols in alphabetical order.
func Supported() []Element {
	out := make([]Element, 0, len(atomicMass))
	for el := range atomicMass {
		out = append(out, el)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Parse resolves an element symbol, accepting any letter case ("s", "FE").
func Parse(s string) (Element, error) {
	t := strings.TrimSpace(s)
	if t != "" {
		t = strings.ToUpper(t[:1]) + strings.ToLower(t[1:])
	}
	el := Element(t)
	if _, ok := atomicMass[el]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedElement, s)
	}
	return el, nil
}

// MassToMole converts the mass fraction x of el in an Fe-el binary to its mole fraction.
func MassToMole(el Element, x float64) (float64, error) {
	u, err := AtomicMass(el)
	if err != nil {
		return 0, err
	}
	if err := checkFraction(x); err != nil {
		return 0, err
	}
	if x == 0 {
		return 0, nil
	}
	return 1 / (1 + u/atomicMass[Fe]*(1/x-1)), nil
}

// MoleToMass converts the mole fraction x of el in an Fe-el binary to its mass fraction.
func MoleToMass(el Element, x float64) (float64, error) {
	u, err := AtomicMass(el)
	if err != nil {
		return 0, err
	}
	if err := checkFraction(x); err != nil {
		return 0, err
	}
	return x * u / (x*u + (1-x)*atomicMass[Fe]), nil
}

func checkFraction(x float64) error {
	if !(x >= 0 && x <= 1) {
		return fmt.Errorf("%w: fraction %g outside [0,1]", domain.ErrInvalidComposition, x)
	}
	return nil
}
