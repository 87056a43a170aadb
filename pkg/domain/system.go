package domain

import (
	"fmt"
	"strings"
)

// System is the compositional system of a peridotite.
// The set of implementations is closed: Terrestrial, Martian, CMAS, Chondritic and Custom.
type System interface {
	// Name returns the selector name of the system.
	Name() string
	isSystem()
}

// Terrestrial is the Earth's peridotitic mantle (KLB-1 like).
type Terrestrial struct{}

// Martian is the iron-rich Martian mantle.
type Martian struct{}

// CMAS is the iron- and alkali-free CaO-MgO-Al2O3-SiO2 model system.
type CMAS struct{}

// Chondritic is a model chondritic (primitive) mantle.
type Chondritic struct{}

// Custom is an arbitrary peridotite given by its oxide mass fractions.
type Custom struct {
	Oxides Oxides
}

func (Terrestrial) Name() string { return "terrestrial" }
func (Martian) Name() string     { return "martian" }
func (CMAS) Name() string        { return "cmas" }
func (Chondritic) Name() string  { return "chondritic" }
func (Custom) Name() string      { return "custom" }

func (Terrestrial) isSystem() {}
func (Martian) isSystem()     {}
func (CMAS) isSystem()        {}
func (Chondritic) isSystem()  {}
func (Custom) isSystem()      {}

// ParseSystem resolves one of the named systems. Custom systems carry a
// composition and are built with NewCustom instead.
func ParseSystem(s string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "terrestrial", "earth":
		return Terrestrial{}, nil
	case "martian", "mars":
		return Martian{}, nil
	case "cmas":
		return CMAS{}, nil
	case "chondritic", "chondrite":
		return Chondritic{}, nil
	case "custom", "other":
		return nil, fmt.Errorf("%w: %q requires an oxide composition", ErrUnknownSystem, s)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSystem, s)
}

// NewCustom validates the composition and wraps it as a System.
func NewCustom(ox Oxides) (Custom, error) {
	if err := ox.Validate(); err != nil {
		return Custom{}, err
	}
	return Custom{Oxides: ox}, nil
}

// SystemKey renders a system unambiguously, including the composition of a Custom system.
func SystemKey(s System) string {
	switch v := s.(type) {
	case nil:
		return "-"
	case Custom:
		return fmt.Sprintf("custom(MgO=%g,FeO=%g,Na2O=%g,K2O=%g)", v.Oxides.MgO, v.Oxides.FeO, v.Oxides.Na2O, v.Oxides.K2O)
	default:
		return v.Name()
	}
}
