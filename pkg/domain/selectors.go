package domain

import (
	"fmt"
	"strings"
)

// Selectors is the textual form of a Query, as received from a command line,
// an HTTP request or a tool call. Empty fields take their defaults.
type Selectors struct {
	Kind     string
	Material string
	System   string
	Mode     string
	Phase    string
	Gradient string
	// Sulfur is the S mole fraction of an Fe-S alloy.
	Sulfur float64
	// Oxides, when set, makes the system a Custom one.
	Oxides *Oxides
}

// Query resolves the selectors, failing on the first unknown name.
func (s Selectors) Query() (Query, error) {
	var q Query
	var err error

	if q.Kind, err = ParseKind(s.Kind); err != nil {
		return Query{}, err
	}
	switch q.Kind {
	case KindSolidus, KindLiquidus:
		if q.Material, err = ParseMaterial(orDefault(s.Material, string(Peridotite))); err != nil {
			return Query{}, err
		}
		if q.System, err = s.system(); err != nil {
			return Query{}, err
		}
		if q.Kind == KindLiquidus {
			if q.Mode, err = ParseMeltingMode(s.Mode); err != nil {
				return Query{}, err
			}
		}
	case KindPhase:
		if q.Phase, err = ParsePhase(s.Phase); err != nil {
			return Query{}, err
		}
		if q.Gradient, err = ParseGradient(s.Gradient); err != nil {
			return Query{}, err
		}
	case KindAlloy:
		q.Material = IronAlloy
		if q.Gradient, err = ParseGradient(s.Gradient); err != nil {
			return Query{}, err
		}
		q.Sulfur = s.Sulfur
	}
	return q, nil
}

func (s Selectors) system() (System, error) {
	name := strings.ToLower(strings.TrimSpace(s.System))
	if s.Oxides != nil && (name == "" || name == "custom" || name == "other") {
		return NewCustom(*s.Oxides)
	}
	if s.Oxides != nil {
		return nil, fmt.Errorf("%w: oxides given for the %s system", ErrUnknownSystem, name)
	}
	return ParseSystem(name)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
