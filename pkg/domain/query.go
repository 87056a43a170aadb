package domain

import (
	"fmt"
	"math"
	"strings"
)

// Kind is the family of curve a Query asks for.
type Kind string

const (
	KindSolidus  Kind = "solidus"
	KindLiquidus Kind = "liquidus"
	KindPhase    Kind = "phase"    // melting curve of a pure phase
	KindAlloy    Kind = "alloy"    // Fe-S alloy melting point
	KindEutectic Kind = "eutectic" // Fe-FeS eutectic temperature
)

// ParseKind resolves a curve kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindSolidus, KindLiquidus, KindPhase, KindAlloy, KindEutectic:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Query fully describes one temperature-versus-pressure curve.
// Fields that do not apply to the Kind are ignored.
type Query struct {
	Kind     Kind
	Material Material
	System   System
	Mode     MeltingMode
	Phase    Phase
	Gradient Gradient
	// Sulfur is the S mole fraction of an Fe-S alloy.
	Sulfur float64
}

// Key returns a stable identifier for the curve, suitable as a cache key.
func (q Query) Key() string {
	switch q.Kind {
	case KindSolidus:
		return fmt.Sprintf("solidus/%s/%s", q.Material, SystemKey(q.System))
	case KindLiquidus:
		return fmt.Sprintf("liquidus/%s/%s/%s", q.Material, SystemKey(q.System), q.Mode)
	case KindPhase:
		if q.Phase == Iron {
			return fmt.Sprintf("phase/%s/%s", q.Phase, q.Gradient)
		}
		return fmt.Sprintf("phase/%s", q.Phase)
	case KindAlloy:
		return fmt.Sprintf("alloy/%s/xS=%g", q.Gradient, q.Sulfur)
	case KindEutectic:
		return "eutectic"
	}
	return string(q.Kind)
}

// ValidatePressure rejects pressures that cannot be evaluated.
func ValidatePressure(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return fmt.Errorf("%w: %g GPa", ErrInvalidPressure, p)
	}
	return nil
}
