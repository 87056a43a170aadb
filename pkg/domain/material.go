package domain

import (
	"fmt"
	"strings"
)

// Material identifies the rock or metal whose melting behaviour is evaluated.
type Material string

const (
	Peridotite Material = "peridotite"
	Basalt     Material = "basalt" // basalt/eclogite
	IronAlloy  Material = "alloy"  // Fe and Fe-S alloys
)

// Materials lists every supported material.
func Materials() []Material {
	return []Material{Peridotite, Basalt, IronAlloy}
}

// ParseMaterial resolves a material name. "eclogite", "iron" and "fe-s" are accepted aliases.
func ParseMaterial(s string) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "peridotite", "per":
		return Peridotite, nil
	case "basalt", "eclogite", "bas":
		return Basalt, nil
	case "alloy", "iron", "fe", "fe-s", "fes-alloy":
		return IronAlloy, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMaterial, s)
}

// MeltingMode distinguishes fractional from batch liquidus parameterizations.
type MeltingMode string

const (
	Fractional MeltingMode = "fractional"
	Batch      MeltingMode = "batch"
)

// ParseMeltingMode resolves a melting mode name. The empty string means Fractional.
func ParseMeltingMode(s string) (MeltingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fractional", "frac":
		return Fractional, nil
	case "batch":
		return Batch, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Gradient selects one of the two high-pressure branches of the iron melting curve.
type Gradient string

const (
	Flat  Gradient = "flat"
	Steep Gradient = "steep"
)

// ParseGradient resolves a gradient name; "f" and "s" are accepted as in the
// literature tables. The empty string means Flat.
func ParseGradient(s string) (Gradient, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "f", "flat":
		return Flat, nil
	case "s", "steep":
		return Steep, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGradient, s)
}
