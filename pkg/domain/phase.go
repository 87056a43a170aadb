package domain

import (
	"fmt"
	"strings"
)

// Phase is a pure mineral or metal phase with its own melting curve.
type Phase string

const (
	Forsterite   Phase = "forsterite"
	Pyrope       Phase = "pyrope"
	Periclase    Phase = "periclase"
	Bridgmanite  Phase = "bridgmanite"
	Diopside     Phase = "diopside"
	CaPerovskite Phase = "ca-perovskite"
	Iron         Phase = "iron"
	IronSulfide  Phase = "fes"
)

// Phases lists every phase with a melting curve.
func Phases() []Phase {
	return []Phase{Forsterite, Pyrope, Periclase, Bridgmanite, Diopside, CaPerovskite, Iron, IronSulfide}
}

var phaseAliases = map[string]Phase{
	"fo":            Forsterite,
	"forsterite":    Forsterite,
	"py":            Pyrope,
	"pyrope":        Pyrope,
	"pc":            Periclase,
	"periclase":     Periclase,
	"br":            Bridgmanite,
	"bridgmanite":   Bridgmanite,
	"di":            Diopside,
	"diopside":      Diopside,
	"capv":          CaPerovskite,
	"ca-perovskite": CaPerovskite,
	"caperovskite":  CaPerovskite,
	"fe":            Iron,
	"iron":          Iron,
	"fes":           IronSulfide,
	"troilite":      IronSulfide,
}

// ParsePhase resolves a phase name or its usual mineralogical abbreviation.
func ParsePhase(s string) (Phase, error) {
	if p, ok := phaseAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPhase, s)
}
