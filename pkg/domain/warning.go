package domain

import "fmt"

// WarningCode classifies a non-fatal condition raised while evaluating a curve.
type WarningCode string

const (
	// WarnForsteriteClamped: the forsterite liquidus was held at its last fitted value.
	WarnForsteriteClamped WarningCode = "forsterite_clamped"
	// WarnSulfurClamped: an alloy richer in S than FeS was treated as pure FeS.
	WarnSulfurClamped WarningCode = "sulfur_clamped"
)

// Warning is a non-fatal condition; evaluation proceeds with a substituted value.
type Warning struct {
	Code    WarningCode `json:"code" yaml:"code"`
	Message string      `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// MergeWarnings appends the warnings in add whose code is not already present.
func MergeWarnings(dst []Warning, add ...Warning) []Warning {
	for _, w := range add {
		seen := false
		for _, d := range dst {
			if d.Code == w.Code {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, w)
		}
	}
	return dst
}
