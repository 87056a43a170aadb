package domain

import "errors"

// ErrUnknownMaterial is returned when a material selector is not recognized.
var ErrUnknownMaterial = errors.New("unknown material")

// ErrUnknownSystem is returned when a compositional system selector is not recognized.
var ErrUnknownSystem = errors.New("unknown compositional system")

// ErrUnknownPhase is returned when a mineral or metal phase selector is not recognized.
var ErrUnknownPhase = errors.New("unknown phase")

// ErrUnknownGradient is returned when an iron melting gradient is neither flat nor steep.
var ErrUnknownGradient = errors.New("unknown iron melting gradient")

// ErrUnknownMode is returned when a melting mode is neither fractional nor batch.
var ErrUnknownMode = errors.New("unknown melting mode")

// ErrUnknownKind is returned when a query kind is not recognized.
var ErrUnknownKind = errors.New("unknown curve kind")

// ErrUnsupportedElement is returned when no atomic mass is tabulated for an element symbol.
var ErrUnsupportedElement = errors.New("unsupported element")

// ErrInvalidPressure is returned for negative, NaN or infinite pressures.
var ErrInvalidPressure = errors.New("invalid pressure")

// ErrInvalidComposition is returned when an oxide or alloy composition is malformed.
var ErrInvalidComposition = errors.New("invalid composition")

// ErrCompositionOutOfRange is returned when a peridotite composition lies
// outside the Mg# range spanned by the reference systems.
var ErrCompositionOutOfRange = errors.New("composition outside interpolation range")

// ErrNotApplicable is returned when no parameterization exists for a
// combination of selectors (e.g. a batch liquidus for Martian peridotite).
var ErrNotApplicable = errors.New("no parameterization for this combination")

// ErrCacheMiss is returned by a curve cache when no curve is stored under a key.
var ErrCacheMiss = errors.New("curve not cached")
