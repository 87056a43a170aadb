package domain

import "fmt"

// Point is one sample of a melting curve.
type Point struct {
	Pressure    float64 `json:"p" yaml:"p"` // GPa
	Temperature float64 `json:"T" yaml:"T"` // K
}

// Curve is a melting curve sampled on a pressure grid.
type Curve struct {
	Key      string    `json:"key" yaml:"key"`
	Points   []Point   `json:"points" yaml:"points"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// MaxGridPoints bounds Grid.N, and with it the memory and work of one Sample.
const MaxGridPoints = 10000

// Grid is an evenly spaced pressure axis with N points from Min to Max inclusive.
type Grid struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
	N   int     `json:"n" yaml:"n"`
}

// Validate checks that the grid can be sampled.
func (g Grid) Validate() error {
	if err := ValidatePressure(g.Min); err != nil {
		return err
	}
	if err := ValidatePressure(g.Max); err != nil {
		return err
	}
	if g.Max < g.Min {
		return fmt.Errorf("%w: grid max %g below min %g", ErrInvalidPressure, g.Max, g.Min)
	}
	if g.N < 1 || (g.N == 1 && g.Max != g.Min) {
		return fmt.Errorf("%w: grid needs at least two points, got %d", ErrInvalidPressure, g.N)
	}
	if g.N > MaxGridPoints {
		return fmt.Errorf("%w: grid of %d points exceeds %d", ErrInvalidPressure, g.N, MaxGridPoints)
	}
	return nil
}

// Pressures expands the grid.
func (g Grid) Pressures() []float64 {
	if g.N == 1 {
		return []float64{g.Min}
	}
	out := make([]float64, g.N)
	step := (g.Max - g.Min) / float64(g.N-1)
	for i := range out {
		out[i] = g.Min + float64(i)*step
	}
	out[g.N-1] = g.Max
	return out
}

func (g Grid) String() string {
	return fmt.Sprintf("%g-%g GPa (%d points)", g.Min, g.Max, g.N)
}

// DefaultGrid returns the customary plotting range for a curve, at 0.5 GPa spacing.
func DefaultGrid(q Query) Grid {
	hi := 150.0
	switch q.Kind {
	case KindAlloy, KindEutectic:
		hi = 400
	case KindPhase:
		switch q.Phase {
		case Forsterite:
			hi = 14.5
		case Pyrope, Diopside:
			hi = 26
		case CaPerovskite:
			hi = 45
		case Periclase, Bridgmanite:
			hi = 140
		case Iron, IronSulfide:
			hi = 400
		}
	default:
		if q.Material == Peridotite {
			switch q.System.(type) {
			case Terrestrial, nil:
				hi = 175
			case Martian, CMAS, Custom:
				hi = 25
			case Chondritic:
				hi = 150
			}
		}
	}
	return Grid{Min: 0, Max: hi, N: int(hi*2) + 1}
}
