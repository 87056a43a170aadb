package melting

import "math"

// Segment is one piece of a melting curve, valid below Upper.
// If Closed is set, Upper itself belongs to this segment.
type Segment struct {
	Upper  float64
	Closed bool
	Eval   Formula
}

// Piecewise is a melting curve made of segments ordered by pressure.
// The last segment must have Upper = +Inf.
type Piecewise []Segment

// At evaluates the curve at pressure p.
func (pw Piecewise) At(p float64) float64 {
	for _, s := range pw {
		if p < s.Upper || (s.Closed && p == s.Upper) {
			return s.Eval(p)
		}
	}
	return pw[len(pw)-1].Eval(p)
}

// Boundary holds the values of the two formulas meeting at a segment boundary.
type Boundary struct {
	Pressure float64
	Left     float64
	Right    float64
}

// Jump returns Right - Left.
func (b Boundary) Jump() float64 {
	return b.Right - b.Left
}

// Boundaries evaluates both adjacent formulas at every interior boundary.
func (pw Piecewise) Boundaries() []Boundary {
	out := make([]Boundary, 0, len(pw))
	for i := 0; i < len(pw)-1; i++ {
		p := pw[i].Upper
		if math.IsInf(p, 1) {
			break
		}
		out = append(out, Boundary{
			Pressure: p,
			Left:     pw[i].Eval(p),
			Right:    pw[i+1].Eval(p),
		})
	}
	return out
}

// unbounded is the Upper of a curve's last segment.
var unbounded = math.Inf(1)
