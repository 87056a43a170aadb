package melting

import "math"

// Formula is a temperature (K) as a function of pressure (GPa).
type Formula func(p float64) float64

// horner evaluates c[0] + c[1]x + c[2]x² + ... by nested multiplication.
func horner(x float64, c ...float64) float64 {
	v := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		v = v*x + c[i]
	}
	return v
}

// simonGlatzel returns the generalized Simon-Glatzel law a(p+b)^c.
func simonGlatzel(a, b, c float64) Formula {
	return func(p float64) float64 {
		return a * math.Pow(p+b, c)
	}
}

// poly returns the polynomial with coefficients c in increasing order.
func poly(c ...float64) Formula {
	return func(p float64) float64 {
		return horner(p, c...)
	}
}

// blend ramps linearly from lo to hi over [from, to].
func blend(lo, hi Formula, from, to float64) Formula {
	return func(p float64) float64 {
		w := math.Min(math.Max((p-from)/(to-from), 0), 1)
		switch w {
		case 0:
			return lo(p)
		case 1:
			return hi(p)
		}
		return (1-w)*lo(p) + w*hi(p)
	}
}
