/*
Package melting implements the solidus and liquidus parameterizations of
peridotite, basalt/eclogite, their liquidus phases, and of iron and FeS.

Every curve maps a pressure p in GPa to a temperature T in K. Curves are
piecewise over ordered pressure intervals; each piece is either a polynomial of
degree three or less, evaluated in Horner form with the literal coefficients of
the published fit, or a Simon-Glatzel law a(p+b)^c. Where neighbouring pieces
describe different assemblages they are joined by a linear blend over a short
pressure window instead of a hard switch.

Pressures beyond a fit's calibration range are extrapolated silently, with one
exception: the forsterite liquidus is held at its last fitted value beyond
ForsteriteFitLimit (see ForsteriteClamped).

All functions are pure and safe for concurrent use.
*/
package melting
