/*
Package domain contains the value types shared by the solliq melting-curve core.

It defines the selectors used to pick a curve (Material, System, Phase,
Gradient, MeltingMode), the oxide composition of a peridotite, the warnings a
curve may raise and the sentinel errors returned on invalid input. The package
is pure: no I/O, no package-level mutable state.

# Key Entities

  - Material: Peridotite, Basalt (eclogite) or IronAlloy.
  - System: the compositional system of a peridotite (Terrestrial, Martian,
    CMAS, Chondritic or a Custom oxide composition).
  - Oxides: MgO, FeO, Na2O and K2O mass fractions.
  - Query: a complete description of one curve, usable as a cache key.
*/
package domain
