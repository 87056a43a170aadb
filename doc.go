/*
Package solliq computes melting curves (solidus and liquidus temperatures) of
planetary materials as functions of pressure: peridotite, basalt/eclogite,
their liquidus phases, and iron-sulfur alloys.

Every curve is a closed-form parameterization of experimental data, either a
low-order polynomial or a Simon-Glatzel law, switched or blended piecewise
over pressure. Pressures are in GPa, temperatures in K, compositions in mass
or mole fractions.

# Concept

The Calculator is a thin facade over the pure curve packages:

  - melting: pure-phase and rock curves, selected by Material, System and MeltingMode.
  - composition: solidus interpolation for arbitrary peridotite oxide compositions.
  - alloy: Fe-FeS eutectic and melting point of binary Fe-S alloys.
  - elements: atomic masses and mass/mole conversion.

It validates pressures, resolves selectors, reports non-fatal Warnings (e.g.
a forsterite liquidus held constant beyond its fit) and samples whole curves
in parallel, optionally through a ports.CurveCache.

# Usage

	calc := solliq.New()

	r, err := calc.Solidus(domain.Peridotite, domain.Martian{}, 5)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.1f K\n", r.Temperature)

	q := domain.Query{Kind: domain.KindAlloy, Gradient: domain.Flat, Sulfur: 0.1}
	curve, err := calc.Sample(ctx, q, domain.DefaultGrid(q))

Custom compositions are given as a domain.Custom system:

	sys, err := domain.NewCustom(domain.Oxides{MgO: 0.34, FeO: 0.12, Na2O: 0.004, K2O: 0.0003})
	r, err := calc.Solidus(domain.Peridotite, sys, 5)
	fmt.Println(r.Interpolation.MgNumber)
*/
package solliq
