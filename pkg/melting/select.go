package melting

import (
	"fmt"

	"github.com/aretw0/solliq/pkg/domain"
)

// Solidus selects the solidus of a rock. Basalt accepts only a nil or
// terrestrial system.
func Solidus(m domain.Material, sys domain.System) (Formula, error) {
	switch m {
	case domain.Peridotite:
		if sys == nil {
			sys = domain.Terrestrial{}
		}
		return SolidusCurve(sys)
	case domain.Basalt:
		if err := basaltSystem(sys); err != nil {
			return nil, err
		}
		return SolidusBasalt, nil
	case domain.IronAlloy:
		return nil, fmt.Errorf("%w: alloy solidus depends on sulfur content", domain.ErrNotApplicable)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMaterial, string(m))
}

// Liquidus selects the liquidus of a rock for a melting mode. The fractional
// peridotite liquidus does not depend on the system; batch liquidi exist only
// for terrestrial and chondritic peridotite and for basalt.
func Liquidus(m domain.Material, sys domain.System, mode domain.MeltingMode) (Formula, error) {
	if mode != domain.Fractional && mode != domain.Batch {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMode, string(mode))
	}
	switch m {
	case domain.Peridotite:
		if mode == domain.Fractional {
			return LiquidusPeridotite, nil
		}
		switch sys.(type) {
		case nil, domain.Terrestrial:
			return BatchLiquidusPeridotite, nil
		case domain.Chondritic:
			return BatchLiquidusChondritic, nil
		}
		return nil, fmt.Errorf("%w: batch liquidus of %s peridotite", domain.ErrNotApplicable, sys.Name())
	case domain.Basalt:
		if err := basaltSystem(sys); err != nil {
			return nil, err
		}
		if mode == domain.Batch {
			return BatchLiquidusBasalt, nil
		}
		return LiquidusBasalt, nil
	case domain.IronAlloy:
		return nil, fmt.Errorf("%w: use the iron or FeS phase liquidus", domain.ErrNotApplicable)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMaterial, string(m))
}

func basaltSystem(sys domain.System) error {
	switch sys.(type) {
	case nil, domain.Terrestrial:
		return nil
	}
	return fmt.Errorf("%w: basalt in a %s system", domain.ErrNotApplicable, sys.Name())
}
