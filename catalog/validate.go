package catalog

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks struct tags plus the cross-field rules of the reference data
func Validate(zones []Zone, packages []Package) error {
	var errs []error

	seenZones := map[string]bool{}
	for _, z := range zones {
		if err := validateZone(z); err != nil {
			errs = append(errs, fmt.Errorf("zone %q: %w", z.ID, err))
		}
		if seenZones[z.ID] {
			errs = append(errs, fmt.Errorf("zone %q: duplicate id", z.ID))
		}
		seenZones[z.ID] = true
	}

	seenPkgs := map[string]bool{}
	for _, p := range packages {
		if err := validatePackage(p); err != nil {
			errs = append(errs, fmt.Errorf("package %q: %w", p.ID, err))
		}
		if seenPkgs[p.ID] {
			errs = append(errs, fmt.Errorf("package %q: duplicate id", p.ID))
		}
		seenPkgs[p.ID] = true
	}

	return errors.Join(errs...)
}

func validateZone(z Zone) error {
	if err := validate.Struct(z); err != nil {
		return err
	}
	if z.TravelSurcharge == nil && !z.RequiresQuotation {
		return errors.New("travel surcharge is required unless the zone requires quotation")
	}
	if z.TravelSurcharge != nil && *z.TravelSurcharge < 0 {
		return errors.New("travel surcharge must not be negative")
	}
	return nil
}

func validatePackage(p Package) error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if len(p.Tiers) != len(TierThresholds) {
		return fmt.Errorf("pricing tiers must be exactly %v", TierThresholds)
	}
	var prev Money
	for i, threshold := range TierThresholds {
		price, ok := p.Tiers[threshold]
		if !ok {
			return fmt.Errorf("missing pricing tier %d", threshold)
		}
		if price <= 0 {
			return fmt.Errorf("tier %d must have a positive price", threshold)
		}
		// thresholds descend, so each lower tier must cost at least as much per head
		if i > 0 && price < prev {
			return fmt.Errorf("tier %d (%s) is cheaper than tier %d (%s)", threshold, price, TierThresholds[i-1], prev)
		}
		prev = price
	}
	if p.BasePricePerGuest != p.Tiers[TierThresholds[0]] {
		return fmt.Errorf("base price %s must equal the %d-guest tier %s", p.BasePricePerGuest, TierThresholds[0], p.Tiers[TierThresholds[0]])
	}

	switch p.Style {
	case StyleBuildYourOwn:
		if len(p.RequiredStructure) == 0 {
			return errors.New("build-your-own package needs a required structure")
		}
		for cat, n := range p.RequiredStructure {
			if !cat.Valid() {
				return fmt.Errorf("unknown category %q in required structure", cat)
			}
			if n <= 0 {
				return fmt.Errorf("category %q must require at least one dish", cat)
			}
		}
	default:
		if len(p.RequiredStructure) > 0 {
			return errors.New("required structure is only allowed on build-your-own packages")
		}
		if len(p.Presets) == 0 {
			return errors.New("preset package needs at least one preset option")
		}
	}
	return nil
}
