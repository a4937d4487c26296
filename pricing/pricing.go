// Package pricing resolves per-guest tier prices, zone surcharges and order totals.
// Every function is pure and works on whole-peso integers.
package pricing

import (
	"errors"
	"fmt"
	"math"

	"catering-booking-api/catalog"
)

var (
	ErrPackageNotFound        = errors.New("package not found")
	ErrZoneNotFound           = errors.New("service zone not found")
	ErrBelowMinimumGuestCount = errors.New("guest count is below the minimum of 30")
	ErrBelowZoneMinimum       = errors.New("guest count is below the minimum for this zone")
	ErrRequiresQuotation      = errors.New("this area requires a manual quotation, please contact us by phone")
	ErrAmountOverflow         = errors.New("amount is too large")
)

// ChargeKind selects which zone fee applies to an order
type ChargeKind string

const (
	// ChargeTravel is the gas/travel surcharge for on-site catering
	ChargeTravel ChargeKind = "travel"
	// ChargeDelivery is the delivery fee for dropped-off food orders
	ChargeDelivery ChargeKind = "delivery"
)

// Surcharge is either a fixed amount or the quotation-required sentinel
type Surcharge struct {
	Kind              ChargeKind    `json:"kind"`
	Amount            catalog.Money `json:"amount"`
	RequiresQuotation bool          `json:"requires_quotation"`
}

// AddOnPrice is the slice of an add-on the engine needs
type AddOnPrice struct {
	Name      string
	UnitPrice catalog.Money
}

// AddOnLine is one add-on in the cart
type AddOnLine struct {
	AddOnID  uint `json:"addon_id"`
	Quantity int  `json:"quantity"`
}

// ResolvePricePerGuest walks the tiers from the highest threshold down.
// Lower guest counts land in dearer tiers; nothing below 30 exists.
func ResolvePricePerGuest(pkg catalog.Package, guestCount int) (catalog.Money, error) {
	if guestCount < catalog.MinimumGuestCount {
		return 0, fmt.Errorf("%w: got %d", ErrBelowMinimumGuestCount, guestCount)
	}
	for _, threshold := range catalog.TierThresholds {
		if guestCount >= threshold {
			price, ok := pkg.Tiers[threshold]
			if !ok {
				return 0, fmt.Errorf("package %q has no %d-guest tier", pkg.ID, threshold)
			}
			return price, nil
		}
	}
	return 0, fmt.Errorf("%w: got %d", ErrBelowMinimumGuestCount, guestCount)
}

// PackageSubtotal is price per guest times guest count
func PackageSubtotal(pkg catalog.Package, guestCount int) (catalog.Money, error) {
	price, err := ResolvePricePerGuest(pkg, guestCount)
	if err != nil {
		return 0, err
	}
	return mul(price, guestCount)
}

// AddOnsTotal sums unit price times quantity. Quantities below one count as one.
// Lines whose add-on is missing from the catalog contribute zero; their ids are returned
// so the caller can flag the data-integrity problem.
func AddOnsTotal(lines []AddOnLine, addOns map[uint]AddOnPrice) (catalog.Money, []uint, error) {
	var total catalog.Money
	var missing []uint
	for _, line := range lines {
		addOn, ok := addOns[line.AddOnID]
		if !ok {
			missing = append(missing, line.AddOnID)
			continue
		}
		lineTotal, err := mul(addOn.UnitPrice, ClampQuantity(line.Quantity))
		if err != nil {
			return 0, missing, err
		}
		if total, err = add(total, lineTotal); err != nil {
			return 0, missing, err
		}
	}
	return total, missing, nil
}

// ClampQuantity floors a cart quantity at one
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// ZoneSurcharge picks the travel or delivery charge for a zone
func ZoneSurcharge(zone catalog.Zone, kind ChargeKind) Surcharge {
	if zone.RequiresQuotation {
		return Surcharge{Kind: kind, RequiresQuotation: true}
	}
	switch kind {
	case ChargeDelivery:
		return Surcharge{Kind: kind, Amount: zone.DeliveryFee}
	default:
		if zone.TravelSurcharge == nil {
			return Surcharge{Kind: ChargeTravel, RequiresQuotation: true}
		}
		return Surcharge{Kind: ChargeTravel, Amount: *zone.TravelSurcharge}
	}
}

// GrandTotal adds the three components. A quotation-required surcharge never yields a number.
func GrandTotal(packageSubtotal, addOnsTotal catalog.Money, surcharge Surcharge) (catalog.Money, error) {
	if surcharge.RequiresQuotation {
		return 0, ErrRequiresQuotation
	}
	total, err := add(packageSubtotal, addOnsTotal)
	if err != nil {
		return 0, err
	}
	return add(total, surcharge.Amount)
}

// CheckGuestCount applies the business floor first, then the zone's own minimum
func CheckGuestCount(zone catalog.Zone, guestCount int) error {
	if guestCount < catalog.MinimumGuestCount {
		return fmt.Errorf("%w: got %d", ErrBelowMinimumGuestCount, guestCount)
	}
	if guestCount < zone.MinimumGuestCount {
		return fmt.Errorf("%w: %s requires at least %d guests, got %d",
			ErrBelowZoneMinimum, zone.DisplayName, zone.MinimumGuestCount, guestCount)
	}
	return nil
}

func mul(m catalog.Money, n int) (catalog.Money, error) {
	if m < 0 || n < 0 {
		return 0, fmt.Errorf("%w: negative operand", ErrAmountOverflow)
	}
	if n != 0 && int64(m) > math.MaxInt64/int64(n) {
		return 0, ErrAmountOverflow
	}
	return m * catalog.Money(n), nil
}

func add(a, b catalog.Money) (catalog.Money, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}
