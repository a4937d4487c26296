package pricing

import (
	"catering-booking-api/catalog"
)

// AddOnCharge is one priced add-on line
type AddOnCharge struct {
	AddOnID   uint          `json:"addon_id"`
	Name      string        `json:"name"`
	UnitPrice catalog.Money `json:"unit_price"`
	Quantity  int           `json:"quantity"`
	LineTotal catalog.Money `json:"line_total"`
}

// Breakdown itemises a quote
type Breakdown struct {
	PackageID       string        `json:"package_id"`
	ZoneID          string        `json:"zone_id"`
	GuestCount      int           `json:"guest_count"`
	PricePerGuest   catalog.Money `json:"price_per_guest"`
	PackageSubtotal catalog.Money `json:"package_subtotal"`
	AddOns          []AddOnCharge `json:"addons"`
	AddOnsTotal     catalog.Money `json:"addons_total"`
	Surcharge       Surcharge     `json:"surcharge"`
	Total           catalog.Money `json:"total"`
	MissingAddOns   []uint        `json:"missing_addons,omitempty"`
}

// Quote prices a package for a zone. The quotation check runs before anything else.
func Quote(pkg catalog.Package, zone catalog.Zone, kind ChargeKind, guestCount int, lines []AddOnLine, addOns map[uint]AddOnPrice) (Breakdown, error) {
	b := Breakdown{PackageID: pkg.ID, ZoneID: zone.ID, GuestCount: guestCount}

	b.Surcharge = ZoneSurcharge(zone, kind)
	if b.Surcharge.RequiresQuotation {
		return b, ErrRequiresQuotation
	}
	if err := CheckGuestCount(zone, guestCount); err != nil {
		return b, err
	}

	var err error
	if b.PricePerGuest, err = ResolvePricePerGuest(pkg, guestCount); err != nil {
		return b, err
	}
	if b.PackageSubtotal, err = mul(b.PricePerGuest, guestCount); err != nil {
		return b, err
	}
	if b.AddOnsTotal, b.MissingAddOns, err = AddOnsTotal(lines, addOns); err != nil {
		return b, err
	}
	for _, line := range lines {
		addOn, ok := addOns[line.AddOnID]
		if !ok {
			continue
		}
		qty := ClampQuantity(line.Quantity)
		b.AddOns = append(b.AddOns, AddOnCharge{
			AddOnID:   line.AddOnID,
			Name:      addOn.Name,
			UnitPrice: addOn.UnitPrice,
			Quantity:  qty,
			LineTotal: addOn.UnitPrice * catalog.Money(qty),
		})
	}
	if b.Total, err = GrandTotal(b.PackageSubtotal, b.AddOnsTotal, b.Surcharge); err != nil {
		return b, err
	}
	return b, nil
}
