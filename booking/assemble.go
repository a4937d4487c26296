package booking

import (
	"fmt"
	"strings"
	"time"

	"catering-booking-api/catalog"
	"catering-booking-api/composition"
	"catering-booking-api/models"
	"catering-booking-api/pricing"
)

// Refs is the reference data an assembly reads. Dishes and AddOns only need the entries the
// request mentions.
type Refs struct {
	Catalog  *catalog.Catalog
	Dishes   map[uint]models.Dish
	AddOns   map[uint]models.AddOn
	Location *time.Location
}

// Request is what a customer (or an admin on their behalf) submits
type Request struct {
	CustomerID     uint
	CreatedBy      uint
	Privileged     bool
	IdempotencyKey string

	Kind       models.OrderKind
	PackageID  string
	PresetName string
	GuestCount int
	ZoneID     string
	EventAt    time.Time

	VenueAddress string
	ContactName  string
	ContactPhone string
	ContactEmail string
	Notes        string

	Selection composition.Selection
	AddOns    []pricing.AddOnLine
}

// Assembly is an order ready for storage plus what the caller should report
type Assembly struct {
	Order         models.Order
	Breakdown     pricing.Breakdown
	MissingAddOns []uint
	// Advisory lists preset categories the customer has not customised
	Advisory []composition.CategoryStatus
}

// ChargeKindFor maps an order kind to the zone fee that applies
func ChargeKindFor(kind models.OrderKind) pricing.ChargeKind {
	if kind == models.KindDelivery {
		return pricing.ChargeDelivery
	}
	return pricing.ChargeTravel
}

// Assemble validates a request and snapshots its price. It has no side effects, so the same
// request at the same instant always yields the same order. The reference is left empty for
// the caller to assign.
func Assemble(refs Refs, req Request, now time.Time) (Assembly, error) {
	zone, ok := refs.Catalog.Zone(req.ZoneID)
	if !ok {
		return Assembly{}, invalid(fmt.Errorf("%w: %q", pricing.ErrZoneNotFound, req.ZoneID))
	}
	kind := req.Kind
	if kind == "" {
		kind = models.KindCatering
	}
	if pricing.ZoneSurcharge(zone, ChargeKindFor(kind)).RequiresQuotation {
		return Assembly{}, invalid(pricing.ErrRequiresQuotation)
	}

	pkg, ok := refs.Catalog.Package(req.PackageID)
	if !ok {
		return Assembly{}, invalid(fmt.Errorf("%w: %q", pricing.ErrPackageNotFound, req.PackageID))
	}
	if err := pricing.CheckGuestCount(zone, req.GuestCount); err != nil {
		return Assembly{}, invalid(err)
	}
	if err := ValidateEventTime(req.EventAt, now, req.Privileged, refs.Location); err != nil {
		return Assembly{}, invalid(err)
	}

	presetName := ""
	if !pkg.IsBuildYourOwn() {
		preset, ok := pkg.Preset(req.PresetName)
		if !ok {
			return Assembly{}, invalid(fmt.Errorf("%w: %q", composition.ErrPresetNotFound, req.PresetName))
		}
		presetName = preset.Name
	}

	if err := checkDishes(req.Selection, refs.Dishes); err != nil {
		return Assembly{}, invalid(err)
	}
	sel, err := composition.Normalize(pkg, presetName, req.Selection)
	if err != nil {
		return Assembly{}, invalid(err)
	}
	if err := composition.Validate(pkg, presetName, sel); err != nil {
		return Assembly{}, invalid(err)
	}

	prices := make(map[uint]pricing.AddOnPrice, len(refs.AddOns))
	for id, a := range refs.AddOns {
		if a.Available {
			prices[id] = pricing.AddOnPrice{Name: a.Name, UnitPrice: a.UnitPrice}
		}
	}
	breakdown, err := pricing.Quote(pkg, zone, ChargeKindFor(kind), req.GuestCount, req.AddOns, prices)
	if err != nil {
		return Assembly{}, invalid(err)
	}

	names := make(map[uint]string, len(refs.Dishes))
	for id, d := range refs.Dishes {
		names[id] = d.Name
	}

	order := models.Order{
		CustomerID:      req.CustomerID,
		CreatedBy:       req.CreatedBy,
		Kind:            kind,
		PackageID:       pkg.ID,
		PackageName:     pkg.DisplayName,
		PresetName:      presetName,
		GuestCount:      req.GuestCount,
		ZoneID:          zone.ID,
		ZoneName:        zone.DisplayName,
		EventAt:         req.EventAt.UTC(),
		VenueAddress:    strings.TrimSpace(req.VenueAddress),
		ContactName:     strings.TrimSpace(req.ContactName),
		ContactPhone:    strings.TrimSpace(req.ContactPhone),
		ContactEmail:    strings.TrimSpace(req.ContactEmail),
		Notes:           strings.TrimSpace(req.Notes),
		Selection:       sel,
		Menu:            composition.ResolveMenu(pkg, presetName, sel, names),
		PricePerGuest:   breakdown.PricePerGuest,
		PackageSubtotal: breakdown.PackageSubtotal,
		AddOnsTotal:     breakdown.AddOnsTotal,
		Surcharge:       breakdown.Surcharge.Amount,
		ComputedTotal:   breakdown.Total,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentUnpaid,
	}
	if req.IdempotencyKey != "" {
		key := req.IdempotencyKey
		order.IdempotencyKey = &key
	}
	for _, line := range breakdown.AddOns {
		order.AddOns = append(order.AddOns, models.OrderAddOn{
			AddOnID:   line.AddOnID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Unit:      refs.AddOns[line.AddOnID].Unit,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal,
		})
	}

	a := Assembly{Order: order, Breakdown: breakdown, MissingAddOns: breakdown.MissingAddOns}
	if !pkg.IsBuildYourOwn() {
		a.Advisory = composition.MissingCategories(pkg, presetName, sel)
	}
	return a, nil
}

// checkDishes requires every selected dish to exist, be available and sit in the category it
// was selected under. Unknown categories are left to composition.
func checkDishes(sel composition.Selection, dishes map[uint]models.Dish) error {
	for _, cat := range catalog.Categories {
		for _, id := range sel[cat] {
			d, ok := dishes[id]
			switch {
			case !ok:
				return fmt.Errorf("%w: dish %d does not exist", ErrUnknownDish, id)
			case !d.Available:
				return fmt.Errorf("%w: %s is no longer available", ErrUnknownDish, d.Name)
			case d.Category != cat:
				return fmt.Errorf("%w: %s is a %s, not a %s", ErrUnknownDish, d.Name, d.Category, cat)
			}
		}
	}
	return nil
}
