package booking

import (
	"errors"
	"testing"
	"time"

	"catering-booking-api/catalog"
	"catering-booking-api/composition"
	"catering-booking-api/models"
	"catering-booking-api/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manila = mustLocation("Asia/Manila")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// 9 AM on a Saturday in Cebu
var testNow = time.Date(2026, 10, 17, 9, 0, 0, 0, manila)

func testDishes() map[uint]models.Dish {
	list := []models.Dish{
		{ID: 1, Name: "Garden Salad", Category: catalog.CategorySalad, Available: true},
		{ID: 2, Name: "Pork Humba", Category: catalog.CategoryMain, Available: true},
		{ID: 3, Name: "Chicken Adobo", Category: catalog.CategoryMain, Available: true},
		{ID: 4, Name: "Beef Kare-Kare", Category: catalog.CategoryMain, Available: true},
		{ID: 5, Name: "Pancit Canton", Category: catalog.CategorySide, Available: true},
		{ID: 6, Name: "Lumpia Shanghai", Category: catalog.CategorySide, Available: true},
		{ID: 7, Name: "Plain Rice", Category: catalog.CategoryRice, Available: true},
		{ID: 8, Name: "Paella Valenciana", Category: catalog.CategoryRice, Available: true},
		{ID: 9, Name: "Leche Flan", Category: catalog.CategoryDessert, Available: true},
		{ID: 10, Name: "Mango Sago", Category: catalog.CategoryDessert, Available: true},
		{ID: 11, Name: "Crispy Pata", Category: catalog.CategoryMain, Available: false},
	}
	out := make(map[uint]models.Dish, len(list))
	for _, d := range list {
		out[d.ID] = d
	}
	return out
}

func testAddOns() map[uint]models.AddOn {
	return map[uint]models.AddOn{
		1: {ID: 1, Name: "Whole Lechon", UnitPrice: 8500, Unit: "piece", Available: true},
		2: {ID: 2, Name: "Chocolate Fountain", UnitPrice: 3500, Unit: "set", Available: false},
	}
}

func testRefs(t *testing.T) Refs {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return Refs{Catalog: c, Dishes: testDishes(), AddOns: testAddOns(), Location: manila}
}

func baseRequest() Request {
	return Request{
		CustomerID:  7,
		CreatedBy:   7,
		Kind:        models.KindCatering,
		PackageID:   "menu-470",
		GuestCount:  60,
		ZoneID:      "lapu-lapu",
		EventAt:     time.Date(2026, 10, 24, 11, 0, 0, 0, manila),
		ContactName: "Maria Santos",
	}
}

func completeBYO() composition.Selection {
	return composition.Selection{
		catalog.CategorySalad:   {1},
		catalog.CategoryMain:    {2, 3},
		catalog.CategorySide:    {5, 6},
		catalog.CategoryRice:    {7, 8},
		catalog.CategoryDessert: {9, 10},
	}
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	return v.Code
}

func TestAssembleLapuLapuScenario(t *testing.T) {
	a, err := Assemble(testRefs(t), baseRequest(), testNow)
	require.NoError(t, err)

	o := a.Order
	assert.Equal(t, catalog.Money(470), o.PricePerGuest)
	assert.Equal(t, catalog.Money(28200), o.PackageSubtotal)
	assert.Equal(t, catalog.Money(900), o.Surcharge)
	assert.Equal(t, catalog.Money(29100), o.ComputedTotal)
	assert.Equal(t, "Option A", o.PresetName)
	assert.Equal(t, "Lapu-Lapu City (Mactan)", o.ZoneName)
	assert.Equal(t, models.StatusPending, o.Status)
	assert.Equal(t, models.PaymentUnpaid, o.PaymentStatus)
	assert.Equal(t, time.UTC, o.EventAt.Location())
	assert.Empty(t, o.Reference)
	assert.Empty(t, a.Advisory)
	require.NotEmpty(t, o.Menu)
	assert.Equal(t, catalog.CategorySalad, o.Menu[0].Category)
}

func TestAssembleQuotationZoneAlwaysBlocked(t *testing.T) {
	refs := testRefs(t)
	variants := map[string]func(r *Request){
		"valid otherwise":   func(r *Request) {},
		"unknown package":   func(r *Request) { r.PackageID = "nope" },
		"tiny party":        func(r *Request) { r.GuestCount = 5 },
		"past date":         func(r *Request) { r.EventAt = testNow.Add(-48 * time.Hour) },
		"incomplete byo":    func(r *Request) { r.PackageID = "build-your-own" },
		"huge party":        func(r *Request) { r.GuestCount = 500 },
		"delivery order":    func(r *Request) { r.Kind = models.KindDelivery },
		"privileged booker": func(r *Request) { r.Privileged = true },
	}
	for name, mutate := range variants {
		t.Run(name, func(t *testing.T) {
			req := baseRequest()
			req.ZoneID = "danao-beyond"
			mutate(&req)
			a, err := Assemble(refs, req, testNow)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pricing.ErrRequiresQuotation))
			assert.Equal(t, CodeRequiresQuotation, codeOf(t, err))
			assert.Zero(t, a.Order.ComputedTotal)
		})
	}
}

func TestAssembleBuildYourOwnGate(t *testing.T) {
	refs := testRefs(t)
	req := baseRequest()
	req.PackageID = "build-your-own"
	req.Selection = composition.Selection{
		catalog.CategorySalad: {1},
		catalog.CategoryMain:  {2},
		catalog.CategorySide:  {5, 6},
		catalog.CategoryRice:  {7, 8},
	}

	_, err := Assemble(refs, req, testNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, composition.ErrIncompleteMenu))
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, CodeIncompleteMenu, v.Code)
	require.Len(t, v.Shortfalls, 2)
	assert.Equal(t, "main 1/2", v.Shortfalls[0].String())
	assert.Equal(t, "dessert 0/2", v.Shortfalls[1].String())

	req.Selection = completeBYO()
	a, err := Assemble(refs, req, testNow)
	require.NoError(t, err)
	assert.Equal(t, catalog.Money(550*60+900), a.Order.ComputedTotal)
	assert.Empty(t, a.Order.PresetName)
	assert.Equal(t, []string{"Pork Humba", "Chicken Adobo"}, a.Order.Menu[1].Items)
}

func TestAssembleEvictsOverfullCategory(t *testing.T) {
	req := baseRequest()
	req.PackageID = "build-your-own"
	req.Selection = completeBYO()
	req.Selection[catalog.CategoryMain] = []uint{2, 3, 4}

	a, err := Assemble(testRefs(t), req, testNow)
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 4}, a.Order.Selection[catalog.CategoryMain])
}

func TestAssembleFilipinoBuffetNeverBlockedByComposition(t *testing.T) {
	refs := testRefs(t)
	for name, sel := range map[string]composition.Selection{
		"no selection":     nil,
		"one main swapped": {catalog.CategoryMain: {4}},
		"partial dessert":  {catalog.CategoryDessert: {9}},
	} {
		t.Run(name, func(t *testing.T) {
			req := baseRequest()
			req.PackageID = "filipino-buffet"
			req.Selection = sel
			a, err := Assemble(refs, req, testNow)
			require.NoError(t, err)
			assert.Equal(t, "Filipino Buffet", a.Order.PresetName)
		})
	}
}

func TestAssembleRejections(t *testing.T) {
	refs := testRefs(t)
	tests := []struct {
		name   string
		mutate func(r *Request)
		code   string
	}{
		{"unknown zone", func(r *Request) { r.ZoneID = "manila" }, CodeZoneNotFound},
		{"unknown package", func(r *Request) { r.PackageID = "menu-999" }, CodePackageNotFound},
		{"below floor", func(r *Request) { r.GuestCount = 29 }, CodeBelowMinimum},
		{"below zone minimum", func(r *Request) { r.ZoneID = "consolacion-liloan"; r.GuestCount = 45 }, CodeBelowZoneMinimum},
		{"tomorrow for a customer", func(r *Request) { r.EventAt = testNow.Add(24 * time.Hour) }, CodeInvalidDateTime},
		{"missing event time", func(r *Request) { r.EventAt = time.Time{} }, CodeInvalidDateTime},
		{"unknown preset", func(r *Request) { r.PresetName = "Option Z" }, CodePresetNotFound},
		{"dish does not exist", func(r *Request) {
			r.Selection = composition.Selection{catalog.CategoryMain: {99}}
		}, CodeUnknownDish},
		{"dish unavailable", func(r *Request) {
			r.Selection = composition.Selection{catalog.CategoryMain: {11}}
		}, CodeUnknownDish},
		{"dish in wrong category", func(r *Request) {
			r.Selection = composition.Selection{catalog.CategoryDessert: {2}}
		}, CodeUnknownDish},
		{"fixed package customised", func(r *Request) {
			r.PackageID = "cocktail-classic"
			r.Selection = composition.Selection{catalog.CategoryMain: {2}}
		}, CodeNotCustomizable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			_, err := Assemble(refs, req, testNow)
			require.Error(t, err)
			assert.Equal(t, tt.code, codeOf(t, err))
		})
	}
}

func TestAssembleAddOns(t *testing.T) {
	req := baseRequest()
	req.AddOns = []pricing.AddOnLine{
		{AddOnID: 1, Quantity: 2},
		{AddOnID: 2, Quantity: 1},
		{AddOnID: 42, Quantity: 3},
	}
	a, err := Assemble(testRefs(t), req, testNow)
	require.NoError(t, err)

	assert.Equal(t, catalog.Money(17000), a.Order.AddOnsTotal)
	assert.ElementsMatch(t, []uint{2, 42}, a.MissingAddOns)
	require.Len(t, a.Order.AddOns, 1)
	assert.Equal(t, "piece", a.Order.AddOns[0].Unit)
	assert.Equal(t, catalog.Money(28200+17000+900), a.Order.ComputedTotal)
}

func TestAssembleTotalDecomposes(t *testing.T) {
	refs := testRefs(t)
	for _, zone := range refs.Catalog.Zones() {
		if zone.RequiresQuotation {
			continue
		}
		for _, pkg := range refs.Catalog.Packages() {
			for _, guests := range []int{50, 64, 120} {
				for _, kind := range []models.OrderKind{models.KindCatering, models.KindDelivery} {
					req := baseRequest()
					req.ZoneID, req.PackageID, req.GuestCount, req.Kind = zone.ID, pkg.ID, guests, kind
					if pkg.IsBuildYourOwn() {
						req.Selection = completeBYO()
					}
					req.AddOns = []pricing.AddOnLine{{AddOnID: 1, Quantity: 1}}

					a, err := Assemble(refs, req, testNow)
					require.NoError(t, err, "%s/%s/%d", zone.ID, pkg.ID, guests)
					o := a.Order
					assert.Equal(t, o.PackageSubtotal+o.AddOnsTotal+o.Surcharge, o.ComputedTotal)
				}
			}
		}
	}
}

func TestAssembleIsIdempotent(t *testing.T) {
	refs := testRefs(t)
	req := baseRequest()
	req.PackageID = "build-your-own"
	req.Selection = completeBYO()
	req.AddOns = []pricing.AddOnLine{{AddOnID: 1, Quantity: 1}}
	req.IdempotencyKey = "abc"

	first, err := Assemble(refs, req, testNow)
	require.NoError(t, err)
	second, err := Assemble(refs, req, testNow)
	require.NoError(t, err)
	assert.Equal(t, first.Order, second.Order)
	assert.Equal(t, first.Order.ComputedTotal, second.Order.ComputedTotal)
}

func TestAsValidationIgnoresStorageErrors(t *testing.T) {
	assert.Nil(t, AsValidation(errors.New("database is locked")))
	assert.Nil(t, AsValidation(nil))
	v := AsValidation(pricing.ErrBelowZoneMinimum)
	require.NotNil(t, v)
	assert.Equal(t, CodeBelowZoneMinimum, v.Code)
}
