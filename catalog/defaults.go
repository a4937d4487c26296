package catalog

func pesos(n int64) *Money {
	m := Money(n)
	return &m
}

func tiers(t60, t50, t40, t30 Money) map[int]Money {
	return map[int]Money{60: t60, 50: t50, 40: t40, 30: t30}
}

// DefaultZones is the built-in service-area table
var DefaultZones = []Zone{
	{ID: "cebu-city", DisplayName: "Cebu City", DeliveryFee: 150, TravelSurcharge: pesos(500), MinimumGuestCount: 30},
	{ID: "mandaue", DisplayName: "Mandaue City", DeliveryFee: 200, TravelSurcharge: pesos(600), MinimumGuestCount: 30},
	{ID: "lapu-lapu", DisplayName: "Lapu-Lapu City (Mactan)", DeliveryFee: 300, TravelSurcharge: pesos(900), MinimumGuestCount: 30},
	{ID: "talisay", DisplayName: "Talisay City", DeliveryFee: 250, TravelSurcharge: pesos(700), MinimumGuestCount: 30},
	{ID: "consolacion-liloan", DisplayName: "Consolacion & Liloan", DeliveryFee: 350, TravelSurcharge: pesos(1200), MinimumGuestCount: 50},
	{ID: "minglanilla-naga", DisplayName: "Minglanilla & Naga", DeliveryFee: 350, TravelSurcharge: pesos(1500), MinimumGuestCount: 50},
	{
		ID:                "danao-beyond",
		DisplayName:       "Danao City & Beyond",
		DeliveryFee:       0,
		MinimumGuestCount: 100,
		RequiresQuotation: true,
		Note:              "Please call us for a quotation.",
	},
}

var filipinoBuffet = Preset{
	Name: "Filipino Buffet",
	Items: []PresetItem{
		{Name: "Garden Salad", Category: CategorySalad},
		{Name: "Pork Humba", Category: CategoryMain},
		{Name: "Chicken Adobo", Category: CategoryMain},
		{Name: "Pancit Canton", Category: CategorySide},
		{Name: "Chopsuey", Category: CategorySide},
		{Name: "Plain Rice", Category: CategoryRice},
		{Name: "Leche Flan", Category: CategoryDessert},
		{Name: "Buko Pandan", Category: CategoryDessert},
		{Name: "Iced Tea", Category: CategoryDrink},
	},
}

// DefaultPackages is the built-in package table
var DefaultPackages = []Package{
	{
		ID:                "filipino-buffet",
		DisplayName:       "Filipino Buffet",
		Type:              TypeBuffet,
		Style:             StylePresetSwap,
		BasePricePerGuest: 420,
		Tiers:             tiers(420, 440, 490, 540),
		Presets:           []Preset{filipinoBuffet},
		Description:       "Home-style Filipino favourites. Swap any course from the dish list.",
	},
	{
		ID:                "menu-470",
		DisplayName:       "Menu 470",
		Type:              TypeBuffet,
		Style:             StylePresetSwap,
		BasePricePerGuest: 470,
		Tiers:             tiers(470, 490, 540, 590),
		Presets: []Preset{
			{
				Name: "Option A",
				Items: []PresetItem{
					{Name: "Caesar Salad", Category: CategorySalad},
					{Name: "Beef Caldereta", Category: CategoryMain},
					{Name: "Chicken Cordon Bleu", Category: CategoryMain},
					{Name: "Buttered Vegetables", Category: CategorySide},
					{Name: "Baked Spaghetti", Category: CategorySide},
					{Name: "Java Rice", Category: CategoryRice},
					{Name: "Chocolate Cake", Category: CategoryDessert},
					{Name: "Mango Sago", Category: CategoryDessert},
					{Name: "Red Iced Tea", Category: CategoryDrink},
				},
			},
			{
				Name: "Option B",
				Items: []PresetItem{
					{Name: "Potato Salad", Category: CategorySalad},
					{Name: "Pork Menudo", Category: CategoryMain},
					{Name: "Fish Fillet with Tartar Sauce", Category: CategoryMain},
					{Name: "Pancit Bihon", Category: CategorySide},
					{Name: "Lumpiang Shanghai", Category: CategorySide},
					{Name: "Paella Valenciana", Category: CategoryRice},
					{Name: "Fruit Salad", Category: CategoryDessert},
					{Name: "Coffee Jelly", Category: CategoryDessert},
					{Name: "Cucumber Lemonade", Category: CategoryDrink},
				},
			},
		},
	},
	{
		ID:                "menu-520",
		DisplayName:       "Menu 520",
		Type:              TypeBuffet,
		Style:             StylePresetSwap,
		BasePricePerGuest: 520,
		Tiers:             tiers(520, 540, 590, 640),
		Presets: []Preset{
			{
				Name: "Premium",
				Items: []PresetItem{
					{Name: "Greek Salad", Category: CategorySalad},
					{Name: "Lechon Belly", Category: CategoryMain},
					{Name: "Beef Kare-Kare", Category: CategoryMain},
					{Name: "Seafood Pasta", Category: CategorySide},
					{Name: "Sautéed Mixed Vegetables", Category: CategorySide},
					{Name: "Garlic Rice", Category: CategoryRice},
					{Name: "Ube Cake", Category: CategoryDessert},
					{Name: "Buko Salad", Category: CategoryDessert},
					{Name: "Four Seasons Juice", Category: CategoryDrink},
				},
			},
		},
	},
	{
		ID:                "build-your-own",
		DisplayName:       "Build Your Own Buffet",
		Type:              TypeBuffet,
		Style:             StyleBuildYourOwn,
		BasePricePerGuest: 550,
		Tiers:             tiers(550, 570, 620, 670),
		RequiredStructure: map[Category]int{
			CategorySalad:   1,
			CategoryMain:    2,
			CategorySide:    2,
			CategoryRice:    2,
			CategoryDessert: 2,
		},
		Description: "Pick 1 salad, 2 mains, 2 sides, 2 rice and 2 desserts.",
	},
	{
		ID:                "cocktail-classic",
		DisplayName:       "Classic Cocktails",
		Type:              TypeCocktail,
		Style:             StyleFixed,
		BasePricePerGuest: 350,
		Tiers:             tiers(350, 370, 400, 430),
		Presets: []Preset{
			{
				Name: "Classic Cocktails",
				Items: []PresetItem{
					{Name: "Chicken Lollipop", Category: CategoryMain},
					{Name: "Mini Burgers", Category: CategoryMain},
					{Name: "Cheese and Crackers", Category: CategorySide},
					{Name: "Assorted Canapés", Category: CategorySide},
					{Name: "Brownies", Category: CategoryDessert},
					{Name: "Pink Lemonade", Category: CategoryDrink},
				},
			},
		},
	},
	{
		ID:                "packed-meal",
		DisplayName:       "Packed Meal",
		Type:              TypePackedMeal,
		Style:             StyleFixed,
		BasePricePerGuest: 180,
		Tiers:             tiers(180, 185, 190, 195),
		Presets: []Preset{
			{
				Name: "Chicken Meal",
				Items: []PresetItem{
					{Name: "Fried Chicken", Category: CategoryMain},
					{Name: "Plain Rice", Category: CategoryRice},
					{Name: "Banana Cake", Category: CategoryDessert},
					{Name: "Bottled Water", Category: CategoryDrink},
				},
			},
			{
				Name: "Pork Meal",
				Items: []PresetItem{
					{Name: "Pork Barbecue", Category: CategoryMain},
					{Name: "Plain Rice", Category: CategoryRice},
					{Name: "Banana Cake", Category: CategoryDessert},
					{Name: "Bottled Water", Category: CategoryDrink},
				},
			},
		},
	},
	{
		ID:                "snack-box",
		DisplayName:       "Snack Box",
		Type:              TypePackedMeal,
		Style:             StyleFixed,
		BasePricePerGuest: 95,
		Tiers:             tiers(95, 95, 100, 100),
		Presets: []Preset{
			{
				Name: "Merienda",
				Items: []PresetItem{
					{Name: "Ham and Cheese Sandwich", Category: CategoryMain},
					{Name: "Puto", Category: CategoryDessert},
					{Name: "Pineapple Juice", Category: CategoryDrink},
				},
			},
		},
	},
}

// Default builds a catalog from the built-in tables
func Default() (*Catalog, error) {
	return New(DefaultZones, DefaultPackages)
}
