package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Money is an amount in whole pesos
type Money int64

// String renders the amount as "₱29,100"
func (m Money) String() string {
	sign := ""
	n := int64(m)
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "₱" + b.String()
}

// Category is a structural dish category used by menu composition
type Category string

const (
	CategorySalad   Category = "salad"
	CategoryMain    Category = "main"
	CategorySide    Category = "side"
	CategoryRice    Category = "rice"
	CategoryDessert Category = "dessert"
	CategoryDrink   Category = "drink"
)

// Categories lists every category in display order
var Categories = []Category{
	CategorySalad,
	CategoryMain,
	CategorySide,
	CategoryRice,
	CategoryDessert,
	CategoryDrink,
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) order() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return len(Categories)
}

// SortCategories orders categories by display order, unknown ones last
func SortCategories(cats []Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		oi, oj := cats[i].order(), cats[j].order()
		if oi != oj {
			return oi < oj
		}
		return cats[i] < cats[j]
	})
}

// Tier thresholds, highest first. Lookup walks them in this order.
var TierThresholds = []int{60, 50, 40, 30}

// MinimumGuestCount is the business floor for every booking
const MinimumGuestCount = 30

// Zone is a service area with its own fees and guest-count floor
type Zone struct {
	ID                string `json:"id" yaml:"id" validate:"required"`
	DisplayName       string `json:"display_name" yaml:"display_name" validate:"required"`
	DeliveryFee       Money  `json:"delivery_fee" yaml:"delivery_fee" validate:"gte=0"`
	TravelSurcharge   *Money `json:"travel_surcharge" yaml:"travel_surcharge,omitempty"`
	MinimumGuestCount int    `json:"minimum_guest_count" yaml:"minimum_guest_count" validate:"gte=30"`
	RequiresQuotation bool   `json:"requires_quotation" yaml:"requires_quotation,omitempty"`
	Note              string `json:"note,omitempty" yaml:"note,omitempty"`
}

// PackageType groups packages on the customer menu
type PackageType string

const (
	TypeBuffet     PackageType = "buffet"
	TypeCocktail   PackageType = "cocktail"
	TypePackedMeal PackageType = "packed_meal"
)

// Style controls how much of a package's menu the customer may change
type Style string

const (
	// StyleFixed is a non-customisable bundle
	StyleFixed Style = "fixed"
	// StylePresetSwap falls back to the preset's items wherever the customer made no choice
	StylePresetSwap Style = "preset_swap"
	// StyleBuildYourOwn requires explicit selections for every category in the structure
	StyleBuildYourOwn Style = "build_your_own"
)

// PresetItem is one dish on a preset menu, tagged with its category at data-entry time
type PresetItem struct {
	Name     string   `json:"name" yaml:"name" validate:"required"`
	Category Category `json:"category" yaml:"category" validate:"required,category"`
}

// Preset is a named default menu offered by a package
type Preset struct {
	Name  string       `json:"name" yaml:"name" validate:"required"`
	Items []PresetItem `json:"items" yaml:"items" validate:"dive"`
}

// ItemsIn returns the preset's default item names for one category
func (p Preset) ItemsIn(cat Category) []string {
	var names []string
	for _, item := range p.Items {
		if item.Category == cat {
			names = append(names, item.Name)
		}
	}
	return names
}

// Categories returns the categories the preset covers, in display order
func (p Preset) Categories() []Category {
	seen := map[Category]bool{}
	var cats []Category
	for _, item := range p.Items {
		if !seen[item.Category] {
			seen[item.Category] = true
			cats = append(cats, item.Category)
		}
	}
	SortCategories(cats)
	return cats
}

// Package is a menu package with tiered per-guest pricing
type Package struct {
	ID                string           `json:"id" yaml:"id" validate:"required"`
	DisplayName       string           `json:"display_name" yaml:"display_name" validate:"required"`
	Type              PackageType      `json:"type" yaml:"type" validate:"oneof=buffet cocktail packed_meal"`
	Style             Style            `json:"style" yaml:"style" validate:"oneof=fixed preset_swap build_your_own"`
	BasePricePerGuest Money            `json:"base_price_per_guest" yaml:"base_price_per_guest" validate:"gt=0"`
	Tiers             map[int]Money    `json:"pricing_tiers" yaml:"pricing_tiers" validate:"required"`
	RequiredStructure map[Category]int `json:"required_structure,omitempty" yaml:"required_structure,omitempty"`
	Presets           []Preset         `json:"presets,omitempty" yaml:"presets,omitempty" validate:"dive"`
	Description       string           `json:"description,omitempty" yaml:"description,omitempty"`
}

// IsBuildYourOwn reports whether every category must be chosen explicitly
func (p Package) IsBuildYourOwn() bool { return p.Style == StyleBuildYourOwn }

// Preset returns the named preset, or the first one when name is empty
func (p Package) Preset(name string) (Preset, bool) {
	if len(p.Presets) == 0 {
		return Preset{}, false
	}
	if name == "" {
		return p.Presets[0], true
	}
	for _, preset := range p.Presets {
		if preset.Name == name {
			return preset, true
		}
	}
	return Preset{}, false
}

// StructureCategories returns the build-your-own categories in display order
func (p Package) StructureCategories() []Category {
	cats := make([]Category, 0, len(p.RequiredStructure))
	for c := range p.RequiredStructure {
		cats = append(cats, c)
	}
	SortCategories(cats)
	return cats
}

// Catalog is the immutable reference data the engine reads
type Catalog struct {
	zones    []Zone
	packages []Package
	zoneIdx  map[string]int
	pkgIdx   map[string]int
}

// New builds a catalog after checking every invariant
func New(zones []Zone, packages []Package) (*Catalog, error) {
	if err := Validate(zones, packages); err != nil {
		return nil, err
	}
	c := &Catalog{
		zones:    append([]Zone(nil), zones...),
		packages: append([]Package(nil), packages...),
		zoneIdx:  make(map[string]int, len(zones)),
		pkgIdx:   make(map[string]int, len(packages)),
	}
	for i, z := range c.zones {
		c.zoneIdx[z.ID] = i
	}
	for i, p := range c.packages {
		c.pkgIdx[p.ID] = i
	}
	return c, nil
}

// Zones returns all zones in declaration order
func (c *Catalog) Zones() []Zone {
	return append([]Zone(nil), c.zones...)
}

// Zone looks up a zone by id
func (c *Catalog) Zone(id string) (Zone, bool) {
	i, ok := c.zoneIdx[id]
	if !ok {
		return Zone{}, false
	}
	return c.zones[i], true
}

// Packages returns all packages in declaration order
func (c *Catalog) Packages() []Package {
	return append([]Package(nil), c.packages...)
}

// Package looks up a package by id
func (c *Catalog) Package(id string) (Package, bool) {
	i, ok := c.pkgIdx[id]
	if !ok {
		return Package{}, false
	}
	return c.packages[i], true
}

// PackagesOfType filters packages by type
func (c *Catalog) PackagesOfType(t PackageType) []Package {
	var out []Package
	for _, p := range c.packages {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) String() string {
	return fmt.Sprintf("catalog(%d zones, %d packages)", len(c.zones), len(c.packages))
}
