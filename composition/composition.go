// Package composition checks a customer's dish selections against a package's menu structure.
package composition

import (
	"errors"
	"fmt"
	"strings"

	"catering-booking-api/catalog"
)

var (
	ErrIncompleteMenu     = errors.New("menu is incomplete")
	ErrNotCustomizable    = errors.New("this package has a fixed menu")
	ErrCategoryNotOffered = errors.New("this package does not offer that category")
	ErrPresetNotFound     = errors.New("preset menu not found")
)

// Selection maps a category to the chosen dish ids, oldest first
type Selection map[catalog.Category][]uint

// Clone returns a deep copy
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for cat, ids := range s {
		out[cat] = append([]uint(nil), ids...)
	}
	return out
}

// DishIDs returns every selected dish id
func (s Selection) DishIDs() []uint {
	var ids []uint
	for _, cat := range s.categories() {
		ids = append(ids, s[cat]...)
	}
	return ids
}

func (s Selection) categories() []catalog.Category {
	cats := make([]catalog.Category, 0, len(s))
	for cat := range s {
		cats = append(cats, cat)
	}
	catalog.SortCategories(cats)
	return cats
}

// State is the completeness of one category
type State string

const (
	StateMissing  State = "missing"
	StatePartial  State = "partial"
	StateComplete State = "complete"
)

// CategoryStatus reports how far a category is from its required count
type CategoryStatus struct {
	Category catalog.Category `json:"category"`
	State    State            `json:"state"`
	Selected int              `json:"selected"`
	Required int              `json:"required"`
}

func (s CategoryStatus) String() string {
	return fmt.Sprintf("%s %d/%d", s.Category, s.Selected, s.Required)
}

// IncompleteMenuError lists the categories that still need dishes
type IncompleteMenuError struct {
	Shortfalls []CategoryStatus
}

func (e *IncompleteMenuError) Error() string {
	parts := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		parts[i] = s.String()
	}
	return ErrIncompleteMenu.Error() + ": " + strings.Join(parts, ", ")
}

func (e *IncompleteMenuError) Unwrap() error { return ErrIncompleteMenu }

func stateFor(selected, required int) State {
	switch {
	case selected >= required:
		return StateComplete
	case selected > 0:
		return StatePartial
	default:
		return StateMissing
	}
}

func presetFor(pkg catalog.Package, name string) catalog.Preset {
	preset, _ := pkg.Preset(name)
	return preset
}

// EvaluateCategory computes one category's state.
// Build-your-own counts explicit choices only. Preset-with-swap counts the customer's
// choices when there are any and otherwise the preset's own items. Fixed menus are always complete.
func EvaluateCategory(pkg catalog.Package, presetName string, cat catalog.Category, sel Selection) CategoryStatus {
	switch pkg.Style {
	case catalog.StyleBuildYourOwn:
		required := pkg.RequiredStructure[cat]
		selected := len(sel[cat])
		return CategoryStatus{Category: cat, State: stateFor(selected, required), Selected: selected, Required: required}

	case catalog.StylePresetSwap:
		defaults := len(presetFor(pkg, presetName).ItemsIn(cat))
		selected := len(sel[cat])
		if selected == 0 {
			selected = defaults
		}
		return CategoryStatus{Category: cat, State: stateFor(selected, defaults), Selected: selected, Required: defaults}

	default:
		n := len(presetFor(pkg, presetName).ItemsIn(cat))
		return CategoryStatus{Category: cat, State: StateComplete, Selected: n, Required: n}
	}
}

// Categories returns the categories a package's menu is made of
func Categories(pkg catalog.Package, presetName string) []catalog.Category {
	if pkg.IsBuildYourOwn() {
		return pkg.StructureCategories()
	}
	return presetFor(pkg, presetName).Categories()
}

// Evaluate reports every category of the package's menu
func Evaluate(pkg catalog.Package, presetName string, sel Selection) []CategoryStatus {
	cats := Categories(pkg, presetName)
	out := make([]CategoryStatus, 0, len(cats))
	for _, cat := range cats {
		out = append(out, EvaluateCategory(pkg, presetName, cat, sel))
	}
	return out
}

// MissingCategories returns the categories that are missing, and for build-your-own also
// the partially filled ones
func MissingCategories(pkg catalog.Package, presetName string, sel Selection) []CategoryStatus {
	var out []CategoryStatus
	for _, status := range Evaluate(pkg, presetName, sel) {
		switch {
		case status.State == StateMissing && status.Required > 0:
			out = append(out, status)
		case status.State == StatePartial && pkg.IsBuildYourOwn():
			out = append(out, status)
		}
	}
	return out
}

// Validate blocks only build-your-own menus. Preset shortfalls are advisory because the
// preset's defaults always fill the gap.
func Validate(pkg catalog.Package, presetName string, sel Selection) error {
	if !pkg.IsBuildYourOwn() {
		return nil
	}
	if missing := MissingCategories(pkg, presetName, sel); len(missing) > 0 {
		return &IncompleteMenuError{Shortfalls: missing}
	}
	return nil
}

// Capacity is how many dishes a category holds
func Capacity(pkg catalog.Package, presetName string, cat catalog.Category) int {
	switch pkg.Style {
	case catalog.StyleBuildYourOwn:
		return pkg.RequiredStructure[cat]
	case catalog.StylePresetSwap:
		return len(presetFor(pkg, presetName).ItemsIn(cat))
	default:
		return 0
	}
}

// Select adds a dish to a category. At capacity the oldest choice is evicted and the new
// dish appended last. Selecting a dish that is already chosen changes nothing.
// The input selection is never modified.
func Select(pkg catalog.Package, presetName string, sel Selection, cat catalog.Category, dishID uint) (Selection, error) {
	if pkg.Style == catalog.StyleFixed {
		return sel, ErrNotCustomizable
	}
	limit := Capacity(pkg, presetName, cat)
	if limit == 0 {
		return sel, fmt.Errorf("%w: %s", ErrCategoryNotOffered, cat)
	}

	out := sel.Clone()
	for _, id := range out[cat] {
		if id == dishID {
			return out, nil
		}
	}
	ids := append(out[cat], dishID)
	if len(ids) > limit {
		ids = ids[len(ids)-limit:]
	}
	out[cat] = ids
	return out, nil
}

// Deselect removes a dish from a category
func Deselect(sel Selection, cat catalog.Category, dishID uint) Selection {
	out := sel.Clone()
	ids := out[cat][:0]
	for _, id := range out[cat] {
		if id != dishID {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		delete(out, cat)
	} else {
		out[cat] = ids
	}
	return out
}

// Normalize replays a submitted selection through Select in order, so an over-full
// category keeps only its newest dishes exactly as the interactive picker would.
func Normalize(pkg catalog.Package, presetName string, sel Selection) (Selection, error) {
	if len(sel) == 0 {
		return Selection{}, nil
	}
	if pkg.Style == catalog.StyleFixed {
		return nil, ErrNotCustomizable
	}
	if _, ok := pkg.Preset(presetName); !ok && !pkg.IsBuildYourOwn() {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, presetName)
	}
	out := Selection{}
	for _, cat := range sel.categories() {
		for _, id := range sel[cat] {
			var err error
			if out, err = Select(pkg, presetName, out, cat, id); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
