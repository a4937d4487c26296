package composition

import (
	"catering-booking-api/catalog"
)

// Course is one category of a resolved menu
type Course struct {
	Category catalog.Category `json:"category"`
	Items    []string         `json:"items"`
}

// ResolveMenu produces the dish names that will actually be served. Custom choices replace a
// preset's defaults for their whole category; untouched categories keep the defaults.
// names maps dish ids to display names; unknown ids are skipped.
func ResolveMenu(pkg catalog.Package, presetName string, sel Selection, names map[uint]string) []Course {
	preset := presetFor(pkg, presetName)

	cats := Categories(pkg, presetName)
	if pkg.Style == catalog.StylePresetSwap {
		seen := map[catalog.Category]bool{}
		for _, c := range cats {
			seen[c] = true
		}
		for _, c := range sel.categories() {
			if !seen[c] {
				cats = append(cats, c)
			}
		}
		catalog.SortCategories(cats)
	}

	var menu []Course
	for _, cat := range cats {
		var items []string
		switch {
		case pkg.Style == catalog.StyleFixed:
			items = preset.ItemsIn(cat)
		case len(sel[cat]) > 0:
			for _, id := range sel[cat] {
				if name, ok := names[id]; ok {
					items = append(items, name)
				}
			}
		case pkg.Style == catalog.StylePresetSwap:
			items = preset.ItemsIn(cat)
		}
		if len(items) > 0 {
			menu = append(menu, Course{Category: cat, Items: items})
		}
	}
	return menu
}
