package composition

import (
	"errors"
	"testing"

	"catering-booking-api/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pkg(t *testing.T, id string) catalog.Package {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	p, ok := c.Package(id)
	require.True(t, ok, id)
	return p
}

func TestBuildYourOwnShortfalls(t *testing.T) {
	byo := pkg(t, "build-your-own")
	sel := Selection{
		catalog.CategorySalad: {1},
		catalog.CategoryMain:  {10},
		catalog.CategorySide:  {20, 21},
		catalog.CategoryRice:  {30, 31},
	}

	missing := MissingCategories(byo, "", sel)
	assert.Equal(t, []CategoryStatus{
		{Category: catalog.CategoryMain, State: StatePartial, Selected: 1, Required: 2},
		{Category: catalog.CategoryDessert, State: StateMissing, Selected: 0, Required: 2},
	}, missing)

	err := Validate(byo, "", sel)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompleteMenu))
	var incomplete *IncompleteMenuError
	require.ErrorAs(t, err, &incomplete)
	assert.Len(t, incomplete.Shortfalls, 2)
	assert.Equal(t, "menu is incomplete: main 1/2, dessert 0/2", err.Error())

	sel[catalog.CategoryMain] = []uint{10, 11}
	sel[catalog.CategoryDessert] = []uint{40, 41}
	assert.Empty(t, MissingCategories(byo, "", sel))
	assert.NoError(t, Validate(byo, "", sel))
}

func TestEvaluateCategoryBuildYourOwn(t *testing.T) {
	byo := pkg(t, "build-your-own")

	tests := []struct {
		name string
		ids  []uint
		want State
	}{
		{"none", nil, StateMissing},
		{"one of two", []uint{1}, StatePartial},
		{"two of two", []uint{1, 2}, StateComplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateCategory(byo, "", catalog.CategoryMain, Selection{catalog.CategoryMain: tt.ids})
			assert.Equal(t, tt.want, got.State)
			assert.Equal(t, len(tt.ids), got.Selected)
			assert.Equal(t, 2, got.Required)
		})
	}
}

func TestPresetSwapFallsBackToDefaults(t *testing.T) {
	buffet := pkg(t, "filipino-buffet")

	for _, status := range Evaluate(buffet, "", nil) {
		assert.Equal(t, StateComplete, status.State, status.Category)
		assert.Equal(t, status.Required, status.Selected)
	}
	assert.Empty(t, MissingCategories(buffet, "", Selection{}))
	assert.NoError(t, Validate(buffet, "", Selection{}))

	t.Run("custom choice overrides defaults", func(t *testing.T) {
		status := EvaluateCategory(buffet, "", catalog.CategoryMain, Selection{catalog.CategoryMain: {5}})
		assert.Equal(t, StatePartial, status.State)
		assert.Equal(t, 1, status.Selected)
		assert.Equal(t, 2, status.Required)
	})

	t.Run("partial swap is advisory only", func(t *testing.T) {
		sel := Selection{catalog.CategoryMain: {5}}
		assert.Empty(t, MissingCategories(buffet, "", sel))
		assert.NoError(t, Validate(buffet, "", sel))
	})
}

func TestFixedPackageAlwaysComplete(t *testing.T) {
	cocktail := pkg(t, "cocktail-classic")
	for _, status := range Evaluate(cocktail, "", Selection{catalog.CategoryMain: {1, 2, 3, 4}}) {
		assert.Equal(t, StateComplete, status.State)
	}
	assert.NoError(t, Validate(cocktail, "", nil))

	_, err := Select(cocktail, "", nil, catalog.CategoryMain, 1)
	assert.ErrorIs(t, err, ErrNotCustomizable)
}

func TestSelectEvictsOldest(t *testing.T) {
	byo := pkg(t, "build-your-own")

	sel := Selection{}
	var err error
	for _, id := range []uint{1, 2} {
		sel, err = Select(byo, "", sel, catalog.CategoryMain, id)
		require.NoError(t, err)
	}
	assert.Equal(t, []uint{1, 2}, sel[catalog.CategoryMain])

	before := sel
	sel, err = Select(byo, "", sel, catalog.CategoryMain, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 3}, sel[catalog.CategoryMain])
	assert.Equal(t, []uint{1, 2}, before[catalog.CategoryMain], "input must not be mutated")

	sel, err = Select(byo, "", sel, catalog.CategoryMain, 4)
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 4}, sel[catalog.CategoryMain])

	t.Run("reselecting is a no-op", func(t *testing.T) {
		again, err := Select(byo, "", sel, catalog.CategoryMain, 3)
		require.NoError(t, err)
		assert.Equal(t, []uint{3, 4}, again[catalog.CategoryMain])
	})

	t.Run("single slot category", func(t *testing.T) {
		s, err := Select(byo, "", Selection{catalog.CategorySalad: {7}}, catalog.CategorySalad, 8)
		require.NoError(t, err)
		assert.Equal(t, []uint{8}, s[catalog.CategorySalad])
	})

	t.Run("category outside structure", func(t *testing.T) {
		_, err := Select(byo, "", sel, catalog.CategoryDrink, 9)
		assert.ErrorIs(t, err, ErrCategoryNotOffered)
	})
}

func TestSelectCapacityForPresetSwap(t *testing.T) {
	buffet := pkg(t, "filipino-buffet")

	sel, err := Select(buffet, "", nil, catalog.CategoryRice, 1)
	require.NoError(t, err)
	sel, err = Select(buffet, "", sel, catalog.CategoryRice, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, sel[catalog.CategoryRice])
}

func TestDeselect(t *testing.T) {
	sel := Selection{catalog.CategoryMain: {1, 2}}
	out := Deselect(sel, catalog.CategoryMain, 1)
	assert.Equal(t, []uint{2}, out[catalog.CategoryMain])
	assert.Equal(t, []uint{1, 2}, sel[catalog.CategoryMain])

	out = Deselect(out, catalog.CategoryMain, 2)
	_, ok := out[catalog.CategoryMain]
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	byo := pkg(t, "build-your-own")

	out, err := Normalize(byo, "", Selection{
		catalog.CategoryMain:    {1, 2, 3},
		catalog.CategoryDessert: {4, 4, 5},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 3}, out[catalog.CategoryMain])
	assert.Equal(t, []uint{4, 5}, out[catalog.CategoryDessert])

	_, err = Normalize(byo, "", Selection{catalog.CategoryDrink: {1}})
	assert.ErrorIs(t, err, ErrCategoryNotOffered)

	_, err = Normalize(pkg(t, "packed-meal"), "", Selection{catalog.CategoryMain: {1}})
	assert.ErrorIs(t, err, ErrNotCustomizable)

	_, err = Normalize(pkg(t, "menu-470"), "Option Z", Selection{catalog.CategoryMain: {1}})
	assert.ErrorIs(t, err, ErrPresetNotFound)

	out, err = Normalize(pkg(t, "packed-meal"), "", nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestResolveMenu(t *testing.T) {
	names := map[uint]string{1: "Lechon Kawali", 2: "Bicol Express", 3: "Java Rice"}

	t.Run("preset swap replaces whole category", func(t *testing.T) {
		menu := ResolveMenu(pkg(t, "filipino-buffet"), "", Selection{catalog.CategoryMain: {1, 2}}, names)
		require.Len(t, menu, 6)
		assert.Equal(t, Course{Category: catalog.CategoryMain, Items: []string{"Lechon Kawali", "Bicol Express"}}, menu[1])
		assert.Equal(t, Course{Category: catalog.CategoryRice, Items: []string{"Plain Rice"}}, menu[3])
	})

	t.Run("build your own uses selections only", func(t *testing.T) {
		menu := ResolveMenu(pkg(t, "build-your-own"), "", Selection{catalog.CategoryMain: {1, 2}, catalog.CategoryRice: {3}}, names)
		assert.Equal(t, []Course{
			{Category: catalog.CategoryMain, Items: []string{"Lechon Kawali", "Bicol Express"}},
			{Category: catalog.CategoryRice, Items: []string{"Java Rice"}},
		}, menu)
	})

	t.Run("fixed ignores selections", func(t *testing.T) {
		menu := ResolveMenu(pkg(t, "packed-meal"), "Pork Meal", Selection{catalog.CategoryMain: {1}}, names)
		assert.Equal(t, Course{Category: catalog.CategoryMain, Items: []string{"Pork Barbecue"}}, menu[0])
	})
}
