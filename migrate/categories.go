// Package migrate holds one-off data migrations.
package migrate

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"catering-booking-api/catalog"
	"catering-booking-api/models"

	"go.uber.org/zap"
)

// keywords are checked in this order. Dessert comes first so "Buko Salad" and
// "Mango Float" are not read as a salad or a main.
var keywords = []struct {
	category catalog.Category
	words    []string
}{
	{catalog.CategoryDessert, []string{
		"cake", "flan", "sago", "leche", "pandan", "buko salad", "fruit salad", "float", "maja",
		"biko", "puto", "turon", "halo halo", "ice cream", "brownie", "cookie", "pie", "mousse",
		"panna cotta", "tart", "ube", "gulaman", "pudding", "cupcake",
	}},
	{catalog.CategoryDrink, []string{
		"juice", "tea", "lemonade", "water", "soda", "coffee", "shake", "softdrinks", "punch",
	}},
	{catalog.CategoryRice, []string{
		"rice", "paella", "valenciana", "bringhe", "sinangag", "biryani",
	}},
	{catalog.CategorySalad, []string{
		"salad", "ensalada", "caesar", "coleslaw", "kinilaw",
	}},
	{catalog.CategorySide, []string{
		"pancit", "canton", "bihon", "sotanghon", "spaghetti", "carbonara", "pasta", "lumpia",
		"chopsuey", "vegetables", "veggies", "soup", "fries", "mashed", "lasagna", "macaroni",
	}},
	{catalog.CategoryMain, []string{
		"chicken", "pork", "beef", "fish", "shrimp", "prawn", "adobo", "humba", "lechon",
		"caldereta", "kaldereta", "kare kare", "menudo", "barbecue", "bbq", "sinigang", "cordon",
		"fillet", "steak", "ham", "lengua", "embutido", "dinuguan", "calamares", "squid",
	}},
}

// ClassifyDishName guesses a category from a free-text dish name. ok is false when no
// keyword matched.
func ClassifyDishName(name string) (catalog.Category, bool) {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return "", false
	}
	text := " " + strings.Join(words, " ") + " "
	for _, group := range keywords {
		for _, kw := range group.words {
			if strings.Contains(text, " "+kw+" ") || strings.Contains(text, " "+kw+"s ") {
				return group.category, true
			}
		}
	}
	return "", false
}

// DishStore is what the backfill reads and writes
type DishStore interface {
	Uncategorized(ctx context.Context) ([]models.Dish, error)
	SetCategory(ctx context.Context, id uint, category catalog.Category) error
}

// Tagged is one dish the backfill classified
type Tagged struct {
	DishID   uint
	Name     string
	Category catalog.Category
}

// Report summarises a backfill run
type Report struct {
	Tagged    []Tagged
	Unmatched []models.Dish
}

// BackfillDishCategories tags every uncategorised dish whose name matches a keyword.
// With dryRun nothing is written. Unmatched dishes are left for an admin to tag by hand.
func BackfillDishCategories(ctx context.Context, store DishStore, log *zap.SugaredLogger, dryRun bool) (Report, error) {
	dishes, err := store.Uncategorized(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list uncategorized dishes: %w", err)
	}

	var report Report
	for _, d := range dishes {
		cat, ok := ClassifyDishName(d.Name)
		if !ok {
			log.Warnw("no category keyword matched", "dish_id", d.ID, "name", d.Name)
			report.Unmatched = append(report.Unmatched, d)
			continue
		}
		if !dryRun {
			if err := store.SetCategory(ctx, d.ID, cat); err != nil {
				return report, fmt.Errorf("failed to tag dish %d: %w", d.ID, err)
			}
		}
		log.Infow("dish categorized", "dish_id", d.ID, "name", d.Name, "category", cat, "dry_run", dryRun)
		report.Tagged = append(report.Tagged, Tagged{DishID: d.ID, Name: d.Name, Category: cat})
	}
	return report, nil
}
