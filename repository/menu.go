package repository

import (
	"context"

	"catering-booking-api/catalog"
	"catering-booking-api/models"

	"gorm.io/gorm"
)

type Dishes struct {
	db *gorm.DB
}

func NewDishes(db *gorm.DB) *Dishes {
	return &Dishes{db: db}
}

func (r *Dishes) Create(ctx context.Context, dish *models.Dish) error {
	return r.db.WithContext(ctx).Create(dish).Error
}

func (r *Dishes) Get(ctx context.Context, id uint) (*models.Dish, error) {
	var dish models.Dish
	if err := r.db.WithContext(ctx).First(&dish, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &dish, nil
}

// Update applies a partial update and reloads the dish
func (r *Dishes) Update(ctx context.Context, id uint, fields map[string]any) (*models.Dish, error) {
	dish, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(dish).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete removes a dish. Orders keep their own snapshot of dish names.
func (r *Dishes) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Dish{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns dishes, optionally of one category and optionally including unavailable ones
func (r *Dishes) List(ctx context.Context, category catalog.Category, includeUnavailable bool) ([]models.Dish, error) {
	query := r.db.WithContext(ctx)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if !includeUnavailable {
		query = query.Where("available = ?", true)
	}
	var dishes []models.Dish
	err := query.Order("name asc").Find(&dishes).Error
	return dishes, err
}

// ListAvailable is what a customer may pick from
func (r *Dishes) ListAvailable(ctx context.Context, category catalog.Category) ([]models.Dish, error) {
	return r.List(ctx, category, false)
}

// ByIDs returns the dishes found for the given ids, keyed by id
func (r *Dishes) ByIDs(ctx context.Context, ids []uint) (map[uint]models.Dish, error) {
	out := make(map[uint]models.Dish, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var dishes []models.Dish
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&dishes).Error; err != nil {
		return nil, err
	}
	for _, d := range dishes {
		out[d.ID] = d
	}
	return out, nil
}

// Uncategorized returns dishes that still lack a category tag
func (r *Dishes) Uncategorized(ctx context.Context) ([]models.Dish, error) {
	var dishes []models.Dish
	err := r.db.WithContext(ctx).Where("category = ? OR category IS NULL", "").Order("id asc").Find(&dishes).Error
	return dishes, err
}

// SetCategory tags a dish with its category
func (r *Dishes) SetCategory(ctx context.Context, id uint, category catalog.Category) error {
	return r.db.WithContext(ctx).Model(&models.Dish{}).Where("id = ?", id).Update("category", category).Error
}

type AddOns struct {
	db *gorm.DB
}

func NewAddOns(db *gorm.DB) *AddOns {
	return &AddOns{db: db}
}

func (r *AddOns) Create(ctx context.Context, addOn *models.AddOn) error {
	return r.db.WithContext(ctx).Create(addOn).Error
}

func (r *AddOns) Get(ctx context.Context, id uint) (*models.AddOn, error) {
	var addOn models.AddOn
	if err := r.db.WithContext(ctx).First(&addOn, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &addOn, nil
}

func (r *AddOns) Update(ctx context.Context, id uint, fields map[string]any) (*models.AddOn, error) {
	addOn, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(addOn).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *AddOns) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.AddOn{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AddOns) List(ctx context.Context, includeUnavailable bool) ([]models.AddOn, error) {
	query := r.db.WithContext(ctx)
	if !includeUnavailable {
		query = query.Where("available = ?", true)
	}
	var addOns []models.AddOn
	err := query.Order("name asc").Find(&addOns).Error
	return addOns, err
}

// ByIDs returns the available add-ons found for the given ids. Removed or disabled ones are absent.
func (r *AddOns) ByIDs(ctx context.Context, ids []uint) (map[uint]models.AddOn, error) {
	out := make(map[uint]models.AddOn, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var addOns []models.AddOn
	if err := r.db.WithContext(ctx).Where("id IN ? AND available = ?", ids, true).Find(&addOns).Error; err != nil {
		return nil, err
	}
	for _, a := range addOns {
		out[a.ID] = a
	}
	return out, nil
}
