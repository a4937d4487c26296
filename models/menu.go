package models

import (
	"time"

	"catering-booking-api/catalog"
)

// Dish is an admin-managed dish a customer can pick when building or swapping a menu.
// Unavailable dishes are hidden from selection but kept for order history.
type Dish struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Name        string           `json:"name" gorm:"not null"`
	Category    catalog.Category `json:"category" gorm:"index"`
	Description string           `json:"description"`
	Available   bool             `json:"available" gorm:"not null"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// AddOn is a flat-rate extra charged per unit
type AddOn struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	Name      string        `json:"name" gorm:"not null"`
	UnitPrice catalog.Money `json:"unit_price" gorm:"not null"`
	Unit      string        `json:"unit"`
	Available bool          `json:"available" gorm:"not null"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
