// Package repository is the gorm-backed storage for users, dishes, add-ons and orders.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catering-booking-api/catalog"
	"catering-booking-api/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict means the row changed between read and write
	ErrConflict = errors.New("record was modified concurrently")
)

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// OrderFilter narrows admin order listings. Zero values are ignored.
type OrderFilter struct {
	Status     models.OrderStatus
	Payment    models.PaymentStatus
	CustomerID uint
	From       time.Time
	To         time.Time
}

type Orders struct {
	db *gorm.DB
}

func NewOrders(db *gorm.DB) *Orders {
	return &Orders{db: db}
}

// Insert stores a new order, its add-on lines and the first history row in one transaction.
// When the customer already used the idempotency key the stored order is loaded into order
// and created is false. Keys are scoped to the customer.
func (r *Orders) Insert(ctx context.Context, order *models.Order, actorID uint, note string) (created bool, err error) {
	if order.IdempotencyKey != nil {
		existing, err := r.byIdempotencyKey(ctx, order.CustomerID, *order.IdempotencyKey)
		if err == nil {
			*order = *existing
			return false, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return false, err
		}
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Customer", "StatusHistory").Create(order).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:   order.ID,
			Field:     models.FieldStatus,
			ToStatus:  string(order.Status),
			Amount:    order.ComputedTotal,
			ChangedBy: actorID,
			Note:      note,
		}).Error
	})
	if err != nil {
		// a racing submit with the same key may have won
		if order.IdempotencyKey != nil {
			if existing, lookupErr := r.byIdempotencyKey(ctx, order.CustomerID, *order.IdempotencyKey); lookupErr == nil {
				*order = *existing
				return false, nil
			}
		}
		return false, fmt.Errorf("failed to insert order: %w", err)
	}
	return true, nil
}

func (r *Orders) byIdempotencyKey(ctx context.Context, customerID uint, key string) (*models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("AddOns").
		Where("customer_id = ? AND idempotency_key = ?", customerID, key).
		Limit(1).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return &orders[0], nil
}

// Get loads an order with its add-ons, history and customer
func (r *Orders) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("AddOns").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Customer").
		First(&order, id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &order, nil
}

// ListByCustomer returns a customer's orders, newest first
func (r *Orders) ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	return r.List(ctx, OrderFilter{CustomerID: customerID})
}

// ListByDateRange returns orders whose event falls in [from, to), soonest first.
// Event times are stored in UTC so the text comparison in SQLite stays ordered.
func (r *Orders) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("AddOns").
		Where("event_at >= ? AND event_at < ?", from.UTC(), to.UTC()).
		Order("event_at asc").
		Find(&orders).Error
	return orders, err
}

// List applies a filter, newest first
func (r *Orders) List(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Preload("AddOns").Preload("Customer")
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Payment != "" {
		query = query.Where("payment_status = ?", f.Payment)
	}
	if f.CustomerID != 0 {
		query = query.Where("customer_id = ?", f.CustomerID)
	}
	if !f.From.IsZero() {
		query = query.Where("event_at >= ?", f.From.UTC())
	}
	if !f.To.IsZero() {
		query = query.Where("event_at < ?", f.To.UTC())
	}
	var orders []models.Order
	err := query.Order("created_at desc").Order("id desc").Find(&orders).Error
	return orders, err
}

// UpdateStatus moves an order from one status to another. The write only applies while the
// stored status still equals from.
func (r *Orders) UpdateStatus(ctx context.Context, id uint, from, to models.OrderStatus, actorID uint, note string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", id, from).
			Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:    id,
			Field:      models.FieldStatus,
			FromStatus: string(from),
			ToStatus:   string(to),
			ChangedBy:  actorID,
			Note:       note,
		}).Error
	})
}

// UpdatePayment records a payment status, deposit and notes
func (r *Orders) UpdatePayment(ctx context.Context, id uint, from, to models.PaymentStatus, deposit catalog.Money, notes string, actorID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND payment_status = ?", id, from).
			Updates(map[string]any{
				"payment_status": to,
				"deposit_amount": deposit,
				"payment_notes":  notes,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:    id,
			Field:      models.FieldPayment,
			FromStatus: string(from),
			ToStatus:   string(to),
			Amount:     deposit,
			ChangedBy:  actorID,
			Note:       notes,
		}).Error
	})
}

// OverrideTotal replaces the stored total with a manual figure
func (r *Orders) OverrideTotal(ctx context.Context, id uint, previous, total catalog.Money, reason string, actorID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND computed_total = ?", id, previous).
			Updates(map[string]any{
				"computed_total":   total,
				"total_overridden": true,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:    id,
			Field:      models.FieldTotal,
			FromStatus: previous.String(),
			ToStatus:   total.String(),
			Amount:     total,
			ChangedBy:  actorID,
			Note:       "[ADMIN OVERRIDE] " + reason,
		}).Error
	})
}
