package models

import (
	"time"

	"catering-booking-api/catalog"
	"catering-booking-api/composition"
)

// OrderStatus represents the lifecycle of a booking
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus is set by admins; there is no payment gateway
type PaymentStatus string

const (
	PaymentUnpaid      PaymentStatus = "unpaid"
	PaymentDepositPaid PaymentStatus = "deposit_paid"
	PaymentFullyPaid   PaymentStatus = "fully_paid"
	PaymentRefunded    PaymentStatus = "refunded"
)

// OrderKind decides which zone fee applies
type OrderKind string

const (
	KindCatering OrderKind = "catering"
	KindDelivery OrderKind = "delivery"
)

// Order is a catering booking or food order. The money fields are a snapshot taken at
// submission and are never recomputed from the catalog.
type Order struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	Reference      string  `json:"reference" gorm:"uniqueIndex;not null"`
	IdempotencyKey *string `json:"-" gorm:"uniqueIndex:idx_orders_customer_idempotency,priority:2"`
	CustomerID     uint    `json:"customer_id" gorm:"not null;index;uniqueIndex:idx_orders_customer_idempotency,priority:1"`
	Customer       User    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	CreatedBy      uint    `json:"created_by"`

	Kind        OrderKind `json:"kind" gorm:"not null"`
	PackageID   string    `json:"package_id" gorm:"not null"`
	PackageName string    `json:"package_name"`
	PresetName  string    `json:"preset_name,omitempty"`
	GuestCount  int       `json:"guest_count" gorm:"not null"`
	ZoneID      string    `json:"zone_id" gorm:"not null"`
	ZoneName    string    `json:"zone_name"`

	EventAt      time.Time `json:"event_at" gorm:"not null;index"`
	VenueAddress string    `json:"venue_address"`
	ContactName  string    `json:"contact_name"`
	ContactPhone string    `json:"contact_phone"`
	ContactEmail string    `json:"contact_email"`
	Notes        string    `json:"notes"`

	Selection composition.Selection `json:"selection" gorm:"serializer:json"`
	Menu      []composition.Course  `json:"menu" gorm:"serializer:json"`
	AddOns    []OrderAddOn          `json:"addons,omitempty" gorm:"foreignKey:OrderID"`

	PricePerGuest   catalog.Money `json:"price_per_guest"`
	PackageSubtotal catalog.Money `json:"package_subtotal"`
	AddOnsTotal     catalog.Money `json:"addons_total"`
	Surcharge       catalog.Money `json:"surcharge"`
	ComputedTotal   catalog.Money `json:"computed_total"`
	TotalOverridden bool          `json:"total_overridden"`

	Status        OrderStatus   `json:"status" gorm:"not null;default:'pending';index"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"not null;default:'unpaid'"`
	DepositAmount catalog.Money `json:"deposit_amount"`
	PaymentNotes  string        `json:"payment_notes"`

	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// OrderAddOn snapshots an add-on's name and price at submission
type OrderAddOn struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	OrderID   uint          `json:"order_id" gorm:"not null;index"`
	AddOnID   uint          `json:"addon_id" gorm:"not null"`
	Name      string        `json:"name"`
	UnitPrice catalog.Money `json:"unit_price" gorm:"not null"`
	Unit      string        `json:"unit"`
	Quantity  int           `json:"quantity" gorm:"not null"`
	LineTotal catalog.Money `json:"line_total"`
}

// OrderStatusHistory tracks every status, payment or total change
type OrderStatusHistory struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	OrderID    uint          `json:"order_id" gorm:"not null;index"`
	Field      string        `json:"field" gorm:"not null;default:'status'"`
	FromStatus string        `json:"from_status"`
	ToStatus   string        `json:"to_status" gorm:"not null"`
	Amount     catalog.Money `json:"amount,omitempty"`
	ChangedBy  uint          `json:"changed_by"`
	Note       string        `json:"note"`
	CreatedAt  time.Time     `json:"created_at"`
}

// History fields
const (
	FieldStatus  = "status"
	FieldPayment = "payment"
	FieldTotal   = "total"
)

// IsTerminal reports whether no further status change is possible
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}
