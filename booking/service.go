package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"catering-booking-api/catalog"
	"catering-booking-api/models"
	"catering-booking-api/pricing"
	"catering-booking-api/repository"
	"catering-booking-api/statemachine"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderStore is the storage collaborator
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order, actorID uint, note string) (bool, error)
	Get(ctx context.Context, id uint) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Order, error)
	List(ctx context.Context, f repository.OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, from, to models.OrderStatus, actorID uint, note string) error
	UpdatePayment(ctx context.Context, id uint, from, to models.PaymentStatus, deposit catalog.Money, notes string, actorID uint) error
	OverrideTotal(ctx context.Context, id uint, previous, total catalog.Money, reason string, actorID uint) error
}

// DishSource looks up dishes by id
type DishSource interface {
	ByIDs(ctx context.Context, ids []uint) (map[uint]models.Dish, error)
}

// AddOnSource looks up available add-ons by id
type AddOnSource interface {
	ByIDs(ctx context.Context, ids []uint) (map[uint]models.AddOn, error)
}

// Notifier hears about newly placed orders
type Notifier interface {
	OrderPlaced(ctx context.Context, order models.Order) error
}

type Service struct {
	catalog  *catalog.Catalog
	orders   OrderStore
	dishes   DishSource
	addOns   AddOnSource
	notifier Notifier
	log      *zap.SugaredLogger
	loc      *time.Location

	now    func() time.Time
	newRef func() string
}

func NewService(cat *catalog.Catalog, orders OrderStore, dishes DishSource, addOns AddOnSource,
	notifier Notifier, log *zap.SugaredLogger, loc *time.Location) *Service {
	return &Service{
		catalog:  cat,
		orders:   orders,
		dishes:   dishes,
		addOns:   addOns,
		notifier: notifier,
		log:      log,
		loc:      loc,
		now:      time.Now,
		newRef:   newReference,
	}
}

func newReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "CB-" + strings.ToUpper(id[:12])
}

func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

func (s *Service) Location() *time.Location { return s.loc }

// Now is the service clock in the business time zone
func (s *Service) Now() time.Time { return s.now().In(s.loc) }

// QuoteRequest prices a package without placing an order
type QuoteRequest struct {
	PackageID  string              `json:"package_id" binding:"required"`
	ZoneID     string              `json:"zone_id" binding:"required"`
	Kind       models.OrderKind    `json:"kind"`
	GuestCount int                 `json:"guest_count" binding:"required"`
	AddOns     []pricing.AddOnLine `json:"addons"`
}

// Quote returns a priced breakdown. A quotation-required zone is rejected before anything else.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (pricing.Breakdown, error) {
	zone, ok := s.catalog.Zone(req.ZoneID)
	if !ok {
		return pricing.Breakdown{}, invalid(fmt.Errorf("%w: %q", pricing.ErrZoneNotFound, req.ZoneID))
	}
	if pricing.ZoneSurcharge(zone, ChargeKindFor(req.Kind)).RequiresQuotation {
		return pricing.Breakdown{}, invalid(pricing.ErrRequiresQuotation)
	}
	pkg, ok := s.catalog.Package(req.PackageID)
	if !ok {
		return pricing.Breakdown{}, invalid(fmt.Errorf("%w: %q", pricing.ErrPackageNotFound, req.PackageID))
	}

	addOns, err := s.addOns.ByIDs(ctx, addOnIDs(req.AddOns))
	if err != nil {
		return pricing.Breakdown{}, fmt.Errorf("failed to load add-ons: %w", err)
	}
	prices := make(map[uint]pricing.AddOnPrice, len(addOns))
	for id, a := range addOns {
		prices[id] = pricing.AddOnPrice{Name: a.Name, UnitPrice: a.UnitPrice}
	}

	b, err := pricing.Quote(pkg, zone, ChargeKindFor(req.Kind), req.GuestCount, req.AddOns, prices)
	if err != nil {
		return b, invalid(err)
	}
	if len(b.MissingAddOns) > 0 {
		s.log.Warnw("quote references unknown add-ons", "addon_ids", b.MissingAddOns, "package_id", pkg.ID)
	}
	return b, nil
}

func addOnIDs(lines []pricing.AddOnLine) []uint {
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.AddOnID)
	}
	return ids
}

// Place assembles, stores and announces an order. created is false when the idempotency key
// matched an order that already exists; that order is returned unchanged.
func (s *Service) Place(ctx context.Context, req Request) (order *models.Order, created bool, err error) {
	dishes, err := s.dishes.ByIDs(ctx, req.Selection.DishIDs())
	if err != nil {
		return nil, false, fmt.Errorf("failed to load dishes: %w", err)
	}
	addOns, err := s.addOns.ByIDs(ctx, addOnIDs(req.AddOns))
	if err != nil {
		return nil, false, fmt.Errorf("failed to load add-ons: %w", err)
	}

	a, err := Assemble(Refs{Catalog: s.catalog, Dishes: dishes, AddOns: addOns, Location: s.loc}, req, s.now())
	if err != nil {
		return nil, false, err
	}
	if len(a.MissingAddOns) > 0 {
		s.log.Warnw("order references unknown or disabled add-ons; they were not charged",
			"addon_ids", a.MissingAddOns, "customer_id", req.CustomerID)
	}

	o := a.Order
	o.Reference = s.newRef()
	note := "Booking placed by customer"
	if req.Privileged {
		note = "Booking created by admin"
	}
	created, err = s.orders.Insert(ctx, &o, req.CreatedBy, note)
	if err != nil {
		return nil, false, err
	}
	if !created {
		s.log.Infow("duplicate submission returned existing order", "order_id", o.ID, "reference", o.Reference)
		return &o, false, nil
	}

	s.log.Infow("order placed",
		"order_id", o.ID,
		"reference", o.Reference,
		"package_id", o.PackageID,
		"guests", o.GuestCount,
		"total", int64(o.ComputedTotal),
	)
	if s.notifier != nil {
		if err := s.notifier.OrderPlaced(ctx, o); err != nil {
			s.log.Errorw("failed to send order notifications", "order_id", o.ID, "error", err)
		}
	}
	return &o, true, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Order, error) {
	return s.orders.Get(ctx, id)
}

// GetForCustomer hides orders that belong to someone else
func (s *Service) GetForCustomer(ctx context.Context, id, customerID uint) (*models.Order, error) {
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, repository.ErrNotFound
	}
	return o, nil
}

func (s *Service) ListForCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// ListByDateRange returns events in [from, to)
func (s *Service) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	return s.orders.ListByDateRange(ctx, from, to)
}

func (s *Service) List(ctx context.Context, f repository.OrderFilter) ([]models.Order, error) {
	return s.orders.List(ctx, f)
}

// Cancel lets a customer withdraw their own pending booking
func (s *Service) Cancel(ctx context.Context, id, customerID uint) (*models.Order, error) {
	o, err := s.GetForCustomer(ctx, id, customerID)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanTransition(o.Status, models.StatusCancelled, statemachine.ActorCustomer); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, id, o.Status, models.StatusCancelled, customerID, "Cancelled by customer"); err != nil {
		return nil, err
	}
	s.log.Infow("order cancelled by customer", "order_id", id, "customer_id", customerID)
	return s.orders.Get(ctx, id)
}

// UpdateStatus is the admin status change
func (s *Service) UpdateStatus(ctx context.Context, id uint, to models.OrderStatus, actorID uint, note string) (*models.Order, error) {
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanTransition(o.Status, to, statemachine.ActorAdmin); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, id, o.Status, to, actorID, note); err != nil {
		return nil, err
	}
	s.log.Infow("order status changed", "order_id", id, "from", o.Status, "to", to, "admin_id", actorID)
	return s.orders.Get(ctx, id)
}

// PaymentUpdate is an admin payment entry. A nil Deposit keeps the stored one.
type PaymentUpdate struct {
	Status  models.PaymentStatus
	Deposit *catalog.Money
	Notes   string
}

// UpdatePayment records payment progress. Keeping the same status only edits the deposit
// and notes.
func (s *Service) UpdatePayment(ctx context.Context, id uint, u PaymentUpdate, actorID uint) (*models.Order, error) {
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	to := u.Status
	if to == "" {
		to = o.PaymentStatus
	}
	if to != o.PaymentStatus {
		if err := statemachine.CanTransitionPayment(o.PaymentStatus, to, statemachine.ActorAdmin); err != nil {
			return nil, err
		}
	}
	deposit := o.DepositAmount
	if u.Deposit != nil {
		deposit = *u.Deposit
	}
	if deposit < 0 || deposit > o.ComputedTotal {
		return nil, invalid(fmt.Errorf("%w: %s of %s", ErrInvalidDeposit, deposit, o.ComputedTotal))
	}
	notes := o.PaymentNotes
	if strings.TrimSpace(u.Notes) != "" {
		notes = strings.TrimSpace(u.Notes)
	}
	if err := s.orders.UpdatePayment(ctx, id, o.PaymentStatus, to, deposit, notes, actorID); err != nil {
		return nil, err
	}
	s.log.Infow("payment updated", "order_id", id, "from", o.PaymentStatus, "to", to, "deposit", int64(deposit), "admin_id", actorID)
	return s.orders.Get(ctx, id)
}

// OverrideTotal replaces the stored total with a manual figure. The priced components stay as
// they were computed at submission.
func (s *Service) OverrideTotal(ctx context.Context, id uint, total catalog.Money, reason string, actorID uint) (*models.Order, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, invalid(ErrReasonRequired)
	}
	if total < 0 {
		return nil, invalid(ErrInvalidTotal)
	}
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status == models.StatusCancelled {
		return nil, invalid(ErrOrderClosed)
	}
	if total < o.DepositAmount {
		return nil, invalid(fmt.Errorf("%w: deposit of %s already recorded", ErrInvalidDeposit, o.DepositAmount))
	}
	if err := s.orders.OverrideTotal(ctx, id, o.ComputedTotal, total, reason, actorID); err != nil {
		return nil, err
	}
	s.log.Warnw("order total overridden",
		"order_id", id, "from", int64(o.ComputedTotal), "to", int64(total), "admin_id", actorID, "reason", reason)
	return s.orders.Get(ctx, id)
}
