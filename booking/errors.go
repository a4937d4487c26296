// Package booking assembles catering orders from customer input and runs them through
// pricing, menu validation and storage.
package booking

import (
	"errors"

	"catering-booking-api/composition"
	"catering-booking-api/pricing"
)

var (
	ErrInvalidDateTime = errors.New("invalid event date or time")
	ErrUnknownDish     = errors.New("dish is unknown, unavailable or in the wrong category")
	ErrInvalidDeposit  = errors.New("deposit must be between zero and the order total")
	ErrInvalidTotal    = errors.New("total must not be negative")
	ErrReasonRequired  = errors.New("a reason is required")
	ErrOrderClosed     = errors.New("order is cancelled")
)

// Error codes returned to clients
const (
	CodePackageNotFound    = "package_not_found"
	CodeZoneNotFound       = "zone_not_found"
	CodeBelowMinimum       = "below_minimum_guest_count"
	CodeBelowZoneMinimum   = "below_zone_minimum"
	CodeRequiresQuotation  = "requires_quotation"
	CodeIncompleteMenu     = "incomplete_menu"
	CodeInvalidDateTime    = "invalid_datetime"
	CodeUnknownDish        = "unknown_dish"
	CodeNotCustomizable    = "not_customizable"
	CodeCategoryNotOffered = "category_not_offered"
	CodePresetNotFound     = "preset_not_found"
	CodeAmountOverflow     = "amount_overflow"
	CodeInvalidDeposit     = "invalid_deposit"
	CodeInvalidTotal       = "invalid_total"
	CodeReasonRequired     = "reason_required"
	CodeOrderClosed        = "order_closed"
)

var codes = []struct {
	err  error
	code string
}{
	{pricing.ErrRequiresQuotation, CodeRequiresQuotation},
	{pricing.ErrZoneNotFound, CodeZoneNotFound},
	{pricing.ErrPackageNotFound, CodePackageNotFound},
	{pricing.ErrBelowMinimumGuestCount, CodeBelowMinimum},
	{pricing.ErrBelowZoneMinimum, CodeBelowZoneMinimum},
	{pricing.ErrAmountOverflow, CodeAmountOverflow},
	{ErrInvalidDateTime, CodeInvalidDateTime},
	{ErrUnknownDish, CodeUnknownDish},
	{composition.ErrIncompleteMenu, CodeIncompleteMenu},
	{composition.ErrNotCustomizable, CodeNotCustomizable},
	{composition.ErrCategoryNotOffered, CodeCategoryNotOffered},
	{composition.ErrPresetNotFound, CodePresetNotFound},
	{ErrInvalidDeposit, CodeInvalidDeposit},
	{ErrInvalidTotal, CodeInvalidTotal},
	{ErrReasonRequired, CodeReasonRequired},
	{ErrOrderClosed, CodeOrderClosed},
}

// ValidationError is a recoverable, user-facing rejection. Shortfalls is set for
// incomplete build-your-own menus.
type ValidationError struct {
	Code       string                       `json:"code"`
	Message    string                       `json:"error"`
	Shortfalls []composition.CategoryStatus `json:"shortfalls,omitempty"`
	err        error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.err }

// AsValidation wraps a domain error into a ValidationError. Anything that is not a known
// domain error (storage failures included) returns nil.
func AsValidation(err error) *ValidationError {
	if err == nil {
		return nil
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return v
	}
	for _, c := range codes {
		if !errors.Is(err, c.err) {
			continue
		}
		v = &ValidationError{Code: c.code, Message: err.Error(), err: err}
		var incomplete *composition.IncompleteMenuError
		if errors.As(err, &incomplete) {
			v.Shortfalls = incomplete.Shortfalls
		}
		return v
	}
	return nil
}

func invalid(err error) error {
	if v := AsValidation(err); v != nil {
		return v
	}
	return err
}
