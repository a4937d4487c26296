package statemachine

import (
	"errors"
	"strings"

	"catering-booking-api/models"
)

// Actors allowed to drive transitions
const (
	ActorCustomer = "customer"
	ActorAdmin    = "admin"
)

// ErrInvalidTransition is wrapped by every rejected transition
var ErrInvalidTransition = errors.New("invalid transition")

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Actor string `json:"actor"`
}

// validTransitions is the authoritative booking lifecycle
var validTransitions = []Transition{
	// Admin confirms the booking after reviewing it
	{From: string(models.StatusPending), To: string(models.StatusConfirmed), Actor: ActorAdmin},
	// Customer may withdraw only while the booking is still pending
	{From: string(models.StatusPending), To: string(models.StatusCancelled), Actor: ActorCustomer},
	{From: string(models.StatusPending), To: string(models.StatusCancelled), Actor: ActorAdmin},
	{From: string(models.StatusConfirmed), To: string(models.StatusCompleted), Actor: ActorAdmin},
	{From: string(models.StatusConfirmed), To: string(models.StatusCancelled), Actor: ActorAdmin},
}

// paymentTransitions is mutated by admins only
var paymentTransitions = []Transition{
	{From: string(models.PaymentUnpaid), To: string(models.PaymentDepositPaid), Actor: ActorAdmin},
	{From: string(models.PaymentUnpaid), To: string(models.PaymentFullyPaid), Actor: ActorAdmin},
	{From: string(models.PaymentDepositPaid), To: string(models.PaymentFullyPaid), Actor: ActorAdmin},
	{From: string(models.PaymentDepositPaid), To: string(models.PaymentRefunded), Actor: ActorAdmin},
	{From: string(models.PaymentFullyPaid), To: string(models.PaymentRefunded), Actor: ActorAdmin},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  string
	To    string
	Actor string
}

func buildMap(ts []Transition) map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range ts {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}

var (
	statusMap  = buildMap(validTransitions)
	paymentMap = buildMap(paymentTransitions)
)

func nextStates(ts []Transition, from string) []string {
	var nexts []string
	seen := map[string]bool{}
	for _, t := range ts {
		if t.From == from && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var out []models.OrderStatus
	for _, s := range nextStates(validTransitions, string(status)) {
		out = append(out, models.OrderStatus(s))
	}
	return out
}

// ValidPaymentTransitionsFrom returns all valid next payment states
func ValidPaymentTransitionsFrom(status models.PaymentStatus) []models.PaymentStatus {
	var out []models.PaymentStatus
	for _, s := range nextStates(paymentTransitions, string(status)) {
		out = append(out, models.PaymentStatus(s))
	}
	return out
}

// CanTransition checks if a given actor can move a booking from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	if statusMap[transitionKey{string(from), string(to), actor}] {
		return nil
	}
	return rejected(validTransitions, string(from), string(to), actor)
}

// CanTransitionPayment checks a payment status change
func CanTransitionPayment(from, to models.PaymentStatus, actor string) error {
	if paymentMap[transitionKey{string(from), string(to), actor}] {
		return nil
	}
	return rejected(paymentTransitions, string(from), string(to), actor)
}

func rejected(ts []Transition, from, to, actor string) error {
	return errors.Join(ErrInvalidTransition, errors.New(
		from+" → "+to+" is not allowed for actor '"+actor+"'. "+
			"Valid transitions from "+from+" are: "+describeValidFrom(ts, from),
	))
}

func describeValidFrom(ts []Transition, from string) string {
	nexts := nextStates(ts, from)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	return strings.Join(nexts, ", ")
}

// GetAllTransitions returns the booking state machine for documentation
func GetAllTransitions() []Transition {
	return append([]Transition(nil), validTransitions...)
}

// GetPaymentTransitions returns the payment state machine for documentation
func GetPaymentTransitions() []Transition {
	return append([]Transition(nil), paymentTransitions...)
}
