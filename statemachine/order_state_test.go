package statemachine

import (
	"testing"

	"catering-booking-api/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		actor    string
		ok       bool
	}{
		{models.StatusPending, models.StatusConfirmed, ActorAdmin, true},
		{models.StatusPending, models.StatusConfirmed, ActorCustomer, false},
		{models.StatusPending, models.StatusCancelled, ActorCustomer, true},
		{models.StatusConfirmed, models.StatusCancelled, ActorCustomer, false},
		{models.StatusConfirmed, models.StatusCancelled, ActorAdmin, true},
		{models.StatusConfirmed, models.StatusCompleted, ActorAdmin, true},
		{models.StatusPending, models.StatusCompleted, ActorAdmin, false},
		{models.StatusCompleted, models.StatusCancelled, ActorAdmin, false},
		{models.StatusCancelled, models.StatusPending, ActorAdmin, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to)+"/"+tt.actor, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	assert.Empty(t, ValidTransitionsFrom(models.StatusCompleted))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
	assert.Equal(t, []models.OrderStatus{models.StatusConfirmed, models.StatusCancelled}, ValidTransitionsFrom(models.StatusPending))

	err := CanTransition(models.StatusCompleted, models.StatusPending, ActorAdmin)
	assert.Contains(t, err.Error(), "none (terminal state)")
}

func TestCanTransitionPayment(t *testing.T) {
	assert.NoError(t, CanTransitionPayment(models.PaymentUnpaid, models.PaymentDepositPaid, ActorAdmin))
	assert.NoError(t, CanTransitionPayment(models.PaymentDepositPaid, models.PaymentFullyPaid, ActorAdmin))
	assert.NoError(t, CanTransitionPayment(models.PaymentFullyPaid, models.PaymentRefunded, ActorAdmin))
	assert.ErrorIs(t, CanTransitionPayment(models.PaymentUnpaid, models.PaymentRefunded, ActorAdmin), ErrInvalidTransition)
	assert.ErrorIs(t, CanTransitionPayment(models.PaymentUnpaid, models.PaymentFullyPaid, ActorCustomer), ErrInvalidTransition)
	assert.Empty(t, ValidPaymentTransitionsFrom(models.PaymentRefunded))
	assert.Len(t, GetPaymentTransitions(), 5)
	assert.Len(t, GetAllTransitions(), 5)
}
