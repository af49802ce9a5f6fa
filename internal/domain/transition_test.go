package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var allStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
	StatusOutForDelivery, StatusDelivered, StatusCancelled,
}

var allTypes = []OrderType{TypeDineIn, TypeTakeaway, TypeDelivery}

// successors returns the documented successor set for a (status, type)
// pair. Everything outside this set, including self-transitions and any
// move out of a terminal state, must be rejected.
func successors(current OrderStatus, orderType OrderType) map[OrderStatus]bool {
	if current.IsTerminal() {
		return map[OrderStatus]bool{}
	}
	next := map[OrderStatus]bool{StatusCancelled: true}
	switch current {
	case StatusPending:
		next[StatusConfirmed] = true
	case StatusConfirmed:
		next[StatusPreparing] = true
	case StatusPreparing:
		next[StatusReady] = true
	case StatusReady:
		if orderType == TypeDelivery {
			next[StatusOutForDelivery] = true
		} else {
			next[StatusDelivered] = true
		}
	case StatusOutForDelivery:
		if orderType == TypeDelivery {
			next[StatusDelivered] = true
		}
	}
	return next
}

func TestCanTransition_GraphClosure(t *testing.T) {
	for _, orderType := range allTypes {
		for _, current := range allStatuses {
			expected := successors(current, orderType)
			for _, target := range allStatuses {
				got := CanTransition(current, target, orderType)
				assert.Equal(t, expected[target], got,
					"%s -> %s (%s)", current, target, orderType)
			}
		}
	}
}

func TestCanTransition_TerminalStatesAcceptNothing(t *testing.T) {
	for _, terminal := range []OrderStatus{StatusDelivered, StatusCancelled} {
		for _, orderType := range allTypes {
			for _, target := range allStatuses {
				assert.False(t, CanTransition(terminal, target, orderType),
					"nothing may leave %s (attempted %s)", terminal, target)
			}
		}
	}
}

func TestApplyTransition(t *testing.T) {
	tests := []struct {
		name      string
		status    OrderStatus
		orderType OrderType
		target    OrderStatus
		wantErr   bool
	}{
		{name: "pending to confirmed", status: StatusPending, orderType: TypeDineIn, target: StatusConfirmed},
		{name: "ready to delivered for takeaway", status: StatusReady, orderType: TypeTakeaway, target: StatusDelivered},
		{name: "ready to out_for_delivery for delivery", status: StatusReady, orderType: TypeDelivery, target: StatusOutForDelivery},
		{name: "cancel mid-preparation", status: StatusPreparing, orderType: TypeDineIn, target: StatusCancelled},
		{name: "skipping confirmed rejected", status: StatusPending, orderType: TypeDineIn, target: StatusPreparing, wantErr: true},
		{name: "out_for_delivery for dine_in rejected", status: StatusReady, orderType: TypeDineIn, target: StatusOutForDelivery, wantErr: true},
		{name: "self transition rejected", status: StatusPreparing, orderType: TypeTakeaway, target: StatusPreparing, wantErr: true},
		{name: "resurrecting cancelled rejected", status: StatusCancelled, orderType: TypeDelivery, target: StatusPending, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{
				ID:          "ord-1",
				Status:      tt.status,
				OrderType:   tt.orderType,
				TotalAmount: decimal.NewFromInt(50),
			}

			next, err := ApplyTransition(order, tt.target)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Nil(t, next)
				assert.Equal(t, tt.status, order.Status, "input must stay untouched")
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.target, next.Status)
			assert.Equal(t, tt.status, order.Status, "input must stay untouched")
			assert.NotSame(t, order, next)
		})
	}
}
