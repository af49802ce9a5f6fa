package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// CanTransition reports whether an order of the given type may move from
// current to target. The graph only moves forward:
//
//	pending -> confirmed -> preparing -> ready -> [out_for_delivery] -> delivered
//
// out_for_delivery exists only for delivery orders; dine_in and takeaway go
// straight from ready to delivered. cancelled is reachable from any
// non-terminal state. delivered and cancelled accept nothing further.
func CanTransition(current, target OrderStatus, orderType OrderType) bool {
	if current.IsTerminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	switch current {
	case StatusPending:
		return target == StatusConfirmed
	case StatusConfirmed:
		return target == StatusPreparing
	case StatusPreparing:
		return target == StatusReady
	case StatusReady:
		if orderType == TypeDelivery {
			return target == StatusOutForDelivery
		}
		return target == StatusDelivered
	case StatusOutForDelivery:
		return orderType == TypeDelivery && target == StatusDelivered
	}
	return false
}

// ApplyTransition returns a copy of the order with target applied, or
// ErrInvalidTransition without touching the input. Side effects (toasts,
// alerts, remote patches) belong to the caller.
func ApplyTransition(o *Order, target OrderStatus) (*Order, error) {
	if !CanTransition(o.Status, target, o.OrderType) {
		return nil, fmt.Errorf("%w: %s -> %s (%s order)", ErrInvalidTransition, o.Status, target, o.OrderType)
	}
	next := o.Clone()
	next.Status = target
	return next, nil
}
