package services

import (
	"context"
	"fmt"

	"order-board/internal/domain"
	"order-board/internal/infra"
)

// RequestStatusChange applies a status change optimistically, then issues
// the remote patch. The transition is validated before anything mutates. On
// remote failure the snapshot taken before the mutation is restored exactly,
// so the visible state after a failed command is identical to the state
// before it. On success nothing further happens here: the eventual feed
// notification reconciles redundantly as a no-op.
func (b *Board) RequestStatusChange(ctx context.Context, orderID string, target domain.OrderStatus) error {
	b.mu.Lock()
	current, ok := b.orders[orderID]
	if !ok {
		b.mu.Unlock()
		return ErrOrderNotFound
	}

	next, err := domain.ApplyTransition(current, target)
	if err != nil {
		b.mu.Unlock()
		return err
	}

	// ApplyTransition clones, so current doubles as the rollback snapshot.
	snapshot := current
	if target.IsTerminal() {
		delete(b.orders, orderID)
		b.finished[orderID] = struct{}{}
	} else {
		b.orders[orderID] = next
	}
	b.recomputeLocked()
	b.refreshUrgencyLocked()
	orderNumber := snapshot.OrderNumber
	b.mu.Unlock()

	b.notifier.Toast(ctx, confirmationMessage(target, orderNumber), infra.SeveritySuccess)

	if err := b.repo.PatchStatus(ctx, orderID, target); err != nil {
		b.mu.Lock()
		b.orders[orderID] = snapshot
		delete(b.finished, orderID)
		b.recomputeLocked()
		b.refreshUrgencyLocked()
		b.mu.Unlock()

		b.notifier.Toast(ctx, fmt.Sprintf("Could not update order #%d, change reverted", orderNumber), infra.SeverityError)
		return fmt.Errorf("%w: %v", ErrRemoteCommand, err)
	}
	return nil
}

// confirmationMessage picks the local toast shown before remote
// confirmation arrives. Responsiveness over certainty, on purpose.
func confirmationMessage(target domain.OrderStatus, orderNumber int64) string {
	switch target {
	case domain.StatusConfirmed:
		return fmt.Sprintf("Order #%d confirmed", orderNumber)
	case domain.StatusPreparing:
		return fmt.Sprintf("Order #%d sent to kitchen", orderNumber)
	case domain.StatusReady:
		return fmt.Sprintf("Order #%d marked ready", orderNumber)
	case domain.StatusOutForDelivery:
		return fmt.Sprintf("Order #%d out for delivery", orderNumber)
	case domain.StatusDelivered:
		return fmt.Sprintf("Order #%d completed", orderNumber)
	case domain.StatusCancelled:
		return fmt.Sprintf("Order #%d cancelled", orderNumber)
	}
	return fmt.Sprintf("Order #%d updated", orderNumber)
}
