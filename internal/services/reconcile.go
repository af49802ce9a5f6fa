package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"order-board/internal/domain"
	"order-board/internal/infra"
)

// onInsert reconciles an insert notification. Insert payloads are often
// header-only, so the entry is hydrated through a short-delay detail fetch
// before it lands in the working set. The delay runs inline in the feed
// loop: a burst of inserts delays later events by the accumulated wait,
// which is the cost of keeping events strictly in delivery order. If
// hydration fails the order is still inserted with the loading marker;
// staff must never be blind to a new order.
func (b *Board) onInsert(ctx context.Context, rec domain.PartialOrder) {
	if rec.Status.IsTerminal() {
		// Stale insert for an already-finished order. Terminal orders never
		// enter (or re-enter) the working set.
		b.removeOrder(rec.ID)
		return
	}
	if b.isFinished(rec.ID) {
		return
	}

	if b.hydrateDelay > 0 {
		select {
		case <-time.After(b.hydrateDelay):
		case <-ctx.Done():
			return
		}
	}

	order := b.hydrate(ctx, rec)
	if order == nil {
		// The order turned terminal between the notification and the fetch.
		b.removeOrder(rec.ID)
		return
	}

	b.mu.Lock()
	_, existed := b.orders[order.ID]
	b.orders[order.ID] = order
	b.recomputeLocked()
	b.refreshUrgencyLocked()
	b.mu.Unlock()

	if !existed {
		b.notifier.Toast(ctx, fmt.Sprintf("New order #%d received", order.OrderNumber), infra.SeverityInfo)
		b.notifier.Alert(ctx, infra.AlertNewOrder)
	}
}

// onUpdate reconciles an update notification. Terminal statuses remove the
// entry outright; anything else refreshes it from the store to pick up item
// changes. A failed refresh degrades to applying the partial's status so the
// board keeps moving; the entry stays marked and is retried on the next
// event for that id.
func (b *Board) onUpdate(ctx context.Context, rec domain.PartialOrder) {
	if rec.Status.IsTerminal() {
		b.removeOrder(rec.ID)
		return
	}
	if b.isFinished(rec.ID) {
		return
	}

	full, err := b.fetchDetail(ctx, rec.ID)
	if err != nil || full == nil {
		if err != nil {
			log.Printf("board: detail refresh for %s failed: %v", rec.ID, err)
		}
		b.applyPartialUpdate(rec)
		return
	}
	if full.Status.IsTerminal() {
		b.removeOrder(full.ID)
		return
	}

	b.mu.Lock()
	prev, existed := b.orders[full.ID]
	var prevStatus domain.OrderStatus
	if existed {
		prevStatus = prev.Status
	}
	b.orders[full.ID] = full
	b.recomputeLocked()
	b.refreshUrgencyLocked()
	b.mu.Unlock()

	if existed && prevStatus != domain.StatusReady && full.Status == domain.StatusReady {
		b.notifier.Toast(ctx, fmt.Sprintf("Order #%d is ready for pickup", full.OrderNumber), infra.SeveritySuccess)
		b.notifier.Alert(ctx, infra.AlertOrderReady)
	}
}

// applyPartialUpdate mutates the existing entry with whatever the
// notification carried. An update for an unknown id inserts a header-only
// entry; de-duplication works both directions.
func (b *Board) applyPartialUpdate(rec domain.PartialOrder) {
	b.mu.Lock()
	existing, ok := b.orders[rec.ID]
	if ok {
		if rec.Status != "" {
			existing.Status = rec.Status
		}
	} else {
		degraded := rec.Order()
		degraded.ItemsLoading = true
		b.orders[rec.ID] = degraded
	}
	b.recomputeLocked()
	b.refreshUrgencyLocked()
	b.mu.Unlock()
}

// hydrate fetches the full order for an insert, falling back to a
// header-only entry with the loading marker when the fetch fails. Returns
// nil when the order turned terminal between the notification and the
// fetch.
func (b *Board) hydrate(ctx context.Context, rec domain.PartialOrder) *domain.Order {
	full, err := b.fetchDetail(ctx, rec.ID)
	if err != nil || full == nil {
		if err != nil {
			log.Printf("board: hydrating %s failed, inserting header only: %v", rec.ID, err)
		}
		degraded := rec.Order()
		degraded.ItemsLoading = true
		return degraded
	}
	if full.Status.IsTerminal() {
		return nil
	}
	return full
}

func (b *Board) fetchDetail(ctx context.Context, id string) (*domain.Order, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, b.hydrateTimeout)
	defer cancel()
	return b.repo.GetOrderWithItems(fetchCtx, id)
}

// removeOrder drops an entry that reached a terminal status and remembers
// the id so later stale events cannot resurrect it. Idempotent.
func (b *Board) removeOrder(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.finished[id] = struct{}{}
	if _, ok := b.orders[id]; !ok {
		return
	}
	delete(b.orders, id)
	b.recomputeLocked()
	b.refreshUrgencyLocked()
}

func (b *Board) isFinished(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.finished[id]
	return ok
}
