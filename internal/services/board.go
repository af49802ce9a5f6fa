package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"order-board/internal/domain"
	"order-board/internal/infra"
	"order-board/internal/repository"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrRemoteCommand = errors.New("remote command failed")
)

const (
	defaultHydrateDelay   = 1 * time.Second
	defaultHydrateTimeout = 2 * time.Second
	defaultTickInterval   = 1 * time.Minute
)

// Board owns the working set of active orders for one dashboard. It
// bootstraps from the repository, reconciles change-feed events one at a
// time, serves scoped reads, and executes optimistic status commands.
//
// The working set is guarded by mu: the feed loop and HTTP-driven commands
// are the only writers, readers get deep copies. Events are applied strictly
// in delivery order, last-applied-wins.
type Board struct {
	repo     repository.OrderRepository
	notifier infra.NotifierInterface
	identity domain.Identity

	mu      sync.Mutex
	orders  map[string]*domain.Order
	stats   domain.BoardStats
	urgency map[string]domain.UrgencyBand
	// finished holds ids removed on a terminal status. Stale feed events
	// for these ids must never resurrect them, even when the detail fetch
	// that would reveal the terminal status fails. Bounded by the orders
	// seen in one session.
	finished map[string]struct{}

	hydrateDelay   time.Duration
	hydrateTimeout time.Duration
	tickInterval   time.Duration
	now            func() time.Time
}

func NewBoard(repo repository.OrderRepository, notifier infra.NotifierInterface, identity domain.Identity) *Board {
	return &Board{
		repo:           repo,
		notifier:       notifier,
		identity:       identity,
		orders:         make(map[string]*domain.Order),
		stats:          domain.ComputeStats(nil),
		urgency:        make(map[string]domain.UrgencyBand),
		finished:       make(map[string]struct{}),
		hydrateDelay:   defaultHydrateDelay,
		hydrateTimeout: defaultHydrateTimeout,
		tickInterval:   defaultTickInterval,
		now:            time.Now,
	}
}

// Bootstrap loads the active order set before the feed loop starts, so a
// dashboard connecting late is not blind to existing orders. The store-scope
// constraint is pushed into the query; the in-memory filter still applies on
// every read.
func (b *Board) Bootstrap(ctx context.Context) error {
	var storeID *string
	if b.identity.Role == domain.RoleStoreScoped {
		sid := b.identity.StoreID
		storeID = &sid
	}

	orders, err := b.repo.ListActive(ctx, storeID)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range orders {
		o := orders[i]
		if o.Status.IsTerminal() {
			continue
		}
		b.orders[o.ID] = &o
	}
	b.recomputeLocked()
	b.refreshUrgencyLocked()
	return nil
}

// Run consumes feed events until the channel closes or ctx is cancelled.
// The periodic tick only refreshes urgency bands; it never touches order
// data.
func (b *Board) Run(ctx context.Context, events <-chan domain.FeedEvent) error {
	ticker := time.NewTicker(b.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-events:
			if !ok {
				log.Println("board: feed closed")
				return nil
			}
			b.handleEvent(ctx, evt)
		case <-ticker.C:
			b.mu.Lock()
			b.refreshUrgencyLocked()
			b.mu.Unlock()
		}
	}
}

func (b *Board) handleEvent(ctx context.Context, evt domain.FeedEvent) {
	if evt.Record.ID == "" {
		log.Printf("board: dropping %s event without id", evt.Operation)
		return
	}
	switch evt.Operation {
	case domain.OpInsert:
		b.onInsert(ctx, evt.Record)
	case domain.OpUpdate:
		b.onUpdate(ctx, evt.Record)
	default:
		log.Printf("board: unknown feed operation %q", evt.Operation)
	}
}

// VisibleOrders returns the scope-filtered set ordered oldest first. Entries
// are deep copies; mutating them does not touch the working set.
func (b *Board) VisibleOrders() []domain.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.Order, 0, len(b.orders))
	for _, o := range b.visibleLocked() {
		out = append(out, *o.Clone())
	}
	return out
}

func (b *Board) Stats() domain.BoardStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// Urgencies returns the urgency band per visible order id, as of the last
// tick or mutation.
func (b *Board) Urgencies() map[string]domain.UrgencyBand {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string]domain.UrgencyBand, len(b.urgency))
	for id, band := range b.urgency {
		out[id] = band
	}
	return out
}

// visibleLocked applies the scope filter over the in-memory set. Callers
// hold mu.
func (b *Board) visibleLocked() []*domain.Order {
	out := make([]*domain.Order, 0, len(b.orders))
	for _, o := range b.orders {
		if b.identity.CanSee(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// recomputeLocked folds stats from scratch after every working-set mutation.
func (b *Board) recomputeLocked() {
	visible := b.visibleLocked()
	flat := make([]domain.Order, len(visible))
	for i, o := range visible {
		flat[i] = *o
	}
	b.stats = domain.ComputeStats(flat)
}

func (b *Board) refreshUrgencyLocked() {
	next := make(map[string]domain.UrgencyBand, len(b.orders))
	now := b.now()
	for _, o := range b.visibleLocked() {
		next[o.ID] = domain.ClassifyUrgency(now.Sub(o.CreatedAt))
	}
	b.urgency = next
}
