package repository

import (
	"context"

	"order-board/internal/domain"
)

type OrderRepository interface {
	// ListActive returns non-terminal orders, optionally constrained to one
	// store at query time. Feed notifications are unscoped, so callers must
	// still filter defensively.
	ListActive(ctx context.Context, storeID *string) ([]domain.Order, error)
	// GetOrderWithItems hydrates a single order including its items.
	// Returns nil, nil when the order does not exist.
	GetOrderWithItems(ctx context.Context, id string) (*domain.Order, error)
	// PatchStatus mutates the status field only; no other order field is
	// writable through this path.
	PatchStatus(ctx context.Context, id string, status domain.OrderStatus) error
}
