package services

import (
	"time"

	"order-board/internal/domain"
	"order-board/internal/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const (
	TestOrderID  = "ord-1"
	TestStoreID  = "S1"
	OtherStoreID = "S2"
)

// newTestBoard disables the hydration delay so reconciliation runs
// synchronously under test.
func newTestBoard(repo *mocks.MockOrderRepository, notifier *mocks.MockNotifier, identity domain.Identity) *Board {
	b := NewBoard(repo, notifier, identity)
	b.hydrateDelay = 0
	return b
}

// relaxedNotifier accepts any toast or alert; tests that care about
// notifications set explicit expectations instead.
func relaxedNotifier() *mocks.MockNotifier {
	n := new(mocks.MockNotifier)
	n.On("Toast", mock.Anything, mock.Anything, mock.Anything).Maybe()
	n.On("Alert", mock.Anything, mock.Anything).Maybe()
	return n
}

func adminIdentity() domain.Identity {
	return domain.Identity{Role: domain.RoleGlobalAdmin}
}

func storeIdentity(storeID string) domain.Identity {
	return domain.Identity{Role: domain.RoleStoreScoped, StoreID: storeID}
}

func strPtr(s string) *string { return &s }

func CreateMockOrder(id string, number int64, storeID *string, status domain.OrderStatus, orderType domain.OrderType, total string) *domain.Order {
	return &domain.Order{
		ID:            id,
		OrderNumber:   number,
		Status:        status,
		OrderType:     orderType,
		StoreID:       storeID,
		CustomerName:  "Test Customer",
		CustomerPhone: "555-0100",
		TotalAmount:   decimal.RequireFromString(total),
		PaymentMethod: "card",
		PaymentStatus: "paid",
		CreatedAt:     time.Now(),
		Items: []domain.OrderItem{
			{ProductName: "Margherita", Quantity: 1, UnitPrice: decimal.RequireFromString(total)},
		},
	}
}

func insertEvent(rec domain.PartialOrder) domain.FeedEvent {
	return domain.FeedEvent{Operation: domain.OpInsert, Table: "orders", Record: rec}
}

func updateEvent(rec domain.PartialOrder) domain.FeedEvent {
	return domain.FeedEvent{Operation: domain.OpUpdate, Table: "orders", Record: rec}
}
