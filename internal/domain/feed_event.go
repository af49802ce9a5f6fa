package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type FeedOperation string

const (
	OpInsert FeedOperation = "insert"
	OpUpdate FeedOperation = "update"
)

// FeedEvent is one row-change notification from the backing store's change
// feed for the orders relation.
type FeedEvent struct {
	Operation FeedOperation `json:"operation"`
	Table     string        `json:"table"`
	Record    PartialOrder  `json:"record"`
}

// PartialOrder is the record carried by a feed notification. Inserts often
// arrive header-only (no items); any field other than ID may be absent.
type PartialOrder struct {
	ID              string          `json:"id"`
	OrderNumber     int64           `json:"orderNumber"`
	Status          OrderStatus     `json:"status"`
	OrderType       OrderType       `json:"orderType"`
	StoreID         *string         `json:"storeId"`
	CustomerName    string          `json:"customerName"`
	CustomerPhone   string          `json:"customerPhone"`
	DeliveryAddress string          `json:"deliveryAddress"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	Notes           string          `json:"notes"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Order builds a header-only Order from the partial record, used when the
// detail fetch could not hydrate the entry.
func (p PartialOrder) Order() *Order {
	return &Order{
		ID:              p.ID,
		OrderNumber:     p.OrderNumber,
		Status:          p.Status,
		OrderType:       p.OrderType,
		StoreID:         p.StoreID,
		CustomerName:    p.CustomerName,
		CustomerPhone:   p.CustomerPhone,
		DeliveryAddress: p.DeliveryAddress,
		TotalAmount:     p.TotalAmount,
		PaymentMethod:   p.PaymentMethod,
		PaymentStatus:   p.PaymentStatus,
		Notes:           p.Notes,
		Items:           p.Items,
		CreatedAt:       p.CreatedAt,
	}
}
