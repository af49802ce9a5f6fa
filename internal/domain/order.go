package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type OrderType string

const (
	TypeDineIn   OrderType = "dine_in"
	TypeTakeaway OrderType = "takeaway"
	TypeDelivery OrderType = "delivery"
)

type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;size:36"`
	OrderNumber     int64           `json:"orderNumber" gorm:"index"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);not null;index"`
	OrderType       OrderType       `json:"orderType" gorm:"type:varchar(10);not null"`
	StoreID         *string         `json:"storeId" gorm:"size:36;index"`
	CustomerName    string          `json:"customerName"`
	CustomerPhone   string          `json:"customerPhone"`
	DeliveryAddress string          `json:"deliveryAddress"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	Notes           string          `json:"notes" gorm:"type:text"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"autoCreateTime"`

	// ItemsLoading marks an entry whose detail fetch failed; items are
	// unknown, not empty. Never persisted.
	ItemsLoading bool `json:"itemsLoading,omitempty" gorm:"-"`
}

type OrderItem struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID     string          `json:"orderId" gorm:"size:36;index"`
	ProductName string          `json:"productName" gorm:"not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2);not null"`
	Options     ItemOptions     `json:"options" gorm:"type:json"`
}

// Clone returns a deep copy. The optimistic executor snapshots through it,
// so every mutable field must be copied, not aliased.
func (o *Order) Clone() *Order {
	c := *o
	if o.StoreID != nil {
		sid := *o.StoreID
		c.StoreID = &sid
	}
	if o.Items != nil {
		c.Items = make([]OrderItem, len(o.Items))
		for i, it := range o.Items {
			c.Items[i] = it.clone()
		}
	}
	return &c
}

func (it OrderItem) clone() OrderItem {
	c := it
	c.Options = it.Options.clone()
	return c
}
