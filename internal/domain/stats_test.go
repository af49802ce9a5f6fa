package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func statOrder(id string, status OrderStatus, total string) Order {
	return Order{ID: id, Status: status, TotalAmount: decimal.RequireFromString(total)}
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name          string
		orders        []Order
		wantPending   int
		wantPreparing int
		wantRevenue   string
	}{
		{
			name:        "empty set",
			orders:      nil,
			wantRevenue: "0",
		},
		{
			name: "mixed statuses",
			orders: []Order{
				statOrder("a", StatusPending, "120"),
				statOrder("b", StatusConfirmed, "35.50"),
				statOrder("c", StatusPreparing, "19.90"),
				statOrder("d", StatusReady, "42"),
			},
			wantPending:   2,
			wantPreparing: 1,
			wantRevenue:   "217.40",
		},
		{
			name: "only pending and preparing",
			orders: []Order{
				statOrder("a", StatusPending, "10"),
				statOrder("b", StatusPreparing, "20"),
			},
			wantPending:   1,
			wantPreparing: 1,
			wantRevenue:   "30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStats(tt.orders)

			assert.Equal(t, tt.wantPending, stats.PendingCount)
			assert.Equal(t, tt.wantPreparing, stats.PreparingCount)
			assert.True(t, stats.RevenueSum.Equal(decimal.RequireFromString(tt.wantRevenue)),
				"revenue %s, want %s", stats.RevenueSum, tt.wantRevenue)

			// Counts never exceed the set size, and match it exactly when no
			// other statuses are present.
			assert.LessOrEqual(t, stats.PendingCount+stats.PreparingCount, len(tt.orders))
		})
	}
}

func TestComputeStats_Idempotent(t *testing.T) {
	orders := []Order{
		statOrder("a", StatusPending, "12.30"),
		statOrder("b", StatusPreparing, "7.70"),
	}

	first := ComputeStats(orders)
	second := ComputeStats(orders)

	assert.Equal(t, first.PendingCount, second.PendingCount)
	assert.Equal(t, first.PreparingCount, second.PreparingCount)
	assert.True(t, first.RevenueSum.Equal(second.RevenueSum))
}
