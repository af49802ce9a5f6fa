package domain

import "github.com/shopspring/decimal"

// BoardStats is derived from the visible order set. pending counts both
// pending and confirmed orders, preparing counts preparing only, and revenue
// sums total_amount across the set (terminal orders are never in the set).
type BoardStats struct {
	PendingCount   int             `json:"pendingCount"`
	PreparingCount int             `json:"preparingCount"`
	RevenueSum     decimal.Decimal `json:"revenueSum"`
}

// ComputeStats is a full fold over the given orders. It is recomputed after
// every mutation of the visible set; there are no incremental counters to
// drift out of sync.
func ComputeStats(orders []Order) BoardStats {
	stats := BoardStats{RevenueSum: decimal.Zero}
	for _, o := range orders {
		switch o.Status {
		case StatusPending, StatusConfirmed:
			stats.PendingCount++
		case StatusPreparing:
			stats.PreparingCount++
		}
		stats.RevenueSum = stats.RevenueSum.Add(o.TotalAmount)
	}
	return stats
}
