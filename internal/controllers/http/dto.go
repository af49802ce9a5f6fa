package http

import (
	"order-board/internal/domain"
)

type BoardOrder struct {
	domain.Order
	Urgency domain.UrgencyBand `json:"urgency"`
}

type BoardResponse struct {
	Orders []BoardOrder      `json:"orders"`
	Stats  domain.BoardStats `json:"stats"`
}

type StatusChangeRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

// BoardPrefs is per-dashboard UI state (sound toggles and the like),
// persisted behind explicit read/write endpoints instead of living as
// ambient state in the view layer.
type BoardPrefs struct {
	SoundEnabled bool `json:"soundEnabled"`
	CompactView  bool `json:"compactView"`
}
