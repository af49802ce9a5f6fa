package domain

import "time"

// UrgencyBand classifies how long an order has been waiting. Presentation
// state only; never persisted and never sent remotely.
type UrgencyBand string

const (
	UrgencyNominal UrgencyBand = "nominal" // under 15 minutes
	UrgencyWarning UrgencyBand = "warning" // under 30 minutes
	UrgencyUrgent  UrgencyBand = "urgent"  // 30 minutes or more
)

func ClassifyUrgency(elapsed time.Duration) UrgencyBand {
	switch {
	case elapsed < 15*time.Minute:
		return UrgencyNominal
	case elapsed < 30*time.Minute:
		return UrgencyWarning
	}
	return UrgencyUrgent
}
