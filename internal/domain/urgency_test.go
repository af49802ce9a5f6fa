package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyUrgency(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    UrgencyBand
	}{
		{0, UrgencyNominal},
		{14*time.Minute + 59*time.Second, UrgencyNominal},
		{15 * time.Minute, UrgencyWarning},
		{29*time.Minute + 59*time.Second, UrgencyWarning},
		{30 * time.Minute, UrgencyUrgent},
		{2 * time.Hour, UrgencyUrgent},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyUrgency(tt.elapsed), "elapsed %s", tt.elapsed)
	}
}
