package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rackcity/shared/geo"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantMiles              float64
		delta                  float64
	}{
		{
			name: "same point",
			lat1: 30.2672, lon1: -97.7431,
			lat2: 30.2672, lon2: -97.7431,
			wantMiles: 0,
			delta:     0.001,
		},
		{
			name: "austin to dallas",
			lat1: 30.2672, lon1: -97.7431,
			lat2: 32.7767, lon2: -96.7970,
			wantMiles: 182,
			delta:     3,
		},
		{
			name: "new york to los angeles",
			lat1: 40.7128, lon1: -74.0060,
			lat2: 34.0522, lon2: -118.2437,
			wantMiles: 2445,
			delta:     15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance := geo.Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)

			assert.InDelta(t, tt.wantMiles, distance, tt.delta)
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	forward := geo.Distance(30.2672, -97.7431, 29.4241, -98.4936)
	backward := geo.Distance(29.4241, -98.4936, 30.2672, -97.7431)

	assert.InDelta(t, forward, backward, 0.0001)
}
