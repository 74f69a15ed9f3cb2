package db

import (
	"testing"
)

func TestPoolStats_States(t *testing.T) {
	tests := []struct {
		name    string
		stats   PoolStats
		healthy bool
	}{
		{
			name: "serving",
			stats: PoolStats{
				TotalConns:      10,
				IdleConns:       5,
				AcquiredConns:   5,
				MaxConns:        20,
				AcquireCount:    100,
				AcquireDuration: "1.5s",
				Healthy:         true,
			},
			healthy: true,
		},
		{
			name: "drained",
			stats: PoolStats{
				MaxConns:        20,
				AcquireDuration: "0s",
			},
			healthy: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.stats.Healthy != tc.healthy {
				t.Errorf("expected Healthy=%v, got %v", tc.healthy, tc.stats.Healthy)
			}
			if tc.stats.IdleConns+tc.stats.AcquiredConns != tc.stats.TotalConns {
				t.Errorf("idle+acquired should equal total, got %d+%d vs %d",
					tc.stats.IdleConns, tc.stats.AcquiredConns, tc.stats.TotalConns)
			}
		})
	}
}

func TestHealthServiceName(t *testing.T) {
	if serviceName != "hms-server" {
		t.Errorf("health payload should identify hms-server, got %s", serviceName)
	}
}
