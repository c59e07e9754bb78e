package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchedServicesFromEnv(t *testing.T) {
	tests := []struct {
		env      string
		expected []string
	}{
		{"", []string{"ssh", "docker", "cron"}},
		{"nginx", []string{"nginx"}},
		{"nginx, smbd ,jellyfin", []string{"nginx", "smbd", "jellyfin"}},
		{" , ,", []string{"ssh", "docker", "cron"}},
	}

	for _, test := range tests {
		t.Setenv("WATCHED_SERVICES", test.env)
		assert.Equal(t, test.expected, WatchedServices(), "WATCHED_SERVICES=%q", test.env)
	}
}

func TestCollectNeverFails(t *testing.T) {
	m := Collect()

	assert.NotNil(t, m)
	assert.False(t, m.CollectedAt.IsZero())
	assert.GreaterOrEqual(t, m.CPUPercent, 0.0)
	assert.GreaterOrEqual(t, m.MemoryPercent, 0.0)
	assert.GreaterOrEqual(t, m.DiskPercent, 0.0)
}

func TestCheckServicesKeepsOrder(t *testing.T) {
	statuses := CheckServices([]string{"ssh", "definitely-not-a-real-unit"})

	assert.Len(t, statuses, 2)
	assert.Equal(t, "ssh", statuses[0].Name)
	assert.Equal(t, "definitely-not-a-real-unit", statuses[1].Name)
	assert.False(t, statuses[1].Running)
}
