package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPingProberExpiredContextIsUnreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	reachable := PingProber{}.Probe(ctx, "192.0.2.1")

	assert.False(t, reachable)
	assert.Less(t, time.Since(start), 2*time.Second, "a dead context must not wait out the ping")
}

func TestPingProberMalformedAddressIsUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.False(t, PingProber{}.Probe(ctx, "not-an-address-%%"))
}
