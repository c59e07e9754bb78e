package workers

import (
	"context"
	"os/exec"
)

// Prober issues a single reachability check against a network address.
// Anything that goes wrong (timeout, unreachable host, malformed address,
// missing tooling) is just "unreachable"; there is no error to escalate.
type Prober interface {
	Probe(ctx context.Context, address string) bool
}

// PingProber probes with one ICMP echo via the system ping binary. The -W
// wait bound keeps a dead host from holding a pass hostage; ctx carries the
// monitor's own per-probe deadline on top of that.
type PingProber struct{}

func (PingProber) Probe(ctx context.Context, address string) bool {
	cmd := exec.CommandContext(ctx, "ping", "-c", "1", "-W", "2", address)
	return cmd.Run() == nil
}
