package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"wasteland-companion/internal/device"
)

const (
	DefaultInterval     = 60 * time.Second
	DefaultProbeTimeout = 5 * time.Second
)

// DeviceStore is the slice of the device table the monitor needs: a fresh
// snapshot at the start of every pass, and a per-device status write-back.
type DeviceStore interface {
	ListDevices() ([]*device.Device, error)
	UpdateDeviceStatus(deviceID primitive.ObjectID, status device.Status, lastSeen *time.Time) error
}

// Monitor keeps the reachability status of every device record current. It
// owns its own timer; the hosting process only calls Start and Stop.
type Monitor struct {
	Store        DeviceStore
	Prober       Prober
	Interval     time.Duration // time between passes, DefaultInterval if zero
	ProbeTimeout time.Duration // per-device bound, DefaultProbeTimeout if zero

	mu      sync.Mutex
	running bool
	probing bool
	stop    chan struct{}
}

func NewMonitor(store DeviceStore, prober Prober) *Monitor {
	return &Monitor{
		Store:        store,
		Prober:       prober,
		Interval:     DefaultInterval,
		ProbeTimeout: DefaultProbeTimeout,
	}
}

// Start runs an immediate probing pass and then one pass per interval until
// Stop is called. Calling Start on a running monitor is a no-op. If a pass is
// still in flight when the next tick fires, that tick is skipped rather than
// queued, so passes never overlap.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		log.Warn("liveness monitor already running")
		return
	}
	m.running = true
	m.stop = make(chan struct{})
	stop := m.stop
	m.mu.Unlock()

	log.Infof("starting liveness monitor, interval %s", m.interval())
	go m.loop(stop)
}

// Stop cancels future passes. A pass already in flight finishes normally.
// Calling Stop on a stopped monitor is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.running = false
	close(m.stop)
	log.Info("stopped liveness monitor")
}

func (m *Monitor) loop(stop chan struct{}) {
	m.RequestPass()

	ticker := time.NewTicker(m.interval())
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.RequestPass()
		}
	}
}

// RequestPass runs a pass in the background, unless one is already in
// flight, in which case the request is dropped. The scheduler uses this for
// every tick; the HTTP layer uses it for manual refreshes.
func (m *Monitor) RequestPass() {
	m.mu.Lock()
	if m.probing {
		m.mu.Unlock()
		log.Warn("previous liveness pass still running, skipping tick")
		return
	}
	m.probing = true
	m.mu.Unlock()

	go func() {
		defer func() {
			m.mu.Lock()
			m.probing = false
			m.mu.Unlock()
		}()
		m.RunPass()
	}()
}

// RunPass executes one full pass: fetch the current device list, probe every
// device concurrently, and reconcile each outcome into the store. A failure
// on one device never aborts the others, and no failure escapes the pass.
func (m *Monitor) RunPass() {
	devices, err := m.Store.ListDevices()
	if err != nil {
		log.Errorf("liveness pass aborted, unable to list devices: %v", err)
		return
	}

	var wg sync.WaitGroup
	for _, d := range devices {
		wg.Add(1)
		go func(d *device.Device) {
			defer wg.Done()
			m.checkDevice(d)
		}(d)
	}
	wg.Wait()
}

func (m *Monitor) checkDevice(d *device.Device) {
	ctx, cancel := context.WithTimeout(context.Background(), m.probeTimeout())
	defer cancel()

	reachable := m.Prober.Probe(ctx, d.IPAddress)

	status := device.Status_OFFLINE
	var lastSeen *time.Time
	if reachable {
		status = device.Status_ONLINE
		now := time.Now()
		lastSeen = &now
	}

	err := m.Store.UpdateDeviceStatus(d.ID, status, lastSeen)
	if errors.Is(err, device.ErrDeviceNotFound) {
		// deleted while the pass was running, drop the result
		log.Debugf("device %s vanished mid-pass", d.ID.Hex())
		return
	}
	if err != nil {
		log.Errorf("unable to write status for device %s: %v", d.ID.Hex(), err)
	}
}

func (m *Monitor) interval() time.Duration {
	if m.Interval <= 0 {
		return DefaultInterval
	}
	return m.Interval
}

func (m *Monitor) probeTimeout() time.Duration {
	if m.ProbeTimeout <= 0 {
		return DefaultProbeTimeout
	}
	return m.ProbeTimeout
}
