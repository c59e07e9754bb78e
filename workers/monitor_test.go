package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"wasteland-companion/internal/device"
)

type fakeStore struct {
	mu        sync.Mutex
	devices   map[primitive.ObjectID]*device.Device
	listErr   error
	updateErr map[primitive.ObjectID]error
	listCalls int32
	updates   int32
}

func newFakeStore(devices ...*device.Device) *fakeStore {
	s := &fakeStore{
		devices:   make(map[primitive.ObjectID]*device.Device),
		updateErr: make(map[primitive.ObjectID]error),
	}
	for _, d := range devices {
		s.devices[d.ID] = d
	}
	return s
}

func (s *fakeStore) ListDevices() ([]*device.Device, error) {
	atomic.AddInt32(&s.listCalls, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*device.Device
	for _, d := range s.devices {
		snapshot := *d
		out = append(out, &snapshot)
	}
	return out, nil
}

func (s *fakeStore) UpdateDeviceStatus(deviceID primitive.ObjectID, status device.Status, lastSeen *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.updateErr[deviceID]; ok {
		return err
	}
	d, ok := s.devices[deviceID]
	if !ok {
		return device.ErrDeviceNotFound
	}
	now := time.Now()
	d.Status = status
	d.LastCheckedAt = &now
	if lastSeen != nil {
		d.LastSeenAt = lastSeen
	}
	atomic.AddInt32(&s.updates, 1)
	return nil
}

func (s *fakeStore) get(deviceID primitive.ObjectID) device.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.devices[deviceID]
}

type fakeProber struct {
	reachable map[string]bool
}

func (p *fakeProber) Probe(_ context.Context, address string) bool {
	return p.reachable[address]
}

// blockingProber holds every probe until released, to simulate a slow pass.
type blockingProber struct {
	release chan struct{}
}

func (p *blockingProber) Probe(ctx context.Context, _ string) bool {
	select {
	case <-p.release:
		return true
	case <-ctx.Done():
		return false
	}
}

func testDevice(name, ip string) *device.Device {
	return &device.Device{
		ID:        primitive.NewObjectID(),
		Name:      name,
		IPAddress: ip,
		Status:    device.Status_UNKNOWN,
	}
}

func TestRunPassReconcilesReachability(t *testing.T) {
	seen := time.Now().Add(-time.Hour)
	a := testDevice("nas", "192.168.1.10")
	b := testDevice("printer", "192.168.1.99")
	b.Status = device.Status_ONLINE
	b.LastSeenAt = &seen

	store := newFakeStore(a, b)
	m := NewMonitor(store, &fakeProber{reachable: map[string]bool{"192.168.1.10": true}})

	start := time.Now()
	m.RunPass()

	gotA := store.get(a.ID)
	assert.Equal(t, device.Status_ONLINE, gotA.Status)
	require.NotNil(t, gotA.LastSeenAt)
	require.NotNil(t, gotA.LastCheckedAt)
	assert.WithinDuration(t, start, *gotA.LastSeenAt, 5*time.Second)
	assert.WithinDuration(t, start, *gotA.LastCheckedAt, 5*time.Second)

	gotB := store.get(b.ID)
	assert.Equal(t, device.Status_OFFLINE, gotB.Status)
	require.NotNil(t, gotB.LastCheckedAt)
	assert.WithinDuration(t, start, *gotB.LastCheckedAt, 5*time.Second)
	require.NotNil(t, gotB.LastSeenAt)
	assert.Equal(t, seen, *gotB.LastSeenAt, "lastSeenAt must not move for an unreachable device")
}

func TestRunPassNeverSeenDeviceStaysUnseen(t *testing.T) {
	d := testDevice("camera", "192.168.1.50")
	store := newFakeStore(d)
	m := NewMonitor(store, &fakeProber{reachable: map[string]bool{}})

	m.RunPass()

	got := store.get(d.ID)
	assert.Equal(t, device.Status_OFFLINE, got.Status)
	assert.Nil(t, got.LastSeenAt)
	assert.NotNil(t, got.LastCheckedAt)
}

func TestRunPassEmptyStore(t *testing.T) {
	store := newFakeStore()
	m := NewMonitor(store, &fakeProber{reachable: map[string]bool{}})

	m.RunPass()

	assert.EqualValues(t, 1, atomic.LoadInt32(&store.listCalls))
	assert.EqualValues(t, 0, atomic.LoadInt32(&store.updates))
}

func TestRunPassListFailureAbortsQuietly(t *testing.T) {
	store := newFakeStore(testDevice("nas", "192.168.1.10"))
	store.listErr = errors.New("connection reset")
	m := NewMonitor(store, &fakeProber{reachable: map[string]bool{"192.168.1.10": true}})

	m.RunPass()

	assert.EqualValues(t, 0, atomic.LoadInt32(&store.updates))
}

func TestRunPassDeletedDeviceDoesNotFailOthers(t *testing.T) {
	a := testDevice("nas", "192.168.1.10")
	b := testDevice("printer", "192.168.1.20")
	ghost := testDevice("old-laptop", "192.168.1.30")

	store := newFakeStore(a, b, ghost)
	m := NewMonitor(store, &fakeProber{reachable: map[string]bool{
		"192.168.1.10": true,
		"192.168.1.20": true,
		"192.168.1.30": true,
	}})

	// delete ghost between the snapshot and the write-back
	devices, err := store.ListDevices()
	require.NoError(t, err)
	require.Len(t, devices, 3)
	store.mu.Lock()
	delete(store.devices, ghost.ID)
	store.mu.Unlock()

	for _, d := range devices {
		m.checkDevice(d)
	}

	assert.Equal(t, device.Status_ONLINE, store.get(a.ID).Status)
	assert.Equal(t, device.Status_ONLINE, store.get(b.ID).Status)
	assert.EqualValues(t, 2, atomic.LoadInt32(&store.updates))
}

func TestRunPassWriteFailureIsolatedPerDevice(t *testing.T) {
	a := testDevice("nas", "192.168.1.10")
	b := testDevice("printer", "192.168.1.20")

	store := newFakeStore(a, b)
	store.updateErr[a.ID] = errors.New("write timeout")
	m := NewMonitor(store, &fakeProber{reachable: map[string]bool{"192.168.1.20": true}})

	m.RunPass()

	assert.Equal(t, device.Status_UNKNOWN, store.get(a.ID).Status)
	assert.Equal(t, device.Status_ONLINE, store.get(b.ID).Status)
}

func TestRunPassIsIdempotentForOfflineDevices(t *testing.T) {
	d := testDevice("printer", "192.168.1.99")
	store := newFakeStore(d)
	m := NewMonitor(store, &fakeProber{reachable: map[string]bool{}})

	m.RunPass()
	first := store.get(d.ID)
	require.NotNil(t, first.LastCheckedAt)

	time.Sleep(10 * time.Millisecond)
	m.RunPass()
	second := store.get(d.ID)

	assert.Equal(t, device.Status_OFFLINE, second.Status)
	assert.True(t, second.LastCheckedAt.After(*first.LastCheckedAt))
	assert.Nil(t, second.LastSeenAt)
}

func TestStartIsIdempotent(t *testing.T) {
	store := newFakeStore()
	m := NewMonitor(store, &fakeProber{reachable: map[string]bool{}})
	m.Interval = time.Hour

	m.Start()
	m.Start()
	defer m.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&store.listCalls) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 1, atomic.LoadInt32(&store.listCalls), "second Start must not schedule a second loop")
}

func TestStopThenStartResumesWithImmediatePass(t *testing.T) {
	store := newFakeStore()
	m := NewMonitor(store, &fakeProber{reachable: map[string]bool{}})
	m.Interval = time.Hour

	m.Start()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&store.listCalls) == 1
	}, time.Second, 5*time.Millisecond)

	m.Stop()
	// let the completed pass clear its in-flight flag before restarting
	time.Sleep(20 * time.Millisecond)
	m.Start()
	defer m.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&store.listCalls) == 2
	}, time.Second, 5*time.Millisecond, "restart must probe immediately, not after the interval")
}

func TestStopIsIdempotent(t *testing.T) {
	store := newFakeStore()
	m := NewMonitor(store, &fakeProber{reachable: map[string]bool{}})
	m.Interval = time.Hour

	m.Stop() // never started

	m.Start()
	m.Stop()
	m.Stop()
}

func TestSlowPassSkipsTicks(t *testing.T) {
	d := testDevice("nas", "192.168.1.10")
	store := newFakeStore(d)
	prober := &blockingProber{release: make(chan struct{})}

	m := NewMonitor(store, prober)
	m.Interval = 10 * time.Millisecond
	m.ProbeTimeout = time.Minute

	m.Start()
	defer m.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&store.listCalls) == 1
	}, time.Second, time.Millisecond)

	// several ticks fire while the first pass is stuck in its probe; all of
	// them must be skipped rather than piling up overlapping passes
	time.Sleep(100 * time.Millisecond)
	assert.EqualValues(t, 1, atomic.LoadInt32(&store.listCalls))

	close(prober.release)
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&store.listCalls) >= 2
	}, time.Second, time.Millisecond)
}
