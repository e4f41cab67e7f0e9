package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/NitishVankina/ServerPet/internal/errors"
	"github.com/NitishVankina/ServerPet/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is a scripted metrics source. Values can be swapped and reads
// forced to fail between ticks.
type fakeSource struct {
	mu       sync.Mutex
	cpu      float64
	ram      float64
	disk     float64
	failRead bool
	sent     uint64
	recv     uint64
	perTick  uint64
}

func newFakeSource() *fakeSource {
	return &fakeSource{cpu: 20, ram: 40, disk: 60, perTick: 1024}
}

func (f *fakeSource) set(cpu, ram, disk float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cpu, f.ram, f.disk = cpu, ram, disk
}

func (f *fakeSource) setFailing(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failRead = fail
}

func (f *fakeSource) CPUPercent(context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead {
		return 0, errors.New(metrics.ErrCPURead)
	}
	return f.cpu, nil
}

func (f *fakeSource) RAMPercent() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead {
		return 0, errors.New(metrics.ErrRAMRead)
	}
	return f.ram, nil
}

func (f *fakeSource) DiskPercent(string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead {
		return 0, errors.New(metrics.ErrDiskRead)
	}
	return f.disk, nil
}

func (f *fakeSource) NetworkCounters() (metrics.Counters, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead {
		return metrics.Counters{}, errors.New(metrics.ErrNetRead)
	}
	f.sent += f.perTick
	f.recv += f.perTick
	return metrics.Counters{BytesSent: f.sent, BytesRecv: f.recv, Timestamp: time.Now()}, nil
}

func testEngine(t *testing.T, src metrics.Source) (*Engine, <-chan Snapshot) {
	t.Helper()

	opts := DefaultOptions()
	opts.Interval = 5 * time.Millisecond
	opts.HistorySize = 10

	e, err := New(src, opts)
	require.NoError(t, err)

	ch := make(chan Snapshot, 256)
	e.OnSnapshot(func(s Snapshot) { ch <- s })

	return e, ch
}

func collect(t *testing.T, ch <-chan Snapshot, n int) []Snapshot {
	t.Helper()

	out := make([]Snapshot, 0, n)
	deadline := time.After(3 * time.Second)
	for len(out) < n {
		select {
		case s := <-ch:
			out = append(out, s)
		case <-deadline:
			t.Fatalf("timed out after %d of %d snapshots", len(out), n)
		}
	}

	return out
}

func TestNewValidation(t *testing.T) {
	src := newFakeSource()

	_, err := New(nil, DefaultOptions())
	assert.Error(t, err)

	opts := DefaultOptions()
	opts.Interval = 0
	_, err = New(src, opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.CriticalThreshold = 101
	_, err = New(src, opts)
	assert.Error(t, err)
}

func TestEngineProducesChronologicalSnapshots(t *testing.T) {
	src := newFakeSource()
	e, ch := testEngine(t, src)

	require.NoError(t, e.Start())
	defer func() { _ = e.Stop() }()

	snaps := collect(t, ch, 5)

	for i, s := range snaps {
		assert.InDelta(t, 20.0, s.CPU, 0.001)
		assert.InDelta(t, 40.0, s.RAM, 0.001)
		assert.InDelta(t, 60.0, s.Disk, 0.001)
		assert.Equal(t, MoodHappy, s.Mood)
		assert.False(t, s.AlertFired)
		if i > 0 {
			assert.False(t, s.Timestamp.Before(snaps[i-1].Timestamp),
				"snapshots arrive in chronological order")
			assert.False(t, s.MoodChanged)
		} else {
			assert.True(t, s.MoodChanged, "first snapshot reports a mood change")
		}
	}
}

func TestEngineSkipsFailedTicks(t *testing.T) {
	src := newFakeSource()
	e, ch := testEngine(t, src)

	require.NoError(t, e.Start())
	defer func() { _ = e.Stop() }()

	collect(t, ch, 2)

	src.setFailing(true)
	time.Sleep(50 * time.Millisecond)
	for len(ch) > 0 {
		<-ch // drain snapshots produced before the failure took effect
	}

	select {
	case s := <-ch:
		t.Fatalf("unexpected snapshot during failure window: %+v", s)
	case <-time.After(30 * time.Millisecond):
	}

	recordedBefore := time.Duration(0)
	for _, m := range Moods() {
		recordedBefore += e.CurrentStats().TimeInState[m]
	}

	src.setFailing(false)
	snaps := collect(t, ch, 2)
	assert.Equal(t, MoodHappy, snaps[0].Mood, "sampling resumes cleanly")
	assert.Greater(t, e.CurrentStats().TotalElapsed, recordedBefore,
		"elapsed time advances even across skipped ticks")
}

func TestEngineConfigure(t *testing.T) {
	src := newFakeSource()
	src.set(60, 40, 60)
	e, ch := testEngine(t, src)

	err := e.Configure(49, true)
	require.Error(t, err, "threshold below range is rejected")
	var appErr errors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errors.ErrInvalidThreshold, appErr.Code())
	assert.InDelta(t, 90.0, e.Threshold(), 0.001, "prior configuration retained")

	require.NoError(t, e.Start())
	defer func() { _ = e.Stop() }()

	snaps := collect(t, ch, 1)
	assert.Equal(t, MoodContent, snaps[0].Mood)

	// Lowering the threshold below the CPU reading applies on the next tick.
	require.NoError(t, e.Configure(55, true))

	deadline := time.After(time.Second)
	for {
		select {
		case s := <-ch:
			if s.Mood == MoodCritical {
				return
			}
		case <-deadline:
			t.Fatal("new threshold never applied")
		}
	}
}

func TestEngineAlertOncePerCriticalRun(t *testing.T) {
	src := newFakeSource()
	src.set(95, 40, 60)
	e, ch := testEngine(t, src)

	require.NoError(t, e.Start())
	defer func() { _ = e.Stop() }()

	snaps := collect(t, ch, 4)
	assert.True(t, snaps[0].AlertFired, "first critical tick fires")
	for _, s := range snaps[1:] {
		assert.False(t, s.AlertFired, "same critical run stays quiet")
	}

	// Recover, then breach again: exactly one more alert.
	src.set(20, 40, 60)
	deadline := time.After(time.Second)
	for {
		var s Snapshot
		select {
		case s = <-ch:
		case <-deadline:
			t.Fatal("never recovered from critical")
		}
		if s.Mood != MoodCritical {
			break
		}
	}

	src.set(95, 40, 60)
	deadline = time.After(time.Second)
	for {
		var s Snapshot
		select {
		case s = <-ch:
		case <-deadline:
			t.Fatal("second critical run never fired")
		}
		if s.AlertFired {
			return
		}
	}
}

func TestEngineLifecycle(t *testing.T) {
	src := newFakeSource()
	e, ch := testEngine(t, src)

	err := e.Stop()
	require.Error(t, err, "stopping a stopped engine is reported, not a crash")

	require.NoError(t, e.Start())

	err = e.Start()
	require.Error(t, err, "double start is reported, not a crash")
	var appErr errors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errors.ErrAlreadyRunning, appErr.Code())

	collect(t, ch, 3)
	require.NoError(t, e.Stop())
	assert.NotEmpty(t, e.CPUHistory())

	// Restart begins a fresh session: no stale history or stats.
	require.NoError(t, e.Start())
	defer func() { _ = e.Stop() }()

	for len(ch) > 0 {
		<-ch
	}
	collect(t, ch, 2)
	assert.Less(t, len(e.CPUHistory()), 6, "stale history was not resurrected")

	recorded := time.Duration(0)
	stats := e.CurrentStats()
	for _, m := range Moods() {
		recorded += stats.TimeInState[m]
	}
	assert.Less(t, recorded, time.Second, "stats restarted with the session")
}

func TestEngineStatsAccumulate(t *testing.T) {
	src := newFakeSource()
	e, ch := testEngine(t, src)

	require.NoError(t, e.Start())
	defer func() { _ = e.Stop() }()

	snaps := collect(t, ch, 6)

	stats := e.CurrentStats()
	assert.InDelta(t, 20.0, stats.MaxCPU, 0.001)
	assert.InDelta(t, 40.0, stats.MaxRAM, 0.001)
	assert.InDelta(t, 60.0, stats.MaxDisk, 0.001)

	recorded := time.Duration(0)
	for _, m := range Moods() {
		recorded += stats.TimeInState[m]
	}
	// One interval per successful tick, all booked to happy.
	assert.GreaterOrEqual(t, recorded, time.Duration(len(snaps))*5*time.Millisecond)
	assert.Equal(t, recorded, stats.TimeInState[MoodHappy])
	assert.InDelta(t, 100.0, stats.MoodPercent[MoodHappy], 0.001)

	assert.NotEmpty(t, e.RAMHistory())
	assert.NotEmpty(t, e.DiskHistory())
	assert.NotEmpty(t, e.NetHistory())
	cpuAvg, ramAvg, diskAvg := e.Averages()
	assert.InDelta(t, 20.0, cpuAvg, 0.001)
	assert.InDelta(t, 40.0, ramAvg, 0.001)
	assert.InDelta(t, 60.0, diskAvg, 0.001)
}
