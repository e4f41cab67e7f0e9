package engine

import (
	"context"
	"sync"
	"time"

	"github.com/NitishVankina/ServerPet/internal/config"
	"github.com/NitishVankina/ServerPet/internal/errors"
	"github.com/NitishVankina/ServerPet/internal/logger"
	"github.com/NitishVankina/ServerPet/internal/metrics"
)

const (
	// netNormDivisor and netNormScale map KB/s onto the 0-100 range the
	// history graphs share: 1 MB/s reads as 10%.
	netNormDivisor = 1024.0
	netNormScale   = 10.0

	defaultQueueSize = 8
)

// Options configures an Engine at construction. Threshold and alerts can be
// changed later via Configure; everything else is fixed for the session.
type Options struct {
	Interval          time.Duration
	CriticalThreshold float64
	AlertsEnabled     bool
	DiskPath          string
	HistorySize       int
	QueueSize         int
}

func DefaultOptions() Options {
	return Options{
		Interval:          config.DefaultInterval * time.Second,
		CriticalThreshold: config.DefaultThreshold,
		AlertsEnabled:     true,
		DiskPath:          config.DefaultDiskPath,
		HistorySize:       DefaultHistorySize,
		QueueSize:         defaultQueueSize,
	}
}

// Engine owns the sampling loop: it polls the metrics source on a fixed
// cadence, maintains the rolling histories and session statistics, classifies
// the mood and hands immutable snapshots to registered consumers.
type Engine struct {
	source   metrics.Source
	interval time.Duration
	diskPath string
	queueLen int
	histSize int

	// cfgMu guards the two runtime-configurable values. It is never held
	// across a blocking call.
	cfgMu         sync.RWMutex
	threshold     float64
	alertsEnabled bool

	// Sampling state below is owned by the sampler goroutine between Start
	// and Stop; histories and stats carry their own locks for readers.
	cpuHist  *History
	ramHist  *History
	diskHist *History
	netHist  *History
	stats    *Stats
	gate     *AlertGate
	rate     *RateEstimator
	lastMood Mood
	hasMood  bool

	callbackMu sync.Mutex
	callbacks  []func(Snapshot)

	lifeMu       sync.Mutex
	running      bool
	cancel       context.CancelFunc
	samplerDone  chan struct{}
	deliveryDone chan struct{}
	queue        chan Snapshot
}

func New(source metrics.Source, opts Options) (*Engine, error) {
	if source == nil {
		return nil, errors.WithMessage(errors.ErrInvalidArgument, "nil metrics source")
	}
	if opts.Interval <= 0 {
		return nil, errors.WithData(errors.ErrInvalidInterval, opts.Interval)
	}
	if opts.CriticalThreshold < config.MinThreshold || opts.CriticalThreshold > config.MaxThreshold {
		return nil, errors.WithData(errors.ErrInvalidThreshold, opts.CriticalThreshold)
	}
	if opts.DiskPath == "" {
		opts.DiskPath = config.DefaultDiskPath
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = DefaultHistorySize
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}

	e := &Engine{
		source:        source,
		interval:      opts.Interval,
		diskPath:      opts.DiskPath,
		queueLen:      opts.QueueSize,
		histSize:      opts.HistorySize,
		threshold:     opts.CriticalThreshold,
		alertsEnabled: opts.AlertsEnabled,
	}
	e.resetSession()

	return e, nil
}

// resetSession replaces all per-session state. Called at construction and on
// every Start so a stopped engine comes back with no stale history.
func (e *Engine) resetSession() {
	e.cpuHist = NewHistory(e.histSize)
	e.ramHist = NewHistory(e.histSize)
	e.diskHist = NewHistory(e.histSize)
	e.netHist = NewHistory(e.histSize)
	e.stats = NewStats()
	e.gate = NewAlertGate()
	e.rate = NewRateEstimator()
	e.hasMood = false
}

// Configure updates the critical threshold and the alert flag. Idempotent;
// the new values apply on the next tick. An out-of-range threshold is
// rejected and the prior configuration retained.
func (e *Engine) Configure(criticalThreshold float64, alertsEnabled bool) error {
	if criticalThreshold < config.MinThreshold || criticalThreshold > config.MaxThreshold {
		return errors.WithData(errors.ErrInvalidThreshold, criticalThreshold)
	}

	e.cfgMu.Lock()
	defer e.cfgMu.Unlock()

	e.threshold = criticalThreshold
	e.alertsEnabled = alertsEnabled

	return nil
}

// Threshold returns the current critical threshold.
func (e *Engine) Threshold() float64 {
	e.cfgMu.RLock()
	defer e.cfgMu.RUnlock()

	return e.threshold
}

// AlertsEnabled returns whether alert firing is enabled.
func (e *Engine) AlertsEnabled() bool {
	e.cfgMu.RLock()
	defer e.cfgMu.RUnlock()

	return e.alertsEnabled
}

// OnSnapshot registers a delivery target invoked once per successful tick, in
// strict chronological order, from the delivery goroutine. Register before
// Start.
func (e *Engine) OnSnapshot(fn func(Snapshot)) {
	if fn == nil {
		return
	}

	e.callbackMu.Lock()
	defer e.callbackMu.Unlock()

	e.callbacks = append(e.callbacks, fn)
}

// Start launches the sampler and delivery goroutines. Starting an engine that
// is already running is a reported misuse, not a crash. A Start after Stop
// begins a fresh session.
func (e *Engine) Start() error {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	if e.running {
		return errors.New(errors.ErrAlreadyRunning)
	}

	e.resetSession()

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.queue = make(chan Snapshot, e.queueLen)
	e.samplerDone = make(chan struct{})
	e.deliveryDone = make(chan struct{})
	e.running = true

	go e.sampleLoop(ctx)
	go e.deliverLoop()

	logger.Info().
		Dur("interval", e.interval).
		Float64("critical_threshold", e.Threshold()).
		Msg("engine started")

	return nil
}

// Stop requests a cooperative shutdown and waits for both goroutines to
// drain. The loop exits within one poll interval; a snapshot already handed
// off is still delivered.
func (e *Engine) Stop() error {
	e.lifeMu.Lock()
	defer e.lifeMu.Unlock()

	if !e.running {
		return errors.New(errors.ErrNotRunning)
	}

	e.cancel()
	<-e.samplerDone
	close(e.queue)
	<-e.deliveryDone
	e.running = false

	logger.Info().Msg("engine stopped")

	return nil
}

// CurrentStats returns a read-only copy of the session statistics. Safe to
// call at any time; it never blocks the sampler.
func (e *Engine) CurrentStats() StatsSummary {
	return e.stats.Summary()
}

// CPUHistory returns a copy of the CPU history, oldest first.
func (e *Engine) CPUHistory() []float64 { return e.cpuHist.Snapshot() }

// RAMHistory returns a copy of the RAM history, oldest first.
func (e *Engine) RAMHistory() []float64 { return e.ramHist.Snapshot() }

// DiskHistory returns a copy of the disk history, oldest first.
func (e *Engine) DiskHistory() []float64 { return e.diskHist.Snapshot() }

// NetHistory returns a copy of the normalized network history, oldest first.
func (e *Engine) NetHistory() []float64 { return e.netHist.Snapshot() }

// Averages returns the rolling mean of each history buffer.
func (e *Engine) Averages() (cpu, ram, disk float64) {
	return e.cpuHist.Average(), e.ramHist.Average(), e.diskHist.Average()
}

func (e *Engine) sampleLoop(ctx context.Context) {
	defer close(e.samplerDone)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if snap, ok := e.tick(ctx); ok {
				e.publish(snap)
			}
		}
	}
}

// tick performs exactly one poll cycle. Any metric read failure skips the
// whole tick: nothing is appended, no stats mutate, and no snapshot is
// produced. Sampling resumes on the next cadence.
func (e *Engine) tick(ctx context.Context) (Snapshot, bool) {
	cpu, err := e.source.CPUPercent(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Snapshot{}, false
		}
		logger.Warn().Err(err).Msg("tick skipped: cpu read failed")
		return Snapshot{}, false
	}

	ram, err := e.source.RAMPercent()
	if err != nil {
		logger.Warn().Err(err).Msg("tick skipped: ram read failed")
		return Snapshot{}, false
	}

	disk, err := e.source.DiskPercent(e.diskPath)
	if err != nil {
		logger.Warn().Err(err).Msg("tick skipped: disk read failed")
		return Snapshot{}, false
	}

	counters, err := e.source.NetworkCounters()
	if err != nil {
		logger.Warn().Err(err).Msg("tick skipped: network read failed")
		return Snapshot{}, false
	}

	netKBs := e.rate.Update(counters) / 1024

	e.cfgMu.RLock()
	threshold := e.threshold
	alertsEnabled := e.alertsEnabled
	e.cfgMu.RUnlock()

	e.cpuHist.Push(cpu)
	e.ramHist.Push(ram)
	e.diskHist.Push(disk)
	e.netHist.Push(min(netKBs/netNormDivisor*netNormScale, 100))

	mood := Classify(cpu, ram, disk, threshold)
	e.stats.Record(mood, e.interval.Seconds())
	e.stats.RecordPeaks(cpu, ram, disk)

	moodChanged := !e.hasMood || mood != e.lastMood
	e.lastMood = mood
	e.hasMood = true

	fired := e.gate.Check(mood, alertsEnabled)
	if fired {
		logger.Info().
			Float64("cpu", cpu).
			Float64("ram", ram).
			Float64("disk", disk).
			Msg("critical alert")
	}

	return Snapshot{
		Timestamp:   counters.Timestamp,
		CPU:         cpu,
		RAM:         ram,
		Disk:        disk,
		NetRateKBs:  netKBs,
		Mood:        mood,
		MoodChanged: moodChanged,
		AlertFired:  fired,
	}, true
}

// publish hands the snapshot to the bounded queue without ever blocking the
// sampler: when the consumer lags, the oldest queued snapshot is dropped so
// delivery stays chronological.
func (e *Engine) publish(snap Snapshot) {
	for {
		select {
		case e.queue <- snap:
			return
		default:
		}

		select {
		case <-e.queue:
			logger.Debug().Msg("snapshot queue full, dropping oldest")
		default:
		}
	}
}

func (e *Engine) deliverLoop() {
	defer close(e.deliveryDone)

	for snap := range e.queue {
		e.callbackMu.Lock()
		callbacks := make([]func(Snapshot), len(e.callbacks))
		copy(callbacks, e.callbacks)
		e.callbackMu.Unlock()

		for _, fn := range callbacks {
			fn(snap)
		}
	}
}
