package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/quantum-oracle-client/internal/constants"
	"github.com/quantumauth-io/quantum-oracle-client/internal/metrics"
	"github.com/quantumauth-io/quantum-oracle-client/internal/oracle"
)

// Cycle produces one snapshot.
type Cycle func(ctx context.Context) (*oracle.Snapshot, error)

// Handler receives the outcome of every cycle of the current run.
// HandleSnapshot is called with the scheduler lock held and must not call
// back into the Scheduler. HandleError runs without the lock and may still be
// finishing when Stop returns; its context is cancelled by Stop.
type Handler interface {
	HandleSnapshot(ctx context.Context, snap *oracle.Snapshot)
	HandleError(ctx context.Context, err error)
}

type Config struct {
	Interval time.Duration // Tick interval (default: 30s)
	Timeout  time.Duration // Per-cycle timeout (default: 20s)
}

func DefaultConfig() Config {
	return Config{
		Interval: constants.DefaultPollInterval,
		Timeout:  constants.DefaultCycleTimeout,
	}
}

// Stats counts cycles since the scheduler was created.
type Stats struct {
	Started int64 `json:"started"`
	Dropped int64 `json:"dropped"`
}

type Scheduler struct {
	cfg     Config
	cycle   Cycle
	handler Handler

	inFlight atomic.Bool
	loading  atomic.Bool
	started  atomic.Int64
	dropped  atomic.Int64

	mu      sync.Mutex
	running bool
	// epoch identifies the current run; results of older runs are discarded.
	epoch  uint64
	ctx    context.Context
	cancel context.CancelFunc

	loopWG  sync.WaitGroup
	cycleWG sync.WaitGroup
}

func New(cfg Config, cycle Cycle, handler Handler) *Scheduler {
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Scheduler{cfg: cfg, cycle: cycle, handler: handler}
}

// Start begins a run. The first cycle starts immediately. Starting a running
// scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cycle == nil {
		return errors.New("poller: nil cycle")
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.epoch++
	epoch := s.epoch
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	runCtx := s.ctx
	s.loopWG.Add(1)
	s.mu.Unlock()

	go s.run(runCtx, epoch)

	log.Info("price poller started", "interval", s.cfg.Interval.String(), "timeout", s.cfg.Timeout.String())
	return nil
}

// Stop ends the current run. After Stop returns no tick fires and no snapshot
// is handed to the Handler; a cycle still in flight is cancelled and its
// result discarded. Safe to call at any time.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.epoch++
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.loopWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("price poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Trigger runs a cycle now. It reports false when the scheduler is stopped or
// a cycle is already in flight.
func (s *Scheduler) Trigger() bool {
	s.mu.Lock()
	ctx, epoch := s.ctx, s.epoch
	s.mu.Unlock()
	if ctx == nil {
		return false
	}
	return s.tick(ctx, epoch)
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// IsLoading reports whether a cycle is in flight.
func (s *Scheduler) IsLoading() bool { return s.loading.Load() }

func (s *Scheduler) Stats() Stats {
	return Stats{Started: s.started.Load(), Dropped: s.dropped.Load()}
}

func (s *Scheduler) run(ctx context.Context, epoch uint64) {
	defer s.loopWG.Done()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.tick(ctx, epoch)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx, epoch)
		}
	}
}

// tick starts a cycle unless one is in flight or the run has ended.
func (s *Scheduler) tick(ctx context.Context, epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.epoch != epoch {
		return false
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		s.dropped.Add(1)
		metrics.PollTicksDropped.Inc()
		log.Warn("poll tick dropped, previous cycle still in flight")
		return false
	}

	s.loading.Store(true)
	s.started.Add(1)
	s.cycleWG.Add(1)
	go s.execute(ctx, epoch, uuid.NewString())
	return true
}

func (s *Scheduler) execute(ctx context.Context, epoch uint64, id string) {
	defer s.cycleWG.Done()
	defer s.inFlight.Store(false)
	defer s.loading.Store(false)

	start := time.Now()
	log.Info("poll cycle started", "cycle_id", id)

	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	snap, err := s.cycle(cctx)
	cancel()

	if err == nil && snap == nil {
		err = errors.New("cycle returned no snapshot")
	}
	if err != nil && !errors.Is(err, oracle.ErrCallFailure) {
		err = errors.Mark(errors.Wrap(err, "poll cycle"), oracle.ErrCallFailure)
	}

	elapsed := time.Since(start)
	metrics.PollCycleDuration.Observe(elapsed.Seconds())

	if err != nil {
		if !s.current(epoch) {
			s.discard(id)
			return
		}
		metrics.PollCyclesTotal.WithLabelValues("failed").Inc()
		log.Warn("poll cycle failed", "cycle_id", id, "duration", elapsed.String(), "error", err)
		// Unlocked: notifying may block on the network. Stop cancels ctx.
		if s.handler != nil {
			s.handler.HandleError(ctx, err)
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.epoch != epoch {
		s.discard(id)
		return
	}

	metrics.PollCyclesTotal.WithLabelValues("ok").Inc()
	metrics.PollLastSuccess.SetToCurrentTime()
	log.Info("poll cycle complete", "cycle_id", id, "assets", snap.Len(), "duration", elapsed.String())
	if s.handler != nil {
		s.handler.HandleSnapshot(ctx, snap)
	}
}

func (s *Scheduler) current(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running && s.epoch == epoch
}

func (s *Scheduler) discard(id string) {
	metrics.PollCyclesTotal.WithLabelValues("discarded").Inc()
	log.Info("poll cycle result discarded after stop", "cycle_id", id)
}
