package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/docsign/docsign/internal/log"
	"github.com/docsign/docsign/internal/model"
)

// steps is the number of discrete advances of a run, value goes 0..steps.
const steps = 100

// SimulatorConfig is the configuration for a progress simulator.
type SimulatorConfig struct {
	// Duration is the total wall-clock time of one 0 to 100 run.
	Duration time.Duration
	// OnTick, when set, observes every value change. It is called from the
	// simulator goroutine, including once with 0 when a run starts.
	OnTick func(value int)
	Logger log.Logger
}

func (c *SimulatorConfig) defaults() error {
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "progress.Simulator"})
	return nil
}

// Simulator produces a deterministic, cancellable 0 to 100 progress sequence
// over a fixed duration. It is the only suspension point of a flow: between
// ticks control stays with the caller. A simulator can be reused for
// consecutive runs, never for overlapping ones: Start while running is a no-op.
type Simulator struct {
	duration time.Duration
	onTick   func(int)
	logger   log.Logger

	mu      sync.Mutex
	value   int
	running bool
	cancelC chan struct{}
}

// NewSimulator creates a new progress simulator.
func NewSimulator(cfg SimulatorConfig) (*Simulator, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Simulator{
		duration: cfg.Duration,
		onTick:   cfg.OnTick,
		logger:   cfg.Logger,
	}, nil
}

// Start begins a run advancing the value from 0 to 100 in 100 discrete steps.
// On reaching 100 the run stops and onComplete is invoked exactly once, from
// the simulator goroutine. If a run is already active Start is a no-op and
// returns false.
func (s *Simulator) Start(onComplete func()) bool {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Debugf("Start ignored, a run is already active")
		return false
	}
	s.running = true
	s.value = 0
	cancelC := make(chan struct{})
	s.cancelC = cancelC
	s.mu.Unlock()

	if s.onTick != nil {
		s.onTick(0)
	}

	go s.run(cancelC, onComplete)

	return true
}

// Cancel stops an active run without invoking its completion callback. It is
// a no-op when no run is active.
func (s *Simulator) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	close(s.cancelC)
	s.logger.Debugf("Run cancelled at %d", s.value)
}

// State returns a snapshot of the current progress.
func (s *Simulator) State() model.ProgressState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.ProgressState{Value: s.value, Running: s.running}
}

func (s *Simulator) run(cancelC chan struct{}, onComplete func()) {
	interval := s.duration / steps
	if interval <= 0 {
		// Durations below one tick per step still need a valid ticker.
		interval = time.Nanosecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-cancelC:
			return

		case <-ticker.C:
			s.mu.Lock()
			if !s.running {
				// Cancelled between the tick and the lock.
				s.mu.Unlock()
				return
			}
			s.value++
			value := s.value
			done := value >= steps
			if done {
				s.running = false
			}
			s.mu.Unlock()

			if s.onTick != nil {
				s.onTick(value)
			}
			if done {
				s.logger.Debugf("Run completed")
				if onComplete != nil {
					onComplete()
				}
				return
			}
		}
	}
}
