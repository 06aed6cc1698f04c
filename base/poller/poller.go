package poller

import (
	"time"

	"github.com/rebooked/goapi/base/backoff"
	bCtx "github.com/rebooked/goapi/base/ctx"
	"github.com/rebooked/goapi/base/goroutine"
	"github.com/rebooked/goapi/base/log"
	"github.com/rebooked/goapi/base/metrics"
)

// Task is one refresh cycle. A non-nil error triggers the retry policy;
// the poller never stops on task errors.
type Task func(bCtx.Ctx) error

type Cfg struct {
	Name     string
	Interval time.Duration
	Task     Task

	// retry policy for a failed cycle, distinct per poller
	BackoffStart time.Duration
	BackoffLimit time.Duration
	MaxAttempts  int

	Metrics metrics.Service
}

// Poller owns one background refresh loop with an explicit start/stop
// lifecycle. Cycles may overlap their consumers' reads; the task is
// responsible for publishing results atomically on completion.
type Poller struct {
	name        string
	interval    time.Duration
	task        Task
	backoff     *backoff.Backoff
	maxAttempts int
	met         metrics.Service
	cancel      func()
	stoppedCh   chan interface{}
}

func New(cfg *Cfg) *Poller {
	met := cfg.Metrics
	if met == nil {
		met = metrics.NewNoop()
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Poller{
		name:        cfg.Name,
		interval:    cfg.Interval,
		task:        cfg.Task,
		backoff:     backoff.NewExponential(cfg.BackoffStart, cfg.BackoffLimit),
		maxAttempts: maxAttempts,
		met:         met,
		stoppedCh:   make(chan interface{}),
	}
}

func (p *Poller) Start(ctx bCtx.Ctx) {
	loopCtx, cancel := bCtx.WithCancel(ctx)
	p.cancel = cancel
	goroutine.RecoverableGo(func() {
		defer close(p.stoppedCh)
		p.loop(loopCtx)
	})
}

// Stop cancels the loop and blocks until the current cycle has ended
func (p *Poller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	<-p.stoppedCh
}

func (p *Poller) loop(ctx bCtx.Ctx) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.runCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.runCycle(ctx)
		}
	}
}

// runCycle runs the task, retrying with capped exponential backoff up to
// maxAttempts before giving the interval a chance again
func (p *Poller) runCycle(ctx bCtx.Ctx) {
	defer p.met.BumpTime("cycle.time", "poller", p.name).End()

	p.backoff.Reset()
	for {
		err := p.task(ctx)
		if err == nil {
			return
		}

		p.met.BumpSum("cycle.err", 1, "poller", p.name)
		ctx.WithFields(log.Fields{
			"poller":  p.name,
			"attempt": p.backoff.Count() + 1,
			"err":     err,
		}).Warn("poll cycle failed")

		if p.backoff.Count()+1 >= p.maxAttempts {
			return
		}
		if err := p.backoff.Backoff(ctx); err != nil {
			// context cancelled while sleeping
			return
		}
	}
}
