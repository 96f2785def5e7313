package cache

import (
	"context"
	"sync"
	"time"
)

// sweeper drives active expiration. It is owned by one Cache: started by New,
// re-armed by Flush and stopped by Close.
//
// Each tick runs one bounded pass and then re-arms the timer for
// max(interval - elapsed, 0), so the cadence tracks interval no matter how
// long the pass took.
type sweeper struct {
	interval time.Duration
	pass     func() time.Duration

	restart chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newSweeper(interval time.Duration, pass func() time.Duration) *sweeper {
	ctx, cancel := context.WithCancel(context.Background())
	return &sweeper{
		interval: interval,
		pass:     pass,
		restart:  make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *sweeper) start() {
	s.wg.Add(1)
	go s.loop()
}

// reschedule queues a timer re-arm for a full interval out. It does not wait:
// a tick the loop has already received is not cancelled.
func (s *sweeper) reschedule() {
	select {
	case s.restart <- struct{}{}:
	default:
		// A restart is already queued.
	}
}

// stop cancels the loop and waits for an in-flight pass to finish.
func (s *sweeper) stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *sweeper) loop() {
	defer s.wg.Done()

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.restart:
			timer.Reset(s.interval)
		case <-timer.C:
			elapsed := s.pass()
			timer.Reset(max(s.interval-elapsed, 0))
		}
	}
}

// sweep runs one bounded expiration pass and reports how long it took,
// including any wait for the lock.
//
// Count-bounded passes examine at most SweepWindowSize registry positions;
// time-bounded passes stop once SweepWindowDuration has elapsed. The time
// budget starts once the lock is held and is checked after each key, so every
// pass over a non-empty registry examines at least one key. Neither mode
// examines more than one lap of the registry.
func (c *Cache[T]) sweep() time.Duration {
	start := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return time.Since(start)
	}

	now := c.now()
	budget := c.registry.len()
	if !c.cfg.TimeBoundedSweep {
		budget = min(budget, c.cfg.SweepWindowSize)
	}

	windowStart := c.sweepClock()
	for i := 0; i < budget; i++ {
		key, ok := c.registry.next()
		if !ok {
			break
		}
		c.expireIfDueLocked(key, now)

		if c.cfg.TimeBoundedSweep && c.sweepClock().Sub(windowStart) >= c.cfg.SweepWindowDuration {
			break
		}
	}

	c.stats.Sweeps++
	return time.Since(start)
}

func (c *Cache[T]) expireIfDueLocked(key string, now time.Time) {
	h, ok := c.store.lookup(key)
	if !ok {
		// Registry and store are updated together; a stray key is dropped.
		c.registry.remove(key)
		return
	}
	if c.store.node(h).expired(now) {
		c.removeLocked(key, Expired)
	}
}
