package auth

import (
	"sync"
	"time"
)

// Countdown emits the remaining whole seconds once per second on C, closing
// the channel when it reaches zero. Stop cancels it early; front ends must
// call Stop on teardown so the ticker goroutine does not leak.
type Countdown struct {
	C <-chan int

	stopOnce sync.Once
	stop     chan struct{}
}

// NewCountdown starts a countdown over d, ticking at the given interval
// (pass time.Second for UI countdowns; tests shrink it).
func NewCountdown(d, interval time.Duration) *Countdown {
	c := make(chan int)
	cd := &Countdown{C: c, stop: make(chan struct{})}
	go func() {
		defer close(c)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		deadline := time.Now().Add(d)
		for {
			select {
			case <-cd.stop:
				return
			case now := <-ticker.C:
				remaining := int(deadline.Sub(now).Round(interval) / interval)
				if remaining <= 0 {
					return
				}
				select {
				case c <- remaining:
				case <-cd.stop:
					return
				}
			}
		}
	}()
	return cd
}

// Stop cancels the countdown and closes C. Safe to call multiple times.
func (cd *Countdown) Stop() {
	cd.stopOnce.Do(func() { close(cd.stop) })
}
