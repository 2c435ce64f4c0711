// Package timectrl steps simulation time for tracking loops: fixed ticks,
// either paced by the wall clock or run as fast as listeners can keep up.
package timectrl

import (
	"sync"
	"time"
)

// Mode describes how the Controller advances simulation time.
type Mode int

const (
	// RealTime advances one tick per elapsed wall-clock tick.
	RealTime Mode = iota
	// Accelerated advances as quickly as the loop can run while still
	// stepping by Tick.
	Accelerated
)

// Controller drives simulation time and notifies registered listeners on
// every tick. Listeners run sequentially on the controller goroutine, so
// they observe strictly increasing times.
type Controller struct {
	mu        sync.RWMutex
	StartTime time.Time
	Tick      time.Duration
	Mode      Mode

	currentTime time.Time
	listeners   []func(time.Time)
}

// New constructs a controller starting at start and stepping by tick.
func New(start time.Time, tick time.Duration, mode Mode) *Controller {
	return &Controller{
		StartTime:   start,
		Tick:        tick,
		Mode:        mode,
		currentTime: start,
	}
}

// Now returns the current simulation time.
func (c *Controller) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

// AddListener registers a callback invoked on every tick. Listeners must
// be registered before Start.
func (c *Controller) AddListener(fn func(time.Time)) {
	c.listeners = append(c.listeners, fn)
}

// Start runs the controller for the specified simulated duration on its
// own goroutine and returns a channel closed when it finishes. A
// non-positive duration runs indefinitely; indefinite runs are paced by
// the wall clock even in Accelerated mode so the loop cannot spin hot.
func (c *Controller) Start(duration time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		c.mu.Lock()
		simTime := c.StartTime
		c.currentTime = simTime
		c.mu.Unlock()

		var ticker *time.Ticker
		if c.Mode == RealTime || duration <= 0 {
			ticker = time.NewTicker(c.Tick)
			defer ticker.Stop()
		}

		for elapsed := time.Duration(0); duration <= 0 || elapsed < duration; elapsed += c.Tick {
			if ticker != nil {
				<-ticker.C
			}
			simTime = simTime.Add(c.Tick)

			c.mu.Lock()
			c.currentTime = simTime
			c.mu.Unlock()

			for _, fn := range c.listeners {
				fn(simTime)
			}
		}
	}()
	return done
}
