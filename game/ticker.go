package game

import "time"

// Ticker schedules fixed-interval ticks on the caller's clock. It never queues
// more than one pending tick, so a stalled frame loop does not trigger a burst
// of catch-up ticks.
type Ticker struct {
	interval time.Duration
	next     time.Time
	armed    bool
}

func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{interval: interval}
}

// Arm schedules the next tick one interval after now, replacing any pending one
func (t *Ticker) Arm(now time.Time) {
	t.next = now.Add(t.interval)
	t.armed = true
}

func (t *Ticker) Disarm() {
	t.armed = false
}

func (t *Ticker) Armed() bool {
	return t.armed
}

// Due reports whether the pending tick should fire at now
func (t *Ticker) Due(now time.Time) bool {
	return t.armed && !now.Before(t.next)
}
