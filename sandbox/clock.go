package sandbox

import (
	"sync"
	"time"

	"github.com/solmock/shadow-oracle/ledger"
)

// ManualClock provides a controllable logical clock (slot plus wall time) for
// testing time-dependent behavior.
type ManualClock struct {
	mu      sync.RWMutex
	current time.Time
	slot    uint64
}

// NewManualClock creates a ManualClock set to a default time.
// The default is January 1, 2020, 00:00:00 UTC at slot 1.
func NewManualClock() *ManualClock {
	return &ManualClock{
		current: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		slot:    1,
	}
}

// NewManualClockAt creates a ManualClock set to the specified time and slot.
func NewManualClockAt(t time.Time, slot uint64) *ManualClock {
	return &ManualClock{current: t, slot: slot}
}

// Now returns the current time on the clock.
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Slot returns the current slot.
func (c *ManualClock) Slot() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.slot
}

// Snapshot returns the clock as a ledger clock value.
func (c *ManualClock) Snapshot() ledger.Clock {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ledger.Clock{Slot: c.slot, UnixTimestamp: c.current.Unix()}
}

// Advance moves the clock forward by the specified duration.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// AdvanceSlot moves the slot counter forward by n.
func (c *ManualClock) AdvanceSlot(n uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slot += n
}

// Set sets the clock to a specific time.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// SetSlot sets the slot to a specific value.
func (c *ManualClock) SetSlot(slot uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slot = slot
}
