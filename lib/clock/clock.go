package clock

import (
	"sync"
	"time"

	"github.com/go-i2p/normtime/lib/normtime"
)

// nowFunc is overridable for testing. Defaults to time.Now.
var nowFunc = time.Now

// Clock is the system clock corrected by an offset. It is safe for
// concurrent use.
type Clock struct {
	mu     sync.RWMutex
	offset time.Duration
}

// New returns a Clock with zero offset.
func New() *Clock {
	return &Clock{}
}

// Std returns the corrected current time.
func (c *Clock) Std() time.Time {
	c.mu.RLock()
	offset := c.offset
	c.mu.RUnlock()
	return nowFunc().Add(offset)
}

// Now returns the corrected current Normtime. The sub-second part is
// floored away.
func (c *Clock) Now() (normtime.Time, error) {
	return normtime.FromStdTime(c.Std())
}

// SetOffset replaces the correction added to the system time.
func (c *Clock) SetOffset(offset time.Duration) {
	c.mu.Lock()
	c.offset = offset
	c.mu.Unlock()
}

// Offset returns the current correction.
func (c *Clock) Offset() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.offset
}

// UntilNextSecond returns how long it takes until the corrected clock
// reaches the next whole second.
func (c *Clock) UntilNextSecond() time.Duration {
	now := c.Std()
	return now.Truncate(time.Second).Add(time.Second).Sub(now)
}
