package signals

import (
	"slices"
	"sync"
	"time"
)

// defaultGracefulTimeout bounds the pre-shutdown handlers.
const defaultGracefulTimeout = 5 * time.Second

var (
	preShutdownMu       sync.RWMutex
	preShutdownHandlers []Handler
	gracefulTimeout     = defaultGracefulTimeout
)

// RegisterPreShutdownHandler registers a handler that runs before the
// interrupt handlers, e.g. to stop background clock synchronization. Nil
// handlers are ignored.
func RegisterPreShutdownHandler(f Handler) {
	if f == nil {
		return
	}
	preShutdownMu.Lock()
	defer preShutdownMu.Unlock()
	preShutdownHandlers = append(preShutdownHandlers, f)
}

// SetGracefulTimeout sets how long the pre-shutdown handlers may take. Zero
// or negative restores the default of 5 seconds.
func SetGracefulTimeout(timeout time.Duration) {
	preShutdownMu.Lock()
	defer preShutdownMu.Unlock()
	if timeout <= 0 {
		gracefulTimeout = defaultGracefulTimeout
	} else {
		gracefulTimeout = timeout
	}
}

// handlePreShutdown runs the pre-shutdown handlers in order. It reports
// false if they did not finish within the graceful timeout.
func handlePreShutdown() bool {
	preShutdownMu.RLock()
	snapshot := slices.Clone(preShutdownHandlers)
	timeout := gracefulTimeout
	preShutdownMu.RUnlock()

	if len(snapshot) == 0 {
		return true
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, h := range snapshot {
			safeCall(h, "pre-shutdown")
		}
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		log.WithField("timeout", timeout.String()).Warn("pre-shutdown handlers timed out")
		return false
	}
}
