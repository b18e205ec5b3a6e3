// Package signals dispatches OS signals to registered handlers. Nothing is
// intercepted until Handle runs, so commands that never call it keep the
// default Ctrl-C behavior.
package signals

import (
	"os"
	"os/signal"
	"slices"
	"sync"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// sigChan is buffered to avoid missing signals delivered while no receiver is ready.
var sigChan = make(chan os.Signal, 1)

// Handler is a function called when a signal is received.
type Handler func()

// HandlerID identifies a registered handler for deregistration.
type HandlerID int

type registeredHandler struct {
	id HandlerID
	fn Handler
}

var (
	mu           sync.RWMutex
	reloaders    []registeredHandler
	interrupters []registeredHandler
	nextID       HandlerID
	stopOnce     sync.Once
	stopped      bool
)

func register(list *[]registeredHandler, f Handler) HandlerID {
	if f == nil {
		return -1
	}
	mu.Lock()
	defer mu.Unlock()
	id := nextID
	nextID++
	*list = append(*list, registeredHandler{id: id, fn: f})
	return id
}

func deregister(list *[]registeredHandler, id HandlerID) {
	mu.Lock()
	defer mu.Unlock()
	*list = slices.DeleteFunc(*list, func(h registeredHandler) bool { return h.id == id })
}

func run(list *[]registeredHandler, kind string) {
	mu.RLock()
	snapshot := slices.Clone(*list)
	mu.RUnlock()
	for _, h := range snapshot {
		safeCall(h.fn, kind)
	}
}

func safeCall(f Handler, kind string) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("handler", kind).Errorf("panic in signal handler: %v", r)
		}
	}()
	f()
}

// RegisterReloadHandler registers a handler called on SIGHUP. Nil handlers
// are ignored and return -1.
func RegisterReloadHandler(f Handler) HandlerID {
	return register(&reloaders, f)
}

// DeregisterReloadHandler removes a reload handler.
func DeregisterReloadHandler(id HandlerID) {
	deregister(&reloaders, id)
}

// RegisterInterruptHandler registers a handler called on SIGINT and SIGTERM.
// Nil handlers are ignored and return -1.
func RegisterInterruptHandler(f Handler) HandlerID {
	return register(&interrupters, f)
}

// DeregisterInterruptHandler removes an interrupt handler.
func DeregisterInterruptHandler(id HandlerID) {
	deregister(&interrupters, id)
}

func handleReload() {
	log.Debug("reloading on signal")
	run(&reloaders, "reload")
}

// handleInterrupted runs the pre-shutdown handlers, then the interrupt
// handlers.
func handleInterrupted() {
	log.Debug("shutting down on signal")
	handlePreShutdown()
	run(&interrupters, "interrupt")
}

// Handle installs the signal handlers and dispatches signals until
// StopHandle is called.
func Handle() {
	mu.Lock()
	if stopped {
		mu.Unlock()
		return
	}
	notify()
	mu.Unlock()
	for sig := range sigChan {
		dispatch(sig)
	}
}

// StopHandle makes Handle return and restores default signal behavior.
// Only the first call takes effect.
func StopHandle() {
	stopOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		signal.Stop(sigChan)
		close(sigChan)
	})
}
