//go:build !windows

package signals

import (
	"os"
	"os/signal"
	"syscall"
)

func notify() {
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
}

func dispatch(sig os.Signal) {
	switch sig {
	case syscall.SIGHUP:
		handleReload()
	case syscall.SIGINT, syscall.SIGTERM:
		handleInterrupted()
	}
}
