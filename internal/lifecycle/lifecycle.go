// Package lifecycle tracks whether the process is draining.
package lifecycle

import (
	"sync/atomic"
	"time"
)

// shutdownAt holds the UnixNano when draining began, or 0.
var shutdownAt atomic.Int64

// SetShuttingDown marks the process as draining (true) or serving (false).
// The first transition to draining is timestamped; repeated calls keep it.
func SetShuttingDown(v bool) {
	if !v {
		shutdownAt.Store(0)
		return
	}
	shutdownAt.CompareAndSwap(0, time.Now().UnixNano())
}

// IsShuttingDown reports whether the widget should stop receiving traffic.
func IsShuttingDown() bool {
	return shutdownAt.Load() != 0
}

// ShutdownStarted returns when draining began, with ok=false while serving.
func ShutdownStarted() (time.Time, bool) {
	ns := shutdownAt.Load()
	if ns == 0 {
		return time.Time{}, false
	}
	return time.Unix(0, ns), true
}
