// Package lock provides mutex types backed by go-deadlock so lock ordering
// mistakes surface as reports instead of hung pools.
// Detection can be disabled at runtime by setting the DISABLE_DEADLOCK_DETECTION
// env to a truthy value.
package lock

import (
	"os"
	"strconv"
	"time"

	"github.com/sasha-s/go-deadlock"
)

// Mutex is a drop in replacement for sync.Mutex with deadlock detection
type Mutex = deadlock.Mutex

// RWMutex is a drop in replacement for sync.RWMutex with deadlock detection
type RWMutex = deadlock.RWMutex

func init() {
	deadlock.Opts.DeadlockTimeout = 2 * time.Minute

	if v, err := strconv.ParseBool(os.Getenv("DISABLE_DEADLOCK_DETECTION")); err == nil && v {
		deadlock.Opts.Disable = true
	}
}
