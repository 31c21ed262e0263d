package repocache

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/utilitywarehouse/git-repo-cache/repository"
)

// Handle is a shared reference to a cached repository context obtained
// from Pool.Get. Handles are cheap to hold and safe to move between
// goroutines; the entry they reference stays resident until every
// outstanding handle is released. Every handle must be released exactly
// once when the request is done, typically with defer.
type Handle struct {
	entry    *entry
	released atomic.Bool
}

// Local produces a view of the repository context confined to the
// calling goroutine, scoped to one logical operation. Views are obtained
// fresh per operation and must not be cached.
func (h *Handle) Local() (*repository.LocalView, error) {
	if h.released.Load() {
		return nil, fmt.Errorf("handle for %s already released", h.entry.path)
	}
	return h.entry.repo.NewLocal()
}

// Path returns the canonical path of the referenced repository
func (h *Handle) Path() string {
	return h.entry.path
}

// CreatedAt returns the time the referenced context was opened
func (h *Handle) CreatedAt() time.Time {
	return h.entry.createdAt
}

// Release drops the caller's reference to the entry. Once all handles
// for an entry are released the entry becomes eviction eligible but is
// not destroyed until a later admission decision or idle sweep picks it.
// Release is idempotent.
func (h *Handle) Release() {
	if h.released.Swap(true) {
		return
	}
	h.entry.refs.Add(-1)
}
