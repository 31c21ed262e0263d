package repocache

import (
	"container/list"
	"sync/atomic"
	"time"

	"github.com/utilitywarehouse/git-repo-cache/repository"
)

// entry owns one opened repository context together with its usage
// metadata. Entries are owned exclusively by the pool and are never
// exposed to callers directly.
type entry struct {
	path string // canonical repository path, the cache key
	repo *repository.Repository

	createdAt time.Time
	size      int64 // on-disk size measured at open

	// refs counts outstanding handles. The entry is eviction eligible
	// only while refs is zero; it is incremented under the pool's read
	// lock and checked by the evictor under the write lock.
	refs atomic.Int64

	// lastUsed is the unix nano timestamp of the most recent Get
	lastUsed atomic.Int64

	// elem is the entry's node in the pool's recency list, guarded by
	// the pool's recency mutex. nil once the entry has been evicted.
	elem *list.Element
}

func newEntry(path string, repo *repository.Repository) *entry {
	e := &entry{
		path:      path,
		repo:      repo,
		createdAt: time.Now(),
		size:      repo.SizeOnDisk(),
	}
	e.touch()
	return e
}

func (e *entry) touch() {
	e.lastUsed.Store(time.Now().UnixNano())
}

func (e *entry) lastUsedAt() time.Time {
	return time.Unix(0, e.lastUsed.Load())
}
