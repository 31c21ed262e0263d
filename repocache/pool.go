package repocache

import (
	"container/list"
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/utilitywarehouse/git-repo-cache/internal/lock"
	"github.com/utilitywarehouse/git-repo-cache/repository"
)

// Pool is the bounded collection of opened repository contexts keyed by
// canonical filesystem path. A Pool is safe for concurrent use by
// multiple goroutines.
type Pool struct {
	conf Config
	log  *slog.Logger

	lock      lock.RWMutex // guards entries and totalSize
	entries   map[string]*entry
	totalSize int64 // aggregate on-disk size of resident entries

	// recency keeps entries ordered most to least recently used. It is
	// guarded separately so hits never contend with the entries lock
	// for ordering updates. Lock order: entries lock before recencyMu.
	recencyMu lock.Mutex
	recency   *list.List // front is most recently used, values are *entry

	flight singleflight.Group // at most one backend open per path
	paths  *pathCache

	// openFn opens a repository context, swapped out in tests
	openFn func(path string, conf repository.Config) (*repository.Repository, error)

	closed atomic.Bool

	opens atomic.Uint64 // cumulative backend open attempts
	hits  atomic.Uint64 // cumulative cache hits

	Stopped chan bool
}

// New creates an empty pool bound to the given config. It touches no
// filesystem state; repositories are opened lazily on Get. The pool
// drains once ctx is cancelled and Stopped is closed when done.
func New(ctx context.Context, conf Config, log *slog.Logger) (*Pool, error) {
	if err := conf.ValidateAndApplyDefaults(); err != nil {
		return nil, err
	}

	if log == nil {
		log = slog.Default()
	}

	p := &Pool{
		conf:    conf,
		log:     log,
		entries: make(map[string]*entry),
		recency: list.New(),
		paths:   newPathCache(),
		openFn:  repository.Open,
		Stopped: make(chan bool),
	}

	// start shutdown watcher
	go func() {
		defer close(p.Stopped)

		<-ctx.Done()

		p.closed.Store(true)
		p.EvictAll()
	}()

	if conf.IdleTTL > 0 {
		go p.sweepLoop(ctx)
	}

	return p, nil
}

// Get returns a handle to the repository context for the given path,
// opening it through the backend if it is not cached yet. Concurrent
// callers for the same missing path share a single open. The returned
// handle must be released when the request is done.
func (p *Pool) Get(ctx context.Context, path string) (*Handle, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}

	canon, err := p.paths.canonical(path)
	if err != nil {
		return nil, &PathError{Path: path, Err: err}
	}

	for {
		if h := p.getCached(canon); h != nil {
			p.recordHit()
			return h, nil
		}

		var opened bool
		ch := p.flight.DoChan(canon, func() (any, error) {
			opened = true
			return p.openAndAdmit(canon)
		})

		select {
		case <-ctx.Done():
			// the in-flight open carries on for the remaining waiters;
			// if this caller was the opener its pre-taken reference has
			// to be dropped once the open completes
			go func() {
				if res := <-ch; res.Err == nil && opened {
					res.Val.(*entry).refs.Add(-1)
				}
			}()
			return nil, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				return nil, res.Err
			}
			if opened {
				// reference was taken at admission
				return &Handle{entry: res.Val.(*entry)}, nil
			}
			// shared result of another caller's open: take our own
			// reference. The entry can already be gone if an eviction
			// raced us, in which case start over.
			if h := p.getCached(canon); h != nil {
				p.recordHit()
				return h, nil
			}
		}
	}
}

// Stats returns a consistent snapshot of the pool counters. It never
// blocks Get callers.
func (p *Pool) Stats() Stats {
	p.lock.RLock()
	cached := len(p.entries)
	p.lock.RUnlock()

	hits := p.hits.Load()
	opens := p.opens.Load()

	return Stats{
		CachedCount: cached,
		OpenCount:   opens,
		HitCount:    hits,
		HitRate:     hitRate(hits, opens),
	}
}

// EvictAll drops every entry from the pool. Entries with outstanding
// handles are removed from the map but their contexts stay alive until
// the handles are released.
func (p *Pool) EvictAll() {
	p.lock.Lock()
	p.recencyMu.Lock()
	count := len(p.entries)
	for _, e := range p.entries {
		p.removeLocked(e)
	}
	p.recencyMu.Unlock()
	p.lock.Unlock()

	recordEvictions(count)
	setResident(0)
}

// getCached returns a handle to the resident entry for the canonical
// path, or nil on a miss. The reference is taken under the read lock so
// the evictor, which holds the write lock, can never observe a stale
// zero refcount.
func (p *Pool) getCached(canon string) *Handle {
	p.lock.RLock()
	e, ok := p.entries[canon]
	if !ok {
		p.lock.RUnlock()
		return nil
	}
	e.refs.Add(1)
	e.touch()
	p.lock.RUnlock()

	p.touchRecency(e)
	return &Handle{entry: e}
}

func (p *Pool) recordHit() {
	p.hits.Add(1)
	recordLookup("hit")
}

// openAndAdmit performs the backend open for the canonical path and
// admits the resulting entry, evicting over budget entries. It runs
// inside the per-path flight, so there is exactly one open episode per
// path at a time. The map lock is never held across the backend call.
// The returned entry carries one reference for the opening caller.
func (p *Pool) openAndAdmit(canon string) (*entry, error) {
	// the entry could have been admitted between the caller's fast path
	// lookup and this flight starting
	if h := p.getCached(canon); h != nil {
		p.recordHit()
		return h.entry, nil
	}

	start := time.Now()
	repo, err := p.openFn(canon, p.conf.Repository)
	p.opens.Add(1)
	recordLookup("open")
	if err != nil {
		return nil, &OpenError{Path: canon, Err: err}
	}
	observeOpenLatency(start)

	e := newEntry(canon, repo)
	e.refs.Store(1) // opener's reference

	p.lock.Lock()
	// shutdown may have drained the pool while the open was in flight
	if p.closed.Load() {
		p.lock.Unlock()
		return nil, ErrClosed
	}
	p.entries[canon] = e
	p.totalSize += e.size
	p.recencyMu.Lock()
	e.elem = p.recency.PushFront(e)
	evicted := p.evictOverBudgetLocked()
	p.recencyMu.Unlock()
	resident := len(p.entries)
	p.lock.Unlock()

	recordEvictions(len(evicted))
	setResident(resident)

	p.log.Log(context.Background(), -8, "opened repository", "path", canon, "size", e.size, "time", time.Since(start))
	for _, old := range evicted {
		p.log.Debug("evicted repository", "path", old.path, "size", old.size, "lastUsed", old.lastUsedAt())
	}

	return e, nil
}

// evictOverBudgetLocked removes least recently used unreferenced entries
// until the pool is back within its budgets. Caller must hold the write
// lock and the recency mutex.
func (p *Pool) evictOverBudgetLocked() []*entry {
	var evicted []*entry

	for p.overBudgetLocked() {
		victim := p.lruUnreferencedLocked()
		if victim == nil {
			// every resident entry is currently referenced; the budget
			// is advisory so admit anyway and retry on a later Get
			break
		}
		p.removeLocked(victim)
		evicted = append(evicted, victim)
	}

	return evicted
}

func (p *Pool) overBudgetLocked() bool {
	if len(p.entries) > p.conf.MaxEntries {
		return true
	}
	if p.conf.SizeBudget > 0 && p.totalSize > p.conf.SizeBudget {
		return true
	}
	return false
}

// lruUnreferencedLocked returns the least recently used entry without
// outstanding handles, nil if all resident entries are referenced.
// Entries never used since admission keep their insertion order, so the
// oldest created is picked among them.
func (p *Pool) lruUnreferencedLocked() *entry {
	for el := p.recency.Back(); el != nil; el = el.Prev() {
		e := el.Value.(*entry)
		if e.refs.Load() == 0 {
			return e
		}
	}
	return nil
}

// removeLocked drops the entry from the map, the size accounting and
// the recency list. Caller must hold the write lock and the recency
// mutex.
func (p *Pool) removeLocked(e *entry) {
	delete(p.entries, e.path)
	p.totalSize -= e.size
	if e.elem != nil {
		p.recency.Remove(e.elem)
		e.elem = nil
	}
}

func (p *Pool) touchRecency(e *entry) {
	p.recencyMu.Lock()
	if e.elem != nil {
		p.recency.MoveToFront(e.elem)
	}
	p.recencyMu.Unlock()
}
