package repocache

import (
	"context"
	"time"
)

// sweepLoop periodically reclaims idle entries until ctx is cancelled.
// It only runs when an idle TTL is configured; without it eviction is
// purely admission driven.
func (p *Pool) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(p.conf.IdleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sweepIdle()
		}
	}
}

// sweepIdle evicts unreferenced entries which have not been used within
// the idle TTL
func (p *Pool) sweepIdle() {
	cutoff := time.Now().Add(-p.conf.IdleTTL)

	var evicted []*entry

	p.lock.Lock()
	p.recencyMu.Lock()
	for el := p.recency.Back(); el != nil; {
		prev := el.Prev()
		e := el.Value.(*entry)
		if e.refs.Load() == 0 && e.lastUsedAt().Before(cutoff) {
			p.removeLocked(e)
			evicted = append(evicted, e)
		}
		el = prev
	}
	p.recencyMu.Unlock()
	resident := len(p.entries)
	p.lock.Unlock()

	recordEvictions(len(evicted))
	setResident(resident)

	for _, e := range evicted {
		p.log.Debug("evicted idle repository", "path", e.path, "lastUsed", e.lastUsedAt())
	}
}
