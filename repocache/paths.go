package repocache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/utilitywarehouse/git-repo-cache/internal/utils"
)

const (
	pathCacheSize = 4096
	// resolved paths can go stale when symlinks are repointed, keep them
	// briefly
	pathCacheTTL = time.Minute
)

// pathCache memoises canonical path resolution. Resolving symlinks is
// syscall heavy and Get is called with the same handful of spellings
// over and over, so results are kept in a small expirable LRU.
type pathCache struct {
	cache *expirable.LRU[string, string]
}

func newPathCache() *pathCache {
	return &pathCache{
		cache: expirable.NewLRU[string, string](pathCacheSize, nil, pathCacheTTL),
	}
}

// canonical returns the canonical form of the given path. Failures are
// never cached.
func (pc *pathCache) canonical(path string) (string, error) {
	if canon, ok := pc.cache.Get(path); ok {
		return canon, nil
	}

	canon, err := utils.CanonicalPath(path)
	if err != nil {
		return "", err
	}

	pc.cache.Add(path, canon)
	return canon, nil
}
