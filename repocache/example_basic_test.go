package repocache_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/utilitywarehouse/git-repo-cache/repocache"
)

func Example_basic() {
	tmpRoot, err := os.MkdirTemp("", "repo-cache-example-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpRoot)

	// set up a repository with a single commit
	repoDir := filepath.Join(tmpRoot, "app")
	repo, err := gogit.PlainInit(repoDir, false)
	if err != nil {
		panic(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(filepath.Join(repoDir, "README.md"), []byte("example\n"), 0644); err != nil {
		panic(err)
	}
	if _, err := wt.Add("README.md"); err != nil {
		panic(err)
	}
	if _, err := wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "example", Email: "example@example.com", When: time.Now()},
	}); err != nil {
		panic(err)
	}

	config := `
max_entries: 10
repository:
  object_cache_size_mib: 16
`
	conf, err := repocache.Parse([]byte(config))
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	pool, err := repocache.New(ctx, conf, slog.Default())
	if err != nil {
		panic(err)
	}

	// each request obtains a handle and a local view for its queries
	serveRequest := func() {
		h, err := pool.Get(ctx, repoDir)
		if err != nil {
			panic(err)
		}
		defer h.Release()

		local, err := h.Local()
		if err != nil {
			panic(err)
		}

		head, err := local.Head()
		if err != nil {
			panic(err)
		}
		commit, err := local.CommitObject(head.Hash())
		if err != nil {
			panic(err)
		}
		_ = commit.Message
	}

	serveRequest()
	serveRequest()

	stats := pool.Stats()
	fmt.Println("cached", stats.CachedCount, "opens", stats.OpenCount, "hits", stats.HitCount)
	// Output: cached 1 opens 1 hits 1
}
