package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/utilitywarehouse/git-repo-cache/internal/utils"
)

// ErrNotARepository indicates the given path exists but does not contain
// a git repository.
var ErrNotARepository = errors.New("path is not a git repository")

// Repository is an opened read-only repository context. It owns the
// backend storage and the decoded object cache for one repository on
// disk. The context itself performs no queries; obtain a LocalView per
// logical operation with NewLocal.
type Repository struct {
	path   string            // path the repository was opened at
	gitDir string            // resolved git dir backing the context
	size   int64             // on-disk size of the git dir, measured at open
	storer *filesystem.Storage
	wt     billy.Filesystem // nil for bare repositories
}

// Open opens the git repository at the given path with the given backend
// tunables. Bare repositories, worktrees and linked worktrees (".git"
// file) are supported.
func Open(path string, conf Config) (*Repository, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	gitDir, wtDir, err := discoverGitDir(path, conf.DetectDotGit)
	if err != nil {
		return nil, err
	}

	objCache := cache.NewObjectLRUDefault()
	if conf.ObjectCacheSizeMiB > 0 {
		objCache = cache.NewObjectLRU(cache.FileSize(conf.ObjectCacheSizeMiB) * cache.MiByte)
	}

	s := filesystem.NewStorage(osfs.New(gitDir), objCache)

	var wt billy.Filesystem
	if wtDir != "" {
		wt = osfs.New(wtDir)
	}

	// Open reads HEAD from the storage, so a dir which merely looks like
	// a repository is rejected here
	if _, err := gogit.Open(s, wt); err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotARepository, path)
		}
		return nil, fmt.Errorf("unable to open repository at %s err:%w", path, err)
	}

	size, err := utils.DirSize(gitDir)
	if err != nil {
		return nil, err
	}

	return &Repository{
		path:   path,
		gitDir: gitDir,
		size:   size,
		storer: s,
		wt:     wt,
	}, nil
}

// Path returns the path the repository was opened at
func (r *Repository) Path() string {
	return r.path
}

// GitDir returns the git dir backing the repository context
func (r *Repository) GitDir() string {
	return r.gitDir
}

// SizeOnDisk returns the on-disk size of the git dir in bytes, measured
// when the repository was opened
func (r *Repository) SizeOnDisk() int64 {
	return r.size
}

// NewLocal returns a view of the repository scoped to one logical
// operation. Views share the repository's storage and decoded object
// cache but must be confined to the calling goroutine and must not be
// retained across operations.
func (r *Repository) NewLocal() (*LocalView, error) {
	repo, err := gogit.Open(r.storer, r.wt)
	if err != nil {
		return nil, fmt.Errorf("unable to open local view of %s err:%w", r.path, err)
	}
	return &LocalView{repo: repo}, nil
}

// discoverGitDir locates the git dir for the given path. It returns the
// git dir and the worktree dir, the latter empty for bare repositories.
// With detect set the directory tree is walked upwards until a
// repository is found.
func discoverGitDir(path string, detect bool) (string, string, error) {
	for {
		dotGit := filepath.Join(path, ".git")
		fi, err := os.Stat(dotGit)
		switch {
		case err == nil && fi.IsDir():
			return dotGit, path, nil
		case err == nil:
			// ".git" file of a linked worktree or submodule
			gitDir, err := readGitDirFile(dotGit)
			if err != nil {
				return "", "", err
			}
			return gitDir, path, nil
		case !os.IsNotExist(err):
			return "", "", err
		}

		if isBareGitDir(path) {
			return path, "", nil
		}

		if !detect {
			return "", "", fmt.Errorf("%w: %s", ErrNotARepository, path)
		}

		parent := filepath.Dir(path)
		if parent == path {
			return "", "", fmt.Errorf("%w: %s", ErrNotARepository, path)
		}
		path = parent
	}
}

// isBareGitDir reports whether path itself looks like a git dir
func isBareGitDir(path string) bool {
	if fi, err := os.Stat(filepath.Join(path, "objects")); err != nil || !fi.IsDir() {
		return false
	}
	if _, err := os.Stat(filepath.Join(path, "HEAD")); err != nil {
		return false
	}
	return true
}

// readGitDirFile parses a ".git" file pointing at the real git dir.
// expected content is "gitdir: <path>", relative paths are resolved
// against the dir containing the file
func readGitDirFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	const prefix = "gitdir:"
	line := strings.TrimSpace(string(data))
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("invalid .git file at %s", path)
	}

	gitDir := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	if gitDir == "" {
		return "", fmt.Errorf("invalid .git file at %s", path)
	}
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(filepath.Dir(path), gitDir)
	}
	return gitDir, nil
}
