package repository

import (
	"fmt"
)

// Config holds backend tunables applied when opening a repository.
// Values are forwarded to the underlying git backend as is and are not
// interpreted by the pool.
type Config struct {
	// DetectDotGit walks up the directory tree from the given path until
	// a repository is found. When false the path itself must be the
	// repository (bare dir, worktree dir or a linked worktree)
	DetectDotGit bool `yaml:"detect_dot_git"`

	// ObjectCacheSizeMiB is the memory limit of the decoded git object
	// cache kept per repository. 0 uses the backend default
	ObjectCacheSizeMiB int `yaml:"object_cache_size_mib"`
}

// Validate verifies backend config values
func (c *Config) Validate() error {
	if c.ObjectCacheSizeMiB < 0 {
		return fmt.Errorf("object_cache_size_mib cannot be negative, got %d", c.ObjectCacheSizeMiB)
	}
	return nil
}
