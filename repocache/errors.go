package repocache

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by Get once the pool's context is cancelled.
var ErrClosed = errors.New("repository pool is closed")

// PathError indicates the given path could not be resolved to a
// repository location. It is returned before any cache interaction and
// never mutates pool state or statistics.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("unable to resolve repository path %q err:%v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// OpenError indicates the backend failed to open the repository at an
// existing path. No entry is cached for the path but the open attempt is
// still counted in the pool statistics.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("unable to open repository %q err:%v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
