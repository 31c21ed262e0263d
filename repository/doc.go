// Package repository opens a local git repository into a read-only
// repository context backed by [go-git].
//
// A [Repository] owns the decoded object cache and storage for one
// repository on disk and is intended to be shared and reused, typically
// through the repocache pool. The backend storage is not safe for
// unsynchronised concurrent use, so callers never query a Repository
// directly; instead each logical operation obtains its own [LocalView]
// via NewLocal and keeps it confined to a single goroutine.
//
// [go-git]: https://github.com/go-git/go-git
package repository
