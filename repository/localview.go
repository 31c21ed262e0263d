package repository

import (
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// LocalView is a view of a repository context for one logical operation.
// It is not safe for concurrent use; callers obtain a fresh view per
// operation and never share it across goroutines. A view must not
// outlive the handle it was obtained from.
type LocalView struct {
	repo *gogit.Repository
}

// Object returns the object with the given hash regardless of its type
func (l *LocalView) Object(h plumbing.Hash) (object.Object, error) {
	return l.repo.Object(plumbing.AnyObject, h)
}

// ObjectHeader returns the type and size of the object with the given
// hash without decoding its payload
func (l *LocalView) ObjectHeader(h plumbing.Hash) (plumbing.ObjectType, int64, error) {
	eo, err := l.repo.Storer.EncodedObject(plumbing.AnyObject, h)
	if err != nil {
		return plumbing.InvalidObject, 0, err
	}
	return eo.Type(), eo.Size(), nil
}

// CommitObject returns the commit with the given hash
func (l *LocalView) CommitObject(h plumbing.Hash) (*object.Commit, error) {
	return l.repo.CommitObject(h)
}

// TreeObject returns the tree with the given hash
func (l *LocalView) TreeObject(h plumbing.Hash) (*object.Tree, error) {
	return l.repo.TreeObject(h)
}

// BlobObject returns the blob with the given hash
func (l *LocalView) BlobObject(h plumbing.Hash) (*object.Blob, error) {
	return l.repo.BlobObject(h)
}

// TagObject returns the annotated tag with the given hash
func (l *LocalView) TagObject(h plumbing.Hash) (*object.Tag, error) {
	return l.repo.TagObject(h)
}

// Head returns the resolved reference HEAD points at
func (l *LocalView) Head() (*plumbing.Reference, error) {
	return l.repo.Head()
}

// Reference returns the reference with the given name, resolving
// symbolic references to their hash
func (l *LocalView) Reference(name plumbing.ReferenceName) (*plumbing.Reference, error) {
	return l.repo.Reference(name, true)
}

// References returns an iterator over all repository references
func (l *LocalView) References() (storer.ReferenceIter, error) {
	return l.repo.References()
}

// ResolveRevision resolves a revision expression such as "HEAD",
// a branch or tag name, a short hash or "ref~n" to a commit hash
func (l *LocalView) ResolveRevision(rev string) (*plumbing.Hash, error) {
	return l.repo.ResolveRevision(plumbing.Revision(rev))
}

// Log returns a commit iterator based on the given options
func (l *LocalView) Log(opts *gogit.LogOptions) (object.CommitIter, error) {
	return l.repo.Log(opts)
}
