package git

import "fmt"

// NotFoundError reports a branch reference that does not exist in the
// repository, local or remote-tracking.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("branch %q not found", e.Ref)
}

// ConflictError reports a merge that stopped on conflicting changes.
// Conflicts are never auto-resolved; the caller decides what to do with
// the working tree.
type ConflictError struct {
	Branch string
	Ref    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("merge conflicts detected between %q and %q", e.Branch, e.Ref)
}
