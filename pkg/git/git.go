// Package git implements the version-control layer of pullpilot on top
// of go-git, shelling out to system git only for fetch and merge where
// go-git has no porcelain equivalent.
package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Handler wraps a local git repository.
type Handler struct {
	repo *gogit.Repository
	path string
}

// Open opens the repository at path.
func Open(path string) (*Handler, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", path, err)
	}
	return &Handler{repo: repo, path: path}, nil
}

// Path returns the repository root path the handler was opened with.
func (h *Handler) Path() string {
	return h.path
}

// CurrentBranch returns the short name of the branch HEAD points at.
func (h *Handler) CurrentBranch() (string, error) {
	head, err := h.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch")
	}
	return head.Name().Short(), nil
}

// Refs returns every hash reference in the repository keyed by both its
// full name (refs/heads/main) and its short name (main, origin/main).
func (h *Handler) Refs() (map[string]plumbing.Hash, error) {
	iter, err := h.repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}

	refs := make(map[string]plumbing.Hash)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		refs[ref.Name().String()] = ref.Hash()
		refs[ref.Name().Short()] = ref.Hash()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk references: %w", err)
	}
	return refs, nil
}

// refCandidates lists the reference spellings tried when resolving a
// branch name, local first.
func refCandidates(branch string) []string {
	return []string{
		branch,
		"refs/heads/" + branch,
		"origin/" + branch,
		"refs/remotes/origin/" + branch,
	}
}

// remoteFirstCandidates prefers the remote-tracking ref. Used for base
// branches, whose authoritative tip lives on the remote.
func remoteFirstCandidates(branch string) []string {
	return []string{
		"refs/remotes/origin/" + branch,
		"origin/" + branch,
		branch,
		"refs/heads/" + branch,
	}
}

func resolveRef(refs map[string]plumbing.Hash, candidates []string) (plumbing.Hash, bool) {
	for _, name := range candidates {
		if hash, ok := refs[name]; ok {
			return hash, true
		}
	}
	return plumbing.ZeroHash, false
}
