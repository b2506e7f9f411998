package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/pullpilot-run/pullpilot/pkg/log"
)

// BranchCommits returns the commits reachable from feature that are not
// reachable from base, newest first. The merge-base commit itself is
// never included. Branches with no common ancestor yield an empty
// result, not an error.
func (h *Handler) BranchCommits(feature, base string) ([]Commit, error) {
	refs, err := h.Refs()
	if err != nil {
		return nil, err
	}

	featureHash, ok := resolveRef(refs, refCandidates(feature))
	if !ok {
		return nil, &NotFoundError{Ref: feature}
	}
	baseHash, ok := resolveRef(refs, refCandidates(base))
	if !ok {
		return nil, &NotFoundError{Ref: base}
	}

	mergeBase, err := h.mergeBase(featureHash, baseHash)
	if err != nil {
		return nil, err
	}
	if mergeBase == nil {
		log.Warn("no merge base between branches", "feature", feature, "base", base)
		return []Commit{}, nil
	}

	log.Debug("resolved merge base", "feature", feature, "base", base, "hash", mergeBase.Hash.String())

	iter, err := h.repo.Log(&gogit.LogOptions{
		From:  featureHash,
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk commits of %s: %w", feature, err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		// Traversal stops at the merge base; everything at or
		// before it belongs to base history.
		if c.Hash == mergeBase.Hash {
			return storer.ErrStop
		}
		commits = append(commits, convertCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect commits of %s: %w", feature, err)
	}

	log.Info("collected branch commits", "branch", feature, "count", len(commits))
	return commits, nil
}

// mergeBase returns the nearest common ancestor of the two commits, or
// nil when the histories are unrelated.
func (h *Handler) mergeBase(a, b plumbing.Hash) (*object.Commit, error) {
	commitA, err := h.repo.CommitObject(a)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", a, err)
	}
	commitB, err := h.repo.CommitObject(b)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", b, err)
	}

	bases, err := commitA.MergeBase(commitB)
	if err != nil {
		return nil, fmt.Errorf("failed to compute merge base: %w", err)
	}
	if len(bases) == 0 {
		return nil, nil
	}
	return bases[0], nil
}
