package git

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/pullpilot-run/pullpilot/pkg/log"
)

var conflictPattern = regexp.MustCompile(`(?i)CONFLICT|Automatic merge failed`)

// IsBranchOutdated reports whether branch is missing commits present on
// base. The base tip is taken from the remote-tracking ref when one
// exists. Unrelated histories and resolution errors both count as
// outdated; treating them as current would skip a needed update.
func (h *Handler) IsBranchOutdated(branch, base string) bool {
	refs, err := h.Refs()
	if err != nil {
		log.Error("failed to list refs while checking branch freshness", "error", err)
		return true
	}

	branchHash, ok := resolveRef(refs, refCandidates(branch))
	if !ok {
		log.Warn("branch not found while checking freshness", "branch", branch)
		return true
	}
	baseHash, ok := resolveRef(refs, remoteFirstCandidates(base))
	if !ok {
		log.Warn("base branch not found while checking freshness", "base", base)
		return true
	}

	mergeBase, err := h.mergeBase(branchHash, baseHash)
	if err != nil {
		log.Error("failed to compute merge base while checking freshness", "error", err)
		return true
	}
	if mergeBase == nil {
		log.Warn("no common ancestor between branch and base", "branch", branch, "base", base)
		return true
	}

	switch mergeBase.Hash {
	case branchHash:
		// Branch tip is an ancestor of base: strictly behind.
		log.Info("branch is behind base", "branch", branch, "base", base)
		return true
	case baseHash:
		log.Debug("branch is ahead of base", "branch", branch, "base", base)
		return false
	default:
		log.Debug("branch has diverged from base", "branch", branch, "base", base)
		return false
	}
}

// FetchAndMerge fetches base from origin and merges the remote-tracking
// ref into branch, fast-forwarding when possible. Returns true when a
// merge happened, false when the branch was already up to date. A
// conflicted merge surfaces as *ConflictError.
func (h *Handler) FetchAndMerge(branch, base string) (bool, error) {
	remoteRef := "origin/" + base

	current, err := h.CurrentBranch()
	if err != nil {
		return false, err
	}
	if current != branch {
		log.Info("switching branch before merge", "from", current, "to", branch)
		if out, err := h.gitCommand("checkout", branch); err != nil {
			return false, fmt.Errorf("failed to checkout %s: %w\noutput: %s", branch, err, out)
		}
	}

	log.Info("fetching base branch from origin", "base", base)
	if out, err := h.gitCommand("fetch", "origin", base); err != nil {
		return false, fmt.Errorf("failed to fetch origin/%s: %w\noutput: %s", base, err, out)
	}

	// Prefer a fast-forward; fall back to a real merge when the
	// branch has local commits.
	if out, err := h.gitCommand("merge", "--ff-only", remoteRef); err == nil {
		if alreadyUpToDate(out) {
			log.Info("branch already up to date with base", "branch", branch, "base", base)
			return false, nil
		}
		log.Info("fast-forwarded branch onto base", "branch", branch, "base", base)
		return true, nil
	}

	out, err := h.gitCommand("merge", remoteRef, "-m", fmt.Sprintf("Merge branch %q into %s", remoteRef, branch))
	if err != nil {
		if conflictPattern.MatchString(out) {
			log.Error("merge conflicts detected", "branch", branch, "ref", remoteRef)
			return false, &ConflictError{Branch: branch, Ref: remoteRef}
		}
		return false, fmt.Errorf("failed to merge %s into %s: %w\noutput: %s", remoteRef, branch, err, out)
	}
	if alreadyUpToDate(out) {
		log.Info("branch already up to date with base", "branch", branch, "base", base)
		return false, nil
	}

	log.Info("merged base into branch", "branch", branch, "base", base)
	return true, nil
}

func alreadyUpToDate(output string) bool {
	return strings.Contains(output, "Already up to date")
}

func (h *Handler) gitCommand(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = h.path
	out, err := cmd.CombinedOutput()
	return string(out), err
}
