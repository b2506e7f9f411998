package git

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// testRepo is a scratch repository with helpers for building commit
// graphs. Commit times increase monotonically so traversal order is
// deterministic.
type testRepo struct {
	t       *testing.T
	repo    *gogit.Repository
	dir     string
	handler *Handler
	clock   time.Time
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	handler := &Handler{repo: repo, path: dir}
	return &testRepo{
		t:       t,
		repo:    repo,
		dir:     dir,
		handler: handler,
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *testRepo) commit(name, message string) plumbing.Hash {
	r.t.Helper()
	r.clock = r.clock.Add(time.Minute)

	path := filepath.Join(r.dir, name)
	if err := os.WriteFile(path, []byte(message), 0o644); err != nil {
		r.t.Fatalf("failed to write file: %v", err)
	}
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("failed to get worktree: %v", err)
	}
	if _, err := wt.Add(name); err != nil {
		r.t.Fatalf("failed to stage %s: %v", name, err)
	}
	sig := &object.Signature{Name: "Test Author", Email: "author@example.com", When: r.clock}
	hash, err := wt.Commit(message, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		r.t.Fatalf("failed to commit: %v", err)
	}
	return hash
}

func (r *testRepo) checkout(branch string, create bool) {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("failed to get worktree: %v", err)
	}
	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	})
	if err != nil {
		r.t.Fatalf("failed to checkout %s: %v", branch, err)
	}
}

func TestCurrentBranch(t *testing.T) {
	r := newTestRepo(t)
	r.commit("a.txt", "initial commit")
	r.checkout("feature/login", true)

	got, err := r.handler.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch() error = %v", err)
	}
	if got != "feature/login" {
		t.Errorf("CurrentBranch() = %q, want %q", got, "feature/login")
	}
}

func TestBranchCommits(t *testing.T) {
	r := newTestRepo(t)
	base := r.commit("a.txt", "initial commit")
	r.checkout("feature/work", true)
	c1 := r.commit("b.txt", "add feature part one")
	c2 := r.commit("c.txt", "add feature part two")

	commits, err := r.handler.BranchCommits("feature/work", "master")
	if err != nil {
		t.Fatalf("BranchCommits() error = %v", err)
	}

	if len(commits) != 2 {
		t.Fatalf("BranchCommits() returned %d commits, want 2", len(commits))
	}
	// Newest first; merge base excluded.
	if commits[0].Hash != c2.String() {
		t.Errorf("commits[0].Hash = %s, want %s", commits[0].Hash, c2)
	}
	if commits[1].Hash != c1.String() {
		t.Errorf("commits[1].Hash = %s, want %s", commits[1].Hash, c1)
	}
	for _, c := range commits {
		if c.Hash == base.String() {
			t.Errorf("merge base commit %s leaked into result", base)
		}
	}
}

func TestBranchCommitsFieldMapping(t *testing.T) {
	r := newTestRepo(t)
	r.commit("a.txt", "initial commit")
	r.checkout("feature/map", true)
	hash := r.commit("b.txt", "map fields")

	commits, err := r.handler.BranchCommits("feature/map", "master")
	if err != nil {
		t.Fatalf("BranchCommits() error = %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("BranchCommits() returned %d commits, want 1", len(commits))
	}

	c := commits[0]
	if c.Hash != hash.String() {
		t.Errorf("Hash = %s, want %s", c.Hash, hash)
	}
	if c.ShortHash != hash.String()[:7] {
		t.Errorf("ShortHash = %s, want %s", c.ShortHash, hash.String()[:7])
	}
	if c.Message != "map fields" {
		t.Errorf("Message = %q, want %q", c.Message, "map fields")
	}
	if c.Author.Name != "Test Author" || c.Author.Email != "author@example.com" {
		t.Errorf("Author = %+v, want Test Author <author@example.com>", c.Author)
	}
	if c.Committer.Name != "Test Author" {
		t.Errorf("Committer.Name = %q, want %q", c.Committer.Name, "Test Author")
	}
	if c.CommittedDate == 0 || c.AuthoredDate == 0 {
		t.Errorf("dates not populated: committed=%d authored=%d", c.CommittedDate, c.AuthoredDate)
	}
}

func TestBranchCommitsDivergedHistories(t *testing.T) {
	r := newTestRepo(t)
	r.commit("a.txt", "initial commit")
	r.checkout("feature/diverged", true)
	c1 := r.commit("b.txt", "feature commit")
	r.checkout("master", false)
	baseOnly := r.commit("d.txt", "base moved on")

	commits, err := r.handler.BranchCommits("feature/diverged", "master")
	if err != nil {
		t.Fatalf("BranchCommits() error = %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("BranchCommits() returned %d commits, want 1", len(commits))
	}
	if commits[0].Hash != c1.String() {
		t.Errorf("commits[0].Hash = %s, want %s", commits[0].Hash, c1)
	}
	for _, c := range commits {
		if c.Hash == baseOnly.String() {
			t.Errorf("base-only commit %s leaked into result", baseOnly)
		}
	}
}

func TestBranchCommitsMissingRefs(t *testing.T) {
	r := newTestRepo(t)
	r.commit("a.txt", "initial commit")

	// Feature branch is checked before base.
	_, err := r.handler.BranchCommits("no-such-branch", "also-missing")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("BranchCommits() error = %v, want *NotFoundError", err)
	}
	if notFound.Ref != "no-such-branch" {
		t.Errorf("NotFoundError.Ref = %q, want %q", notFound.Ref, "no-such-branch")
	}

	_, err = r.handler.BranchCommits("master", "missing-base")
	if !errors.As(err, &notFound) {
		t.Fatalf("BranchCommits() error = %v, want *NotFoundError", err)
	}
	if notFound.Ref != "missing-base" {
		t.Errorf("NotFoundError.Ref = %q, want %q", notFound.Ref, "missing-base")
	}
}

func TestIsBranchOutdated(t *testing.T) {
	r := newTestRepo(t)
	r.commit("a.txt", "initial commit")
	r.checkout("feature/behind", true)
	r.checkout("master", false)
	r.commit("b.txt", "base advanced")

	if !r.handler.IsBranchOutdated("feature/behind", "master") {
		t.Error("IsBranchOutdated() = false for a branch strictly behind base, want true")
	}
}

func TestIsBranchOutdatedAhead(t *testing.T) {
	r := newTestRepo(t)
	r.commit("a.txt", "initial commit")
	r.checkout("feature/ahead", true)
	r.commit("b.txt", "feature work")

	if r.handler.IsBranchOutdated("feature/ahead", "master") {
		t.Error("IsBranchOutdated() = true for a branch ahead of base, want false")
	}
}

func TestIsBranchOutdatedMissingBranch(t *testing.T) {
	r := newTestRepo(t)
	r.commit("a.txt", "initial commit")

	// Unresolvable branches count as outdated rather than silently
	// current.
	if !r.handler.IsBranchOutdated("ghost", "master") {
		t.Error("IsBranchOutdated() = false for a missing branch, want true")
	}
}

func TestRefsIncludesShortAndFullNames(t *testing.T) {
	r := newTestRepo(t)
	hash := r.commit("a.txt", "initial commit")

	refs, err := r.handler.Refs()
	if err != nil {
		t.Fatalf("Refs() error = %v", err)
	}
	for _, name := range []string{"master", "refs/heads/master"} {
		if got, ok := refs[name]; !ok || got != hash {
			t.Errorf("Refs()[%q] = %v (ok=%v), want %s", name, got, ok, hash)
		}
	}
}

func TestAlreadyUpToDate(t *testing.T) {
	if !alreadyUpToDate("Already up to date.\n") {
		t.Error("alreadyUpToDate() = false for up-to-date output, want true")
	}
	if alreadyUpToDate("Fast-forward\n a.txt | 1 +\n") {
		t.Error("alreadyUpToDate() = true for fast-forward output, want false")
	}
}

func TestConflictPattern(t *testing.T) {
	outputs := []string{
		"CONFLICT (content): Merge conflict in a.txt",
		"Automatic merge failed; fix conflicts and then commit the result.",
	}
	for _, out := range outputs {
		if !conflictPattern.MatchString(out) {
			t.Errorf("conflictPattern did not match %q", out)
		}
	}
	if conflictPattern.MatchString("Merge made by the 'ort' strategy.") {
		t.Error("conflictPattern matched a clean merge output")
	}
}
