// Package agent drives the pull-request creation workflow: decide
// whether a PR should exist for a branch, gather commits and ticket
// context, generate content with the AI client, and open the PR.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/pullpilot-run/pullpilot/pkg/ai"
	"github.com/pullpilot-run/pullpilot/pkg/git"
	"github.com/pullpilot-run/pullpilot/pkg/github"
	"github.com/pullpilot-run/pullpilot/pkg/log"
	"github.com/pullpilot-run/pullpilot/pkg/prompt"
	"github.com/pullpilot-run/pullpilot/pkg/tracker"
)

// Fallback PR content used when AI generation fails or produces
// nothing parseable.
const fallbackBody = "Automated pull request."

func fallbackTitle(branch string) string {
	return "Update " + branch
}

// GitOperations is the version-control surface the workflow needs.
type GitOperations interface {
	CurrentBranch() (string, error)
	BranchCommits(featureBranch, baseBranch string) ([]git.Commit, error)
	IsBranchOutdated(branch, base string) bool
	FetchAndMerge(branch, base string) (bool, error)
}

// PullRequests is the remote-repository surface the workflow needs.
type PullRequests interface {
	FindOpenPullRequest(ctx context.Context, headBranch string) (*github.PRInfo, error)
	CreatePullRequest(ctx context.Context, newPR *github.NewPullRequest) (*github.PRInfo, error)
}

// TicketResolver fetches normalized ticket metadata for raw IDs.
type TicketResolver interface {
	Resolve(ctx context.Context, rawIDs []string) []tracker.Ticket
}

// Composer builds the AI prompt from commits and tickets.
type Composer interface {
	Compose(commits []git.Commit, tickets []tracker.Ticket) (prompt.Data, error)
}

// Config holds workflow settings.
type Config struct {
	// BaseBranch is the branch PRs target.
	BaseBranch string
	// Draft opens PRs as drafts.
	Draft bool
}

// Agent runs the PR creation workflow for one repository.
type Agent struct {
	git      GitOperations
	prs      PullRequests
	resolver TicketResolver
	composer Composer
	ai       ai.Client
	cfg      Config
}

// New assembles an Agent from its collaborators. The AI client may be
// nil, in which case every run uses the deterministic fallback
// content.
func New(gitOps GitOperations, prs PullRequests, resolver TicketResolver, composer Composer, aiClient ai.Client, cfg Config) *Agent {
	return &Agent{
		git:      gitOps,
		prs:      prs,
		resolver: resolver,
		composer: composer,
		ai:       aiClient,
		cfg:      cfg,
	}
}

// Run executes the workflow for branchName, defaulting to the
// repository's current branch. It returns the created PR, or nil when
// the run terminated without creating one: an open PR already exists,
// the merge hit conflicts, the branch has no commits beyond the base,
// or creation itself failed. Only configuration faults (such as a
// missing prompt template) surface as errors.
func (a *Agent) Run(ctx context.Context, branchName string) (*github.PRInfo, error) {
	if branchName == "" {
		current, err := a.git.CurrentBranch()
		if err != nil {
			return nil, fmt.Errorf("failed to determine current branch: %w", err)
		}
		branchName = current
	}
	log.Info("running PR creation workflow", "branch", branchName, "base", a.cfg.BaseBranch)

	outdated := a.git.IsBranchOutdated(branchName, a.cfg.BaseBranch)
	log.Debug("stale check complete", "branch", branchName, "outdated", outdated)

	existing, err := a.prs.FindOpenPullRequest(ctx, branchName)
	if err != nil {
		// The creation step is the real guard against duplicates; a
		// failed lookup is not fatal.
		log.Warn("failed to check for existing pull request", "error", err)
	}
	if existing != nil {
		log.Info("open pull request already exists, skipping",
			"branch", branchName, "number", existing.Number, "url", existing.HTMLURL)
		return nil, nil
	}

	if outdated {
		log.Info("branch is behind base, merging latest changes", "branch", branchName)
		merged, err := a.git.FetchAndMerge(branchName, a.cfg.BaseBranch)
		if err != nil {
			var conflict *git.ConflictError
			if errors.As(err, &conflict) {
				log.Error("merge conflicts detected, cannot create PR automatically", "error", err)
			} else {
				log.Error("failed to update branch from base", "error", err)
			}
			return nil, nil
		}
		log.Debug("branch updated from base", "branch", branchName, "merged", merged)
	}

	commits, err := a.git.BranchCommits(branchName, a.cfg.BaseBranch)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		log.Warn("no commits beyond base branch, skipping PR creation", "branch", branchName)
		return nil, nil
	}
	log.Info("collected branch commits", "branch", branchName, "count", len(commits))

	var tickets []tracker.Ticket
	if ticketID := tracker.ExtractTicketID(branchName); ticketID != "" {
		tickets = a.resolver.Resolve(ctx, []string{ticketID})
	} else {
		log.Debug("no ticket ID found in branch name", "branch", branchName)
	}

	title, body, err := a.generateContent(ctx, branchName, commits, tickets)
	if err != nil {
		return nil, err
	}

	return a.createPullRequest(ctx, branchName, title, body)
}

// generateContent composes the prompt and asks the AI for PR content.
// Everything except a missing prompt template degrades to the
// deterministic fallback title and body.
func (a *Agent) generateContent(ctx context.Context, branch string, commits []git.Commit, tickets []tracker.Ticket) (title, body string, err error) {
	promptData, err := a.composer.Compose(commits, tickets)
	if err != nil {
		if errors.Is(err, prompt.ErrTemplateNotFound) {
			return "", "", err
		}
		log.Error("prompt composition failed, using fallback content", "error", err)
		return fallbackTitle(branch), fallbackBody, nil
	}

	if a.ai == nil {
		log.Warn("no AI client configured, using fallback content")
		return fallbackTitle(branch), fallbackBody, nil
	}

	response, err := a.ai.GetContent(ctx, promptData.Description)
	if err != nil {
		log.Error("AI generation failed, using fallback content", "error", err)
		return fallbackTitle(branch), fallbackBody, nil
	}

	title = ParseTitle(response)
	body = ParseBody(response)
	if title == "" {
		log.Warn("AI response contained no title line, using fallback title")
		title = fallbackTitle(branch)
	}
	if body == "" {
		log.Warn("AI response contained no markdown block, using fallback body")
		body = fallbackBody
	}
	return title, body, nil
}

func (a *Agent) createPullRequest(ctx context.Context, branch, title, body string) (*github.PRInfo, error) {
	pr, err := a.prs.CreatePullRequest(ctx, &github.NewPullRequest{
		Title: title,
		Body:  body,
		Base:  a.cfg.BaseBranch,
		Head:  branch,
		Draft: a.cfg.Draft,
	})
	if err != nil {
		// Creation failures (including a racing duplicate PR) are
		// reported, not propagated.
		log.Error("failed to create pull request", "branch", branch, "error", err)
		return nil, nil
	}

	log.Info("pull request created", "number", pr.Number, "url", pr.HTMLURL)
	return pr, nil
}
