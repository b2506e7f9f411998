package github

import (
	"context"

	"github.com/google/go-github/v68/github"

	"github.com/pullpilot-run/pullpilot/pkg/log"
)

// PRInfo is the normalized view of a pull request.
type PRInfo struct {
	Number  int
	Title   string
	Body    string
	State   string
	HTMLURL string
	HeadRef string
	BaseRef string
	Draft   bool
}

// NewPullRequest describes a pull request to create.
type NewPullRequest struct {
	Title string
	Body  string
	Base  string
	Head  string
	Draft bool
}

// FindOpenPullRequest returns the open pull request whose head is
// headBranch, or nil when none exists.
func (c *Client) FindOpenPullRequest(ctx context.Context, headBranch string) (*PRInfo, error) {
	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		prs, resp, err := c.gh.PullRequests.List(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, wrapAPIError(err, "failed to list pull requests")
		}

		for _, pr := range prs {
			if pr.GetHead().GetRef() == headBranch {
				log.Debug("found open pull request for branch", "branch", headBranch, "number", pr.GetNumber())
				return convertFromGitHubPR(pr), nil
			}
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return nil, nil
}

// CreatePullRequest opens a pull request from newPR.Head into
// newPR.Base.
func (c *Client) CreatePullRequest(ctx context.Context, newPR *NewPullRequest) (*PRInfo, error) {
	pr, _, err := c.gh.PullRequests.Create(ctx, c.owner, c.repo, &github.NewPullRequest{
		Title: github.Ptr(newPR.Title),
		Body:  github.Ptr(newPR.Body),
		Base:  github.Ptr(newPR.Base),
		Head:  github.Ptr(newPR.Head),
		Draft: github.Ptr(newPR.Draft),
	})
	if err != nil {
		return nil, wrapAPIError(err, "failed to create pull request")
	}

	log.Info("created pull request", "number", pr.GetNumber(), "url", pr.GetHTMLURL())
	return convertFromGitHubPR(pr), nil
}

func convertFromGitHubPR(pr *github.PullRequest) *PRInfo {
	if pr == nil {
		return nil
	}
	return &PRInfo{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		State:   pr.GetState(),
		HTMLURL: pr.GetHTMLURL(),
		HeadRef: pr.GetHead().GetRef(),
		BaseRef: pr.GetBase().GetRef(),
		Draft:   pr.GetDraft(),
	}
}
