// Package github implements the remote-repository layer of pullpilot on
// top of go-github. The workflow only needs two operations: find the
// open pull request for a head branch, and create one.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// DefaultTimeout is the default HTTP timeout for GitHub API calls.
const DefaultTimeout = 30 * time.Second

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a GitHub Enterprise or test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client. The GitHub token is still
// injected through the oauth2 transport.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets a custom HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client talks to one GitHub repository.
type Client struct {
	owner      string
	repo       string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	gh         *github.Client
}

// NewClient creates a client for the repository named in 'owner/repo'
// form, authenticated with token.
func NewClient(token, repoName string, opts ...ClientOption) (*Client, error) {
	owner, repo, err := splitRepoName(repoName)
	if err != nil {
		return nil, err
	}

	c := &Client{
		owner:   owner,
		repo:    repo,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	httpClient := c.httpClient
	if httpClient == nil {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = c.timeout

	gh := github.NewClient(httpClient)
	if c.baseURL != "" {
		gh, err = gh.WithEnterpriseURLs(c.baseURL, c.baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub base URL %q: %w", c.baseURL, err)
		}
	}
	c.gh = gh
	return c, nil
}

// Owner returns the repository owner.
func (c *Client) Owner() string { return c.owner }

// Repo returns the repository name.
func (c *Client) Repo() string { return c.repo }

func splitRepoName(repoName string) (owner, repo string, err error) {
	parts := strings.Split(strings.TrimSpace(repoName), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository name %q (expected owner/repo)", repoName)
	}
	return parts[0], parts[1], nil
}
