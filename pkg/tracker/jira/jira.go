// Package jira is a minimal Jira REST client covering single-issue
// lookup.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pullpilot-run/pullpilot/pkg/log"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// Client talks to one Jira instance using basic auth.
type Client struct {
	baseURL    string
	email      string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a Jira client for the instance at baseURL
// (e.g. https://your-domain.atlassian.net), authenticated with the
// account email and an API token.
func NewClient(baseURL, email, apiToken string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		email:      email,
		apiToken:   apiToken,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IssueStatus is the nested status object on an issue.
type IssueStatus struct {
	Name string `json:"name"`
}

// IssueFields is the subset of issue fields the workflow uses.
type IssueFields struct {
	Summary     string      `json:"summary"`
	Description string      `json:"description"`
	Status      IssueStatus `json:"status"`
}

// Issue is a Jira issue as returned by the REST API.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// GetIssue fetches an issue by key (e.g. PROJ-123). A missing issue
// returns (nil, nil).
func (c *Client) GetIssue(ctx context.Context, issueKey string) (*Issue, error) {
	issueKey = strings.TrimSpace(issueKey)
	if issueKey == "" {
		return nil, nil
	}

	url := fmt.Sprintf("%s/rest/api/2/issue/%s", c.baseURL, issueKey)
	log.Debug("fetching Jira issue", "key", issueKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		log.Warn("Jira issue not found", "key", issueKey)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("jira api error (status %d): %s", resp.StatusCode, string(body))
	}

	var issue Issue
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return nil, fmt.Errorf("failed to decode Jira issue: %w", err)
	}
	return &issue, nil
}
