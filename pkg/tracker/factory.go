package tracker

import (
	"fmt"
	"net/http"

	"github.com/pullpilot-run/pullpilot/pkg/tracker/clickup"
	"github.com/pullpilot-run/pullpilot/pkg/tracker/jira"
)

// Config carries the credentials a tracker client needs. Only some
// fields apply to each tracker: ClickUp needs APIKey; Jira needs
// BaseURL, Username (account email), and APIKey.
type Config struct {
	APIKey   string
	BaseURL  string
	Username string

	// HTTPClient overrides the default transport. Mainly for tests.
	HTTPClient *http.Client
}

var constructors = map[Type]func(Config) (Client, error){
	TypeClickUp: newClickUpClient,
	TypeJira:    newJiraClient,
}

// NewClient builds the tracker client for the given type.
func NewClient(trackerType Type, cfg Config) (Client, error) {
	construct, ok := constructors[trackerType]
	if !ok {
		return nil, fmt.Errorf("unknown tracker type %q (supported: clickup, jira)", trackerType)
	}
	return construct(cfg)
}

func newClickUpClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("clickup tracker requires an API key")
	}
	opts := []clickup.Option{}
	if cfg.BaseURL != "" {
		opts = append(opts, clickup.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, clickup.WithHTTPClient(cfg.HTTPClient))
	}
	return clickUpClient{api: clickup.NewClient(cfg.APIKey, opts...)}, nil
}

func newJiraClient(cfg Config) (Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("jira tracker requires a base URL")
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("jira tracker requires a username (account email)")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("jira tracker requires an API token")
	}
	opts := []jira.Option{}
	if cfg.HTTPClient != nil {
		opts = append(opts, jira.WithHTTPClient(cfg.HTTPClient))
	}
	return jiraClient{api: jira.NewClient(cfg.BaseURL, cfg.Username, cfg.APIKey, opts...)}, nil
}
