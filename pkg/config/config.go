// Package config loads pullpilot settings from a repository-local YAML
// file, the environment, and CLI flags. Precedence is flags over
// environment over file over defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pullpilot-run/pullpilot/pkg/log"
)

// Config file names probed under <repo>/.github/.
var configFileNames = []string{"pullpilot.yaml", "pullpilot.yml"}

// GitSettings configures the local repository.
type GitSettings struct {
	// RepoPath is the path to the git repository.
	RepoPath string `yaml:"repo_path"`
	// BaseBranch is the branch pull requests target.
	BaseBranch string `yaml:"base_branch"`
	// BranchName overrides the current branch as the PR head.
	BranchName string `yaml:"branch_name"`
}

// GitHubSettings configures the GitHub API client.
type GitHubSettings struct {
	Token string `yaml:"token"`
	// Repo is the repository in owner/repo form.
	Repo string `yaml:"repo"`
	// BaseURL points at a GitHub Enterprise instance when set.
	BaseURL string `yaml:"base_url"`
	// Draft opens pull requests as drafts.
	Draft bool `yaml:"draft"`
}

// AISettings configures the language-model client.
type AISettings struct {
	Provider    string  `yaml:"provider"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// TrackerSettings configures the work-tracker client. All fields are
// optional; without a type no ticket enrichment happens.
type TrackerSettings struct {
	Type    string `yaml:"type"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	// Username is the account email for trackers with basic auth.
	Username string `yaml:"username"`
}

// Settings is the full pullpilot configuration.
type Settings struct {
	Git      GitSettings     `yaml:"git"`
	GitHub   GitHubSettings  `yaml:"github"`
	AI       AISettings      `yaml:"ai"`
	Tracker  TrackerSettings `yaml:"tracker"`
	LogLevel string          `yaml:"log_level"`
}

// Default returns the baseline settings.
func Default() Settings {
	return Settings{
		Git: GitSettings{
			RepoPath:   ".",
			BaseBranch: "main",
		},
		AI: AISettings{
			Provider: "claude",
		},
		LogLevel: "info",
	}
}

// FindConfigFile returns the conventional config file under
// <repoPath>/.github/, or "" when none exists.
func FindConfigFile(repoPath string) string {
	for _, name := range configFileNames {
		path := filepath.Join(repoPath, ".github", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads settings from the YAML file at path, layered over the
// defaults. An empty path returns the defaults unchanged.
func Load(path string) (Settings, error) {
	settings := Default()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	log.Debug("loaded config file", "path", path)
	return settings, nil
}

// ApplyEnv overlays PULLPILOT_* environment variables onto s. The
// GitHub token additionally falls back to GITHUB_TOKEN and GH_TOKEN.
func (s *Settings) ApplyEnv() {
	envOverride(&s.Git.RepoPath, "PULLPILOT_REPO_PATH")
	envOverride(&s.Git.BaseBranch, "PULLPILOT_BASE_BRANCH")
	envOverride(&s.Git.BranchName, "PULLPILOT_BRANCH_NAME")

	envOverride(&s.GitHub.Token, "PULLPILOT_GITHUB_TOKEN")
	envOverride(&s.GitHub.Repo, "PULLPILOT_GITHUB_REPO")
	envOverride(&s.GitHub.BaseURL, "PULLPILOT_GITHUB_BASE_URL")
	if s.GitHub.Token == "" {
		envOverride(&s.GitHub.Token, "GITHUB_TOKEN")
	}
	if s.GitHub.Token == "" {
		envOverride(&s.GitHub.Token, "GH_TOKEN")
	}

	envOverride(&s.AI.Provider, "PULLPILOT_AI_PROVIDER")
	envOverride(&s.AI.APIKey, "PULLPILOT_AI_API_KEY")
	envOverride(&s.AI.Model, "PULLPILOT_AI_MODEL")

	envOverride(&s.Tracker.Type, "PULLPILOT_TRACKER_TYPE")
	envOverride(&s.Tracker.APIKey, "PULLPILOT_TRACKER_API_KEY")
	envOverride(&s.Tracker.BaseURL, "PULLPILOT_TRACKER_BASE_URL")
	envOverride(&s.Tracker.Username, "PULLPILOT_TRACKER_USERNAME")

	envOverride(&s.LogLevel, "PULLPILOT_LOG_LEVEL")
}

func envOverride(target *string, name string) {
	if value := os.Getenv(name); value != "" {
		*target = value
	}
}

// Validate checks that the settings can drive a workflow run.
func (s *Settings) Validate() error {
	if s.GitHub.Token == "" {
		return fmt.Errorf("github token is required (set github.token, PULLPILOT_GITHUB_TOKEN, or GITHUB_TOKEN)")
	}
	if s.GitHub.Repo == "" {
		return fmt.Errorf("github repository is required (set github.repo or PULLPILOT_GITHUB_REPO, in owner/repo form)")
	}
	if s.Git.BaseBranch == "" {
		return fmt.Errorf("base branch is required")
	}
	return nil
}
