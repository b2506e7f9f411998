package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pullpilot-run/pullpilot/pkg/agent"
	"github.com/pullpilot-run/pullpilot/pkg/ai"
	"github.com/pullpilot-run/pullpilot/pkg/config"
	"github.com/pullpilot-run/pullpilot/pkg/git"
	"github.com/pullpilot-run/pullpilot/pkg/github"
	"github.com/pullpilot-run/pullpilot/pkg/log"
	"github.com/pullpilot-run/pullpilot/pkg/prompt"
	"github.com/pullpilot-run/pullpilot/pkg/tracker"
)

var configPath string
var repoPath string
var baseBranch string
var branchName string
var githubToken string
var githubRepo string
var githubBaseURL string
var draft bool
var aiProvider string
var aiAPIKey string
var aiModel string
var trackerType string
var trackerAPIKey string
var trackerBaseURL string
var trackerUsername string
var logLevel string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Create an AI-drafted pull request for the current branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		log.Init(log.Config{Level: log.Level(settings.LogLevel)})
		defer log.Sync()

		if err := settings.Validate(); err != nil {
			return err
		}

		a, err := buildAgent(settings)
		if err != nil {
			return err
		}

		pr, err := a.Run(context.Background(), settings.Git.BranchName)
		if err != nil {
			return err
		}
		if pr == nil {
			fmt.Println("No pull request created.")
			return nil
		}
		fmt.Printf("Created pull request #%d: %s\n", pr.Number, pr.HTMLURL)
		return nil
	},
}

// loadSettings layers defaults, the config file, the environment, and
// CLI flags, in that order.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	path := configPath
	if path == "" {
		discoveryRoot := repoPath
		if discoveryRoot == "" {
			discoveryRoot = "."
		}
		path = config.FindConfigFile(discoveryRoot)
	}

	settings, err := config.Load(path)
	if err != nil {
		return settings, err
	}
	settings.ApplyEnv()

	flagOverride(&settings.Git.RepoPath, repoPath)
	flagOverride(&settings.Git.BaseBranch, baseBranch)
	flagOverride(&settings.Git.BranchName, branchName)
	flagOverride(&settings.GitHub.Token, githubToken)
	flagOverride(&settings.GitHub.Repo, githubRepo)
	flagOverride(&settings.GitHub.BaseURL, githubBaseURL)
	flagOverride(&settings.AI.Provider, aiProvider)
	flagOverride(&settings.AI.APIKey, aiAPIKey)
	flagOverride(&settings.AI.Model, aiModel)
	flagOverride(&settings.Tracker.Type, trackerType)
	flagOverride(&settings.Tracker.APIKey, trackerAPIKey)
	flagOverride(&settings.Tracker.BaseURL, trackerBaseURL)
	flagOverride(&settings.Tracker.Username, trackerUsername)
	flagOverride(&settings.LogLevel, logLevel)
	if cmd.Flags().Changed("draft") {
		settings.GitHub.Draft = draft
	}

	return settings, nil
}

func flagOverride(target *string, value string) {
	if value != "" {
		*target = value
	}
}

// buildAgent wires the workflow collaborators from settings.
func buildAgent(settings config.Settings) (*agent.Agent, error) {
	gitHandler, err := git.Open(settings.Git.RepoPath)
	if err != nil {
		return nil, err
	}

	var ghOpts []github.ClientOption
	if settings.GitHub.BaseURL != "" {
		ghOpts = append(ghOpts, github.WithBaseURL(settings.GitHub.BaseURL))
	}
	ghClient, err := github.NewClient(settings.GitHub.Token, settings.GitHub.Repo, ghOpts...)
	if err != nil {
		return nil, err
	}

	var trackerClient tracker.Client
	var trackerKind tracker.Type
	if settings.Tracker.Type != "" {
		trackerKind, err = tracker.ParseType(settings.Tracker.Type)
		if err != nil {
			return nil, err
		}
		trackerClient, err = tracker.NewClient(trackerKind, tracker.Config{
			APIKey:   settings.Tracker.APIKey,
			BaseURL:  settings.Tracker.BaseURL,
			Username: settings.Tracker.Username,
		})
		if err != nil {
			return nil, err
		}
	}
	resolver := tracker.NewResolver(trackerKind, trackerClient)

	var aiClient ai.Client
	if settings.AI.APIKey != "" {
		provider, err := ai.ParseProvider(settings.AI.Provider)
		if err != nil {
			return nil, err
		}
		aiClient, err = ai.NewClient(provider, ai.Config{
			APIKey:      settings.AI.APIKey,
			Model:       settings.AI.Model,
			Temperature: settings.AI.Temperature,
			MaxTokens:   settings.AI.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
	} else {
		log.Warn("no AI API key configured, PR content will use fallback text")
	}

	composer := prompt.NewComposer(gitHandler.Path())

	return agent.New(gitHandler, ghClient, resolver, composer, aiClient, agent.Config{
		BaseBranch: settings.Git.BaseBranch,
		Draft:      settings.GitHub.Draft,
	}), nil
}

var rootCmd = &cobra.Command{
	Use:   "pullpilot",
	Short: "pullpilot drafts pull requests from branch history with AI-generated content.",
}

func init() {
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: .github/pullpilot.yaml)")
	runCmd.Flags().StringVarP(&repoPath, "repo-path", "p", "", "Path to the git repository (default: .)")
	runCmd.Flags().StringVarP(&baseBranch, "base-branch", "b", "", "Base branch pull requests target (default: main)")
	runCmd.Flags().StringVarP(&branchName, "branch-name", "n", "", "Head branch (default: current branch)")
	runCmd.Flags().StringVar(&githubToken, "github-token", "", "GitHub API token (or GITHUB_TOKEN)")
	runCmd.Flags().StringVar(&githubRepo, "github-repo", "", "GitHub repository in owner/repo form")
	runCmd.Flags().StringVar(&githubBaseURL, "github-base-url", "", "GitHub Enterprise base URL")
	runCmd.Flags().BoolVar(&draft, "draft", false, "Open the pull request as a draft")
	runCmd.Flags().StringVar(&aiProvider, "ai-provider", "", "AI provider: gpt, claude, gemini (default: claude)")
	runCmd.Flags().StringVar(&aiAPIKey, "ai-api-key", "", "AI provider API key")
	runCmd.Flags().StringVar(&aiModel, "ai-model", "", "AI model override")
	runCmd.Flags().StringVar(&trackerType, "tracker", "", "Work tracker: clickup, jira")
	runCmd.Flags().StringVar(&trackerAPIKey, "tracker-api-key", "", "Work tracker API key")
	runCmd.Flags().StringVar(&trackerBaseURL, "tracker-base-url", "", "Work tracker base URL (Jira instance)")
	runCmd.Flags().StringVar(&trackerUsername, "tracker-username", "", "Work tracker account email (Jira)")
	runCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
