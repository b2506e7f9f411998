// Package prompt composes the instruction text sent to the language
// model. Composition has a templated path driven by prompt template
// assets and a deterministic fallback used when rendering fails.
package prompt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pullpilot-run/pullpilot/pkg/git"
	"github.com/pullpilot-run/pullpilot/pkg/log"
	"github.com/pullpilot-run/pullpilot/pkg/tracker"
)

const (
	titleTemplateName   = "summarize-as-clear-title.md"
	contentTemplateName = "summarize-change-content.md"

	// customTemplateDir, relative to the repository root, overrides the
	// built-in prompt templates when present.
	customTemplateDir = ".github/pullpilot/prompts"

	// prTemplatePath is the conventional GitHub PR template location.
	prTemplatePath = ".github/PULL_REQUEST_TEMPLATE.md"

	// Ticket descriptions longer than this are truncated in the
	// fallback prompt.
	maxFallbackDescription = 200
)

// ErrTemplateNotFound reports a missing prompt template. Unlike other
// composition errors it propagates to the caller: an absent template is
// a configuration fault, not something to paper over.
var ErrTemplateNotFound = errors.New("prompt template not found")

// Data is the composed prompt material. Title is a title-only prompt,
// Description the full prompt asking for both title and body.
type Data struct {
	Title       string
	Description string
}

// Composer builds prompts from commits and resolved tickets.
type Composer struct {
	repoPath string
	assets   fs.FS
}

// NewComposer creates a composer for the repository at repoPath using
// the built-in templates, unless the repository carries its own under
// .github/pullpilot/prompts/.
func NewComposer(repoPath string) *Composer {
	return &Composer{repoPath: repoPath, assets: builtinTemplates}
}

// NewComposerFromFS creates a composer with a custom template FS. The
// FS must serve templates under a templates/ prefix.
func NewComposerFromFS(repoPath string, assets fs.FS) *Composer {
	return &Composer{repoPath: repoPath, assets: assets}
}

// Compose renders the prompt for the given commits and tickets. A
// missing template propagates as ErrTemplateNotFound; any other
// rendering failure degrades to the deterministic fallback prompt.
func (c *Composer) Compose(commits []git.Commit, tickets []tracker.Ticket) (Data, error) {
	data, err := c.composeTemplated(commits, tickets)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return Data{}, err
		}
		log.Warn("templated prompt composition failed, using fallback", "error", err)
		return c.composeFallback(commits, tickets), nil
	}

	log.Debug("composed prompt from templates",
		"title_length", len(data.Title), "description_length", len(data.Description))
	return data, nil
}

type templateVars struct {
	AllCommits          string
	TaskTicketsDetails  string
	PullRequestTemplate string
}

func (c *Composer) composeTemplated(commits []git.Commit, tickets []tracker.Ticket) (Data, error) {
	vars := templateVars{
		AllCommits:          formatCommitLines(commits, ": "),
		PullRequestTemplate: c.readPRTemplate(),
	}

	ticketsJSON, err := json.MarshalIndent(ticketDetails(tickets), "", "  ")
	if err != nil {
		return Data{}, fmt.Errorf("failed to encode ticket details: %w", err)
	}
	vars.TaskTicketsDetails = string(ticketsJSON)

	title, err := c.renderTemplate(titleTemplateName, vars)
	if err != nil {
		return Data{}, err
	}
	description, err := c.renderTemplate(contentTemplateName, vars)
	if err != nil {
		return Data{}, err
	}

	return Data{Title: title, Description: description}, nil
}

func (c *Composer) renderTemplate(name string, vars templateVars) (string, error) {
	content, err := c.loadTemplate(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

// loadTemplate prefers a repository-local template over the built-in
// one. When the custom directory exists, every template must be there.
func (c *Composer) loadTemplate(name string) (string, error) {
	customDir := filepath.Join(c.repoPath, customTemplateDir)
	if info, err := os.Stat(customDir); err == nil && info.IsDir() {
		path := filepath.Join(customDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
			}
			return "", err
		}
		return string(data), nil
	}

	data, err := fs.ReadFile(c.assets, "templates/"+name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return "", err
	}
	return string(data), nil
}

func (c *Composer) readPRTemplate() string {
	path := filepath.Join(c.repoPath, prTemplatePath)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("failed to read pull request template", "path", path, "error", err)
		}
		return ""
	}
	log.Debug("including pull request template in prompt", "path", path)
	return string(data)
}

// composeFallback synthesizes a plain instruction prompt. It never
// fails.
func (c *Composer) composeFallback(commits []git.Commit, tickets []tracker.Ticket) Data {
	var sb strings.Builder
	sb.WriteString("I need you to generate a pull request title and description based on the following information:\n\n")

	sb.WriteString("## Commits\n")
	i := 0
	for _, commit := range commits {
		if commit.ShortHash == "" || commit.Message == "" {
			continue
		}
		i++
		fmt.Fprintf(&sb, "%d. %s - %s\n", i, commit.ShortHash, commit.Message)
	}
	sb.WriteString("\n")

	if len(tickets) > 0 {
		sb.WriteString("## Related Tickets\n")
		for i, ticket := range tickets {
			fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, ticket.ID, ticket.Title)
			if ticket.Description != "" {
				desc := ticket.Description
				if len(desc) > maxFallbackDescription {
					desc = desc[:maxFallbackDescription] + "..."
				}
				fmt.Fprintf(&sb, "   Description: %s\n", desc)
			}
			if ticket.Status != "" {
				fmt.Fprintf(&sb, "   Status: %s\n", ticket.Status)
			}
		}
		sb.WriteString("\n")
	}

	if prTemplate := c.readPRTemplate(); prTemplate != "" {
		fmt.Fprintf(&sb, "## Pull Request Template\n%s\n\n", prTemplate)
	}

	title := "Pull Request"
	if len(tickets) > 0 && tickets[0].Title != "" {
		title = "Fix: " + tickets[0].Title
	}

	return Data{Title: title, Description: sb.String()}
}

// formatCommitLines renders one line per commit joined by sep between
// hash and message. Commits missing either field are skipped.
func formatCommitLines(commits []git.Commit, sep string) string {
	var lines []string
	for _, commit := range commits {
		if commit.ShortHash == "" || commit.Message == "" {
			continue
		}
		lines = append(lines, commit.ShortHash+sep+commit.Message)
	}
	return strings.Join(lines, "\n")
}

type ticketDetail struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func ticketDetails(tickets []tracker.Ticket) []ticketDetail {
	details := make([]ticketDetail, 0, len(tickets))
	for _, t := range tickets {
		details = append(details, ticketDetail{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
		})
	}
	return details
}
