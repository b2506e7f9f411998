package tracker

import (
	"context"

	"github.com/pullpilot-run/pullpilot/pkg/tracker/clickup"
	"github.com/pullpilot-run/pullpilot/pkg/tracker/jira"
)

// One mapping function per tracker variant. The adapters below bind a
// concrete API client to its mapping so the resolver only ever sees
// normalized Tickets.

func ticketFromClickUpTask(task *clickup.Task) *Ticket {
	if task == nil {
		return nil
	}
	description := task.TextContent
	if description == "" {
		description = task.Description
	}
	return &Ticket{
		ID:          task.ID,
		Title:       task.Name,
		Description: description,
		Status:      task.Status.Status,
	}
}

func ticketFromJiraIssue(issue *jira.Issue) *Ticket {
	if issue == nil {
		return nil
	}
	return &Ticket{
		ID:          issue.Key,
		Title:       issue.Fields.Summary,
		Description: issue.Fields.Description,
		Status:      issue.Fields.Status.Name,
	}
}

type clickUpClient struct {
	api *clickup.Client
}

func (c clickUpClient) GetTicket(ctx context.Context, id string) (*Ticket, error) {
	task, err := c.api.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return ticketFromClickUpTask(task), nil
}

type jiraClient struct {
	api *jira.Client
}

func (c jiraClient) GetTicket(ctx context.Context, id string) (*Ticket, error) {
	issue, err := c.api.GetIssue(ctx, id)
	if err != nil {
		return nil, err
	}
	return ticketFromJiraIssue(issue), nil
}
