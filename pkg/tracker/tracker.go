// Package tracker resolves work-item metadata from project trackers.
// It normalizes tracker-specific ticket objects into a single Ticket
// view so the prompt layer never sees per-tracker shapes.
package tracker

import (
	"context"
	"fmt"
	"strings"
)

// Type identifies a supported tracker backend.
type Type string

const (
	// TypeClickUp is the ClickUp tracker (ticket IDs carry a CU- prefix).
	TypeClickUp Type = "clickup"
	// TypeJira is the Jira tracker (ticket IDs are issue keys like PROJ-123).
	TypeJira Type = "jira"
)

// ParseType converts a user-supplied tracker name into a Type.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeClickUp:
		return TypeClickUp, nil
	case TypeJira:
		return TypeJira, nil
	default:
		return "", fmt.Errorf("unknown tracker type %q (supported: clickup, jira)", s)
	}
}

// Ticket is the normalized view of a work item. Description and Status
// may be empty when the tracker does not populate them.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      string
}

// Client is the single-ticket lookup surface the resolver needs. A nil
// ticket with a nil error means the ticket does not exist.
type Client interface {
	GetTicket(ctx context.Context, id string) (*Ticket, error)
}
