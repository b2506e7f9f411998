package tracker

import (
	"context"

	"github.com/pullpilot-run/pullpilot/pkg/log"
)

// Resolver turns raw ticket IDs into normalized Tickets. Lookups that
// fail or come back empty are skipped, never fatal; ticket enrichment
// is optional context, not a precondition of the workflow.
type Resolver struct {
	trackerType Type
	client      Client
}

// NewResolver creates a resolver for the given tracker. A nil client
// means no tracker is configured and every Resolve returns an empty
// slice.
func NewResolver(trackerType Type, client Client) *Resolver {
	return &Resolver{trackerType: trackerType, client: client}
}

// Resolve fetches ticket details for each raw ID, preserving input
// order. IDs that cannot be formatted, looked up, or found are dropped
// with a warning.
func (r *Resolver) Resolve(ctx context.Context, rawIDs []string) []Ticket {
	tickets := []Ticket{}
	if r == nil || r.client == nil {
		log.Debug("no tracker client configured, skipping ticket resolution")
		return tickets
	}

	for _, rawID := range rawIDs {
		id := FormatTicketID(rawID, r.trackerType)
		if id == "" {
			log.Warn("skipping empty ticket ID", "raw", rawID)
			continue
		}

		ticket, err := r.client.GetTicket(ctx, id)
		if err != nil {
			log.Warn("failed to fetch ticket, skipping", "id", id, "error", err)
			continue
		}
		if ticket == nil {
			log.Warn("ticket not found, skipping", "id", id)
			continue
		}

		log.Debug("resolved ticket", "id", ticket.ID, "status", ticket.Status)
		tickets = append(tickets, *ticket)
	}
	return tickets
}
