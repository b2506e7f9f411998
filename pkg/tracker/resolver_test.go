package tracker

import (
	"context"
	"errors"
	"testing"
)

// scriptedClient returns canned tickets by formatted ID. IDs in the
// fail set return an error; anything else unknown returns (nil, nil).
type scriptedClient struct {
	tickets map[string]*Ticket
	fail    map[string]bool
	calls   []string
}

func (c *scriptedClient) GetTicket(ctx context.Context, id string) (*Ticket, error) {
	c.calls = append(c.calls, id)
	if c.fail[id] {
		return nil, errors.New("tracker unavailable")
	}
	return c.tickets[id], nil
}

func TestResolve(t *testing.T) {
	client := &scriptedClient{
		tickets: map[string]*Ticket{
			"abc123": {ID: "abc123", Title: "Add login", Status: "in progress"},
			"def456": {ID: "def456", Title: "Fix typo", Status: "done"},
		},
	}
	r := NewResolver(TypeClickUp, client)

	tickets := r.Resolve(context.Background(), []string{"CU-abc123", "CU-def456"})
	if len(tickets) != 2 {
		t.Fatalf("Resolve() returned %d tickets, want 2", len(tickets))
	}
	// Input order preserved.
	if tickets[0].ID != "abc123" || tickets[1].ID != "def456" {
		t.Errorf("Resolve() order = [%s, %s], want [abc123, def456]", tickets[0].ID, tickets[1].ID)
	}
}

func TestResolveSkipsFailures(t *testing.T) {
	client := &scriptedClient{
		tickets: map[string]*Ticket{
			"abc123": {ID: "abc123", Title: "Add login"},
			"ghi789": {ID: "ghi789", Title: "Refactor"},
		},
		fail: map[string]bool{"broken": true},
	}
	r := NewResolver(TypeClickUp, client)

	// A failing lookup and a missing ticket are both skipped without
	// aborting the batch.
	tickets := r.Resolve(context.Background(), []string{"abc123", "broken", "missing", "ghi789"})
	if len(tickets) != 2 {
		t.Fatalf("Resolve() returned %d tickets, want 2", len(tickets))
	}
	if tickets[0].ID != "abc123" || tickets[1].ID != "ghi789" {
		t.Errorf("Resolve() = [%s, %s], want [abc123, ghi789]", tickets[0].ID, tickets[1].ID)
	}
}

func TestResolveNoClient(t *testing.T) {
	r := NewResolver(TypeClickUp, nil)

	tickets := r.Resolve(context.Background(), []string{"CU-abc123"})
	if tickets == nil {
		t.Fatal("Resolve() = nil, want empty slice")
	}
	if len(tickets) != 0 {
		t.Errorf("Resolve() returned %d tickets, want 0", len(tickets))
	}
}

func TestResolveSkipsEmptyIDs(t *testing.T) {
	client := &scriptedClient{tickets: map[string]*Ticket{}}
	r := NewResolver(TypeJira, client)

	r.Resolve(context.Background(), []string{"", "   "})
	if len(client.calls) != 0 {
		t.Errorf("Resolve() performed %d lookups for empty IDs, want 0", len(client.calls))
	}
}

func TestResolveFormatsBeforeLookup(t *testing.T) {
	client := &scriptedClient{tickets: map[string]*Ticket{}}
	r := NewResolver(TypeClickUp, client)

	r.Resolve(context.Background(), []string{"CU-abc123"})
	if len(client.calls) != 1 || client.calls[0] != "abc123" {
		t.Errorf("Resolve() looked up %v, want [abc123]", client.calls)
	}
}
