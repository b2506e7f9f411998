package tracker

import "testing"

func TestExtractTicketID(t *testing.T) {
	tests := []struct {
		name   string
		branch string
		want   string
	}{
		{name: "github issue with slash", branch: "#123/fix_bug", want: "#123"},
		{name: "jira key with underscore", branch: "PROJ-456_implement_feature", want: "PROJ-456"},
		{name: "clickup with slash", branch: "CU-abc123/new-feature", want: "CU-abc123"},
		{name: "generic task", branch: "Task-789/cleanup", want: "Task-789"},
		{name: "free text prefix", branch: "no-ticket/just-test", want: ""},
		{name: "plain feature branch", branch: "feature/CU-abc123", want: ""},
		{name: "no separator matching shape", branch: "PROJ-99", want: "PROJ-99"},
		{name: "no separator free text", branch: "main", want: ""},
		{name: "empty branch", branch: "", want: ""},
		{name: "separator first", branch: "/leading", want: ""},
		{name: "first separator wins", branch: "#12_PROJ-1/x", want: "#12"},
		{name: "lowercase jira key rejected", branch: "proj-456/fix", want: ""},
		{name: "clickup uppercase suffix rejected", branch: "CU-ABC123/fix", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTicketID(tt.branch); got != tt.want {
				t.Errorf("ExtractTicketID(%q) = %q, want %q", tt.branch, got, tt.want)
			}
		})
	}
}
