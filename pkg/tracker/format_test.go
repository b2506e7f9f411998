package tracker

import "testing"

func TestFormatTicketID(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		trackerType Type
		want        string
	}{
		{name: "clickup strips prefix", id: "CU-abc123", trackerType: TypeClickUp, want: "abc123"},
		{name: "clickup without prefix", id: "def456", trackerType: TypeClickUp, want: "def456"},
		{name: "clickup trims whitespace", id: " CU-ghi789 ", trackerType: TypeClickUp, want: "ghi789"},
		{name: "jira passthrough", id: "PROJ-123", trackerType: TypeJira, want: "PROJ-123"},
		{name: "jira trims whitespace", id: " PROJ-123 ", trackerType: TypeJira, want: "PROJ-123"},
		{name: "unknown tracker passthrough", id: "CU-abc123", trackerType: Type("linear"), want: "CU-abc123"},
		{name: "empty stays empty", id: "", trackerType: TypeClickUp, want: ""},
		{name: "whitespace only", id: "   ", trackerType: TypeJira, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTicketID(tt.id, tt.trackerType); got != tt.want {
				t.Errorf("FormatTicketID(%q, %q) = %q, want %q", tt.id, tt.trackerType, got, tt.want)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{input: "clickup", want: TypeClickUp},
		{input: "jira", want: TypeJira},
		{input: " ClickUp ", want: TypeClickUp},
		{input: "JIRA", want: TypeJira},
		{input: "asana", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
