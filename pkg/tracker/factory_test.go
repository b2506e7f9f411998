package tracker

import (
	"strings"
	"testing"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		trackerType Type
		cfg         Config
		wantErr     string
	}{
		{
			name:        "clickup with api key",
			trackerType: TypeClickUp,
			cfg:         Config{APIKey: "pk_123"},
		},
		{
			name:        "clickup missing api key",
			trackerType: TypeClickUp,
			cfg:         Config{},
			wantErr:     "API key",
		},
		{
			name:        "jira complete",
			trackerType: TypeJira,
			cfg:         Config{APIKey: "token", BaseURL: "https://acme.atlassian.net", Username: "dev@acme.io"},
		},
		{
			name:        "jira missing base url",
			trackerType: TypeJira,
			cfg:         Config{APIKey: "token", Username: "dev@acme.io"},
			wantErr:     "base URL",
		},
		{
			name:        "jira missing username",
			trackerType: TypeJira,
			cfg:         Config{APIKey: "token", BaseURL: "https://acme.atlassian.net"},
			wantErr:     "username",
		},
		{
			name:        "unknown tracker",
			trackerType: Type("asana"),
			cfg:         Config{APIKey: "token"},
			wantErr:     "unknown tracker type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.trackerType, tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("NewClient() error = %v", err)
				}
				if client == nil {
					t.Fatal("NewClient() = nil client")
				}
				return
			}
			if err == nil {
				t.Fatalf("NewClient() error = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewClient() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
