package agent

import "testing"

func TestParseTitle(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "simple marker",
			response: "TITLE: Add login page",
			want:     "Add login page",
		},
		{
			name:     "marker after other lines",
			response: "Here is my suggestion:\n\nTITLE: Fix the race in the watcher\n\nMore text.",
			want:     "Fix the race in the watcher",
		},
		{
			name:     "leading whitespace before marker",
			response: "   TITLE: Indented title",
			want:     "Indented title",
		},
		{
			name:     "no marker",
			response: "Just some prose with no title line.",
			want:     "",
		},
		{
			name:     "lowercase marker ignored",
			response: "title: not a real marker",
			want:     "",
		},
		{
			name:     "first marker wins",
			response: "TITLE: first\nTITLE: second",
			want:     "first",
		},
		{
			name:     "empty response",
			response: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTitle(tt.response); got != tt.want {
				t.Errorf("ParseTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseBody(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "markdown fence",
			response: "Here you go:\n\n```markdown\n## _Target_\n\nAdd login.\n```\n\nDone.",
			want:     "## _Target_\n\nAdd login.",
		},
		{
			name:     "bare fence",
			response: "```\nplain fenced content\n```",
			want:     "plain fenced content",
		},
		{
			name:     "no fence",
			response: "No code block here at all.",
			want:     "",
		},
		{
			name:     "content trimmed",
			response: "```markdown\n\n  body with padding  \n\n```",
			want:     "body with padding",
		},
		{
			name:     "first block wins",
			response: "```markdown\nfirst\n```\n```markdown\nsecond\n```",
			want:     "first",
		},
		{
			name:     "empty response",
			response: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseBody(tt.response); got != tt.want {
				t.Errorf("ParseBody() = %q, want %q", got, tt.want)
			}
		})
	}
}
