package tracker

import (
	"regexp"
	"strings"
)

// Ticket ID shapes accepted from branch names. Candidates that match
// none of these are treated as free text, not ticket IDs.
var ticketShapes = []*regexp.Regexp{
	regexp.MustCompile(`^#\d+$`),          // GitHub issue: #123
	regexp.MustCompile(`^[A-Z]+-\d+$`),    // Jira key: PROJ-456
	regexp.MustCompile(`^CU-[a-z0-9]+$`),  // ClickUp: CU-abc123
	regexp.MustCompile(`^Task-\d+$`),      // generic: Task-789
}

// ExtractTicketID pulls a ticket ID out of a branch name. The candidate
// is the segment before the first '/' or '_'; when the branch name has
// no separator the whole name is the candidate. Candidates that do not
// look like a ticket ID yield "". Absence of a ticket is a normal
// outcome, never an error.
func ExtractTicketID(branchName string) string {
	candidate := branchName
	if i := strings.IndexAny(branchName, "/_"); i >= 0 {
		candidate = branchName[:i]
	}

	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return ""
	}

	for _, shape := range ticketShapes {
		if shape.MatchString(candidate) {
			return candidate
		}
	}
	return ""
}
