package tracker

import "strings"

// FormatTicketID normalizes a raw ticket ID for lookup against the
// given tracker. ClickUp IDs lose their "CU-" prefix; Jira keys pass
// through unchanged, as does anything for an unrecognized tracker.
// Whitespace is always trimmed.
func FormatTicketID(id string, trackerType Type) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}

	switch trackerType {
	case TypeClickUp:
		return strings.TrimPrefix(id, "CU-")
	case TypeJira:
		return id
	default:
		return id
	}
}
