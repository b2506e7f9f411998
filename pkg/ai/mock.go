package ai

import "context"

// MockClient is a scripted Client for tests. It records every prompt
// it receives and replays canned responses.
type MockClient struct {
	// Response is returned for every call when Responses is empty.
	Response string
	// Responses are returned in order; the last one repeats.
	Responses []string
	// Err, when set, is returned instead of a response.
	Err error

	// Prompts records every prompt passed to GetContent.
	Prompts []string
}

// GetContent implements Client.
func (m *MockClient) GetContent(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return m.Response, nil
	}
	i := len(m.Prompts) - 1
	if i >= len(m.Responses) {
		i = len(m.Responses) - 1
	}
	return m.Responses[i], nil
}
