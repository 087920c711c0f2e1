package llm

import "context"

// MockClient is a configurable mock for testing extractor behavior.
// Set GenerateResponseFunc to control responses.
type MockClient struct {
	GenerateResponseFunc func(ctx context.Context, prompt, systemMessage string, temperature float64) (string, error)

	// GenerateResponseCalls counts invocations for verification.
	GenerateResponseCalls int
}

var _ ChatClient = (*MockClient)(nil)

// GenerateResponse implements ChatClient.
func (m *MockClient) GenerateResponse(ctx context.Context, prompt, systemMessage string, temperature float64) (string, error) {
	m.GenerateResponseCalls++
	if m.GenerateResponseFunc != nil {
		return m.GenerateResponseFunc(ctx, prompt, systemMessage, temperature)
	}
	return "", nil
}
