package mocks

import "context"

// Mock Summary Repository
type MockSummaryRepo struct {
	Summary string
	Err     error

	Inputs []string
}

func (m *MockSummaryRepo) Summarize(ctx context.Context, text string) (string, error) {
	m.Inputs = append(m.Inputs, text)
	if m.Err != nil {
		return "", m.Err
	}
	if m.Summary != "" {
		return m.Summary, nil
	}
	return "test summary", nil
}

// Calls returns how many times Summarize was invoked.
func (m *MockSummaryRepo) Calls() int {
	return len(m.Inputs)
}
