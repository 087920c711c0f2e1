package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "bare object",
			input:    `{"target":"days worked"}`,
			expected: `{"target":"days worked"}`,
		},
		{
			name:     "markdown fenced",
			input:    "```json\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "prose around object",
			input:    `Sure! Here is the result: {"a":1} Hope that helps.`,
			expected: `{"a":1}`,
		},
		{
			name:     "think tags stripped",
			input:    "<think>let me reason about this</think>{\"a\":1}",
			expected: `{"a":1}`,
		},
		{
			name:     "nested braces",
			input:    `{"outer":{"inner":[1,2,3]}}`,
			expected: `{"outer":{"inner":[1,2,3]}}`,
		},
		{
			name:     "braces inside strings",
			input:    `{"text":"a { tricky } value"}`,
			expected: `{"text":"a { tricky } value"}`,
		},
		{
			name:     "array response",
			input:    `[{"a":1},{"b":2}]`,
			expected: `[{"a":1},{"b":2}]`,
		},
		{
			name:    "no json at all",
			input:   "I cannot answer that.",
			wantErr: true,
		},
		{
			name:    "unbalanced",
			input:   `{"a":1`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseJSONResponse(t *testing.T) {
	type payload struct {
		Target string `json:"target"`
	}

	p, err := ParseJSONResponse[payload]("```json\n{\"target\":\"region\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "region", p.Target)

	_, err = ParseJSONResponse[payload]("no json here")
	assert.Error(t, err)
}
