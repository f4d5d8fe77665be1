package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload_Invalid(t *testing.T) {
	inputs := map[string]string{
		"empty":         "",
		"not json":      "tool_input: skills/dune",
		"truncated":     `{"tool_input": {"file_path": "skills/`,
		"array":         `["skills/dune/SKILL.md"]`,
		"string":        `"skills/dune/SKILL.md"`,
		"null":          `null`,
		"number":        `42`,
		"trailing junk": `{"cwd": ""} extra`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePayload([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestPayload_FilePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{
			name:     "tool input only",
			input:    `{"tool_input": {"file_path": "skills/dune/SKILL.md"}}`,
			expected: "skills/dune/SKILL.md",
			found:    true,
		},
		{
			name:     "tool response only",
			input:    `{"tool_response": {"filePath": "skills/dune/SKILL.md"}}`,
			expected: "skills/dune/SKILL.md",
			found:    true,
		},
		{
			name:     "response wins over input",
			input:    `{"tool_response": {"filePath": "skills/arrakis/a.md"}, "tool_input": {"file_path": "skills/dune/b.md"}}`,
			expected: "skills/arrakis/a.md",
			found:    true,
		},
		{
			name:     "empty response falls back to input",
			input:    `{"tool_response": {"filePath": ""}, "tool_input": {"file_path": "skills/dune/b.md"}}`,
			expected: "skills/dune/b.md",
			found:    true,
		},
		{
			name:     "response is not an object",
			input:    `{"tool_response": "done", "tool_input": {"file_path": "skills/dune/b.md"}}`,
			expected: "skills/dune/b.md",
			found:    true,
		},
		{
			name:  "path is not a string",
			input: `{"tool_input": {"file_path": 7}}`,
		},
		{
			name:  "input is a list",
			input: `{"tool_input": ["skills/dune/b.md"]}`,
		},
		{
			name:  "no path at all",
			input: `{"cwd": "/repo"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := DecodePayload([]byte(tt.input))
			require.NoError(t, err)

			path, found := payload.FilePath()
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, path)
		})
	}
}

func TestPayload_CwdAndToolName(t *testing.T) {
	payload, err := DecodePayload([]byte(`{"cwd": "/repo", "tool_name": "Edit"}`))
	require.NoError(t, err)
	assert.Equal(t, "/repo", payload.Cwd())
	assert.Equal(t, "Edit", payload.ToolName())

	payload, err = DecodePayload([]byte(`{"cwd": ["/repo"]}`))
	require.NoError(t, err)
	assert.Equal(t, "", payload.Cwd())
	assert.Equal(t, "", payload.ToolName())
}

func TestPayload_StringNoKeys(t *testing.T) {
	payload, err := DecodePayload([]byte(`{}`))
	require.NoError(t, err)

	_, ok := payload.String()
	assert.False(t, ok)
}
