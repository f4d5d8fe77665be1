package hooks

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// filePathLookups lists where the edited file's path may live, in order of
// preference. The response field is set once the tool has run; the input
// field is what the tool was asked to do.
var filePathLookups = [][]string{
	{"tool_response", "filePath"},
	{"tool_input", "file_path"},
}

// Payload is the decoded hook event. Every field is optional; lookups that
// hit a missing key or an unexpected type report the field as absent.
type Payload struct {
	fields map[string]any
}

// DecodePayload decodes raw hook input, which must be a JSON object.
func DecodePayload(data []byte) (Payload, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return Payload{}, errors.Wrap(err, "failed to decode hook input")
	}
	if fields == nil {
		return Payload{}, errors.New("hook input is not a JSON object")
	}
	return Payload{fields: fields}, nil
}

// String returns the string found by walking nested objects along keys.
func (p Payload) String(keys ...string) (string, bool) {
	if len(keys) == 0 {
		return "", false
	}

	current := p.fields
	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			return "", false
		}
		current = next
	}

	value, ok := current[keys[len(keys)-1]].(string)
	return value, ok
}

// FilePath returns the path of the edited file, preferring the tool
// response over the tool input. Empty strings count as absent.
func (p Payload) FilePath() (string, bool) {
	for _, keys := range filePathLookups {
		if value, ok := p.String(keys...); ok && value != "" {
			return value, true
		}
	}
	return "", false
}

// Cwd returns the host's working directory, or "" when absent.
func (p Payload) Cwd() string {
	cwd, _ := p.String("cwd")
	return cwd
}

// ToolName returns the name of the tool that triggered the hook, if given.
func (p Payload) ToolName() string {
	name, _ := p.String("tool_name")
	return name
}
