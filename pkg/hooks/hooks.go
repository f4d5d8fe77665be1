// Package hooks implements the post-edit skill validation hook. The host
// runs the hook after every file write or edit and feeds it a JSON event on
// stdin. When the edited file lives under the skills scope root, the hook
// validates the enclosing skill directory with an external validator and
// reports one of a small set of outcomes through its exit status.
package hooks

// HookType is the lifecycle event a hook subscribes to. It is printed by
// "skillhook hook" so hook managers can discover what the binary handles.
type HookType string

// Hook types
const (
	HookTypeAfterToolCall HookType = "after_tool_call"
)

// DefaultScopeRoot is the directory prefix that gates the hook.
const DefaultScopeRoot = "skills/"

// DefaultRootDepth is how many directories above the executable's own
// directory the project root sits, e.g. <root>/.claude/hooks/skillhook.
const DefaultRootDepth = 2
