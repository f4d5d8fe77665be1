// Package skills reads skill directories under the project's scope root.
// A skill is a directory holding a SKILL.md file whose YAML frontmatter
// names and describes it. Validation itself is left to the external
// validator; this package only provides metadata for logs and listings.
package skills

// FileName is the manifest file expected in every skill directory
const FileName = "SKILL.md"

// Skill represents a unit directory under the scope root
type Skill struct {
	Name        string // Name from frontmatter, or the directory name
	Description string // Description from frontmatter, if any
	Directory   string // Unit directory relative to the project root, e.g. skills/dune
	HasManifest bool   // Whether SKILL.md was found and parsed
}
