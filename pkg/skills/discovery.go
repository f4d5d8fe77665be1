package skills

import (
	"bytes"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// Discovery lists skill directories under a scope root
type Discovery struct {
	root      string
	scopeRoot string
}

// Option is a function that configures a Discovery
type Option func(*Discovery)

// WithScopeRoot sets the directory, relative to the project root, that
// holds the skills. Defaults to "skills/".
func WithScopeRoot(scopeRoot string) Option {
	return func(d *Discovery) {
		d.scopeRoot = scopeRoot
	}
}

// NewDiscovery creates a new skill discovery rooted at the project root
func NewDiscovery(root string, opts ...Option) *Discovery {
	d := &Discovery{
		root:      root,
		scopeRoot: "skills/",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscoverSkills returns every non-hidden directory directly under the
// scope root, sorted by directory. Directories without a readable SKILL.md
// are still returned, with HasManifest unset.
func (d *Discovery) DiscoverSkills() ([]*Skill, error) {
	scopeDir := filepath.Join(d.root, filepath.FromSlash(d.scopeRoot))

	entries, err := os.ReadDir(scopeDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read skills directory %s", scopeDir)
	}

	var found []*Skill
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		info, err := os.Stat(filepath.Join(scopeDir, entry.Name()))
		if err != nil || !info.IsDir() {
			continue
		}

		unitDir := path.Join(strings.TrimSuffix(filepath.ToSlash(d.scopeRoot), "/"), entry.Name())
		skill, err := Load(d.root, unitDir)
		if err != nil {
			skill = &Skill{Name: entry.Name(), Directory: unitDir}
		}
		found = append(found, skill)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Directory < found[j].Directory
	})
	return found, nil
}

// Load reads the SKILL.md frontmatter of unitDir, which is relative to root.
func Load(root, unitDir string) (*Skill, error) {
	manifest := filepath.Join(root, filepath.FromSlash(unitDir), FileName)
	content, err := os.ReadFile(manifest)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData, err := meta.TryGet(pctx)
	if err != nil {
		return nil, errors.Wrap(err, "invalid frontmatter")
	}
	if len(metaData) == 0 {
		return nil, errors.New("missing frontmatter")
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)
	if name == "" {
		name = path.Base(unitDir)
	}

	return &Skill{
		Name:        name,
		Description: strings.TrimSpace(description),
		Directory:   unitDir,
		HasManifest: true,
	}, nil
}
