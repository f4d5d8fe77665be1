package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, root, unitDir, manifest string) {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(unitDir))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	if manifest != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(manifest), 0o644))
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "skills/dune", `---
name: dune-lore
description: Answers questions about the Dune universe
---

# Dune
`)

	skill, err := Load(root, "skills/dune")
	require.NoError(t, err)
	assert.Equal(t, "dune-lore", skill.Name)
	assert.Equal(t, "Answers questions about the Dune universe", skill.Description)
	assert.Equal(t, "skills/dune", skill.Directory)
	assert.True(t, skill.HasManifest)
}

func TestLoad_NameFallsBackToDirectory(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "skills/dune", "---\ndescription: no name here\n---\nbody\n")

	skill, err := Load(root, "skills/dune")
	require.NoError(t, err)
	assert.Equal(t, "dune", skill.Name)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		errMsg   string
	}{
		{"missing file", "", "failed to read skill file"},
		{"no frontmatter", "# Just a heading\n", "missing frontmatter"},
		{"invalid yaml", "---\nname: [unclosed\n---\n", "invalid frontmatter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeSkill(t, root, "skills/broken", tt.manifest)

			_, err := Load(root, "skills/broken")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDiscoverSkills(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "skills/zebra", "---\nname: zebra\ndescription: Stripes\n---\n")
	writeSkill(t, root, "skills/alpha", "---\nname: alpha\ndescription: First\n---\n")
	writeSkill(t, root, "skills/bare", "")
	writeSkill(t, root, "skills/.hidden", "---\nname: hidden\n---\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, "skills", "README.md"), []byte("readme"), 0o644))

	found, err := NewDiscovery(root).DiscoverSkills()
	require.NoError(t, err)
	require.Len(t, found, 3)

	assert.Equal(t, "skills/alpha", found[0].Directory)
	assert.Equal(t, "alpha", found[0].Name)
	assert.True(t, found[0].HasManifest)

	assert.Equal(t, "skills/bare", found[1].Directory)
	assert.Equal(t, "bare", found[1].Name)
	assert.False(t, found[1].HasManifest)

	assert.Equal(t, "skills/zebra", found[2].Directory)
	assert.Equal(t, "Stripes", found[2].Description)
}

func TestDiscoverSkills_CustomScopeRoot(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "agents/skills/dune", "---\nname: dune\n---\n")

	found, err := NewDiscovery(root, WithScopeRoot("agents/skills/")).DiscoverSkills()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "agents/skills/dune", found[0].Directory)
}

func TestDiscoverSkills_MissingScopeRoot(t *testing.T) {
	found, err := NewDiscovery(t.TempDir()).DiscoverSkills()
	require.NoError(t, err)
	assert.Empty(t, found)
}
