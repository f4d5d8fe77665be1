package validator

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script validators are not supported on Windows")
	}
}

// writeValidator creates an executable shell script at root/rel.
func writeValidator(t *testing.T, root, rel, body string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestReport(t *testing.T) {
	tests := []struct {
		name     string
		report   Report
		passed   bool
		combined string
	}{
		{"empty success", Report{}, true, ""},
		{"stdout only", Report{Stdout: "Valid skill: skills/dune\n"}, true, "Valid skill: skills/dune"},
		{"both streams", Report{ExitCode: 1, Stdout: "checking\n", Stderr: "missing name\n"}, false, "checking\nmissing name"},
		{"whitespace stdout", Report{ExitCode: 2, Stdout: "  \n", Stderr: "bad"}, false, "bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.passed, tt.report.Passed())
			assert.Equal(t, tt.combined, tt.report.Combined())
		})
	}
}

func TestCommand_Resolve(t *testing.T) {
	skipOnWindows(t)
	root := t.TempDir()
	script := writeValidator(t, root, DefaultPath, "exit 0")

	t.Run("relative to dir", func(t *testing.T) {
		resolved, err := NewCommand(DefaultPath, WithDir(root)).Resolve()
		require.NoError(t, err)
		assert.Equal(t, script, resolved)
	})

	t.Run("absolute", func(t *testing.T) {
		resolved, err := NewCommand(script).Resolve()
		require.NoError(t, err)
		assert.Equal(t, script, resolved)
	})

	t.Run("bare name on PATH", func(t *testing.T) {
		t.Setenv("PATH", filepath.Dir(script))
		resolved, err := NewCommand("skills-ref", WithDir(t.TempDir())).Resolve()
		require.NoError(t, err)
		assert.Equal(t, script, resolved)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := NewCommand(".venv/bin/absent", WithDir(root)).Resolve()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotInstalled))
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := NewCommand("").Resolve()
		assert.True(t, errors.Is(err, ErrNotInstalled))
	})

	t.Run("not executable", func(t *testing.T) {
		plain := filepath.Join(root, "plain")
		require.NoError(t, os.WriteFile(plain, []byte("#!/bin/sh\n"), 0o644))

		_, err := NewCommand(plain).Resolve()
		assert.True(t, errors.Is(err, ErrNotInstalled))
	})
}

func TestCommand_Validate_Pass(t *testing.T) {
	skipOnWindows(t)
	root := t.TempDir()
	writeValidator(t, root, DefaultPath, `echo "args: $1 $2"; echo "cwd: $(pwd)"`)

	report, err := NewCommand(DefaultPath, WithDir(root)).Validate(context.Background(), "skills/dune")
	require.NoError(t, err)

	assert.True(t, report.Passed())
	assert.Contains(t, report.Stdout, "args: validate skills/dune")
	assert.Contains(t, report.Stdout, filepath.Base(root))
	assert.Empty(t, report.Stderr)
}

func TestCommand_Validate_Fail(t *testing.T) {
	skipOnWindows(t)
	root := t.TempDir()
	writeValidator(t, root, DefaultPath, `echo "checked"; echo "SKILL.md: missing description" >&2; exit 3`)

	report, err := NewCommand(DefaultPath, WithDir(root)).Validate(context.Background(), "skills/dune")
	require.NoError(t, err)

	assert.False(t, report.Passed())
	assert.Equal(t, 3, report.ExitCode)
	assert.Equal(t, "checked\n", report.Stdout)
	assert.Equal(t, "SKILL.md: missing description\n", report.Stderr)
}

func TestCommand_Validate_CustomSubcommand(t *testing.T) {
	skipOnWindows(t)
	root := t.TempDir()
	writeValidator(t, root, "bin/check", `echo "$1"`)

	report, err := NewCommand("bin/check", WithDir(root), WithSubcommand("lint")).Validate(context.Background(), "skills/dune")
	require.NoError(t, err)
	assert.Equal(t, "lint\n", report.Stdout)
}

func TestCommand_ProcessGroup(t *testing.T) {
	ctx := context.Background()

	cmd := NewCommand(DefaultPath, WithDir("/repo")).command(ctx, "/repo/.venv/bin/skills-ref", "skills/dune")
	assert.Nil(t, cmd.SysProcAttr, "without a timeout the validator stays in the hook's process group")
	assert.Equal(t, "/repo", cmd.Dir)
	assert.Equal(t, []string{"/repo/.venv/bin/skills-ref", "validate", "skills/dune"}, cmd.Args)

	cmd = NewCommand(DefaultPath, WithTimeout(time.Second)).command(ctx, "/repo/.venv/bin/skills-ref", "skills/dune")
	assert.NotNil(t, cmd.SysProcAttr)
}

func TestCommand_Validate_NotInstalled(t *testing.T) {
	root := t.TempDir()

	_, err := NewCommand(DefaultPath, WithDir(root)).Validate(context.Background(), "skills/dune")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotInstalled))
}

func TestCommand_Validate_Timeout(t *testing.T) {
	skipOnWindows(t)
	root := t.TempDir()
	writeValidator(t, root, DefaultPath, "sleep 30")

	start := time.Now()
	_, err := NewCommand(DefaultPath, WithDir(root), WithTimeout(200*time.Millisecond)).
		Validate(context.Background(), "skills/dune")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.False(t, errors.Is(err, ErrNotInstalled))
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestCommand_Validate_Cancelled(t *testing.T) {
	skipOnWindows(t)
	root := t.TempDir()
	writeValidator(t, root, DefaultPath, "exit 0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCommand(DefaultPath, WithDir(root)).Validate(ctx, "skills/dune")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotInstalled))
}
