package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/jingkaihe/skillhook/pkg/hooklog"
	"github.com/jingkaihe/skillhook/pkg/hooks"
	"github.com/jingkaihe/skillhook/pkg/logger"
	"github.com/jingkaihe/skillhook/pkg/presenter"
	"github.com/jingkaihe/skillhook/pkg/validator"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Handle one hook event read from stdin",
	Long: `Read one hook event from stdin and validate the edited skill, if any.

Exit status 2 means the validator ran and rejected the skill. Every other
situation (unrelated file, missing skill directory, validator not installed,
unreadable input) exits 0.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		os.Exit(runHookCmd(cmd.Context()))
	},
}

// runHookCmd is the process-level entry point of the hook. It is the only
// place that changes the working directory.
func runHookCmd(ctx context.Context) int {
	config, root := loadHookConfig(ctx)

	if err := os.Chdir(root); err != nil {
		logger.G(ctx).WithError(err).WithField("root", root).Warn("failed to change to project root")
	}

	return runHook(ctx, os.Stdin, root, config, presenter.Default())
}

func resolveProjectRoot(ctx context.Context, config *HookConfig) string {
	root, err := hooks.ResolveRoot(config.ProjectRoot, config.RootDepth)
	if err == nil {
		return root
	}

	logger.G(ctx).WithError(err).Warn("failed to resolve project root, using current directory")
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// runHook reads the whole event from stdin, handles it and returns the
// exit status for the host.
func runHook(ctx context.Context, stdin io.Reader, root string, config *HookConfig, p presenter.Presenter) int {
	raw, err := io.ReadAll(stdin)
	if err != nil {
		logger.G(ctx).WithError(err).Warn("failed to read hook input")
	}

	handler := newHandler(root, config, p)
	result := handler.Handle(ctx, raw)
	return result.ExitCode()
}

func newHandler(root string, config *HookConfig, p presenter.Presenter) *hooks.Handler {
	return hooks.NewHandler(root, newValidator(root, config),
		hooks.WithScope(hooks.NewScope(config.ScopeRoot)),
		hooks.WithLog(hooklog.NewFile(projectPath(root, config.LogFile))),
		hooks.WithPresenter(p),
	)
}

func newValidator(root string, config *HookConfig) *validator.Command {
	return validator.NewCommand(config.ValidatorPath,
		validator.WithDir(root),
		validator.WithSubcommand(config.ValidatorSubcommand),
		validator.WithTimeout(config.ValidatorTimeout),
	)
}

func projectPath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, filepath.FromSlash(path))
}
