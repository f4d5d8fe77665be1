package main

import (
	"context"
	"os"

	"github.com/jingkaihe/skillhook/pkg/hooks"
	"github.com/jingkaihe/skillhook/pkg/logger"
	"github.com/jingkaihe/skillhook/pkg/presenter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	viper.SetEnvPrefix("SKILLHOOK")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillhook")

	setDefaults()

	// A missing config file is fine; every key has a default.
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "skillhook",
	Short: "Validate skills after every file edit",
	Long: `skillhook is a post-edit hook. It reads the host's JSON event from stdin and,
when the edited file lives under the skills directory, runs the skill validator
against the enclosing skill. It exits 2 when validation fails and 0 otherwise.

Run without arguments (or as "skillhook run") from the host's hook settings.
Project settings are read from <project root>/.skillhook/config.yaml.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		applyOutputSettings(cmd.Context())
	},
	Run: func(cmd *cobra.Command, _ []string) {
		os.Exit(runHookCmd(cmd.Context()))
	},
}

// applyOutputSettings applies the logging and presenter keys from viper
func applyOutputSettings(ctx context.Context) {
	if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
		logger.G(ctx).WithError(err).Warn("invalid log level, keeping default")
	}
	logger.SetLogFormat(viper.GetString("log_format"))
	presenter.SetQuiet(viper.GetBool("quiet"))
}

// exitStatus maps a command-line error to the process exit status. The hook
// itself only ever exits 0 or 2, so an invocation the host got wrong is
// logged and allowed.
func exitStatus(ctx context.Context, cmd *cobra.Command, err error) int {
	if err == nil {
		return 0
	}
	if cmd == rootCmd || cmd == runCmd {
		logger.G(ctx).WithError(err).Warn("invalid hook invocation, allowing the edit")
		return hooks.ExitAllow
	}
	presenter.Error(err, "")
	return 1
}

func main() {
	rootCmd.PersistentFlags().String("log-level", defaultLogLevel, "Log level (panic, fatal, error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().String("log-format", defaultLogFormat, "Log format (fmt or json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print errors and validator output")
	rootCmd.PersistentFlags().String("project-root", "", "Project root (default: derived from the executable location)")
	rootCmd.PersistentFlags().String("scope-root", defaultScopeRoot, "Directory, relative to the project root, that holds the skills")
	rootCmd.PersistentFlags().String("validator", defaultValidatorPath, "Validator executable, relative to the project root or on $PATH")
	rootCmd.PersistentFlags().String("validator-subcommand", defaultSubcommand, "First argument passed to the validator")
	rootCmd.PersistentFlags().String("log-file", defaultLogFile, "Diagnostic log file, relative to the project root")
	rootCmd.PersistentFlags().Duration("validator-timeout", 0, "Validator timeout (0 disables it)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("project_root", rootCmd.PersistentFlags().Lookup("project-root"))
	viper.BindPFlag("scope_root", rootCmd.PersistentFlags().Lookup("scope-root"))
	viper.BindPFlag("validator_path", rootCmd.PersistentFlags().Lookup("validator"))
	viper.BindPFlag("validator_subcommand", rootCmd.PersistentFlags().Lookup("validator-subcommand"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("validator_timeout", rootCmd.PersistentFlags().Lookup("validator-timeout"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(versionCmd)

	ctx := context.Background()
	cmd, err := rootCmd.ExecuteContextC(ctx)
	os.Exit(exitStatus(ctx, cmd, err))
}
