package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jingkaihe/skillhook/pkg/hooks"
	"github.com/jingkaihe/skillhook/pkg/logger"
	"github.com/jingkaihe/skillhook/pkg/validator"
	"github.com/spf13/viper"
)

const (
	defaultScopeRoot     = hooks.DefaultScopeRoot
	defaultValidatorPath = validator.DefaultPath
	defaultSubcommand    = validator.DefaultSubcommand
	defaultLogFile       = ".cache/bash-command-log.txt"
	defaultLogLevel      = logger.DefaultLevel
	defaultLogFormat     = "fmt"
)

// HookConfig holds the settings shared by the hook and validate commands
type HookConfig struct {
	ProjectRoot         string
	RootDepth           int
	ScopeRoot           string
	ValidatorPath       string
	ValidatorSubcommand string
	ValidatorTimeout    time.Duration
	LogFile             string
}

// NewHookConfig returns the default configuration
func NewHookConfig() *HookConfig {
	return &HookConfig{
		ProjectRoot:         "",
		RootDepth:           hooks.DefaultRootDepth,
		ScopeRoot:           defaultScopeRoot,
		ValidatorPath:       defaultValidatorPath,
		ValidatorSubcommand: defaultSubcommand,
		ValidatorTimeout:    0,
		LogFile:             defaultLogFile,
	}
}

func setDefaults() {
	defaults := NewHookConfig()
	viper.SetDefault("project_root", defaults.ProjectRoot)
	viper.SetDefault("root_depth", defaults.RootDepth)
	viper.SetDefault("scope_root", defaults.ScopeRoot)
	viper.SetDefault("validator_path", defaults.ValidatorPath)
	viper.SetDefault("validator_subcommand", defaults.ValidatorSubcommand)
	viper.SetDefault("validator_timeout", defaults.ValidatorTimeout)
	viper.SetDefault("log_file", defaults.LogFile)
	viper.SetDefault("log_level", defaultLogLevel)
	viper.SetDefault("log_format", defaultLogFormat)
	viper.SetDefault("quiet", false)
}

func getHookConfigFromViper() *HookConfig {
	config := NewHookConfig()
	config.ProjectRoot = viper.GetString("project_root")
	if depth := viper.GetInt("root_depth"); depth >= 0 {
		config.RootDepth = depth
	}
	if scopeRoot := viper.GetString("scope_root"); scopeRoot != "" {
		config.ScopeRoot = scopeRoot
	}
	if validatorPath := viper.GetString("validator_path"); validatorPath != "" {
		config.ValidatorPath = validatorPath
	}
	if subcommand := viper.GetString("validator_subcommand"); subcommand != "" {
		config.ValidatorSubcommand = subcommand
	}
	config.ValidatorTimeout = viper.GetDuration("validator_timeout")
	if logFile := viper.GetString("log_file"); logFile != "" {
		config.LogFile = logFile
	}
	return config
}

// projectConfigDir is where a project-level config.yaml lives, relative to
// the project root.
const projectConfigDir = ".skillhook"

// loadHookConfig resolves the project root and merges the project's own
// config file over the user-level one. Nothing is read from the launch
// directory.
func loadHookConfig(ctx context.Context) (*HookConfig, string) {
	root := resolveProjectRoot(ctx, getHookConfigFromViper())

	if mergeProjectConfig(ctx, root) {
		applyOutputSettings(ctx)
	}
	return getHookConfigFromViper(), root
}

func mergeProjectConfig(ctx context.Context, root string) bool {
	path := filepath.Join(root, projectConfigDir, "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return false
	}

	viper.SetConfigFile(path)
	if err := viper.MergeInConfig(); err != nil {
		logger.G(ctx).WithError(err).WithField("path", path).Warn("failed to read project config")
		return false
	}
	return true
}
