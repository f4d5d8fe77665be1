package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/jingkaihe/skillhook/pkg/hooks"
	"github.com/jingkaihe/skillhook/pkg/presenter"
	"github.com/jingkaihe/skillhook/pkg/skills"
	"github.com/jingkaihe/skillhook/pkg/validator"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [skill...]",
	Short: "Validate skills without a hook event",
	Long: `Run the skill validator against the given skills, or against every skill
under the scope root when none are given. A skill may be named by its
directory ("skills/dune") or by its name under the scope root ("dune").

Examples:
  skillhook validate
  skillhook validate dune
  skillhook validate skills/dune skills/arrakis`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config, root := loadHookConfig(ctx)

		units, err := unitsToValidate(root, config.ScopeRoot, args)
		if err != nil {
			presenter.Error(err, "Failed to discover skills")
			os.Exit(1)
		}
		if len(units) == 0 {
			presenter.Info(fmt.Sprintf("No skills found under %s", hooks.NewScope(config.ScopeRoot).Root()))
			return
		}

		if err := validateUnits(ctx, newValidator(root, config), units, presenter.Default()); err != nil {
			presenter.Error(err, "Skill validation failed")
			os.Exit(1)
		}
	},
}

// unitsToValidate maps command arguments to unit directories, or discovers
// every unit when no arguments are given.
func unitsToValidate(root, scopeRoot string, args []string) ([]string, error) {
	scope := hooks.NewScope(scopeRoot)

	if len(args) == 0 {
		found, err := skills.NewDiscovery(root, skills.WithScopeRoot(scope.Root())).DiscoverSkills()
		if err != nil {
			return nil, err
		}
		units := make([]string, 0, len(found))
		for _, skill := range found {
			units = append(units, skill.Directory)
		}
		return units, nil
	}

	units := make([]string, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimPrefix(path.Clean(strings.ReplaceAll(arg, `\`, "/")), "./")
		if !scope.Contains(arg) {
			arg = scope.Root() + arg
		}
		unit, ok := scope.UnitDir(arg)
		if !ok {
			return nil, errors.Errorf("%s is not a skill directory", arg)
		}
		units = append(units, unit)
	}
	return units, nil
}

// validateUnits runs the validator on each unit in turn. Failures are
// collected; a missing validator stops the run.
func validateUnits(ctx context.Context, v validator.Validator, units []string, p presenter.Presenter) error {
	var result *multierror.Error

	for _, unit := range units {
		report, err := v.Validate(ctx, unit)
		if err != nil {
			if errors.Is(err, validator.ErrNotInstalled) {
				return err
			}
			result = multierror.Append(result, errors.Wrapf(err, "%s", unit))
			continue
		}

		p.Raw(report.Stdout)
		p.Raw(report.Stderr)

		if report.Passed() {
			p.Success(fmt.Sprintf("Skill validation passed: %s", unit))
			continue
		}
		failure := errors.Errorf("%s: validator exited with status %d", unit, report.ExitCode)
		if output := report.Combined(); output != "" {
			failure = errors.Errorf("%s: validator exited with status %d: %s", unit, report.ExitCode, output)
		}
		result = multierror.Append(result, failure)
	}

	return result.ErrorOrNil()
}
