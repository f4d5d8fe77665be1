package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/jingkaihe/skillhook/pkg/hooks"
	"github.com/jingkaihe/skillhook/pkg/presenter"
	"github.com/jingkaihe/skillhook/pkg/skills"
	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Inspect the skills the hook validates",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills under the scope root",
	Long:  `List every skill directory under the scope root with its name and description from SKILL.md.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		config, root := loadHookConfig(cmd.Context())
		scope := hooks.NewScope(config.ScopeRoot)

		found, err := skills.NewDiscovery(root, skills.WithScopeRoot(scope.Root())).DiscoverSkills()
		if err != nil {
			presenter.Error(err, "Failed to discover skills")
			os.Exit(1)
		}
		if len(found) == 0 {
			presenter.Info(fmt.Sprintf("No skills found under %s", scope.Root()))
			return
		}

		printSkills(cmd.OutOrStdout(), found)
	},
}

func init() {
	skillsCmd.AddCommand(skillsListCmd)
}

func printSkills(w io.Writer, found []*skills.Skill) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION")
	for _, skill := range found {
		description := skill.Description
		if !skill.HasManifest {
			description = "(no SKILL.md)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, skill.Directory, description)
	}
	tw.Flush()
}
