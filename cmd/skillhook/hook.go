package main

import (
	"fmt"

	"github.com/jingkaihe/skillhook/pkg/hooks"
	"github.com/spf13/cobra"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Print the lifecycle event this hook handles",
	Long: `Print the lifecycle event this hook handles. Hook managers that discover
executables by calling "<hook> hook" use it to register skillhook for
after_tool_call events.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), hooks.HookTypeAfterToolCall)
	},
}
