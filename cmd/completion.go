package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Output shell completion code for the specified shell",
	Long: `Output shell completion code for bash, zsh, fish or powershell. The code
must be evaluated by the shell to complete the exavatar commands and flags.

To load the completions in the current session:

  $ source <(exavatar completion bash)
  $ exavatar completion fish | source

To load them for each session, write them once in the completion directory
of the shell:

  $ exavatar completion bash > /etc/bash_completion.d/exavatar
  $ exavatar completion zsh > "${fpath[1]}/_exavatar"
  $ exavatar completion fish > ~/.config/fish/completions/exavatar.fish
`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return RootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return RootCmd.GenZshCompletion(out)
		case "fish":
			return RootCmd.GenFishCompletion(out, true)
		case "powershell":
			return RootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return fmt.Errorf("unsupported shell %q", args[0])
	},
}

func init() {
	RootCmd.AddCommand(completionCmd)
}
