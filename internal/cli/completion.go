package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts. Kind and format
// flags get static completions so that `--kind <TAB>` is useful.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for stacklattice.

  bash:        source <(stacklattice completion bash)
  zsh:         stacklattice completion zsh > "${fpath[1]}/_stacklattice"
  fish:        stacklattice completion fish | source
  powershell:  stacklattice completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// exampleKinds seeds --kind completion.
var exampleKinds = []string{"zzx", "zxz", "xzz", "xxz", "xzx", "zxx", "zxo", "xzo", "oxz", "ozx", "xoz", "zox", "zxoh", "xzoh", "oxzh", "ozxh", "xozh", "zoxh"}

func completeKinds(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return exampleKinds, cobra.ShellCompDirectiveNoFileComp
}

func completeFormats(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"json", "dot", "svg", "png", "pdf"}, cobra.ShellCompDirectiveNoFileComp
}
