package common

import (
	"os"

	"github.com/spf13/cobra"
)

const (
	completionShort = "Output shell completion code for the specified shell"

	completionLong = `Output shell completion code for the specified shell. The shell code must be evaluated
to provide interactive completion of sdf commands.`

	completionExample = `  Bash:
    If bash-completion is not installed on Linux, install the 'bash-completion' package
    via your distribution's package manager. Write bash completion code to .bashrc and then source it:
      echo 'source <(sdf completion bash)' >>~/.bashrc
      source ~/.bashrc
  Zsh:
    If shell completion is not already enabled in your environment, you will need to enable it.
    You can execute the following once:
      echo "autoload -U compinit; compinit" >> ~/.zshrc
    To load completions for each session, execute once:
      sdf completion zsh > ${fpath[1]}/_sdf`
)

// CompletionCmd represents the completion command
var CompletionCmd = &cobra.Command{
	Use:       "completion bash|zsh",
	Short:     completionShort,
	Long:      completionLong,
	Example:   completionExample,
	ValidArgs: []string{"bash", "zsh"},
	Args:      cobra.ExactValidArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(os.Stdout, true)
		default:
			return cmd.Root().GenZshCompletion(os.Stdout)
		}
	},
}

func init() {
	// completion must work without any settings
	CompletionCmd.PersistentPreRun = func(*cobra.Command, []string) {}
}
