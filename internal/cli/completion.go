package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seqdiag/pkg/render/sink"
)

const completionHelp = `Generate shell completion scripts for %[1]s.

Completions cover subcommands, flags, the --format values each command
accepts and config files for --config.

Bash:
  $ source <(%[1]s completion bash)
  $ %[1]s completion bash > /etc/bash_completion.d/%[1]s

Zsh:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  $ %[1]s completion zsh > "${fpath[1]}/_%[1]s"

Fish:
  $ %[1]s completion fish > ~/.config/fish/completions/%[1]s.fish

PowerShell:
  PS> %[1]s completion powershell | Out-String | Invoke-Expression
`

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  fmt.Sprintf(completionHelp, appName),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// registerCompletions wires value completion for the flags shared by the
// render and overview commands.
func registerCompletions(cmd *cobra.Command, formats ...sink.Format) {
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats(formats...))
	_ = cmd.RegisterFlagCompletionFunc("config", completeConfigFiles)
	_ = cmd.RegisterFlagCompletionFunc("output", completeDirs)
}

// completeFormats completes the last entry of a comma-separated format list,
// leaving out formats already named.
func completeFormats(formats ...sink.Format) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		prefix, partial := "", toComplete
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			prefix, partial = toComplete[:i+1], toComplete[i+1:]
		}
		used := map[string]bool{}
		for _, name := range splitList(prefix) {
			used[strings.ToLower(name)] = true
		}

		var out []cobra.Completion
		for _, f := range formats {
			name := string(f)
			if used[name] || !strings.HasPrefix(name, strings.ToLower(partial)) {
				continue
			}
			out = append(out, prefix+name)
		}
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}

func completeConfigFiles(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return []cobra.Completion{"toml", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

func completeDirs(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}
