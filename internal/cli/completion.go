package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gamesolver/pkg/arena/generate"
	"github.com/matzehuels/gamesolver/pkg/pipeline"
)

var allFormats = []string{
	pipeline.FormatJSON, pipeline.FormatYAML, pipeline.FormatDOT,
	pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF,
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for gamesolver.

Solver names, generator families and output formats complete too.

  $ source <(gamesolver completion bash)
  $ gamesolver completion zsh > "${fpath[1]}/_gamesolver"
  $ gamesolver completion fish > ~/.config/fish/completions/gamesolver.fish
  PS> gamesolver completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// =============================================================================
// Value Completion
// =============================================================================

func completeSolvers(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return pipeline.SolverNames(), cobra.ShellCompDirectiveNoFileComp
}

func completeFamilies(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return generate.Names(), cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes the last entry of a comma separated format list,
// skipping formats already present: "json,s" offers "json,svg".
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, partial := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		done, partial = toComplete[:i+1], toComplete[i+1:]
	}
	used := strings.Split(done, ",")

	var out []string
	for _, f := range allFormats {
		if strings.HasPrefix(f, partial) && !slices.Contains(used, f) {
			out = append(out, done+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// registerFlagCompletions attaches value completion to cmd and its
// subcommands, for whichever of the known flags they define.
func registerFlagCompletions(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		registerFlagCompletions(sub)
	}
	funcs := map[string]cobra.CompletionFunc{
		"solver": completeSolvers,
		"format": completeFormats,
		"family": completeFamilies,
	}
	for name, fn := range funcs {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, fn)
		}
	}
}
