package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/deadline"
	"github.com/matzehuels/skyline/pkg/render/chart"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for skyline.

To load completions:

Bash:
  $ source <(skyline completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ skyline completion bash > /etc/bash_completion.d/skyline
  # macOS:
  $ skyline completion bash > $(brew --prefix)/etc/bash_completion.d/skyline

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ skyline completion zsh > "${fpath[1]}/_skyline"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ skyline completion fish | source

  # To load completions for each session, execute once:
  $ skyline completion fish > ~/.config/fish/completions/skyline.fish

PowerShell:
  PS> skyline completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> skyline completion powershell > skyline.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(c.Out)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.Out)
			case "fish":
				return cmd.Root().GenFishCompletion(c.Out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.Out)
			}
			return nil
		},
	}

	return cmd
}

// =============================================================================
// Flag Completions
// =============================================================================

// registryFlag names the flag holding an extra registry file.
const registryFlag = "registry"

// registryFor loads the registry named by cmd's --registry flag. Completion
// falls back to the built-in table when the file cannot be read.
func registryFor(cmd *cobra.Command) deadline.Table {
	path, _ := cmd.Flags().GetString(registryFlag)
	table, err := loadRegistry(path)
	if err != nil {
		return deadline.Default()
	}
	return table
}

// completeTerms suggests the registry's term keys.
func completeTerms(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var terms []string
	for _, k := range registryFor(cmd).Keys() {
		if !slices.Contains(terms, k.Term) && strings.HasPrefix(k.Term, toComplete) {
			terms = append(terms, k.Term)
		}
	}
	return terms, cobra.ShellCompDirectiveNoFileComp
}

// completeAssignments suggests the assignments of the term given with
// --term, or of every term when none is set yet.
func completeAssignments(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	term, _ := cmd.Flags().GetString("term")
	term = deadline.NormalizeTerm(term)

	var out []string
	for _, k := range registryFor(cmd).Keys() {
		if term != "" && k.Term != term {
			continue
		}
		if !slices.Contains(out, k.Assignment) && strings.HasPrefix(k.Assignment, toComplete) {
			out = append(out, k.Assignment)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeVariants suggests built-in variants plus those from --variants or
// the config directory.
func (c *CLI) completeVariants(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	path, _ := cmd.Flags().GetString("variants")
	user, err := c.loadVariants(path)
	if err != nil {
		user = nil
	}
	var out []string
	for _, name := range chart.DefaultVariants().Merge(user).Names() {
		if strings.HasPrefix(name, toComplete) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats suggests output formats for a comma-separated list.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	head, last := "", toComplete
	if i := strings.LastIndexByte(toComplete, ','); i >= 0 {
		head, last = toComplete[:i+1], toComplete[i+1:]
	}
	var out []string
	for _, f := range []string{"svg", "png", "pdf", "json"} {
		if strings.HasPrefix(f, last) {
			out = append(out, head+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
