package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/coamigrate/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "coamigrate",
		Short:   "Chart-of-accounts migration analysis",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newInitCommand(),
		newConvertCommand(),
		newClassifyCommand(),
		newMethodsCommand(),
		newAttributeCommand(),
		newCompareCommand(),
		newHistoryCommand(),
	)

	return rootCmd
}
