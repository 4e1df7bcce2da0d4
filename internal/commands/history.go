package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/coamigrate/internal/runlog"
)

func newHistoryCommand() *cobra.Command {
	var repo string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous runs from the run log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(repo)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runHistory(cmd.OutOrStdout(), root, limit)
		},
	}

	cmd.Flags().StringVar(&repo, "repo", ".", "workspace directory")
	cmd.Flags().IntVar(&limit, "limit", 20, "show at most this many recent runs (0 for all)")

	return cmd
}

// runHistory prints the most recent runs, oldest first.
func runHistory(out io.Writer, root string, limit int) error {
	entries, err := runlog.Read(root)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return nil
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	for _, e := range entries {
		fmt.Fprintf(out, "%s  %-9s  %5d  %s -> %s\n",
			e.Timestamp.Local().Format(time.DateTime),
			e.Command,
			e.Records,
			e.Input,
			strings.Join(e.Outputs, ", "),
		)
	}
	return nil
}
