package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/garymjr/forest/internal/models"
)

var dryRun bool

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Prune stale worktrees",
	Long: `Remove administrative data for worktrees whose directory no longer exists.
Use --dry-run to see what would be pruned.`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be pruned without pruning")
}

func runPrune(cmd *cobra.Command, args []string) error {
	res, err := newManager().Prune(cmd.Context(), models.PruneOptions{DryRun: dryRun})
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Pruned %d worktree(s)", res.Count)
	if res.DryRun {
		msg = fmt.Sprintf("Would prune %d worktree(s)", res.Count)
	}
	data := struct {
		models.PruneResult
		Message string `json:"message"`
	}{res, msg}
	return emit(cmd.OutOrStdout(), data, func(w io.Writer) {
		suffix := ""
		if res.DryRun {
			suffix = " (dry run)"
		}
		fmt.Fprintln(w, successMsg(msg+suffix))
		for _, line := range res.Pruned {
			fmt.Fprintf(w, "  - %s\n", line)
		}
	})
}
