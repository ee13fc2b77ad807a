package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	ferrors "github.com/garymjr/forest/internal/errors"
	"github.com/garymjr/forest/internal/models"
)

var (
	syncForce bool
	syncGroup string
	syncAll   bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull every worktree from its upstream",
	Long: `Fast-forward each linked worktree from its upstream branch, one at a time.

Worktrees with uncommitted changes are skipped unless --force is given, in
which case the changes are stashed first. Worktrees without an upstream are
always skipped. A failure in one worktree does not stop the others; the
command exits non-zero when any worktree failed.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVarP(&syncForce, "force", "f", false, "Stash uncommitted changes and sync anyway")
	syncCmd.Flags().StringVar(&syncGroup, "group", "", "Only sync worktrees in this branch namespace")
	syncCmd.Flags().BoolVar(&syncAll, "all", false, "Include the main worktree")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	m := newManager()
	if err := m.RequireRepo(ctx); err != nil {
		return err
	}

	worktrees, err := selectWorktrees(ctx, m, nil, syncAll, syncGroup)
	if err != nil {
		return err
	}
	res := m.SyncAll(ctx, worktrees, models.SyncOptions{Force: syncForce})
	summary := res.Summary()

	data := map[string]any{"results": res, "summary": summary}
	human := func(w io.Writer) { printSync(w, res, summary) }
	if !res.Success() {
		err := ferrors.E(ferrors.Op("cmd.sync"), ferrors.KindGit, ferrors.CodeSync,
			fmt.Sprintf("%d worktree(s) failed to sync", summary.Failed), res.Err(),
			ferrors.Suggestion("Resolve the failures above and run 'forest sync' again"))
		return emitFailure(cmd.OutOrStdout(), data, err, human)
	}
	return emit(cmd.OutOrStdout(), data, human)
}

func printSync(w io.Writer, res *models.SyncResult, summary models.SyncSummary) {
	fmt.Fprintln(w, styleHeader.Render("Sync"))
	for _, path := range res.Synced {
		fmt.Fprintln(w, successMsg("Synced "+path))
	}
	for _, s := range res.Skipped {
		fmt.Fprintln(w, warnMsg(fmt.Sprintf("Skipped %s: %s", s.Path, s.Reason)))
	}
	for _, f := range res.Failed {
		fmt.Fprintln(w, errorMsg(fmt.Sprintf("Failed %s: %s", f.Path, f.Error)))
	}
	fmt.Fprintln(w, styleDim.Render(fmt.Sprintf("%d synced, %d skipped, %d failed (%d total)",
		summary.Synced, summary.Skipped, summary.Failed, summary.Total)))
}
