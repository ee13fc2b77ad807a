package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/garymjr/forest/internal/models"
	"github.com/garymjr/forest/internal/worktree"
)

var (
	statusAll   bool
	statusGroup string
)

var statusCmd = &cobra.Command{
	Use:   "status [branch|path]",
	Short: "Show the status of worktrees",
	Long: `Show uncommitted changes, conflicts and upstream divergence for each
linked worktree. The main worktree is included with --all.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusAll, "all", false, "Include the main worktree")
	statusCmd.Flags().StringVar(&statusGroup, "group", "", "Only show worktrees in this branch namespace")
}

// selectWorktrees narrows to one target, or to the linked worktrees (all of
// them with includeMain) in namespace group.
func selectWorktrees(ctx context.Context, m *worktree.Manager, args []string, includeMain bool, group string) ([]models.Worktree, error) {
	if len(args) == 1 {
		wt, err := m.Find(ctx, args[0])
		if err != nil {
			return nil, err
		}
		return []models.Worktree{wt}, nil
	}

	var out []models.Worktree
	for _, wt := range worktree.FilterGroup(m.List(ctx), group) {
		if wt.Main && !includeMain {
			continue
		}
		out = append(out, wt)
	}
	return out, nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	m := newManager()
	if err := m.RequireRepo(ctx); err != nil {
		return err
	}

	worktrees, err := selectWorktrees(ctx, m, args, statusAll, statusGroup)
	if err != nil {
		return err
	}
	statuses := m.StatusOfAll(ctx, worktrees)
	summary := models.Summarize(statuses)

	data := map[string]any{"worktrees": statuses, "summary": summary}
	return emit(cmd.OutOrStdout(), data, func(w io.Writer) {
		printStatus(w, statuses, summary)
	})
}

func printStatus(out io.Writer, statuses []models.WorktreeStatus, summary models.StatusSummary) {
	fmt.Fprintln(out, styleHeader.Render("Git Worktrees Status"))
	if len(statuses) == 0 {
		fmt.Fprintln(out, "No worktrees found.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tBRANCH\tCHANGES\tUPSTREAM\tSTATUS")
	fmt.Fprintln(w, "----\t------\t-------\t--------\t------")
	for _, st := range statuses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", st.Path, st.Branch, formatChanges(st), formatUpstream(st), formatStatusMarker(st))
	}
	w.Flush()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d worktree(s): %d clean, %d dirty", summary.Total, summary.Clean, summary.Dirty)
	if summary.Conflicts > 0 {
		fmt.Fprintf(out, ", %d with conflicts", summary.Conflicts)
	}
	fmt.Fprintln(out)
}

func formatChanges(st models.WorktreeStatus) string {
	if !st.Dirty {
		return "-"
	}
	var parts []string
	if st.StagedFiles > 0 {
		parts = append(parts, fmt.Sprintf("+%d", st.StagedFiles))
	}
	if st.UnstagedFiles > 0 {
		parts = append(parts, fmt.Sprintf("~%d", st.UnstagedFiles))
	}
	if st.UntrackedFiles > 0 {
		parts = append(parts, fmt.Sprintf("?%d", st.UntrackedFiles))
	}
	if len(parts) == 0 {
		return "changed"
	}
	return strings.Join(parts, " ")
}

func formatUpstream(st models.WorktreeStatus) string {
	if !st.HasUpstream {
		return "none"
	}
	if st.Ahead == 0 && st.Behind == 0 {
		return "up to date"
	}
	return fmt.Sprintf("↑%d ↓%d", st.Ahead, st.Behind)
}

func formatStatusMarker(st models.WorktreeStatus) string {
	switch {
	case st.Conflicts:
		return errorMsg("conflicts")
	case st.Dirty:
		return warnMsg("dirty")
	default:
		return successMsg("clean")
	}
}
