package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/garymjr/forest/internal/git"
	"github.com/garymjr/forest/internal/models"
	"github.com/garymjr/forest/internal/worktree"
)

var (
	listGroup   string
	showDetails bool
	showDirty   bool
	showLocked  bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all worktrees",
	Long: `List all worktrees in the current Git repository.
Shows the path, branch, creation date, and status of each worktree.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listGroup, "group", "", "Only show worktrees in this branch namespace")
	listCmd.Flags().BoolVar(&showDetails, "details", false, "Show detailed information")
	listCmd.Flags().BoolVar(&showDirty, "dirty", false, "Show only dirty worktrees")
	listCmd.Flags().BoolVar(&showLocked, "locked", false, "Show only locked worktrees")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	m := newManager()
	if err := m.RequireRepo(ctx); err != nil {
		return err
	}

	opts := models.WorktreeListOptions{
		Group:       listGroup,
		ShowDirty:   showDirty,
		ShowLocked:  showLocked,
		ShowDetails: showDetails,
	}

	worktrees := worktree.FilterGroup(m.List(ctx), opts.Group)
	var statuses []models.WorktreeStatus
	if opts.ShowDirty || opts.ShowDetails {
		statuses = m.StatusOfAll(ctx, worktrees)
	} else {
		statuses = make([]models.WorktreeStatus, len(worktrees))
		for i, wt := range worktrees {
			statuses[i] = models.WorktreeStatus{Worktree: wt}
		}
	}
	statuses = filterWorktrees(statuses, opts)

	var data any = map[string]any{"worktrees": plainWorktrees(statuses)}
	if opts.ShowDirty || opts.ShowDetails {
		data = map[string]any{"worktrees": statuses}
	}
	return emit(cmd.OutOrStdout(), data, func(w io.Writer) {
		if len(statuses) == 0 {
			fmt.Fprintln(w, "No worktrees found matching the criteria.")
			return
		}
		printWorktrees(w, statuses, opts)
	})
}

func filterWorktrees(statuses []models.WorktreeStatus, opts models.WorktreeListOptions) []models.WorktreeStatus {
	filtered := []models.WorktreeStatus{}
	for _, st := range statuses {
		if opts.ShowDirty && !st.Dirty {
			continue
		}
		if opts.ShowLocked && !st.Locked {
			continue
		}
		filtered = append(filtered, st)
	}
	return filtered
}

func plainWorktrees(statuses []models.WorktreeStatus) []models.Worktree {
	out := make([]models.Worktree, len(statuses))
	for i, st := range statuses {
		out[i] = st.Worktree
	}
	return out
}

func printWorktrees(out io.Writer, statuses []models.WorktreeStatus, opts models.WorktreeListOptions) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if opts.ShowDetails {
		fmt.Fprintln(w, "PATH\tBRANCH\tHEAD\tCREATED\tSTATUS")
		fmt.Fprintln(w, "----\t------\t----\t-------\t------")
	} else {
		fmt.Fprintln(w, "PATH\tBRANCH\tCREATED\tSTATUS")
		fmt.Fprintln(w, "----\t------\t-------\t------")
	}

	for _, st := range statuses {
		created, _ := git.CreatedAt(st.Path)
		branch := st.Branch
		if st.Main {
			branch = fmt.Sprintf("%s (main)", branch)
		}

		if opts.ShowDetails {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", st.Path, branch, st.Commit, formatCreatedTime(created), formatStatus(st, true))
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", st.Path, branch, formatCreatedTime(created), formatStatus(st, false))
		}
	}
}

// formatStatus describes a worktree's state. Cleanliness is only known when
// status was computed.
func formatStatus(st models.WorktreeStatus, computed bool) string {
	var statuses []string

	if st.Dirty {
		statuses = append(statuses, "dirty")
	}
	if st.Conflicts {
		statuses = append(statuses, "conflicts")
	}
	if st.Locked {
		statuses = append(statuses, "locked")
	}
	if st.Prunable {
		statuses = append(statuses, "prunable")
	}
	if st.Bare {
		statuses = append(statuses, "bare")
	}

	if len(statuses) == 0 {
		if computed {
			return "clean"
		}
		return "-"
	}

	return strings.Join(statuses, ", ")
}

func formatCreatedTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}

	duration := time.Since(t)

	switch {
	case duration < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(duration.Minutes()))
	case duration < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(duration.Hours()))
	case duration < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(duration.Hours()/24))
	case duration < 30*24*time.Hour:
		return fmt.Sprintf("%d weeks ago", int(duration.Hours()/(24*7)))
	default:
		return t.Format("2006-01-02")
	}
}
