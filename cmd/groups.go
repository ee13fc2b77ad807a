package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/garymjr/forest/internal/models"
	"github.com/garymjr/forest/internal/worktree"
)

var groupsVerbose bool

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List worktrees grouped by branch namespace",
	Long: `Group worktrees by the part of their branch name before the first "/".
Branches without a namespace are listed under ` + models.RootGroup + `.`,
	Args: cobra.NoArgs,
	RunE: runGroups,
}

func init() {
	groupsCmd.Flags().BoolVarP(&groupsVerbose, "verbose", "v", false, "List the worktrees in each group")
}

func runGroups(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	m := newManager()
	if err := m.RequireRepo(ctx); err != nil {
		return err
	}

	groups := worktree.GroupByNamespace(m.List(ctx))
	data := map[string]any{"groups": groups, "total_groups": len(groups)}
	return emit(cmd.OutOrStdout(), data, func(w io.Writer) {
		if len(groups) == 0 {
			fmt.Fprintln(w, "No worktrees found.")
			return
		}
		for _, g := range groups {
			fmt.Fprintf(w, "%s (%d)\n", styleBranch.Render(g.Name), g.Count)
			if !groupsVerbose {
				continue
			}
			for _, wt := range g.Worktrees {
				fmt.Fprintf(w, "  %s  %s\n", wt.Branch, styleDim.Render(wt.Path))
			}
		}
	})
}
