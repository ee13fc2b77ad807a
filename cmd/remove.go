package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var removeForce bool

var removeCmd = &cobra.Command{
	Use:     "remove <branch|path>",
	Aliases: []string{"rm"},
	Short:   "Remove a worktree",
	Long: `Remove a worktree by branch name, path or directory name.
Worktrees with uncommitted changes are kept unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Remove even with uncommitted changes")
}

func runRemove(cmd *cobra.Command, args []string) error {
	wt, err := newManager().Remove(cmd.Context(), args[0], removeForce)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Worktree removed: %s", wt.Path)
	data := map[string]any{"message": msg, "path": wt.Path, "branch": wt.Branch}
	return emit(cmd.OutOrStdout(), data, func(w io.Writer) {
		fmt.Fprintln(w, successMsg(msg))
	})
}
