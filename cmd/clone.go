package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var cloneNewBranch bool

var cloneCmd = &cobra.Command{
	Use:   "clone <source> <dest>",
	Short: "Create a worktree at another worktree's commit",
	Long: `Create a new worktree checked out at the current commit of <source>.
The new worktree is detached unless -b creates a branch named after <dest>.`,
	Args: cobra.ExactArgs(2),
	RunE: runClone,
}

func init() {
	cloneCmd.Flags().BoolVarP(&cloneNewBranch, "new-branch", "b", false, "Create a branch named after the destination")
}

func runClone(cmd *cobra.Command, args []string) error {
	res, err := newManager().Clone(cmd.Context(), args[0], args[1], cloneNewBranch)
	if err != nil {
		return err
	}

	return emit(cmd.OutOrStdout(), res, func(w io.Writer) {
		target := "detached"
		if res.NewBranch {
			target = res.Branch
		}
		fmt.Fprintln(w, successMsg(fmt.Sprintf("Worktree cloned: %s → %s (%s at %s)",
			res.Source, res.Path, target, shortHash(res.SourceCommit))))
	})
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
