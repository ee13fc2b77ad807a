package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/garymjr/forest/internal/models"
)

var (
	addNewBranch bool
	addFrom      string
	addGroup     string
)

var addCmd = &cobra.Command{
	Use:   "add <branch> | add <path> <branch>",
	Short: "Create a new worktree",
	Long: `Create a new worktree.

With a single argument the argument is the branch and the worktree is placed
under the configured directory as <directory>/<repository>/<branch>. With two
arguments the first is the worktree path and the second the branch.`,
	Example: `  forest add feature-x -b
  forest add auth --group feature -b --from main
  forest add ./checkouts/hotfix hotfix/login`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVarP(&addNewBranch, "new-branch", "b", false, "Create the branch")
	addCmd.Flags().StringVar(&addFrom, "from", "", "Start the new branch at this reference (implies --new-branch)")
	addCmd.Flags().StringVar(&addGroup, "group", "", "Create the branch under this namespace")
}

func runAdd(cmd *cobra.Command, args []string) error {
	opts := models.AddOptions{
		Target:    args[0],
		NewBranch: addNewBranch,
		From:      addFrom,
		Group:     addGroup,
	}
	if len(args) == 2 {
		opts.Branch = args[1]
	}

	res, err := newManager().Add(cmd.Context(), opts)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Worktree created: %s → %s", res.Path, res.Branch)
	data := struct {
		models.AddResult
		Message string `json:"message"`
	}{res, msg}
	return emit(cmd.OutOrStdout(), data, func(w io.Writer) {
		fmt.Fprintln(w, successMsg(msg))
	})
}
