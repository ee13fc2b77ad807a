package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	ferrors "github.com/garymjr/forest/internal/errors"
	"github.com/garymjr/forest/internal/validate"
)

var pathCmd = &cobra.Command{
	Use:   "path <branch|path>",
	Short: "Print the directory of a worktree",
	Long: `Print the directory of an existing worktree, or the directory forest
would use for the branch when no worktree matches.

  cd "$(forest path feature-x)"`,
	Args: cobra.ExactArgs(1),
	RunE: runPath,
}

func runPath(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	target := args[0]
	if res := validate.Path(target); !res.Valid {
		return ferrors.InvalidPath(ferrors.Op("cmd.path"), res.Error)
	}

	m := newManager()
	path := ""
	exists := false
	if wt, err := m.Find(ctx, target); err == nil {
		path, exists = wt.Path, true
	} else {
		path = m.ResolvePath(ctx, target)
	}

	data := map[string]any{"path": path, "exists": exists}
	return emit(cmd.OutOrStdout(), data, func(w io.Writer) {
		fmt.Fprintln(w, path)
	})
}
