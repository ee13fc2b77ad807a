package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <branch|path>",
	Short: "Show worktree details",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	info, err := newManager().Info(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return emit(cmd.OutOrStdout(), info, func(w io.Writer) {
		fmt.Fprintf(w, "Worktree: %s\n", info.Path)
		fmt.Fprintf(w, "  Branch:   %s\n", styleBranch.Render(info.Branch))
		fmt.Fprintf(w, "  Commit:   %s\n", info.Commit)
		if info.LastCommit != "" {
			fmt.Fprintf(w, "  Subject:  %s\n", info.LastCommit)
		}
		fmt.Fprintf(w, "  Status:   %s\n", formatStatus(info.WorktreeStatus, true))
		fmt.Fprintf(w, "  Changes:  %d staged, %d unstaged, %d untracked\n",
			info.StagedFiles, info.UnstagedFiles, info.UntrackedFiles)
		fmt.Fprintf(w, "  Upstream: %s\n", formatUpstream(info.WorktreeStatus))
		fmt.Fprintf(w, "  Locked:   %t\n", info.Locked)
		if info.LockReason != "" {
			fmt.Fprintf(w, "  Reason:   %s\n", info.LockReason)
		}
		fmt.Fprintf(w, "  Prunable: %t\n", info.Prunable)
		if !info.CreatedAt.IsZero() {
			fmt.Fprintf(w, "  Created:  %s (%s)\n", info.CreatedAt.Format("2006-01-02 15:04:05"), formatCreatedTime(info.CreatedAt))
		}
	})
}
