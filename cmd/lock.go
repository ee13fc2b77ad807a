package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	lockReason  string
	unlockForce bool
)

var lockCmd = &cobra.Command{
	Use:   "lock <branch|path>",
	Short: "Lock a worktree so it is not pruned",
	Args:  cobra.ExactArgs(1),
	RunE:  runLock,
}

var unlockCmd = &cobra.Command{
	Use:   "unlock <branch|path>",
	Short: "Unlock a worktree",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnlock,
}

func init() {
	lockCmd.Flags().StringVar(&lockReason, "reason", "", "Why the worktree is locked")
	unlockCmd.Flags().BoolVarP(&unlockForce, "force", "f", false, "Succeed even if the worktree is not locked")
}

func runLock(cmd *cobra.Command, args []string) error {
	wt, err := newManager().Lock(cmd.Context(), args[0], lockReason)
	if err != nil {
		return err
	}

	data := map[string]any{"path": wt.Path, "branch": wt.Branch, "locked": true, "reason": wt.LockReason}
	return emit(cmd.OutOrStdout(), data, func(w io.Writer) {
		msg := fmt.Sprintf("Worktree locked: %s", wt.Path)
		if wt.LockReason != "" {
			msg += fmt.Sprintf(" (%s)", wt.LockReason)
		}
		fmt.Fprintln(w, successMsg(msg))
	})
}

func runUnlock(cmd *cobra.Command, args []string) error {
	wt, err := newManager().Unlock(cmd.Context(), args[0], unlockForce)
	if err != nil {
		return err
	}

	data := map[string]any{"path": wt.Path, "branch": wt.Branch, "locked": false}
	return emit(cmd.OutOrStdout(), data, func(w io.Writer) {
		fmt.Fprintln(w, successMsg(fmt.Sprintf("Worktree unlocked: %s", wt.Path)))
	})
}
