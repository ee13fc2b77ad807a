package worktree

import (
	"context"
	"fmt"
	"time"

	"github.com/garymjr/forest/internal/models"
)

// Skip reasons recorded by SyncAll.
const (
	ReasonNoUpstream = "no upstream"
	ReasonBare       = "bare repository"
)

// SyncAll pulls every worktree from its upstream, one at a time. Dirty
// worktrees are skipped unless opts.Force is set, in which case their changes
// are stashed first. A failure is recorded against its worktree and never
// stops the batch.
func (m *Manager) SyncAll(ctx context.Context, worktrees []models.Worktree, opts models.SyncOptions) *models.SyncResult {
	res := models.NewSyncResult()

	for _, wt := range worktrees {
		log := m.log.With("path", wt.Path, "branch", wt.Branch)

		if err := ctx.Err(); err != nil {
			res.Failed = append(res.Failed, models.FailedItem{Path: wt.Path, Branch: wt.Branch, Error: err.Error()})
			continue
		}
		if wt.Bare {
			res.Skipped = append(res.Skipped, models.SkippedItem{Path: wt.Path, Branch: wt.Branch, Reason: ReasonBare})
			continue
		}

		st := m.StatusOf(ctx, wt)
		if st.Dirty && !opts.Force {
			reason := fmt.Sprintf("uncommitted changes (%d modified files)", st.ChangedFiles())
			log.Info("sync skipped", "reason", reason)
			res.Skipped = append(res.Skipped, models.SkippedItem{Path: wt.Path, Branch: wt.Branch, Reason: reason})
			continue
		}
		if !st.HasUpstream {
			log.Info("sync skipped", "reason", ReasonNoUpstream)
			res.Skipped = append(res.Skipped, models.SkippedItem{Path: wt.Path, Branch: wt.Branch, Reason: ReasonNoUpstream})
			continue
		}

		if st.Dirty {
			msg := "forest sync " + m.now().Format(time.RFC3339)
			if err := m.gw.Stash(ctx, wt.Path, msg); err != nil {
				log.Warn("stash failed", "err", err)
				res.Failed = append(res.Failed, models.FailedItem{Path: wt.Path, Branch: wt.Branch, Error: "stash failed: " + err.Error()})
				continue
			}
			log.Info("stashed local changes", "message", msg)
		}

		if err := m.gw.Pull(ctx, wt.Path); err != nil {
			log.Warn("pull failed", "err", err)
			res.Failed = append(res.Failed, models.FailedItem{Path: wt.Path, Branch: wt.Branch, Error: "pull failed: " + err.Error()})
			continue
		}
		log.Info("synced")
		res.Synced = append(res.Synced, wt.Path)
	}
	return res
}
