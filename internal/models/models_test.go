package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	sum := Summarize([]WorktreeStatus{
		{Dirty: true, Conflicts: true, HasUpstream: true, Behind: 2},
		{HasUpstream: true, Ahead: 1, Worktree: Worktree{Locked: true}},
		{},
	})
	assert.Equal(t, StatusSummary{
		Total: 3, Clean: 2, Dirty: 1, Conflicts: 1, Ahead: 1, Behind: 1, NoUpstream: 1, Locked: 1,
	}, sum)
	assert.Equal(t, StatusSummary{}, Summarize(nil))
}

func TestChangedFiles(t *testing.T) {
	st := WorktreeStatus{StagedFiles: 1, UnstagedFiles: 2, UntrackedFiles: 3}
	assert.Equal(t, 6, st.ChangedFiles())
}

func TestSyncResult(t *testing.T) {
	res := NewSyncResult()
	assert.True(t, res.Success())
	assert.NoError(t, res.Err())

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"synced":[],"skipped":[],"failed":[]}`, string(data))

	res.Synced = append(res.Synced, "/wt/a")
	res.Skipped = append(res.Skipped, SkippedItem{Path: "/wt/b", Reason: "no upstream"})
	res.Failed = append(res.Failed,
		FailedItem{Path: "/wt/c", Error: "pull failed"},
		FailedItem{Path: "/wt/d", Error: "stash failed"})

	assert.False(t, res.Success())
	assert.Equal(t, SyncSummary{Total: 4, Synced: 1, Skipped: 1, Failed: 2}, res.Summary())
	err = res.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.Contains(t, err.Error(), "/wt/c: pull failed")
	assert.Contains(t, err.Error(), "/wt/d: stash failed")
}

func TestWorktreeJSON(t *testing.T) {
	data, err := json.Marshal(Worktree{Path: "/wt/a", Branch: DetachedBranch, Commit: "abc1234"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"/wt/a","branch":"detached","commit":"abc1234","locked":false,"prunable":false}`, string(data))
}
