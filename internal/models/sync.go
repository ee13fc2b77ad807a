package models

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

type SkippedItem struct {
	Path   string `json:"path"`
	Branch string `json:"branch"`
	Reason string `json:"reason"`
}

type FailedItem struct {
	Path   string `json:"path"`
	Branch string `json:"branch"`
	Error  string `json:"error"`
}

type SyncSummary struct {
	Total   int `json:"total"`
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// SyncResult collects the outcome of one bulk sync. Synced holds worktree
// paths.
type SyncResult struct {
	Synced  []string      `json:"synced"`
	Skipped []SkippedItem `json:"skipped"`
	Failed  []FailedItem  `json:"failed"`
}

func NewSyncResult() *SyncResult {
	return &SyncResult{
		Synced:  []string{},
		Skipped: []SkippedItem{},
		Failed:  []FailedItem{},
	}
}

// Success is true when no worktree failed. Skips don't count.
func (r *SyncResult) Success() bool {
	return len(r.Failed) == 0
}

func (r *SyncResult) Summary() SyncSummary {
	return SyncSummary{
		Total:   len(r.Synced) + len(r.Skipped) + len(r.Failed),
		Synced:  len(r.Synced),
		Skipped: len(r.Skipped),
		Failed:  len(r.Failed),
	}
}

// Err folds every failure into one error, or nil.
func (r *SyncResult) Err() error {
	var merr *multierror.Error
	for _, f := range r.Failed {
		merr = multierror.Append(merr, fmt.Errorf("%s: %s", f.Path, f.Error))
	}
	return merr.ErrorOrNil()
}
