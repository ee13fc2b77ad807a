package models

import "time"

// DetachedBranch is the branch value of a worktree checked out at a commit.
const DetachedBranch = "detached"

type Worktree struct {
	Path           string `json:"path"`
	Branch         string `json:"branch"`
	Commit         string `json:"commit"`
	Locked         bool   `json:"locked"`
	Prunable       bool   `json:"prunable"`
	Main           bool   `json:"main,omitempty"`
	Bare           bool   `json:"bare,omitempty"`
	LockReason     string `json:"lock_reason,omitempty"`
	PrunableReason string `json:"prunable_reason,omitempty"`
}

// IsDetached reports whether the worktree has no branch checked out.
func (w Worktree) IsDetached() bool {
	return w.Branch == DetachedBranch
}

type WorktreeStatus struct {
	Worktree
	Dirty          bool `json:"dirty"`
	Conflicts      bool `json:"conflicts"`
	HasUpstream    bool `json:"has_upstream"`
	Ahead          int  `json:"ahead"`
	Behind         int  `json:"behind"`
	StagedFiles    int  `json:"staged_files"`
	UnstagedFiles  int  `json:"unstaged_files"`
	UntrackedFiles int  `json:"untracked_files"`
}

// ChangedFiles is the number of files with any uncommitted change.
func (s WorktreeStatus) ChangedFiles() int {
	return s.StagedFiles + s.UnstagedFiles + s.UntrackedFiles
}

type StatusSummary struct {
	Total      int `json:"total"`
	Clean      int `json:"clean"`
	Dirty      int `json:"dirty"`
	Conflicts  int `json:"conflicts"`
	Ahead      int `json:"ahead"`
	Behind     int `json:"behind"`
	NoUpstream int `json:"no_upstream"`
	Locked     int `json:"locked"`
}

// Summarize counts statuses by state. Ahead and Behind count worktrees, not
// commits.
func Summarize(statuses []WorktreeStatus) StatusSummary {
	sum := StatusSummary{Total: len(statuses)}
	for _, s := range statuses {
		if s.Dirty {
			sum.Dirty++
		} else {
			sum.Clean++
		}
		if s.Conflicts {
			sum.Conflicts++
		}
		if !s.HasUpstream {
			sum.NoUpstream++
		}
		if s.Ahead > 0 {
			sum.Ahead++
		}
		if s.Behind > 0 {
			sum.Behind++
		}
		if s.Locked {
			sum.Locked++
		}
	}
	return sum
}

// WorktreeInfo is the detailed view of a single worktree.
type WorktreeInfo struct {
	WorktreeStatus
	LastCommit string    `json:"last_commit,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type WorktreeListOptions struct {
	Group       string
	ShowDirty   bool
	ShowLocked  bool
	ShowDetails bool
}

type AddOptions struct {
	Target    string
	Branch    string
	NewBranch bool
	From      string
	Group     string
}

type PruneOptions struct {
	DryRun bool
}

type SyncOptions struct {
	Force bool
}
