package models

type AddResult struct {
	Path      string `json:"path"`
	Branch    string `json:"branch"`
	NewBranch bool   `json:"new_branch"`
}

type CloneResult struct {
	Source       string `json:"source"`
	SourceCommit string `json:"source_commit"`
	Path         string `json:"path"`
	Branch       string `json:"branch,omitempty"`
	NewBranch    bool   `json:"new_branch"`
}

// PruneResult lists what git reported as pruned, or as prunable on a dry run.
type PruneResult struct {
	Pruned []string `json:"pruned"`
	Count  int      `json:"count"`
	DryRun bool     `json:"dry_run"`
}
